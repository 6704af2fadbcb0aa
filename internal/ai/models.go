package ai

// ClassificationResult captures the structured output from the model
// fallback classifier (§4.3). Only the fields the hybrid classifier is
// allowed to adopt from the model are present; time and location stay
// with the rule-based result regardless of what the model returns.
type ClassificationResult struct {
	// IntentType is the model's kind call, restricted to the closed set
	// by the caller before it is trusted.
	IntentType string `json:"intent_type"`

	// Categories is restricted to the closed macro category set by the
	// caller; any unrecognized value is dropped, not trusted verbatim.
	Categories []string `json:"categories"`

	// Keywords is the model's refinement of the keyword list.
	Keywords []string `json:"keywords"`

	Mood      string `json:"mood,omitempty"`
	Budget    string `json:"budget,omitempty"`
	GroupSize string `json:"group_size,omitempty"`

	// Confidence is the model's own self-reported confidence, used only
	// for observability; the hybrid classifier does not let it override
	// the rule-based confidence number.
	Confidence float64 `json:"confidence"`

	// Reasoning is a short explanation, logged but never surfaced to users.
	Reasoning string `json:"reasoning"`
}
