// README: Hybrid Classifier (§4.3) — confidence-gated model fallback on
// top of the rule-based Classify. Grounded on ai/gemini.go's client plus
// aiusage.Store's cost-envelope role, recombined here with
// internal/costopt and internal/cache per the spec's in-process-state
// requirement.
package classifier

import (
	"context"
	"strconv"
	"time"

	"ark/internal/ai"
	"ark/internal/cache"
	"ark/internal/costopt"
	"ark/internal/searchintent"
)

// acceptConfidenceThreshold is the §4.3 bar below which the model is
// consulted.
const acceptConfidenceThreshold = 0.65

const modelCacheCapacity = 1000

var modelCacheTTL = 24 * time.Hour

// closedCategories restricts model-reported categories to the macro set.
var closedCategories = map[string]bool{
	"food": true, "nightlife": true, "music": true, "art": true,
	"history": true, "fitness": true, "outdoor": true, "social": true,
	"other": true,
}

// Hybrid wires the rule-based classifier to an optional model fallback,
// gated by confidence, API-key presence, the cost envelope, and a
// feature flag.
type Hybrid struct {
	model     ai.Classifier
	enabled   func() bool
	budget    *costopt.Tracker
	cache     *cache.TTLCache
}

// NewHybrid returns a Hybrid. model may be nil, meaning the fallback is
// never available (e.g. no API key configured). enabled reports the
// current state of the hybrid-classifier feature flag.
func NewHybrid(model ai.Classifier, enabled func() bool, budget *costopt.Tracker) *Hybrid {
	return &Hybrid{
		model:   model,
		enabled: enabled,
		budget:  budget,
		cache:   cache.NewTTLCache(),
	}
}

// Classify runs the rule-based classifier, then escalates to the model
// only when confidence is below threshold and the model is actually
// available. Never fails: model errors fall back to the rule-based
// result with source rule-based-fallback.
func (h *Hybrid) Classify(ctx context.Context, raw string, userCtx searchintent.UserContext) searchintent.SearchIntent {
	base := Classify(raw, userCtx)
	if base.Confidence >= acceptConfidenceThreshold {
		return base
	}
	if !h.modelAvailable(userCtx.Now) {
		return base
	}

	if cached, ok := h.cacheGet(userCtx.Now, base.Normalized); ok {
		return mergeModelResult(base, cached, true)
	}

	h.budget.RecordCall(userCtx.Now)

	callCtx, cancel := context.WithTimeout(ctx, ai.ClassifyTimeout())
	defer cancel()

	hints := map[string]string{
		"time_label":   string(base.TimeLabel),
		"has_location": strconv.FormatBool(userCtx.HasLocation),
	}
	result, err := h.model.ClassifyQuery(callCtx, base.Normalized, hints)
	if err != nil || result == nil {
		return downgradeToFallback(base)
	}

	h.cacheSet(userCtx.Now, base.Normalized, result)
	return mergeModelResult(base, result, true)
}

func (h *Hybrid) modelAvailable(now time.Time) bool {
	if h.model == nil {
		return false
	}
	if h.enabled != nil && !h.enabled() {
		return false
	}
	return h.budget.Allow(now)
}

func (h *Hybrid) cacheGet(now time.Time, key string) (*ai.ClassificationResult, bool) {
	v, ok := h.cache.Get(now, key)
	if !ok {
		return nil, false
	}
	result, ok := v.(*ai.ClassificationResult)
	return result, ok
}

func (h *Hybrid) cacheSet(now time.Time, key string, result *ai.ClassificationResult) {
	if h.cache.Len() >= modelCacheCapacity {
		h.cache.EvictOldestExpiry()
	}
	h.cache.Set(now, key, result, modelCacheTTL)
}

// mergeModelResult merges a model classification into the rule-based
// base per §4.3: keep rule-based time/location, adopt model categories
// (restricted to the closed set), keywords, and optional sub-intents.
func mergeModelResult(base searchintent.SearchIntent, result *ai.ClassificationResult, modelUsed bool) searchintent.SearchIntent {
	merged := base
	merged.Source = searchintent.SourceModel
	merged.ModelUsed = modelUsed

	if kind := searchintent.Kind(result.IntentType); kind == searchintent.KindPlace || kind == searchintent.KindEvent || kind == searchintent.KindBoth {
		merged.Kind = kind
	}

	var cats []string
	for _, c := range result.Categories {
		if closedCategories[c] {
			cats = append(cats, c)
		}
	}
	if len(cats) > 0 {
		merged.Categories = cats
	}

	if len(result.Keywords) > 0 {
		merged.Keywords = result.Keywords
	}

	if result.Mood != "" {
		merged.Sub.Mood = result.Mood
	}
	if b := searchintent.BudgetLevel(result.Budget); b != "" {
		merged.Sub.Budget = b
	}
	if g := searchintent.GroupSize(result.GroupSize); g != "" {
		merged.Sub.Group = g
	}

	return merged
}

func downgradeToFallback(base searchintent.SearchIntent) searchintent.SearchIntent {
	base.Source = searchintent.SourceRuleBasedFallback
	base.ModelUsed = false
	return base
}
