package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClassifier implements Classifier using Google's Gemini models.
type GeminiClassifier struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClassifier initializes a new Gemini client configured per §4.3:
// temperature 0.3, max output tokens 150, JSON response mode.
func NewGeminiClassifier(ctx context.Context, apiKey string) (*GeminiClassifier, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash")
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.3)
	model.SetMaxOutputTokens(150)

	return &GeminiClassifier{client: client, model: model}, nil
}

// Close releases the underlying Gemini client.
func (p *GeminiClassifier) Close() {
	p.client.Close()
}

// ClassifyQuery asks the model for its read on a query the rule-based
// classifier was not confident about. The caller is expected to enforce
// the 5-second timeout via ctx.
func (p *GeminiClassifier) ClassifyQuery(ctx context.Context, query string, hints map[string]string) (*ClassificationResult, error) {
	prompt := buildClassificationPrompt(query, hints)

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini classification error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	clean := cleanJSONString(responseText.String())
	var result ClassificationResult
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return nil, fmt.Errorf("failed to parse gemini response: %w. raw: %s", err, clean)
	}
	return &result, nil
}

// buildClassificationPrompt constructs the instructions for the model.
func buildClassificationPrompt(query string, hints map[string]string) string {
	timeHint := hints["time_label"]
	if timeHint == "" {
		timeHint = "unknown"
	}
	hasLocation := hints["has_location"]
	if hasLocation == "" {
		hasLocation = "unknown"
	}

	return fmt.Sprintf(`Role: You are a search-intent classifier for a hyperlocal discovery
search engine covering places (restaurants, bars, museums, parks, gyms)
and events (concerts, festivals, shows, markets).

Context:
- Normalized query: %q
- Detected time context: %s
- Caller has a location: %s

Classify the query and respond with ONLY a JSON object matching this
schema, no markdown fences:

{
  "intent_type": "place" | "event" | "both",
  "categories": ["subset of: food, nightlife, music, art, history, fitness, outdoor, social, other"],
  "keywords": ["short lowercase keyword", "..."],
  "mood": "string or empty",
  "budget": "free" | "budget" | "moderate" | "upscale" | "",
  "group_size": "solo" | "date" | "small_group" | "large_group" | "",
  "confidence": 0.0 to 1.0,
  "reasoning": "one short sentence"
}

Rules:
- Only use categories from the closed set above; omit anything else.
- Keep keywords to the concrete nouns/phrases the query actually names.
- If the query gives no budget/group signal, leave those fields empty.
`, query, timeHint, hasLocation)
}

// cleanJSONString removes markdown code fences if the model adds them
// despite JSON response mode being requested.
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

// classifyTimeout is the §4.3 model-call timeout.
const classifyTimeout = 5 * time.Second

// ClassifyTimeout returns the fixed model-call timeout so callers build a
// derived context consistently.
func ClassifyTimeout() time.Duration {
	return classifyTimeout
}
