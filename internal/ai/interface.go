package ai

import (
	"context"
)

// Classifier defines the contract for a model-backed query classifier.
// This allows swapping providers (Gemini, OpenAI, etc.) without touching
// the hybrid classifier that consumes it.
type Classifier interface {
	// ClassifyQuery analyzes a normalized search query and returns the
	// model's structured read on it. query is the already rule-based
	// normalized string; hints carries lightweight context the prompt can
	// use (current time label, whether the caller has a location).
	ClassifyQuery(ctx context.Context, query string, hints map[string]string) (*ClassificationResult, error)
}
