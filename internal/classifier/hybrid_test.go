package classifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"ark/internal/ai"
	"ark/internal/costopt"
	"ark/internal/searchintent"
)

type fakeModel struct {
	result *ai.ClassificationResult
	err    error
	calls  int
}

func (f *fakeModel) ClassifyQuery(ctx context.Context, query string, hints map[string]string) (*ai.ClassificationResult, error) {
	f.calls++
	return f.result, f.err
}

func freshBudget() *costopt.Tracker {
	return costopt.NewTracker(costopt.Budget{DailyCapUSD: 5, CallCap: 500, CostPerCall: 0.01})
}

func TestHybrid_HighConfidenceSkipsModel(t *testing.T) {
	fm := &fakeModel{result: &ai.ClassificationResult{IntentType: "event"}}
	h := NewHybrid(fm, func() bool { return true }, freshBudget())
	intent := h.Classify(context.Background(), "pizza near me tonight", searchintent.UserContext{Now: time.Now()})
	if intent.Source != searchintent.SourceRuleBased {
		t.Fatalf("expected rule-based source for high confidence, got %s", intent.Source)
	}
	if fm.calls != 0 {
		t.Fatalf("expected model not called, got %d calls", fm.calls)
	}
}

func TestHybrid_LowConfidenceCallsModel(t *testing.T) {
	fm := &fakeModel{result: &ai.ClassificationResult{
		IntentType: "both",
		Categories: []string{"food", "not-a-real-category"},
		Keywords:   []string{"tapas"},
		Mood:       "romantic",
	}}
	h := NewHybrid(fm, func() bool { return true }, freshBudget())
	intent := h.Classify(context.Background(), "hello there", searchintent.UserContext{Now: time.Now()})
	if intent.Source != searchintent.SourceModel {
		t.Fatalf("expected model source, got %s", intent.Source)
	}
	if fm.calls != 1 {
		t.Fatalf("expected exactly 1 model call, got %d", fm.calls)
	}
	if len(intent.Categories) != 1 || intent.Categories[0] != "food" {
		t.Fatalf("expected categories restricted to closed set, got %v", intent.Categories)
	}
	if intent.Sub.Mood != "romantic" {
		t.Fatalf("expected mood merged, got %q", intent.Sub.Mood)
	}
}

func TestHybrid_ModelUnavailableFlagOff(t *testing.T) {
	fm := &fakeModel{result: &ai.ClassificationResult{IntentType: "event"}}
	h := NewHybrid(fm, func() bool { return false }, freshBudget())
	intent := h.Classify(context.Background(), "hello there", searchintent.UserContext{Now: time.Now()})
	if intent.Source != searchintent.SourceRuleBased {
		t.Fatalf("expected rule-based fallback when flag is off, got %s", intent.Source)
	}
	if fm.calls != 0 {
		t.Fatal("expected model not called when flag disabled")
	}
}

func TestHybrid_ModelErrorFallsBack(t *testing.T) {
	fm := &fakeModel{err: errors.New("boom")}
	h := NewHybrid(fm, func() bool { return true }, freshBudget())
	intent := h.Classify(context.Background(), "hello there", searchintent.UserContext{Now: time.Now()})
	if intent.Source != searchintent.SourceRuleBasedFallback {
		t.Fatalf("expected rule-based-fallback source on model error, got %s", intent.Source)
	}
}

func TestHybrid_NoModelConfigured(t *testing.T) {
	h := NewHybrid(nil, func() bool { return true }, freshBudget())
	intent := h.Classify(context.Background(), "hello there", searchintent.UserContext{Now: time.Now()})
	if intent.Source != searchintent.SourceRuleBased {
		t.Fatalf("expected rule-based source with nil model, got %s", intent.Source)
	}
}

func TestHybrid_BudgetExhaustedSkipsModel(t *testing.T) {
	fm := &fakeModel{result: &ai.ClassificationResult{IntentType: "event"}}
	exhausted := costopt.NewTracker(costopt.Budget{DailyCapUSD: 0, CallCap: 0, CostPerCall: 0.01})
	h := NewHybrid(fm, func() bool { return true }, exhausted)
	intent := h.Classify(context.Background(), "hello there", searchintent.UserContext{Now: time.Now()})
	if intent.Source != searchintent.SourceRuleBased {
		t.Fatalf("expected rule-based source when budget exhausted, got %s", intent.Source)
	}
	if fm.calls != 0 {
		t.Fatal("expected model not called when budget exhausted")
	}
}

func TestHybrid_CachesSecondCall(t *testing.T) {
	fm := &fakeModel{result: &ai.ClassificationResult{IntentType: "both", Categories: []string{"food"}}}
	h := NewHybrid(fm, func() bool { return true }, freshBudget())
	now := time.Now()
	h.Classify(context.Background(), "hello there", searchintent.UserContext{Now: now})
	h.Classify(context.Background(), "hello there", searchintent.UserContext{Now: now})
	if fm.calls != 1 {
		t.Fatalf("expected second call served from cache, got %d model calls", fm.calls)
	}
}
