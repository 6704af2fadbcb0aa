package uxfeedback

import (
	"testing"

	"ark/internal/catalog"
)

func someResults(n int) []catalog.Result {
	out := make([]catalog.Result, n)
	return out
}

func TestBuild_EmptyWhenAboveFloor(t *testing.T) {
	fb := Build(10, 5, Candidates{})
	if fb.Message != "" || len(fb.Chips) != 0 {
		t.Fatal("expected no feedback when result count clears the acceptable floor")
	}
}

func TestBuild_MessagePresentBelowFloor(t *testing.T) {
	fb := Build(2, 5, Candidates{})
	if fb.Message == "" {
		t.Fatal("expected a helper message when below the acceptable floor")
	}
}

func TestBuild_CapsAtFourChips(t *testing.T) {
	cand := Candidates{
		OutsideBudget:    someResults(3),
		OutsideWalkRange: someResults(2),
		ClosedNow:        someResults(4),
		HighlyRated:      someResults(1),
		BelowRatingFloor: someResults(6),
	}
	fb := Build(1, 5, cand)
	if len(fb.Chips) != maxChips {
		t.Fatalf("expected at most %d chips, got %d", maxChips, len(fb.Chips))
	}
}

func TestBuild_OmitsEmptyCandidatePools(t *testing.T) {
	fb := Build(1, 5, Candidates{OutsideBudget: someResults(2)})
	if len(fb.Chips) != 1 {
		t.Fatalf("expected exactly one chip for one non-empty pool, got %d", len(fb.Chips))
	}
	if fb.Chips[0].Label != "Budget options" {
		t.Fatalf("expected budget chip, got %q", fb.Chips[0].Label)
	}
}

func TestBuild_ChipCountMatchesPoolSize(t *testing.T) {
	fb := Build(0, 5, Candidates{ClosedNow: someResults(7)})
	if fb.Chips[0].Count != 7 {
		t.Fatalf("expected chip count 7, got %d", fb.Chips[0].Count)
	}
}
