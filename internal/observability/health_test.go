package observability

import (
	"testing"
	"time"

	"ark/internal/circuitbreaker"
)

var fixedNow = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestCheck_HealthyWithNoBreakers(t *testing.T) {
	h := Check(circuitbreaker.NewRegistry())
	if h.Status != StatusHealthy {
		t.Fatalf("expected healthy with no breakers consulted yet, got %v", h.Status)
	}
}

func TestCheck_DegradedWhenABreakerIsOpen(t *testing.T) {
	reg := circuitbreaker.NewRegistry()
	b := reg.Get("places")
	for i := 0; i < 5; i++ {
		b.RecordFailure(fixedNow)
	}
	h := Check(reg)
	if h.Status != StatusDegraded {
		t.Fatalf("expected degraded once a breaker trips open, got %v", h.Status)
	}
}
