package costopt

import (
	"testing"
	"time"
)

func TestTracker_AllowsUnderBudget(t *testing.T) {
	tr := NewTracker(Budget{DailyCapUSD: 5.0, CallCap: 500, CostPerCall: 0.01})
	now := time.Now()
	if !tr.Allow(now) {
		t.Fatal("expected call to be allowed under fresh budget")
	}
}

func TestTracker_BlocksWhenUSDCapExceeded(t *testing.T) {
	tr := NewTracker(Budget{DailyCapUSD: 0.02, CallCap: 0, CostPerCall: 0.01})
	now := time.Now()
	tr.RecordCall(now)
	tr.RecordCall(now)
	if tr.Allow(now) {
		t.Fatal("expected call blocked once USD cap exceeded")
	}
}

func TestTracker_BlocksWhenCallCapExceeded(t *testing.T) {
	tr := NewTracker(Budget{DailyCapUSD: 100, CallCap: 2, CostPerCall: 0.01})
	now := time.Now()
	tr.RecordCall(now)
	tr.RecordCall(now)
	if tr.Allow(now) {
		t.Fatal("expected call blocked once call cap exceeded")
	}
}

func TestTracker_ResetsAtCalendarDayRollover(t *testing.T) {
	tr := NewTracker(Budget{DailyCapUSD: 0.02, CallCap: 0, CostPerCall: 0.01})
	day1 := time.Date(2026, 7, 29, 23, 59, 0, 0, time.UTC)
	day2 := time.Date(2026, 7, 30, 0, 1, 0, 0, time.UTC)
	tr.RecordCall(day1)
	tr.RecordCall(day1)
	if tr.Allow(day1) {
		t.Fatal("expected blocked at end of day1")
	}
	if !tr.Allow(day2) {
		t.Fatal("expected allowed again after day rollover")
	}
}

func TestTracker_SnapshotReportsSpend(t *testing.T) {
	tr := NewTracker(Budget{DailyCapUSD: 5, CallCap: 0, CostPerCall: 0.017})
	now := time.Now()
	tr.RecordCall(now)
	tr.RecordCall(now)
	spent, calls := tr.Snapshot(now)
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
	if spent < 0.033 || spent > 0.035 {
		t.Fatalf("expected ~0.034 spent, got %f", spent)
	}
}
