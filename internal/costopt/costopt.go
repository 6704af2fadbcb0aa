// README: In-process daily budget tracker, one per named dependency
// (AI model, places provider, events provider). Grounded on
// aiusage.Store.UseToken's calendar-period-rollover-and-deduct SQL
// pattern, ported to an in-memory mutex-guarded counter since the cost
// envelope (§4.3, §4.7) is explicitly an in-process concern, not a
// persisted one.
package costopt

import (
	"sync"
	"time"
)

// Budget is one dependency's daily cap: a USD ceiling and, optionally, a
// hard call-count ceiling (used by the AI model's $5-and-500-calls rule).
type Budget struct {
	DailyCapUSD float64
	CallCap     int // 0 means no call-count ceiling, only the USD cap applies
	CostPerCall float64
}

type dayCounter struct {
	day       string
	spentUSD  float64
	callCount int
}

// Tracker enforces a Budget against a running in-process counter that
// resets at calendar-day rollover in the process timezone.
type Tracker struct {
	mu     sync.Mutex
	budget Budget
	day    dayCounter
}

// NewTracker returns a Tracker for budget, with the day counter seeded
// lazily on first use.
func NewTracker(budget Budget) *Tracker {
	return &Tracker{budget: budget}
}

// Allow reports whether one more call of cost budget.CostPerCall fits
// under today's remaining envelope, without recording it.
func (t *Tracker) Allow(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollIfNeeded(now)

	if t.budget.CallCap > 0 && t.day.callCount >= t.budget.CallCap {
		return false
	}
	projected := t.day.spentUSD + t.budget.CostPerCall
	return projected <= t.budget.DailyCapUSD
}

// RecordCall records one call's cost against today's counter. Call only
// after Allow returned true and the call was actually attempted.
func (t *Tracker) RecordCall(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollIfNeeded(now)
	t.day.spentUSD += t.budget.CostPerCall
	t.day.callCount++
}

// Snapshot returns today's spend and call count for observability.
func (t *Tracker) Snapshot(now time.Time) (spentUSD float64, callCount int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollIfNeeded(now)
	return t.day.spentUSD, t.day.callCount
}

func (t *Tracker) rollIfNeeded(now time.Time) {
	today := dayKey(now)
	if t.day.day != today {
		t.day = dayCounter{day: today}
	}
}

func dayKey(now time.Time) string {
	return now.Format("2006-01-02")
}
