// README: ProviderPlan and ResolvedPlan — the pure routing decision (§4.5)
// and its location/time resolution (§4.6). Grounded on the same
// plain-struct convention as searchintent.SearchIntent.
package planner

import "time"

// PlacesPlan is the routing decision for the places provider.
type PlacesPlan struct {
	Enabled   bool
	RadiusM   float64
	MaxResults int
	Types     []string // at most 3, derived from category priority
}

// EventsPlan is the routing decision for the events provider.
type EventsPlan struct {
	Enabled    bool
	RadiusMi   float64
	MaxResults int
	// TimeOnly marks that events were enabled only because of time
	// context, not an explicit event signal, so caps get clamped.
	TimeOnly bool
}

// ProviderPlan is the deterministic routing decision for a single query
// (§4.5). Pure value; never carries an error.
type ProviderPlan struct {
	Places PlacesPlan
	Events EventsPlan
}

// ResolvedPlan adds a concrete location and, for time-sensitive event
// queries, an absolute UTC date window (§4.6).
type ResolvedPlan struct {
	ProviderPlan
	Lat, Lng float64
	Resolved bool // false only when location resolution fell through to the (0,0) sentinel
	Notes    []string
	WindowStart, WindowEnd time.Time
	HasWindow bool
}
