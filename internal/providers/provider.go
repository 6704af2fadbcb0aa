// README: Provider-facing contracts the Executor fans out to. Grounded on
// maps.PlacesService's single-client-wrapped-in-a-method shape, split
// into two narrow interfaces so places and events can be swapped, mocked,
// or circuit-broken independently.
package providers

import (
	"context"
	"time"

	"ark/internal/catalog"
)

// PlacesQuery is a resolved places request built by the planner/resolver.
type PlacesQuery struct {
	Lat, Lng   float64
	RadiusM    int
	Keyword    string
	Types      []string
	MaxResults int
}

// EventsQuery is a resolved events request built by the planner/resolver.
type EventsQuery struct {
	Lat, Lng    float64
	RadiusMi    float64
	Keyword     string
	Category    string
	WindowStart time.Time
	WindowEnd   time.Time
	HasWindow   bool
	MaxResults  int
}

// PlacesProvider returns places near a location. Implementations never
// return an error to mean "nothing found" — use an empty slice; error is
// reserved for actual transport/provider failures the Executor's circuit
// breaker and cost optimizer need to see.
type PlacesProvider interface {
	SearchPlaces(ctx context.Context, q PlacesQuery) ([]catalog.Result, error)
}

// EventsProvider returns events near a location within a time window.
type EventsProvider interface {
	SearchEvents(ctx context.Context, q EventsQuery) ([]catalog.Result, error)
}
