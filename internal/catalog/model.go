// README: Unified place/event result shape returned by the search pipeline.
package catalog

import (
	"time"

	"ark/internal/types"
)

// ResultType distinguishes a place from an event within a single result list.
type ResultType string

const (
	ResultPlace ResultType = "place"
	ResultEvent ResultType = "event"
)

// Category is the closed macro taxonomy used for routing and ranking.
// Micro-categories (§9, open question) are additive strings carried
// alongside but never substitute for one of these in routing decisions.
type Category string

const (
	CategoryFood      Category = "food"
	CategoryNightlife Category = "nightlife"
	CategoryMusic     Category = "music"
	CategoryArt       Category = "art"
	CategoryHistory   Category = "history"
	CategoryFitness   Category = "fitness"
	CategoryOutdoor   Category = "outdoor"
	CategorySocial    Category = "social"
	CategoryOther     Category = "other"
)

// Point is a decimal-degree coordinate.
type Point struct {
	Lat float64
	Lng float64
}

// PhotoRef is either a directly usable URL or a provider-side resource name
// that an external photo proxy (out of scope here) must resolve.
type PhotoRef struct {
	URL          string
	ResourceName string
}

// PlaceAttrs holds the place-only optional attributes.
type PlaceAttrs struct {
	Rating           float64 // 0 when unknown
	HasRating        bool
	ReviewCount      int
	PriceLevel       int // 1-4, 0 = unknown
	OpenNow          *bool
	MicroCategories  []string
}

// EventAttrs holds the event-only optional attributes.
type EventAttrs struct {
	Start     time.Time
	End       time.Time
	HasWindow bool
	Venue     string
	Free      bool
	PriceMin  *types.Money
	PriceMax  *types.Money
}

// ScoreBreakdown carries the per-factor contribution the ranker computed,
// so callers can explain why a result ranked where it did.
type ScoreBreakdown struct {
	Proximity    float64
	Rating       float64
	Popularity   float64
	Novelty      float64
	Temporal     float64
	IntentMatch  float64
	Vibrancy     float64
	Independence float64
}

// Result is the unified, de-duplicated, scored search result.
type Result struct {
	ID         string
	Type       ResultType
	Title      string
	Category   Category
	Point      Point
	Address    string
	Place      PlaceAttrs
	Event      EventAttrs
	Photo      PhotoRef
	DeepLink   string
	DistanceM  float64
	Score      float64
	Reason     string
	Breakdown  ScoreBreakdown
	SourceTags []string // provider(s) this result was merged from
}

// SignificantFieldCount counts populated "significant" fields, used by the
// deduplicator to pick the richest cluster member as the primary record.
func (r Result) SignificantFieldCount() int {
	n := 0
	if r.Photo.URL != "" || r.Photo.ResourceName != "" {
		n++
	}
	if r.Place.HasRating {
		n++
	}
	if r.Place.ReviewCount > 0 {
		n++
	}
	if r.Place.PriceLevel > 0 {
		n++
	}
	if r.Address != "" {
		n++
	}
	if r.Place.OpenNow != nil {
		n++
	}
	if r.Event.Venue != "" {
		n++
	}
	if r.Event.HasWindow {
		n++
	}
	if r.Event.Free {
		n++
	}
	if r.Event.PriceMin != nil || r.Event.PriceMax != nil {
		n++
	}
	return n
}
