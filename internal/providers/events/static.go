// README: Events provider (§4.7, §9). No ticketing SDK appears anywhere
// in the retrieved corpus to ground a third-party client on, so this is
// a deterministic in-memory catalog filtered by location/window/keyword,
// standing in for a ticketing API's normalized response shape. Grounded
// on geocode.StaticResolver's closed in-memory lookup-table pattern.
package events

import (
	"context"
	"strings"
	"time"

	"ark/internal/catalog"
	"ark/internal/geo"
	"ark/internal/providers"
)

type seedEvent struct {
	id, title, venue, category string
	lat, lng                   float64
	start                      time.Time
	durationHours              float64
	free                       bool
	priceMin, priceMax         float64
}

// StaticProvider implements providers.EventsProvider from a fixed seed
// list, useful for local development and tests without network access.
type StaticProvider struct {
	now   func() time.Time
	seeds []seedEvent
}

// NewStaticProvider builds a provider seeded with a small fixed catalog
// anchored relative to nowFn so seed events stay "upcoming" over time.
func NewStaticProvider(nowFn func() time.Time) *StaticProvider {
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()
	return &StaticProvider{
		now: nowFn,
		seeds: []seedEvent{
			{id: "evt-jazz-1", title: "Late Night Jazz Jam", venue: "Blue Room Lounge", category: "music", lat: 40.7308, lng: -73.9973, start: now.Add(5 * time.Hour), durationHours: 3, free: false, priceMin: 15, priceMax: 25},
			{id: "evt-trivia-1", title: "Neighborhood Trivia Night", venue: "Corner Tavern", category: "social", lat: 40.7295, lng: -73.9965, start: now.Add(7 * time.Hour), durationHours: 2, free: true},
			{id: "evt-art-1", title: "Gallery Opening: Local Artists", venue: "Storefront Gallery", category: "art", lat: 40.7321, lng: -73.9980, start: now.Add(30 * time.Hour), durationHours: 3, free: true},
			{id: "evt-market-1", title: "Weekend Farmers Market", venue: "Main Street Plaza", category: "outdoor", lat: 40.7280, lng: -73.9950, start: nextSaturdayMorning(now), durationHours: 5, free: true},
			{id: "evt-comedy-1", title: "Open Mic Comedy", venue: "The Laugh Cellar", category: "nightlife", lat: 40.7315, lng: -73.9990, start: now.Add(4 * time.Hour), durationHours: 2, free: false, priceMin: 10, priceMax: 10},
		},
	}
}

func nextSaturdayMorning(from time.Time) time.Time {
	daysAhead := (int(time.Saturday) - int(from.Weekday()) + 7) % 7
	if daysAhead == 0 {
		daysAhead = 7
	}
	d := from.AddDate(0, 0, daysAhead)
	return time.Date(d.Year(), d.Month(), d.Day(), 9, 0, 0, 0, d.Location())
}

// SearchEvents filters the seed catalog by radius, optional window, and
// optional keyword/category. Never errors.
func (p *StaticProvider) SearchEvents(_ context.Context, q providers.EventsQuery) ([]catalog.Result, error) {
	radiusM := q.RadiusMi * 1609.34
	results := make([]catalog.Result, 0, len(p.seeds))

	for _, s := range p.seeds {
		if geo.HaversineM(q.Lat, q.Lng, s.lat, s.lng) > radiusM {
			continue
		}
		end := s.start.Add(time.Duration(s.durationHours * float64(time.Hour)))
		if q.HasWindow && (end.Before(q.WindowStart) || s.start.After(q.WindowEnd)) {
			continue
		}
		if q.Keyword != "" && !matchesKeyword(s, q.Keyword) {
			continue
		}
		if q.Category != "" && !strings.EqualFold(s.category, q.Category) {
			continue
		}
		results = append(results, toCatalogResult(s, end))
	}

	if q.MaxResults > 0 && len(results) > q.MaxResults {
		results = results[:q.MaxResults]
	}
	return results, nil
}

func matchesKeyword(s seedEvent, keyword string) bool {
	kw := strings.ToLower(keyword)
	return strings.Contains(strings.ToLower(s.title), kw) || strings.Contains(strings.ToLower(s.category), kw)
}

func toCatalogResult(s seedEvent, end time.Time) catalog.Result {
	attrs := catalog.EventAttrs{Start: s.start, End: end, HasWindow: true, Venue: s.venue, Free: s.free}
	return catalog.Result{
		ID:         s.id,
		Type:       catalog.ResultEvent,
		Title:      s.title,
		Category:   catalog.Category(s.category),
		Point:      catalog.Point{Lat: s.lat, Lng: s.lng},
		Event:      attrs,
		DeepLink:   "https://example-tickets.local/events/" + s.id,
		SourceTags: []string{"static_events"},
	}
}
