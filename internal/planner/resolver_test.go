package planner

import (
	"context"
	"testing"
	"time"

	"ark/internal/geocode"
	"ark/internal/searchintent"
)

func TestResolve_NearMeWithLocation(t *testing.T) {
	intent := searchintent.SearchIntent{Location: searchintent.LocationHint{Kind: searchintent.LocationNearMe}}
	userCtx := searchintent.UserContext{HasLocation: true, Lat: 40.7, Lng: -74.0, Now: time.Now()}
	resolved := Resolve(context.Background(), ProviderPlan{}, intent, userCtx, nil)
	if !resolved.Resolved || resolved.Lat != 40.7 {
		t.Fatalf("expected resolved near-me location, got %+v", resolved)
	}
}

func TestResolve_NearMeWithoutLocationSentinel(t *testing.T) {
	intent := searchintent.SearchIntent{Location: searchintent.LocationHint{Kind: searchintent.LocationNearMe}}
	userCtx := searchintent.UserContext{HasLocation: false, Now: time.Now()}
	resolved := Resolve(context.Background(), ProviderPlan{}, intent, userCtx, nil)
	if resolved.Resolved || resolved.Lat != 0 || resolved.Lng != 0 {
		t.Fatalf("expected sentinel, got %+v", resolved)
	}
}

func TestResolve_ZipLookup(t *testing.T) {
	resolver := geocode.NewStaticResolver()
	intent := searchintent.SearchIntent{Location: searchintent.LocationHint{Kind: searchintent.LocationZip, Zip: "10001"}}
	resolved := Resolve(context.Background(), ProviderPlan{}, intent, searchintent.UserContext{Now: time.Now()}, resolver)
	if !resolved.Resolved {
		t.Fatalf("expected zip resolved, got %+v", resolved)
	}
}

func TestResolve_CityFallbackToUserLocation(t *testing.T) {
	resolver := geocode.NewStaticResolver()
	intent := searchintent.SearchIntent{Location: searchintent.LocationHint{Kind: searchintent.LocationCity, City: "Nowhere Land"}}
	userCtx := searchintent.UserContext{HasLocation: true, Lat: 1, Lng: 2, Now: time.Now()}
	resolved := Resolve(context.Background(), ProviderPlan{}, intent, userCtx, resolver)
	if !resolved.Resolved || resolved.Lat != 1 {
		t.Fatalf("expected fallback to user location, got %+v", resolved)
	}
}

func TestResolve_TimeWindowTonight(t *testing.T) {
	now := time.Date(2026, 7, 29, 14, 0, 0, 0, time.UTC)
	intent := searchintent.SearchIntent{
		TimeLabel: searchintent.TimeTonight,
		RawQuery:  "dinner tonight",
	}
	plan := ProviderPlan{Events: EventsPlan{Enabled: true}}
	resolved := Resolve(context.Background(), plan, intent, searchintent.UserContext{Now: now, Timezone: "UTC"}, nil)
	if !resolved.HasWindow {
		t.Fatal("expected time window computed")
	}
	if resolved.WindowStart.After(resolved.WindowEnd) {
		t.Fatalf("expected start before end, got %v -> %v", resolved.WindowStart, resolved.WindowEnd)
	}
}

func TestResolve_TimeWindowWeekend(t *testing.T) {
	now := time.Date(2026, 7, 29, 14, 0, 0, 0, time.UTC) // Wednesday
	intent := searchintent.SearchIntent{TimeLabel: searchintent.TimeWeekend}
	plan := ProviderPlan{Events: EventsPlan{Enabled: true}}
	resolved := Resolve(context.Background(), plan, intent, searchintent.UserContext{Now: now, Timezone: "UTC"}, nil)
	if !resolved.HasWindow {
		t.Fatal("expected weekend window computed")
	}
	if resolved.WindowStart.Weekday() != time.Saturday {
		t.Fatalf("expected window start on Saturday, got %v", resolved.WindowStart.Weekday())
	}
}

func TestResolve_SpecificWeekdayNightNarrowsWindow(t *testing.T) {
	now := time.Date(2026, 7, 29, 14, 0, 0, 0, time.UTC)
	intent := searchintent.SearchIntent{
		TimeLabel: searchintent.TimeSpecific,
		Weekday:   "friday",
		RawQuery:  "dinner friday night",
	}
	plan := ProviderPlan{Events: EventsPlan{Enabled: true}}
	resolved := Resolve(context.Background(), plan, intent, searchintent.UserContext{Now: now, Timezone: "UTC"}, nil)
	if !resolved.HasWindow {
		t.Fatal("expected window computed")
	}
	if resolved.WindowStart.Hour() != 18 {
		t.Fatalf("expected window to start at 18:00 for night-narrowed query, got %v", resolved.WindowStart)
	}
}

func TestResolve_NoEventsNoTimeWindow(t *testing.T) {
	intent := searchintent.SearchIntent{TimeLabel: searchintent.TimeTonight}
	plan := ProviderPlan{Events: EventsPlan{Enabled: false}}
	resolved := Resolve(context.Background(), plan, intent, searchintent.UserContext{Now: time.Now(), Timezone: "UTC"}, nil)
	if resolved.HasWindow {
		t.Fatal("expected no time window when events disabled")
	}
}
