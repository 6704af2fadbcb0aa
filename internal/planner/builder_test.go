package planner

import (
	"testing"

	"ark/internal/searchintent"
)

func TestBuildPlan_EmptyQueryBrowseMode(t *testing.T) {
	plan := BuildPlan(searchintent.SearchIntent{Categories: []string{"other"}, Location: searchintent.LocationHint{Kind: searchintent.LocationUnknown}})
	if !plan.Places.Enabled || !plan.Events.Enabled {
		t.Fatalf("expected both providers in browse mode, got %+v", plan)
	}
	if plan.Places.RadiusM != 3000 || plan.Places.MaxResults != 25 {
		t.Fatalf("expected browse-mode places caps, got %+v", plan.Places)
	}
	if plan.Events.RadiusMi != 15 || plan.Events.MaxResults != 25 {
		t.Fatalf("expected browse-mode events caps, got %+v", plan.Events)
	}
}

func TestBuildPlan_LowConfidenceEventSignalOnly(t *testing.T) {
	intent := searchintent.SearchIntent{
		Kind:       searchintent.KindEvent,
		Keywords:   []string{"concert"},
		Categories: []string{"music"},
		Confidence: 0.3,
	}
	plan := BuildPlan(intent)
	if plan.Places.Enabled || !plan.Events.Enabled {
		t.Fatalf("expected events-only routing, got %+v", plan)
	}
}

func TestBuildPlan_LowConfidenceNoEventSignalDefaultsPlaces(t *testing.T) {
	intent := searchintent.SearchIntent{
		Kind:       searchintent.KindPlace,
		Keywords:   []string{"pizza"},
		Categories: []string{"food"},
		Confidence: 0.3,
	}
	plan := BuildPlan(intent)
	if !plan.Places.Enabled || plan.Events.Enabled {
		t.Fatalf("expected places-only routing, got %+v", plan)
	}
}

func TestBuildPlan_HighConfidenceMixedBoth(t *testing.T) {
	intent := searchintent.SearchIntent{
		Kind:       searchintent.KindBoth,
		Categories: []string{"nightlife"},
		Confidence: 0.8,
	}
	plan := BuildPlan(intent)
	if !plan.Places.Enabled || !plan.Events.Enabled {
		t.Fatalf("expected both enabled for mixed/high confidence, got %+v", plan)
	}
}

func TestBuildPlan_HighConfidencePlaceOnly(t *testing.T) {
	intent := searchintent.SearchIntent{
		Kind:       searchintent.KindPlace,
		Categories: []string{"food"},
		Keywords:   []string{"pizza"},
		Confidence: 0.9,
	}
	plan := BuildPlan(intent)
	if !plan.Places.Enabled || plan.Events.Enabled {
		t.Fatalf("expected places-only at high confidence, got %+v", plan)
	}
}

func TestBuildPlan_NightlifeRadius(t *testing.T) {
	intent := searchintent.SearchIntent{
		Kind:       searchintent.KindPlace,
		Categories: []string{"nightlife"},
		Keywords:   []string{"bar"},
		Confidence: 0.9,
	}
	plan := BuildPlan(intent)
	if plan.Places.RadiusM != 2500 {
		t.Fatalf("expected nightlife radius 2500m, got %f", plan.Places.RadiusM)
	}
}

func TestBuildPlan_PlaceTypesCappedAtThree(t *testing.T) {
	intent := searchintent.SearchIntent{
		Kind:       searchintent.KindPlace,
		Categories: []string{"food", "nightlife", "art", "history"},
		Keywords:   []string{"x"},
		Confidence: 0.9,
	}
	plan := BuildPlan(intent)
	if len(plan.Places.Types) > 3 {
		t.Fatalf("expected at most 3 place types, got %v", plan.Places.Types)
	}
}

func TestBuildPlan_TimeOnlyEventsClampCaps(t *testing.T) {
	intent := searchintent.SearchIntent{
		Kind:       searchintent.KindPlace,
		Categories: []string{"food"},
		Keywords:   []string{"pizza"},
		TimeLabel:  searchintent.TimeTonight,
		Confidence: 0.9,
	}
	plan := BuildPlan(intent)
	if !plan.Events.TimeOnly {
		t.Fatal("expected events enabled time-only")
	}
	if plan.Events.RadiusMi > 15 || plan.Events.MaxResults > 25 {
		t.Fatalf("expected clamped time-only event caps, got %+v", plan.Events)
	}
}

func TestBuildPlan_NeverReturnsNeitherProvider(t *testing.T) {
	intent := searchintent.SearchIntent{Kind: searchintent.KindBoth, Confidence: 0.5}
	plan := BuildPlan(intent)
	if !plan.Places.Enabled && !plan.Events.Enabled {
		t.Fatal("expected at least one provider enabled")
	}
}
