package dedup

import (
	"testing"
	"time"

	"ark/internal/catalog"
)

func TestDedup_ExactIDMatchCollapses(t *testing.T) {
	results := []catalog.Result{
		{ID: "p1", Title: "Cafe A", Type: catalog.ResultPlace, Score: 0.5},
		{ID: "p1", Title: "Cafe A", Type: catalog.ResultPlace, Score: 0.8},
	}
	merged := Dedup(results)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged result, got %d", len(merged))
	}
	if merged[0].Score != 0.8 {
		t.Fatalf("expected max score 0.8, got %v", merged[0].Score)
	}
}

func TestDedup_DifferentTypeNeverCollapses(t *testing.T) {
	results := []catalog.Result{
		{ID: "a", Title: "Blue Note", Type: catalog.ResultPlace, Point: catalog.Point{Lat: 40.0, Lng: -74.0}},
		{ID: "b", Title: "Blue Note", Type: catalog.ResultEvent, Point: catalog.Point{Lat: 40.0, Lng: -74.0}},
	}
	merged := Dedup(results)
	if len(merged) != 2 {
		t.Fatalf("expected 2 distinct results, got %d", len(merged))
	}
}

func TestDedup_FuzzyNameAndCloseDistanceCollapses(t *testing.T) {
	results := []catalog.Result{
		{ID: "a", Title: "Joe's Pizza NYC", Type: catalog.ResultPlace, Point: catalog.Point{Lat: 40.730, Lng: -73.997}},
		{ID: "b", Title: "Joes Pizza NYC", Type: catalog.ResultPlace, Point: catalog.Point{Lat: 40.7301, Lng: -73.9971}},
	}
	merged := Dedup(results)
	if len(merged) != 1 {
		t.Fatalf("expected fuzzy-matching nearby results to collapse, got %d", len(merged))
	}
}

func TestDedup_DistantSameNameDoesNotCollapse(t *testing.T) {
	results := []catalog.Result{
		{ID: "a", Title: "Starbucks", Type: catalog.ResultPlace, Point: catalog.Point{Lat: 40.7, Lng: -74.0}},
		{ID: "b", Title: "Starbucks", Type: catalog.ResultPlace, Point: catalog.Point{Lat: 41.5, Lng: -75.0}},
	}
	merged := Dedup(results)
	if len(merged) != 2 {
		t.Fatalf("expected distant same-name results to stay distinct, got %d", len(merged))
	}
}

func TestDedup_AddressSimilarityCollapses(t *testing.T) {
	results := []catalog.Result{
		{ID: "a", Title: "Totally Different Name A", Type: catalog.ResultPlace, Address: "123 Main Street, Springfield"},
		{ID: "b", Title: "Totally Different Name B", Type: catalog.ResultPlace, Address: "123 Main Street, Springfeld"},
	}
	merged := Dedup(results)
	if len(merged) != 1 {
		t.Fatalf("expected address-similar results to collapse, got %d", len(merged))
	}
}

func TestDedup_EventSameVenueSameDateCollapses(t *testing.T) {
	start := time.Date(2026, 8, 1, 20, 0, 0, 0, time.UTC)
	results := []catalog.Result{
		{ID: "a", Title: "Jazz Night", Type: catalog.ResultEvent, Event: catalog.EventAttrs{Venue: "Blue Note Jazz Club", Start: start, HasWindow: true}},
		{ID: "b", Title: "Jazz Evening", Type: catalog.ResultEvent, Event: catalog.EventAttrs{Venue: "Blue Note Jazz Clubb", Start: start, HasWindow: true}},
	}
	merged := Dedup(results)
	if len(merged) != 1 {
		t.Fatalf("expected same-venue same-date events to collapse, got %d", len(merged))
	}
}

func TestDedup_MergePicksRichestAsPrimaryAndFillsGaps(t *testing.T) {
	results := []catalog.Result{
		{ID: "a", Title: "Cafe A", Type: catalog.ResultPlace, Address: "1 Main St"},
		{ID: "a", Title: "Cafe A", Type: catalog.ResultPlace, Place: catalog.PlaceAttrs{Rating: 4.5, HasRating: true, ReviewCount: 80}},
	}
	merged := Dedup(results)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged result, got %d", len(merged))
	}
	if merged[0].Address != "1 Main St" {
		t.Fatalf("expected address filled from sibling, got %q", merged[0].Address)
	}
	if !merged[0].Place.HasRating || merged[0].Place.Rating != 4.5 {
		t.Fatalf("expected rating filled from sibling, got %+v", merged[0].Place)
	}
}

func TestDedup_NoDuplicatesPassesThroughUnchanged(t *testing.T) {
	results := []catalog.Result{
		{ID: "a", Title: "Museum of Art", Type: catalog.ResultPlace, Point: catalog.Point{Lat: 40.0, Lng: -74.0}},
		{ID: "b", Title: "City Park Trail", Type: catalog.ResultPlace, Point: catalog.Point{Lat: 41.0, Lng: -75.0}},
	}
	merged := Dedup(results)
	if len(merged) != 2 {
		t.Fatalf("expected both distinct results preserved, got %d", len(merged))
	}
}

func TestSimilarity_IdenticalIsOne(t *testing.T) {
	if similarity("cafe", "cafe") != 1 {
		t.Fatal("expected identical strings to have similarity 1")
	}
}

func TestSimilarity_EmptyIsZero(t *testing.T) {
	if similarity("", "cafe") != 0 {
		t.Fatal("expected empty-vs-nonempty to have similarity 0")
	}
}
