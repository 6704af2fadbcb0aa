package classifier

import (
	"testing"

	"ark/internal/searchintent"
)

func TestClassify_PlaceKeyword(t *testing.T) {
	in := Classify("pizza near me tonight", searchintent.UserContext{})
	if in.Kind != searchintent.KindPlace {
		t.Errorf("expected place kind, got %s", in.Kind)
	}
	if in.Location.Kind != searchintent.LocationNearMe {
		t.Errorf("expected near_me location, got %v", in.Location)
	}
	if in.TimeLabel != searchintent.TimeTonight {
		t.Errorf("expected tonight time label, got %s", in.TimeLabel)
	}
	if len(in.Categories) == 0 || in.Categories[0] != "food" {
		t.Errorf("expected food category, got %v", in.Categories)
	}
}

func TestClassify_EventKeyword(t *testing.T) {
	in := Classify("concerts this weekend", searchintent.UserContext{})
	if in.Kind != searchintent.KindEvent {
		t.Errorf("expected event kind, got %s", in.Kind)
	}
	if in.TimeLabel != searchintent.TimeWeekend {
		t.Errorf("expected weekend time label, got %s", in.TimeLabel)
	}
}

func TestClassify_BothKinds(t *testing.T) {
	in := Classify("pizza and a concert", searchintent.UserContext{})
	if in.Kind != searchintent.KindBoth {
		t.Errorf("expected both kind, got %s", in.Kind)
	}
}

func TestClassify_AbstractQueryLowConfidence(t *testing.T) {
	in := Classify("things to do", searchintent.UserContext{})
	if in.Kind != searchintent.KindBoth {
		t.Errorf("expected both kind for abstract query, got %s", in.Kind)
	}
	if in.Confidence > 0.5 {
		t.Errorf("expected low confidence for abstract query, got %f", in.Confidence)
	}
}

func TestClassify_NoSignalVeryLowConfidence(t *testing.T) {
	in := Classify("hello there", searchintent.UserContext{})
	if in.Confidence > 0.3 {
		t.Errorf("expected very low confidence for no-signal query, got %f", in.Confidence)
	}
}

func TestClassify_ZipLocation(t *testing.T) {
	in := Classify("restaurants in 10001", searchintent.UserContext{})
	if in.Location.Kind != searchintent.LocationZip || in.Location.Zip != "10001" {
		t.Errorf("expected zip location 10001, got %v", in.Location)
	}
}

func TestClassify_CityAlias(t *testing.T) {
	in := Classify("bars in nyc", searchintent.UserContext{})
	if in.Location.Kind != searchintent.LocationCity || in.Location.City != "New York" {
		t.Errorf("expected city New York, got %v", in.Location)
	}
}

func TestClassify_SpecificWeekday(t *testing.T) {
	in := Classify("dinner next friday", searchintent.UserContext{})
	if in.TimeLabel != searchintent.TimeSpecific || in.Weekday != "friday" {
		t.Errorf("expected specific friday, got %s/%s", in.TimeLabel, in.Weekday)
	}
}

func TestClassify_ConfidenceClampedToOne(t *testing.T) {
	in := Classify("lively pizza bars tonight near me", searchintent.UserContext{})
	if in.Confidence > 1.0 {
		t.Errorf("confidence must be clamped to 1.0, got %f", in.Confidence)
	}
}

func TestClassify_SingleTokenPenalty(t *testing.T) {
	in := Classify("pizza", searchintent.UserContext{})
	if in.Confidence >= 0.6 {
		t.Errorf("expected single-token penalty to lower confidence, got %f", in.Confidence)
	}
}

func TestClassify_NeverFails(t *testing.T) {
	for _, q := range []string{"", "   ", "???", "🍕🍕🍕"} {
		in := Classify(q, searchintent.UserContext{})
		if in.Confidence < 0 || in.Confidence > 1 {
			t.Errorf("confidence out of range for %q: %f", q, in.Confidence)
		}
	}
}
