// README: Provider Plan Builder (§4.5). Pure function, never fails:
// internal inconsistency degrades to "places only, 5km, 20 results".
// Grounded on pricing.Service.Estimate's cascading-rule-to-struct style,
// generalized from a fee breakdown to a provider routing decision.
package planner

import "ark/internal/searchintent"

var categoryPlaceTypes = map[string][]string{
	"food":      {"restaurant", "cafe"},
	"nightlife": {"bar", "night_club"},
	"art":       {"museum", "art_gallery"},
	"history":   {"museum", "tourist_attraction"},
	"fitness":   {"gym"},
	"outdoor":   {"park", "tourist_attraction"},
}

var majorCityHints = map[string]bool{
	"New York": true, "Los Angeles": true, "Chicago": true,
	"San Francisco": true, "Boston": true, "Seattle": true,
}

const fallbackPlacesRadiusM = 5000
const fallbackPlacesMax = 20

// BuildPlan derives the routing decision for intent. Never fails.
func BuildPlan(intent searchintent.SearchIntent) ProviderPlan {
	plan, ok := buildPlan(intent)
	if !ok {
		return ProviderPlan{Places: PlacesPlan{Enabled: true, RadiusM: fallbackPlacesRadiusM, MaxResults: fallbackPlacesMax}}
	}
	return plan
}

func buildPlan(intent searchintent.SearchIntent) (plan ProviderPlan, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	isEmpty := len(intent.Keywords) == 0 && onlyOtherCategory(intent.Categories) && intent.TimeLabel == searchintent.TimeNone && intent.Location.Kind == searchintent.LocationUnknown

	placesOn, eventsOn, eventsTimeOnly := routeProviders(intent, isEmpty)

	placesRadius, placesMax := placesCaps(intent, isEmpty)
	eventsRadius, eventsMax := eventsCaps(intent, isEmpty)
	if eventsTimeOnly {
		if eventsRadius > 15 {
			eventsRadius = 15
		}
		if eventsMax > 25 {
			eventsMax = 25
		}
	}

	if !placesOn && !eventsOn {
		placesOn = true
	}

	return ProviderPlan{
		Places: PlacesPlan{
			Enabled:    placesOn,
			RadiusM:    placesRadius,
			MaxResults: placesMax,
			Types:      placeTypesFor(intent.Categories),
		},
		Events: EventsPlan{
			Enabled:    eventsOn,
			RadiusMi:   eventsRadius,
			MaxResults: eventsMax,
			TimeOnly:   eventsTimeOnly,
		},
	}, true
}

func onlyOtherCategory(categories []string) bool {
	for _, c := range categories {
		if c != "other" {
			return false
		}
	}
	return true
}

func hasEventSignal(intent searchintent.SearchIntent) bool {
	if intent.Kind == searchintent.KindEvent {
		return true
	}
	for _, c := range intent.Categories {
		if c == "music" {
			return true
		}
	}
	for _, k := range intent.Keywords {
		if isEventKeyword(k) {
			return true
		}
	}
	return false
}

func isEventKeyword(k string) bool {
	switch k {
	case "concert", "festival", "karaoke", "trivia", "comedy", "market", "theater", "sports":
		return true
	}
	return false
}

func hasPlaceSignal(intent searchintent.SearchIntent) bool {
	if intent.Kind == searchintent.KindPlace {
		return true
	}
	for _, k := range intent.Keywords {
		if !isEventKeyword(k) {
			return true
		}
	}
	return false
}

func isMixedOrAbstract(intent searchintent.SearchIntent) bool {
	if intent.Kind == searchintent.KindBoth {
		return true
	}
	for _, c := range intent.Categories {
		if c == "social" || c == "nightlife" {
			return true
		}
	}
	return false
}

func routeProviders(intent searchintent.SearchIntent, isEmpty bool) (placesOn, eventsOn, eventsTimeOnly bool) {
	if isEmpty {
		return true, true, false
	}

	timeOnly := intent.TimeLabel != searchintent.TimeNone && !hasEventSignal(intent)
	if intent.TimeLabel != searchintent.TimeNone {
		eventsOn = true
		eventsTimeOnly = timeOnly
	}

	switch {
	case intent.Confidence < 0.4:
		if hasEventSignal(intent) && !hasPlaceSignal(intent) {
			return false, true, eventsTimeOnly
		}
		return true, false, false

	case intent.Confidence >= 0.7:
		switch {
		case isMixedOrAbstract(intent):
			return true, true, eventsTimeOnly
		case intent.Kind == searchintent.KindPlace:
			return true, eventsOn, eventsTimeOnly
		case intent.Kind == searchintent.KindEvent:
			return placesOn, true, eventsTimeOnly
		default:
			return true, true, eventsTimeOnly
		}

	default: // medium confidence
		switch {
		case isMixedOrAbstract(intent):
			return true, true, eventsTimeOnly
		case hasEventSignal(intent) && !hasPlaceSignal(intent):
			return placesOn, true, eventsTimeOnly
		case hasPlaceSignal(intent) && !hasEventSignal(intent):
			return true, eventsOn, eventsTimeOnly
		default:
			return true, eventsOn, eventsTimeOnly
		}
	}
}

func placesCaps(intent searchintent.SearchIntent, isEmpty bool) (radiusM float64, max int) {
	if isEmpty {
		return 3000, 25
	}
	switch {
	case hasCategory(intent.Categories, "nightlife"):
		radiusM = 2500
	case hasCategory(intent.Categories, "social"):
		radiusM = 3000
	case intent.Confidence < 0.4:
		radiusM = 4000
	default:
		radiusM = 5000
	}

	switch {
	case intent.Confidence < 0.4:
		max = 20
	case intent.Confidence >= 0.7:
		max = 40
	default:
		max = 30
	}
	return radiusM, max
}

func eventsCaps(intent searchintent.SearchIntent, isEmpty bool) (radiusMi float64, max int) {
	if isEmpty {
		return 15, 25
	}
	switch {
	case intent.Location.Kind == searchintent.LocationCity && majorCityHints[intent.Location.City]:
		radiusMi = 35
	case intent.Confidence < 0.4:
		radiusMi = 15
	default:
		radiusMi = 25
	}

	switch {
	case intent.Confidence < 0.4:
		max = 25
	case intent.Confidence >= 0.7:
		max = 50
	default:
		max = 40
	}
	return radiusMi, max
}

func placeTypesFor(categories []string) []string {
	var types []string
	for _, c := range categories {
		if ts, ok := categoryPlaceTypes[c]; ok {
			types = append(types, ts...)
			if len(types) >= 3 {
				return types[:3]
			}
		}
	}
	return types
}

func hasCategory(categories []string, want string) bool {
	for _, c := range categories {
		if c == want {
			return true
		}
	}
	return false
}
