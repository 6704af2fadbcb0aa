// README: Deterministic regex-based Entity Extractor (§4.4). Never fails:
// an input with no recognizable entities yields a zero-valued
// Extraction. Grounded on internal/classifier's regex-cascade style,
// widened from single-label detection to multi-match extraction with
// raw spans.
package entities

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	namedDateRe     = regexp.MustCompile(`(?i)\b(tonight|today|tomorrow|weekend|week|month)\b`)
	relativeDateRe  = regexp.MustCompile(`(?i)\bnext\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	absoluteDateRe  = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?\b`)
	namedTimeRe     = regexp.MustCompile(`(?i)\b(happy hour|after work|brunch|late night|morning|afternoon|evening)\b`)
	absoluteTimeRe  = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
	proximityRe     = regexp.MustCompile(`(?i)\b(near me|nearby|close by|around here|around me|close to me)\b`)
	zipRe           = regexp.MustCompile(`\b(\d{5})\b`)
	inCityRe        = regexp.MustCompile(`(?i)\bin\s+([a-z][a-z\s]{2,30})\b`)
	freePriceRe     = regexp.MustCompile(`(?i)\bfree\b`)
	underPriceRe    = regexp.MustCompile(`(?i)\bunder\s*\$(\d+(?:\.\d+)?)\b`)
	symbolPriceRe   = regexp.MustCompile(`(\${1,4})(?:\s|$)`)
	rangePriceRe    = regexp.MustCompile(`\$?(\d+)\s*-\s*\$?(\d+)\b`)
	distanceRe      = regexp.MustCompile(`(?i)\bwithin\s+(\d+(?:\.\d+)?)\s*(miles?|mi|km|kilometers?|blocks?)\b`)
	walkingRe       = regexp.MustCompile(`(?i)\bwalking distance\b`)
	soloRe          = regexp.MustCompile(`(?i)\b(solo|by myself|just me|alone)\b`)
	dateRe          = regexp.MustCompile(`(?i)\b(date night|romantic|my (boyfriend|girlfriend|partner|date))\b`)
	smallGroupRe    = regexp.MustCompile(`(?i)\b(friends|small group|a few of us|couple of friends)\b`)
	largeGroupRe    = regexp.MustCompile(`(?i)\b(large group|big group|party of \d+|\d+\s*people)\b`)
)

var neighborhoodNames = []string{
	"downtown", "midtown", "uptown", "old town", "french quarter",
	"soho", "tribeca", "chinatown", "the loop", "capitol hill",
}

// kmToMiles converts kilometers to miles.
const kmToMiles = 0.621371

// blockToMiles approximates one city block as 0.05 miles.
const blockToMiles = 0.05

// Extract runs the full §4.4 regex cascade over a raw query.
func Extract(raw string) Extraction {
	var e Extraction

	e.Dates = append(e.Dates, extractNamedDates(raw)...)
	e.Dates = append(e.Dates, extractRelativeDates(raw)...)
	e.Dates = append(e.Dates, extractAbsoluteDates(raw)...)

	e.Times = append(e.Times, extractNamedTimes(raw)...)
	e.Times = append(e.Times, extractAbsoluteTimes(raw)...)

	e.Locations = append(e.Locations, extractProximity(raw)...)
	e.Locations = append(e.Locations, extractNeighborhoods(raw)...)
	e.Locations = append(e.Locations, extractZips(raw)...)
	e.Locations = append(e.Locations, extractCities(raw)...)

	e.Prices = append(e.Prices, extractPrices(raw)...)
	e.Distances = append(e.Distances, extractDistances(raw)...)
	e.GroupSizes = append(e.GroupSizes, extractGroupSizes(raw)...)

	return e
}

func extractNamedDates(raw string) []DateMatch {
	var out []DateMatch
	for _, m := range namedDateRe.FindAllStringSubmatchIndex(raw, -1) {
		out = append(out, DateMatch{
			Span: Span{Start: m[0], End: m[1]},
			Kind: strings.ToLower(raw[m[2]:m[3]]),
		})
	}
	return out
}

func extractRelativeDates(raw string) []DateMatch {
	var out []DateMatch
	for _, m := range relativeDateRe.FindAllStringSubmatchIndex(raw, -1) {
		out = append(out, DateMatch{
			Span:    Span{Start: m[0], End: m[1]},
			Kind:    "relative_weekday",
			Weekday: strings.ToLower(raw[m[2]:m[3]]),
		})
	}
	return out
}

func extractAbsoluteDates(raw string) []DateMatch {
	var out []DateMatch
	for _, m := range absoluteDateRe.FindAllStringSubmatchIndex(raw, -1) {
		month := atoiRange(raw[m[2]:m[3]])
		day := atoiRange(raw[m[4]:m[5]])
		year := 0
		if m[6] >= 0 {
			year = atoiRange(raw[m[6]:m[7]])
		}
		out = append(out, DateMatch{
			Span:  Span{Start: m[0], End: m[1]},
			Kind:  "absolute",
			Month: month,
			Day:   day,
			Year:  year,
		})
	}
	return out
}

func extractNamedTimes(raw string) []TimeMatch {
	var out []TimeMatch
	for _, m := range namedTimeRe.FindAllStringSubmatchIndex(raw, -1) {
		kind := strings.ToLower(strings.ReplaceAll(raw[m[2]:m[3]], " ", "_"))
		out = append(out, TimeMatch{Span: Span{Start: m[0], End: m[1]}, Kind: kind})
	}
	return out
}

func extractAbsoluteTimes(raw string) []TimeMatch {
	var out []TimeMatch
	for _, m := range absoluteTimeRe.FindAllStringSubmatchIndex(raw, -1) {
		hour := atoiRange(raw[m[2]:m[3]])
		minute := 0
		if m[4] >= 0 {
			minute = atoiRange(raw[m[4]:m[5]])
		}
		meridiem := strings.ToLower(raw[m[6]:m[7]])
		if meridiem == "pm" && hour != 12 {
			hour += 12
		}
		if meridiem == "am" && hour == 12 {
			hour = 0
		}
		out = append(out, TimeMatch{
			Span:   Span{Start: m[0], End: m[1]},
			Kind:   "absolute",
			Hour:   hour,
			Minute: minute,
		})
	}
	return out
}

func extractProximity(raw string) []LocationMatch {
	var out []LocationMatch
	for _, m := range proximityRe.FindAllStringSubmatchIndex(raw, -1) {
		out = append(out, LocationMatch{
			Span:  Span{Start: m[0], End: m[1]},
			Kind:  "proximity",
			Value: strings.ToLower(raw[m[0]:m[1]]),
		})
	}
	return out
}

func extractNeighborhoods(raw string) []LocationMatch {
	lower := strings.ToLower(raw)
	var out []LocationMatch
	for _, name := range neighborhoodNames {
		idx := strings.Index(lower, name)
		if idx >= 0 {
			out = append(out, LocationMatch{
				Span:  Span{Start: idx, End: idx + len(name)},
				Kind:  "neighborhood",
				Value: name,
			})
		}
	}
	return out
}

func extractZips(raw string) []LocationMatch {
	var out []LocationMatch
	for _, m := range zipRe.FindAllStringSubmatchIndex(raw, -1) {
		out = append(out, LocationMatch{
			Span:  Span{Start: m[0], End: m[1]},
			Kind:  "zip",
			Value: raw[m[2]:m[3]],
		})
	}
	return out
}

func extractCities(raw string) []LocationMatch {
	var out []LocationMatch
	for _, m := range inCityRe.FindAllStringSubmatchIndex(raw, -1) {
		out = append(out, LocationMatch{
			Span:  Span{Start: m[0], End: m[1]},
			Kind:  "city",
			Value: strings.TrimSpace(raw[m[2]:m[3]]),
		})
	}
	return out
}

func extractPrices(raw string) []PriceMatch {
	var out []PriceMatch

	if m := freePriceRe.FindStringIndex(raw); m != nil {
		out = append(out, PriceMatch{Span: Span{Start: m[0], End: m[1]}, Kind: "free"})
	}
	for _, m := range underPriceRe.FindAllStringSubmatchIndex(raw, -1) {
		v, _ := strconv.ParseFloat(raw[m[2]:m[3]], 64)
		out = append(out, PriceMatch{Span: Span{Start: m[0], End: m[1]}, Kind: "under", Under: v})
	}
	for _, m := range symbolPriceRe.FindAllStringSubmatchIndex(raw, -1) {
		symbols := raw[m[2]:m[3]]
		out = append(out, PriceMatch{Span: Span{Start: m[0], End: m[1]}, Kind: "symbol_count", SymbolCount: len(symbols)})
	}
	for _, m := range rangePriceRe.FindAllStringSubmatchIndex(raw, -1) {
		lo, _ := strconv.ParseFloat(raw[m[2]:m[3]], 64)
		hi, _ := strconv.ParseFloat(raw[m[4]:m[5]], 64)
		out = append(out, PriceMatch{Span: Span{Start: m[0], End: m[1]}, Kind: "range", Min: lo, Max: hi})
	}
	return out
}

func extractDistances(raw string) []DistanceMatch {
	var out []DistanceMatch
	for _, m := range distanceRe.FindAllStringSubmatchIndex(raw, -1) {
		v, _ := strconv.ParseFloat(raw[m[2]:m[3]], 64)
		unit := strings.ToLower(raw[m[4]:m[5]])
		miles := normalizeToMiles(v, unit)
		out = append(out, DistanceMatch{Span: Span{Start: m[0], End: m[1]}, Miles: miles})
	}
	if m := walkingRe.FindStringIndex(raw); m != nil {
		out = append(out, DistanceMatch{Span: Span{Start: m[0], End: m[1]}, Miles: 0.5})
	}
	return out
}

func normalizeToMiles(v float64, unit string) float64 {
	switch {
	case strings.HasPrefix(unit, "mi"):
		return v
	case strings.HasPrefix(unit, "km") || strings.HasPrefix(unit, "kilometer"):
		return v * kmToMiles
	case strings.HasPrefix(unit, "block"):
		return v * blockToMiles
	}
	return v
}

func extractGroupSizes(raw string) []GroupSizeMatch {
	var out []GroupSizeMatch
	if m := soloRe.FindStringIndex(raw); m != nil {
		out = append(out, GroupSizeMatch{Span: Span{Start: m[0], End: m[1]}, GroupSize: "solo"})
	}
	if m := dateRe.FindStringIndex(raw); m != nil {
		out = append(out, GroupSizeMatch{Span: Span{Start: m[0], End: m[1]}, GroupSize: "date"})
	}
	if m := largeGroupRe.FindStringIndex(raw); m != nil {
		out = append(out, GroupSizeMatch{Span: Span{Start: m[0], End: m[1]}, GroupSize: "large_group"})
	} else if m := smallGroupRe.FindStringIndex(raw); m != nil {
		out = append(out, GroupSizeMatch{Span: Span{Start: m[0], End: m[1]}, GroupSize: "small_group"})
	}
	return out
}

func atoiRange(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
