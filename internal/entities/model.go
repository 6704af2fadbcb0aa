// README: Typed entity matches produced by the regex-based extractor
// (§4.4). Grounded on the plain-struct-plus-span convention used
// throughout the teacher's model.go files (e.g. order.Event's
// from/to/actor fields); here the "span" is the match's raw start/end
// offset into the original query.
package entities

// Span is a raw match's [start, end) byte offset into the input string.
type Span struct {
	Start int
	End   int
}

type DateMatch struct {
	Span
	Kind string // "tonight" | "today" | "tomorrow" | "weekend" | "week" | "month" | "relative_weekday" | "absolute"
	Weekday string // populated for "relative_weekday"
	Month, Day, Year int // populated for "absolute" (Year 0 if omitted)
}

type TimeMatch struct {
	Span
	Kind string // "happy_hour" | "after_work" | "brunch" | "late_night" | "morning" | "afternoon" | "evening" | "absolute"
	Hour, Minute int // populated for "absolute", 24h
}

type LocationMatch struct {
	Span
	Kind string // "proximity" | "neighborhood" | "zip" | "city"
	Value string
}

type PriceMatch struct {
	Span
	Kind string // "free" | "under" | "symbol_count" | "range"
	Under float64 // populated for "under"
	SymbolCount int // populated for "symbol_count"
	Min, Max float64 // populated for "range"
}

type DistanceMatch struct {
	Span
	Miles float64
}

// GroupSizeMatch captures a social-context phrase mapped to a group size.
type GroupSizeMatch struct {
	Span
	GroupSize string // solo | date | small_group | large_group
}

// Extraction is the full set of typed matches pulled from one query.
type Extraction struct {
	Dates       []DateMatch
	Times       []TimeMatch
	Locations   []LocationMatch
	Prices      []PriceMatch
	Distances   []DistanceMatch
	GroupSizes  []GroupSizeMatch
}

// HasTimeSensitivity reports whether any date or time entity was found.
func (e Extraction) HasTimeSensitivity() bool {
	return len(e.Dates) > 0 || len(e.Times) > 0
}

// HasLocationSpecificity reports whether any location entity was found.
func (e Extraction) HasLocationSpecificity() bool {
	return len(e.Locations) > 0
}

// BudgetLevel derives a coarse budget label from the extracted price
// matches, or "" if none were found.
func (e Extraction) BudgetLevel() string {
	if len(e.Prices) == 0 {
		return ""
	}
	for _, p := range e.Prices {
		if p.Kind == "free" {
			return "free"
		}
	}
	for _, p := range e.Prices {
		switch p.Kind {
		case "under":
			if p.Under <= 15 {
				return "budget"
			}
			if p.Under <= 50 {
				return "moderate"
			}
			return "upscale"
		case "symbol_count":
			switch {
			case p.SymbolCount <= 1:
				return "budget"
			case p.SymbolCount == 2:
				return "moderate"
			default:
				return "upscale"
			}
		case "range":
			mid := (p.Min + p.Max) / 2
			switch {
			case mid <= 15:
				return "budget"
			case mid <= 50:
				return "moderate"
			default:
				return "upscale"
			}
		}
	}
	return ""
}

// DistanceConstraintMiles returns the minimum distance constraint in
// miles when multiple distance matches are present, and whether any
// were found at all.
func (e Extraction) DistanceConstraintMiles() (float64, bool) {
	if len(e.Distances) == 0 {
		return 0, false
	}
	min := e.Distances[0].Miles
	for _, d := range e.Distances[1:] {
		if d.Miles < min {
			min = d.Miles
		}
	}
	return min, true
}
