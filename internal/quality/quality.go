// README: Quality Enhancer (§4.10) — the final pass over ranked results:
// rating floor, open-now boost, per-category diversity cap with deferred
// reintroduction, and an overall quality assessment. Grounded on
// pricing.Service's closed-enum assessment-plus-hint output shape,
// generalized from a pricing tier to a search-quality tier.
package quality

import (
	"sort"

	"ark/internal/catalog"
)

const (
	// DefaultMinRating is the rating floor Enhance applies when
	// Options.MinRating is unset; exported so callers building
	// uxfeedback candidate pools can match it exactly.
	DefaultMinRating  = 3.5
	openNowBoost      = 1.3
	diversityCapRatio = 0.30
	// MinAcceptableResults is the §7 "acceptable floor" below which a
	// response is treated as zero/low-result and callers should surface
	// uxfeedback suggestions alongside it.
	MinAcceptableResults = 5
)

// Assessment is the closed quality taxonomy §4.10 names.
type Assessment string

const (
	Excellent  Assessment = "excellent"
	Good       Assessment = "good"
	Acceptable Assessment = "acceptable"
	Poor       Assessment = "poor"
)

// ActionHint suggests a caller-facing remediation when quality is low.
type ActionHint string

const (
	HintExpandRadius       ActionHint = "expand_radius"
	HintRelaxRatingFilter  ActionHint = "relax_rating_filter"
	HintBroadenQuery       ActionHint = "broaden_query"
)

// Options configures the enhancement pass; zero value uses spec defaults.
type Options struct {
	MinRating     float64 // 0 means use DefaultMinRating
	PreferOpenNow bool
}

// Report carries the post-enhancement assessment and any action hints.
type Report struct {
	Assessment Assessment
	Hints      []ActionHint
	Deferred   int // count of results moved to the deferred list and not reintroduced
}

// Enhance filters, boosts, diversity-caps, and re-sorts results, returning
// the final list plus a quality report.
func Enhance(results []catalog.Result, opts Options) ([]catalog.Result, Report) {
	minRating := opts.MinRating
	if minRating <= 0 {
		minRating = DefaultMinRating
	}

	filtered := filterByRating(results, minRating)

	if opts.PreferOpenNow {
		boostOpenNow(filtered)
	}

	capped, deferred := applyDiversityCap(filtered)
	capped = reintroduceDeferred(capped, deferred, MinAcceptableResults)

	sort.SliceStable(capped, func(i, j int) bool { return capped[i].Score > capped[j].Score })

	assessment, hints := assess(capped)
	return capped, Report{Assessment: assessment, Hints: hints, Deferred: len(deferred) - countReintroduced(capped, deferred)}
}

func filterByRating(results []catalog.Result, minRating float64) []catalog.Result {
	out := make([]catalog.Result, 0, len(results))
	for _, r := range results {
		if r.Type == catalog.ResultEvent || !r.Place.HasRating || r.Place.Rating >= minRating {
			out = append(out, r)
		}
	}
	return out
}

func boostOpenNow(results []catalog.Result) {
	for i := range results {
		if results[i].Place.OpenNow != nil && *results[i].Place.OpenNow {
			results[i].Score *= openNowBoost
		}
	}
}

// applyDiversityCap enforces no single category exceeding diversityCapRatio
// of the list, in score order, moving overflow to a deferred list.
func applyDiversityCap(results []catalog.Result) (kept []catalog.Result, deferred []catalog.Result) {
	if len(results) == 0 {
		return results, nil
	}
	ordered := append([]catalog.Result(nil), results...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Score > ordered[j].Score })

	capN := int(float64(len(ordered))*diversityCapRatio + 0.999)
	if capN < 1 {
		capN = 1
	}
	counts := map[catalog.Category]int{}

	for _, r := range ordered {
		if counts[r.Category] < capN {
			kept = append(kept, r)
			counts[r.Category]++
		} else {
			deferred = append(deferred, r)
		}
	}
	return kept, deferred
}

// reintroduceDeferred adds back deferred results, best-rating first, only
// while the kept list remains below the minimum acceptable size.
func reintroduceDeferred(kept, deferred []catalog.Result, target int) []catalog.Result {
	if len(kept) >= target || len(deferred) == 0 {
		return kept
	}
	ordered := append([]catalog.Result(nil), deferred...)
	sort.SliceStable(ordered, func(i, j int) bool { return ratingOf(ordered[i]) > ratingOf(ordered[j]) })

	for _, r := range ordered {
		if len(kept) >= target {
			break
		}
		kept = append(kept, r)
	}
	return kept
}

func ratingOf(r catalog.Result) float64 {
	if r.Place.HasRating {
		return r.Place.Rating
	}
	return 0
}

func countReintroduced(kept, deferred []catalog.Result) int {
	deferredIDs := map[string]bool{}
	for _, r := range deferred {
		deferredIDs[r.ID] = true
	}
	n := 0
	for _, r := range kept {
		if deferredIDs[r.ID] {
			n++
		}
	}
	return n
}

func assess(results []catalog.Result) (Assessment, []ActionHint) {
	if len(results) == 0 {
		return Poor, []ActionHint{HintExpandRadius, HintRelaxRatingFilter, HintBroadenQuery}
	}

	avgRating, rated := 0.0, 0
	for _, r := range results {
		if r.Place.HasRating {
			avgRating += r.Place.Rating
			rated++
		}
	}
	if rated > 0 {
		avgRating /= float64(rated)
	}

	switch {
	case len(results) >= 15 && avgRating >= 4.2:
		return Excellent, nil
	case len(results) >= 10 && avgRating >= 3.8:
		return Good, nil
	case len(results) >= 5:
		return Acceptable, nil
	default:
		return Poor, []ActionHint{HintExpandRadius, HintBroadenQuery}
	}
}
