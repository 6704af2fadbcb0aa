// README: Never-empty fallback orchestration (§4.7). Grounded on
// pricing.Service's cascading-attempts-until-a-rule-fires control flow,
// generalized from a single pricing decision to a sequence of retry
// strategies that stop as soon as enough results materialize.
package executor

import (
	"context"
	"time"

	"ark/internal/catalog"
	"ark/internal/planner"
	"ark/internal/ranker"
	"ark/internal/searchintent"
)

// relatedCategories maps a keyword to alternative keywords worth trying
// when the exact term returns too little (§4.7 strategy 5).
var relatedCategories = map[string][]string{
	"sushi":  {"japanese", "asian", "seafood", "restaurant"},
	"jazz":   {"music", "live music", "lounge", "bar"},
	"pizza":  {"italian", "restaurant", "pizzeria"},
	"tacos":  {"mexican", "restaurant", "taqueria"},
	"coffee": {"cafe", "bakery", "breakfast"},
	"bar":    {"nightlife", "lounge", "pub"},
}

func (e *Executor) runFallbacks(ctx context.Context, intent searchintent.SearchIntent, userCtx searchintent.UserContext, resolved planner.ResolvedPlan, now time.Time, ranked []catalog.Result, attempts []AttemptRecord) ([]catalog.Result, []AttemptRecord) {
	attempt := func(strategy string, workingIntent searchintent.SearchIntent, workingResolved planner.ResolvedPlan) bool {
		results, _ := e.fetchBoth(ctx, workingResolved, workingIntent, now)
		merged := e.dedup(results)
		candidate := ranker.Rank(merged, e.rankingContext(workingIntent, userCtx, now))

		attempts = append(attempts, AttemptRecord{
			Strategy: strategy,
			Query:    workingIntent.RawQuery,
			RadiusM:  workingResolved.Places.RadiusM,
			Count:    len(candidate),
			Success:  len(candidate) >= acceptableMinResults,
		})

		if len(candidate) > len(ranked) {
			ranked = candidate
		}
		return len(ranked) >= acceptableMinResults
	}

	// 2. exact query, 2x radius.
	widened := widenRadius(resolved, 2)
	if attempt("2x_radius", intent, widened) {
		return ranked, attempts
	}

	// 3. exact query, 4x radius.
	widened = widenRadius(resolved, 4)
	if attempt("4x_radius", intent, widened) {
		return ranked, attempts
	}

	// 4. broadened query: drop modifiers/trailing category tokens.
	broadened := broadenIntent(intent)
	broadenedPlan := planner.BuildPlan(broadened)
	broadenedResolved := planner.Resolve(ctx, broadenedPlan, broadened, userCtx, e.Geocode)
	if attempt("broadened_query", broadened, broadenedResolved) {
		return ranked, attempts
	}

	// 5. related-category queries.
	if related, ok := relatedCategoryIntent(intent); ok {
		relatedPlan := planner.BuildPlan(related)
		relatedResolved := planner.Resolve(ctx, relatedPlan, related, userCtx, e.Geocode)
		if attempt("related_category", related, relatedResolved) {
			return ranked, attempts
		}
	}

	// 6. model-assisted rephrase, if available.
	if e.Rephrase != nil {
		if rephrased, ok := e.Rephrase(ctx, intent.RawQuery); ok {
			rephrasedPlan := planner.BuildPlan(rephrased)
			rephrasedResolved := planner.Resolve(ctx, rephrasedPlan, rephrased, userCtx, e.Geocode)
			if attempt("model_rephrase", rephrased, rephrasedResolved) {
				return ranked, attempts
			}
		}
	}

	// 7. ultimate: empty query at max radius; whatever it returns is final.
	empty := searchintent.SearchIntent{
		Kind: searchintent.KindBoth, RawQuery: "what's happening",
		Location: intent.Location, TimeLabel: intent.TimeLabel, Weekday: intent.Weekday,
	}
	emptyPlan := planner.ProviderPlan{
		Places: planner.PlacesPlan{Enabled: true, RadiusM: maxFallbackRadiusM, MaxResults: 40},
		Events: planner.EventsPlan{Enabled: true, RadiusMi: maxFallbackRadiusMi, MaxResults: 50},
	}
	emptyResolved := planner.Resolve(ctx, emptyPlan, empty, userCtx, e.Geocode)
	attempt("empty_query_max_radius", empty, emptyResolved)

	return ranked, attempts
}

func widenRadius(resolved planner.ResolvedPlan, factor float64) planner.ResolvedPlan {
	widened := resolved
	widened.Places.RadiusM = capFloat(resolved.Places.RadiusM*factor, maxFallbackRadiusM)
	widened.Events.RadiusMi = capFloat(resolved.Events.RadiusMi*factor, maxFallbackRadiusMi)
	return widened
}

func capFloat(v, max float64) float64 {
	if v > max {
		return max
	}
	return v
}

// broadenIntent iteratively removes mood/budget modifiers first, then
// trailing category tokens, per §4.7 strategy 4.
func broadenIntent(intent searchintent.SearchIntent) searchintent.SearchIntent {
	broadened := intent
	broadened.Sub.Mood = ""
	broadened.Sub.Budget = searchintent.BudgetNone
	if len(broadened.Categories) > 0 {
		broadened.Categories = broadened.Categories[:len(broadened.Categories)-1]
	}
	return broadened
}

func relatedCategoryIntent(intent searchintent.SearchIntent) (searchintent.SearchIntent, bool) {
	for _, kw := range intent.Keywords {
		if alts, ok := relatedCategories[kw]; ok {
			related := intent
			related.Keywords = alts
			return related, true
		}
	}
	return searchintent.SearchIntent{}, false
}
