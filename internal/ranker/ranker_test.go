package ranker

import (
	"math"
	"testing"
	"time"

	"ark/internal/catalog"
	"ark/internal/searchintent"
)

func boolPtr(b bool) *bool { return &b }

// allBoosts returns a RankingContext with every §6.5 ranking flag on, the
// default an operator sees before disabling anything.
func allBoosts() RankingContext {
	return RankingContext{
		AdaptiveRanking:     true,
		HyperlocalBoosts:    true,
		SmallVenueBoost:     true,
		IndependenceBoost:   true,
		MomentumBoost:       true,
		ClusterVibrancy:     true,
		NeighborhoodContext: true,
		MicroCategories:     true,
	}
}

func TestRank_CloserResultRanksHigherAllElseEqual(t *testing.T) {
	candidates := []catalog.Result{
		{ID: "far", Type: catalog.ResultPlace, Title: "Far Cafe", DistanceM: 4000, Place: catalog.PlaceAttrs{Rating: 4.0, HasRating: true, ReviewCount: 100}},
		{ID: "near", Type: catalog.ResultPlace, Title: "Near Cafe", DistanceM: 200, Place: catalog.PlaceAttrs{Rating: 4.0, HasRating: true, ReviewCount: 100}},
	}
	ctx := allBoosts()
	ctx.Intent = searchintent.SearchIntent{Kind: searchintent.KindPlace}
	ranked := Rank(candidates, ctx)
	if ranked[0].ID != "near" {
		t.Fatalf("expected near result to rank first, got %s", ranked[0].ID)
	}
}

func TestRank_ImmediateUrgencyPenalizesClosedPlace(t *testing.T) {
	candidates := []catalog.Result{
		{ID: "open", Type: catalog.ResultPlace, Title: "Open Spot", DistanceM: 500, Place: catalog.PlaceAttrs{OpenNow: boolPtr(true)}},
		{ID: "closed", Type: catalog.ResultPlace, Title: "Closed Spot", DistanceM: 500, Place: catalog.PlaceAttrs{OpenNow: boolPtr(false)}},
	}
	ctx := allBoosts()
	ctx.Intent = searchintent.SearchIntent{Kind: searchintent.KindPlace, Sub: searchintent.SubIntents{Urgency: searchintent.UrgencyImmediate}}
	ctx.Urgency = searchintent.UrgencyImmediate
	ranked := Rank(candidates, ctx)
	if ranked[0].ID != "open" {
		t.Fatalf("expected open-now result to rank first under immediate urgency, got %s", ranked[0].ID)
	}
}

func TestRank_SoonEventBeatsFarEventUnderImmediateUrgency(t *testing.T) {
	now := time.Now()
	candidates := []catalog.Result{
		{ID: "soon", Type: catalog.ResultEvent, Title: "Tonight Show", DistanceM: 500, Event: catalog.EventAttrs{Start: now.Add(1 * time.Hour), HasWindow: true}},
		{ID: "later", Type: catalog.ResultEvent, Title: "Next Week Show", DistanceM: 500, Event: catalog.EventAttrs{Start: now.Add(240 * time.Hour), HasWindow: true}},
	}
	ctx := allBoosts()
	ctx.Intent = searchintent.SearchIntent{Kind: searchintent.KindEvent}
	ctx.Urgency = searchintent.UrgencyImmediate
	ctx.Now = now
	ranked := Rank(candidates, ctx)
	if ranked[0].ID != "soon" {
		t.Fatalf("expected soon event to rank first, got %s", ranked[0].ID)
	}
}

func TestRank_EventTemporalScoreUsesContextNowNotWallClock(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := catalog.Result{Type: catalog.ResultEvent, Event: catalog.EventAttrs{Start: fixed.Add(2 * time.Hour), HasWindow: true}}

	ctxNear := RankingContext{Urgency: searchintent.UrgencyImmediate, Now: fixed}
	ctxFar := RankingContext{Urgency: searchintent.UrgencyImmediate, Now: fixed.Add(-100 * 24 * time.Hour)}

	near := temporalScoreEvent(r, ctxNear)
	far := temporalScoreEvent(r, ctxFar)
	if near == far {
		t.Fatalf("expected temporalScoreEvent to vary with ctx.Now, got identical scores %v", near)
	}
	if near != 1.0 {
		t.Fatalf("expected score 1.0 for an event 2h out under immediate urgency, got %v", near)
	}
}

func TestRank_AntiBiasDampensHighReviewCount(t *testing.T) {
	r := catalog.Result{ID: "mega", Place: catalog.PlaceAttrs{ReviewCount: 5000}}
	dampened := antiBiasPostPass(1.0, r, allBoosts())
	if dampened != 0.95 {
		t.Fatalf("expected 0.95 for high review count dampening, got %v", dampened)
	}
}

func TestRank_AntiBiasBoostsHighRatingLowVolume(t *testing.T) {
	r := catalog.Result{ID: "gem", Place: catalog.PlaceAttrs{Rating: 4.8, HasRating: true, ReviewCount: 10}}
	boosted := antiBiasPostPass(1.0, r, allBoosts())
	if boosted != 1.15 {
		t.Fatalf("expected 1.15 boost for high rating low volume, got %v", boosted)
	}
}

func TestRank_AntiBiasMomentumBoostGatedByFlag(t *testing.T) {
	r := catalog.Result{ID: "gem", Place: catalog.PlaceAttrs{Rating: 4.8, HasRating: true, ReviewCount: 10}}
	ctx := allBoosts()
	ctx.MomentumBoost = false
	if got := antiBiasPostPass(1.0, r, ctx); got != 1.0 {
		t.Fatalf("expected momentum boost disabled to leave score unchanged, got %v", got)
	}
}

func TestRank_IntentMatchRewardsKeywordInTitle(t *testing.T) {
	intent := searchintent.SearchIntent{Kind: searchintent.KindPlace, Keywords: []string{"ramen"}}
	match := catalog.Result{Type: catalog.ResultPlace, Title: "Ichiran Ramen"}
	noMatch := catalog.Result{Type: catalog.ResultPlace, Title: "Ichiran Sushi"}
	if intentMatchScore(match, intent) <= intentMatchScore(noMatch, intent) {
		t.Fatal("expected keyword-matching title to score higher")
	}
}

func TestRank_IndependenceScorePenalizesChainName(t *testing.T) {
	chain := catalog.Result{Title: "Starbucks Coffee"}
	indie := catalog.Result{Title: "Local Roasters"}
	ctx := allBoosts()
	if independenceScore(chain, ctx) >= independenceScore(indie, ctx) {
		t.Fatal("expected chain name to score lower than independent name")
	}
}

func TestRank_IndependenceScoreNeutralWhenBoostDisabled(t *testing.T) {
	chain := catalog.Result{Title: "Starbucks Coffee"}
	ctx := allBoosts()
	ctx.IndependenceBoost = false
	if got := independenceScore(chain, ctx); got != 0.5 {
		t.Fatalf("expected neutral 0.5 score with independence boost disabled, got %v", got)
	}
}

func TestRank_VibrancyCountsNearbyNeighbors(t *testing.T) {
	all := []catalog.Result{
		{ID: "a", Point: catalog.Point{Lat: 40.0, Lng: -74.0}},
		{ID: "b", Point: catalog.Point{Lat: 40.0001, Lng: -74.0}},
		{ID: "c", Point: catalog.Point{Lat: 50.0, Lng: -80.0}},
	}
	isolated := catalog.Result{ID: "c", Point: catalog.Point{Lat: 50.0, Lng: -80.0}}
	clustered := all[0]
	ctx := allBoosts()
	if vibrancyScore(isolated, all, ctx) >= vibrancyScore(clustered, all, ctx) {
		t.Fatal("expected clustered result to have higher vibrancy than isolated one")
	}
}

func TestRank_VibrancyConsultsNeighborhoodTable(t *testing.T) {
	// East Village center; no other candidates nearby, so only the
	// neighborhood bonus contributes.
	r := catalog.Result{ID: "solo", Point: catalog.Point{Lat: 40.7265, Lng: -73.9815}}
	all := []catalog.Result{r}
	ctx := allBoosts()
	withContext := vibrancyScore(r, all, ctx)

	ctx.NeighborhoodContext = false
	withoutContext := vibrancyScore(r, all, ctx)

	if withContext <= withoutContext {
		t.Fatalf("expected neighborhood context to raise vibrancy, got %v vs %v", withContext, withoutContext)
	}
}

func TestRank_NeverPanicsOnEmptyCandidates(t *testing.T) {
	ranked := Rank(nil, RankingContext{Intent: searchintent.SearchIntent{}})
	if len(ranked) != 0 {
		t.Fatalf("expected empty result, got %v", ranked)
	}
}

func TestRank_AdaptiveWeightsEventKindFavorsTemporalOverProximity(t *testing.T) {
	placeWeights := AdaptiveWeights(searchintent.SearchIntent{Kind: searchintent.KindPlace})
	eventWeights := AdaptiveWeights(searchintent.SearchIntent{Kind: searchintent.KindEvent})
	if eventWeights.Temporal <= placeWeights.Temporal {
		t.Fatal("expected event-kind intent to weight temporal higher than place-kind")
	}
}

func TestRank_AdaptiveRankingDisabledUsesBaseWeights(t *testing.T) {
	candidates := []catalog.Result{
		{ID: "a", Type: catalog.ResultPlace, Title: "A", DistanceM: 500},
	}
	ctx := RankingContext{
		Intent:          searchintent.SearchIntent{Kind: searchintent.KindEvent, Sub: searchintent.SubIntents{Mood: "adventurous"}},
		AdaptiveRanking: false,
	}
	ranked := Rank(candidates, ctx)
	// With adaptive ranking off the per-intent weight deltas never apply,
	// so the score is the flat base-weight sum of the factor breakdown.
	if len(ranked) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(ranked))
	}
	b := ranked[0].Breakdown
	want := baseWeights.Proximity*b.Proximity + baseWeights.Rating*b.Rating +
		baseWeights.Popularity*b.Popularity + baseWeights.Novelty*b.Novelty +
		baseWeights.Temporal*b.Temporal + baseWeights.IntentMatch*b.IntentMatch +
		baseWeights.Vibrancy*b.Vibrancy + baseWeights.Independence*b.Independence
	if math.Abs(ranked[0].Score-want) > 1e-9 {
		t.Fatalf("expected base-weight score %v, got %v", want, ranked[0].Score)
	}
}
