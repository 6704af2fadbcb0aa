// README: Adaptive multi-factor Ranker (§4.9). Grounded on
// pricing.Service.Estimate's component-breakdown-then-sum style,
// generalized from a single fee total to eight weighted factor scores.
package ranker

import (
	"math"
	"sort"
	"strings"
	"time"

	"ark/internal/catalog"
	"ark/internal/geo"
	"ark/internal/searchintent"
)

// RankingContext carries the request-scoped inputs the factor scorers
// need beyond the candidate list itself, including which §6.5 ranking
// flags are live for this request.
type RankingContext struct {
	Intent      searchintent.SearchIntent
	UserLat     float64
	UserLng     float64
	HasLocation bool
	CurrentHour int
	IsWeekend   bool
	Urgency     searchintent.Urgency
	// Now is the request instant, used wherever a factor scorer needs
	// "time until X" math instead of wall-clock time, so identical
	// inputs at different real-world moments still rank identically.
	Now time.Time

	// AdaptiveRanking toggles per-intent weight deltas; disabled falls
	// back to the flat base weight table.
	AdaptiveRanking bool
	// HyperlocalBoosts is the master switch for the micro-boost family
	// below (small venue, independence, momentum, cluster vibrancy,
	// neighborhood context); disabling it neutralizes all five at once.
	HyperlocalBoosts    bool
	SmallVenueBoost     bool
	IndependenceBoost   bool
	MomentumBoost       bool
	ClusterVibrancy     bool
	NeighborhoodContext bool
	MicroCategories     bool
}

var microCategorySet = map[string]bool{
	"rooftop bar": true, "ramen shop": true, "speakeasy": true,
	"dive bar": true, "wine bar": true, "food truck": true,
}

var chainTokens = []string{"starbucks", "mcdonalds", "subway", "chipotle", "taco bell"}
var corporateTokens = []string{"inc", "corp", "llc", "franchise", "chain"}
var independentTokens = []string{"local", "indie", "family", "independent"}

// Rank scores every candidate, sorts descending by score, and returns the
// same slice with Score/Breakdown populated; Reason is not set.
func Rank(candidates []catalog.Result, ctx RankingContext) []catalog.Result {
	weights := baseWeights
	if ctx.AdaptiveRanking {
		weights = AdaptiveWeights(ctx.Intent)
	}

	for i := range candidates {
		candidates[i].Breakdown = scoreBreakdown(candidates[i], candidates, ctx)
		score := weights.Proximity*candidates[i].Breakdown.Proximity +
			weights.Rating*candidates[i].Breakdown.Rating +
			weights.Popularity*candidates[i].Breakdown.Popularity +
			weights.Novelty*candidates[i].Breakdown.Novelty +
			weights.Temporal*candidates[i].Breakdown.Temporal +
			weights.IntentMatch*candidates[i].Breakdown.IntentMatch +
			weights.Vibrancy*candidates[i].Breakdown.Vibrancy +
			weights.Independence*candidates[i].Breakdown.Independence

		score = antiBiasPostPass(score, candidates[i], ctx)
		candidates[i].Score = score
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Score > candidates[b].Score
	})

	return candidates
}

func scoreBreakdown(r catalog.Result, all []catalog.Result, ctx RankingContext) catalog.ScoreBreakdown {
	return catalog.ScoreBreakdown{
		Proximity:    geo.ProximityScore(r.DistanceM),
		Rating:       ratingScore(r),
		Popularity:   popularityScore(r),
		Novelty:      noveltyScore(r, ctx),
		Temporal:     temporalScore(r, ctx),
		IntentMatch:  intentMatchScore(r, ctx.Intent),
		Vibrancy:     vibrancyScore(r, all, ctx),
		Independence: independenceScore(r, ctx),
	}
}

func ratingScore(r catalog.Result) float64 {
	if !r.Place.HasRating {
		return 0.5
	}
	return r.Place.Rating / 5.0
}

func popularityScore(r catalog.Result) float64 {
	if r.Place.ReviewCount <= 0 {
		return 0.25
	}
	n := float64(r.Place.ReviewCount)
	return 1.0 / (1.0 + math.Exp(-0.008*(n-250)))
}

// noveltyScore rewards under-the-radar, high-quality venues (§4.9 small
// venue signal, flag SMALL_VENUE_BOOST) and venues sitting inside a named
// up-and-coming neighborhood (flag NEIGHBORHOOD_CONTEXT).
func noveltyScore(r catalog.Result, ctx RankingContext) float64 {
	score := 0.0
	rating, reviews := r.Place.Rating, r.Place.ReviewCount

	if ctx.HyperlocalBoosts && ctx.SmallVenueBoost {
		if r.Place.HasRating && rating >= 4.5 && reviews < 50 {
			score += 0.4
		}
		if r.Place.HasRating && rating >= 4.7 && reviews < 20 {
			score += 0.3
		}
		if reviews < 15 {
			score += 0.2
		}
	}
	if ctx.MicroCategories && isMicroCategory(r) {
		score += 0.15
	}
	if ctx.HyperlocalBoosts && ctx.NeighborhoodContext {
		if n, ok := lookupNeighborhood(r.Point.Lat, r.Point.Lng); ok {
			score += n.NoveltyBonus
		}
	}

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

func isMicroCategory(r catalog.Result) bool {
	for _, mc := range r.Place.MicroCategories {
		if microCategorySet[strings.ToLower(mc)] {
			return true
		}
	}
	return false
}

func temporalScore(r catalog.Result, ctx RankingContext) float64 {
	if r.Type == catalog.ResultPlace {
		return temporalScorePlace(r, ctx.Urgency)
	}
	return temporalScoreEvent(r, ctx)
}

func temporalScorePlace(r catalog.Result, urgency searchintent.Urgency) float64 {
	if urgency == searchintent.UrgencyImmediate {
		if r.Place.OpenNow == nil {
			return 0.5
		}
		if *r.Place.OpenNow {
			return 1.0
		}
		return 0.05
	}
	if r.Place.OpenNow != nil && *r.Place.OpenNow {
		return 0.7
	}
	return 0.5
}

func temporalScoreEvent(r catalog.Result, ctx RankingContext) float64 {
	if !r.Event.HasWindow {
		return 0.5
	}
	now := ctx.Now
	if now.IsZero() {
		now = time.Now()
	}
	hoursToStart := r.Event.Start.Sub(now).Hours()

	if hoursToStart < 0 {
		if hoursToStart > -3 {
			return 0.8
		}
		return 0.1
	}

	switch ctx.Urgency {
	case searchintent.UrgencyImmediate:
		switch {
		case hoursToStart < 3:
			return 1.0
		case hoursToStart < 6:
			return 0.85
		case hoursToStart < 24:
			return 0.5
		default:
			return 0.2
		}
	case searchintent.UrgencyNearFuture:
		switch {
		case hoursToStart < 48:
			return 1.0
		case hoursToStart < 168:
			return 0.7
		default:
			return 0.4
		}
	case searchintent.UrgencyPlanning:
		if hoursToStart < 720 {
			return 0.9
		}
		return 0.6
	default:
		switch {
		case hoursToStart < 48:
			return 1.0
		case hoursToStart < 168:
			return 0.7
		default:
			return 0.4
		}
	}
}

func intentMatchScore(r catalog.Result, intent searchintent.SearchIntent) float64 {
	score := 0.0

	switch {
	case intent.Kind == searchintent.KindBoth:
		score += 0.25
	case string(intent.Kind) == string(r.Type):
		score += 0.35
	}

	for _, c := range intent.Categories {
		if c == string(r.Category) {
			score += 0.25
			break
		}
	}

	titleLower := strings.ToLower(r.Title)
	keywordHits := 0.0
	for _, kw := range intent.Keywords {
		if strings.Contains(titleLower, strings.ToLower(kw)) {
			keywordHits += 0.15
		}
	}
	if keywordHits > 0.30 {
		keywordHits = 0.30
	}
	score += keywordHits

	for _, vibe := range intent.VibeTags {
		if strings.Contains(titleLower, strings.ToLower(vibe)) {
			score += 0.10
			break
		}
	}

	if score > 1 {
		score = 1
	}
	return score
}

// vibrancyScore rewards venues sitting in a dense same-result-set cluster
// (flag CLUSTER_VIBRANCY) and venues inside a named nightlife-heavy
// neighborhood (flag NEIGHBORHOOD_CONTEXT).
func vibrancyScore(r catalog.Result, all []catalog.Result, ctx RankingContext) float64 {
	v := 0.0

	if ctx.HyperlocalBoosts && ctx.ClusterVibrancy {
		neighbors := 0
		for _, other := range all {
			if other.ID == r.ID {
				continue
			}
			if geo.HaversineM(r.Point.Lat, r.Point.Lng, other.Point.Lat, other.Point.Lng) <= 200 {
				neighbors++
			}
		}
		v = float64(neighbors) / 10.0
	}
	if ctx.HyperlocalBoosts && ctx.NeighborhoodContext {
		if n, ok := lookupNeighborhood(r.Point.Lat, r.Point.Lng); ok {
			v += n.VibrancyBonus
		}
	}

	if v > 1 {
		v = 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

func independenceScore(r catalog.Result, ctx RankingContext) float64 {
	if !ctx.HyperlocalBoosts || !ctx.IndependenceBoost {
		return 0.5
	}

	score := 0.5
	titleLower := strings.ToLower(r.Title)

	for _, tok := range independentTokens {
		if strings.Contains(titleLower, tok) {
			score += 0.3
			break
		}
	}
	if r.Place.ReviewCount > 0 && r.Place.ReviewCount < 200 {
		score += 0.2
	}
	for _, tok := range chainTokens {
		if strings.Contains(titleLower, tok) {
			score -= 0.6
			break
		}
	}
	for _, tok := range corporateTokens {
		if strings.Contains(titleLower, tok) {
			score -= 0.2
			break
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

func antiBiasPostPass(score float64, r catalog.Result, ctx RankingContext) float64 {
	if r.Place.ReviewCount > 2000 {
		score *= 0.95
	}
	if ctx.HyperlocalBoosts && ctx.MomentumBoost && r.Place.HasRating && r.Place.Rating >= 4.6 && r.Place.ReviewCount < 30 {
		score *= 1.15
	}
	return score
}
