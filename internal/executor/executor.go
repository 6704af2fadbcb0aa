// README: Executor — fan-out with cache and in-flight dedup (§4.7).
// Grounded on service.TripPlanner's orchestration shape: a struct holding
// collaborator dependencies, a top-level method that fans out concurrent
// work and folds results, wrapped here with the circuit breaker and cost
// optimizer every provider call must pass through.
package executor

import (
	"context"
	"sync"
	"time"

	"ark/internal/cache"
	"ark/internal/catalog"
	"ark/internal/circuitbreaker"
	"ark/internal/costopt"
	"ark/internal/dedup"
	"ark/internal/flags"
	"ark/internal/geocode"
	"ark/internal/planner"
	"ark/internal/providers"
	"ark/internal/ranker"
	"ark/internal/searchintent"
)

const (
	acceptableMinResults = 5
	goodMinResults       = 15
	maxFallbackRadiusM   = 80467 // 50 mi, §4.7 fallback cap
	maxFallbackRadiusMi  = 50
)

// RephraseFunc is the optional model-assisted rephrase hook used by
// fallback strategy 6. Returns ok=false when no model is configured or
// the call failed.
type RephraseFunc func(ctx context.Context, rawQuery string) (searchintent.SearchIntent, bool)

// Executor wires provider calls through caching, in-flight dedup, a
// circuit breaker, and a cost optimizer, then ranks, running fallback
// strategies when results are thin. The result set is empty only when
// every strategy, including the last max-radius one, comes back empty.
type Executor struct {
	Places providers.PlacesProvider
	Events providers.EventsProvider

	ProviderCache *cache.TTLCache
	RankedCache   *cache.TTLCache
	InFlight      *cache.InFlightGroup
	Breakers      *circuitbreaker.Registry
	PlacesBudget  *costopt.Tracker
	EventsBudget  *costopt.Tracker

	Geocode  geocode.Resolver
	Rephrase RephraseFunc

	// Flags gates individual stages of the fan-out/dedup/fallback pipeline
	// (§6.5). Nil means every gated stage runs as if every flag were on.
	Flags *flags.Registry
}

// flagEnabled reports whether name is on, treating a nil registry as
// "every flag enabled" so Executor remains usable in tests that don't
// wire one up.
func (e *Executor) flagEnabled(name flags.Name) bool {
	if e.Flags == nil {
		return true
	}
	return e.Flags.Enabled(name)
}

// Execute runs the full fan-out/cache/fallback/rank pipeline for one
// resolved search and never returns an error.
func (e *Executor) Execute(ctx context.Context, intent searchintent.SearchIntent, userCtx searchintent.UserContext, resolved planner.ResolvedPlan) ExecutionResult {
	now := userCtx.Now
	if now.IsZero() {
		now = time.Now()
	}

	placesKey := placesCacheKey(resolved, intent)
	eventsKey := eventsCacheKey(resolved, intent)
	rankedKey := rankedCacheKey(placesKey, eventsKey, intent, userCtx)

	if cached, ok := e.RankedCache.Get(now, rankedKey); ok {
		if result, ok := cached.(ExecutionResult); ok {
			result.Meta.CacheHit = true
			return result
		}
	}

	results, usedProviders := e.fetchBoth(ctx, resolved, intent, now)
	merged := e.dedup(results)
	ranked := ranker.Rank(merged, e.rankingContext(intent, userCtx, now))

	attempts := []AttemptRecord{{
		Strategy: "exact_query_current_radius",
		Query:    intent.RawQuery,
		RadiusM:  resolved.Places.RadiusM,
		Count:    len(ranked),
		Success:  len(ranked) >= acceptableMinResults,
	}}

	if len(ranked) < acceptableMinResults && e.flagEnabled(flags.SmartFallbacks) {
		ranked, attempts = e.runFallbacks(ctx, intent, userCtx, resolved, now, ranked, attempts)
	}

	meta := ExecutionMeta{UsedProviders: usedProviders, UsedAI: intent.ModelUsed, Attempts: attempts}
	result := ExecutionResult{Results: ranked, Meta: meta}
	e.RankedCache.Set(now, rankedKey, result, rankedTTL(intent.Location.Kind))
	return result
}

// dedup merges cross-provider duplicates unless flag DEDUPLICATION is
// off, in which case every fetched record is ranked on its own.
func (e *Executor) dedup(results []catalog.Result) []catalog.Result {
	if !e.flagEnabled(flags.Deduplication) {
		return results
	}
	return dedup.Dedup(results)
}

// rankingContext builds the ranker's request-scoped inputs, including the
// current value of every ranking-related §6.5 flag, so toggling one at
// runtime changes scoring on the very next request.
func (e *Executor) rankingContext(intent searchintent.SearchIntent, userCtx searchintent.UserContext, now time.Time) ranker.RankingContext {
	return ranker.RankingContext{
		Intent:      intent,
		UserLat:     userCtx.Lat,
		UserLng:     userCtx.Lng,
		HasLocation: userCtx.HasLocation,
		CurrentHour: now.Hour(),
		IsWeekend:   now.Weekday() == 0 || now.Weekday() == 6,
		Urgency:     intent.Sub.Urgency,
		Now:         now,

		AdaptiveRanking:     e.flagEnabled(flags.AdaptiveRanking),
		HyperlocalBoosts:    e.flagEnabled(flags.HyperlocalBoosts),
		SmallVenueBoost:     e.flagEnabled(flags.SmallVenueBoost),
		IndependenceBoost:   e.flagEnabled(flags.IndependenceBoost),
		MomentumBoost:       e.flagEnabled(flags.MomentumBoost),
		ClusterVibrancy:     e.flagEnabled(flags.ClusterVibrancy),
		NeighborhoodContext: e.flagEnabled(flags.NeighborhoodContext),
		MicroCategories:     e.flagEnabled(flags.MicroCategories),
	}
}

// fetchBoth fans out to places and events concurrently, each independently
// cached, coalesced, breaker-guarded, and budget-guarded. Provider
// failures degrade to an empty slice for that provider; they never
// propagate.
func (e *Executor) fetchBoth(ctx context.Context, resolved planner.ResolvedPlan, intent searchintent.SearchIntent, now time.Time) ([]catalog.Result, []string) {
	var wg sync.WaitGroup
	var placesResults, eventsResults []catalog.Result
	var usedProviders []string
	var mu sync.Mutex

	if resolved.Places.Enabled && e.Places != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := e.fetchPlaces(ctx, resolved, intent, now)
			mu.Lock()
			placesResults = res
			usedProviders = append(usedProviders, "places")
			mu.Unlock()
		}()
	}

	if resolved.Events.Enabled && e.Events != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := e.fetchEvents(ctx, resolved, intent, now)
			mu.Lock()
			eventsResults = res
			usedProviders = append(usedProviders, "events")
			mu.Unlock()
		}()
	}

	wg.Wait()
	return append(placesResults, eventsResults...), usedProviders
}

func (e *Executor) fetchPlaces(ctx context.Context, resolved planner.ResolvedPlan, intent searchintent.SearchIntent, now time.Time) []catalog.Result {
	if e.flagEnabled(flags.RequestCancellation) && ctx.Err() != nil {
		return nil
	}

	key := placesCacheKey(resolved, intent)
	if cached, ok := e.ProviderCache.Get(now, key); ok {
		if res, ok := cached.([]catalog.Result); ok {
			return res
		}
	}

	breaker := e.Breakers.Get("places")
	if e.flagEnabled(flags.CircuitBreaker) && !breaker.Allow(now) {
		return nil
	}
	if e.flagEnabled(flags.CostOptimization) && e.PlacesBudget != nil && !e.PlacesBudget.Allow(now) {
		return nil
	}

	val, err, _ := e.InFlight.Do(ctx, "places:"+key, func(ctx context.Context) (any, error) {
		q := providers.PlacesQuery{
			Lat: resolved.Lat, Lng: resolved.Lng,
			RadiusM: int(resolved.Places.RadiusM), MaxResults: resolved.Places.MaxResults,
			Keyword: topKeyword(intent.Keywords), Types: resolved.Places.Types,
		}
		return e.Places.SearchPlaces(ctx, q)
	})

	if e.PlacesBudget != nil {
		e.PlacesBudget.RecordCall(now)
	}
	if err != nil {
		breaker.RecordFailure(now)
		return nil
	}
	breaker.RecordSuccess(now)

	res, _ := val.([]catalog.Result)
	e.ProviderCache.Set(now, key, res, providerTTL(intent.Location.Kind))
	return res
}

func (e *Executor) fetchEvents(ctx context.Context, resolved planner.ResolvedPlan, intent searchintent.SearchIntent, now time.Time) []catalog.Result {
	if e.flagEnabled(flags.RequestCancellation) && ctx.Err() != nil {
		return nil
	}

	key := eventsCacheKey(resolved, intent)
	if cached, ok := e.ProviderCache.Get(now, key); ok {
		if res, ok := cached.([]catalog.Result); ok {
			return res
		}
	}

	breaker := e.Breakers.Get("events")
	if e.flagEnabled(flags.CircuitBreaker) && !breaker.Allow(now) {
		return nil
	}
	if e.flagEnabled(flags.CostOptimization) && e.EventsBudget != nil && !e.EventsBudget.Allow(now) {
		return nil
	}

	category := ""
	if len(intent.Categories) > 0 {
		category = intent.Categories[0]
	}

	val, err, _ := e.InFlight.Do(ctx, "events:"+key, func(ctx context.Context) (any, error) {
		q := providers.EventsQuery{
			Lat: resolved.Lat, Lng: resolved.Lng,
			RadiusMi: resolved.Events.RadiusMi, MaxResults: resolved.Events.MaxResults,
			Keyword: topKeyword(intent.Keywords), Category: category,
			WindowStart: resolved.WindowStart, WindowEnd: resolved.WindowEnd, HasWindow: resolved.HasWindow,
		}
		return e.Events.SearchEvents(ctx, q)
	})

	if e.EventsBudget != nil {
		e.EventsBudget.RecordCall(now)
	}
	if err != nil {
		breaker.RecordFailure(now)
		return nil
	}
	breaker.RecordSuccess(now)

	res, _ := val.([]catalog.Result)
	e.ProviderCache.Set(now, key, res, providerTTL(intent.Location.Kind))
	return res
}
