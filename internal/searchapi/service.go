// README: Top-level pipeline orchestrator wiring Normalizer through
// Quality Enhancer (§3). Grounded on service.TripPlanner's shape: a
// struct holding every collaborator dependency plus one top-level method
// that threads a raw request through them in order, replacing the
// ride-dispatch conversation steps with the ten-stage discovery pipeline.
package searchapi

import (
	"context"
	"time"

	"ark/internal/catalog"
	"ark/internal/classifier"
	"ark/internal/entities"
	"ark/internal/executor"
	"ark/internal/flags"
	"ark/internal/geocode"
	"ark/internal/normalizer"
	"ark/internal/observability"
	"ark/internal/planner"
	"ark/internal/quality"
	"ark/internal/searchintent"
	"ark/internal/uxfeedback"
)

// Service wires every pipeline stage together behind one entry point.
type Service struct {
	Hybrid      *classifier.Hybrid
	Geocode     geocode.Resolver
	Executor    *executor.Executor
	QualityOpts quality.Options
	// Metrics is optional; when set, Search records request counts and
	// latency against it (§6.4).
	Metrics *observability.Metrics
	// Flags gates individual pipeline stages (§6.5). Nil means every
	// gated stage runs as if every flag were on.
	Flags *flags.Registry
}

// flagEnabled reports whether name is on, treating a nil registry as
// "every flag enabled" so Service remains usable in tests that don't
// wire one up.
func (s *Service) flagEnabled(name flags.Name) bool {
	if s.Flags == nil {
		return true
	}
	return s.Flags.Enabled(name)
}

// Response is the unified output of a single search call.
type Response struct {
	Results    []ResultView
	Meta       Meta
	Pagination Pagination
}

// Meta mirrors §4's documented response metadata shape.
type Meta struct {
	IntentType    searchintent.Kind
	UsedProviders []string
	UsedAI        bool
	CacheHit      bool
	Quality       quality.Assessment
	Hints         []quality.ActionHint
	// Feedback carries the §7 zero/low-result helper message and
	// suggestion chips; zero value when the result count already
	// clears quality.MinAcceptableResults.
	Feedback uxfeedback.Feedback
}

// Pagination describes the requested slice of the full ranked list.
type Pagination struct {
	Total   int
	Offset  int
	Limit   int
	HasMore bool
}

// ResultView is the externally facing projection of a catalog.Result;
// kept separate from catalog.Result so wire-format concerns don't leak
// into the scoring/merge layer. Carries the §3 SearchResult fields a
// client needs to render a card: rating/price for places, the event
// window for events, plus photo and deep-link.
type ResultView struct {
	ID, Title, Category, Type string
	Lat, Lng                  float64
	DistanceM                 float64
	Score                     float64
	Reason                    string

	Rating      float64
	HasRating   bool
	ReviewCount int
	PriceLevel  int
	OpenNow     *bool

	EventStart time.Time
	EventEnd   time.Time
	HasWindow  bool
	Venue      string
	Free       bool

	PhotoURL string
	DeepLink string
}

// Request is the caller-facing input to Search.
type Request struct {
	RawQuery string
	UserCtx  searchintent.UserContext
	Offset   int
	Limit    int
}

const defaultLimit = 20

// Search runs the full normalize -> classify -> extract -> plan ->
// resolve -> execute -> enhance pipeline and returns a paginated,
// quality-assessed result view. Never returns an error: pipeline
// failures degrade to browse-mode/empty results per the underlying
// stages' own never-fail contracts.
func (s *Service) Search(ctx context.Context, req Request) Response {
	start := time.Now()

	var normalized normalizer.Result
	if s.flagEnabled(flags.Normalization) {
		normalized = normalizer.NormalizeWithOptions(req.RawQuery, normalizer.Options{
			SkipEmojiSlang:        !s.flagEnabled(flags.EmojiSlang),
			SkipSemanticExpansion: !s.flagEnabled(flags.SemanticExpansion),
		})
	} else {
		normalized = normalizer.Result{Original: req.RawQuery, Normalized: req.RawQuery}
	}

	intent := s.Hybrid.Classify(ctx, normalized.Normalized, req.UserCtx)
	intent.RawQuery = req.RawQuery
	intent.Normalized = normalized.Normalized

	var extraction entities.Extraction
	if s.flagEnabled(flags.EntityExtraction) {
		extraction = entities.Extract(normalized.Normalized)
	}
	applyExtraction(&intent, extraction, s.flagEnabled(flags.SubIntentDetection))

	plan := planner.BuildPlan(intent)
	resolved := planner.Resolve(ctx, plan, intent, req.UserCtx, s.Geocode)

	execResult := s.Executor.Execute(ctx, intent, req.UserCtx, resolved)
	enhanced, report := quality.Enhance(execResult.Results, s.QualityOpts)

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	page, hasMore := paginate(enhanced, req.Offset, limit)

	if s.Metrics != nil && s.flagEnabled(flags.Metrics) {
		s.Metrics.Requests.WithLabelValues(string(intent.Kind)).Inc()
		s.Metrics.RequestLatency.WithLabelValues(string(intent.Kind)).Observe(time.Since(start).Seconds())
		if execResult.Meta.CacheHit {
			s.Metrics.CacheHits.WithLabelValues("ranked").Inc()
		} else {
			s.Metrics.CacheMisses.WithLabelValues("ranked").Inc()
		}
		s.Metrics.FallbackDepth.Observe(float64(len(execResult.Meta.Attempts)))
	}

	var feedback uxfeedback.Feedback
	if s.flagEnabled(flags.UXFeedback) {
		feedback = uxfeedback.Build(len(enhanced), quality.MinAcceptableResults, buildCandidates(execResult.Results, intent, s.QualityOpts))
	}

	return Response{
		Results: toResultViews(page),
		Meta: Meta{
			IntentType:    intent.Kind,
			UsedProviders: execResult.Meta.UsedProviders,
			UsedAI:        execResult.Meta.UsedAI,
			CacheHit:      execResult.Meta.CacheHit,
			Quality:       report.Assessment,
			Hints:         report.Hints,
			Feedback:      feedback,
		},
		Pagination: Pagination{Total: len(enhanced), Offset: req.Offset, Limit: limit, HasMore: hasMore},
	}
}

// walkRangeM is the §7 "outside walk range" cutoff used to size the
// uxfeedback "Walking distance" chip.
const walkRangeM = 1200

// buildCandidates classifies the pre-quality-filter result set into the
// five uxfeedback pools, so the zero/low-result chips are sized against
// what the pipeline actually fetched rather than issuing new provider
// calls.
func buildCandidates(results []catalog.Result, intent searchintent.SearchIntent, opts quality.Options) uxfeedback.Candidates {
	minRating := opts.MinRating
	if minRating <= 0 {
		minRating = quality.DefaultMinRating
	}
	priceCap, hasPriceCap := budgetPriceCap(intent.Sub.Budget)

	var cand uxfeedback.Candidates
	for _, r := range results {
		if r.Type == catalog.ResultPlace && r.Place.HasRating && r.Place.Rating < minRating {
			cand.BelowRatingFloor = append(cand.BelowRatingFloor, r)
		}
		if r.Type == catalog.ResultPlace && r.Place.OpenNow != nil && !*r.Place.OpenNow {
			cand.ClosedNow = append(cand.ClosedNow, r)
		}
		if hasPriceCap && r.Place.PriceLevel > priceCap {
			cand.OutsideBudget = append(cand.OutsideBudget, r)
		}
		if r.DistanceM > walkRangeM {
			cand.OutsideWalkRange = append(cand.OutsideWalkRange, r)
		}
		if r.Place.HasRating && r.Place.Rating >= 4.5 {
			cand.HighlyRated = append(cand.HighlyRated, r)
		}
	}
	return cand
}

// budgetPriceCap maps a sub-intent budget label to the highest
// catalog.PlaceAttrs.PriceLevel it tolerates; ok is false when the query
// carried no budget signal, so no budget-based chip should be offered.
func budgetPriceCap(budget searchintent.BudgetLevel) (cap int, ok bool) {
	switch budget {
	case searchintent.BudgetFree:
		return 0, true
	case searchintent.BudgetBudget:
		return 1, true
	case searchintent.BudgetModerate:
		return 2, true
	case searchintent.BudgetUpscale:
		return 4, true
	default:
		return 0, false
	}
}

// applyExtraction folds entity-extractor signals into the intent when the
// classifier stage did not already populate the equivalent field, giving
// the deterministic regex pass a chance to sharpen a low-confidence
// classification without overriding a confident one.
func applyExtraction(intent *searchintent.SearchIntent, extraction entities.Extraction, detectSubIntents bool) {
	if intent.Location.Kind == searchintent.LocationUnknown {
		for _, loc := range extraction.Locations {
			switch loc.Kind {
			case "zip":
				intent.Location = searchintent.LocationHint{Kind: searchintent.LocationZip, Zip: loc.Value}
			case "city", "neighborhood":
				intent.Location = searchintent.LocationHint{Kind: searchintent.LocationCity, City: loc.Value}
			default:
				continue
			}
			break
		}
	}
	if detectSubIntents && intent.Sub.Budget == searchintent.BudgetNone {
		if level := extraction.BudgetLevel(); level != "" {
			intent.Sub.Budget = searchintent.BudgetLevel(level)
		}
	}
}

func paginate(results []catalog.Result, offset, limit int) ([]catalog.Result, bool) {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(results) {
		return nil, false
	}
	end := offset + limit
	hasMore := end < len(results)
	if end > len(results) {
		end = len(results)
	}
	return results[offset:end], hasMore
}

func toResultViews(results []catalog.Result) []ResultView {
	views := make([]ResultView, 0, len(results))
	for _, r := range results {
		views = append(views, ResultView{
			ID: r.ID, Title: r.Title, Category: string(r.Category), Type: string(r.Type),
			Lat: r.Point.Lat, Lng: r.Point.Lng, DistanceM: r.DistanceM, Score: r.Score, Reason: r.Reason,

			Rating:      r.Place.Rating,
			HasRating:   r.Place.HasRating,
			ReviewCount: r.Place.ReviewCount,
			PriceLevel:  r.Place.PriceLevel,
			OpenNow:     r.Place.OpenNow,

			EventStart: r.Event.Start,
			EventEnd:   r.Event.End,
			HasWindow:  r.Event.HasWindow,
			Venue:      r.Event.Venue,
			Free:       r.Event.Free,

			PhotoURL: r.Photo.URL,
			DeepLink: r.DeepLink,
		})
	}
	return views
}
