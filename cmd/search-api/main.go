// README: Entry point; loads config, wires providers/classifier/geocode
// into the search pipeline, and starts the HTTP server. Grounded on
// cmd/ark-api/main.go's load-config/wire-services/serve/graceful-shutdown
// shape, with the ride-dispatch module wiring replaced by the discovery
// pipeline's collaborators.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"ark/internal/ai"
	"ark/internal/cache"
	"ark/internal/circuitbreaker"
	"ark/internal/classifier"
	"ark/internal/config"
	"ark/internal/costopt"
	"ark/internal/executor"
	"ark/internal/flags"
	"ark/internal/geocode"
	httptransport "ark/internal/http"
	"ark/internal/infra"
	"ark/internal/observability"
	"ark/internal/providers/events"
	"ark/internal/providers/places"
	"ark/internal/quality"
	"ark/internal/searchapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Maps.APIKey == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is required")
	}
	placesProvider, err := places.NewGoogleProvider(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("places provider: %v", err)
	}
	eventsProvider := events.NewStaticProvider(time.Now)

	flagRegistry := flags.NewRegistry()

	geoResolver, err := newGeocodeResolver(ctx, cfg)
	if err != nil {
		log.Fatalf("geocode resolver: %v", err)
	}
	if flagRegistry.Enabled(flags.DistributedCache) {
		redisClient := infra.NewRedis(cfg.Redis.Addr)
		geoResolver = geocode.NewCachedResolver(geoResolver, cache.NewDistributedCache(redisClient))
	}

	placesBudget := costopt.NewTracker(costopt.Budget{
		DailyCapUSD: cfg.Providers.Places.DailyCapUSD, CostPerCall: cfg.Providers.Places.CostPerCall,
	})
	eventsBudget := costopt.NewTracker(costopt.Budget{
		DailyCapUSD: cfg.Providers.Events.DailyCapUSD, CostPerCall: cfg.Providers.Events.CostPerCall,
	})
	aiBudget := costopt.NewTracker(costopt.Budget{
		DailyCapUSD: cfg.AI.DailyCapUSD, CallCap: cfg.AI.DailyCallCap, CostPerCall: cfg.AI.DailyCapUSD / float64(max(cfg.AI.DailyCallCap, 1)),
	})

	var model ai.Classifier
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiClassifier(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Printf("gemini classifier disabled: %v", err)
		} else {
			model = gemini
			defer gemini.Close()
		}
	}
	hybrid := classifier.NewHybrid(model, func() bool { return cfg.AI.Enabled && flagRegistry.Enabled(flags.MultiLabelClassify) }, aiBudget)

	breakers := circuitbreaker.NewRegistry()

	ex := &executor.Executor{
		Places:        placesProvider,
		Events:        eventsProvider,
		ProviderCache: cache.NewTTLCache(),
		RankedCache:   cache.NewTTLCache(),
		InFlight:      cache.NewInFlightGroup(),
		Breakers:      breakers,
		PlacesBudget:  placesBudget,
		EventsBudget:  eventsBudget,
		Geocode:       geoResolver,
		Flags:         flagRegistry,
	}

	metrics := observability.New(prometheus.DefaultRegisterer)

	svc := &searchapi.Service{
		Hybrid:   hybrid,
		Geocode:  geoResolver,
		Executor: ex,
		QualityOpts: quality.Options{
			PreferOpenNow: true,
		},
		Metrics: metrics,
		Flags:   flagRegistry,
	}

	obs := &observability.Handler{
		Breakers:     breakers,
		Flags:        flagRegistry,
		PlacesBudget: placesBudget,
		EventsBudget: eventsBudget,
		AIBudget:     aiBudget,
	}

	handler := httptransport.NewRouter(svc, obs)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func newGeocodeResolver(ctx context.Context, cfg config.Config) (geocode.Resolver, error) {
	switch cfg.Geocode.Backend {
	case config.GeocodePostgres:
		db, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			return nil, err
		}
		return geocode.NewPostgresResolver(db), nil
	case config.GeocodeFirebase:
		return geocode.NewFirebaseResolver(ctx, cfg.Geocode.FirebaseProject, cfg.Geocode.FirebaseDatabaseURL, cfg.Geocode.CredentialsFile)
	case config.GeocodeGoogle:
		return geocode.NewGoogleResolver(cfg.Maps.APIKey)
	default:
		return geocode.NewStaticResolver(), nil
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
