// README: Interactive search REPL for local exploration, no HTTP server
// required. Grounded on ai_demo/main.go's bufio.Scanner read-loop,
// generalized from a single-shot trip-planning chat turn to a repeated
// discovery search call against searchapi.Service. Search never returns
// an error, so no query is ever recorded as failed and "r" only prints
// "(nothing to retry)"; there is no backoff.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"ark/internal/ai"
	"ark/internal/cache"
	"ark/internal/circuitbreaker"
	"ark/internal/classifier"
	"ark/internal/config"
	"ark/internal/costopt"
	"ark/internal/executor"
	"ark/internal/geocode"
	"ark/internal/providers/events"
	"ark/internal/providers/places"
	"ark/internal/quality"
	"ark/internal/searchapi"
	"ark/internal/searchintent"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	if cfg.Maps.APIKey == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY is required")
	}
	placesProvider, err := places.NewGoogleProvider(cfg.Maps.APIKey)
	if err != nil {
		log.Fatalf("places provider: %v", err)
	}

	var model ai.Classifier
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiClassifier(ctx, cfg.AI.GeminiKey)
		if err == nil {
			model = gemini
			defer gemini.Close()
		}
	}

	aiBudget := costopt.NewTracker(costopt.Budget{DailyCapUSD: cfg.AI.DailyCapUSD, CallCap: cfg.AI.DailyCallCap, CostPerCall: 0.01})
	hybrid := classifier.NewHybrid(model, func() bool { return cfg.AI.Enabled }, aiBudget)

	ex := &executor.Executor{
		Places:        placesProvider,
		Events:        events.NewStaticProvider(time.Now),
		ProviderCache: cache.NewTTLCache(),
		RankedCache:   cache.NewTTLCache(),
		InFlight:      cache.NewInFlightGroup(),
		Breakers:      circuitbreaker.NewRegistry(),
		PlacesBudget:  costopt.NewTracker(costopt.Budget{DailyCapUSD: cfg.Providers.Places.DailyCapUSD, CostPerCall: cfg.Providers.Places.CostPerCall}),
		EventsBudget:  costopt.NewTracker(costopt.Budget{DailyCapUSD: cfg.Providers.Events.DailyCapUSD, CostPerCall: cfg.Providers.Events.CostPerCall}),
		Geocode:       geocode.NewStaticResolver(),
	}

	svc := &searchapi.Service{
		Hybrid:      hybrid,
		Geocode:     geocode.NewStaticResolver(),
		Executor:    ex,
		QualityOpts: quality.Options{PreferOpenNow: true},
	}

	reader := bufio.NewScanner(os.Stdin)
	var lastFailedQuery string

	fmt.Println("ark search> type a query (e.g. \"late night ramen\"), or 'exit'")
	fmt.Print("> ")

	for reader.Scan() {
		line := strings.TrimSpace(reader.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line == "r" {
			if lastFailedQuery == "" {
				fmt.Println("(nothing to retry)")
				fmt.Print("> ")
				continue
			}
			line = lastFailedQuery
			fmt.Printf("retrying: %s\n", line)
		}

		resp := svc.Search(ctx, searchapi.Request{
			RawQuery: line,
			UserCtx:  searchintent.UserContext{HasLocation: true, Lat: 40.7128, Lng: -74.0060, Timezone: "America/New_York", Now: time.Now()},
			Limit:    10,
		})

		lastFailedQuery = ""
		printResults(resp)
		fmt.Print("> ")
	}

	if err := reader.Err(); err != nil {
		log.Fatalf("error reading input: %v", err)
	}
}

func printResults(resp searchapi.Response) {
	fmt.Printf("intent=%s quality=%s providers=%v results=%d/%d\n",
		resp.Meta.IntentType, resp.Meta.Quality, resp.Meta.UsedProviders, len(resp.Results), resp.Pagination.Total)
	for i, r := range resp.Results {
		fmt.Printf("  %d. %-30s %-10s score=%s dist=%sm\n", i+1, r.Title, r.Category, strconv.FormatFloat(r.Score, 'f', 3, 64), strconv.FormatFloat(r.DistanceM, 'f', 0, 64))
	}
}
