// README: Benchmark/smoke runner against a running search-api instance.
// Grounded on cmd/bench/main.go's load-config/run-all/print-summary shape,
// generalized from ride-dispatch HTTP cases to discovery-search cases.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	bench := NewRunner(cfg)
	results := bench.RunAll(ctx)

	fmt.Println("\n== Summary ==")
	pass, fail, skipped := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case "PASS":
			pass++
		case "FAIL":
			fail++
		case "SKIP":
			skipped++
		}
	}
	fmt.Printf("PASS=%d FAIL=%d SKIP=%d\n", pass, fail, skipped)

	if cfg.Strict && fail > 0 {
		os.Exit(1)
	}
}

type Config struct {
	BaseURL     string
	Strict      bool
	Timeout     time.Duration
	Concurrency int
	Duration    time.Duration
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.BaseURL, "base-url", envOrDefault("ARK_BENCH_BASE_URL", "http://localhost:8080"), "search-api base URL")
	flag.BoolVar(&cfg.Strict, "strict", envOrDefaultBool("ARK_BENCH_STRICT", false), "exit non-zero on any failure")
	flag.DurationVar(&cfg.Timeout, "timeout", envOrDefaultDuration("ARK_BENCH_TIMEOUT", 60*time.Second), "total timeout")
	flag.IntVar(&cfg.Concurrency, "concurrency", envOrDefaultInt("ARK_BENCH_CONCURRENCY", 20), "concurrency for the perf case")
	flag.DurationVar(&cfg.Duration, "duration", envOrDefaultDuration("ARK_BENCH_DURATION", 10*time.Second), "duration for the perf case")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "1" || v == "true" || v == "yes"
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, _ = fmt.Sscanf(v, "%d", &n)
		if n > 0 {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
