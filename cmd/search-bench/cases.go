// README: Benchmark/smoke test cases against the discovery search API.
// Grounded on cmd/bench/cases.go's TestCase/httpCase/perfLoad shape,
// retargeted from ride-dispatch endpoints to /api/search, /health,
// /diagnostics, and /metrics.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{cfg: cfg, httpc: &http.Client{Timeout: 10 * time.Second}}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		getCase("Health: endpoint reachable", base+"/health", []int{200}),
		getCase("Diagnostics: endpoint reachable", base+"/diagnostics", []int{200}),
		getCase("Metrics: exposes Prometheus exposition format", base+"/metrics", []int{200}),

		searchCase("Search: plain-text query with location", base, url.Values{
			"q":   {"late night ramen"},
			"lat": {"40.7128"},
			"lng": {"-74.0060"},
			"tz":  {"America/New_York"},
		}, []int{200}),

		searchCase("Search: query missing location falls back gracefully", base, url.Values{
			"q": {"coffee near me"},
		}, []int{200}),

		searchCase("Search: empty query degrades gracefully", base, url.Values{
			"lat": {"40.7128"},
			"lng": {"-74.0060"},
		}, []int{200}),

		searchCase("Search: paginated request honors limit/offset", base, url.Values{
			"q":      {"farmers market"},
			"lat":    {"40.7128"},
			"lng":    {"-74.0060"},
			"limit":  {"5"},
			"offset": {"5"},
		}, []int{200}),

		{
			Name: "Perf: search throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/search?"+url.Values{
					"q":   {"brunch spots"},
					"lat": {"40.7128"},
					"lng": {"-74.0060"},
				}.Encode())
			},
		},
		{
			Name: "Concurrency: repeated identical query is stable under load",
			Run: func(ctx context.Context, r *Runner) Result {
				return concurrentSearch(ctx, r, base+"/api/search?"+url.Values{
					"q":   {"hardware store"},
					"lat": {"40.7128"},
					"lng": {"-74.0060"},
				}.Encode())
			},
		},
	}
}

func getCase(name, target string, okStatuses []int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			req, _ := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: "FAIL", Note: err.Error()}
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			latency := time.Since(start)
			if contains(okStatuses, resp.StatusCode) {
				return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
			}
			return Result{Status: "FAIL", Latency: latency, Note: fmt.Sprintf("status=%d", resp.StatusCode)}
		},
	}
}

func searchCase(name, base string, params url.Values, okStatuses []int) TestCase {
	target := base + "/api/search?" + params.Encode()
	return getCase(name, target, okStatuses)
}

func concurrentSearch(ctx context.Context, r *Runner, target string) Result {
	wg := sync.WaitGroup{}
	succ, fail := 0, 0
	mu := sync.Mutex{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, _ := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
			resp, err := r.httpc.Do(req)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fail++
				return
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				succ++
			} else {
				fail++
			}
		}()
	}
	wg.Wait()

	if fail > 0 {
		return Result{Status: "FAIL", Note: fmt.Sprintf("success=%d fail=%d", succ, fail)}
	}
	return Result{Status: "PASS", Note: fmt.Sprintf("success=%d", succ)}
}

func perfLoad(ctx context.Context, r *Runner, target string) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount int64
	var mu sync.Mutex
	wg := sync.WaitGroup{}

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
				resp, err := r.httpc.Do(req)
				if err != nil {
					mu.Lock()
					errCount++
					mu.Unlock()
					continue
				}
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				mu.Lock()
				count++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if count == 0 {
		return Result{Status: "FAIL", Note: "no requests completed"}
	}
	rps := float64(count) / r.cfg.Duration.Seconds()
	return Result{Status: "PASS", Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount)}
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}
