package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestSearchEndpointReturnsRankedResults exercises a live search-api binary
// end to end: a located query against /api/search should come back 200
// with a populated intent classification and a ranked (possibly empty)
// result set. Grounded on the teacher's black-box HTTP integration test
// shape (dotenv load, wait-for-ready, call, assert on decoded JSON),
// generalized from the dropped AI-chat token-guard flow to the discovery
// search flow this module actually serves.
func TestSearchEndpointReturnsRankedResults(t *testing.T) {
	loadDotEnv(t)

	baseURL := strings.TrimRight(envOrDefault("ARK_API_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 30 * time.Second}

	waitForAPIReady(t, client, baseURL)

	q := url.Values{
		"q":   {"late night ramen"},
		"lat": {"40.7128"},
		"lng": {"-74.0060"},
		"tz":  {"America/New_York"},
	}
	resp, err := client.Get(baseURL + "/api/search?" + q.Encode())
	if err != nil {
		t.Fatalf("GET /api/search: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", resp.StatusCode, string(body))
	}

	var decoded struct {
		Meta struct {
			IntentType    string   `json:"intent_type"`
			UsedProviders []string `json:"used_providers"`
		} `json:"meta"`
		Results []struct {
			Title string `json:"title"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal response: %v, raw=%s", err, string(body))
	}
	if decoded.Meta.IntentType == "" {
		t.Fatalf("expected a non-empty intent classification, raw=%s", string(body))
	}
}

// TestDiagnosticsEndpointReportsBreakersAndFlags exercises /diagnostics
// against the same live instance, checking the operator-facing payload
// shape rather than any particular value.
func TestDiagnosticsEndpointReportsBreakersAndFlags(t *testing.T) {
	loadDotEnv(t)

	baseURL := strings.TrimRight(envOrDefault("ARK_API_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 30 * time.Second}
	waitForAPIReady(t, client, baseURL)

	resp, err := client.Get(baseURL + "/diagnostics")
	if err != nil {
		t.Fatalf("GET /diagnostics: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", resp.StatusCode, string(body))
	}

	var decoded struct {
		Health map[string]any `json:"health"`
		Costs  map[string]any `json:"costs"`
		Flags  map[string]any `json:"flags"`
	}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal response: %v, raw=%s", err, string(body))
	}
	if decoded.Health == nil || decoded.Flags == nil {
		t.Fatalf("expected health and flags sections, raw=%s", string(body))
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func waitForAPIReady(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()

	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		req, err := http.NewRequest(http.MethodGet, baseURL+"/health", nil)
		if err == nil {
			resp, err := client.Do(req)
			if err == nil {
				_ = resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					return
				}
			}
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("api not ready: GET %s/health did not return 200 in time", baseURL)
}

func loadDotEnv(t *testing.T) {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		return
	}
	path := ""
	for i := 0; i < 8; i++ {
		candidate := filepath.Join(dir, ".env")
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if path == "" {
		return
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		k := strings.TrimSpace(parts[0])
		v := strings.TrimSpace(parts[1])
		if k == "" {
			continue
		}
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		_ = os.Setenv(k, v)
	}
}
