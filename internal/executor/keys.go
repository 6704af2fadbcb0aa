// README: Cache key construction for the Executor (§4.7). Grounded on
// location.Store's Redis key convention (prefix plus rounded coordinate
// plus radius bucket), generalized to also fold in keyword/type/window
// components for the ranked composite key.
package executor

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ark/internal/geo"
	"ark/internal/planner"
	"ark/internal/searchintent"
)

const (
	placesRadiusBucketM = 250
	eventsRadiusBucketMi = 5
)

var genericKeywordBanlist = map[string]bool{
	"good": true, "nice": true, "place": true, "places": true, "spot": true,
	"spots": true, "something": true, "stuff": true, "thing": true, "things": true,
	"fun": true, "cool": true, "great": true, "best": true, "new": true,
}

// topKeyword picks the first keyword passing the length-and-banlist
// filter, or "" if none qualify.
func topKeyword(keywords []string) string {
	for _, k := range keywords {
		kw := strings.ToLower(strings.TrimSpace(k))
		if len(kw) < 3 || len(kw) > 40 {
			continue
		}
		if genericKeywordBanlist[kw] {
			continue
		}
		return kw
	}
	return ""
}

func sortedTypes(types []string) []string {
	out := append([]string(nil), types...)
	sort.Strings(out)
	return out
}

// placesCacheKey builds the provider cache key for a places lookup.
func placesCacheKey(resolved planner.ResolvedPlan, intent searchintent.SearchIntent) string {
	lat := geo.RoundBucket(resolved.Lat, 3)
	lng := geo.RoundBucket(resolved.Lng, 3)
	radius := geo.BucketMeters(resolved.Places.RadiusM, placesRadiusBucketM)
	kw := topKeyword(intent.Keywords)
	types := strings.Join(sortedTypes(resolved.Places.Types), ",")
	return fmt.Sprintf("places:%.3f,%.3f:r%.0f:kw=%s:t=%s", lat, lng, radius, kw, types)
}

// eventsCacheKey builds the provider cache key for an events lookup.
func eventsCacheKey(resolved planner.ResolvedPlan, intent searchintent.SearchIntent) string {
	lat := geo.RoundBucket(resolved.Lat, 3)
	lng := geo.RoundBucket(resolved.Lng, 3)
	radiusBucket := float64(int(resolved.Events.RadiusMi/eventsRadiusBucketMi+0.999) * eventsRadiusBucketMi)
	kw := topKeyword(intent.Keywords)

	var window string
	if resolved.HasWindow {
		window = resolved.WindowStart.UTC().Format(time.RFC3339) + "_" + resolved.WindowEnd.UTC().Format(time.RFC3339)
	}

	category := ""
	if len(intent.Categories) > 0 {
		category = intent.Categories[0]
	}

	return fmt.Sprintf("events:%.3f,%.3f:r%.0f:kw=%s:w=%s:c=%s", lat, lng, radiusBucket, kw, window, category)
}

// rankedCacheKey composes the provider keys plus the intent's identity
// facets into the ranked-results cache key.
func rankedCacheKey(placesKey, eventsKey string, intent searchintent.SearchIntent, userCtx searchintent.UserContext) string {
	day := ""
	if !userCtx.Now.IsZero() {
		day = userCtx.Now.UTC().Format("2006-01-02")
	}
	return fmt.Sprintf("ranked:%s|%s|kind=%s|time=%s|day=%s|cats=%s",
		placesKey, eventsKey, intent.Kind, intent.TimeLabel, day, strings.Join(sortedTypes(intent.Categories), ","))
}

// providerTTL returns the provider-result cache TTL per §4.7: 45s
// near-me, 90s city/zip, 60s otherwise.
func providerTTL(locationKind searchintent.LocationKind) time.Duration {
	switch locationKind {
	case searchintent.LocationNearMe:
		return 45 * time.Second
	case searchintent.LocationCity, searchintent.LocationZip:
		return 90 * time.Second
	default:
		return 60 * time.Second
	}
}

// rankedTTL returns the ranked-results cache TTL per §4.7: 30s near-me,
// 60s otherwise.
func rankedTTL(locationKind searchintent.LocationKind) time.Duration {
	if locationKind == searchintent.LocationNearMe {
		return 30 * time.Second
	}
	return 60 * time.Second
}
