// README: Result Deduplicator (§4.8). Pure cross-provider duplicate
// collapse. Grounded on location.Service's pairwise-comparison loops,
// generalized from a single metric to the spec's layered duplicate test.
package dedup

import (
	"ark/internal/catalog"
	"ark/internal/geo"
)

const (
	nameSimLoose    = 0.85
	nameSimLooseDistM = 50
	nameSimTight    = 0.95
	nameSimTightDistM = 10
	addressSimThreshold = 0.90
	venueSimThreshold   = 0.85
)

// Dedup clusters duplicate results across providers and returns one merged
// record per cluster, each carrying the max score seen in its cluster.
func Dedup(results []catalog.Result) []catalog.Result {
	n := len(results)
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if isDuplicate(results[i], results[j]) {
				union(parent, i, j)
			}
		}
	}

	clusters := map[int][]int{}
	for i := 0; i < n; i++ {
		root := find(parent, i)
		clusters[root] = append(clusters[root], i)
	}

	merged := make([]catalog.Result, 0, len(clusters))
	for _, members := range clusters {
		merged = append(merged, mergeCluster(results, members))
	}
	return merged
}

func isDuplicate(a, b catalog.Result) bool {
	if a.ID != "" && a.ID == b.ID {
		return true
	}
	if a.Type != b.Type {
		return false
	}

	nameSim := similarity(a.Title, b.Title)
	distM := haversineSafe(a, b)
	if nameSim > nameSimLoose && distM < nameSimLooseDistM {
		return true
	}
	if nameSim > nameSimTight && distM < nameSimTightDistM {
		return true
	}

	if a.Address != "" && b.Address != "" && similarity(a.Address, b.Address) > addressSimThreshold {
		return true
	}

	if a.Type == catalog.ResultEvent && a.Event.Venue != "" && b.Event.Venue != "" {
		if similarity(a.Event.Venue, b.Event.Venue) > venueSimThreshold && sameLocalDate(a, b) {
			return true
		}
	}

	return false
}

func haversineSafe(a, b catalog.Result) float64 {
	return geo.HaversineM(a.Point.Lat, a.Point.Lng, b.Point.Lat, b.Point.Lng)
}

func sameLocalDate(a, b catalog.Result) bool {
	if !a.Event.HasWindow || !b.Event.HasWindow {
		return false
	}
	return a.Event.Start.Format("2006-01-02") == b.Event.Start.Format("2006-01-02")
}

func mergeCluster(all []catalog.Result, members []int) catalog.Result {
	primaryIdx := members[0]
	bestCount := -1
	maxScore := 0.0
	for _, idx := range members {
		r := all[idx]
		if r.Score > maxScore {
			maxScore = r.Score
		}
		if c := r.SignificantFieldCount(); c > bestCount {
			bestCount = c
			primaryIdx = idx
		}
	}

	primary := all[primaryIdx]
	for _, idx := range members {
		if idx == primaryIdx {
			continue
		}
		fillMissing(&primary, all[idx])
	}
	primary.Score = maxScore
	return primary
}

// fillMissing copies sibling fields into primary wherever primary lacks
// them, per §4.8's "copy over missing fields" merge rule.
func fillMissing(primary *catalog.Result, sibling catalog.Result) {
	if primary.Photo.URL == "" && primary.Photo.ResourceName == "" {
		primary.Photo = sibling.Photo
	}
	if !primary.Place.HasRating && sibling.Place.HasRating {
		primary.Place.Rating = sibling.Place.Rating
		primary.Place.HasRating = true
	}
	if primary.Place.ReviewCount == 0 && sibling.Place.ReviewCount > 0 {
		primary.Place.ReviewCount = sibling.Place.ReviewCount
	}
	if primary.Place.PriceLevel == 0 && sibling.Place.PriceLevel > 0 {
		primary.Place.PriceLevel = sibling.Place.PriceLevel
	}
	if primary.Address == "" && sibling.Address != "" {
		primary.Address = sibling.Address
	}
	if primary.Place.OpenNow == nil && sibling.Place.OpenNow != nil {
		primary.Place.OpenNow = sibling.Place.OpenNow
	}
	if primary.Event.Venue == "" && sibling.Event.Venue != "" {
		primary.Event.Venue = sibling.Event.Venue
	}
	if !primary.Event.HasWindow && sibling.Event.HasWindow {
		primary.Event.Start = sibling.Event.Start
		primary.Event.End = sibling.Event.End
		primary.Event.HasWindow = true
	}
	if !primary.Event.Free && sibling.Event.Free {
		primary.Event.Free = true
	}
	if primary.Event.PriceMin == nil && sibling.Event.PriceMin != nil {
		primary.Event.PriceMin = sibling.Event.PriceMin
	}
	if primary.Event.PriceMax == nil && sibling.Event.PriceMax != nil {
		primary.Event.PriceMax = sibling.Event.PriceMax
	}
	primary.SourceTags = append(primary.SourceTags, sibling.SourceTags...)
}

func find(parent []int, i int) int {
	for parent[i] != i {
		parent[i] = parent[parent[i]]
		i = parent[i]
	}
	return i
}

func union(parent []int, a, b int) {
	ra, rb := find(parent, a), find(parent, b)
	if ra != rb {
		parent[ra] = rb
	}
}
