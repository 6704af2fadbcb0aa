// README: Google Places-backed PlacesProvider. Grounded directly on
// maps.PlacesService, switched from its text-search-plus-name-filter
// shape to Nearby Search keyed on lat/lng/radius/type, the way a
// location-scoped discovery feed needs rather than a one-off query.
package places

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"ark/internal/catalog"
	"ark/internal/providers"
)

// GoogleProvider implements providers.PlacesProvider over the Google
// Places Nearby Search API.
type GoogleProvider struct {
	client *maps.Client
}

// NewGoogleProvider constructs a client-backed provider for the given key.
func NewGoogleProvider(apiKey string) (*GoogleProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("places: create maps client: %w", err)
	}
	return &GoogleProvider{client: client}, nil
}

// SearchPlaces issues a Nearby Search request and maps results into the
// shared catalog.Result shape. Never returns a non-nil error for "no
// results" — only for genuine transport/API failures.
func (p *GoogleProvider) SearchPlaces(ctx context.Context, q providers.PlacesQuery) ([]catalog.Result, error) {
	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: q.Lat, Lng: q.Lng},
		Radius:   uint(q.RadiusM),
		Keyword:  q.Keyword,
	}
	if len(q.Types) > 0 {
		req.Type = maps.PlaceType(q.Types[0])
	}

	resp, err := p.client.NearbySearch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("places: nearby search: %w", err)
	}

	max := q.MaxResults
	if max <= 0 || max > len(resp.Results) {
		max = len(resp.Results)
	}

	results := make([]catalog.Result, 0, max)
	for i := 0; i < max; i++ {
		r := resp.Results[i]
		results = append(results, toCatalogResult(r))
	}
	return results, nil
}

func toCatalogResult(r maps.PlacesSearchResult) catalog.Result {
	var openNow *bool
	if r.OpeningHours != nil {
		v := r.OpeningHours.OpenNow != nil && *r.OpeningHours.OpenNow
		openNow = &v
	}

	var photo catalog.PhotoRef
	if len(r.Photos) > 0 {
		photo = catalog.PhotoRef{ResourceName: r.Photos[0].PhotoReference}
	}

	return catalog.Result{
		ID:       r.PlaceID,
		Type:     catalog.ResultPlace,
		Title:    r.Name,
		Category: categoryFromTypes(r.Types),
		Point:    catalog.Point{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		Address:  r.Vicinity,
		Place: catalog.PlaceAttrs{
			Rating:          float64(r.Rating),
			HasRating:       r.Rating > 0,
			ReviewCount:     r.UserRatingsTotal,
			PriceLevel:      r.PriceLevel,
			OpenNow:         openNow,
			MicroCategories: r.Types,
		},
		Photo:      photo,
		DeepLink:   "https://www.google.com/maps/place/?q=place_id:" + r.PlaceID,
		SourceTags: []string{"google_places"},
	}
}

var typeToCategory = map[string]catalog.Category{
	"restaurant": catalog.CategoryFood, "cafe": catalog.CategoryFood, "bakery": catalog.CategoryFood,
	"bar": catalog.CategoryNightlife, "night_club": catalog.CategoryNightlife,
	"museum": catalog.CategoryArt, "art_gallery": catalog.CategoryArt,
	"tourist_attraction": catalog.CategoryHistory,
	"gym": catalog.CategoryFitness, "park": catalog.CategoryOutdoor,
	"movie_theater": catalog.CategorySocial, "bowling_alley": catalog.CategorySocial,
}

func categoryFromTypes(types []string) catalog.Category {
	for _, t := range types {
		if c, ok := typeToCategory[t]; ok {
			return c
		}
	}
	return catalog.CategoryOther
}
