// README: Google Geocoding API-backed resolver. Grounded on
// maps.PlacesService's googlemaps.github.io/maps client construction,
// swapped from the Places TextSearch endpoint to the Geocoding endpoint.
package geocode

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// GoogleResolver resolves zip/city strings via the Google Geocoding API.
type GoogleResolver struct {
	client *maps.Client
}

// NewGoogleResolver creates a resolver using apiKey.
func NewGoogleResolver(apiKey string) (*GoogleResolver, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoding client: %w", err)
	}
	return &GoogleResolver{client: client}, nil
}

func (r *GoogleResolver) ResolveZip(ctx context.Context, zip string) (float64, float64, bool, error) {
	return r.resolve(ctx, zip)
}

func (r *GoogleResolver) ResolveCity(ctx context.Context, city string) (float64, float64, bool, error) {
	return r.resolve(ctx, city)
}

func (r *GoogleResolver) resolve(ctx context.Context, address string) (float64, float64, bool, error) {
	results, err := r.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return 0, 0, false, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, false, nil
	}
	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, true, nil
}
