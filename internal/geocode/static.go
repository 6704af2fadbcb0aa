// README: Static in-memory resolver backend. Default per SPEC_FULL.md's
// Open Questions decision (no external credentials required to boot).
package geocode

import "context"

// StaticResolver serves a small closed table of well-known zips/cities.
// Intended for local development and as a last-resort backend when no
// paid geocoding provider is configured.
type StaticResolver struct {
	zips   map[string][2]float64
	cities map[string][2]float64
}

// NewStaticResolver returns a resolver seeded with a small fixed table.
func NewStaticResolver() *StaticResolver {
	return &StaticResolver{
		zips: map[string][2]float64{
			"10001": {40.7506, -73.9972}, // NYC
			"90210": {34.0901, -118.4065}, // Beverly Hills
			"94103": {37.7725, -122.4147}, // SF
			"60601": {41.8855, -87.6217},  // Chicago
			"02108": {42.3576, -71.0636},  // Boston
		},
		cities: map[string][2]float64{
			"New York":      {40.7128, -74.0060},
			"Los Angeles":   {34.0522, -118.2437},
			"San Francisco": {37.7749, -122.4194},
			"Chicago":       {41.8781, -87.6298},
			"Philadelphia":  {39.9526, -75.1652},
			"Washington":    {38.9072, -77.0369},
			"Seattle":       {47.6062, -122.3321},
			"Austin":        {30.2672, -97.7431},
			"Boston":        {42.3601, -71.0589},
			"Denver":        {39.7392, -104.9903},
			"Portland":      {45.5152, -122.6784},
		},
	}
}

func (r *StaticResolver) ResolveZip(ctx context.Context, zip string) (float64, float64, bool, error) {
	p, ok := r.zips[zip]
	return p[0], p[1], ok, nil
}

func (r *StaticResolver) ResolveCity(ctx context.Context, city string) (float64, float64, bool, error) {
	p, ok := r.cities[city]
	return p[0], p[1], ok, nil
}
