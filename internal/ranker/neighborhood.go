// README: Neighborhood context (§4.9 vibrancy/novelty adjustments,
// glossary). Grounded on geocode.StaticResolver's small closed
// coordinate table, generalized from a single point per key to a named
// circle (center + radius) tested with the same haversine helper.
package ranker

import "ark/internal/geo"

// neighborhood is one named coordinate circle consulted by the vibrancy
// and novelty factor scorers when flag NEIGHBORHOOD_CONTEXT is enabled.
// Bonuses are small, additive nudges on top of the 0-1 factor score, not
// standalone scores.
type neighborhood struct {
	Name          string
	Lat, Lng      float64
	RadiusM       float64
	VibrancyBonus float64
	NoveltyBonus  float64
}

// neighborhoods is a small closed table of well-known nightlife/cultural
// hubs (vibrancy) and up-and-coming areas (novelty) across the cities the
// static geocode table also covers.
var neighborhoods = []neighborhood{
	{Name: "East Village", Lat: 40.7265, Lng: -73.9815, RadiusM: 900, VibrancyBonus: 0.20},
	{Name: "Williamsburg", Lat: 40.7081, Lng: -73.9571, RadiusM: 1200, VibrancyBonus: 0.15, NoveltyBonus: 0.10},
	{Name: "Bushwick", Lat: 40.6958, Lng: -73.9171, RadiusM: 1500, VibrancyBonus: 0.05, NoveltyBonus: 0.20},
	{Name: "Financial District", Lat: 40.7075, Lng: -74.0113, RadiusM: 1000, VibrancyBonus: -0.10},
	{Name: "West Hollywood", Lat: 34.0900, Lng: -118.3617, RadiusM: 1300, VibrancyBonus: 0.18},
	{Name: "Arts District LA", Lat: 34.0380, Lng: -118.2345, RadiusM: 900, VibrancyBonus: 0.10, NoveltyBonus: 0.15},
	{Name: "Mission District", Lat: 37.7599, Lng: -122.4148, RadiusM: 1100, VibrancyBonus: 0.15, NoveltyBonus: 0.12},
	{Name: "Wicker Park", Lat: 41.9073, Lng: -87.6776, RadiusM: 1000, VibrancyBonus: 0.12, NoveltyBonus: 0.10},
	{Name: "South End Boston", Lat: 42.3412, Lng: -71.0723, RadiusM: 900, VibrancyBonus: 0.10, NoveltyBonus: 0.08},
}

// lookupNeighborhood returns the first matching circle containing
// (lat, lng), or ok=false when the point falls outside every named area.
func lookupNeighborhood(lat, lng float64) (neighborhood, bool) {
	for _, n := range neighborhoods {
		if geo.HaversineM(lat, lng, n.Lat, n.Lng) <= n.RadiusM {
			return n, true
		}
	}
	return neighborhood{}, false
}
