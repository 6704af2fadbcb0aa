// README: Zip/city -> lat/lng resolution (§4.6, §9 open question), with
// pluggable backends selected by config.GeocodeBackend. Grounded on
// location.FirebaseService's RTDB client construction (db client only,
// messaging dropped: push notifications are out of scope here) and
// location.Store's Postgres/Redis dual-backend shape.
package geocode

import "context"

// Resolver looks up a coordinate for a zip code or city name. Returns
// ok=false when the backend has no entry, never an error for a plain
// miss (errors are reserved for backend connectivity failures).
type Resolver interface {
	ResolveZip(ctx context.Context, zip string) (lat, lng float64, ok bool, err error)
	ResolveCity(ctx context.Context, city string) (lat, lng float64, ok bool, err error)
}
