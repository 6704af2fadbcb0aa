// README: Distributed-cache-backed resolver wrapper (§4.7 "in a
// distributed deployment, caches ... move to a shared store"). Grounded
// on location.Store's Redis-JSON metadata pattern via
// cache.DistributedCache, wrapping whichever backend Resolver is
// configured so a zip/city lookup is shared across replicas instead of
// being repeated per process.
package geocode

import (
	"context"
	"time"
)

const cacheTTL = 24 * time.Hour

type cachedEntry struct {
	Lat, Lng float64
	OK       bool
}

// distCache is the subset of cache.DistributedCache's API CachedResolver
// needs, kept as a local interface so tests can substitute a fake instead
// of standing up a real Redis client.
type distCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedResolver wraps an underlying Resolver with a distributed cache,
// consulted before and populated after every miss.
type CachedResolver struct {
	inner Resolver
	cache distCache
}

// NewCachedResolver returns a Resolver that memoizes inner's lookups in
// dist, keyed by kind and input string. dist is typically a
// *cache.DistributedCache backed by Redis.
func NewCachedResolver(inner Resolver, dist distCache) *CachedResolver {
	return &CachedResolver{inner: inner, cache: dist}
}

func (r *CachedResolver) ResolveZip(ctx context.Context, zip string) (float64, float64, bool, error) {
	return r.resolve(ctx, "geozip:"+zip, func() (float64, float64, bool, error) { return r.inner.ResolveZip(ctx, zip) })
}

func (r *CachedResolver) ResolveCity(ctx context.Context, city string) (float64, float64, bool, error) {
	return r.resolve(ctx, "geocity:"+city, func() (float64, float64, bool, error) { return r.inner.ResolveCity(ctx, city) })
}

func (r *CachedResolver) resolve(ctx context.Context, key string, fetch func() (float64, float64, bool, error)) (float64, float64, bool, error) {
	var cached cachedEntry
	if hit, err := r.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached.Lat, cached.Lng, cached.OK, nil
	}

	lat, lng, ok, err := fetch()
	if err != nil {
		return 0, 0, false, err
	}
	_ = r.cache.Set(ctx, key, cachedEntry{Lat: lat, Lng: lng, OK: ok}, cacheTTL)
	return lat, lng, ok, nil
}
