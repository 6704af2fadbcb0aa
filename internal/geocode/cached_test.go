package geocode

import (
	"context"
	"testing"
	"time"
)

type countingResolver struct {
	calls int
}

func (r *countingResolver) ResolveZip(ctx context.Context, zip string) (float64, float64, bool, error) {
	r.calls++
	return 40.75, -73.99, true, nil
}

func (r *countingResolver) ResolveCity(ctx context.Context, city string) (float64, float64, bool, error) {
	r.calls++
	return 0, 0, false, nil
}

// fakeDistCache is an in-memory stand-in for cache.DistributedCache.
type fakeDistCache struct {
	store map[string]cachedEntry
}

func newFakeDistCache() *fakeDistCache { return &fakeDistCache{store: map[string]cachedEntry{}} }

func (f *fakeDistCache) Get(_ context.Context, key string, dest any) (bool, error) {
	e, ok := f.store[key]
	if !ok {
		return false, nil
	}
	*dest.(*cachedEntry) = e
	return true, nil
}

func (f *fakeDistCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.store[key] = value.(cachedEntry)
	return nil
}

func TestCachedResolver_SecondLookupHitsCacheNotInner(t *testing.T) {
	inner := &countingResolver{}
	r := NewCachedResolver(inner, newFakeDistCache())

	lat1, lng1, ok1, err1 := r.ResolveZip(context.Background(), "10001")
	lat2, lng2, ok2, err2 := r.ResolveZip(context.Background(), "10001")

	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}
	if lat1 != lat2 || lng1 != lng2 || ok1 != ok2 {
		t.Fatal("expected cached lookup to match the original result")
	}
	if inner.calls != 1 {
		t.Fatalf("expected exactly one call to the underlying resolver, got %d", inner.calls)
	}
}

func TestCachedResolver_DifferentKeysBothReachInner(t *testing.T) {
	inner := &countingResolver{}
	r := NewCachedResolver(inner, newFakeDistCache())

	_, _, _, _ = r.ResolveZip(context.Background(), "10001")
	_, _, _, _ = r.ResolveZip(context.Background(), "90210")

	if inner.calls != 2 {
		t.Fatalf("expected two calls for two distinct zips, got %d", inner.calls)
	}
}
