package geocode

import (
	"context"
	"testing"
)

func TestStaticResolver_ResolveZipHit(t *testing.T) {
	r := NewStaticResolver()
	lat, lng, ok, err := r.ResolveZip(context.Background(), "10001")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if lat == 0 || lng == 0 {
		t.Fatal("expected non-zero coordinates")
	}
}

func TestStaticResolver_ResolveZipMiss(t *testing.T) {
	r := NewStaticResolver()
	_, _, ok, err := r.ResolveZip(context.Background(), "99999")
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
}

func TestStaticResolver_ResolveCityHit(t *testing.T) {
	r := NewStaticResolver()
	lat, lng, ok, err := r.ResolveCity(context.Background(), "New York")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if lat == 0 || lng == 0 {
		t.Fatal("expected non-zero coordinates")
	}
}
