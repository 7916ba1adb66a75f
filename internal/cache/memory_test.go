package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheExpiry(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	clock := base
	c := NewMemoryCacheWithClock(time.Hour, func() time.Time { return clock })
	ctx := context.Background()

	if err := c.Set(ctx, "render:marketing-1", []byte("<html>"), nil); err != nil {
		t.Fatalf("set: %v", err)
	}

	clock = base.Add(59 * time.Minute)
	if _, ok, _ := c.Get(ctx, "render:marketing-1"); !ok {
		t.Fatal("entry expired before its ttl")
	}

	clock = base.Add(61 * time.Minute)
	if _, ok, _ := c.Get(ctx, "render:marketing-1"); ok {
		t.Fatal("entry survived past its ttl")
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache(time.Hour)
	value, ok, err := c.Get(context.Background(), "render:nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || value != nil {
		t.Fatalf("got (%q, %v) on a cold key", value, ok)
	}
}

func TestMemoryCacheInvalidate(t *testing.T) {
	c := NewMemoryCache(time.Hour)
	ctx := context.Background()

	c.Set(ctx, "render:marketing-1", []byte("a"), []string{"marketing-pages"})
	c.Set(ctx, "render:marketing-2", []byte("b"), []string{"marketing-pages"})
	c.Set(ctx, "render:other", []byte("c"), nil)

	if err := c.Invalidate(ctx, "render:marketing-1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "render:marketing-1"); ok {
		t.Fatal("invalidated key still readable")
	}
	if _, ok, _ := c.Get(ctx, "render:marketing-2"); !ok {
		t.Fatal("unrelated key dropped")
	}

	if err := c.InvalidateTag(ctx, "marketing-pages"); err != nil {
		t.Fatalf("invalidate tag: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "render:marketing-2"); ok {
		t.Fatal("tagged key survived tag invalidation")
	}
	if _, ok, _ := c.Get(ctx, "render:other"); !ok {
		t.Fatal("untagged key dropped by tag invalidation")
	}
}

func TestMemoryCacheSweep(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	clock := base
	c := NewMemoryCacheWithClock(time.Hour, func() time.Time { return clock })
	ctx := context.Background()

	c.Set(ctx, "render:old", []byte("a"), nil)
	clock = base.Add(45 * time.Minute)
	c.Set(ctx, "render:fresh", []byte("b"), nil)

	clock = base.Add(90 * time.Minute)
	removed, err := c.Sweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, ok, _ := c.Get(ctx, "render:fresh"); !ok {
		t.Fatal("fresh entry swept")
	}
}
