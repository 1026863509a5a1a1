package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if _, err := mc.Get(ctx, CensusKey); err != ErrCacheMiss {
		t.Fatalf("empty cache: err = %v, want ErrCacheMiss", err)
	}

	payload := []byte(`[{"id":"p1"}]`)
	if err := mc.Set(ctx, CensusKey, payload, CensusTTL); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := mc.Get(ctx, CensusKey)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("Get = %q, want %q", got, payload)
	}

	ok, err := mc.Exists(ctx, CensusKey)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	if _, err := mc.Get(ctx, "k"); err != ErrCacheMiss {
		t.Fatalf("expired key: err = %v, want ErrCacheMiss", err)
	}
	ok, _ := mc.Exists(ctx, "k")
	if ok {
		t.Fatal("expired key reported as existing")
	}
}

func TestMemoryCacheDeleteAndClear(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	mc.Set(ctx, OrdersKey("p1"), []byte("a"), time.Minute)
	mc.Set(ctx, OrdersKey("p2"), []byte("b"), time.Minute)
	mc.Set(ctx, CensusKey, []byte("c"), time.Minute)

	if err := mc.Delete(ctx, OrdersKey("p1")); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := mc.Get(ctx, OrdersKey("p1")); err != ErrCacheMiss {
		t.Fatal("deleted key still present")
	}

	if err := mc.Clear(ctx, OrdersPrefix+"*"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := mc.Get(ctx, OrdersKey("p2")); err != ErrCacheMiss {
		t.Fatal("cleared key still present")
	}
	if _, err := mc.Get(ctx, CensusKey); err != nil {
		t.Fatal("non-matching key was cleared")
	}
}
