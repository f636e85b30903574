package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dfstats/deltaquery/internal/core/domain"
)

func TestMemoryGetPut(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(5 * time.Minute)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("empty cache returned a hit")
	}

	c.Put(ctx, "k", "body-1")
	body, ok := c.Get(ctx, "k")
	if !ok || body != "body-1" {
		t.Fatalf("Get = (%q, %v), want (body-1, true)", body, ok)
	}

	// Put overwrites unconditionally.
	c.Put(ctx, "k", "body-2")
	body, _ = c.Get(ctx, "k")
	if body != "body-2" {
		t.Fatalf("Get after overwrite = %q, want body-2", body)
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(5 * time.Minute)

	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	c.Put(ctx, "k", "body")

	now = now.Add(4 * time.Minute)
	if _, ok := c.Get(ctx, "k"); !ok {
		t.Fatal("live entry reported as absent")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("expired entry returned")
	}

	// A fresh Put revives the key.
	c.Put(ctx, "k", "new")
	if body, ok := c.Get(ctx, "k"); !ok || body != "new" {
		t.Fatalf("Get after refresh = (%q, %v)", body, ok)
	}
}

// TestMemoryConcurrent hammers the cache from multiple goroutines; run with
// -race to verify get/put serialization.
func TestMemoryConcurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			key := domain.CacheKey(fmt.Sprintf("key-%d", w%2))
			val := fmt.Sprintf("val-%d", w)
			for i := 0; i < 200; i++ {
				c.Put(ctx, key, val)
				if body, ok := c.Get(ctx, key); ok && body == "" {
					t.Error("read an empty body")
					return
				}
			}
		}(w)
	}
	wg.Wait()

	// Both keys must hold a complete value written by some worker.
	for _, key := range []domain.CacheKey{"key-0", "key-1"} {
		body, ok := c.Get(ctx, key)
		if !ok || len(body) < len("val-0") {
			t.Errorf("key %s corrupted: (%q, %v)", key, body, ok)
		}
	}
}
