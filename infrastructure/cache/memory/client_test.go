package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestNewMemoryCache(t *testing.T) {
	cache := NewMemoryCache()

	if cache == nil {
		t.Fatal("NewMemoryCache returned nil")
	}
	if cache.Count() != 0 {
		t.Errorf("Count() = %d, want 0", cache.Count())
	}
}

func TestMemoryCache_Get_ExistingKey(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	key := "body:https://example.com/sub"
	value := []byte("1.1.1.1:443#HK")
	if err := cache.Set(ctx, key, value, time.Hour); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Errorf("Get returned error: %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Get returned %s, want %s", string(got), string(value))
	}
}

func TestMemoryCache_Get_NonExistentKey(t *testing.T) {
	cache := NewMemoryCache()

	got, err := cache.Get(context.Background(), "non-existent")

	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get error = %v, want ErrCacheMiss", err)
	}
	if got != nil {
		t.Error("Get should return nil value for non-existent key")
	}
}

func TestMemoryCache_Get_ExpiredKey(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	if err := cache.Set(ctx, "short", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Failed to set value: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get error = %v, want ErrCacheMiss for expired key", err)
	}
}

func TestMemoryCache_Set_WithZeroTTL(t *testing.T) {
	cache := NewMemoryCacheWithCleanup(5 * time.Millisecond)
	ctx := context.Background()

	if err := cache.Set(ctx, "forever", []byte("v"), 0); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	got, err := cache.Get(ctx, "forever")
	if err != nil {
		t.Errorf("Get returned error: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("Get returned %s, want v", string(got))
	}
}

func TestMemoryCache_Set_UpdatesExisting(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_ = cache.Set(ctx, "k", []byte("value1"), time.Hour)
	_ = cache.Set(ctx, "k", []byte("value2"), time.Hour)

	got, err := cache.Get(ctx, "k")
	if err != nil {
		t.Errorf("Get returned error: %v", err)
	}
	if string(got) != "value2" {
		t.Errorf("Get returned %s, want value2", string(got))
	}
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	value := []byte("abc")
	_ = cache.Set(ctx, "k", value, time.Hour)
	value[0] = 'x'

	got, _ := cache.Get(ctx, "k")
	got[1] = 'y'

	again, _ := cache.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("cached value mutated to %s", string(again))
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_ = cache.Set(ctx, "k", []byte("v"), time.Hour)

	if err := cache.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete returned error: %v", err)
	}
	if _, err := cache.Get(ctx, "k"); err == nil {
		t.Error("Get should return error for deleted key")
	}
	if err := cache.Delete(ctx, "non-existent"); err != nil {
		t.Errorf("Delete should return nil for non-existent key, got: %v", err)
	}
}

func TestMemoryCache_CancelledContext(t *testing.T) {
	cache := NewMemoryCache()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cache.Set(ctx, "k", []byte("v"), time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("Set error = %v, want context.Canceled", err)
	}
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("Get error = %v, want context.Canceled", err)
	}
	if err := cache.Delete(ctx, "k"); !errors.Is(err, context.Canceled) {
		t.Errorf("Delete error = %v, want context.Canceled", err)
	}
}

func TestMemoryCache_Cleanup(t *testing.T) {
	cache := NewMemoryCacheWithCleanup(5 * time.Millisecond)
	ctx := context.Background()

	_ = cache.Set(ctx, "key1", []byte("value1"), 10*time.Millisecond)
	_ = cache.Set(ctx, "key2", []byte("value2"), time.Hour)

	time.Sleep(50 * time.Millisecond)

	if cache.Count() != 1 {
		t.Errorf("Count() = %d after cleanup, want 1", cache.Count())
	}
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("body:feed-%d", n%5)
			_ = cache.Set(ctx, key, []byte(key), time.Hour)
			_, _ = cache.Get(ctx, key)
		}(i)
	}
	wg.Wait()

	if cache.Count() != 5 {
		t.Errorf("Count() = %d, want 5", cache.Count())
	}
}
