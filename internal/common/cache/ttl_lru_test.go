package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestTTLLRUCache_GetSet(t *testing.T) {
	c := NewTTLLRUCache[string](0, 0)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss")
	}

	c.Set("a", "1")
	c.Set("a", "2")
	got, ok := c.Get("a")
	if !ok || got != "2" {
		t.Fatalf("expected 2, got %q ok=%v", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("expected len 1, got %d", c.Len())
	}

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("expected miss after delete")
	}
}

func TestTTLLRUCache_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTLLRUCache[int](0, time.Minute)
	c.now = func() time.Time { return now }

	c.Set("k", 1)
	now = now.Add(59 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected hit before ttl")
	}

	now = now.Add(2 * time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected miss after ttl")
	}
	if c.Len() != 0 {
		t.Errorf("expected expired entry removed, len=%d", c.Len())
	}
}

func TestTTLLRUCache_NoExpiryWhenTTLZero(t *testing.T) {
	now := time.Now()
	c := NewTTLLRUCache[int](0, 0)
	c.now = func() time.Time { return now }

	c.Set("k", 1)
	now = now.Add(24 * 365 * time.Hour)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("expected entry to never expire")
	}
}

func TestTTLLRUCache_Eviction(t *testing.T) {
	c := NewTTLLRUCache[int](2, 0)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // a를 최근 사용으로 갱신
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("expected a kept")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("expected c kept")
	}
}

func TestTTLLRUCache_Concurrent(t *testing.T) {
	c := NewTTLLRUCache[int](0, 0)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			c.Set(key, i)
			if got, ok := c.Get(key); !ok || got != i {
				t.Errorf("key %s: got %d ok=%v", key, got, ok)
			}
		}(i)
	}
	wg.Wait()
	if c.Len() != 50 {
		t.Errorf("expected 50 entries, got %d", c.Len())
	}
}

func TestTTLLRUCache_NilReceiver(t *testing.T) {
	var c *TTLLRUCache[int]
	c.Set("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Error("nil cache must miss")
	}
	if c.Len() != 0 {
		t.Error("nil cache must be empty")
	}
}
