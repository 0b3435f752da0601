package visits

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestCacheSetOverwrites(t *testing.T) {
	c := newCache(0)
	t0 := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	c.set("home", 3, t0)
	c.set("home", 2, t0.Add(time.Second))

	e, ok := c.get("home")
	if !ok {
		t.Fatal("expected entry")
	}
	if e.count != 2 {
		t.Errorf("count = %d, want 2", e.count)
	}
	if !e.observedAt.Equal(t0.Add(time.Second)) {
		t.Errorf("observedAt = %v, want %v", e.observedAt, t0.Add(time.Second))
	}
	if c.len() != 1 {
		t.Errorf("len = %d, want 1", c.len())
	}
}

func TestCacheUnbounded(t *testing.T) {
	c := newCache(0)
	now := time.Now()

	for i := 0; i < 1000; i++ {
		if c.set("page-"+strconv.Itoa(i), int64(i), now) {
			t.Fatalf("unexpected eviction at %d", i)
		}
	}
	if c.len() != 1000 {
		t.Errorf("len = %d, want 1000", c.len())
	}
}

func TestCacheBoundedEvictsOldest(t *testing.T) {
	c := newCache(2)
	now := time.Now()

	c.set("a", 1, now)
	c.set("b", 1, now)
	if !c.set("c", 1, now) {
		t.Error("expected eviction")
	}
	if _, ok := c.get("a"); ok {
		t.Error("expected a to be evicted")
	}
	for _, k := range []string{"b", "c"} {
		if _, ok := c.get(k); !ok {
			t.Errorf("expected %s to be cached", k)
		}
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := newCache(16)
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%32))
			for r := 0; r < 100; r++ {
				c.set(key, int64(r), now)
				c.get(key)
			}
		}(i)
	}
	wg.Wait()

	if n := c.len(); n > 16 {
		t.Errorf("len = %d, want <= 16", n)
	}
}
