package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/gogpu/gdi/raster"
)

func testImage(t *testing.T, w, h int) *raster.Image {
	t.Helper()
	return raster.NewBitmap(w, h).Image()
}

func TestNew(t *testing.T) {
	c := New(1000)
	if c.Budget() != 1000 {
		t.Errorf("Budget() = %d, want 1000", c.Budget())
	}
	if got := c.Stats().Len; got != 0 {
		t.Errorf("new cache Len = %d, want 0", got)
	}

	if got := New(0).Budget(); got != DefaultBudget {
		t.Errorf("New(0).Budget() = %d, want DefaultBudget", got)
	}
	if got := New(-5).Budget(); got != DefaultBudget {
		t.Errorf("New(-5).Budget() = %d, want DefaultBudget", got)
	}
}

func TestGetAdd(t *testing.T) {
	c := New(1000)
	img := testImage(t, 2, 2)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache reported a hit")
	}

	c.Add("a", img, 16)
	got, ok := c.Get("a")
	if !ok {
		t.Fatal("Get after Add missed")
	}
	if got != img {
		t.Error("Get returned a different image than was added")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("stats = %d hits, %d misses, want 1 and 1", stats.Hits, stats.Misses)
	}
	if stats.Bytes != 16 {
		t.Errorf("Bytes = %d, want 16", stats.Bytes)
	}
}

func TestAddReplacesSameKey(t *testing.T) {
	c := New(1000)
	first := testImage(t, 2, 2)
	second := testImage(t, 4, 4)

	c.Add("k", first, 16)
	c.Add("k", second, 64)

	got, ok := c.Get("k")
	if !ok || got != second {
		t.Error("Add with an existing key did not replace the entry")
	}
	stats := c.Stats()
	if stats.Len != 1 {
		t.Errorf("Len = %d, want 1", stats.Len)
	}
	if stats.Bytes != 64 {
		t.Errorf("Bytes = %d after replace, want 64", stats.Bytes)
	}
}

func TestAddRefusesInvalid(t *testing.T) {
	c := New(100)

	c.Add("nil", nil, 10)
	c.Add("free", testImage(t, 1, 1), 0)
	c.Add("huge", testImage(t, 1, 1), 101)

	if got := c.Stats().Len; got != 0 {
		t.Errorf("Len = %d after refused inserts, want 0", got)
	}
}

func TestEvictionIsLRU(t *testing.T) {
	c := New(100)
	for i := 0; i < 4; i++ {
		c.Add(fmt.Sprintf("k%d", i), testImage(t, 1, 1), 25)
	}

	// Touch k0 so k1 becomes the eviction candidate.
	if _, ok := c.Get("k0"); !ok {
		t.Fatal("k0 missing before eviction")
	}

	c.Add("k4", testImage(t, 1, 1), 25)

	if _, ok := c.Get("k1"); ok {
		t.Error("k1 survived eviction despite being least recently used")
	}
	if _, ok := c.Get("k0"); !ok {
		t.Error("recently used k0 was evicted")
	}
	stats := c.Stats()
	if stats.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", stats.Evictions)
	}
	if stats.Bytes > c.Budget() {
		t.Errorf("Bytes = %d exceeds budget %d", stats.Bytes, c.Budget())
	}
}

func TestEvictsMultipleForLargeEntry(t *testing.T) {
	c := New(100)
	c.Add("a", testImage(t, 1, 1), 40)
	c.Add("b", testImage(t, 1, 1), 40)

	c.Add("big", testImage(t, 1, 1), 90)

	if _, ok := c.Get("a"); ok {
		t.Error("a survived despite needing its space")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("b survived despite needing its space")
	}
	if _, ok := c.Get("big"); !ok {
		t.Error("large entry missing after insert")
	}
}

func TestRemove(t *testing.T) {
	c := New(1000)
	c.Add("k", testImage(t, 1, 1), 10)

	c.Remove("k")
	if _, ok := c.Get("k"); ok {
		t.Error("entry present after Remove")
	}
	if got := c.Stats().Bytes; got != 0 {
		t.Errorf("Bytes = %d after Remove, want 0", got)
	}

	c.Remove("absent") // no-op
}

func TestPurgePreservesCounters(t *testing.T) {
	c := New(1000)
	c.Add("k", testImage(t, 1, 1), 10)
	c.Get("k")
	c.Get("absent")

	c.Purge()

	stats := c.Stats()
	if stats.Len != 0 || stats.Bytes != 0 {
		t.Errorf("Len = %d, Bytes = %d after Purge, want 0 and 0", stats.Len, stats.Bytes)
	}
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("counters changed on Purge: %d hits, %d misses", stats.Hits, stats.Misses)
	}
}

func TestHitRate(t *testing.T) {
	if got := (Stats{}).HitRate(); got != 0 {
		t.Errorf("HitRate with no lookups = %v, want 0", got)
	}
	if got := (Stats{Hits: 3, Misses: 1}).HitRate(); got != 0.75 {
		t.Errorf("HitRate = %v, want 0.75", got)
	}
}

func TestConcurrentUse(t *testing.T) {
	c := New(1 << 20)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("%d_%d", n, j)
				c.Add(key, raster.NewBitmap(1, 1).Image(), 64)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if got := c.Stats().Len; got == 0 {
		t.Error("cache empty after concurrent inserts")
	}
}

func TestLRUList(t *testing.T) {
	var l lruList

	na := l.PushFront("a")
	l.PushFront("b")
	l.PushFront("c")
	if l.Len() != 3 {
		t.Fatalf("Len = %d, want 3", l.Len())
	}

	// a is oldest until moved to the front.
	l.MoveToFront(na)
	if key, ok := l.RemoveOldest(); !ok || key != "b" {
		t.Errorf("RemoveOldest = %q, %v, want b", key, ok)
	}

	l.Remove(na)
	if l.Len() != 1 {
		t.Errorf("Len = %d after removals, want 1", l.Len())
	}
	if key, ok := l.RemoveOldest(); !ok || key != "c" {
		t.Errorf("RemoveOldest = %q, %v, want c", key, ok)
	}

	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", l.Len())
	}
	if _, ok := l.RemoveOldest(); ok {
		t.Error("RemoveOldest on empty list reported a key")
	}
	l.Remove(nil)
	l.MoveToFront(nil)
}
