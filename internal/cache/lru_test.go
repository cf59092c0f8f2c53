package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := NewLRUCache[string](4, time.Minute)
	c.Set("a", "alpha")

	got, found := c.Get("a")
	if !found || got != "alpha" {
		t.Fatalf("Get(a) = %q, %v", got, found)
	}
	if _, found := c.Get("missing"); found {
		t.Fatal("missing key should not be found")
	}
}

func TestOverwrite(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	c.Set("k", 1)
	c.Set("k", 2)
	if got, _ := c.Get("k"); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
	if c.Size() != 1 {
		t.Fatalf("size = %d, want 1", c.Size())
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch a so b becomes the eviction candidate.
	c.Get("a")
	c.Set("c", 3)

	if _, found := c.Get("b"); found {
		t.Fatal("b should have been evicted")
	}
	if _, found := c.Get("a"); !found {
		t.Fatal("a should have survived")
	}
	if c.Size() != 2 {
		t.Fatalf("size = %d, want 2", c.Size())
	}
}

func TestExpiry(t *testing.T) {
	c := NewLRUCache[int](4, -time.Nanosecond)
	c.Set("k", 1)
	if _, found := c.Get("k"); found {
		t.Fatal("expired entry should not be returned")
	}
	if c.Size() != 0 {
		t.Fatalf("expired entry should be dropped on read, size = %d", c.Size())
	}
}

func TestPurge(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Purge()
	if c.Size() != 0 {
		t.Fatalf("size after purge = %d, want 0", c.Size())
	}
	if _, found := c.Get("a"); found {
		t.Fatal("purged entry should not be found")
	}

	// Cache remains usable after a purge.
	c.Set("c", 3)
	if got, found := c.Get("c"); !found || got != 3 {
		t.Fatalf("Get(c) after purge = %d, %v", got, found)
	}
}

func TestCleanExpired(t *testing.T) {
	c := NewLRUCache[int](4, -time.Nanosecond)
	c.Set("a", 1)
	c.Set("b", 2)

	if cleaned := c.CleanExpired(); cleaned != 2 {
		t.Fatalf("cleaned = %d, want 2", cleaned)
	}
	if c.Size() != 0 {
		t.Fatalf("size = %d, want 0", c.Size())
	}
}

func TestDelete(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	c.Set("a", 1)
	c.Delete("a")
	c.Delete("missing")
	if _, found := c.Get("a"); found {
		t.Fatal("deleted entry should not be found")
	}
}
