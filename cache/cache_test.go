package cache

import "testing"

func TestGetSet(t *testing.T) {
	c := New[string, int](4)

	if _, ok := c.Get("a"); ok {
		t.Error("Get on empty cache succeeded")
	}

	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}

	c.Set("a", 2)
	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("Get(a) after update = %d", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestEviction(t *testing.T) {
	c := New[int, int](2)
	c.Set(1, 1)
	c.Set(2, 2)

	// Touch 1 so 2 becomes the eviction candidate.
	c.Get(1)
	c.Set(3, 3)

	if _, ok := c.Get(2); ok {
		t.Error("least recently used entry survived eviction")
	}
	if _, ok := c.Get(1); !ok {
		t.Error("recently used entry was evicted")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestGetOrSet(t *testing.T) {
	c := New[string, int](2)
	calls := 0
	fn := func() int { calls++; return 42 }

	if v := c.GetOrSet("k", fn); v != 42 {
		t.Errorf("GetOrSet = %d", v)
	}
	if v := c.GetOrSet("k", fn); v != 42 {
		t.Errorf("GetOrSet = %d", v)
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
}

func TestRemoveAndPurge(t *testing.T) {
	c := New[string, int](4)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Remove("a")
	if _, ok := c.Get("a"); ok {
		t.Error("removed entry still present")
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d", c.Len())
	}
}

func TestStats(t *testing.T) {
	c := New[string, int](2)
	c.Set("a", 1)
	c.Get("a")
	c.Get("missing")

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses", hits, misses)
	}
}
