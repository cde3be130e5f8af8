package cache

import "testing"

func TestLRU_GetSet(t *testing.T) {
	c := NewLRU[string](2)

	if _, ok := c.Get("a"); ok {
		t.Error("Get on empty cache reports a hit")
	}

	c.Set("a", "1")
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = (%q, %v), want (1, true)", v, ok)
	}

	c.Set("a", "2")
	if v, _ := c.Get("a"); v != "2" {
		t.Errorf("Get(a) after overwrite = %q, want 2", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU[int](2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // a is now the most recently used
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction, want it evicted as least recently used")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a was evicted despite a recent hit")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("c missing after insert")
	}
}

func TestLRU_Delete(t *testing.T) {
	c := NewLRU[int](4)
	c.Set("a", 1)
	c.Delete("a")
	c.Delete("a") // absent delete is a no-op

	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) after delete reports a hit")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestNewLRU_MinimumSize(t *testing.T) {
	c := NewLRU[int](0)
	c.Set("a", 1)
	c.Set("b", 2)

	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 with clamped capacity", c.Len())
	}
}
