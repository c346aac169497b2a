package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New[int](2, time.Minute)
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = (%d, %v), want (1, true)", v, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}

func TestEviction(t *testing.T) {
	c := New[string](2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a") // a is now most recently used
	c.Set("c", "3")
	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("recently used entry should survive eviction")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestExpiry(t *testing.T) {
	c := New[int](4, 10*time.Millisecond)
	c.Set("a", 1)
	time.Sleep(25 * time.Millisecond)
	if _, ok := c.Get("a"); ok {
		t.Error("expired entry should not be returned")
	}
}

func TestPurge(t *testing.T) {
	c := New[int](4, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Len() after Purge = %d, want 0", c.Len())
	}
}
