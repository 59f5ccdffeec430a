package cache

import (
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New[float64](1 * time.Second)
	defer c.Close()

	c.Set("erode/bhavani", 812.5)

	val, found := c.Get("erode/bhavani")
	if !found {
		t.Fatal("Expected to find erode/bhavani")
	}
	if val != 812.5 {
		t.Errorf("Expected 812.5, got %v", val)
	}
}

func TestCache_MissReturnsZeroValue(t *testing.T) {
	c := New[[]int](time.Second)
	defer c.Close()

	val, found := c.Get("absent")
	if found {
		t.Error("Expected miss for absent key")
	}
	if val != nil {
		t.Errorf("Expected nil slice, got %v", val)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New[string](100 * time.Millisecond)
	defer c.Close()

	c.Set("key1", "value1")

	// Should exist immediately
	if _, found := c.Get("key1"); !found {
		t.Error("Expected to find key1 immediately")
	}

	time.Sleep(150 * time.Millisecond)

	if _, found := c.Get("key1"); found {
		t.Error("Expected key1 to be expired")
	}
}

func TestCache_SetWithTTLOverridesDefault(t *testing.T) {
	c := New[string](time.Hour)
	defer c.Close()

	c.SetWithTTL("short", "v", 50*time.Millisecond)
	time.Sleep(80 * time.Millisecond)

	if _, found := c.Get("short"); found {
		t.Error("Expected custom TTL to expire the entry")
	}
}

func TestCache_ClearAndPurge(t *testing.T) {
	c := New[int](time.Second)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	c.Clear("a")
	if _, found := c.Get("a"); found {
		t.Error("Expected a to be cleared")
	}
	if c.Len() != 2 {
		t.Errorf("Expected 2 entries after Clear, got %d", c.Len())
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("Expected 0 entries after Purge, got %d", c.Len())
	}
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	c := New[int](time.Second)
	c.Close()
	c.Close()
}
