package cache

import (
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected a miss for an unknown key")
	}

	if err := c.Set("key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok := c.Get("key")
	if !ok || string(got) != "value" {
		t.Errorf("expected (value, true), got (%q, %v)", got, ok)
	}

	if err := c.Delete("key"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := c.Get("key"); ok {
		t.Error("expected a miss after delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("key", []byte("value"), 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("key"); ok {
		t.Error("expected the entry to expire")
	}
}

func TestMemoryCacheClear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("a", []byte("1"), time.Minute)
	_ = c.Set("b", []byte("2"), time.Minute)

	if err := c.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("expected a miss after clear")
	}
}

func TestTextKeyStable(t *testing.T) {
	if TextKey("same input") != TextKey("same input") {
		t.Error("expected identical keys for identical input")
	}
	if TextKey("one input") == TextKey("another input") {
		t.Error("expected different keys for different input")
	}
}

func TestPairKeyUsesLeadingText(t *testing.T) {
	longA := make([]byte, 200)
	longB := make([]byte, 200)
	for i := range longA {
		longA[i] = 'a'
		longB[i] = 'a'
	}
	// Differ only past the keyed prefix
	longB[150] = 'b'

	if PairKey("claim", string(longA)) != PairKey("claim", string(longB)) {
		t.Error("expected keys to ignore text past the prefix")
	}
	if PairKey("claim one", "evidence") == PairKey("claim two", "evidence") {
		t.Error("expected different keys for different claims")
	}
}
