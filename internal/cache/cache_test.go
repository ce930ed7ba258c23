package cache

import (
	"bytes"
	"testing"
	"time"
)

func TestKey_StableAndDistinct(t *testing.T) {
	a := Key("openai", "gpt-4o-mini", "prompt one")
	b := Key("openai", "gpt-4o-mini", "prompt one")
	c := Key("openai", "gpt-4o-mini", "prompt two")

	if a != b {
		t.Error("same parts must produce the same key")
	}
	if a == c {
		t.Error("different prompts must produce different keys")
	}
	if Key("a", "bc") == Key("ab", "c") {
		t.Error("part boundaries must affect the key")
	}
}

func TestMemory_RoundTrip(t *testing.T) {
	c := NewMemory(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set("k", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := c.Get("k")
	if !found || !bytes.Equal(got, []byte("value")) {
		t.Errorf("Get = (%q, %v), want (value, true)", got, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("expected miss after delete")
	}
}

func TestDisk_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := NewDisk(dir, time.Minute)

	key := Key("test", "prompt")
	if err := c.Set(key, []byte("cached completion"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := c.Get(key)
	if !found || string(got) != "cached completion" {
		t.Errorf("Get = (%q, %v), want hit", got, found)
	}
}

func TestDisk_Expiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDisk(dir, time.Minute)

	key := Key("test", "expired")
	if err := c.Set(key, []byte("old"), -time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, found := c.Get(key); found {
		t.Error("expected expired entry to miss")
	}
}

func TestLayered_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()

	// Seed only the disk layer
	disk := NewDisk(dir, time.Minute)
	key := Key("layered", "prompt")
	if err := disk.Set(key, []byte("from disk"), time.Minute); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	c := NewLayered(time.Minute, dir, time.Minute)

	got, found := c.Get(key)
	if !found || string(got) != "from disk" {
		t.Fatalf("expected disk hit, got (%q, %v)", got, found)
	}

	// Now present in the memory layer too
	if _, found := c.memory.Get(key); !found {
		t.Error("expected disk hit to be promoted to memory")
	}
}

func TestNoop(t *testing.T) {
	c := NewNoop()

	if err := c.Set("k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("noop cache must never hit")
	}
}
