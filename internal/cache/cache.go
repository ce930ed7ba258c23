package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for completion caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from the parts identifying a completion:
// provider, model and the full prompt text
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "verbatim:v1:" + hex.EncodeToString(hash[:])
}

// Noop is a cache that stores nothing, used when caching is disabled
type Noop struct{}

// NewNoop creates a disabled cache
func NewNoop() *Noop {
	return &Noop{}
}

func (Noop) Get(string) ([]byte, bool) { return nil, false }

func (Noop) Set(string, []byte, time.Duration) error { return nil }

func (Noop) Delete(string) error { return nil }

func (Noop) Clear() error { return nil }
