package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching LLM responses. Keys are opaque;
// callers hash whatever shapes the response (provider, model, prompt).
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// HashKey builds a namespaced cache key from raw key material
func HashKey(material string) string {
	hash := sha256.Sum256([]byte(material))
	return "podcastify:v1:" + hex.EncodeToString(hash[:])
}
