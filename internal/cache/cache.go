package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for the pipeline memoization caches
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// TextKey generates a cache key from a single text input
func TextKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "truthlens:v1:" + hex.EncodeToString(hash[:])
}

// PairKey generates a cache key for a (claim, evidence) pair. Only the
// leading portion of each side participates so near-identical long texts
// share an entry, matching how classification prompts are truncated.
func PairKey(claim, evidence string) string {
	const keyChars = 100
	return TextKey(head(claim, keyChars) + "||" + head(evidence, keyChars))
}

func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
