package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/segmentio/encoding/json"
)

// Key builds a cache key as prefix:sha256(parts).
// Parts are JSON-encoded before hashing, so struct options can be passed
// directly.
func Key(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
