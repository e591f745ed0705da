package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// DictionaryKey returns the cache key for a dictionary table built from a
// word list. The key covers the table kind, the word list content and the
// extension table, since path codes change with the extension type ids.
func DictionaryKey(kind string, words []byte, extensions map[string]uint64) string {
	return hashKey("dict:"+kind, Hash(words), extensions)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	// encoding/json sorts map keys, so equal maps give equal keys.
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
