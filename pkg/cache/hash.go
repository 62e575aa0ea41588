package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the SHA-256 hex digest of data. It is the content hash
// used throughout the pipeline: documents hash to graph cache keys and
// serialized graphs hash to artifact cache keys, so identical input
// always lands on the same entry regardless of file name or timestamp.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a namespaced cache key: "prefix:<hash of parts>".
// Parts typically pair a content hash with the option set that shaped
// the payload (build options for graphs, render options for artifacts),
// so changing an option can never serve a stale entry. The full 256-bit
// digest is kept; truncating would invite collisions between documents.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
