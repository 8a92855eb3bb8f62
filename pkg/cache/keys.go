package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// LibraryKey generates a cache key for a fetched definition library.
func LibraryKey(url string) string {
	return "library:" + Hash([]byte(url))
}

// ArtifactKey generates a cache key for a rendered artifact.
// docHash identifies the serialized document content; format is the
// output format ("svg", "png", "dot").
func ArtifactKey(docHash, format string) string {
	return fmt.Sprintf("artifact:%s:%s", docHash, format)
}
