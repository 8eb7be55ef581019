package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// SolveKeyOpts carries the solve options that affect the cached result.
// Two requests with the same profile hash and the same options are
// interchangeable.
type SolveKeyOpts struct {
	Total float64 `json:"total"`
	Round bool    `json:"round"`
}

// Keyer generates cache keys for solver results.
type Keyer interface {
	// SolveKey generates a key for a solved allocation. profileHash is the
	// hash of the profile's canonical JSON.
	SolveKey(profileHash string, opts SolveKeyOpts) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer without any scoping prefix.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// SolveKey generates a key of the form "solve:<sha256>".
func (k *DefaultKeyer) SolveKey(profileHash string, opts SolveKeyOpts) string {
	return hashKey("solve", profileHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so multiple deployments can share
// one backend without colliding.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SolveKey generates a prefixed solve key.
func (k *ScopedKeyer) SolveKey(profileHash string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.SolveKey(profileHash, opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to rule out collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
