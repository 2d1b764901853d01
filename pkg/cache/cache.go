// Package cache provides caching of parsed module models.
//
// Running an external parser over every source file is the slow part of a
// generation run. The cache stores each parsed model under a key derived
// from the source path and a hash of its content, so unchanged files skip
// the parser on the next run.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, for CLI use
//   - [NullCache]: never stores anything (caching disabled)
//
// # Keys
//
// A [Keyer] builds keys; [ScopedKeyer] prefixes them so several projects
// can share one cache directory:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "project:"+cache.Hash([]byte(root))+":")
//	key := keyer.ModelKey("lua/jnvim/buffer.lua", cache.Hash(src), cache.ModelKeyOpts{Parser: cmd})
package cache

import (
	"context"
	"time"
)

// TTLModel is how long a parsed model stays cached. Content-addressed keys
// never go stale, so the TTL only bounds disk usage.
const TTLModel = 30 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data; a non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// ModelKeyOpts are the inputs besides the source that change a parse result.
type ModelKeyOpts struct {
	Parser string `json:"parser"` // parser command line, empty for model files
}

// Keyer generates cache keys.
type Keyer interface {
	// ModelKey returns the key of the model parsed from path with the
	// given content hash.
	ModelKey(path, contentHash string, opts ModelKeyOpts) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ModelKey returns "model:<sha256 of path, content hash and options>".
func (DefaultKeyer) ModelKey(path, contentHash string, opts ModelKeyOpts) string {
	return hashKey("model", path, contentHash, opts)
}
