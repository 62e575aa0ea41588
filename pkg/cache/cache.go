// Package cache provides pluggable byte caches for pipeline results.
//
// Two things are cached: built diagram graphs (keyed on the document's
// content hash plus build options) and rendered artifacts (keyed on the
// graph hash plus render options). Backends:
//
//   - FileCache: directory-based, for the CLI
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
//
// Keyers translate domain identifiers into cache keys; ScopedKeyer adds
// a namespace prefix for multi-tenant deployments.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was found; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Cache TTLs per payload type. Graphs are cheap to rebuild but small;
// artifacts are larger and more expensive, so both keep a day.
const (
	TTLGraph    = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// GraphKeyOpts carries the build options that affect graph identity.
type GraphKeyOpts struct {
	Kind      string // input kind: json or xml
	MaxDepth  int
	RootLabel string
}

// ArtifactKeyOpts carries the render options that affect artifact identity.
type ArtifactKeyOpts struct {
	Format   string // dot, svg, png, pdf, json
	Detailed bool
	RankDir  string
	Scale    float64
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// GraphKey generates a key for a built diagram graph.
	GraphKey(docHash string, opts GraphKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a built diagram graph.
func (k *DefaultKeyer) GraphKey(docHash string, opts GraphKeyOpts) string {
	return hashKey("graph", docHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}
