// Package cache stores rendered artifacts keyed by the point set that
// produced them.
//
// Two backends implement [Cache]: [FileCache] for the CLI (entries under
// the XDG cache directory) and [RedisCache] for servers that share a cache.
// [NullCache] disables caching. Keys come from a [Keyer] so callers can
// namespace them (see [ScopedKeyer]).
package cache

import (
	"context"
	"time"
)

// TTLArtifact is the default lifetime of a rendered artifact.
const TTLArtifact = 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for an artifact rendered from the point
	// set whose CSV export hashes to pointsHash.
	ArtifactKey(pointsHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds everything besides the points that changes an
// artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	EdgeLabels bool    `json:"edge_labels"`
	Scale      float64 `json:"scale"`
}

// DefaultKeyer produces unscoped keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(pointsHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", pointsHash, opts)
}
