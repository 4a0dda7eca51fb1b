package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flightmesh/pkg/cache"
	pkgio "github.com/matzehuels/flightmesh/pkg/io"
	"github.com/matzehuels/flightmesh/pkg/observability"
	"github.com/matzehuels/flightmesh/pkg/points"
)

// Runner renders artifacts with caching.
// Both CLI and server use it so cache keys stay identical.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Execute renders pts in every requested format, serving artifacts from the
// cache when all of them are present.
func (r *Runner) Execute(ctx context.Context, pts []points.Point, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	csv, err := pkgio.MarshalCSV(pts)
	if err != nil {
		return nil, err
	}
	result := &Result{
		PointsHash: cache.Hash(csv),
		Artifacts:  make(map[string][]byte, len(opts.Formats)),
	}
	result.Stats.PointCount = len(pts)
	result.Stats.EdgeCount = len(pts) * (len(pts) - 1) / 2

	start := time.Now()
	if !opts.Refresh {
		if arts, ok := r.fromCache(ctx, result.PointsHash, opts); ok {
			result.Artifacts = arts
			result.CacheHit = true
			result.Stats.RenderTime = time.Since(start)
			r.Logger.Debug("artifacts from cache", "formats", opts.Formats, "hash", result.PointsHash[:12])
			return result, nil
		}
	}

	arts, err := Render(ctx, pts, opts)
	result.Stats.RenderTime = time.Since(start)
	for _, f := range opts.Formats {
		observability.Mesh().OnRender(ctx, f, len(arts[f]), result.Stats.RenderTime, err)
	}
	if err != nil {
		return nil, err
	}
	result.Artifacts = arts

	for format, data := range arts {
		key := r.Keyer.ArtifactKey(result.PointsHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	r.Logger.Info("rendered artifacts",
		"points", result.Stats.PointCount,
		"edges", result.Stats.EdgeCount,
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)
	return result, nil
}

func (r *Runner) fromCache(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	arts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		arts[format] = data
	}
	return arts, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
