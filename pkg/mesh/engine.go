package mesh

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/graph"
	pkgio "github.com/matzehuels/flightmesh/pkg/io"
	"github.com/matzehuels/flightmesh/pkg/observability"
	"github.com/matzehuels/flightmesh/pkg/points"
)

// Options configures an [Engine].
type Options struct {
	// Store options (range, palette, base color, color picker).
	Store []points.Option

	// Renderers attached from the start.
	Renderers []Renderer

	// Logger for engine events. Nil uses log.Default().
	Logger *log.Logger
}

// Engine serializes user intent against a point store and publishes the
// resulting state to renderers.
type Engine struct {
	mu        sync.Mutex
	store     *points.Store
	renderers []Renderer
	logger    *log.Logger
}

// New creates an engine with an empty store.
func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		store:     points.NewStore(opts.Store...),
		renderers: append([]Renderer(nil), opts.Renderers...),
		logger:    logger,
	}
}

// Attach adds a renderer and immediately brings it up to date.
func (e *Engine) Attach(r Renderer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderers = append(e.renderers, r)

	pts := e.store.List()
	r.OnPointsChanged(pts)
	if m, err := graph.ComputeMatrix(pts); err == nil {
		r.OnMatrixChanged(m, pts)
	} else {
		r.OnMatrixCleared()
	}
}

// MaxRangeKm returns the range limit enforced for destinations.
func (e *Engine) MaxRangeKm() float64 {
	return e.store.MaxRangeKm()
}

// Points returns a copy of the current points in order.
func (e *Engine) Points() []points.Point {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.List()
}

// Matrix computes the distance matrix for the current points. It fails with
// INSUFFICIENT_POINTS when fewer than two points exist.
func (e *Engine) Matrix() (graph.Matrix, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return graph.ComputeMatrix(e.store.List())
}

// Snapshot returns the points, matrix and edges as one consistent value.
// It fails with INSUFFICIENT_POINTS when fewer than two points exist.
func (e *Engine) Snapshot() (graph.Graph, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return graph.Build(e.store.List())
}

// Add places a point. The first point becomes the base; later points must be
// within range of it.
func (e *Engine) Add(ctx context.Context, lat, lng float64) (points.Point, error) {
	if err := errors.ValidateCoordinate(lat, lng); err != nil {
		return points.Point{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	p, err := e.store.Add(lat, lng)
	e.record(ctx, "add", start, err)
	if err != nil {
		e.logger.Warn("add rejected", "lat", lat, "lng", lng, "err", errors.UserMessage(err))
		return p, err
	}
	e.logger.Debug("point added", "id", p.ID, "name", p.Name, "lat", lat, "lng", lng)
	e.publish(ctx)
	return p, nil
}

// Move relocates a point. A rejected destination move returns the point at
// its last valid position with an OUT_OF_RANGE error, and renderers get
// OnPointRejected so they can restore it.
func (e *Engine) Move(ctx context.Context, id int, lat, lng float64) (points.Point, error) {
	if err := errors.ValidateCoordinate(lat, lng); err != nil {
		return points.Point{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	p, err := e.store.Move(id, lat, lng)
	e.record(ctx, "move", start, err)
	if err != nil {
		if errors.Is(err, errors.ErrCodeOutOfRange) {
			e.logger.Warn("move rejected", "id", id, "err", errors.UserMessage(err))
			for _, r := range e.renderers {
				r.OnPointRejected(p.ID, p.Lat, p.Lng)
			}
		}
		return p, err
	}
	e.logger.Debug("point moved", "id", p.ID, "name", p.Name, "lat", lat, "lng", lng)
	e.publish(ctx)
	return p, nil
}

// Remove deletes the point with the given id.
func (e *Engine) Remove(ctx context.Context, id int) (points.Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	p, err := e.store.Remove(id)
	e.record(ctx, "remove", start, err)
	if err != nil {
		return p, err
	}
	e.logRemoved(p)
	e.publish(ctx)
	return p, nil
}

// RemoveAt deletes the point at the given position.
func (e *Engine) RemoveAt(ctx context.Context, index int) (points.Point, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	p, err := e.store.RemoveAt(index)
	e.record(ctx, "remove", start, err)
	if err != nil {
		return p, err
	}
	e.logRemoved(p)
	e.publish(ctx)
	return p, nil
}

func (e *Engine) logRemoved(p points.Point) {
	if p.IsBase() {
		if base, ok := e.store.Base(); ok {
			e.logger.Info("base removed, promoted next point", "id", base.ID)
			return
		}
	}
	e.logger.Debug("point removed", "id", p.ID, "name", p.Name)
}

// Clear removes every point.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	e.store.Clear()
	e.record(ctx, "clear", start, nil)
	e.logger.Debug("points cleared")
	e.publish(ctx)
}

// Export encodes the current points and their matrix as CSV.
func (e *Engine) Export(ctx context.Context) ([]byte, error) {
	e.mu.Lock()
	pts := e.store.List()
	e.mu.Unlock()

	start := time.Now()
	data, err := pkgio.MarshalCSV(pts)
	observability.Mesh().OnRender(ctx, "csv", len(data), time.Since(start), err)
	return data, err
}

// Import replaces the point set with the contents of a CSV export.
//
// Decoding, coordinate validation and the range check against the imported
// base all happen before the store changes; any failure leaves the current
// points in place. Ids are freshly assigned and names re-derived from
// position, so the file's own ids and names are not trusted.
func (e *Engine) Import(ctx context.Context, data []byte) error {
	recs, err := pkgio.UnmarshalCSV(data)
	if err != nil {
		return err
	}
	for i, r := range recs {
		if err := errors.ValidateCoordinate(r.Lat, r.Lng); err != nil {
			return errors.Wrap(errors.ErrCodeMalformedRecord, err, "point %d (%s)", i, r.Name)
		}
		if errors.ValidateColor(r.Color) != nil {
			recs[i].Color = ""
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	start := time.Now()
	err = e.store.Replace(pkgio.Seeds(recs))
	e.record(ctx, "import", start, err)
	if err != nil {
		e.logger.Warn("import rejected", "err", errors.UserMessage(err))
		return err
	}
	e.logger.Info("imported points", "points", len(recs))
	e.publish(ctx)
	return nil
}

// publish sends the current state to renderers. Callers hold e.mu.
func (e *Engine) publish(ctx context.Context) {
	pts := e.store.List()
	for _, r := range e.renderers {
		r.OnPointsChanged(pts)
	}

	start := time.Now()
	m, err := graph.ComputeMatrix(pts)
	observability.Mesh().OnRecompute(ctx, len(pts), time.Since(start), err)
	if err != nil {
		for _, r := range e.renderers {
			r.OnMatrixCleared()
		}
		return
	}
	for _, r := range e.renderers {
		r.OnMatrixChanged(m, pts)
	}
}

func (e *Engine) record(ctx context.Context, op string, start time.Time, err error) {
	observability.Mesh().OnMutation(ctx, op, e.store.Len(), time.Since(start), err)
}
