package mesh

import (
	"github.com/matzehuels/flightmesh/pkg/graph"
	"github.com/matzehuels/flightmesh/pkg/points"
)

// Renderer receives state changes from an [Engine]. The slices passed in
// are shared between renderers and must be treated as read-only.
type Renderer interface {
	// OnPointsChanged delivers the full point list after a mutation.
	OnPointsChanged(pts []points.Point)

	// OnMatrixChanged delivers a freshly computed matrix for pts.
	OnMatrixChanged(m graph.Matrix, pts []points.Point)

	// OnMatrixCleared reports that fewer than two points remain, so any
	// drawn edges and matrix table should be removed.
	OnMatrixCleared()

	// OnPointRejected reports a move that broke the range rule. The point
	// stays at (lastLat, lastLng).
	OnPointRejected(id int, lastLat, lastLng float64)
}

// RendererFuncs adapts plain functions to [Renderer]. Nil fields are skipped.
type RendererFuncs struct {
	PointsChanged func(pts []points.Point)
	MatrixChanged func(m graph.Matrix, pts []points.Point)
	MatrixCleared func()
	PointRejected func(id int, lastLat, lastLng float64)
}

func (f RendererFuncs) OnPointsChanged(pts []points.Point) {
	if f.PointsChanged != nil {
		f.PointsChanged(pts)
	}
}

func (f RendererFuncs) OnMatrixChanged(m graph.Matrix, pts []points.Point) {
	if f.MatrixChanged != nil {
		f.MatrixChanged(m, pts)
	}
}

func (f RendererFuncs) OnMatrixCleared() {
	if f.MatrixCleared != nil {
		f.MatrixCleared()
	}
}

func (f RendererFuncs) OnPointRejected(id int, lastLat, lastLng float64) {
	if f.PointRejected != nil {
		f.PointRejected(id, lastLat, lastLng)
	}
}

var _ Renderer = RendererFuncs{}
