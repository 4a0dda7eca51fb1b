package graph

import (
	"slices"

	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/geo"
	"github.com/matzehuels/flightmesh/pkg/points"
)

// MinPoints is the smallest point count that forms a graph: the base and
// one destination.
const MinPoints = 2

// Matrix is a square, symmetric table of pairwise distances in kilometers.
// Row and column order follow the point list it was computed from.
type Matrix struct {
	cells [][]float64
}

// Len returns the number of rows (and columns).
func (m Matrix) Len() int { return len(m.cells) }

// At returns the distance between points i and j.
// It panics if i or j is out of range, like a slice index.
func (m Matrix) At(i, j int) float64 { return m.cells[i][j] }

// Rows returns a deep copy of the cells.
func (m Matrix) Rows() [][]float64 {
	out := make([][]float64, len(m.cells))
	for i, row := range m.cells {
		out[i] = slices.Clone(row)
	}
	return out
}

// Row returns a copy of row i.
func (m Matrix) Row(i int) []float64 {
	return slices.Clone(m.cells[i])
}

// ComputeMatrix returns the all-pairs distance matrix for pts.
// It fails with INSUFFICIENT_POINTS when fewer than [MinPoints] are given.
func ComputeMatrix(pts []points.Point) (Matrix, error) {
	if len(pts) < MinPoints {
		return Matrix{}, errors.New(errors.ErrCodeInsufficientPoints,
			"need at least %d points (base and one destination), have %d", MinPoints, len(pts))
	}
	return Distances(pts), nil
}

// Distances returns the matrix for pts of any size, including 0 and 1.
// The CSV export uses it so a single-point snapshot still carries its 1×1
// matrix; use [ComputeMatrix] when a renderable graph is required.
func Distances(pts []points.Point) Matrix {
	n := len(pts)
	cells := make([][]float64, n)
	for i := range cells {
		cells[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := geo.DistanceKm(pts[i].Lat, pts[i].Lng, pts[j].Lat, pts[j].Lng)
			cells[i][j] = d
			cells[j][i] = d
		}
	}
	return Matrix{cells: cells}
}
