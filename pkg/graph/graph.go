package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/matzehuels/flightmesh/pkg/points"
)

// Graph is a consistent snapshot: the matrix and edges were derived from
// exactly these points, in this order.
type Graph struct {
	Points []points.Point `json:"points"`
	Matrix Matrix         `json:"matrix"`
	Edges  []Edge         `json:"edges"`
}

// Build copies pts and derives the matrix and edge set from the copy.
// It fails with INSUFFICIENT_POINTS like [ComputeMatrix].
func Build(pts []points.Point) (Graph, error) {
	pts = slices.Clone(pts)
	m, err := ComputeMatrix(pts)
	if err != nil {
		return Graph{}, err
	}
	return Graph{Points: pts, Matrix: m, Edges: Edges(pts, m)}, nil
}

// MarshalJSON encodes the matrix as a nested array of kilometers.
func (m Matrix) MarshalJSON() ([]byte, error) {
	if m.cells == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(m.cells)
}

// MarshalGraph converts a graph snapshot to indented JSON bytes.
func MarshalGraph(g Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph snapshot as JSON to an io.Writer.
func WriteGraph(g Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
