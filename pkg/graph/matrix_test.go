package graph

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/geo"
	"github.com/matzehuels/flightmesh/pkg/points"
)

func testPoints() []points.Point {
	return []points.Point{
		{ID: 0, Name: points.BaseName, Lat: 50.035, Lng: 22.001, Color: points.BaseColor},
		{ID: 1, Name: "A", Lat: 50.06, Lng: 22.05, Color: "red"},
		{ID: 2, Name: "B", Lat: 50.01, Lng: 21.98, Color: "gold"},
		{ID: 5, Name: "C", Lat: 50.04, Lng: 22.03, Color: "grey"},
	}
}

func TestComputeMatrixInsufficientPoints(t *testing.T) {
	tests := []struct {
		name string
		pts  []points.Point
	}{
		{"nil", nil},
		{"empty", []points.Point{}},
		{"base only", testPoints()[:1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ComputeMatrix(tt.pts)
			if !errors.Is(err, errors.ErrCodeInsufficientPoints) {
				t.Errorf("ComputeMatrix() error = %v, want INSUFFICIENT_POINTS", err)
			}
			if m.Len() != 0 {
				t.Errorf("Len() = %d, want 0 (no partial computation)", m.Len())
			}
		})
	}
}

func TestComputeMatrixProperties(t *testing.T) {
	pts := testPoints()
	m, err := ComputeMatrix(pts)
	if err != nil {
		t.Fatalf("ComputeMatrix() error: %v", err)
	}
	if m.Len() != len(pts) {
		t.Fatalf("Len() = %d, want %d", m.Len(), len(pts))
	}

	for i := range pts {
		if m.At(i, i) != 0 {
			t.Errorf("At(%d,%d) = %v, want 0", i, i, m.At(i, i))
		}
		for j := range pts {
			if m.At(i, j) != m.At(j, i) {
				t.Errorf("At(%d,%d) = %v, At(%d,%d) = %v, want symmetric", i, j, m.At(i, j), j, i, m.At(j, i))
			}
			if m.At(i, j) < 0 {
				t.Errorf("At(%d,%d) = %v, want non-negative", i, j, m.At(i, j))
			}
			want := geo.DistanceKm(pts[i].Lat, pts[i].Lng, pts[j].Lat, pts[j].Lng)
			if math.Abs(m.At(i, j)-want) > 1e-12 {
				t.Errorf("At(%d,%d) = %v, want %v", i, j, m.At(i, j), want)
			}
		}
	}
}

func TestMatrixRowsIsCopy(t *testing.T) {
	m, _ := ComputeMatrix(testPoints())
	rows := m.Rows()
	rows[0][1] = -1
	if m.At(0, 1) < 0 {
		t.Error("matrix mutated through Rows()")
	}
	row := m.Row(1)
	row[0] = -1
	if m.At(1, 0) < 0 {
		t.Error("matrix mutated through Row()")
	}
}

func TestDistancesSmall(t *testing.T) {
	if m := Distances(nil); m.Len() != 0 {
		t.Errorf("Distances(nil).Len() = %d, want 0", m.Len())
	}
	m := Distances(testPoints()[:1])
	if m.Len() != 1 || m.At(0, 0) != 0 {
		t.Errorf("Distances(1 point) = %v, want [[0]]", m.Rows())
	}
}

func TestEdges(t *testing.T) {
	pts := testPoints()
	m, _ := ComputeMatrix(pts)
	edges := Edges(pts, m)

	if want := len(pts) * (len(pts) - 1) / 2; len(edges) != want {
		t.Fatalf("len(Edges) = %d, want %d", len(edges), want)
	}
	seen := map[[2]int]bool{}
	for _, e := range edges {
		if e.From >= e.To {
			t.Errorf("edge %d->%d not ordered", e.From, e.To)
		}
		key := [2]int{e.From, e.To}
		if seen[key] {
			t.Errorf("duplicate edge %v", key)
		}
		seen[key] = true
		if e.DistanceKm != m.At(e.From, e.To) {
			t.Errorf("edge %v distance = %v, want %v", key, e.DistanceKm, m.At(e.From, e.To))
		}
	}
}

func TestBuild(t *testing.T) {
	pts := testPoints()
	g, err := Build(pts)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	pts[0].Lat = 0
	if g.Points[0].Lat == 0 {
		t.Error("Build() did not copy the point list")
	}
	if g.Matrix.Len() != len(g.Points) {
		t.Errorf("matrix size %d disagrees with %d points", g.Matrix.Len(), len(g.Points))
	}

	if _, err := Build(pts[:1]); !errors.Is(err, errors.ErrCodeInsufficientPoints) {
		t.Errorf("Build(1 point) error = %v, want INSUFFICIENT_POINTS", err)
	}
}

func TestMarshalGraph(t *testing.T) {
	g, _ := Build(testPoints()[:2])
	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph() error: %v", err)
	}

	var decoded struct {
		Points []points.Point `json:"points"`
		Matrix [][]float64    `json:"matrix"`
		Edges  []Edge         `json:"edges"`
	}
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Points) != 2 || len(decoded.Matrix) != 2 || len(decoded.Edges) != 1 {
		t.Errorf("decoded = %d points, %d rows, %d edges; want 2, 2, 1",
			len(decoded.Points), len(decoded.Matrix), len(decoded.Edges))
	}
	if decoded.Matrix[0][1] != g.Matrix.At(0, 1) {
		t.Errorf("matrix[0][1] = %v, want %v", decoded.Matrix[0][1], g.Matrix.At(0, 1))
	}
}

func TestMarshalEmptyMatrix(t *testing.T) {
	data, err := json.Marshal(Matrix{})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("Marshal(empty) = %s, want []", data)
	}
}
