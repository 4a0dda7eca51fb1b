package graph

import "github.com/matzehuels/flightmesh/pkg/points"

// Edge is one undirected connection of the complete graph.
type Edge struct {
	From       int     `json:"from"` // index into the point list
	To         int     `json:"to"`
	DistanceKm float64 `json:"distance_km"`
}

// Edges returns one edge per unordered pair (i, j) with i < j, in
// lexicographic order. m must have been computed from a list of len(pts).
func Edges(pts []points.Point, m Matrix) []Edge {
	n := min(len(pts), m.Len())
	edges := make([]Edge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, Edge{From: i, To: j, DistanceKm: m.At(i, j)})
		}
	}
	return edges
}
