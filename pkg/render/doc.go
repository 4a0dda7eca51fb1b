// Package render turns a flightmesh point set into something to look at.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage draws the complete distance graph with Graphviz:
// one pinned node per point and one edge per unordered pair.
//
//	dot := nodelink.ToDOT(pts, nodelink.Options{EdgeLabels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Terminal Tables
//
// The [table] subpackage prints the coordinates table and the distance
// matrix with lipgloss, and provides a [table.View] that implements the
// engine's renderer contract for interactive sessions.
//
// [nodelink]: github.com/matzehuels/flightmesh/pkg/render/nodelink
// [table]: github.com/matzehuels/flightmesh/pkg/render/table
// [table.View]: github.com/matzehuels/flightmesh/pkg/render/table#View
package render
