// Package nodelink draws a point set as a complete undirected graph using
// Graphviz.
//
// # Overview
//
// Every point becomes a node pinned at its map position and every unordered
// pair of points becomes one edge, optionally labelled with its great-circle
// distance. The base is drawn as a double circle.
//
// # Usage
//
//	dot := nodelink.ToDOT(pts, nodelink.Options{EdgeLabels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Positions
//
// Nodes carry pos="x,y!" attributes: longitude and latitude offsets from the
// base, multiplied by [Options.Scale]. The "!" pins them, so the neato
// engine keeps the map geometry instead of running its spring layout.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
