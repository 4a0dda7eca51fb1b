package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/graph"
	"github.com/matzehuels/flightmesh/pkg/points"
)

// DefaultScale is the number of Graphviz inches per degree of offset.
const DefaultScale = 50

// Options configures DOT generation.
type Options struct {
	// EdgeLabels writes the distance in km on each edge.
	EdgeLabels bool

	// Scale converts degree offsets to inches. Zero means DefaultScale.
	Scale float64
}

// ToDOT converts pts to Graphviz DOT source for the neato engine.
// Any number of points is accepted; fewer than two simply yields no edges.
func ToDOT(pts []points.Point, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fontsize=14, width=0.4, fixedsize=true];\n")
	buf.WriteString("  edge [color=\"#555555\", fontsize=10];\n")
	buf.WriteString("\n")

	var originLat, originLng float64
	if len(pts) > 0 {
		originLat, originLng = pts[0].Lat, pts[0].Lng
	}
	for i, p := range pts {
		x := (p.Lng - originLng) * scale
		y := (p.Lat - originLat) * scale
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(p), strings.Join(fmtAttrs(p, i == 0, x, y), ", "))
	}

	if len(pts) >= 2 {
		buf.WriteString("\n")
		m := graph.Distances(pts)
		for _, e := range graph.Edges(pts, m) {
			from, to := pts[e.From], pts[e.To]
			if opts.EdgeLabels {
				fmt.Fprintf(&buf, "  %s -- %s [label=%q];\n", nodeID(from), nodeID(to), fmtDistance(e.DistanceKm))
			} else {
				fmt.Fprintf(&buf, "  %s -- %s;\n", nodeID(from), nodeID(to))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(p points.Point) string {
	return strconv.Quote("p" + strconv.Itoa(p.ID))
}

func fmtAttrs(p points.Point, base bool, x, y float64) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", p.Name),
		fmt.Sprintf("pos=\"%.4f,%.4f!\"", x, y),
		fmt.Sprintf("fillcolor=%q", p.Color),
		fmt.Sprintf("tooltip=\"%.6f, %.6f\"", p.Lat, p.Lng),
	}
	if base {
		attrs = append(attrs, "shape=doublecircle", "fontcolor=white", "width=0.9", "fontsize=10")
	}
	return attrs
}

func fmtDistance(km float64) string {
	return strconv.FormatFloat(km, 'f', 2, 64) + " km"
}

// RenderSVG lays out and renders DOT source to SVG in-process.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	gv.SetLayout(graphviz.NEATO)

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([-0-9.]+)\s+([-0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing starts at the
// origin and carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
