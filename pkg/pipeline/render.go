package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/flightmesh/pkg/graph"
	pkgio "github.com/matzehuels/flightmesh/pkg/io"
	"github.com/matzehuels/flightmesh/pkg/points"
	"github.com/matzehuels/flightmesh/pkg/render/nodelink"
)

// Render produces every requested format for pts without caching.
// opts must already have defaults applied.
func Render(ctx context.Context, pts []points.Point, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)

		switch format {
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = nodelink.ToDOT(pts, opts.NodelinkOptions())
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = nodelink.RenderSVG(ctx, dot)
			}
		case FormatCSV:
			data, err = pkgio.MarshalCSV(pts)
		case FormatJSON:
			var g graph.Graph
			if g, err = graph.Build(pts); err == nil {
				data, err = graph.MarshalGraph(g)
			}
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
