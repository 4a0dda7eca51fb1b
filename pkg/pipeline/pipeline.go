// Package pipeline turns a point set into output artifacts.
//
// The CLI (render command), the HTTP server (graph endpoints) and the
// interactive shell all produce the same artifacts, so the format list,
// defaults and caching live here.
//
// # Formats
//
//   - dot: Graphviz source of the complete graph
//   - svg: the DOT source laid out and rendered with neato
//   - csv: the export format (points plus matrix)
//   - json: points, matrix and edges as one snapshot (needs two points)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pts, pipeline.Options{
//	    Formats:    []string{"svg", "csv"},
//	    EdgeLabels: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/flightmesh/pkg/cache"
	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/render/nodelink"
)

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Formats lists the supported output formats in display order.
var Formats = []string{FormatDOT, FormatSVG, FormatCSV, FormatJSON}

// ContentTypes maps formats to HTTP content types.
var ContentTypes = map[string]string{
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	FormatSVG:  "image/svg+xml",
	FormatCSV:  "text/csv; charset=utf-8",
	FormatJSON: "application/json",
}

// Options configures a render run.
type Options struct {
	Formats    []string `json:"formats,omitempty"`
	EdgeLabels bool     `json:"edge_labels,omitempty"`
	Scale      float64  `json:"scale,omitempty"`

	// Refresh bypasses cached artifacts (they are still rewritten).
	Refresh bool `json:"refresh,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// PointsHash is the content hash of the rendered point set.
	PointsHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether every artifact came from cache.
	CacheHit bool
}

// Stats contains run statistics.
type Stats struct {
	PointCount int
	EdgeCount  int
	RenderTime time.Duration
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, Formats...)
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated flag value, dropping blanks and
// duplicates.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// ValidateAndSetDefaults fills defaults and validates the options.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = nodelink.DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// NodelinkOptions returns the DOT options for this run.
func (o *Options) NodelinkOptions() nodelink.Options {
	return nodelink.Options{EdgeLabels: o.EdgeLabels, Scale: o.Scale}
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		EdgeLabels: o.EdgeLabels,
		Scale:      o.Scale,
	}
}
