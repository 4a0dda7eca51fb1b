package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file (single format) or base path (multiple)
	formats string // comma-separated formats
	noCache bool
	stdout  bool // write a single artifact to stdout instead of a file
	opts    pipeline.Options
}

// renderCommand creates the render command for generating artifacts from a
// CSV export.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "render [file.csv]",
		Short: "Render a CSV export to DOT, SVG, CSV or JSON",
		Long: `Render a CSV export to one or more artifacts.

Formats:
  dot   Graphviz source, one node per point pinned at its offset from the base
  svg   the DOT source laid out with neato
  csv   the normalized export (fresh names, recomputed matrix)
  json  points, matrix and edges (needs at least two points)

With a single format the artifact goes to --output, or next to the input file.
With several formats --output is used as the base path.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ro.opts.Formats = pipeline.ParseFormats(ro.formats)
			if err := pipeline.ValidateFormats(ro.opts.Formats); err != nil {
				return err
			}
			if ro.stdout && len(ro.opts.Formats) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--stdout needs exactly one format")
			}
			return c.runRender(cmd.Context(), args[0], ro)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", pipeline.FormatSVG, "output format(s): dot, svg, csv, json (comma-separated)")
	cmd.Flags().BoolVar(&ro.opts.EdgeLabels, "labels", false, "label edges with their distance (dot, svg)")
	cmd.Flags().Float64Var(&ro.opts.Scale, "scale", 0, "Graphviz inches per degree of offset from the base (dot, svg)")
	cmd.Flags().BoolVar(&ro.opts.Refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&ro.stdout, "stdout", false, "write the artifact to stdout")

	return cmd
}

// runRender imports the input into a fresh engine and renders its points.
func (c *CLI) runRender(ctx context.Context, input string, ro renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	data, err := readInput(input)
	if err != nil {
		return err
	}
	engine := c.newEngine()
	if err := engine.Import(ctx, data); err != nil {
		return fmt.Errorf("import %s: %w", input, err)
	}
	pts := engine.Points()
	logger.Debugf("Loaded %d points from %s", len(pts), input)

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if ro.stdout {
		result, err := runner.Execute(ctx, pts, ro.opts)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(result.Artifacts[ro.opts.Formats[0]])
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(ro.opts.Formats, ", ")))
	spinner.Start()
	result, err := runner.Execute(ctx, pts, ro.opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	paths := outputPaths(ro.output, input, ro.opts.Formats)
	for _, format := range ro.opts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Rendered %s", filepath.Base(input))
	for _, format := range ro.opts.Formats {
		printFile(paths[format], len(result.Artifacts[format]))
	}
	printStats(result.Stats.PointCount, result.Stats.EdgeCount, result.CacheHit)
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(result.Artifacts)))
	printNextStep("Edit interactively", fmt.Sprintf("%s shell --load %s", appName, input))
	return nil
}

func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// outputPaths maps each format to its output file.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
		if paths[f] == input {
			paths[f] = base + "_mesh." + f
		}
	}
	return paths
}

// basePath derives the base output path from the output and input file
// paths. Known format extensions are stripped from either.
func basePath(output, input string) string {
	p := output
	if p == "" {
		if input == "-" {
			return "mesh"
		}
		p = input
	}
	ext := filepath.Ext(p)
	if slices.Contains(pipeline.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(p, ext)
	}
	if output == "" {
		return strings.TrimSuffix(p, ext)
	}
	return p
}
