package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/render/table"
)

// matrixCommand creates the matrix command for printing a saved point set.
func (c *CLI) matrixCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "matrix [file.csv]",
		Short: "Print the coordinates and distance matrix of a CSV export",
		Long: `Print the coordinates and distance matrix of a CSV export.

The file is imported the same way the shell and server import it: the first
row is the base, every destination must be within range of it, and names are
re-derived from position. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMatrix(cmd.Context(), args[0], cmd.OutOrStdout())
		},
	}
}

func (c *CLI) runMatrix(ctx context.Context, input string, w io.Writer) error {
	data, err := readInput(input)
	if err != nil {
		return err
	}

	view := table.NewView()
	engine := c.newEngine(view)
	if err := engine.Import(ctx, data); err != nil {
		return fmt.Errorf("import %s: %w", input, err)
	}

	_, err = fmt.Fprint(w, view.String())
	return err
}

// readInput reads a whole input file, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}
