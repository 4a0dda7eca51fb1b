package io

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/flightmesh/pkg/graph"
	"github.com/matzehuels/flightmesh/pkg/points"
)

const (
	// Header is the required first line of an export.
	Header = "Point Name,Latitude,Longitude,Color"

	// MatrixSentinel separates the point lines from the matrix lines.
	MatrixSentinel = "Adjacency Matrix"
)

// WriteCSV encodes pts and their freshly computed distance matrix to w.
func WriteCSV(w io.Writer, pts []points.Point) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(Header)
	bw.WriteByte('\n')
	for _, p := range pts {
		fmt.Fprintf(bw, "%d,%s,%s,%s,%s\n", p.ID, p.Name, formatFloat(p.Lat), formatFloat(p.Lng), p.Color)
	}

	bw.WriteString(MatrixSentinel)
	bw.WriteByte('\n')
	m := graph.Distances(pts)
	cells := make([]string, m.Len())
	for i := 0; i < m.Len(); i++ {
		for j := range cells {
			cells[j] = formatFloat(m.At(i, j))
		}
		bw.WriteString(strings.Join(cells, ","))
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// MarshalCSV returns the CSV export of pts as bytes.
func MarshalCSV(pts []points.Point) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, pts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportCSV writes the CSV export of pts to a file at path.
// This is a convenience wrapper around [WriteCSV] for file-based output.
func ExportCSV(pts []points.Point, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, pts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
