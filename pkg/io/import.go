package io

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/flightmesh/pkg/errors"
	"github.com/matzehuels/flightmesh/pkg/points"
)

// maxLine bounds a single matrix line; a 16 MiB line is roughly 700k cells.
const maxLine = 16 << 20

// Record is one point line as read from a file.
type Record struct {
	ID    int
	Name  string
	Lat   float64
	Lng   float64
	Color string
}

// Seeds converts records to store seeds, keeping order and color.
func Seeds(recs []Record) []points.Seed {
	seeds := make([]points.Seed, len(recs))
	for i, r := range recs {
		seeds[i] = points.Seed{Lat: r.Lat, Lng: r.Lng, Color: r.Color}
	}
	return seeds
}

// ReadCSV decodes a CSV export from r.
//
// Parsing is all-or-nothing: the first malformed line aborts the read with a
// MALFORMED_RECORD error and no records are returned. ReadCSV does not
// close r.
func ReadCSV(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var (
		recs       []Record
		rows       int
		lineNo     int
		seenHeader bool
		inMatrix   bool
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		switch {
		case !seenHeader:
			line = strings.TrimPrefix(line, "\ufeff")
			if line != Header {
				return nil, malformed(lineNo, "expected header %q, got %q", Header, line)
			}
			seenHeader = true
		case line == MatrixSentinel:
			if inMatrix {
				return nil, malformed(lineNo, "duplicate %q line", MatrixSentinel)
			}
			inMatrix = true
		case inMatrix:
			if err := checkMatrixRow(line, len(recs)); err != nil {
				return nil, malformed(lineNo, "%v", err)
			}
			rows++
		default:
			rec, err := parseRecord(line, len(recs))
			if err != nil {
				return nil, malformed(lineNo, "%v", err)
			}
			recs = append(recs, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedRecord, err, "read line %d", lineNo+1)
	}

	if !seenHeader {
		return nil, errors.New(errors.ErrCodeMalformedRecord, "missing header line")
	}
	if inMatrix && rows != len(recs) {
		return nil, errors.New(errors.ErrCodeMalformedRecord,
			"matrix has %d rows, want %d (one per point)", rows, len(recs))
	}
	return recs, nil
}

// UnmarshalCSV decodes a CSV export held in memory.
func UnmarshalCSV(data []byte) ([]Record, error) {
	return ReadCSV(bytes.NewReader(data))
}

// ImportCSV reads a CSV export from the file at path.
//
// ImportCSV returns the same MALFORMED_RECORD errors as [ReadCSV]; failures
// to open the file are returned wrapped with the path.
func ImportCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// parseRecord parses "id,name,lat,lng,color" or the older
// "name,lat,lng,color". index becomes the id of an older record.
func parseRecord(line string, index int) (Record, error) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var rec Record
	switch len(fields) {
	case 5:
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return Record{}, fmt.Errorf("id %q is not an integer", fields[0])
		}
		rec.ID = id
		fields = fields[1:]
	case 4:
		rec.ID = index
	default:
		return Record{}, fmt.Errorf("point line has %d fields, want 5 (id,name,lat,lng,color)", len(fields))
	}

	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Record{}, fmt.Errorf("latitude %q is not a number", fields[1])
	}
	lng, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Record{}, fmt.Errorf("longitude %q is not a number", fields[2])
	}

	rec.Name = fields[0]
	rec.Lat = lat
	rec.Lng = lng
	rec.Color = fields[3]
	return rec, nil
}

func checkMatrixRow(line string, n int) error {
	cells := strings.Split(line, ",")
	if len(cells) != n {
		return fmt.Errorf("matrix row has %d cells, want %d", len(cells), n)
	}
	for _, c := range cells {
		if _, err := strconv.ParseFloat(strings.TrimSpace(c), 64); err != nil {
			return fmt.Errorf("matrix cell %q is not a number", c)
		}
	}
	return nil
}

func malformed(line int, format string, args ...any) error {
	return errors.New(errors.ErrCodeMalformedRecord, "line %d: %s", line, fmt.Sprintf(format, args...))
}
