// Package io provides CSV import and export for flightmesh point sets.
//
// # Overview
//
// An export is a complete, self-contained snapshot: the point list plus the
// distance matrix derived from it. The format is line-oriented and
// comma-separated with no quoting or escaping:
//
//	Point Name,Latitude,Longitude,Color
//	0,UAV BASE,50.035,22.001,blue
//	1,A,50.06,22.05,red
//	Adjacency Matrix
//	0,4.468701606426741
//	4.468701606426741,0
//
// The header line is required. Each point line holds id, name, latitude,
// longitude and color. The literal "Adjacency Matrix" line switches to the
// matrix section: N lines of N distances in kilometers. Floats are written
// with the shortest text that parses back to the same value.
//
// # Export
//
// Use [WriteCSV] to write to any io.Writer, [MarshalCSV] for bytes, or
// [ExportCSV] for a file. The matrix is recomputed at export time from the
// points being written; nothing cached is trusted.
//
// # Import
//
// Use [ReadCSV], [UnmarshalCSV] or [ImportCSV]. Blank lines are skipped.
// Point lines must have five fields (four are also accepted: the older
// name,lat,lng,color layout) and numeric coordinates; otherwise the import
// fails with a MALFORMED_RECORD error naming the line. Matrix lines must be
// numeric and square with the point count, but their values are discarded:
// distances are always re-derived from coordinates.
//
// Import does not enforce range or naming rules. Names and ids in the file
// are informational; feed the records through points.Store.Replace (or the
// mesh engine's Import) to rebuild a valid store.
package io
