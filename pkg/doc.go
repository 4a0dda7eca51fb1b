// Package pkg provides the core libraries for flightmesh.
//
// # Overview
//
// Flightmesh keeps a base point (the drone's home) and a set of destinations
// that must all lie within flight range of it, and maintains the complete
// great-circle distance matrix between every pair of points. The pkg
// directory is organized into four areas:
//
//  1. Domain: [geo], [points], [graph], [mesh]
//  2. Formats: [io] (CSV export/import), [render/nodelink], [render/table]
//  3. Orchestration: [pipeline], [server]
//  4. Support: [cache], [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	add / move / remove / import
//	         ↓
//	    [mesh] engine (serializes edits, range checks via [points])
//	         ↓
//	    [graph] package (all-pairs distance matrix via [geo])
//	         ↓
//	    renderers: [render/table], [pipeline] (DOT/SVG/CSV/JSON), [server]
//
// # Quick Start
//
//	engine := mesh.New(mesh.Options{})
//	engine.Add(ctx, 50.0350, 22.0010) // base
//	engine.Add(ctx, 50.0400, 22.0100) // destination "A"
//
//	m, _ := engine.Matrix()
//	fmt.Printf("%.3f km\n", m.At(0, 1))
//
//	csv, _ := engine.Export(ctx)
//
// # Main Packages
//
// [geo] - Haversine distance on a spherical Earth (radius 6371 km).
//
// [points] - The ordered point store: the first point is the base, the rest
// are destinations named A..Z, AA.. by position. Enforces the maximum range.
//
// [graph] - The symmetric distance matrix, the complete edge list and the
// JSON snapshot combining them.
//
// [mesh] - The engine that applies user intent to the store and pushes the
// resulting state to renderers.
//
// [io] - The CSV export format (header, point rows, sentinel, matrix rows)
// and its tolerant reader.
//
// [render/nodelink] - Graphviz DOT generation with points pinned at their
// offsets from the base, and SVG rendering through go-graphviz.
//
// [render/table] - Terminal tables for coordinates and the matrix.
//
// [pipeline] - Format selection, defaults and cached rendering shared by the
// CLI and the HTTP server.
//
// [server] - The HTTP API over one engine.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/points/...   # Specific package
//	go test -run Example ./... # Examples only
//
// [geo]: https://pkg.go.dev/github.com/matzehuels/flightmesh/pkg/geo
// [points]: https://pkg.go.dev/github.com/matzehuels/flightmesh/pkg/points
// [graph]: https://pkg.go.dev/github.com/matzehuels/flightmesh/pkg/graph
// [mesh]: https://pkg.go.dev/github.com/matzehuels/flightmesh/pkg/mesh
// [io]: https://pkg.go.dev/github.com/matzehuels/flightmesh/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/flightmesh/pkg/render/nodelink
// [render/table]: https://pkg.go.dev/github.com/matzehuels/flightmesh/pkg/render/table
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/flightmesh/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/flightmesh/pkg/server
// [cache]: https://pkg.go.dev/github.com/matzehuels/flightmesh/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/flightmesh/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/flightmesh/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/flightmesh/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/flightmesh/pkg/buildinfo
package pkg
