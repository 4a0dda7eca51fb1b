// Package server exposes a flightmesh engine over HTTP.
//
// # Routes
//
//	GET    /healthz                liveness and version
//	GET    /points                 current points
//	POST   /points                 add {"lat":..,"lng":..}
//	DELETE /points                 clear
//	PUT    /points/{id}            move {"lat":..,"lng":..}
//	DELETE /points/{id}            remove by id
//	DELETE /points/index/{index}   remove by position
//	GET    /matrix                 points, matrix and edges
//	GET    /export                 CSV export
//	POST   /import                 replace points from a CSV body
//	GET    /graph.dot, /graph.svg  rendered graph (?labels=true)
//
// # Errors
//
// Failures are JSON objects {"code", "message", "details"} where code is the
// flightmesh error code. OUT_OF_RANGE maps to 422 and carries the rejected
// distance and the point's last valid position in details; NOT_FOUND maps to
// 404; INSUFFICIENT_POINTS to 409; input and format errors to 400.
//
// Every response carries an X-Request-ID header, echoed from the request
// or freshly generated.
package server
