// Package graph computes the complete distance graph over a point set.
//
// Every pair of points is connected: the graph over N points has N(N-1)/2
// undirected edges, and its weights are collected in a symmetric N×N
// [Matrix] of great-circle distances in kilometers.
//
// # Lifecycle
//
// A [Matrix] is derived data. It is computed fresh from a point list by
// [ComputeMatrix], handed to whoever renders it, and thrown away on the next
// change. Nothing in this package mutates a matrix after it is built, and the
// package keeps no state between calls.
//
// # Serialization
//
// [Graph] bundles a point list with the matrix derived from it. It is the
// JSON shape served by the HTTP API and can be written with [WriteGraph] or
// [MarshalGraph]. The CSV export format lives in pkg/io.
package graph
