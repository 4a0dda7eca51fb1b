// Package points holds the ordered collection of named map points that
// flightmesh builds its distance graph from.
//
// # Overview
//
// A [Store] is the single source of truth for the point set. The first point
// added becomes the base ("UAV BASE"); every later point is a destination and
// must lie within the store's maximum range of the base at the moment it is
// accepted (on add and on move).
//
// # Naming
//
// Destinations are named A, B, C, ... in collection order: position 1 is "A",
// position 2 is "B", and so on. After "Z" the sequence wraps to "A" again, so
// more than 26 destinations produce duplicate names. Removing a point renames
// everything after the base so the sequence stays contiguous; removing the
// base promotes the next point.
//
// # Identity
//
// Point ids are assigned from a counter that only grows, so an id is never
// reused while the store lives, even across Clear.
//
// # Concurrency
//
// Store is not safe for concurrent use. The mesh engine serializes access.
package points
