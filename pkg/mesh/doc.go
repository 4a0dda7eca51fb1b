// Package mesh is the flightmesh engine: it owns a point store, keeps the
// distance matrix in step with it, and pushes every change to renderers.
//
// An [Engine] is the single entry point for user intent. Each inbound
// operation (add, move, remove, clear, import) mutates the store and then, if
// the mutation was accepted, recomputes the matrix and publishes the new
// state to every attached [Renderer]: points first, then the matrix, or a
// "matrix cleared" event when fewer than two points remain. A rejected move
// publishes only [Renderer.OnPointRejected] so a UI can snap the marker back.
//
// Operations are serialized by a mutex; renderers are called with the lock
// held and must not call back into the engine.
package mesh
