// Package mesh provides the primitive index store queried by the sphere and
// geodesic packages.
//
// Vertices and faces are addressed by stable zero-based indices into parallel
// arrays; adjacency is an index lookup rather than a pointer chase:
//   - positions, normals, scalar function values and flags per vertex
//   - three vertex indices per face in fixed winding order (edges AB, BC, CA)
//   - the face across each edge (InvalidFace at a border)
//   - faces incident to each vertex, stored as a compressed row table
//
// # Setup
//
// New validates the triangles and computes face normals, face areas, vertex
// normals and face-to-face connectivity. The per-primitive work is partitioned
// by index modulo a fixed worker count and joined before New returns, so every
// query sees fully established adjacency.
//
// # Concurrency
//
// Read accessors are safe for concurrent use. SetScalar and SetFlag are not
// synchronized; callers running queries that write back results must not share
// a Mesh between them.
package mesh
