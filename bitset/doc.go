// Package bitset provides the visited-state bitsets used by the sphere and
// geodesic queries.
//
// A BitSet is a packed []uint64 sized for a fixed number of vertex or face
// indices. Marking records which words became non-zero so that ClearAll only
// touches those words after a small query on a large mesh.
//
// Bitsets are caller-owned. A query borrows them, and every query in this
// module leaves them fully cleared on return. A Pool hands out cleared
// bitsets and clears them again on release.
//
// A BitSet is not safe for concurrent use.
package bitset
