// Package geom provides the double-precision geometry used by the sphere and
// geodesic queries: a value-type 3D vector, signed angles about a normal, and
// the law-of-cosines unfolding of one triangle into the plane of its
// neighbour.
//
// All arithmetic is float64. Accumulating single-precision error across many
// unfolding steps produces visible artifacts on large meshes.
package geom
