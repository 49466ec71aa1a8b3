// Package conv provides checked integer conversions.
//
// Use cases:
//   - Primitive counts that must fit the 32-bit vertex and face indices
//   - Counts read back from exported field files
package conv
