// Package arena provides typed slab allocation scoped to one query.
//
// Frontier edges and distance entries are allocated from a Slab while a
// geodesic march runs and addressed by 32-bit handles. Nothing is freed
// individually; Reset releases every element at once so the slab can be
// reused by the next query.
package arena
