// Package sphere finds the faces of a mesh that lie in or straddle a sphere
// around a seed vertex.
//
// The query expands breadth-first over the vertex adjacency graph. Every
// vertex within the radius contributes all of its incident faces and pushes
// its unvisited neighbours; a vertex outside the radius ends the expansion
// along that path. A face is therefore returned exactly when at least one of
// its vertices is reachable inside the sphere.
//
// Two traversal variants share this contract:
//
//   - VariantRing keeps a stack of vertices and de-duplicates when a vertex
//     is taken off the stack.
//   - VariantWindow appends to a slice that is consumed through a read
//     cursor and marks vertices when they are appended. It is the default.
//
// The caller supplies the vertex and face bitsets so they can be reused
// across many queries. Both are cleared before Query returns.
package sphere
