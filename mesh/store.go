package mesh

import "github.com/hupe1980/meshgeo/geom"

// Store is the view of a triangle mesh that the sphere and geodesic queries
// consume. *Mesh implements it; tests and callers with their own containers may
// supply another implementation.
type Store interface {
	VertexCount() int
	FaceCount() int

	Position(v VertexID) geom.Vec3
	Normal(v VertexID) geom.Vec3
	FaceNormal(f FaceID) geom.Vec3

	// HasScalars reports whether a scalar function value field exists.
	HasScalars() bool
	Scalar(v VertexID) float64
	SetScalar(v VertexID, val float64)

	Flag(v VertexID, fl Flag) bool

	// FacesOf returns the faces incident to v. The slice must not be modified.
	FacesOf(v VertexID) []FaceID
	FaceVertices(f FaceID) [3]VertexID

	// NeighborAcross returns the face sharing edge e of f, or InvalidFace.
	NeighborAcross(f FaceID, e Edge) FaceID
	// EdgeIndex returns the edge of f joining a and b in either direction.
	EdgeIndex(f FaceID, a, b VertexID) (Edge, bool)
	// OppositeEdge returns the edge of f not touching v.
	OppositeEdge(f FaceID, v VertexID) (Edge, bool)
	// OppositeVertexAndEdges returns the vertex of f opposite to the entry
	// edge e and the two remaining edges (B→C, C→A).
	OppositeVertexAndEdges(f FaceID, e Edge) (VertexID, Edge, Edge)
}

var _ Store = (*Mesh)(nil)
