package mesh

import (
	"math"

	"github.com/hupe1980/meshgeo/geom"
)

// Mesh is an index-addressed triangle mesh. Create one with New.
type Mesh struct {
	positions []geom.Vec3
	normals   []geom.Vec3
	scalars   []float64 // nil when no scalar field exists
	flags     []Flag

	faces       [][3]VertexID
	neighbors   [][3]FaceID
	faceNormals []geom.Vec3 // unit length
	faceAreas   []float64

	// Faces incident to vertex v are incident[incidentStart[v]:incidentStart[v+1]].
	incidentStart []uint32
	incident      []FaceID
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.positions) }

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int { return len(m.faces) }

// Position returns the position of v.
func (m *Mesh) Position(v VertexID) geom.Vec3 { return m.positions[v] }

// Normal returns the unit normal of v.
func (m *Mesh) Normal(v VertexID) geom.Vec3 { return m.normals[v] }

// FaceNormal returns the unit normal of f.
func (m *Mesh) FaceNormal(f FaceID) geom.Vec3 { return m.faceNormals[f] }

// FaceArea returns the area of f.
func (m *Mesh) FaceArea(f FaceID) float64 { return m.faceAreas[f] }

// HasScalars reports whether a scalar field exists.
func (m *Mesh) HasScalars() bool { return m.scalars != nil }

// Scalar returns the function value of v, or NaN when there is no scalar field.
func (m *Mesh) Scalar(v VertexID) float64 {
	if m.scalars == nil {
		return math.NaN()
	}
	return m.scalars[v]
}

// SetScalar sets the function value of v, creating a NaN-filled field on first use.
func (m *Mesh) SetScalar(v VertexID, val float64) {
	if m.scalars == nil {
		m.scalars = make([]float64, len(m.positions))
		for i := range m.scalars {
			m.scalars[i] = math.NaN()
		}
	}
	m.scalars[v] = val
}

// Scalars returns the scalar field, or nil. The slice aliases the mesh.
func (m *Mesh) Scalars() []float64 { return m.scalars }

// Flag reports whether fl is set on v.
func (m *Mesh) Flag(v VertexID, fl Flag) bool { return m.flags[v]&fl != 0 }

// SetFlag sets fl on v.
func (m *Mesh) SetFlag(v VertexID, fl Flag) { m.flags[v] |= fl }

// ClearFlag clears fl on v.
func (m *Mesh) ClearFlag(v VertexID, fl Flag) { m.flags[v] &^= fl }

// ClearFlagAll clears fl on every vertex.
func (m *Mesh) ClearFlagAll(fl Flag) {
	for i := range m.flags {
		m.flags[i] &^= fl
	}
}

// FacesOf returns the faces incident to v, in ascending face order.
func (m *Mesh) FacesOf(v VertexID) []FaceID {
	return m.incident[m.incidentStart[v]:m.incidentStart[v+1]]
}

// FaceVertices returns the vertices of f in winding order.
func (m *Mesh) FaceVertices(f FaceID) [3]VertexID { return m.faces[f] }

// EdgeEndpoints returns the start and end vertex of edge e of f.
func (m *Mesh) EdgeEndpoints(f FaceID, e Edge) (VertexID, VertexID) {
	tri := m.faces[f]
	return tri[e], tri[e.Next()]
}

// NeighborAcross returns the face across edge e of f, or InvalidFace at a border.
func (m *Mesh) NeighborAcross(f FaceID, e Edge) FaceID { return m.neighbors[f][e] }

// EdgeIndex returns the edge of f joining a and b.
func (m *Mesh) EdgeIndex(f FaceID, a, b VertexID) (Edge, bool) {
	return edgeIndex(m.faces[f], a, b)
}

// OppositeEdge returns the edge of f that does not touch v.
func (m *Mesh) OppositeEdge(f FaceID, v VertexID) (Edge, bool) {
	tri := m.faces[f]
	for i := range tri {
		if tri[i] == v {
			return Edge(i).Next(), true
		}
	}
	return 0, false
}

// OppositeVertexAndEdges returns the vertex opposite to edge e and the edges
// B→C and C→A that complete the triangle.
func (m *Mesh) OppositeVertexAndEdges(f FaceID, e Edge) (VertexID, Edge, Edge) {
	return m.faces[f][e.Prev()], e.Next(), e.Prev()
}

// Neighbors appends the 1-ring vertices of v to dst. A vertex shared by two
// incident faces is appended twice.
func (m *Mesh) Neighbors(v VertexID, dst []VertexID) []VertexID {
	for _, f := range m.FacesOf(v) {
		for _, w := range m.faces[f] {
			if w != v {
				dst = append(dst, w)
			}
		}
	}
	return dst
}

// IsBorder reports whether v touches an edge without a neighbouring face.
func (m *Mesh) IsBorder(v VertexID) bool {
	for _, f := range m.FacesOf(v) {
		tri := m.faces[f]
		for e := EdgeAB; e <= EdgeCA; e++ {
			if m.neighbors[f][e] == InvalidFace && (tri[e] == v || tri[e.Next()] == v) {
				return true
			}
		}
	}
	return false
}

func edgeIndex(tri [3]VertexID, a, b VertexID) (Edge, bool) {
	for e := EdgeAB; e <= EdgeCA; e++ {
		s, t := tri[e], tri[e.Next()]
		if (s == a && t == b) || (s == b && t == a) {
			return e, true
		}
	}
	return 0, false
}
