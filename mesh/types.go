package mesh

import "math"

// VertexID is the stable index of a vertex.
type VertexID uint32

// FaceID is the stable index of a triangle.
type FaceID uint32

// InvalidFace marks the absence of a face, e.g. across a border edge.
const InvalidFace FaceID = math.MaxUint32

// Edge names one of the three edges of a face.
type Edge uint8

const (
	EdgeAB Edge = iota
	EdgeBC
	EdgeCA
)

// Next returns the edge following e in winding order.
func (e Edge) Next() Edge { return (e + 1) % 3 }

// Prev returns the edge preceding e in winding order.
func (e Edge) Prev() Edge { return (e + 2) % 3 }

func (e Edge) String() string {
	switch e {
	case EdgeAB:
		return "AB"
	case EdgeBC:
		return "BC"
	case EdgeCA:
		return "CA"
	default:
		return "invalid"
	}
}

// Flag is a per-vertex boolean attribute.
type Flag uint8

const (
	// FlagAbortMarching stops a geodesic march as soon as the vertex is reached.
	FlagAbortMarching Flag = 1 << iota
	// FlagLabelBackground marks vertices excluded from labeling.
	FlagLabelBackground
	// FlagSelected marks user-selected vertices.
	FlagSelected
)
