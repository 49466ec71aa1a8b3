package geodesic

import (
	"fmt"

	"github.com/hupe1980/meshgeo/mesh"
)

// SeedKind tells whether a seed is a vertex or a face.
type SeedKind uint8

const (
	SeedVertex SeedKind = iota
	SeedFace
)

// Seed is a primitive the march starts from.
type Seed struct {
	Kind  SeedKind
	Index uint32
}

// VertexSeed starts the march at v with distance zero.
func VertexSeed(v mesh.VertexID) Seed { return Seed{Kind: SeedVertex, Index: uint32(v)} }

// FaceSeed starts the march at the centre of gravity of f.
func FaceSeed(f mesh.FaceID) Seed { return Seed{Kind: SeedFace, Index: uint32(f)} }

func (s Seed) String() string {
	if s.Kind == SeedFace {
		return fmt.Sprintf("face:%d", s.Index)
	}
	return fmt.Sprintf("vertex:%d", s.Index)
}

func (s Seed) validate(store mesh.Store) error {
	switch s.Kind {
	case SeedVertex:
		if int(s.Index) >= store.VertexCount() {
			return fmt.Errorf("%w: %v: %w", ErrInvalidSeed, s, mesh.ErrOutOfRange)
		}
		if len(store.FacesOf(mesh.VertexID(s.Index))) == 0 {
			return fmt.Errorf("%w: %v: %w", ErrInvalidSeed, s, mesh.ErrNoAdjacency)
		}
	case SeedFace:
		if int(s.Index) >= store.FaceCount() {
			return fmt.Errorf("%w: %v: %w", ErrInvalidSeed, s, mesh.ErrOutOfRange)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidSeed, s.Kind)
	}
	return nil
}
