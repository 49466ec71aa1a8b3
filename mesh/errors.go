package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is the root of all argument failures: absent seeds,
	// non-positive radii, mismatched buffer sizes, malformed triangles.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange is returned for vertex or face indices beyond the store.
	ErrOutOfRange = fmt.Errorf("%w: index out of range", ErrInvalidArgument)

	// ErrNoAdjacency is returned when a query is seeded at an isolated vertex.
	ErrNoAdjacency = errors.New("vertex has no incident faces")
)

// ErrBadTriangle indicates a triangle referencing a vertex that does not exist
// or referencing the same vertex twice.
type ErrBadTriangle struct {
	Face     int
	Vertices [3]uint32
	cause    error
}

func (e *ErrBadTriangle) Error() string {
	return fmt.Sprintf("bad triangle %d: %v", e.Face, e.Vertices)
}

func (e *ErrBadTriangle) Unwrap() error { return e.cause }
