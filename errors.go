package meshgeo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/meshgeo/bitset"
	"github.com/hupe1980/meshgeo/geodesic"
	"github.com/hupe1980/meshgeo/mesh"
	"github.com/hupe1980/meshgeo/sphere"
)

var (
	// ErrInvalidArgument is the root of all argument failures.
	ErrInvalidArgument = mesh.ErrInvalidArgument

	// ErrInvalidRadius is returned when a radius is zero, negative or NaN.
	ErrInvalidRadius = errors.New("radius must be positive")

	// ErrInvalidSeed is returned for absent, out-of-range or isolated seeds.
	ErrInvalidSeed = geodesic.ErrInvalidSeed

	// ErrNoAdjacency is returned when a sphere query is seeded at an isolated vertex.
	ErrNoAdjacency = mesh.ErrNoAdjacency

	// ErrNaNDistance is returned when a march produces a NaN distance.
	ErrNaNDistance = geodesic.ErrNaNDistance

	// ErrMissingScalarField is returned when weighting is requested without a scalar field.
	ErrMissingScalarField = geodesic.ErrMissingScalarField
)

// ErrBitsetSize indicates a caller-supplied bitset that is smaller than the
// mesh's vertex or face count.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrBitsetSize struct {
	Need  int
	Have  int
	cause error
}

func (e *ErrBitsetSize) Error() string {
	return fmt.Sprintf("bitset size mismatch: need %d, have %d", e.Need, e.Have)
}

func (e *ErrBitsetSize) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ce *bitset.CapacityError
	if errors.As(err, &ce) {
		return &ErrBitsetSize{Need: ce.Need, Have: ce.Have, cause: err}
	}
	if errors.Is(err, sphere.ErrInvalidRadius) || errors.Is(err, geodesic.ErrInvalidRadius) {
		return fmt.Errorf("%w: %w", ErrInvalidRadius, err)
	}

	return err
}
