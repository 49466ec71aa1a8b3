package geodesic

import (
	"errors"
	"fmt"

	"github.com/hupe1980/meshgeo/mesh"
)

var (
	// ErrInvalidSeed is returned for an empty seed list, seeds outside the
	// mesh and seed vertices that are not part of any face.
	ErrInvalidSeed = fmt.Errorf("%w: invalid seed", mesh.ErrInvalidArgument)

	// ErrInvalidRadius is returned for radii that are not positive numbers.
	ErrInvalidRadius = fmt.Errorf("%w: radius must be positive", mesh.ErrInvalidArgument)

	// ErrNaNDistance is returned when a computed distance is NaN. With finite
	// geometry this only happens when weighting reads NaN scalar values.
	ErrNaNDistance = errors.New("geodesic distance is NaN")

	// ErrMissingScalarField is returned when weighting is requested on a mesh
	// without a scalar field.
	ErrMissingScalarField = errors.New("weighting requires a scalar field")

	// ErrEmptyReferenceVector is returned when the angular reference of a seed
	// vertex has zero length.
	ErrEmptyReferenceVector = errors.New("empty reference vector")
)
