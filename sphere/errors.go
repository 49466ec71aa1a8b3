package sphere

import (
	"fmt"

	"github.com/hupe1980/meshgeo/mesh"
)

var (
	// ErrInvalidRadius is returned for radii that are not positive numbers.
	ErrInvalidRadius = fmt.Errorf("%w: radius must be positive", mesh.ErrInvalidArgument)

	// ErrNoAdjacency is returned when the seed vertex has no incident faces.
	ErrNoAdjacency = mesh.ErrNoAdjacency
)
