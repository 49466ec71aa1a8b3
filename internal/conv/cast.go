package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is returned when a count does not fit its target type.
var ErrOverflow = errors.New("count overflow")

// MaxPrimitives is the largest vertex or face count. Indices run below it,
// leaving math.MaxUint32 free as the invalid-primitive marker.
const MaxPrimitives = math.MaxUint32

// PrimitiveCount checks that n primitives are addressable by 32-bit indices.
func PrimitiveCount(n int) (uint32, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: negative primitive count %d", ErrOverflow, n)
	}
	if uint64(n) > MaxPrimitives {
		return 0, fmt.Errorf("%w: %d primitives exceed 32-bit indices", ErrOverflow, n)
	}
	return uint32(n), nil
}

// ElementCount converts a stored element count to int, rejecting counts whose
// byte size (n * elemSize) would not fit an int.
func ElementCount(n uint64, elemSize int) (int, error) {
	if elemSize <= 0 {
		elemSize = 1
	}
	if n > uint64(math.MaxInt/elemSize) {
		return 0, fmt.Errorf("%w: %d elements of %d bytes", ErrOverflow, n, elemSize)
	}
	return int(n), nil
}
