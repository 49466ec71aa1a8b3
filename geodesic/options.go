package geodesic

import (
	"log/slog"

	"github.com/hupe1980/meshgeo/bitset"
	"github.com/hupe1980/meshgeo/progress"
)

// DefaultClampWarnThreshold is the number of clamped acos arguments above
// which a march logs a warning.
const DefaultClampWarnThreshold = 8

// Options controls what a march computes.
type Options struct {
	// WeightByScalar displaces vertices along their normals by their scalar
	// value before measuring edge lengths.
	WeightByScalar bool
	// WeightFactor scales the displacement. Zero means 1.
	WeightFactor float64
	// WriteBackToScalar copies every reached distance into the scalar field.
	WriteBackToScalar bool
	// ResetUnreached sets the scalar of every unreached vertex to NaN during
	// write-back.
	ResetUnreached bool
	// RecordOrder fills Result.Order with vertices in settle order.
	RecordOrder bool
	// FaceVisited is an optional caller-owned face bitset. It must hold the
	// store's face count and is cleared on return. When nil, March allocates one.
	FaceVisited *bitset.BitSet
}

func (o Options) weight() float64 {
	if !o.WeightByScalar {
		return 0
	}
	if o.WeightFactor == 0 {
		return 1
	}
	return o.WeightFactor
}

type config struct {
	logger    *slog.Logger
	progress  progress.Sink
	clampWarn int
}

// Option configures diagnostics of March.
type Option func(*config)

// WithLogger sets the logger for march summaries and soft-error warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithProgress sets a sink that observes the march periodically.
func WithProgress(s progress.Sink) Option {
	return func(c *config) {
		c.progress = s
	}
}

// WithClampWarnThreshold sets how many clamped acos arguments a march
// tolerates before logging a warning.
func WithClampWarnThreshold(n int) Option {
	return func(c *config) {
		c.clampWarn = n
	}
}
