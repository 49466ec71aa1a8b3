package mesh

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/meshgeo/geom"
)

type options struct {
	workers int
	normals []geom.Vec3
	scalars []float64
	logger  *slog.Logger
}

// Option configures New.
type Option func(*options)

// WithWorkers sets the number of goroutines used for per-primitive setup work.
// Values <= 0 use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithNormals supplies vertex normals instead of computing area-weighted ones.
// The slice is copied and each normal is normalized.
func WithNormals(normals []geom.Vec3) Option {
	return func(o *options) {
		o.normals = normals
	}
}

// WithScalars attaches a scalar function value per vertex. The slice is copied.
func WithScalars(values []float64) Option {
	return func(o *options) {
		o.scalars = values
	}
}

// WithLogger sets the logger for setup diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func (o *options) workerCount() int {
	if o.workers > 0 {
		return o.workers
	}
	return runtime.GOMAXPROCS(0)
}
