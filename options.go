package meshgeo

import (
	"log/slog"

	"github.com/hupe1980/meshgeo/geodesic"
	"github.com/hupe1980/meshgeo/progress"
	"github.com/hupe1980/meshgeo/sphere"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	progress         progress.Sink
	sphereVariant    sphere.Variant
	clampWarn        int
	maxConcurrent    int64
}

// Option configures an Engine.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring queries.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &meshgeo.BasicMetricsCollector{}
//	eng, _ := meshgeo.New(m, meshgeo.WithMetricsCollector(metrics))
//	// ... run queries ...
//	stats := metrics.GetStats()
//	fmt.Printf("Marches: %d, Avg latency: %dns\n", stats.MarchCount, stats.MarchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for queries.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := meshgeo.NewJSONLogger(slog.LevelDebug)
//	eng, _ := meshgeo.New(m, meshgeo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithProgress sets a sink that observes geodesic marches.
func WithProgress(s progress.Sink) Option {
	return func(o *options) {
		o.progress = s
	}
}

// WithThrottledProgress forwards at most perSecond progress reports to s.
// Final reports are always delivered.
func WithThrottledProgress(s progress.Sink, perSecond float64) Option {
	return func(o *options) {
		o.progress = progress.NewThrottle(s, perSecond)
	}
}

// WithSphereVariant selects the traversal used by QuerySphere.
func WithSphereVariant(v sphere.Variant) Option {
	return func(o *options) {
		o.sphereVariant = v
	}
}

// WithClampWarnThreshold sets how many clamped acos arguments a march
// tolerates before logging a warning.
func WithClampWarnThreshold(n int) Option {
	return func(o *options) {
		o.clampWarn = n
	}
}

// WithMaxConcurrentQueries bounds the number of queries running at once.
// Each running query holds one vertex and one face bitset. n <= 0 means
// unbounded.
func WithMaxConcurrentQueries(n int) Option {
	return func(o *options) {
		o.maxConcurrent = int64(n)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		progress:         progress.Noop{},
		sphereVariant:    sphere.VariantWindow,
		clampWarn:        geodesic.DefaultClampWarnThreshold,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
