package meshgeo

import (
	"sync/atomic"
	"time"

	"github.com/hupe1980/meshgeo/geodesic"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordSphereQuery is called after each sphere query. faces is the
	// number of faces returned, err is nil if successful.
	RecordSphereQuery(duration time.Duration, faces int, err error)

	// RecordMarch is called after each geodesic march. stats is the zero
	// value when err is not nil.
	RecordMarch(duration time.Duration, reached int, stats geodesic.Stats, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSphereQuery(time.Duration, int, error)           {}
func (NoopMetricsCollector) RecordMarch(time.Duration, int, geodesic.Stats, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SphereCount      atomic.Int64
	SphereErrors     atomic.Int64
	SphereFaces      atomic.Int64
	SphereTotalNanos atomic.Int64
	MarchCount       atomic.Int64
	MarchErrors      atomic.Int64
	MarchReached     atomic.Int64
	MarchClamps      atomic.Int64
	MarchFallbacks   atomic.Int64
	MarchTotalNanos  atomic.Int64
}

// RecordSphereQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSphereQuery(duration time.Duration, faces int, err error) {
	b.SphereCount.Add(1)
	b.SphereTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SphereErrors.Add(1)
		return
	}
	b.SphereFaces.Add(int64(faces))
}

// RecordMarch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMarch(duration time.Duration, reached int, stats geodesic.Stats, err error) {
	b.MarchCount.Add(1)
	b.MarchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MarchErrors.Add(1)
		return
	}
	b.MarchReached.Add(int64(reached))
	b.MarchClamps.Add(int64(stats.Clamps))
	b.MarchFallbacks.Add(int64(stats.Fallbacks))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SphereCount:    b.SphereCount.Load(),
		SphereErrors:   b.SphereErrors.Load(),
		SphereFaces:    b.SphereFaces.Load(),
		SphereAvgNanos: avg(b.SphereTotalNanos.Load(), b.SphereCount.Load()),
		MarchCount:     b.MarchCount.Load(),
		MarchErrors:    b.MarchErrors.Load(),
		MarchReached:   b.MarchReached.Load(),
		MarchClamps:    b.MarchClamps.Load(),
		MarchFallbacks: b.MarchFallbacks.Load(),
		MarchAvgNanos:  avg(b.MarchTotalNanos.Load(), b.MarchCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SphereCount    int64
	SphereErrors   int64
	SphereFaces    int64
	SphereAvgNanos int64
	MarchCount     int64
	MarchErrors    int64
	MarchReached   int64
	MarchClamps    int64
	MarchFallbacks int64
	MarchAvgNanos  int64
}
