// Package progress provides observational progress sinks for long-running
// queries. A sink never influences control flow.
package progress

import (
	"sync/atomic"

	"golang.org/x/time/rate"
)

// Sink receives progress updates. done counts processed units; total is the
// best known upper bound, or 0 when unknown.
type Sink interface {
	Report(done, total int)
}

// Noop discards all updates.
type Noop struct{}

// Report implements Sink.
func (Noop) Report(int, int) {}

// Func adapts a function to a Sink.
type Func func(done, total int)

// Report implements Sink.
func (f Func) Report(done, total int) { f(done, total) }

// OrNoop returns s, or Noop when s is nil.
func OrNoop(s Sink) Sink {
	if s == nil {
		return Noop{}
	}
	return s
}

// Throttle forwards at most perSecond updates per second to the wrapped sink.
// The final update (done == total, total > 0) is always forwarded.
type Throttle struct {
	sink    Sink
	limiter *rate.Limiter
	dropped atomic.Int64
}

// NewThrottle wraps sink. perSecond <= 0 forwards every update.
func NewThrottle(sink Sink, perSecond float64) *Throttle {
	t := &Throttle{sink: OrNoop(sink)}
	if perSecond > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	return t
}

// Report implements Sink.
func (t *Throttle) Report(done, total int) {
	if t.limiter == nil || (total > 0 && done >= total) || t.limiter.Allow() {
		t.sink.Report(done, total)
		return
	}
	t.dropped.Add(1)
}

// Dropped returns the number of suppressed updates.
func (t *Throttle) Dropped() int64 { return t.dropped.Load() }
