package graphmaps

import (
	"sync/atomic"
	"time"
)

// MetricsCollector receives operational metrics from a Router.
// See metrics/prometheus for a Prometheus implementation.
type MetricsCollector interface {
	// RecordRoute is called once per Route call. iterations is zero when the
	// search did not complete; err is nil on success.
	RecordRoute(algorithm string, iterations int, duration time.Duration, err error)

	// RecordLoad is called after each graph load.
	RecordLoad(duration time.Duration, err error)

	// RecordPersist is called after each solution upload.
	RecordPersist(duration time.Duration, err error)
}

// NoopMetricsCollector discards all metrics.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRoute(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLoad(time.Duration, error)               {}
func (NoopMetricsCollector) RecordPersist(time.Duration, error)            {}

// BasicMetricsCollector keeps in-memory counters.
type BasicMetricsCollector struct {
	RouteCount       atomic.Int64
	RouteErrors      atomic.Int64
	RouteTotalNanos  atomic.Int64
	RouteIterations  atomic.Int64
	LoadCount        atomic.Int64
	LoadErrors       atomic.Int64
	LoadTotalNanos   atomic.Int64
	PersistCount     atomic.Int64
	PersistErrors    atomic.Int64
	PersistTotalNano atomic.Int64
}

// RecordRoute implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRoute(_ string, iterations int, duration time.Duration, err error) {
	b.RouteCount.Add(1)
	b.RouteTotalNanos.Add(duration.Nanoseconds())
	b.RouteIterations.Add(int64(iterations))
	if err != nil {
		b.RouteErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordPersist implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPersist(duration time.Duration, err error) {
	b.PersistCount.Add(1)
	b.PersistTotalNano.Add(duration.Nanoseconds())
	if err != nil {
		b.PersistErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RouteCount:      b.RouteCount.Load(),
		RouteErrors:     b.RouteErrors.Load(),
		RouteAvgNanos:   average(b.RouteTotalNanos.Load(), b.RouteCount.Load()),
		RouteIterations: b.RouteIterations.Load(),
		LoadCount:       b.LoadCount.Load(),
		LoadErrors:      b.LoadErrors.Load(),
		LoadAvgNanos:    average(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
		PersistCount:    b.PersistCount.Load(),
		PersistErrors:   b.PersistErrors.Load(),
		PersistAvgNanos: average(b.PersistTotalNano.Load(), b.PersistCount.Load()),
	}
}

func average(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RouteCount      int64
	RouteErrors     int64
	RouteAvgNanos   int64
	RouteIterations int64
	LoadCount       int64
	LoadErrors      int64
	LoadAvgNanos    int64
	PersistCount    int64
	PersistErrors   int64
	PersistAvgNanos int64
}
