// Package prometheus exports Router metrics to Prometheus.
package prometheus

import (
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	graphmaps "github.com/HeNeos/graph-algorithms-in-maps"
)

const namespace = "graphmaps"

// Collector implements graphmaps.MetricsCollector with Prometheus metrics.
type Collector struct {
	routes          *promclient.CounterVec
	routeDuration   *promclient.HistogramVec
	routeIterations *promclient.HistogramVec
	opDuration      *promclient.HistogramVec
}

var _ graphmaps.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg. A nil reg
// registers with the default registry.
func New(reg promclient.Registerer) *Collector {
	if reg == nil {
		reg = promclient.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Collector{
		routes: factory.NewCounterVec(promclient.CounterOpts{
			Namespace: namespace,
			Name:      "routes_total",
			Help:      "Route requests by algorithm and status",
		}, []string{"algorithm", "status"}),
		routeDuration: factory.NewHistogramVec(promclient.HistogramOpts{
			Namespace: namespace,
			Name:      "route_duration_seconds",
			Help:      "End-to-end route latency",
			Buckets:   promclient.DefBuckets,
		}, []string{"algorithm"}),
		routeIterations: factory.NewHistogramVec(promclient.HistogramOpts{
			Namespace: namespace,
			Name:      "route_iterations",
			Help:      "Edges examined per successful search",
			Buckets:   promclient.ExponentialBuckets(16, 4, 10),
		}, []string{"algorithm"}),
		opDuration: factory.NewHistogramVec(promclient.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Latency of graph loads and solution uploads",
			Buckets:   promclient.DefBuckets,
		}, []string{"op", "status"}),
	}
}

// RecordRoute implements graphmaps.MetricsCollector.
func (c *Collector) RecordRoute(algorithm string, iterations int, d time.Duration, err error) {
	c.routes.WithLabelValues(algorithm, status(err)).Inc()
	c.routeDuration.WithLabelValues(algorithm).Observe(d.Seconds())
	if err == nil {
		c.routeIterations.WithLabelValues(algorithm).Observe(float64(iterations))
	}
}

// RecordLoad implements graphmaps.MetricsCollector.
func (c *Collector) RecordLoad(d time.Duration, err error) {
	c.opDuration.WithLabelValues("load", status(err)).Observe(d.Seconds())
}

// RecordPersist implements graphmaps.MetricsCollector.
func (c *Collector) RecordPersist(d time.Duration, err error) {
	c.opDuration.WithLabelValues("persist", status(err)).Observe(d.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
