package graphmaps

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/HeNeos/graph-algorithms-in-maps/catalog"
	"github.com/HeNeos/graph-algorithms-in-maps/resource"
	"github.com/HeNeos/graph-algorithms-in-maps/search"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	tracer           trace.Tracer
	resource         *resource.Controller
	catalog          catalog.Catalog
	defaultAlgorithm search.Algorithm
	clock            func() time.Time
	searchOptions    []search.Option
}

// Option configures a Router.
type Option func(*options)

// WithLogger sets the logger. Nil keeps the default NoopLogger.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetricsCollector sets the metrics collector. Nil keeps the default
// NoopMetricsCollector.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc != nil {
			o.metricsCollector = mc
		}
	}
}

// WithTracer sets the tracer used for route spans. By default the tracer of
// the global OpenTelemetry provider is used.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		if t != nil {
			o.tracer = t
		}
	}
}

// WithResourceController limits concurrent searches. A nil controller
// imposes no limit.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resource = rc
	}
}

// WithCatalog enables requests that name a country and city instead of a
// graph key.
func WithCatalog(c catalog.Catalog) Option {
	return func(o *options) {
		o.catalog = c
	}
}

// WithDefaultAlgorithm sets the algorithm used when a request names none
// or names one that is not recognized. The default is Dijkstra.
func WithDefaultAlgorithm(a search.Algorithm) Option {
	return func(o *options) {
		if _, err := search.Provider(a); err == nil {
			o.defaultAlgorithm = a
		}
	}
}

// WithClock sets the time source used for solution keys.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithSearchOptions appends options passed to every search.
func WithSearchOptions(opts ...search.Option) Option {
	return func(o *options) {
		o.searchOptions = append(o.searchOptions, opts...)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		defaultAlgorithm: search.Dijkstra,
		clock:            time.Now,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.tracer == nil {
		o.tracer = getTracer()
	}
	return o
}
