package graphmaps

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/HeNeos/graph-algorithms-in-maps"

var (
	tracerOnce    sync.Once
	defaultTracer trace.Tracer
)

// getTracer returns the tracer of the global provider. It is resolved once,
// so a provider installed with otel.SetTracerProvider before the first route
// is picked up.
func getTracer() trace.Tracer {
	tracerOnce.Do(func() {
		defaultTracer = otel.Tracer(tracerName)
	})
	return defaultTracer
}
