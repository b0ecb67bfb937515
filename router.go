package graphmaps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/graphio"
	"github.com/HeNeos/graph-algorithms-in-maps/results"
	"github.com/HeNeos/graph-algorithms-in-maps/search"
)

// Request asks for a route between two nodes of a stored graph.
//
// The graph is named by Key, or by Country and City when the Router has a
// catalog. Algorithm is matched by search.ParseAlgorithm; an empty or
// unrecognized name selects the Router's default algorithm.
type Request struct {
	Key         string       `json:"key"`
	Country     string       `json:"country,omitempty"`
	City        string       `json:"city,omitempty"`
	Source      graph.NodeID `json:"source"`
	Destination graph.NodeID `json:"destination"`
	Algorithm   string       `json:"algorithm"`
}

// Response describes a found route. The full solution is stored under
// SolutionKey.
type Response struct {
	Iterations  int          `json:"iterations"`
	Weight      float64      `json:"weight"`
	SolutionKey string       `json:"solution_key"`
	Source      graph.NodeID `json:"source"`
	Destination graph.NodeID `json:"destination"`
	GraphID     string       `json:"graph_id"`
	Algorithm   string       `json:"algorithm"`
}

// Router loads graphs, runs searches and persists their solutions.
// It is safe for concurrent use.
type Router struct {
	source graphio.Source
	sink   results.Sink
	opts   options
}

// New creates a Router that reads graphs from source and writes solutions
// to sink.
func New(source graphio.Source, sink results.Sink, opts ...Option) *Router {
	return &Router{
		source: source,
		sink:   sink,
		opts:   applyOptions(opts),
	}
}

// Logger returns the logger of the router.
func (r *Router) Logger() *Logger { return r.opts.logger }

// DefaultAlgorithm returns the algorithm used for requests that name none.
func (r *Router) DefaultAlgorithm() search.Algorithm { return r.opts.defaultAlgorithm }

// Route answers req.
//
// Errors match ErrInvalidRequest, ErrGraphNotFound, ErrUnknownNode,
// ErrNoRoute or ErrCorruptGraph where applicable.
func (r *Router) Route(ctx context.Context, req Request) (*Response, error) {
	return r.route(ctx, req, func(*graph.Graph) (graph.NodeID, graph.NodeID, error) {
		return req.Source, req.Destination, nil
	})
}

// RouteCoordinates answers a request whose endpoints are the nodes nearest to
// the given positions of graph key.
func (r *Router) RouteCoordinates(ctx context.Context, key string, fromLat, fromLon, toLat, toLon float64, algorithm string) (*Response, error) {
	req := Request{Key: key, Algorithm: algorithm}
	return r.route(ctx, req, func(g *graph.Graph) (graph.NodeID, graph.NodeID, error) {
		src, _, ok := g.Nearest(fromLat, fromLon)
		if !ok {
			return 0, 0, fmt.Errorf("%w: graph %q has no nodes", ErrUnknownNode, key)
		}
		dst, _, _ := g.Nearest(toLat, toLon)
		return src, dst, nil
	})
}

// endpoints picks the search endpoints once the graph is loaded.
type endpoints func(g *graph.Graph) (src, dst graph.NodeID, err error)

func (r *Router) route(ctx context.Context, req Request, pick endpoints) (resp *Response, err error) {
	start := time.Now()
	alg := r.algorithm(req.Algorithm)

	ctx, span := r.opts.tracer.Start(ctx, "graphmaps.Route", trace.WithAttributes(
		attribute.String("graph.key", req.Key),
		attribute.String("search.algorithm", alg.String()),
	))
	defer func() {
		elapsed := time.Since(start)
		iterations := 0
		if resp != nil {
			iterations = resp.Iterations
		}
		r.opts.metricsCollector.RecordRoute(alg.String(), iterations, elapsed, err)
		r.opts.logger.LogRoute(ctx, req, resp, elapsed, err)
		endSpan(span, err)
	}()

	key, err := r.resolveKey(ctx, req)
	if err != nil {
		return nil, translateError(err)
	}
	req.Key = key

	if err := r.opts.resource.AcquireSearch(ctx); err != nil {
		return nil, err
	}
	defer r.opts.resource.ReleaseSearch()

	g, err := r.load(ctx, key)
	if err != nil {
		return nil, translateError(err)
	}

	src, dst, err := pick(g)
	if err != nil {
		return nil, err
	}
	req.Source, req.Destination = src, dst
	for _, id := range []graph.NodeID{src, dst} {
		if !g.HasNode(id) {
			return nil, fmt.Errorf("%w: %d is not part of graph %q", ErrUnknownNode, id, key)
		}
	}

	res, err := r.search(ctx, g, src, dst, alg)
	if err != nil {
		return nil, translateError(err)
	}

	solutionKey := results.NewSolutionKey(r.opts.clock())
	if err := r.persist(ctx, solutionKey, g, res); err != nil {
		return nil, fmt.Errorf("store solution %s: %w", solutionKey, err)
	}

	return &Response{
		Iterations:  res.Iterations,
		Weight:      res.Weight,
		SolutionKey: solutionKey,
		Source:      src,
		Destination: dst,
		GraphID:     key,
		Algorithm:   alg.String(),
	}, nil
}

func (r *Router) algorithm(name string) search.Algorithm {
	if strings.TrimSpace(name) == "" {
		return r.opts.defaultAlgorithm
	}
	a, err := search.ParseAlgorithm(name)
	if err != nil {
		r.opts.logger.Warn("unknown algorithm, using default",
			"algorithm", name,
			"default", r.opts.defaultAlgorithm.String(),
		)
		return r.opts.defaultAlgorithm
	}
	return a
}

func (r *Router) resolveKey(ctx context.Context, req Request) (string, error) {
	if key := strings.TrimSpace(req.Key); key != "" {
		return key, nil
	}
	if req.Country == "" && req.City == "" {
		return "", &RequestError{Field: "key", Reason: "a graph key or a country and city is required"}
	}
	if r.opts.catalog == nil {
		return "", &RequestError{Field: "city", Reason: "no catalog configured"}
	}
	if req.Country == "" || req.City == "" {
		return "", &RequestError{Field: "city", Reason: "country and city must both be set"}
	}
	return r.opts.catalog.Lookup(ctx, req.Country, req.City)
}

func (r *Router) load(ctx context.Context, key string) (g *graph.Graph, err error) {
	ctx, span := r.opts.tracer.Start(ctx, "graphmaps.Load", trace.WithAttributes(
		attribute.String("graph.key", key),
	))
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		r.opts.metricsCollector.RecordLoad(elapsed, err)
		nodes, edges := 0, 0
		if g != nil {
			nodes, edges = g.NumNodes(), g.NumEdges()
			span.SetAttributes(
				attribute.Int("graph.nodes", nodes),
				attribute.Int("graph.edges", edges),
			)
		}
		r.opts.logger.LogLoad(ctx, key, nodes, edges, elapsed, err)
		endSpan(span, err)
	}()

	return r.source.Load(ctx, key)
}

// search runs the algorithm. An integrity fault raised by the graph aborts
// the search and is returned as an error.
func (r *Router) search(ctx context.Context, g *graph.Graph, src, dst graph.NodeID, alg search.Algorithm) (res *search.Result, err error) {
	ctx, span := r.opts.tracer.Start(ctx, "graphmaps.Search", trace.WithAttributes(
		attribute.String("search.algorithm", alg.String()),
		attribute.Int64("search.source", int64(src)),
		attribute.Int64("search.destination", int64(dst)),
	))
	defer func() {
		if res != nil {
			span.SetAttributes(
				attribute.Int("search.iterations", res.Iterations),
				attribute.Float64("search.weight", res.Weight),
			)
		}
		if errors.Is(err, search.ErrNotFound) {
			span.End()
			return
		}
		endSpan(span, err)
	}()
	defer recoverIntegrity(&err)

	return search.Run(ctx, g, src, dst, alg, r.opts.searchOptions...)
}

// recoverIntegrity converts a *graph.IntegrityError panic into *err.
// Other panics are re-raised.
func recoverIntegrity(err *error) {
	p := recover()
	if p == nil {
		return
	}
	var ie *graph.IntegrityError
	perr, ok := p.(error)
	if !ok || !errors.As(perr, &ie) {
		panic(p)
	}
	*err = perr
}

func (r *Router) persist(ctx context.Context, solutionKey string, g *graph.Graph, res *search.Result) (err error) {
	ctx, span := r.opts.tracer.Start(ctx, "graphmaps.Persist", trace.WithAttributes(
		attribute.String("solution.key", solutionKey),
	))
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		r.opts.metricsCollector.RecordPersist(elapsed, err)
		r.opts.logger.LogPersist(ctx, solutionKey, elapsed, err)
		endSpan(span, err)
	}()

	return r.sink.Put(ctx, solutionKey, g, res)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
