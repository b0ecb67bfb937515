// Package api serves a Router over HTTP.
package api

import (
	"errors"
	"net/http"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/gorilla/mux"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	graphmaps "github.com/HeNeos/graph-algorithms-in-maps"
	"github.com/HeNeos/graph-algorithms-in-maps/blobstore"
	"github.com/HeNeos/graph-algorithms-in-maps/catalog"
	"github.com/HeNeos/graph-algorithms-in-maps/results"
	"github.com/HeNeos/graph-algorithms-in-maps/search"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// CoordinatesRequest asks for a route between the nodes nearest to two
// positions.
type CoordinatesRequest struct {
	Key       string   `json:"key"`
	From      Position `json:"from"`
	To        Position `json:"to"`
	Algorithm string   `json:"algorithm"`
}

// Position is a WGS84 coordinate.
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type options struct {
	catalog   catalog.Catalog
	solutions *results.Store
	gatherer  promclient.Gatherer
}

// Option configures a Handler.
type Option func(*options)

// WithCatalog exposes the cities of c under /v1/cities/{country}.
func WithCatalog(c catalog.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

// WithSolutions exposes stored routes under /v1/solutions/{key}.
func WithSolutions(s *results.Store) Option {
	return func(o *options) { o.solutions = s }
}

// WithGatherer sets the registry served on /metrics. The default gatherer
// is used otherwise.
func WithGatherer(g promclient.Gatherer) Option {
	return func(o *options) {
		if g != nil {
			o.gatherer = g
		}
	}
}

// Handler serves routing requests.
type Handler struct {
	router *graphmaps.Router
	opts   options
	mux    *mux.Router
}

// NewHandler creates a Handler for router.
func NewHandler(router *graphmaps.Router, opts ...Option) *Handler {
	o := options{gatherer: promclient.DefaultGatherer}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	h := &Handler{router: router, opts: o, mux: mux.NewRouter()}
	h.RegisterRoutes(h.mux)
	return h
}

// RegisterRoutes adds the handler's endpoints to r.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(h.opts.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/routes", h.CreateRoute).Methods(http.MethodPost)
	v1.HandleFunc("/routes/nearest", h.CreateRouteByCoordinates).Methods(http.MethodPost)
	v1.HandleFunc("/algorithms", h.ListAlgorithms).Methods(http.MethodGet)
	if h.opts.catalog != nil {
		v1.HandleFunc("/cities/{country}", h.ListCities).Methods(http.MethodGet)
	}
	if h.opts.solutions != nil {
		v1.HandleFunc("/solutions/{key}", h.GetSolution).Methods(http.MethodGet)
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateRoute answers a graphmaps.Request.
func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req graphmaps.Request
	if !h.decode(w, r, &req) {
		return
	}

	resp, err := h.router.Route(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateRouteByCoordinates answers a CoordinatesRequest.
func (h *Handler) CreateRouteByCoordinates(w http.ResponseWriter, r *http.Request) {
	var req CoordinatesRequest
	if !h.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Key) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "key is required"})
		return
	}

	resp, err := h.router.RouteCoordinates(r.Context(), req.Key,
		req.From.Latitude, req.From.Longitude,
		req.To.Latitude, req.To.Longitude,
		req.Algorithm,
	)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListAlgorithms lists the supported algorithm names.
func (h *Handler) ListAlgorithms(w http.ResponseWriter, _ *http.Request) {
	algs := search.Algorithms()
	names := make([]string, 0, len(algs))
	for _, a := range algs {
		names = append(names, a.String())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"algorithms": names,
		"default":    h.router.DefaultAlgorithm().String(),
	})
}

// ListCities lists the registered cities of a country.
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	entries, err := h.opts.catalog.List(r.Context(), mux.Vars(r)["country"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cities": entries,
		"count":  len(entries),
	})
}

// GetSolution returns the stored route of a solution as GeoJSON.
func (h *Handler) GetSolution(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if _, ok := results.SolutionTime(key); !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed solution key"})
		return
	}

	stored, err := h.opts.solutions.Get(r.Context(), key)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if stored.Route == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "solution has no route"})
		return
	}

	data, err := stored.Route.MarshalJSON()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := gojson.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	if code >= http.StatusInternalServerError {
		h.router.Logger().ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
	writeJSON(w, code, errorResponse{Error: err.Error()})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, graphmaps.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, graphmaps.ErrNoRoute),
		errors.Is(err, graphmaps.ErrGraphNotFound),
		errors.Is(err, graphmaps.ErrUnknownNode),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, blobstore.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = gojson.NewEncoder(w).Encode(v)
}
