package graphmaps

import (
	"errors"
	"fmt"

	"github.com/HeNeos/graph-algorithms-in-maps/blobstore"
	"github.com/HeNeos/graph-algorithms-in-maps/catalog"
	"github.com/HeNeos/graph-algorithms-in-maps/graph"
	"github.com/HeNeos/graph-algorithms-in-maps/graphio"
	"github.com/HeNeos/graph-algorithms-in-maps/search"
)

var (
	// ErrNoRoute is returned when the destination is unreachable from the source.
	ErrNoRoute = errors.New("no route between source and destination")

	// ErrGraphNotFound is returned when the requested graph does not exist.
	ErrGraphNotFound = errors.New("graph not found")

	// ErrUnknownNode is returned when an endpoint is not a node of the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidRequest is returned for malformed requests.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrCorruptGraph is returned when a stored graph cannot be decoded or
	// violates graph integrity during a search.
	ErrCorruptGraph = errors.New("corrupt graph")
)

// RequestError describes a rejected request field.
//
// It matches ErrInvalidRequest with errors.Is.
type RequestError struct {
	Field  string
	Reason string
	cause  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid request: %s: %s", e.Field, e.Reason)
}

func (e *RequestError) Is(target error) bool { return target == ErrInvalidRequest }

func (e *RequestError) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, search.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNoRoute, err)
	}
	if errors.Is(err, blobstore.ErrNotFound) || errors.Is(err, catalog.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrGraphNotFound, err)
	}
	if errors.Is(err, search.ErrUnknownAlgorithm) {
		return &RequestError{Field: "algorithm", Reason: err.Error(), cause: err}
	}

	var pe *graphio.ParseError
	if errors.As(err, &pe) || errors.Is(err, graph.ErrIntegrity) {
		return fmt.Errorf("%w: %w", ErrCorruptGraph, err)
	}

	return err
}
