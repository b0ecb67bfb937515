package search

import "errors"

var (
	// ErrNotFound is returned when the destination cannot be reached from the source.
	ErrNotFound = errors.New("search: no route to destination")

	// ErrUnknownAlgorithm is returned when an algorithm name is not recognized.
	ErrUnknownAlgorithm = errors.New("search: unknown algorithm")

	// ErrBrokenPath is returned when a predecessor map does not lead back to the source.
	ErrBrokenPath = errors.New("search: predecessor chain does not reach source")
)
