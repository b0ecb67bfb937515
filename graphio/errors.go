package graphio

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord is returned for records that are not "a,b" pairs.
	ErrMalformedRecord = errors.New("graphio: malformed record")
	// ErrMissingSection is returned when a document lacks its "Nodes" or "Edges" object.
	ErrMissingSection = errors.New("graphio: missing section")
)

// ParseError reports a stored graph that cannot be decoded.
type ParseError struct {
	Blob   string
	Record string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Record == "" {
		return fmt.Sprintf("graphio: parse %s: %v", e.Blob, e.Err)
	}
	return fmt.Sprintf("graphio: parse %s record %q: %v", e.Blob, e.Record, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
