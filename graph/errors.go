package graph

import (
	"errors"
	"fmt"
)

// ErrIntegrity is matched by every *IntegrityError.
var ErrIntegrity = errors.New("graph integrity violation")

// IntegrityError reports a graph that references a node or edge it does not
// contain, or an edge whose attributes cannot be used as a weight.
type IntegrityError struct {
	Node   NodeID
	Edge   *EdgeID
	Reason string
}

func (e *IntegrityError) Error() string {
	if e.Edge != nil {
		return fmt.Sprintf("graph integrity: edge %s: %s", e.Edge, e.Reason)
	}
	return fmt.Sprintf("graph integrity: node %d: %s", e.Node, e.Reason)
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrity }

func nodeFault(id NodeID, reason string) *IntegrityError {
	return &IntegrityError{Node: id, Reason: reason}
}

func edgeFault(id EdgeID, reason string) *IntegrityError {
	return &IntegrityError{Node: id.From, Edge: &id, Reason: reason}
}
