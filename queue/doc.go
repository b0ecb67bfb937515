// Package queue provides the frontier orderings used by graph searches: a
// min-priority queue keyed by (weight, node) and a FIFO queue.
package queue
