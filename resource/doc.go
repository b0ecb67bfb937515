// Package resource bounds the process-wide cost of routing: how many searches
// run at once, how much memory cached graphs may hold, and how fast graph and
// result blobs move through storage.
package resource
