// Package graph models a directed road network.
//
// A Graph is built once through a Builder, which enforces referential
// integrity, and is read-only afterwards. Nodes carry coordinates and the
// ordered list of their successors; edges are keyed by their ordered
// (from, to) pair and carry a length in meters and a speed limit in km/h.
//
// Lookups of identifiers that are not part of the graph panic with an
// *IntegrityError: a search only ever follows references the graph itself
// produced, so a miss means the graph is corrupt. Use LookupNode and
// LookupEdge to validate untrusted identifiers.
package graph
