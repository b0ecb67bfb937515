// Package results persists search outcomes and reads them back.
//
// A solution stored under key consists of
//
//	path-<key>.json       {"<node>": <predecessor>, ...}
//	visited-<key>.json    [[from, to], ...] in traversal order
//	active-<key>.json     [[from, to], ...] ascending
//	route-<key>.geojson   FeatureCollection with the route and search frontier
//
// The visited and active blobs are only written for algorithms that record
// them.
package results
