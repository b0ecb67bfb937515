// Package graphio moves road graphs between object storage and memory.
//
// A graph stored under key is split in two JSON blobs:
//
//	nodes-<key>.json  {"Nodes": {"<id>": "<lat>,<lon>"}}
//	edges-<key>.json  {"Edges": {"<from>,<to>": "<length_m>,<maxspeed_kmh>"}}
//
// Blobs may be wrapped in a codec compression frame; unframed blobs are read
// as-is so graphs produced by other tools load unchanged.
package graphio
