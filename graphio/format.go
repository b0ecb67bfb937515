package graphio

import (
	"slices"
	"strconv"
	"strings"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
)

const (
	nodesPrefix = "nodes-"
	edgesPrefix = "edges-"
	blobSuffix  = ".json"
)

// NodesBlob returns the blob name holding the nodes of key.
func NodesBlob(key string) string { return nodesPrefix + key + blobSuffix }

// EdgesBlob returns the blob name holding the edges of key.
func EdgesBlob(key string) string { return edgesPrefix + key + blobSuffix }

// KeyFromBlob extracts the graph key from a nodes blob name.
func KeyFromBlob(name string) (string, bool) {
	if !strings.HasPrefix(name, nodesPrefix) || !strings.HasSuffix(name, blobSuffix) {
		return "", false
	}
	key := strings.TrimSuffix(strings.TrimPrefix(name, nodesPrefix), blobSuffix)
	return key, key != ""
}

type nodesDocument struct {
	Nodes map[string]string `json:"Nodes"`
}

type edgesDocument struct {
	Edges map[string]string `json:"Edges"`
}

type edgeRecord struct {
	id       graph.EdgeID
	lengthM  float64
	maxSpeed int
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatID(id graph.NodeID) string {
	return strconv.FormatInt(int64(id), 10)
}

func encodeNodes(g *graph.Graph) nodesDocument {
	doc := nodesDocument{Nodes: make(map[string]string, g.NumNodes())}
	for _, id := range g.Nodes() {
		n := g.Node(id)
		doc.Nodes[formatID(id)] = formatFloat(n.Lat) + "," + formatFloat(n.Lon)
	}
	return doc
}

func encodeEdges(g *graph.Graph) edgesDocument {
	doc := edgesDocument{Edges: make(map[string]string, g.NumEdges())}
	for _, id := range g.Edges() {
		e := g.Edge(id.From, id.To)
		doc.Edges[id.String()] = formatFloat(e.LengthM) + "," + strconv.Itoa(e.MaxSpeedKmh)
	}
	return doc
}

func splitPair(s string) (string, string, bool) {
	a, b, ok := strings.Cut(s, ",")
	if !ok || strings.Contains(b, ",") {
		return "", "", false
	}
	return strings.TrimSpace(a), strings.TrimSpace(b), true
}

func parseNodeID(s string) (graph.NodeID, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return graph.NodeID(v), err
}

func parseNode(blob, key, value string) (graph.NodeID, float64, float64, error) {
	id, err := parseNodeID(key)
	if err != nil {
		return 0, 0, 0, &ParseError{Blob: blob, Record: key, Err: err}
	}
	latS, lonS, ok := splitPair(value)
	if !ok {
		return 0, 0, 0, &ParseError{Blob: blob, Record: key, Err: ErrMalformedRecord}
	}
	lat, err := strconv.ParseFloat(latS, 64)
	if err != nil {
		return 0, 0, 0, &ParseError{Blob: blob, Record: key, Err: err}
	}
	lon, err := strconv.ParseFloat(lonS, 64)
	if err != nil {
		return 0, 0, 0, &ParseError{Blob: blob, Record: key, Err: err}
	}
	return id, lat, lon, nil
}

func parseEdge(blob, key, value string) (edgeRecord, error) {
	fromS, toS, ok := splitPair(key)
	if !ok {
		return edgeRecord{}, &ParseError{Blob: blob, Record: key, Err: ErrMalformedRecord}
	}
	from, err := parseNodeID(fromS)
	if err != nil {
		return edgeRecord{}, &ParseError{Blob: blob, Record: key, Err: err}
	}
	to, err := parseNodeID(toS)
	if err != nil {
		return edgeRecord{}, &ParseError{Blob: blob, Record: key, Err: err}
	}

	lengthS, speedS, ok := splitPair(value)
	if !ok {
		return edgeRecord{}, &ParseError{Blob: blob, Record: key, Err: ErrMalformedRecord}
	}
	length, err := strconv.ParseFloat(lengthS, 64)
	if err != nil {
		return edgeRecord{}, &ParseError{Blob: blob, Record: key, Err: err}
	}
	speed, err := strconv.Atoi(speedS)
	if err != nil {
		return edgeRecord{}, &ParseError{Blob: blob, Record: key, Err: err}
	}
	return edgeRecord{id: graph.EdgeID{From: from, To: to}, lengthM: length, maxSpeed: speed}, nil
}

// decodeGraph builds a graph from both documents. Edges are inserted in id
// order so successor lists do not depend on JSON object ordering.
func decodeGraph(key string, nodes nodesDocument, edges edgesDocument) (*graph.Graph, error) {
	nodesName, edgesName := NodesBlob(key), EdgesBlob(key)
	if nodes.Nodes == nil {
		return nil, &ParseError{Blob: nodesName, Err: ErrMissingSection}
	}
	if edges.Edges == nil {
		return nil, &ParseError{Blob: edgesName, Err: ErrMissingSection}
	}

	b := graph.NewBuilder()
	for k, v := range nodes.Nodes {
		id, lat, lon, err := parseNode(nodesName, k, v)
		if err != nil {
			return nil, err
		}
		if err := b.AddNode(id, lat, lon); err != nil {
			return nil, &ParseError{Blob: nodesName, Record: k, Err: err}
		}
	}

	records := make([]edgeRecord, 0, len(edges.Edges))
	for k, v := range edges.Edges {
		rec, err := parseEdge(edgesName, k, v)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	slices.SortFunc(records, func(a, b edgeRecord) int { return a.id.Compare(b.id) })
	for _, rec := range records {
		if err := b.AddEdge(rec.id.From, rec.id.To, rec.lengthM, rec.maxSpeed); err != nil {
			return nil, &ParseError{Blob: edgesName, Record: rec.id.String(), Err: err}
		}
	}

	g, err := b.Build()
	if err != nil {
		return nil, &ParseError{Blob: edgesName, Err: err}
	}
	return g, nil
}
