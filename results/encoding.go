package results

import (
	"strconv"

	"github.com/HeNeos/graph-algorithms-in-maps/graph"
)

// pathDocument maps a node id, as a decimal string, to its predecessor.
type pathDocument map[string]int64

// edgeList is a list of [from, to] pairs.
type edgeList [][2]int64

func encodePath(preds map[graph.NodeID]graph.NodeID) pathDocument {
	doc := make(pathDocument, len(preds))
	for node, prev := range preds {
		doc[strconv.FormatInt(int64(node), 10)] = int64(prev)
	}
	return doc
}

func decodePath(doc pathDocument) (map[graph.NodeID]graph.NodeID, error) {
	preds := make(map[graph.NodeID]graph.NodeID, len(doc))
	for k, prev := range doc {
		node, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, err
		}
		preds[graph.NodeID(node)] = graph.NodeID(prev)
	}
	return preds, nil
}

func encodeEdges(ids []graph.EdgeID) edgeList {
	out := make(edgeList, len(ids))
	for i, id := range ids {
		out[i] = [2]int64{int64(id.From), int64(id.To)}
	}
	return out
}

func decodeEdges(list edgeList) []graph.EdgeID {
	out := make([]graph.EdgeID, len(list))
	for i, pair := range list {
		out[i] = graph.EdgeID{From: graph.NodeID(pair[0]), To: graph.NodeID(pair[1])}
	}
	return out
}
