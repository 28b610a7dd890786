package routing

import (
	"fmt"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

// compactGraph is the flat-array (CSR) form of a road graph built for one
// weight key. offsets has length N+1; the out-neighbors of dense node i live
// in targets[offsets[i]:offsets[i+1]] with their collapsed weights aligned in
// weights. Immutable once built; the alternative-route generator penalizes a
// private copy of weights, never this one.
type compactGraph struct {
	numNodes  int32
	offsets   []int32
	targets   []int32
	weights   []float64
	lats      []float64
	lons      []float64
	indexToID []int64
	idToIndex map[int64]int32
}

func buildCompactGraph(g *datastructure.Graph, key datastructure.WeightKey) *compactGraph {
	nodes := g.Nodes()
	n := len(nodes)

	cg := &compactGraph{
		numNodes:  int32(n),
		offsets:   make([]int32, n+1),
		targets:   make([]int32, 0, g.NumEdges()),
		weights:   make([]float64, 0, g.NumEdges()),
		lats:      make([]float64, n),
		lons:      make([]float64, n),
		indexToID: make([]int64, n),
		idToIndex: make(map[int64]int32, n),
	}

	for i, node := range nodes {
		cg.idToIndex[node.ID] = int32(i)
		cg.indexToID[i] = node.ID
		cg.lats[i] = node.Lat
		cg.lons[i] = node.Lon
	}

	for i, node := range nodes {
		neighbors, weights := collapsedNeighbors(g, node.ID, key)
		for j, neighborID := range neighbors {
			cg.targets = append(cg.targets, cg.idToIndex[neighborID])
			cg.weights = append(cg.weights, weights[j])
		}
		cg.offsets[i+1] = int32(len(cg.targets))
	}

	return cg
}

// nodeIndex resolves a stable node id to its dense index.
func (cg *compactGraph) nodeIndex(id int64) (int32, error) {
	idx, ok := cg.idToIndex[id]
	if !ok {
		return 0, fmt.Errorf("%w: node %d", ErrNodeNotFound, id)
	}
	return idx, nil
}

func (cg *compactGraph) pathNodeIDs(indices []int32) []int64 {
	ids := make([]int64, len(indices))
	for i, idx := range indices {
		ids[i] = cg.indexToID[idx]
	}
	return ids
}
