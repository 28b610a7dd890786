package routing

import (
	"math"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

// selectWeight collapses a set of parallel edges into a single scalar: the
// minimum value of the weight key across the set, treating a missing key as
// infinite. ok is false when every parallel edge lacks the key, in which case
// the connection is excluded from the index entirely.
func selectWeight(parallel []datastructure.Edge, key datastructure.WeightKey) (float64, bool) {
	minW := math.Inf(1)
	for i := range parallel {
		if w, ok := parallel[i].WeightValue(key); ok && w < minW {
			minW = w
		}
	}
	if math.IsInf(minW, 1) {
		return 0, false
	}
	return minW, true
}

// collapsedNeighbors lists the distinct out-neighbors of u in first-encounter
// order with their weight-model-selected weights. Connections where every
// parallel edge lacks the key are skipped. The tie-break between equal-weight
// parallel edges is whichever comes first in edge iteration order; only the
// scalar value is contractual.
func collapsedNeighbors(g *datastructure.Graph, u int64, key datastructure.WeightKey) ([]int64, []float64) {
	outEdges := g.OutEdges(u)
	if len(outEdges) == 0 {
		return nil, nil
	}

	pos := make(map[int64]int, len(outEdges))
	neighbors := make([]int64, 0, len(outEdges))
	weights := make([]float64, 0, len(outEdges))

	for i := range outEdges {
		w, ok := outEdges[i].WeightValue(key)
		if !ok {
			w = math.Inf(1)
		}
		if p, seen := pos[outEdges[i].To]; seen {
			if w < weights[p] {
				weights[p] = w
			}
			continue
		}
		pos[outEdges[i].To] = len(neighbors)
		neighbors = append(neighbors, outEdges[i].To)
		weights = append(weights, w)
	}

	// drop connections with no usable weight at all
	keptNeighbors := neighbors[:0]
	keptWeights := weights[:0]
	for i := range neighbors {
		if math.IsInf(weights[i], 1) {
			continue
		}
		keptNeighbors = append(keptNeighbors, neighbors[i])
		keptWeights = append(keptWeights, weights[i])
	}
	return keptNeighbors, keptWeights
}

// PathDistance recomputes the total cost of a node sequence against the
// original graph using the same minimum-weight selection as the index build,
// so a stale conversion cache can never corrupt a reported distance.
func PathDistance(g *datastructure.Graph, path []int64, key datastructure.WeightKey) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		w, ok := selectWeight(g.EdgesBetween(path[i], path[i+1]), key)
		if !ok {
			continue
		}
		total += w
	}
	return total
}
