package routing

import (
	"fmt"
	"log"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

// penaltyFactor inflates the weight of edges traversed by already-found
// paths, progressively discouraging repeated corridors. Penalties accumulate
// across iterations.
const penaltyFactor = 1.5

// GetAlternatives computes the optimal path plus up to k-1 labeled
// alternatives via iterative edge penalization. The primary path is labeled
// Shortest (length key) or Fastest (weight_time key), subsequent ones
// "Alternative i"; true distances are always recomputed on the unpenalized
// graph. Penalization runs on a request-scoped copy of the cached weight
// array, never on the shared cache. When only the reference backend is
// available the generator degrades to returning just the primary path, since
// penalization relies on an efficient re-solve loop.
func (e *Engine) GetAlternatives(g *datastructure.Graph, start, goal int64, h Heuristic,
	key datastructure.WeightKey, k int) (datastructure.AlternativeSet, error) {
	primary, err := e.Search(g, start, goal, h, key)
	if err != nil {
		return nil, err
	}
	if !primary.Found {
		return datastructure.AlternativeSet{}, nil
	}

	label := datastructure.LabelShortest
	if key == datastructure.WeightKeyTravelTime {
		label = datastructure.LabelFastest
	}
	set := datastructure.AlternativeSet{{PathResult: primary, Label: label}}

	if e.accelerated == nil {
		return set, nil
	}

	cg := e.cache.get(g, key)
	startIdx, err := cg.nodeIndex(start)
	if err != nil {
		return set, nil
	}
	goalIdx, err := cg.nodeIndex(goal)
	if err != nil {
		return set, nil
	}

	workingWeights := make([]float64, len(cg.weights))
	copy(workingWeights, cg.weights)

	for i := 1; i < k; i++ {
		penalizePath(cg, workingWeights, set[len(set)-1].Path)

		pathIndices, err := astarOverFlat(cg, workingWeights, startIdx, goalIdx, h)
		if err != nil {
			// non-fatal: keep whatever has been collected
			log.Printf("alternative route search failed: %v", err)
			break
		}
		if len(pathIndices) == 0 {
			break
		}

		path := cg.pathNodeIDs(pathIndices)
		if containsPath(set, path) {
			// penalization had no effect, converged
			break
		}

		set = append(set, datastructure.LabeledPath{
			PathResult: datastructure.PathResult{
				Path:     path,
				Distance: PathDistance(g, path, key),
				Visited:  datastructure.VisitedUntracked,
				Found:    true,
			},
			Label: fmt.Sprintf("Alternative %d", i),
		})
	}

	return set, nil
}

// penalizePath multiplies the working weight of every edge traversed by the
// path. Only the first matching parallel slot per node pair carries the
// collapsed weight, so a single adjacency scan per hop suffices.
func penalizePath(cg *compactGraph, weights []float64, path []int64) {
	for i := 0; i+1 < len(path); i++ {
		uIdx, ok := cg.idToIndex[path[i]]
		if !ok {
			continue
		}
		vIdx, ok := cg.idToIndex[path[i+1]]
		if !ok {
			continue
		}
		for j := cg.offsets[uIdx]; j < cg.offsets[uIdx+1]; j++ {
			if cg.targets[j] == vIdx {
				weights[j] *= penaltyFactor
				break
			}
		}
	}
}

func containsPath(set datastructure.AlternativeSet, path []int64) bool {
	for _, entry := range set {
		if samePath(entry.Path, path) {
			return true
		}
	}
	return false
}

func samePath(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
