package routing

import (
	"fmt"
	"math"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
	"github.com/pathpilot/pathpilot/pkg/util"
)

// csrBackend runs A* over the cached flat-array form of the graph. It does
// not track a visited count; results carry the untracked sentinel.
type csrBackend struct {
	cache *ConversionCache
}

func newCSRBackend(cache *ConversionCache) *csrBackend {
	return &csrBackend{cache: cache}
}

func (b *csrBackend) Name() string {
	return "csr"
}

func (b *csrBackend) Search(g *datastructure.Graph, start, goal int64, h Heuristic,
	key datastructure.WeightKey) (datastructure.PathResult, error) {
	cg := b.cache.get(g, key)

	startIdx, err := cg.nodeIndex(start)
	if err != nil {
		return datastructure.PathResult{}, err
	}
	goalIdx, err := cg.nodeIndex(goal)
	if err != nil {
		return datastructure.PathResult{}, err
	}

	if startIdx == goalIdx {
		return datastructure.PathResult{
			Path:    []int64{start},
			Visited: datastructure.VisitedUntracked,
			Found:   true,
		}, nil
	}

	pathIndices, err := astarOverFlat(cg, cg.weights, startIdx, goalIdx, h)
	if err != nil {
		return datastructure.PathResult{}, err
	}
	if len(pathIndices) == 0 {
		return datastructure.NewNotFoundPathResult(datastructure.VisitedUntracked), nil
	}

	path := cg.pathNodeIDs(pathIndices)
	return datastructure.PathResult{
		Path:     path,
		Distance: PathDistance(g, path, key),
		Visited:  datastructure.VisitedUntracked,
		Found:    true,
	}, nil
}

// astarOverFlat searches the flat adjacency arrays. weights may be the
// compact graph's own array or a penalized working copy owned by the caller;
// it must be aligned with cg.targets. Returns nil when the frontier empties
// without reaching the goal.
func astarOverFlat(cg *compactGraph, weights []float64, start, goal int32,
	h Heuristic) ([]int32, error) {
	if len(weights) != len(cg.targets) {
		return nil, fmt.Errorf("%w: weight array not aligned with adjacency", ErrBackendFailure)
	}

	costSoFar := make([]float64, cg.numNodes)
	cameFrom := make([]int32, cg.numNodes)
	inFrontier := make([]bool, cg.numNodes)
	for i := range costSoFar {
		costSoFar[i] = math.Inf(1)
		cameFrom[i] = -1
	}

	goalLat := cg.lats[goal]
	goalLon := cg.lons[goal]

	pq := datastructure.NewMinHeap[int32]()
	costSoFar[start] = 0
	inFrontier[start] = true
	pq.Insert(datastructure.PriorityQueueNode[int32]{
		Rank: heuristicValue(h, cg.lats[start], cg.lons[start], goalLat, goalLon),
		Item: start,
	})

	for pq.Size() > 0 {
		current, err := pq.ExtractMin()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackendFailure, err)
		}
		u := current.Item

		if u == goal {
			path := make([]int32, 0)
			for v := goal; v != -1; v = cameFrom[v] {
				path = append(path, v)
			}
			return util.ReverseG(path), nil
		}

		for i := cg.offsets[u]; i < cg.offsets[u+1]; i++ {
			v := cg.targets[i]
			newCost := costSoFar[u] + weights[i]
			if newCost >= costSoFar[v] {
				continue
			}
			costSoFar[v] = newCost
			cameFrom[v] = u

			priority := newCost + heuristicValue(h, cg.lats[v], cg.lons[v], goalLat, goalLon)
			node := datastructure.PriorityQueueNode[int32]{Rank: priority, Item: v}
			if inFrontier[v] {
				if err := pq.DecreaseKey(node); err != nil {
					// already settled and popped; re-open it
					pq.Insert(node)
				}
			} else {
				inFrontier[v] = true
				pq.Insert(node)
			}
		}
	}

	return nil, nil
}
