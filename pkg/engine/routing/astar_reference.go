package routing

import (
	"fmt"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
	"github.com/pathpilot/pathpilot/pkg/util"
)

// referenceBackend is the always-available priority-queue search over the
// road multigraph itself. With a nil heuristic it is Dijkstra's algorithm:
// optimal regardless of weight semantics, used as ground truth and for
// visited-count telemetry. With an admissible, consistent heuristic it is A*.
type referenceBackend struct{}

func newReferenceBackend() *referenceBackend {
	return &referenceBackend{}
}

func (b *referenceBackend) Name() string {
	return "reference"
}

func (b *referenceBackend) Search(g *datastructure.Graph, start, goal int64, h Heuristic,
	key datastructure.WeightKey) (datastructure.PathResult, error) {
	if !g.HasNode(start) {
		return datastructure.PathResult{}, fmt.Errorf("%w: node %d", ErrNodeNotFound, start)
	}
	if !g.HasNode(goal) {
		return datastructure.PathResult{}, fmt.Errorf("%w: node %d", ErrNodeNotFound, goal)
	}

	if start == goal {
		return datastructure.PathResult{
			Path:  []int64{start},
			Found: true,
		}, nil
	}

	goalNode, _ := g.NodeByID(goal)

	costSoFar := make(map[int64]float64)
	cameFrom := make(map[int64]int64)
	costSoFar[start] = 0
	cameFrom[start] = -1

	pq := datastructure.NewMinHeap[int64]()
	startNode, _ := g.NodeByID(start)
	pq.Insert(datastructure.PriorityQueueNode[int64]{
		Rank: heuristicValue(h, startNode.Lat, startNode.Lon, goalNode.Lat, goalNode.Lon),
		Item: start,
	})

	visited := 0

	for pq.Size() > 0 {
		current, err := pq.ExtractMin()
		if err != nil {
			return datastructure.PathResult{}, fmt.Errorf("%w: %v", ErrBackendFailure, err)
		}
		u := current.Item
		visited++

		if u == goal {
			path := make([]int64, 0)
			for v := goal; v != -1; v = cameFrom[v] {
				path = append(path, v)
			}
			path = util.ReverseG(path)
			return datastructure.PathResult{
				Path:     path,
				Distance: PathDistance(g, path, key),
				Visited:  visited,
				Found:    true,
			}, nil
		}

		neighbors, weights := collapsedNeighbors(g, u, key)
		for i, v := range neighbors {
			newCost := costSoFar[u] + weights[i]
			prevCost, reached := costSoFar[v]
			if reached && newCost >= prevCost {
				continue
			}
			costSoFar[v] = newCost
			cameFrom[v] = u

			vNode, _ := g.NodeByID(v)
			priority := newCost + heuristicValue(h, vNode.Lat, vNode.Lon, goalNode.Lat, goalNode.Lon)
			node := datastructure.PriorityQueueNode[int64]{Rank: priority, Item: v}
			if !reached {
				pq.Insert(node)
			} else if err := pq.DecreaseKey(node); err != nil {
				pq.Insert(node)
			}
		}
	}

	return datastructure.NewNotFoundPathResult(visited), nil
}
