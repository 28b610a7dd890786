package snap

import (
	"errors"

	"github.com/dhconnelly/rtreego"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

var ErrNoNearbyNode = errors.New("no road network node near the given location")

// nodeRectTol is the half side length of the rtree leaf rectangle around a
// node, in degrees.
const nodeRectTol = 0.0001

type nodeItem struct {
	id  int64
	loc rtreego.Point
}

func (n *nodeItem) Bounds() rtreego.Rect {
	return n.loc.ToRect(nodeRectTol)
}

// RoadSnapper resolves arbitrary coordinates to the nearest road network
// node id via a 2-d rtree over node locations.
type RoadSnapper struct {
	tree *rtreego.Rtree
}

func NewRoadSnapper() *RoadSnapper {
	return &RoadSnapper{tree: rtreego.NewTree(2, 25, 50)}
}

func (rs *RoadSnapper) BuildFromGraph(g *datastructure.Graph) {
	for _, node := range g.Nodes() {
		rs.tree.Insert(&nodeItem{
			id:  node.ID,
			loc: rtreego.Point{node.Lat, node.Lon},
		})
	}
}

// SnapToRoadNetworkNode returns the nearest graph node id to (lat, lon).
func (rs *RoadSnapper) SnapToRoadNetworkNode(lat, lon float64) (int64, error) {
	nearest := rs.tree.NearestNeighbor(rtreego.Point{lat, lon})
	if nearest == nil {
		return 0, ErrNoNearbyNode
	}
	return nearest.(*nodeItem).id, nil
}

// SnapToRoadNetworkNodes returns up to k nearest node ids, closest first.
func (rs *RoadSnapper) SnapToRoadNetworkNodes(lat, lon float64, k int) []int64 {
	neighbors := rs.tree.NearestNeighbors(k, rtreego.Point{lat, lon})
	ids := make([]int64, 0, len(neighbors))
	for _, n := range neighbors {
		if n == nil {
			continue
		}
		ids = append(ids, n.(*nodeItem).id)
	}
	return ids
}
