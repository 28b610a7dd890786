package snap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

func snapFixture() *datastructure.Graph {
	g := datastructure.NewGraph()
	g.AddNode(datastructure.NewNode(1, -7.5560, 110.8310))
	g.AddNode(datastructure.NewNode(2, -7.5590, 110.8400))
	g.AddNode(datastructure.NewNode(3, -7.5700, 110.8500))
	return g
}

func TestSnapToRoadNetworkNode(t *testing.T) {
	rs := NewRoadSnapper()
	rs.BuildFromGraph(snapFixture())

	// slightly off node 1
	id, err := rs.SnapToRoadNetworkNode(-7.5561, 110.8311)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), id)

	id, err = rs.SnapToRoadNetworkNode(-7.5698, 110.8499)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), id)
}

func TestSnapToRoadNetworkNodes(t *testing.T) {
	rs := NewRoadSnapper()
	rs.BuildFromGraph(snapFixture())

	ids := rs.SnapToRoadNetworkNodes(-7.5561, 110.8311, 2)
	assert.Equal(t, 2, len(ids))
	assert.Equal(t, int64(1), ids[0])
	assert.Equal(t, int64(2), ids[1])
}

func TestSnapEmptyTree(t *testing.T) {
	rs := NewRoadSnapper()

	_, err := rs.SnapToRoadNetworkNode(-7.5561, 110.8311)
	assert.ErrorIs(t, err, ErrNoNearbyNode)
}
