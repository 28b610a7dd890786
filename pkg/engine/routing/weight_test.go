package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

func TestSelectWeightMinOverParallel(t *testing.T) {
	parallel := []datastructure.Edge{
		{Length: 120},
		{Length: 100},
		{Length: 300},
	}

	w, ok := selectWeight(parallel, datastructure.WeightKeyLength)
	assert.True(t, ok)
	assert.Equal(t, 100.0, w)
}

func TestSelectWeightMissingKey(t *testing.T) {
	parallel := []datastructure.Edge{
		{Length: 120},
		{Length: 100, WeightTime: 8, HasWeightTime: true},
	}

	// only one parallel edge carries the travel time weight, the others count
	// as infinite and lose the min
	w, ok := selectWeight(parallel, datastructure.WeightKeyTravelTime)
	assert.True(t, ok)
	assert.Equal(t, 8.0, w)

	// no edge carries the key at all
	_, ok = selectWeight([]datastructure.Edge{{Length: 120}}, datastructure.WeightKeyTravelTime)
	assert.False(t, ok)

	_, ok = selectWeight(nil, datastructure.WeightKeyLength)
	assert.False(t, ok)
}

func TestCollapsedNeighbors(t *testing.T) {
	g := datastructure.NewGraph()
	g.AddNode(datastructure.NewNode(1, 0, 0))
	g.AddNode(datastructure.NewNode(2, 0, 0.00001))
	g.AddNode(datastructure.NewNode(3, 0, 0.00002))
	g.AddEdge(datastructure.Edge{From: 1, To: 2, Length: 120})
	g.AddEdge(datastructure.Edge{From: 1, To: 3, Length: 50})
	g.AddEdge(datastructure.Edge{From: 1, To: 2, Length: 100})

	neighbors, weights := collapsedNeighbors(g, 1, datastructure.WeightKeyLength)
	assert.Equal(t, []int64{2, 3}, neighbors)
	assert.Equal(t, []float64{100, 50}, weights)
}

func TestCollapsedNeighborsDropsUnweightedConnections(t *testing.T) {
	g := datastructure.NewGraph()
	g.AddNode(datastructure.NewNode(1, 0, 0))
	g.AddNode(datastructure.NewNode(2, 0, 0.00001))
	g.AddNode(datastructure.NewNode(3, 0, 0.00002))
	g.AddEdge(datastructure.Edge{From: 1, To: 2, Length: 120})
	g.AddEdge(datastructure.Edge{From: 1, To: 3, Length: 50, WeightTime: 4, HasWeightTime: true})

	neighbors, weights := collapsedNeighbors(g, 1, datastructure.WeightKeyTravelTime)
	assert.Equal(t, []int64{3}, neighbors)
	assert.Equal(t, []float64{4}, weights)

	neighbors, _ = collapsedNeighbors(g, 99, datastructure.WeightKeyLength)
	assert.Nil(t, neighbors)
}

func TestPathDistance(t *testing.T) {
	g := lineGraph()

	assert.Equal(t, 30.0, PathDistance(g, []int64{1, 2, 3, 4}, datastructure.WeightKeyLength))
	assert.Equal(t, 35.0, PathDistance(g, []int64{1, 4}, datastructure.WeightKeyLength))
	assert.Equal(t, 0.0, PathDistance(g, []int64{1}, datastructure.WeightKeyLength))
	assert.Equal(t, 0.0, PathDistance(g, nil, datastructure.WeightKeyLength))
}
