package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

func TestBuildCompactGraph(t *testing.T) {
	g := lineGraph()
	cg := buildCompactGraph(g, datastructure.WeightKeyLength)

	assert.Equal(t, int32(4), cg.numNodes)
	assert.Equal(t, 5, len(cg.offsets))
	assert.Equal(t, int32(0), cg.offsets[0])
	// the forward and reverse edge of each connection, 8 in total
	assert.Equal(t, int32(8), cg.offsets[4])
	assert.Equal(t, len(cg.targets), len(cg.weights))

	// offsets are monotonically non decreasing
	for i := 1; i < len(cg.offsets); i++ {
		assert.GreaterOrEqual(t, cg.offsets[i], cg.offsets[i-1])
	}

	// id mapping is a bijection
	for idx, id := range cg.indexToID {
		assert.Equal(t, int32(idx), cg.idToIndex[id])
	}
}

func TestCompactGraphParallelEdgesCollapse(t *testing.T) {
	g := datastructure.NewGraph()
	g.AddNode(datastructure.NewNode(1, 0, 0))
	g.AddNode(datastructure.NewNode(2, 0, 0.00001))
	g.AddEdge(datastructure.Edge{From: 1, To: 2, Length: 120})
	g.AddEdge(datastructure.Edge{From: 1, To: 2, Length: 100})

	cg := buildCompactGraph(g, datastructure.WeightKeyLength)

	idx, err := cg.nodeIndex(1)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), cg.offsets[idx+1]-cg.offsets[idx])
	assert.Equal(t, 100.0, cg.weights[cg.offsets[idx]])
}

func TestCompactGraphNodeIndexError(t *testing.T) {
	g := lineGraph()
	cg := buildCompactGraph(g, datastructure.WeightKeyLength)

	_, err := cg.nodeIndex(999)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestConversionCacheReusesBuiltGraph(t *testing.T) {
	g := lineGraph()
	cache := NewConversionCache()

	first := cache.get(g, datastructure.WeightKeyLength)
	second := cache.get(g, datastructure.WeightKeyLength)
	assert.Same(t, first, second)

	// different weight keys build different compact graphs
	other := cache.get(g, datastructure.WeightKeyTravelTime)
	assert.NotSame(t, first, other)

	cache.Invalidate()
	rebuilt := cache.get(g, datastructure.WeightKeyLength)
	assert.NotSame(t, first, rebuilt)
}

func TestConversionCacheDistinctGraphInstances(t *testing.T) {
	g1 := lineGraph()
	g2 := lineGraph()
	cache := NewConversionCache()

	cg1 := cache.get(g1, datastructure.WeightKeyLength)
	cg2 := cache.get(g2, datastructure.WeightKeyLength)
	assert.NotSame(t, cg1, cg2)
}

func TestAstarOverFlatMisalignedWeights(t *testing.T) {
	g := lineGraph()
	cg := buildCompactGraph(g, datastructure.WeightKeyLength)

	_, err := astarOverFlat(cg, cg.weights[:1], 0, 3, nil)
	assert.ErrorIs(t, err, ErrBackendFailure)
}
