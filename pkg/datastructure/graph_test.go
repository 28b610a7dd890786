package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphAddNodeAndEdge(t *testing.T) {
	g := NewGraph()
	g.AddNode(NewNode(1, -7.55, 110.79))
	g.AddNode(NewNode(2, -7.56, 110.80))

	assert.Equal(t, 2, g.NumNodes())
	assert.True(t, g.HasNode(1))
	assert.False(t, g.HasNode(99))

	g.AddEdge(Edge{From: 1, To: 2, Length: 150, StreetName: "jalan slamet riyadi"})
	assert.Equal(t, 1, g.NumEdges())

	out := g.OutEdges(1)
	assert.Equal(t, 1, len(out))
	assert.Equal(t, int64(2), out[0].To)
	assert.Equal(t, 150.0, out[0].Length)

	// edges referencing unknown endpoints are dropped
	g.AddEdge(Edge{From: 1, To: 99, Length: 10})
	assert.Equal(t, 1, g.NumEdges())
}

func TestGraphReAddNodeUpdatesCoords(t *testing.T) {
	g := NewGraph()
	g.AddNode(NewNode(1, -7.55, 110.79))
	g.AddEdge(Edge{From: 1, To: 1, Length: 1})

	g.AddNode(NewNode(1, -7.60, 110.85))
	assert.Equal(t, 1, g.NumNodes())

	node, ok := g.NodeByID(1)
	assert.True(t, ok)
	assert.Equal(t, -7.60, node.Lat)
	assert.Equal(t, 110.85, node.Lon)
}

func TestGraphParallelEdges(t *testing.T) {
	g := NewGraph()
	g.AddNode(NewNode(1, 0, 0))
	g.AddNode(NewNode(2, 0, 0.001))

	g.AddEdge(Edge{From: 1, To: 2, Length: 120})
	g.AddEdge(Edge{From: 1, To: 2, Length: 100})
	g.AddEdge(Edge{From: 2, To: 1, Length: 100})

	parallel := g.EdgesBetween(1, 2)
	assert.Equal(t, 2, len(parallel))
	assert.Equal(t, 120.0, parallel[0].Length)
	assert.Equal(t, 100.0, parallel[1].Length)

	assert.Equal(t, 0, len(g.EdgesBetween(2, 99)))
}

func TestEdgeWeightValue(t *testing.T) {
	e := Edge{Length: 50}

	w, ok := e.WeightValue(WeightKeyLength)
	assert.True(t, ok)
	assert.Equal(t, 50.0, w)

	// travel time weight is absent until a traffic pass sets it
	_, ok = e.WeightValue(WeightKeyTravelTime)
	assert.False(t, ok)

	e.WeightTime = 12.5
	e.HasWeightTime = true
	w, ok = e.WeightValue(WeightKeyTravelTime)
	assert.True(t, ok)
	assert.Equal(t, 12.5, w)

	_, ok = e.WeightValue(WeightKey("unknown"))
	assert.False(t, ok)
}

func TestGraphForEachEdgeMutatesInPlace(t *testing.T) {
	g := NewGraph()
	g.AddNode(NewNode(1, 0, 0))
	g.AddNode(NewNode(2, 0, 0.001))
	g.AddEdge(Edge{From: 1, To: 2, Length: 100})

	g.ForEachEdge(func(e *Edge) {
		e.WeightTime = 42
		e.HasWeightTime = true
	})

	out := g.OutEdges(1)
	assert.True(t, out[0].HasWeightTime)
	assert.Equal(t, 42.0, out[0].WeightTime)
}

func TestGraphVersionDistinctPerInstance(t *testing.T) {
	g1 := NewGraph()
	g2 := NewGraph()
	assert.NotEqual(t, g1.Version(), g2.Version())

	// in-place mutation keeps the same version token
	v := g1.Version()
	g1.AddNode(NewNode(1, 0, 0))
	assert.Equal(t, v, g1.Version())
}
