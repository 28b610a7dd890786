package datastructure

import (
	"sync/atomic"
)

type WeightKey string

const (
	// WeightKeyLength routes by static distance in meters.
	WeightKeyLength WeightKey = "length"
	// WeightKeyTravelTime routes by traffic-adjusted travel time in seconds.
	// Only populated after a traffic simulation pass.
	WeightKeyTravelTime WeightKey = "weight_time"
)

type Node struct {
	ID  int64
	Lat float64
	Lon float64
}

func NewNode(id int64, lat, lon float64) Node {
	return Node{
		ID:  id,
		Lat: lat,
		Lon: lon,
	}
}

// Edge is one directed parallel edge of the road network multigraph. Multiple
// edges may connect the same ordered node pair (distinct physical ways).
type Edge struct {
	From          int64
	To            int64
	Length        float64 // meters, always set
	SpeedKmh      float64 // 0 = unknown
	Surface       string  // "" = assumed paved
	StreetName    string
	TravelTime    float64 // free-flow seconds
	HasTravelTime bool
	WeightTime    float64 // traffic-adjusted seconds
	HasWeightTime bool
	TrafficFactor float64
	SurfaceFactor float64
}

// WeightValue returns the edge attribute for the given weight key. ok is
// false when the edge does not carry the attribute.
func (e *Edge) WeightValue(key WeightKey) (float64, bool) {
	switch key {
	case WeightKeyLength:
		return e.Length, true
	case WeightKeyTravelTime:
		return e.WeightTime, e.HasWeightTime
	}
	return 0, false
}

var graphVersionCounter uint64

// Graph is a directed road-network multigraph. The version token identifies
// the graph instance for conversion caching; in-place edge mutation keeps the
// same version, which is why callers must invalidate the conversion cache
// after mutating edge attributes.
type Graph struct {
	version  uint64
	nodes    []Node
	nodeIdx  map[int64]int
	outEdges [][]Edge
	numEdges int
}

func NewGraph() *Graph {
	return &Graph{
		version: atomic.AddUint64(&graphVersionCounter, 1),
		nodeIdx: make(map[int64]int),
	}
}

func (g *Graph) Version() uint64 {
	return g.version
}

// AddNode registers a node. Re-adding an existing id updates its coordinates.
func (g *Graph) AddNode(n Node) {
	if pos, ok := g.nodeIdx[n.ID]; ok {
		g.nodes[pos] = n
		return
	}
	g.nodeIdx[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.outEdges = append(g.outEdges, nil)
}

// AddEdge appends a directed edge. Both endpoints must already be added;
// edges referencing unknown nodes are dropped.
func (g *Graph) AddEdge(e Edge) {
	fromPos, okFrom := g.nodeIdx[e.From]
	_, okTo := g.nodeIdx[e.To]
	if !okFrom || !okTo {
		return
	}
	g.outEdges[fromPos] = append(g.outEdges[fromPos], e)
	g.numEdges++
}

func (g *Graph) HasNode(id int64) bool {
	_, ok := g.nodeIdx[id]
	return ok
}

func (g *Graph) NodeByID(id int64) (Node, bool) {
	pos, ok := g.nodeIdx[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[pos], true
}

// Nodes returns the nodes in insertion order. The slice is the graph's own
// backing array and must not be appended to.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumEdges() int {
	return g.numEdges
}

// OutEdges returns every parallel edge leaving the node, in insertion order.
func (g *Graph) OutEdges(id int64) []Edge {
	pos, ok := g.nodeIdx[id]
	if !ok {
		return nil
	}
	return g.outEdges[pos]
}

// EdgesBetween returns the parallel edges connecting the ordered pair (from, to).
func (g *Graph) EdgesBetween(from, to int64) []Edge {
	var parallel []Edge
	for _, e := range g.OutEdges(from) {
		if e.To == to {
			parallel = append(parallel, e)
		}
	}
	return parallel
}

// ForEachEdge visits every edge with a mutable reference. This is the
// in-place mutation hook used by the traffic model; callers that change
// weight attributes through it must invalidate the conversion cache.
func (g *Graph) ForEachEdge(fn func(e *Edge)) {
	for i := range g.outEdges {
		for j := range g.outEdges[i] {
			fn(&g.outEdges[i][j])
		}
	}
}
