package routing

import (
	"sync"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

type conversionKey struct {
	version uint64
	weight  datastructure.WeightKey
}

// ConversionCache memoizes compact graphs per (graph instance, weight key).
// The graph version token stands in for object identity, so a refreshed road
// network never collides with a cached entry of its predecessor. In-place
// edge mutation keeps the version, so after a traffic pass callers must call
// Invalidate or searches silently keep using stale weights.
//
// The mutex only keeps the map itself coherent; serializing builds and
// invalidations against concurrent searches is the host's job.
type ConversionCache struct {
	mu      sync.Mutex
	entries map[conversionKey]*compactGraph
}

func NewConversionCache() *ConversionCache {
	return &ConversionCache{
		entries: make(map[conversionKey]*compactGraph),
	}
}

// get returns the cached compact graph for the pair, building it on a miss.
func (c *ConversionCache) get(g *datastructure.Graph, key datastructure.WeightKey) *compactGraph {
	ck := conversionKey{version: g.Version(), weight: key}

	c.mu.Lock()
	cg, ok := c.entries[ck]
	c.mu.Unlock()
	if ok {
		return cg
	}

	cg = buildCompactGraph(g, key)

	c.mu.Lock()
	c.entries[ck] = cg
	c.mu.Unlock()
	return cg
}

// Invalidate clears the whole cache. Must be called after any in-place
// mutation of a graph's edge attributes, notably after a traffic simulation.
func (c *ConversionCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[conversionKey]*compactGraph)
	c.mu.Unlock()
}
