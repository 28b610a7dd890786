package routing

import (
	"errors"
	"fmt"
	"log"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
	"github.com/pathpilot/pathpilot/pkg/geo"
)

var (
	// ErrNodeNotFound signals a start/goal id absent from the indexed node
	// set. Bad input, surfaced to the caller.
	ErrNodeNotFound = errors.New("node not found in road network")
	// ErrBackendFailure wraps internal faults of a search backend.
	ErrBackendFailure = errors.New("search backend failure")
)

// Heuristic estimates the remaining cost from a node to the goal given both
// coordinates. nil means zero heuristic (plain Dijkstra). Admissibility is
// the caller's responsibility: haversine distance in meters is admissible for
// the length key; for weight_time pass nil, since traffic and surface
// penalties inflate true cost beyond geometric distance.
type Heuristic func(lat, lon, goalLat, goalLon float64) float64

// HaversineHeuristic estimates remaining meters of road, admissible for the
// length weight key.
func HaversineHeuristic() Heuristic {
	return func(lat, lon, goalLat, goalLon float64) float64 {
		return geo.CalculateHaversineDistance(lat, lon, goalLat, goalLon) * 1000
	}
}

func heuristicValue(h Heuristic, lat, lon, goalLat, goalLon float64) float64 {
	if h == nil {
		return 0
	}
	return h(lat, lon, goalLat, goalLon)
}

// SearchBackend is the shared contract of the two shortest-path
// implementations.
type SearchBackend interface {
	Name() string
	Search(g *datastructure.Graph, start, goal int64, h Heuristic,
		key datastructure.WeightKey) (datastructure.PathResult, error)
}

// Engine runs shortest-path queries with a fixed backend strategy chosen once
// at construction: the flat-array backend when its self-check passes, with a
// transparent retry on the reference backend on any runtime failure.
type Engine struct {
	cache       *ConversionCache
	accelerated SearchBackend
	reference   SearchBackend
}

func NewEngine() *Engine {
	e := &Engine{
		cache:     NewConversionCache(),
		reference: newReferenceBackend(),
	}

	accelerated := newCSRBackend(e.cache)
	if err := probeBackend(accelerated); err != nil {
		log.Printf("accelerated search backend unavailable, using reference backend only: %v", err)
	} else {
		e.accelerated = accelerated
	}
	return e
}

// NewReferenceOnlyEngine builds an engine without the accelerated backend.
// Alternative-route generation degrades to returning only the primary path.
func NewReferenceOnlyEngine() *Engine {
	return &Engine{
		cache:     NewConversionCache(),
		reference: newReferenceBackend(),
	}
}

// probeBackend runs the backend over a tiny fixture once so a broken build is
// detected at construction instead of on the first request.
func probeBackend(b SearchBackend) error {
	g := datastructure.NewGraph()
	g.AddNode(datastructure.NewNode(1, 0, 0))
	g.AddNode(datastructure.NewNode(2, 0, 0.0001))
	g.AddNode(datastructure.NewNode(3, 0, 0.0002))
	g.AddEdge(datastructure.Edge{From: 1, To: 2, Length: 10})
	g.AddEdge(datastructure.Edge{From: 2, To: 3, Length: 10})

	res, err := b.Search(g, 1, 3, nil, datastructure.WeightKeyLength)
	if err != nil {
		return err
	}
	if !res.Found || len(res.Path) != 3 || res.Distance != 20 {
		return fmt.Errorf("%w: probe returned unexpected result", ErrBackendFailure)
	}
	return nil
}

func (e *Engine) HasAcceleratedBackend() bool {
	return e.accelerated != nil
}

// Search answers a single shortest-path query on the preferred backend. A
// failure of the accelerated backend is retried on the reference backend and
// only surfaces when both fail; unknown start/goal ids fail immediately.
func (e *Engine) Search(g *datastructure.Graph, start, goal int64, h Heuristic,
	key datastructure.WeightKey) (datastructure.PathResult, error) {
	if e.accelerated != nil {
		res, err := e.accelerated.Search(g, start, goal, h, key)
		if err == nil {
			return res, nil
		}
		if errors.Is(err, ErrNodeNotFound) {
			// bad input, not a backend fault
			return res, err
		}
		log.Printf("accelerated search failed, retrying on reference backend: %v", err)
	}
	return e.reference.Search(g, start, goal, h, key)
}

// InvalidateCache drops every cached compact graph. Call after any in-place
// edge mutation, notably after a traffic simulation pass.
func (e *Engine) InvalidateCache() {
	e.cache.Invalidate()
}
