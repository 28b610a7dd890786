package datastructure

import (
	"math"

	"github.com/twpayne/go-polyline"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

// VisitedUntracked marks a PathResult whose backend does not count popped
// frontier nodes.
const VisitedUntracked = -1

// PathResult is the outcome of a single shortest-path search. An unreachable
// goal is a normal result: Found is false and Distance is +Inf, never an error.
type PathResult struct {
	Path     []int64
	Distance float64
	Visited  int
	Found    bool
}

func NewNotFoundPathResult(visited int) PathResult {
	return PathResult{
		Distance: math.Inf(1),
		Visited:  visited,
	}
}

const (
	LabelShortest = "Shortest"
	LabelFastest  = "Fastest"
)

type LabeledPath struct {
	PathResult
	Label string
}

// AlternativeSet is an ordered list of labeled paths; the first entry is the
// primary/optimal result.
type AlternativeSet []LabeledPath

// RouteAlternative is one routable path prepared for the API layer.
type RouteAlternative struct {
	Polyline       string
	Coords         []Coordinate
	DistanceMeters float64
	Label          string
	Instructions   []string
	NodesVisited   int
}

type GraphBounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

func (b GraphBounds) Center() Coordinate {
	return NewCoordinate((b.MinLat+b.MaxLat)/2, (b.MinLon+b.MaxLon)/2)
}

// KVEdge is the compact road-segment record stored in the h3-indexed
// key-value store for wide-radius snapping.
type KVEdge struct {
	CenterLoc  [2]float64
	FromNodeID int64
	ToNodeID   int64
	StreetName string
	Length     float64
}

// NearbyStreet is a snapping candidate: a stored road segment plus the
// projection of the query point onto it.
type NearbyStreet struct {
	Edge       KVEdge
	Projection Coordinate
	DistMeters float64
}

func CreatePolyline(path []Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.Lat, p.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}
