package service

import (
	"context"
	"sort"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
	"github.com/pathpilot/pathpilot/pkg/engine/routing"
	"github.com/pathpilot/pathpilot/pkg/geo"
	"github.com/pathpilot/pathpilot/pkg/guidance"
	"github.com/pathpilot/pathpilot/pkg/server"
	"github.com/pathpilot/pathpilot/pkg/traffic"
)

type RoutingEngine interface {
	Search(g *datastructure.Graph, start, goal int64, h routing.Heuristic,
		key datastructure.WeightKey) (datastructure.PathResult, error)
	GetAlternatives(g *datastructure.Graph, start, goal int64, h routing.Heuristic,
		key datastructure.WeightKey, k int) (datastructure.AlternativeSet, error)
	InvalidateCache()
}

type RoadSnapper interface {
	SnapToRoadNetworkNode(lat, lon float64) (int64, error)
}

type KVDB interface {
	GetNearestStreetsFromPointCoord(lat, lon float64) ([]datastructure.KVEdge, error)
}

type NavigationService struct {
	graph   *datastructure.Graph
	engine  RoutingEngine
	snapper RoadSnapper
	kv      KVDB
}

func NewNavigationService(graph *datastructure.Graph, engine RoutingEngine,
	snapper RoadSnapper, kv KVDB) *NavigationService {
	return &NavigationService{graph: graph, engine: engine, snapper: snapper, kv: kv}
}

// Route snaps both endpoints to the road network and returns up to k route
// alternatives between them, ranked by the requested edge weight.
func (uc *NavigationService) Route(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64,
	weight datastructure.WeightKey, k int) ([]datastructure.RouteAlternative, error) {

	fromNode, err := uc.snapper.SnapToRoadNetworkNode(srcLat, srcLon)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrNotFound,
			"sorry!! the origin you entered is not covered on my map :(, please use a different openstreetmap pbf file")
	}
	toNode, err := uc.snapper.SnapToRoadNetworkNode(dstLat, dstLon)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrNotFound,
			"sorry!! the destination you entered is not covered on my map :(, please use a different openstreetmap pbf file")
	}

	// landmark-free lower bound only holds for metric lengths, travel time
	// weights fall back to plain dijkstra
	var h routing.Heuristic
	if weight == datastructure.WeightKeyLength {
		h = routing.HaversineHeuristic()
	}

	alternatives, err := uc.engine.GetAlternatives(uc.graph, fromNode, toNode, h, weight, k)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrInternalServerError, server.MessageInternalServerError)
	}
	if len(alternatives) == 0 {
		return nil, server.WrapErrorf(err, server.ErrNotFound, "no path found between the given locations")
	}

	instructor := guidance.NewInstructionsFromNodes(uc.graph)

	results := make([]datastructure.RouteAlternative, 0, len(alternatives))
	for _, alt := range alternatives {
		coords := make([]datastructure.Coordinate, 0, len(alt.Path))
		for _, nodeID := range alt.Path {
			node, ok := uc.graph.NodeByID(nodeID)
			if !ok {
				continue
			}
			coords = append(coords, datastructure.NewCoordinate(node.Lat, node.Lon))
		}

		instructions, err := instructor.GetDrivingInstructions(alt.Path)
		if err != nil {
			return nil, server.WrapErrorf(err, server.ErrInternalServerError, server.MessageInternalServerError)
		}

		results = append(results, datastructure.RouteAlternative{
			Polyline:       datastructure.CreatePolyline(coords),
			Coords:         coords,
			DistanceMeters: alt.Distance,
			Label:          alt.Label,
			Instructions:   instructions,
			NodesVisited:   alt.Visited,
		})
	}
	return results, nil
}

// SimulateTraffic rewrites the travel time weights of every road segment for
// the given traffic intensity and drops any converted graphs built from the
// old weights.
func (uc *NavigationService) SimulateTraffic(ctx context.Context, intensity string) error {
	traffic.ApplySimulatedConditions(uc.graph, intensity)
	uc.engine.InvalidateCache()
	return nil
}

func (uc *NavigationService) GraphBounds(ctx context.Context) (datastructure.GraphBounds, error) {
	nodes := uc.graph.Nodes()
	if len(nodes) == 0 {
		return datastructure.GraphBounds{}, server.WrapErrorf(nil, server.ErrNotFound,
			"the road network graph is empty")
	}

	bounds := datastructure.GraphBounds{
		MinLat: nodes[0].Lat, MaxLat: nodes[0].Lat,
		MinLon: nodes[0].Lon, MaxLon: nodes[0].Lon,
	}
	for _, node := range nodes[1:] {
		if node.Lat < bounds.MinLat {
			bounds.MinLat = node.Lat
		}
		if node.Lat > bounds.MaxLat {
			bounds.MaxLat = node.Lat
		}
		if node.Lon < bounds.MinLon {
			bounds.MinLon = node.Lon
		}
		if node.Lon > bounds.MaxLon {
			bounds.MaxLon = node.Lon
		}
	}
	return bounds, nil
}

// NearestStreets returns the stored road segments around (lat, lon) together
// with the projection of the query point onto each segment, nearest first.
func (uc *NavigationService) NearestStreets(ctx context.Context, lat, lon float64) ([]datastructure.NearbyStreet, error) {
	edges, err := uc.kv.GetNearestStreetsFromPointCoord(lat, lon)
	if err != nil {
		return nil, server.WrapErrorf(err, server.ErrNotFound,
			"sorry!! no streets found around the location you entered")
	}

	streets := make([]datastructure.NearbyStreet, 0, len(edges))
	for _, edge := range edges {
		from, okFrom := uc.graph.NodeByID(edge.FromNodeID)
		to, okTo := uc.graph.NodeByID(edge.ToNodeID)
		if !okFrom || !okTo {
			continue
		}
		projection := geo.ProjectPointToLineCoord(
			datastructure.NewCoordinate(from.Lat, from.Lon),
			datastructure.NewCoordinate(to.Lat, to.Lon),
			lat, lon,
		)
		distMeters := geo.CalculateHaversineDistance(lat, lon, projection.Lat, projection.Lon) * 1000
		streets = append(streets, datastructure.NearbyStreet{
			Edge:       edge,
			Projection: projection,
			DistMeters: distMeters,
		})
	}

	sort.Slice(streets, func(i, j int) bool {
		return streets[i].DistMeters < streets[j].DistMeters
	})
	return streets, nil
}
