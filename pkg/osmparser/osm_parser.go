package osmparser

import (
	"context"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
	"github.com/pathpilot/pathpilot/pkg/geo"
)

var skipHighway = map[string]struct{}{
	"footway":                {},
	"construction":           {},
	"cycleway":               {},
	"path":                   {},
	"pedestrian":             {},
	"busway":                 {},
	"steps":                  {},
	"bridleway":              {},
	"corridor":               {},
	"street_lamp":            {},
	"bus_stop":               {},
	"crossing":               {},
	"cyclist_waiting_aid":    {},
	"elevator":               {},
	"emergency_bay":          {},
	"emergency_access_point": {},
	"give_way":               {},
	"phone":                  {},
	"ladder":                 {},
	"milestone":              {},
	"passing_place":          {},
	"platform":               {},
	"speed_camera":           {},
	"track":                  {},
	"bus_guideway":           {},
	"speed_display":          {},
	"stop":                   {},
	"toll_gantry":            {},
	"traffic_mirror":         {},
	"traffic_signals":        {},
	"trailhead":              {},
}

type nodeCoord struct {
	lat float64
	lon float64
}

type wayDescriptor struct {
	nodeIDs  []int64
	name     string
	surface  string
	speedKmh float64
	oneway   bool
}

type OsmParser struct {
	wayNodeSet map[int64]struct{}
	nodeCoords map[int64]nodeCoord
}

func NewOsmParser() *OsmParser {
	return &OsmParser{
		wayNodeSet: make(map[int64]struct{}),
		nodeCoords: make(map[int64]nodeCoord),
	}
}

// ParseOSM reads an openstreetmap pbf extract and builds a routable graph
// from its drivable ways. Two scans over the file: first ways (to learn which
// node ids the road network needs), then nodes (to learn their coordinates).
func (p *OsmParser) ParseOSM(ctx context.Context, mapFile string) (*datastructure.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, 0)
	// must not be parallel, way order matters

	ways := make([]wayDescriptor, 0)
	countWays := 0
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := o.(*osm.Way)
		if len(way.Nodes) < 2 {
			continue
		}
		if !acceptOsmWay(way) {
			continue
		}
		if (countWays+1)%50000 == 0 {
			log.Printf("reading openstreetmap ways: %d...", countWays+1)
		}
		countWays++

		desc := p.describeWay(way)
		for _, node := range way.Nodes {
			p.wayNodeSet[int64(node.ID)] = struct{}{}
		}
		ways = append(ways, desc)
	}
	scanner.Close()
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	scanner = osmpbf.New(ctx, f, 0)
	defer scanner.Close()

	countNodes := 0
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeNode {
			continue
		}
		node := o.(*osm.Node)
		if _, ok := p.wayNodeSet[int64(node.ID)]; !ok {
			continue
		}
		if (countNodes+1)%200000 == 0 {
			log.Printf("reading openstreetmap nodes: %d...", countNodes+1)
		}
		countNodes++
		p.nodeCoords[int64(node.ID)] = nodeCoord{lat: node.Lat, lon: node.Lon}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	log.Printf("openstreetmap extract: %d ways, %d nodes", countWays, countNodes)

	g := datastructure.NewGraph()
	for id, coord := range p.nodeCoords {
		g.AddNode(datastructure.NewNode(id, coord.lat, coord.lon))
	}
	for _, way := range ways {
		p.addWayEdges(g, way)
	}

	log.Printf("road graph built: %d nodes, %d directed edges", g.NumNodes(), g.NumEdges())
	return g, nil
}

func (p *OsmParser) describeWay(way *osm.Way) wayDescriptor {
	desc := wayDescriptor{
		name:    way.Tags.Find("name"),
		surface: way.Tags.Find("surface"),
		oneway:  way.Tags.Find("oneway") == "yes",
	}
	for _, node := range way.Nodes {
		desc.nodeIDs = append(desc.nodeIDs, int64(node.ID))
	}

	highwayTypeSpeed := roadTypeMaxSpeed(way.Tags.Find("highway"))
	maxSpeed := parseMaxSpeed(way.Tags.Find("maxspeed"))
	if maxSpeed == 0 {
		maxSpeed = highwayTypeSpeed
	}
	desc.speedKmh = maxSpeed
	return desc
}

func (p *OsmParser) addWayEdges(g *datastructure.Graph, way wayDescriptor) {
	for i := 1; i < len(way.nodeIDs); i++ {
		fromID, toID := way.nodeIDs[i-1], way.nodeIDs[i]
		from, okFrom := p.nodeCoords[fromID]
		to, okTo := p.nodeCoords[toID]
		if !okFrom || !okTo {
			continue
		}
		lengthMeters := geo.CalculateHaversineDistance(from.lat, from.lon, to.lat, to.lon) * 1000

		g.AddEdge(datastructure.Edge{
			From:       fromID,
			To:         toID,
			Length:     lengthMeters,
			SpeedKmh:   way.speedKmh,
			Surface:    way.surface,
			StreetName: way.name,
		})
		if !way.oneway {
			g.AddEdge(datastructure.Edge{
				From:       toID,
				To:         fromID,
				Length:     lengthMeters,
				SpeedKmh:   way.speedKmh,
				Surface:    way.surface,
				StreetName: way.name,
			})
		}
	}
}

func parseMaxSpeed(val string) float64 {
	if val == "" {
		return 0
	}
	switch {
	case strings.Contains(val, "mph"):
		speed, err := strconv.ParseFloat(strings.Replace(val, " mph", "", -1), 64)
		if err != nil {
			return 0
		}
		return speed * 1.60934
	case strings.Contains(val, "km/h"):
		speed, err := strconv.ParseFloat(strings.Replace(val, " km/h", "", -1), 64)
		if err != nil {
			return 0
		}
		return speed
	case strings.Contains(val, "knots"):
		speed, err := strconv.ParseFloat(strings.Replace(val, " knots", "", -1), 64)
		if err != nil {
			return 0
		}
		return speed * 1.852
	default:
		speed, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0
		}
		return speed
	}
}

func roadTypeMaxSpeed(roadType string) float64 {
	switch roadType {
	case "motorway":
		return 100
	case "trunk":
		return 70
	case "primary":
		return 65
	case "secondary":
		return 60
	case "tertiary":
		return 50
	case "unclassified":
		return 30
	case "residential":
		return 30
	case "service":
		return 20
	case "motorway_link":
		return 70
	case "trunk_link":
		return 65
	case "primary_link":
		return 60
	case "secondary_link":
		return 50
	case "tertiary_link":
		return 40
	case "living_street":
		return 10
	case "road":
		return 20
	default:
		return 40
	}
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	junction := way.Tags.Find("junction")
	if highway != "" {
		if _, ok := skipHighway[highway]; !ok {
			return true
		}
	} else if way.Tags.Find("route") == "road" {
		return true
	} else if junction != "" {
		return true
	}
	return false
}
