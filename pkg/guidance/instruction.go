package guidance

import (
	"fmt"
	"math"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
	"github.com/pathpilot/pathpilot/pkg/geo"
)

const (
	turnContinue = "Continue"
	turnLeft     = "Turn Left"
	turnRight    = "Turn Right"
	turnUTurn    = "Make a U-Turn"
)

// minContinueDistance suppresses "Continue on ..." announcements for very
// short segments after a turn.
const minContinueDistance = 5.0

// InstructionsFromNodes turns a routed node sequence into driving
// instruction text using bearings between consecutive nodes.
type InstructionsFromNodes struct {
	g *datastructure.Graph
}

func NewInstructionsFromNodes(g *datastructure.Graph) *InstructionsFromNodes {
	return &InstructionsFromNodes{g: g}
}

// turnDirection classifies the bearing change between two consecutive hops.
func turnDirection(prevBearing, currBearing float64) string {
	diff := math.Mod(currBearing-prevBearing+360.0, 360.0)
	switch {
	case diff >= 45 && diff < 135:
		return turnRight
	case diff >= 225 && diff < 315:
		return turnLeft
	case diff >= 135 && diff < 225:
		return turnUTurn
	default:
		return turnContinue
	}
}

// segmentName picks the street name of the shortest parallel edge between the
// node pair, matching the index's minimum-weight collapse.
func (ins *InstructionsFromNodes) segmentName(from, to int64) string {
	parallel := ins.g.EdgesBetween(from, to)
	name := ""
	best := math.Inf(1)
	for i := range parallel {
		if parallel[i].Length < best {
			best = parallel[i].Length
			name = parallel[i].StreetName
		}
	}
	if name == "" {
		return "unnamed road"
	}
	return name
}

func (ins *InstructionsFromNodes) GetDrivingInstructions(path []int64) ([]string, error) {
	instructions := make([]string, 0, len(path))
	if len(path) > 1 {
		instructions = append(instructions, "Start your journey")
	}

	var lastBearing float64
	haveBearing := false
	accumulatedDist := 0.0
	currentStreet := ""
	haveStreet := false

	for i := 0; i+1 < len(path); i++ {
		node, ok := ins.g.NodeByID(path[i])
		if !ok {
			return nil, fmt.Errorf("node %d not in road network", path[i])
		}
		next, ok := ins.g.NodeByID(path[i+1])
		if !ok {
			return nil, fmt.Errorf("node %d not in road network", path[i+1])
		}

		streetName := ins.segmentName(node.ID, next.ID)
		accumulatedDist += geo.CalculateHaversineDistance(node.Lat, node.Lon, next.Lat, next.Lon) * 1000

		currentBearing := geo.CalculateBearing(node.Lat, node.Lon, next.Lat, next.Lon)
		if haveBearing {
			if turn := turnDirection(lastBearing, currentBearing); turn != turnContinue {
				instructions = append(instructions, fmt.Sprintf("%s onto %s", turn, streetName))
				accumulatedDist = 0
			}
		}

		if haveStreet && streetName != currentStreet && accumulatedDist > minContinueDistance {
			instructions = append(instructions, fmt.Sprintf("Continue on %s", streetName))
		}

		currentStreet = streetName
		haveStreet = true
		lastBearing = currentBearing
		haveBearing = true
	}

	instructions = append(instructions, "Arrive at destination")
	return instructions, nil
}
