package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

// lShapedGraph runs east along "jalan adi sucipto" then north along
// "jalan ahmad yani". Travelling east then turning north is a left turn.
func lShapedGraph() *datastructure.Graph {
	g := datastructure.NewGraph()
	g.AddNode(datastructure.NewNode(1, 0, 0))
	g.AddNode(datastructure.NewNode(2, 0, 0.001))
	g.AddNode(datastructure.NewNode(3, 0.001, 0.001))

	g.AddEdge(datastructure.Edge{From: 1, To: 2, Length: 111, StreetName: "jalan adi sucipto"})
	g.AddEdge(datastructure.Edge{From: 2, To: 3, Length: 111, StreetName: "jalan ahmad yani"})
	return g
}

func TestTurnDirection(t *testing.T) {
	assert.Equal(t, turnContinue, turnDirection(90, 90))
	assert.Equal(t, turnContinue, turnDirection(90, 100))
	assert.Equal(t, turnRight, turnDirection(0, 90))
	assert.Equal(t, turnLeft, turnDirection(90, 0))
	assert.Equal(t, turnUTurn, turnDirection(90, 270))
	// bearing wrap around north
	assert.Equal(t, turnContinue, turnDirection(350, 10))
	assert.Equal(t, turnLeft, turnDirection(10, 300))
}

func TestGetDrivingInstructionsLeftTurn(t *testing.T) {
	g := lShapedGraph()
	ins := NewInstructionsFromNodes(g)

	instructions, err := ins.GetDrivingInstructions([]int64{1, 2, 3})
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"Start your journey",
		"Turn Left onto jalan ahmad yani",
		"Arrive at destination",
	}, instructions)
}

func TestGetDrivingInstructionsStraightStreetChange(t *testing.T) {
	g := datastructure.NewGraph()
	g.AddNode(datastructure.NewNode(1, 0, 0))
	g.AddNode(datastructure.NewNode(2, 0, 0.001))
	g.AddNode(datastructure.NewNode(3, 0, 0.002))
	g.AddEdge(datastructure.Edge{From: 1, To: 2, Length: 111, StreetName: "jalan adi sucipto"})
	g.AddEdge(datastructure.Edge{From: 2, To: 3, Length: 111, StreetName: "jalan slamet riyadi"})

	ins := NewInstructionsFromNodes(g)
	instructions, err := ins.GetDrivingInstructions([]int64{1, 2, 3})
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"Start your journey",
		"Continue on jalan slamet riyadi",
		"Arrive at destination",
	}, instructions)
}

func TestGetDrivingInstructionsUnnamedRoad(t *testing.T) {
	g := lShapedGraph()
	g.AddNode(datastructure.NewNode(4, 0.002, 0.001))
	g.AddEdge(datastructure.Edge{From: 3, To: 4, Length: 111})

	ins := NewInstructionsFromNodes(g)
	instructions, err := ins.GetDrivingInstructions([]int64{2, 3, 4})
	assert.NoError(t, err)
	assert.Contains(t, instructions, "Start your journey")
	assert.Contains(t, instructions, "Arrive at destination")
}

func TestGetDrivingInstructionsSingleNode(t *testing.T) {
	g := lShapedGraph()
	ins := NewInstructionsFromNodes(g)

	instructions, err := ins.GetDrivingInstructions([]int64{1})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Arrive at destination"}, instructions)
}

func TestGetDrivingInstructionsUnknownNode(t *testing.T) {
	g := lShapedGraph()
	ins := NewInstructionsFromNodes(g)

	_, err := ins.GetDrivingInstructions([]int64{1, 999})
	assert.Error(t, err)
}
