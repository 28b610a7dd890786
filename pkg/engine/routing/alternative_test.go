package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

func TestGetAlternativesTwoRoutes(t *testing.T) {
	g := lineGraph()
	e := NewEngine()

	set, err := e.GetAlternatives(g, 1, 4, nil, datastructure.WeightKeyLength, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(set))

	assert.Equal(t, datastructure.LabelShortest, set[0].Label)
	assert.Equal(t, []int64{1, 2, 3, 4}, set[0].Path)
	assert.Equal(t, 30.0, set[0].Distance)

	// penalizing the corridor makes the direct shortcut win the re-solve, but
	// its reported distance is the true unpenalized cost
	assert.Equal(t, "Alternative 1", set[1].Label)
	assert.Equal(t, []int64{1, 4}, set[1].Path)
	assert.Equal(t, 35.0, set[1].Distance)
}

func TestGetAlternativesConvergence(t *testing.T) {
	g := lineGraph()
	e := NewEngine()

	// only two distinct routes exist, asking for more converges early
	set, err := e.GetAlternatives(g, 1, 4, nil, datastructure.WeightKeyLength, 5)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(set))

	for i := range set {
		for j := i + 1; j < len(set); j++ {
			assert.False(t, samePath(set[i].Path, set[j].Path),
				"alternative set must never repeat a node sequence")
		}
	}
}

func TestGetAlternativesFastestLabel(t *testing.T) {
	g := lineGraph()
	g.ForEachEdge(func(e *datastructure.Edge) {
		e.WeightTime = e.Length / 10
		e.HasWeightTime = true
	})
	e := NewEngine()

	set, err := e.GetAlternatives(g, 1, 4, nil, datastructure.WeightKeyTravelTime, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(set))
	assert.Equal(t, datastructure.LabelFastest, set[0].Label)
	assert.Equal(t, 3.0, set[0].Distance)
}

func TestGetAlternativesNoPath(t *testing.T) {
	g := lineGraph()
	g.AddNode(datastructure.NewNode(9, 0.001, 0.001))
	e := NewEngine()

	set, err := e.GetAlternatives(g, 1, 9, nil, datastructure.WeightKeyLength, 3)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(set))
}

func TestGetAlternativesUnknownNode(t *testing.T) {
	g := lineGraph()
	e := NewEngine()

	_, err := e.GetAlternatives(g, 1, 999, nil, datastructure.WeightKeyLength, 3)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestGetAlternativesReferenceOnlyDegrades(t *testing.T) {
	g := lineGraph()
	e := NewReferenceOnlyEngine()

	set, err := e.GetAlternatives(g, 1, 4, nil, datastructure.WeightKeyLength, 3)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(set))
	assert.Equal(t, datastructure.LabelShortest, set[0].Label)
	assert.Equal(t, []int64{1, 2, 3, 4}, set[0].Path)
}

func TestGetAlternativesSharedCacheUntouched(t *testing.T) {
	g := lineGraph()
	e := NewEngine()

	_, err := e.GetAlternatives(g, 1, 4, nil, datastructure.WeightKeyLength, 3)
	assert.NoError(t, err)

	// penalization ran on a working copy, a fresh search still sees the
	// original weights
	res, err := e.Search(g, 1, 4, nil, datastructure.WeightKeyLength)
	assert.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4}, res.Path)
	assert.Equal(t, 30.0, res.Distance)
}
