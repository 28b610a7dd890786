package traffic

import (
	"log"
	"strings"

	"golang.org/x/exp/rand"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

const (
	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"
)

const defaultSpeedKmh = 30.0

// surfacePenalty is the travel-time multiplier per surface type. Unrecognized
// surfaces fall back to unknownSurfacePenalty.
var surfacePenalty = map[string]float64{
	"paved":    1.0,
	"asphalt":  1.0,
	"concrete": 1.0,
	"unpaved":  1.5,
	"gravel":   1.5,
	"dirt":     2.0,
	"grass":    2.5,
}

const unknownSurfacePenalty = 1.2

func trafficRange(intensity string) (float64, float64) {
	switch intensity {
	case IntensityLow:
		return 1.0, 1.2
	case IntensityHigh:
		return 1.5, 3.0
	default: // medium
		return 1.1, 1.5
	}
}

// ApplySimulatedConditions updates the weight_time attribute of every edge in
// place: base travel time from free-flow time or length/speed, times the
// surface penalty, times a random congestion factor drawn from the
// intensity-dependent range. The caller must invalidate the conversion cache
// afterwards; this model does not.
func ApplySimulatedConditions(g *datastructure.Graph, intensity string) {
	log.Printf("simulating traffic conditions (intensity: %s)...", intensity)

	low, high := trafficRange(intensity)

	g.ForEachEdge(func(e *datastructure.Edge) {
		baseTime := e.TravelTime
		if !e.HasTravelTime || baseTime == 0 {
			speedKmh := e.SpeedKmh
			if speedKmh == 0 {
				speedKmh = defaultSpeedKmh
			}
			length := e.Length
			if length == 0 {
				length = 1
			}
			baseTime = length / (speedKmh / 3.6)
		}

		surface := strings.ToLower(e.Surface)
		if surface == "" {
			surface = "paved"
		}
		surfaceFactor, ok := surfacePenalty[surface]
		if !ok {
			surfaceFactor = unknownSurfacePenalty
		}

		trafficFactor := low + rand.Float64()*(high-low)

		e.SurfaceFactor = surfaceFactor
		e.TrafficFactor = trafficFactor
		e.WeightTime = baseTime * surfaceFactor * trafficFactor
		e.HasWeightTime = true
	})

	log.Printf("traffic simulation done, weight_time updated on all edges")
}
