package geo

import "math"

const (
	earthRadiusKM = 6371.0
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

// CalculateHaversineDistance returns the great-circle distance in km.
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = degreeToRadians(latOne)
	longOne = degreeToRadians(longOne)
	latTwo = degreeToRadians(latTwo)
	longTwo = degreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// CalculateEuclideanDistance is the planar distance between two projected
// (x, y) points, in the unit of the projection.
func CalculateEuclideanDistance(xOne, yOne, xTwo, yTwo float64) float64 {
	dx := xOne - xTwo
	dy := yOne - yTwo
	return math.Sqrt(dx*dx + dy*dy)
}

// CalculateBearing returns the initial bearing in degrees [0, 360) from the
// first point towards the second.
func CalculateBearing(latOne, longOne, latTwo, longTwo float64) float64 {
	dLon := degreeToRadians(longTwo - longOne)
	y := math.Sin(dLon) * math.Cos(degreeToRadians(latTwo))
	x := math.Cos(degreeToRadians(latOne))*math.Sin(degreeToRadians(latTwo)) -
		math.Sin(degreeToRadians(latOne))*math.Cos(degreeToRadians(latTwo))*math.Cos(dLon)
	brng := math.Atan2(y, x) * (180.0 / math.Pi)
	return math.Mod(brng+360.0, 360.0)
}

// GetDestinationPoint returns the point reached by travelling distKM from
// (lat, lon) along the given bearing in degrees.
func GetDestinationPoint(lat, lon, bearing, distKM float64) (float64, float64) {
	latRad := degreeToRadians(lat)
	lonRad := degreeToRadians(lon)
	bearingRad := degreeToRadians(bearing)
	angular := distKM / earthRadiusKM

	destLat := math.Asin(math.Sin(latRad)*math.Cos(angular) +
		math.Cos(latRad)*math.Sin(angular)*math.Cos(bearingRad))
	destLon := lonRad + math.Atan2(math.Sin(bearingRad)*math.Sin(angular)*math.Cos(latRad),
		math.Cos(angular)-math.Sin(latRad)*math.Sin(destLat))

	return destLat * (180.0 / math.Pi), destLon * (180.0 / math.Pi)
}
