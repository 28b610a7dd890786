package geo

import (
	"github.com/golang/geo/s2"

	"github.com/pathpilot/pathpilot/pkg/datastructure"
)

// ProjectPointToLineCoord projects the query point onto the road segment
// between the two street endpoints and returns the projection coordinate.
func ProjectPointToLineCoord(segmentStart, segmentEnd datastructure.Coordinate,
	queryLat, queryLon float64) datastructure.Coordinate {
	startS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(segmentStart.Lat, segmentStart.Lon))
	endS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(segmentEnd.Lat, segmentEnd.Lon))
	queryS2 := s2.PointFromLatLng(s2.LatLngFromDegrees(queryLat, queryLon))

	projection := s2.Project(queryS2, startS2, endS2)
	projectLatLng := s2.LatLngFromPoint(projection)
	return datastructure.NewCoordinate(projectLatLng.Lat.Degrees(), projectLatLng.Lng.Degrees())
}
