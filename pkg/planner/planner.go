package planner

import (
	"math"

	"github.com/gabrielsantosba/caminho/pkg/geo"
)

const (
	// extra margin so the streets connecting the endpoints fall inside the
	// acquired area, not just the endpoints themselves
	radiusMargin = 1.5

	// floor applied when origin and destination (nearly) coincide, so the
	// acquirer still receives a non-degenerate area
	minRadiusMeters = 400.0
)

// Area is a disk guaranteed to contain both route endpoints and their
// surrounding street network.
type Area struct {
	Center       geo.Coordinate
	RadiusMeters float64
}

// BoundingBox returns the south-west and north-east corners of the square
// circumscribing the area.
func (a Area) BoundingBox() (geo.Coordinate, geo.Coordinate) {
	return geo.BoundingBox(a.Center, a.RadiusMeters)
}

// PlanArea computes the area of interest for a route between orig and dest.
// Center is the geodesic midpoint; the radius is the haversine distance from
// the center to the farther endpoint, widened by a margin and floored.
// Containment invariant: RadiusMeters >= distance(center, orig) and
// RadiusMeters >= distance(center, dest).
func PlanArea(orig, dest geo.Coordinate) Area {
	centerLat, centerLon := geo.MidPoint(orig.Lat, orig.Lon, dest.Lat, dest.Lon)
	center := geo.NewCoordinate(centerLat, centerLon)

	toOrig := geo.HaversineMeters(center, orig)
	toDest := geo.HaversineMeters(center, dest)
	radius := math.Max(toOrig, toDest) * radiusMargin
	if radius < minRadiusMeters {
		radius = minRadiusMeters
	}

	return Area{Center: center, RadiusMeters: radius}
}
