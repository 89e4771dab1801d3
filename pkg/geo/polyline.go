package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords encodes a path as a Google encoded polyline string.
func PolylineFromCoords(coords []Coordinate) string {
	flat := make([][]float64, len(coords))
	for i, c := range coords {
		flat[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(flat))
}
