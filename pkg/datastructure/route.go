package datastructure

import (
	"github.com/gabrielsantosba/caminho/pkg/geo"
)

// Route is the minimum-travel-time node sequence from an origin node to a
// destination node. Non-empty implies Nodes[0] is the resolved origin and
// Nodes[len-1] the resolved destination.
type Route struct {
	Nodes       []Index
	Coords      []geo.Coordinate
	Eta         float64 // seconds
	Distance    float64 // meters
	StreetNames []string
}

func NewRoute(nodes []Index, coords []geo.Coordinate, eta, distance float64) Route {
	return Route{
		Nodes:    nodes,
		Coords:   coords,
		Eta:      eta,
		Distance: distance,
	}
}
