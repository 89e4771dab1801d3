package controllers

import (
	"context"

	"github.com/gabrielsantosba/caminho/pkg/geo"
	"github.com/gabrielsantosba/caminho/pkg/http/usecases"
)

type RoutingService interface {
	ShortestPath(ctx context.Context, origLat, origLon float64, destName string) (*usecases.RouteResult, error)
	Friends() map[string]geo.Coordinate
	Places() map[string]geo.Coordinate
}
