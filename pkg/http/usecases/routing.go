package usecases

import (
	"context"
	"time"

	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/geo"
	"github.com/gabrielsantosba/caminho/pkg/planner"
	"github.com/gabrielsantosba/caminho/pkg/render"
	"github.com/gabrielsantosba/caminho/pkg/routing"
	"github.com/gabrielsantosba/caminho/pkg/spatialindex"
	"github.com/gabrielsantosba/caminho/pkg/util"
	"go.uber.org/zap"
)

// RoutingService runs the route-computation pipeline: directory lookup, area
// planning, graph acquisition, edge weighting, endpoint snapping, shortest
// path, rendering. Every request owns its graph from acquisition to discard.
type RoutingService struct {
	log            *zap.Logger
	dir            EntityDirectory
	acquirer       Acquirer
	weigher        Weigher
	renderer       Renderer
	acquireTimeout time.Duration
}

func NewRoutingService(log *zap.Logger, dir EntityDirectory, acquirer Acquirer,
	weigher Weigher, renderer Renderer, acquireTimeout time.Duration) *RoutingService {
	return &RoutingService{
		log:            log,
		dir:            dir,
		acquirer:       acquirer,
		weigher:        weigher,
		renderer:       renderer,
		acquireTimeout: acquireTimeout,
	}
}

// RouteResult is the pipeline output handed back to the HTTP layer.
type RouteResult struct {
	Route       da.Route
	Polyline    string
	Origin      geo.Coordinate
	Destination geo.Coordinate
	DestLabel   string
	Artifacts   render.Artifacts
}

// ShortestPath resolves destName through the directory and computes the
// minimum-travel-time route from the origin coordinate.
func (rs *RoutingService) ShortestPath(ctx context.Context, origLat, origLon float64,
	destName string) (*RouteResult, error) {

	orig := geo.NewCoordinate(origLat, origLon)
	if !orig.Valid() {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"origin (%f, %f) outside WGS84 range", origLat, origLon)
	}

	dest, ok := rs.dir.Get(destName)
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrNotFound, "destination %q not in directory", destName)
	}

	rs.log.Info("computing route",
		zap.Float64("orig_lat", orig.Lat), zap.Float64("orig_lon", orig.Lon),
		zap.String("destination", destName))

	area := planner.PlanArea(orig, dest.Coord)

	acquireCtx, cancel := context.WithTimeout(ctx, rs.acquireTimeout)
	defer cancel()
	graph, err := rs.acquirer.Acquire(acquireCtx, area)
	if err != nil {
		return nil, err
	}

	if err := rs.weigher.Weigh(graph); err != nil {
		return nil, err
	}

	index := spatialindex.NewRtree()
	index.Build(graph, rs.log)

	origNode, err := index.NearestNode(orig.Lat, orig.Lon)
	if err != nil {
		return nil, err
	}
	destNode, err := index.NearestNode(dest.Coord.Lat, dest.Coord.Lon)
	if err != nil {
		return nil, err
	}

	search := routing.NewDijkstra(graph)
	route, err := search.ShortestPath(origNode, destNode)
	if err != nil {
		return nil, err
	}

	if len(route.Coords) >= 2 {
		rs.log.Debug("endpoint snap offsets",
			zap.Float64("origin_meters",
				geo.PointLinePerpendicularDistance(route.Coords[0], route.Coords[1], orig)),
			zap.Float64("destination_meters",
				geo.PointLinePerpendicularDistance(route.Coords[len(route.Coords)-2],
					route.Coords[len(route.Coords)-1], dest.Coord)))
	}
	refineEndpoints(&route, orig, dest.Coord)

	artifacts, err := rs.renderer.Render(route, orig, dest.Coord, destName)
	if err != nil {
		return nil, err
	}

	rs.log.Info("route computed",
		zap.Float64("eta_seconds", route.Eta),
		zap.Float64("distance_meters", route.Distance),
		zap.Int("nodes", len(route.Nodes)),
		zap.Int("settled", search.NumSettledNodes()))

	return &RouteResult{
		Route:       route,
		Polyline:    geo.PolylineFromCoords(route.Coords),
		Origin:      orig,
		Destination: dest.Coord,
		DestLabel:   destName,
		Artifacts:   artifacts,
	}, nil
}

// refineEndpoints projects the requested origin and destination onto the
// first and last route segments, so the drawn route starts and ends on the
// street beside the requested points instead of at the snapped junction
// nodes. Route cost is left untouched.
func refineEndpoints(route *da.Route, orig, dest geo.Coordinate) {
	if len(route.Coords) < 2 {
		return
	}

	first := geo.ProjectPointToLineCoord(route.Coords[0], route.Coords[1], orig)
	route.Coords[0] = first

	n := len(route.Coords)
	last := geo.ProjectPointToLineCoord(route.Coords[n-2], route.Coords[n-1], dest)
	route.Coords[n-1] = last
}

// Friends exposes the directory's friends group.
func (rs *RoutingService) Friends() map[string]geo.Coordinate {
	return rs.dir.Friends()
}

// Places exposes the directory's places group.
func (rs *RoutingService) Places() map[string]geo.Coordinate {
	return rs.dir.Places()
}
