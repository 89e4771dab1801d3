package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gabrielsantosba/caminho/pkg"
	"github.com/gabrielsantosba/caminho/pkg/costfunction"
	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/directory"
	"github.com/gabrielsantosba/caminho/pkg/geo"
	"github.com/gabrielsantosba/caminho/pkg/metrics"
	"github.com/gabrielsantosba/caminho/pkg/planner"
	"github.com/gabrielsantosba/caminho/pkg/render"
	"github.com/gabrielsantosba/caminho/pkg/util"
	"go.uber.org/zap"
)

// stubDirectory holds the Salvador scenario entities.
type stubDirectory struct {
	entities map[string]directory.Entity
}

func (d *stubDirectory) Get(name string) (directory.Entity, bool) {
	e, ok := d.entities[name]
	return e, ok
}

func (d *stubDirectory) Friends() map[string]geo.Coordinate { return nil }
func (d *stubDirectory) Places() map[string]geo.Coordinate  { return nil }

// stubAcquirer returns a prebuilt graph and records whether it ran.
type stubAcquirer struct {
	graph  *da.Graph
	err    error
	called bool
}

func (a *stubAcquirer) Acquire(ctx context.Context, area planner.Area) (*da.Graph, error) {
	a.called = true
	if a.err != nil {
		return nil, a.err
	}
	return a.graph, nil
}

type stubRenderer struct{}

func (stubRenderer) Render(route da.Route, orig, dest geo.Coordinate, destLabel string) (render.Artifacts, error) {
	return render.Artifacts{HTMLPath: "route_test.html", PNGPath: "route_test.png"}, nil
}

var (
	origCoord = geo.NewCoordinate(-12.9714, -38.5014)
	destCoord = geo.NewCoordinate(-12.9714, -38.5096)
)

// salvadorGraph is a small street chain from the origin to Pelourinho with a
// detour that must lose to the direct path.
func salvadorGraph() *da.Graph {
	g := da.NewGraph()
	a := g.AddNode(geo.NewCoordinate(-12.9714, -38.5015), 1) // near origin
	b := g.AddNode(geo.NewCoordinate(-12.9714, -38.5050), 2)
	c := g.AddNode(geo.NewCoordinate(-12.9714, -38.5095), 3) // near Pelourinho
	d := g.AddNode(geo.NewCoordinate(-12.9780, -38.5050), 4) // detour

	for _, e := range [][2]da.Index{{a, b}, {b, c}} {
		g.AddEdge(e[0], e[1], 400, "", "residential", "")
		g.AddEdge(e[1], e[0], 400, "", "residential", "")
	}
	g.AddEdge(a, d, 900, "", "residential", "")
	g.AddEdge(d, c, 900, "", "residential", "")
	return g
}

func newService(acquirer *stubAcquirer) *RoutingService {
	dir := &stubDirectory{entities: map[string]directory.Entity{
		"Pelourinho": {Name: "Pelourinho", Coord: destCoord},
	}}
	weigher := metrics.NewMetric(costfunction.NewTimeCostFunction(), zap.NewNop())
	return NewRoutingService(zap.NewNop(), dir, acquirer, weigher, stubRenderer{}, time.Minute)
}

func TestShortestPathSalvadorScenario(t *testing.T) {
	acquirer := &stubAcquirer{graph: salvadorGraph()}
	rs := newService(acquirer)

	result, err := rs.ShortestPath(context.Background(), origCoord.Lat, origCoord.Lon, "Pelourinho")
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}

	if len(result.Route.Nodes) == 0 {
		t.Fatal("expected non-empty route")
	}

	// first and last route nodes within tolerance of the requested endpoints
	first := result.Route.Coords[0]
	last := result.Route.Coords[len(result.Route.Coords)-1]
	if d := geo.HaversineMeters(first, origCoord); d > 100 {
		t.Errorf("route starts %f m from origin", d)
	}
	if d := geo.HaversineMeters(last, destCoord); d > 100 {
		t.Errorf("route ends %f m from destination", d)
	}

	// sanity upper bound: faster than walking the straight line
	walkSeconds := geo.HaversineMeters(origCoord, destCoord) / (pkg.WALKING_SPEED_KMH * pkg.KMH_TO_MS)
	if result.Route.Eta >= walkSeconds {
		t.Errorf("eta %f s not below walking bound %f s", result.Route.Eta, walkSeconds)
	}

	if result.Polyline == "" {
		t.Error("expected encoded polyline")
	}
	if result.Artifacts.HTMLPath == "" || result.Artifacts.PNGPath == "" {
		t.Error("expected rendered artifact paths")
	}
}

func TestShortestPathUnknownDestination(t *testing.T) {
	acquirer := &stubAcquirer{graph: salvadorGraph()}
	rs := newService(acquirer)

	_, err := rs.ShortestPath(context.Background(), origCoord.Lat, origCoord.Lon, "Atlantis")
	if err == nil {
		t.Fatal("expected NotFound for unknown destination")
	}
	if !errors.Is(util.ErrorCode(err), util.ErrNotFound) {
		t.Errorf("error code = %v, want ErrNotFound", util.ErrorCode(err))
	}
	if acquirer.called {
		t.Error("pipeline must not run for an unknown destination")
	}
}

func TestShortestPathInvalidOrigin(t *testing.T) {
	acquirer := &stubAcquirer{graph: salvadorGraph()}
	rs := newService(acquirer)

	_, err := rs.ShortestPath(context.Background(), -95.0, -38.5, "Pelourinho")
	if err == nil {
		t.Fatal("expected InvalidInput for out-of-range origin")
	}
	if !errors.Is(util.ErrorCode(err), util.ErrBadParamInput) {
		t.Errorf("error code = %v, want ErrBadParamInput", util.ErrorCode(err))
	}
	if acquirer.called {
		t.Error("pipeline must not run for an invalid origin")
	}
}

func TestShortestPathSameResolvedNode(t *testing.T) {
	acquirer := &stubAcquirer{graph: salvadorGraph()}
	dir := &stubDirectory{entities: map[string]directory.Entity{
		// destination that snaps to the same node as the origin
		"Aqui": {Name: "Aqui", Coord: origCoord},
	}}
	weigher := metrics.NewMetric(costfunction.NewTimeCostFunction(), zap.NewNop())
	rs := NewRoutingService(zap.NewNop(), dir, acquirer, weigher, stubRenderer{}, time.Minute)

	result, err := rs.ShortestPath(context.Background(), origCoord.Lat, origCoord.Lon, "Aqui")
	if err != nil {
		t.Fatalf("same-node route must not fail: %v", err)
	}
	if len(result.Route.Nodes) != 1 {
		t.Errorf("route length = %d, want 1", len(result.Route.Nodes))
	}
	if result.Route.Eta != 0 {
		t.Errorf("eta = %f, want 0", result.Route.Eta)
	}
}

func TestShortestPathUnreachableDestination(t *testing.T) {
	g := salvadorGraph()
	// an isolated node right under the destination steals the snap
	g.AddNode(destCoord, 99)

	acquirer := &stubAcquirer{graph: g}
	rs := newService(acquirer)

	_, err := rs.ShortestPath(context.Background(), origCoord.Lat, origCoord.Lon, "Pelourinho")
	if err == nil {
		t.Fatal("expected RouteNotFound for unreachable destination")
	}
	if !errors.Is(util.ErrorCode(err), util.ErrRouteNotFound) {
		t.Errorf("error code = %v, want ErrRouteNotFound", util.ErrorCode(err))
	}
}

func TestShortestPathAcquisitionFailurePropagates(t *testing.T) {
	acquirer := &stubAcquirer{err: util.WrapErrorf(nil, util.ErrAcquisition, "source down")}
	rs := newService(acquirer)

	_, err := rs.ShortestPath(context.Background(), origCoord.Lat, origCoord.Lon, "Pelourinho")
	if err == nil {
		t.Fatal("expected acquisition failure to propagate")
	}
	if !errors.Is(util.ErrorCode(err), util.ErrAcquisition) {
		t.Errorf("error code = %v, want ErrAcquisition", util.ErrorCode(err))
	}
}
