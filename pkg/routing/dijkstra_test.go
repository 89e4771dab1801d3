package routing

import (
	"errors"
	"math"
	"testing"

	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/geo"
	"github.com/gabrielsantosba/caminho/pkg/util"
)

// buildWeightedGraph creates n nodes at dummy coordinates and the given
// directed edges with travel times already assigned.
func buildWeightedGraph(n int, edges [][3]float64) *da.Graph {
	g := da.NewGraph()
	for i := 0; i < n; i++ {
		g.AddNode(geo.NewCoordinate(float64(i)*0.001, float64(i)*0.001), int64(i))
	}
	for _, e := range edges {
		id := g.AddEdge(da.Index(e[0]), da.Index(e[1]), e[2]*10, "", "", "")
		g.GetEdge(id).TravelTime = e[2]
	}
	return g
}

func TestShortestPathOptimality(t *testing.T) {
	// 0 -> 1 -> 3 is longer than 0 -> 2 -> 3
	g := buildWeightedGraph(4, [][3]float64{
		{0, 1, 10},
		{1, 3, 10},
		{0, 2, 3},
		{2, 3, 4},
		{0, 3, 100},
	})

	route, err := NewDijkstra(g).ShortestPath(0, 3)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}

	if math.Abs(route.Eta-7) > 1e-9 {
		t.Errorf("eta = %f, want 7", route.Eta)
	}
	wantNodes := []da.Index{0, 2, 3}
	if len(route.Nodes) != len(wantNodes) {
		t.Fatalf("route = %v, want %v", route.Nodes, wantNodes)
	}
	for i, n := range wantNodes {
		if route.Nodes[i] != n {
			t.Fatalf("route = %v, want %v", route.Nodes, wantNodes)
		}
	}
}

func TestShortestPathStartsAndEndsAtRequestedNodes(t *testing.T) {
	g := buildWeightedGraph(5, [][3]float64{
		{0, 1, 1}, {1, 2, 1}, {2, 3, 1}, {3, 4, 1},
		{0, 2, 5}, {1, 3, 5},
	})

	route, err := NewDijkstra(g).ShortestPath(1, 4)
	if err != nil {
		t.Fatal(err)
	}
	if route.Nodes[0] != 1 {
		t.Errorf("route starts at %d, want 1", route.Nodes[0])
	}
	if route.Nodes[len(route.Nodes)-1] != 4 {
		t.Errorf("route ends at %d, want 4", route.Nodes[len(route.Nodes)-1])
	}
}

func TestShortestPathSameNode(t *testing.T) {
	g := buildWeightedGraph(2, [][3]float64{{0, 1, 1}})

	route, err := NewDijkstra(g).ShortestPath(0, 0)
	if err != nil {
		t.Fatalf("same-node search must not fail: %v", err)
	}
	if len(route.Nodes) != 1 || route.Nodes[0] != 0 {
		t.Errorf("route = %v, want single node [0]", route.Nodes)
	}
	if route.Eta != 0 {
		t.Errorf("eta = %f, want 0", route.Eta)
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	// two disconnected components
	g := buildWeightedGraph(4, [][3]float64{
		{0, 1, 1},
		{2, 3, 1},
	})

	_, err := NewDijkstra(g).ShortestPath(0, 3)
	if err == nil {
		t.Fatal("expected RouteNotFound for disconnected endpoints")
	}
	if !errors.Is(util.ErrorCode(err), util.ErrRouteNotFound) {
		t.Errorf("error code = %v, want ErrRouteNotFound", util.ErrorCode(err))
	}
}

func TestShortestPathEarlyTermination(t *testing.T) {
	// long chain; searching a nearby target must not settle the whole graph
	n := 1000
	edges := make([][3]float64, 0, n-1)
	for i := 0; i < n-1; i++ {
		edges = append(edges, [3]float64{float64(i), float64(i + 1), 1})
	}
	g := buildWeightedGraph(n, edges)

	d := NewDijkstra(g)
	if _, err := d.ShortestPath(0, 5); err != nil {
		t.Fatal(err)
	}
	if d.NumSettledNodes() > 10 {
		t.Errorf("settled %d nodes for a 5-hop query, early termination broken", d.NumSettledNodes())
	}
}

func TestShortestPathRespectsDirection(t *testing.T) {
	g := buildWeightedGraph(2, [][3]float64{{0, 1, 1}})

	if _, err := NewDijkstra(g).ShortestPath(1, 0); err == nil {
		t.Fatal("one-way edge must not be traversable backwards")
	}
}

func TestShortestPathDistanceSumsEdgeLengths(t *testing.T) {
	g := buildWeightedGraph(3, [][3]float64{
		{0, 1, 2}, {1, 2, 3},
	})

	route, err := NewDijkstra(g).ShortestPath(0, 2)
	if err != nil {
		t.Fatal(err)
	}
	// buildWeightedGraph sets length = travelTime * 10
	if math.Abs(route.Distance-50) > 1e-9 {
		t.Errorf("distance = %f, want 50", route.Distance)
	}
}
