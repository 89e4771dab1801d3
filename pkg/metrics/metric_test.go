package metrics

import (
	"testing"

	"github.com/gabrielsantosba/caminho/pkg/costfunction"
	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/geo"
	"go.uber.org/zap"
)

func TestWeighTotality(t *testing.T) {
	g := da.NewGraph()
	a := g.AddNode(geo.NewCoordinate(-12.97, -38.50), 1)
	b := g.AddNode(geo.NewCoordinate(-12.98, -38.51), 2)
	c := g.AddNode(geo.NewCoordinate(-12.99, -38.52), 3)

	// a mix of explicit speed, class-only, and bare edges
	g.AddEdge(a, b, 500, "60", "primary", "Av. Sete")
	g.AddEdge(b, c, 300, "", "residential", "")
	g.AddEdge(c, a, 800, "", "", "")

	m := NewMetric(costfunction.NewTimeCostFunction(), zap.NewNop())
	if err := m.Weigh(g); err != nil {
		t.Fatalf("Weigh: %v", err)
	}

	g.ForEdges(func(e *da.Edge) {
		if e.TravelTime <= 0 {
			t.Errorf("edge %d left without a positive travel time", e.ID)
		}
		if e.SpeedKmh <= 0 {
			t.Errorf("edge %d left without an effective speed", e.ID)
		}
	})
}

func TestWeighIsDeterministic(t *testing.T) {
	build := func() *da.Graph {
		g := da.NewGraph()
		a := g.AddNode(geo.NewCoordinate(-12.97, -38.50), 1)
		b := g.AddNode(geo.NewCoordinate(-12.98, -38.51), 2)
		g.AddEdge(a, b, 500, "", "secondary", "")
		return g
	}

	m := NewMetric(costfunction.NewTimeCostFunction(), zap.NewNop())

	g1, g2 := build(), build()
	if err := m.Weigh(g1); err != nil {
		t.Fatal(err)
	}
	if err := m.Weigh(g2); err != nil {
		t.Fatal(err)
	}

	if g1.GetEdge(0).TravelTime != g2.GetEdge(0).TravelTime {
		t.Errorf("weighting not deterministic: %f vs %f",
			g1.GetEdge(0).TravelTime, g2.GetEdge(0).TravelTime)
	}
}
