package osm

import (
	"encoding/xml"
	"errors"
	"testing"

	"github.com/paulmach/osm"

	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/geo"
	"github.com/gabrielsantosba/caminho/pkg/util"
	"go.uber.org/zap"
)

// two residential streets crossing at node 3
const crossroadsXML = `<osm version="0.6">
 <node id="1" lat="-12.9700" lon="-38.5120"/>
 <node id="2" lat="-12.9700" lon="-38.5110"/>
 <node id="3" lat="-12.9700" lon="-38.5100"/>
 <node id="4" lat="-12.9700" lon="-38.5090"/>
 <node id="5" lat="-12.9690" lon="-38.5100"/>
 <node id="6" lat="-12.9710" lon="-38.5100"/>
 <way id="10">
  <nd ref="1"/><nd ref="2"/><nd ref="3"/><nd ref="4"/>
  <tag k="highway" v="residential"/>
  <tag k="name" v="Rua Chile"/>
 </way>
 <way id="11">
  <nd ref="5"/><nd ref="3"/><nd ref="6"/>
  <tag k="highway" v="residential"/>
 </way>
</osm>`

const onewayXML = `<osm version="0.6">
 <node id="1" lat="-12.9700" lon="-38.5100"/>
 <node id="2" lat="-12.9700" lon="-38.5090"/>
 <way id="10">
  <nd ref="1"/><nd ref="2"/>
  <tag k="highway" v="primary"/>
  <tag k="oneway" v="yes"/>
 </way>
</osm>`

const footwayOnlyXML = `<osm version="0.6">
 <node id="1" lat="-12.9700" lon="-38.5100"/>
 <node id="2" lat="-12.9700" lon="-38.5090"/>
 <way id="10">
  <nd ref="1"/><nd ref="2"/>
  <tag k="highway" v="footway"/>
 </way>
</osm>`

func decodeOSM(t *testing.T, raw string) *osm.OSM {
	t.Helper()
	var doc osm.OSM
	if err := xml.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("decoding fixture: %v", err)
	}
	return &doc
}

func TestBuildGraphSplitsAtJunction(t *testing.T) {
	g, err := BuildGraph(decodeOSM(t, crossroadsXML), zap.NewNop())
	if err != nil {
		t.Fatalf("BuildGraph: %v", err)
	}

	// endpoints 1, 4, 5, 6 plus the shared junction node 3
	if got := g.NumberOfNodes(); got != 5 {
		t.Errorf("nodes = %d, want 5", got)
	}
	// four two-way street segments = 8 directed edges
	if got := g.NumberOfEdges(); got != 8 {
		t.Errorf("edges = %d, want 8", got)
	}

	// interior geometry node 2 must contribute length, not a graph node
	var crossLen float64
	g.ForEdges(func(e *da.Edge) {
		if e.StreetName == "Rua Chile" && crossLen == 0 {
			crossLen = e.LengthMeters
		}
	})
	if crossLen <= 0 {
		t.Error("way geometry did not contribute edge length")
	}
}

func TestBuildGraphOneWay(t *testing.T) {
	g, err := BuildGraph(decodeOSM(t, onewayXML), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	if got := g.NumberOfEdges(); got != 1 {
		t.Fatalf("edges = %d, want 1 for a oneway street", got)
	}
	e := g.GetEdge(0)
	fromLat, fromLon := g.GetNodeCoordinates(e.From)
	if fromLat != -12.9700 || fromLon != -38.5100 {
		t.Errorf("oneway edge starts at (%f, %f), want first way node", fromLat, fromLon)
	}
}

func TestBuildGraphRejectsNonDrivable(t *testing.T) {
	_, err := BuildGraph(decodeOSM(t, footwayOnlyXML), zap.NewNop())
	if err == nil {
		t.Fatal("expected ErrNoGraphData for footway-only data")
	}
	if !errors.Is(util.ErrorCode(err), util.ErrNoGraphData) {
		t.Errorf("error code = %v, want ErrNoGraphData", util.ErrorCode(err))
	}
}

func TestBuildGraphKeepsMaxSpeedAndClass(t *testing.T) {
	g, err := BuildGraph(decodeOSM(t, onewayXML), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	e := g.GetEdge(0)
	if e.RoadClass != "primary" {
		t.Errorf("road class = %q, want primary", e.RoadClass)
	}
	if e.RawMaxSpeed != "" {
		t.Errorf("raw maxspeed = %q, want empty", e.RawMaxSpeed)
	}
}

func TestConnectivity(t *testing.T) {
	g, err := BuildGraph(decodeOSM(t, crossroadsXML), zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	report := Connectivity(g)
	if report.Components != 1 {
		t.Errorf("components = %d, want 1", report.Components)
	}
	if report.LargestSize != g.NumberOfNodes() {
		t.Errorf("largest component = %d, want %d", report.LargestSize, g.NumberOfNodes())
	}

	// a second, disconnected street
	g2 := da.NewGraph()
	a := g2.AddNode(gcoord(-12.97, -38.51), 1)
	b := g2.AddNode(gcoord(-12.97, -38.50), 2)
	c := g2.AddNode(gcoord(-12.90, -38.40), 3)
	d := g2.AddNode(gcoord(-12.90, -38.39), 4)
	g2.AddEdge(a, b, 100, "", "", "")
	g2.AddEdge(c, d, 100, "", "", "")

	report = Connectivity(g2)
	if report.Components != 2 {
		t.Errorf("components = %d, want 2", report.Components)
	}
}

func gcoord(lat, lon float64) geo.Coordinate {
	return geo.NewCoordinate(lat, lon)
}
