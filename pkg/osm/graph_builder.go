package osm

import (
	"github.com/paulmach/osm"

	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/geo"
	"github.com/gabrielsantosba/caminho/pkg/util"
	"go.uber.org/zap"
)

var (
	// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
	acceptedHighway = map[string]struct{}{
		"motorway":         {},
		"motorway_link":    {},
		"trunk":            {},
		"trunk_link":       {},
		"primary":          {},
		"primary_link":     {},
		"secondary":        {},
		"secondary_link":   {},
		"residential":      {},
		"residential_link": {},
		"service":          {},
		"tertiary":         {},
		"tertiary_link":    {},
		"road":             {},
		"track":            {},
		"unclassified":     {},
		"undefined":        {},
		"unknown":          {},
		"living_street":    {},
		"private":          {},
		"motorroad":        {},
	}
)

type nodeCoord struct {
	lat float64
	lon float64
}

type wayData struct {
	nodes    []int64
	maxSpeed string
	class    string
	name     string
	oneWay   bool
	forward  bool
}

// graphBuilder turns raw OSM nodes and ways into the per-request routable
// graph: drivable ways only, split at shared (junction) nodes, directed edges
// with haversine lengths, reverse edges for two-way streets.
type graphBuilder struct {
	nodeCoords map[int64]nodeCoord
	ways       []wayData

	useCount map[int64]int      // how many kept ways touch each node
	nodeIDs  map[int64]da.Index // osm node id -> graph node id

	log *zap.Logger
}

func newGraphBuilder(log *zap.Logger) *graphBuilder {
	return &graphBuilder{
		nodeCoords: make(map[int64]nodeCoord),
		useCount:   make(map[int64]int),
		nodeIDs:    make(map[int64]da.Index),
		log:        log,
	}
}

func (b *graphBuilder) addNode(id int64, lat, lon float64) {
	b.nodeCoords[id] = nodeCoord{lat: lat, lon: lon}
}

// addWay keeps drivable-highway ways only.
func (b *graphBuilder) addWay(way *osm.Way) {
	highway := way.Tags.Find("highway")
	if _, ok := acceptedHighway[highway]; !ok {
		return
	}
	if len(way.Nodes) < 2 {
		return
	}

	w := wayData{
		nodes:    make([]int64, 0, len(way.Nodes)),
		maxSpeed: way.Tags.Find("maxspeed"),
		class:    highway,
		name:     way.Tags.Find("name"),
		forward:  true,
	}

	okvf, okmvf, okvb, okmvb := getReversedOneWay(way)
	if val := way.Tags.Find("oneway"); val == "yes" || val == "-1" || okvf || okmvf || okvb || okmvb {
		w.oneWay = true
	}
	if way.Tags.Find("oneway") == "-1" || okvf || okmvf {
		w.forward = false
	}

	for _, wn := range way.Nodes {
		w.nodes = append(w.nodes, int64(wn.ID))
	}
	b.ways = append(b.ways, w)
}

func isRestricted(value string) bool {
	return value == "no" || value == "restricted"
}

func getReversedOneWay(way *osm.Way) (bool, bool, bool, bool) {
	vehicleForward := way.Tags.Find("vehicle:forward")
	motorVehicleForward := way.Tags.Find("motor_vehicle:forward")
	vehicleBackward := way.Tags.Find("vehicle:backward")
	motorVehicleBackward := way.Tags.Find("motor_vehicle:backward")
	return isRestricted(vehicleForward), isRestricted(motorVehicleForward), isRestricted(vehicleBackward), isRestricted(motorVehicleBackward)
}

// build assembles the graph. Ways are split at junction nodes (nodes shared by
// more than one way) and at way endpoints; interior geometry contributes to
// edge length only.
func (b *graphBuilder) build() (*da.Graph, error) {
	for _, w := range b.ways {
		for i, n := range w.nodes {
			if _, ok := b.nodeCoords[n]; !ok {
				continue
			}
			b.useCount[n]++
			// a node visited twice by the same way (loop) is a junction too
			if i > 0 && n == w.nodes[0] {
				b.useCount[n]++
			}
		}
	}

	g := da.NewGraph()
	kept := 0
	for _, w := range b.ways {
		if b.addWayEdges(g, w) {
			kept++
		}
	}

	if g.NumberOfNodes() == 0 || g.NumberOfEdges() == 0 {
		return nil, util.WrapErrorf(nil, util.ErrNoGraphData,
			"no drivable road data in requested area (%d ways scanned)", len(b.ways))
	}

	conn := Connectivity(g)
	b.log.Debug("built road network graph",
		zap.Int("ways", kept),
		zap.Int("nodes", g.NumberOfNodes()),
		zap.Int("edges", g.NumberOfEdges()),
		zap.Int("components", conn.Components),
		zap.Int("largest_component", conn.LargestSize))
	return g, nil
}

func (b *graphBuilder) addWayEdges(g *da.Graph, w wayData) bool {
	added := false
	segStart := -1
	segLength := 0.0

	var prev nodeCoord
	havePrev := false

	for i, n := range w.nodes {
		coord, ok := b.nodeCoords[n]
		if !ok {
			// node missing from the source extract, cut the segment here
			segStart = -1
			havePrev = false
			continue
		}
		if havePrev {
			segLength += geo.CalculateHaversineDistance(prev.lat, prev.lon, coord.lat, coord.lon) * 1000.0
		}
		prev = coord
		havePrev = true

		isEnd := i == 0 || i == len(w.nodes)-1
		if !isEnd && b.useCount[n] < 2 {
			continue // interior geometry node
		}

		if segStart >= 0 && w.nodes[segStart] != n {
			from := b.graphNode(g, w.nodes[segStart])
			to := b.graphNode(g, n)
			if w.forward || !w.oneWay {
				g.AddEdge(from, to, segLength, w.maxSpeed, w.class, w.name)
			}
			if !w.oneWay || !w.forward {
				g.AddEdge(to, from, segLength, w.maxSpeed, w.class, w.name)
			}
			added = true
		}
		segStart = i
		segLength = 0.0
	}
	return added
}

func (b *graphBuilder) graphNode(g *da.Graph, osmID int64) da.Index {
	if id, ok := b.nodeIDs[osmID]; ok {
		return id
	}
	coord := b.nodeCoords[osmID]
	id := g.AddNode(geo.NewCoordinate(coord.lat, coord.lon), osmID)
	b.nodeIDs[osmID] = id
	return id
}
