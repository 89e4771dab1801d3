package datastructure

import (
	"github.com/gabrielsantosba/caminho/pkg/geo"
)

type Index uint32

const INVALID_NODE_ID = Index(^uint32(0))

// Node is an intersection or endpoint in the road network.
type Node struct {
	ID    Index
	Coord geo.Coordinate
	OsmID int64
}

// Edge is a directed street segment between two nodes. SpeedKmh and
// TravelTime are filled in by the weighting stage; RawMaxSpeed and RoadClass
// carry the source metadata the weighting decides from.
type Edge struct {
	ID   Index
	From Index
	To   Index

	LengthMeters float64
	RawMaxSpeed  string // verbatim maxspeed tag value, "" if absent
	RoadClass    string // highway class, "" if absent
	StreetName   string

	SpeedKmh   float64
	TravelTime float64 // seconds, defined after weighting
}

// Graph is the per-request road network arena. It is built fresh for every
// request by an Acquirer, weighted in place, consumed by the resolver and the
// search, then discarded. Never shared across requests.
type Graph struct {
	nodes    []Node
	edges    []Edge
	outEdges [][]Index // node id -> edge ids leaving it
}

func NewGraph() *Graph {
	return &Graph{
		nodes:    make([]Node, 0),
		edges:    make([]Edge, 0),
		outEdges: make([][]Index, 0),
	}
}

func NewGraphWithSize(numNodes, numEdges int) *Graph {
	return &Graph{
		nodes:    make([]Node, 0, numNodes),
		edges:    make([]Edge, 0, numEdges),
		outEdges: make([][]Index, 0, numNodes),
	}
}

// AddNode appends a node and returns its id.
func (g *Graph) AddNode(coord geo.Coordinate, osmID int64) Index {
	id := Index(len(g.nodes))
	g.nodes = append(g.nodes, Node{ID: id, Coord: coord, OsmID: osmID})
	g.outEdges = append(g.outEdges, nil)
	return id
}

// AddEdge appends a directed edge from -> to and returns its id.
func (g *Graph) AddEdge(from, to Index, lengthMeters float64, rawMaxSpeed, roadClass, streetName string) Index {
	id := Index(len(g.edges))
	g.edges = append(g.edges, Edge{
		ID:           id,
		From:         from,
		To:           to,
		LengthMeters: lengthMeters,
		RawMaxSpeed:  rawMaxSpeed,
		RoadClass:    roadClass,
		StreetName:   streetName,
	})
	g.outEdges[from] = append(g.outEdges[from], id)
	return id
}

func (g *Graph) NumberOfNodes() int {
	return len(g.nodes)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.edges)
}

func (g *Graph) GetNode(id Index) Node {
	return g.nodes[id]
}

func (g *Graph) GetEdge(id Index) *Edge {
	return &g.edges[id]
}

func (g *Graph) GetNodeCoordinates(id Index) (float64, float64) {
	n := g.nodes[id]
	return n.Coord.Lat, n.Coord.Lon
}

// ForNodes iterates all nodes in id order.
func (g *Graph) ForNodes(fn func(n Node)) {
	for i := range g.nodes {
		fn(g.nodes[i])
	}
}

// ForEdges iterates all edges in id order. The callback receives a pointer so
// the weighting stage can annotate edges in place.
func (g *Graph) ForEdges(fn func(e *Edge)) {
	for i := range g.edges {
		fn(&g.edges[i])
	}
}

// ForOutEdgesOf iterates the edges leaving u in insertion order.
func (g *Graph) ForOutEdgesOf(u Index, fn func(e *Edge)) {
	for _, eid := range g.outEdges[u] {
		fn(&g.edges[eid])
	}
}

// accessors used by the cost function's EdgeAttributes interface

func (e *Edge) GetRawMaxSpeed() string {
	return e.RawMaxSpeed
}

func (e *Edge) GetRoadClass() string {
	return e.RoadClass
}

func (e *Edge) GetLength() float64 {
	return e.LengthMeters
}
