package routing

import (
	"github.com/gabrielsantosba/caminho/pkg"
	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/geo"
	"github.com/gabrielsantosba/caminho/pkg/util"
)

// Dijkstra runs a point-to-point shortest-path search over edges weighted by
// travel time. Weights are strictly positive, so plain Dijkstra with early
// termination at the destination is exact.
type Dijkstra struct {
	graph WeightedGraph

	dist       []float64
	parent     []da.Index
	parentEdge []*da.Edge
	heapNodes  []*da.PriorityQueueNode[da.Index]
	settled    []bool

	pq *da.MinHeap[da.Index]

	numSettledNodes int
}

func NewDijkstra(graph WeightedGraph) *Dijkstra {
	return &Dijkstra{
		graph: graph,
		pq:    da.NewFourAryHeap[da.Index](),
	}
}

func (d *Dijkstra) preallocate() {
	n := d.graph.NumberOfNodes()
	d.dist = make([]float64, n)
	d.parent = make([]da.Index, n)
	d.parentEdge = make([]*da.Edge, n)
	d.heapNodes = make([]*da.PriorityQueueNode[da.Index], n)
	d.settled = make([]bool, n)
	for i := 0; i < n; i++ {
		d.dist[i] = pkg.INF_WEIGHT
		d.parent[i] = da.INVALID_NODE_ID
	}
	d.pq.Preallocate(n)
}

// ShortestPath searches from s to t and returns the minimum-travel-time route.
// If s == t the route is the single node with zero cost. Unreachable t yields
// ErrRouteNotFound.
func (d *Dijkstra) ShortestPath(s, t da.Index) (da.Route, error) {
	d.preallocate()

	sNode := da.NewPriorityQueueNode(0, s)
	d.pq.Insert(sNode)
	d.dist[s] = 0
	d.heapNodes[s] = sNode

	for !d.pq.IsEmpty() {
		uNode, err := d.pq.ExtractMin()
		if err != nil {
			break
		}
		u := uNode.GetItem()
		if d.settled[u] {
			continue
		}
		d.settled[u] = true
		d.numSettledNodes++

		if u == t {
			// destination finalized, every other label is >= dist[t]
			break
		}

		d.relaxOutEdges(u)
	}

	if !d.settled[t] || da.Ge(d.dist[t], pkg.INF_WEIGHT) {
		return da.Route{}, util.WrapErrorf(nil, util.ErrRouteNotFound,
			"no path connects node %d to node %d", s, t)
	}

	return d.buildRoute(s, t), nil
}

func (d *Dijkstra) relaxOutEdges(u da.Index) {
	d.graph.ForOutEdgesOf(u, func(e *da.Edge) {
		v := e.To
		if d.settled[v] {
			return
		}

		newDist := d.dist[u] + e.TravelTime
		if da.Ge(newDist, pkg.INF_WEIGHT) {
			return
		}

		if da.Lt(newDist, d.dist[v]) {
			alreadyLabelled := d.dist[v] < pkg.INF_WEIGHT
			d.dist[v] = newDist
			d.parent[v] = u
			d.parentEdge[v] = e

			if alreadyLabelled && d.heapNodes[v] != nil && d.heapNodes[v].GetPos() >= 0 {
				d.pq.DecreaseKey(d.heapNodes[v], newDist)
			} else {
				vNode := da.NewPriorityQueueNode(newDist, v)
				d.heapNodes[v] = vNode
				d.pq.Insert(vNode)
			}
		}
	})
}

// NumSettledNodes reports how many nodes the last search finalized.
func (d *Dijkstra) NumSettledNodes() int {
	return d.numSettledNodes
}

func (d *Dijkstra) buildRoute(s, t da.Index) da.Route {
	nodes := make([]da.Index, 0)
	names := make([]string, 0)
	distance := 0.0
	for v := t; v != da.INVALID_NODE_ID; v = d.parent[v] {
		nodes = append(nodes, v)
		if e := d.parentEdge[v]; e != nil {
			distance += e.LengthMeters
			if e.StreetName != "" && (len(names) == 0 || names[len(names)-1] != e.StreetName) {
				names = append(names, e.StreetName)
			}
		}
		if v == s {
			break
		}
	}
	nodes = util.ReverseG(nodes)
	names = util.ReverseG(names)

	coords := make([]geo.Coordinate, len(nodes))
	for i, id := range nodes {
		lat, lon := d.graph.GetNodeCoordinates(id)
		coords[i] = geo.NewCoordinate(lat, lon)
	}

	route := da.NewRoute(nodes, coords, d.dist[t], distance)
	route.StreetNames = names
	return route
}
