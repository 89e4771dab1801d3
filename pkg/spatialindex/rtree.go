package spatialindex

import (
	"github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/geo"
	"github.com/gabrielsantosba/caminho/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

const (
	initialSearchRadiusKM = 0.2
	maxSearchRadiusKM     = 50.0
)

// NodePoint is an r-tree leaf: one graph node at its coordinate.
type NodePoint struct {
	id datastructure.Index
}

func (np NodePoint) GetID() datastructure.Index {
	return np.id
}

// Rtree resolves arbitrary coordinates to the nearest graph node. Built once
// per request over that request's graph.
type Rtree struct {
	tr    *rtree.RTreeG[NodePoint]
	graph *datastructure.Graph
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[NodePoint]
	return &Rtree{
		tr: &tr,
	}
}

// Build indexes every node of the graph as a point entry.
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	rt.graph = graph
	graph.ForNodes(func(n datastructure.Node) {
		p := [2]float64{n.Coord.Lon, n.Coord.Lat}
		rt.tr.Insert(p, p, NodePoint{id: n.ID})
	})
	log.Debug("built r-tree node index", zap.Int("nodes", graph.NumberOfNodes()))
}

// NearestNode returns the id of the node closest to (qLat, qLon) by haversine
// distance. Equidistant candidates resolve to the smallest node id, so
// re-querying the same graph always returns the same node.
func (rt *Rtree) NearestNode(qLat, qLon float64) (datastructure.Index, error) {
	if rt.graph == nil || rt.graph.NumberOfNodes() == 0 {
		return datastructure.INVALID_NODE_ID, util.WrapErrorf(nil, util.ErrNoGraphData,
			"cannot snap (%f, %f): graph has no nodes", qLat, qLon)
	}

	for radius := initialSearchRadiusKM; radius <= maxSearchRadiusKM; radius *= 2 {
		candidates := rt.searchWithinRadius(qLat, qLon, radius)
		if len(candidates) == 0 {
			continue
		}

		best := candidates[0]
		bestLat, bestLon := rt.graph.GetNodeCoordinates(best.id)
		bestDist := geo.CalculateHaversineDistance(qLat, qLon, bestLat, bestLon)
		for _, c := range candidates[1:] {
			cLat, cLon := rt.graph.GetNodeCoordinates(c.id)
			dist := geo.CalculateHaversineDistance(qLat, qLon, cLat, cLon)
			if dist < bestDist || (datastructure.Eq(dist, bestDist) && c.id < best.id) {
				best = c
				bestDist = dist
			}
		}
		return best.id, nil
	}

	return datastructure.INVALID_NODE_ID, util.WrapErrorf(nil, util.ErrNoGraphData,
		"no graph node within %f km of (%f, %f)", maxSearchRadiusKM, qLat, qLon)
}

// searchWithinRadius returns all node points inside the bounding box with the
// given radius (in km) around the query point.
func (rt *Rtree) searchWithinRadius(qLat, qLon, radius float64) []NodePoint {
	lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
	upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

	results := make([]NodePoint, 0, 10)
	rt.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
		func(min, max [2]float64, data NodePoint) bool {
			results = append(results, data)
			return true
		})
	return results
}
