package routing

import (
	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
)

// WeightedGraph is the minimal graph surface the search needs: node count and
// out-edge iteration with weights. The acquirer's Graph satisfies it; tests
// use small synthetic graphs.
type WeightedGraph interface {
	NumberOfNodes() int
	GetNodeCoordinates(id da.Index) (float64, float64)
	ForOutEdgesOf(u da.Index, fn func(e *da.Edge))
}
