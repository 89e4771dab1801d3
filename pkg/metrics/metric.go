package metrics

import (
	"github.com/gabrielsantosba/caminho/pkg/costfunction"
	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/util"
	"go.uber.org/zap"
)

// Metric is the edge weighting stage. It annotates every edge of a graph with
// an effective speed and a travel time derived from the cost function, so the
// shortest-path search always sees total, strictly positive weights.
type Metric struct {
	costFunction costfunction.CostFunction
	log          *zap.Logger
}

func NewMetric(costFunction costfunction.CostFunction, log *zap.Logger) *Metric {
	return &Metric{
		costFunction: costFunction,
		log:          log,
	}
}

// Weigh assigns SpeedKmh and TravelTime to every edge in place. Returns an
// error only if an edge would end up with a non-positive weight, which would
// break the non-negative-weight assumption of the search.
func (m *Metric) Weigh(g *da.Graph) error {
	var bad int
	g.ForEdges(func(e *da.Edge) {
		e.SpeedKmh = m.costFunction.EffectiveSpeed(e)
		e.TravelTime = m.costFunction.GetWeight(e)
		if e.LengthMeters > 0 && e.TravelTime <= 0 {
			bad++
		}
	})
	if bad > 0 {
		return util.WrapErrorf(nil, util.ErrInternalServerError,
			"weighting left %d edges without a positive travel time", bad)
	}
	m.log.Debug("weighted graph edges", zap.Int("edges", g.NumberOfEdges()))
	return nil
}

// GetWeight returns the travel time of an already weighted edge.
func (m *Metric) GetWeight(e *da.Edge) float64 {
	return e.TravelTime
}
