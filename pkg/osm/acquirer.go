package osm

import (
	"context"

	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/planner"
)

// Acquirer produces a drivable road-network graph covering an area of
// interest. The graph is owned exclusively by the requesting caller and is
// never reused across requests.
type Acquirer interface {
	Acquire(ctx context.Context, area planner.Area) (*da.Graph, error)
}
