package osm

import (
	"context"
	"os"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/planner"
	"github.com/gabrielsantosba/caminho/pkg/util"
	"go.uber.org/zap"
)

// ExtractAcquirer builds graphs from a local .osm.pbf extract instead of a
// remote service. Useful for tests and offline deployments; each Acquire still
// produces a fresh graph clipped to the requested area.
type ExtractAcquirer struct {
	path string
	log  *zap.Logger
}

func NewExtractAcquirer(path string, log *zap.Logger) *ExtractAcquirer {
	return &ExtractAcquirer{path: path, log: log}
}

func (a *ExtractAcquirer) Acquire(ctx context.Context, area planner.Area) (*da.Graph, error) {
	f, err := os.Open(a.path)
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrAcquisition, "opening osm extract %s", a.path)
	}
	defer f.Close()

	sw, ne := area.BoundingBox()
	b := newGraphBuilder(a.log)

	scanner := osmpbf.New(ctx, f, 1)
	defer scanner.Close()

	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			b.addNode(int64(o.ID), o.Lat, o.Lon)
		case *osm.Way:
			if wayTouchesBox(o, b, sw.Lat, sw.Lon, ne.Lat, ne.Lon) {
				b.addWay(o)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return nil, acquisitionError(ctx.Err())
		}
		return nil, util.WrapErrorf(err, util.ErrAcquisition, "scanning osm extract %s", a.path)
	}

	return b.build()
}

// wayTouchesBox keeps a way when at least one of its nodes lies inside the
// bounding box. PBF files order nodes before ways, so coordinates are known.
func wayTouchesBox(w *osm.Way, b *graphBuilder, south, west, north, east float64) bool {
	for _, wn := range w.Nodes {
		c, ok := b.nodeCoords[int64(wn.ID)]
		if !ok {
			continue
		}
		if c.lat >= south && c.lat <= north && c.lon >= west && c.lon <= east {
			return true
		}
	}
	return false
}
