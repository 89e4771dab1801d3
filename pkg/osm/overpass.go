package osm

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/osm"

	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/planner"
	"github.com/gabrielsantosba/caminho/pkg/util"
	"go.uber.org/zap"
)

const (
	overpassQueryTimeoutSec = 60
	retryBackoff            = 500 * time.Millisecond
)

// OverpassAcquirer fetches the drivable road network of an area from an
// Overpass API endpoint and builds a fresh graph from the response.
type OverpassAcquirer struct {
	endpoint string
	client   *http.Client
	log      *zap.Logger
}

func NewOverpassAcquirer(endpoint string, client *http.Client, log *zap.Logger) *OverpassAcquirer {
	if client == nil {
		client = http.DefaultClient
	}
	return &OverpassAcquirer{
		endpoint: endpoint,
		client:   client,
		log:      log,
	}
}

// Acquire downloads all highway ways intersecting the area's bounding box and
// assembles the routable graph. Transient upstream failures are retried once;
// the caller's context deadline bounds the whole acquisition.
func (a *OverpassAcquirer) Acquire(ctx context.Context, area planner.Area) (*da.Graph, error) {
	sw, ne := area.BoundingBox()
	query := buildOverpassQuery(sw.Lat, sw.Lon, ne.Lat, ne.Lon)

	body, err := a.fetch(ctx, query)
	if err != nil {
		if !retriable(err) {
			return nil, err
		}
		a.log.Warn("overpass fetch failed, retrying once", zap.Error(err))
		select {
		case <-ctx.Done():
			return nil, acquisitionError(ctx.Err())
		case <-time.After(retryBackoff):
		}
		body, err = a.fetch(ctx, query)
		if err != nil {
			return nil, err
		}
	}

	var doc osm.OSM
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, util.WrapErrorf(err, util.ErrAcquisition, "decoding overpass response")
	}

	return BuildGraph(&doc, a.log)
}

func (a *OverpassAcquirer) fetch(ctx context.Context, query string) ([]byte, error) {
	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, util.WrapErrorf(err, util.ErrAcquisition, "building overpass request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, acquisitionError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, util.WrapErrorf(nil, util.ErrAcquisition,
			"overpass returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, acquisitionError(err)
	}
	return body, nil
}

// buildOverpassQuery requests every highway way in the box plus the referenced
// nodes ("(._;>;)"), as XML.
func buildOverpassQuery(south, west, north, east float64) string {
	return fmt.Sprintf(
		"[out:xml][timeout:%d];(way[\"highway\"](%f,%f,%f,%f););(._;>;);out body;",
		overpassQueryTimeoutSec, south, west, north, east)
}

// acquisitionError classifies a transport-level failure: a deadline hit is an
// AcquisitionTimeout, anything else an AcquisitionFailure.
func acquisitionError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return util.WrapErrorf(err, util.ErrAcquisitionTimeout, "road network acquisition exceeded its time budget")
	}
	return util.WrapErrorf(err, util.ErrAcquisition, "fetching road network")
}

// retriable: one retry on transient transport or upstream errors, never on a
// spent deadline.
func retriable(err error) bool {
	return !errors.Is(util.ErrorCode(err), util.ErrAcquisitionTimeout) &&
		!errors.Is(err, context.Canceled)
}

// BuildGraph assembles a routable graph from a decoded OSM document.
func BuildGraph(doc *osm.OSM, log *zap.Logger) (*da.Graph, error) {
	b := newGraphBuilder(log)
	for _, n := range doc.Nodes {
		b.addNode(int64(n.ID), n.Lat, n.Lon)
	}
	for _, w := range doc.Ways {
		b.addWay(w)
	}
	return b.build()
}
