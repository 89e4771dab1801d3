package render

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabrielsantosba/caminho/pkg/concurrent"
	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/geo"
	"github.com/gabrielsantosba/caminho/pkg/util"
	"go.uber.org/zap"
)

// Artifacts are the rendered route outputs: an interactive map document and a
// static image, both as paths relative to the static directory.
type Artifacts struct {
	HTMLPath string
	PNGPath  string
}

// Renderer turns a computed route into map artifacts on disk.
type Renderer struct {
	staticDir string
	log       *zap.Logger
}

func NewRenderer(staticDir string, log *zap.Logger) *Renderer {
	return &Renderer{staticDir: staticDir, log: log}
}

type renderJob struct {
	name string
	run  func(path string) error
}

type renderResult struct {
	name string
	err  error
}

// Render writes route_<id>.html and route_<id>.png under the static dir. The
// two artifacts are independent, so they render as parallel jobs on a worker
// pool.
func (r *Renderer) Render(route da.Route, orig, dest geo.Coordinate, destLabel string) (Artifacts, error) {
	if err := os.MkdirAll(r.staticDir, 0o755); err != nil {
		return Artifacts{}, util.WrapErrorf(err, util.ErrInternalServerError, "creating static dir %s", r.staticDir)
	}

	id := artifactID()
	artifacts := Artifacts{
		HTMLPath: fmt.Sprintf("route_%s.html", id),
		PNGPath:  fmt.Sprintf("route_%s.png", id),
	}

	jobs := []renderJob{
		{
			name: artifacts.HTMLPath,
			run: func(path string) error {
				return r.writeHTML(path, route, orig, dest, destLabel)
			},
		},
		{
			name: artifacts.PNGPath,
			run: func(path string) error {
				return r.writePNG(path, route)
			},
		},
	}

	pool := concurrent.NewWorkerPool[renderJob, renderResult](len(jobs), len(jobs))
	pool.Start(func(job renderJob) renderResult {
		return renderResult{name: job.name, err: job.run(filepath.Join(r.staticDir, job.name))}
	})
	for _, job := range jobs {
		pool.AddJob(job)
	}
	pool.Close()
	pool.Wait()

	for res := range pool.CollectResults() {
		if res.err != nil {
			return Artifacts{}, util.WrapErrorf(res.err, util.ErrInternalServerError,
				"rendering %s", res.name)
		}
	}

	r.log.Info("rendered route artifacts",
		zap.String("html", artifacts.HTMLPath),
		zap.String("png", artifacts.PNGPath))
	return artifacts, nil
}

func artifactID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "0"
	}
	return hex.EncodeToString(b[:])
}
