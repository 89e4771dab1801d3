package usecases

import (
	"context"

	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/directory"
	"github.com/gabrielsantosba/caminho/pkg/geo"
	"github.com/gabrielsantosba/caminho/pkg/planner"
	"github.com/gabrielsantosba/caminho/pkg/render"
)

type Acquirer interface {
	Acquire(ctx context.Context, area planner.Area) (*da.Graph, error)
}

type Weigher interface {
	Weigh(g *da.Graph) error
}

type Renderer interface {
	Render(route da.Route, orig, dest geo.Coordinate, destLabel string) (render.Artifacts, error)
}

type EntityDirectory interface {
	Get(name string) (directory.Entity, bool)
	Friends() map[string]geo.Coordinate
	Places() map[string]geo.Coordinate
}
