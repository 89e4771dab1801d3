package render

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/geo"
	"go.uber.org/zap"
)

func testRoute() da.Route {
	coords := []geo.Coordinate{
		geo.NewCoordinate(-12.9714, -38.5015),
		geo.NewCoordinate(-12.9714, -38.5050),
		geo.NewCoordinate(-12.9714, -38.5095),
	}
	return da.NewRoute([]da.Index{0, 1, 2}, coords, 96, 890)
}

func TestRenderWritesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, zap.NewNop())

	route := testRoute()
	orig := route.Coords[0]
	dest := route.Coords[len(route.Coords)-1]

	artifacts, err := r.Render(route, orig, dest, "Pelourinho")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	htmlBytes, err := os.ReadFile(filepath.Join(dir, artifacts.HTMLPath))
	if err != nil {
		t.Fatalf("reading html artifact: %v", err)
	}
	html := string(htmlBytes)
	for _, want := range []string{"leaflet", "Pelourinho", "Minha Localiza"} {
		if !strings.Contains(html, want) {
			t.Errorf("html artifact missing %q", want)
		}
	}

	f, err := os.Open(filepath.Join(dir, artifacts.PNGPath))
	if err != nil {
		t.Fatalf("opening png artifact: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png artifact does not decode: %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Error("png artifact has empty bounds")
	}
}

func TestRenderUniqueArtifactIDs(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir, zap.NewNop())
	route := testRoute()

	a, err := r.Render(route, route.Coords[0], route.Coords[2], "Pelourinho")
	if err != nil {
		t.Fatalf("first Render: %v", err)
	}
	b, err := r.Render(route, route.Coords[0], route.Coords[2], "Pelourinho")
	if err != nil {
		t.Fatalf("second Render: %v", err)
	}
	if a.HTMLPath == b.HTMLPath || a.PNGPath == b.PNGPath {
		t.Error("consecutive renders must not collide on artifact names")
	}
}
