package render

import (
	"html/template"
	"os"

	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/geo"
)

// Leaflet map document with the route polyline and origin/destination markers.
var htmlTemplate = template.Must(template.New("route").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<title>Rota para {{.DestLabel}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.Orig.Lat}}, {{.Orig.Lon}}], 14);
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
	attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);
var path = {{.Path}};
var route = L.polyline(path, {weight: 5}).addTo(map);
L.marker([{{.Orig.Lat}}, {{.Orig.Lon}}]).bindTooltip('Minha Localização').addTo(map);
L.marker([{{.Dest.Lat}}, {{.Dest.Lon}}]).bindTooltip({{.DestLabel}}).addTo(map);
map.fitBounds(route.getBounds(), {padding: [30, 30]});
</script>
</body>
</html>
`))

type htmlData struct {
	Orig      geo.Coordinate
	Dest      geo.Coordinate
	DestLabel string
	Path      [][]float64
}

func (r *Renderer) writeHTML(path string, route da.Route, orig, dest geo.Coordinate, destLabel string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	pathCoords := make([][]float64, len(route.Coords))
	for i, c := range route.Coords {
		pathCoords[i] = []float64{c.Lat, c.Lon}
	}

	return htmlTemplate.Execute(f, htmlData{
		Orig:      orig,
		Dest:      dest,
		DestLabel: destLabel,
		Path:      pathCoords,
	})
}
