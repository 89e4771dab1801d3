package render

import (
	"image"
	"image/color"
	"image/png"
	"os"

	da "github.com/gabrielsantosba/caminho/pkg/datastructure"
	"github.com/gabrielsantosba/caminho/pkg/util"
)

const (
	imageSize    = 800
	imagePadding = 40
)

var (
	backgroundColor = color.RGBA{R: 250, G: 250, B: 250, A: 255}
	routeColor      = color.RGBA{R: 30, G: 100, B: 220, A: 255}
	endpointColor   = color.RGBA{R: 200, G: 40, B: 40, A: 255}
)

// writePNG plots the route as a polyline scaled to the image, a static
// counterpart of the interactive document.
func (r *Renderer) writePNG(path string, route da.Route) error {
	img := image.NewRGBA(image.Rect(0, 0, imageSize, imageSize))
	fill(img, backgroundColor)

	if len(route.Coords) > 0 {
		minLat, maxLat := route.Coords[0].Lat, route.Coords[0].Lat
		minLon, maxLon := route.Coords[0].Lon, route.Coords[0].Lon
		for _, c := range route.Coords {
			if c.Lat < minLat {
				minLat = c.Lat
			}
			if c.Lat > maxLat {
				maxLat = c.Lat
			}
			if c.Lon < minLon {
				minLon = c.Lon
			}
			if c.Lon > maxLon {
				maxLon = c.Lon
			}
		}

		project := func(lat, lon float64) (int, int) {
			spanLat := maxLat - minLat
			spanLon := maxLon - minLon
			if spanLat == 0 {
				spanLat = 1e-6
			}
			if spanLon == 0 {
				spanLon = 1e-6
			}
			drawable := imageSize - 2*imagePadding
			x := imagePadding + int(float64(drawable)*(lon-minLon)/spanLon)
			// image y grows downward, latitude grows upward
			y := imagePadding + int(float64(drawable)*(maxLat-lat)/spanLat)
			return x, y
		}

		for i := 1; i < len(route.Coords); i++ {
			x0, y0 := project(route.Coords[i-1].Lat, route.Coords[i-1].Lon)
			x1, y1 := project(route.Coords[i].Lat, route.Coords[i].Lon)
			drawLine(img, x0, y0, x1, y1, routeColor)
		}

		x, y := project(route.Coords[0].Lat, route.Coords[0].Lon)
		drawSquare(img, x, y, 4, endpointColor)
		x, y = project(route.Coords[len(route.Coords)-1].Lat, route.Coords[len(route.Coords)-1].Lon)
		drawSquare(img, x, y, 4, endpointColor)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func fill(img *image.RGBA, c color.RGBA) {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// drawLine. Bresenham.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := util.Abs(x1 - x0)
	dy := -util.Abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		img.SetRGBA(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func drawSquare(img *image.RGBA, cx, cy, half int, c color.RGBA) {
	for y := cy - half; y <= cy+half; y++ {
		for x := cx - half; x <= cx+half; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

