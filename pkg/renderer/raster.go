package renderer

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/scene"
	"github.com/df07/go-spectral-raytracer/pkg/spectra"
)

// WireColor is the colour of rasterized edges
var WireColor = color.RGBA{G: 255, A: 255}

// rasterize draws every triangle edge as a line. Output vertices must be in
// camera space; edges with an end in front of the near plane are skipped.
func rasterize(canvas *image.RGBA, s *scene.Scene) {
	background := spectra.ToDisplay(s.Background)
	for i := 0; i < len(canvas.Pix); i += 4 {
		canvas.Pix[i+0] = background.R
		canvas.Pix[i+1] = background.G
		canvas.Pix[i+2] = background.B
		canvas.Pix[i+3] = background.A
	}

	toScreen := s.Camera.CameraToScreen()
	near := s.Camera.Near
	objects := s.Objects()
	for i := range objects {
		for _, mesh := range objects[i].Meshes {
			for p := 0; p < mesh.PolygonCount(); p++ {
				polygon := mesh.Polygon(p)
				corners := [3]core.Vec3{polygon.A.Position, polygon.B.Position, polygon.C.Position}
				for e := range corners {
					a, b := corners[e], corners[(e+1)%3]
					if a.Z > -near || b.Z > -near {
						continue
					}
					drawEdge(canvas, toScreen.Apply(a), toScreen.Apply(b))
				}
			}
		}
	}
}

// drawEdge clips a screen-space segment to the canvas and plots it
func drawEdge(canvas *image.RGBA, a, b core.Vec3) {
	if math32.IsNaN(a.X) || math32.IsNaN(a.Y) || math32.IsNaN(b.X) || math32.IsNaN(b.Y) {
		return
	}
	bounds := canvas.Bounds()
	x0, y0, x1, y1, ok := clipLine(a.X, a.Y, b.X, b.Y,
		float32(bounds.Min.X), float32(bounds.Min.Y), float32(bounds.Max.X-1), float32(bounds.Max.Y-1))
	if !ok {
		return
	}
	bresenham(canvas, int(math32.Round(x0)), int(math32.Round(y0)), int(math32.Round(x1)), int(math32.Round(y1)), WireColor)
}

// clipLine clips the segment (x0,y0)-(x1,y1) to the rectangle [minX,maxX]x[minY,maxY]
// using Liang-Barsky. It reports false when nothing of the segment is inside.
func clipLine(x0, y0, x1, y1, minX, minY, maxX, maxY float32) (float32, float32, float32, float32, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := float32(0), float32(1)

	p := [4]float32{-dx, dx, -dy, dy}
	q := [4]float32{x0 - minX, maxX - x0, y0 - minY, maxY - y0}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

// bresenham plots an integer line, ignoring points outside the canvas
func bresenham(canvas *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	bounds := canvas.Bounds()
	err := dx + dy
	for {
		if (image.Point{X: x0, Y: y0}).In(bounds) {
			canvas.SetRGBA(x0, y0, c)
		}
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

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
