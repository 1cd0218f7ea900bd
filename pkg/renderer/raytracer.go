package renderer

import (
	"image"
	"image/draw"
	"time"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/scene"
)

// Raytracer renders frames of a scene
type Raytracer struct {
	scene  *scene.Scene
	logger core.Logger
}

// NewRaytracer creates a raytracer for s. A nil logger discards output.
func NewRaytracer(s *scene.Scene, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Raytracer{scene: s, logger: logger}
}

// Render produces one frame sized to the camera sensor
func Render(s *scene.Scene, logger core.Logger) *image.RGBA {
	img, _ := NewRaytracer(s, logger).RenderFrame()
	return img
}

// RenderFrame transforms every mesh for this frame, then shades or
// rasterizes according to the scene's render mode. The scene must not be
// modified while a frame is in flight.
func (rt *Raytracer) RenderFrame() (*image.RGBA, RenderStats) {
	s := rt.scene
	width, height := s.Camera.Sensor.HorizontalRes, s.Camera.Sensor.VerticalRes
	stats := RenderStats{
		Mode:     s.RenderMode,
		Shader:   s.ShaderMode,
		Width:    width,
		Height:   height,
		Polygons: s.PolygonCount(),
	}
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	start := time.Now()

	if s.RenderMode == scene.Rasterize {
		s.ApplyTransforms(s.Camera.WorldToCamera())
		stats.Transform = time.Since(start)

		shadeStart := time.Now()
		rasterize(canvas, s)
		stats.Shade = time.Since(shadeStart)
	} else {
		s.ApplyTransforms()
		stats.Transform = time.Since(start)

		shadeStart := time.Now()
		stats.Tiles = rt.trace(canvas)
		stats.Workers = len(stats.Tiles)
		stats.Shade = time.Since(shadeStart)
	}

	stats.Total = time.Since(start)
	stats.Log(rt.logger, s.Logging)
	return canvas, stats
}

// trace ray traces the whole image. RayTrace shades one full-width tile on
// the calling goroutine; ThreadedRayTrace fans out one worker per strip.
func (rt *Raytracer) trace(canvas draw.Image) []TileStats {
	s := rt.scene
	width, height := s.Camera.Sensor.HorizontalRes, s.Camera.Sensor.VerticalRes
	tr := NewTileRenderer(s, ShaderFor(s.ShaderMode))

	if s.RenderMode == scene.RayTrace {
		tile := NewColumnTiles(width, height, 1)[0]
		img, ts := tr.RenderTile(tile)
		draw.Draw(canvas, tile.Bounds, img, tile.Bounds.Min, draw.Src)
		return []TileStats{ts}
	}
	return tr.RenderTiles(canvas, NewColumnTiles(width, height, s.Threads))
}
