package renderer

import (
	"image"
	"time"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/scene"
)

// RenderStats contains statistics about one frame
type RenderStats struct {
	Mode      scene.RenderMode
	Shader    scene.ShaderMode
	Width     int
	Height    int
	Polygons  int
	Workers   int           // tiles shaded in parallel, 0 when rasterizing
	Transform time.Duration // compiling and applying mesh transforms
	Shade     time.Duration // shading or line drawing
	Total     time.Duration
	Tiles     []TileStats
}

// TileStats records how long one tile took to shade
type TileStats struct {
	ID       int
	Bounds   image.Rectangle
	Duration time.Duration
}

// Log prints the frame summary at verbosity 1 and the tiles at verbosity 2.
// Tiles are printed in index order after the join, never as they finish.
func (rs RenderStats) Log(logger core.Logger, verbosity uint8) {
	if verbosity == 0 {
		return
	}
	logger.Printf("Rendered %dx%d (%s, %s): %d polygons, %d workers\n",
		rs.Width, rs.Height, rs.Mode, rs.Shader, rs.Polygons, rs.Workers)
	logger.Printf("  transform %v, shade %v, total %v\n", rs.Transform, rs.Shade, rs.Total)
	if verbosity < 2 {
		return
	}
	for _, ts := range rs.Tiles {
		logger.Printf("  tile %d %v: %v\n", ts.ID, ts.Bounds, ts.Duration)
	}
}
