package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"runtime"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-spectral-raytracer/pkg/scene"
)

// Tile is a vertical strip of the image owned by one worker
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// NewColumnTiles splits a width x height image into n vertical strips.
// n <= 0 uses every CPU, and n is capped at width so no strip is empty.
// The last strip absorbs the remainder of width/n.
func NewColumnTiles(width, height, n int) []*Tile {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	n = max(1, min(n, width))

	stripWidth := width / n
	tiles := make([]*Tile, n)
	for i := range tiles {
		x0 := i * stripWidth
		x1 := x0 + stripWidth
		if i == n-1 {
			x1 = width
		}
		tiles[i] = &Tile{ID: i, Bounds: image.Rect(x0, 0, x1, height)}
	}
	return tiles
}

// WorkerPanic carries a panic out of a tile worker
type WorkerPanic struct {
	Tile  int
	Value interface{}
	Stack []byte
}

func (p *WorkerPanic) Error() string {
	return fmt.Sprintf("tile %d panicked: %v\n%s", p.Tile, p.Value, p.Stack)
}

// TileRenderer shades tiles of a scene with a single shader
type TileRenderer struct {
	scene  *scene.Scene
	shader Shader
}

// NewTileRenderer creates a tile renderer for s
func NewTileRenderer(s *scene.Scene, shader Shader) *TileRenderer {
	return &TileRenderer{scene: s, shader: shader}
}

// RenderTile shades every pixel of tile into a buffer the caller owns
func (tr *TileRenderer) RenderTile(tile *Tile) (*image.RGBA, TileStats) {
	start := time.Now()
	img := image.NewRGBA(tile.Bounds)
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			img.SetRGBA(x, y, tr.shader(x, y, tr.scene))
		}
	}
	return img, TileStats{ID: tile.ID, Bounds: tile.Bounds, Duration: time.Since(start)}
}

// RenderTiles shades every tile on its own goroutine and joins them into
// canvas in tile order. A panic in any worker is re-raised here once all
// workers have finished.
func (tr *TileRenderer) RenderTiles(canvas draw.Image, tiles []*Tile) []TileStats {
	images := make([]*image.RGBA, len(tiles))
	stats := make([]TileStats, len(tiles))

	var g errgroup.Group
	for i, tile := range tiles {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &WorkerPanic{Tile: tile.ID, Value: r, Stack: debug.Stack()}
				}
			}()
			images[i], stats[i] = tr.RenderTile(tile)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var wp *WorkerPanic
		if errors.As(err, &wp) {
			panic(wp)
		}
		panic(err)
	}

	for i, tile := range tiles {
		draw.Draw(canvas, tile.Bounds, images[i], tile.Bounds.Min, draw.Src)
	}
	return stats
}
