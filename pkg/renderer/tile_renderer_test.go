package renderer

import (
	"image"
	"image/color"
	"runtime"
	"testing"

	"github.com/df07/go-spectral-raytracer/pkg/scene"
)

func TestNewColumnTiles(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		n             int
		widths        []int
	}{
		{"even split", 12, 4, 3, []int{4, 4, 4}},
		{"remainder goes last", 10, 4, 3, []int{3, 3, 4}},
		{"single tile", 7, 2, 1, []int{7}},
		{"capped at width", 3, 2, 8, []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewColumnTiles(tt.width, tt.height, tt.n)
			if len(tiles) != len(tt.widths) {
				t.Fatalf("Expected %d tiles, got %d", len(tt.widths), len(tiles))
			}
			x := 0
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Tile %d has ID %d", i, tile.ID)
				}
				want := image.Rect(x, 0, x+tt.widths[i], tt.height)
				if tile.Bounds != want {
					t.Errorf("Tile %d: expected %v, got %v", i, want, tile.Bounds)
				}
				x += tt.widths[i]
			}
			if x != tt.width {
				t.Errorf("Expected tiles to cover width %d, covered %d", tt.width, x)
			}
		})
	}
}

func TestNewColumnTiles_DefaultsToCPUCount(t *testing.T) {
	width := runtime.NumCPU() * 4
	if got := len(NewColumnTiles(width, 1, 0)); got != runtime.NumCPU() {
		t.Errorf("Expected %d tiles, got %d", runtime.NumCPU(), got)
	}
	if got := len(NewColumnTiles(width, 1, -2)); got != runtime.NumCPU() {
		t.Errorf("Expected %d tiles for negative n, got %d", runtime.NumCPU(), got)
	}
}

func TestTileRenderer_RenderTilesJoinsInPlace(t *testing.T) {
	// Encode the pixel position in the colour so misplaced tiles show up
	shader := func(x, y int, s *scene.Scene) color.RGBA {
		return color.RGBA{R: uint8(x), G: uint8(y), B: 7, A: 255}
	}
	tr := NewTileRenderer(scene.NewScene(), shader)

	canvas := image.NewRGBA(image.Rect(0, 0, 23, 5))
	stats := tr.RenderTiles(canvas, NewColumnTiles(23, 5, 4))
	if len(stats) != 4 {
		t.Fatalf("Expected 4 tile stats, got %d", len(stats))
	}
	for i, ts := range stats {
		if ts.ID != i {
			t.Errorf("Stats %d belong to tile %d", i, ts.ID)
		}
	}

	for y := 0; y < 5; y++ {
		for x := 0; x < 23; x++ {
			want := color.RGBA{R: uint8(x), G: uint8(y), B: 7, A: 255}
			if got := canvas.RGBAAt(x, y); got != want {
				t.Fatalf("Pixel (%d, %d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestTileRenderer_PanicPropagates(t *testing.T) {
	shader := func(x, y int, s *scene.Scene) color.RGBA {
		if x == 9 {
			panic("bad pixel")
		}
		return color.RGBA{A: 255}
	}
	tr := NewTileRenderer(scene.NewScene(), shader)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected the worker panic to reach the caller")
		}
		wp, ok := r.(*WorkerPanic)
		if !ok {
			t.Fatalf("Expected *WorkerPanic, got %T", r)
		}
		if wp.Tile != 2 || wp.Value != "bad pixel" {
			t.Errorf("Expected tile 2 to panic with %q, got tile %d with %v", "bad pixel", wp.Tile, wp.Value)
		}
		if len(wp.Stack) == 0 {
			t.Error("Expected a stack trace")
		}
	}()

	canvas := image.NewRGBA(image.Rect(0, 0, 16, 2))
	tr.RenderTiles(canvas, NewColumnTiles(16, 2, 4))
}
