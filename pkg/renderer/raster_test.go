package renderer

import (
	"image"
	"testing"
)

func TestClipLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float32
		want           [4]float32
		ok             bool
	}{
		{"inside", 1, 1, 5, 5, [4]float32{1, 1, 5, 5}, true},
		{"crosses left edge", -5, 2, 5, 2, [4]float32{0, 2, 5, 2}, true},
		{"crosses both edges", -10, 4, 20, 4, [4]float32{0, 4, 9, 4}, true},
		{"outside above", 1, -3, 8, -1, [4]float32{}, false},
		{"outside right", 12, 0, 15, 9, [4]float32{}, false},
		{"diagonal through corner", -1, -1, 10, 10, [4]float32{0, 0, 9, 9}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := clipLine(tt.x0, tt.y0, tt.x1, tt.y1, 0, 0, 9, 9)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			got := [4]float32{x0, y0, x1, y1}
			for i := range got {
				if d := got[i] - tt.want[i]; d > 1e-4 || d < -1e-4 {
					t.Errorf("Expected %v, got %v", tt.want, got)
					break
				}
			}
		})
	}
}

func TestBresenham(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		pixels         int
	}{
		{"horizontal", 0, 0, 4, 0, 5},
		{"vertical backwards", 2, 4, 2, 0, 5},
		{"diagonal", 0, 0, 3, 3, 4},
		{"steep", 0, 0, 1, 4, 5},
		{"single point", 2, 2, 2, 2, 1},
		{"partly off canvas", -3, 1, 2, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas := image.NewRGBA(image.Rect(0, 0, 5, 5))
			bresenham(canvas, tt.x0, tt.y0, tt.x1, tt.y1, WireColor)

			count := 0
			for i := 0; i < len(canvas.Pix); i += 4 {
				if canvas.Pix[i+1] == 255 {
					count++
				}
			}
			if count != tt.pixels {
				t.Errorf("Expected %d pixels, got %d", tt.pixels, count)
			}
			if (image.Point{X: tt.x1, Y: tt.y1}).In(canvas.Bounds()) && canvas.RGBAAt(tt.x1, tt.y1) != WireColor {
				t.Error("Expected the end point to be plotted")
			}
		})
	}
}
