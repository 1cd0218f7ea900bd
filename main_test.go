package main

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-spectral-raytracer/pkg/scene"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
		check       func(*options) bool
	}{
		{"defaults", nil, false, func(o *options) bool {
			return o.scene == "simple" && o.threads == -1 && o.outDir == "output" && o.verbose == -1
		}},
		{"overrides", []string{"-scene", "cube", "-threads", "4", "-mode", "raster", "-width", "64", "-no-broadphase"}, false, func(o *options) bool {
			return o.scene == "cube" && o.threads == 4 && o.mode == "raster" && o.width == 64 && o.noBroadPhase
		}},
		{"negative width", []string{"-width", "-3"}, true, nil},
		{"verbose out of range", []string{"-verbose", "5"}, true, nil},
		{"unknown flag", []string{"-samples", "10"}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseOptions(tt.args, &bytes.Buffer{})
			if tt.expectError {
				if err == nil {
					t.Error("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !tt.check(opts) {
				t.Errorf("Unexpected options %+v", opts)
			}
		})
	}
}

func TestParseOptions_Help(t *testing.T) {
	var out bytes.Buffer
	opts, err := parseOptions([]string{"-help"}, &out)
	if err != nil || !opts.help {
		t.Fatalf("Expected help to parse, got %v", err)
	}
	for _, want := range []string{"Built-in scenes:", "  cube", "  simple", "-scene"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected help to mention %q", want)
		}
	}
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
	}{
		{"simple scene", []string{"-scene", "simple"}, false},
		{"cube scene", []string{"-scene", "cube"}, false},
		{"unknown scene", []string{"-scene", "nonexistent"}, true},
		{"missing config", []string{"-scene", "scenes/nonexistent.json"}, true},
		{"bad mode", []string{"-mode", "gpu"}, true},
		{"bad shader", []string{"-shader", "toon"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseOptions(tt.args, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("parseOptions failed: %v", err)
			}
			s, err := createScene(opts)
			if tt.expectError {
				if err == nil || s != nil {
					t.Errorf("Expected an error and no scene, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(s.Objects()) == 0 || s.Camera.Sensor.HorizontalRes <= 0 {
				t.Error("Expected a populated scene")
			}
		})
	}
}

func TestCreateScene_Overrides(t *testing.T) {
	opts, err := parseOptions([]string{
		"-scene", "cube", "-threads", "0", "-mode", "raytrace", "-shader", "bvh",
		"-width", "40", "-height", "30", "-verbose", "2", "-no-broadphase",
	}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseOptions failed: %v", err)
	}
	s, err := createScene(opts)
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}

	if s.Threads != 0 || s.RenderMode != scene.RayTrace || s.ShaderMode != scene.BVH {
		t.Errorf("Unexpected render settings %d %v %v", s.Threads, s.RenderMode, s.ShaderMode)
	}
	if s.Camera.Sensor.HorizontalRes != 40 || s.Camera.Sensor.VerticalRes != 30 {
		t.Errorf("Expected 40x30, got %dx%d", s.Camera.Sensor.HorizontalRes, s.Camera.Sensor.VerticalRes)
	}
	if s.BroadPhase || s.Logging != 2 {
		t.Errorf("Expected broad phase off and logging 2, got %v %d", s.BroadPhase, s.Logging)
	}
}

func TestCreateScene_Logging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatty.json")
	config := `{
		"lights": [{"position": [0, 5, 0], "flux": {"temperature": 3000}}],
		"objects": [{"mesh": "cube", "position": [0, 0, -3]}],
		"render": {"logging": 2}
	}`
	if err := os.WriteFile(path, []byte(config), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		expected uint8
	}{
		{"scene default", nil, 2},
		{"silenced", []string{"-verbose", "0"}, 0},
		{"frame timings", []string{"-verbose", "1"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseOptions(append([]string{"-scene", path}, tt.args...), &bytes.Buffer{})
			if err != nil {
				t.Fatalf("parseOptions failed: %v", err)
			}
			s, err := createScene(opts)
			if err != nil {
				t.Fatalf("createScene failed: %v", err)
			}
			if s.Logging != tt.expected {
				t.Errorf("Expected logging %d, got %d", tt.expected, s.Logging)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	tests := []struct {
		scene    string
		expected string
	}{
		{"simple", filepath.Join("output", "simple", "render_20240305_140709.png")},
		{filepath.Join("scenes", "warm-room.json"), filepath.Join("output", "warm-room", "render_20240305_140709.png")},
	}

	for _, tt := range tests {
		t.Run(tt.scene, func(t *testing.T) {
			if got := outputPath("output", tt.scene, now); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "render.png")
	if err := savePNG(image.NewRGBA(image.Rect(0, 0, 6, 4)), path); err != nil {
		t.Fatalf("savePNG failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open output: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Failed to decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
		t.Errorf("Expected 6x4, got %v", b)
	}
}

func TestListScenes(t *testing.T) {
	var out bytes.Buffer
	if err := listScenes(&out, filepath.Join(t.TempDir(), "none")); err != nil {
		t.Fatalf("listScenes failed: %v", err)
	}
	if !strings.Contains(out.String(), "Built-in Scenes:") || !strings.Contains(out.String(), "cube") {
		t.Errorf("Expected built-in scenes to be listed, got %q", out.String())
	}
}

func TestBundledScenes(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("scenes", "*.json"))
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("Expected bundled scene configs")
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			opts, err := parseOptions([]string{"-scene", path, "-width", "40", "-height", "30", "-verbose", "0"}, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("parseOptions failed: %v", err)
			}
			s, err := createScene(opts)
			if err != nil {
				t.Fatalf("createScene failed: %v", err)
			}
			if s.PolygonCount() == 0 {
				t.Error("Expected polygons")
			}
		})
	}
}
