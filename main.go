package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-spectral-raytracer/pkg/renderer"
	"github.com/df07/go-spectral-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	scene        string
	threads      int
	mode         string
	shader       string
	width        int
	height       int
	verbose      int
	noBroadPhase bool
	outDir       string
	scenesDir    string
	list         bool
	help         bool
}

func parseOptions(args []string, output io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.scene, "scene", "simple", "Scene: a built-in name or a path to a .json scene config")
	fs.IntVar(&opts.threads, "threads", -1, "Worker threads (0 = all CPUs, -1 = scene default)")
	fs.StringVar(&opts.mode, "mode", "", "Render mode: 'raytrace', 'threaded' or 'raster'")
	fs.StringVar(&opts.shader, "shader", "", "Shader: 'lit', 'solid' or 'bvh'")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = scene default)")
	fs.IntVar(&opts.verbose, "verbose", -1, "Logging: 0 silent, 1 frame timings, 2 tile timings, -1 scene default")
	fs.BoolVar(&opts.noBroadPhase, "no-broadphase", false, "Disable bounding sphere culling")
	fs.StringVar(&opts.outDir, "out", "output", "Output directory")
	fs.StringVar(&opts.scenesDir, "scenes", "scenes", "Directory searched by -list for scene configs")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.width < 0 || opts.height < 0 {
		return nil, fmt.Errorf("width and height must not be negative")
	}
	if opts.verbose < -1 || opts.verbose > 2 {
		return nil, fmt.Errorf("verbose must be -1, 0, 1 or 2, got %d", opts.verbose)
	}
	if opts.help {
		printHelp(fs, output)
	}
	return opts, nil
}

func printHelp(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Spectral Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Built-in scenes:")
	for _, name := range scene.BuiltinSceneNames() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to <out>/<scene>/render_<timestamp>.png")
}

// createScene loads the named scene and applies the command line overrides
func createScene(opts *options) (*scene.Scene, error) {
	s, err := scene.LoadScene(opts.scene)
	if err != nil {
		return nil, err
	}

	if opts.threads >= 0 {
		s.Threads = opts.threads
	}
	if opts.mode != "" {
		if s.RenderMode, err = scene.ParseRenderMode(opts.mode); err != nil {
			return nil, err
		}
	}
	if opts.shader != "" {
		if s.ShaderMode, err = scene.ParseShaderMode(opts.shader); err != nil {
			return nil, err
		}
	}
	if opts.width > 0 {
		s.Camera.Sensor.HorizontalRes = opts.width
	}
	if opts.height > 0 {
		s.Camera.Sensor.VerticalRes = opts.height
	}
	if opts.noBroadPhase {
		s.BroadPhase = false
	}
	if opts.verbose >= 0 {
		s.Logging = uint8(opts.verbose)
	}
	return s, nil
}

// outputPath returns <outDir>/<scene>/render_<timestamp>.png.
// Config paths are reduced to their file name without extension.
func outputPath(outDir, sceneName string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(sceneName), filepath.Ext(sceneName))
	return filepath.Join(outDir, name, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// savePNG writes img to path, creating parent directories
func savePNG(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error encoding PNG: %w", err)
	}
	return nil
}

func listScenes(w io.Writer, dir string) error {
	groups, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	for _, group := range groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-24s %s\n", info.ID, info.Description)
		}
	}
	return nil
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return
		}
		log.Fatalf("Invalid arguments: %v", err)
	}
	if opts.help {
		return
	}
	if opts.list {
		if err := listScenes(os.Stdout, opts.scenesDir); err != nil {
			log.Fatalf("Error listing scenes: %v", err)
		}
		return
	}

	fmt.Println("Starting Spectral Raytracer...")
	s, err := createScene(opts)
	if err != nil {
		log.Fatalf("Error loading scene: %v", err)
	}
	fmt.Printf("Rendering %s at %dx%d (%s, %s)...\n", opts.scene,
		s.Camera.Sensor.HorizontalRes, s.Camera.Sensor.VerticalRes, s.RenderMode, s.ShaderMode)

	startTime := time.Now()
	img := renderer.Render(s, renderer.NewDefaultLogger())
	fmt.Printf("Render completed in %v\n", time.Since(startTime))

	path := outputPath(opts.outDir, opts.scene, startTime)
	if err := savePNG(img, path); err != nil {
		log.Fatalf("Error saving render: %v", err)
	}
	fmt.Printf("Render saved as %s\n", path)
}
