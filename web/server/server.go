package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/df07/go-spectral-raytracer/pkg/renderer"
	"github.com/df07/go-spectral-raytracer/pkg/scene"
)

const (
	minResolution = 16
	maxResolution = 2000
	maxThreads    = 256
	consoleBuffer = 64
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	configDir string // directory searched for JSON scene configs

	renders atomic.Int64
}

// NewServer creates a new web server
func NewServer(port int, configDir string) *Server {
	return &Server{port: port, configDir: configDir}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // builtin name or config path
	Width   int    `json:"width"`   // Image width
	Height  int    `json:"height"`  // Image height
	Mode    string `json:"mode"`    // raytrace, threaded or raster
	Shader  string `json:"shader"`  // lit, solid or bvh
	Threads int    `json:"threads"` // workers, 0 for every CPU
	Logging int    `json:"logging"` // 0 silent, 1 frame, 2 tiles
	Format  string `json:"format"`  // png or json
}

// RenderResponse is returned for format=json
type RenderResponse struct {
	ImageData string           `json:"imageData"` // Base64 encoded PNG
	Stats     Stats            `json:"stats"`
	Console   []ConsoleMessage `json:"console"`
	ElapsedMs int64            `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	Width       int   `json:"width"`
	Height      int   `json:"height"`
	Polygons    int   `json:"polygons"`
	Workers     int   `json:"workers"`
	TransformMs int64 `json:"transformMs"`
	ShadeMs     int64 `json:"shadeMs"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists every builtin and config scene, grouped
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	groups, err := scene.ListAllScenes(s.configDir)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// handleRender renders one frame and returns it as a PNG, or as JSON with
// stats and console output when format=json
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sceneObj, req, err := s.loadRequestScene(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	consoleChan := make(chan ConsoleMessage, consoleBuffer)
	logger := renderer.NewNopLogger()
	if req.Format == "json" {
		logger = NewWebLogger(renderID, consoleChan)
	}

	start := time.Now()
	img, stats := renderer.NewRaytracer(sceneObj, logger).RenderFrame()
	elapsed := time.Since(start)

	if req.Format != "json" {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		if err := png.Encode(w, img); err != nil {
			log.Printf("%s: failed to encode PNG: %v", renderID, err)
		}
		return
	}

	imageData, err := imageToBase64PNG(img)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode image: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, RenderResponse{
		ImageData: imageData,
		Stats: Stats{
			Width:       stats.Width,
			Height:      stats.Height,
			Polygons:    stats.Polygons,
			Workers:     stats.Workers,
			TransformMs: stats.Transform.Milliseconds(),
			ShadeMs:     stats.Shade.Milliseconds(),
		},
		Console:   drainConsole(consoleChan),
		ElapsedMs: elapsed.Milliseconds(),
	})
}

// loadRequestScene loads the requested scene and applies the query overrides.
// Parameters that are absent keep the scene's own settings.
func (s *Server) loadRequestScene(values url.Values) (*scene.Scene, *RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene"), Format: values.Get("format")}
	if req.Scene == "" {
		req.Scene = "simple"
	}
	if req.Format == "" {
		req.Format = "png"
	}
	if req.Format != "png" && req.Format != "json" {
		return nil, nil, fmt.Errorf("format must be png or json, got: %s", req.Format)
	}

	sceneObj, err := scene.LoadSceneWithin(req.Scene, s.configDir)
	if err != nil {
		return nil, nil, err
	}
	sensor := &sceneObj.Camera.Sensor

	if req.Width, err = parseIntParam(values, "width", sensor.HorizontalRes, minResolution, maxResolution); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(values, "height", sensor.VerticalRes, minResolution, maxResolution); err != nil {
		return nil, nil, err
	}
	if req.Threads, err = parseIntParam(values, "threads", sceneObj.Threads, 0, maxThreads); err != nil {
		return nil, nil, err
	}
	if req.Logging, err = parseIntParam(values, "logging", int(sceneObj.Logging), 0, 2); err != nil {
		return nil, nil, err
	}
	sensor.HorizontalRes, sensor.VerticalRes = req.Width, req.Height
	sceneObj.Threads = req.Threads
	sceneObj.Logging = uint8(req.Logging)

	req.Mode, req.Shader = values.Get("mode"), values.Get("shader")
	if req.Mode != "" {
		if sceneObj.RenderMode, err = scene.ParseRenderMode(req.Mode); err != nil {
			return nil, nil, err
		}
	}
	if req.Shader != "" {
		if sceneObj.ShaderMode, err = scene.ParseShaderMode(req.Shader); err != nil {
			return nil, nil, err
		}
	}

	if req.Width*req.Height > 800*600 && sceneObj.RenderMode == scene.RayTrace {
		log.Printf("Render warning: Large single-threaded render of %s may be slow", req.Scene)
	}
	return sceneObj, req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleSceneConfig returns the default settings of a scene and the request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "simple"
	}

	sceneObj, err := scene.LoadSceneWithin(sceneName, s.configDir)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	camera := sceneObj.Camera
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":         camera.Sensor.HorizontalRes,
			"height":        camera.Sensor.VerticalRes,
			"mode":          sceneObj.RenderMode.String(),
			"shader":        sceneObj.ShaderMode.String(),
			"threads":       sceneObj.Threads,
			"broadPhase":    sceneObj.BroadPhase,
			"exposure":      camera.ExposureTime,
			"focalLength":   camera.Lens.FocalLength,
			"lights":        len(sceneObj.Lights),
			"objects":       len(sceneObj.Objects()),
			"polygons":      sceneObj.PolygonCount(),
			"horizontalFov": camera.HorizontalFOV(),
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": minResolution, "max": maxResolution},
			"height":  map[string]int{"min": minResolution, "max": maxResolution},
			"threads": map[string]int{"min": 0, "max": maxThreads},
			"logging": map[string]int{"min": 0, "max": 2},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
