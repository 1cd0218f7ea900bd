package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/lights"
	"github.com/df07/go-spectral-raytracer/pkg/loaders"
	"github.com/df07/go-spectral-raytracer/pkg/material"
	"github.com/df07/go-spectral-raytracer/pkg/spectra"
)

// Config is a scene description read from JSON.
// Zero values fall back to the defaults of the matching constructor.
type Config struct {
	Name        string       `json:"name,omitempty"`
	Description string       `json:"description,omitempty"`
	Group       string       `json:"group,omitempty"`
	Camera      CameraCfg    `json:"camera"`
	Lights      []LightCfg   `json:"lights"`
	Objects     []ObjectCfg  `json:"objects"`
	Background  *SpectrumCfg `json:"background,omitempty"`
	Render      RenderCfg    `json:"render"`

	dir string // base for relative mesh paths
}

type CameraCfg struct {
	Position      [3]float32 `json:"position"`
	FocalLength   float32    `json:"focalLength,omitempty"`   // mm
	Aperture      float32    `json:"aperture,omitempty"`      // f-number
	FocusDistance float32    `json:"focusDistance,omitempty"` // m
	SensorWidth   float32    `json:"sensorWidth,omitempty"`   // mm
	Width         int        `json:"width,omitempty"`         // pixels
	Height        int        `json:"height,omitempty"`        // pixels
	Exposure      float32    `json:"exposure,omitempty"`      // seconds
	Near          float32    `json:"near,omitempty"`
	Far           float32    `json:"far,omitempty"`
}

// SpectrumCfg describes a spectrum as a blackbody, a single wavelength or a constant.
// Temperature wins over Wavelength, which wins over a flat Value.
type SpectrumCfg struct {
	Temperature float32 `json:"temperature,omitempty"` // K
	Normalized  bool    `json:"normalized,omitempty"`  // scale a blackbody to 1W in total
	Wavelength  float32 `json:"wavelength,omitempty"`  // nm, monochromatic
	Value       float32 `json:"value,omitempty"`
	Scale       float32 `json:"scale,omitempty"` // defaults 1
	Unit        string  `json:"unit,omitempty"`  // flux, intensity, irradiance, radiance
}

type LightCfg struct {
	Position [3]float32  `json:"position"`
	Flux     SpectrumCfg `json:"flux"`
}

type MaterialCfg struct {
	Kind      string       `json:"kind,omitempty"` // pbr or lambert
	Metallic  float32      `json:"metallic,omitempty"`
	Roughness float32      `json:"roughness,omitempty"`
	Albedo    *SpectrumCfg `json:"albedo,omitempty"`
}

type ObjectCfg struct {
	Mesh     string      `json:"mesh,omitempty"` // cube, sphere, plane or triangle
	File     string      `json:"file,omitempty"` // .obj or .ply, relative to the config
	Position [3]float32  `json:"position"`
	Axis     [3]float32  `json:"axis,omitempty"`
	AngleDeg float32     `json:"angleDeg,omitempty"`
	Scale    [3]float32  `json:"scale,omitempty"` // defaults 1 on each axis
	Material MaterialCfg `json:"material"`
	Children []ObjectCfg `json:"children,omitempty"`
}

type RenderCfg struct {
	Mode       string `json:"mode,omitempty"`   // raytrace, threaded or raster
	Shader     string `json:"shader,omitempty"` // lit, solid or bvh
	Threads    int    `json:"threads,omitempty"`
	Logging    uint8  `json:"logging,omitempty"`
	BroadPhase *bool  `json:"broadPhase,omitempty"` // defaults true
}

// LoadConfig reads and validates a JSON scene config.
// Mesh files are resolved relative to the config's directory.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene config: %w", err)
	}
	defer file.Close()

	cfg, err := ParseConfig(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	if cfg.Name == "" {
		cfg.Name = titleCase(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
	return cfg, nil
}

// ParseConfig decodes a JSON scene config and checks it has something to render
func ParseConfig(r io.Reader) (*Config, error) {
	var cfg Config
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode scene config: %w", err)
	}

	if len(cfg.Lights) == 0 && (cfg.Render.Shader == "" || cfg.Render.Shader == "lit") {
		return nil, fmt.Errorf("config has no lights")
	}
	if len(cfg.Objects) == 0 {
		return nil, fmt.Errorf("config has no objects")
	}
	if cfg.Camera.Width < 0 || cfg.Camera.Height < 0 {
		return nil, fmt.Errorf("resolution must be positive, got %dx%d", cfg.Camera.Width, cfg.Camera.Height)
	}
	return &cfg, nil
}

// Build constructs the runtime scene
func (cfg *Config) Build() (*Scene, error) {
	s := &Scene{
		Camera:     cfg.Camera.Build(),
		Background: spectra.Black(spectra.Flux),
		Threads:    cfg.Render.Threads,
		Logging:    cfg.Render.Logging,
		BroadPhase: cfg.Render.BroadPhase == nil || *cfg.Render.BroadPhase,
		RenderMode: ThreadedRayTrace,
		ShaderMode: Lit,
	}

	var err error
	if cfg.Render.Mode != "" {
		if s.RenderMode, err = ParseRenderMode(cfg.Render.Mode); err != nil {
			return nil, err
		}
	}
	if cfg.Render.Shader != "" {
		if s.ShaderMode, err = ParseShaderMode(cfg.Render.Shader); err != nil {
			return nil, err
		}
	}
	if cfg.Background != nil {
		if s.Background, err = cfg.Background.Build(); err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
	}

	for i, lc := range cfg.Lights {
		light, err := lc.Build()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(light)
	}

	for i, oc := range cfg.Objects {
		if err := cfg.addObject(s, oc, nil); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
	}
	return s, nil
}

// addObject builds oc and its children, attaching it to parent when one is given
func (cfg *Config) addObject(s *Scene, oc ObjectCfg, parent *ObjectID) error {
	obj, err := oc.Build(cfg.dir)
	if err != nil {
		return err
	}

	var id ObjectID
	if parent == nil {
		id = s.AddObject(obj)
	} else {
		id = s.AddChild(*parent, obj)
	}

	for i, child := range oc.Children {
		if err := cfg.addObject(s, child, &id); err != nil {
			return fmt.Errorf("child %d: %w", i, err)
		}
	}
	return nil
}

// Build returns the camera, filling unset fields from the defaults
func (cc CameraCfg) Build() Camera {
	lens := DefaultLens()
	if cc.FocalLength > 0 {
		lens.FocalLength = cc.FocalLength
	}
	if cc.Aperture > 0 {
		lens.Aperture = cc.Aperture
	}
	if cc.FocusDistance > 0 {
		lens.FocusDistance = cc.FocusDistance
	}

	sensor := DefaultSensor()
	if cc.SensorWidth > 0 {
		sensor.Width = cc.SensorWidth
	}
	if cc.Width > 0 {
		sensor.HorizontalRes = cc.Width
	}
	if cc.Height > 0 {
		sensor.VerticalRes = cc.Height
	}

	camera := NewCamera(vec(cc.Position), lens, sensor)
	if cc.Exposure > 0 {
		camera.ExposureTime = cc.Exposure
	}
	if cc.Near > 0 {
		camera.Near = cc.Near
	}
	if cc.Far > 0 {
		camera.Far = cc.Far
	}
	return camera
}

// Build validates and constructs the spectrum
func (sc SpectrumCfg) Build() (spectra.Spectra, error) {
	unit, err := spectra.ParseUnit(sc.Unit)
	if err != nil {
		return spectra.Spectra{}, err
	}
	scale := sc.Scale
	if scale == 0 {
		scale = 1
	}

	var s spectra.Spectra
	switch {
	case sc.Temperature < 0:
		return spectra.Spectra{}, fmt.Errorf("temperature must be > 0, got %v", sc.Temperature)
	case sc.Temperature > 0 && sc.Normalized:
		s = spectra.NormalizedBlackBody(sc.Temperature)
		s.Unit = unit
	case sc.Temperature > 0:
		s = spectra.BlackBody(sc.Temperature, unit)
	case sc.Wavelength != 0:
		if sc.Wavelength < spectra.MinWavelength || sc.Wavelength >= spectra.MaxWavelength {
			return spectra.Spectra{}, fmt.Errorf("wavelength must be in [%v, %v) nm, got %v",
				spectra.MinWavelength, spectra.MaxWavelength, sc.Wavelength)
		}
		s = spectra.Monochromatic(sc.Wavelength, sc.Value, unit)
	default:
		s = spectra.Constant(sc.Value, unit)
	}
	return s.Scale(scale), nil
}

// Build constructs a point light
func (lc LightCfg) Build() (lights.Light, error) {
	flux, err := lc.Flux.Build()
	if err != nil {
		return nil, err
	}
	return lights.NewPointLight(vec(lc.Position), flux), nil
}

// Build returns the material, defaulting to a white PBR surface
func (mc MaterialCfg) Build() (material.Material, error) {
	kind := material.PBR
	if mc.Kind != "" {
		var err error
		if kind, err = material.ParseKind(mc.Kind); err != nil {
			return material.Material{}, err
		}
	}

	albedo := spectra.Constant(1, spectra.Flux)
	if mc.Albedo != nil {
		var err error
		if albedo, err = mc.Albedo.Build(); err != nil {
			return material.Material{}, fmt.Errorf("albedo: %w", err)
		}
	}

	if kind == material.Lambert {
		return material.NewLambert(albedo), nil
	}
	if mc.Metallic < 0 || mc.Metallic > 1 || mc.Roughness < 0 || mc.Roughness > 1 {
		return material.Material{}, fmt.Errorf("metallic and roughness must be in [0, 1], got %v and %v", mc.Metallic, mc.Roughness)
	}
	return material.NewPBRWithAlbedo(mc.Metallic, mc.Roughness, albedo), nil
}

// Build constructs the object without its children. Relative mesh files are
// resolved against dir.
func (oc ObjectCfg) Build(dir string) (Object, error) {
	mesh, err := oc.mesh(dir)
	if err != nil {
		return Object{}, err
	}

	obj := NewObject(vec(oc.Position), mesh)

	sc := oc.Scale
	if sc[0] == 0 {
		sc[0] = 1
	}
	if sc[1] == 0 {
		sc[1] = 1
	}
	if sc[2] == 0 {
		sc[2] = 1
	}
	if sc[0] < 0 || sc[1] < 0 || sc[2] < 0 {
		return Object{}, fmt.Errorf("scale must be > 0 on all axes, got %v", oc.Scale)
	}
	obj.Scale = vec(sc)

	if oc.AngleDeg != 0 {
		axis := vec(oc.Axis)
		if axis.IsOrigin() {
			return Object{}, fmt.Errorf("rotation of %v degrees needs an axis", oc.AngleDeg)
		}
		obj.Orientation = core.Orientation{Axis: axis, Angle: mgl32.DegToRad(oc.AngleDeg)}
	}

	if obj.Material, err = oc.Material.Build(); err != nil {
		return Object{}, fmt.Errorf("material: %w", err)
	}
	return obj, nil
}

// MeshFiles lists every mesh file the config and its children reference,
// resolved the same way Build resolves them
func (cfg *Config) MeshFiles() []string {
	var files []string
	var walk func(objects []ObjectCfg)
	walk = func(objects []ObjectCfg) {
		for _, oc := range objects {
			if oc.File != "" {
				files = append(files, meshPath(cfg.dir, oc.File))
			}
			walk(oc.Children)
		}
	}
	walk(cfg.Objects)
	return files
}

func meshPath(dir, file string) string {
	if !filepath.IsAbs(file) && dir != "" {
		return filepath.Join(dir, file)
	}
	return file
}

// mesh returns a fresh mesh for the object so no two objects share vertices
func (oc ObjectCfg) mesh(dir string) (*geometry.Mesh, error) {
	if oc.File != "" {
		if oc.Mesh != "" {
			return nil, fmt.Errorf("object sets both mesh %q and file %q", oc.Mesh, oc.File)
		}
		return loaders.LoadMesh(meshPath(dir, oc.File))
	}

	switch strings.ToLower(oc.Mesh) {
	case "cube":
		return geometry.UnitCube(), nil
	case "sphere":
		return geometry.UVSphere(16, 32), nil
	case "plane":
		return geometry.Plane(), nil
	case "triangle":
		return geometry.SampleTriangle(), nil
	case "":
		return nil, fmt.Errorf("object needs a mesh or a file")
	default:
		return nil, fmt.Errorf("unknown mesh %q (want cube, sphere, plane or triangle)", oc.Mesh)
	}
}

func vec(a [3]float32) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}
