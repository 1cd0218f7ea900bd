package scene

import (
	"fmt"
	"sort"

	"github.com/chewxy/math32"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/lights"
	"github.com/df07/go-spectral-raytracer/pkg/material"
	"github.com/df07/go-spectral-raytracer/pkg/spectra"
)

// builtinScenes maps scene IDs to their constructors
var builtinScenes = map[string]func() *Scene{
	"simple": NewSimpleScene,
	"cube":   NewCubeScene,
}

// BuiltinSceneNames returns the IDs accepted by NewBuiltinScene, sorted
func BuiltinSceneNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuiltinScene creates the built-in scene with the given ID
func NewBuiltinScene(name string) (*Scene, error) {
	build, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	return build(), nil
}

// NewSimpleScene creates two cubes and a mirror-like sphere over a ground plane,
// lit by three blackbody point lights of different temperatures
func NewSimpleScene() *Scene {
	lens := Lens{
		Aperture:      50,
		FocalLength:   50,
		FocusDistance: 2,
	}
	sensor := Sensor{
		Width:         36,
		HorizontalRes: 420,
		VerticalRes:   320,
	}
	camera := NewCamera(core.NewVec3(0, 0, 10), lens, sensor)
	camera.ExposureTime = 20_000_000 // normalized blackbodies carry 1W in total

	s := &Scene{
		Camera:     camera,
		Background: spectra.Black(spectra.Flux),
		RenderMode: ThreadedRayTrace,
		ShaderMode: Lit,
		Threads:    60,
		Logging:    0,
		BroadPhase: true,
	}

	s.AddLight(lights.NewPointLight(core.NewVec3(-5, 3, -5), spectra.NormalizedBlackBody(1500)))
	s.AddLight(lights.NewPointLight(core.NewVec3(5, 1, -5), spectra.NormalizedBlackBody(3000)))
	s.AddLight(lights.NewPointLight(core.NewVec3(-5, 5, -12), spectra.NormalizedBlackBody(6000)))

	s.AddObject(NewObject(core.NewVec3(-3, 0, -10), geometry.UnitCube()))
	s.AddObject(NewObject(core.NewVec3(3, 0, -10), geometry.UnitCube()))

	sphere := NewObject(core.NewVec3(0, 0, -6), geometry.UVSphere(16, 32))
	sphere.Material = material.NewPBR(1, 0)
	s.AddObject(sphere)

	ground := NewObject(core.NewVec3(0, -2, 0), geometry.Plane())
	ground.Scale = core.NewVec3(20, 1, 20)
	s.AddObject(ground)

	return s
}

// NewCubeScene creates a tilted cube carrying a smaller orbiting cube, lit by a
// single warm light. It is small enough to use for quick wireframe checks.
func NewCubeScene() *Scene {
	sensor := Sensor{
		Width:         36,
		HorizontalRes: 320,
		VerticalRes:   240,
	}
	camera := NewCamera(core.NewVec3(0, 0, 6), DefaultLens(), sensor)
	camera.ExposureTime = 5_000_000

	s := &Scene{
		Camera:     camera,
		Background: spectra.Black(spectra.Flux),
		RenderMode: ThreadedRayTrace,
		ShaderMode: Lit,
		BroadPhase: true,
	}

	s.AddLight(lights.NewPointLight(core.NewVec3(4, 4, 2), spectra.NormalizedBlackBody(3500)))

	cube := NewObject(core.NewVec3(0, 0, -4), geometry.UnitCube())
	cube.Orientation = core.Orientation{Axis: core.NewVec3(1, 1, 0), Angle: math32.Pi / 6}
	cube.Material = material.NewLambert(spectra.Constant(math32.Pi, spectra.Flux))
	parent := s.AddObject(cube)

	moon := NewObject(core.NewVec3(2.5, 0, 0), geometry.UnitCube())
	moon.Scale = core.NewVec3(0.3, 0.3, 0.3)
	s.AddChild(parent, moon)

	return s
}
