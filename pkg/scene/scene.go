package scene

import (
	"fmt"
	"strings"

	"github.com/df07/go-spectral-raytracer/pkg/lights"
	"github.com/df07/go-spectral-raytracer/pkg/spectra"
	"github.com/df07/go-spectral-raytracer/pkg/transform"
)

// RenderMode selects the rendering pipeline
type RenderMode int

const (
	RayTrace         RenderMode = iota // single tile on the calling goroutine
	ThreadedRayTrace                   // one column tile per worker
	Rasterize                          // wireframe projection
)

var renderModeNames = map[RenderMode]string{
	RayTrace:         "raytrace",
	ThreadedRayTrace: "threaded",
	Rasterize:        "raster",
}

// String returns the flag name of the mode
func (m RenderMode) String() string {
	if name, ok := renderModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("RenderMode(%d)", int(m))
}

// ParseRenderMode converts a flag name back to a RenderMode
func ParseRenderMode(name string) (RenderMode, error) {
	for mode, n := range renderModeNames {
		if strings.EqualFold(n, name) {
			return mode, nil
		}
	}
	return RayTrace, fmt.Errorf("unknown render mode %q (want raytrace, threaded or raster)", name)
}

// ShaderMode selects the per-pixel shader used when ray tracing
type ShaderMode int

const (
	Lit   ShaderMode = iota // direct spectral lighting
	Solid                   // white where any triangle is hit
	BVH                     // white where any bounding sphere is hit
)

var shaderModeNames = map[ShaderMode]string{
	Lit:   "lit",
	Solid: "solid",
	BVH:   "bvh",
}

// String returns the flag name of the shader
func (m ShaderMode) String() string {
	if name, ok := shaderModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ShaderMode(%d)", int(m))
}

// ParseShaderMode converts a flag name back to a ShaderMode
func ParseShaderMode(name string) (ShaderMode, error) {
	for mode, n := range shaderModeNames {
		if strings.EqualFold(n, name) {
			return mode, nil
		}
	}
	return Lit, fmt.Errorf("unknown shader mode %q (want lit, solid or bvh)", name)
}

// Scene contains all the elements needed for rendering.
// Objects live in a flat arena and are addressed by ObjectID.
type Scene struct {
	Camera     Camera
	Lights     []lights.Light
	Background spectra.Spectra
	RenderMode RenderMode
	ShaderMode ShaderMode
	Threads    int   // workers for ThreadedRayTrace, <= 0 uses every CPU
	Logging    uint8 // 0 silent, 1 frame timings, 2 tile timings
	BroadPhase bool  // cull objects by bounding sphere before triangle tests

	objects []Object
}

// NewScene creates an empty scene with the default camera and a black background
func NewScene() *Scene {
	return &Scene{
		Camera:     DefaultCamera(),
		Background: spectra.Black(spectra.Flux),
		RenderMode: ThreadedRayTrace,
		ShaderMode: Lit,
		BroadPhase: true,
	}
}

// AddObject adds a root object and returns its handle
func (s *Scene) AddObject(o Object) ObjectID {
	o.parent = 0
	s.objects = append(s.objects, o)
	return ObjectID(len(s.objects) - 1)
}

// AddChild adds o beneath parent and returns its handle.
// It panics if parent is not a handle from this scene.
func (s *Scene) AddChild(parent ObjectID, o Object) ObjectID {
	p := s.Object(parent)
	if p == nil {
		panic(fmt.Sprintf("scene: parent object %d does not exist", parent))
	}
	id := ObjectID(len(s.objects))
	p.Children = append(p.Children, id)

	o.parent = parent + 1
	s.objects = append(s.objects, o)
	return id
}

// AddLight appends a light to the scene
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// Object returns the object for id, or nil when id is out of range.
// The pointer is invalidated by the next AddObject or AddChild.
func (s *Scene) Object(id ObjectID) *Object {
	if id < 0 || int(id) >= len(s.objects) {
		return nil
	}
	return &s.objects[id]
}

// Objects returns the object arena indexed by ObjectID
func (s *Scene) Objects() []Object {
	return s.objects
}

// PolygonCount returns the number of triangles in the scene
func (s *Scene) PolygonCount() int {
	count := 0
	for i := range s.objects {
		count += s.objects[i].PolygonCount()
	}
	return count
}

// ObjectTransforms returns the chain placing id in the world: its own local
// transforms followed by those of each ancestor up to the root
func (s *Scene) ObjectTransforms(id ObjectID) []transform.Transform {
	var chain []transform.Transform
	for o := s.Object(id); o != nil; {
		chain = append(chain, o.LocalTransforms()...)
		parent, ok := o.Parent()
		if !ok {
			break
		}
		o = s.Object(parent)
	}
	return chain
}

// ApplyTransforms rebuilds every mesh's output vertices for this frame.
//
// Each mesh log is cleared and refilled with the object's world chain followed
// by view, then compiled and applied. Bounding spheres are always computed in
// world space, whatever view is.
func (s *Scene) ApplyTransforms(view ...transform.Transform) {
	for i := range s.objects {
		chain := s.ObjectTransforms(ObjectID(i))
		o := &s.objects[i]
		for _, mesh := range o.Meshes {
			mesh.ClearTransforms()
			for _, t := range chain {
				mesh.AddTransform(t)
			}
			for _, t := range view {
				mesh.AddTransform(t)
			}
			mesh.ApplyTransformations()
		}
		o.computeBounds(transform.Compile(chain))
	}
}
