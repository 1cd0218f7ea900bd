package scene

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/geometry"
	"github.com/df07/go-spectral-raytracer/pkg/lights"
	"github.com/df07/go-spectral-raytracer/pkg/spectra"
	"github.com/df07/go-spectral-raytracer/pkg/transform"
)

func TestScene_Arena(t *testing.T) {
	s := NewScene()

	root := s.AddObject(NewObject(core.NewVec3(1, 0, 0), geometry.UnitCube()))
	child := s.AddChild(root, NewObject(core.NewVec3(0, 2, 0), geometry.UnitCube()))
	grandchild := s.AddChild(child, NewObject(core.NewVec3(0, 0, 3), geometry.UnitCube()))

	if len(s.Objects()) != 3 {
		t.Fatalf("Expected 3 objects, got %d", len(s.Objects()))
	}
	if _, ok := s.Object(root).Parent(); ok {
		t.Error("Expected root to have no parent")
	}
	if p, ok := s.Object(grandchild).Parent(); !ok || p != child {
		t.Errorf("Expected grandchild parent %d, got %d (ok=%v)", child, p, ok)
	}
	if children := s.Object(root).Children; len(children) != 1 || children[0] != child {
		t.Errorf("Expected root children [%d], got %v", child, children)
	}
	if s.Object(ObjectID(99)) != nil || s.Object(ObjectID(-1)) != nil {
		t.Error("Expected nil for out of range handles")
	}
	if s.PolygonCount() != 36 {
		t.Errorf("Expected 36 polygons, got %d", s.PolygonCount())
	}
}

func TestScene_AddChildPanicsOnMissingParent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected AddChild with an unknown parent to panic")
		}
	}()
	s := NewScene()
	s.AddChild(ObjectID(3), DefaultObject())
}

func TestScene_ObjectTransformsIncludeAncestors(t *testing.T) {
	s := NewScene()
	root := DefaultObject()
	root.Position = core.NewVec3(10, 0, 0)
	root.Scale = core.NewVec3(2, 2, 2)
	rootID := s.AddObject(root)

	child := DefaultObject()
	child.Position = core.NewVec3(0, 1, 0)
	childID := s.AddChild(rootID, child)

	chain := s.ObjectTransforms(childID)
	if len(chain) != 6 {
		t.Fatalf("Expected 6 transforms, got %d", len(chain))
	}

	// Child origin: moved up by one, then scaled by the parent to 2, then moved by the parent
	got := transform.Compile(chain).Apply(core.Origin)
	if !got.ApproxEqual(core.NewVec3(10, 2, 0), 1e-5) {
		t.Errorf("Expected child origin at (10, 2, 0), got %v", got)
	}
}

func TestScene_ApplyTransforms(t *testing.T) {
	s := NewScene()
	cube := NewObject(core.NewVec3(0, 0, -10), geometry.UnitCube())
	cube.Scale = core.NewVec3(2, 2, 2)
	cube.Orientation = core.Orientation{Axis: core.NewVec3(0, 1, 0), Angle: math32.Pi / 4}
	id := s.AddObject(cube)

	s.ApplyTransforms()

	obj := s.Object(id)
	bounds := obj.Bounds()
	if !bounds.Center.ApproxEqual(core.NewVec3(0, 0, -10), 1e-5) {
		t.Errorf("Expected bounds centre (0, 0, -10), got %v", bounds.Center)
	}
	// Corners of a unit cube scaled by 2 sit sqrt(3) * 2 from the centre
	if math32.Abs(bounds.Radius-2*math32.Sqrt(3)) > 1e-4 {
		t.Errorf("Expected radius %v, got %v", 2*math32.Sqrt(3), bounds.Radius)
	}

	mesh := obj.Meshes[0]
	for i, v := range mesh.OutputVertices {
		if d := v.Position.Subtract(bounds.Center).Length(); d > bounds.Radius+1e-4 {
			t.Errorf("Vertex %d at distance %v lies outside radius %v", i, d, bounds.Radius)
		}
	}
	if mesh.Vertices[0].Position != geometry.UnitCube().Vertices[0].Position {
		t.Error("Expected local vertices to be left untouched")
	}

	// Applying twice yields the same output
	first := append([]geometry.Vertex(nil), mesh.OutputVertices...)
	s.ApplyTransforms()
	for i := range first {
		if !first[i].Position.ApproxEqual(mesh.OutputVertices[i].Position, 1e-6) {
			t.Fatalf("Vertex %d changed between frames: %v vs %v", i, first[i].Position, mesh.OutputVertices[i].Position)
		}
	}

	// View transforms move the output vertices but not the world bounds
	s.ApplyTransforms(transform.Translation(core.NewVec3(0, 0, 10)))
	if got := mesh.OutputVertices[0].Position.Subtract(first[0].Position); !got.ApproxEqual(core.NewVec3(0, 0, 10), 1e-5) {
		t.Errorf("Expected view offset (0, 0, 10), got %v", got)
	}
	if !obj.Bounds().Center.ApproxEqual(core.NewVec3(0, 0, -10), 1e-5) {
		t.Errorf("Expected world bounds to ignore the view, got %v", obj.Bounds().Center)
	}
}

func TestObject_RayIntercept(t *testing.T) {
	s := NewScene()
	id := s.AddObject(NewObject(core.NewVec3(0, 0, -5), geometry.UnitCube()))
	s.ApplyTransforms()
	obj := s.Object(id)

	tests := []struct {
		name     string
		ray      core.Ray
		expected bool
	}{
		{"straight at it", core.NewRay(core.Origin, core.NewVec3(0, 0, -1)), true},
		{"away from it", core.NewRay(core.Origin, core.NewVec3(0, 0, 1)), false},
		{"passes beside", core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(0, 0, -1)), false},
		{"grazes the corner", core.NewRay(core.NewVec3(1.5, 0, 0), core.NewVec3(0, 0, -1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := obj.RayIntercept(tt.ray); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestRenderAndShaderModes(t *testing.T) {
	for _, mode := range []RenderMode{RayTrace, ThreadedRayTrace, Rasterize} {
		parsed, err := ParseRenderMode(mode.String())
		if err != nil || parsed != mode {
			t.Errorf("Expected %v to round trip, got %v (%v)", mode, parsed, err)
		}
	}
	for _, mode := range []ShaderMode{Lit, Solid, BVH} {
		parsed, err := ParseShaderMode(mode.String())
		if err != nil || parsed != mode {
			t.Errorf("Expected %v to round trip, got %v (%v)", mode, parsed, err)
		}
	}
	if _, err := ParseRenderMode("wireframe"); err == nil {
		t.Error("Expected error for unknown render mode")
	}
	if _, err := ParseShaderMode("phong"); err == nil {
		t.Error("Expected error for unknown shader mode")
	}
	if got := ShaderMode(42).String(); got != "ShaderMode(42)" {
		t.Errorf("Expected ShaderMode(42), got %q", got)
	}
}

func TestNewScene_Defaults(t *testing.T) {
	s := NewScene()
	s.AddLight(lights.NewPointLight(core.Origin, spectra.NormalizedBlackBody(3000)))

	if !s.Background.IsBlack() {
		t.Error("Expected black background")
	}
	if !s.BroadPhase {
		t.Error("Expected broad phase culling on by default")
	}
	if s.RenderMode != ThreadedRayTrace || s.ShaderMode != Lit {
		t.Errorf("Expected threaded lit rendering, got %v %v", s.RenderMode, s.ShaderMode)
	}
	if len(s.Lights) != 1 {
		t.Errorf("Expected 1 light, got %d", len(s.Lights))
	}
}
