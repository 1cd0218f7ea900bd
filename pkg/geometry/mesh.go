package geometry

import (
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/transform"
)

// Vertex is a mesh-local point with texture coordinates and a material slot
type Vertex struct {
	Position core.Vec3
	UV       [2]float32
	Material int
}

// NewVertex creates a vertex at the given position with zero UV and material slot
func NewVertex(x, y, z float32) Vertex {
	return Vertex{Position: core.NewVec3(x, y, z)}
}

// ProcessVertices returns a new slice with t applied to every vertex position.
// UV and material slot are carried through unchanged.
func ProcessVertices(t transform.Transform, vertices []Vertex) []Vertex {
	out := make([]Vertex, len(vertices))
	for i, v := range vertices {
		out[i] = v
		out[i].Position = t.Apply(v.Position)
	}
	return out
}

// Mesh is a triangulated surface in local space.
//
// Vertices and Polygons are never modified by the renderer. Each frame the
// caller appends transforms to the pending log and then calls
// ApplyTransformations, which rewrites OutputVertices from the local
// vertices.
type Mesh struct {
	Vertices       []Vertex
	Polygons       [][3]int // 0-based indices into Vertices
	OutputVertices []Vertex

	transforms []transform.Transform
}

// NewMesh creates a mesh whose output vertices start out equal to its local vertices
func NewMesh(vertices []Vertex, polygons [][3]int) *Mesh {
	output := make([]Vertex, len(vertices))
	copy(output, vertices)
	return &Mesh{
		Vertices:       vertices,
		Polygons:       polygons,
		OutputVertices: output,
	}
}

// AddTransform appends t to the pending transform log
func (m *Mesh) AddTransform(t transform.Transform) {
	m.transforms = append(m.transforms, t)
}

// Transforms returns the pending transform log in application order
func (m *Mesh) Transforms() []transform.Transform {
	return m.transforms
}

// ClearTransforms empties the pending transform log
func (m *Mesh) ClearTransforms() {
	m.transforms = m.transforms[:0]
}

// ApplyTransformations compiles the pending log and recomputes the output vertices.
// Calling it again without changing the log produces the same output.
func (m *Mesh) ApplyTransformations() {
	m.OutputVertices = ProcessVertices(transform.Compile(m.transforms), m.Vertices)
}

// PolygonCount returns the number of triangles in the mesh
func (m *Mesh) PolygonCount() int {
	return len(m.Polygons)
}

// Polygon builds the i-th triangle from the output vertices
func (m *Mesh) Polygon(i int) Polygon {
	p := m.Polygons[i]
	return Polygon{
		A: m.OutputVertices[p[0]],
		B: m.OutputVertices[p[1]],
		C: m.OutputVertices[p[2]],
	}
}
