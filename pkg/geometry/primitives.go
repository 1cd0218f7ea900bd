package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// UnitCube returns a cube spanning [-1, 1] on every axis with outward-facing triangles
func UnitCube() *Mesh {
	vertices := []Vertex{
		NewVertex(-1, -1, -1),
		NewVertex(1, -1, -1),
		NewVertex(-1, 1, -1),
		NewVertex(1, 1, -1),
		NewVertex(-1, -1, 1),
		NewVertex(1, -1, 1),
		NewVertex(-1, 1, 1),
		NewVertex(1, 1, 1),
	}
	polygons := [][3]int{
		{0, 2, 1}, {1, 2, 3}, // back
		{4, 5, 6}, {6, 5, 7}, // front
		{0, 1, 4}, {4, 1, 5}, // bottom
		{2, 6, 3}, {3, 6, 7}, // top
		{0, 4, 2}, {2, 4, 6}, // left
		{1, 3, 5}, {5, 3, 7}, // right
	}
	return NewMesh(vertices, polygons)
}

// Plane returns a 2x2 square in the y=0 plane facing +y
func Plane() *Mesh {
	vertices := []Vertex{
		NewVertex(-1, 0, -1),
		NewVertex(1, 0, -1),
		NewVertex(-1, 0, 1),
		NewVertex(1, 0, 1),
	}
	vertices[1].UV = [2]float32{1, 0}
	vertices[2].UV = [2]float32{0, 1}
	vertices[3].UV = [2]float32{1, 1}

	return NewMesh(vertices, [][3]int{{0, 2, 1}, {1, 2, 3}})
}

// SampleTriangle returns a single triangle in the z=0 plane facing +z
func SampleTriangle() *Mesh {
	return NewMesh([]Vertex{
		NewVertex(0, 1, 0),
		NewVertex(-1, -1, 0),
		NewVertex(1, -1, 0),
	}, [][3]int{{0, 1, 2}})
}

// UVSphere returns a unit sphere tessellated into stacks bands of latitude and
// slices bands of longitude. The triangles that collapse at the poles are omitted.
func UVSphere(stacks, slices int) *Mesh {
	if stacks < 2 {
		stacks = 2
	}
	if slices < 3 {
		slices = 3
	}

	vertices := make([]Vertex, 0, (stacks+1)*(slices+1))
	for i := 0; i <= stacks; i++ {
		theta := math32.Pi * float32(i) / float32(stacks)
		sinTheta, cosTheta := math32.Sin(theta), math32.Cos(theta)
		for j := 0; j <= slices; j++ {
			phi := 2 * math32.Pi * float32(j) / float32(slices)
			vertices = append(vertices, Vertex{
				Position: core.NewVec3(sinTheta*math32.Cos(phi), cosTheta, sinTheta*math32.Sin(phi)),
				UV:       [2]float32{float32(j) / float32(slices), float32(i) / float32(stacks)},
			})
		}
	}

	index := func(i, j int) int { return i*(slices+1) + j }

	var polygons [][3]int
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			p00, p01 := index(i, j), index(i, j+1)
			p10, p11 := index(i+1, j), index(i+1, j+1)
			if i != stacks-1 {
				polygons = append(polygons, [3]int{p00, p11, p10})
			}
			if i != 0 {
				polygons = append(polygons, [3]int{p00, p01, p11})
			}
		}
	}

	return NewMesh(vertices, polygons)
}
