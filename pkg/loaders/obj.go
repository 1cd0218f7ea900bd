package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/udhos/gwob"

	"github.com/df07/go-spectral-raytracer/pkg/geometry"
)

// LoadMesh loads a mesh file, choosing the parser by extension
func LoadMesh(filename string) (*geometry.Mesh, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".obj":
		return LoadOBJ(filename)
	case ".ply":
		return LoadPLY(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", filename)
	}
}

// LoadOBJ loads a Wavefront OBJ file into a mesh
func LoadOBJ(filename string) (*geometry.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	mesh, err := parseOBJ(filename, file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mesh, nil
}

// ParseOBJ reads positions, texture coordinates, faces and usemtl groups.
// Normals and material libraries are ignored.
//
// Each distinct usemtl name gets the next material slot, starting at 0 for
// faces before the first usemtl. A vertex shared between material groups is
// duplicated so each copy carries one slot.
func ParseOBJ(r io.Reader) (*geometry.Mesh, error) {
	return parseOBJ("obj", r)
}

func parseOBJ(name string, r io.Reader) (*geometry.Mesh, error) {
	options := gwob.ObjParserOptions{IgnoreNormals: true, Logger: func(string) {}}
	obj, err := gwob.NewObjFromReader(name, bufio.NewReader(r), &options)
	if err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}
	return buildOBJMesh(obj)
}

// buildOBJMesh copies gwob's interleaved coordinates into mesh vertices
func buildOBJMesh(obj *gwob.Obj) (*geometry.Mesh, error) {
	if len(obj.Indices) == 0 {
		return nil, fmt.Errorf("OBJ has no faces")
	}
	if obj.StrideSize <= 0 || len(obj.Indices)%3 != 0 {
		return nil, fmt.Errorf("malformed OBJ data: stride %d, %d indices", obj.StrideSize, len(obj.Indices))
	}

	stride := obj.StrideSize / 4
	position := obj.StrideOffsetPosition / 4
	texture := obj.StrideOffsetTexture / 4
	count := len(obj.Coord) / stride

	type vertexKey struct {
		index    int
		material int
	}
	indexOf := make(map[vertexKey]int)
	var vertices []geometry.Vertex

	lookup := func(index, material int) (int, error) {
		if index < 0 || index >= count {
			return 0, fmt.Errorf("vertex index %d out of range (have %d)", index, count)
		}
		key := vertexKey{index, material}
		if i, ok := indexOf[key]; ok {
			return i, nil
		}
		base := index * stride
		c := obj.Coord[base+position : base+position+3]
		v := geometry.NewVertex(c[0], c[1], c[2])
		if obj.TextCoordFound {
			v.UV = [2]float32{obj.Coord[base+texture], obj.Coord[base+texture+1]}
		}
		v.Material = material
		vertices = append(vertices, v)
		indexOf[key] = len(vertices) - 1
		return len(vertices) - 1, nil
	}

	groups := obj.Groups
	if len(groups) == 0 {
		groups = []*gwob.Group{{IndexCount: len(obj.Indices)}}
	}

	slots := make(map[string]int)
	var polygons [][3]int
	for _, g := range groups {
		material := 0
		if g.Usemtl != "" {
			slot, ok := slots[g.Usemtl]
			if !ok {
				slot = len(slots)
				slots[g.Usemtl] = slot
			}
			material = slot
		}

		end := g.IndexBegin + g.IndexCount
		if g.IndexBegin < 0 || end > len(obj.Indices) {
			return nil, fmt.Errorf("group %q indices [%d, %d) out of range", g.Name, g.IndexBegin, end)
		}
		for i := g.IndexBegin; i+2 < end; i += 3 {
			var tri [3]int
			for k := 0; k < 3; k++ {
				var err error
				if tri[k], err = lookup(obj.Indices[i+k], material); err != nil {
					return nil, err
				}
			}
			polygons = append(polygons, tri)
		}
	}
	if len(polygons) == 0 {
		return nil, fmt.Errorf("OBJ has no faces")
	}
	return geometry.NewMesh(vertices, polygons), nil
}
