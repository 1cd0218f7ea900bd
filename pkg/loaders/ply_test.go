package loaders

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-spectral-raytracer/pkg/core"
)

// createTestPLY builds a binary square made of one quad face, with an extra
// per-vertex property and an unrelated element the reader has to skip
func createTestPLY(order binary.ByteOrder, format string) []byte {
	var buf bytes.Buffer

	buf.WriteString("ply\n")
	buf.WriteString("format " + format + " 1.0\n")
	buf.WriteString("comment test square\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	buf.WriteString("property uchar red\n")
	buf.WriteString("property float u\n")
	buf.WriteString("property float v\n")
	buf.WriteString("element face 1\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("element edge 1\n")
	buf.WriteString("property int vertex1\n")
	buf.WriteString("property int vertex2\n")
	buf.WriteString("end_header\n")

	vertices := []struct {
		x, y, z float32
		r       uint8
		u, v    float32
	}{
		{0, 0, 0, 255, 0, 0},
		{1, 0, 0, 0, 1, 0},
		{1, 1, 0, 0, 1, 1},
		{0, 1, 0, 255, 0, 1},
	}
	for _, v := range vertices {
		binary.Write(&buf, order, v.x)
		binary.Write(&buf, order, v.y)
		binary.Write(&buf, order, v.z)
		binary.Write(&buf, order, v.r)
		binary.Write(&buf, order, v.u)
		binary.Write(&buf, order, v.v)
	}

	binary.Write(&buf, order, uint8(4))
	binary.Write(&buf, order, [4]int32{0, 1, 2, 3})

	binary.Write(&buf, order, [2]int32{0, 2})
	return buf.Bytes()
}

func checkSquare(t *testing.T, positions []core.Vec3, uvs [][2]float32, polygons [][3]int) {
	t.Helper()

	expected := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(1, 1, 0),
		core.NewVec3(0, 1, 0),
	}
	if len(positions) != len(expected) {
		t.Fatalf("Expected %d vertices, got %d", len(expected), len(positions))
	}
	for i, p := range expected {
		if positions[i] != p {
			t.Errorf("Vertex %d: expected %v, got %v", i, p, positions[i])
		}
	}
	if uvs[2] != [2]float32{1, 1} {
		t.Errorf("Expected vertex 2 UV (1, 1), got %v", uvs[2])
	}

	// The quad is fan-triangulated from its first corner
	want := [][3]int{{0, 1, 2}, {0, 2, 3}}
	if len(polygons) != len(want) {
		t.Fatalf("Expected %d triangles, got %d", len(want), len(polygons))
	}
	for i := range want {
		if polygons[i] != want[i] {
			t.Errorf("Triangle %d: expected %v, got %v", i, want[i], polygons[i])
		}
	}
}

func TestParsePLY_Binary(t *testing.T) {
	tests := []struct {
		name   string
		order  binary.ByteOrder
		format string
	}{
		{"little endian", binary.LittleEndian, "binary_little_endian"},
		{"big endian", binary.BigEndian, "binary_big_endian"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := ParsePLY(bytes.NewReader(createTestPLY(tt.order, tt.format)))
			if err != nil {
				t.Fatalf("ParsePLY failed: %v", err)
			}

			positions := make([]core.Vec3, len(mesh.Vertices))
			uvs := make([][2]float32, len(mesh.Vertices))
			for i, v := range mesh.Vertices {
				positions[i] = v.Position
				uvs[i] = v.UV
			}
			checkSquare(t, positions, uvs, mesh.Polygons)
		})
	}
}

func TestParsePLY_ASCII(t *testing.T) {
	data := `ply
format ascii 1.0
element vertex 4
property float x
property float y
property float z
property float s
property float t
element face 1
property list uchar int vertex_index
end_header
0 0 0 0 0
1 0 0 1 0
1 1 0 1 1
0 1 0 0 1
4 0 1 2 3
`
	mesh, err := ParsePLY(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParsePLY failed: %v", err)
	}

	positions := make([]core.Vec3, len(mesh.Vertices))
	uvs := make([][2]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = v.Position
		uvs[i] = v.UV
	}
	checkSquare(t, positions, uvs, mesh.Polygons)
}

func TestParsePLY_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not a ply file", "solid cube\n"},
		{"missing end_header", "ply\nformat ascii 1.0\nelement vertex 0\n"},
		{"missing format", "ply\nelement vertex 0\nend_header\n"},
		{"unknown format", "ply\nformat binary_middle_endian 1.0\nend_header\n"},
		{"bad element count", "ply\nformat ascii 1.0\nelement vertex many\nend_header\n"},
		{"unknown type", "ply\nformat ascii 1.0\nelement vertex 1\nproperty quad x\nend_header\n"},
		{"truncated body", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nend_header\n1\n"},
		{
			"index out of range",
			"ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0\n3 0 0 5\n",
		},
		{
			"degenerate face",
			"ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nelement face 1\nproperty list uchar int vertex_indices\nend_header\n0\n2 0 0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePLY(strings.NewReader(tt.data)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestLoadPLY_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.ply")
	if err := os.WriteFile(path, createTestPLY(binary.LittleEndian, "binary_little_endian"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	mesh, err := LoadMesh(path)
	if err != nil {
		t.Fatalf("LoadMesh failed: %v", err)
	}
	if mesh.PolygonCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.PolygonCount())
	}
	if len(mesh.OutputVertices) != len(mesh.Vertices) {
		t.Errorf("Expected output vertices to start as a copy, got %d of %d", len(mesh.OutputVertices), len(mesh.Vertices))
	}

	if _, err := LoadPLY(filepath.Join(t.TempDir(), "missing.ply")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}
