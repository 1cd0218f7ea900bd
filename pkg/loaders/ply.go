package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-spectral-raytracer/pkg/geometry"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string // Usually "1.0"
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty

	// Elements other than vertex and face, in file order, so their data can be skipped
	Elements []PLYElement
}

// PLYElement is an element declaration with its properties
type PLYElement struct {
	Name  string
	Count int
	Props []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// LoadPLY loads a PLY file into a mesh
func LoadPLY(filename string) (*geometry.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	return ParsePLY(file)
}

// ParsePLY reads an ascii or binary PLY stream. Vertex x, y, z become positions
// and u, v (or s, t) become texture coordinates. Faces with more than three
// vertices are fan-triangulated.
func ParsePLY(r io.Reader) (*geometry.Mesh, error) {
	reader := bufio.NewReaderSize(r, 1024*1024)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		values = &asciiValueReader{reader: reader}
	case "binary_little_endian":
		values = &binaryValueReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValueReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	mesh, err := readPLYBody(values, header)
	if err != nil {
		return nil, fmt.Errorf("failed to read PLY data: %w", err)
	}
	return mesh, nil
}

// parsePLYHeader consumes the header up to and including end_header, leaving
// reader positioned at the first data byte
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var current *PLYElement
	sawMagic := false

	for {
		raw, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || raw == "") {
			if err == io.EOF {
				return nil, fmt.Errorf("missing end_header")
			}
			return nil, fmt.Errorf("error reading header: %w", err)
		}
		line := strings.TrimSpace(raw)

		if !sawMagic {
			if line != "ply" {
				return nil, fmt.Errorf("not a PLY file")
			}
			sawMagic = true
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
			current = &header.Elements[len(header.Elements)-1]
			switch parts[1] {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			}
		case "property":
			if current == nil {
				return nil, fmt.Errorf("property before any element: %q", line)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			current.Props = append(current.Props, prop)
			switch current.Name {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		default:
			return nil, fmt.Errorf("unknown header keyword %q", parts[0])
		}

		if err == io.EOF {
			return nil, fmt.Errorf("missing end_header")
		}
	}

	if header.Format == "" {
		return nil, fmt.Errorf("missing format line")
	}
	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	prop := PLYProperty{}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop.IsList = true
		prop.ListType = parts[1]
		prop.DataType = parts[2]
		prop.Name = parts[3]
		if getTypeSize(prop.ListType) == 0 || getTypeSize(prop.DataType) == 0 {
			return PLYProperty{}, fmt.Errorf("unsupported list types %s %s", prop.ListType, prop.DataType)
		}
	} else {
		prop.Type = parts[0]
		prop.Name = parts[1]
		if getTypeSize(prop.Type) == 0 {
			return PLYProperty{}, fmt.Errorf("unsupported data type: %s", prop.Type)
		}
	}

	return prop, nil
}

// readPLYBody reads every element in header order, keeping vertices and faces
func readPLYBody(values plyValueReader, header *PLYHeader) (*geometry.Mesh, error) {
	vertices := make([]geometry.Vertex, 0, header.VertexCount)
	polygons := make([][3]int, 0, header.FaceCount)

	for _, element := range header.Elements {
		for i := 0; i < element.Count; i++ {
			switch element.Name {
			case "vertex":
				vertex, err := readPLYVertex(values, element.Props)
				if err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
				vertices = append(vertices, vertex)
			case "face":
				face, err := readPLYFace(values, element.Props)
				if err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				polygons = append(polygons, face...)
			default:
				for _, prop := range element.Props {
					if _, err := readPLYProperty(values, prop); err != nil {
						return nil, fmt.Errorf("%s %d: %w", element.Name, i, err)
					}
				}
			}
		}
	}

	for i, p := range polygons {
		for _, index := range p {
			if index < 0 || index >= len(vertices) {
				return nil, fmt.Errorf("triangle %d references vertex %d of %d", i, index, len(vertices))
			}
		}
	}
	return geometry.NewMesh(vertices, polygons), nil
}

func readPLYVertex(values plyValueReader, props []PLYProperty) (geometry.Vertex, error) {
	var vertex geometry.Vertex
	for _, prop := range props {
		list, err := readPLYProperty(values, prop)
		if err != nil {
			return vertex, err
		}
		if prop.IsList {
			continue
		}
		value := float32(list[0])
		switch prop.Name {
		case "x":
			vertex.Position.X = value
		case "y":
			vertex.Position.Y = value
		case "z":
			vertex.Position.Z = value
		case "u", "s", "texture_u":
			vertex.UV[0] = value
		case "v", "t", "texture_v":
			vertex.UV[1] = value
		}
	}
	return vertex, nil
}

func readPLYFace(values plyValueReader, props []PLYProperty) ([][3]int, error) {
	var triangles [][3]int
	for _, prop := range props {
		list, err := readPLYProperty(values, prop)
		if err != nil {
			return nil, err
		}
		if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
			continue
		}
		if len(list) < 3 {
			return nil, fmt.Errorf("face needs at least 3 vertices, got %d", len(list))
		}
		for k := 1; k+1 < len(list); k++ {
			triangles = append(triangles, [3]int{int(list[0]), int(list[k]), int(list[k+1])})
		}
	}
	return triangles, nil
}

// readPLYProperty returns the property's value, or every list entry for list properties
func readPLYProperty(values plyValueReader, prop PLYProperty) ([]float64, error) {
	if !prop.IsList {
		v, err := values.read(prop.Type)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", prop.Name, err)
		}
		return []float64{v}, nil
	}

	count, err := values.read(prop.ListType)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s count: %w", prop.Name, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("negative %s count %v", prop.Name, count)
	}
	list := make([]float64, int(count))
	for i := range list {
		if list[i], err = values.read(prop.DataType); err != nil {
			return nil, fmt.Errorf("failed to read %s[%d]: %w", prop.Name, i, err)
		}
	}
	return list, nil
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}

type plyValueReader interface {
	read(dataType string) (float64, error)
}

// asciiValueReader reads whitespace separated numbers
type asciiValueReader struct {
	reader *bufio.Reader
}

func (a *asciiValueReader) read(dataType string) (float64, error) {
	var token []byte
	for {
		b, err := a.reader.ReadByte()
		if err != nil {
			if err == io.EOF && len(token) > 0 {
				break
			}
			if err == io.EOF {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			if len(token) > 0 {
				break
			}
			continue
		}
		token = append(token, b)
	}

	v, err := strconv.ParseFloat(string(token), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q", dataType, token)
	}
	return v, nil
}

// binaryValueReader decodes fixed-size values in the given byte order
type binaryValueReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryValueReader) read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unsupported data type: %s", dataType)
	}
	data := b.buf[:size]
	if _, err := io.ReadFull(b.reader, data); err != nil {
		return 0, err
	}

	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	case "double", "float64":
		return math.Float64frombits(b.order.Uint64(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "char", "int8":
		return float64(int8(data[0])), nil
	default: // uchar, uint8
		return float64(data[0]), nil
	}
}
