package cloud

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/lujing-jlu/smartscope/pkg/geometry"
)

// plyProperty describes one per-vertex property from the header
type plyProperty struct {
	name string
	typ  string
}

// plyHeader holds the parts of a PLY header needed to read vertices
type plyHeader struct {
	format      string
	vertexCount int
	properties  []plyProperty
}

// LoadPLY reads a point cloud from a PLY file. Both ascii and
// binary_little_endian formats are supported. Vertex x/y/z are required;
// red/green/blue properties (uchar or float) become point colors, other
// properties are skipped. Face elements are ignored.
func LoadPLY(filename string) ([]geometry.Vector3, []Color, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open cloud file")
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, nil, err
	}

	switch header.format {
	case "ascii":
		return parsePLYASCII(reader, header)
	case "binary_little_endian":
		return parsePLYBinary(reader, header)
	default:
		return nil, nil, errors.Errorf("unsupported PLY format %q", header.format)
	}
}

// parsePLYHeader consumes the header up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*plyHeader, error) {
	magic, err := readPLYLine(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read PLY magic")
	}
	if magic != "ply" {
		return nil, errors.New("not a PLY file")
	}

	header := &plyHeader{}
	inVertexElement := false
	for {
		line, err := readPLYLine(reader)
		if err != nil {
			return nil, errors.Wrap(err, "unexpected end of PLY header")
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "format":
			if len(fields) >= 2 {
				header.format = fields[1]
			}
		case "element":
			if len(fields) >= 3 && fields[1] == "vertex" {
				count, err := strconv.Atoi(fields[2])
				if err != nil {
					return nil, errors.Wrapf(err, "bad vertex count %q", fields[2])
				}
				header.vertexCount = count
				inVertexElement = true
			} else {
				inVertexElement = false
			}
		case "property":
			// Only scalar vertex properties matter; list properties belong
			// to face elements.
			if inVertexElement && len(fields) >= 3 && fields[1] != "list" {
				header.properties = append(header.properties, plyProperty{
					name: fields[2],
					typ:  fields[1],
				})
			}
		case "end_header":
			return header, nil
		}
	}
}

func readPLYLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// vertexAccumulator collects one vertex worth of property values
type vertexAccumulator struct {
	x, y, z    float64
	r, g, b    float64
	hasColor   bool
	colorScale float64
}

func (v *vertexAccumulator) set(prop plyProperty, value float64) {
	switch prop.name {
	case "x":
		v.x = value
	case "y":
		v.y = value
	case "z":
		v.z = value
	case "red", "r":
		v.r = value
		v.hasColor = true
		v.colorScale = colorScaleFor(prop.typ)
	case "green", "g":
		v.g = value
		v.hasColor = true
	case "blue", "b":
		v.b = value
		v.hasColor = true
	}
}

func (v *vertexAccumulator) color() Color {
	scale := v.colorScale
	if scale == 0 {
		scale = 1
	}
	return Color{R: v.r / scale, G: v.g / scale, B: v.b / scale}
}

// colorScaleFor maps integer color types onto the unit interval
func colorScaleFor(typ string) float64 {
	switch typ {
	case "uchar", "uint8", "char", "int8":
		return 255
	case "ushort", "uint16", "short", "int16":
		return 65535
	default:
		return 1
	}
}

// parsePLYASCII reads whitespace-separated vertex rows
func parsePLYASCII(reader *bufio.Reader, header *plyHeader) ([]geometry.Vector3, []Color, error) {
	points := make([]geometry.Vector3, 0, header.vertexCount)
	colors := make([]Color, 0, header.vertexCount)
	anyColor := false

	for i := 0; i < header.vertexCount; i++ {
		line, err := readPLYLine(reader)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to read vertex %d", i)
		}
		fields := strings.Fields(line)
		if len(fields) < len(header.properties) {
			return nil, nil, errors.Errorf("vertex %d has %d values, want %d", i, len(fields), len(header.properties))
		}

		var acc vertexAccumulator
		for j, prop := range header.properties {
			value, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "bad value for %s in vertex %d", prop.name, i)
			}
			acc.set(prop, value)
		}

		points = append(points, geometry.NewVector3(acc.x, acc.y, acc.z))
		colors = append(colors, acc.color())
		anyColor = anyColor || acc.hasColor
	}

	if !anyColor {
		colors = nil
	}
	return points, colors, nil
}

// parsePLYBinary reads packed little-endian vertex records
func parsePLYBinary(reader *bufio.Reader, header *plyHeader) ([]geometry.Vector3, []Color, error) {
	points := make([]geometry.Vector3, 0, header.vertexCount)
	colors := make([]Color, 0, header.vertexCount)
	anyColor := false

	for i := 0; i < header.vertexCount; i++ {
		var acc vertexAccumulator
		for _, prop := range header.properties {
			value, err := readPLYScalar(reader, prop.typ)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "failed to read %s for vertex %d", prop.name, i)
			}
			acc.set(prop, value)
		}

		points = append(points, geometry.NewVector3(acc.x, acc.y, acc.z))
		colors = append(colors, acc.color())
		anyColor = anyColor || acc.hasColor
	}

	if !anyColor {
		colors = nil
	}
	return points, colors, nil
}

// readPLYScalar reads one binary property value of the given PLY type
func readPLYScalar(reader io.Reader, typ string) (float64, error) {
	switch typ {
	case "float", "float32":
		var v float32
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		if math.IsNaN(float64(v)) {
			return 0, nil
		}
		return float64(v), nil
	case "double", "float64":
		var v float64
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return v, nil
	case "uchar", "uint8":
		var v uint8
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case "char", "int8":
		var v int8
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case "ushort", "uint16":
		var v uint16
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case "short", "int16":
		var v int16
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case "uint", "uint32":
		var v uint32
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	case "int", "int32":
		var v int32
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return float64(v), nil
	default:
		return 0, errors.Errorf("unsupported PLY property type %q", typ)
	}
}
