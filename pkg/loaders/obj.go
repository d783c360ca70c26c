package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
)

// ErrOBJSyntax is returned for malformed Wavefront OBJ input
var ErrOBJSyntax = errors.New("obj syntax error")

// OBJData holds the triangulated geometry of a Wavefront OBJ file. Indices
// are zero-based.
type OBJData struct {
	Vertices      []core.Vec3
	Normals       []core.Vec3
	Faces         []int // Three vertex indices per triangle
	NormalIndices []int // Three normal indices per triangle; nil unless every face has normals
}

// TriangleCount returns the number of triangles
func (d *OBJData) TriangleCount() int {
	return len(d.Faces) / 3
}

// Mesh builds a triangle mesh from the data with a single material
func (d *OBJData) Mesh(material core.Material) (*geometry.TriangleMesh, error) {
	var options *geometry.TriangleMeshOptions
	if d.NormalIndices != nil {
		options = &geometry.TriangleMeshOptions{Normals: d.Normals, NormalIndices: d.NormalIndices}
	}
	return geometry.NewTriangleMesh(d.Vertices, d.Faces, material, options)
}

// LoadOBJFile opens and parses an OBJ file
func LoadOBJFile(filename string) (*OBJData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open obj file: %w", err)
	}
	defer file.Close()

	data, err := LoadOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// objReader accumulates parser state
type objReader struct {
	data       OBJData
	uvCount    int
	allNormals bool
}

// LoadOBJ parses vertex, normal and face records from r. Polygons are fan
// triangulated. Other records (groups, materials, smoothing) are skipped.
func LoadOBJ(r io.Reader) (*OBJData, error) {
	reader := &objReader{allNormals: true}

	lineNum := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		var err error
		switch lineTokens[0] {
		case "v":
			var v core.Vec3
			v, err = parseVec3(lineTokens)
			reader.data.Vertices = append(reader.data.Vertices, v)
		case "vn":
			var v core.Vec3
			v, err = parseVec3(lineTokens)
			reader.data.Normals = append(reader.data.Normals, v)
		case "vt":
			if len(lineTokens) < 3 {
				err = fmt.Errorf("unsupported syntax for 'vt'; expected at least 2 arguments; got %d", len(lineTokens)-1)
			}
			reader.uvCount++
		case "f":
			err = reader.parseFace(lineTokens)
		}

		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrOBJSyntax, lineNum, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read obj data: %w", err)
	}

	if len(reader.data.Faces) == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrOBJSyntax)
	}
	if !reader.allNormals {
		if len(reader.data.NormalIndices) > 0 {
			logger.Warningf("obj mixes faces with and without normals; using flat shading")
		}
		reader.data.NormalIndices = nil
	}

	logger.Debugf("parsed obj with %d vertices and %d triangles", len(reader.data.Vertices), reader.data.TriangleCount())
	return &reader.data, nil
}

// parseFace parses a face definition. Each corner is one of:
// - vertexIndex
// - vertexIndex/uvIndex
// - vertexIndex//normalIndex
// - vertexIndex/uvIndex/normalIndex
//
// Indices start from 1 and may be negative to indicate an offset off the end
// of the vertex list. All corners of a face must use the same format.
func (r *objReader) parseFace(lineTokens []string) error {
	if len(lineTokens) < 4 {
		return fmt.Errorf("unsupported syntax for 'f'; expected at least 3 arguments; got %d", len(lineTokens)-1)
	}

	corners := len(lineTokens) - 1
	vertices := make([]int, corners)
	normals := make([]int, corners)
	hasNormals := false
	expIndices := 0

	for arg := 0; arg < corners; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")

		// The first corner defines the format for the rest
		if arg == 0 {
			expIndices = len(vTokens)
			hasNormals = expIndices == 3 && vTokens[2] != ""
		} else if len(vTokens) != expIndices {
			return fmt.Errorf("expected each face argument to contain %d indices; arg %d contains %d indices", expIndices, arg, len(vTokens))
		}
		if len(vTokens) > 3 {
			return fmt.Errorf("face argument %d has too many indices", arg)
		}

		if vTokens[0] == "" {
			return fmt.Errorf("face argument %d does not include a vertex index", arg)
		}

		var err error
		vertices[arg], err = selectFaceCoordIndex(vTokens[0], len(r.data.Vertices))
		if err != nil {
			return fmt.Errorf("could not parse vertex coord for face argument %d: %v", arg, err)
		}

		if len(vTokens) > 1 && vTokens[1] != "" {
			if _, err := selectFaceCoordIndex(vTokens[1], r.uvCount); err != nil {
				return fmt.Errorf("could not parse tex coord for face argument %d: %v", arg, err)
			}
		}

		if hasNormals {
			if vTokens[2] == "" {
				return fmt.Errorf("face argument %d does not include a normal index", arg)
			}
			normals[arg], err = selectFaceCoordIndex(vTokens[2], len(r.data.Normals))
			if err != nil {
				return fmt.Errorf("could not parse normal coord for face argument %d: %v", arg, err)
			}
		}
	}

	if !hasNormals {
		r.allNormals = false
	}

	// Fan triangulation around the first corner
	for i := 1; i+1 < corners; i++ {
		r.data.Faces = append(r.data.Faces, vertices[0], vertices[i], vertices[i+1])
		if hasNormals {
			r.data.NormalIndices = append(r.data.NormalIndices, normals[0], normals[i], normals[i+1])
		}
	}
	return nil
}

// selectFaceCoordIndex converts a one-based or negative OBJ index into a
// zero-based offset into a list of coordLen entries
func selectFaceCoordIndex(indexToken string, coordLen int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var offset int
	if index < 0 {
		offset = coordLen + int(index)
	} else {
		offset = int(index - 1)
	}
	if offset < 0 || offset >= coordLen {
		return -1, fmt.Errorf("index %d out of bounds", index)
	}
	return offset, nil
}

// parseVec3 parses the three coordinates following a record keyword
func parseVec3(lineTokens []string) (core.Vec3, error) {
	if len(lineTokens) < 4 {
		return core.Vec3{}, fmt.Errorf("unsupported syntax for '%s'; expected 3 arguments; got %d", lineTokens[0], len(lineTokens)-1)
	}

	var coords [3]float64
	for tokIdx := 1; tokIdx <= 3; tokIdx++ {
		coord, err := strconv.ParseFloat(lineTokens[tokIdx], 64)
		if err != nil {
			return core.Vec3{}, err
		}
		coords[tokIdx-1] = coord
	}
	return core.NewVec3(coords[0], coords[1], coords[2]), nil
}
