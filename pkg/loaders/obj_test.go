package loaders

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/df07/go-raykernel/pkg/core"
)

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestLoadOBJ_FanTriangulation(t *testing.T) {
	data, err := LoadOBJ(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}

	if len(data.Vertices) != 4 || len(data.Normals) != 1 {
		t.Fatalf("Expected 4 vertices and 1 normal, got %d and %d", len(data.Vertices), len(data.Normals))
	}
	if data.TriangleCount() != 2 {
		t.Fatalf("Expected 2 triangles, got %d", data.TriangleCount())
	}

	expectedFaces := []int{0, 1, 2, 0, 2, 3}
	if !reflect.DeepEqual(data.Faces, expectedFaces) {
		t.Errorf("Expected faces %v, got %v", expectedFaces, data.Faces)
	}
	expectedNormals := []int{0, 0, 0, 0, 0, 0}
	if !reflect.DeepEqual(data.NormalIndices, expectedNormals) {
		t.Errorf("Expected normal indices %v, got %v", expectedNormals, data.NormalIndices)
	}
}

func TestLoadOBJ_IndexFormats(t *testing.T) {
	tests := []struct {
		name          string
		face          string
		expectNormals bool
	}{
		{"vertex only", "f 1 2 3", false},
		{"vertex and uv", "f 1/1 2/2 3/3", false},
		{"vertex and normal", "f 1//1 2//1 3//1", true},
		{"all three", "f 1/1/1 2/2/1 3/3/1", true},
		{"negative indices", "f -3/-3/-1 -2/-2/-1 -1/-1/-1", true},
	}

	header := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvt 1 0\nvt 0 1\nvn 0 0 1\n"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := LoadOBJ(strings.NewReader(header + tt.face + "\n"))
			if err != nil {
				t.Fatalf("LoadOBJ failed: %v", err)
			}
			if !reflect.DeepEqual(data.Faces, []int{0, 1, 2}) {
				t.Errorf("Expected faces [0 1 2], got %v", data.Faces)
			}
			if (data.NormalIndices != nil) != tt.expectNormals {
				t.Errorf("Expected normals=%v, got %v", tt.expectNormals, data.NormalIndices)
			}
		})
	}
}

func TestLoadOBJ_MixedNormalsFallBackToFlat(t *testing.T) {
	input := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\nf 2 4 3\n"
	data, err := LoadOBJ(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if data.NormalIndices != nil {
		t.Errorf("Expected flat shading for mixed faces, got %v", data.NormalIndices)
	}
	if data.TriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", data.TriangleCount())
	}
}

func TestLoadOBJ_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no faces", "v 0 0 0\n"},
		{"bad vertex", "v 0 zero 0\nf 1 1 1\n"},
		{"short vertex", "v 0 0\n"},
		{"two corner face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"zero index", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"inconsistent format", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2/1 3\n"},
		{"missing normal", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2// 3//1\n"},
		{"uv out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1/1 2/1 3/1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadOBJ(strings.NewReader(tt.input))
			if !errors.Is(err, ErrOBJSyntax) {
				t.Errorf("Expected ErrOBJSyntax, got %v", err)
			}
		})
	}
}

func TestOBJData_Mesh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.obj")
	if err := os.WriteFile(path, []byte(quadOBJ), 0o644); err != nil {
		t.Fatalf("Failed to write obj: %v", err)
	}

	data, err := LoadOBJFile(path)
	if err != nil {
		t.Fatalf("LoadOBJFile failed: %v", err)
	}
	mesh, err := data.Mesh(nil)
	if err != nil {
		t.Fatalf("Mesh failed: %v", err)
	}

	hit, ok := mesh.Hit(core.NewRay(core.NewVec3(0.25, 0.75, 2), core.NewVec3(0, 0, -1)), 0.001, 100)
	if !ok {
		t.Fatal("Expected hit on loaded quad")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}
	if !hit.ShadingNormal.Equals(core.NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("Expected interpolated normal +Z, got %v", hit.ShadingNormal)
	}

	if _, err := LoadOBJFile(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("Expected error for missing file")
	}
}
