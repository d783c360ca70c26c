package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-raykernel/pkg/core"
)

// quadVertices describes a unit square in the XY plane at z = 0
var quadVertices = []core.Vec3{
	core.NewVec3(0, 0, 0),
	core.NewVec3(1, 0, 0),
	core.NewVec3(1, 1, 0),
	core.NewVec3(0, 1, 0),
}

func TestTriangleMesh_Errors(t *testing.T) {
	tests := []struct {
		name    string
		faces   []int
		options *TriangleMeshOptions
	}{
		{"no faces", nil, nil},
		{"partial face", []int{0, 1}, nil},
		{"vertex out of range", []int{0, 1, 4}, nil},
		{"negative vertex", []int{0, -1, 2}, nil},
		{"material count mismatch", []int{0, 1, 2}, &TriangleMeshOptions{Materials: make([]core.Material, 2)}},
		{"normal index count mismatch", []int{0, 1, 2}, &TriangleMeshOptions{Normals: quadVertices, NormalIndices: []int{0}}},
		{"normal out of range", []int{0, 1, 2}, &TriangleMeshOptions{Normals: quadVertices[:2]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTriangleMesh(quadVertices, tt.faces, nil, tt.options)
			if !errors.Is(err, ErrInvalidMesh) {
				t.Errorf("Expected ErrInvalidMesh, got %v", err)
			}
		})
	}
}

func TestTriangleMesh_Hit(t *testing.T) {
	mesh, err := NewTriangleMesh(quadVertices, []int{0, 1, 2, 0, 2, 3}, nil, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}

	for _, p := range []core.Vec3{core.NewVec3(0.8, 0.2, 1), core.NewVec3(0.2, 0.8, 1)} {
		hit, ok := mesh.Hit(core.NewRay(p, core.NewVec3(0, 0, -1)), 0.001, 100)
		if !ok {
			t.Fatalf("Expected hit at %v", p)
		}
		if math.Abs(hit.T-1) > 1e-9 {
			t.Errorf("Expected t=1, got %f", hit.T)
		}
	}

	if _, ok := mesh.Hit(core.NewRay(core.NewVec3(2, 2, 1), core.NewVec3(0, 0, -1)), 0.001, 100); ok {
		t.Error("Expected miss outside the quad")
	}

	box, ok := mesh.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected bounding box")
	}
	if box.Min.X > 0 || box.Max.X < 1 || box.Min.Y > 0 || box.Max.Y < 1 || box.Max.Z <= box.Min.Z {
		t.Errorf("Unexpected mesh box %v", box)
	}
	if stats := mesh.Stats(); stats.Primitives != 2 {
		t.Errorf("Expected 2 primitives in mesh hierarchy, got %d", stats.Primitives)
	}
}

func TestTriangleMesh_PerTriangleMaterial(t *testing.T) {
	red := &stubMaterial{name: "red"}
	blue := &stubMaterial{name: "blue"}
	mesh, err := NewTriangleMesh(quadVertices, []int{0, 1, 2, 0, 2, 3}, nil, &TriangleMeshOptions{
		Materials: []core.Material{red, blue},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	hit, ok := mesh.Hit(core.NewRay(core.NewVec3(0.2, 0.8, 1), core.NewVec3(0, 0, -1)), 0.001, 100)
	if !ok {
		t.Fatal("Expected hit")
	}
	if hit.Material != blue {
		t.Errorf("Expected second triangle's material, got %v", hit.Material)
	}
}

// stubMaterial is a material with no behavior used to check material propagation
type stubMaterial struct {
	name string
}

func (m *stubMaterial) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

func (m *stubMaterial) Emitted(uv core.Vec2, point core.Vec3) core.Vec3 {
	return core.Vec3{}
}
