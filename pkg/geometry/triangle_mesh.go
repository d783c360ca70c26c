package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/log"
)

var logger = log.New("geometry")

// ErrInvalidMesh is returned when mesh vertex or face data is inconsistent
var ErrInvalidMesh = errors.New("invalid triangle mesh")

// TriangleMesh represents a collection of triangles with efficient ray intersection
// It uses an internal BVH (Bounding Volume Hierarchy) for fast intersection tests
type TriangleMesh struct {
	triangles []core.Hitable
	bvh       *core.BVH
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Normals       []core.Vec3     // Optional vertex normals
	NormalIndices []int           // Optional per-corner indices into Normals; defaults to the face indices
	Materials     []core.Material // Optional per-triangle materials
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices
// vertices: array of 3D points
// faces: array of triangle indices (each group of 3 indices forms a triangle)
// material: default material for all triangles
// options: optional parameters (can be nil for basic mesh)
func NewTriangleMesh(vertices []core.Vec3, faces []int, material core.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces) == 0 {
		return nil, fmt.Errorf("%w: no faces", ErrInvalidMesh)
	}
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: face index count %d is not a multiple of 3", ErrInvalidMesh, len(faces))
	}

	numTriangles := len(faces) / 3
	opts := TriangleMeshOptions{}
	if options != nil {
		opts = *options
	}

	normalIndices := opts.NormalIndices
	if opts.Normals != nil && normalIndices == nil {
		normalIndices = faces
	}
	if normalIndices != nil && len(normalIndices) != len(faces) {
		return nil, fmt.Errorf("%w: %d normal indices for %d face indices", ErrInvalidMesh, len(normalIndices), len(faces))
	}
	if opts.Materials != nil && len(opts.Materials) != numTriangles {
		return nil, fmt.Errorf("%w: %d materials for %d triangles", ErrInvalidMesh, len(opts.Materials), numTriangles)
	}

	triangles := make([]core.Hitable, numTriangles)
	for i := 0; i < numTriangles; i++ {
		idx := faces[i*3 : i*3+3]
		for _, vi := range idx {
			if vi < 0 || vi >= len(vertices) {
				return nil, fmt.Errorf("%w: face %d references vertex %d of %d", ErrInvalidMesh, i, vi, len(vertices))
			}
		}

		triangleMaterial := material
		if opts.Materials != nil {
			triangleMaterial = opts.Materials[i]
		}

		v0, v1, v2 := vertices[idx[0]], vertices[idx[1]], vertices[idx[2]]
		if normalIndices == nil {
			triangles[i] = NewTriangle(v0, v1, v2, triangleMaterial)
			continue
		}

		ni := normalIndices[i*3 : i*3+3]
		for _, n := range ni {
			if n < 0 || n >= len(opts.Normals) {
				return nil, fmt.Errorf("%w: face %d references normal %d of %d", ErrInvalidMesh, i, n, len(opts.Normals))
			}
		}
		triangles[i] = NewSmoothTriangle(v0, v1, v2, opts.Normals[ni[0]], opts.Normals[ni[1]], opts.Normals[ni[2]], triangleMaterial)
	}

	bvh, err := core.NewBVH(triangles, 0, 1)
	if err != nil {
		return nil, err
	}

	logger.Debugf("built mesh with %d triangles", numTriangles)
	return &TriangleMesh{triangles: triangles, bvh: bvh}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return tm.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return tm.bvh.BoundingBox(t0, t1)
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}

// Stats returns the shape of the mesh's internal hierarchy
func (tm *TriangleMesh) Stats() core.BVHStats {
	return tm.bvh.Stats()
}
