package geometry

import (
	"github.com/df07/go-raykernel/pkg/core"
)

// Triangle represents a single triangle defined by three vertices. When
// vertex normals are present the shading normal is interpolated across the
// face; the geometric normal always follows the winding order.
type Triangle struct {
	V0, V1, V2 core.Vec3     // The three vertices
	N0, N1, N2 core.Vec3     // Optional vertex normals
	Material   core.Material // Material of the triangle
	smooth     bool          // Vertex normals are set
	normal     core.Vec3     // Cached geometric normal
	bbox       core.AABB     // Cached bounding box
}

// NewTriangle creates a new flat-shaded triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
	}
	t.computeNormal()
	t.computeBoundingBox()
	return t
}

// NewSmoothTriangle creates a triangle whose shading normal is interpolated
// from the given vertex normals
func NewSmoothTriangle(v0, v1, v2, n0, n1, n2 core.Vec3, material core.Material) *Triangle {
	t := NewTriangle(v0, v1, v2, material)
	t.N0, t.N1, t.N2 = n0.Normalize(), n1.Normalize(), n2.Normalize()
	t.smooth = true
	return t
}

// computeNormal calculates and caches the triangle's normal vector
func (t *Triangle) computeNormal() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	t.normal = edge1.Cross(edge2).Normalize()
}

// computeBoundingBox calculates and caches the triangle's bounding box.
// Axis-aligned triangles are flat along one axis, so the box is padded.
func (t *Triangle) computeBoundingBox() {
	t.bbox = core.NewAABBFromPoints(t.V0, t.V1, t.V2).Pad(rectThickness)
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tHit := f * edge2.Dot(q)
	if tHit <= tMin || tHit >= tMax {
		return nil, false
	}

	shading := t.normal
	if t.smooth {
		w := 1 - u - v
		shading = t.N0.Multiply(w).Add(t.N1.Multiply(u)).Add(t.N2.Multiply(v)).Normalize()
	}

	return &core.HitRecord{
		T:               tHit,
		U:               u,
		V:               v,
		Point:           ray.At(tHit),
		GeometricNormal: t.normal,
		ShadingNormal:   shading,
		Material:        t.Material,
	}, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return t.bbox, true
}

// Normal returns the triangle's geometric normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
