package geometry

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
)

// Translate moves a hitable by a fixed offset
type Translate struct {
	Object core.Hitable
	Offset core.Vec3
}

// NewTranslate creates a translation adapter
func NewTranslate(object core.Hitable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit tests the ray in the object's local frame and moves the hit point back
func (tr *Translate) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	moved := core.NewRayAtTime(ray.Origin.Subtract(tr.Offset), ray.Direction, ray.Time)
	hit, ok := tr.Object.Hit(moved, tMin, tMax)
	if !ok {
		return nil, false
	}
	hit.Point = hit.Point.Add(tr.Offset)
	return hit, true
}

// BoundingBox returns the object's box shifted by the offset
func (tr *Translate) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	box, ok := tr.Object.BoundingBox(t0, t1)
	if !ok {
		return core.AABB{}, false
	}
	return core.NewAABB(box.Min.Add(tr.Offset), box.Max.Add(tr.Offset)), true
}

// PDFValue delegates in the object's local frame
func (tr *Translate) PDFValue(origin, direction core.Vec3) float64 {
	return core.PDFValue(tr.Object, origin.Subtract(tr.Offset), direction)
}

// Random delegates in the object's local frame; directions are unaffected by translation
func (tr *Translate) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return core.PDFRandom(tr.Object, origin.Subtract(tr.Offset), sampler)
}

// RotateY rotates a hitable about the Y axis
type RotateY struct {
	Object   core.Hitable
	Angle    float64 // Degrees
	sinTheta float64
	cosTheta float64
}

// NewRotateY creates a rotation adapter; angle is in degrees
func NewRotateY(object core.Hitable, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	return &RotateY{
		Object:   object,
		Angle:    angle,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}
}

// toLocal rotates a world-space vector into the object's frame
func (r *RotateY) toLocal(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld rotates an object-space vector into world space
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit tests the ray in the object's frame and rotates the result back
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	local := core.NewRayAtTime(r.toLocal(ray.Origin), r.toLocal(ray.Direction), ray.Time)
	hit, ok := r.Object.Hit(local, tMin, tMax)
	if !ok {
		return nil, false
	}
	hit.Point = r.toWorld(hit.Point)
	hit.GeometricNormal = r.toWorld(hit.GeometricNormal)
	hit.ShadingNormal = r.toWorld(hit.ShadingNormal)
	return hit, true
}

// BoundingBox returns the box enclosing the rotated corners of the object's box
func (r *RotateY) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	box, ok := r.Object.BoundingBox(t0, t1)
	if !ok {
		return core.AABB{}, false
	}
	corners := box.Corners()
	for i, c := range corners {
		corners[i] = r.toWorld(c)
	}
	return core.NewAABBFromPoints(corners[:]...), true
}

// PDFValue delegates in the object's frame
func (r *RotateY) PDFValue(origin, direction core.Vec3) float64 {
	return core.PDFValue(r.Object, r.toLocal(origin), r.toLocal(direction))
}

// Random samples in the object's frame and rotates the direction back
func (r *RotateY) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	return r.toWorld(core.PDFRandom(r.Object, r.toLocal(origin), sampler))
}
