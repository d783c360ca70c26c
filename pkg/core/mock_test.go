package core

import (
	"math"
	"sync/atomic"
)

// MockShape for testing
type MockShape struct {
	box   AABB
	noBox bool
	hitFn func(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

func (m MockShape) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	if m.hitFn == nil {
		return nil, false
	}
	return m.hitFn(ray, tMin, tMax)
}

func (m MockShape) BoundingBox(t0, t1 float64) (AABB, bool) {
	return m.box, !m.noBox
}

// testSphere is a minimal static sphere used to exercise aggregates
type testSphere struct {
	center Vec3
	radius float64
	id     int
}

func (s testSphere) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	oc := ray.Origin.Subtract(s.center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.radius*s.radius
	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}
	point := ray.At(root)
	normal := point.Subtract(s.center).Multiply(1 / s.radius)
	return &HitRecord{
		T:               root,
		U:               float64(s.id),
		Point:           point,
		GeometricNormal: normal,
		ShadingNormal:   normal,
	}, true
}

func (s testSphere) BoundingBox(t0, t1 float64) (AABB, bool) {
	r := NewVec3(s.radius, s.radius, s.radius)
	return NewAABB(s.center.Subtract(r), s.center.Add(r)), true
}

// countingHitable counts the hit tests performed on the wrapped object
type countingHitable struct {
	Hitable
	calls *atomic.Int64
}

func (c countingHitable) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	c.calls.Add(1)
	return c.Hitable.Hit(ray, tMin, tMax)
}
