package geometry

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
)

// Sphere represents a sphere shape. A sphere whose two centers differ moves
// linearly between them over [Time0, Time1].
type Sphere struct {
	Center0, Center1 core.Vec3
	Time0, Time1     float64
	Radius           float64
	Material         core.Material
}

// NewSphere creates a new static sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center0:  center,
		Center1:  center,
		Radius:   radius,
		Material: material,
	}
}

// NewMovingSphere creates a sphere that moves from center0 at time0 to center1 at time1
func NewMovingSphere(center0, center1 core.Vec3, time0, time1, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center0:  center0,
		Center1:  center1,
		Time0:    time0,
		Time1:    time1,
		Radius:   radius,
		Material: material,
	}
}

// Center returns the center of the sphere at the given time
func (s *Sphere) Center(time float64) core.Vec3 {
	if s.Time1 == s.Time0 {
		return s.Center0
	}
	f := (time - s.Time0) / (s.Time1 - s.Time0)
	return s.Center0.Add(s.Center1.Subtract(s.Center0).Multiply(f))
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	center := s.Center(ray.Time)
	oc := ray.Origin.Subtract(center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	// Try the closer intersection point first
	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root <= tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root <= tMin || root >= tMax {
			return nil, false
		}
	}

	point := ray.At(root)
	normal := point.Subtract(center).Multiply(1.0 / s.Radius)
	u, v := sphereUV(normal)

	return &core.HitRecord{
		T:               root,
		U:               u,
		V:               v,
		Point:           point,
		GeometricNormal: normal,
		ShadingNormal:   normal,
		Material:        s.Material,
	}, true
}

// BoundingBox returns the box enclosing the sphere over [t0, t1]
func (s *Sphere) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	r := math.Abs(s.Radius)
	radius := core.NewVec3(r, r, r)
	c0, c1 := s.Center(t0), s.Center(t1)
	box0 := core.NewAABB(c0.Subtract(radius), c0.Add(radius))
	box1 := core.NewAABB(c1.Subtract(radius), c1.Add(radius))
	return core.SurroundingBox(box0, box1), true
}

// PDFValue returns the solid-angle density of sampling direction from origin
// uniformly within the cone subtended by the sphere
func (s *Sphere) PDFValue(origin, direction core.Vec3) float64 {
	if _, ok := s.Hit(core.NewRayAtTime(origin, direction, s.Time0), 0.001, math.Inf(1)); !ok {
		return 0
	}
	return 1.0 / (2.0 * math.Pi * (1.0 - s.cosThetaMax(origin)))
}

// Random samples a direction from origin toward the sphere
func (s *Sphere) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	toCenter := s.Center(s.Time0).Subtract(origin)
	if toCenter.LengthSquared() <= s.Radius*s.Radius {
		return core.SampleOnUnitSphere(sampler.Get2D())
	}
	return core.SampleCone(toCenter, s.cosThetaMax(origin), sampler.Get2D())
}

// cosThetaMax returns the cosine of the half-angle of the cone subtended by
// the sphere from origin; -1 when origin is inside the sphere
func (s *Sphere) cosThetaMax(origin core.Vec3) float64 {
	distSq := s.Center(s.Time0).Subtract(origin).LengthSquared()
	rSq := s.Radius * s.Radius
	if distSq <= rSq {
		return -1
	}
	return math.Sqrt(1 - rSq/distSq)
}

// sphereUV maps an outward unit normal to texture coordinates
func sphereUV(p core.Vec3) (float64, float64) {
	phi := math.Atan2(p.Z, p.X)
	theta := math.Asin(math.Max(-1, math.Min(1, p.Y)))
	u := 1 - (phi+math.Pi)/(2*math.Pi)
	v := (theta + math.Pi/2) / math.Pi
	return u, v
}
