package geometry

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
)

// Volume is a constant-density participating medium filling a closed
// boundary. Scattering distances are drawn from a hash of the incoming ray,
// so a volume holds no random state and gives the same answer for the same
// ray no matter which aggregate or goroutine asks.
type Volume struct {
	Boundary core.Hitable
	Density  float64
	Phase    core.Material
}

// NewVolume creates a medium of the given density inside boundary. phase is
// the material applied at scattering events, normally an isotropic one.
func NewVolume(boundary core.Hitable, density float64, phase core.Material) *Volume {
	return &Volume{Boundary: boundary, Density: density, Phase: phase}
}

// Hit samples a scattering distance inside the medium along the ray
func (m *Volume) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	if m.Density <= 0 {
		return nil, false
	}

	enter, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1))
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(ray, enter.T+1e-4, math.Inf(1))
	if !ok {
		return nil, false
	}

	t0 := math.Max(enter.T, tMin)
	t1 := math.Min(exit.T, tMax)
	if t0 >= t1 {
		return nil, false
	}
	t0 = math.Max(t0, 0)

	length := ray.Direction.Length()
	distanceInside := (t1 - t0) * length
	hitDistance := -math.Log(rayHash(ray)) / m.Density
	if hitDistance >= distanceInside {
		return nil, false
	}

	t := t0 + hitDistance/length
	if t <= tMin {
		return nil, false
	}

	// Normal is arbitrary inside a medium
	normal := core.NewVec3(1, 0, 0)
	return &core.HitRecord{
		T:               t,
		Point:           ray.At(t),
		GeometricNormal: normal,
		ShadingNormal:   normal,
		Material:        m.Phase,
	}, true
}

// BoundingBox returns the boundary's box
func (m *Volume) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(t0, t1)
}

// rayHash maps a ray to a value in (0, 1]
func rayHash(ray core.Ray) float64 {
	h := uint64(0x9e3779b97f4a7c15)
	for _, f := range [...]float64{
		ray.Origin.X, ray.Origin.Y, ray.Origin.Z,
		ray.Direction.X, ray.Direction.Y, ray.Direction.Z,
		ray.Time,
	} {
		h = splitmix64(h ^ math.Float64bits(f))
	}
	return float64(h>>11+1) / (1 << 53)
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
