package geometry

import (
	"github.com/df07/go-raykernel/pkg/core"
)

// Box is an axis-aligned box built from six rectangles whose normals all
// point outward
type Box struct {
	Min, Max core.Vec3
	sides    *core.World
}

// NewBox creates a box spanning the two corner points
func NewBox(p0, p1 core.Vec3, material core.Material) *Box {
	lo, hi := p0.Min(p1), p0.Max(p1)
	sides := core.NewWorld(
		NewXYRect(lo.X, hi.X, lo.Y, hi.Y, hi.Z, material),
		core.NewFlipNormals(NewXYRect(lo.X, hi.X, lo.Y, hi.Y, lo.Z, material)),
		NewXZRect(lo.X, hi.X, lo.Z, hi.Z, hi.Y, material),
		core.NewFlipNormals(NewXZRect(lo.X, hi.X, lo.Z, hi.Z, lo.Y, material)),
		NewYZRect(lo.Y, hi.Y, lo.Z, hi.Z, hi.X, material),
		core.NewFlipNormals(NewYZRect(lo.Y, hi.Y, lo.Z, hi.Z, lo.X, material)),
	)

	return &Box{Min: lo, Max: hi, sides: sides}
}

// Hit tests the ray against all six faces and returns the closest
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax)
}

// BoundingBox returns the box's own extent
func (b *Box) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}
