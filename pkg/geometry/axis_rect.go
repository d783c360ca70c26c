package geometry

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
)

// Plane identifies the pair of axes an AxisRect spans
type Plane int

const (
	PlaneXY Plane = iota // spans X and Y, offset along Z
	PlaneXZ              // spans X and Z, offset along Y
	PlaneYZ              // spans Y and Z, offset along X
)

// rectThickness pads the flat axis of a rectangle's bounding box
const rectThickness = 1e-4

// axes returns the indices of the two in-plane axes and the normal axis
func (p Plane) axes() (a, b, n int) {
	switch p {
	case PlaneXY:
		return 0, 1, 2
	case PlaneXZ:
		return 0, 2, 1
	default:
		return 1, 2, 0
	}
}

// String returns the plane name
func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	case PlaneYZ:
		return "yz"
	default:
		return "unknown"
	}
}

// AxisRect is an axis-aligned rectangle spanning [A0, A1] x [B0, B1] in its
// plane at offset K along the remaining axis. Its normal points along the
// positive normal axis.
type AxisRect struct {
	Plane    Plane
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material core.Material
}

// NewXYRect creates a rectangle in the XY plane at z = k
func NewXYRect(x0, x1, y0, y1, k float64, material core.Material) *AxisRect {
	return &AxisRect{Plane: PlaneXY, A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: material}
}

// NewXZRect creates a rectangle in the XZ plane at y = k
func NewXZRect(x0, x1, z0, z1, k float64, material core.Material) *AxisRect {
	return &AxisRect{Plane: PlaneXZ, A0: x0, A1: x1, B0: z0, B1: z1, K: k, Material: material}
}

// NewYZRect creates a rectangle in the YZ plane at x = k
func NewYZRect(y0, y1, z0, z1, k float64, material core.Material) *AxisRect {
	return &AxisRect{Plane: PlaneYZ, A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: material}
}

// Hit tests if a ray intersects with the rectangle
func (r *AxisRect) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	ia, ib, in := r.Plane.axes()

	dn := ray.Direction.Axis(in)
	if dn == 0 {
		return nil, false
	}
	t := (r.K - ray.Origin.Axis(in)) / dn
	if t <= tMin || t >= tMax {
		return nil, false
	}

	a := ray.Origin.Axis(ia) + t*ray.Direction.Axis(ia)
	b := ray.Origin.Axis(ib) + t*ray.Direction.Axis(ib)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	normal := r.compose(0, 0, 1)
	return &core.HitRecord{
		T:               t,
		U:               (a - r.A0) / (r.A1 - r.A0),
		V:               (b - r.B0) / (r.B1 - r.B0),
		Point:           ray.At(t),
		GeometricNormal: normal,
		ShadingNormal:   normal,
		Material:        r.Material,
	}, true
}

// BoundingBox returns the rectangle's box padded along the normal axis
func (r *AxisRect) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	box := core.NewAABBFromPoints(r.compose(r.A0, r.B0, r.K), r.compose(r.A1, r.B1, r.K))
	return box.Pad(rectThickness), true
}

// Area returns the rectangle's surface area
func (r *AxisRect) Area() float64 {
	return (r.A1 - r.A0) * (r.B1 - r.B0)
}

// PDFValue converts the uniform area density to solid angle as seen from origin
func (r *AxisRect) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := r.Hit(core.NewRay(origin, direction), 0.001, math.Inf(1))
	if !ok {
		return 0
	}

	lengthSq := direction.LengthSquared()
	distanceSq := hit.T * hit.T * lengthSq
	cosine := math.Abs(direction.Dot(hit.GeometricNormal)) / math.Sqrt(lengthSq)
	if cosine < 1e-8 {
		return 0
	}
	return distanceSq / (cosine * r.Area())
}

// Random returns the direction from origin to a uniformly sampled point on the rectangle
func (r *AxisRect) Random(origin core.Vec3, sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	point := r.compose(
		r.A0+sample.X*(r.A1-r.A0),
		r.B0+sample.Y*(r.B1-r.B0),
		r.K,
	)
	return point.Subtract(origin)
}

// compose builds a world-space vector from in-plane coordinates and the
// normal-axis coordinate
func (r *AxisRect) compose(a, b, n float64) core.Vec3 {
	switch r.Plane {
	case PlaneXY:
		return core.NewVec3(a, b, n)
	case PlaneXZ:
		return core.NewVec3(a, n, b)
	default:
		return core.NewVec3(n, a, b)
	}
}
