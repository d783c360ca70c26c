package core

// HitRecord is a snapshot of a single ray-surface intersection. Records are
// created fresh by every successful hit test; only adapters such as
// FlipNormals modify one before handing it on.
type HitRecord struct {
	T               float64  // Parametric distance along the ray
	U, V            float64  // Surface coordinates
	Point           Vec3     // World-space intersection point
	GeometricNormal Vec3     // Normal of the true surface
	ShadingNormal   Vec3     // Normal used for shading
	Material        Material // Material of the hit object (read-only)
}

// UV returns the surface coordinates as a Vec2
func (h *HitRecord) UV() Vec2 {
	return NewVec2(h.U, h.V)
}

// Hitable is implemented by every primitive, adapter and aggregate that can
// be intersected by a ray.
//
// Hit reports the closest intersection with t strictly inside (tMin, tMax).
// BoundingBox reports the box enclosing the object over the time interval
// [t0, t1]; false means the object is unbounded or has no box.
type Hitable interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	BoundingBox(t0, t1 float64) (AABB, bool)
}

// LightShape is implemented by hitables that support importance sampling of
// directions toward their surface.
type LightShape interface {
	Hitable
	// PDFValue returns the solid-angle density of sampling direction from origin
	PDFValue(origin, direction Vec3) float64
	// Random returns a direction from origin toward a point on the shape
	Random(origin Vec3, sampler Sampler) Vec3
}

// PDFValue returns h's sampling density, or zero when h does not support
// importance sampling.
func PDFValue(h Hitable, origin, direction Vec3) float64 {
	if ls, ok := h.(LightShape); ok {
		return ls.PDFValue(origin, direction)
	}
	return 0
}

// PDFRandom returns a direction sampled toward h, or the fixed X axis when h
// does not support importance sampling.
func PDFRandom(h Hitable, origin Vec3, sampler Sampler) Vec3 {
	if ls, ok := h.(LightShape); ok {
		return ls.Random(origin, sampler)
	}
	return NewVec3(1, 0, 0)
}

// FlipNormals wraps a hitable and reverses the normals it reports
type FlipNormals struct {
	Object Hitable
}

// NewFlipNormals creates a normal-flipping adapter around object
func NewFlipNormals(object Hitable) *FlipNormals {
	return &FlipNormals{Object: object}
}

// Hit delegates to the wrapped object and negates both normals of the result
func (f *FlipNormals) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	hit, ok := f.Object.Hit(ray, tMin, tMax)
	if !ok {
		return nil, false
	}
	hit.GeometricNormal = hit.GeometricNormal.Negate()
	hit.ShadingNormal = hit.ShadingNormal.Negate()
	return hit, true
}

// BoundingBox returns the wrapped object's box unchanged
func (f *FlipNormals) BoundingBox(t0, t1 float64) (AABB, bool) {
	return f.Object.BoundingBox(t0, t1)
}

// PDFValue delegates to the wrapped object
func (f *FlipNormals) PDFValue(origin, direction Vec3) float64 {
	return PDFValue(f.Object, origin, direction)
}

// Random delegates to the wrapped object
func (f *FlipNormals) Random(origin Vec3, sampler Sampler) Vec3 {
	return PDFRandom(f.Object, origin, sampler)
}
