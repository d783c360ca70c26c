package core

// Material is the contract between the integrator and surface appearance
type Material interface {
	// Scatter returns the attenuation and outgoing ray for an incoming ray,
	// or false when the ray is absorbed. Attenuation already includes the
	// BRDF, cosine and sampling density, so the integrator multiplies it
	// directly with the incoming radiance.
	Scatter(rayIn Ray, hit *HitRecord, sampler Sampler) (ScatterResult, bool)

	// Emitted returns the radiance emitted at the given surface coordinates
	Emitted(uv Vec2, point Vec3) Vec3
}

// ScatteringPDF is implemented by materials whose scattering distribution
// can be evaluated for an arbitrary outgoing direction. The integrator uses
// it to mix material sampling with light-shape sampling.
type ScatteringPDF interface {
	ScatteringPDF(rayIn Ray, hit *HitRecord, scattered Ray) float64
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The outgoing ray
	Attenuation Vec3 // Per-channel throughput factor
	Specular    bool // True for delta distributions (mirror, glass)
}
