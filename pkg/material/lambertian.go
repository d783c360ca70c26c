package material

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	nonEmissive
	Albedo Texture // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedo Texture) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter samples a cosine-weighted direction on the side the ray arrived
// from. The cosine and 1/π of the BRDF cancel against the sampling density,
// leaving the albedo as the attenuation.
func (l *Lambertian) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	normal, _ := facingNormal(rayIn, hit)
	direction := core.SampleCosineHemisphere(normal, sampler.Get2D())

	return core.ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: l.Albedo.Evaluate(hit.UV(), hit.Point),
	}, true
}

// ScatteringPDF returns cos(θ)/π for the scattered direction
func (l *Lambertian) ScatteringPDF(rayIn core.Ray, hit *core.HitRecord, scattered core.Ray) float64 {
	normal, _ := facingNormal(rayIn, hit)
	cosine := normal.Dot(scattered.Direction.Normalize())
	if cosine <= 0 {
		return 0
	}
	return cosine / math.Pi
}
