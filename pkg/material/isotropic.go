package material

import (
	"math"

	"github.com/df07/go-raykernel/pkg/core"
)

// Isotropic is the phase function of a participating medium: it scatters
// uniformly over the sphere of directions
type Isotropic struct {
	nonEmissive
	Albedo Texture
}

// NewIsotropic creates an isotropic phase material
func NewIsotropic(albedo Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter picks a uniformly random direction
func (i *Isotropic) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	direction := core.SampleOnUnitSphere(sampler.Get2D())
	return core.ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: i.Albedo.Evaluate(hit.UV(), hit.Point),
	}, true
}

// ScatteringPDF is the uniform sphere density
func (i *Isotropic) ScatteringPDF(rayIn core.Ray, hit *core.HitRecord, scattered core.Ray) float64 {
	return 1 / (4 * math.Pi)
}
