package integrator

import (
	"fmt"
	"math"

	"github.com/df07/go-raykernel/pkg/core"
)

// PathTracer implements recursive unidirectional path tracing with optional
// importance sampling toward a single light shape
type PathTracer struct {
	config     Config
	lightShape core.Hitable
}

// NewPathTracer creates a path tracer. lightShape may be nil; when set,
// diffuse scattering draws half of its directions toward it.
func NewPathTracer(config Config, lightShape core.Hitable) *PathTracer {
	return &PathTracer{
		config:     config,
		lightShape: lightShape,
	}
}

// Config returns the integrator's configuration
func (pt *PathTracer) Config() Config {
	return pt.config
}

// ComputeColor computes the color for a single ray
func (pt *PathTracer) ComputeColor(ray core.Ray, world core.Hitable, depth int, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, pt.config.TMin, math.Inf(1))
	if !isHit {
		if pt.config.Background {
			return SkyGradient(ray)
		}
		return core.Vec3{}
	}

	if math.IsNaN(hit.T) || math.IsInf(hit.T, 0) {
		panic(fmt.Errorf("%w: t=%v", ErrNonFiniteHit, hit.T))
	}
	if hit.Material == nil {
		return core.Vec3{}
	}

	// Emitted light is gathered at every hit, including the last one
	emitted := hit.Material.Emitted(hit.UV(), hit.Point)
	if depth >= pt.config.MaxDepth {
		return emitted
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return emitted
	}

	if !scatter.Specular && pt.lightShape != nil {
		if pdfMaterial, ok := hit.Material.(core.ScatteringPDF); ok {
			return emitted.Add(pt.mixtureColor(ray, hit, scatter, pdfMaterial, world, depth, sampler))
		}
	}

	incoming := pt.ComputeColor(scatter.Scattered, world, depth+1, sampler)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}

// mixtureColor draws the outgoing direction from an equal mixture of the
// light shape and the material's own distribution, weighting the attenuation
// by materialPDF / mixturePDF
func (pt *PathTracer) mixtureColor(ray core.Ray, hit *core.HitRecord, scatter core.ScatterResult,
	pdfMaterial core.ScatteringPDF, world core.Hitable, depth int, sampler core.Sampler) core.Vec3 {
	scattered := scatter.Scattered
	if sampler.Get1D() < 0.5 {
		direction := core.PDFRandom(pt.lightShape, hit.Point, sampler)
		scattered = core.NewRayAtTime(hit.Point, direction, ray.Time)
	}

	materialPDF := pdfMaterial.ScatteringPDF(ray, hit, scattered)
	mixturePDF := 0.5*core.PDFValue(pt.lightShape, hit.Point, scattered.Direction) + 0.5*materialPDF
	if materialPDF <= 0 || mixturePDF <= 0 {
		return core.Vec3{}
	}

	incoming := pt.ComputeColor(scattered, world, depth+1, sampler)
	return scatter.Attenuation.Multiply(materialPDF / mixturePDF).MultiplyVec(incoming)
}
