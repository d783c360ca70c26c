package material

import (
	"github.com/df07/go-raykernel/pkg/core"
)

// Mix represents a material that probabilistically chooses between two materials
type Mix struct {
	Material1 core.Material
	Material2 core.Material
	Ratio     float64 // 0.0 = all material1, 1.0 = all material2
}

// NewMix creates a new mix material
func NewMix(material1, material2 core.Material, ratio float64) *Mix {
	return &Mix{
		Material1: material1,
		Material2: material2,
		Ratio:     max(0, min(1, ratio)),
	}
}

// Scatter delegates to one of the two materials chosen by ratio
func (m *Mix) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	if sampler.Get1D() < m.Ratio {
		return m.Material2.Scatter(rayIn, hit, sampler)
	}
	return m.Material1.Scatter(rayIn, hit, sampler)
}

// Emitted blends the emission of both materials by ratio
func (m *Mix) Emitted(uv core.Vec2, point core.Vec3) core.Vec3 {
	e1 := m.Material1.Emitted(uv, point)
	e2 := m.Material2.Emitted(uv, point)
	return e1.Multiply(1 - m.Ratio).Add(e2.Multiply(m.Ratio))
}
