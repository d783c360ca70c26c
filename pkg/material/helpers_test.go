package material

import (
	"github.com/df07/go-raykernel/pkg/core"
)

// hitAt builds a hit record with matching geometric and shading normals
func hitAt(point, normal core.Vec3, material core.Material) *core.HitRecord {
	return &core.HitRecord{
		T:               1,
		Point:           point,
		GeometricNormal: normal,
		ShadingNormal:   normal,
		Material:        material,
	}
}

// fixedSampler returns the same values on every call
type fixedSampler struct {
	value float64
}

func (f fixedSampler) Get1D() float64 { return f.value }

func (f fixedSampler) Get2D() core.Vec2 { return core.NewVec2(f.value, f.value) }

func (f fixedSampler) Get3D() core.Vec3 { return core.NewVec3(f.value, f.value, f.value) }
