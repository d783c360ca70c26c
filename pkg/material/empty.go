package material

import (
	"github.com/df07/go-raykernel/pkg/core"
)

// Empty neither scatters nor emits. Scenes use it for placeholder geometry
// such as a light shape that is never meant to be seen.
type Empty struct {
	nonEmissive
}

// NewEmpty creates an empty material
func NewEmpty() *Empty {
	return &Empty{}
}

// Scatter absorbs every ray
func (e *Empty) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}
