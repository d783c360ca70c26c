package integrator

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/geometry"
	"github.com/df07/go-raykernel/pkg/material"
)

// countingMaterial counts how many times Scatter is called on the wrapped material
type countingMaterial struct {
	core.Material
	scatters atomic.Int64
}

func (c *countingMaterial) Scatter(rayIn core.Ray, hit *core.HitRecord, sampler core.Sampler) (core.ScatterResult, bool) {
	c.scatters.Add(1)
	return c.Material.Scatter(rayIn, hit, sampler)
}

// fixedHit reports the same hit record for every ray
type fixedHit struct {
	record core.HitRecord
}

func (f fixedHit) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	record := f.record
	return &record, true
}

func (f fixedHit) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}

func TestPathTracer_EmptySceneIsBlack(t *testing.T) {
	tracer := NewPathTracer(DefaultConfig(), nil)
	sampler := core.NewSeededSampler(1)

	directions := []core.Vec3{
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		core.NewVec3(1, -1, 0.5),
	}
	for _, dir := range directions {
		color := tracer.ComputeColor(core.NewRay(core.NewVec3(0, 0, 0), dir), core.NewWorld(), 0, sampler)
		if color != (core.Vec3{}) {
			t.Errorf("Expected exact black for empty scene, got %v", color)
		}
	}
}

func TestPathTracer_BackgroundGradient(t *testing.T) {
	config := DefaultConfig()
	config.Background = true
	tracer := NewPathTracer(config, nil)

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"straight down", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"horizon", core.NewVec3(1, 0, 0), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			color := tracer.ComputeColor(ray, core.NewWorld(), 0, core.NewSeededSampler(1))
			if !color.Equals(tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestPathTracer_NeverExceedsMaxDepth(t *testing.T) {
	for _, maxDepth := range []int{0, 1, 5, 50} {
		mirror := &countingMaterial{Material: material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0)}
		// The camera sits inside a closed mirror, so every path keeps bouncing
		world := core.NewWorld(geometry.NewSphere(core.NewVec3(0, 0, 0), 10, mirror))

		config := DefaultConfig()
		config.MaxDepth = maxDepth
		tracer := NewPathTracer(config, nil)

		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0.3, 0.2, 1))
		color := tracer.ComputeColor(ray, world, 0, core.NewSeededSampler(7))

		if got := mirror.scatters.Load(); got != int64(maxDepth) {
			t.Errorf("MaxDepth %d: expected %d scatter events, got %d", maxDepth, maxDepth, got)
		}
		if color != (core.Vec3{}) {
			t.Errorf("MaxDepth %d: non-emissive mirror should be black, got %v", maxDepth, color)
		}
	}
}

func TestPathTracer_EmissionAlwaysAdded(t *testing.T) {
	emission := core.NewVec3(3, 2, 1)
	light := material.NewDiffuseLight(emission)
	world := core.NewWorld(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, light))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for _, maxDepth := range []int{0, 1, 10} {
		config := DefaultConfig()
		config.MaxDepth = maxDepth
		tracer := NewPathTracer(config, nil)

		if color := tracer.ComputeColor(ray, world, 0, core.NewSeededSampler(1)); color != emission {
			t.Errorf("MaxDepth %d: expected emission %v, got %v", maxDepth, emission, color)
		}
		// Emission is still gathered when the path arrives at the depth limit
		if color := tracer.ComputeColor(ray, world, maxDepth, core.NewSeededSampler(1)); color != emission {
			t.Errorf("MaxDepth %d: expected emission at the limit, got %v", maxDepth, color)
		}
	}
}

func TestPathTracer_DiffuseUnderSky(t *testing.T) {
	config := DefaultConfig()
	config.Background = true
	tracer := NewPathTracer(config, nil)

	albedo := core.NewVec3(0.5, 0.5, 0.5)
	world := core.NewWorld(geometry.NewXZRect(-100, 100, -100, 100, 0, material.NewLambertian(albedo)))
	sampler := core.NewSeededSampler(3)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 100; i++ {
		color := tracer.ComputeColor(ray, world, 0, sampler)
		// One diffuse bounce into the sky: albedo times a sky value in [0.5, 1]
		if color.X < 0.25-1e-9 || color.X > 0.5+1e-9 || !color.IsFinite() {
			t.Fatalf("Unexpected color %v", color)
		}
	}
}

func TestPathTracer_LightShapeSampling(t *testing.T) {
	light := geometry.NewXZRect(-0.5, 0.5, -0.5, 0.5, 2, material.NewDiffuseLight(core.NewVec3(10, 10, 10)))
	floor := geometry.NewXZRect(-5, 5, -5, 5, 0, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))
	world := core.NewWorld(floor, light)

	config := DefaultConfig()
	config.MaxDepth = 2
	// Looking at the floor point under the light without seeing the light itself
	ray := core.NewRay(core.NewVec3(3, 1, 0), core.NewVec3(-3, -1, 0))

	litSamples := func(tracer *PathTracer) int {
		sampler := core.NewSeededSampler(21)
		lit := 0
		for i := 0; i < 200; i++ {
			color := tracer.ComputeColor(ray, world, 0, sampler)
			if !color.IsFinite() {
				t.Fatalf("Non-finite color %v", color)
			}
			if color.X > 0 {
				lit++
			}
		}
		return lit
	}

	withLight := litSamples(NewPathTracer(config, light))
	withoutLight := litSamples(NewPathTracer(config, nil))

	if withLight < 70 {
		t.Errorf("Expected light sampling to reach the light often, got %d/200", withLight)
	}
	if withLight <= withoutLight {
		t.Errorf("Expected light sampling to find the light more often: %d vs %d", withLight, withoutLight)
	}
}

func TestPathTracer_NonFiniteHitPanics(t *testing.T) {
	world := fixedHit{record: core.HitRecord{T: math.NaN(), Material: material.NewEmpty()}}
	tracer := NewPathTracer(DefaultConfig(), nil)

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrNonFiniteHit) {
			t.Errorf("Expected ErrNonFiniteHit panic, got %v", r)
		}
	}()

	tracer.ComputeColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)), world, 0, core.NewSeededSampler(1))
}
