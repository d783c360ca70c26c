package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-raykernel/pkg/core"
)

func TestVolume_Density(t *testing.T) {
	boundary := NewSphere(core.NewVec3(0, 0, 0), 1, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

	tests := []struct {
		name      string
		density   float64
		expectHit bool
	}{
		{"dense scatters at entry", 1e6, true},
		{"near vacuum passes through", 1e-9, false},
		{"zero density never scatters", 0, false},
		{"negative density never scatters", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			volume := NewVolume(boundary, tt.density, nil)
			hit, ok := volume.Hit(ray, 0.001, math.Inf(1))
			if ok != tt.expectHit {
				t.Fatalf("Expected hit=%v, got %v", tt.expectHit, ok)
			}
			if ok && (hit.T < 4 || hit.T > 4.001) {
				t.Errorf("Expected scattering just past entry t=4, got %f", hit.T)
			}
		})
	}
}

func TestVolume_RayStartingInside(t *testing.T) {
	volume := NewVolume(NewSphere(core.NewVec3(0, 0, 0), 1, nil), 1e6, nil)
	hit, ok := volume.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), 0.001, math.Inf(1))
	if !ok {
		t.Fatal("Expected scattering inside the medium")
	}
	if hit.T <= 0.001 || hit.T > 0.01 {
		t.Errorf("Expected scattering just past tMin, got %f", hit.T)
	}
}

func TestVolume_RespectsTMax(t *testing.T) {
	volume := NewVolume(NewSphere(core.NewVec3(0, 0, 0), 1, nil), 1e6, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))
	if _, ok := volume.Hit(ray, 0.001, 3.5); ok {
		t.Error("Expected miss when the medium lies beyond tMax")
	}
}

func TestVolume_DeterministicAcrossAggregates(t *testing.T) {
	sampler := core.NewSeededSampler(99)
	objects := []core.Hitable{
		NewVolume(NewBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), nil), 0.8, nil),
		NewVolume(NewSphere(core.NewVec3(3, 0, 0), 1.5, nil), 0.3, nil),
		NewSphere(core.NewVec3(-3, 0, 0), 1, nil),
	}
	world := core.NewWorld(objects...)
	bvh, err := core.NewBVH(objects, 0, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	hits := 0
	for i := 0; i < 1000; i++ {
		origin := core.SampleOnUnitSphere(sampler.Get2D()).Multiply(10)
		target := core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(4)
		ray := core.NewRay(origin, target.Subtract(origin))

		worldHit, worldOk := world.Hit(ray, 0.001, math.Inf(1))
		bvhHit, bvhOk := bvh.Hit(ray, 0.001, math.Inf(1))
		if worldOk != bvhOk {
			t.Fatalf("Ray %d: world hit=%v, bvh hit=%v", i, worldOk, bvhOk)
		}
		if worldOk {
			hits++
			if worldHit.T != bvhHit.T {
				t.Fatalf("Ray %d: world t=%f, bvh t=%f", i, worldHit.T, bvhHit.T)
			}
		}

		again, againOk := world.Hit(ray, 0.001, math.Inf(1))
		if againOk != worldOk || (againOk && again.T != worldHit.T) {
			t.Fatalf("Ray %d: repeated query gave a different answer", i)
		}
	}

	if hits == 0 {
		t.Error("Expected some rays to scatter or hit")
	}
}
