package renderer

import (
	"image"
	"testing"

	"github.com/df07/go-raykernel/pkg/core"
)

// directionIntegrator encodes the ray direction's vertical component as red
type directionIntegrator struct{}

func (directionIntegrator) ComputeColor(ray core.Ray, world core.Hitable, depth int, sampler core.Sampler) core.Vec3 {
	if ray.Direction.Y > 0 {
		return core.NewVec3(1, 0, 0)
	}
	return core.NewVec3(0, 0, 1)
}

func newPixelStats(width, height int) [][]PixelStats {
	stats := make([][]PixelStats, height)
	for y := range stats {
		stats[y] = make([]PixelStats, width)
	}
	return stats
}

func TestTileRenderer_TopRowLooksUp(t *testing.T) {
	tr := NewTileRenderer(testCamera(1.0), constantWorld{}, directionIntegrator{}, 4, 4)
	pixelStats := newPixelStats(4, 4)

	_, err := tr.RenderTileBounds(image.Rect(0, 0, 4, 4), pixelStats, core.NewSeededSampler(1), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c := pixelStats[0][1].GetColor(); c.X != 1 {
		t.Errorf("row 0 should see rays pointing up, got %v", c)
	}
	if c := pixelStats[3][1].GetColor(); c.Z != 1 {
		t.Errorf("bottom row should see rays pointing down, got %v", c)
	}
}

func TestTileRenderer_OnlyTouchesBounds(t *testing.T) {
	integ := &constantIntegrator{color: core.NewVec3(1, 1, 1)}
	tr := NewTileRenderer(testCamera(1.0), constantWorld{}, integ, 8, 8)
	pixelStats := newPixelStats(8, 8)

	bounds := image.Rect(2, 3, 5, 7)
	stats, err := tr.RenderTileBounds(bounds, pixelStats, core.NewSeededSampler(1), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalPixels != 12 || stats.TotalSamples != 36 {
		t.Errorf("unexpected stats %+v", stats)
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			inside := image.Pt(x, y).In(bounds)
			count := pixelStats[y][x].SampleCount
			if inside && count != 3 {
				t.Errorf("pixel (%d,%d) inside bounds has %d samples", x, y, count)
			}
			if !inside && count != 0 {
				t.Errorf("pixel (%d,%d) outside bounds has %d samples", x, y, count)
			}
		}
	}
}

func TestTileRenderer_TopsUpExistingSamples(t *testing.T) {
	integ := &constantIntegrator{}
	tr := NewTileRenderer(testCamera(1.0), constantWorld{}, integ, 2, 2)
	pixelStats := newPixelStats(2, 2)
	pixelStats[0][0].SampleCount = 4

	stats, err := tr.RenderTileBounds(image.Rect(0, 0, 2, 2), pixelStats, core.NewSeededSampler(1), 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.TotalSamples != 12 || stats.MinSamples != 0 || stats.MaxSamplesUsed != 4 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if integ.calls.Load() != 12 {
		t.Errorf("expected 12 integrator calls, got %d", integ.calls.Load())
	}
}
