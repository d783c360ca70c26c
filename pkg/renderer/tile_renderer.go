package renderer

import (
	"fmt"
	"image"
	"math/rand"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/integrator"
)

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int             // Unique tile identifier
	Bounds          image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	PassesCompleted int             // Number of passes completed for this tile
	Sampler         core.Sampler    // Tile-specific sampler for deterministic results
}

// tileSeedStride spreads neighbouring tile seeds apart
const tileSeedStride = 0x9E3779B9

// NewTile creates a new tile whose sampler is seeded from seed and the tile ID
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	random := rand.New(rand.NewSource(seed + int64(id+1)*tileSeedStride))

	return &Tile{
		ID:      id,
		Bounds:  bounds,
		Sampler: core.NewRandomSampler(random),
	}
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}

// TileRenderer renders individual tiles using an integrator
type TileRenderer struct {
	camera     *Camera
	world      core.Hitable
	integrator integrator.Integrator
	width      int
	height     int
}

// NewTileRenderer creates a tile renderer for an image of width x height
func NewTileRenderer(camera *Camera, world core.Hitable, integ integrator.Integrator, width, height int) *TileRenderer {
	return &TileRenderer{
		camera:     camera,
		world:      world,
		integrator: integ,
		width:      width,
		height:     height,
	}
}

// RenderTileBounds samples every pixel within bounds until it holds
// targetSamples samples. Image row 0 is the top of the frame.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) (RenderStats, error) {
	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples, // Start with max, will be reduced
	}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[j][i]
			samplesUsed := 0
			for ps.SampleCount < targetSamples {
				s := (float64(i) + sampler.Get1D()) / float64(tr.width)
				t := (float64(tr.height-1-j) + sampler.Get1D()) / float64(tr.height)

				ray := tr.camera.GetRay(s, t, sampler)
				if err := ray.Validate(); err != nil {
					return stats, fmt.Errorf("pixel (%d, %d): %w", i, j, err)
				}

				ps.AddSample(tr.integrator.ComputeColor(ray, tr.world, 0, sampler))
				samplesUsed++
			}

			stats.TotalSamples += samplesUsed
			stats.MinSamples = min(stats.MinSamples, samplesUsed)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, samplesUsed)
		}
	}

	if stats.TotalPixels > 0 {
		stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	}
	return stats, nil
}
