package renderer

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/integrator"
	"github.com/df07/go-raykernel/pkg/log"
)

var logger = log.New("renderer")

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 32

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum number of scattering events per path
	Seed            int64 // Base seed for the per-tile samplers
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	}
}

// Raytracer renders a world through a camera with a tile-parallel worker pool.
// Samples accumulate across passes until the configuration is changed.
type Raytracer struct {
	tileRenderer *TileRenderer
	width        int
	height       int
	config       SamplingConfig
	tileSize     int
	numWorkers   int
	tiles        []*Tile
	pixelStats   [][]PixelStats
}

// NewRaytracer creates a new raytracer for an image of width x height
func NewRaytracer(camera *Camera, world core.Hitable, integ integrator.Integrator, width, height int) *Raytracer {
	rt := &Raytracer{
		tileRenderer: NewTileRenderer(camera, world, integ, width, height),
		width:        width,
		height:       height,
		config:       DefaultSamplingConfig(),
		tileSize:     DefaultTileSize,
	}
	rt.reset()
	return rt
}

// SetSamplingConfig updates the sampling configuration and discards
// accumulated samples
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
	rt.reset()
}

// SetNumWorkers sets the worker count; values <= 0 use one worker per CPU
func (rt *Raytracer) SetNumWorkers(numWorkers int) {
	rt.numWorkers = numWorkers
}

// SetTileSize changes the tile edge length and discards accumulated samples
func (rt *Raytracer) SetTileSize(tileSize int) {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	rt.tileSize = tileSize
	rt.reset()
}

// GetSamplingConfig returns the active sampling configuration
func (rt *Raytracer) GetSamplingConfig() SamplingConfig {
	return rt.config
}

// TileCount returns the number of tiles covering the image
func (rt *Raytracer) TileCount() int {
	return len(rt.tiles)
}

func (rt *Raytracer) reset() {
	rt.tiles = NewTileGrid(rt.width, rt.height, rt.tileSize, rt.config.Seed)
	rt.pixelStats = make([][]PixelStats, rt.height)
	for y := range rt.pixelStats {
		rt.pixelStats[y] = make([]PixelStats, rt.width)
	}
}

// Render takes SamplesPerPixel samples for every pixel and returns the image
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	return rt.RenderPass(ctx, rt.config.SamplesPerPixel)
}

// RenderPass brings every pixel up to targetSamples total samples using
// parallel workers and returns the current image. Tiles stop being handed out
// once ctx is cancelled; the context error is returned in that case.
func (rt *Raytracer) RenderPass(ctx context.Context, targetSamples int) (*image.RGBA, RenderStats, error) {
	pool := NewWorkerPool(rt.tileRenderer, len(rt.tiles), rt.numWorkers)
	pool.Start()

	logger.Debugf("rendering %dx%d to %d samples/pixel over %d tiles with %d workers",
		rt.width, rt.height, targetSamples, len(rt.tiles), pool.GetNumWorkers())

	submitted := 0
	var submitErr error
	for _, tile := range rt.tiles {
		task := TileTask{
			Tile:          tile,
			TargetSamples: targetSamples,
			TaskID:        submitted,
			PixelStats:    rt.pixelStats,
		}
		if submitErr = pool.SubmitTask(ctx, task); submitErr != nil {
			break
		}
		submitted++
	}
	pool.Stop()

	var stats RenderStats
	var firstErr error
	for i := 0; i < submitted; i++ {
		result, ok := pool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
		}
		rt.tiles[result.TaskID].PassesCompleted++
		stats.merge(result.Stats)
	}

	if firstErr != nil {
		return nil, stats, firstErr
	}
	if submitErr != nil {
		logger.Warningf("render cancelled after %d of %d tiles", submitted, len(rt.tiles))
		return nil, stats, submitErr
	}

	img := rt.assembleImage()
	return img, stats, nil
}

// assembleImage converts the accumulated pixel stats into an image
func (rt *Raytracer) assembleImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	for y := 0; y < rt.height; y++ {
		for x := 0; x < rt.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(rt.pixelStats[y][x].GetColor()))
		}
	}
	return img
}

// vec3ToColor converts a Vec3 color to RGBA with gamma correction and clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	if !colorVec.IsFinite() {
		colorVec = core.Vec3{}
	}

	// Clamp to valid color range, then apply gamma correction (gamma = 2.0)
	colorVec = colorVec.Clamp(0.0, 1.0).GammaCorrect(2.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
