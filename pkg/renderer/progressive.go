package renderer

import (
	"context"
	"image"
	"time"
)

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	InitialSamples int // Samples for the first, preview pass
	MaxPasses      int // Number of passes; the last one reaches SamplesPerPixel
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		InitialSamples: 1,
		MaxPasses:      5,
	}
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	Duration   time.Duration
	IsLast     bool
}

// samplesForPass calculates the target total samples after a given pass
func samplesForPass(config ProgressiveConfig, maxSamples, passNumber int) int {
	// Special case: if only 1 pass, use all samples
	if config.MaxPasses <= 1 || passNumber >= config.MaxPasses {
		return maxSamples
	}

	// First pass is a quick preview
	initial := min(max(1, config.InitialSamples), maxSamples)
	if passNumber == 1 {
		return initial
	}

	// Divide remaining samples evenly across remaining passes
	samplesPerPass := (maxSamples - initial) / (config.MaxPasses - 1)
	return initial + (passNumber-1)*samplesPerPass
}

// RenderProgressive renders in passes of increasing sample counts, sending
// every intermediate image on the returned channel. Both channels are closed
// when rendering stops; at most one error is sent.
func (rt *Raytracer) RenderProgressive(ctx context.Context, config ProgressiveConfig) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	maxSamples := rt.config.SamplesPerPixel
	passes := max(1, config.MaxPasses)

	go func() {
		defer close(passChan)
		defer close(errChan)

		logger.Infof("starting progressive rendering with %d passes", passes)

		for pass := 1; pass <= passes; pass++ {
			startTime := time.Now()
			target := samplesForPass(config, maxSamples, pass)

			img, stats, err := rt.RenderPass(ctx, target)
			if err != nil {
				errChan <- err
				return
			}

			passTime := time.Since(startTime)
			logger.Infof("pass %d completed in %v (%d samples/pixel, %.1f new)", pass, passTime, target, stats.AverageSamples)

			result := PassResult{
				PassNumber: pass,
				Image:      img,
				Stats:      stats,
				Duration:   passTime,
				IsLast:     pass == passes,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return passChan, errChan
}
