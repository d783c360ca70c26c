package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-raykernel/pkg/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Render a scene and save the final pass.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	width, height := ctx.Int("width"), ctx.Int("height")
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", width, height)
	}

	out := ctx.String("out")
	if out == "" {
		timestamp := time.Now().Format("20060102_150405")
		out = filepath.Join("output", sceneName(ctx), fmt.Sprintf("render_%s.png", timestamp))
	}
	// Fail on unknown formats before spending time on the render
	if _, err := encoderFor(out); err != nil {
		return err
	}

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	if ctx.IsSet("spp") {
		sc.Sampling.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("depth") {
		sc.Sampling.MaxDepth = ctx.Int("depth")
	}
	sc.Sampling.Seed = ctx.Int64("seed")
	if err := sc.Validate(); err != nil {
		return err
	}

	cameraConfig := renderer.MergeCameraConfig(sc.Camera, renderer.CameraConfig{
		AspectRatio: float64(width) / float64(height),
	})

	rt := renderer.NewRaytracer(renderer.NewCamera(cameraConfig), sc.World, sc.Integrator(), width, height)
	rt.SetSamplingConfig(sc.Sampling)
	rt.SetNumWorkers(ctx.Int("workers"))

	logger.Noticef("rendering %q at %dx%d, %d samples/pixel, depth %d over %d tiles",
		sc.Name, width, height, sc.Sampling.SamplesPerPixel, sc.Sampling.MaxDepth, rt.TileCount())

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	passConfig := renderer.DefaultProgressiveConfig()
	passConfig.MaxPasses = ctx.Int("passes")

	start := time.Now()
	passes, errs := rt.RenderProgressive(renderCtx, passConfig)

	var results []renderer.PassResult
	for result := range passes {
		logger.Infof("pass %d: %.1f new samples/pixel in %s", result.PassNumber, result.Stats.AverageSamples, result.Duration)
		results = append(results, result)
	}
	if err := <-errs; err != nil {
		if !errors.Is(err, context.Canceled) || len(results) == 0 {
			return err
		}
		logger.Warningf("render interrupted; saving pass %d", results[len(results)-1].PassNumber)
	}
	if len(results) == 0 {
		return errors.New("render produced no passes")
	}

	final := results[len(results)-1]
	if err := saveImage(out, final.Image); err != nil {
		return err
	}

	displayRenderStats(results, time.Since(start))
	logger.Noticef("average luminance %.4f; render saved as %s", renderer.CalculateAverageLuminance(final.Image), out)
	return nil
}

func displayRenderStats(results []renderer.PassResult, total time.Duration) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pass", "Target spp", "New samples", "Min new", "Max new", "Render time"})

	samples := 0
	for _, result := range results {
		samples += result.Stats.TotalSamples
		table.Append([]string{
			fmt.Sprintf("%d", result.PassNumber),
			fmt.Sprintf("%d", result.Stats.MaxSamples),
			fmt.Sprintf("%d", result.Stats.TotalSamples),
			fmt.Sprintf("%d", result.Stats.MinSamples),
			fmt.Sprintf("%d", result.Stats.MaxSamplesUsed),
			result.Duration.String(),
		})
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%d", samples), "", "TOTAL", total.String()})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
