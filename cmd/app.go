package cmd

import (
	"github.com/urfave/cli"
)

// NewApp assembles the command line application.
func NewApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raykernel"
	app.Usage = "render builtin scenes with a tile-parallel path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Render one of the builtin scenes. The render runs in progressive passes; each
pass tops every pixel up to a larger sample count until the scene's samples
per pixel (or --spp) is reached. Interrupting the render saves the last
completed pass.

The output format is chosen from the file extension: .png, .bmp, .tif or .tiff.`,
			ArgsUsage: "[scene]",
			Flags:     renderFlags(),
			Action:    withErrorLog(RenderScene),
		},
		{
			Name:   "scenes",
			Usage:  "list builtin scenes",
			Action: withErrorLog(ListScenes),
		},
		{
			Name:  "bvh",
			Usage: "build the bounding volume hierarchy of a scene and print its statistics",
			Description: `
Build the scene's BVH and the internal hierarchy of each triangle mesh and
print node counts and depths.`,
			ArgsUsage: "[scene]",
			Flags:     sceneFlags(),
			Action:    withErrorLog(InspectBVH),
		},
	}

	return app
}

// sceneFlags are the flags that select and assemble a scene.
func sceneFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:   "scene, s",
			Value:  "cornell-box",
			Usage:  "builtin scene; see the scenes command",
			EnvVar: "RAYKERNEL_SCENE",
		},
		cli.Int64Flag{
			Name:   "seed",
			Value:  42,
			Usage:  "seed for scene construction and pixel sampling",
			EnvVar: "RAYKERNEL_SEED",
		},
		cli.BoolFlag{
			Name:   "linear",
			Usage:  "search objects linearly instead of through a BVH",
			EnvVar: "RAYKERNEL_LINEAR",
		},
		cli.StringFlag{
			Name:   "mesh",
			Usage:  "wavefront obj file replacing the builtin mesh",
			EnvVar: "RAYKERNEL_MESH",
		},
		cli.StringFlag{
			Name:   "texture",
			Usage:  "image file replacing the builtin globe texture",
			EnvVar: "RAYKERNEL_TEXTURE",
		},
	}
}

func renderFlags() []cli.Flag {
	return append(sceneFlags(),
		cli.StringFlag{
			Name:   "out, o",
			Usage:  "image filename; defaults to output/<scene>/render_<timestamp>.png",
			EnvVar: "RAYKERNEL_OUT",
		},
		cli.IntFlag{
			Name:   "width",
			Value:  400,
			Usage:  "frame width",
			EnvVar: "RAYKERNEL_WIDTH",
		},
		cli.IntFlag{
			Name:   "height",
			Value:  400,
			Usage:  "frame height",
			EnvVar: "RAYKERNEL_HEIGHT",
		},
		cli.IntFlag{
			Name:   "spp",
			Usage:  "samples per pixel; defaults to the scene's recommendation",
			EnvVar: "RAYKERNEL_SPP",
		},
		cli.IntFlag{
			Name:   "depth",
			Usage:  "maximum scattering events per path; defaults to the scene's recommendation",
			EnvVar: "RAYKERNEL_DEPTH",
		},
		cli.IntFlag{
			Name:   "workers",
			Usage:  "render workers; 0 uses one per CPU",
			EnvVar: "RAYKERNEL_WORKERS",
		},
		cli.IntFlag{
			Name:   "passes",
			Value:  5,
			Usage:  "number of progressive passes",
			EnvVar: "RAYKERNEL_PASSES",
		},
	)
}

// withErrorLog logs the error returned by an action before passing it on.
func withErrorLog(action func(*cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		err := action(ctx)
		if err != nil {
			logger.Errorf("%s: %v", ctx.Command.Name, err)
		}
		return err
	}
}
