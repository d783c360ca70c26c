package cmd

import (
	"bytes"
	"fmt"

	"github.com/df07/go-raykernel/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List builtin scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Scene", "Name", "Mesh", "Texture", "Description"})
	for _, info := range scene.List() {
		table.Append([]string{
			info.ID,
			info.Name,
			fmt.Sprintf("%t", info.UsesMesh),
			fmt.Sprintf("%t", info.UsesTexture),
			info.Description,
		})
	}

	table.Render()
	logger.Noticef("builtin scenes\n%s", buf.String())
	return nil
}

// sceneName returns the positional scene argument or the --scene flag.
func sceneName(ctx *cli.Context) string {
	if ctx.NArg() > 0 {
		return ctx.Args().First()
	}
	return ctx.String("scene")
}

// loadScene builds the scene selected on the command line.
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	opts := scene.Options{
		Linear:      ctx.Bool("linear"),
		MeshPath:    ctx.String("mesh"),
		TexturePath: ctx.String("texture"),
		Seed:        ctx.Int64("seed"),
	}

	name := sceneName(ctx)
	logger.Noticef("building scene %q", name)
	return scene.Lookup(name, opts)
}
