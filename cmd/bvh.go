package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Build the scene BVH and display its statistics.
func InspectBVH(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	bvh, err := core.NewBVH(sc.Objects, sc.Camera.Time0, sc.Camera.Time1)
	if err != nil {
		return err
	}
	buildTime := time.Since(start)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Hierarchy", "Primitives", "Nodes", "Leaves", "Max depth", "Avg depth"})
	table.Append(bvhRow(sc.Name, bvh.Stats()))
	for i, mesh := range sc.Meshes() {
		table.Append(bvhRow(fmt.Sprintf("mesh %d", i), mesh.Stats()))
	}
	table.SetFooter([]string{"", "", "", "", "BUILD TIME", buildTime.String()})

	table.Render()
	logger.Noticef("bvh statistics (%d primitives in total)\n%s", sc.PrimitiveCount(), buf.String())
	return nil
}

func bvhRow(name string, stats core.BVHStats) []string {
	return []string{
		name,
		fmt.Sprintf("%d", stats.Primitives),
		fmt.Sprintf("%d", stats.Nodes),
		fmt.Sprintf("%d", stats.Leaves),
		fmt.Sprintf("%d", stats.MaxDepth),
		fmt.Sprintf("%.2f", stats.AvgDepth),
	}
}
