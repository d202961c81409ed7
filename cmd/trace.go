package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Trace a single ray and display the nearest hit.
func TraceRay(ctx *cli.Context) error {
	setupLogging(ctx)

	r, err := rayFromFlags(ctx)
	if err != nil {
		return err
	}

	mesh, tree, err := loadTree(ctx)
	if err != nil {
		return err
	}

	hit, ok := tree.Trace(r)
	if !ok {
		logger.Noticef("%s does not hit %q", r, mesh.Name)
		return nil
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Primitive", "t", "u", "v", "Point", "Shade"})
	table.Append([]string{
		fmt.Sprintf("%d", hit.Primitive),
		fmt.Sprintf("%.5f", hit.T),
		fmt.Sprintf("%.5f", hit.U),
		fmt.Sprintf("%.5f", hit.V),
		fmt.Sprintf("%v", r.PointAt(hit.T)),
		fmt.Sprintf("%.3f", mesh.ShadeHit(hit)),
	})
	table.Render()

	logger.Noticef("nearest hit for %s\n%s", r, buf.String())
	return nil
}
