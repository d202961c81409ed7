package cmd

import (
	"github.com/achilleasa/kdtrace/asset/writer"
	"github.com/achilleasa/kdtrace/kdtree"
	"github.com/urfave/cli"
)

// Trace a single ray and write the outlines of every visited voxel and leaf
// triangle to an obj file.
func DebugRay(ctx *cli.Context) error {
	setupLogging(ctx)

	r, err := rayFromFlags(ctx)
	if err != nil {
		return err
	}

	_, tree, err := loadTree(ctx)
	if err != nil {
		return err
	}

	collector := kdtree.NewDebugCollector(tree)
	hit, ok := tree.TraceVisit(r, collector.Visitor())
	if ok {
		logger.Noticef("ray hits primitive %d at t=%f", hit.Primitive, hit.T)
	} else {
		logger.Notice("ray does not hit any primitive")
	}
	logger.Noticef(
		"visited %d nodes (%d leaves) and collected %d debug lines",
		collector.NodesVisited, collector.LeavesVisited, len(collector.Lines),
	)

	return writer.WriteDebugLinesFile(ctx.String("out"), collector.Lines)
}
