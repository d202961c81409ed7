package cmd

import (
	"github.com/achilleasa/kdtrace/asset/reader"
	"github.com/achilleasa/kdtrace/kdtree"
	"github.com/urfave/cli"
)

// Build a kd-tree for each mesh argument and display its statistics.
func BuildTree(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errMissingMeshArg
	}

	opts, err := buildOptions(ctx)
	if err != nil {
		return err
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		meshFile := ctx.Args().Get(idx)
		mesh, err := reader.ReadMesh(meshFile)
		if err != nil {
			return err
		}

		tree, err := kdtree.Build(mesh.Triangles(), opts)
		if err != nil {
			return err
		}
		if err = tree.Validate(); err != nil {
			return err
		}

		logger.Noticef("%s tree statistics for %q (%d triangles)\n%s", opts.Strategy, mesh.Name, mesh.Len(), tree.Stats())
	}

	return nil
}
