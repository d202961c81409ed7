package cmd

import (
	"github.com/achilleasa/kdtrace/asset/writer"
	"github.com/achilleasa/kdtrace/scene"
	"github.com/urfave/cli"
)

// Generate a perlin-noise terrain mesh and save it as an obj file.
func GenerateTerrain(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := scene.DefaultTerrainOptions()
	opts.Size = ctx.Int("size")
	opts.Scale = float32(ctx.Float64("scale"))
	opts.Height = float32(ctx.Float64("height"))
	opts.Seed = ctx.Int64("seed")
	opts.Octaves = int32(ctx.Int("octaves"))
	opts.Subdivisions = ctx.Int("subdivisions")

	mesh, err := scene.GenerateTerrain(opts)
	if err != nil {
		return err
	}
	logger.Noticef("generated terrain with %d triangles; bbox %s", mesh.Len(), mesh.BBox())

	return writer.WriteMeshFile(ctx.String("out"), mesh)
}
