package cmd

import (
	"strconv"
	"strings"

	"github.com/achilleasa/kdtrace/asset/reader"
	"github.com/achilleasa/kdtrace/kdtree"
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var errMissingMeshArg = errors.New("missing mesh file argument")

// Flags for selecting and tuning the kd-tree builder.
var BuildFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "strategy, s",
		Value: kdtree.SurfaceAreaHeuristic.String(),
		Usage: "tree build strategy (sah or naive)",
	},
	cli.IntFlag{
		Name:  "max-depth",
		Usage: "max tree depth (0 selects the strategy default)",
	},
	cli.IntFlag{
		Name:  "leaf-size",
		Usage: "min primitives for splitting a SAH node (0 selects the default)",
	},
	cli.Float64Flag{
		Name:  "traversal-cost",
		Usage: "SAH cost of traversing an interior node (0 selects the default)",
	},
	cli.Float64Flag{
		Name:  "intersection-cost",
		Usage: "SAH cost of a ray/triangle test (0 selects the default)",
	},
	cli.BoolFlag{
		Name:  "exact",
		Usage: "drop SAH leaf primitives whose triangle does not overlap the voxel",
	},
}

// Assemble kd-tree build options from the command flags.
func buildOptions(ctx *cli.Context) (kdtree.Options, error) {
	strategy, err := kdtree.ParseStrategy(ctx.String("strategy"))
	if err != nil {
		return kdtree.Options{}, err
	}

	opts := kdtree.DefaultOptions(strategy)
	if v := ctx.Int("max-depth"); v != 0 {
		opts.MaxDepth = v
	}
	if v := ctx.Int("leaf-size"); v != 0 {
		opts.MaxLeafSize = v
	}
	if v := ctx.Float64("traversal-cost"); v != 0 {
		opts.TraversalCost = float32(v)
	}
	if v := ctx.Float64("intersection-cost"); v != 0 {
		opts.IntersectionCost = float32(v)
	}
	opts.ExactClassification = ctx.Bool("exact")
	return opts, nil
}

// Load the mesh passed as the first command argument and build a tree for it.
func loadTree(ctx *cli.Context) (*scene.Mesh, *kdtree.Tree, error) {
	if ctx.NArg() < 1 {
		return nil, nil, errMissingMeshArg
	}

	opts, err := buildOptions(ctx)
	if err != nil {
		return nil, nil, err
	}

	mesh, err := reader.ReadMesh(ctx.Args().First())
	if err != nil {
		return nil, nil, err
	}

	tree, err := kdtree.Build(mesh.Triangles(), opts)
	if err != nil {
		return nil, nil, err
	}
	logger.Infof("built %s tree for %q in %s", opts.Strategy, mesh.Name, tree.Stats().BuildTime)
	return mesh, tree, nil
}

// Parse a comma separated vector flag such as "1,2.5,-3".
func parseVec3(value string) (types.Vec3, error) {
	var v types.Vec3

	tokens := strings.Split(value, ",")
	if len(tokens) != 3 {
		return v, errors.Errorf("expected 3 comma separated components; got %q", value)
	}
	for i, token := range tokens {
		coord, err := strconv.ParseFloat(strings.TrimSpace(token), 32)
		if err != nil {
			return v, errors.Wrapf(err, "invalid component %d in %q", i, value)
		}
		v[i] = float32(coord)
	}
	return v, nil
}

// Parse the origin and dir flags into a ray.
func rayFromFlags(ctx *cli.Context) (types.Ray, error) {
	origin, err := parseVec3(ctx.String("origin"))
	if err != nil {
		return types.Ray{}, errors.Wrap(err, "origin")
	}
	dir, err := parseVec3(ctx.String("dir"))
	if err != nil {
		return types.Ray{}, errors.Wrap(err, "dir")
	}
	if dir.Len() == 0 {
		return types.Ray{}, errors.New("dir: ray direction must not be zero")
	}
	return types.NewRay(origin, dir.Normalize()), nil
}

// Flags for specifying a single ray.
var RayFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "origin",
		Value: "0,0,0",
		Usage: "ray origin as x,y,z",
	},
	cli.StringFlag{
		Name:  "dir",
		Value: "0,0,-1",
		Usage: "ray direction as x,y,z",
	},
}
