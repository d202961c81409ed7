package main

import (
	"os"

	"github.com/achilleasa/kdtrace/cmd"
	"github.com/achilleasa/kdtrace/log"
	"github.com/urfave/cli"
)

var logger = log.New("kdtrace")

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "kdtrace"
	app.Usage = "build kd-trees over triangle meshes and trace rays through them"
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
			Name:  "build",
			Usage: "build a kd-tree for one or more meshes and display its statistics",
			Description: `
Parse each wavefront obj file, partition its triangles into a kd-tree using the
selected strategy, verify the tree structure and print node, leaf and depth
statistics.`,
			ArgsUsage: "mesh1.obj mesh2.obj ...",
			Flags:     cmd.BuildFlags,
			Action:    cmd.BuildTree,
		},
		{
			Name:      "trace",
			Usage:     "trace a single ray and display the nearest hit",
			ArgsUsage: "mesh.obj",
			Flags:     append(append([]cli.Flag{}, cmd.BuildFlags...), cmd.RayFlags...),
			Action:    cmd.TraceRay,
		},
		{
			Name:      "render",
			Usage:     "render a shaded frame of a mesh",
			ArgsUsage: "mesh.obj",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "frame height",
				},
				cli.Float64Flag{
					Name:  "fov",
					Value: 45,
					Usage: "vertical camera field of view in degrees",
				},
				cli.StringFlag{
					Name:  "eye",
					Value: "0,0,10",
					Usage: "camera position as x,y,z",
				},
				cli.StringFlag{
					Name:  "look",
					Value: "0,0,0",
					Usage: "camera target as x,y,z",
				},
				cli.StringFlag{
					Name:  "up",
					Value: "0,1,0",
					Usage: "camera up vector as x,y,z",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers (0 selects one per CPU)",
				},
				cli.BoolFlag{
					Name:  "adaptive",
					Usage: "balance worker blocks using the render times of the previous frame",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 1,
					Usage: "number of frames to render; only the last one is saved",
				},
				cli.Float64Flag{
					Name:  "ambient",
					Value: 0.1,
					Usage: "ambient light intensity",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			}, cmd.BuildFlags...),
			Action: cmd.RenderFrame,
		},
		{
			Name:  "bench",
			Usage: "compare naive and SAH trees against a linear scan",
			Description: `
Build a naive and a SAH tree for the mesh, trace the same set of random rays
through both trees and through a linear scan of all triangles and report
timings and the number of rays whose result matches the linear scan.`,
			ArgsUsage: "mesh.obj",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "rays",
					Value: 100000,
					Usage: "number of random rays",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "random ray generator seed",
				},
			},
			Action: cmd.Bench,
		},
		{
			Name:      "debug",
			Usage:     "trace a ray and export the visited voxels as obj lines",
			ArgsUsage: "mesh.obj",
			Flags: append(append([]cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "debug.obj",
					Usage: "obj filename for the debug lines",
				},
			}, cmd.BuildFlags...), cmd.RayFlags...),
			Action: cmd.DebugRay,
		},
		{
			Name:  "terrain",
			Usage: "generate a perlin-noise terrain mesh",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "size",
					Value: 32,
					Usage: "grid cells per side",
				},
				cli.Float64Flag{
					Name:  "scale",
					Value: 1,
					Usage: "grid cell size",
				},
				cli.Float64Flag{
					Name:  "height",
					Value: 4,
					Usage: "max terrain displacement",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "noise seed",
				},
				cli.IntFlag{
					Name:  "octaves",
					Value: 3,
					Usage: "noise octaves",
				},
				cli.IntFlag{
					Name:  "subdivisions",
					Usage: "subdivision passes applied to the grid",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "terrain.obj",
					Usage: "obj filename for the generated mesh",
				},
			},
			Action: cmd.GenerateTerrain,
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
