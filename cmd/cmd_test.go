package cmd

import (
	"flag"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/achilleasa/kdtrace/kdtree"
	"github.com/achilleasa/kdtrace/log"
	"github.com/achilleasa/kdtrace/types"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func TestParseVec3(t *testing.T) {
	type spec struct {
		in     string
		exp    types.Vec3
		expErr bool
	}
	specs := []spec{
		{"1,2,3", types.Vec3{1, 2, 3}, false},
		{" -1.5, 0 ,2e1", types.Vec3{-1.5, 0, 20}, false},
		{"1,2", types.Vec3{}, true},
		{"1,2,3,4", types.Vec3{}, true},
		{"1,x,3", types.Vec3{}, true},
	}

	for index, s := range specs {
		got, err := parseVec3(s.in)
		if (err != nil) != s.expErr {
			t.Errorf("[spec %d] expected error to be %t; got %v", index, s.expErr, err)
			continue
		}
		if !s.expErr && got != s.exp {
			t.Errorf("[spec %d] expected %v; got %v", index, s.exp, got)
		}
	}
}

func flagContext(t *testing.T, flags []cli.Flag, args ...string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	for _, f := range flags {
		f.Apply(set)
	}
	if err := set.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cli.NewContext(nil, set, nil)
}

func TestBuildOptions(t *testing.T) {
	opts, err := buildOptions(flagContext(t, BuildFlags))
	if err != nil {
		t.Fatal(err)
	}
	if opts != kdtree.DefaultOptions(kdtree.SurfaceAreaHeuristic) {
		t.Fatalf("expected default SAH options; got %+v", opts)
	}

	opts, err = buildOptions(flagContext(t, BuildFlags,
		"--strategy", "naive", "--max-depth", "5", "--traversal-cost", "2", "--exact",
	))
	if err != nil {
		t.Fatal(err)
	}
	exp := kdtree.DefaultOptions(kdtree.NaiveSpatialMedian)
	exp.MaxDepth = 5
	exp.TraversalCost = 2
	exp.ExactClassification = true
	if opts != exp {
		t.Fatalf("expected options %+v; got %+v", exp, opts)
	}

	_, err = buildOptions(flagContext(t, BuildFlags, "-s", "bvh"))
	if errors.Cause(err) != kdtree.ErrUnknownStrategy {
		t.Fatalf("expected ErrUnknownStrategy; got %v", err)
	}
}

func TestRayFromFlags(t *testing.T) {
	r, err := rayFromFlags(flagContext(t, RayFlags, "--origin", "1,2,3", "--dir", "0,0,-4"))
	if err != nil {
		t.Fatal(err)
	}
	if r.Origin != (types.Vec3{1, 2, 3}) || r.Dir != (types.Vec3{0, 0, -1}) {
		t.Fatalf("expected normalized ray; got %v", r)
	}

	if _, err = rayFromFlags(flagContext(t, RayFlags, "--dir", "0,0,0")); err == nil {
		t.Fatal("expected zero direction to be rejected")
	}
	if _, err = rayFromFlags(flagContext(t, RayFlags, "--origin", "0,0")); err == nil || !strings.HasPrefix(err.Error(), "origin") {
		t.Fatalf("expected origin error; got %v", err)
	}
}

func testApp() *cli.App {
	withBuild := func(flags ...cli.Flag) []cli.Flag {
		return append(flags, BuildFlags...)
	}

	app := cli.NewApp()
	app.Flags = []cli.Flag{cli.BoolFlag{Name: "v"}, cli.BoolFlag{Name: "vv"}}
	app.Commands = []cli.Command{
		{
			Name:   "terrain",
			Action: GenerateTerrain,
			Flags: []cli.Flag{
				cli.IntFlag{Name: "size", Value: 6},
				cli.Float64Flag{Name: "scale", Value: 1},
				cli.Float64Flag{Name: "height", Value: 2},
				cli.Int64Flag{Name: "seed", Value: 7},
				cli.IntFlag{Name: "octaves", Value: 3},
				cli.IntFlag{Name: "subdivisions"},
				cli.StringFlag{Name: "out"},
			},
		},
		{Name: "build", Action: BuildTree, Flags: BuildFlags},
		{Name: "trace", Action: TraceRay, Flags: withBuild(RayFlags...)},
		{Name: "debug", Action: DebugRay, Flags: withBuild(append([]cli.Flag{cli.StringFlag{Name: "out"}}, RayFlags...)...)},
		{
			Name:   "render",
			Action: RenderFrame,
			Flags: withBuild(
				cli.IntFlag{Name: "width", Value: 8},
				cli.IntFlag{Name: "height", Value: 6},
				cli.Float64Flag{Name: "fov", Value: 60},
				cli.StringFlag{Name: "eye", Value: "0,10,0"},
				cli.StringFlag{Name: "look", Value: "0,0,0"},
				cli.StringFlag{Name: "up", Value: "0,0,-1"},
				cli.IntFlag{Name: "workers", Value: 2},
				cli.BoolFlag{Name: "adaptive"},
				cli.IntFlag{Name: "frames", Value: 1},
				cli.Float64Flag{Name: "ambient"},
				cli.StringFlag{Name: "out"},
			),
		},
		{
			Name:   "bench",
			Action: Bench,
			Flags: []cli.Flag{
				cli.IntFlag{Name: "rays", Value: 200},
				cli.Int64Flag{Name: "seed", Value: 3},
			},
		},
	}
	return app
}

func TestCommands(t *testing.T) {
	log.SetSink(io.Discard)
	defer log.SetSink(os.Stderr)

	dir := t.TempDir()
	meshFile := filepath.Join(dir, "terrain.obj")
	debugFile := filepath.Join(dir, "debug.obj")
	frameFile := filepath.Join(dir, "frame.png")

	app := testApp()
	runs := [][]string{
		{"kdtrace", "terrain", "--out", meshFile},
		{"kdtrace", "build", meshFile},
		{"kdtrace", "-v", "build", "--strategy", "naive", meshFile},
		{"kdtrace", "trace", "--origin", "0.3,10,0.2", "--dir", "0,-1,0", meshFile},
		{"kdtrace", "debug", "--origin", "0.3,10,0.2", "--dir", "0,-1,0", "--out", debugFile, meshFile},
		{"kdtrace", "render", "--out", frameFile, meshFile},
		{"kdtrace", "render", "--adaptive", "--frames", "2", "--out", frameFile, meshFile},
		{"kdtrace", "bench", meshFile},
	}
	for _, args := range runs {
		if err := app.Run(args); err != nil {
			t.Fatalf("%s: %v", strings.Join(args[1:], " "), err)
		}
	}

	debugLines, err := os.ReadFile(debugFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(debugLines), "l -2 -1") {
		t.Fatalf("expected debug output to contain obj lines; got\n%s", debugLines)
	}

	f, err := os.Open(frameFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	frame, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := frame.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Fatalf("expected an 8x6 frame; got %v", b)
	}
}

func TestCommandErrors(t *testing.T) {
	log.SetSink(io.Discard)
	defer log.SetSink(os.Stderr)

	app := testApp()
	runs := [][]string{
		{"kdtrace", "build"},
		{"kdtrace", "trace"},
		{"kdtrace", "bench"},
		{"kdtrace", "build", "missing.obj"},
		{"kdtrace", "build", "--strategy", "bvh", "missing.obj"},
	}
	for _, args := range runs {
		if err := app.Run(args); err == nil {
			t.Errorf("%s: expected an error", strings.Join(args[1:], " "))
		}
	}
}
