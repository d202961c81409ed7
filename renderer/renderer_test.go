package renderer

import (
	"context"
	"strings"
	"testing"

	"github.com/achilleasa/kdtrace/geometry"
	"github.com/achilleasa/kdtrace/kdtree"
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
	"github.com/pkg/errors"
)

// A quad at y = 0 facing +Y that covers the x < 0 half of the view.
func halfPlaneTree(t *testing.T) *kdtree.Tree {
	tris := []geometry.Triangle{
		geometry.NewTriangle(types.Vec3{-10, 0, -10}, types.Vec3{-10, 0, 10}, types.Vec3{0, 0, -10}),
		geometry.NewTriangle(types.Vec3{0, 0, -10}, types.Vec3{-10, 0, 10}, types.Vec3{0, 0, 10}),
	}
	tree, err := kdtree.BuildSAH(tris, 16, 1)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func topDownCamera() *scene.Camera {
	cam := scene.NewCamera(60)
	cam.Position = types.Vec3{0, 5, 0}
	cam.LookAt = types.Vec3{0, 0, 0}
	cam.Up = types.Vec3{0, 0, -1}
	return cam
}

func TestNewRendererValidation(t *testing.T) {
	tree := halfPlaneTree(t)

	type spec struct {
		tree   *kdtree.Tree
		camera *scene.Camera
		opts   Options
		expErr error
	}
	specs := []spec{
		{nil, topDownCamera(), DefaultOptions(4, 4), ErrTreeNotDefined},
		{tree, nil, DefaultOptions(4, 4), ErrCameraNotDefined},
		{tree, topDownCamera(), DefaultOptions(0, 4), ErrInvalidFrameSize},
		{tree, topDownCamera(), DefaultOptions(4, 0), ErrInvalidFrameSize},
		{tree, topDownCamera(), DefaultOptions(4, 4), nil},
	}

	for index, s := range specs {
		_, err := NewRenderer(s.tree, s.camera, s.opts)
		if errors.Cause(err) != s.expErr {
			t.Errorf("[spec %d] expected error %v; got %v", index, s.expErr, err)
		}
	}
}

func TestRenderHalfPlane(t *testing.T) {
	opts := DefaultOptions(4, 4)
	opts.Workers = 3
	opts.Ambient = 0
	opts.Background = 0

	r, err := NewRenderer(halfPlaneTree(t), topDownCamera(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if err = r.Render(context.Background()); err != nil {
		t.Fatal(err)
	}

	frame := r.Frame()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			exp := uint8(0)
			if x < 2 {
				exp = 255
			}
			if got := frame.GrayAt(x, y).Y; got != exp {
				t.Fatalf("expected pixel (%d, %d) to be %d; got %d", x, y, exp, got)
			}
		}
	}

	stats := r.Stats()
	if len(stats.Workers) != 3 {
		t.Fatalf("expected stats for 3 workers; got %d", len(stats.Workers))
	}
	expBlocks := [][2]uint32{{0, 2}, {2, 1}, {3, 1}}
	for i, stat := range stats.Workers {
		if stat.BlockY != expBlocks[i][0] || stat.BlockH != expBlocks[i][1] {
			t.Fatalf("expected worker %d to render rows [%d, +%d); got [%d, +%d)", i, expBlocks[i][0], expBlocks[i][1], stat.BlockY, stat.BlockH)
		}
	}
	if rays, hits := stats.Totals(); rays != 16 || hits != 8 {
		t.Fatalf("expected 16 rays and 8 hits; got %d and %d", rays, hits)
	}
	if out := stats.String(); !strings.Contains(out, "Worker") || !strings.Contains(out, "MRays/s") {
		t.Fatalf("expected stats table; got\n%s", out)
	}
}

func TestRenderAmbientAndBackground(t *testing.T) {
	opts := DefaultOptions(2, 1)
	opts.Workers = 8
	opts.Ambient = 0.5
	opts.Background = 0.2

	tris := []geometry.Triangle{
		// Faces +Z so the light at +Y contributes nothing
		geometry.NewTriangle(types.Vec3{-20, -20, -5}, types.Vec3{0, -20, -5}, types.Vec3{0, 20, -5}),
	}
	tree, err := kdtree.BuildNaive(tris)
	if err != nil {
		t.Fatal(err)
	}

	r, err := NewRenderer(tree, scene.NewCamera(60), opts)
	if err != nil {
		t.Fatal(err)
	}
	if err = r.Render(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := r.Frame().GrayAt(0, 0).Y; got != 128 {
		t.Fatalf("expected ambient-only pixel to be 128; got %d", got)
	}
	if got := r.Frame().GrayAt(1, 0).Y; got != 51 {
		t.Fatalf("expected background pixel to be 51; got %d", got)
	}

	// Worker count is capped by the frame height
	if n := len(r.Stats().Workers); n != 1 {
		t.Fatalf("expected a single worker; got %d", n)
	}
}

func TestRenderInterrupted(t *testing.T) {
	r, err := NewRenderer(halfPlaneTree(t), topDownCamera(), DefaultOptions(8, 8))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err = r.Render(ctx); err != ErrInterrupted {
		t.Fatalf("expected ErrInterrupted; got %v", err)
	}
}

func TestAdaptiveSchedulingAcrossFrames(t *testing.T) {
	opts := DefaultOptions(16, 12)
	opts.Workers = 3
	opts.AdaptiveScheduling = true

	r, err := NewRenderer(halfPlaneTree(t), topDownCamera(), opts)
	if err != nil {
		t.Fatal(err)
	}

	var firstFrame []uint8
	for frame := 0; frame < 3; frame++ {
		if err = r.Render(context.Background()); err != nil {
			t.Fatal(err)
		}

		var rows, nextY uint32
		for _, stat := range r.Stats().Workers {
			if stat.BlockH == 0 || stat.BlockY != nextY {
				t.Fatalf("[frame %d] expected contiguous non-empty blocks; got %+v", frame, r.Stats().Workers)
			}
			rows += stat.BlockH
			nextY += stat.BlockH
		}
		if rows != opts.FrameH {
			t.Fatalf("[frame %d] expected blocks to cover %d rows; got %d", frame, opts.FrameH, rows)
		}

		// Block sizes must not affect the rendered image
		pix := append([]uint8(nil), r.Frame().Pix...)
		if firstFrame == nil {
			firstFrame = pix
		} else if string(pix) != string(firstFrame) {
			t.Fatalf("[frame %d] expected identical frames", frame)
		}
	}
}
