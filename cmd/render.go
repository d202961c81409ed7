package cmd

import (
	"context"
	"image/png"
	"os"
	"os/signal"
	"time"

	"github.com/achilleasa/kdtrace/renderer"
	"github.com/achilleasa/kdtrace/scene"
	"github.com/achilleasa/kdtrace/types"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Render a Lambertian shaded frame and save it as a PNG image.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	opts := renderer.DefaultOptions(uint32(ctx.Int("width")), uint32(ctx.Int("height")))
	opts.Workers = ctx.Int("workers")
	opts.Ambient = float32(ctx.Float64("ambient"))
	opts.AdaptiveScheduling = ctx.Bool("adaptive")

	camera := scene.NewCamera(float32(ctx.Float64("fov")))
	for flag, target := range map[string]*types.Vec3{
		"eye":  &camera.Position,
		"look": &camera.LookAt,
		"up":   &camera.Up,
	} {
		v, err := parseVec3(ctx.String(flag))
		if err != nil {
			return errors.Wrap(err, flag)
		}
		*target = v
	}

	_, tree, err := loadTree(ctx)
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(tree, camera, opts)
	if err != nil {
		return err
	}

	renderCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	frames := ctx.Int("frames")
	if frames < 1 {
		frames = 1
	}
	for frame := 0; frame < frames; frame++ {
		logger.Noticef("rendering %dx%d frame (%d/%d)", opts.FrameW, opts.FrameH, frame+1, frames)
		if err = r.Render(renderCtx); err != nil {
			return err
		}

		// Display stats
		logger.Noticef("frame statistics\n%s", r.Stats())
	}

	// Export PNG
	imgFile := ctx.String("out")
	f, err := os.Create(imgFile)
	if err != nil {
		return errors.Wrap(err, "could not create frame file")
	}
	defer f.Close()

	start := time.Now()
	if err = png.Encode(f, r.Frame()); err != nil {
		return errors.Wrap(err, "could not encode png file")
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(start).Nanoseconds()/1e6)
	return nil
}
