package renderer

import (
	"context"
	"image"
	"image/color"
	"time"

	"github.com/achilleasa/kdtrace/kdtree"
	"github.com/achilleasa/kdtrace/log"
	"github.com/achilleasa/kdtrace/scene"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

type Renderer interface {
	// Render frame.
	Render(ctx context.Context) error

	// Get the last rendered frame.
	Frame() *image.Gray

	// Get render statistics.
	Stats() FrameStats
}

// A renderer that shades the primary ray hits of a camera against a kd-tree.
// Frame rows are split into contiguous blocks, one per worker, by a
// BlockScheduler.
type frameRenderer struct {
	logger log.Logger

	tree      *kdtree.Tree
	camera    *scene.Camera
	opts      Options
	scheduler BlockScheduler

	frame *image.Gray
	stats FrameStats
}

// Create a new frame renderer. The camera projection is set up to match the
// frame aspect ratio.
func NewRenderer(tree *kdtree.Tree, camera *scene.Camera, opts Options) (Renderer, error) {
	switch {
	case tree == nil:
		return nil, ErrTreeNotDefined
	case camera == nil:
		return nil, ErrCameraNotDefined
	case opts.FrameW == 0 || opts.FrameH == 0:
		return nil, errors.Wrapf(ErrInvalidFrameSize, "%dx%d", opts.FrameW, opts.FrameH)
	}

	camera.SetupProjection(float32(opts.FrameW) / float32(opts.FrameH))

	scheduler := NewEvenScheduler()
	if opts.AdaptiveScheduling {
		scheduler = NewFeedbackScheduler()
	}

	return &frameRenderer{
		logger:    log.New("renderer"),
		tree:      tree,
		camera:    camera,
		opts:      opts,
		scheduler: scheduler,
		frame:     image.NewGray(image.Rect(0, 0, int(opts.FrameW), int(opts.FrameH))),
	}, nil
}

func (r *frameRenderer) Frame() *image.Gray {
	return r.frame
}

func (r *frameRenderer) Stats() FrameStats {
	return r.stats
}

// Render frame. Workers stop at the next row boundary when ctx is cancelled.
func (r *frameRenderer) Render(ctx context.Context) error {
	start := time.Now()

	workers := r.opts.numWorkers()
	blocks := r.scheduler.Schedule(workers, r.opts.FrameH, r.stats.Workers)
	r.stats = FrameStats{Workers: make([]WorkerStat, workers)}

	eg, ctx := errgroup.WithContext(ctx)
	var blockY uint32
	for id := 0; id < workers; id++ {
		stat := &r.stats.Workers[id]
		stat.Id = id
		stat.BlockY = blockY
		stat.BlockH = blocks[id]
		stat.FramePercent = 100 * float32(stat.BlockH) / float32(r.opts.FrameH)
		blockY += stat.BlockH

		eg.Go(func() error {
			return r.renderBlock(ctx, stat)
		})
	}

	err := eg.Wait()
	r.stats.RenderTime = time.Since(start)
	if err != nil {
		return err
	}

	r.logger.Debugf("rendered %dx%d frame in %s", r.opts.FrameW, r.opts.FrameH, r.stats.RenderTime)
	return nil
}

func (r *frameRenderer) renderBlock(ctx context.Context, stat *WorkerStat) error {
	start := time.Now()
	defer func() { stat.RenderTime = time.Since(start) }()

	prims := r.tree.Primitives()
	frameW, frameH := int(r.opts.FrameW), int(r.opts.FrameH)
	for y := int(stat.BlockY); y < int(stat.BlockY+stat.BlockH); y++ {
		select {
		case <-ctx.Done():
			return ErrInterrupted
		default:
		}

		for x := 0; x < frameW; x++ {
			stat.Rays++
			intensity := r.opts.Background

			hit, ok := r.tree.Trace(r.camera.PixelRay(x, y, frameW, frameH))
			if ok {
				stat.Hits++
				intensity = r.opts.Ambient + (1-r.opts.Ambient)*scene.Shade(&prims[hit.Primitive], hit.U, hit.V)
			}
			r.frame.SetGray(x, y, color.Gray{Y: toByte(intensity)})
		}
	}
	return nil
}

func toByte(intensity float32) uint8 {
	switch {
	case intensity <= 0 || intensity != intensity:
		return 0
	case intensity >= 1:
		return 255
	}
	return uint8(intensity*255 + 0.5)
}
