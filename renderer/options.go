package renderer

import "runtime"

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of workers rendering frame blocks in parallel. Values below 1
	// select one worker per CPU.
	Workers int

	// Size frame blocks using the per-worker render times of the previous
	// frame instead of splitting rows evenly.
	AdaptiveScheduling bool

	// Intensity added to every shaded hit so that unlit surfaces remain
	// visible.
	Ambient float32

	// Intensity for pixels whose primary ray misses the mesh.
	Background float32
}

// Get the default render options for a frame.
func DefaultOptions(frameW, frameH uint32) Options {
	return Options{
		FrameW:  frameW,
		FrameH:  frameH,
		Workers: runtime.NumCPU(),
		Ambient: 0.1,
	}
}

func (opts *Options) numWorkers() int {
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > int(opts.FrameH) {
		workers = int(opts.FrameH)
	}
	return workers
}
