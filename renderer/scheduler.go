package renderer

import "math"

// The BlockScheduler interface is implemented by all block scheduling
// algorithms.
type BlockScheduler interface {
	// Split the frame rows into one contiguous block per worker. The
	// stats of the previous frame (if any) may be used as feedback.
	//
	// This function returns the block height assignment for each worker.
	Schedule(workers int, frameH uint32, lastFrame []WorkerStat) []uint32
}

// The even scheduler assigns the same number of rows to every worker. Any
// leftover rows go to the first workers.
type evenScheduler struct{}

// Create a scheduler that splits frames evenly.
func NewEvenScheduler() BlockScheduler {
	return evenScheduler{}
}

func (evenScheduler) Schedule(workers int, frameH uint32, _ []WorkerStat) []uint32 {
	blocks := make([]uint32, workers)
	blockH := frameH / uint32(workers)
	remainder := frameH % uint32(workers)
	for idx := range blocks {
		blocks[idx] = blockH
		if uint32(idx) < remainder {
			blocks[idx]++
		}
	}
	return blocks
}

// The feedback scheduler assumes that the tracing workload of two subsequent
// frames is approximately the same and sizes each block by the row
// throughput its worker achieved in the previous frame.
type feedbackScheduler struct {
	even evenScheduler
}

// Create a scheduler that balances blocks using previous frame stats.
func NewFeedbackScheduler() BlockScheduler {
	return &feedbackScheduler{}
}

// When previous frame information is available the block height for
// worker w is estimated as:
// h_w = frameH * (blockH_w / time_w) / Σ(blockH_i / time_i)
func (sch *feedbackScheduler) Schedule(workers int, frameH uint32, lastFrame []WorkerStat) []uint32 {
	if len(lastFrame) != workers {
		return sch.even.Schedule(workers, frameH, nil)
	}

	rates := make([]float64, workers)
	var total float64
	for idx, stat := range lastFrame {
		if stat.RenderTime <= 0 || stat.BlockH == 0 {
			return sch.even.Schedule(workers, frameH, nil)
		}
		rates[idx] = float64(stat.BlockH) / float64(stat.RenderTime)
		total += rates[idx]
	}

	blocks := make([]uint32, workers)
	var scheduledRows uint32
	for idx, rate := range rates {
		blocks[idx] = uint32(math.Max(1.0, math.Floor(rate/total*float64(frameH))))
		scheduledRows += blocks[idx]
	}

	// Every worker keeps at least one row; take any excess rows from the
	// largest blocks
	for scheduledRows > frameH {
		largest := 0
		for idx := range blocks {
			if blocks[idx] > blocks[largest] {
				largest = idx
			}
		}
		blocks[largest]--
		scheduledRows--
	}

	// In case rows don't add up to the frame height append the missing ones to the first worker
	blocks[0] += frameH - scheduledRows

	return blocks
}
