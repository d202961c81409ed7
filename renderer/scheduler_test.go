package renderer

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestEvenScheduler(t *testing.T) {
	type spec struct {
		workers int
		frameH  uint32
		exp     []uint32
	}
	specs := []spec{
		{1, 10, []uint32{10}},
		{2, 10, []uint32{5, 5}},
		{3, 10, []uint32{4, 3, 3}},
		{4, 4, []uint32{1, 1, 1, 1}},
	}

	for index, s := range specs {
		got := NewEvenScheduler().Schedule(s.workers, s.frameH, nil)
		if diff := cmp.Diff(s.exp, got); diff != "" {
			t.Fatalf("[spec %d] block mismatch (-exp +got):\n%s", index, diff)
		}
	}
}

func TestFeedbackScheduler(t *testing.T) {
	type spec struct {
		rTime1   time.Duration
		rTime2   time.Duration
		expRows1 uint32
		expRows2 uint32
	}
	specs := []spec{
		// First call always behaves like the even scheduler
		{1, 5, 5, 5},
		// Second call should use the render times to assign rows
		{1, 5, 9, 1},
		// This time worker 2 performed much better
		{5, 1, 7, 3},
	}

	sch := NewFeedbackScheduler()
	var lastBlocks []uint32
	for index, s := range specs {
		var lastFrame []WorkerStat
		if lastBlocks != nil {
			lastFrame = []WorkerStat{
				{Id: 0, BlockH: lastBlocks[0], RenderTime: s.rTime1},
				{Id: 1, BlockH: lastBlocks[1], RenderTime: s.rTime2},
			}
		}

		blocks := sch.Schedule(2, 10, lastFrame)

		if blocks[0] != s.expRows1 {
			t.Fatalf("[spec %d] expected worker 0 to be assigned %d rows; got %d", index, s.expRows1, blocks[0])
		}
		if blocks[1] != s.expRows2 {
			t.Fatalf("[spec %d] expected worker 1 to be assigned %d rows; got %d", index, s.expRows2, blocks[1])
		}

		lastBlocks = blocks
	}
}

func TestFeedbackSchedulerKeepsOneRowPerWorker(t *testing.T) {
	lastFrame := []WorkerStat{
		{BlockH: 1, RenderTime: 1000},
		{BlockH: 1, RenderTime: 1000},
		{BlockH: 1, RenderTime: 1},
	}

	blocks := NewFeedbackScheduler().Schedule(3, 3, lastFrame)
	if diff := cmp.Diff([]uint32{1, 1, 1}, blocks); diff != "" {
		t.Fatalf("block mismatch (-exp +got):\n%s", diff)
	}

	// Stats from a different worker count are ignored
	blocks = NewFeedbackScheduler().Schedule(2, 9, lastFrame)
	if diff := cmp.Diff([]uint32{5, 4}, blocks); diff != "" {
		t.Fatalf("block mismatch (-exp +got):\n%s", diff)
	}
}
