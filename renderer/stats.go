package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

type WorkerStat struct {
	// The worker id.
	Id int

	// The block height and the percentage of total frame area it represents.
	BlockY       uint32
	BlockH       uint32
	FramePercent float32

	// Number of primary rays traced and the number of rays that hit the mesh.
	Rays uint64
	Hits uint64

	// Render time for assigned block
	RenderTime time.Duration
}

type FrameStats struct {
	// Individual worker stats.
	Workers []WorkerStat

	// Total render time for entire frame.
	RenderTime time.Duration
}

// Get the total number of traced rays and hits.
func (fs FrameStats) Totals() (rays, hits uint64) {
	for _, stat := range fs.Workers {
		rays += stat.Rays
		hits += stat.Hits
	}
	return rays, hits
}

// Render the stats as a table.
func (fs FrameStats) String() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Block Y", "Block height", "% of frame", "Rays", "Hits", "Render time"})
	for _, stat := range fs.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", stat.Id),
			fmt.Sprintf("%d", stat.BlockY),
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%d", stat.Rays),
			fmt.Sprintf("%d", stat.Hits),
			stat.RenderTime.String(),
		})
	}

	rays, hits := fs.Totals()
	var mraysPerSec float64
	if secs := fs.RenderTime.Seconds(); secs > 0 {
		mraysPerSec = float64(rays) / secs / 1e6
	}
	table.SetFooter([]string{"", "", "", "", fmt.Sprintf("%d", rays), fmt.Sprintf("%d", hits), fmt.Sprintf("%s (%.2f MRays/s)", fs.RenderTime, mraysPerSec)})
	table.Render()

	return buf.String()
}
