package kdtree

import (
	"bytes"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
)

// Tree shape statistics.
type Stats struct {
	Nodes             int
	Leaves            int
	EmptyLeaves       int
	MaxDepth          int
	PrimitiveRefs     int
	MaxLeafPrimitives int
	BuildTime         time.Duration
}

// Get the average number of primitives referenced by non-empty leaves.
func (s Stats) AvgLeafPrimitives() float32 {
	nonEmpty := s.Leaves - s.EmptyLeaves
	if nonEmpty == 0 {
		return 0
	}
	return float32(s.PrimitiveRefs) / float32(nonEmpty)
}

// Render stats as a table.
func (s Stats) String() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Nodes", "Leaves", "Empty leaves", "Max depth", "Prim refs", "Max prims/leaf", "Avg prims/leaf", "Build time"})
	table.Append([]string{
		fmt.Sprintf("%d", s.Nodes),
		fmt.Sprintf("%d", s.Leaves),
		fmt.Sprintf("%d", s.EmptyLeaves),
		fmt.Sprintf("%d", s.MaxDepth),
		fmt.Sprintf("%d", s.PrimitiveRefs),
		fmt.Sprintf("%d", s.MaxLeafPrimitives),
		fmt.Sprintf("%.2f", s.AvgLeafPrimitives()),
		s.BuildTime.String(),
	})
	table.Render()

	return buf.String()
}

func collectStats(root *Node) Stats {
	var stats Stats
	walk(root, func(node *Node, depth int) bool {
		stats.Nodes++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if !node.IsLeaf() {
			return true
		}

		stats.Leaves++
		count := len(node.primitives)
		if count == 0 {
			stats.EmptyLeaves++
		}
		stats.PrimitiveRefs += count
		if count > stats.MaxLeafPrimitives {
			stats.MaxLeafPrimitives = count
		}
		return true
	})
	return stats
}
