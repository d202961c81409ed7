package kdtree

import (
	"github.com/achilleasa/kdtrace/geometry"
	"github.com/achilleasa/kdtrace/types"
)

var (
	// Leaf voxels and triangles with at least one vertex inside their leaf voxel.
	DebugColorLeaf = types.Vec3{1, 1, 0}

	// Triangles that overlap a leaf voxel without any vertex inside it.
	DebugColorStraddling = types.Vec3{1, 0, 1}
)

// A colored line segment.
type DebugLine struct {
	From  types.Vec3
	To    types.Vec3
	Color types.Vec3
}

// Collects debug lines for the nodes visited while tracing a ray. Interior
// voxels are colored by the normal of their splitting plane.
type DebugCollector struct {
	prims []geometry.Triangle
	Lines []DebugLine

	// The number of visited nodes and leaves
	NodesVisited  int
	LeavesVisited int
}

// Create a collector for rays traced through tree.
func NewDebugCollector(tree *Tree) *DebugCollector {
	return &DebugCollector{
		prims: tree.Primitives(),
	}
}

// Get a Visitor that feeds this collector.
func (c *DebugCollector) Visitor() Visitor {
	return c.Visit
}

// Emit the debug lines for a node.
func (c *DebugCollector) Visit(node *Node) {
	c.NodesVisited++

	color := DebugColorLeaf
	if !node.IsLeaf() {
		color = node.axis.Unit()
	}
	c.addBox(node.bbox, color)

	if !node.IsLeaf() {
		return
	}

	c.LeavesVisited++
	center := node.bbox.Center()
	halfWidths := node.bbox.HalfWidths()
	for _, prim := range node.primitives {
		tri := &c.prims[prim]

		color := DebugColorStraddling
		for _, v := range tri.Vertices {
			if geometry.PointInsideAABB(v.Position, center, halfWidths) {
				color = DebugColorLeaf
				break
			}
		}

		for i := 0; i < 3; i++ {
			c.Lines = append(c.Lines, DebugLine{
				From:  tri.Vertices[i].Position,
				To:    tri.Vertices[(i+1)%3].Position,
				Color: color,
			})
		}
	}
}

// Discard the collected lines and counters.
func (c *DebugCollector) Reset() {
	c.Lines = c.Lines[:0]
	c.NodesVisited = 0
	c.LeavesVisited = 0
}

// Emit the 12 edges of box.
func (c *DebugCollector) addBox(box geometry.AABB, color types.Vec3) {
	corners := geometry.BoxVertices(box)

	// Corner i has max coordinates on the axes whose bit is set in i;
	// edges connect corners that differ in a single bit
	for i := range corners {
		for axis := 0; axis < 3; axis++ {
			j := i | 1<<uint(axis)
			if j == i {
				continue
			}
			c.Lines = append(c.Lines, DebugLine{
				From:  corners[i],
				To:    corners[j],
				Color: color,
			})
		}
	}
}
