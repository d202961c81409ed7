package kdtree

import (
	"github.com/achilleasa/kdtrace/geometry"
	"github.com/achilleasa/kdtrace/types"
)

// Partitions space by splitting every voxel in half, cycling the split axis
// with the node depth. Each leaf is populated by testing every primitive in
// the list against the leaf voxel.
type naiveBuilder struct {
	prims    []geometry.Triangle
	maxDepth int
}

func (b *naiveBuilder) build(bbox geometry.AABB) *Node {
	return b.partition(bbox, 0)
}

func (b *naiveBuilder) partition(voxel geometry.AABB, depth int) *Node {
	if depth >= b.maxDepth {
		return newLeaf(voxel, b.overlapping(voxel))
	}

	axis := types.Axis(depth % 3)
	offset := 0.5 * (voxel.Min[axis] + voxel.Max[axis])
	belowBox, aboveBox := voxel.Split(axis, offset)

	return newInterior(
		voxel,
		axis,
		offset,
		b.partition(belowBox, depth+1),
		b.partition(aboveBox, depth+1),
	)
}

// Collect the indices of all primitives that overlap voxel.
func (b *naiveBuilder) overlapping(voxel geometry.AABB) []uint32 {
	var out []uint32
	for index := range b.prims {
		if geometry.TriangleIntersectsAABB(b.prims[index], voxel) {
			out = append(out, uint32(index))
		}
	}
	return out
}
