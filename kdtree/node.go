package kdtree

import (
	"github.com/achilleasa/kdtrace/geometry"
	"github.com/achilleasa/kdtrace/types"
)

// A kd-tree node. Interior nodes carry an axis-aligned splitting plane and
// exactly two children; leaf nodes carry a (possibly empty) list of indices
// into the primitive list the tree was built from.
//
// Nodes are only written by the builders in this package and are read-only
// once the tree is returned to the caller.
type Node struct {
	bbox geometry.AABB

	// Splitting plane (interior nodes)
	axis   types.Axis
	offset float32

	below *Node
	above *Node

	// Primitive indices (leaf nodes)
	primitives []uint32
}

func newLeaf(bbox geometry.AABB, primitives []uint32) *Node {
	return &Node{
		bbox:       bbox,
		primitives: primitives,
	}
}

func newInterior(bbox geometry.AABB, axis types.Axis, offset float32, below, above *Node) *Node {
	return &Node{
		bbox:   bbox,
		axis:   axis,
		offset: offset,
		below:  below,
		above:  above,
	}
}

// Get the node voxel.
func (n *Node) BBox() geometry.AABB {
	return n.bbox
}

// Returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.below == nil && n.above == nil
}

// Get the splitting plane of an interior node. The plane normal points
// towards the above child. Returns false for leaf nodes.
func (n *Node) SplittingPlane() (types.Plane, bool) {
	if n.IsLeaf() {
		return types.Plane{}, false
	}
	return types.NewAxisPlane(n.axis, n.offset), true
}

// Get the axis of the splitting plane.
func (n *Node) SplitAxis() types.Axis {
	return n.axis
}

// Get the offset of the splitting plane along its axis.
func (n *Node) SplitOffset() float32 {
	return n.offset
}

// Get the children of an interior node. The below child covers the half of
// the voxel with coordinates <= the split offset. Returns false for leaf nodes.
func (n *Node) Children() (below, above *Node, ok bool) {
	if n.IsLeaf() {
		return nil, nil, false
	}
	return n.below, n.above, true
}

// Get the number of primitives referenced by a leaf node.
func (n *Node) NumPrimitives() int {
	return len(n.primitives)
}

// Get a copy of the primitive indices referenced by a leaf node.
func (n *Node) Primitives() []uint32 {
	if len(n.primitives) == 0 {
		return nil
	}
	out := make([]uint32, len(n.primitives))
	copy(out, n.primitives)
	return out
}
