package kdtree

import (
	"github.com/achilleasa/kdtrace/geometry"
	"github.com/pkg/errors"
)

// A kd-tree over a list of triangles. Trees are immutable and safe for
// concurrent use once built.
type Tree struct {
	root  *Node
	prims []geometry.Triangle
	bbox  geometry.AABB
	opts  Options
	stats Stats
}

// Get the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Get the primitive list that the tree indexes.
func (t *Tree) Primitives() []geometry.Triangle {
	return t.prims
}

// Get the bounding box of all primitives.
func (t *Tree) BBox() geometry.AABB {
	return t.bbox
}

// Get the options used to build the tree.
func (t *Tree) Options() Options {
	return t.opts
}

// Get the tree build statistics.
func (t *Tree) Stats() Stats {
	return t.stats
}

// A callback for Walk. Returning false skips the children of node.
type WalkFunc func(node *Node, depth int) bool

// Visit all nodes in depth-first order, below children first.
func (t *Tree) Walk(fn WalkFunc) {
	walk(t.root, fn)
}

func walk(root *Node, fn WalkFunc) {
	type walkEntry struct {
		node  *Node
		depth int
	}

	stack := []walkEntry{{root, 0}}
	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(entry.node, entry.depth) || entry.node.IsLeaf() {
			continue
		}
		stack = append(stack,
			walkEntry{entry.node.above, entry.depth + 1},
			walkEntry{entry.node.below, entry.depth + 1},
		)
	}
}

// Check the structural invariants of the tree: interior nodes have two
// children whose voxels are the parent voxel split at the splitting plane
// and every primitive referenced by a leaf overlaps the leaf voxel.
//
// Overlap is checked with the exact triangle test for trees whose builder
// classifies primitives exactly and with the primitive bounds otherwise.
func (t *Tree) Validate() error {
	exact := t.opts.Strategy == NaiveSpatialMedian || t.opts.ExactClassification

	var err error
	t.Walk(func(node *Node, depth int) bool {
		if err != nil {
			return false
		}

		if node.IsLeaf() {
			for _, prim := range node.primitives {
				if int(prim) >= len(t.prims) {
					err = errors.Wrapf(ErrInvalidStructure, "leaf at depth %d references out of range primitive %d", depth, prim)
					return false
				}

				tri := t.prims[prim]
				overlaps := tri.Bounds().Overlaps(node.bbox)
				if exact {
					overlaps = geometry.TriangleIntersectsAABB(tri, node.bbox)
				}
				if !overlaps {
					err = errors.Wrapf(ErrInvalidStructure, "leaf at depth %d references primitive %d which does not overlap voxel %v", depth, prim, node.bbox)
					return false
				}
			}
			return true
		}

		if node.below == nil || node.above == nil {
			err = errors.Wrapf(ErrInvalidStructure, "interior node at depth %d is missing a child", depth)
			return false
		}

		expBelow, expAbove := node.bbox.Split(node.axis, node.offset)
		if node.below.bbox != expBelow || node.above.bbox != expAbove {
			err = errors.Wrapf(ErrInvalidStructure, "children of interior node at depth %d do not split voxel %v at %s=%g", depth, node.bbox, node.axis, node.offset)
			return false
		}
		if len(node.primitives) != 0 {
			err = errors.Wrapf(ErrInvalidStructure, "interior node at depth %d references primitives", depth)
			return false
		}
		return true
	})

	return err
}
