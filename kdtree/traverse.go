package kdtree

import (
	"github.com/achilleasa/kdtrace/geometry"
	"github.com/achilleasa/kdtrace/types"
)

// Traversal stack entries per tree level. Each interior node pushes at most
// two entries and pops one so the stack never holds more than depth + 2
// entries.
const traceStackSize = MaxTreeDepth + 2

// The result of a successful trace.
type Hit struct {
	// Index of the intersected primitive.
	Primitive uint32

	// Distance along the ray.
	T float32

	// Barycentric coordinates of the hit point; U weights the second
	// triangle vertex and V the third.
	U float32
	V float32
}

// A Visitor is invoked for every node that the traversal descends into.
// Visitors must not modify the tree.
type Visitor func(node *Node)

type traceEntry struct {
	node *Node

	// The distance to the splitting plane for far children. If a hit
	// at least this close has already been found the entry is skipped.
	tMin float32
	far  bool
}

// Find the nearest primitive hit by r.
func (t *Tree) Trace(r types.Ray) (Hit, bool) {
	return t.TraceVisit(r, nil)
}

// Find the nearest primitive hit by r, invoking visit for each visited node.
func (t *Tree) TraceVisit(r types.Ray, visit Visitor) (Hit, bool) {
	var (
		best     Hit
		found    bool
		stackBuf [traceStackSize]traceEntry
	)

	stack := append(stackBuf[:0], traceEntry{node: t.root})
	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// The best hit lies before the plane that separates us from
		// this voxel
		if entry.far && found && best.T <= entry.tMin {
			continue
		}

		node := entry.node
		if visit != nil {
			visit(node)
		}

		if node.IsLeaf() {
			for _, prim := range node.primitives {
				tHit, u, v, ok := geometry.RayTriangleIntersection(r, t.prims[prim])
				if ok && (!found || tHit < best.T) {
					best = Hit{Primitive: prim, T: tHit, U: u, V: v}
					found = true
				}
			}
			continue
		}

		_, tExit, ok := geometry.RayIntersectsAABB(r, node.bbox)
		if !ok {
			continue
		}

		originDist := r.Origin[node.axis] - node.offset
		tPlane, crosses := geometry.RayAxisPlaneDistance(r, node.axis, node.offset)
		if !crosses {
			switch {
			case originDist < 0:
				stack = append(stack, traceEntry{node: node.below})
			case originDist > 0:
				stack = append(stack, traceEntry{node: node.above})
			default:
				// The ray runs inside the splitting plane
				stack = append(stack, traceEntry{node: node.above}, traceEntry{node: node.below})
			}
			continue
		}

		// The near child contains the ray origin. If the origin lies on
		// the plane, use the side the ray is heading to.
		near, far := node.below, node.above
		if originDist > 0 || (originDist == 0 && r.Dir[node.axis] > 0) {
			near, far = node.above, node.below
		}

		if tPlane <= 0 || tExit < tPlane {
			stack = append(stack, traceEntry{node: near})
			continue
		}

		stack = append(stack,
			traceEntry{node: far, tMin: tPlane, far: true},
			traceEntry{node: near},
		)
	}

	return best, found
}

// Find the nearest primitive hit by r by testing every primitive. It serves
// as a reference for tree traversal.
func LinearScan(prims []geometry.Triangle, r types.Ray) (Hit, bool) {
	var (
		best  Hit
		found bool
	)
	for index := range prims {
		tHit, u, v, ok := geometry.RayTriangleIntersection(r, prims[index])
		if ok && (!found || tHit < best.T) {
			best = Hit{Primitive: uint32(index), T: tHit, U: u, V: v}
			found = true
		}
	}
	return best, found
}
