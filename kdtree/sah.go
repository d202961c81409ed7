package kdtree

import (
	"math"
	"sort"

	"github.com/achilleasa/kdtrace/geometry"
	"github.com/achilleasa/kdtrace/types"
)

const (
	// A split is refused outright if it costs more than this multiple
	// of not splitting and the node holds fewer than
	// refuseSplitMaxPrims primitives.
	refuseSplitCostFactor float32 = 4
	refuseSplitMaxPrims           = 16

	// Nodes become leaves after this many splits that did not improve
	// the cost along a single path.
	maxBadRefines = 3
)

type edgeKind uint8

const (
	edgeStart edgeKind = iota
	edgeEnd
)

// One end of a primitive's bounding interval along the axis being evaluated.
type boundEdge struct {
	t    float32
	prim uint32
	kind edgeKind
}

// Sort order: by t, ends before starts and then by primitive index so that
// builds are deterministic.
type edgeList []boundEdge

func (l edgeList) Len() int      { return len(l) }
func (l edgeList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l edgeList) Less(i, j int) bool {
	if l[i].t != l[j].t {
		return l[i].t < l[j].t
	}
	if l[i].kind != l[j].kind {
		return l[i].kind == edgeEnd
	}
	return l[i].prim < l[j].prim
}

type sahBuilder struct {
	prims []geometry.Triangle
	opts  Options

	// Per-primitive bounds, computed once per build
	bounds []geometry.AABB

	// Scratch edge buffers, one per axis. They are reused by every
	// node so a builder can only run a single build at a time.
	edges [3]edgeList
}

func newSAHBuilder(prims []geometry.Triangle, opts Options) *sahBuilder {
	b := &sahBuilder{
		prims:  prims,
		opts:   opts,
		bounds: make([]geometry.AABB, len(prims)),
	}

	for index := range prims {
		b.bounds[index] = prims[index].Bounds()
	}
	for axis := range b.edges {
		b.edges[axis] = make(edgeList, 2*len(prims))
	}

	return b
}

func (b *sahBuilder) build(bbox geometry.AABB) *Node {
	primList := make([]uint32, len(b.prims))
	for index := range primList {
		primList[index] = uint32(index)
	}
	return b.partition(bbox, primList, 0, 0)
}

func (b *sahBuilder) partition(voxel geometry.AABB, primList []uint32, depth, badRefines int) *Node {
	count := len(primList)
	if count < b.opts.MaxLeafSize || depth >= b.opts.MaxDepth {
		return newLeaf(voxel, primList)
	}

	totalSA := voxel.SurfaceArea()
	if !(totalSA > 0) {
		return newLeaf(voxel, primList)
	}
	invTotalSA := 1.0 / totalSA
	extent := voxel.Extent()

	oldCost := b.opts.IntersectionCost * float32(count)
	bestCost := float32(math.MaxFloat32)
	bestAxis := -1
	bestOffset := -1

	// Start with the axis of greatest extent and fall back to the other
	// two if it yields no candidate split
	axis := voxel.LongestAxis()
	for retries := 0; bestAxis == -1 && retries < 3; retries++ {
		edges := b.sortedEdges(axis, primList)

		axis0, axis1 := axis.Next(), axis.Next().Next()
		nBelow, nAbove := 0, count
		for i := range edges {
			if edges[i].kind == edgeEnd {
				nAbove--
			}

			edgeT := edges[i].t
			if edgeT > voxel.Min[axis] && edgeT < voxel.Max[axis] {
				belowSA := 2 * (extent[axis0]*extent[axis1] + (edgeT-voxel.Min[axis])*(extent[axis0]+extent[axis1]))
				aboveSA := 2 * (extent[axis0]*extent[axis1] + (voxel.Max[axis]-edgeT)*(extent[axis0]+extent[axis1]))
				cost := b.opts.TraversalCost +
					b.opts.IntersectionCost*(float32(nBelow)*belowSA+float32(nAbove)*aboveSA)*invTotalSA

				if cost < bestCost {
					bestCost = cost
					bestAxis = int(axis)
					bestOffset = i
				}
			}

			if edges[i].kind == edgeStart {
				nBelow++
			}
		}

		axis = axis.Next()
	}

	if bestCost > oldCost {
		badRefines++
	}
	if (bestCost > refuseSplitCostFactor*oldCost && count < refuseSplitMaxPrims) ||
		bestAxis == -1 ||
		badRefines == maxBadRefines {
		return newLeaf(voxel, primList)
	}

	// The edges of the winning axis are still in the scratch buffer as
	// the search stops at the first axis that yields a split
	splitAxis := types.Axis(bestAxis)
	edges := b.edges[splitAxis][:2*count]
	split := edges[bestOffset].t

	belowList := make([]uint32, 0, bestOffset)
	aboveList := make([]uint32, 0, 2*count-bestOffset)
	for i := range edges {
		switch {
		case edges[i].kind == edgeStart && i < bestOffset:
			belowList = append(belowList, edges[i].prim)
		case edges[i].kind == edgeEnd && i > bestOffset:
			aboveList = append(aboveList, edges[i].prim)
		case edges[i].kind == edgeStart && b.flatAt(edges[i].prim, splitAxis, split):
			// Primitives lying in the splitting plane have their end
			// edge sorted before their start edge and would not
			// be assigned to either side
			belowList = append(belowList, edges[i].prim)
		}
	}

	belowBox, aboveBox := voxel.Split(splitAxis, split)
	if b.opts.ExactClassification {
		belowList = b.filterOverlapping(belowList, belowBox)
		aboveList = b.filterOverlapping(aboveList, aboveBox)
	}

	below := b.partition(belowBox, belowList, depth+1, badRefines)
	above := b.partition(aboveBox, aboveList, depth+1, badRefines)
	return newInterior(voxel, splitAxis, split, below, above)
}

// Fill the scratch buffer for axis with the bound edges of primList and sort it.
func (b *sahBuilder) sortedEdges(axis types.Axis, primList []uint32) edgeList {
	edges := b.edges[axis][:2*len(primList)]
	for i, prim := range primList {
		edges[2*i] = boundEdge{t: b.bounds[prim].Min[axis], prim: prim, kind: edgeStart}
		edges[2*i+1] = boundEdge{t: b.bounds[prim].Max[axis], prim: prim, kind: edgeEnd}
	}
	sortEdges(edges)
	return edges
}

func sortEdges(edges edgeList) {
	sort.Sort(edges)
}

func (b *sahBuilder) flatAt(prim uint32, axis types.Axis, offset float32) bool {
	return b.bounds[prim].Min[axis] == offset && b.bounds[prim].Max[axis] == offset
}

// Filter primList in place keeping the primitives whose triangle overlaps voxel.
func (b *sahBuilder) filterOverlapping(primList []uint32, voxel geometry.AABB) []uint32 {
	out := primList[:0]
	for _, prim := range primList {
		if geometry.TriangleIntersectsAABB(b.prims[prim], voxel) {
			out = append(out, prim)
		}
	}
	return out
}
