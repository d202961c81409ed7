package geometry

import (
	"fmt"
	"math"

	"github.com/achilleasa/kdtrace/types"
)

// An axis-aligned bounding box.
type AABB struct {
	Min types.Vec3
	Max types.Vec3
}

// Create an AABB from its extents.
func NewAABB(min, max types.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Get an empty AABB. Extending an empty box with a point yields a box that
// contains only that point.
func EmptyAABB() AABB {
	return AABB{
		Min: types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Calculate the AABB that encloses every vertex of the triangle list. An
// empty list yields an empty AABB.
func ComputeAABB(tris []Triangle) AABB {
	box := EmptyAABB()
	for i := range tris {
		for j := range tris[i].Vertices {
			box = box.Extend(tris[i].Vertices[j].Position)
		}
	}
	return box
}

// Returns true if min > max along any axis.
func (b AABB) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Grow the box so that it includes point.
func (b AABB) Extend(point types.Vec3) AABB {
	return AABB{
		Min: types.MinVec3(b.Min, point),
		Max: types.MaxVec3(b.Max, point),
	}
}

// Get the union of two boxes.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: types.MinVec3(b.Min, other.Min),
		Max: types.MaxVec3(b.Max, other.Max),
	}
}

// Check whether two boxes overlap. Touching boxes overlap.
func (b AABB) Overlaps(other AABB) bool {
	for axis := 0; axis < 3; axis++ {
		if b.Max[axis] < other.Min[axis] || b.Min[axis] > other.Max[axis] {
			return false
		}
	}
	return true
}

// Check whether point lies inside the box or on its boundary.
func (b AABB) ContainsPoint(point types.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if point[axis] < b.Min[axis] || point[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}

// Get the box side lengths.
func (b AABB) Extent() types.Vec3 {
	return b.Max.Sub(b.Min)
}

// Get the box center.
func (b AABB) Center() types.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get the box half side lengths.
func (b AABB) HalfWidths() types.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Get the box surface area.
func (b AABB) SurfaceArea() float32 {
	side := b.Extent()
	return 2.0 * (side[0]*side[1] + side[0]*side[2] + side[1]*side[2])
}

// Get the axis with the greatest extent. Ties prefer the lower axis.
func (b AABB) LongestAxis() types.Axis {
	side := b.Extent()
	axis := types.XAxis
	if side[1] > side[0] {
		axis = types.YAxis
	}
	if side[2] > side[axis] {
		axis = types.ZAxis
	}
	return axis
}

// Split the box with a plane perpendicular to axis at offset.
func (b AABB) Split(axis types.Axis, offset float32) (below, above AABB) {
	below, above = b, b
	below.Max[axis] = offset
	above.Min[axis] = offset
	return below, above
}

func (b AABB) String() string {
	return fmt.Sprintf("[min: %v, max: %v]", b.Min, b.Max)
}
