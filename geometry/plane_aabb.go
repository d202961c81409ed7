package geometry

import "github.com/achilleasa/kdtrace/types"

// Test whether a plane passes through an AABB.
func AABBIntersectsPlane(box AABB, plane types.Plane) bool {
	if box.IsEmpty() {
		return false
	}
	return AABBIntersectsPlaneHalfWidths(box.Center(), box.HalfWidths(), plane)
}

// Test whether a plane passes through the box defined by center and
// halfWidths. The box corners nearest and furthest along the plane normal
// must lie on opposite sides of the plane; a corner lying on the plane counts
// as touching. The plane normal does not need to be normalized.
func AABBIntersectsPlaneHalfWidths(center, halfWidths types.Vec3, plane types.Plane) bool {
	var nearCorner, farCorner types.Vec3
	for axis := 0; axis < 3; axis++ {
		if plane.Normal[axis] > 0 {
			nearCorner[axis] = center[axis] - halfWidths[axis]
			farCorner[axis] = center[axis] + halfWidths[axis]
		} else {
			nearCorner[axis] = center[axis] + halfWidths[axis]
			farCorner[axis] = center[axis] - halfWidths[axis]
		}
	}

	return plane.Distance(nearCorner) <= 0 && plane.Distance(farCorner) >= 0
}

// Test whether point lies inside or on the boundary of the box defined by
// center and halfWidths.
func PointInsideAABB(point, center, halfWidths types.Vec3) bool {
	rel := point.Sub(center).Abs()
	return rel[0] <= halfWidths[0] && rel[1] <= halfWidths[1] && rel[2] <= halfWidths[2]
}
