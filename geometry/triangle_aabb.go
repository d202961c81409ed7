package geometry

import "github.com/achilleasa/kdtrace/types"

// Test whether a triangle overlaps an AABB using the separating axis theorem.
// The box face normals, the triangle normal and the 9 cross products of the
// triangle edges with the box axes are tested in turn and the test stops at
// the first separating axis. Touching shapes are reported as intersecting.
func TriangleIntersectsAABB(tri Triangle, box AABB) bool {
	if box.IsEmpty() {
		return false
	}

	center := box.Center()
	halfWidths := box.HalfWidths()

	// Work in box space
	var v [3]types.Vec3
	for i := range v {
		v[i] = tri.Vertices[i].Position.Sub(center)
	}

	// Box face normals: compare the triangle bounds with the box
	for axis := 0; axis < 3; axis++ {
		min, max := minMax3(v[0][axis], v[1][axis], v[2][axis])
		if min > halfWidths[axis] || max < -halfWidths[axis] {
			return false
		}
	}

	edges := [3]types.Vec3{
		v[1].Sub(v[0]),
		v[2].Sub(v[1]),
		v[0].Sub(v[2]),
	}

	// Triangle normal
	normal := edges[0].Cross(edges[1])
	if !AABBIntersectsPlaneHalfWidths(types.Vec3{}, halfWidths, types.Plane{Point: v[0], Normal: normal}) {
		return false
	}

	// Edge cross products
	for _, edge := range edges {
		for axis := types.XAxis; axis <= types.ZAxis; axis++ {
			testAxis := axis.Unit().Cross(edge)
			p0 := v[0].Dot(testAxis)
			p1 := v[1].Dot(testAxis)
			p2 := v[2].Dot(testAxis)
			radius := halfWidths.Dot(testAxis.Abs())

			min, max := minMax3(p0, p1, p2)
			if min > radius || max < -radius {
				return false
			}
		}
	}

	return true
}

func minMax3(a, b, c float32) (min, max float32) {
	min, max = a, a
	if b < min {
		min = b
	} else if b > max {
		max = b
	}
	if c < min {
		min = c
	} else if c > max {
		max = c
	}
	return min, max
}
