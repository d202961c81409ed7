package geometry

import "github.com/achilleasa/kdtrace/types"

// Box face indices for the planes returned by BoxPlanes.
const (
	BoxFaceLeft = iota
	BoxFaceRight
	BoxFaceTop
	BoxFaceBottom
	BoxFaceFront
	BoxFaceBack
)

// A sphere defined by its center and radius.
type Sphere struct {
	Center types.Vec3
	Radius float32
}

// Test whether the sphere lies entirely behind the plane.
func SphereInsidePlane(s Sphere, plane types.Plane) bool {
	return -plane.Distance(s.Center) > s.Radius
}

// Test whether the sphere lies entirely in front of the plane.
func SphereOutsidePlane(s Sphere, plane types.Plane) bool {
	return plane.Distance(s.Center) > s.Radius
}

// Test whether the plane cuts through the sphere.
func SphereIntersectsPlane(s Sphere, plane types.Plane) bool {
	return abs32(plane.Distance(s.Center)) <= s.Radius
}

// Get the six face planes of a box. Plane normals point away from the box.
func BoxPlanes(box AABB) [6]types.Plane {
	return [6]types.Plane{
		BoxFaceLeft:   {Point: box.Min, Normal: types.Vec3{-1, 0, 0}},
		BoxFaceRight:  {Point: box.Max, Normal: types.Vec3{1, 0, 0}},
		BoxFaceTop:    {Point: box.Max, Normal: types.Vec3{0, 1, 0}},
		BoxFaceBottom: {Point: box.Min, Normal: types.Vec3{0, -1, 0}},
		BoxFaceFront:  {Point: box.Max, Normal: types.Vec3{0, 0, 1}},
		BoxFaceBack:   {Point: box.Min, Normal: types.Vec3{0, 0, -1}},
	}
}

// Get the eight corners of a box.
func BoxVertices(box AABB) [8]types.Vec3 {
	var out [8]types.Vec3
	for i := range out {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<uint(axis)) != 0 {
				out[i][axis] = box.Max[axis]
			} else {
				out[i][axis] = box.Min[axis]
			}
		}
	}
	return out
}

// Test whether the sphere lies strictly inside the box.
func SphereInsideBox(s Sphere, box AABB) bool {
	for _, plane := range BoxPlanes(box) {
		if !SphereInsidePlane(s, plane) {
			return false
		}
	}
	return true
}

// Test whether the sphere surface crosses the box boundary.
func SphereBoxIntersection(s Sphere, box AABB) bool {
	if SphereInsideBox(s, box) {
		return false
	}

	// Distance from the sphere center to the closest point of the box
	var distSq float32
	for axis := 0; axis < 3; axis++ {
		var delta float32
		if s.Center[axis] < box.Min[axis] {
			delta = box.Min[axis] - s.Center[axis]
		} else if s.Center[axis] > box.Max[axis] {
			delta = s.Center[axis] - box.Max[axis]
		}
		distSq += delta * delta
	}
	return distSq <= s.Radius*s.Radius
}

// Test whether the sphere and the box do not touch at all.
func SphereOutsideBox(s Sphere, box AABB) bool {
	return !(SphereInsideBox(s, box) || SphereBoxIntersection(s, box))
}

// Test whether every box corner lies within the sphere.
func BoxInsideSphere(s Sphere, box AABB) bool {
	for _, v := range BoxVertices(box) {
		if v.Sub(s.Center).Len() > s.Radius {
			return false
		}
	}
	return true
}

// Calculate the smallest sphere centered at the box center that encloses the box.
func BoundingSphere(box AABB) Sphere {
	return Sphere{
		Center: box.Center(),
		Radius: box.HalfWidths().Len(),
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
