package types

// A plane defined by a point on the plane and a unit normal.
type Plane struct {
	Point  Vec3
	Normal Vec3
}

// Create a plane from a point and a normal. The normal is normalized.
func NewPlane(point, normal Vec3) Plane {
	return Plane{Point: point, Normal: normal.Normalize()}
}

// Create a plane perpendicular to axis that passes through offset.
func NewAxisPlane(axis Axis, offset float32) Plane {
	var point Vec3
	point[axis] = offset
	return Plane{Point: point, Normal: axis.Unit()}
}

// Get the signed distance of point from the plane.
func (p Plane) Distance(point Vec3) float32 {
	return point.Sub(p.Point).Dot(p.Normal)
}

// Check whether point lies on the side of the plane that the normal points
// to. Points on the plane are considered to be on the positive side.
func (p Plane) PositiveSide(point Vec3) bool {
	return p.Distance(point) >= 0
}

// Intersect a ray with the plane. Returns false if the ray is parallel to the
// plane. The returned t may be negative if the plane lies behind the ray origin.
func (p Plane) IntersectRay(r Ray) (t float32, ok bool) {
	dDotN := r.Dir.Dot(p.Normal)
	if dDotN == 0 {
		return 0, false
	}
	return p.Normal.Dot(p.Point.Sub(r.Origin)) / dDotN, true
}
