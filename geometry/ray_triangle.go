package geometry

import "github.com/achilleasa/kdtrace/types"

const (
	// Determinants below this value belong to back-facing or edge-on
	// triangles and are rejected.
	detEpsilon float32 = 1e-8

	// Hits closer than this distance are treated as self-intersections.
	hitEpsilon float32 = 1e-6
)

// Intersect a ray with a triangle using the Möller-Trumbore algorithm.
// Back-facing triangles are culled; a triangle faces the ray when its
// vertices appear counter-clockwise from the ray origin.
//
// On a hit, the intersection point equals r.PointAt(t) and also
// (1-u-v)*v0 + u*v1 + v*v2.
func RayTriangleIntersection(r types.Ray, tri Triangle) (t, u, v float32, ok bool) {
	v0 := tri.Vertices[0].Position
	e1 := tri.Vertices[1].Position.Sub(v0)
	e2 := tri.Vertices[2].Position.Sub(v0)

	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if det < detEpsilon {
		return 0, 0, 0, false
	}
	invDet := 1.0 / det

	s := r.Origin.Sub(v0)
	u = s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(e1)
	v = r.Dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = e2.Dot(q) * invDet
	if t <= hitEpsilon {
		return 0, 0, 0, false
	}

	return t, u, v, true
}
