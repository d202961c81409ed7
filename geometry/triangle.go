package geometry

import "github.com/achilleasa/kdtrace/types"

// A triangle vertex.
type Vertex struct {
	Position types.Vec3
	UV       types.Vec2
	Normal   types.Vec3
}

// A triangle primitive. Triangles are treated as immutable values once they
// are added to a primitive store.
type Triangle struct {
	Vertices [3]Vertex
}

// Create a triangle from three positions. All vertex normals are set to the
// face normal and UVs are left empty.
func NewTriangle(v0, v1, v2 types.Vec3) Triangle {
	tri := Triangle{
		Vertices: [3]Vertex{
			{Position: v0},
			{Position: v1},
			{Position: v2},
		},
	}

	n := tri.FaceNormal()
	for i := range tri.Vertices {
		tri.Vertices[i].Normal = n
	}
	return tri
}

// Get the triangle AABB.
func (tri *Triangle) Bounds() AABB {
	box := EmptyAABB()
	for i := range tri.Vertices {
		box = box.Extend(tri.Vertices[i].Position)
	}
	return box
}

// Get the triangle centroid.
func (tri *Triangle) Center() types.Vec3 {
	return tri.Vertices[0].Position.
		Add(tri.Vertices[1].Position).
		Add(tri.Vertices[2].Position).
		Mul(1.0 / 3.0)
}

// Get the unit face normal using counter-clockwise winding.
func (tri *Triangle) FaceNormal() types.Vec3 {
	e01 := tri.Vertices[1].Position.Sub(tri.Vertices[0].Position)
	e02 := tri.Vertices[2].Position.Sub(tri.Vertices[0].Position)
	return e01.Cross(e02).Normalize()
}

// Get the triangle area.
func (tri *Triangle) Area() float32 {
	e01 := tri.Vertices[1].Position.Sub(tri.Vertices[0].Position)
	e02 := tri.Vertices[2].Position.Sub(tri.Vertices[0].Position)
	return 0.5 * e01.Cross(e02).Len()
}

// Interpolate the vertex normals using the barycentric coordinates returned
// by RayTriangleIntersection.
func (tri *Triangle) InterpolateNormal(u, v float32) types.Vec3 {
	w := 1 - u - v
	return tri.Vertices[0].Normal.Mul(w).
		AddScaled(tri.Vertices[1].Normal, u).
		AddScaled(tri.Vertices[2].Normal, v).
		Normalize()
}

// Interpolate the vertex UVs using barycentric coordinates.
func (tri *Triangle) InterpolateUV(u, v float32) types.Vec2 {
	w := 1 - u - v
	return tri.Vertices[0].UV.Mul(w).
		Add(tri.Vertices[1].UV.Mul(u)).
		Add(tri.Vertices[2].UV.Mul(v))
}

// Split the triangle into four triangles by connecting its edge midpoints.
// Winding order is preserved.
func (tri *Triangle) Subdivide() [4]Triangle {
	m01 := midpoint(tri.Vertices[0], tri.Vertices[1])
	m12 := midpoint(tri.Vertices[1], tri.Vertices[2])
	m20 := midpoint(tri.Vertices[2], tri.Vertices[0])

	return [4]Triangle{
		{Vertices: [3]Vertex{tri.Vertices[0], m01, m20}},
		{Vertices: [3]Vertex{m01, tri.Vertices[1], m12}},
		{Vertices: [3]Vertex{m20, m12, tri.Vertices[2]}},
		{Vertices: [3]Vertex{m01, m12, m20}},
	}
}

func midpoint(a, b Vertex) Vertex {
	return Vertex{
		Position: a.Position.Add(b.Position).Mul(0.5),
		UV:       a.UV.Add(b.UV).Mul(0.5),
		Normal:   a.Normal.Add(b.Normal).Normalize(),
	}
}
