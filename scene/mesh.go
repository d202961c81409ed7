package scene

import (
	"github.com/achilleasa/kdtrace/geometry"
	"github.com/pkg/errors"
)

var ErrEmptyMesh = errors.New("scene: mesh contains no triangles")

// A Mesh is a named, bounded triangle store. The triangle order defines the
// primitive indices reported by the kd-tree so it never changes after
// construction.
type Mesh struct {
	Name string

	triangles []geometry.Triangle
	bbox      geometry.AABB
}

// Create a mesh that takes ownership of the triangle list.
func NewMesh(name string, triangles []geometry.Triangle) (*Mesh, error) {
	if len(triangles) == 0 {
		return nil, errors.Wrapf(ErrEmptyMesh, "mesh %q", name)
	}

	return &Mesh{
		Name:      name,
		triangles: triangles,
		bbox:      geometry.ComputeAABB(triangles),
	}, nil
}

// Get the mesh triangles. The returned slice must not be modified.
func (m *Mesh) Triangles() []geometry.Triangle {
	return m.triangles
}

// Get the triangle with the given primitive index.
func (m *Mesh) Triangle(index uint32) *geometry.Triangle {
	return &m.triangles[index]
}

// Get the number of triangles in the mesh.
func (m *Mesh) Len() int {
	return len(m.triangles)
}

// Get the mesh AABB.
func (m *Mesh) BBox() geometry.AABB {
	return m.bbox
}

// Create a new mesh where each triangle is replaced by its four
// subdivisions. Subdividing n times multiplies the triangle count by 4^n.
func (m *Mesh) Subdivide(times int) *Mesh {
	tris := m.triangles
	for pass := 0; pass < times; pass++ {
		next := make([]geometry.Triangle, 0, 4*len(tris))
		for i := range tris {
			sub := tris[i].Subdivide()
			next = append(next, sub[:]...)
		}
		tris = next
	}

	return &Mesh{
		Name:      m.Name,
		triangles: tris,
		bbox:      m.bbox,
	}
}
