package scene

import (
	"github.com/achilleasa/kdtrace/geometry"
	"github.com/achilleasa/kdtrace/kdtree"
	"github.com/achilleasa/kdtrace/types"
)

// The direction towards the single directional light used for shading.
var LightDir = types.Vec3{0, 1, 0}

// Calculate the Lambertian term for a point on tri given its barycentric
// coordinates. The result is clamped to [0, 1].
func Shade(tri *geometry.Triangle, u, v float32) float32 {
	intensity := tri.InterpolateNormal(u, v).Dot(LightDir)
	switch {
	case intensity < 0 || intensity != intensity:
		return 0
	case intensity > 1:
		return 1
	}
	return intensity
}

// Shade a hit reported by a kd-tree built over the mesh triangles.
func (m *Mesh) ShadeHit(hit kdtree.Hit) float32 {
	return Shade(m.Triangle(hit.Primitive), hit.U, hit.V)
}
