package geometry

import (
	"math"

	"github.com/achilleasa/kdtrace/types"
)

const (
	// Ray direction components with a magnitude below this value are
	// treated as parallel to the matching slab.
	parallelEpsilon float32 = 1e-8

	// Slab exit distances are scaled by this factor so that hits lying
	// exactly on a box face survive float32 rounding.
	slabExitInflation float32 = 1 + 2*gamma3
	gamma3            float32 = (3 * machineEpsilon) / (1 - 3*machineEpsilon)
	machineEpsilon    float32 = 5.960464477539063e-08
)

// Intersect a ray with an AABB using the slab method. The returned interval
// is clipped to the forward half of the ray so tEntry is 0 when the ray
// origin lies inside the box.
func RayIntersectsAABB(r types.Ray, box AABB) (tEntry, tExit float32, ok bool) {
	if box.IsEmpty() {
		return 0, 0, false
	}

	tEntry, tExit = 0, math.MaxFloat32
	for axis := 0; axis < 3; axis++ {
		origin := r.Origin[axis]
		dir := r.Dir[axis]

		if dir > -parallelEpsilon && dir < parallelEpsilon {
			if origin < box.Min[axis] || origin > box.Max[axis] {
				return 0, 0, false
			}
			continue
		}

		invDir := 1.0 / dir
		tNear := (box.Min[axis] - origin) * invDir
		tFar := (box.Max[axis] - origin) * invDir
		if tNear > tFar {
			tNear, tFar = tFar, tNear
		}
		tFar *= slabExitInflation

		if tNear > tEntry {
			tEntry = tNear
		}
		if tFar < tExit {
			tExit = tFar
		}
		if tEntry > tExit {
			return 0, 0, false
		}
	}

	return tEntry, tExit, true
}

// Calculate the distance along the ray to an axis-aligned plane at offset. The
// distance is computed exactly like the slab values of RayIntersectsAABB so
// both can be compared without rounding surprises. Returns false if the ray
// is parallel to the plane.
func RayAxisPlaneDistance(r types.Ray, axis types.Axis, offset float32) (float32, bool) {
	dir := r.Dir[axis]
	if dir > -parallelEpsilon && dir < parallelEpsilon {
		return 0, false
	}
	return (offset - r.Origin[axis]) * (1.0 / dir), true
}
