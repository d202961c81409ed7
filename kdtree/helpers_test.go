package kdtree

import (
	"math/rand"

	"github.com/achilleasa/kdtrace/geometry"
	"github.com/achilleasa/kdtrace/types"
)

func randVec3(rng *rand.Rand, min, max float32) types.Vec3 {
	return types.Vec3{
		min + rng.Float32()*(max-min),
		min + rng.Float32()*(max-min),
		min + rng.Float32()*(max-min),
	}
}

// Generate count random triangles with centers in [-10, 10]^3.
func randomSoup(rng *rand.Rand, count int) []geometry.Triangle {
	tris := make([]geometry.Triangle, count)
	for i := range tris {
		center := randVec3(rng, -10, 10)
		tris[i] = geometry.NewTriangle(
			center.Add(randVec3(rng, -1.5, 1.5)),
			center.Add(randVec3(rng, -1.5, 1.5)),
			center.Add(randVec3(rng, -1.5, 1.5)),
		)
	}
	return tris
}

// Generate long, thin triangles that cross many splitting planes diagonally.
func sliverSoup(rng *rand.Rand, count int) []geometry.Triangle {
	tris := make([]geometry.Triangle, count)
	for i := range tris {
		p0 := randVec3(rng, -10, 10)
		dir := randVec3(rng, -1, 1).Normalize().Mul(15)
		width := randVec3(rng, -0.02, 0.02)
		tris[i] = geometry.NewTriangle(p0, p0.Add(dir), p0.Add(dir.Mul(0.5)).Add(width))
	}
	return tris
}

// Generate a ray that starts outside or inside the soup and points towards it.
func randomRay(rng *rand.Rand) types.Ray {
	origin := randVec3(rng, -15, 15)
	target := randVec3(rng, -10, 10)
	return types.NewRay(origin, target.Sub(origin).Normalize())
}

// Find the nearest hit by testing every primitive.
func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Two triangles facing +Z: one spanning x in [-1, 1] and one spanning x in [5, 7].
func twoTriangles() []geometry.Triangle {
	return []geometry.Triangle{
		geometry.NewTriangle(types.Vec3{-1, -1, 0}, types.Vec3{1, -1, 0}, types.Vec3{0, 1, 0}),
		geometry.NewTriangle(types.Vec3{5, -1, 0}, types.Vec3{7, -1, 0}, types.Vec3{6, 1, 0}),
	}
}
