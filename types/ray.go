package types

import "fmt"

// A ray with an origin and a direction. The direction does not need to be
// normalized; hit distances are expressed in multiples of its length.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// Create a new ray.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir}
}

// Get the point at distance t along the ray.
func (r Ray) PointAt(t float32) Vec3 {
	return r.Origin.AddScaled(r.Dir, t)
}

func (r Ray) String() string {
	return fmt.Sprintf("ray[origin: %v, dir: %v]", r.Origin, r.Dir)
}
