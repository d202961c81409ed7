package scene

import (
	"math"
	"testing"

	"github.com/achilleasa/kdtrace/types"
)

func approxEqual(v1, v2 types.Vec3, tol float32) bool {
	for i := 0; i < 3; i++ {
		if d := v1[i] - v2[i]; d > tol || d < -tol {
			return false
		}
	}
	return true
}

func TestCameraFrustum(t *testing.T) {
	cam := NewCamera(90)
	cam.SetupProjection(1)

	expCorners := Frustum{
		{-1, 1, -1},
		{1, 1, -1},
		{-1, -1, -1},
		{1, -1, -1},
	}
	for i, exp := range expCorners {
		if !approxEqual(cam.Frustum[i], exp, 1e-3) {
			t.Fatalf("expected frustum corner %d to be %v; got %v", i, exp, cam.Frustum[i])
		}
	}

	cam.InvertY = true
	cam.Update()
	if cam.Frustum[0][1] >= 0 || cam.Frustum[2][1] <= 0 {
		t.Fatalf("expected inverted frustum to flip the y axis; got\n%s", cam.Frustum)
	}
}

func TestCameraRays(t *testing.T) {
	cam := NewCamera(90)
	cam.Position = types.Vec3{1, 2, 3}
	cam.LookAt = types.Vec3{1, 2, 2}
	cam.SetupProjection(1)

	type spec struct {
		x, y   float32
		expDir types.Vec3
	}
	specs := []spec{
		{0.5, 0.5, types.Vec3{0, 0, -1}},
		{0, 0, types.Vec3{-1, 1, -1}.Normalize()},
		{1, 1, types.Vec3{1, -1, -1}.Normalize()},
		{0.25, 0.25, types.Vec3{-0.5, 0.5, -1}.Normalize()},
	}

	for index, s := range specs {
		r := cam.Ray(s.x, s.y)
		if r.Origin != cam.Position {
			t.Errorf("[spec %d] expected ray origin %v; got %v", index, cam.Position, r.Origin)
		}
		if !approxEqual(r.Dir, s.expDir, 1e-3) {
			t.Errorf("[spec %d] expected ray dir %v; got %v", index, s.expDir, r.Dir)
		}
	}

	// The center of pixel (0, 0) in a 2x2 frame
	if got, exp := cam.PixelRay(0, 0, 2, 2), cam.Ray(0.25, 0.25); got != exp {
		t.Fatalf("expected pixel ray %v; got %v", exp, got)
	}
}

func TestCameraPitchAndYaw(t *testing.T) {
	type spec struct {
		pitch, yaw float32
		expLookAt  types.Vec3
	}
	specs := []spec{
		{0, math.Pi / 2, types.Vec3{-1, 0, 0}},
		{0, -math.Pi / 2, types.Vec3{1, 0, 0}},
		{math.Pi / 4, 0, types.Vec3{0, math.Sqrt2 / 2, -math.Sqrt2 / 2}},
	}

	for index, s := range specs {
		cam := NewCamera(60)
		cam.Pitch = s.pitch
		cam.Yaw = s.yaw
		cam.SetupProjection(1)

		if !approxEqual(cam.LookAt, s.expLookAt, 1e-4) {
			t.Errorf("[spec %d] expected look at %v; got %v", index, s.expLookAt, cam.LookAt)
		}
		if cam.Pitch != 0 || cam.Yaw != 0 {
			t.Errorf("[spec %d] expected rotation to be consumed by Update", index)
		}

		// A second update must not rotate the camera again
		cam.Update()
		if !approxEqual(cam.LookAt, s.expLookAt, 1e-4) {
			t.Errorf("[spec %d] expected repeated update to keep look at %v; got %v", index, s.expLookAt, cam.LookAt)
		}
	}
}
