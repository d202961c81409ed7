package scene

import (
	"fmt"

	"github.com/achilleasa/kdtrace/types"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	cameraNear float32 = 1
	cameraFar  float32 = 1000
)

// Stores the ray directions at the four corners of the camera frustum in
// top-left, top-right, bottom-left, bottom-right order. Per pixel rays are
// generated by interpolating the corner rays.
type Frustum [4]types.Vec3

func (fr Frustum) String() string {
	return fmt.Sprintf(
		"Frustum Rays:\nTL : (%3.3f, %3.3f, %3.3f)\nTR : (%3.3f, %3.3f, %3.3f)\nBL : (%3.3f, %3.3f, %3.3f)\nBR : (%3.3f, %3.3f, %3.3f)",
		fr[0][0], fr[0][1], fr[0][2],
		fr[1][0], fr[1][1], fr[1][2],
		fr[2][0], fr[2][1], fr[2][2],
		fr[3][0], fr[3][1], fr[3][2],
	)
}

// A pinhole camera that generates primary rays.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Rotations in radians that are applied to the view direction by the
	// next call to Update.
	Pitch float32
	Yaw   float32

	ViewMat mgl32.Mat4
	ProjMat mgl32.Mat4
	Frustum Frustum

	// Vertical FOV in degrees.
	FOV float32

	// Adjust the frustum so that Y is inverted
	InvertY bool
}

func NewCamera(fov float32) *Camera {
	return &Camera{
		ViewMat:  mgl32.Ident4(),
		ProjMat:  mgl32.Ident4(),
		Position: types.Vec3{0, 0, 0},
		LookAt:   types.Vec3{0, 0, -1},
		Up:       types.Vec3{0, 1, 0},
		FOV:      fov,
	}
}

// Setup camera projection matrix.
func (c *Camera) SetupProjection(aspect float32) {
	c.ProjMat = mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, cameraNear, cameraFar)
	c.Update()
}

// Apply any pending pitch/yaw rotation and recalculate the view matrix and
// the frustum corner rays.
func (c *Camera) Update() {
	up := mgl32.Vec3(c.Up)
	dir := mgl32.Vec3(c.LookAt.Sub(c.Position).Normalize())

	if c.Pitch != 0 || c.Yaw != 0 {
		orientQuat := mgl32.QuatIdent()
		if c.Pitch != 0 {
			pitchAxis := dir.Cross(up)
			if pitchAxis.Len() > 0 {
				orientQuat = mgl32.QuatRotate(c.Pitch, pitchAxis.Normalize())
			}
		}
		if c.Yaw != 0 {
			orientQuat = orientQuat.Mul(mgl32.QuatRotate(c.Yaw, up.Normalize()))
		}

		dir = orientQuat.Normalize().Rotate(dir)
		c.LookAt = c.Position.Add(types.Vec3(dir))
		c.Pitch, c.Yaw = 0, 0
	}

	c.ViewMat = mgl32.LookAtV(mgl32.Vec3(c.Position), mgl32.Vec3(c.LookAt), up)
	c.updateFrustum()
}

func (c *Camera) InvViewProjMat() mgl32.Mat4 {
	return c.ProjMat.Mul4(c.ViewMat).Inv()
}

// Get the primary ray through the normalized image coordinates (x, y) where
// (0, 0) is the top-left and (1, 1) the bottom-right image corner. The ray
// direction is normalized.
func (c *Camera) Ray(x, y float32) types.Ray {
	top := c.Frustum[0].AddScaled(c.Frustum[1].Sub(c.Frustum[0]), x)
	bottom := c.Frustum[2].AddScaled(c.Frustum[3].Sub(c.Frustum[2]), x)
	dir := top.AddScaled(bottom.Sub(top), y)
	return types.NewRay(c.Position, dir.Normalize())
}

// Get the primary ray through the center of pixel (px, py) of a
// width x height frame.
func (c *Camera) PixelRay(px, py, width, height int) types.Ray {
	return c.Ray(
		(float32(px)+0.5)/float32(width),
		(float32(py)+0.5)/float32(height),
	)
}

// Generate a ray vector for each corner of the camera frustum by
// multiplying clip space vectors for each corner with the inv proj/view
// matrix, applying perspective and subtracting the camera eye position.
func (c *Camera) updateFrustum() {
	invProjViewMat := c.InvViewProjMat()

	var yUp float32 = 1.0
	if c.InvertY {
		yUp = -1.0
	}

	corners := [4]mgl32.Vec4{
		{-1, yUp, -1, 1},
		{1, yUp, -1, 1},
		{-1, -yUp, -1, 1},
		{1, -yUp, -1, 1},
	}
	for i, corner := range corners {
		v := invProjViewMat.Mul4x1(corner)
		c.Frustum[i] = types.Vec3(v.Mul(1.0 / v[3]).Vec3()).Sub(c.Position)
	}
}
