package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a static look-at camera with a perspective projection.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	FOV    float32 // vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// New returns a camera looking from eye at target.
func New(eye, target, up mgl32.Vec3) *Camera {
	return &Camera{
		Eye:    eye,
		Target: target,
		Up:     up,
		FOV:    45,
		Aspect: 720.0 / 576.0,
		Near:   0.05,
		Far:    350,
	}
}

// SetShape updates the projection parameters.
func (c *Camera) SetShape(fov, aspect, near, far float32) {
	c.FOV, c.Aspect, c.Near, c.Far = fov, aspect, near, far
}

// Resize recomputes the aspect ratio for a framebuffer size. A zero height
// (minimised window) leaves the aspect alone.
func (c *Camera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}
