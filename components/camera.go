package components

import "github.com/lixenwraith/pincraft/vmath"

// CameraComponent is an orthographic look-at camera
type CameraComponent struct {
	Eye    vmath.Vec3
	Target vmath.Vec3
	Up     vmath.Vec3
	Extent float64 // world units spanning the view height
}

// LookAt points the camera
func (c *CameraComponent) LookAt(eye, target, up vmath.Vec3) {
	c.Eye, c.Target, c.Up = eye, target, up
}

// Basis returns the camera's right, up and forward unit vectors
func (c *CameraComponent) Basis() (right, up, forward vmath.Vec3) {
	forward = vmath.V3Normalize(vmath.V3Sub(c.Target, c.Eye))
	right = vmath.V3Normalize(vmath.V3Cross(forward, c.Up))
	up = vmath.V3Cross(right, forward)
	return right, up, forward
}

// Project maps a world point to view-plane coordinates in units of Extent, origin at the view center
// X grows right, Y grows up
func (c *CameraComponent) Project(p vmath.Vec3) (x, y float64) {
	right, up, _ := c.Basis()
	rel := vmath.V3Sub(p, c.Eye)
	return vmath.V3Dot(rel, right), vmath.V3Dot(rel, up)
}
