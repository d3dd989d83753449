// Package render projects volume meshes and lattice points to screen space
// for a painter-ordered 2D triangle rasteriser.
package render

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera orbits a target point. Yaw and Pitch are in radians, FOV is the
// vertical field of view in degrees.
type Camera struct {
	Target     mgl32.Vec3
	Yaw, Pitch float32
	Distance   float32
	FOV        float32
	Near, Far  float32
}

const maxPitch = math32.Pi/2 - 0.01

// NewCamera looks at target from distance, slightly above the horizon.
func NewCamera(target mgl32.Vec3, distance float32) Camera {
	return Camera{
		Target:   target,
		Yaw:      math32.Pi / 4,
		Pitch:    math32.Pi / 6,
		Distance: distance,
		FOV:      70,
		Near:     0.1,
		Far:      100,
	}
}

// Eye is the camera position on its orbit sphere.
func (c *Camera) Eye() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	dir := mgl32.Vec3{cp * math32.Sin(c.Yaw), math32.Sin(c.Pitch), cp * math32.Cos(c.Yaw)}
	return c.Target.Add(dir.Mul(c.Distance))
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target, mgl32.Vec3{0, 1, 0})
}

// Projection is a perspective matrix for a viewport of the given aspect.
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection is the combined world to clip transform.
func (c *Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.Projection(aspect).Mul4(c.View())
}

// Orbit turns the camera around its target; pitch stays short of the poles.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = math32.Mod(c.Yaw+dYaw, 2*math32.Pi)
	c.Pitch = min(max(c.Pitch+dPitch, -maxPitch), maxPitch)
}

// Zoom scales the orbit distance, keeping the eye between the clip planes.
func (c *Camera) Zoom(factor float32) {
	c.Distance = min(max(c.Distance*factor, c.Near*2), c.Far/2)
}
