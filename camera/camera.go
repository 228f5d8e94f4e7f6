// SPDX-License-Identifier: GPL-2.0-or-later

// Package camera implements a yaw/pitch perspective camera. Yaw 0 looks
// down -Z, positive yaw turns right, Y is up.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const maxPitch = 89 * math32.Pi / 180

var worldUp = mgl32.Vec3{0, 1, 0}

type Camera struct {
	Position mgl32.Vec3
	// Yaw and Pitch in radians.
	Yaw   float32
	Pitch float32
	// Fov is the vertical field of view in degrees.
	Fov    float32
	Aspect float32
	Near   float32
	Far    float32
}

func New(aspect float32) *Camera {
	return &Camera{
		Fov:    70,
		Aspect: aspect,
		Near:   0.1,
		Far:    1000,
	}
}

func (c *Camera) Forward() mgl32.Vec3 {
	sy, cy := math32.Sincos(c.Yaw)
	sp, cp := math32.Sincos(c.Pitch)
	return mgl32.Vec3{sy * cp, sp, -cy * cp}
}

func (c *Camera) Right() mgl32.Vec3 {
	return c.Forward().Cross(worldUp).Normalize()
}

func (c *Camera) Up() mgl32.Vec3 {
	return c.Right().Cross(c.Forward())
}

// Rotate adds to yaw and pitch. Pitch stays short of straight up or down
// and yaw is kept within -Pi..Pi.
func (c *Camera) Rotate(yaw, pitch float32) {
	c.Yaw = math32.Remainder(c.Yaw+yaw, 2*math32.Pi)
	c.Pitch = min(max(c.Pitch+pitch, -maxPitch), maxPitch)
}

// Move translates relative to the view direction.
func (c *Camera) Move(forward, right, up float32) {
	c.Position = c.Position.
		Add(c.Forward().Mul(forward)).
		Add(c.Right().Mul(right)).
		Add(worldUp.Mul(up))
}

// LookAt turns the camera towards target.
func (c *Camera) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.Len() == 0 {
		return
	}
	d = d.Normalize()
	c.Yaw = math32.Atan2(d.X(), -d.Z())
	c.Pitch = min(max(math32.Asin(d.Y()), -maxPitch), maxPitch)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), worldUp)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}
