// SPDX-License-Identifier: GPL-2.0-or-later

package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestDirections(t *testing.T) {
	c := New(4.0 / 3)
	if f := c.Forward(); !f.ApproxEqual(mgl32.Vec3{0, 0, -1}) {
		t.Errorf("forward = %v", f)
	}
	if r := c.Right(); !r.ApproxEqual(mgl32.Vec3{1, 0, 0}) {
		t.Errorf("right = %v", r)
	}
	if u := c.Up(); !u.ApproxEqual(mgl32.Vec3{0, 1, 0}) {
		t.Errorf("up = %v", u)
	}
	c.Rotate(math32.Pi/2, 0)
	if f := c.Forward(); !f.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("forward after quarter turn = %v", f)
	}
}

func TestPitchClamp(t *testing.T) {
	c := New(1)
	c.Rotate(0, 10)
	if c.Pitch != maxPitch {
		t.Errorf("pitch = %v, want %v", c.Pitch, maxPitch)
	}
	c.Rotate(0, -20)
	if c.Pitch != -maxPitch {
		t.Errorf("pitch = %v, want %v", c.Pitch, -maxPitch)
	}
	c.Rotate(3*math32.Pi, 0)
	if c.Yaw < -math32.Pi || c.Yaw > math32.Pi {
		t.Errorf("yaw = %v not wrapped", c.Yaw)
	}
}

func TestMoveAndLookAt(t *testing.T) {
	c := New(1)
	c.Move(2, 1, 0.5)
	if !c.Position.ApproxEqual(mgl32.Vec3{1, 0.5, -2}) {
		t.Errorf("position = %v", c.Position)
	}
	c.Position = mgl32.Vec3{0, 0, 5}
	c.LookAt(mgl32.Vec3{})
	if f := c.Forward(); !f.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("forward = %v", f)
	}
	c.LookAt(mgl32.Vec3{5, 0, 5})
	if f := c.Forward(); !f.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("forward = %v", f)
	}
}

func TestViewProjection(t *testing.T) {
	c := New(1)
	c.Position = mgl32.Vec3{0, 0, 5}
	// a point straight ahead lands in the centre of clip space
	p := c.ViewProjection().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := p.Vec3().Mul(1 / p.W())
	if math32.Abs(ndc.X()) > 1e-5 || math32.Abs(ndc.Y()) > 1e-5 {
		t.Errorf("ndc = %v", ndc)
	}
	if ndc.Z() <= -1 || ndc.Z() >= 1 {
		t.Errorf("point outside depth range: %v", ndc.Z())
	}
	// points behind the camera have negative w
	if q := c.ViewProjection().Mul4x1(mgl32.Vec4{0, 0, 10, 1}); q.W() >= 0 {
		t.Errorf("w = %v for a point behind", q.W())
	}
}
