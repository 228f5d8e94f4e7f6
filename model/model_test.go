// SPDX-License-Identifier: GPL-2.0-or-later

package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBounds(t *testing.T) {
	m := New("box")
	if m.Mins() != (mgl32.Vec3{}) || m.Maxs() != (mgl32.Vec3{}) {
		t.Errorf("empty model bounds = %v %v", m.Mins(), m.Maxs())
	}
	m.AddMesh(&Mesh{name: "a", min: [3]float32{-1, 0, 0}, max: [3]float32{1, 1, 1}})
	m.AddMesh(&Mesh{name: "b", min: [3]float32{0, -2, 0}, max: [3]float32{0.5, 0.5, 3}})
	if got := m.Mins(); got != (mgl32.Vec3{-1, -2, 0}) {
		t.Errorf("mins = %v", got)
	}
	if got := m.Maxs(); got != (mgl32.Vec3{1, 1, 3}) {
		t.Errorf("maxs = %v", got)
	}
	if len(m.Meshes()) != 2 || m.Meshes()[1].Name() != "b" {
		t.Errorf("meshes = %v", m.Meshes())
	}
	// meshes without GL objects draw nothing
	m.Draw()
}
