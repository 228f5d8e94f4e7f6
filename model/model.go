// SPDX-License-Identifier: GPL-2.0-or-later

// Package model groups GPU meshes into drawable models.
package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Model struct {
	name   string
	meshes []*Mesh
}

func New(name string, meshes ...*Mesh) *Model {
	return &Model{
		name:   name,
		meshes: meshes,
	}
}

func (m *Model) Name() string {
	return m.name
}

func (m *Model) AddMesh(ms *Mesh) {
	m.meshes = append(m.meshes, ms)
}

func (m *Model) Meshes() []*Mesh {
	return m.meshes
}

// Mins and Maxs span all meshes.
func (m *Model) Mins() mgl32.Vec3 {
	mins, _ := m.bounds()
	return mins
}

func (m *Model) Maxs() mgl32.Vec3 {
	_, maxs := m.bounds()
	return maxs
}

func (m *Model) bounds() (mins, maxs mgl32.Vec3) {
	for i, ms := range m.meshes {
		if i == 0 {
			mins, maxs = ms.min, ms.max
			continue
		}
		for j := 0; j < 3; j++ {
			mins[j] = min(mins[j], ms.min[j])
			maxs[j] = max(maxs[j], ms.max[j])
		}
	}
	return mins, maxs
}

// Draw draws all meshes with the currently bound shader.
func (m *Model) Draw() {
	for _, ms := range m.meshes {
		ms.Draw()
	}
}
