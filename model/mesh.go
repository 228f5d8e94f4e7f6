// SPDX-License-Identifier: GPL-2.0-or-later

package model

import (
	"fmt"

	"goengine/glh"
	"goengine/mesh"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// Vertex attribute locations shared by all shaders.
const (
	PositionAttrib = 0
	ColorAttrib    = 1
	TexCoordAttrib = 2
	NormalAttrib   = 3
)

// Mesh is vertex data uploaded to the GPU. It must only be used on the
// main thread.
type Mesh struct {
	name     string
	vao      *glh.VertexArray
	vbo      *glh.Buffer
	ebo      *glh.Buffer
	count    int32
	min, max [3]float32
}

// NewMesh uploads d. Empty data is rejected.
func NewMesh(d mesh.Data) (*Mesh, error) {
	m := &Mesh{}
	if err := m.Initialize(d); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mesh) Initialize(d mesh.Data) error {
	if len(d.Vertices) == 0 || len(d.Indices) == 0 {
		return fmt.Errorf("mesh %s has no vertices or indices", d.Name)
	}
	m.name = d.Name
	m.vao = glh.NewVertexArray()
	m.vbo = glh.NewBuffer(glh.ArrayBuffer)
	m.ebo = glh.NewBuffer(glh.ElementArrayBuffer)
	m.count = int32(len(d.Indices))
	m.min, m.max = d.Bounds()

	m.vao.Bind()
	vertices := d.Flatten()
	m.vbo.Bind()
	m.vbo.SetData(4*len(vertices), glh.Ptr(vertices))
	m.ebo.Bind()
	m.ebo.SetData(4*len(d.Indices), glh.Ptr(d.Indices))

	glh.FloatAttrib(PositionAttrib, 3, mesh.VertexSize, mesh.PositionOffset)
	glh.FloatAttrib(ColorAttrib, 3, mesh.VertexSize, mesh.ColorOffset)
	glh.FloatAttrib(TexCoordAttrib, 2, mesh.VertexSize, mesh.TexCoordOffset)
	glh.FloatAttrib(NormalAttrib, 3, mesh.VertexSize, mesh.NormalOffset)
	gl.BindVertexArray(0)
	return nil
}

func (m *Mesh) Name() string {
	return m.name
}

func (m *Mesh) Draw() {
	if m.vao == nil {
		return
	}
	m.vao.Bind()
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
}
