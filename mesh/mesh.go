// SPDX-License-Identifier: GPL-2.0-or-later

// Package mesh holds CPU side vertex data ready to be uploaded.
package mesh

import (
	"errors"
	"fmt"

	"goengine/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the interleaved layout used by all meshes.
type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
	TexCoord mgl32.Vec2
	Normal   mgl32.Vec3
}

// Byte offsets and size of the Vertex fields, matching the GL attributes.
const (
	PositionOffset = 0
	ColorOffset    = 3 * 4
	TexCoordOffset = 6 * 4
	NormalOffset   = 8 * 4
	VertexSize     = 11 * 4
)

type Data struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

var white = mgl32.Vec3{1, 1, 1}

// FromScene converts an imported mesh. The mesh must be triangulated and
// carry positions and normals. Vertex colour comes from the first colour
// channel present and the texture coordinate from the last texture
// channel present.
func FromScene(m *scene.Mesh) (Data, error) {
	if m == nil {
		return Data{}, errors.New("empty mesh")
	}
	if !m.HasFaces() {
		return Data{}, fmt.Errorf("mesh %s has no faces", m.Name)
	}
	if !m.HasPositions() {
		return Data{}, fmt.Errorf("mesh %s has no positions", m.Name)
	}
	if !m.HasNormals() {
		return Data{}, fmt.Errorf("mesh %s has no normals", m.Name)
	}

	colorSet := -1
	for c := 0; c < scene.MaxColorSets; c++ {
		if m.HasColors(c) {
			colorSet = c
			break
		}
	}
	texSet := -1
	for c := 0; c < scene.MaxTexCoordsSets; c++ {
		if m.HasTexCoords(c) {
			texSet = c
		}
	}

	d := Data{
		Name:     m.Name,
		Vertices: make([]Vertex, m.NumVertices()),
		Indices:  make([]uint32, 0, 3*len(m.Faces)),
	}
	for i := range d.Vertices {
		v := &d.Vertices[i]
		v.Position = m.Positions[i]
		v.Normal = m.Normals[i]
		v.Color = white
		if colorSet >= 0 {
			c := m.Colors[colorSet][i]
			v.Color = mgl32.Vec3{c.R, c.G, c.B}
		}
		if texSet >= 0 {
			v.TexCoord = m.TexCoords[texSet][i].Vec2()
		}
	}
	for _, f := range m.Faces {
		if len(f) != 3 {
			return Data{}, fmt.Errorf("mesh %s: face number of indices != 3", m.Name)
		}
		d.Indices = append(d.Indices, f[0], f[1], f[2])
	}
	return d, nil
}

// Triangle builds a single triangle from three vertices.
func Triangle(a, b, c Vertex) Data {
	return Data{
		Name:     "triangle",
		Vertices: []Vertex{a, b, c},
		Indices:  []uint32{0, 1, 2},
	}
}

// Quad builds two triangles a,b,c and a,c,d.
func Quad(a, b, c, d Vertex) Data {
	return Data{
		Name:     "quad",
		Vertices: []Vertex{a, b, c, d},
		Indices:  []uint32{0, 1, 2, 0, 2, 3},
	}
}

// Flatten returns the vertices as tightly packed floats in Vertex order.
func (d *Data) Flatten() []float32 {
	r := make([]float32, 0, len(d.Vertices)*VertexSize/4)
	for _, v := range d.Vertices {
		r = append(r, v.Position[:]...)
		r = append(r, v.Color[:]...)
		r = append(r, v.TexCoord[:]...)
		r = append(r, v.Normal[:]...)
	}
	return r
}

// Bounds returns the axis aligned bounding box of all vertices.
func (d *Data) Bounds() (min, max mgl32.Vec3) {
	if len(d.Vertices) == 0 {
		return
	}
	min, max = d.Vertices[0].Position, d.Vertices[0].Position
	for _, v := range d.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}
	return min, max
}
