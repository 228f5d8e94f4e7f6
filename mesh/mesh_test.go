// SPDX-License-Identifier: GPL-2.0-or-later

package mesh

import (
	"testing"

	"goengine/scene"

	"github.com/go-gl/mathgl/mgl32"
)

func triangleMesh() *scene.Mesh {
	return &scene.Mesh{
		Name:      "tri",
		Positions: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		Faces:     []scene.Face{{0, 1, 2}},
	}
}

func TestFromSceneDefaults(t *testing.T) {
	d, err := FromScene(triangleMesh())
	if err != nil {
		t.Fatalf("FromScene: %v", err)
	}
	if d.Name != "tri" || len(d.Vertices) != 3 {
		t.Fatalf("got %q with %d vertices", d.Name, len(d.Vertices))
	}
	for i, v := range d.Vertices {
		if v.Color != (mgl32.Vec3{1, 1, 1}) {
			t.Errorf("vertex %d colour = %v, want white", i, v.Color)
		}
		if v.TexCoord != (mgl32.Vec2{}) {
			t.Errorf("vertex %d texcoord = %v, want zero", i, v.TexCoord)
		}
	}
	want := []uint32{0, 1, 2}
	for i := range want {
		if d.Indices[i] != want[i] {
			t.Errorf("indices = %v, want %v", d.Indices, want)
			break
		}
	}
}

func TestFromSceneChannels(t *testing.T) {
	m := triangleMesh()
	m.Colors[1] = []scene.Color{{R: 1, A: 1}, {G: 1, A: 1}, {B: 1, A: 1}}
	m.Colors[4] = []scene.Color{{}, {}, {}}
	m.TexCoords[0] = []mgl32.Vec3{{9, 9, 0}, {9, 9, 0}, {9, 9, 0}}
	m.TexCoords[2] = []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 5}}
	d, err := FromScene(m)
	if err != nil {
		t.Fatalf("FromScene: %v", err)
	}
	if got := d.Vertices[1].Color; got != (mgl32.Vec3{0, 1, 0}) {
		t.Errorf("colour = %v, want first channel", got)
	}
	if got := d.Vertices[2].TexCoord; got != (mgl32.Vec2{0, 1}) {
		t.Errorf("texcoord = %v, want last channel", got)
	}
}

func TestFromSceneErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*scene.Mesh) *scene.Mesh
	}{
		{"nil", func(*scene.Mesh) *scene.Mesh { return nil }},
		{"no faces", func(m *scene.Mesh) *scene.Mesh { m.Faces = nil; return m }},
		{"no positions", func(m *scene.Mesh) *scene.Mesh { m.Positions = nil; return m }},
		{"no normals", func(m *scene.Mesh) *scene.Mesh { m.Normals = nil; return m }},
		{"quad face", func(m *scene.Mesh) *scene.Mesh { m.Faces = []scene.Face{{0, 1, 2, 0}}; return m }},
		{"line face", func(m *scene.Mesh) *scene.Mesh { m.Faces = []scene.Face{{0, 1}}; return m }},
	}
	for _, tc := range tests {
		if _, err := FromScene(tc.modify(triangleMesh())); err == nil {
			t.Errorf("%s: no error", tc.name)
		}
	}
}

func TestPrimitives(t *testing.T) {
	a := Vertex{Position: mgl32.Vec3{0, 0, 0}}
	b := Vertex{Position: mgl32.Vec3{1, 0, 0}}
	c := Vertex{Position: mgl32.Vec3{1, 1, 0}}
	d := Vertex{Position: mgl32.Vec3{0, 1, 0}}

	tri := Triangle(a, b, c)
	if len(tri.Vertices) != 3 || len(tri.Indices) != 3 {
		t.Errorf("triangle: %d vertices, %d indices", len(tri.Vertices), len(tri.Indices))
	}

	q := Quad(a, b, c, d)
	want := []uint32{0, 1, 2, 0, 2, 3}
	if len(q.Indices) != len(want) {
		t.Fatalf("quad indices = %v", q.Indices)
	}
	for i := range want {
		if q.Indices[i] != want[i] {
			t.Errorf("quad indices = %v, want %v", q.Indices, want)
			break
		}
	}
	if q.Vertices[3] != d {
		t.Errorf("quad vertex order changed")
	}
}

func TestFlattenAndBounds(t *testing.T) {
	d := Triangle(
		Vertex{Position: mgl32.Vec3{-1, 0, 2}, Color: mgl32.Vec3{1, 1, 1}, TexCoord: mgl32.Vec2{0.5, 0.25}, Normal: mgl32.Vec3{0, 0, 1}},
		Vertex{Position: mgl32.Vec3{1, 3, 0}},
		Vertex{Position: mgl32.Vec3{0, -2, 1}},
	)
	f := d.Flatten()
	if len(f) != 3*VertexSize/4 {
		t.Fatalf("got %d floats", len(f))
	}
	if f[TexCoordOffset/4] != 0.5 || f[NormalOffset/4+2] != 1 {
		t.Errorf("layout mismatch: %v", f[:VertexSize/4])
	}
	min, max := d.Bounds()
	if min != (mgl32.Vec3{-1, -2, 0}) || max != (mgl32.Vec3{1, 3, 2}) {
		t.Errorf("bounds = %v %v", min, max)
	}
}
