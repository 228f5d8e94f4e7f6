// SPDX-License-Identifier: GPL-2.0-or-later

package mdl

import (
	"bytes"
	"encoding/binary"
	"testing"

	"goengine/palette"
	"goengine/scene"

	"github.com/go-gl/mathgl/mgl32"
)

type model struct {
	h     header
	skin  []byte
	st    []skinVertex
	tris  []triangle
	frame []frameVertex
	group bool
}

func testModel() *model {
	return &model{
		h: header{
			ID:            magic,
			Version:       version,
			Scale:         [3]float32{1, 1, 1},
			SkinCount:     1,
			SkinWidth:     2,
			SkinHeight:    2,
			VerticeCount:  3,
			TriangleCount: 1,
			FrameCount:    1,
		},
		skin: []byte{1, 2, 3, 4},
		st:   []skinVertex{{0, 0, 0}, {0, 1, 0}, {0, 1, 1}},
		tris: []triangle{{1, [3]int32{0, 1, 2}}},
		frame: []frameVertex{
			{[3]byte{0, 0, 0}, 0},
			{[3]byte{10, 0, 0}, 0},
			{[3]byte{0, 10, 0}, 0},
		},
	}
}

func (m *model) bytes(t *testing.T) []byte {
	t.Helper()
	var b bytes.Buffer
	w := func(v any) {
		if err := binary.Write(&b, binary.LittleEndian, v); err != nil {
			t.Fatal(err)
		}
	}
	w(m.h)
	for i := int32(0); i < m.h.SkinCount; i++ {
		w(int32(0))
		w(m.skin)
	}
	w(m.st)
	w(m.tris)
	if m.group {
		w(int32(1))
		w(int32(2))
		w([2][4]byte{})
		w([2]float32{0.1, 0.2})
	} else {
		w(int32(0))
	}
	w([2][4]byte{})
	name := [16]byte{}
	copy(name[:], "stand1")
	w(name)
	w(m.frame)
	if m.group {
		// second frame of the group
		w([2][4]byte{})
		w(name)
		w(m.frame)
	}
	return b.Bytes()
}

func testPalette() *palette.Palette {
	b := make([]byte, 3*256)
	for i := 0; i < 256; i++ {
		b[3*i] = byte(i * 50)
	}
	p, _ := palette.Decode(b)
	return p
}

func decode(t *testing.T, m *model, pal *palette.Palette) *scene.Mesh {
	t.Helper()
	s, err := Decode(bytes.NewReader(m.bytes(t)), pal)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(s.Meshes) != 1 {
		t.Fatalf("got %d meshes, want 1", len(s.Meshes))
	}
	return s.Meshes[0]
}

func TestDecode(t *testing.T) {
	for _, group := range []bool{false, true} {
		m := testModel()
		m.group = group
		me := decode(t, m, testPalette())
		if me.Name != "stand1" {
			t.Errorf("name = %q", me.Name)
		}
		wantPos := []mgl32.Vec3{{0, 0, 0}, {0, 0, -10}, {10, 0, 0}}
		if len(me.Positions) != len(wantPos) {
			t.Fatalf("got %d positions, want %d", len(me.Positions), len(wantPos))
		}
		for i, p := range wantPos {
			if !me.Positions[i].ApproxEqual(p) {
				t.Errorf("position %d = %v, want %v", i, me.Positions[i], p)
			}
			if !me.Normals[i].ApproxEqual(mgl32.Vec3{0, -1, 0}) {
				t.Errorf("normal %d = %v", i, me.Normals[i])
			}
		}
		if len(me.Faces) != 1 || len(me.Faces[0]) != 3 || me.Faces[0][0] != 0 || me.Faces[0][1] != 1 || me.Faces[0][2] != 2 {
			t.Errorf("faces = %v", me.Faces)
		}
		if got := me.TexCoords[0][0]; !got.ApproxEqual(mgl32.Vec3{0.25, 0.75, 0}) {
			t.Errorf("texcoord 0 = %v", got)
		}
		// skin indices 1, 4 and 2 for the corners in output order
		for i, want := range []float32{50.0 / 255, 200.0 / 255, 100.0 / 255} {
			if got := me.Colors[0][i].R; mgl32.Abs(got-want) > 1e-6 {
				t.Errorf("color %d red = %v, want %v", i, got, want)
			}
		}
		if err := me.Validate(); err != nil {
			t.Errorf("Validate: %v", err)
		}
	}
}

func TestSeam(t *testing.T) {
	m := testModel()
	m.h.TriangleCount = 2
	m.st[0].OnSeam = 0x20
	m.tris = append(m.tris, triangle{0, [3]int32{0, 1, 2}})
	me := decode(t, m, nil)
	if len(me.Positions) != 4 {
		t.Fatalf("got %d positions, want 4", len(me.Positions))
	}
	if me.HasColors(0) {
		t.Errorf("colors without palette")
	}
	seam := me.Faces[1][0]
	if got := me.TexCoords[0][seam][0]; mgl32.Abs(got-0.75) > 1e-6 {
		t.Errorf("seam u = %v, want 0.75", got)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		change func(*model)
	}{
		{"magic", func(m *model) { m.h.ID = 1 }},
		{"version", func(m *model) { m.h.Version = 7 }},
		{"skin size", func(m *model) { m.h.SkinWidth = 0 }},
		{"no frames", func(m *model) { m.h.FrameCount = 0 }},
		{"vertex range", func(m *model) { m.tris[0].Vertices[1] = 3 }},
	}
	for _, tc := range tests {
		m := testModel()
		tc.change(m)
		if _, err := Decode(bytes.NewReader(m.bytes(t)), nil); err == nil {
			t.Errorf("%s: Decode succeeded", tc.name)
		}
	}
	b := testModel().bytes(t)
	if _, err := Decode(bytes.NewReader(b[:len(b)-2]), nil); err == nil {
		t.Errorf("truncated model accepted")
	}
}

func TestRegistered(t *testing.T) {
	if !scene.Supported("player.mdl") {
		t.Errorf(".mdl is not registered")
	}
}
