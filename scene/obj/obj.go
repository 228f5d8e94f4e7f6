// SPDX-License-Identifier: GPL-2.0-or-later

// Package obj imports Wavefront OBJ files. Materials are ignored.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"goengine/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

func init() {
	scene.Register(".obj", Import)
}

type corner struct {
	v, vt, vn int
}

type parser struct {
	name      string
	line      int
	positions []mgl32.Vec3
	colors    []scene.Color
	hasColor  bool
	texCoords []mgl32.Vec3
	normals   []mgl32.Vec3

	meshes  []*scene.Mesh
	current *scene.Mesh
	lookup  map[corner]uint32
	// per mesh attribute presence, fixed by the first face
	useTex, useNorm bool
}

// Import reads an OBJ file. Every o or g statement starts a new mesh,
// meshes without faces are dropped.
func Import(name string, r io.Reader) (*scene.Scene, error) {
	p := &parser{name: name}
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		p.line++
		if err := p.parseLine(s.Text()); err != nil {
			return nil, errors.Wrapf(err, "%s:%d", name, p.line)
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, name)
	}
	p.finish()
	return &scene.Scene{Meshes: p.meshes}, nil
}

func (p *parser) parseLine(l string) error {
	if i := strings.IndexByte(l, '#'); i >= 0 {
		l = l[:i]
	}
	fields := strings.Fields(l)
	if len(fields) == 0 {
		return nil
	}
	args := fields[1:]
	switch fields[0] {
	case "v":
		f, err := floats(args, 3, 7)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, mgl32.Vec3{f[0], f[1], f[2]})
		c := scene.Color{R: 1, G: 1, B: 1, A: 1}
		switch len(f) {
		case 6, 7:
			c.R, c.G, c.B = f[3], f[4], f[5]
			p.hasColor = true
		}
		p.colors = append(p.colors, c)
	case "vt":
		f, err := floats(args, 1, 3)
		if err != nil {
			return err
		}
		var t mgl32.Vec3
		copy(t[:], f)
		p.texCoords = append(p.texCoords, t)
	case "vn":
		f, err := floats(args, 3, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, mgl32.Vec3{f[0], f[1], f[2]})
	case "f", "l", "p":
		return p.face(args)
	case "o", "g":
		p.finish()
		p.current = &scene.Mesh{Name: strings.Join(args, " ")}
	}
	// mtllib, usemtl, s and unknown statements are ignored.
	return nil
}

func floats(args []string, min, max int) ([]float32, error) {
	if len(args) < min || len(args) > max {
		return nil, fmt.Errorf("expected %d to %d values, got %d", min, max, len(args))
	}
	r := make([]float32, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, err
		}
		r[i] = float32(f)
	}
	return r, nil
}

// index resolves a one based, possibly negative, reference into a list of
// length n. An empty reference is -1.
func index(s string, n int) (int, error) {
	if s == "" {
		return -1, nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= n:
		return i - 1, nil
	case i < 0 && -i <= n:
		return n + i, nil
	}
	return 0, fmt.Errorf("index %d out of range", i)
}

func (p *parser) parseCorner(s string) (corner, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return corner{}, fmt.Errorf("bad vertex %q", s)
	}
	c := corner{vt: -1, vn: -1}
	var err error
	if c.v, err = index(parts[0], len(p.positions)); err != nil {
		return c, err
	}
	if c.v < 0 {
		return c, fmt.Errorf("vertex %q has no position", s)
	}
	if len(parts) > 1 {
		if c.vt, err = index(parts[1], len(p.texCoords)); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 {
		if c.vn, err = index(parts[2], len(p.normals)); err != nil {
			return c, err
		}
	}
	return c, nil
}

func (p *parser) face(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("empty face")
	}
	if p.current == nil {
		p.current = &scene.Mesh{Name: "default"}
	}
	m := p.current
	if p.lookup == nil {
		p.lookup = make(map[corner]uint32)
	}
	f := make(scene.Face, 0, len(args))
	for i, a := range args {
		c, err := p.parseCorner(a)
		if err != nil {
			return err
		}
		if len(m.Faces) == 0 && i == 0 {
			p.useTex = c.vt >= 0
			p.useNorm = c.vn >= 0
		}
		if p.useTex != (c.vt >= 0) || p.useNorm != (c.vn >= 0) {
			return fmt.Errorf("vertex %q mixes attribute layouts", a)
		}
		idx, ok := p.lookup[c]
		if !ok {
			idx = uint32(len(m.Positions))
			p.lookup[c] = idx
			m.Positions = append(m.Positions, p.positions[c.v])
			m.Colors[0] = append(m.Colors[0], p.colors[c.v])
			if p.useTex {
				m.TexCoords[0] = append(m.TexCoords[0], p.texCoords[c.vt])
			}
			if p.useNorm {
				m.Normals = append(m.Normals, p.normals[c.vn])
			}
		}
		f = append(f, idx)
	}
	m.Faces = append(m.Faces, f)
	return nil
}

func (p *parser) finish() {
	m := p.current
	p.current = nil
	p.lookup = nil
	if m == nil || len(m.Faces) == 0 {
		return
	}
	if !p.hasColor {
		m.Colors[0] = nil
	}
	p.meshes = append(p.meshes, m)
}
