// SPDX-License-Identifier: GPL-2.0-or-later

// Package mdl imports the first frame of Quake alias models. Positions are
// turned from Quake's z up into y up. If a palette is available the first
// skin is sampled into vertex colours.
package mdl

import (
	"bytes"
	"encoding/binary"
	"io"

	"goengine/palette"
	"goengine/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const (
	version = 6
	magic   = 'O'<<24 | 'P'<<16 | 'D'<<8 | 'I'

	maxSkinSize = 1 << 20
	maxVertices = 1 << 16
	maxElements = 1 << 16
)

type header struct { // mdl_t
	ID             int32
	Version        int32
	Scale          [3]float32
	ScaleOrigin    [3]float32
	BoundingRadius float32
	EyePosition    [3]float32
	SkinCount      int32
	SkinWidth      int32
	SkinHeight     int32
	VerticeCount   int32
	TriangleCount  int32
	FrameCount     int32
	SyncType       int32
	Flags          int32
	Size           float32
}

// texture coordinates in skin pixels
type skinVertex struct { // stvert_t
	OnSeam int32
	S      int32
	T      int32
}

type triangle struct { // dtriangle_t
	FacesFront int32
	Vertices   [3]int32
}

type frameVertex struct { // trivertx_t
	PackedPosition   [3]byte
	LightNormalIndex byte
}

func init() {
	scene.Register(".mdl", Import)
}

// Import reads the model and colours it with palette.Default if that
// exists.
func Import(name string, r io.Reader) (*scene.Scene, error) {
	pal, err := palette.Load(palette.Default)
	if err != nil {
		pal = nil
	}
	return Decode(r, pal)
}

func read(r io.Reader, v any, what string) error {
	if err := binary.Read(r, binary.LittleEndian, v); err != nil {
		return errors.Wrapf(err, "reading %s", what)
	}
	return nil
}

func skip(r io.Reader, n int64, what string) error {
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return errors.Wrapf(err, "skipping %s", what)
	}
	return nil
}

func checkHeader(h *header) error {
	switch {
	case h.ID != magic:
		return errors.Errorf("not an alias model")
	case h.Version != version:
		return errors.Errorf("version %d, want %d", h.Version, version)
	case h.SkinWidth <= 0 || h.SkinHeight <= 0 || int64(h.SkinWidth)*int64(h.SkinHeight) > maxSkinSize:
		return errors.Errorf("invalid skin size %dx%d", h.SkinWidth, h.SkinHeight)
	case h.SkinCount < 0:
		return errors.Errorf("invalid skin count %d", h.SkinCount)
	case h.VerticeCount <= 0 || h.VerticeCount > maxVertices:
		return errors.Errorf("invalid vertex count %d", h.VerticeCount)
	case h.TriangleCount <= 0 || h.TriangleCount > maxElements:
		return errors.Errorf("invalid triangle count %d", h.TriangleCount)
	case h.FrameCount <= 0:
		return errors.Errorf("model has no frames")
	}
	return nil
}

// readSkins returns the palette indices of the first skin, nil if there
// is none.
func readSkins(r io.Reader, h *header) ([]byte, error) {
	size := int(h.SkinWidth * h.SkinHeight)
	var first []byte
	for i := 0; i < int(h.SkinCount); i++ {
		var typ int32
		if err := read(r, &typ, "skin type"); err != nil {
			return nil, err
		}
		n := int32(1)
		if typ != 0 {
			if err := read(r, &n, "skin group"); err != nil {
				return nil, err
			}
			if n <= 0 || n > 256 {
				return nil, errors.Errorf("invalid skin group size %d", n)
			}
			if err := skip(r, 4*int64(n), "skin intervals"); err != nil {
				return nil, err
			}
		}
		for j := int32(0); j < n; j++ {
			if first != nil {
				if err := skip(r, int64(size), "skin"); err != nil {
					return nil, err
				}
				continue
			}
			first = make([]byte, size)
			if _, err := io.ReadFull(r, first); err != nil {
				return nil, errors.Wrap(err, "reading skin")
			}
		}
	}
	return first, nil
}

// readFrame returns the name and vertices of the first frame. Of a frame
// group only the first frame is used.
func readFrame(r io.Reader, h *header) (string, []frameVertex, error) {
	var typ int32
	if err := read(r, &typ, "frame type"); err != nil {
		return "", nil, err
	}
	if typ != 0 {
		var n int32
		if err := read(r, &n, "frame group"); err != nil {
			return "", nil, err
		}
		if n <= 0 {
			return "", nil, errors.Errorf("invalid frame group size %d", n)
		}
		// group bounds and intervals
		if err := skip(r, 8+4*int64(n), "frame group"); err != nil {
			return "", nil, err
		}
	}
	// frame bounds
	if err := skip(r, 8, "frame bounds"); err != nil {
		return "", nil, err
	}
	var name [16]byte
	if err := read(r, &name, "frame name"); err != nil {
		return "", nil, err
	}
	vs := make([]frameVertex, h.VerticeCount)
	if err := read(r, vs, "frame vertices"); err != nil {
		return "", nil, err
	}
	if i := bytes.IndexByte(name[:], 0); i >= 0 {
		return string(name[:i]), vs, nil
	}
	return string(name[:]), vs, nil
}

type corner struct {
	vertex int32
	seam   bool
}

// Decode reads an alias model. pal may be nil, then the mesh has no
// colours.
func Decode(r io.Reader, pal *palette.Palette) (*scene.Scene, error) {
	var h header
	if err := read(r, &h, "header"); err != nil {
		return nil, err
	}
	if err := checkHeader(&h); err != nil {
		return nil, err
	}
	skin, err := readSkins(r, &h)
	if err != nil {
		return nil, err
	}
	st := make([]skinVertex, h.VerticeCount)
	if err := read(r, st, "texture coordinates"); err != nil {
		return nil, err
	}
	tris := make([]triangle, h.TriangleCount)
	if err := read(r, tris, "triangles"); err != nil {
		return nil, err
	}
	name, fv, err := readFrame(r, &h)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = "frame0"
	}

	positions := make([]mgl32.Vec3, len(fv))
	for i, v := range fv {
		var p [3]float32
		for j := range p {
			p[j] = float32(v.PackedPosition[j])*h.Scale[j] + h.ScaleOrigin[j]
		}
		positions[i] = mgl32.Vec3{p[0], p[2], -p[1]}
	}

	// smooth normals over the original vertices, seams do not split them
	normals := make([]mgl32.Vec3, len(fv))
	m := &scene.Mesh{Name: name}
	lookup := make(map[corner]uint32)
	w, ht := float32(h.SkinWidth), float32(h.SkinHeight)
	var colors []scene.Color
	for ti, t := range tris {
		for _, v := range t.Vertices {
			if v < 0 || v >= h.VerticeCount {
				return nil, errors.Errorf("triangle %d: vertex %d out of range", ti, v)
			}
		}
		// Quake triangles are clockwise
		order := [3]int32{t.Vertices[0], t.Vertices[2], t.Vertices[1]}
		a, b, c := positions[order[0]], positions[order[1]], positions[order[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		face := make(scene.Face, 3)
		for k, v := range order {
			normals[v] = normals[v].Add(n)
			key := corner{v, t.FacesFront == 0 && st[v].OnSeam != 0}
			idx, ok := lookup[key]
			if !ok {
				idx = uint32(len(m.Positions))
				lookup[key] = idx
				s := float32(st[v].S)
				if key.seam {
					s += w / 2
				}
				u, tv := (s+0.5)/w, (float32(st[v].T)+0.5)/ht
				m.Positions = append(m.Positions, positions[v])
				m.TexCoords[0] = append(m.TexCoords[0], mgl32.Vec3{u, 1 - tv, 0})
				if skin != nil && pal != nil {
					colors = append(colors, sample(skin, pal, int(h.SkinWidth), int(h.SkinHeight), u, tv))
				}
				m.Normals = append(m.Normals, mgl32.Vec3{})
			}
			face[k] = idx
		}
		m.Faces = append(m.Faces, face)
	}
	for key, idx := range lookup {
		if l := normals[key.vertex].Len(); l > 0 {
			m.Normals[idx] = normals[key.vertex].Mul(1 / l)
		}
	}
	m.Colors[0] = colors
	return &scene.Scene{Meshes: []*scene.Mesh{m}}, nil
}

func sample(skin []byte, pal *palette.Palette, w, h int, u, v float32) scene.Color {
	x := min(max(int(u*float32(w)), 0), w-1)
	y := min(max(int(v*float32(h)), 0), h-1)
	c := pal.Color(skin[y*w+x])
	return scene.Color{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: 1,
	}
}
