// SPDX-License-Identifier: GPL-2.0-or-later

// Package gltf imports glTF 2.0 files, both .gltf and binary .glb.
// Every primitive becomes one mesh, node transforms are not applied.
package gltf

import (
	"fmt"
	"io"
	"strconv"

	"goengine/filesystem"
	"goengine/scene"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func init() {
	scene.Register(".gltf", Import)
	scene.Register(".glb", Import)
}

// Import decodes the document. Loose files are opened by path so external
// buffers next to them resolve, files inside a pak must be self contained.
func Import(name string, r io.Reader) (*scene.Scene, error) {
	var doc *gltf.Document
	if p, ok := filesystem.LocalPath(name); ok {
		d, err := gltf.Open(p)
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
		doc = d
	} else {
		doc = new(gltf.Document)
		if err := gltf.NewDecoder(r).Decode(doc); err != nil {
			return nil, errors.Wrap(err, name)
		}
	}
	return Convert(doc)
}

// Convert turns all mesh primitives of doc into scene meshes.
func Convert(doc *gltf.Document) (*scene.Scene, error) {
	s := &scene.Scene{}
	for mi, gm := range doc.Meshes {
		for pi, p := range gm.Primitives {
			name := gm.Name
			if name == "" {
				name = "mesh" + strconv.Itoa(mi)
			}
			if len(gm.Primitives) > 1 {
				name = fmt.Sprintf("%s.%d", name, pi)
			}
			m, err := convertPrimitive(doc, p)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %s", name)
			}
			m.Name = name
			s.Meshes = append(s.Meshes, m)
		}
	}
	return s, nil
}

func accessor[I ~int | ~uint32](doc *gltf.Document, i I) (*gltf.Accessor, error) {
	if int(i) < 0 || int(i) >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", i)
	}
	return doc.Accessors[int(i)], nil
}

func convertPrimitive(doc *gltf.Document, p *gltf.Primitive) (*scene.Mesh, error) {
	m := &scene.Mesh{}
	for attr, ai := range p.Attributes {
		acr, err := accessor(doc, ai)
		if err != nil {
			return nil, err
		}
		switch {
		case attr == "POSITION":
			pos, err := modeler.ReadPosition(doc, acr, nil)
			if err != nil {
				return nil, errors.Wrap(err, attr)
			}
			m.Positions = vec3s(pos)
		case attr == "NORMAL":
			n, err := modeler.ReadNormal(doc, acr, nil)
			if err != nil {
				return nil, errors.Wrap(err, attr)
			}
			m.Normals = vec3s(n)
		default:
			if set, ok := channel(attr, "TEXCOORD_", scene.MaxTexCoordsSets); ok {
				tc, err := modeler.ReadTextureCoord(doc, acr, nil)
				if err != nil {
					return nil, errors.Wrap(err, attr)
				}
				m.TexCoords[set] = make([]mgl32.Vec3, len(tc))
				for i, t := range tc {
					m.TexCoords[set][i] = mgl32.Vec3{t[0], t[1], 0}
				}
			} else if set, ok := channel(attr, "COLOR_", scene.MaxColorSets); ok {
				c, err := modeler.ReadColor(doc, acr, nil)
				if err != nil {
					return nil, errors.Wrap(err, attr)
				}
				m.Colors[set] = make([]scene.Color, len(c))
				for i, v := range c {
					m.Colors[set][i] = scene.Color{
						R: float32(v[0]) / 255,
						G: float32(v[1]) / 255,
						B: float32(v[2]) / 255,
						A: float32(v[3]) / 255,
					}
				}
			}
		}
	}

	var indices []uint32
	if p.Indices != nil {
		acr, err := accessor(doc, *p.Indices)
		if err != nil {
			return nil, err
		}
		if indices, err = modeler.ReadIndices(doc, acr, nil); err != nil {
			return nil, errors.Wrap(err, "indices")
		}
	} else {
		indices = make([]uint32, len(m.Positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	faces, err := assemble(p.Mode, indices)
	if err != nil {
		return nil, err
	}
	m.Faces = faces
	return m, nil
}

func channel(attr, prefix string, max int) (int, bool) {
	if len(attr) <= len(prefix) || attr[:len(prefix)] != prefix {
		return 0, false
	}
	n, err := strconv.Atoi(attr[len(prefix):])
	if err != nil || n < 0 || n >= max {
		return 0, false
	}
	return n, true
}

func vec3s(v [][3]float32) []mgl32.Vec3 {
	r := make([]mgl32.Vec3, len(v))
	for i, p := range v {
		r[i] = mgl32.Vec3(p)
	}
	return r
}

// assemble builds faces from an index stream according to the primitive
// mode. Strips and fans are unrolled into triangles.
func assemble(mode gltf.PrimitiveMode, idx []uint32) ([]scene.Face, error) {
	var faces []scene.Face
	switch mode {
	case gltf.PrimitiveTriangles:
		for i := 0; i+2 < len(idx); i += 3 {
			faces = append(faces, scene.Face{idx[i], idx[i+1], idx[i+2]})
		}
	case gltf.PrimitiveTriangleStrip:
		for i := 0; i+2 < len(idx); i++ {
			if i%2 == 0 {
				faces = append(faces, scene.Face{idx[i], idx[i+1], idx[i+2]})
			} else {
				faces = append(faces, scene.Face{idx[i+1], idx[i], idx[i+2]})
			}
		}
	case gltf.PrimitiveTriangleFan:
		for i := 1; i+1 < len(idx); i++ {
			faces = append(faces, scene.Face{idx[0], idx[i], idx[i+1]})
		}
	case gltf.PrimitiveLines:
		for i := 0; i+1 < len(idx); i += 2 {
			faces = append(faces, scene.Face{idx[i], idx[i+1]})
		}
	case gltf.PrimitiveLineStrip, gltf.PrimitiveLineLoop:
		for i := 0; i+1 < len(idx); i++ {
			faces = append(faces, scene.Face{idx[i], idx[i+1]})
		}
		if mode == gltf.PrimitiveLineLoop && len(idx) > 2 {
			faces = append(faces, scene.Face{idx[len(idx)-1], idx[0]})
		}
	case gltf.PrimitivePoints:
		for _, i := range idx {
			faces = append(faces, scene.Face{i})
		}
	default:
		return nil, fmt.Errorf("unsupported primitive mode %v", mode)
	}
	return faces, nil
}
