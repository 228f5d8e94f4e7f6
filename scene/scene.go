// SPDX-License-Identifier: GPL-2.0-or-later

// Package scene is the format independent result of a mesh import.
// Importers for the different file formats register themselves by file
// extension and ReadFile picks the matching one.
package scene

import (
	"fmt"
	"io"
	"strings"

	"goengine/filesystem"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MaxColorSets     = 8
	MaxTexCoordsSets = 8
)

type Color struct {
	R, G, B, A float32
}

// Face is a primitive, its indices point into the vertex arrays of the
// mesh. One index is a point, two a line, three a triangle, more a polygon.
type Face []uint32

type Mesh struct {
	Name      string
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	// Colors and TexCoords are per channel, a nil channel is unused.
	Colors    [MaxColorSets][]Color
	TexCoords [MaxTexCoordsSets][]mgl32.Vec3
	Faces     []Face
}

type Scene struct {
	Meshes []*Mesh
}

func (m *Mesh) NumVertices() int {
	return len(m.Positions)
}

func (m *Mesh) HasFaces() bool {
	return len(m.Faces) != 0
}

func (m *Mesh) HasPositions() bool {
	return len(m.Positions) != 0
}

func (m *Mesh) HasNormals() bool {
	return len(m.Normals) != 0 && len(m.Normals) == len(m.Positions)
}

func (m *Mesh) HasColors(set int) bool {
	if set < 0 || set >= MaxColorSets {
		return false
	}
	return len(m.Colors[set]) != 0 && len(m.Colors[set]) == len(m.Positions)
}

func (m *Mesh) HasTexCoords(set int) bool {
	if set < 0 || set >= MaxTexCoordsSets {
		return false
	}
	return len(m.TexCoords[set]) != 0 && len(m.TexCoords[set]) == len(m.Positions)
}

// Validate checks that all face indices are in range.
func (m *Mesh) Validate() error {
	n := uint32(len(m.Positions))
	for i, f := range m.Faces {
		if len(f) == 0 {
			return fmt.Errorf("mesh %s: face %d is empty", m.Name, i)
		}
		for _, idx := range f {
			if idx >= n {
				return fmt.Errorf("mesh %s: face %d index %d out of range (%d vertices)", m.Name, i, idx, n)
			}
		}
	}
	return nil
}

// Importer turns the file content into a scene. name is the content name,
// importers needing side files resolve them relative to it.
type Importer func(name string, r io.Reader) (*Scene, error)

var (
	importers = make(map[string]Importer)
)

// Register adds an importer for the extension ext, e.g. ".obj".
func Register(ext string, i Importer) {
	importers[strings.ToLower(ext)] = i
}

// Supported reports whether an importer for name's extension exists.
func Supported(name string) bool {
	_, ok := importers[strings.ToLower(filesystem.Ext(name))]
	return ok
}

// Read imports from r using the importer registered for name's extension
// and applies the post process steps.
func Read(name string, r io.Reader, steps PostProcess) (*Scene, error) {
	ext := strings.ToLower(filesystem.Ext(name))
	imp, ok := importers[ext]
	if !ok {
		return nil, fmt.Errorf("file %s has an unknown format %q", name, ext)
	}
	s, err := imp(name, r)
	if err != nil {
		return nil, err
	}
	for _, m := range s.Meshes {
		if m == nil {
			continue
		}
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}
	return Apply(s, steps), nil
}

// ReadFile loads name through the filesystem.
func ReadFile(name string, steps PostProcess) (*Scene, error) {
	f, err := filesystem.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(name, f, steps)
}
