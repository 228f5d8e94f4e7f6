// SPDX-License-Identifier: GPL-2.0-or-later

package scene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type PostProcess uint32

const (
	// Triangulate splits polygons into triangle fans.
	Triangulate PostProcess = 1 << iota
	// JoinIdenticalVertices merges vertices equal in all attributes.
	JoinIdenticalVertices
	// SortByPType splits meshes so each holds only one primitive type.
	SortByPType
	// GenNormals adds flat normals to meshes without normals.
	GenNormals

	None PostProcess = 0
)

// Apply runs the selected steps on s in a fixed order: triangulation,
// normal generation, sorting by primitive type and vertex joining.
func Apply(s *Scene, steps PostProcess) *Scene {
	if steps&Triangulate != 0 {
		for _, m := range s.Meshes {
			if m != nil {
				triangulate(m)
			}
		}
	}
	if steps&GenNormals != 0 {
		for _, m := range s.Meshes {
			if m != nil && !m.HasNormals() {
				genFlatNormals(m)
			}
		}
	}
	if steps&SortByPType != 0 {
		var out []*Mesh
		for _, m := range s.Meshes {
			if m == nil {
				out = append(out, m)
				continue
			}
			out = append(out, sortByPType(m)...)
		}
		s.Meshes = out
	}
	if steps&JoinIdenticalVertices != 0 {
		for _, m := range s.Meshes {
			if m != nil {
				joinIdenticalVertices(m)
			}
		}
	}
	return s
}

func triangulate(m *Mesh) {
	var faces []Face
	for _, f := range m.Faces {
		if len(f) <= 3 {
			faces = append(faces, f)
			continue
		}
		for i := 1; i+1 < len(f); i++ {
			faces = append(faces, Face{f[0], f[i], f[i+1]})
		}
	}
	m.Faces = faces
}

// genFlatNormals gives every face corner its own vertex carrying the face
// normal. Points and lines get a zero normal.
func genFlatNormals(m *Mesh) {
	old := *m
	m.Positions = nil
	m.Normals = nil
	for c := range m.Colors {
		m.Colors[c] = nil
	}
	for c := range m.TexCoords {
		m.TexCoords[c] = nil
	}
	faces := make([]Face, 0, len(old.Faces))
	for _, f := range old.Faces {
		var n mgl32.Vec3
		if len(f) >= 3 {
			a, b, c := old.Positions[f[0]], old.Positions[f[1]], old.Positions[f[2]]
			n = b.Sub(a).Cross(c.Sub(a))
			if l := math32.Sqrt(n.Dot(n)); l > 0 {
				n = n.Mul(1 / l)
			}
		}
		nf := make(Face, len(f))
		for i, idx := range f {
			nf[i] = uint32(len(m.Positions))
			m.Positions = append(m.Positions, old.Positions[idx])
			m.Normals = append(m.Normals, n)
			for c := range old.Colors {
				if old.HasColors(c) {
					m.Colors[c] = append(m.Colors[c], old.Colors[c][idx])
				}
			}
			for c := range old.TexCoords {
				if old.HasTexCoords(c) {
					m.TexCoords[c] = append(m.TexCoords[c], old.TexCoords[c][idx])
				}
			}
		}
		faces = append(faces, nf)
	}
	m.Faces = faces
}

func primitiveType(f Face) int {
	switch len(f) {
	case 1, 2, 3:
		return len(f)
	default:
		return 4
	}
}

// sortByPType returns m itself if it has only one primitive type, otherwise
// one mesh per type in the order points, lines, triangles, polygons. The
// vertex arrays are shared, unused vertices are dropped by a later join.
func sortByPType(m *Mesh) []*Mesh {
	var byType [5][]Face
	types := 0
	for _, f := range m.Faces {
		t := primitiveType(f)
		if len(byType[t]) == 0 {
			types++
		}
		byType[t] = append(byType[t], f)
	}
	if types <= 1 {
		return []*Mesh{m}
	}
	var out []*Mesh
	for t := 1; t < len(byType); t++ {
		if len(byType[t]) == 0 {
			continue
		}
		sub := compact(m, byType[t])
		out = append(out, sub)
	}
	return out
}

// compact builds a mesh of only the vertices used by faces.
func compact(m *Mesh, faces []Face) *Mesh {
	out := &Mesh{Name: m.Name}
	remap := make(map[uint32]uint32)
	for _, f := range faces {
		nf := make(Face, len(f))
		for i, idx := range f {
			n, ok := remap[idx]
			if !ok {
				n = uint32(len(out.Positions))
				remap[idx] = n
				copyVertex(out, m, idx)
			}
			nf[i] = n
		}
		out.Faces = append(out.Faces, nf)
	}
	return out
}

func copyVertex(dst, src *Mesh, idx uint32) {
	dst.Positions = append(dst.Positions, src.Positions[idx])
	if src.HasNormals() {
		dst.Normals = append(dst.Normals, src.Normals[idx])
	}
	for c := range src.Colors {
		if src.HasColors(c) {
			dst.Colors[c] = append(dst.Colors[c], src.Colors[c][idx])
		}
	}
	for c := range src.TexCoords {
		if src.HasTexCoords(c) {
			dst.TexCoords[c] = append(dst.TexCoords[c], src.TexCoords[c][idx])
		}
	}
}

type vertexKey struct {
	pos, normal mgl32.Vec3
	colors      [MaxColorSets]Color
	texCoords   [MaxTexCoordsSets]mgl32.Vec3
}

func joinIdenticalVertices(m *Mesh) {
	key := func(i uint32) vertexKey {
		k := vertexKey{pos: m.Positions[i]}
		if m.HasNormals() {
			k.normal = m.Normals[i]
		}
		for c := range m.Colors {
			if m.HasColors(c) {
				k.colors[c] = m.Colors[c][i]
			}
		}
		for c := range m.TexCoords {
			if m.HasTexCoords(c) {
				k.texCoords[c] = m.TexCoords[c][i]
			}
		}
		return k
	}
	out := &Mesh{Name: m.Name}
	seen := make(map[vertexKey]uint32)
	faces := make([]Face, 0, len(m.Faces))
	for _, f := range m.Faces {
		nf := make(Face, len(f))
		for i, idx := range f {
			k := key(idx)
			n, ok := seen[k]
			if !ok {
				n = uint32(len(out.Positions))
				seen[k] = n
				copyVertex(out, m, idx)
			}
			nf[i] = n
		}
		faces = append(faces, nf)
	}
	out.Faces = faces
	*m = *out
}
