// SPDX-License-Identifier: GPL-2.0-or-later

// Package meshcache stores processed mesh data in protobuf wire format so
// repeated loads skip the import and post processing.
//
//	File:  1 version (varint), 2 source size (varint), 3 mesh (bytes, repeated),
//	       4 crc of everything before it (varint)
//	Mesh:  1 name (bytes), 2 vertices (packed fixed32), 3 indices (packed varint)
package meshcache

import (
	"fmt"
	"io"
	"math"

	"goengine/crc"
	"goengine/mesh"

	"google.golang.org/protobuf/encoding/protowire"
)

const Version = 2

const (
	fileVersion    protowire.Number = 1
	fileSourceSize protowire.Number = 2
	fileMesh       protowire.Number = 3
	fileChecksum   protowire.Number = 4

	meshName     protowire.Number = 1
	meshVertices protowire.Number = 2
	meshIndices  protowire.Number = 3
)

const floatsPerVertex = mesh.VertexSize / 4

// Marshal encodes meshes. sourceSize is the size of the file they were
// imported from and is checked on load.
func Marshal(meshes []mesh.Data, sourceSize int64) []byte {
	var b []byte
	b = protowire.AppendTag(b, fileVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, Version)
	b = protowire.AppendTag(b, fileSourceSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(sourceSize))
	for i := range meshes {
		b = protowire.AppendTag(b, fileMesh, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalMesh(&meshes[i]))
	}
	sum := crc.Checksum(b)
	b = protowire.AppendTag(b, fileChecksum, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(sum))
	return b
}

func marshalMesh(d *mesh.Data) []byte {
	var b []byte
	b = protowire.AppendTag(b, meshName, protowire.BytesType)
	b = protowire.AppendString(b, d.Name)

	fl := d.Flatten()
	v := make([]byte, 0, 4*len(fl))
	for _, f := range fl {
		v = protowire.AppendFixed32(v, math.Float32bits(f))
	}
	b = protowire.AppendTag(b, meshVertices, protowire.BytesType)
	b = protowire.AppendBytes(b, v)

	var ix []byte
	for _, i := range d.Indices {
		ix = protowire.AppendVarint(ix, uint64(i))
	}
	b = protowire.AppendTag(b, meshIndices, protowire.BytesType)
	b = protowire.AppendBytes(b, ix)
	return b
}

// Unmarshal decodes a cache file. It fails if the version, the source
// size or the checksum does not match. The checksum must be the last field.
func Unmarshal(b []byte, sourceSize int64) ([]mesh.Data, error) {
	var meshes []mesh.Data
	version := uint64(0)
	size := int64(-1)
	all := b
	seenVersion, seenSize, checked := false, false, false
	for len(b) > 0 {
		offset := len(all) - len(b)
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == fileVersion && typ == protowire.VarintType:
			if seenVersion {
				return nil, fmt.Errorf("mesh cache has two versions")
			}
			seenVersion = true
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			version = v
			b = b[n:]
		case num == fileSourceSize && typ == protowire.VarintType:
			if seenSize {
				return nil, fmt.Errorf("mesh cache has two source sizes")
			}
			seenSize = true
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			size = int64(v)
			b = b[n:]
		case num == fileMesh && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			d, err := unmarshalMesh(v)
			if err != nil {
				return nil, err
			}
			meshes = append(meshes, d)
			b = b[n:]
		case num == fileChecksum && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			if sum := crc.Checksum(all[:offset]); uint64(sum) != v {
				return nil, fmt.Errorf("mesh cache checksum %#04x, want %#04x", v, sum)
			}
			checked = true
			b = b[n:]
			if len(b) != 0 {
				return nil, fmt.Errorf("mesh cache has %d bytes after the checksum", len(b))
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	if version != Version {
		return nil, fmt.Errorf("mesh cache version %d, want %d", version, Version)
	}
	if !checked {
		return nil, fmt.Errorf("mesh cache has no checksum")
	}
	if size != sourceSize {
		return nil, fmt.Errorf("mesh cache is stale, source size %d, cached %d", sourceSize, size)
	}
	return meshes, nil
}

func unmarshalMesh(b []byte) (mesh.Data, error) {
	var d mesh.Data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return d, protowire.ParseError(n)
		}
		b = b[n:]
		if typ != protowire.BytesType {
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return d, protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return d, protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case meshName:
			d.Name = string(v)
		case meshVertices:
			vs, err := vertices(v)
			if err != nil {
				return d, err
			}
			d.Vertices = vs
		case meshIndices:
			for len(v) > 0 {
				i, n := protowire.ConsumeVarint(v)
				if n < 0 {
					return d, protowire.ParseError(n)
				}
				if i > math.MaxUint32 {
					return d, fmt.Errorf("mesh %s: index %d out of range", d.Name, i)
				}
				d.Indices = append(d.Indices, uint32(i))
				v = v[n:]
			}
		}
	}
	for _, i := range d.Indices {
		if int(i) >= len(d.Vertices) {
			return d, fmt.Errorf("mesh %s: index %d out of range", d.Name, i)
		}
	}
	return d, nil
}

func vertices(b []byte) ([]mesh.Vertex, error) {
	if len(b)%(4*floatsPerVertex) != 0 {
		return nil, fmt.Errorf("vertex data length %d is not a multiple of %d", len(b), 4*floatsPerVertex)
	}
	f := make([]float32, 0, len(b)/4)
	for len(b) > 0 {
		v, n := protowire.ConsumeFixed32(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		f = append(f, math.Float32frombits(v))
		b = b[n:]
	}
	vs := make([]mesh.Vertex, len(f)/floatsPerVertex)
	for i := range vs {
		o := f[i*floatsPerVertex:]
		v := &vs[i]
		copy(v.Position[:], o[0:3])
		copy(v.Color[:], o[3:6])
		copy(v.TexCoord[:], o[6:8])
		copy(v.Normal[:], o[8:11])
	}
	return vs, nil
}

// Write encodes meshes to w.
func Write(w io.Writer, meshes []mesh.Data, sourceSize int64) error {
	_, err := w.Write(Marshal(meshes, sourceSize))
	return err
}

// Read decodes meshes from r.
func Read(r io.Reader, sourceSize int64) ([]mesh.Data, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(b, sourceSize)
}
