// SPDX-License-Identifier: GPL-2.0-or-later

package content

import (
	"os"
	"path/filepath"

	"goengine/conlog"
	"goengine/cvars"
	"goengine/filesystem"
	"goengine/mesh"
	"goengine/meshcache"
	"goengine/scene"
	_ "goengine/scene/gltf"
	_ "goengine/scene/mdl"
	_ "goengine/scene/obj"

	"github.com/pkg/errors"
)

// ImportSteps are the post process steps applied to every model.
const ImportSteps = scene.Triangulate | scene.JoinIdenticalVertices | scene.SortByPType

var errNoMeshes = errors.New("no meshes found")

func readFile(name string) ([]byte, error) {
	return filesystem.ReadFile(name)
}

// CachePath is where the processed meshes of name are stored.
func CachePath(name string) string {
	return filepath.Join(filesystem.BaseDir(), "cache", filepath.FromSlash(name)+".mesh")
}

func (m *Manager) loadMeshData(name string) ([]mesh.Data, error) {
	src, err := filesystem.Stat(name)
	if err != nil {
		return nil, err
	}
	useCache := cvars.ContentCache.Bool()
	if useCache {
		if d, ok := readCache(name, src); ok {
			return d, nil
		}
	}

	s, err := scene.ReadFile(name, ImportSteps)
	if err != nil {
		return nil, err
	}
	if len(s.Meshes) == 0 {
		return nil, errNoMeshes
	}
	data := make([]mesh.Data, 0, len(s.Meshes))
	for _, sm := range s.Meshes {
		d, err := mesh.FromScene(sm)
		if err != nil {
			return nil, err
		}
		data = append(data, d)
	}

	if useCache {
		if err := writeCache(name, src, data); err != nil {
			conlog.Printf("Couldn't write mesh cache for %s: %v\n", name, err)
		}
	}
	return data, nil
}

func readCache(name string, src *filesystem.FileInfo) ([]mesh.Data, bool) {
	p := CachePath(name)
	fi, err := os.Stat(p)
	if err != nil || fi.ModTime().Before(src.ModTime) {
		return nil, false
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, false
	}
	defer f.Close()
	d, err := meshcache.Read(f, src.Size)
	if err != nil {
		conlog.DPrintf("Ignoring mesh cache %s: %v\n", p, err)
		return nil, false
	}
	conlog.DPrintf("Using mesh cache %s\n", p)
	return d, true
}

func writeCache(name string, src *filesystem.FileInfo, data []mesh.Data) error {
	p := CachePath(name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if err := meshcache.Write(f, data, src.Size); err != nil {
		f.Close()
		os.Remove(p)
		return errors.Wrap(err, p)
	}
	return f.Close()
}
