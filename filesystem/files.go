// SPDX-License-Identifier: GPL-2.0-or-later

// Package filesystem resolves content names. The search path is made of
// directories and the pak<N>.pak archives inside them. A loose file
// shadows archive entries of the same directory, a later layer shadows
// all earlier ones.
package filesystem

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"goengine/pack"
)

type File interface {
	io.ReadSeekCloser
	io.ReaderAt
}

type FileInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
	// Path is the OS path of a loose file, empty for archive entries.
	Path string
	// Source names the directory or archive the file was found in.
	Source string
}

type layer interface {
	open(name string) (File, error)
	stat(name string) (*FileInfo, error)
	close() error
	String() string
}

type dirLayer struct {
	dir string
}

func (d dirLayer) path(name string) string {
	return filepath.Join(d.dir, filepath.FromSlash(name))
}

func (d dirLayer) open(name string) (File, error) {
	return os.Open(d.path(name))
}

func (d dirLayer) stat(name string) (*FileInfo, error) {
	p := d.path(name)
	fi, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fs.ErrNotExist
	}
	return &FileInfo{
		Name:    name,
		Size:    fi.Size(),
		ModTime: fi.ModTime(),
		Path:    p,
		Source:  d.dir,
	}, nil
}

func (d dirLayer) close() error   { return nil }
func (d dirLayer) String() string { return d.dir }

type packLayer struct {
	p       *pack.Pack
	modTime time.Time
}

type closer struct {
	*io.SectionReader
}

func (*closer) Close() error {
	return nil
}

func (p packLayer) open(name string) (File, error) {
	f, err := p.p.Open(name)
	if err != nil {
		return nil, err
	}
	return &closer{f}, nil
}

func (p packLayer) stat(name string) (*FileInfo, error) {
	f, err := p.p.Open(name)
	if err != nil {
		return nil, err
	}
	return &FileInfo{
		Name:    name,
		Size:    f.Size(),
		ModTime: p.modTime,
		Source:  p.p.String(),
	}, nil
}

func (p packLayer) close() error   { return p.p.Close() }
func (p packLayer) String() string { return p.p.String() }

var (
	mutex   sync.RWMutex
	baseDir string
	gameDir string
	// searched from the end
	layers []layer
)

func BaseDir() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return baseDir
}

// GameDir is the directory writable data like configs and screenshots
// belong to.
func GameDir() string {
	mutex.RLock()
	defer mutex.RUnlock()
	return gameDir
}

// UseBaseDir resets the search path to base and, if game is not empty,
// base/game on top of it.
func UseBaseDir(base, game string) error {
	mutex.Lock()
	defer mutex.Unlock()
	closeLayers()
	fi, err := os.Stat(base)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", base)
	}
	baseDir = base
	gameDir = base
	addDir(base)
	if game != "" {
		gameDir = filepath.Join(base, game)
		addDir(gameDir)
	}
	return nil
}

func closeLayers() {
	for _, l := range layers {
		l.close()
	}
	layers = nil
}

// Shutdown closes all open archives.
func Shutdown() {
	mutex.Lock()
	defer mutex.Unlock()
	closeLayers()
}

func addDir(dir string) {
	// pak0.pak, pak1.pak, ... with higher numbers shadowing lower ones
	for i := 0; ; i++ {
		pfp := filepath.Join(dir, fmt.Sprintf("pak%d.pak", i))
		fi, err := os.Stat(pfp)
		if err != nil {
			break
		}
		p, err := pack.NewPackReader(pfp)
		if err != nil {
			break
		}
		layers = append(layers, packLayer{p: p, modTime: fi.ModTime()})
	}
	layers = append(layers, dirLayer{dir})
}

// clean turns a content name into a slash separated relative path.
func clean(name string) (string, error) {
	n := path.Clean("/" + strings.ReplaceAll(name, "\\", "/"))
	n = strings.TrimPrefix(n, "/")
	if n == "" || n == "." {
		return "", fs.ErrInvalid
	}
	return n, nil
}

func Open(name string) (File, error) {
	n, err := clean(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	mutex.RLock()
	defer mutex.RUnlock()
	for i := len(layers) - 1; i >= 0; i-- {
		f, err := layers[i].open(n)
		if err == nil {
			return f, nil
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

func Stat(name string) (*FileInfo, error) {
	n, err := clean(name)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	mutex.RLock()
	defer mutex.RUnlock()
	for i := len(layers) - 1; i >= 0; i-- {
		fi, err := layers[i].stat(n)
		if err == nil {
			return fi, nil
		}
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

func ReadFile(name string) ([]byte, error) {
	file, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

// LocalPath returns the OS path of name if it resolves to a loose file.
func LocalPath(name string) (string, bool) {
	fi, err := Stat(name)
	if err != nil || fi.Path == "" {
		return "", false
	}
	return fi.Path, true
}

func isSep(c uint8) bool {
	return c == '/' || c == '\\'
}

// Ext returns the extension including the dot, or "".
func Ext(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[i:]
		}
	}
	return ""
}

func StripExt(path string) string {
	for i := len(path) - 1; i >= 0 && !isSep(path[i]); i-- {
		if path[i] == '.' {
			return path[:i]
		}
	}
	return path
}
