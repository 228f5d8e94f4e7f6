// SPDX-License-Identifier: GPL-2.0-or-later

// Package content loads models, shaders, textures, fonts and sounds by
// name and keeps them until Unload. Every failed load is reported to the
// notifier and returned as a *LoadError.
package content

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"goengine/audio"
	"goengine/font"
	"goengine/mesh"
	"goengine/model"
	"goengine/shader"
	"goengine/texture"

	"github.com/google/uuid"
)

// LoadErrorKind is the kind shown as the title of load failures.
const LoadErrorKind = "Content Load"

type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s: %v", LoadErrorKind, e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Kind is always LoadErrorKind.
func (e *LoadError) Kind() string {
	return LoadErrorKind
}

// Notifier gets every load failure, e.g. to show a message box.
type Notifier func(err *LoadError)

func logNotifier(err *LoadError) {
	log.Print(err)
}

type Kind int

const (
	KindModel Kind = iota
	KindShader
	KindTexture
	KindFont
	KindSound
)

func (k Kind) String() string {
	switch k {
	case KindModel:
		return "model"
	case KindShader:
		return "shader"
	case KindTexture:
		return "texture"
	case KindFont:
		return "font"
	case KindSound:
		return "sound"
	}
	return "unknown"
}

// Entry describes a cached resource.
type Entry struct {
	ID     uuid.UUID
	Name   string
	Kind   Kind
	Loaded time.Time
	value  any
}

type key struct {
	kind Kind
	name string
}

type Manager struct {
	mu       sync.Mutex
	shaders  *shader.Manager
	audio    *audio.System
	notify   Notifier
	entries  map[key]*Entry
	onUnload []func()
}

// NewManager creates a manager. sm and a may be nil if no shaders or no
// sounds are loaded.
func NewManager(sm *shader.Manager, a *audio.System) *Manager {
	return &Manager{
		shaders: sm,
		audio:   a,
		notify:  logNotifier,
		entries: make(map[key]*Entry),
	}
}

// SetNotifier replaces the failure notifier, nil restores logging.
func (m *Manager) SetNotifier(n Notifier) {
	if n == nil {
		n = logNotifier
	}
	m.notify = n
}

// OnUnload registers f to run after Unload dropped the cache.
func (m *Manager) OnUnload(f func()) {
	m.onUnload = append(m.onUnload, f)
}

func (m *Manager) fail(name string, err error) error {
	le := &LoadError{Name: name, Err: err}
	m.notify(le)
	return le
}

func (m *Manager) lookup(k Kind, name string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key{k, name}]
	if !ok {
		return nil, false
	}
	return e.value, true
}

func (m *Manager) store(k Kind, name string, v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key{k, name}] = &Entry{
		ID:     uuid.Must(uuid.NewV7()),
		Name:   name,
		Kind:   k,
		Loaded: time.Now(),
		value:  v,
	}
}

// Entries lists the cached resources ordered by kind and name.
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	r := make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		r = append(r, *e)
	}
	m.mu.Unlock()
	sort.Slice(r, func(i, j int) bool {
		if r[i].Kind != r[j].Kind {
			return r[i].Kind < r[j].Kind
		}
		return r[i].Name < r[j].Name
	})
	return r
}

// Unload drops all cached resources. GL objects are freed once the
// caller no longer references them.
func (m *Manager) Unload() {
	m.mu.Lock()
	old := m.entries
	m.entries = make(map[key]*Entry)
	m.mu.Unlock()
	for _, e := range old {
		if t, ok := e.value.(*texture.Texture); ok {
			texture.Release(t)
		}
	}
	for _, f := range m.onUnload {
		f()
	}
}

func (m *Manager) LoadShaderFromFile(name string) (*shader.Shader, error) {
	if v, ok := m.lookup(KindShader, name); ok {
		return v.(*shader.Shader), nil
	}
	s, err := shader.Load(name, m.shaders)
	if err != nil {
		return nil, m.fail(name, err)
	}
	m.store(KindShader, name, s)
	return s, nil
}

func (m *Manager) LoadTextureFromFile(name string) (*texture.Texture, error) {
	if v, ok := m.lookup(KindTexture, name); ok {
		return v.(*texture.Texture), nil
	}
	t, err := texture.Load(name)
	if err != nil {
		return nil, m.fail(name, err)
	}
	m.store(KindTexture, name, t)
	return t, nil
}

func fontName(name string, size float64) string {
	return fmt.Sprintf("%s@%g", name, size)
}

func (m *Manager) LoadFontFromFile(name string, size float64) (*font.Font, error) {
	fn := fontName(name, size)
	if v, ok := m.lookup(KindFont, fn); ok {
		return v.(*font.Font), nil
	}
	data, err := readFile(name)
	if err != nil {
		return nil, m.fail(name, err)
	}
	f, err := font.Load(data, size)
	if err != nil {
		return nil, m.fail(name, err)
	}
	m.store(KindFont, fn, f)
	return f, nil
}

func (m *Manager) LoadSoundFromFile(name string) (*audio.Sound, error) {
	if v, ok := m.lookup(KindSound, name); ok {
		return v.(*audio.Sound), nil
	}
	s, err := m.audio.Load(name)
	if err != nil {
		return nil, m.fail(name, err)
	}
	m.store(KindSound, name, s)
	return s, nil
}

// LoadModelsFromFile imports name and uploads one model per mesh.
func (m *Manager) LoadModelsFromFile(name string) ([]*model.Model, error) {
	if v, ok := m.lookup(KindModel, name); ok {
		return v.([]*model.Model), nil
	}
	data, err := m.loadMeshData(name)
	if err != nil {
		return nil, m.fail(name, err)
	}
	models := make([]*model.Model, 0, len(data))
	for _, d := range data {
		gm, err := model.NewMesh(d)
		if err != nil {
			return nil, m.fail(name, err)
		}
		models = append(models, model.New(d.Name, gm))
	}
	m.store(KindModel, name, models)
	return models, nil
}

// LoadMeshData imports name without touching the GPU.
func (m *Manager) LoadMeshData(name string) ([]mesh.Data, error) {
	data, err := m.loadMeshData(name)
	if err != nil {
		return nil, m.fail(name, err)
	}
	return data, nil
}
