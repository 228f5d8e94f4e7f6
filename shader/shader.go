// SPDX-License-Identifier: GPL-2.0-or-later

// Package shader loads GLSL programs from <name>.vs and <name>.fs pairs.
package shader

import (
	"fmt"

	"goengine/filesystem"
	"goengine/glh"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

const (
	VertexExt   = ".vs"
	FragmentExt = ".fs"

	// Uniform names the engine sets on every program.
	ModelViewProjection = "u_mvp"
	World               = "u_world"
	Texture0            = "u_texture"
)

// Error is a shader loading or compile failure of one file.
type Error struct {
	File string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("shader %s: %v", e.File, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Manager remembers the bound program to skip redundant binds.
type Manager struct {
	current *Shader
}

func NewManager() *Manager {
	return &Manager{}
}

// Current returns the bound shader or nil.
func (m *Manager) Current() *Shader {
	return m.current
}

// Invalidate forgets the bound program, e.g. after foreign GL code ran.
func (m *Manager) Invalidate() {
	m.current = nil
}

type Shader struct {
	name    string
	prog    *glh.Program
	manager *Manager
}

// Sources reads both stages of name.
func Sources(name string) (vertex, fragment string, err error) {
	vs, err := filesystem.ReadFile(name + VertexExt)
	if err != nil {
		return "", "", &Error{File: name + VertexExt, Err: err}
	}
	fs, err := filesystem.ReadFile(name + FragmentExt)
	if err != nil {
		return "", "", &Error{File: name + FragmentExt, Err: err}
	}
	return string(vs), string(fs), nil
}

// Load reads, compiles and links the program name.
func Load(name string, m *Manager) (*Shader, error) {
	vs, fs, err := Sources(name)
	if err != nil {
		return nil, err
	}
	return New(name, vs, fs, m)
}

// New compiles a program from source.
func New(name, vertex, fragment string, m *Manager) (*Shader, error) {
	p, err := glh.NewProgram(vertex, fragment)
	if err != nil {
		return nil, &Error{File: name, Err: errors.Wrap(err, "build program")}
	}
	return &Shader{
		name:    name,
		prog:    p,
		manager: m,
	}, nil
}

func (s *Shader) Name() string {
	return s.name
}

func (s *Shader) Bind() {
	if s.manager != nil {
		if s.manager.current == s {
			return
		}
		s.manager.current = s
	}
	s.prog.Use()
}

// The setters bind the shader first.

func (s *Shader) SetModelViewProjection(m mgl32.Mat4) {
	s.SetMat4(ModelViewProjection, m)
}

func (s *Shader) SetMat4(name string, m mgl32.Mat4) {
	s.Bind()
	s.prog.SetMat4(name, m)
}

func (s *Shader) SetVec3(name string, v mgl32.Vec3) {
	s.Bind()
	s.prog.SetVec3(name, v)
}

func (s *Shader) SetVec4(name string, v mgl32.Vec4) {
	s.Bind()
	s.prog.SetVec4(name, v)
}

func (s *Shader) SetFloat(name string, v float32) {
	s.Bind()
	s.prog.SetFloat(name, v)
}

func (s *Shader) SetInt(name string, v int32) {
	s.Bind()
	s.prog.SetInt(name, v)
}

// UniformLocation returns -1 if the program has no such uniform.
func (s *Shader) UniformLocation(name string) int32 {
	return s.prog.UniformLocation(name)
}
