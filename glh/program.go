// SPDX-License-Identifier: GPL-2.0-or-later

// Package glh wraps GL objects so they are released when garbage collected.
// All methods must be called on the main thread; deletion is queued there.
package glh

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/mainthread/v2"
)

type Program struct {
	prog     uint32
	uniforms map[string]int32
}

func NewProgram(vertex, fragment string) (*Program, error) {
	vert, err := CompileShader(vertex, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("vertex shader: %w", err)
	}
	frag, err := CompileShader(fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vert)
		return nil, fmt.Errorf("fragment shader: %w", err)
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(prog, logLength, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("failed to link program: %v", strings.TrimRight(log, "\x00"))
	}

	p := &Program{
		prog:     prog,
		uniforms: make(map[string]int32),
	}
	runtime.AddCleanup(p, deleteProgram, p.prog)
	return p, nil
}

func deleteProgram(p uint32) {
	mainthread.CallNonBlock(func() {
		gl.DeleteProgram(p)
	})
}

func (p *Program) ID() uint32 {
	return p.prog
}

func (p *Program) Use() {
	gl.UseProgram(p.prog)
}

// UniformLocation returns -1 for unknown or optimized out uniforms.
func (p *Program) UniformLocation(n string) int32 {
	if l, ok := p.uniforms[n]; ok {
		return l
	}
	l := gl.GetUniformLocation(p.prog, gl.Str(n+"\x00"))
	p.uniforms[n] = l
	return l
}

// The setters expect the program to be in use.

func (p *Program) SetMat4(n string, m mgl32.Mat4) {
	if l := p.UniformLocation(n); l >= 0 {
		gl.UniformMatrix4fv(l, 1, false, &m[0])
	}
}

func (p *Program) SetVec3(n string, v mgl32.Vec3) {
	if l := p.UniformLocation(n); l >= 0 {
		gl.Uniform3f(l, v[0], v[1], v[2])
	}
}

func (p *Program) SetVec4(n string, v mgl32.Vec4) {
	if l := p.UniformLocation(n); l >= 0 {
		gl.Uniform4f(l, v[0], v[1], v[2], v[3])
	}
}

func (p *Program) SetFloat(n string, v float32) {
	if l := p.UniformLocation(n); l >= 0 {
		gl.Uniform1f(l, v)
	}
}

func (p *Program) SetInt(n string, v int32) {
	if l := p.UniformLocation(n); l >= 0 {
		gl.Uniform1i(l, v)
	}
}

func CompileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(src)
	defer free()
	length := int32(len(src))
	gl.ShaderSource(shader, 1, csource, &length)
	gl.CompileShader(shader)
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
