// SPDX-License-Identifier: GPL-2.0-or-later

// Package renderer draws models and text. Everything here runs on the
// main thread with the GL context current.
package renderer

import (
	"goengine/camera"
	"goengine/cvars"
	"goengine/font"
	"goengine/glh"
	"goengine/model"
	"goengine/shader"
	"goengine/texture"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	LightDirection = "u_light_dir"
	Ambient        = "u_ambient"
	Color          = "u_color"
)

// Stats counts the work of the current frame.
type Stats struct {
	DrawCalls int
	Meshes    int
	Glyphs    int
}

type Renderer struct {
	shaders  *shader.Manager
	model    *shader.Shader
	text     *shader.Shader
	textVAO  *glh.VertexArray
	textVBO  *glh.Buffer
	atlases  map[*font.Font]*texture.Texture
	width    int
	height   int
	stats    Stats
	lightDir mgl32.Vec3
}

// New compiles the built-in shaders.
func New(sm *shader.Manager) (*Renderer, error) {
	ms, err := shader.New("builtin/model", modelVertexSource, modelFragmentSource, sm)
	if err != nil {
		return nil, err
	}
	ts, err := shader.New("builtin/text", textVertexSource, textFragmentSource, sm)
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		shaders:  sm,
		model:    ms,
		text:     ts,
		textVAO:  glh.NewVertexArray(),
		textVBO:  glh.NewBuffer(glh.ArrayBuffer),
		atlases:  make(map[*font.Font]*texture.Texture),
		lightDir: mgl32.Vec3{-0.4, -1, -0.6}.Normalize(),
	}
	r.textVAO.Bind()
	r.textVBO.Bind()
	glh.FloatAttrib(0, 2, 4*4, 0)
	glh.FloatAttrib(1, 2, 4*4, 2*4)
	gl.BindVertexArray(0)
	return r, nil
}

// Init sets the global GL state.
func (r *Renderer) Init() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	if cvars.GlCull.Bool() {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
		gl.FrontFace(gl.CCW)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	r.shaders.Invalidate()
}

// DefaultShader is the program used when DrawModel gets no shader.
func (r *Renderer) DefaultShader() *shader.Shader {
	return r.model
}

// SetLightDirection sets the directional light of the default shader.
func (r *Renderer) SetLightDirection(d mgl32.Vec3) {
	if d.Len() > 0 {
		r.lightDir = d.Normalize()
	}
}

// Clear starts a new frame.
func (r *Renderer) Clear(c mgl32.Vec4) {
	r.stats = Stats{}
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) Viewport(w, h int) {
	r.width, r.height = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

func (r *Renderer) Stats() Stats {
	return r.stats
}

// DrawModel draws m at world as seen by cam. A nil shader selects the
// built-in lit vertex colour shader.
func (r *Renderer) DrawModel(m *model.Model, s *shader.Shader, world mgl32.Mat4, cam *camera.Camera) {
	if m == nil {
		return
	}
	if s == nil {
		s = r.model
		s.SetVec3(LightDirection, r.lightDir)
		s.SetFloat(Ambient, 0.25)
	}
	s.Bind()
	s.SetModelViewProjection(cam.ViewProjection().Mul4(world))
	s.SetMat4(shader.World, world)
	if cvars.RenderWireframe.Bool() {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	m.Draw()
	r.stats.DrawCalls += len(m.Meshes())
	r.stats.Meshes += len(m.Meshes())
}

func (r *Renderer) atlas(f *font.Font) *texture.Texture {
	if t, ok := r.atlases[f]; ok {
		return t
	}
	t := texture.NewAlpha("font atlas", f.Atlas())
	r.atlases[f] = t
	return t
}

// ForgetFont drops the atlas texture of f.
func (r *Renderer) ForgetFont(f *font.Font) {
	if t, ok := r.atlases[f]; ok {
		texture.Release(t)
		delete(r.atlases, f)
	}
}

// ForgetFonts drops all atlas textures, for example after the content
// they were built from was unloaded.
func (r *Renderer) ForgetFonts() {
	for f := range r.atlases {
		r.ForgetFont(f)
	}
}

// DrawText draws text with its top left corner at x,y in window pixels.
func (r *Renderer) DrawText(f *font.Font, text string, x, y float32, color mgl32.Vec4) {
	if f == nil || r.width == 0 || r.height == 0 {
		return
	}
	quads := f.Layout(text, x, y)
	if len(quads) == 0 {
		return
	}
	vertices := textVertices(quads)

	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	r.text.Bind()
	r.text.SetModelViewProjection(mgl32.Ortho2D(0, float32(r.width), float32(r.height), 0))
	r.text.SetVec4(Color, color)
	r.text.SetInt(shader.Texture0, 0)
	r.atlas(f).Bind(0)

	r.textVAO.Bind()
	r.textVBO.Bind()
	r.textVBO.SetStreamData(4*len(vertices), glh.Ptr(vertices))
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)/4))
	gl.BindVertexArray(0)
	r.stats.DrawCalls++
	r.stats.Glyphs += len(quads)
}

// textVertices turns quads into two triangles each, x y u v per vertex.
func textVertices(quads []font.Quad) []float32 {
	v := make([]float32, 0, len(quads)*6*4)
	for _, q := range quads {
		v = append(v,
			q.X0, q.Y0, q.U0, q.V0,
			q.X0, q.Y1, q.U0, q.V1,
			q.X1, q.Y1, q.U1, q.V1,
			q.X0, q.Y0, q.U0, q.V0,
			q.X1, q.Y1, q.U1, q.V1,
			q.X1, q.Y0, q.U1, q.V0,
		)
	}
	return v
}

// ReadPixels returns the back buffer as RGBA, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.width, r.height
	buf := make([]byte, w*h*4)
	if len(buf) == 0 {
		return buf, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(buf))
	return buf, w, h
}
