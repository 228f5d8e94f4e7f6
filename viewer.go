// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"

	"goengine/audio"
	"goengine/camera"
	"goengine/content"
	"goengine/cvars"
	"goengine/engine"
	"goengine/font"
	"goengine/gametime"
	"goengine/input"
	kc "goengine/keycode"
	"goengine/math"
	"goengine/mesh"
	"goengine/model"
	"goengine/renderer"
	"goengine/shader"
	"goengine/texture"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	spinSpeed = 0.6 // radians per second
	turnSpeed = 2
	dragSpeed = 0.01

	textureUniform = "u_texture"
)

// options name the optional content of the viewer.
type options struct {
	model   string
	shader  string
	texture string
	sound   string
	mouse   bool
}

// viewer shows one model file, or a quad and a triangle if there is none,
// spinning in front of the camera.
type viewer struct {
	opts   options
	engine *engine.Engine

	models  []*model.Model
	shader  *shader.Shader
	texture *texture.Texture
	sound   *audio.Sound
	font    *font.Font
	camera  *camera.Camera
	center  mgl32.Vec3
	uptime  float64

	left, right *input.Button

	angle, previous float32
	distance        float32
	minDistance     float32
	maxDistance     float32
	spin            bool
}

func newViewer(o options) *viewer {
	return &viewer{opts: o, spin: true}
}

func (v *viewer) attach(e *engine.Engine) {
	v.engine = e
}

var defaultBindings = []struct {
	key     kc.KeyCode
	command string
}{
	{kc.ESCAPE, "quit"},
	{kc.LEFTARROW, "+left"},
	{kc.RIGHTARROW, "+right"},
	{kc.F12, "screenshot"},
	{kc.KeyCode('f'), "toggle r_wireframe"},
	{kc.KeyCode('s'), "toggle dev_stats"},
}

func (v *viewer) Load(c *content.Manager) error {
	// failures were already shown, the viewer goes on without them
	if v.opts.model != "" {
		if ms, err := c.LoadModelsFromFile(v.opts.model); err == nil {
			v.models = ms
		}
	}
	if v.opts.shader != "" {
		if s, err := c.LoadShaderFromFile(v.opts.shader); err == nil {
			v.shader = s
		}
	}
	if v.opts.texture != "" {
		if t, err := c.LoadTextureFromFile(v.opts.texture); err == nil {
			v.texture = t
		}
	}
	if v.opts.sound != "" {
		if s, err := c.LoadSoundFromFile(v.opts.sound); err == nil {
			v.sound = s
		}
	}
	if len(v.models) == 0 {
		ms, err := primitives()
		if err != nil {
			return err
		}
		v.models = ms
	}
	f, err := font.Load(goregular.TTF, 16)
	if err != nil {
		return err
	}
	v.font = f
	v.camera = camera.New(1)
	v.frame()

	if v.left, err = input.RegisterButton(v.engine.Commands(), "left"); err != nil {
		return err
	}
	if v.right, err = input.RegisterButton(v.engine.Commands(), "right"); err != nil {
		return err
	}
	in := v.engine.Input()
	for _, b := range defaultBindings {
		if _, ok := in.Binding(b.key); !ok {
			in.Bind(b.key, b.command)
		}
	}
	return nil
}

func primitives() ([]*model.Model, error) {
	white := mgl32.Vec3{1, 1, 1}
	n := mgl32.Vec3{0, 0, 1}
	quad := mesh.Quad(
		mesh.Vertex{Position: mgl32.Vec3{-1.5, -0.5, 0}, Color: mgl32.Vec3{1, 0, 0}, Normal: n},
		mesh.Vertex{Position: mgl32.Vec3{-0.5, -0.5, 0}, Color: mgl32.Vec3{0, 1, 0}, TexCoord: mgl32.Vec2{1, 0}, Normal: n},
		mesh.Vertex{Position: mgl32.Vec3{-0.5, 0.5, 0}, Color: mgl32.Vec3{0, 0, 1}, TexCoord: mgl32.Vec2{1, 1}, Normal: n},
		mesh.Vertex{Position: mgl32.Vec3{-1.5, 0.5, 0}, Color: white, TexCoord: mgl32.Vec2{0, 1}, Normal: n},
	)
	tri := mesh.Triangle(
		mesh.Vertex{Position: mgl32.Vec3{0.5, -0.5, 0}, Color: mgl32.Vec3{1, 1, 0}, Normal: n},
		mesh.Vertex{Position: mgl32.Vec3{1.5, -0.5, 0}, Color: mgl32.Vec3{0, 1, 1}, Normal: n},
		mesh.Vertex{Position: mgl32.Vec3{1, 0.5, 0}, Color: mgl32.Vec3{1, 0, 1}, Normal: n},
	)
	var r []*model.Model
	for _, d := range []mesh.Data{quad, tri} {
		m, err := model.NewMesh(d)
		if err != nil {
			return nil, err
		}
		r = append(r, model.New(d.Name, m))
	}
	return r, nil
}

// frame places the camera so that all models fit the view.
func (v *viewer) frame() {
	mins, maxs := v.models[0].Mins(), v.models[0].Maxs()
	for _, m := range v.models[1:] {
		a, b := m.Mins(), m.Maxs()
		for i := 0; i < 3; i++ {
			mins[i] = min(mins[i], a[i])
			maxs[i] = max(maxs[i], b[i])
		}
	}
	v.center = mins.Add(maxs).Mul(0.5)
	radius := max(maxs.Sub(mins).Len()/2, 0.1)
	fov := mgl32.DegToRad(cvars.RenderFov.Value())
	v.distance = radius / math32.Sin(fov/2) * 1.1
	v.minDistance = radius * 0.5
	v.maxDistance = radius * 20
}

func (v *viewer) Update(t gametime.Time) error {
	dt := float32(t.ElapsedSeconds())
	in := v.engine.Input()
	v.previous = v.angle
	v.uptime = t.TotalSeconds()
	if in.Pressed(kc.SPACE) {
		v.spin = !v.spin
		v.engine.Audio().Play(v.sound, 1)
	}
	if v.spin {
		v.angle += spinSpeed * dt
	}
	v.angle += turnSpeed * dt * (v.right.ConsumeImpulse() - v.left.ConsumeImpulse())
	if v.opts.mouse && in.Down(kc.MOUSE1) {
		dx, _ := in.MouseDelta()
		v.angle += float32(dx) * dragSpeed
	}
	zoom := float32(1)
	if w := in.Wheel(); w != 0 {
		zoom = math32.Pow(0.9, float32(w))
	}
	if in.Down(kc.UPARROW) {
		zoom *= 1 - dt
	}
	if in.Down(kc.DOWNARROW) {
		zoom *= 1 + dt
	}
	v.distance = math.Clamp(v.minDistance, v.distance*zoom, v.maxDistance)
	return nil
}

func (v *viewer) Draw(r *renderer.Renderer, alpha float64) error {
	w, h := r.Size()
	if h > 0 {
		v.camera.Aspect = float32(w) / float32(h)
	}
	v.camera.Fov = cvars.RenderFov.Value()
	v.camera.Far = max(cvars.RenderFarClip.Value(), v.maxDistance*2)
	v.camera.Position = v.center.Add(mgl32.Vec3{0, v.distance * 0.3, v.distance})
	v.camera.LookAt(v.center)

	a := math.Lerp(v.previous, v.angle, float32(alpha))
	world := mgl32.Translate3D(v.center.Elem()).
		Mul4(mgl32.HomogRotate3DY(a)).
		Mul4(mgl32.Translate3D(v.center.Mul(-1).Elem()))
	if v.shader != nil && v.texture != nil {
		v.texture.Bind(0)
		v.shader.SetInt(textureUniform, 0)
	}
	for _, m := range v.models {
		r.DrawModel(m, v.shader, world, v.camera)
	}

	name := v.opts.model
	if name == "" {
		name = "primitives"
	}
	r.DrawText(v.font, fmt.Sprintf("%s  %.0fs\nSPACE spin  F wireframe  F12 screenshot  ESC quit", name, v.uptime), 8, 8, mgl32.Vec4{1, 1, 1, 0.9})
	return nil
}
