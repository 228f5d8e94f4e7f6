// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"goengine/cmd"
	"goengine/conlog"
	"goengine/cvar"
	"goengine/cvars"

	"github.com/go-gl/gl/v4.6-core/gl"
)

type glMode struct {
	magfilter int32
	minfilter int32
	name      string
}

var (
	glModes = [6]glMode{
		{gl.NEAREST, gl.NEAREST, "GL_NEAREST"},
		{gl.NEAREST, gl.NEAREST_MIPMAP_NEAREST, "GL_NEAREST_MIPMAP_NEAREST"},
		{gl.NEAREST, gl.NEAREST_MIPMAP_LINEAR, "GL_NEAREST_MIPMAP_LINEAR"},
		{gl.LINEAR, gl.LINEAR, "GL_LINEAR"},
		{gl.LINEAR, gl.LINEAR_MIPMAP_NEAREST, "GL_LINEAR_MIPMAP_NEAREST"},
		{gl.LINEAR, gl.LINEAR_MIPMAP_LINEAR, "GL_LINEAR_MIPMAP_LINEAR"},
	}
)

type texMgr struct {
	initialized    bool
	modeIndex      int
	maxAnisotropy  float32
	activeTextures map[*Texture]bool
}

var (
	manager = texMgr{
		modeIndex:      len(glModes) - 1,
		maxAnisotropy:  1,
		activeTextures: make(map[*Texture]bool),
	}
)

func modeIndex(name string) (int, bool) {
	for i, m := range glModes {
		if m.name == name {
			return i, true
		}
	}
	return 0, false
}

func init() {
	cmd.Must(cmd.AddCommand("gl_describetexturemodes", func(_ cmd.Arguments) error {
		for i, m := range glModes {
			conlog.Printf("   %2d: %s\n", i+1, m.name)
		}
		conlog.Printf("%d modes\n", len(glModes))
		return nil
	}))
	cmd.Must(cmd.AddCommand("imagelist", func(_ cmd.Arguments) error {
		n := 0
		for t := range manager.activeTextures {
			conlog.Printf("   %4d x%4d %s\n", t.width, t.height, t.name)
			n++
		}
		conlog.Printf("%d textures\n", n)
		return nil
	}))
	cvars.GlTextureMode.SetCallback(func(cv *cvar.Cvar) {
		manager.textureModeCallback(cv)
	})
	cvars.GlTextureAnisotropy.SetCallback(func(cv *cvar.Cvar) {
		manager.anisotropyCallback(cv)
	})
}

// Init queries the driver limits. It needs a current GL context.
func Init() {
	gl.GetFloatv(gl.MAX_TEXTURE_MAX_ANISOTROPY, &manager.maxAnisotropy)
	if i, ok := modeIndex(cvars.GlTextureMode.String()); ok {
		manager.modeIndex = i
	}
	manager.initialized = true
}

// Shutdown forgets all textures.
func Shutdown() {
	manager.initialized = false
	manager.activeTextures = make(map[*Texture]bool)
}

func (tm *texMgr) add(t *Texture) {
	tm.activeTextures[t] = true
	tm.setFilterModes(t)
}

func (tm *texMgr) remove(t *Texture) {
	delete(tm.activeTextures, t)
}

func (tm *texMgr) setFilterModes(t *Texture) {
	t.Bind(0)
	m := glModes[tm.modeIndex]
	if t.mipmap {
		t.tex.SetFilter(m.minfilter, m.magfilter)
		t.tex.SetAnisotropy(min(max(cvars.GlTextureAnisotropy.Value(), 1), tm.maxAnisotropy))
		return
	}
	t.tex.SetFilter(m.magfilter, m.magfilter)
}

func (tm *texMgr) textureModeCallback(cv *cvar.Cvar) {
	i, ok := modeIndex(cv.String())
	if !ok {
		conlog.Printf("%s is not a valid texture mode\n", cv.String())
		cv.SetByString(glModes[tm.modeIndex].name)
		return
	}
	tm.modeIndex = i
	if !tm.initialized {
		return
	}
	for t := range tm.activeTextures {
		tm.setFilterModes(t)
	}
}

func (tm *texMgr) anisotropyCallback(cv *cvar.Cvar) {
	val := cv.Value()
	switch {
	case val < 1:
		cv.SetByString("1")
	case tm.initialized && val > tm.maxAnisotropy:
		cv.SetValue(tm.maxAnisotropy)
	case tm.initialized:
		for t := range tm.activeTextures {
			if t.mipmap {
				tm.setFilterModes(t)
			}
		}
	}
}
