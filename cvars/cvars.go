// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"goengine/conlog"
	"goengine/cvar"
)

var (
	ContentCache        *cvar.Cvar
	Developer           *cvar.Cvar
	DevStats            *cvar.Cvar
	GlTextureAnisotropy *cvar.Cvar
	GlTextureMode       *cvar.Cvar
	GlCull              *cvar.Cvar
	HostMaxFrameTime    *cvar.Cvar
	HostUpdateRate      *cvar.Cvar
	RenderClearColor    *cvar.Cvar
	RenderFov           *cvar.Cvar
	RenderFarClip       *cvar.Cvar
	RenderWireframe     *cvar.Cvar
	SoundVolume         *cvar.Cvar
	VideoFsaa           *cvar.Cvar
	VideoFullscreen     *cvar.Cvar
	VideoHeight         *cvar.Cvar
	VideoVerticalSync   *cvar.Cvar
	VideoWidth          *cvar.Cvar
)

func init() {
	ContentCache = cvar.MustRegister("content_cache", "0", cvar.ARCHIVE)
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	Developer.SetCallback(func(cv *cvar.Cvar) {
		conlog.SetDeveloper(cv.Bool())
	})
	DevStats = cvar.MustRegister("dev_stats", "0", cvar.NONE)
	GlTextureAnisotropy = cvar.MustRegister("gl_texture_anisotropy", "1", cvar.ARCHIVE)
	GlTextureMode = cvar.MustRegister("gl_texturemode", "GL_LINEAR_MIPMAP_LINEAR", cvar.ARCHIVE)
	GlCull = cvar.MustRegister("gl_cull", "1", cvar.NONE)
	HostMaxFrameTime = cvar.MustRegister("host_maxframetime", "0.25", cvar.NONE)
	HostUpdateRate = cvar.MustRegister("host_updaterate", "60", cvar.ARCHIVE)
	RenderClearColor = cvar.MustRegister("r_clearcolor", "0.1 0.1 0.15", cvar.ARCHIVE)
	RenderFov = cvar.MustRegister("fov", "70", cvar.ARCHIVE)
	RenderFarClip = cvar.MustRegister("r_farclip", "1000", cvar.NONE)
	RenderWireframe = cvar.MustRegister("r_wireframe", "0", cvar.NOTIFY)
	SoundVolume = cvar.MustRegister("volume", "0.7", cvar.ARCHIVE)
	VideoFsaa = cvar.MustRegister("vid_fsaa", "0", cvar.NONE)
	VideoFullscreen = cvar.MustRegister("vid_fullscreen", "0", cvar.ARCHIVE)
	VideoHeight = cvar.MustRegister("vid_height", "600", cvar.ARCHIVE)
	VideoVerticalSync = cvar.MustRegister("vid_vsync", "1", cvar.ARCHIVE)
	VideoWidth = cvar.MustRegister("vid_width", "800", cvar.ARCHIVE)
}
