// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gopxl/mainthread/v2"
)

type TexID uint32

type Texture2D struct {
	id uint32
}

func NewTexture2D() *Texture2D {
	t := &Texture2D{}
	gl.GenTextures(1, &t.id)
	runtime.AddCleanup(t, deleteTexture, t.id)
	return t
}

func deleteTexture(id uint32) {
	mainthread.CallNonBlock(func() {
		gl.DeleteTextures(1, &id)
	})
}

func (t *Texture2D) ID() TexID {
	return TexID(t.id)
}

// Bind makes t the texture of the given texture unit.
func (t *Texture2D) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// UploadRGBA replaces the image, pix is tightly packed 8bit RGBA.
// The texture must be bound.
func (t *Texture2D) UploadRGBA(width, height int32, pix []byte) {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
}

// UploadAlpha stores one byte per pixel in the red channel.
func (t *Texture2D) UploadAlpha(width, height int32, pix []byte) {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, width, height, 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
}

func (t *Texture2D) GenerateMipmap() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (t *Texture2D) SetFilter(min, mag int32) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, min)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, mag)
}

func (t *Texture2D) SetWrap(s, r int32) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, s)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, r)
}

func (t *Texture2D) SetAnisotropy(a float32) {
	gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, a)
}
