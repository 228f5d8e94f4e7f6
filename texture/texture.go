// SPDX-License-Identifier: GPL-2.0-or-later

// Package texture uploads images as GL textures and keeps their filter
// state in sync with the gl_texturemode and gl_texture_anisotropy cvars.
package texture

import (
	goimage "image"

	"goengine/glh"
	"goengine/image"

	"github.com/go-gl/gl/v4.6-core/gl"
)

type Texture struct {
	name   string
	tex    *glh.Texture2D
	width  int
	height int
	mipmap bool
}

// New uploads img. The image is flipped to GL's bottom up row order on a
// copy, img itself is not modified.
func New(name string, img *goimage.NRGBA, mipmap bool) *Texture {
	flipped := &goimage.NRGBA{
		Pix:    append([]byte(nil), img.Pix...),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	image.FlipVertical(flipped)
	flipped = image.ToNRGBA(flipped)

	t := &Texture{
		name:   name,
		tex:    glh.NewTexture2D(),
		width:  img.Rect.Dx(),
		height: img.Rect.Dy(),
		mipmap: mipmap,
	}
	t.tex.Bind(0)
	t.tex.UploadRGBA(int32(t.width), int32(t.height), packed(flipped.Pix, flipped.Stride, t.width*4, t.height))
	t.tex.SetWrap(gl.REPEAT, gl.REPEAT)
	if mipmap {
		t.tex.GenerateMipmap()
	}
	manager.add(t)
	return t
}

// NewAlpha uploads a single channel image in top down row order, as used
// by font atlases. It is sampled without mipmaps.
func NewAlpha(name string, img *goimage.Alpha) *Texture {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	t := &Texture{
		name:   name,
		tex:    glh.NewTexture2D(),
		width:  w,
		height: h,
	}
	t.tex.Bind(0)
	t.tex.UploadAlpha(int32(w), int32(h), packed(img.Pix, img.Stride, w, h))
	t.tex.SetWrap(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE)
	t.tex.SetFilter(gl.LINEAR, gl.LINEAR)
	return t
}

// packed drops any stride padding.
func packed(pix []byte, stride, row, height int) []byte {
	if stride == row {
		return pix[:row*height]
	}
	r := make([]byte, 0, row*height)
	for y := 0; y < height; y++ {
		r = append(r, pix[y*stride:y*stride+row]...)
	}
	return r
}

// Load decodes the image name and uploads it with mipmaps.
func Load(name string) (*Texture, error) {
	img, err := image.Load(name)
	if err != nil {
		return nil, err
	}
	return New(name, img, true), nil
}

func (t *Texture) Name() string {
	return t.name
}

func (t *Texture) Width() int {
	return t.width
}

func (t *Texture) Height() int {
	return t.height
}

func (t *Texture) ID() glh.TexID {
	return t.tex.ID()
}

// Bind makes t the texture of texture unit unit.
func (t *Texture) Bind(unit uint32) {
	t.tex.Bind(unit)
}

// Release stops filter updates for t. The GL object is freed once t is
// no longer referenced.
func Release(t *Texture) {
	manager.remove(t)
}
