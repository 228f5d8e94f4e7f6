// SPDX-License-Identifier: GPL-2.0-or-later

// Package font bakes TrueType and OpenType fonts into an alpha atlas.
package font

import (
	"image"
	"image/draw"

	"github.com/pkg/errors"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	firstChar = 32
	lastChar  = 126
	atlasSize = 512
	padding   = 1
	fallback  = '?'
)

// Glyph describes one baked character. Bearing is the offset from the pen
// position on the baseline to the top left corner of the glyph image.
type Glyph struct {
	Rect    image.Rectangle
	Bearing image.Point
	Advance float32
}

type Font struct {
	atlas      *image.Alpha
	glyphs     map[rune]Glyph
	size       float64
	ascent     float32
	lineHeight float32
}

// Quad is a textured rectangle in screen space, y grows downwards.
type Quad struct {
	X0, Y0, X1, Y1 float32
	U0, V0, U1, V1 float32
}

// Load parses data and rasterizes printable ASCII at size pixels.
func Load(data []byte, size float64) (*Font, error) {
	if size <= 0 {
		return nil, errors.Errorf("invalid font size %v", size)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse font")
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create face")
	}
	defer face.Close()

	m := face.Metrics()
	fnt := &Font{
		atlas:      image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize)),
		glyphs:     make(map[rune]Glyph),
		size:       size,
		ascent:     toFloat(m.Ascent),
		lineHeight: toFloat(m.Height),
	}

	x, y, rowHeight := padding, padding, 0
	for r := rune(firstChar); r <= lastChar; r++ {
		dr, mask, mp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		w, h := dr.Dx(), dr.Dy()
		if w == 0 || h == 0 {
			fnt.glyphs[r] = Glyph{Bearing: dr.Min, Advance: toFloat(adv)}
			continue
		}
		if x+w+padding > atlasSize {
			x = padding
			y += rowHeight + padding
			rowHeight = 0
		}
		if y+h+padding > atlasSize {
			return nil, errors.Errorf("font size %v does not fit into the atlas", size)
		}
		rect := image.Rect(x, y, x+w, y+h)
		draw.Draw(fnt.atlas, rect, mask, mp, draw.Src)
		fnt.glyphs[r] = Glyph{
			Rect:    rect,
			Bearing: dr.Min,
			Advance: toFloat(adv),
		}
		x += w + padding
		if h > rowHeight {
			rowHeight = h
		}
	}
	return fnt, nil
}

func toFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// Atlas returns the alpha atlas holding all glyphs.
func (f *Font) Atlas() *image.Alpha {
	return f.atlas
}

func (f *Font) Size() float64 {
	return f.size
}

func (f *Font) LineHeight() float32 {
	return f.lineHeight
}

func (f *Font) Ascent() float32 {
	return f.ascent
}

// Glyph returns the glyph for r, runes outside the atlas map to '?'.
func (f *Font) Glyph(r rune) (Glyph, bool) {
	g, ok := f.glyphs[r]
	if !ok {
		g, ok = f.glyphs[fallback]
	}
	return g, ok
}

// Measure returns the size of the text block, lines are split at '\n'.
func (f *Font) Measure(text string) (width, height float32) {
	if text == "" {
		return 0, 0
	}
	lines := 1
	var line float32
	for _, r := range text {
		if r == '\n' {
			lines++
			line = 0
			continue
		}
		if g, ok := f.Glyph(r); ok {
			line += g.Advance
		}
		if line > width {
			width = line
		}
	}
	return width, float32(lines) * f.lineHeight
}

// Layout returns one quad per visible glyph with the top left corner of
// the text block at x,y. Texture coordinates are normalized to the atlas.
func (f *Font) Layout(text string, x, y float32) []Quad {
	var quads []Quad
	penX, baseline := x, y+f.ascent
	for _, r := range text {
		if r == '\n' {
			penX = x
			baseline += f.lineHeight
			continue
		}
		g, ok := f.Glyph(r)
		if !ok {
			continue
		}
		if !g.Rect.Empty() {
			x0 := penX + float32(g.Bearing.X)
			y0 := baseline + float32(g.Bearing.Y)
			quads = append(quads, Quad{
				X0: x0,
				Y0: y0,
				X1: x0 + float32(g.Rect.Dx()),
				Y1: y0 + float32(g.Rect.Dy()),
				U0: float32(g.Rect.Min.X) / atlasSize,
				V0: float32(g.Rect.Min.Y) / atlasSize,
				U1: float32(g.Rect.Max.X) / atlasSize,
				V1: float32(g.Rect.Max.Y) / atlasSize,
			})
		}
		penX += g.Advance
	}
	return quads
}
