// SPDX-License-Identifier: GPL-2.0-or-later

// Package palette reads 256 colour palettes stored as plain RGB triples,
// the format of Quake's gfx/palette.lmp. Indexed skins are resolved
// through it.
package palette

import (
	"fmt"
	"image"
	"image/color"

	"goengine/filesystem"
)

// Default is where Load looks when no name is given.
const Default = "gfx/palette.lmp"

type Palette [256]color.NRGBA

// Decode reads 768 bytes of RGB triples. All entries are opaque.
func Decode(b []byte) (*Palette, error) {
	if len(b) != 3*256 {
		return nil, fmt.Errorf("palette has wrong size: %d", len(b))
	}
	p := &Palette{}
	for i := range p {
		p[i] = color.NRGBA{b[3*i], b[3*i+1], b[3*i+2], 255}
	}
	return p, nil
}

func Load(name string) (*Palette, error) {
	if name == "" {
		name = Default
	}
	b, err := filesystem.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("couldn't load palette %s: %w", name, err)
	}
	return Decode(b)
}

func (p *Palette) Color(i byte) color.NRGBA {
	return p[i]
}

// Image converts w*h palette indices into an image.
func (p *Palette) Image(pix []byte, w, h int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 || len(pix) != w*h {
		return nil, fmt.Errorf("%d indices for a %dx%d image", len(pix), w, h)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, c := range pix {
		img.SetNRGBA(i%w, i/w, p[c])
	}
	return img, nil
}
