// SPDX-License-Identifier: GPL-2.0-or-later

// Package image decodes textures and writes screenshots.
package image

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"strings"

	"goengine/filesystem"
	"goengine/palette"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".gif":  gif.Decode,
	".bmp":  bmp.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
	".lmp":  decodeLump,
}

// transparentIndex marks see through pixels in palette based pictures.
const transparentIndex = 255

// decodeLump reads a Quake picture: width and height as little endian
// int32 followed by one palette index per pixel. The palette is read from
// palette.Default.
func decodeLump(r io.Reader) (image.Image, error) {
	var size [2]int32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	w, h := int(size[0]), int(size[1])
	if w <= 0 || h <= 0 || w > 4096 || h > 4096 {
		return nil, fmt.Errorf("invalid picture size %dx%d", w, h)
	}
	pix := make([]byte, w*h)
	if _, err := io.ReadFull(r, pix); err != nil {
		return nil, err
	}
	pal, err := palette.Load(palette.Default)
	if err != nil {
		return nil, err
	}
	img, err := pal.Image(pix, w, h)
	if err != nil {
		return nil, err
	}
	for i, c := range pix {
		if c == transparentIndex {
			img.Pix[4*i+3] = 0
		}
	}
	return img, nil
}

// Decode reads an image of the format belonging to the file extension ext
// and returns it as NRGBA. TGA has no magic, so the format is never sniffed
// for a known extension.
func Decode(r io.Reader, ext string) (*image.NRGBA, error) {
	var img image.Image
	var err error
	if d, ok := decoders[strings.ToLower(ext)]; ok {
		img, err = d(r)
	} else {
		img, _, err = image.Decode(r)
	}
	if err != nil {
		return nil, err
	}
	return ToNRGBA(img), nil
}

// Load reads the image name through the filesystem.
func Load(name string) (*image.NRGBA, error) {
	f, err := filesystem.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := Decode(f, filesystem.Ext(name))
	if err != nil {
		return nil, fmt.Errorf("image %s: %v", name, err)
	}
	return img, nil
}

// ToNRGBA converts src to an NRGBA image with origin at 0,0.
func ToNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, src, b.Min, draw.Src)
	return dst
}

// FlipVertical mirrors img in place. GL expects the first row at the bottom.
func FlipVertical(img *image.NRGBA) {
	h := img.Rect.Dy()
	w := img.Rect.Dx() * 4
	tmp := make([]byte, w)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : y*img.Stride+w]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-1-y)*img.Stride+w]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// FromRGBA wraps 8bit RGBA data as read back from GL, bottom row first.
func FromRGBA(data []byte, width, height int) (*image.NRGBA, error) {
	if len(data) < width*height*4 {
		return nil, fmt.Errorf("not enough image data, %d bytes for %dx%d", len(data), width, height)
	}
	img := &image.NRGBA{
		Pix:    data[:width*height*4],
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}
	FlipVertical(img)
	// the frame buffer alpha is meaningless for a screenshot
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img, nil
}

// Encode writes img to w, format is "png" or "webp".
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "webp":
		return nativewebp.Encode(w, img, nil)
	}
	return fmt.Errorf("unsupported image format %q", format)
}

// Write stores img in the file name, the format is chosen by extension.
func Write(name string, img image.Image) error {
	format := strings.TrimPrefix(strings.ToLower(filesystem.Ext(name)), ".")
	f, err := os.Create(name)
	if err != nil {
		log.Println(err)
		return err
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		os.Remove(name)
		log.Println(err)
		return err
	}
	return f.Close()
}
