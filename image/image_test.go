// SPDX-License-Identifier: GPL-2.0-or-later

package image

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"goengine/filesystem"
)

func checker() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(0, 1, color.RGBA{0, 0, 255, 255})
	img.Set(1, 1, color.RGBA{255, 255, 255, 255})
	return img
}

func TestDecodePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker()); err != nil {
		t.Fatal(err)
	}
	img, err := Decode(&buf, ".PNG")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := img.NRGBAAt(1, 0); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestFlipVertical(t *testing.T) {
	img := ToNRGBA(checker())
	FlipVertical(img)
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("top left after flip = %v", got)
	}
	if got := img.NRGBAAt(1, 1); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("bottom right after flip = %v", got)
	}
}

func TestToNRGBAOffset(t *testing.T) {
	sub := checker().SubImage(image.Rect(1, 1, 2, 2))
	img := ToNRGBA(sub)
	if img.Rect != image.Rect(0, 0, 1, 1) {
		t.Fatalf("rect = %v", img.Rect)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestFromRGBA(t *testing.T) {
	// bottom row first: red, green / blue, white with zero alpha
	data := []byte{
		255, 0, 0, 0, 0, 255, 0, 0,
		0, 0, 255, 0, 255, 255, 255, 0,
	}
	img, err := FromRGBA(data, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("top left = %v", got)
	}
	if _, err := FromRGBA(data, 3, 3); err == nil {
		t.Errorf("short data accepted")
	}
}

func TestWriteAndLoad(t *testing.T) {
	dir := t.TempDir()
	game := filepath.Join(dir, "game")
	if err := os.Mkdir(game, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"shot.png", "shot.webp"} {
		if err := Write(filepath.Join(game, name), checker()); err != nil {
			t.Fatalf("Write %s: %v", name, err)
		}
	}
	if err := Write(filepath.Join(game, "shot.xyz"), checker()); err == nil {
		t.Errorf("unknown extension accepted")
	}
	if _, err := os.Stat(filepath.Join(game, "shot.xyz")); err == nil {
		t.Errorf("failed write left a file behind")
	}

	if err := filesystem.UseBaseDir(dir, "game"); err != nil {
		t.Fatal(err)
	}
	defer filesystem.Shutdown()
	for _, name := range []string{"shot.png", "shot.webp"} {
		img, err := Load(name)
		if err != nil {
			t.Fatalf("Load %s: %v", name, err)
		}
		if img.Rect.Dx() != 2 || img.Rect.Dy() != 2 {
			t.Errorf("%s: size %v", name, img.Rect)
		}
		// webp is lossless here
		if got := img.NRGBAAt(0, 1); got != (color.NRGBA{0, 0, 255, 255}) {
			t.Errorf("%s: pixel = %v", name, got)
		}
	}
}

func TestDecodeTGA(t *testing.T) {
	data := []byte{
		0, 0, 2, // no id, no colour map, uncompressed true colour
		0, 0, 0, 0, 0,
		0, 0, 0, 0, // origin
		1, 0, 1, 0, // 1x1
		24, 0,
		0, 0, 255, // BGR
	}
	img, err := Decode(bytes.NewReader(data), ".tga")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel = %v", got)
	}
}

func TestDecodeLump(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "gfx"), 0755); err != nil {
		t.Fatal(err)
	}
	pal := make([]byte, 3*256)
	pal[3*1] = 200 // index 1 is red
	pal[3*2+2] = 100
	if err := os.WriteFile(filepath.Join(dir, "gfx", "palette.lmp"), pal, 0644); err != nil {
		t.Fatal(err)
	}
	pic := []byte{
		2, 0, 0, 0, 1, 0, 0, 0, // 2x1
		1, 255,
	}
	if err := os.WriteFile(filepath.Join(dir, "gfx", "pic.lmp"), pic, 0644); err != nil {
		t.Fatal(err)
	}
	if err := filesystem.UseBaseDir(dir, ""); err != nil {
		t.Fatal(err)
	}
	defer filesystem.Shutdown()

	img, err := Load("gfx/pic.lmp")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{200, 0, 0, 255}) {
		t.Errorf("pixel 0 = %v", got)
	}
	if got := img.NRGBAAt(1, 0); got.A != 0 {
		t.Errorf("pixel 1 alpha = %d, want transparent", got.A)
	}
	if _, err := Decode(bytes.NewReader([]byte{0, 0, 0, 0, 1, 0, 0, 0}), ".lmp"); err == nil {
		t.Errorf("zero width picture accepted")
	}
}
