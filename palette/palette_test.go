// SPDX-License-Identifier: GPL-2.0-or-later

package palette

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"goengine/filesystem"
)

func ramp() []byte {
	b := make([]byte, 3*256)
	for i := 0; i < 256; i++ {
		b[3*i] = byte(i)
		b[3*i+1] = byte(255 - i)
		b[3*i+2] = 7
	}
	return b
}

func TestDecode(t *testing.T) {
	p, err := Decode(ramp())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got, want := p.Color(10), (color.NRGBA{10, 245, 7, 255}); got != want {
		t.Errorf("Color(10) = %v, want %v", got, want)
	}
	if _, err := Decode(ramp()[:100]); err == nil {
		t.Errorf("short palette accepted")
	}
}

func TestImage(t *testing.T) {
	p, _ := Decode(ramp())
	img, err := p.Image([]byte{0, 1, 2, 3, 4, 5}, 3, 2)
	if err != nil {
		t.Fatalf("Image: %v", err)
	}
	if got := img.NRGBAAt(1, 1); got != p.Color(4) {
		t.Errorf("pixel 1,1 = %v, want %v", got, p.Color(4))
	}
	if _, err := p.Image([]byte{0, 1}, 3, 2); err == nil {
		t.Errorf("Image with too few indices succeeded")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "gfx"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "gfx", "palette.lmp"), ramp(), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := filesystem.UseBaseDir(dir, ""); err != nil {
		t.Fatal(err)
	}
	defer filesystem.Shutdown()
	p, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Color(255).R != 255 {
		t.Errorf("Color(255) = %v", p.Color(255))
	}
	if _, err := Load("missing.lmp"); err == nil {
		t.Errorf("Load of a missing file succeeded")
	}
}
