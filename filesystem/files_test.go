// SPDX-License-Identifier: GPL-2.0-or-later

package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"goengine/pack"
)

func writePak(t *testing.T, name string, files map[string][]byte) {
	t.Helper()
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := pack.Write(f, files); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, name, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// base: pak0 {doc1, doc2}, pak1 {doc2}, loose doc3
// game: loose doc1
func setup(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	writePak(t, filepath.Join(base, "pak0.pak"), map[string][]byte{
		"doc1.txt": []byte("doc1 pak0"),
		"doc2.txt": []byte("doc2 pak0"),
	})
	writePak(t, filepath.Join(base, "pak1.pak"), map[string][]byte{
		"doc2.txt": []byte("doc2 pak1"),
	})
	writeFile(t, filepath.Join(base, "doc3.txt"), "doc3 loose")
	writeFile(t, filepath.Join(base, "mod", "doc1.txt"), "doc1 mod")
	if err := UseBaseDir(base, "mod"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(Shutdown)
	return base
}

func TestFilesystemOrder(t *testing.T) {
	base := setup(t)
	for _, tc := range []struct {
		name string
		want string
	}{
		{"doc1.txt", "doc1 mod"},
		{"doc2.txt", "doc2 pak1"},
		{"/doc3.txt", "doc3 loose"},
		{"sub/../doc3.txt", "doc3 loose"},
	} {
		b, err := ReadFile(tc.name)
		if err != nil {
			t.Errorf("ReadFile(%s): %v", tc.name, err)
			continue
		}
		if string(b) != tc.want {
			t.Errorf("ReadFile(%s) = %q, want %q", tc.name, b, tc.want)
		}
	}
	if _, err := Open("doc4.txt"); !os.IsNotExist(err) {
		t.Errorf("Open(doc4.txt) = %v, want not exist", err)
	}
	if GameDir() != filepath.Join(base, "mod") || BaseDir() != base {
		t.Errorf("GameDir %s BaseDir %s", GameDir(), BaseDir())
	}
}

func TestStatAndLocalPath(t *testing.T) {
	base := setup(t)
	fi, err := Stat("doc2.txt")
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size != 9 || fi.Path != "" || fi.Source != filepath.Join(base, "pak1.pak") {
		t.Errorf("Stat(doc2.txt) = %+v", fi)
	}
	if _, ok := LocalPath("doc2.txt"); ok {
		t.Errorf("archive entry reported as local file")
	}
	p, ok := LocalPath("doc3.txt")
	if !ok || p != filepath.Join(base, "doc3.txt") {
		t.Errorf("LocalPath(doc3.txt) = %s, %v", p, ok)
	}
}

func TestExt(t *testing.T) {
	for _, tc := range []struct {
		in, ext, stripped string
	}{
		{"models/cube.obj", ".obj", "models/cube"},
		{"models.d/cube", "", "models.d/cube"},
		{"a.b\\c.tga", ".tga", "a.b\\c"},
	} {
		if got := Ext(tc.in); got != tc.ext {
			t.Errorf("Ext(%s) = %s, want %s", tc.in, got, tc.ext)
		}
		if got := StripExt(tc.in); got != tc.stripped {
			t.Errorf("StripExt(%s) = %s, want %s", tc.in, got, tc.stripped)
		}
	}
}
