// SPDX-License-Identifier: GPL-2.0-or-later

package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"goengine/cmd"
	"goengine/conlog"
	"goengine/cvar"
	"goengine/filesystem"
	"goengine/image"
	kc "goengine/keycode"

	"github.com/pkg/errors"
)

func (e *Engine) addCommands() error {
	for _, c := range []struct {
		name string
		f    cmd.Func
	}{
		{"bind", e.bind},
		{"contentlist", e.contentList},
		{"echo", echo},
		{"exec", e.execFile},
		{"quit", func(cmd.Arguments) error { e.Quit(); return nil }},
		{"screenshot", e.screenshotCmd},
		{"unbind", e.unbind},
		{"unbindall", func(cmd.Arguments) error { e.input.UnbindAll(); return nil }},
		{"wait", func(cmd.Arguments) error { e.buffer.Wait(); return nil }},
		{"writeconfig", e.writeConfigCmd},
	} {
		if err := e.commands.Add(c.name, c.f); err != nil {
			return err
		}
	}
	return nil
}

func echo(a cmd.Arguments) error {
	conlog.Printf("%s\n", a.ArgumentString())
	return nil
}

func (e *Engine) execFile(a cmd.Arguments) error {
	args := a.Args()
	if len(args) != 2 {
		conlog.Printf("exec <filename> : execute a script file\n")
		return nil
	}
	name := args[1].String()
	b, err := filesystem.ReadFile(name)
	if err != nil {
		conlog.Printf("couldn't exec %s\n", name)
		return nil
	}
	conlog.Printf("execing %s\n", name)
	e.buffer.InsertText(string(b))
	return nil
}

func (e *Engine) bind(a cmd.Arguments) error {
	args := a.Args()
	if len(args) < 2 {
		conlog.Printf("bind <key> [command] : attach a command to a key\n")
		return nil
	}
	name := args[1].String()
	k := kc.StringToKey(name)
	if k == kc.NONE {
		conlog.Printf("\"%s\" isn't a valid key\n", name)
		return nil
	}
	if len(args) == 2 {
		if b, ok := e.input.Binding(k); ok {
			conlog.Printf("\"%s\" = \"%s\"\n", name, b)
		} else {
			conlog.Printf("\"%s\" is not bound\n", name)
		}
		return nil
	}
	parts := make([]string, 0, len(args)-2)
	for _, p := range args[2:] {
		parts = append(parts, p.String())
	}
	e.input.Bind(k, strings.Join(parts, " "))
	return nil
}

func (e *Engine) unbind(a cmd.Arguments) error {
	args := a.Args()
	if len(args) != 2 {
		conlog.Printf("unbind <key> : remove commands from a key\n")
		return nil
	}
	k := kc.StringToKey(args[1].String())
	if k == kc.NONE {
		conlog.Printf("\"%s\" isn't a valid key\n", args[1].String())
		return nil
	}
	e.input.Unbind(k)
	return nil
}

func (e *Engine) contentList(_ cmd.Arguments) error {
	if e.content == nil {
		return nil
	}
	entries := e.content.Entries()
	for _, en := range entries {
		conlog.Printf("%-8s %s %s\n", en.Kind, en.ID, en.Name)
	}
	conlog.Printf("%d entries\n", len(entries))
	return nil
}

// screenshotPath resolves the screenshot command's argument. Without one
// the first free shotNNNN.png in the game directory is used.
func screenshotPath(dir, name string) (string, error) {
	if name != "" {
		if filesystem.Ext(name) == "" {
			name += ".png"
		}
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		return name, nil
	}
	for i := 0; i < 10000; i++ {
		p := filepath.Join(dir, fmt.Sprintf("shot%04d.png", i))
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return p, nil
		}
	}
	return "", errors.New("no free screenshot name")
}

// screenshotCmd only remembers the path. The picture is taken after the
// next draw, before the buffers are swapped.
func (e *Engine) screenshotCmd(a cmd.Arguments) error {
	name := ""
	if args := a.Args(); len(args) > 1 {
		name = args[1].String()
	}
	p, err := screenshotPath(filesystem.GameDir(), name)
	if err != nil {
		return err
	}
	e.screenshot = p
	return nil
}

// Screenshot reads the back buffer and writes it to path. The format
// follows the extension, png or webp.
func (e *Engine) Screenshot(path string) error {
	pix, w, h := e.renderer.ReadPixels()
	img, err := image.FromRGBA(pix, w, h)
	if err != nil {
		return err
	}
	return image.Write(path, img)
}

func (e *Engine) writeConfigCmd(a cmd.Arguments) error {
	name := e.settings.Config
	if args := a.Args(); len(args) > 1 {
		name = args[1].String()
	}
	if name == "" {
		conlog.Printf("writeconfig <filename> : write the archived cvars and bindings\n")
		return nil
	}
	if err := e.writeConfig(name); err != nil {
		return err
	}
	conlog.Printf("Wrote %s\n", name)
	return nil
}

// writeConfig writes the bindings, aliases and archived cvars into the game
// directory so that exec restores them.
func (e *Engine) writeConfig(name string) error {
	p := filepath.Join(filesystem.GameDir(), name)
	f, err := os.Create(p)
	if err != nil {
		return errors.Wrap(err, "couldn't create config")
	}
	if _, err := fmt.Fprintf(f, "// generated by goengine, do not modify\nunbindall\n"); err != nil {
		f.Close()
		return err
	}
	if err := e.input.WriteBindings(f); err != nil {
		f.Close()
		return err
	}
	if err := e.aliases.WriteAliases(f); err != nil {
		f.Close()
		return err
	}
	if err := cvar.WriteArchive(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
