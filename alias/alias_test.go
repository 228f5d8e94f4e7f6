// SPDX-License-Identifier: GPL-2.0-or-later

package alias

import (
	"bytes"
	"fmt"
	"testing"

	"goengine/cbuf"
	"goengine/cmd"
	"goengine/conlog"
)

func setup(t *testing.T, extra cbuf.Executor) (*Aliases, *cbuf.Buffer) {
	t.Helper()
	cmds := cmd.New()
	var al *Aliases
	cb := cbuf.New(
		cmds.Execute, // 'alias'
		func(a cmd.Arguments) (bool, error) { return al.Execute(a) },
		extra,
	)
	al = New(cb)
	if err := al.Register(cmds); err != nil {
		t.Fatal(err)
	}
	return al, cb
}

func TestExecuteAlias(t *testing.T) {
	worldCount := 0
	p := func(a cmd.Arguments) (bool, error) {
		if a.Full() != "world" {
			t.Errorf("Full() = %q, want %q", a.Full(), "world")
		} else {
			worldCount++
		}
		return true, nil
	}
	_, cb := setup(t, p)
	cb.AddText("alias hello world\n")
	cb.Execute()
	cb.AddText("hello\n")
	cb.AddText("world\n")
	cb.Execute()
	if worldCount != 2 {
		// for 'hello' -> 'world' and 'world'
		t.Errorf("Executed 'world' %d times, want %d", worldCount, 2)
	}
}

func TestPrintAlias(t *testing.T) {
	var out string
	conlog.SetPrintf(func(s string, a ...interface{}) {
		out += fmt.Sprintf(s, a...)
	})
	defer conlog.SetPrintf(nil)
	nop := func(cmd.Arguments) (bool, error) { return true, nil }
	_, cb := setup(t, nop)

	cb.AddText("alias hello world\n")
	cb.Execute()
	cb.AddText("alias\n")
	cb.Execute()
	if out != "  hello: world\n1 alias command(s)\n" {
		t.Errorf("%q", out)
	}
	out = ""
	cb.AddText("alias hello\n")
	cb.Execute()
	if out != "  hello: world\n" {
		t.Errorf("%q", out)
	}
}

func TestUnalias(t *testing.T) {
	al, cb := setup(t, func(cmd.Arguments) (bool, error) { return true, nil })
	cb.AddText("alias a \"echo a; echo b\"\nalias b c\nunalias a\n")
	cb.Execute()
	if _, ok := al.Get("a"); ok {
		t.Errorf("a still defined")
	}
	if v, _ := al.Get("b"); v != "c" {
		t.Errorf("b = %q, want c", v)
	}
	cb.AddText("unaliasall\n")
	cb.Execute()
	if _, ok := al.Get("b"); ok {
		t.Errorf("b still defined after unaliasall")
	}
}

func TestRecursionLimit(t *testing.T) {
	al, cb := setup(t, func(cmd.Arguments) (bool, error) { return false, nil })
	cb.AddText("alias loop loop\nloop\n")
	cb.Execute()
	if cb.Pending() {
		t.Errorf("buffer still has text after hitting the limit")
	}
	if al.count != MaxExpansions+1 {
		t.Errorf("count = %d, want %d", al.count, MaxExpansions+1)
	}
	al.NewFrame()
	if al.count != 0 {
		t.Errorf("NewFrame did not reset the count")
	}
}

func TestWriteAliases(t *testing.T) {
	al, cb := setup(t, func(cmd.Arguments) (bool, error) { return true, nil })
	cb.AddText("alias zoom \"fov 30\"\nalias back \"fov 70\"\n")
	cb.Execute()
	var b bytes.Buffer
	if err := al.WriteAliases(&b); err != nil {
		t.Fatal(err)
	}
	want := "alias \"back\" \"fov 70\"\nalias \"zoom\" \"fov 30\"\n"
	if b.String() != want {
		t.Errorf("WriteAliases = %q, want %q", b.String(), want)
	}
}
