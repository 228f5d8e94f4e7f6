// SPDX-License-Identifier: GPL-2.0-or-later

// Package alias implements console aliases: named command lines that are
// expanded in place when their name is executed.
package alias

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"goengine/cmd"
	"goengine/conlog"
)

// MaxExpansions limits the expansions per frame so that an alias calling
// itself can not hang the command buffer.
const MaxExpansions = 1000

// Inserter receives the expanded text. It is cbuf.Buffer in the engine.
type Inserter interface {
	InsertText(text string)
}

type Aliases struct {
	m     map[string]string
	sink  Inserter
	count int
}

func New(sink Inserter) *Aliases {
	return &Aliases{
		m:    make(map[string]string),
		sink: sink,
	}
}

// Register adds alias, unalias and unaliasall to c.
func (a *Aliases) Register(c cmd.Commands) error {
	if err := c.Add("alias", a.alias); err != nil {
		return err
	}
	if err := c.Add("unalias", a.unalias); err != nil {
		return err
	}
	return c.Add("unaliasall", func(cmd.Arguments) error {
		clear(a.m)
		return nil
	})
}

func (a *Aliases) names() []string {
	n := make([]string, 0, len(a.m))
	for k := range a.m {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

func (a *Aliases) alias(args cmd.Arguments) error {
	as := args.Args()[1:]
	switch len(as) {
	case 0:
		if len(a.m) == 0 {
			conlog.Printf("no alias commands found\n")
			return nil
		}
		for _, n := range a.names() {
			conlog.Printf("  %s: %s\n", n, a.m[n])
		}
		conlog.Printf("%d alias command(s)\n", len(a.m))
	case 1:
		if v, ok := a.m[as[0].String()]; ok {
			conlog.Printf("  %s: %s\n", as[0].String(), v)
		}
	default:
		parts := make([]string, 0, len(as)-1)
		for _, p := range as[1:] {
			parts = append(parts, p.String())
		}
		a.m[as[0].String()] = strings.TrimSpace(strings.Join(parts, " "))
	}
	return nil
}

func (a *Aliases) unalias(args cmd.Arguments) error {
	as := args.Args()[1:]
	if len(as) != 1 {
		conlog.Printf("unalias <name> : delete alias\n")
		return nil
	}
	name := as[0].String()
	if _, ok := a.m[name]; !ok {
		conlog.Printf("No alias named %s\n", name)
		return nil
	}
	delete(a.m, name)
	return nil
}

func (a *Aliases) Get(name string) (string, bool) {
	v, ok := a.m[name]
	return v, ok
}

// Execute expands the alias named by the first argument. It is meant to
// be used as a cbuf.Executor.
func (a *Aliases) Execute(args cmd.Arguments) (bool, error) {
	if len(args.Args()) == 0 {
		return false, nil
	}
	v, ok := a.m[args.Argv(0).String()]
	if !ok {
		return false, nil
	}
	a.count++
	if a.count > MaxExpansions {
		return true, fmt.Errorf("more than %d alias expansions in one frame", MaxExpansions)
	}
	a.sink.InsertText(v)
	return true, nil
}

// NewFrame resets the expansion limit.
func (a *Aliases) NewFrame() {
	a.count = 0
}

// WriteAliases writes all aliases as alias commands.
func (a *Aliases) WriteAliases(w io.Writer) error {
	for _, n := range a.names() {
		if _, err := fmt.Fprintf(w, "alias \"%s\" \"%s\"\n", n, a.m[n]); err != nil {
			return err
		}
	}
	return nil
}
