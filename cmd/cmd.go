// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"fmt"
	"sort"
	"strings"
)

type Func func(args Arguments) error

// Commands maps lower case command names to their implementation.
type Commands map[string]Func

func New() Commands {
	return make(Commands)
}

func (c Commands) Add(name string, f Func) error {
	ln := strings.ToLower(name)
	if _, ok := c[ln]; ok {
		return fmt.Errorf("command %s already defined", ln)
	}
	c[ln] = f
	return nil
}

func (c Commands) Exists(name string) bool {
	_, ok := c[strings.ToLower(name)]
	return ok
}

func (c Commands) List() []string {
	cmds := make([]string, 0, len(c))
	for cmd := range c {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)
	return cmds
}

// Execute runs the command named by the first argument. It reports whether
// such a command exists.
func (c Commands) Execute(a Arguments) (bool, error) {
	n := a.Args()
	if len(n) == 0 {
		return false, nil
	}
	cmd, ok := c[strings.ToLower(n[0].String())]
	if !ok {
		return false, nil
	}
	return true, cmd(a)
}

var (
	commands = New()
)

func Must(err error) {
	if err != nil {
		panic(err.Error())
	}
}

func AddCommand(name string, f Func) error {
	return commands.Add(name, f)
}

func Exists(name string) bool {
	return commands.Exists(name)
}

func Execute(a Arguments) (bool, error) {
	return commands.Execute(a)
}

func List() []string {
	return commands.List()
}
