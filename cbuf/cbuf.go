// SPDX-License-Identifier: GPL-2.0-or-later

// Package cbuf is the command buffer. Text added to it is split into
// commands at newlines and unquoted semicolons and executed once per frame.
package cbuf

import (
	"goengine/cmd"
	"goengine/conlog"
)

// Executor tries to run a command and reports whether it knew it.
type Executor func(cmd.Arguments) (bool, error)

type Buffer struct {
	text      string
	executors []Executor
	// set by the wait command, delays the rest to the next frame
	wait bool
}

func New(executors ...Executor) *Buffer {
	return &Buffer{executors: executors}
}

func (b *Buffer) AddText(text string) {
	b.text += text
}

// InsertText puts text in front of everything else pending.
func (b *Buffer) InsertText(text string) {
	b.text = text + "\n" + b.text
}

func (b *Buffer) Wait() {
	b.wait = true
}

func (b *Buffer) Pending() bool {
	return len(b.text) != 0
}

func (b *Buffer) Execute() {
	for len(b.text) != 0 {
		i := 0
		quote := false
	LineLoop:
		for i = 0; i < len(b.text); i++ {
			switch b.text[i] {
			case '"':
				quote = !quote
			case ';':
				if !quote {
					break LineLoop
				}
			case '\n':
				break LineLoop
			}
		}
		line := b.text[:i]
		if i < len(b.text) {
			i++
		}
		b.text = b.text[i:]
		b.ExecuteLine(line)
		if b.wait {
			b.wait = false
			return
		}
	}
}

// ExecuteLine runs a single command line immediately.
func (b *Buffer) ExecuteLine(line string) {
	a := cmd.Parse(line)
	if len(a.Args()) == 0 {
		return
	}
	for _, e := range b.executors {
		ok, err := e(a)
		if err != nil {
			conlog.Printf("%s: %v\n", a.Argv(0).String(), err)
			return
		}
		if ok {
			return
		}
	}
	conlog.Printf("Unknown command \"%s\"\n", a.Argv(0).String())
}
