// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"strconv"
	"strings"
	"unicode"
)

// Arg is a single token of a command line.
type Arg struct {
	a string
}

func (a Arg) String() string {
	return a.a
}

func (a Arg) Int() int {
	r, err := strconv.ParseInt(a.a, 10, 0)
	if err != nil {
		return 0
	}
	return int(r)
}

func (a Arg) Float32() float32 {
	r, err := strconv.ParseFloat(a.a, 32)
	if err != nil {
		return 0
	}
	return float32(r)
}

func (a Arg) Bool() bool {
	switch a.a {
	case "1", "t", "T", "true", "TRUE", "True", "On", "ON", "on":
		return true
	default:
		return false
	}
}

type Arguments struct {
	args []Arg
	// the trimmed input line
	full string
}

func (c Arguments) Args() []Arg {
	return c.args
}

func (c Arguments) Full() string {
	return c.full
}

// Argv returns the i-th token or an empty Arg if out of range.
func (c Arguments) Argv(i int) Arg {
	if i < 0 || i >= len(c.args) {
		return Arg{}
	}
	return c.args[i]
}

// ArgumentString returns everything after the command name with
// surrounding quotes removed.
func (c Arguments) ArgumentString() string {
	if len(c.args) < 2 {
		return ""
	}
	r := strings.TrimPrefix(c.full, c.args[0].String())
	r = strings.TrimLeftFunc(r, unicode.IsSpace)
	if len(r) > 1 && r[0] == '"' {
		r = strings.Trim(r, "\"\t\n\v\f\r ")
	}
	return r
}

// Parse splits a single command line into tokens. Quoted strings form one
// token, "//" starts a comment that runs to the end of the line.
func Parse(s string) Arguments {
	args := Arguments{
		full: strings.TrimFunc(s, unicode.IsSpace),
		args: []Arg{},
	}
	in := args.full
	for i := 0; i < len(in); {
		c := in[i]
		switch {
		case c == '\n' || c == '\r':
			return args
		case c <= ' ':
			i++
		case c == '/' && i+1 < len(in) && in[i+1] == '/':
			return args
		case c == '"':
			end := strings.IndexAny(in[i+1:], "\"\n")
			if end < 0 || in[i+1+end] == '\n' {
				// unterminated, take the rest
				args.args = append(args.args, Arg{in[i+1:]})
				return args
			}
			args.args = append(args.args, Arg{in[i+1 : i+1+end]})
			i += end + 2
		default:
			j := i
			for j < len(in) && in[j] > ' ' {
				j++
			}
			args.args = append(args.args, Arg{in[i:j]})
			i = j
		}
	}
	return args
}
