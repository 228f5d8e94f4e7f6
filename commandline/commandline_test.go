// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"testing"
)

func TestOptionalInt(t *testing.T) {
	var flags flag.FlagSet
	flags.Init("test", flag.ContinueOnError)
	a := optionalInt{false, 4}
	b := optionalInt{false, 5}
	c := optionalInt{true, 6}
	d := optionalInt{false, 7}
	e := optionalInt{true, 9}
	flags.Var(&a, "a", "usage")
	flags.Var(&b, "b", "usage")
	flags.Var(&c, "c", "usage")
	flags.Var(&d, "d", "usage")
	flags.Var(&e, "e", "usage")
	if err := flags.Parse([]string{"-a", "-b=3", "-e=false"}); err != nil {
		t.Fatal(err)
	}
	for _, tc := range []struct {
		name    string
		v       optionalInt
		wantSet bool
		wantNum int
	}{
		{"a", a, true, 4},
		{"b", b, true, 3},
		{"c", c, true, 6},
		{"d", d, false, 7},
		{"e", e, false, 9},
	} {
		if tc.v.set != tc.wantSet || tc.v.num != tc.wantNum {
			t.Errorf("%s = %+v, want set %v num %v", tc.name, tc.v, tc.wantSet, tc.wantNum)
		}
	}
}

func TestFullscreenWindowOverride(t *testing.T) {
	fullscreen, window = true, true
	defer func() { fullscreen, window = false, false }()
	if Fullscreen() {
		t.Errorf("Fullscreen() = true with -window set")
	}
	window = false
	if !Fullscreen() {
		t.Errorf("Fullscreen() = false with -fullscreen")
	}
}

func TestScripts(t *testing.T) {
	for _, tc := range []struct {
		args []string
		want string
	}{
		{nil, ""},
		{[]string{"ignored", "+quit"}, "quit"},
		{[]string{"+bind", "x", "quit", "+dev_stats", "1"}, "bind x quit\ndev_stats 1"},
		{[]string{"+exec", "a.cfg", "-nosound", "stray"}, "exec a.cfg"},
	} {
		if got := scripts(tc.args); got != tc.want {
			t.Errorf("scripts(%q) = %q, want %q", tc.args, got, tc.want)
		}
	}
}
