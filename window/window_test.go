// SPDX-License-Identifier: GPL-2.0-or-later

package window

import (
	"testing"

	kc "goengine/keycode"

	"github.com/veandco/go-sdl2/sdl"
)

func TestKeyFromScancode(t *testing.T) {
	tests := []struct {
		s    sdl.Scancode
		want kc.KeyCode
	}{
		{sdl.SCANCODE_A, 'a'},
		{sdl.SCANCODE_Z, 'z'},
		{sdl.SCANCODE_1, '1'},
		{sdl.SCANCODE_9, '9'},
		{sdl.SCANCODE_0, '0'},
		{sdl.SCANCODE_ESCAPE, kc.ESCAPE},
		{sdl.SCANCODE_RSHIFT, kc.SHIFT},
		{sdl.SCANCODE_F12, kc.F12},
		{sdl.SCANCODE_SEMICOLON, ';'},
		{sdl.SCANCODE_APPLICATION, kc.NONE},
	}
	for _, tc := range tests {
		if got := KeyFromScancode(tc.s); got != tc.want {
			t.Errorf("KeyFromScancode(%v) = %v, want %v", tc.s, got, tc.want)
		}
	}
}

type recorder struct {
	keys   []kc.KeyCode
	downs  []bool
	wheel  [2]int32
	motion [4]int32
	focus  []bool
	size   [2]int
	quit   bool
}

func (r *recorder) KeyDown(k kc.KeyCode) { r.keys = append(r.keys, k); r.downs = append(r.downs, true) }
func (r *recorder) KeyUp(k kc.KeyCode)   { r.keys = append(r.keys, k); r.downs = append(r.downs, false) }
func (r *recorder) MouseButton(k kc.KeyCode, down bool) {
	r.keys = append(r.keys, k)
	r.downs = append(r.downs, down)
}
func (r *recorder) MouseMotion(x, y, dx, dy int32) { r.motion = [4]int32{x, y, dx, dy} }
func (r *recorder) MouseWheel(x, y int32)          { r.wheel = [2]int32{x, y} }
func (r *recorder) FocusChanged(f bool)            { r.focus = append(r.focus, f) }
func (r *recorder) Resized(w, h int)               { r.size = [2]int{w, h} }
func (r *recorder) Quit()                          { r.quit = true }

func TestDispatch(t *testing.T) {
	r := &recorder{}
	events := []sdl.Event{
		&sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}},
		&sdl.KeyboardEvent{State: sdl.PRESSED, Repeat: 1, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}},
		&sdl.KeyboardEvent{State: sdl.RELEASED, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}},
		&sdl.KeyboardEvent{State: sdl.PRESSED, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_APPLICATION}},
		&sdl.MouseButtonEvent{State: sdl.PRESSED, Button: sdl.BUTTON_RIGHT},
		&sdl.MouseMotionEvent{X: 10, Y: 20, XRel: -1, YRel: 2},
		&sdl.MouseWheelEvent{Y: 1, Direction: sdl.MOUSEWHEEL_FLIPPED},
		&sdl.WindowEvent{Event: sdl.WINDOWEVENT_FOCUS_LOST},
		&sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 1024, Data2: 768},
		&sdl.QuitEvent{},
	}
	for _, e := range events {
		dispatch(e, r)
	}
	wantKeys := []kc.KeyCode{'w', 'w', kc.MOUSE2}
	wantDowns := []bool{true, false, true}
	if len(r.keys) != len(wantKeys) {
		t.Fatalf("keys = %v, want %v", r.keys, wantKeys)
	}
	for i := range wantKeys {
		if r.keys[i] != wantKeys[i] || r.downs[i] != wantDowns[i] {
			t.Errorf("event %d = %v/%v, want %v/%v", i, r.keys[i], r.downs[i], wantKeys[i], wantDowns[i])
		}
	}
	if r.motion != [4]int32{10, 20, -1, 2} {
		t.Errorf("motion = %v", r.motion)
	}
	if r.wheel != [2]int32{0, -1} {
		t.Errorf("wheel = %v", r.wheel)
	}
	if len(r.focus) != 1 || r.focus[0] {
		t.Errorf("focus = %v", r.focus)
	}
	if r.size != [2]int{1024, 768} {
		t.Errorf("size = %v", r.size)
	}
	if !r.quit {
		t.Errorf("quit not delivered")
	}
}
