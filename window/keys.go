// SPDX-License-Identifier: GPL-2.0-or-later

package window

import (
	kc "goengine/keycode"

	"github.com/veandco/go-sdl2/sdl"
)

// Physical keys are mapped, not what the layout makes of them.
var scancodes = map[sdl.Scancode]kc.KeyCode{
	sdl.SCANCODE_TAB:       kc.TAB,
	sdl.SCANCODE_RETURN:    kc.ENTER,
	sdl.SCANCODE_RETURN2:   kc.ENTER,
	sdl.SCANCODE_ESCAPE:    kc.ESCAPE,
	sdl.SCANCODE_SPACE:     kc.SPACE,
	sdl.SCANCODE_BACKSPACE: kc.BACKSPACE,

	sdl.SCANCODE_MINUS:          '-',
	sdl.SCANCODE_EQUALS:         '=',
	sdl.SCANCODE_LEFTBRACKET:    '[',
	sdl.SCANCODE_RIGHTBRACKET:   ']',
	sdl.SCANCODE_BACKSLASH:      '\\',
	sdl.SCANCODE_NONUSHASH:      '#',
	sdl.SCANCODE_SEMICOLON:      ';',
	sdl.SCANCODE_APOSTROPHE:     '\'',
	sdl.SCANCODE_GRAVE:          '`',
	sdl.SCANCODE_COMMA:          ',',
	sdl.SCANCODE_PERIOD:         '.',
	sdl.SCANCODE_SLASH:          '/',
	sdl.SCANCODE_NONUSBACKSLASH: '\\',

	sdl.SCANCODE_UP:    kc.UPARROW,
	sdl.SCANCODE_DOWN:  kc.DOWNARROW,
	sdl.SCANCODE_LEFT:  kc.LEFTARROW,
	sdl.SCANCODE_RIGHT: kc.RIGHTARROW,

	sdl.SCANCODE_LALT:   kc.ALT,
	sdl.SCANCODE_RALT:   kc.ALT,
	sdl.SCANCODE_LCTRL:  kc.CTRL,
	sdl.SCANCODE_RCTRL:  kc.CTRL,
	sdl.SCANCODE_LSHIFT: kc.SHIFT,
	sdl.SCANCODE_RSHIFT: kc.SHIFT,

	sdl.SCANCODE_F1:  kc.F1,
	sdl.SCANCODE_F2:  kc.F2,
	sdl.SCANCODE_F3:  kc.F3,
	sdl.SCANCODE_F4:  kc.F4,
	sdl.SCANCODE_F5:  kc.F5,
	sdl.SCANCODE_F6:  kc.F6,
	sdl.SCANCODE_F7:  kc.F7,
	sdl.SCANCODE_F8:  kc.F8,
	sdl.SCANCODE_F9:  kc.F9,
	sdl.SCANCODE_F10: kc.F10,
	sdl.SCANCODE_F11: kc.F11,
	sdl.SCANCODE_F12: kc.F12,

	sdl.SCANCODE_INSERT:   kc.INS,
	sdl.SCANCODE_DELETE:   kc.DEL,
	sdl.SCANCODE_PAGEDOWN: kc.PGDN,
	sdl.SCANCODE_PAGEUP:   kc.PGUP,
	sdl.SCANCODE_HOME:     kc.HOME,
	sdl.SCANCODE_END:      kc.END,

	sdl.SCANCODE_KP_DIVIDE:   kc.KP_SLASH,
	sdl.SCANCODE_KP_MULTIPLY: kc.KP_STAR,
	sdl.SCANCODE_KP_MINUS:    kc.KP_MINUS,
	sdl.SCANCODE_KP_PLUS:     kc.KP_PLUS,
	sdl.SCANCODE_KP_ENTER:    kc.KP_ENTER,

	sdl.SCANCODE_PAUSE: kc.PAUSE,
}

func init() {
	for i := 0; i < 26; i++ {
		scancodes[sdl.SCANCODE_A+sdl.Scancode(i)] = kc.KeyCode('a' + i)
	}
	// SDL orders the digits 1..9, 0
	for i := 0; i < 9; i++ {
		scancodes[sdl.SCANCODE_1+sdl.Scancode(i)] = kc.KeyCode('1' + i)
	}
	scancodes[sdl.SCANCODE_0] = '0'
}

// KeyFromScancode returns kc.NONE for keys the engine does not know.
func KeyFromScancode(s sdl.Scancode) kc.KeyCode {
	if k, ok := scancodes[s]; ok {
		return k
	}
	return kc.NONE
}

func mouseButton(b uint8) (kc.KeyCode, bool) {
	switch b {
	case sdl.BUTTON_LEFT:
		return kc.MOUSE1, true
	case sdl.BUTTON_MIDDLE:
		return kc.MOUSE3, true
	case sdl.BUTTON_RIGHT:
		return kc.MOUSE2, true
	case sdl.BUTTON_X1:
		return kc.MOUSE4, true
	case sdl.BUTTON_X2:
		return kc.MOUSE5, true
	}
	return kc.NONE, false
}
