// SPDX-License-Identifier: GPL-2.0-or-later

package input

import (
	"goengine/cmd"
)

// Button is an action driven by "+name" and "-name" commands.
type Button struct {
	// key nums holding it down, can handle 2 keys with the same action
	holdingDown [2]int
	down        bool
	impulseDown bool
	impulseUp   bool
}

func (b *Button) Down() bool {
	return b.down
}

// Impulse returns 0.25 if the button was pressed and released since the
// last reset, 0.75 if it was pressed, released and pressed again,
// 0.5 if it was pressed and held, 0 if held then released,
// and 1 if held the entire time.
func (b *Button) Impulse() float32 {
	switch {
	case b.impulseDown && b.impulseUp:
		if b.down {
			return 0.75
		}
		return 0.25
	case !b.impulseDown && !b.impulseUp:
		if b.down {
			return 1
		}
		return 0
	case b.impulseUp:
		return 0
	default:
		if b.down {
			return 0.5
		}
		return 0
	}
}

func (b *Button) ResetImpulse() {
	b.impulseDown = false
	b.impulseUp = false
}

func (b *Button) ConsumeImpulse() float32 {
	i := b.Impulse()
	b.ResetImpulse()
	return i
}

func (b *Button) press(k int) {
	switch {
	case b.holdingDown[0] == k || b.holdingDown[1] == k:
		return
	case b.holdingDown[0] == 0:
		b.holdingDown[0] = k
	case b.holdingDown[1] == 0:
		b.holdingDown[1] = k
	default:
		// three keys for one button
		return
	}
	if b.down {
		return
	}
	b.down = true
	b.impulseDown = true
}

func (b *Button) release(k int) {
	switch {
	case b.holdingDown[0] == k:
		b.holdingDown[0] = 0
	case b.holdingDown[1] == k:
		b.holdingDown[1] = 0
	default:
		return
	}
	if b.holdingDown[0] != 0 || b.holdingDown[1] != 0 {
		// some other key is still holding it down
		return
	}
	if !b.down {
		return
	}
	b.down = false
	b.impulseUp = true
}

func (b *Button) downCmd(a cmd.Arguments) error {
	if len(a.Args()) < 2 {
		// typed manually
		b.press(-1)
		return nil
	}
	b.press(a.Argv(1).Int())
	return nil
}

func (b *Button) upCmd(a cmd.Arguments) error {
	if len(a.Args()) < 2 {
		// typed manually
		b.holdingDown = [2]int{}
		b.down = false
		b.impulseDown = false
		b.impulseUp = true
		return nil
	}
	b.release(a.Argv(1).Int())
	return nil
}

// RegisterButton adds the "+name" and "-name" commands driving a new button.
func RegisterButton(c cmd.Commands, name string) (*Button, error) {
	b := &Button{}
	if err := c.Add("+"+name, b.downCmd); err != nil {
		return nil, err
	}
	if err := c.Add("-"+name, b.upCmd); err != nil {
		return nil, err
	}
	return b, nil
}
