// SPDX-License-Identifier: GPL-2.0-or-later

// Package input tracks keyboard and mouse state between frames and turns
// bound keys into commands.
package input

import (
	"fmt"
	"io"
	"sort"
	"strings"

	kc "goengine/keycode"
)

// CommandSink receives the commands triggered by bound keys.
type CommandSink interface {
	AddText(text string)
}

type Manager struct {
	down     [kc.Max]bool
	pressed  [kc.Max]bool
	released [kc.Max]bool

	mouseX, mouseY int32
	deltaX, deltaY int32
	wheel          int32

	bindings map[kc.KeyCode]string
	sink     CommandSink
}

func NewManager(sink CommandSink) *Manager {
	return &Manager{
		bindings: make(map[kc.KeyCode]string),
		sink:     sink,
	}
}

func valid(k kc.KeyCode) bool {
	return k >= 0 && k < kc.Max
}

func (m *Manager) KeyDown(k kc.KeyCode) {
	if !valid(k) {
		return
	}
	if !m.down[k] {
		m.pressed[k] = true
		m.trigger(k, true)
	}
	m.down[k] = true
}

func (m *Manager) KeyUp(k kc.KeyCode) {
	if !valid(k) || !m.down[k] {
		return
	}
	m.down[k] = false
	m.released[k] = true
	m.trigger(k, false)
}

func (m *Manager) MouseButton(k kc.KeyCode, down bool) {
	if down {
		m.KeyDown(k)
	} else {
		m.KeyUp(k)
	}
}

func (m *Manager) MouseMotion(x, y, dx, dy int32) {
	m.mouseX, m.mouseY = x, y
	m.deltaX += dx
	m.deltaY += dy
}

// MouseWheel accumulates the vertical wheel movement. Each notch also acts
// as a press and release of MWHEELUP or MWHEELDOWN so it can be bound.
func (m *Manager) MouseWheel(x, y int32) {
	m.wheel += y
	switch {
	case y > 0:
		m.KeyDown(kc.MWHEELUP)
		m.KeyUp(kc.MWHEELUP)
	case y < 0:
		m.KeyDown(kc.MWHEELDOWN)
		m.KeyUp(kc.MWHEELDOWN)
	}
}

func (m *Manager) Down(k kc.KeyCode) bool {
	return valid(k) && m.down[k]
}

// Pressed reports if k went down since the last EndFrame.
func (m *Manager) Pressed(k kc.KeyCode) bool {
	return valid(k) && m.pressed[k]
}

// Released reports if k went up since the last EndFrame.
func (m *Manager) Released(k kc.KeyCode) bool {
	return valid(k) && m.released[k]
}

func (m *Manager) MousePosition() (int32, int32) {
	return m.mouseX, m.mouseY
}

func (m *Manager) MouseDelta() (int32, int32) {
	return m.deltaX, m.deltaY
}

func (m *Manager) Wheel() int32 {
	return m.wheel
}

// EndFrame forgets the edges and deltas of the current frame.
func (m *Manager) EndFrame() {
	clear(m.pressed[:])
	clear(m.released[:])
	m.deltaX, m.deltaY = 0, 0
	m.wheel = 0
}

// ClearStates releases all keys, for example after losing focus.
func (m *Manager) ClearStates() {
	for k := range m.down {
		if m.down[k] {
			m.KeyUp(kc.KeyCode(k))
		}
	}
}

func (m *Manager) trigger(k kc.KeyCode, down bool) {
	b, ok := m.bindings[k]
	if !ok || m.sink == nil {
		return
	}
	if b[0] == '+' {
		// button commands get the key so two keys can hold the same button
		if down {
			m.sink.AddText(fmt.Sprintf("%s %d\n", b, k))
		} else {
			m.sink.AddText(fmt.Sprintf("-%s %d\n", b[1:], k))
		}
		return
	}
	if down {
		m.sink.AddText(b + "\n")
	}
}

func (m *Manager) Bind(k kc.KeyCode, command string) {
	if !valid(k) {
		return
	}
	command = strings.TrimSpace(command)
	if command == "" {
		delete(m.bindings, k)
		return
	}
	m.bindings[k] = command
}

func (m *Manager) Unbind(k kc.KeyCode) {
	delete(m.bindings, k)
}

func (m *Manager) UnbindAll() {
	clear(m.bindings)
}

func (m *Manager) Binding(k kc.KeyCode) (string, bool) {
	b, ok := m.bindings[k]
	return b, ok
}

// WriteBindings writes all bindings as bind commands.
func (m *Manager) WriteBindings(w io.Writer) error {
	keys := make([]int, 0, len(m.bindings))
	for k := range m.bindings {
		keys = append(keys, int(k))
	}
	sort.Ints(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "bind \"%s\" \"%s\"\n", kc.KeyToString(kc.KeyCode(k)), m.bindings[kc.KeyCode(k)]); err != nil {
			return err
		}
	}
	return nil
}
