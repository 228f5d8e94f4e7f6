// SPDX-License-Identifier: GPL-2.0-or-later

// Package window is the SDL2 display window with its GL context.
package window

import (
	"fmt"
	"log"

	"goengine/glh"
	kc "goengine/keycode"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

type MessageBoxType int

const (
	Information MessageBoxType = iota
	Warning
	Error
)

// Config describes the requested video mode.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	// Fsaa is the number of multisample samples, 0 disables it.
	Fsaa int
	// Debug enables GL debug output.
	Debug bool
}

// EventHandler receives the translated SDL events.
type EventHandler interface {
	KeyDown(k kc.KeyCode)
	KeyUp(k kc.KeyCode)
	MouseButton(k kc.KeyCode, down bool)
	MouseMotion(x, y, dx, dy int32)
	MouseWheel(x, y int32)
	FocusChanged(focus bool)
	Resized(width, height int)
	Quit()
}

type Window struct {
	window  *sdl.Window
	context sdl.GLContext
	title   string
}

// Init starts the SDL subsystems. Call it once before Open.
func Init() error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("init SDL: %w", err)
	}
	return nil
}

// Quit shuts SDL down.
func Quit() {
	sdl.Quit()
}

// Ticks returns the milliseconds since Init.
func Ticks() uint64 {
	return sdl.GetTicks64()
}

func setAttributes(fsaa int, debug bool) {
	if debug {
		// debug output is core since 4.3
		sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
		sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)
		sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_DEBUG_FLAG)
	} else {
		sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
		sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)
	}
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BUFFER_SIZE, 32)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)
	if fsaa > 0 {
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, fsaa)
	} else {
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 0)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 0)
	}
}

// Open creates a centered window and makes its GL context current. If
// the requested mode fails, multisampling and then buffer depths are
// lowered step by step.
func Open(c Config) (*Window, error) {
	setAttributes(c.Fsaa, c.Debug)
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_HIDDEN | sdl.WINDOW_RESIZABLE)
	if c.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	create := func() (*sdl.Window, error) {
		return sdl.CreateWindow(c.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, int32(c.Width), int32(c.Height), flags)
	}
	w, err := create()
	if err != nil && c.Fsaa > 0 {
		log.Printf("Window creation with %dx multisampling failed: %v", c.Fsaa, err)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 0)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 0)
		w, err = create()
	}
	if err != nil {
		sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 16)
		w, err = create()
	}
	if err != nil {
		sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 0)
		w, err = create()
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't create window: %w", err)
	}

	ctx, err := w.GLCreateContext()
	if err != nil {
		w.Destroy()
		return nil, fmt.Errorf("couldn't create GL context: %w", err)
	}
	if err := gl.Init(); err != nil {
		sdl.GLDeleteContext(ctx)
		w.Destroy()
		return nil, fmt.Errorf("couldn't init gl: %w", err)
	}
	if c.Debug {
		glh.EnableDebugOutput(false)
	}
	win := &Window{
		window:  w,
		context: ctx,
		title:   c.Title,
	}
	win.SetVSync(c.VSync)
	w.Show()
	return win, nil
}

func (w *Window) Close() {
	if w.window == nil {
		return
	}
	sdl.GLDeleteContext(w.context)
	w.context = nil
	w.window.Destroy()
	w.window = nil
}

// Size returns the drawable size in pixels.
func (w *Window) Size() (int, int) {
	x, y := w.window.GLGetDrawableSize()
	return int(x), int(y)
}

// AspectRatio is width divided by height.
func (w *Window) AspectRatio() float32 {
	x, y := w.Size()
	if y == 0 {
		return 1
	}
	return float32(x) / float32(y)
}

func (w *Window) Title() string {
	return w.title
}

func (w *Window) SetTitle(t string) {
	w.title = t
	w.window.SetTitle(t)
}

func (w *Window) SetVSync(on bool) {
	interval := 0
	if on {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		log.Printf("Couldn't set swap interval: %v", err)
	}
}

func (w *Window) VSync() bool {
	i, _ := sdl.GLGetSwapInterval()
	return i == 1
}

func (w *Window) Fullscreen() bool {
	return w.window.GetFlags()&sdl.WINDOW_FULLSCREEN != 0
}

func (w *Window) SetFullscreen(on bool) error {
	var flags uint32
	if on {
		flags = sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	return w.window.SetFullscreen(flags)
}

// SetSize changes the window size in windowed mode.
func (w *Window) SetSize(width, height int) {
	w.window.SetSize(int32(width), int32(height))
	w.window.SetPosition(sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED)
}

func (w *Window) InputFocus() bool {
	return w.window.GetFlags()&(sdl.WINDOW_MOUSE_FOCUS|sdl.WINDOW_INPUT_FOCUS) != 0
}

// GrabMouse switches relative mouse mode, hiding the cursor.
func (w *Window) GrabMouse(on bool) {
	sdl.SetRelativeMouseMode(on)
}

func (w *Window) SwapBuffers() {
	w.window.GLSwap()
}

// ShowMessageBox shows a modal box. Unknown types are ignored.
func (w *Window) ShowMessageBox(t MessageBoxType, title, message string) {
	var flags uint32
	switch t {
	case Information:
		flags = sdl.MESSAGEBOX_INFORMATION
	case Warning:
		flags = sdl.MESSAGEBOX_WARNING
	case Error:
		flags = sdl.MESSAGEBOX_ERROR
	default:
		return
	}
	var parent *sdl.Window
	if w != nil {
		parent = w.window
	}
	if err := sdl.ShowSimpleMessageBox(flags, title, message, parent); err != nil {
		log.Printf("Couldn't show message box %q: %v", message, err)
	}
}

// PollEvents dispatches all pending events to h.
func (w *Window) PollEvents(h EventHandler) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		dispatch(event, h)
	}
}

func dispatch(event sdl.Event, h EventHandler) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		h.Quit()
	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return
		}
		k := KeyFromScancode(e.Keysym.Scancode)
		if k == kc.NONE {
			return
		}
		if e.State == sdl.PRESSED {
			h.KeyDown(k)
		} else {
			h.KeyUp(k)
		}
	case *sdl.MouseButtonEvent:
		if k, ok := mouseButton(e.Button); ok {
			h.MouseButton(k, e.State == sdl.PRESSED)
		}
	case *sdl.MouseMotionEvent:
		h.MouseMotion(e.X, e.Y, e.XRel, e.YRel)
	case *sdl.MouseWheelEvent:
		x, y := e.X, e.Y
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			x, y = -x, -y
		}
		h.MouseWheel(x, y)
	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_FOCUS_GAINED:
			h.FocusChanged(true)
		case sdl.WINDOWEVENT_FOCUS_LOST:
			h.FocusChanged(false)
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			h.Resized(int(e.Data1), int(e.Data2))
		}
	}
}
