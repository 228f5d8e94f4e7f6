// SPDX-License-Identifier: GPL-2.0-or-later

// Package engine ties the window, the fixed step loop, the renderer and
// the content manager together and drives a Game.
package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"goengine/alias"
	"goengine/audio"
	"goengine/cbuf"
	"goengine/cmd"
	"goengine/conlog"
	"goengine/content"
	"goengine/cvar"
	"goengine/cvars"
	"goengine/filesystem"
	"goengine/gametime"
	"goengine/input"
	kc "goengine/keycode"
	"goengine/renderer"
	"goengine/shader"
	"goengine/texture"
	"goengine/window"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/mainthread/v2"
	"github.com/pkg/errors"
)

// Game is the user code run by the engine. All methods are called on the
// main thread with the GL context current.
type Game interface {
	Load(c *content.Manager) error
	Update(t gametime.Time) error
	Draw(r *renderer.Renderer, alpha float64) error
}

// Unloader is implemented by games that release resources on shutdown.
type Unloader interface {
	Unload()
}

type Engine struct {
	settings Settings
	game     Game

	window   *window.Window
	renderer *renderer.Renderer
	shaders  *shader.Manager
	content  *content.Manager
	audio    *audio.System
	input    *input.Manager

	commands cmd.Commands
	aliases  *alias.Aliases
	buffer   *cbuf.Buffer
	loop     *gametime.Loop
	counter  *gametime.FrameCounter

	message    func(t window.MessageBoxType, title, text string)
	reported   map[string]bool
	quit       bool
	closed     bool
	configRead bool
	focus      bool
	screenshot string
	stats      string
}

// newEngine sets up everything that does not need a window.
func newEngine(s Settings, g Game) (*Engine, error) {
	if g == nil {
		return nil, errors.New("no game")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		settings: s,
		game:     g,
		commands: cmd.New(),
		counter:  gametime.NewFrameCounter(time.Second),
		reported: make(map[string]bool),
		focus:    true,
	}
	e.message = e.showMessage
	e.buffer = cbuf.New(e.commands.Execute, cmd.Execute, cvar.Execute,
		func(a cmd.Arguments) (bool, error) { return e.aliases.Execute(a) })
	e.aliases = alias.New(e.buffer)
	e.input = input.NewManager(e.buffer)
	if err := e.addCommands(); err != nil {
		return nil, err
	}
	if err := e.aliases.Register(e.commands); err != nil {
		return nil, err
	}
	loop, err := gametime.NewLoop(gametime.SystemClock, s.Step(), s.MaxFrameTime)
	if err != nil {
		return nil, err
	}
	loop.Input = e.processInput
	loop.Update = e.update
	loop.Draw = e.draw
	loop.Report = e.report
	loop.Counter = e.counter
	e.loop = loop
	cvars.HostUpdateRate.SetCallback(func(cv *cvar.Cvar) {
		if err := e.setUpdateRate(float64(cv.Value())); err != nil {
			conlog.Printf("host_updaterate: %v\n", err)
			cv.SetValue(float32(e.settings.UpdateRate))
		}
	})
	return e, nil
}

// setUpdateRate changes the update frequency of the running loop.
func (e *Engine) setUpdateRate(rate float64) error {
	s := e.settings
	s.UpdateRate = rate
	if err := s.Validate(); err != nil {
		return err
	}
	if err := e.loop.Stepper().SetStep(s.Step()); err != nil {
		return err
	}
	e.settings = s
	return nil
}

// New opens the window and creates the renderer, content manager and audio
// system. It must be called from inside mainthread.Run.
func New(s Settings, g Game) (*Engine, error) {
	e, err := newEngine(s, g)
	if err != nil {
		return nil, err
	}
	if err := filesystem.UseBaseDir(s.BaseDir, s.Game); err != nil {
		return nil, err
	}
	if s.Debug {
		cvars.Developer.SetValue(1)
	}
	s.store()
	mainthread.Call(func() {
		err = e.open()
	})
	if err != nil {
		e.Close()
		return nil, err
	}
	e.startScripts(DefaultSettings())
	return e, nil
}

func (e *Engine) open() error {
	if err := window.Init(); err != nil {
		return errors.Wrap(err, "couldn't init SDL")
	}
	w, err := window.Open(window.Config{
		Title:      e.settings.Title,
		Width:      e.settings.Width,
		Height:     e.settings.Height,
		Fullscreen: e.settings.Fullscreen,
		VSync:      e.settings.VSync,
		Fsaa:       e.settings.Fsaa,
		Debug:      e.settings.Debug,
	})
	if err != nil {
		return err
	}
	e.window = w
	e.shaders = shader.NewManager()
	r, err := renderer.New(e.shaders)
	if err != nil {
		return err
	}
	r.Init()
	e.renderer = r
	texture.Init()

	if e.settings.Sound {
		a, err := audio.Init(cvars.SoundVolume.Value())
		if err != nil {
			log.Printf("Sound disabled: %v", err)
		} else {
			e.audio = a
		}
	}
	e.content = content.NewManager(e.shaders, e.audio)
	e.content.SetNotifier(e.contentError)
	e.content.OnUnload(func() { e.renderer.ForgetFonts() })
	e.setCallbacks()
	return nil
}

// startScripts queues the config, the explicitly chosen settings and the
// start commands. They run with the first frame.
func (e *Engine) startScripts(d Settings) {
	if e.settings.Config != "" {
		e.buffer.AddText(fmt.Sprintf("exec \"%s\"\n", e.settings.Config))
	}
	e.buffer.AddText(e.settings.explicit(d))
	if e.settings.Commands != "" {
		e.buffer.AddText(e.settings.Commands + "\n")
	}
}

func (e *Engine) setCallbacks() {
	cvars.SoundVolume.SetCallback(func(cv *cvar.Cvar) {
		e.audio.SetVolume(cv.Value())
	})
	cvars.VideoVerticalSync.SetCallback(func(cv *cvar.Cvar) {
		e.window.SetVSync(cv.Bool())
	})
	cvars.VideoFullscreen.SetCallback(func(cv *cvar.Cvar) {
		if err := e.window.SetFullscreen(cv.Bool()); err != nil {
			conlog.Printf("Couldn't change fullscreen mode: %v\n", err)
		}
	})
	resize := func(*cvar.Cvar) {
		w, h := int(cvars.VideoWidth.Value()), int(cvars.VideoHeight.Value())
		if w <= 0 || h <= 0 || e.window.Fullscreen() {
			return
		}
		e.window.SetSize(w, h)
	}
	cvars.VideoWidth.SetCallback(resize)
	cvars.VideoHeight.SetCallback(resize)
}

func clearCallbacks() {
	for _, cv := range []*cvar.Cvar{
		cvars.SoundVolume, cvars.VideoVerticalSync, cvars.VideoFullscreen,
		cvars.VideoWidth, cvars.VideoHeight, cvars.HostUpdateRate,
	} {
		cv.SetCallback(nil)
	}
}

func (e *Engine) Window() *window.Window       { return e.window }
func (e *Engine) Renderer() *renderer.Renderer { return e.renderer }
func (e *Engine) Content() *content.Manager    { return e.content }
func (e *Engine) Audio() *audio.System         { return e.audio }
func (e *Engine) Input() *input.Manager        { return e.input }
func (e *Engine) Commands() cmd.Commands       { return e.commands }
func (e *Engine) Settings() Settings           { return e.settings }

// Exec queues command text for the next frame.
func (e *Engine) Exec(text string) {
	e.buffer.AddText(text)
}

// Run loads the game and runs frames until quit is requested, the window
// is closed or ctx is done. Each frame executes on the main thread. Errors
// of single frames are reported and do not stop the loop; only a failing
// Load does. The engine is closed when Run returns.
func (e *Engine) Run(ctx context.Context) error {
	defer e.Close()
	var err error
	mainthread.Call(func() {
		err = e.game.Load(e.content)
		e.focus = e.window.InputFocus()
	})
	if err != nil {
		return errors.Wrap(err, "couldn't load game")
	}
	e.loop.Restart()
	for !e.quit {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if !e.focus {
			time.Sleep(16 * time.Millisecond)
		}
		mainthread.Call(e.frame)
	}
	return nil
}

func (e *Engine) frame() {
	e.loop.Frame()
	if !cvars.DevStats.Bool() {
		if e.stats != "" {
			e.stats = ""
			e.window.SetTitle(e.settings.Title)
		}
		return
	}
	if s := e.statsText(); s != e.stats {
		e.stats = s
		e.window.SetTitle(fmt.Sprintf("%s - %s", e.settings.Title, s))
	}
}

func (e *Engine) statsText() string {
	fps, ups, ok := e.counter.Rates()
	if !ok {
		return ""
	}
	st := e.renderer.Stats()
	return fmt.Sprintf("%.0f fps %.0f ups %d draws", fps, ups, st.DrawCalls)
}

func (e *Engine) processInput() {
	e.window.PollEvents(e)
	e.executeCommands()
}

func (e *Engine) executeCommands() {
	e.aliases.NewFrame()
	e.buffer.Execute()
	// the start scripts, and with them the config, have run
	e.configRead = true
}

// saveConfig writes the config back, but only once it was executed. An
// engine that stops before its first frame would otherwise replace the
// saved bindings and cvars with the defaults.
func (e *Engine) saveConfig() {
	if !e.configRead || e.settings.Config == "" {
		return
	}
	if err := e.writeConfig(e.settings.Config); err != nil {
		log.Printf("Couldn't write config: %v", err)
	}
}

func (e *Engine) update(t gametime.Time) error {
	err := e.game.Update(t)
	// the edges were seen by one update, frames without update keep them
	e.input.EndFrame()
	return err
}

func clearColor() mgl32.Vec4 {
	c := cvars.RenderClearColor.Floats(0, 0, 0)
	return mgl32.Vec4{c[0], c[1], c[2], 1}
}

func (e *Engine) draw(alpha float64) error {
	w, h := e.window.Size()
	e.renderer.Viewport(w, h)
	e.renderer.Clear(clearColor())
	err := e.game.Draw(e.renderer, alpha)
	if e.screenshot != "" {
		if serr := e.Screenshot(e.screenshot); serr != nil {
			conlog.Printf("Couldn't write screenshot: %v\n", serr)
		} else {
			conlog.Printf("Wrote %s\n", e.screenshot)
		}
		e.screenshot = ""
	}
	e.window.SwapBuffers()
	return err
}

// report logs every error but shows each distinct message only once, a
// broken Draw would otherwise open a box per frame.
func (e *Engine) report(err error) {
	log.Printf("Error: %v", err)
	msg := err.Error()
	if e.reported[msg] {
		return
	}
	e.reported[msg] = true
	e.message(window.Error, "Error", msg)
}

func (e *Engine) contentError(err *content.LoadError) {
	log.Printf("%s: %v", err.Kind(), err)
	e.message(window.Error, err.Kind(), err.Error())
}

func (e *Engine) showMessage(t window.MessageBoxType, title, text string) {
	e.window.ShowMessageBox(t, title, text)
}

// Close writes the config and releases everything. It is safe to call it
// more than once.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	mainthread.Call(func() {
		e.saveConfig()
		if u, ok := e.game.(Unloader); ok {
			u.Unload()
		}
		if e.content != nil {
			e.content.Unload()
		}
		e.audio.Shutdown()
		texture.Shutdown()
		clearCallbacks()
		if e.window != nil {
			e.window.Close()
		}
		window.Quit()
	})
	filesystem.Shutdown()
}

func (e *Engine) KeyDown(k kc.KeyCode) {
	e.input.KeyDown(k)
}

func (e *Engine) KeyUp(k kc.KeyCode) {
	e.input.KeyUp(k)
}

func (e *Engine) MouseButton(k kc.KeyCode, down bool) {
	e.input.MouseButton(k, down)
}

func (e *Engine) MouseMotion(x, y, dx, dy int32) {
	e.input.MouseMotion(x, y, dx, dy)
}

func (e *Engine) MouseWheel(x, y int32) {
	e.input.MouseWheel(x, y)
}

// FocusChanged pauses the sound and releases all keys while the window
// is in the background.
func (e *Engine) FocusChanged(focus bool) {
	e.focus = focus
	if focus {
		e.audio.Resume()
		return
	}
	e.audio.Suspend()
	e.input.ClearStates()
}

func (e *Engine) Resized(width, height int) {
	conlog.DPrintf("Window resized to %dx%d\n", width, height)
}

// Quit ends Run after the current frame. It also handles the window's
// close request.
func (e *Engine) Quit() {
	e.quit = true
}
