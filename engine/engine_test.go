// SPDX-License-Identifier: GPL-2.0-or-later

package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"goengine/content"
	"goengine/cvars"
	"goengine/filesystem"
	"goengine/gametime"
	"goengine/input"
	kc "goengine/keycode"
	"goengine/renderer"
	"goengine/window"
)

type fakeGame struct {
	updates int
	pressed []bool
	input   func() bool
	err     error
}

func (g *fakeGame) Load(*content.Manager) error { return nil }

func (g *fakeGame) Update(gametime.Time) error {
	g.updates++
	if g.input != nil {
		g.pressed = append(g.pressed, g.input())
	}
	return g.err
}

func (g *fakeGame) Draw(*renderer.Renderer, float64) error { return nil }

func testEngine(t *testing.T) (*Engine, *fakeGame) {
	t.Helper()
	g := &fakeGame{}
	e, err := newEngine(DefaultSettings(), g)
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}
	return e, g
}

func useDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := filesystem.UseBaseDir(dir, ""); err != nil {
		t.Fatalf("UseBaseDir: %v", err)
	}
	t.Cleanup(filesystem.Shutdown)
	return dir
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("DefaultSettings invalid: %v", err)
	}
	if s.Width != 800 || s.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", s.Width, s.Height)
	}
	if s.UpdateRate != 60 {
		t.Errorf("UpdateRate = %v, want 60", s.UpdateRate)
	}
	if s.MaxFrameTime != 250*time.Millisecond {
		t.Errorf("MaxFrameTime = %v, want 250ms", s.MaxFrameTime)
	}
	if !s.VSync || s.Fullscreen || !s.Sound {
		t.Errorf("unexpected flags %+v", s)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		change func(*Settings)
	}{
		{"zero width", func(s *Settings) { s.Width = 0 }},
		{"negative height", func(s *Settings) { s.Height = -1 }},
		{"zero rate", func(s *Settings) { s.UpdateRate = 0 }},
		{"negative rate", func(s *Settings) { s.UpdateRate = -30 }},
		{"zero frame time", func(s *Settings) { s.MaxFrameTime = 0 }},
		{"frame shorter than step", func(s *Settings) { s.MaxFrameTime = time.Millisecond }},
		{"negative fsaa", func(s *Settings) { s.Fsaa = -2 }},
		{"no base dir", func(s *Settings) { s.BaseDir = "" }},
	}
	for _, tc := range tests {
		s := DefaultSettings()
		tc.change(&s)
		if err := s.Validate(); err == nil {
			t.Errorf("%s: Validate succeeded", tc.name)
		}
	}
}

func TestExplicit(t *testing.T) {
	d := DefaultSettings()
	if got := d.explicit(d); got != "" {
		t.Errorf("explicit of defaults = %q", got)
	}
	s := d
	s.Width = 1024
	s.Fullscreen = true
	s.UpdateRate = 72.5
	want := "vid_width 1024\nvid_fullscreen 1\nhost_updaterate 72.5\n"
	if got := s.explicit(d); got != want {
		t.Errorf("explicit = %q, want %q", got, want)
	}
}

func TestNewEngineRejects(t *testing.T) {
	if _, err := newEngine(DefaultSettings(), nil); err == nil {
		t.Errorf("newEngine without game succeeded")
	}
	s := DefaultSettings()
	s.UpdateRate = 0
	if _, err := newEngine(s, &fakeGame{}); err == nil {
		t.Errorf("newEngine with invalid settings succeeded")
	}
}

func TestBindCommands(t *testing.T) {
	e, _ := testEngine(t)
	e.Exec("bind w +forward\nbind F1 \"screenshot\"; bind x echo hello world\n")
	e.buffer.Execute()
	tests := []struct {
		key  kc.KeyCode
		want string
	}{
		{kc.KeyCode('w'), "+forward"},
		{kc.F1, "screenshot"},
		{kc.KeyCode('x'), "echo hello world"},
	}
	for _, tc := range tests {
		if got, ok := e.input.Binding(tc.key); !ok || got != tc.want {
			t.Errorf("Binding(%s) = %q, %v, want %q", kc.KeyToString(tc.key), got, ok, tc.want)
		}
	}
	e.Exec("unbind w\n")
	e.buffer.Execute()
	if _, ok := e.input.Binding(kc.KeyCode('w')); ok {
		t.Errorf("w still bound after unbind")
	}
	e.Exec("unbindall\n")
	e.buffer.Execute()
	if _, ok := e.input.Binding(kc.F1); ok {
		t.Errorf("F1 still bound after unbindall")
	}
}

func TestQuitCommand(t *testing.T) {
	e, _ := testEngine(t)
	e.Exec("wait; quit\n")
	e.buffer.Execute()
	if e.quit {
		t.Fatalf("quit ran before the wait ended")
	}
	e.buffer.Execute()
	if !e.quit {
		t.Errorf("quit did not stop the engine")
	}
}

func TestWriteConfigAndExec(t *testing.T) {
	dir := useDir(t)
	e, _ := testEngine(t)
	e.input.Bind(kc.KeyCode('w'), "+forward")
	e.input.Bind(kc.SPACE, "+jump")
	e.Exec("alias zoom \"fov 30\"\n")
	e.buffer.Execute()
	if err := e.writeConfig("test.cfg"); err != nil {
		t.Fatalf("writeConfig: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "test.cfg"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, want := range []string{"unbindall\n", "bind \"w\" \"+forward\"\n", "bind \"SPACE\" \"+jump\"\n", "alias \"zoom\" \"fov 30\"\n", "vid_width \""} {
		if !strings.Contains(string(b), want) {
			t.Errorf("config misses %q:\n%s", want, b)
		}
	}
	// multisampling is fixed when the window opens
	if strings.Contains(string(b), "vid_fsaa") {
		t.Errorf("config contains vid_fsaa:\n%s", b)
	}

	other, _ := testEngine(t)
	other.Exec("exec test.cfg\n")
	other.buffer.Execute()
	if got, _ := other.input.Binding(kc.SPACE); got != "+jump" {
		t.Errorf("after exec SPACE = %q, want +jump", got)
	}
	if got, _ := other.aliases.Get("zoom"); got != "fov 30" {
		t.Errorf("after exec zoom = %q, want \"fov 30\"", got)
	}
}

func TestReportShowsEachErrorOnce(t *testing.T) {
	e, _ := testEngine(t)
	var shown []string
	e.message = func(typ window.MessageBoxType, title, text string) {
		if typ != window.Error {
			t.Errorf("message type = %v, want Error", typ)
		}
		shown = append(shown, text)
	}
	e.report(errors.New("broken"))
	e.report(errors.New("broken"))
	e.report(errors.New("other"))
	if len(shown) != 2 || shown[0] != "broken" || shown[1] != "other" {
		t.Errorf("shown = %q", shown)
	}
}

func TestContentErrorMessage(t *testing.T) {
	e, _ := testEngine(t)
	var title string
	e.message = func(_ window.MessageBoxType, ti, _ string) { title = ti }
	e.contentError(&content.LoadError{Name: "a.obj", Err: errors.New("bad")})
	if title != content.LoadErrorKind {
		t.Errorf("title = %q, want %q", title, content.LoadErrorKind)
	}
}

func TestUpdateConsumesEdges(t *testing.T) {
	e, g := testEngine(t)
	w := kc.KeyCode('w')
	g.input = func() bool { return e.input.Pressed(w) }
	e.input.KeyDown(w)
	tm := gametime.Time{Elapsed: e.settings.Step()}
	for i := 0; i < 2; i++ {
		if err := e.update(tm); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if len(g.pressed) != 2 || !g.pressed[0] || g.pressed[1] {
		t.Errorf("pressed per update = %v, want [true false]", g.pressed)
	}
	if !e.input.Down(w) {
		t.Errorf("key released by EndFrame")
	}
}

func TestUpdateErrorIsReturned(t *testing.T) {
	e, g := testEngine(t)
	g.err = errors.New("fail")
	if err := e.update(gametime.Time{}); err != g.err {
		t.Errorf("update = %v, want %v", err, g.err)
	}
}

func TestScreenshotPath(t *testing.T) {
	dir := t.TempDir()
	p, err := screenshotPath(dir, "")
	if err != nil || p != filepath.Join(dir, "shot0000.png") {
		t.Fatalf("first path = %q, %v", p, err)
	}
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if p, _ := screenshotPath(dir, ""); p != filepath.Join(dir, "shot0001.png") {
		t.Errorf("second path = %q", p)
	}
	if p, _ := screenshotPath(dir, "view"); p != filepath.Join(dir, "view.png") {
		t.Errorf("named path = %q", p)
	}
	if p, _ := screenshotPath(dir, "view.webp"); p != filepath.Join(dir, "view.webp") {
		t.Errorf("webp path = %q", p)
	}
}

func TestConfigKeptUntilExecuted(t *testing.T) {
	dir := useDir(t)
	p := filepath.Join(dir, "config.cfg")
	saved := "bind w \"+forward\"\nalias zoom \"fov 30\"\n"
	if err := os.WriteFile(p, []byte(saved), 0o644); err != nil {
		t.Fatal(err)
	}
	e, _ := testEngine(t)
	e.startScripts(DefaultSettings())
	// stopping before the first frame must not touch the config
	e.saveConfig()
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != saved {
		t.Fatalf("config rewritten before it was executed:\n%s", b)
	}

	e.executeCommands()
	if got, _ := e.input.Binding(kc.KeyCode('w')); got != "+forward" {
		t.Errorf("after the first frame w = %q, want +forward", got)
	}
	e.saveConfig()
	b, err = os.ReadFile(p)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, want := range []string{"unbindall\n", "bind \"w\" \"+forward\"\n", "alias \"zoom\" \"fov 30\"\n"} {
		if !strings.Contains(string(b), want) {
			t.Errorf("saved config misses %q:\n%s", want, b)
		}
	}
}

func TestUpdateRateCvar(t *testing.T) {
	e, _ := testEngine(t)
	t.Cleanup(func() {
		clearCallbacks()
		cvars.HostUpdateRate.Reset()
	})
	tests := []struct {
		value string
		want  float64
	}{
		{"30", 30},
		{"0", 30},
		{"-10", 30},
		// a step longer than the frame limit never runs
		{"2", 30},
		{"120", 120},
	}
	for _, tc := range tests {
		e.Exec("host_updaterate " + tc.value + "\n")
		e.buffer.Execute()
		if e.settings.UpdateRate != tc.want {
			t.Errorf("host_updaterate %s: rate = %v, want %v", tc.value, e.settings.UpdateRate, tc.want)
		}
		if got, want := e.loop.Stepper().StepDuration(), gametime.StepForRate(tc.want); got != want {
			t.Errorf("host_updaterate %s: step = %v, want %v", tc.value, got, want)
		}
		if got := float64(cvars.HostUpdateRate.Value()); got != tc.want {
			t.Errorf("host_updaterate %s: cvar = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestButtonBinding(t *testing.T) {
	e, _ := testEngine(t)
	b, err := input.RegisterButton(e.Commands(), "left")
	if err != nil {
		t.Fatalf("RegisterButton: %v", err)
	}
	e.input.Bind(kc.LEFTARROW, "+left")
	e.input.KeyDown(kc.LEFTARROW)
	e.executeCommands()
	if !b.Down() {
		t.Fatalf("button not down after key press")
	}
	if got := b.ConsumeImpulse(); got != 0.5 {
		t.Errorf("impulse of the pressing update = %v, want 0.5", got)
	}
	if got := b.ConsumeImpulse(); got != 1 {
		t.Errorf("impulse while held = %v, want 1", got)
	}
	e.input.KeyUp(kc.LEFTARROW)
	e.executeCommands()
	if b.Down() {
		t.Errorf("button still down after key release")
	}
	if got := b.ConsumeImpulse(); got != 0 {
		t.Errorf("impulse after release = %v, want 0", got)
	}
}
