// SPDX-License-Identifier: GPL-2.0-or-later

package engine

import (
	"math"
	"strconv"
	"time"

	"goengine/cvar"
	"goengine/cvars"
	"goengine/gametime"

	"github.com/pkg/errors"
)

// Settings select the initial video mode, the update rate and where the
// content lives.
type Settings struct {
	Title  string
	Width  int
	Height int
	// UpdateRate is the number of fixed updates per second.
	UpdateRate float64
	// MaxFrameTime caps the time a single frame adds to the lag.
	MaxFrameTime time.Duration
	VSync        bool
	Fullscreen   bool
	Fsaa         int
	Sound        bool
	Debug        bool

	BaseDir string
	Game    string
	// Config is the script executed at start and written back on shutdown.
	// Empty disables both.
	Config string
	// Commands are executed after the config.
	Commands string
}

func defaultInt(cv *cvar.Cvar) int {
	v, _ := strconv.Atoi(cv.DefaultValue())
	return v
}

func defaultFloat(cv *cvar.Cvar) float64 {
	v, _ := strconv.ParseFloat(cv.DefaultValue(), 64)
	return v
}

// DefaultSettings are built from the defaults of the video and host cvars.
func DefaultSettings() Settings {
	return Settings{
		Title:        "goengine",
		Width:        defaultInt(cvars.VideoWidth),
		Height:       defaultInt(cvars.VideoHeight),
		UpdateRate:   defaultFloat(cvars.HostUpdateRate),
		MaxFrameTime: time.Duration(defaultFloat(cvars.HostMaxFrameTime) * float64(time.Second)),
		VSync:        defaultInt(cvars.VideoVerticalSync) != 0,
		Fullscreen:   defaultInt(cvars.VideoFullscreen) != 0,
		Fsaa:         defaultInt(cvars.VideoFsaa),
		Sound:        true,
		BaseDir:      ".",
		Config:       "config.cfg",
	}
}

func (s Settings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return errors.Errorf("invalid window size %dx%d", s.Width, s.Height)
	case math.IsNaN(s.UpdateRate) || math.IsInf(s.UpdateRate, 0) || s.UpdateRate <= 0:
		return errors.Errorf("invalid update rate %v", s.UpdateRate)
	case s.MaxFrameTime <= 0:
		return errors.Errorf("invalid max frame time %v", s.MaxFrameTime)
	case s.MaxFrameTime < s.Step():
		return errors.Errorf("max frame time %v is shorter than the update step %v", s.MaxFrameTime, s.Step())
	case s.Fsaa < 0:
		return errors.Errorf("invalid multisample count %d", s.Fsaa)
	case s.BaseDir == "":
		return errors.New("no base directory")
	}
	return nil
}

// Step is the length of one fixed update.
func (s Settings) Step() time.Duration {
	return gametime.StepForRate(s.UpdateRate)
}

// store copies the settings into the cvars. The archived ones end up in
// the config.
func (s Settings) store() {
	cvars.VideoWidth.SetValue(float32(s.Width))
	cvars.VideoHeight.SetValue(float32(s.Height))
	cvars.VideoFullscreen.SetValue(boolValue(s.Fullscreen))
	cvars.VideoVerticalSync.SetValue(boolValue(s.VSync))
	cvars.VideoFsaa.SetValue(float32(s.Fsaa))
	cvars.HostUpdateRate.SetValue(float32(s.UpdateRate))
	cvars.HostMaxFrameTime.SetValue(float32(s.MaxFrameTime.Seconds()))
}

// explicit returns the commands that restore the fields of s that differ
// from d. They run after the config so that a mode chosen by the caller
// wins over the archived one.
func (s Settings) explicit(d Settings) string {
	r := ""
	if s.Width != d.Width {
		r += "vid_width " + strconv.Itoa(s.Width) + "\n"
	}
	if s.Height != d.Height {
		r += "vid_height " + strconv.Itoa(s.Height) + "\n"
	}
	if s.Fullscreen != d.Fullscreen {
		r += "vid_fullscreen " + strconv.Itoa(int(boolValue(s.Fullscreen))) + "\n"
	}
	if s.VSync != d.VSync {
		r += "vid_vsync " + strconv.Itoa(int(boolValue(s.VSync))) + "\n"
	}
	if s.UpdateRate != d.UpdateRate {
		r += "host_updaterate " + strconv.FormatFloat(s.UpdateRate, 'g', -1, 64) + "\n"
	}
	return r
}

func boolValue(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
