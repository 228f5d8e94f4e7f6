// SPDX-License-Identifier: GPL-2.0-or-later

// Package gametime implements the fixed update step of the main loop.
//
// Simulation always advances in steps of the same length. Wall time is
// collected in a lag accumulator and as many steps are run as fit into it.
// What is left over is handed to rendering as interpolation factor.
package gametime

import (
	"fmt"
	"time"
)

var (
	startTime = time.Now()
)

// Time is handed to each update.
type Time struct {
	// Total is the wall time since the loop started, taken when the update
	// runs.
	Total time.Duration
	// Elapsed is the simulated time of this update, always one step.
	Elapsed time.Duration
}

func (t Time) TotalSeconds() float64   { return t.Total.Seconds() }
func (t Time) ElapsedSeconds() float64 { return t.Elapsed.Seconds() }

type Clock interface {
	// Now returns a monotonic time since an arbitrary fixed point.
	Now() time.Duration
}

type systemClock struct{}

func (systemClock) Now() time.Duration {
	return time.Since(startTime)
}

// SystemClock measures wall time since process start.
var SystemClock Clock = systemClock{}

const (
	// DefaultMaxFrame caps a single frame's contribution to the lag. Without
	// it a long stall would be followed by an unbounded catch up.
	DefaultMaxFrame = 250 * time.Millisecond
)

type Stepper struct {
	step     time.Duration
	maxFrame time.Duration
	previous time.Duration
	lag      time.Duration
	started  bool
}

// NewStepper returns a stepper for updates of length step. A maxFrame <= 0
// selects DefaultMaxFrame.
func NewStepper(step, maxFrame time.Duration) (*Stepper, error) {
	if step <= 0 {
		return nil, fmt.Errorf("update step must be positive, got %v", step)
	}
	if maxFrame <= 0 {
		maxFrame = DefaultMaxFrame
	}
	return &Stepper{
		step:     step,
		maxFrame: maxFrame,
	}, nil
}

// StepForRate returns the step length for rate updates per second.
func StepForRate(rate float64) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / rate)
}

// Reset starts measuring at now with an empty lag.
func (s *Stepper) Reset(now time.Duration) {
	s.previous = now
	s.lag = 0
	s.started = true
}

// Begin starts a frame at time now and adds the clamped frame duration to
// the lag. It returns the clamped duration.
func (s *Stepper) Begin(now time.Duration) time.Duration {
	if !s.started {
		s.Reset(now)
		return 0
	}
	delta := now - s.previous
	if delta < 0 {
		delta = 0
	}
	if delta > s.maxFrame {
		delta = s.maxFrame
	}
	s.previous = now
	s.lag += delta
	return delta
}

// Step reports whether another update is due and if so consumes one step
// of lag.
func (s *Stepper) Step() bool {
	if s.lag < s.step {
		return false
	}
	s.lag -= s.step
	return true
}

// Alpha is the fraction of a step that is still pending, in [0,1) once
// all due steps were taken.
func (s *Stepper) Alpha() float64 {
	return float64(s.lag) / float64(s.step)
}

func (s *Stepper) Lag() time.Duration {
	return s.lag
}

func (s *Stepper) StepDuration() time.Duration {
	return s.step
}

// SetStep changes the update length. The pending lag is kept. A step
// longer than the frame clamp would never run and is rejected.
func (s *Stepper) SetStep(step time.Duration) error {
	if step <= 0 {
		return fmt.Errorf("update step must be positive, got %v", step)
	}
	if step > s.maxFrame {
		return fmt.Errorf("update step %v is longer than the frame limit %v", step, s.maxFrame)
	}
	s.step = step
	return nil
}
