// SPDX-License-Identifier: GPL-2.0-or-later

package gametime

import "time"

// Loop drives one Stepper from a Clock. Each call to Frame runs all due
// updates followed by a single draw.
type Loop struct {
	clock   Clock
	stepper *Stepper
	start   time.Duration

	// Input runs once per frame before the updates.
	Input func()
	// Update runs once per due step.
	Update func(Time) error
	// Draw runs once per frame with the interpolation factor.
	Draw func(alpha float64) error
	// Report receives the errors returned by Update and Draw. The loop
	// continues after an error.
	Report func(error)
	// Counter, if set, is fed with every frame and update.
	Counter *FrameCounter
}

func NewLoop(clock Clock, step, maxFrame time.Duration) (*Loop, error) {
	s, err := NewStepper(step, maxFrame)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock
	}
	l := &Loop{
		clock:   clock,
		stepper: s,
	}
	l.Restart()
	return l, nil
}

// Restart makes now the start of the loop.
func (l *Loop) Restart() {
	l.start = l.clock.Now()
	l.stepper.Reset(l.start)
}

// Frame runs one iteration and returns the number of updates it ran.
func (l *Loop) Frame() int {
	l.stepper.Begin(l.clock.Now())
	if l.Input != nil {
		l.Input()
	}
	n := 0
	for l.stepper.Step() {
		n++
		t := Time{
			Total:   l.clock.Now() - l.start,
			Elapsed: l.stepper.StepDuration(),
		}
		if l.Counter != nil {
			l.Counter.Update()
		}
		if l.Update != nil {
			l.report(l.Update(t))
		}
	}
	if l.Draw != nil {
		l.report(l.Draw(l.stepper.Alpha()))
	}
	if l.Counter != nil {
		l.Counter.Frame(l.clock.Now())
	}
	return n
}

func (l *Loop) report(err error) {
	if err != nil && l.Report != nil {
		l.Report(err)
	}
}

func (l *Loop) Stepper() *Stepper {
	return l.stepper
}
