// SPDX-License-Identifier: GPL-2.0-or-later

package gametime

import "time"

// FrameCounter counts frames and updates and reports the rates once per
// interval.
type FrameCounter struct {
	interval  time.Duration
	start     time.Duration
	frames    int
	updates   int
	fps, ups  float64
	total     int
	hasReport bool
}

func NewFrameCounter(interval time.Duration) *FrameCounter {
	if interval <= 0 {
		interval = time.Second
	}
	return &FrameCounter{interval: interval, start: -1}
}

func (c *FrameCounter) Update() {
	c.updates++
}

// Frame counts a rendered frame at time now. It returns true when a new
// report is available.
func (c *FrameCounter) Frame(now time.Duration) bool {
	if c.start < 0 {
		c.start = now
	}
	c.frames++
	c.total++
	d := now - c.start
	if d < c.interval {
		return false
	}
	s := d.Seconds()
	c.fps = float64(c.frames) / s
	c.ups = float64(c.updates) / s
	c.frames, c.updates = 0, 0
	c.start = now
	c.hasReport = true
	return true
}

// Rates returns frames and updates per second of the last full interval.
func (c *FrameCounter) Rates() (fps, ups float64, ok bool) {
	return c.fps, c.ups, c.hasReport
}

// Count is the number of frames since creation.
func (c *FrameCounter) Count() int {
	return c.total
}
