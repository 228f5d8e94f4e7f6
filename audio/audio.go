// SPDX-License-Identifier: GPL-2.0-or-later

// Package audio plays WAV sounds through the system speaker.
package audio

import (
	"io"
	"math"
	"time"

	"goengine/conlog"
	"goengine/filesystem"
	emath "goengine/math"

	"github.com/google/uuid"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/pkg/errors"
)

const (
	SampleRate = beep.SampleRate(44100)
	// resampling quality, see beep.Resample
	resampleQuality = 4
)

// Sound is a fully decoded sound at the system sample rate.
type Sound struct {
	id     uuid.UUID
	name   string
	buffer *beep.Buffer
}

func (s *Sound) ID() uuid.UUID {
	return s.id
}

func (s *Sound) Name() string {
	return s.name
}

// Duration is the play time of the sound.
func (s *Sound) Duration() time.Duration {
	return s.buffer.Format().SampleRate.D(s.buffer.Len())
}

// Decode reads a WAV stream and converts it to the sample rate sr.
func Decode(name string, r io.Reader, sr beep.SampleRate) (*Sound, error) {
	st, format, err := wav.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", name)
	}
	defer st.Close()
	var src beep.Streamer = st
	if format.SampleRate != sr {
		src = beep.Resample(resampleQuality, format.SampleRate, sr, st)
		format.SampleRate = sr
	}
	buf := beep.NewBuffer(format)
	buf.Append(src)
	if err := st.Err(); err != nil {
		return nil, errors.Wrapf(err, "decode %s", name)
	}
	return &Sound{
		id:     uuid.Must(uuid.NewV7()),
		name:   name,
		buffer: buf,
	}, nil
}

// System owns the speaker. A nil *System is a valid, silent system.
type System struct {
	sampleRate beep.SampleRate
	master     float64
	suspended  bool
}

// Init opens the speaker.
func Init(volume float32) (*System, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/30)); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}
	s := &System{
		sampleRate: SampleRate,
		master:     emath.Clamp(0, float64(volume), 1),
	}
	return s, nil
}

// Load decodes the WAV file name.
func (s *System) Load(name string) (*Sound, error) {
	f, err := filesystem.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sr := SampleRate
	if s != nil {
		sr = s.sampleRate
	}
	return Decode(name, f, sr)
}

// mastered applies the master volume, read under the speaker lock.
type mastered struct {
	s      beep.Streamer
	system *System
}

func (m *mastered) Stream(samples [][2]float64) (int, bool) {
	n, ok := m.s.Stream(samples)
	g := m.system.master
	for i := range samples[:n] {
		samples[i][0] *= g
		samples[i][1] *= g
	}
	return n, ok
}

func (m *mastered) Err() error {
	return m.s.Err()
}

// volumeEffect scales linearly, 0 is silent.
func volumeEffect(s beep.Streamer, volume float32) *effects.Volume {
	v := float64(volume)
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   math.Log2(max(v, 1e-6)),
		Silent:   v <= 0,
	}
}

// Play starts snd at volume 0..1.
func (s *System) Play(snd *Sound, volume float32) {
	if s == nil || snd == nil {
		return
	}
	st := snd.buffer.Streamer(0, snd.buffer.Len())
	speaker.Play(&mastered{
		s:      volumeEffect(st, volume),
		system: s,
	})
}

func (s *System) StopAll() {
	if s == nil {
		return
	}
	speaker.Clear()
}

// SetVolume changes the master volume of all playing and future sounds.
func (s *System) SetVolume(v float32) {
	if s == nil {
		return
	}
	speaker.Lock()
	s.master = emath.Clamp(0, float64(v), 1)
	speaker.Unlock()
}

// Suspend pauses the output, e.g. while the window has no focus.
func (s *System) Suspend() {
	if s == nil || s.suspended {
		return
	}
	if err := speaker.Suspend(); err != nil {
		conlog.Printf("audio suspend: %v\n", err)
		return
	}
	s.suspended = true
}

func (s *System) Resume() {
	if s == nil || !s.suspended {
		return
	}
	if err := speaker.Resume(); err != nil {
		conlog.Printf("audio resume: %v\n", err)
		return
	}
	s.suspended = false
}

func (s *System) Shutdown() {
	if s == nil {
		return
	}
	speaker.Clear()
	speaker.Close()
}
