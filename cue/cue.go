// Package cue plays a short sound when a search ends: a rising chirp when
// the target is found and a low buzz when it is unreachable.
package cue

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/katalvlaran/gridflood/flood"
	"github.com/katalvlaran/gridflood/gridgeom"
)

// SampleRate of every cue.
const SampleRate = beep.SampleRate(44100)

// Cue lengths.
const (
	FoundLength       = 250 * time.Millisecond
	UnreachableLength = 200 * time.Millisecond
)

// ErrNoCue is returned by Tone for states without a sound.
var ErrNoCue = errors.New("cue: no sound for state")

// Tone builds the finite streamer for a terminal state.
func Tone(s flood.State) (beep.Streamer, error) {
	switch s {
	case flood.Found:
		return beep.Take(SampleRate.N(FoundLength), newChirp(SampleRate, 440, 880, FoundLength)), nil
	case flood.Unreachable:
		sine, err := generators.SineTone(SampleRate, 110)
		if err != nil {
			return nil, fmt.Errorf("cue: %w", err)
		}
		quiet := &effects.Gain{Streamer: sine, Gain: -0.7}
		return beep.Take(SampleRate.N(UnreachableLength), quiet), nil
	default:
		return nil, fmt.Errorf("%w %s", ErrNoCue, s)
	}
}

// chirp sweeps linearly from one frequency to another under a decaying
// envelope.
type chirp struct {
	sr       beep.SampleRate
	pos      int
	samples  int
	from, to float64
	phase    float64
}

func newChirp(sr beep.SampleRate, from, to float64, d time.Duration) *chirp {
	return &chirp{sr: sr, samples: sr.N(d), from: from, to: to}
}

func (c *chirp) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		p := float64(c.pos) / float64(c.samples)
		if p > 1 {
			p = 1
		}
		freq := c.from + (c.to-c.from)*p
		c.phase += 2 * math.Pi * freq / float64(c.sr)
		v := 0.4 * (1 - p) * math.Sin(c.phase)
		samples[i] = [2]float64{v, v}
		c.pos++
	}
	return len(samples), true
}

func (c *chirp) Err() error { return nil }

// Speaker plays cues on the default audio device. The zero value is not
// usable; build one with NewSpeaker.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSpeaker() *Speaker {
	return &Speaker{mixer: &beep.Mixer{}}
}

// Init opens the audio device once. Later calls are no-ops.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("cue: speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play queues the cue for st. It does nothing before Init or for states
// without a cue.
func (s *Speaker) Play(st flood.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	tone, err := Tone(st)
	if err != nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(tone)
	speaker.Unlock()
}

// Option returns an engine hook that plays the cue of every finished run.
func (s *Speaker) Option() flood.Option {
	return flood.WithOnFinish(func(st flood.State, _ []gridgeom.Cell) { s.Play(st) })
}

// Close silences pending cues.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Clear()
	s.mixer.Clear()
	s.initialized = false
}
