// Package speaker is the system audio device as an audio.Output.
package speaker

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// DefaultSampleRate is the mixing rate used when none is given.
const DefaultSampleRate beep.SampleRate = 44100

// Speaker plays through the system audio device. The device is opened on
// first Play.
type Speaker struct {
	rate    beep.SampleRate
	once    sync.Once
	started bool
	initErr error
}

// New returns a speaker mixing at rate, or DefaultSampleRate when rate is
// zero.
func New(rate beep.SampleRate) *Speaker {
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	return &Speaker{rate: rate}
}

func (s *Speaker) SampleRate() beep.SampleRate {
	return s.rate
}

func (s *Speaker) Play(st beep.Streamer) error {
	s.once.Do(func() {
		s.initErr = speaker.Init(s.rate, s.rate.N(time.Second/10))
		s.started = s.initErr == nil
	})
	if s.initErr != nil {
		return s.initErr
	}
	speaker.Play(st)
	return nil
}

func (s *Speaker) Lock()   { speaker.Lock() }
func (s *Speaker) Unlock() { speaker.Unlock() }

// Close drops every playing voice and releases the device.
func (s *Speaker) Close() error {
	if s.started {
		speaker.Clear()
		speaker.Close()
	}
	return nil
}
