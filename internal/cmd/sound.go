package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gefkit/platform/audio"
)

// Sound plays an audio file through the audio manager.
type Sound struct {
	File         string  `arg:"" help:"WAV or MP3 file to play" type:"existingfile"`
	Music        bool    `help:"Stream the file as the music track instead of loading a sample"`
	Volume       float64 `help:"Voice volume, 0..100" default:"100"`
	MasterVolume float64 `help:"Master volume, 0..100" default:"100"`
	Pitch        float64 `help:"Playback speed factor" default:"1"`
	Loop         bool    `help:"Loop until interrupted"`
}

// Run is called by Kong when the sound command is executed.
func (s *Sound) Run(logger *slog.Logger, drv *Drivers) error {
	if drv.Audio == nil {
		return errors.New("no audio output available")
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := audio.NewManager(drv.Audio(), logger)
	defer m.Close()
	m.SetMasterVolume(s.MasterVolume)

	playing, err := s.start(m)
	if err != nil {
		return err
	}
	logger.Info("Playing", "file", s.File, "music", s.Music, "loop", s.Loop)
	return waitWhile(ctx, playing, 50*time.Millisecond)
}

// start loads and starts the file, returning a probe that reports whether
// it is still playing.
func (s *Sound) start(m *audio.Manager) (func() bool, error) {
	if s.Music {
		if err := m.LoadMusic(s.File); err != nil {
			return nil, err
		}
		m.SetMusicLoop(s.Loop)
		if err := m.SetMusicVolume(s.Volume); err != nil {
			return nil, err
		}
		if err := m.SetMusicPitch(s.Pitch); err != nil {
			return nil, err
		}
		return m.MusicPlaying, m.PlayMusic()
	}

	slot, err := m.LoadSample(s.File)
	if err != nil {
		return nil, err
	}
	if err := m.SetSampleVolume(slot, s.Volume); err != nil {
		return nil, err
	}
	if err := m.SetSamplePitch(slot, s.Pitch); err != nil {
		return nil, err
	}
	if _, err := m.PlaySample(slot, s.Loop); err != nil {
		return nil, err
	}
	return func() bool { return m.SamplePlaying(slot) }, nil
}

func waitWhile(ctx context.Context, cond func() bool, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for cond() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}
