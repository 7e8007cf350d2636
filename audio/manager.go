// Package audio is a small sound façade: numbered sample slots held in
// memory and one streamed music track, mixed through beep.
package audio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"
)

// MaxVolume is full volume. Volumes run from 0 to MaxVolume.
const MaxVolume = 100.0

var (
	ErrInvalidSlot   = errors.New("invalid sample slot")
	ErrNoMusic       = errors.New("no music loaded")
	ErrUnknownFormat = errors.New("unsupported audio format")
	ErrInvalidPitch  = errors.New("pitch must be positive")
)

// Manager owns the loaded samples and the music track.
type Manager struct {
	out    Output
	logger *slog.Logger

	mu      sync.Mutex
	samples []*voice
	music   *voice
	// musicLoop survives reloading the track.
	musicLoop bool
	master    float64
}

// NewManager returns a manager playing through out.
func NewManager(out Output, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{out: out, logger: logger, musicLoop: true, master: MaxVolume}
}

// LoadSample decodes a WAV or MP3 file fully into memory and returns its
// slot. On failure it logs and returns -1.
func (m *Manager) LoadSample(path string) (int, error) {
	stream, format, err := decodeFile(path)
	if err != nil {
		m.logger.Error("Failed to load sample", "path", path, "error", err)
		return -1, err
	}
	buf := beep.NewBuffer(format)
	buf.Append(stream)
	_ = stream.Close()

	v := newVoice(buf.Streamer(0, buf.Len()), format, m.out.SampleRate())
	m.mu.Lock()
	defer m.mu.Unlock()
	v.applyGain(m.master)
	if err := m.out.Play(v.streamer()); err != nil {
		m.logger.Error("Failed to start sample voice", "path", path, "error", err)
		return -1, err
	}
	m.samples = append(m.samples, v)
	idx := len(m.samples) - 1
	m.logger.Debug("Sample loaded", "path", path, "slot", idx, "frames", buf.Len(), "rate", int(format.SampleRate))
	return idx, nil
}

func (m *Manager) sample(i int) (*voice, error) {
	if i < 0 || i >= len(m.samples) || m.samples[i] == nil {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlot, i)
	}
	return m.samples[i], nil
}

// PlaySample starts slot i from the beginning and returns i.
func (m *Manager) PlaySample(i int, loop bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, err := m.sample(i)
	if err != nil {
		return -1, err
	}
	m.out.Lock()
	v.play(loop)
	m.out.Unlock()
	return i, nil
}

func (m *Manager) StopSample(i int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, err := m.sample(i)
	if err != nil {
		return err
	}
	m.out.Lock()
	v.stop()
	m.out.Unlock()
	return nil
}

// SamplePlaying reports whether slot i is currently playing. Invalid slots
// are never playing.
func (m *Manager) SamplePlaying(i int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, err := m.sample(i)
	if err != nil {
		return false
	}
	m.out.Lock()
	defer m.out.Unlock()
	return v.player.playing
}

func (m *Manager) SampleLooping(i int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, err := m.sample(i)
	if err != nil {
		return false
	}
	m.out.Lock()
	defer m.out.Unlock()
	return v.player.loop
}

// SetSamplePitch changes the playback speed of slot i; 1 is unchanged.
func (m *Manager) SetSamplePitch(i int, pitch float64) error {
	if pitch <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPitch, pitch)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, err := m.sample(i)
	if err != nil {
		return err
	}
	m.out.Lock()
	v.setPitch(pitch)
	m.out.Unlock()
	return nil
}

// SampleVolume returns the volume of slot i, or -1 with an error.
func (m *Manager) SampleVolume(i int) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, err := m.sample(i)
	if err != nil {
		return -1, err
	}
	return v.volume, nil
}

// SetSampleVolume sets slot i's volume, clamped to 0..MaxVolume.
func (m *Manager) SetSampleVolume(i int, volume float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, err := m.sample(i)
	if err != nil {
		return err
	}
	m.out.Lock()
	v.volume = clampVolume(volume)
	v.applyGain(m.master)
	m.out.Unlock()
	return nil
}

// UnloadSample frees slot i. Other slots keep their indices.
func (m *Manager) UnloadSample(i int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, err := m.sample(i)
	if err != nil {
		return
	}
	m.out.Lock()
	_ = v.release()
	m.out.Unlock()
	m.samples[i] = nil
}

// UnloadAllSamples frees every slot; the next load starts at slot 0.
func (m *Manager) UnloadAllSamples() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.out.Lock()
	for _, v := range m.samples {
		if v != nil {
			_ = v.release()
		}
	}
	m.out.Unlock()
	m.samples = nil
}

// LoadMusic opens path as the music track, replacing any previous one.
// The file is streamed, not decoded up front.
func (m *Manager) LoadMusic(path string) error {
	m.UnloadMusic()

	stream, format, err := decodeFile(path)
	if err != nil {
		m.logger.Error("Failed to load music", "path", path, "error", err)
		return err
	}
	v := newVoice(stream, format, m.out.SampleRate())
	v.closer = stream.Close

	m.mu.Lock()
	defer m.mu.Unlock()
	v.player.loop = m.musicLoop
	v.applyGain(m.master)
	if err := m.out.Play(v.streamer()); err != nil {
		_ = stream.Close()
		m.logger.Error("Failed to start music voice", "path", path, "error", err)
		return err
	}
	m.music = v
	m.logger.Debug("Music loaded", "path", path, "frames", stream.Len(), "rate", int(format.SampleRate))
	return nil
}

func (m *Manager) withMusic(fn func(v *voice)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.music == nil {
		return ErrNoMusic
	}
	m.out.Lock()
	fn(m.music)
	m.out.Unlock()
	return nil
}

// PlayMusic starts the track from the beginning.
func (m *Manager) PlayMusic() error {
	return m.withMusic(func(v *voice) { v.play(v.player.loop) })
}

func (m *Manager) StopMusic() error {
	return m.withMusic(func(v *voice) { v.stop() })
}

func (m *Manager) MusicPlaying() bool {
	playing := false
	_ = m.withMusic(func(v *voice) { playing = v.player.playing })
	return playing
}

func (m *Manager) SetMusicPitch(pitch float64) error {
	if pitch <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPitch, pitch)
	}
	return m.withMusic(func(v *voice) { v.setPitch(pitch) })
}

// MusicVolume returns the track volume, or -1 with ErrNoMusic.
func (m *Manager) MusicVolume() (float64, error) {
	volume := -1.0
	err := m.withMusic(func(v *voice) { volume = v.volume })
	return volume, err
}

func (m *Manager) SetMusicVolume(volume float64) error {
	return m.withMusic(func(v *voice) {
		v.volume = clampVolume(volume)
		v.applyGain(m.master)
	})
}

// SetMusicLoop sets whether the track restarts when it ends. Music loops
// by default and the setting carries over to the next loaded track.
func (m *Manager) SetMusicLoop(loop bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.musicLoop = loop
	if m.music != nil {
		m.out.Lock()
		m.music.player.loop = loop
		m.out.Unlock()
	}
}

func (m *Manager) MusicLoop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.musicLoop
}

// UnloadMusic stops and closes the track, if any.
func (m *Manager) UnloadMusic() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.music == nil {
		return
	}
	m.out.Lock()
	err := m.music.release()
	m.out.Unlock()
	if err != nil {
		m.logger.Warn("Failed to close music stream", "error", err)
	}
	m.music = nil
}

// SetMasterVolume scales every voice, 0..MaxVolume.
func (m *Manager) SetMasterVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.master = clampVolume(volume)
	m.out.Lock()
	for _, v := range m.samples {
		if v != nil {
			v.applyGain(m.master)
		}
	}
	if m.music != nil {
		m.music.applyGain(m.master)
	}
	m.out.Unlock()
}

func (m *Manager) MasterVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.master
}

// Close unloads everything and releases the output.
func (m *Manager) Close() error {
	m.UnloadMusic()
	m.UnloadAllSamples()
	return m.out.Close()
}

func clampVolume(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > MaxVolume:
		return MaxVolume
	}
	return v
}

// decodeFile opens path and picks a decoder by file extension. The
// returned stream owns the file.
func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	var decode func(io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		decode = func(rc io.ReadCloser) (beep.StreamSeekCloser, beep.Format, error) {
			return wav.Decode(rc)
		}
	case ".mp3":
		decode = mp3.Decode
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	stream, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return stream, format, nil
}
