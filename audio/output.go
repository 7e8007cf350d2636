package audio

import "github.com/gopxl/beep/v2"

// Output is where a Manager sends its voices. Lock and Unlock guard state
// shared with the playback goroutine.
type Output interface {
	SampleRate() beep.SampleRate
	Play(s beep.Streamer) error
	Lock()
	Unlock()
	Close() error
}
