package audio

import (
	"math"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

const resampleQuality = 4

// player streams a seekable source on demand. It emits silence while
// stopped so the voice stays in the output mix until it is released.
type player struct {
	src      beep.StreamSeeker
	playing  bool
	loop     bool
	released bool
}

func (p *player) Stream(samples [][2]float64) (int, bool) {
	if p.released {
		return 0, false
	}
	filled := 0
	rewound := false
	for filled < len(samples) && p.playing {
		n, ok := p.src.Stream(samples[filled:])
		filled += n
		if n > 0 {
			rewound = false
		}
		if ok && n > 0 {
			continue
		}
		if p.loop && !rewound && p.src.Err() == nil {
			_ = p.src.Seek(0)
			rewound = true
			continue
		}
		p.playing = false
		_ = p.src.Seek(0)
	}
	for i := filled; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	return len(samples), true
}

func (p *player) Err() error {
	return p.src.Err()
}

// voice is one playable sound: a player resampled to the output rate with
// pitch and gain applied.
type voice struct {
	player    *player
	resampler *beep.Resampler
	gain      *effects.Volume
	baseRatio float64

	volume float64
	pitch  float64
	closer func() error
}

func newVoice(src beep.StreamSeeker, format beep.Format, outRate beep.SampleRate) *voice {
	p := &player{src: src}
	r := beep.Resample(resampleQuality, format.SampleRate, outRate, p)
	return &voice{
		player:    p,
		resampler: r,
		gain:      &effects.Volume{Streamer: r, Base: 2},
		baseRatio: float64(format.SampleRate) / float64(outRate),
		volume:    MaxVolume,
		pitch:     1,
	}
}

func (v *voice) streamer() beep.Streamer {
	return v.gain
}

func (v *voice) play(loop bool) {
	v.player.loop = loop
	_ = v.player.src.Seek(0)
	v.player.playing = true
}

func (v *voice) stop() {
	v.player.playing = false
	_ = v.player.src.Seek(0)
}

func (v *voice) setPitch(pitch float64) {
	v.pitch = pitch
	v.resampler.SetRatio(v.baseRatio * pitch)
}

// applyGain sets the effective gain from the voice volume and the master
// volume, both in 0..100.
func (v *voice) applyGain(master float64) {
	g := v.volume / MaxVolume * master / MaxVolume
	if g <= 0 {
		v.gain.Silent = true
		v.gain.Volume = 0
		return
	}
	v.gain.Silent = false
	v.gain.Volume = math.Log2(g)
}

func (v *voice) release() error {
	v.player.released = true
	v.player.playing = false
	if v.closer != nil {
		return v.closer()
	}
	return nil
}
