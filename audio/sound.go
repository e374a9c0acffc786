package audio

import (
	"github.com/gopxl/beep"
)

// SFX names a one-shot sound effect
type SFX int

const (
	SFXFootStep SFX = iota
	SFXThing
	SFXLaunch
	SFXFlipper
	SFXBumper
	SFXDie
)

// Channel is a logical output holding at most one active source
type Channel int

const (
	ChannelStep Channel = iota
	ChannelEffect
	ChannelMusic

	channelCount
)

const musicGain = 0.60

// Assets holds the decoded buffers for every sound
type Assets struct {
	Steps   [2]*beep.Buffer
	Effects map[SFX]*beep.Buffer
	Music   *beep.Buffer
}

// Sound plays effects and music, one source per channel
// Called from the frame loop only; the device lock covers state read by the playback goroutine
type Sound struct {
	dev    Device
	assets *Assets

	sources    [channelCount]*beep.Ctrl
	stepToggle int
}

// NewSound creates a sound player over dev
func NewSound(dev Device, assets *Assets) *Sound {
	return &Sound{dev: dev, assets: assets}
}

// Play starts sfx, stopping whatever its channel was playing
func (s *Sound) Play(sfx SFX) {
	var buf *beep.Buffer
	ch := ChannelEffect

	if sfx == SFXFootStep {
		buf = s.assets.Steps[s.stepToggle]
		ch = ChannelStep
		s.stepToggle ^= 1
	} else {
		buf = s.assets.Effects[sfx]
	}
	if buf == nil {
		return
	}

	s.start(ch, buf.Streamer(0, buf.Len()), 1)
}

// StartMusic starts the looping music track if it is not already playing
func (s *Sound) StartMusic() {
	if s.sources[ChannelMusic] != nil || s.assets.Music == nil {
		return
	}
	music := s.assets.Music
	loop := beep.Iterate(func() beep.Streamer {
		return music.Streamer(0, music.Len())
	})
	s.start(ChannelMusic, loop, musicGain)
}

// StopMusic stops the music track
func (s *Sound) StopMusic() {
	s.Stop(ChannelMusic)
}

// Stop silences a channel
func (s *Sound) Stop(ch Channel) {
	src := s.sources[ch]
	if src == nil {
		return
	}
	s.dev.Lock()
	// A nil streamer drains the Ctrl, the mixer then drops it
	src.Streamer = nil
	s.dev.Unlock()
	s.sources[ch] = nil
}

// Active returns the source playing on ch, nil when idle
func (s *Sound) Active(ch Channel) *beep.Ctrl {
	return s.sources[ch]
}

func (s *Sound) start(ch Channel, stream beep.Streamer, volume float64) {
	s.Stop(ch)
	ctrl := &beep.Ctrl{Streamer: newVolume(stream, volume)}
	s.sources[ch] = ctrl
	s.dev.Play(ctrl)
}
