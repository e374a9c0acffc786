package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

// Device plays streamers; Lock guards streamer state shared with the playback goroutine
type Device interface {
	Play(s beep.Streamer)
	Lock()
	Unlock()
}

// SpeakerDevice plays through the system speaker
type SpeakerDevice struct{}

// OpenSpeaker initializes the speaker at SampleRate
func OpenSpeaker() (*SpeakerDevice, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, errors.Wrap(err, "init speaker")
	}
	return &SpeakerDevice{}, nil
}

func (d *SpeakerDevice) Play(s beep.Streamer) { speaker.Play(s) }
func (d *SpeakerDevice) Lock()                { speaker.Lock() }
func (d *SpeakerDevice) Unlock()              { speaker.Unlock() }

// Close stops everything still playing
func (d *SpeakerDevice) Close() { speaker.Clear() }

// NullDevice discards all sound, used when muted or without an audio device
type NullDevice struct{}

func (NullDevice) Play(beep.Streamer) {}
func (NullDevice) Lock()              {}
func (NullDevice) Unlock()            {}
