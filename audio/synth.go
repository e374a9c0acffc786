package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/pkg/errors"
)

// SampleRate is the output rate of every synthesized buffer
const SampleRate = beep.SampleRate(44100)

// Format is the buffer format shared by all sounds
var Format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// Tone is one note of a synthesized sound
// Notes with Rest set produce silence for Duration
type Tone struct {
	Wave     WaveType
	Freq     float64
	FreqEnd  float64 // 0 keeps Freq
	Duration time.Duration
	Attack   time.Duration
	Release  time.Duration
	Volume   float64
	Rest     bool
	Layer    bool // mixed with the previous note instead of following it
}

func (t Tone) endFreq() float64 {
	if t.FreqEnd == 0 {
		return t.Freq
	}
	return t.FreqEnd
}

// Render synthesizes a sequence of tones into a buffer
func Render(tones []Tone) (*beep.Buffer, error) {
	if len(tones) == 0 {
		return nil, errors.New("sound has no tones")
	}

	var parts []beep.Streamer
	for i, t := range tones {
		if t.Duration <= 0 {
			return nil, errors.Errorf("tone %d has non-positive duration %v", i, t.Duration)
		}

		var s beep.Streamer
		if t.Rest {
			s = beep.Silence(SampleRate.N(t.Duration))
		} else {
			src, err := t.source()
			if err != nil {
				return nil, errors.Wrapf(err, "tone %d", i)
			}
			s = newVolume(&shaped{Streamer: src, gain: t.envelope()}, t.Volume)
		}

		if t.Layer && len(parts) > 0 {
			parts[len(parts)-1] = beep.Mix(parts[len(parts)-1], s)
			continue
		}
		parts = append(parts, s)
	}

	buf := beep.NewBuffer(Format)
	buf.Append(beep.Seq(parts...))
	if buf.Len() == 0 {
		return nil, errors.New("sound rendered to an empty buffer")
	}
	return buf, nil
}
