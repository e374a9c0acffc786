package audio

import (
	"math"
	"math/rand"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/pkg/errors"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// sample evaluates one period of the wave at phase in [0,1)
func (w WaveType) sample(phase float64, rng *rand.Rand) float64 {
	switch w {
	case WaveSquare:
		if phase < .5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2*phase - 1
	case WaveNoise:
		return rng.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// sweep plays a finite wave gliding linearly from the tone's start to end pitch
type sweep struct {
	wave       WaveType
	from, to   float64
	phase      float64
	pos, total int
	rng        *rand.Rand
}

func newSweep(t Tone) *sweep {
	total := SampleRate.N(t.Duration)
	return &sweep{
		wave:  t.Wave,
		from:  t.Freq,
		to:    t.endFreq(),
		total: total,
		// Seeded per tone so rendering is reproducible
		rng: rand.New(rand.NewSource(int64(t.Freq) ^ int64(total))),
	}
}

func (s *sweep) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		v := s.wave.sample(s.phase, s.rng)
		samples[i] = [2]float64{v, v}

		f := s.from + (s.to-s.from)*float64(s.pos)/float64(s.total)
		s.phase = math.Mod(s.phase+f/float64(SampleRate), 1)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// source returns the raw wave for t
// Steady pitched tones come from beep's generators, glides and noise from sweep
func (t Tone) source() (beep.Streamer, error) {
	if t.Wave == WaveNoise || t.endFreq() != t.Freq {
		return newSweep(t), nil
	}

	var (
		gen beep.Streamer
		err error
	)
	switch t.Wave {
	case WaveSine:
		gen, err = generators.SineTone(SampleRate, t.Freq)
	case WaveSquare:
		gen, err = generators.SquareTone(SampleRate, t.Freq)
	case WaveSaw:
		gen, err = generators.SawtoothTone(SampleRate, t.Freq)
	default:
		return nil, errors.Errorf("unknown wave %d", t.Wave)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%g Hz tone", t.Freq)
	}
	return beep.Take(SampleRate.N(t.Duration), gen), nil
}

// shaped multiplies a stream by a per-sample gain curve
type shaped struct {
	beep.Streamer
	gain func(pos int) float64
	pos  int
}

func (s *shaped) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.Streamer.Stream(samples)
	for i := range samples[:n] {
		g := s.gain(s.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		s.pos++
	}
	return n, ok
}

// envelope ramps linearly in over Attack and out over Release
func (t Tone) envelope() func(pos int) float64 {
	total := SampleRate.N(t.Duration)
	attack := SampleRate.N(t.Attack)
	release := SampleRate.N(t.Release)
	return func(pos int) float64 {
		g := 1.0
		if attack > 0 && pos < attack {
			g = float64(pos) / float64(attack)
		}
		if left := total - pos; release > 0 && left < release {
			g = min(g, max(float64(left)/float64(release), 0))
		}
		return g
	}
}

// newVolume scales a stream linearly; log2(0) is -Inf so zero is silenced
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
