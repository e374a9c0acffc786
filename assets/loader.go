package assets

import (
	_ "embed"
	"os"
	"strings"

	"github.com/gopxl/beep"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/pincraft/audio"
)

//go:embed default.yaml
var defaultManifest []byte

// Sound names
const (
	SoundStep0   = "step0"
	SoundStep1   = "step1"
	SoundThing   = "thing"
	SoundLaunch  = "launch"
	SoundFlipper = "flipper"
	SoundBumper  = "bumper"
	SoundDie     = "die"
	SoundMusic   = "music"
)

// RequiredSounds must all be present in a manifest
var RequiredSounds = []string{
	SoundStep0, SoundStep1, SoundThing, SoundLaunch, SoundFlipper, SoundBumper, SoundDie, SoundMusic,
}

var effectSounds = map[string]audio.SFX{
	SoundThing:   audio.SFXThing,
	SoundLaunch:  audio.SFXLaunch,
	SoundFlipper: audio.SFXFlipper,
	SoundBumper:  audio.SFXBumper,
	SoundDie:     audio.SFXDie,
}

var waveNames = map[string]audio.WaveType{
	"":       audio.WaveSine,
	"sine":   audio.WaveSine,
	"square": audio.WaveSquare,
	"saw":    audio.WaveSaw,
	"noise":  audio.WaveNoise,
}

// Progress receives the completed fraction of a load, 0 to 1
type Progress func(ratio float64)

// Parse decodes a JSON or YAML manifest and validates it
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "decode manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid manifest")
	}
	return &m, nil
}

// LoadManifest reads the manifest at path, or the built-in one when path is empty
func LoadManifest(path string) (*Manifest, error) {
	data := defaultManifest
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read manifest %s", path)
		}
	}
	m, err := Parse(data)
	if err != nil && path != "" {
		return nil, errors.Wrapf(err, "manifest %s", path)
	}
	return m, err
}

// LoadSounds synthesizes every sound in m, reporting progress after each one
func LoadSounds(m *Manifest, progress Progress) (*audio.Assets, error) {
	out := &audio.Assets{Effects: make(map[audio.SFX]*beep.Buffer)}

	for i, name := range RequiredSounds {
		buf, err := renderSound(name, m.Sounds[name])
		if err != nil {
			return nil, err
		}

		switch name {
		case SoundStep0:
			out.Steps[0] = buf
		case SoundStep1:
			out.Steps[1] = buf
		case SoundMusic:
			out.Music = buf
		default:
			out.Effects[effectSounds[name]] = buf
		}

		if progress != nil {
			progress(float64(i+1) / float64(len(RequiredSounds)))
		}
	}
	return out, nil
}

func renderSound(name string, specs []ToneSpec) (*beep.Buffer, error) {
	tones := make([]audio.Tone, 0, len(specs))
	for _, s := range specs {
		wave, ok := waveNames[strings.ToLower(s.Wave)]
		if !ok {
			return nil, errors.Errorf("sound %q: unknown wave %q", name, s.Wave)
		}
		tones = append(tones, audio.Tone{
			Wave:     wave,
			Freq:     s.Freq,
			FreqEnd:  s.FreqEnd,
			Duration: s.Duration,
			Attack:   s.Attack,
			Release:  s.Release,
			Volume:   s.Volume,
			Rest:     s.Rest,
			Layer:    s.Layer,
		})
	}
	buf, err := audio.Render(tones)
	if err != nil {
		return nil, errors.Wrapf(err, "sound %q", name)
	}
	return buf, nil
}
