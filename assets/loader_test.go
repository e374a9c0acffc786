package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/pincraft/audio"
)

func TestBuiltInManifestIsValid(t *testing.T) {
	m, err := LoadManifest("")
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.Pinball.Bumpers) != 6 {
		t.Errorf("Expected 6 bumpers, got %d", len(m.Pinball.Bumpers))
	}
	if m.Pinball.Bumpers[0].Points != 1000 || m.Pinball.Bumpers[0].Radius != .043 {
		t.Errorf("Unexpected first bumper %+v", m.Pinball.Bumpers[0])
	}
	if m.Pinball.ScoreEasing.Milliseconds() != 300 {
		t.Errorf("Expected 300ms score easing, got %v", m.Pinball.ScoreEasing)
	}
	if !m.Pinball.Lane.Contains(-.26, .03) {
		t.Error("Ball spawn should be inside the launch lane")
	}
}

func TestParseAcceptsJSON(t *testing.T) {
	// JSON is a YAML subset, a JSON manifest must decode the same way
	sounds := `{"step0":[{"duration":"10ms"}],"step1":[{"duration":"10ms"}],"thing":[{"duration":"10ms"}],` +
		`"launch":[{"duration":"10ms"}],"flipper":[{"duration":"10ms"}],"bumper":[{"duration":"10ms"}],` +
		`"die":[{"duration":"10ms"}],"music":[{"duration":"10ms"}]}`
	doc := `{"pinball":{"walls":[[[0,0],[1,0]]],"wall_radius":0.01,` +
		`"paddles":[{"side":"left"},{"side":"right"}]},` +
		`"explore":{"room":[[0,0],[1,0],[1,1]],"wall_radius":0.1,"exit":{"radius":1}},` +
		`"sounds":` + sounds + `}`

	parsed, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse JSON: %v", err)
	}
	if len(parsed.Pinball.Walls) != 1 || parsed.Explore.Exit.Radius != 1 {
		t.Errorf("JSON manifest decoded incorrectly: %+v", parsed)
	}
}

func TestValidateReportsMissingSound(t *testing.T) {
	m, err := LoadManifest("")
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	delete(m.Sounds, SoundDie)

	err = m.Validate()
	if err == nil || !strings.Contains(err.Error(), "die") {
		t.Errorf("Expected missing die sound error, got %v", err)
	}
}

func TestValidateRejectsBadColour(t *testing.T) {
	m, _ := LoadManifest("")
	m.Pinball.Bumpers[2].Colour = "orange"
	if err := m.Validate(); err == nil {
		t.Error("Expected error for non-hex colour")
	}
}

func TestLoadManifestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("pinball: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadManifest(path)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Errorf("Expected error naming %s, got %v", path, err)
	}

	if _, err := LoadManifest(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadSoundsReportsProgress(t *testing.T) {
	m, err := LoadManifest("")
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	var ratios []float64
	snd, err := LoadSounds(m, func(r float64) { ratios = append(ratios, r) })
	if err != nil {
		t.Fatalf("LoadSounds: %v", err)
	}

	if len(ratios) != len(RequiredSounds) || ratios[len(ratios)-1] != 1 {
		t.Errorf("Expected %d progress reports ending at 1, got %v", len(RequiredSounds), ratios)
	}
	for i := 1; i < len(ratios); i++ {
		if ratios[i] <= ratios[i-1] {
			t.Errorf("Progress must increase: %v", ratios)
		}
	}

	if snd.Steps[0] == nil || snd.Steps[1] == nil || snd.Music == nil {
		t.Error("Steps and music must be loaded")
	}
	for _, sfx := range []audio.SFX{audio.SFXThing, audio.SFXLaunch, audio.SFXFlipper, audio.SFXBumper, audio.SFXDie} {
		if snd.Effects[sfx] == nil {
			t.Errorf("Effect %d missing", sfx)
		}
	}
}

func TestLoadSoundsRejectsUnknownWave(t *testing.T) {
	m, _ := LoadManifest("")
	m.Sounds[SoundThing] = []ToneSpec{{Wave: "theremin", Duration: 10}}
	if _, err := LoadSounds(m, nil); err == nil {
		t.Error("Expected error for unknown wave")
	}
}
