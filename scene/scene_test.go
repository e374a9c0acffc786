package scene

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pincraft/assets"
	"github.com/lixenwraith/pincraft/audio"
	"github.com/lixenwraith/pincraft/components"
	"github.com/lixenwraith/pincraft/config"
	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/input"
	"github.com/lixenwraith/pincraft/render"
	"github.com/lixenwraith/pincraft/vmath"
)

const (
	frameDelta  = 16 * time.Millisecond
	holdTimeout = 50 * time.Millisecond
)

type recordingSound struct {
	played []audio.SFX
	music  bool
}

func (r *recordingSound) Play(sfx audio.SFX) { r.played = append(r.played, sfx) }
func (r *recordingSound) StartMusic()        { r.music = true }
func (r *recordingSound) StopMusic()         { r.music = false }

func (r *recordingSound) count(sfx audio.SFX) int {
	n := 0
	for _, s := range r.played {
		if s == sfx {
			n++
		}
	}
	return n
}

type fixture struct {
	clock  *engine.MockTimeProvider
	in     *input.Input
	sound  *recordingSound
	hud    *render.HUD
	scene  *MainScene
	ctx    *Context
	runner *Runner
}

func newFixture(t *testing.T, level string) *fixture {
	t.Helper()
	m, err := assets.LoadManifest("")
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	lvl, err := NewLevel(level)
	if err != nil {
		t.Fatalf("NewLevel: %v", err)
	}

	f := &fixture{
		clock: engine.NewMockTimeProvider(time.Unix(5000, 0)),
		in:    input.New(holdTimeout),
		sound: &recordingSound{},
		hud:   render.NewHUD(render.FieldScore, render.FieldDeaths),
	}
	f.scene = NewMainScene(lvl, f.hud)
	f.ctx = NewContext(m, lvl.Physics(m), Deps{
		Input:  f.in,
		Sound:  f.sound,
		Clock:  f.clock,
		Layout: input.LayoutQWERTY,
	})
	if err := f.scene.Setup(f.ctx); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(60, 30)
	t.Cleanup(screen.Fini)
	f.runner = NewRunner(f.scene, render.NewRenderer(screen), f.hud)
	return f
}

// frame advances the clock one frame and runs it with keys pressed or repeated
func (f *fixture) frame(keys ...input.Key) {
	f.clock.Advance(frameDelta)
	for _, k := range keys {
		f.in.Keyboard.HandleKey(k, f.clock.Now())
	}
	f.runner.Frame()
}

func (f *fixture) start(t *testing.T) {
	t.Helper()
	f.frame(input.KeyEnter)
	if !f.scene.Started() {
		t.Fatal("Enter should dismiss the title")
	}
}

func (f *fixture) pinball() *Pinball { return f.scene.Level().(*Pinball) }
func (f *fixture) explore() *Explore { return f.scene.Level().(*Explore) }

func TestNewLevelRejectsUnknown(t *testing.T) {
	if _, err := NewLevel("moon"); err == nil {
		t.Error("Expected error for unknown level")
	}
	for _, name := range []string{config.LevelPinball, config.LevelExplore} {
		lvl, err := NewLevel(name)
		if err != nil || lvl.Name() != name {
			t.Errorf("NewLevel(%q) = %v, %v", name, lvl, err)
		}
	}
}

func TestLoadingAndTitleFlow(t *testing.T) {
	hud := render.NewHUD()
	s := NewMainScene(&Pinball{}, hud)

	s.WillLoadAssets()
	if !hud.OverlayVisible(render.OverlayLoading) {
		t.Fatal("Loading overlay should show while assets load")
	}
	s.AssetLoadProgress(.5)
	s.FinishedLoadingAssets()
	if hud.OverlayVisible(render.OverlayLoading) || !hud.OverlayVisible(render.OverlayTitle) {
		t.Error("Finished loading should swap the loading overlay for the title")
	}
}

func TestTitleWaitsForStartKey(t *testing.T) {
	f := newFixture(t, config.LevelPinball)
	f.scene.FinishedLoadingAssets()
	spawn := f.pinball().Ball().Position()

	for range 10 {
		f.frame()
	}
	if f.scene.Started() {
		t.Fatal("Scene must not start without input")
	}
	if d := vmath.V3Dist(f.pinball().Ball().Position(), spawn); d != 0 {
		t.Errorf("Physics should not run behind the title, ball moved %g", d)
	}

	f.frame(input.KeySpace)
	if !f.scene.Started() || f.hud.OverlayVisible(render.OverlayTitle) {
		t.Error("Space should start the game and hide the title")
	}
	if f.sound.count(audio.SFXLaunch) != 0 {
		t.Error("The start key must not also launch the ball")
	}
}

func TestRunnerAllocatesMeshes(t *testing.T) {
	f := newFixture(t, config.LevelPinball)
	if n := f.ctx.Batch.Len(); n != 0 {
		t.Errorf("Runner should drain the allocation batch, %d left", n)
	}
	f.runner.Draw()
	if f.runner.Frames() != 0 {
		t.Errorf("Draw must not count as a frame")
	}
}

func TestTransformSyncFollowsBody(t *testing.T) {
	f := newFixture(t, config.LevelPinball)
	f.start(t)

	ball := f.pinball().Ball()
	ball.SetWorldPosition(vmath.Vec3{X: .1, Y: .014, Z: .5})
	f.frame()

	tc, ok := engine.Get[*components.TransformComponent](f.ctx.World, ball.Entity())
	if !ok {
		t.Fatal("Ball should have a transform")
	}
	if d := vmath.V3Dist(tc.Position, ball.Position()); d > 1e-12 {
		t.Errorf("Transform %+v should match body %+v", tc.Position, ball.Position())
	}
}

func TestSmoothScoreEventuallyMatchesTarget(t *testing.T) {
	f := newFixture(t, config.LevelPinball)
	p := f.pinball()
	p.scoreSN.SetValue(250)
	for range 30 {
		f.clock.Advance(frameDelta)
		p.Update(0)
	}
	if got := f.hud.Text(render.FieldScore); got != "250" {
		t.Errorf("Expected score text 250, got %q", got)
	}
	if p.scoreSN.Value() != 250 {
		t.Errorf("Expected settled score, got %g", p.scoreSN.Value())
	}
}
