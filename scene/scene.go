package scene

import (
	"log"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/pincraft/assets"
	"github.com/lixenwraith/pincraft/audio"
	"github.com/lixenwraith/pincraft/components"
	"github.com/lixenwraith/pincraft/config"
	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/entities"
	"github.com/lixenwraith/pincraft/input"
	"github.com/lixenwraith/pincraft/physics"
	"github.com/lixenwraith/pincraft/render"
	"github.com/lixenwraith/pincraft/vmath"
)

// Display is the host surface for text fields and overlays
type Display interface {
	SetText(field, text string)
	ShowOverlay(o render.Overlay, show bool)
	SetLoadProgress(ratio float64)
}

// SoundPlayer plays effects and music
type SoundPlayer interface {
	Play(sfx audio.SFX)
	StartMusic()
	StopMusic()
}

// Updater is per-frame logic registered with the scene at construction
type Updater interface {
	Update(dt time.Duration)
}

// Level is one playable variant of the main scene
type Level interface {
	Name() string
	Physics(m *assets.Manifest) assets.PhysicsSpec
	Setup(ctx *Context) error
	Begin()
	Update(dt time.Duration)
}

// NewLevel returns the level registered under name
func NewLevel(name string) (Level, error) {
	switch name {
	case config.LevelPinball:
		return &Pinball{}, nil
	case config.LevelExplore:
		return &Explore{}, nil
	}
	return nil, errors.Errorf("unknown level %q", name)
}

// Deps are the host services a scene runs on
type Deps struct {
	Input  *input.Input
	Sound  SoundPlayer
	Clock  engine.Clock
	Layout input.KeyboardLayout
}

// Context carries the worlds and services every level builds on
type Context struct {
	Manifest *assets.Manifest

	World   *engine.World
	Physics *physics.World
	Batch   *entities.AllocationBatch
	Builder *entities.Builder
	Camera  *components.CameraComponent

	State     *engine.GameState
	Scheduler *engine.Scheduler
	Clock     engine.Clock

	Input   *input.Input
	Layout  input.KeyboardLayout
	Sound   SoundPlayer
	Display Display

	updaters []Updater
}

// AddUpdater registers per-frame logic, run after the level update in registration order
func (c *Context) AddUpdater(u Updater) {
	c.updaters = append(c.updaters, u)
}

// NewContext creates empty worlds with the level's physics settings
func NewContext(m *assets.Manifest, spec assets.PhysicsSpec, d Deps) *Context {
	sched := engine.NewScheduler(d.Clock)
	world := engine.NewWorld()
	phys := physics.NewWorld(physicsConfig(spec))
	batch := &entities.AllocationBatch{}

	return &Context{
		Manifest:  m,
		World:     world,
		Physics:   phys,
		Batch:     batch,
		Builder:   &entities.Builder{World: world, Physics: phys, Batch: batch},
		Camera:    &components.CameraComponent{Up: vmath.AxisZ, Target: vmath.AxisZ, Extent: 1},
		State:     engine.NewGameState(sched),
		Scheduler: sched,
		Clock:     d.Clock,
		Input:     d.Input,
		Layout:    d.Layout,
		Sound:     d.Sound,
	}
}

func physicsConfig(s assets.PhysicsSpec) physics.Config {
	cfg := physics.DefaultConfig()
	if s.Gravity != (assets.XYZ{}) {
		cfg.Gravity = s.Gravity.Vec()
	}
	if s.FixedStep > 0 {
		cfg.FixedStep = s.FixedStep
	}
	if s.Iterations > 0 {
		cfg.Iterations = s.Iterations
	}
	return cfg
}

// MainScene owns one level and the loading and title flow around it
type MainScene struct {
	level   Level
	display Display
	ctx     *Context
	started bool
}

// NewMainScene creates the scene for level, drawing overlays on display
func NewMainScene(level Level, display Display) *MainScene {
	return &MainScene{level: level, display: display}
}

// WillLoadAssets shows the loading overlay
func (s *MainScene) WillLoadAssets() {
	s.display.ShowOverlay(render.OverlayLoading, true)
	s.display.SetLoadProgress(0)
}

// AssetLoadProgress moves the loading bar
func (s *MainScene) AssetLoadProgress(ratio float64) {
	s.display.SetLoadProgress(ratio)
}

// FinishedLoadingAssets swaps the loading overlay for the title
func (s *MainScene) FinishedLoadingAssets() {
	s.display.ShowOverlay(render.OverlayLoading, false)
	s.display.ShowOverlay(render.OverlayTitle, true)
}

// GameStateChanged is the scene's own listener; the level reacts through its parts
func (s *MainScene) GameStateChanged(gs *engine.GameState) {
	if gs.Ending() {
		s.display.ShowOverlay(render.OverlayEnding, true)
	}
}

// Setup builds the level into ctx
func (s *MainScene) Setup(ctx *Context) error {
	ctx.Display = s.display
	s.ctx = ctx
	ctx.State.Listen(s)

	if err := s.level.Setup(ctx); err != nil {
		return errors.Wrapf(err, "setup %s", s.level.Name())
	}
	log.Printf("scene: %s ready, %d entities, %d meshes pending", s.level.Name(), ctx.World.EntityCount(), ctx.Batch.Len())
	return nil
}

// Context returns the scene's worlds and services, nil before Setup
func (s *MainScene) Context() *Context { return s.ctx }

// Level returns the level variant
func (s *MainScene) Level() Level { return s.level }

// Started reports whether the title was dismissed
func (s *MainScene) Started() bool { return s.started }

// Start dismisses the title and begins play
func (s *MainScene) Start() {
	if s.started {
		return
	}
	s.started = true
	s.display.ShowOverlay(render.OverlayTitle, false)
	s.level.Begin()
	log.Printf("scene: %s started", s.level.Name())
}

// Update runs one frame of gameplay; before the title is dismissed only Space or Enter is watched
func (s *MainScene) Update(dt time.Duration) {
	if !s.started {
		kb := s.ctx.Input.Keyboard
		if kb.Pressed(input.KeySpace) || kb.Pressed(input.KeyEnter) {
			s.Start()
		}
		return
	}
	s.level.Update(dt)
	for _, u := range s.ctx.updaters {
		u.Update(dt)
	}
}
