package scene

import (
	"log"
	"time"

	"github.com/lixenwraith/pincraft/render"
)

// maxFrameDelta caps the simulated time of one frame after a stall
const maxFrameDelta = 100 * time.Millisecond

// Resizer is implemented by levels that react to the terminal size
type Resizer interface {
	Resize(width, height int)
}

// Runner drives one frame at a time in a fixed order:
// input edges, timers, level and updaters, physics, systems, then drawing
type Runner struct {
	scene    *MainScene
	ctx      *Context
	renderer *render.Renderer
	hud      *render.HUD

	last   time.Time
	frames uint64
}

// NewRunner wires a set-up scene to the renderer and HUD
func NewRunner(scene *MainScene, renderer *render.Renderer, hud *render.HUD) *Runner {
	ctx := scene.Context()
	ctx.World.AddSystem(TransformSyncSystem{})
	ctx.State.Listen(hud)

	r := &Runner{scene: scene, ctx: ctx, renderer: renderer, hud: hud}
	r.allocate()
	return r
}

func (r *Runner) allocate() {
	if r.ctx.Batch.Len() == 0 {
		return
	}
	n := r.ctx.Batch.Drain(r.renderer)
	log.Printf("runner: allocated %d geometries", n)
}

// Resize forwards the screen size to the level
func (r *Runner) Resize(width, height int) {
	if rs, ok := r.scene.Level().(Resizer); ok {
		rs.Resize(width, height)
	}
}

// Frame advances the game to the clock's current time
func (r *Runner) Frame() {
	ctx := r.ctx
	now := ctx.Clock.Now()

	var dt time.Duration
	if !r.last.IsZero() {
		dt = min(now.Sub(r.last), maxFrameDelta)
	}
	r.last = now
	r.frames++

	ctx.Input.BeginFrame(now)
	ctx.Scheduler.Advance(now)
	r.scene.Update(dt)
	r.allocate()

	if r.scene.Started() {
		ctx.Physics.Step(dt)
	}
	ctx.World.Update(dt)
}

// Draw renders the world and the HUD and shows the result
func (r *Runner) Draw() {
	r.renderer.DrawWorld(r.ctx.World, r.ctx.Camera)
	screen := r.renderer.Screen()
	r.hud.Draw(screen)
	screen.Show()
}

// Frames counts calls to Frame
func (r *Runner) Frames() uint64 { return r.frames }
