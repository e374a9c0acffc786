package scene

import (
	"log"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/lixenwraith/pincraft/assets"
	"github.com/lixenwraith/pincraft/components"
	"github.com/lixenwraith/pincraft/config"
	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/entities"
	"github.com/lixenwraith/pincraft/input"
	"github.com/lixenwraith/pincraft/interact"
	"github.com/lixenwraith/pincraft/physics"
	"github.com/lixenwraith/pincraft/player"
	"github.com/lixenwraith/pincraft/vmath"
)

// cameraHeight is how far above the player the overhead camera floats
const cameraHeight = 20.0

// Explore is the walkable room with hints and an exit
type Explore struct {
	ctx  *Context
	spec *assets.ExploreLevel

	controller *player.Controller
	dispatcher *interact.Dispatcher
	exit       *exitZone
}

// Name returns the level name
func (x *Explore) Name() string { return config.LevelExplore }

// Physics returns the upright world settings
func (x *Explore) Physics(m *assets.Manifest) assets.PhysicsSpec {
	return m.Explore.Physics
}

// Setup builds the room, player, markers and exit
func (x *Explore) Setup(ctx *Context) error {
	x.ctx = ctx
	x.spec = &ctx.Manifest.Explore

	if err := x.makeRoom(); err != nil {
		return err
	}

	view, err := player.NewView(x.spec.Spawn.Vec(), ctx.Builder, ctx.Clock)
	if err != nil {
		return err
	}
	x.controller = player.NewController(view, ctx.Input, ctx.Layout, ctx.Sound, ctx.Scheduler, ctx.Clock)
	ctx.State.Listen(x.controller)

	x.dispatcher = interact.NewDispatcher(ctx.Physics)
	for _, which := range interact.HintPresets {
		hb, err := interact.NewHintBox(ctx.State, ctx.Builder, which)
		if err != nil {
			return err
		}
		x.dispatcher.Register(hb)
	}
	for i, is := range x.spec.InfoSpheres {
		sphere, err := interact.NewInfoSphere(ctx.State, ctx.Builder, is.Position.Vec(), is.Message)
		if err != nil {
			return errors.Wrapf(err, "info sphere %d", i)
		}
		x.dispatcher.Register(sphere)
	}

	x.exit, err = newExitZone(ctx, x.spec.Exit, view.Body())
	if err != nil {
		return err
	}
	ctx.AddUpdater(x.exit)

	ctx.Camera.Extent = x.spec.ViewExtent
	x.updateCamera()
	return nil
}

func (x *Explore) makeRoom() error {
	room := x.spec.Room
	pts := make([]vmath.Vec3, len(room))
	segments := make([]physics.Segment, len(room))
	minX, minZ, maxX, maxZ := room[0][0], room[0][1], room[0][0], room[0][1]
	for i, c := range room {
		pts[i] = c.Vec(0)
		segments[i] = physics.Segment{A: c.Vec(0), B: room[(i+1)%len(room)].Vec(0)}
		minX, maxX = min(minX, c[0]), max(maxX, c[0])
		minZ, maxZ = min(minZ, c[1]), max(maxZ, c[1])
	}

	shape, err := physics.MakeShape(physics.ShapeDescriptor{
		Type:     physics.ShapeMesh,
		Radius:   x.spec.WallRadius,
		Segments: segments,
	})
	if err != nil {
		return errors.Wrap(err, "room shape")
	}
	_, err = x.ctx.Builder.MakeEntity(entities.Options{
		RigidBody: &physics.RigidBodyDescriptor{Mass: 0, Shape: shape, Friction: .5},
		Geometry:  &components.Geometry{Kind: components.GeometryPolyline, Points: pts, Closed: true},
		Renderer: &components.MeshRendererComponent{
			Glyph:    '#',
			Material: components.Material{Colour: colorful.Color{R: .5, G: .45, B: .4}},
			Layer:    1,
		},
	})
	if err != nil {
		return errors.Wrap(err, "room")
	}

	_, err = x.ctx.Builder.MakeEntity(entities.Options{
		Position: vmath.Vec3{X: (minX + maxX) / 2, Z: (minZ + maxZ) / 2},
		Geometry: &components.Geometry{
			Kind:        components.GeometryBox,
			HalfExtents: vmath.Vec3{X: (maxX - minX) / 2, Y: .1, Z: (maxZ - minZ) / 2},
		},
		Renderer: &components.MeshRendererComponent{
			Glyph:    '.',
			Material: components.Material{Colour: colorful.Color{R: .35, G: .33, B: .3}},
			Layer:    -1,
		},
	})
	return errors.Wrap(err, "room floor")
}

// Begin hands control to the player and starts the music
func (x *Explore) Begin() {
	x.controller.Go()
	x.ctx.Sound.StartMusic()
}

// Update moves the player, dispatches focus and follows with the camera
func (x *Explore) Update(dt time.Duration) {
	x.controller.Step(dt)

	// The ray starts inside the player's capsule, which the cast skips
	view := x.controller.View
	interactKey := input.KeyForCommand(input.CommandInteract, x.ctx.Layout)
	x.dispatcher.Update(view.Pos(), view.Dir(), x.ctx.Input.Keyboard.Pressed(interactKey))

	x.updateCamera()
}

// updateCamera looks straight down on the player with the view direction as screen up
func (x *Explore) updateCamera() {
	view := x.controller.View
	pos := view.Pos()
	up := vmath.V3XZ(view.Dir())
	if vmath.V3MagSq(up) < 1e-9 {
		up = vmath.AxisZ
	}
	x.ctx.Camera.LookAt(vmath.V3Add(pos, vmath.Vec3{Y: cameraHeight}), pos, vmath.V3Normalize(up))
}

// Resize scales pointer look sensitivity to the terminal
func (x *Explore) Resize(width, height int) {
	x.controller.SetViewport(width, height)
}

// Controller returns the player controller
func (x *Explore) Controller() *player.Controller { return x.controller }

// Dispatcher returns the interaction dispatcher
func (x *Explore) Dispatcher() *interact.Dispatcher { return x.dispatcher }

// exitZone ends the game when the player walks into it
type exitZone struct {
	gs     *engine.GameState
	phys   *physics.World
	ghost  *physics.Ghost
	player *physics.RigidBody
	sound  SoundPlayer
	done   bool
}

func newExitZone(ctx *Context, spec assets.ExitSpec, playerBody *physics.RigidBody) (*exitZone, error) {
	shape, err := physics.MakeShape(physics.ShapeDescriptor{Type: physics.ShapeSphere, Radius: spec.Radius})
	if err != nil {
		return nil, errors.Wrap(err, "exit shape")
	}
	info, err := ctx.Builder.MakeEntity(entities.Options{
		Position: spec.Position.Vec(),
		Ghost:    shape,
		Geometry: &components.Geometry{Kind: components.GeometrySphere, Radius: spec.Radius},
		Renderer: &components.MeshRendererComponent{
			Glyph:    '*',
			Material: components.Material{Colour: colorful.Color{R: .6, G: .8, B: 1}, Emissive: .8},
			Layer:    1,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "exit")
	}
	return &exitZone{
		gs:     ctx.State,
		phys:   ctx.Physics,
		ghost:  ctx.Builder.Ghost(info.Entity),
		player: playerBody,
		sound:  ctx.Sound,
	}, nil
}

// Update ends the game the first time the player overlaps the zone
func (z *exitZone) Update(time.Duration) {
	if z.done {
		return
	}
	for _, rb := range z.phys.Overlapping(z.ghost) {
		if rb != z.player {
			continue
		}
		z.done = true
		z.sound.StopMusic()
		z.gs.SetEnd()
		z.gs.ShowMessage(engine.EndMessage)
		log.Printf("explore: reached the exit")
		return
	}
}
