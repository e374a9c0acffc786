package scene

import (
	"log"
	"strconv"
	"time"

	"github.com/lucasb-eyer/go-colorful"
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

// Ball and paddle constants
const (
	BallRadius = .0135
	ballMass   = .08

	paddleMass     = .2
	paddleLimitDeg = 30

	// Flipper motors, speed in radians per second and impulse per fixed step
	flipUpSpeed     = 22
	flipUpImpulse   = 44
	flipDownSpeed   = 10
	flipDownImpulse = 20

	bumperBounce = 2.0
	launchForce  = 6.5
)

var paddleHalfExtents = vmath.Vec3{X: .05, Y: .01, Z: .008}

type paddleSide int

const (
	paddleLeft paddleSide = iota
	paddleRight
)

// bumper is a scoring trigger sphere on the board
type bumper struct {
	spec     assets.BumperSpec
	info     entities.EntityInfo
	ghost    *physics.Ghost
	renderer *components.MeshRendererComponent
	touching bool
}

// Pinball is the tilted table level
type Pinball struct {
	ctx  *Context
	spec *assets.PinballLevel

	board entities.EntityInfo
	ball  *physics.RigidBody

	hinges  [2]*physics.Hinge
	bumpers []*bumper

	score      int
	scoreShown int
	scoreSN    *engine.SmoothNum
	deaths     int
}

// Name returns the level name
func (p *Pinball) Name() string { return config.LevelPinball }

// Physics returns the table's tilted world settings
func (p *Pinball) Physics(m *assets.Manifest) assets.PhysicsSpec {
	return m.Pinball.Physics
}

// Setup builds the board, ball, paddles, bumpers and lights
func (p *Pinball) Setup(ctx *Context) error {
	p.ctx = ctx
	p.spec = &ctx.Manifest.Pinball
	p.scoreSN = engine.NewSmoothNum(0, p.spec.ScoreEasing, ctx.Clock)

	if err := p.makeBoard(); err != nil {
		return err
	}
	if err := p.makeBall(); err != nil {
		return err
	}
	if err := p.makePaddles(); err != nil {
		return err
	}
	if err := p.makeBumpers(); err != nil {
		return err
	}
	if err := p.makeLights(); err != nil {
		return err
	}

	cam := p.spec.Camera
	ctx.Camera.LookAt(cam.Eye.Vec(), cam.Target.Vec(), cam.Up.Vec())
	ctx.Camera.Extent = cam.Extent

	ctx.Display.SetText(render.FieldScore, "0")
	ctx.Display.SetText(render.FieldDeaths, "0")
	return nil
}

func (p *Pinball) makeBoard() error {
	b := p.ctx.Builder

	var segments []physics.Segment
	for _, wall := range p.spec.Walls {
		for i := 1; i < len(wall); i++ {
			segments = append(segments, physics.Segment{A: wall[i-1].Vec(0), B: wall[i].Vec(0)})
		}
	}
	shape, err := physics.MakeShape(physics.ShapeDescriptor{
		Type:     physics.ShapeMesh,
		Radius:   p.spec.WallRadius,
		Segments: segments,
	})
	if err != nil {
		return errors.Wrap(err, "board shape")
	}

	p.board, err = b.MakeEntity(entities.Options{
		RigidBody: &physics.RigidBodyDescriptor{
			Mass:        0,
			Shape:       shape,
			Friction:    .1,
			Restitution: .3,
		},
	})
	if err != nil {
		return errors.Wrap(err, "board")
	}

	wallLook := &components.MeshRendererComponent{
		Glyph:    '#',
		Material: components.Material{Colour: colorful.Color{R: .55, G: .6, B: .75}, Emissive: .4},
		Layer:    1,
	}
	for i, wall := range p.spec.Walls {
		pts := make([]vmath.Vec3, len(wall))
		for j, pt := range wall {
			pts[j] = pt.Vec(0)
		}
		_, err := b.MakeEntity(entities.Options{
			Parent:   p.board.Entity,
			Geometry: &components.Geometry{Kind: components.GeometryPolyline, Points: pts},
			Renderer: wallLook,
		})
		if err != nil {
			return errors.Wrapf(err, "wall %d", i)
		}
	}

	// Visual only, the vertical floor is the bodies' rest height
	fl := p.spec.Floor
	center := assets.XZ{(fl.Min[0] + fl.Max[0]) / 2, (fl.Min[1] + fl.Max[1]) / 2}
	_, err = b.MakeEntity(entities.Options{
		Parent:   p.board.Entity,
		Position: center.Vec(-.01),
		Geometry: &components.Geometry{
			Kind:        components.GeometryBox,
			HalfExtents: vmath.Vec3{X: (fl.Max[0] - fl.Min[0]) / 2, Y: .01, Z: (fl.Max[1] - fl.Min[1]) / 2},
		},
		Renderer: &components.MeshRendererComponent{
			Glyph:    '.',
			Material: components.Material{Colour: colorful.Color{R: .2, G: .35, B: .25}},
			Layer:    -1,
		},
	})
	return errors.Wrap(err, "floor")
}

func (p *Pinball) makeBall() error {
	shape, err := physics.MakeShape(physics.ShapeDescriptor{Type: physics.ShapeSphere, Radius: BallRadius})
	if err != nil {
		return errors.Wrap(err, "ball shape")
	}
	info, err := p.ctx.Builder.MakeEntity(entities.Options{
		Position: p.spec.BallSpawn.Vec(),
		RigidBody: &physics.RigidBodyDescriptor{
			Mass:        ballMass,
			Shape:       shape,
			Friction:    .1,
			Restitution: .3,
		},
		Geometry: &components.Geometry{Kind: components.GeometrySphere, Radius: BallRadius},
		Renderer: &components.MeshRendererComponent{
			Glyph:    '@',
			Material: components.Material{Colour: colorful.Color{R: 1}, Emissive: .5},
			Layer:    3,
		},
	})
	if err != nil {
		return errors.Wrap(err, "ball")
	}
	p.ball = p.ctx.Builder.Body(info.Entity)
	return nil
}

func (p *Pinball) makePaddles() error {
	shape, err := physics.MakeShape(physics.ShapeDescriptor{Type: physics.ShapeBox, HalfExtents: paddleHalfExtents})
	if err != nil {
		return errors.Wrap(err, "paddle shape")
	}
	look := &components.MeshRendererComponent{
		Glyph:    '=',
		Material: components.Material{Colour: colorful.Color{R: .7, G: .7}, Emissive: .3},
		Layer:    2,
	}
	limit := vmath.Deg2Rad(paddleLimitDeg)

	for _, ps := range p.spec.Paddles {
		info, err := p.ctx.Builder.MakeEntity(entities.Options{
			Parent:   p.board.Entity,
			Position: ps.Position.Vec(),
			RigidBody: &physics.RigidBodyDescriptor{
				Mass:        paddleMass,
				Shape:       shape,
				Friction:    0,
				Restitution: .7,
			},
			Geometry: &components.Geometry{Kind: components.GeometryBox, HalfExtents: paddleHalfExtents},
			Renderer: look,
		})
		if err != nil {
			return errors.Wrapf(err, "%s paddle", ps.Side)
		}

		hinge, err := p.ctx.Physics.AddHinge(p.ctx.Builder.Body(info.Entity), physics.HingeDescriptor{
			Pivot:     ps.Pivot.Vec(),
			LowLimit:  -limit,
			HighLimit: limit,
		})
		if err != nil {
			return errors.Wrapf(err, "%s paddle hinge", ps.Side)
		}

		side := paddleLeft
		if ps.Side == "right" {
			side = paddleRight
		}
		p.hinges[side] = hinge
	}
	return nil
}

func (p *Pinball) makeBumpers() error {
	for i, bs := range p.spec.Bumpers {
		shape, err := physics.MakeShape(physics.ShapeDescriptor{Type: physics.ShapeSphere, Radius: bs.Radius})
		if err != nil {
			return errors.Wrapf(err, "bumper %d shape", i)
		}
		colour, err := assets.ParseColour(bs.Colour)
		if err != nil {
			return errors.Wrapf(err, "bumper %d", i)
		}
		info, err := p.ctx.Builder.MakeEntity(entities.Options{
			Parent:   p.board.Entity,
			Position: bs.Position.Vec(.02),
			Ghost:    shape,
			Geometry: &components.Geometry{Kind: components.GeometrySphere, Radius: bs.Radius},
			Renderer: &components.MeshRendererComponent{
				Glyph:    'O',
				Material: components.Material{Colour: colour},
				Layer:    2,
			},
		})
		if err != nil {
			return errors.Wrapf(err, "bumper %d", i)
		}
		p.bumpers = append(p.bumpers, &bumper{
			spec:     bs,
			info:     info,
			ghost:    p.ctx.Builder.Ghost(info.Entity),
			renderer: p.ctx.Builder.Renderer(info.Entity),
		})
	}
	return nil
}

func (p *Pinball) makeLights() error {
	for i, ls := range p.spec.Lights {
		colour, err := assets.ParseColour(ls.Colour)
		if err != nil {
			return errors.Wrapf(err, "light %d", i)
		}
		rot := vmath.QuatFromEuler(vmath.Deg2Rad(ls.Roll), vmath.Deg2Rad(ls.Yaw), 0)
		_, err = p.ctx.Builder.MakeEntity(entities.Options{
			Rotation: rot,
			Light: &components.LightComponent{
				Type:      components.LightDirectional,
				Colour:    colour,
				Intensity: ls.Intensity,
				Direction: vmath.QuatRotate(rot, vmath.Vec3{Y: -1}),
			},
		})
		if err != nil {
			return errors.Wrapf(err, "light %d", i)
		}
	}
	return nil
}

// Begin has nothing to start, the ball waits in the launch lane
func (p *Pinball) Begin() {}

// Update runs bumpers, score display, flippers, drain and launch
func (p *Pinball) Update(time.Duration) {
	cam := p.spec.Camera
	p.ctx.Camera.LookAt(cam.Eye.Vec(), cam.Target.Vec(), cam.Up.Vec())

	for _, b := range p.bumpers {
		p.updateBumper(b)
	}

	if cur := int(p.scoreSN.Value()); cur != p.scoreShown {
		p.scoreShown = cur
		p.ctx.Display.SetText(render.FieldScore, strconv.Itoa(cur))
	}

	kb := p.ctx.Input.Keyboard
	if kb.Pressed(input.KeyLeft) {
		p.ctx.Sound.Play(audio.SFXFlipper)
		p.hinges[paddleLeft].EnableAngularMotor(true, flipUpSpeed, flipUpImpulse)
	} else if kb.Released(input.KeyLeft) {
		p.hinges[paddleLeft].EnableAngularMotor(true, -flipDownSpeed, flipDownImpulse)
	}
	if kb.Pressed(input.KeyRight) {
		p.ctx.Sound.Play(audio.SFXFlipper)
		p.hinges[paddleRight].EnableAngularMotor(true, -flipUpSpeed, flipUpImpulse)
	} else if kb.Released(input.KeyRight) {
		p.hinges[paddleRight].EnableAngularMotor(true, flipDownSpeed, flipDownImpulse)
	}

	pos := p.ball.Position()
	if pos.Z < p.spec.DrainZ {
		p.drain()
	} else if kb.Pressed(input.KeySpace) && p.spec.Lane.Contains(pos.X, pos.Z) {
		p.ctx.Sound.Play(audio.SFXLaunch)
		p.ball.ApplyCentralForce(vmath.Vec3{Z: launchForce})
		log.Printf("pinball: launch")
	}
}

// updateBumper scores once when the ball starts touching b
func (p *Pinball) updateBumper(b *bumper) {
	hit := false
	for _, rb := range p.ctx.Physics.Overlapping(b.ghost) {
		// Paddles can reach into a bumper's bounds, only the ball counts
		if rb != p.ball {
			continue
		}
		outward := vmath.V3Sub(rb.Position(), b.ghost.Position())
		if vmath.V3Mag(outward) > BallRadius+b.spec.Radius {
			break
		}
		hit = true
		if !b.touching {
			outward.Y = 0
			force := vmath.V3Scale(vmath.V3Normalize(outward), bumperBounce)
			p.ball.ApplyCentralForce(force)
			p.ctx.Sound.Play(audio.SFXBumper)
			p.score += b.spec.Points
			p.scoreSN.SetValue(float64(p.score))
			log.Printf("pinball: bumper +%d, score %d", b.spec.Points, p.score)
		}
		break
	}
	b.touching = hit
	if hit {
		b.renderer.Material.Emissive = 1
	} else {
		b.renderer.Material.Emissive = 0
	}
}

func (p *Pinball) drain() {
	p.ctx.Sound.Play(audio.SFXDie)
	p.deaths++
	p.ctx.Display.SetText(render.FieldDeaths, strconv.Itoa(p.deaths))
	p.ball.SetLinearVelocity(vmath.Vec3{})
	p.ball.SetWorldTransform(p.spec.BallSpawn.Vec(), vmath.QuatIdentity)
	log.Printf("pinball: drained, deaths %d", p.deaths)
}

// Score returns the awarded points
func (p *Pinball) Score() int { return p.score }

// Deaths returns how often the ball drained
func (p *Pinball) Deaths() int { return p.deaths }

// Ball returns the ball body
func (p *Pinball) Ball() *physics.RigidBody { return p.ball }

// Paddle returns the right flipper hinge when right is set, else the left one
func (p *Pinball) Paddle(right bool) *physics.Hinge {
	if right {
		return p.hinges[paddleRight]
	}
	return p.hinges[paddleLeft]
}

// BumperTouching reports whether bumper i is lit
func (p *Pinball) BumperTouching(i int) bool {
	return p.bumpers[i].touching
}
