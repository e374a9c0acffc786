package player

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/lixenwraith/pincraft/components"
	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/entities"
	"github.com/lixenwraith/pincraft/physics"
	"github.com/lixenwraith/pincraft/vmath"
)

const (
	Height = 1.8
	Radius = .2
	Mass   = 70

	// Look sensitivity in radians per viewport of pointer travel
	yawSensitivity   = math.Pi * 1.8
	pitchSensitivity = math.Pi * 1.3
	pitchLimit       = math.Pi * .3

	velocityDecay = .85
	stopThreshold = .01
	movingSpeed   = 1

	lightRange     = 8.5
	lightIntensity = .8
)

// View is the player's body, orientation and lamp
type View struct {
	angleX, angleY float64 // pitch, yaw
	rot            vmath.Quat
	dir            vmath.Vec3
	up             vmath.Vec3
	velocity       vmath.Vec3

	// Tilt rolls the up vector, radians
	Tilt float64

	initialPos vmath.Vec3
	builder    *entities.Builder
	info       entities.EntityInfo
	body       *physics.RigidBody
	light      *components.LightComponent

	clock engine.Clock
	epoch time.Time
}

// NewView creates the player entity at initialPos
func NewView(initialPos vmath.Vec3, b *entities.Builder, clock engine.Clock) (*View, error) {
	v := &View{initialPos: initialPos, builder: b, clock: clock, epoch: clock.Now()}
	v.Rotate(0, 0)

	shape, err := physics.MakeShape(physics.ShapeDescriptor{
		Type:        physics.ShapeCapsule,
		Radius:      Radius,
		Height:      Height,
		Orientation: physics.AxisY,
	})
	if err != nil {
		return nil, errors.Wrap(err, "player shape")
	}

	info, err := b.MakeEntity(entities.Options{
		Position: initialPos,
		Rotation: v.rot,
		RigidBody: &physics.RigidBodyDescriptor{
			Mass:         Mass,
			Shape:        shape,
			LockRotation: true,
			Friction:     1,
		},
		Light: &components.LightComponent{
			Type:      components.LightPoint,
			Colour:    srgb8(255, 236, 200),
			Range:     lightRange,
			Intensity: lightIntensity,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "player")
	}

	v.info = info
	v.body = b.Body(info.Entity)
	v.light = b.Light(info.Entity)
	return v, nil
}

// srgb8 builds a colour from 8-bit sRGB channels
func srgb8(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Rotate turns the view by a pointer motion expressed in viewports
func (v *View) Rotate(relX, relY float64) {
	v.angleX -= pitchSensitivity * relY
	v.angleX = vmath.Clamp(v.angleX, -pitchLimit, pitchLimit)
	v.angleY += yawSensitivity * relX
	v.rot = vmath.QuatFromEuler(0, v.angleY, v.angleX)

	v.dir = vmath.V3Normalize(vmath.QuatRotate(v.rot, vmath.AxisZ))
	tiltedUp := vmath.V3RotateZ(vmath.AxisY, vmath.Vec3{}, v.Tilt)
	v.up = vmath.V3Normalize(vmath.QuatRotate(v.rot, tiltedUp))
}

// Reset restores the initial pose
func (v *View) Reset() {
	v.angleX, v.angleY = 0, 0
	v.Rotate(0, 0)
	v.velocity = vmath.Vec3{}

	tc := v.builder.Transform(v.info.Entity)
	tc.Position = v.initialPos
	tc.Rotation = v.rot
	v.body.SetWorldTransform(v.initialPos, v.rot)
	v.body.SetLinearVelocity(vmath.Vec3{})
}

// Update accelerates along the view's forward and right directions and drives the body
func (v *View) Update(dt, acceleration, sideAccel float64) {
	v.Rotate(0, 0)
	fwdXZ := vmath.V3Normalize(vmath.V3XZ(v.dir))
	rightXZ := vmath.V3Cross(fwdXZ, vmath.AxisY)

	v.velocity = vmath.V3ScaleAndAdd(v.velocity, fwdXZ, acceleration*dt)
	v.velocity = vmath.V3ScaleAndAdd(v.velocity, rightXZ, sideAccel*dt)
	v.velocity = vmath.V3Scale(v.velocity, velocityDecay)

	if vmath.V3Mag(v.velocity) < stopThreshold {
		v.velocity = vmath.Vec3{}
		v.body.SetDamping(1, 1)
	} else {
		v.body.SetDamping(0, 0)
	}

	lv := v.body.LinearVelocity()
	v.body.SetLinearVelocity(vmath.Vec3{X: v.velocity.X, Y: lv.Y, Z: v.velocity.Z})

	if tc := v.builder.Transform(v.info.Entity); tc != nil {
		tc.Rotation = v.rot
	}

	lt := math.Sin(v.clock.Now().Sub(v.epoch).Seconds() * 6.28)
	v.light.Intensity = .6 + .03*lt
	v.light.Range = lightRange + .15*lt
}

// Entity returns the player entity
func (v *View) Entity() engine.Entity { return v.info.Entity }

// Body returns the player's rigid body
func (v *View) Body() *physics.RigidBody { return v.body }

// Light returns the player's lamp
func (v *View) Light() *components.LightComponent { return v.light }

// Pos returns the body position
func (v *View) Pos() vmath.Vec3 { return v.body.Position() }

// Dir returns the unit view direction
func (v *View) Dir() vmath.Vec3 { return v.dir }

// Up returns the unit view up vector
func (v *View) Up() vmath.Vec3 { return v.up }

// Rotation returns the view orientation
func (v *View) Rotation() vmath.Quat { return v.rot }

// Angles returns pitch and yaw in radians
func (v *View) Angles() (pitch, yaw float64) { return v.angleX, v.angleY }

// Velocity returns the damped movement velocity
func (v *View) Velocity() vmath.Vec3 { return v.velocity }

// Moving reports whether the body is travelling fast enough for footsteps
func (v *View) Moving() bool {
	return vmath.V3Mag(v.body.LinearVelocity()) > movingSpeed
}

