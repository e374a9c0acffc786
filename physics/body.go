package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/vmath"
)

// RigidBodyDescriptor configures a body; zero mass makes it static
type RigidBodyDescriptor struct {
	Mass         float64
	Shape        *Shape
	Friction     float64
	Restitution  float64
	LockRotation bool // no rotation around the vertical axis
	IsKinematic  bool
	IsTrigger    bool // reports overlaps and ray hits, no collision response
}

// RigidBody is a simulated body
// The chipmunk body carries the horizontal state, the vertical component is integrated here
type RigidBody struct {
	world  *World
	body   *cp.Body
	shapes []*cp.Shape
	shape  *Shape
	owner  engine.Entity

	static       bool
	kinematic    bool
	lockRotation bool

	force     cp.Vector // planar force held until the end of the next World.Step
	y, vy, fy float64
	floor     float64

	linearDamping, angularDamping float64
}

// Entity returns the entity owning the body
func (rb *RigidBody) Entity() engine.Entity { return rb.owner }

// Shape returns the collider description
func (rb *RigidBody) Shape() *Shape { return rb.shape }

// IsStatic reports whether the body never moves under simulation
func (rb *RigidBody) IsStatic() bool {
	return rb.static
}

// RotationLocked reports whether the simulation leaves the body's orientation alone
func (rb *RigidBody) RotationLocked() bool {
	return rb.lockRotation
}

// Position returns the world position of the body origin
func (rb *RigidBody) Position() vmath.Vec3 {
	return fromCP(rb.body.Position(), rb.y)
}

// Rotation returns the body orientation, yaw only
func (rb *RigidBody) Rotation() vmath.Quat {
	return vmath.QuatAxisAngle(vmath.AxisY, angleToYaw(rb.body.Angle()))
}

// SetWorldTransform teleports the body
func (rb *RigidBody) SetWorldTransform(pos vmath.Vec3, rot vmath.Quat) {
	rb.body.SetPosition(toCP(pos))
	rb.body.SetAngle(yawToAngle(vmath.QuatYaw(rot)))
	rb.y = pos.Y
	rb.reindex()
}

// SetWorldPosition teleports the body keeping its orientation
func (rb *RigidBody) SetWorldPosition(pos vmath.Vec3) {
	rb.body.SetPosition(toCP(pos))
	rb.y = pos.Y
	rb.reindex()
}

// reindex re-inserts the body's shapes so the broadphase and cached geometry see a teleport
// before the next step
func (rb *RigidBody) reindex() {
	space := rb.world.space
	for _, shape := range rb.shapes {
		space.RemoveShape(shape)
		space.AddShape(shape)
	}
}

// LinearVelocity returns the body velocity
func (rb *RigidBody) LinearVelocity() vmath.Vec3 {
	return fromCP(rb.body.Velocity(), rb.vy)
}

// SetLinearVelocity replaces the body velocity
func (rb *RigidBody) SetLinearVelocity(v vmath.Vec3) {
	rb.body.SetVelocityVector(toCP(v))
	rb.vy = v.Y
}

// ApplyCentralForce adds a force through the center of mass
// The force acts on every substep of the next World.Step call
func (rb *RigidBody) ApplyCentralForce(f vmath.Vec3) {
	if rb.IsStatic() {
		return
	}
	rb.force = rb.force.Add(toCP(f))
	rb.fy += f.Y
}

func (rb *RigidBody) clearForces() {
	rb.force = cp.Vector{}
	rb.fy = 0
}

// SetDamping sets the fraction of velocity removed per second, 1 stops the body within a step
func (rb *RigidBody) SetDamping(linear, angular float64) {
	rb.linearDamping = vmath.Clamp(linear, 0, 1)
	rb.angularDamping = vmath.Clamp(angular, 0, 1)
}

// Damping returns the linear and angular damping
func (rb *RigidBody) Damping() (float64, float64) {
	return rb.linearDamping, rb.angularDamping
}

// updateVelocity integrates forces then applies per-body damping
func (rb *RigidBody) updateVelocity(body *cp.Body, gravity cp.Vector, damping, dt float64) {
	body.SetForce(body.Force().Add(rb.force))
	cp.BodyUpdateVelocity(body, gravity, damping, dt)
	if rb.linearDamping > 0 {
		body.SetVelocityVector(body.Velocity().Mult(math.Pow(1-rb.linearDamping, dt)))
	}
	if rb.angularDamping > 0 {
		body.SetAngularVelocity(body.AngularVelocity() * math.Pow(1-rb.angularDamping, dt))
	}
}

// stepVertical integrates the vertical component against a floor at the spawn height
func (rb *RigidBody) stepVertical(gravityY, dt float64) {
	mass := rb.body.Mass()
	if mass > 0 && !math.IsInf(mass, 1) {
		rb.vy += rb.fy / mass * dt
	}
	rb.vy += gravityY * dt
	rb.vy *= math.Pow(1-rb.linearDamping, dt)
	rb.y += rb.vy * dt
	if rb.y <= rb.floor {
		rb.y = rb.floor
		if rb.vy < 0 {
			rb.vy = 0
		}
	}
}

// Ghost is a trigger volume reporting overlapping bodies
type Ghost struct {
	body  *cp.Body
	shape *Shape
	owner engine.Entity
	y     float64
}

// Entity returns the entity owning the ghost
func (g *Ghost) Entity() engine.Entity { return g.owner }

// Shape returns the ghost collider description
func (g *Ghost) Shape() *Shape { return g.shape }

// Position returns the ghost's world position
func (g *Ghost) Position() vmath.Vec3 {
	return fromCP(g.body.Position(), g.y)
}
