package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"

	"github.com/lixenwraith/pincraft/vmath"
)

// HingeDescriptor pins a body to the world around the vertical axis
type HingeDescriptor struct {
	Pivot     vmath.Vec3 // body-local anchor
	LowLimit  float64    // yaw relative to the rest pose, radians
	HighLimit float64
}

// Hinge is an angle-limited rotational joint with an optional motor
type Hinge struct {
	world *World
	body  *RigidBody

	pivot *cp.Constraint
	limit *cp.Constraint
	motor *cp.Constraint

	rest      float64 // body angle at creation
	low, high float64 // yaw limits relative to rest
	anchor    cp.Vector
	local     cp.Vector

	motorEnabled bool
	motorSpeed   float64
	motorImpulse float64
}

// AddHinge constrains rb to rotate around desc.Pivot within the limits
func (w *World) AddHinge(rb *RigidBody, desc HingeDescriptor) (*Hinge, error) {
	if rb == nil || rb.static {
		return nil, errors.New("hinge requires a dynamic body")
	}
	if desc.LowLimit > desc.HighLimit {
		return nil, errors.Errorf("hinge limits inverted: %g > %g", desc.LowLimit, desc.HighLimit)
	}

	static := w.space.StaticBody
	local := toCP(desc.Pivot)
	anchor := rb.body.LocalToWorld(local)
	rest := rb.body.Angle()

	h := &Hinge{
		world: w,
		body:  rb,
		pivot: cp.NewPivotJoint2(static, rb.body, anchor, local),
		// Chipmunk angles run opposite to yaw, so the limits swap and negate
		limit: cp.NewRotaryLimitJoint(static, rb.body, rest-desc.HighLimit, rest-desc.LowLimit),
		rest:   rest,
		low:    desc.LowLimit,
		high:   desc.HighLimit,
		anchor: anchor,
		local:  local,
	}
	w.space.AddConstraint(h.pivot)
	w.space.AddConstraint(h.limit)
	w.hinges = append(w.hinges, h)
	return h, nil
}

// EnableAngularMotor drives the hinge towards speed (yaw radians per second),
// applying at most maxImpulse per fixed step
func (h *Hinge) EnableAngularMotor(enable bool, speed, maxImpulse float64) {
	if h.motor != nil {
		h.world.space.RemoveConstraint(h.motor)
		h.motor = nil
	}
	h.motorEnabled = enable
	h.motorSpeed = speed
	h.motorImpulse = maxImpulse
	if !enable {
		return
	}

	// Chipmunk drives the relative angular velocity towards -rate, and yaw is the negated angle
	h.motor = cp.NewSimpleMotor(h.world.space.StaticBody, h.body.body, speed)
	h.motor.SetMaxForce(maxImpulse / h.world.config.FixedStep.Seconds())
	h.world.space.AddConstraint(h.motor)
}

// enforceLimit clamps the hinge back into its limits after a substep
// The limit joint alone yields to a motor whose torque dwarfs the paddle's moment
func (h *Hinge) enforceLimit() {
	yaw := h.Angle()
	clamped := vmath.Clamp(yaw, h.low, h.high)
	if clamped == yaw {
		return
	}

	body := h.body.body
	angle := h.rest + yawToAngle(clamped)
	body.SetAngle(angle)
	body.SetPosition(h.anchor.Sub(cp.ForAngle(angle).Rotate(h.local)))

	// Stop only motion pushing further out of range
	if w := angleToYaw(body.AngularVelocity()); (yaw > h.high && w > 0) || (yaw < h.low && w < 0) {
		body.SetAngularVelocity(0)
		body.SetVelocityVector(cp.Vector{})
	}
}

// Motor returns the last motor settings
func (h *Hinge) Motor() (enabled bool, speed, maxImpulse float64) {
	return h.motorEnabled, h.motorSpeed, h.motorImpulse
}

// Angle returns the current yaw relative to the rest pose
func (h *Hinge) Angle() float64 {
	return angleToYaw(h.body.body.Angle() - h.rest)
}

// Body returns the hinged body
func (h *Hinge) Body() *RigidBody {
	return h.body
}
