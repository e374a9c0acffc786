package physics

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"

	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/vmath"
)

// maxSubSteps bounds the catch-up work of one Step, excess time is dropped
const maxSubSteps = 10

// Config holds world-wide simulation settings
type Config struct {
	// Gravity X and Z act in the simulation plane, Y drives the vertical component
	Gravity    vmath.Vec3
	FixedStep  time.Duration
	Iterations int
}

// DefaultConfig returns an upright world with standard gravity at 60Hz
func DefaultConfig() Config {
	return Config{
		Gravity:    vmath.Vec3{Y: -9.81},
		FixedStep:  time.Second / 60,
		Iterations: 10,
	}
}

// RayHit is the closest shape along a ray
type RayHit struct {
	Entity   engine.Entity
	Point    vmath.Vec3
	Normal   vmath.Vec3
	Distance float64
}

// World owns the chipmunk space and every body, ghost and constraint in it
type World struct {
	space  *cp.Space
	config Config

	bodies []*RigidBody
	ghosts []*Ghost
	hinges []*Hinge
	shapes []*cp.Shape // every collider, for queries that must also see triggers

	accumulator time.Duration
}

// NewWorld creates an empty world
func NewWorld(config Config) *World {
	if config.FixedStep <= 0 {
		config.FixedStep = time.Second / 60
	}
	space := cp.NewSpace()
	space.SetGravity(toCP(config.Gravity))
	if config.Iterations > 0 {
		space.Iterations = uint(config.Iterations)
	}
	return &World{space: space, config: config}
}

// Config returns the world settings
func (w *World) Config() Config {
	return w.config
}

// AddBody creates a rigid body for owner at pos/rot
func (w *World) AddBody(desc RigidBodyDescriptor, pos vmath.Vec3, rot vmath.Quat, owner engine.Entity) (*RigidBody, error) {
	if desc.Shape == nil {
		return nil, errors.Errorf("rigid body for entity %d has no shape", owner)
	}
	if desc.Mass < 0 {
		return nil, errors.Errorf("rigid body for entity %d has negative mass %g", owner, desc.Mass)
	}

	rb := &RigidBody{world: w, shape: desc.Shape, owner: owner, y: pos.Y, floor: pos.Y}

	switch {
	case desc.IsKinematic:
		rb.body = cp.NewKinematicBody()
		rb.kinematic = true
	case desc.Mass == 0:
		rb.body = cp.NewStaticBody()
		rb.static = true
	default:
		moment := desc.Shape.moment(desc.Mass)
		if desc.LockRotation {
			moment = math.Inf(1)
			rb.lockRotation = true
		}
		rb.body = cp.NewBody(desc.Mass, moment)
		rb.body.SetVelocityUpdateFunc(rb.updateVelocity)
	}

	rb.body.SetPosition(toCP(pos))
	rb.body.SetAngle(yawToAngle(vmath.QuatYaw(rot)))
	rb.body.UserData = owner
	w.space.AddBody(rb.body)

	for _, shape := range desc.Shape.attach(rb.body) {
		shape.SetFriction(desc.Friction)
		shape.SetElasticity(desc.Restitution)
		shape.SetSensor(desc.IsTrigger)
		shape.UserData = owner
		w.space.AddShape(shape)
		rb.shapes = append(rb.shapes, shape)
		w.shapes = append(w.shapes, shape)
	}

	w.bodies = append(w.bodies, rb)
	return rb, nil
}

// AddGhost creates a trigger volume for owner at pos
func (w *World) AddGhost(shape *Shape, pos vmath.Vec3, owner engine.Entity) (*Ghost, error) {
	if shape == nil {
		return nil, errors.Errorf("ghost for entity %d has no shape", owner)
	}

	body := cp.NewStaticBody()
	body.SetPosition(toCP(pos))
	body.UserData = owner
	w.space.AddBody(body)

	for _, s := range shape.attach(body) {
		s.SetSensor(true)
		s.UserData = owner
		w.space.AddShape(s)
		w.shapes = append(w.shapes, s)
	}

	g := &Ghost{body: body, shape: shape, owner: owner, y: pos.Y}
	w.ghosts = append(w.ghosts, g)
	return g, nil
}

// Bodies returns every rigid body in creation order
func (w *World) Bodies() []*RigidBody {
	return w.bodies
}

// Step advances the simulation by dt in fixed substeps, carrying the remainder to the next call
// Returns the number of substeps taken
func (w *World) Step(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	w.accumulator += dt

	steps := 0
	for w.accumulator >= w.config.FixedStep && steps < maxSubSteps {
		w.substep(w.config.FixedStep.Seconds())
		w.accumulator -= w.config.FixedStep
		steps++
	}
	if steps == maxSubSteps {
		w.accumulator = 0
	}

	if steps > 0 {
		for _, rb := range w.bodies {
			rb.clearForces()
		}
	}
	return steps
}

func (w *World) substep(secs float64) {
	w.space.Step(secs)
	for _, h := range w.hinges {
		h.enforceLimit()
	}
	for _, rb := range w.bodies {
		if rb.static {
			continue
		}
		g := w.config.Gravity.Y
		if rb.kinematic {
			g = 0
		}
		rb.stepVertical(g, secs)
	}
}

// RayCastClosest returns the nearest collider along dir within maxDist
// Triggers are included; colliders containing the origin are skipped
func (w *World) RayCastClosest(origin, dir vmath.Vec3, maxDist float64) (RayHit, bool) {
	d := vmath.V3Normalize(dir)
	if maxDist <= 0 || d == (vmath.Vec3{}) {
		return RayHit{}, false
	}
	end := vmath.V3ScaleAndAdd(origin, d, maxDist)

	a, b := toCP(origin), toCP(end)
	if a == b {
		// Purely vertical ray, no extent in the simulation plane
		return RayHit{}, false
	}

	var best cp.SegmentQueryInfo
	found := false
	for _, shape := range w.shapes {
		if shape.PointQuery(a).Distance < 0 {
			continue
		}
		var info cp.SegmentQueryInfo
		if shape.SegmentQuery(a, b, 0, &info) && (!found || info.Alpha < best.Alpha) {
			best = info
			found = true
		}
	}
	if !found {
		return RayHit{}, false
	}

	owner, _ := best.Shape.UserData.(engine.Entity)
	return RayHit{
		Entity:   owner,
		Point:    vmath.V3ScaleAndAdd(origin, d, best.Alpha*maxDist),
		Normal:   vmath.Vec3{X: best.Normal.X, Z: best.Normal.Y},
		Distance: best.Alpha * maxDist,
	}, true
}

// Overlapping returns the non-static bodies whose bounds intersect the ghost, in creation order
func (w *World) Overlapping(g *Ghost) []*RigidBody {
	var out []*RigidBody
	center := toCP(g.Position())
	reach := g.shape.BoundingRadius()
	for _, rb := range w.bodies {
		if rb.static {
			continue
		}
		if center.Distance(rb.body.Position()) <= reach+rb.shape.BoundingRadius() {
			out = append(out, rb)
		}
	}
	return out
}
