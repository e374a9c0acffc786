package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/pkg/errors"

	"github.com/lixenwraith/pincraft/vmath"
)

// ShapeType selects the collider primitive
type ShapeType int

const (
	ShapeSphere ShapeType = iota
	ShapeBox
	ShapeCapsule
	ShapeMesh
)

func (t ShapeType) String() string {
	switch t {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapeCapsule:
		return "capsule"
	case ShapeMesh:
		return "mesh"
	}
	return "unknown"
}

// Axis names a principal axis
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Segment is a wall edge in the horizontal plane, Y is ignored
type Segment struct {
	A, B vmath.Vec3
}

// ShapeDescriptor describes a collider independently of any world
type ShapeDescriptor struct {
	Type        ShapeType
	Radius      float64    // sphere, capsule, mesh wall thickness
	Height      float64    // capsule
	Orientation Axis       // capsule long axis
	HalfExtents vmath.Vec3 // box
	Segments    []Segment  // mesh
}

// Shape is a validated, world-independent collider description
type Shape struct {
	desc ShapeDescriptor
}

// MakeShape validates desc
func MakeShape(desc ShapeDescriptor) (*Shape, error) {
	switch desc.Type {
	case ShapeSphere:
		if desc.Radius <= 0 {
			return nil, errors.Errorf("sphere radius must be positive, got %g", desc.Radius)
		}
	case ShapeCapsule:
		if desc.Radius <= 0 || desc.Height < 0 {
			return nil, errors.Errorf("invalid capsule radius %g height %g", desc.Radius, desc.Height)
		}
	case ShapeBox:
		if desc.HalfExtents.X <= 0 || desc.HalfExtents.Y <= 0 || desc.HalfExtents.Z <= 0 {
			return nil, errors.Errorf("box half extents must be positive, got %+v", desc.HalfExtents)
		}
	case ShapeMesh:
		if len(desc.Segments) == 0 {
			return nil, errors.New("mesh shape has no segments")
		}
	default:
		return nil, errors.Errorf("unknown shape type %d", desc.Type)
	}
	return &Shape{desc: desc}, nil
}

// Descriptor returns the shape parameters
func (s *Shape) Descriptor() ShapeDescriptor {
	return s.desc
}

// BoundingRadius is the radius of a circle around the body origin enclosing the footprint
func (s *Shape) BoundingRadius() float64 {
	d := s.desc
	switch d.Type {
	case ShapeSphere:
		return d.Radius
	case ShapeCapsule:
		if d.Orientation == AxisY {
			return d.Radius
		}
		return d.Radius + d.Height/2
	case ShapeBox:
		return math.Hypot(d.HalfExtents.X, d.HalfExtents.Z)
	case ShapeMesh:
		r := 0.0
		for _, seg := range d.Segments {
			r = math.Max(r, math.Hypot(seg.A.X, seg.A.Z))
			r = math.Max(r, math.Hypot(seg.B.X, seg.B.Z))
		}
		return r + d.Radius
	}
	return 0
}

// moment returns the rotational inertia for mass m around the body origin
func (s *Shape) moment(m float64) float64 {
	d := s.desc
	switch d.Type {
	case ShapeSphere:
		return cp.MomentForCircle(m, 0, d.Radius, cp.Vector{})
	case ShapeCapsule:
		if d.Orientation == AxisY {
			return cp.MomentForCircle(m, 0, d.Radius, cp.Vector{})
		}
		a, b := s.capsuleEnds()
		return cp.MomentForSegment(m, a, b, d.Radius)
	case ShapeBox:
		return cp.MomentForBox(m, 2*d.HalfExtents.X, 2*d.HalfExtents.Z)
	}
	return math.Inf(1)
}

func (s *Shape) capsuleEnds() (cp.Vector, cp.Vector) {
	h := s.desc.Height / 2
	if s.desc.Orientation == AxisX {
		return cp.Vector{X: -h}, cp.Vector{X: h}
	}
	return cp.Vector{Y: -h}, cp.Vector{Y: h}
}

// attach creates the chipmunk shapes for body
func (s *Shape) attach(body *cp.Body) []*cp.Shape {
	d := s.desc
	switch d.Type {
	case ShapeSphere:
		return []*cp.Shape{cp.NewCircle(body, d.Radius, cp.Vector{})}
	case ShapeCapsule:
		// Upright capsules have a circular footprint
		if d.Orientation == AxisY {
			return []*cp.Shape{cp.NewCircle(body, d.Radius, cp.Vector{})}
		}
		a, b := s.capsuleEnds()
		return []*cp.Shape{cp.NewSegment(body, a, b, d.Radius)}
	case ShapeBox:
		return []*cp.Shape{cp.NewBox(body, 2*d.HalfExtents.X, 2*d.HalfExtents.Z, 0)}
	case ShapeMesh:
		shapes := make([]*cp.Shape, 0, len(d.Segments))
		for _, seg := range d.Segments {
			shapes = append(shapes, cp.NewSegment(body, toCP(seg.A), toCP(seg.B), d.Radius))
		}
		return shapes
	}
	return nil
}

// toCP maps the horizontal plane onto chipmunk space, world Z becomes chipmunk Y
func toCP(v vmath.Vec3) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

func fromCP(v cp.Vector, y float64) vmath.Vec3 {
	return vmath.Vec3{X: v.X, Y: y, Z: v.Y}
}

// Rotation around +Y turns Z towards X, which is clockwise in chipmunk's X/Y plane
func yawToAngle(yaw float64) float64 { return -yaw }
func angleToYaw(a float64) float64   { return -a }
