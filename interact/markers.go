package interact

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/lixenwraith/pincraft/components"
	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/entities"
	"github.com/lixenwraith/pincraft/physics"
	"github.com/lixenwraith/pincraft/vmath"
)

const infoSphereRadius = 1.5

var hintBoxHalfExtents = vmath.Vec3{X: 1, Y: 1, Z: .2}

// marker shows a fixed message when its own entity is hovered or used
type marker struct {
	gs      *engine.GameState
	info    entities.EntityInfo
	message string
}

func (m *marker) Hover(e engine.Entity) bool {
	if e != m.info.Entity {
		return false
	}
	m.gs.ShowMessage(m.message)
	return true
}

func (m *marker) Blur(engine.Entity) bool { return false }

func (m *marker) Interact(e engine.Entity) bool {
	return m.Hover(e)
}

// Info returns the marker's entity handles
func (m *marker) Info() entities.EntityInfo { return m.info }

// Message returns the text shown on focus
func (m *marker) Message() string { return m.message }

// InfoSphere is a solid sphere that describes itself when looked at
type InfoSphere struct {
	marker
}

// NewInfoSphere places an info sphere at position
func NewInfoSphere(gs *engine.GameState, b *entities.Builder, position vmath.Vec3, message string) (*InfoSphere, error) {
	shape, err := physics.MakeShape(physics.ShapeDescriptor{Type: physics.ShapeSphere, Radius: infoSphereRadius})
	if err != nil {
		return nil, errors.Wrap(err, "info sphere")
	}
	info, err := b.MakeEntity(entities.Options{
		Position:  position,
		RigidBody: &physics.RigidBodyDescriptor{Mass: 0, Shape: shape, IsKinematic: true},
		Geometry:  &components.Geometry{Kind: components.GeometrySphere, Radius: infoSphereRadius},
		Renderer: &components.MeshRendererComponent{
			Glyph:    'o',
			Material: components.Material{Colour: colorful.Color{R: .85, G: .8, B: .55}, Emissive: .3},
			Layer:    1,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "info sphere")
	}
	return &InfoSphere{marker{gs: gs, info: info, message: message}}, nil
}

// HintPreset names one of the fixed hint box placements
type HintPreset string

const (
	HintNum  HintPreset = "num"
	HintRing HintPreset = "ring"
	HintGrid HintPreset = "grid"
)

type hintPlacement struct {
	position vmath.Vec3
	yawDeg   float64
	message  string
}

var hintPlacements = map[HintPreset]hintPlacement{
	HintNum: {
		position: vmath.Vec3{X: -28.6, Y: 4.3, Z: 30.2},
		yawDeg:   0,
		message:  "I've seen these before, they are numbers used by the ancients.\nThey are organized in a diamond shape.",
	},
	HintRing: {
		position: vmath.Vec3{X: -3.8, Y: 1.3, Z: 4.5},
		yawDeg:   -70,
		message:  `"Walk the path from tail to head to become one with the shadow."`,
	},
	HintGrid: {
		position: vmath.Vec3{X: 23, Y: 1.3, Z: 13.5},
		yawDeg:   35,
		message:  `"Five marks eternal power".` + "\n" + `"Mark the fives to absorb the darkness."`,
	},
}

// HintPresets lists every preset in placement order
var HintPresets = []HintPreset{HintNum, HintRing, HintGrid}

// HintBox is a trigger panel with a preset placement and message
type HintBox struct {
	marker
	which HintPreset
}

// NewHintBox places the preset hint box which
func NewHintBox(gs *engine.GameState, b *entities.Builder, which HintPreset) (*HintBox, error) {
	p, ok := hintPlacements[which]
	if !ok {
		return nil, errors.Errorf("unknown hint box %q", which)
	}
	shape, err := physics.MakeShape(physics.ShapeDescriptor{Type: physics.ShapeBox, HalfExtents: hintBoxHalfExtents})
	if err != nil {
		return nil, errors.Wrapf(err, "hint box %s", which)
	}
	info, err := b.MakeEntity(entities.Options{
		Position: p.position,
		Rotation: vmath.QuatFromEuler(0, vmath.Deg2Rad(p.yawDeg), 0),
		RigidBody: &physics.RigidBodyDescriptor{
			Mass:        0,
			Shape:       shape,
			IsKinematic: true,
			IsTrigger:   true,
		},
		Geometry: &components.Geometry{Kind: components.GeometryBox, HalfExtents: hintBoxHalfExtents},
		Renderer: &components.MeshRendererComponent{
			Glyph:    '=',
			Material: components.Material{Colour: colorful.Color{R: .75, G: .75, B: .8}, Emissive: .3},
			Layer:    1,
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "hint box %s", which)
	}
	return &HintBox{marker: marker{gs: gs, info: info, message: p.message}, which: which}, nil
}

// Which returns the preset this box was placed from
func (h *HintBox) Which() HintPreset { return h.which }
