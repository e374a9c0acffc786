package components

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/pincraft/vmath"
)

// LightType distinguishes directional from point lights
type LightType uint8

const (
	LightDirectional LightType = iota
	LightPoint
)

// LightComponent illuminates meshes
// Directional lights shine along Direction, point lights from the entity's world position
type LightComponent struct {
	Type      LightType
	Colour    colorful.Color
	Intensity float64
	Range     float64
	Direction vmath.Vec3
}
