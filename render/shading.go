package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/pincraft/components"
	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/vmath"
)

// ambient light reaching every surface, linear
const ambient = .12

// surfaceNormal is shared by every mesh, they are drawn as seen from above
var surfaceNormal = vmath.AxisY

// litLight is a light resolved to world space for one frame
type litLight struct {
	kind      components.LightType
	r, g, b   float64 // linear colour scaled by intensity
	position  vmath.Vec3
	direction vmath.Vec3
	rng       float64
}

// collectLights resolves every light entity in the world
func collectLights(w *engine.World) []litLight {
	var out []litLight
	for _, e := range w.GetEntitiesWith(engine.TypeOf[*components.LightComponent]()) {
		lc, _ := engine.Get[*components.LightComponent](w, e)
		r, g, b := lc.Colour.LinearRgb()
		l := litLight{
			kind:      lc.Type,
			r:         r * lc.Intensity,
			g:         g * lc.Intensity,
			b:         b * lc.Intensity,
			direction: vmath.V3Normalize(lc.Direction),
			rng:       lc.Range,
		}
		if pos, _, ok := components.WorldTransform(w, e); ok {
			l.position = pos
		}
		out = append(out, l)
	}
	return out
}

// shade lights a material at pos, mixing in linear space
func shade(mat components.Material, pos vmath.Vec3, lights []litLight) colorful.Color {
	lr, lg, lb := ambient, ambient, ambient
	for _, l := range lights {
		var k float64
		switch l.kind {
		case components.LightDirectional:
			k = math.Max(0, -vmath.V3Dot(surfaceNormal, l.direction))
		case components.LightPoint:
			if l.rng <= 0 {
				continue
			}
			d := vmath.V3Dist(pos, l.position)
			if d >= l.rng {
				continue
			}
			f := 1 - d/l.rng
			k = f * f
		}
		lr += l.r * k
		lg += l.g * k
		lb += l.b * k
	}

	r, g, b := mat.Colour.LinearRgb()
	e := vmath.Clamp(mat.Emissive, 0, 1)
	mix := func(base, lit float64) float64 {
		return vmath.Clamp(base*(e+(1-e)*lit), 0, 1)
	}
	return colorful.LinearRgb(mix(r, lr), mix(g, lg), mix(b, lb))
}

// tcellColour converts to a 24-bit terminal colour
func tcellColour(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
