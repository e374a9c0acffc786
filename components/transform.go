package components

import (
	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/vmath"
)

// TransformComponent places an entity in the world, relative to Parent when set
type TransformComponent struct {
	Position vmath.Vec3
	Rotation vmath.Quat
	Parent   engine.Entity
}

// maxParentDepth bounds the parent walk against accidental cycles
const maxParentDepth = 16

// WorldTransform resolves the entity's transform through its parent chain
func WorldTransform(w *engine.World, e engine.Entity) (vmath.Vec3, vmath.Quat, bool) {
	tc, ok := engine.Get[*TransformComponent](w, e)
	if !ok {
		return vmath.Vec3{}, vmath.QuatIdentity, false
	}

	pos, rot := tc.Position, tc.Rotation
	parent := tc.Parent
	for depth := 0; parent != 0 && depth < maxParentDepth; depth++ {
		ptc, ok := engine.Get[*TransformComponent](w, parent)
		if !ok {
			break
		}
		pos = vmath.V3Add(ptc.Position, vmath.QuatRotate(ptc.Rotation, pos))
		rot = vmath.QuatMul(ptc.Rotation, rot)
		parent = ptc.Parent
	}
	return pos, rot, true
}
