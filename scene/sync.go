package scene

import (
	"time"

	"github.com/lixenwraith/pincraft/components"
	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/vmath"
)

// TransformSyncSystem copies simulated body poses back into transforms
// Bodies live in world space, so a child's local pose is recovered through its parent
type TransformSyncSystem struct{}

// Priority runs the sync before any other system reads transforms
func (TransformSyncSystem) Priority() int { return 0 }

// Update writes every moving body's pose into its transform
func (TransformSyncSystem) Update(w *engine.World, _ time.Duration) {
	for _, e := range w.GetEntitiesWith(engine.TypeOf[*components.ColliderComponent](), engine.TypeOf[*components.TransformComponent]()) {
		cc, _ := engine.Get[*components.ColliderComponent](w, e)
		if cc.Body == nil || cc.Body.IsStatic() {
			continue
		}
		tc, _ := engine.Get[*components.TransformComponent](w, e)

		pos, rot := cc.Body.Position(), cc.Body.Rotation()
		if tc.Parent != 0 {
			ppos, prot, ok := components.WorldTransform(w, tc.Parent)
			if ok {
				inv := vmath.QuatConjugate(prot)
				pos = vmath.QuatRotate(inv, vmath.V3Sub(pos, ppos))
				rot = vmath.QuatMul(inv, rot)
			}
		}

		tc.Position = pos
		if !cc.Body.RotationLocked() {
			tc.Rotation = rot
		}
	}
}
