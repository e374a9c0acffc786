package interact

import (
	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/physics"
	"github.com/lixenwraith/pincraft/vmath"
)

// Reach is how far the player can focus an object, in world units
const Reach = 3.0

// Interactable reacts to the player looking at or using an entity
// Each method reports whether it handled the entity
type Interactable interface {
	Hover(e engine.Entity) bool
	Blur(e engine.Entity) bool
	Interact(e engine.Entity) bool
}

// RayCaster finds the closest collider along a ray
type RayCaster interface {
	RayCastClosest(origin, dir vmath.Vec3, maxDist float64) (physics.RayHit, bool)
}

// Dispatcher tracks the focused entity and routes focus changes to interactables
type Dispatcher struct {
	caster RayCaster
	items  []Interactable
	focus  engine.Entity
}

// NewDispatcher creates a dispatcher querying caster
func NewDispatcher(caster RayCaster) *Dispatcher {
	return &Dispatcher{caster: caster}
}

// Register adds an interactable, earlier registrations are asked first
func (d *Dispatcher) Register(i Interactable) {
	d.items = append(d.items, i)
}

// Focus returns the entity focused on the last update, 0 when none
func (d *Dispatcher) Focus() engine.Entity {
	return d.focus
}

// BroadcastHover offers e to each interactable until one handles it
func (d *Dispatcher) BroadcastHover(e engine.Entity) bool {
	for _, i := range d.items {
		if i.Hover(e) {
			return true
		}
	}
	return false
}

// BroadcastBlur offers e to each interactable until one handles it
func (d *Dispatcher) BroadcastBlur(e engine.Entity) bool {
	for _, i := range d.items {
		if i.Blur(e) {
			return true
		}
	}
	return false
}

// BroadcastInteract offers e to each interactable until one handles it
func (d *Dispatcher) BroadcastInteract(e engine.Entity) bool {
	for _, i := range d.items {
		if i.Interact(e) {
			return true
		}
	}
	return false
}

// Update casts the view ray and fires blur, interact and hover for this frame
func (d *Dispatcher) Update(origin, dir vmath.Vec3, interactPressed bool) {
	var focus engine.Entity
	hit, ok := d.caster.RayCastClosest(origin, dir, Reach)
	if ok {
		focus = hit.Entity
	}

	prev := d.focus
	d.focus = focus

	if prev != 0 && prev != focus {
		d.BroadcastBlur(prev)
	}
	if focus == 0 {
		return
	}
	if interactPressed {
		d.BroadcastInteract(focus)
	} else if focus != prev {
		d.BroadcastHover(focus)
	}
}
