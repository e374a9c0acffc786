package components

import "github.com/lixenwraith/pincraft/physics"

// ColliderComponent links an entity to its physics object, either a body or a ghost
type ColliderComponent struct {
	Body  *physics.RigidBody
	Ghost *physics.Ghost
}
