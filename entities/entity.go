package entities

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/pincraft/components"
	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/physics"
	"github.com/lixenwraith/pincraft/vmath"
)

// Options lists the parts of an entity to create, nil parts are skipped
type Options struct {
	Parent   engine.Entity
	Position vmath.Vec3
	Rotation vmath.Quat // zero value means identity

	RigidBody *physics.RigidBodyDescriptor
	Ghost     *physics.Shape

	Geometry *components.Geometry
	Renderer *components.MeshRendererComponent
	Light    *components.LightComponent
}

// EntityInfo holds the handles of everything created for one entity
// Components are keyed by their entity, so each non-zero handle equals Entity
type EntityInfo struct {
	Entity    engine.Entity
	Transform engine.Entity
	Collider  engine.Entity
	Mesh      engine.Entity
	Renderer  engine.Entity
	Light     engine.Entity
}

// Builder creates entities in a scene world and its physics world
type Builder struct {
	World   *engine.World
	Physics *physics.World
	Batch   *AllocationBatch // receives meshes waiting for a render handle
}

// MakeEntity creates an entity with a transform and the requested parts
func (b *Builder) MakeEntity(opts Options) (EntityInfo, error) {
	rot := opts.Rotation
	if rot == (vmath.Quat{}) {
		rot = vmath.QuatIdentity
	}

	e := b.World.CreateEntity()
	info := EntityInfo{Entity: e, Transform: e}
	b.World.AddComponent(e, &components.TransformComponent{
		Position: opts.Position,
		Rotation: rot,
		Parent:   opts.Parent,
	})

	if opts.Geometry != nil {
		mesh := &components.MeshComponent{Geometry: opts.Geometry}
		b.World.AddComponent(e, mesh)
		info.Mesh = e
		if b.Batch != nil {
			b.Batch.Add(mesh)
		}
	}
	if opts.Renderer != nil {
		r := *opts.Renderer
		b.World.AddComponent(e, &r)
		info.Renderer = e
	}

	if opts.RigidBody != nil || opts.Ghost != nil {
		if b.Physics == nil {
			return info, errors.Errorf("entity %d: collider requested without a physics world", e)
		}
		// Colliders live in world space
		pos, wrot, _ := components.WorldTransform(b.World, e)
		cc := &components.ColliderComponent{}
		if opts.RigidBody != nil {
			rb, err := b.Physics.AddBody(*opts.RigidBody, pos, wrot, e)
			if err != nil {
				return info, errors.Wrapf(err, "entity %d", e)
			}
			cc.Body = rb
		} else {
			g, err := b.Physics.AddGhost(opts.Ghost, pos, e)
			if err != nil {
				return info, errors.Wrapf(err, "entity %d", e)
			}
			cc.Ghost = g
		}
		b.World.AddComponent(e, cc)
		info.Collider = e
	}

	if opts.Light != nil {
		l := *opts.Light
		b.World.AddComponent(e, &l)
		info.Light = e
	}
	return info, nil
}

// Transform returns the entity's transform component
func (b *Builder) Transform(e engine.Entity) *components.TransformComponent {
	tc, _ := engine.Get[*components.TransformComponent](b.World, e)
	return tc
}

// Body returns the entity's rigid body, nil when it has none
func (b *Builder) Body(e engine.Entity) *physics.RigidBody {
	cc, ok := engine.Get[*components.ColliderComponent](b.World, e)
	if !ok {
		return nil
	}
	return cc.Body
}

// Ghost returns the entity's trigger volume, nil when it has none
func (b *Builder) Ghost(e engine.Entity) *physics.Ghost {
	cc, ok := engine.Get[*components.ColliderComponent](b.World, e)
	if !ok {
		return nil
	}
	return cc.Ghost
}

// Renderer returns the entity's mesh renderer, nil when it has none
func (b *Builder) Renderer(e engine.Entity) *components.MeshRendererComponent {
	r, _ := engine.Get[*components.MeshRendererComponent](b.World, e)
	return r
}

// Light returns the entity's light, nil when it has none
func (b *Builder) Light(e engine.Entity) *components.LightComponent {
	l, _ := engine.Get[*components.LightComponent](b.World, e)
	return l
}
