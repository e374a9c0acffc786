package engine

import (
	"reflect"
	"sort"
	"time"
)

// Entity is a unique identifier for an entity, 0 is never issued
type Entity uint64

// Component is a marker interface for all components
type Component interface{}

// System is per-frame logic registered explicitly with the world
type System interface {
	Update(world *World, dt time.Duration)
	Priority() int // Lower values run first
}

// World contains all entities and their components
// Accessed only from the frame loop goroutine
type World struct {
	nextEntityID     Entity
	entities         map[Entity]map[reflect.Type]Component
	systems          []System
	componentsByType map[reflect.Type][]Entity // Reverse index: component type -> entities, creation order
}

// NewWorld creates a new ECS world
func NewWorld() *World {
	return &World{
		nextEntityID:     1,
		entities:         make(map[Entity]map[reflect.Type]Component),
		systems:          make([]System, 0),
		componentsByType: make(map[reflect.Type][]Entity),
	}
}

// CreateEntity creates a new entity and returns its ID
func (w *World) CreateEntity() Entity {
	id := w.nextEntityID
	w.nextEntityID++
	w.entities[id] = make(map[reflect.Type]Component)
	return id
}

// Exists reports whether the entity was created by this world
func (w *World) Exists(entity Entity) bool {
	_, ok := w.entities[entity]
	return ok
}

// AddComponent adds or replaces a component on an entity
// Pointer components are shared, value components are copied
func (w *World) AddComponent(entity Entity, component Component) {
	comps, ok := w.entities[entity]
	if !ok {
		return // Entity doesn't exist
	}

	compType := reflect.TypeOf(component)
	if _, exists := comps[compType]; !exists {
		w.componentsByType[compType] = append(w.componentsByType[compType], entity)
	}
	comps[compType] = component
}

// GetComponent retrieves a component from an entity
func (w *World) GetComponent(entity Entity, componentType reflect.Type) (Component, bool) {
	if components, ok := w.entities[entity]; ok {
		if comp, ok := components[componentType]; ok {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent checks if an entity has a specific component
func (w *World) HasComponent(entity Entity, componentType reflect.Type) bool {
	_, ok := w.GetComponent(entity, componentType)
	return ok
}

// GetEntitiesWith returns all entities that have the specified component types, in creation order
func (w *World) GetEntitiesWith(componentTypes ...reflect.Type) []Entity {
	if len(componentTypes) == 0 {
		return nil
	}

	candidates := w.componentsByType[componentTypes[0]]
	result := make([]Entity, 0, len(candidates))
	for _, entity := range candidates {
		hasAll := true
		for _, compType := range componentTypes[1:] {
			if !w.HasComponent(entity, compType) {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, entity)
		}
	}
	return result
}

// Get is the typed accessor over GetComponent
func Get[T Component](w *World, entity Entity) (T, bool) {
	var zero T
	comp, ok := w.GetComponent(entity, reflect.TypeOf(zero))
	if !ok {
		return zero, false
	}
	return comp.(T), true
}

// TypeOf returns the reflect type used to key component T
func TypeOf[T Component]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

// AddSystem registers a system, stable-sorted by priority
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// Update runs all systems
func (w *World) Update(dt time.Duration) {
	for _, system := range w.systems {
		system.Update(w, dt)
	}
}

// EntityCount returns the number of entities in the world
func (w *World) EntityCount() int {
	return len(w.entities)
}
