package entities

import "github.com/lixenwraith/pincraft/components"

// Allocator creates renderer-side data for a geometry
type Allocator interface {
	Allocate(g *components.Geometry) components.MeshHandle
}

// AllocationBatch queues meshes created during setup until a renderer can allocate them
// The batch is owned by whoever builds the scene and is drained once the renderer exists
type AllocationBatch struct {
	pending []*components.MeshComponent
}

// Add queues a mesh unless it already has a handle
func (b *AllocationBatch) Add(m *components.MeshComponent) {
	if m == nil || m.Geometry == nil || m.Handle != 0 {
		return
	}
	b.pending = append(b.pending, m)
}

// Len returns the number of queued meshes
func (b *AllocationBatch) Len() int {
	return len(b.pending)
}

// Drain allocates every queued geometry once, assigns the handles and empties the batch
// Meshes sharing a geometry share its handle
// Returns the number of allocations made
func (b *AllocationBatch) Drain(a Allocator) int {
	handles := make(map[*components.Geometry]components.MeshHandle, len(b.pending))
	for _, m := range b.pending {
		h, ok := handles[m.Geometry]
		if !ok {
			h = a.Allocate(m.Geometry)
			handles[m.Geometry] = h
		}
		m.Handle = h
	}
	b.pending = b.pending[:0]
	return len(handles)
}
