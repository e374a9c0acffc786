package components

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/pincraft/vmath"
)

// GeometryKind selects how a mesh is outlined on screen
type GeometryKind uint8

const (
	GeometrySphere GeometryKind = iota
	GeometryBox
	GeometryPolyline
)

// Geometry is the local-space shape of a mesh
type Geometry struct {
	Kind        GeometryKind
	Radius      float64      // sphere
	HalfExtents vmath.Vec3   // box
	Points      []vmath.Vec3 // polyline, closed when Closed is set
	Closed      bool
}

// MeshHandle refers to renderer-side data allocated for a geometry, 0 is unallocated
type MeshHandle uint32

// MeshComponent attaches geometry to an entity
type MeshComponent struct {
	Geometry *Geometry
	Handle   MeshHandle
}

// Material is the surface colour of a mesh
type Material struct {
	Colour   colorful.Color
	Emissive float64 // 0 lit only by lights, 1 full colour regardless of lighting
}

// MeshRendererComponent controls how a mesh is drawn
type MeshRendererComponent struct {
	Glyph    rune
	Material Material
	Hidden   bool
	Layer    int // higher layers draw over lower ones
}
