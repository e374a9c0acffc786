package render

import (
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pincraft/components"
	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/vmath"
)

// cellAspect is the height of a terminal cell over its width
const cellAspect = 2.0

// Background is the colour behind the scene
var Background = tcell.NewRGBColor(8, 8, 14)

// Renderer draws the meshes of a world onto a tcell screen through an orthographic camera
type Renderer struct {
	screen tcell.Screen
	geoms  map[components.MeshHandle]*components.Geometry
	next   components.MeshHandle
}

// NewRenderer creates a renderer drawing on screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		geoms:  make(map[components.MeshHandle]*components.Geometry),
	}
}

// Allocate registers a geometry and returns its handle
func (r *Renderer) Allocate(g *components.Geometry) components.MeshHandle {
	r.next++
	r.geoms[r.next] = g
	return r.next
}

// Geometry returns the geometry registered under h
func (r *Renderer) Geometry(h components.MeshHandle) (*components.Geometry, bool) {
	g, ok := r.geoms[h]
	return g, ok
}

// Screen returns the target screen
func (r *Renderer) Screen() tcell.Screen {
	return r.screen
}

// viewport maps view-plane coordinates to cell coordinates
type viewport struct {
	cx, cy float64
	scale  float64 // rows per world unit
	w, h   int
}

func newViewport(w, h int, extent float64) viewport {
	if extent <= 0 {
		extent = 1
	}
	return viewport{
		cx:    float64(w) / 2,
		cy:    float64(h) / 2,
		scale: float64(h) / extent,
		w:     w,
		h:     h,
	}
}

func (v viewport) toCell(x, y float64) (float64, float64) {
	return v.cx + x*v.scale*cellAspect, v.cy - y*v.scale
}

func (v viewport) toView(col, row float64) (float64, float64) {
	return (col - v.cx) / (v.scale * cellAspect), (v.cy - row) / v.scale
}

type drawable struct {
	entity   engine.Entity
	geom     *components.Geometry
	renderer *components.MeshRendererComponent
	pos      vmath.Vec3
	rot      vmath.Quat
	depth    float64
}

// DrawWorld clears the screen and draws every visible mesh as seen by cam
// Meshes without an allocated handle are skipped
func (r *Renderer) DrawWorld(w *engine.World, cam *components.CameraComponent) {
	bg := tcell.StyleDefault.Background(Background)
	r.screen.Fill(' ', bg)
	if cam == nil {
		return
	}

	sw, sh := r.screen.Size()
	vp := newViewport(sw, sh, cam.Extent)
	_, _, forward := cam.Basis()

	var items []drawable
	for _, e := range w.GetEntitiesWith(
		engine.TypeOf[*components.MeshComponent](),
		engine.TypeOf[*components.MeshRendererComponent](),
	) {
		mc, _ := engine.Get[*components.MeshComponent](w, e)
		mr, _ := engine.Get[*components.MeshRendererComponent](w, e)
		if mr.Hidden || mc.Handle == 0 {
			continue
		}
		g, ok := r.geoms[mc.Handle]
		if !ok {
			continue
		}
		pos, rot, ok := components.WorldTransform(w, e)
		if !ok {
			continue
		}
		items = append(items, drawable{
			entity:   e,
			geom:     g,
			renderer: mr,
			pos:      pos,
			rot:      rot,
			depth:    vmath.V3Dot(vmath.V3Sub(pos, cam.Eye), forward),
		})
	}

	// Lower layers first, then far to near
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].renderer.Layer != items[j].renderer.Layer {
			return items[i].renderer.Layer < items[j].renderer.Layer
		}
		return items[i].depth > items[j].depth
	})

	lights := collectLights(w)
	for _, it := range items {
		style := bg.Foreground(tcellColour(shade(it.renderer.Material, it.pos, lights)))
		glyph := it.renderer.Glyph
		if glyph == 0 {
			glyph = '█'
		}
		switch it.geom.Kind {
		case components.GeometrySphere:
			r.fillSphere(vp, cam, it, glyph, style)
		case components.GeometryBox:
			r.fillBox(vp, cam, it, glyph, style)
		case components.GeometryPolyline:
			r.strokePolyline(vp, cam, it, glyph, style)
		}
	}
}

func (r *Renderer) fillSphere(vp viewport, cam *components.CameraComponent, it drawable, glyph rune, style tcell.Style) {
	x, y := cam.Project(it.pos)
	rad := it.geom.Radius
	col, row := vp.toCell(x, y)
	rc := rad * vp.scale * cellAspect
	rr := rad * vp.scale

	// Always cover at least the center cell
	r.put(vp, int(math.Floor(col)), int(math.Floor(row)), glyph, style)
	for cy := int(math.Floor(row - rr)); cy <= int(math.Ceil(row+rr)); cy++ {
		for cx := int(math.Floor(col - rc)); cx <= int(math.Ceil(col+rc)); cx++ {
			px, py := vp.toView(float64(cx)+.5, float64(cy)+.5)
			dx, dy := px-x, py-y
			if dx*dx+dy*dy <= rad*rad {
				r.put(vp, cx, cy, glyph, style)
			}
		}
	}
}

func (r *Renderer) fillBox(vp viewport, cam *components.CameraComponent, it drawable, glyph rune, style tcell.Style) {
	he := it.geom.HalfExtents
	corners := [4]vmath.Vec3{
		{X: -he.X, Y: he.Y, Z: -he.Z},
		{X: he.X, Y: he.Y, Z: -he.Z},
		{X: he.X, Y: he.Y, Z: he.Z},
		{X: -he.X, Y: he.Y, Z: he.Z},
	}
	var poly [4][2]float64
	minC, minR := math.Inf(1), math.Inf(1)
	maxC, maxR := math.Inf(-1), math.Inf(-1)
	for i, c := range corners {
		wp := vmath.V3Add(it.pos, vmath.QuatRotate(it.rot, c))
		x, y := cam.Project(wp)
		poly[i] = [2]float64{x, y}
		col, row := vp.toCell(x, y)
		minC, maxC = math.Min(minC, col), math.Max(maxC, col)
		minR, maxR = math.Min(minR, row), math.Max(maxR, row)
	}

	cx, cy := cam.Project(it.pos)
	col, row := vp.toCell(cx, cy)
	r.put(vp, int(math.Floor(col)), int(math.Floor(row)), glyph, style)
	for y := int(math.Floor(minR)); y <= int(math.Ceil(maxR)); y++ {
		for x := int(math.Floor(minC)); x <= int(math.Ceil(maxC)); x++ {
			px, py := vp.toView(float64(x)+.5, float64(y)+.5)
			if insideConvex(poly[:], px, py) {
				r.put(vp, x, y, glyph, style)
			}
		}
	}
}

// insideConvex reports whether (x, y) lies inside a convex polygon of either winding
func insideConvex(poly [][2]float64, x, y float64) bool {
	sign := 0.0
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		cross := (b[0]-a[0])*(y-a[1]) - (b[1]-a[1])*(x-a[0])
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, cross)
		} else if math.Copysign(1, cross) != sign {
			return false
		}
	}
	return true
}

func (r *Renderer) strokePolyline(vp viewport, cam *components.CameraComponent, it drawable, glyph rune, style tcell.Style) {
	pts := it.geom.Points
	if len(pts) == 0 {
		return
	}
	cells := make([][2]int, len(pts))
	for i, p := range pts {
		wp := vmath.V3Add(it.pos, vmath.QuatRotate(it.rot, p))
		col, row := vp.toCell(cam.Project(wp))
		cells[i] = [2]int{int(math.Floor(col)), int(math.Floor(row))}
	}
	for i := 1; i < len(cells); i++ {
		r.line(vp, cells[i-1], cells[i], glyph, style)
	}
	if it.geom.Closed && len(cells) > 2 {
		r.line(vp, cells[len(cells)-1], cells[0], glyph, style)
	}
	if len(cells) == 1 {
		r.put(vp, cells[0][0], cells[0][1], glyph, style)
	}
}

// line draws a Bresenham segment between two cells
func (r *Renderer) line(vp viewport, a, b [2]int, glyph rune, style tcell.Style) {
	x0, y0, x1, y1 := a[0], a[1], b[0], b[1]
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		r.put(vp, x0, y0, glyph, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (r *Renderer) put(vp viewport, x, y int, glyph rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= vp.w || y >= vp.h {
		return
	}
	r.screen.SetContent(x, y, glyph, nil, style)
}
