package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/pincraft/components"
	"github.com/lixenwraith/pincraft/engine"
	"github.com/lixenwraith/pincraft/vmath"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func screenText(s tcell.Screen) string {
	_, h := s.Size()
	var rows []string
	for y := 0; y < h; y++ {
		rows = append(rows, rowText(s, y))
	}
	return strings.Join(rows, "\n")
}

func topDownCamera(extent float64) *components.CameraComponent {
	cam := &components.CameraComponent{Extent: extent}
	cam.LookAt(vmath.Vec3{Y: 10}, vmath.Vec3{}, vmath.AxisZ)
	return cam
}

func addMesh(w *engine.World, r *Renderer, pos vmath.Vec3, g *components.Geometry, glyph rune) engine.Entity {
	e := w.CreateEntity()
	w.AddComponent(e, &components.TransformComponent{Position: pos, Rotation: vmath.QuatIdentity})
	w.AddComponent(e, &components.MeshComponent{Geometry: g, Handle: r.Allocate(g)})
	w.AddComponent(e, &components.MeshRendererComponent{
		Glyph:    glyph,
		Material: components.Material{Colour: colorful.Color{R: 1, G: 1, B: 1}, Emissive: 1},
	})
	return e
}

func TestDrawWorldSphereAtCenter(t *testing.T) {
	s := newScreen(t, 40, 20)
	r := NewRenderer(s)
	w := engine.NewWorld()
	addMesh(w, r, vmath.Vec3{}, &components.Geometry{Kind: components.GeometrySphere, Radius: 1}, 'o')

	r.DrawWorld(w, topDownCamera(10))

	if ch, _, _, _ := s.GetContent(20, 10); ch != 'o' {
		t.Errorf("Expected sphere at screen center, got %q\n%s", ch, screenText(s))
	}
	if ch, _, _, _ := s.GetContent(0, 0); ch != ' ' {
		t.Errorf("Expected empty corner, got %q", ch)
	}
}

func TestDrawWorldSkipsUnallocatedAndHidden(t *testing.T) {
	s := newScreen(t, 40, 20)
	r := NewRenderer(s)
	w := engine.NewWorld()

	g := &components.Geometry{Kind: components.GeometrySphere, Radius: 1}
	e := w.CreateEntity()
	w.AddComponent(e, &components.TransformComponent{Rotation: vmath.QuatIdentity})
	w.AddComponent(e, &components.MeshComponent{Geometry: g})
	w.AddComponent(e, &components.MeshRendererComponent{Glyph: 'x'})

	hidden := addMesh(w, r, vmath.Vec3{}, g, 'h')
	mr, _ := engine.Get[*components.MeshRendererComponent](w, hidden)
	mr.Hidden = true

	r.DrawWorld(w, topDownCamera(10))
	if strings.ContainsAny(screenText(s), "xh") {
		t.Errorf("Unallocated and hidden meshes must not draw\n%s", screenText(s))
	}
}

func TestDrawWorldPolylineAndUpAxis(t *testing.T) {
	s := newScreen(t, 40, 20)
	r := NewRenderer(s)
	w := engine.NewWorld()

	// A wall along X, two units up the board (+Z is screen up)
	addMesh(w, r, vmath.Vec3{Z: 2}, &components.Geometry{
		Kind:   components.GeometryPolyline,
		Points: []vmath.Vec3{{X: -3}, {X: 3}},
	}, '#')

	r.DrawWorld(w, topDownCamera(10))

	// 2 rows per world unit: the wall sits 4 rows above the center
	if row := rowText(s, 6); !strings.Contains(row, "###") {
		t.Errorf("Expected wall on row 6\n%s", screenText(s))
	}
	if strings.Contains(rowText(s, 14), "#") {
		t.Error("Wall drawn below the center, +Z should project upwards")
	}
}

func TestDrawWorldLayerOrder(t *testing.T) {
	s := newScreen(t, 40, 20)
	r := NewRenderer(s)
	w := engine.NewWorld()

	g := &components.Geometry{Kind: components.GeometryBox, HalfExtents: vmath.Vec3{X: 1, Y: .1, Z: 1}}
	top := addMesh(w, r, vmath.Vec3{}, g, 'T')
	addMesh(w, r, vmath.Vec3{}, g, 'B')
	mr, _ := engine.Get[*components.MeshRendererComponent](w, top)
	mr.Layer = 2

	r.DrawWorld(w, topDownCamera(10))
	if ch, _, _, _ := s.GetContent(20, 10); ch != 'T' {
		t.Errorf("Higher layer should draw last, got %q", ch)
	}
}

func TestShadeUsesLights(t *testing.T) {
	mat := components.Material{Colour: colorful.Color{R: 1, G: 1, B: 1}}
	dark := shade(mat, vmath.Vec3{}, nil)

	lights := []litLight{{kind: components.LightDirectional, r: .8, g: .8, b: .8, direction: vmath.Vec3{Y: -1}}}
	lit := shade(mat, vmath.Vec3{}, lights)
	if lit.R <= dark.R {
		t.Errorf("Directional light from above should brighten: %v vs %v", lit, dark)
	}

	below := []litLight{{kind: components.LightDirectional, r: .8, g: .8, b: .8, direction: vmath.Vec3{Y: 1}}}
	if c := shade(mat, vmath.Vec3{}, below); c.R != dark.R {
		t.Errorf("Light from below should not contribute: %v vs %v", c, dark)
	}

	far := []litLight{{kind: components.LightPoint, r: 1, g: 1, b: 1, position: vmath.Vec3{X: 20}, rng: 8.5}}
	if c := shade(mat, vmath.Vec3{}, far); c.R != dark.R {
		t.Error("Point light out of range should not contribute")
	}

	emissive := components.Material{Colour: colorful.Color{R: .5}, Emissive: 1}
	if c := shade(emissive, vmath.Vec3{}, nil); !c.AlmostEqualRgb(colorful.Color{R: .5}) {
		t.Errorf("Fully emissive material keeps its colour, got %v", c)
	}
}

func TestHUDFieldsAndMessage(t *testing.T) {
	s := newScreen(t, 60, 20)
	h := NewHUD(FieldScore, FieldDeaths)
	h.SetText(FieldScore, "1500")
	h.SetText(FieldDeaths, "2")

	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	gs := engine.NewGameState(engine.NewScheduler(clock))
	gs.Listen(h)
	gs.ShowMessage("Faint carvings circle the sphere.")

	s.Fill(' ', tcell.StyleDefault)
	h.Draw(s)

	top := rowText(s, 0)
	if !strings.Contains(top, "score 1500") || !strings.Contains(top, "deaths 2") {
		t.Errorf("Unexpected status line %q", top)
	}
	if !strings.Contains(screenText(s), "Faint carvings circle the sphere.") {
		t.Errorf("Message not drawn\n%s", screenText(s))
	}
	if h.Updates() != 2 {
		t.Errorf("Expected 2 updates, got %d", h.Updates())
	}
}

func TestHUDOverlays(t *testing.T) {
	s := newScreen(t, 60, 20)
	h := NewHUD(FieldScore)
	h.Title = "PINCRAFT"
	h.Subtitle = "Space to start"

	h.ShowOverlay(OverlayLoading, true)
	h.SetLoadProgress(.5)
	h.Draw(s)
	text := screenText(s)
	if !strings.Contains(text, "Loading") || !strings.Contains(text, "█") || !strings.Contains(text, "░") {
		t.Errorf("Expected half-filled loading bar\n%s", text)
	}

	h.ShowOverlay(OverlayLoading, false)
	h.ShowOverlay(OverlayTitle, true)
	s.Fill(' ', tcell.StyleDefault)
	h.Draw(s)
	if !strings.Contains(screenText(s), "PINCRAFT") {
		t.Error("Expected title overlay")
	}

	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	gs := engine.NewGameState(engine.NewScheduler(clock))
	gs.Listen(h)
	gs.SetEnd()
	if !h.OverlayVisible(OverlayEnding) {
		t.Error("Ending should raise the ending overlay")
	}
	s.Fill(' ', tcell.StyleDefault)
	h.Draw(s)
	if !strings.Contains(screenText(s), engine.EndMessage) {
		t.Error("Expected ending overlay text")
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four\nfive", 9)
	want := []string{"one two", "three", "four", "five"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("Expected %v, got %v", want, lines)
	}

	long := wrapText("abcdefghij", 4)
	if strings.Join(long, "|") != "abcd|efgh|ij" {
		t.Errorf("Expected long word split, got %v", long)
	}
}
