package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/pincraft/engine"
)

// Overlay names a full-screen panel
type Overlay int

const (
	OverlayLoading Overlay = iota
	OverlayTitle
	OverlayEnding

	overlayCount
)

// HUD text fields
const (
	FieldScore  = "score"
	FieldDeaths = "deaths"
)

var (
	hudStyle     = tcell.StyleDefault.Background(tcell.NewRGBColor(0, 0, 0)).Foreground(tcell.NewRGBColor(230, 230, 230))
	labelStyle   = hudStyle.Foreground(tcell.NewRGBColor(120, 160, 200))
	messageStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(20, 18, 12)).Foreground(tcell.NewRGBColor(255, 236, 200))
	overlayBg    = tcell.NewRGBColor(10, 10, 24)
	overlayStyle = tcell.StyleDefault.Background(overlayBg).Foreground(tcell.NewRGBColor(220, 220, 255))
	borderStyle  = tcell.StyleDefault.Background(overlayBg).Foreground(tcell.NewRGBColor(100, 120, 220))
	barStyle     = tcell.StyleDefault.Background(overlayBg).Foreground(tcell.NewRGBColor(255, 128, 0))
)

// HUD holds the text fields, overlays and contextual message drawn over the scene
type HUD struct {
	Title    string
	Subtitle string

	order    []string
	fields   map[string]string
	updates  int
	overlays [overlayCount]bool
	progress float64

	message string
	ending  bool
}

// NewHUD creates a HUD showing the given fields in order
func NewHUD(fields ...string) *HUD {
	h := &HUD{fields: make(map[string]string)}
	for _, f := range fields {
		h.order = append(h.order, f)
		h.fields[f] = ""
	}
	return h
}

// SetText replaces a field, unknown fields are appended
func (h *HUD) SetText(field, text string) {
	if _, ok := h.fields[field]; !ok {
		h.order = append(h.order, field)
	}
	h.fields[field] = text
	h.updates++
}

// Text returns a field's current text
func (h *HUD) Text(field string) string {
	return h.fields[field]
}

// Updates counts SetText calls
func (h *HUD) Updates() int {
	return h.updates
}

// ShowOverlay shows or hides an overlay
func (h *HUD) ShowOverlay(o Overlay, show bool) {
	if o >= 0 && o < overlayCount {
		h.overlays[o] = show
	}
}

// OverlayVisible reports whether o is shown
func (h *HUD) OverlayVisible(o Overlay) bool {
	return o >= 0 && o < overlayCount && h.overlays[o]
}

// SetLoadProgress sets the loading bar, 0 to 1
func (h *HUD) SetLoadProgress(ratio float64) {
	h.progress = min(max(ratio, 0), 1)
}

// GameStateChanged mirrors the message and ending flag
func (h *HUD) GameStateChanged(gs *engine.GameState) {
	h.message = gs.Message()
	h.ending = gs.Ending()
	if h.ending {
		h.overlays[OverlayEnding] = true
	}
}

// Message returns the mirrored contextual message
func (h *HUD) Message() string { return h.message }

// Draw paints the HUD over whatever is on screen
func (h *HUD) Draw(s tcell.Screen) {
	w, hgt := s.Size()
	if w == 0 || hgt == 0 {
		return
	}

	x := 1
	for _, f := range h.order {
		x = drawText(s, x, 0, f+" ", labelStyle)
		x = drawText(s, x, 0, h.fields[f], hudStyle) + 3
	}

	if h.message != "" && !h.overlays[OverlayLoading] {
		lines := wrapText(h.message, min(w-4, 60))
		top := hgt - 2 - len(lines)
		for i, line := range lines {
			drawCentered(s, top+i, " "+line+" ", messageStyle)
		}
	}

	switch {
	case h.overlays[OverlayLoading]:
		h.drawLoading(s, w, hgt)
	case h.overlays[OverlayEnding]:
		h.drawPanel(s, w, hgt, []string{engine.EndMessage, "", "Esc to quit"})
	case h.overlays[OverlayTitle]:
		h.drawPanel(s, w, hgt, []string{h.Title, "", h.Subtitle})
	}
}

func (h *HUD) drawLoading(s tcell.Screen, w, hgt int) {
	x0, y0, pw, ph := h.drawPanel(s, w, hgt, []string{"Loading", ""})
	barW := pw - 6
	if barW < 1 {
		return
	}
	filled := int(h.progress * float64(barW))
	row := y0 + ph - 3
	for i := 0; i < barW; i++ {
		ch := '░'
		if i < filled {
			ch = '█'
		}
		s.SetContent(x0+3+i, row, ch, nil, barStyle)
	}
}

// drawPanel draws a bordered box with centered lines, returning its bounds
func (h *HUD) drawPanel(s tcell.Screen, w, hgt int, lines []string) (x0, y0, pw, ph int) {
	pw = 24
	for _, l := range lines {
		pw = max(pw, runewidth.StringWidth(l)+6)
	}
	pw = min(pw, w)
	ph = min(len(lines)+4, hgt)
	x0, y0 = (w-pw)/2, (hgt-ph)/2

	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			s.SetContent(x0+x, y0+y, ' ', nil, overlayStyle)
		}
	}
	for x := 1; x < pw-1; x++ {
		s.SetContent(x0+x, y0, '═', nil, borderStyle)
		s.SetContent(x0+x, y0+ph-1, '═', nil, borderStyle)
	}
	for y := 1; y < ph-1; y++ {
		s.SetContent(x0, y0+y, '║', nil, borderStyle)
		s.SetContent(x0+pw-1, y0+y, '║', nil, borderStyle)
	}
	s.SetContent(x0, y0, '╔', nil, borderStyle)
	s.SetContent(x0+pw-1, y0, '╗', nil, borderStyle)
	s.SetContent(x0, y0+ph-1, '╚', nil, borderStyle)
	s.SetContent(x0+pw-1, y0+ph-1, '╝', nil, borderStyle)

	for i, l := range lines {
		l = strings.TrimSpace(l)
		drawText(s, x0+(pw-runewidth.StringWidth(l))/2, y0+2+i, l, overlayStyle)
	}
	return x0, y0, pw, ph
}
