package input

// Mouse turns absolute terminal mouse positions into relative motion while locked
type Mouse struct {
	locked  bool
	havePos bool
	x, y    int

	accX, accY     int
	deltaX, deltaY float64
}

// NewMouse creates an unlocked mouse
func NewMouse() *Mouse {
	return &Mouse{}
}

// Lock starts reporting relative motion
func (m *Mouse) Lock() {
	m.locked = true
	m.havePos = false
}

// Unlock stops reporting motion
func (m *Mouse) Unlock() {
	m.locked = false
	m.accX, m.accY = 0, 0
	m.deltaX, m.deltaY = 0, 0
}

// Locked reports whether the pointer is locked
func (m *Mouse) Locked() bool { return m.locked }

// HandleMotion records the pointer position in cells
func (m *Mouse) HandleMotion(x, y int) {
	if m.locked && m.havePos {
		m.accX += x - m.x
		m.accY += y - m.y
	}
	m.x, m.y = x, y
	m.havePos = true
}

// BeginFrame latches the motion accumulated since the last frame
func (m *Mouse) BeginFrame() {
	m.deltaX, m.deltaY = float64(m.accX), float64(m.accY)
	m.accX, m.accY = 0, 0
}

// PositionDelta returns this frame's pointer motion in cells, zero when unlocked
func (m *Mouse) PositionDelta() (float64, float64) {
	if !m.locked {
		return 0, 0
	}
	return m.deltaX, m.deltaY
}
