package assets

import (
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/lixenwraith/pincraft/vmath"
)

// XZ is a point on the ground plane
type XZ [2]float64

// Vec returns the point at height y
func (p XZ) Vec(y float64) vmath.Vec3 {
	return vmath.Vec3{X: p[0], Y: y, Z: p[1]}
}

// XYZ is a world-space point
type XYZ [3]float64

// Vec converts to a vector
func (p XYZ) Vec() vmath.Vec3 {
	return vmath.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// Manifest describes both levels and every sound
type Manifest struct {
	Pinball PinballLevel           `yaml:"pinball"`
	Explore ExploreLevel           `yaml:"explore"`
	Sounds  map[string][]ToneSpec `yaml:"sounds"`
}

// PhysicsSpec configures a level's physics world
type PhysicsSpec struct {
	Gravity    XYZ           `yaml:"gravity"`
	FixedStep  time.Duration `yaml:"fixed_step"`
	Iterations int           `yaml:"iterations"`
}

// PinballLevel is the board layout
type PinballLevel struct {
	Physics     PhysicsSpec   `yaml:"physics"`
	Walls       [][]XZ        `yaml:"walls"`
	WallRadius  float64       `yaml:"wall_radius"`
	Floor       Rect          `yaml:"floor"`
	Bumpers     []BumperSpec  `yaml:"bumpers"`
	DrainZ      float64       `yaml:"drain_z"`
	Lane        Rect          `yaml:"lane"`
	BallSpawn   XYZ           `yaml:"ball_spawn"`
	Paddles     []PaddleSpec  `yaml:"paddles"`
	Camera      CameraSpec    `yaml:"camera"`
	Lights      []LightSpec   `yaml:"lights"`
	ScoreEasing time.Duration `yaml:"score_easing"`
}

// Rect is an axis-aligned ground-plane area
type Rect struct {
	Min XZ `yaml:"min"`
	Max XZ `yaml:"max"`
}

// Contains reports whether p lies strictly inside
func (r Rect) Contains(x, z float64) bool {
	return x > r.Min[0] && x < r.Max[0] && z > r.Min[1] && z < r.Max[1]
}

// BumperSpec places a scoring bumper
type BumperSpec struct {
	Position XZ      `yaml:"position"`
	Radius   float64 `yaml:"radius"`
	Points   int     `yaml:"points"`
	Colour   string  `yaml:"colour"`
}

// PaddleSpec places a flipper; Side is "left" or "right"
type PaddleSpec struct {
	Side     string `yaml:"side"`
	Position XYZ    `yaml:"position"`
	Pivot    XYZ    `yaml:"pivot"`
}

// CameraSpec is a fixed look-at pose
type CameraSpec struct {
	Eye    XYZ     `yaml:"eye"`
	Target XYZ     `yaml:"target"`
	Up     XYZ     `yaml:"up"`
	Extent float64 `yaml:"extent"`
}

// LightSpec is a directional light, angles in degrees
type LightSpec struct {
	Roll      float64 `yaml:"roll"`
	Yaw       float64 `yaml:"yaw"`
	Intensity float64 `yaml:"intensity"`
	Colour    string  `yaml:"colour"`
}

// ExploreLevel is the walkable room
type ExploreLevel struct {
	Physics     PhysicsSpec      `yaml:"physics"`
	Room        []XZ             `yaml:"room"`
	WallRadius  float64          `yaml:"wall_radius"`
	Spawn       XYZ              `yaml:"spawn"`
	InfoSpheres []InfoSphereSpec `yaml:"info_spheres"`
	Exit        ExitSpec         `yaml:"exit"`
	ViewExtent  float64          `yaml:"view_extent"`
}

// InfoSphereSpec places an interactable marker
type InfoSphereSpec struct {
	Position XYZ    `yaml:"position"`
	Message  string `yaml:"message"`
}

// ExitSpec is the zone that ends the game
type ExitSpec struct {
	Position XYZ     `yaml:"position"`
	Radius   float64 `yaml:"radius"`
}

// ToneSpec is one note of a synthesized sound
type ToneSpec struct {
	Wave     string        `yaml:"wave"`
	Freq     float64       `yaml:"freq"`
	FreqEnd  float64       `yaml:"freq_end"`
	Duration time.Duration `yaml:"duration"`
	Attack   time.Duration `yaml:"attack"`
	Release  time.Duration `yaml:"release"`
	Volume   float64       `yaml:"volume"`
	Rest     bool          `yaml:"rest"`
	Layer    bool          `yaml:"layer"`
}

// ParseColour reads a hex colour such as "#ff8000"
func ParseColour(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, errors.Wrapf(err, "colour %q", hex)
	}
	return c, nil
}

// Validate checks the manifest is complete enough to build both levels
func (m *Manifest) Validate() error {
	p := &m.Pinball
	if len(p.Walls) == 0 {
		return errors.New("pinball: no walls")
	}
	for i, wall := range p.Walls {
		if len(wall) < 2 {
			return errors.Errorf("pinball: wall %d needs at least 2 points", i)
		}
	}
	if p.WallRadius <= 0 {
		return errors.New("pinball: wall_radius must be positive")
	}
	if len(p.Paddles) != 2 {
		return errors.Errorf("pinball: expected 2 paddles, got %d", len(p.Paddles))
	}
	for _, pd := range p.Paddles {
		if pd.Side != "left" && pd.Side != "right" {
			return errors.Errorf("pinball: paddle side %q", pd.Side)
		}
	}
	for i, b := range p.Bumpers {
		if b.Radius <= 0 {
			return errors.Errorf("pinball: bumper %d radius must be positive", i)
		}
		if _, err := ParseColour(b.Colour); err != nil {
			return errors.Wrapf(err, "pinball: bumper %d", i)
		}
	}
	for i, l := range p.Lights {
		if _, err := ParseColour(l.Colour); err != nil {
			return errors.Wrapf(err, "pinball: light %d", i)
		}
	}

	e := &m.Explore
	if len(e.Room) < 3 {
		return errors.New("explore: room needs at least 3 corners")
	}
	if e.WallRadius <= 0 {
		return errors.New("explore: wall_radius must be positive")
	}
	if e.Exit.Radius <= 0 {
		return errors.New("explore: exit radius must be positive")
	}

	for _, name := range RequiredSounds {
		if len(m.Sounds[name]) == 0 {
			return errors.Errorf("sound %q missing", name)
		}
	}
	return nil
}
