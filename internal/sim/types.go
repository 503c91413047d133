package sim

import "fmt"

type Kind int

const (
	Circle Kind = iota
	Square
	Triangle
	Star
)

// Kinds lists every shape kind in selection order.
var Kinds = []Kind{Circle, Square, Triangle, Star}

func (k Kind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	case Star:
		return "star"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}

type Point struct {
	X, Y float64
}

// Template returns the polygon offsets for kind relative to the shape
// center, or nil for kinds drawn parametrically. The slice is shared and
// must not be modified.
func (k Kind) Template() []Point {
	switch k {
	case Triangle:
		return triangleTemplate
	case Star:
		return starTemplate
	default:
		return nil
	}
}

var (
	triangleTemplate = []Point{{0, -20}, {20, 20}, {-20, 20}}
	starTemplate     = []Point{
		{0, -30}, {10, -10}, {30, -10}, {15, 5}, {20, 25},
		{0, 15}, {-20, 25}, {-15, 5}, {-30, -10}, {-10, -10},
	}
)

type Color struct {
	R, G, B uint8
}

// Palette holds the earth and foliage tones shapes and backgrounds are drawn from.
var Palette = [...]Color{
	{139, 69, 19},   // saddle brown
	{34, 139, 34},   // forest green
	{160, 82, 45},   // sienna
	{255, 140, 0},   // dark orange
	{128, 128, 0},   // olive
	{210, 180, 140}, // tan
	{255, 215, 0},   // gold
	{178, 34, 34},   // firebrick
	{85, 107, 47},   // dark olive green
	{205, 133, 63},  // peru
}

// Source is the random stream the simulation draws from. *math/rand.Rand
// satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

type Shape struct {
	Kind  Kind
	X, Y  float64
	VX    float64 // pixels per frame
	VY    float64 // pixels per frame
	Color Color

	BaseSize int
	Size     float64

	Phase    float64
	OscSpeed float64

	TwitchTimer      float64
	Cooldown         float64
	CooldownDuration float64
	Twitched         bool
}

// Params holds the tunables of the simulation. DefaultParams returns the
// values the toy ships with.
type Params struct {
	InitialShapes int

	MinSize     float64
	MinBaseSize int
	MaxBaseSize int

	MinOscSpeed float64
	MaxOscSpeed float64

	TwitchInterval float64
	TwitchChance   float64
	TwitchImpulse  float64
	MaxSpeed       float64
	MinCooldown    float64
	MaxCooldown    float64

	CruiseSpeed float64

	SpikeChance float64
	SpikeMin    float64
	SpikeMax    float64
	PulseGain   float64

	ActivityPerEnergy float64
}

func DefaultParams() Params {
	return Params{
		InitialShapes:     5,
		MinSize:           15,
		MinBaseSize:       50,
		MaxBaseSize:       120,
		MinOscSpeed:       0.1,
		MaxOscSpeed:       0.3,
		TwitchInterval:    1.0,
		TwitchChance:      0.4,
		TwitchImpulse:     10,
		MaxSpeed:          25,
		MinCooldown:       3.0,
		MaxCooldown:       8.0,
		CruiseSpeed:       7.5,
		SpikeChance:       0.1,
		SpikeMin:          20,
		SpikeMax:          40,
		PulseGain:         25,
		ActivityPerEnergy: 5,
	}
}

// Snapshot is a read-only summary of the simulation at one instant.
type Snapshot struct {
	Shapes     int
	Energy     float64
	Activity   int
	Background Color
}
