package loop

import (
	"math"

	"github.com/san-kum/pettoy/internal/sim"
)

const (
	HelpText     = "Press Ctrl+Shift+W to exit"
	HelpFontSize = 24
	helpAlpha    = 178
	helpMargin   = 5
	helpPadding  = 5
)

var (
	white = sim.Color{R: 255, G: 255, B: 255}
	black = sim.Color{}
)

// Canvas is the drawing surface for one frame. Clear starts the frame and
// Present finishes it.
type Canvas interface {
	Clear(c sim.Color)
	Circle(cx, cy, radius float64, c sim.Color)
	Rect(x, y, w, h float64, c sim.Color, alpha uint8)
	Polygon(pts []sim.Point, c sim.Color)
	Text(s string, x, y float64, size int, c sim.Color)
	MeasureText(s string, size int) (w, h float64)
	Present()
}

func drawShape(c Canvas, sh *sim.Shape) {
	switch sh.Kind {
	case sim.Circle:
		c.Circle(sh.X, sh.Y, math.Floor(sh.Size/2), sh.Color)
	case sim.Square:
		half := math.Floor(sh.Size / 2)
		c.Rect(sh.X-half, sh.Y-half, sh.Size, sh.Size, sh.Color, 255)
	default:
		c.Polygon(sim.Outline(sh), sh.Color)
	}
}

func drawHelp(c Canvas) {
	w, h := c.MeasureText(HelpText, HelpFontSize)
	c.Rect(helpMargin, helpMargin, w+2*helpPadding, h+2*helpPadding, white, helpAlpha)
	c.Text(HelpText, helpMargin+helpPadding, helpMargin+helpPadding, HelpFontSize, black)
}

// Render draws the simulation and the help overlay as one frame.
func Render(c Canvas, s *sim.Simulation) {
	c.Clear(s.Background)
	for _, sh := range s.Shapes {
		drawShape(c, sh)
	}
	drawHelp(c)
	c.Present()
}

// Discard is a Canvas that draws nothing, for headless runs.
type Discard struct{}

func (Discard) Clear(sim.Color)                                           {}
func (Discard) Circle(float64, float64, float64, sim.Color)               {}
func (Discard) Rect(float64, float64, float64, float64, sim.Color, uint8) {}
func (Discard) Polygon([]sim.Point, sim.Color)                            {}
func (Discard) Text(string, float64, float64, int, sim.Color)             {}
func (Discard) Present()                                                  {}

func (Discard) MeasureText(s string, size int) (float64, float64) {
	return float64(len(s) * size / 2), float64(size)
}
