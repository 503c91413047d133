package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/pettoy/internal/sim"
)

type cell struct {
	bg sim.Color
	fg sim.Color
	ch rune
}

// Canvas is a loop.Canvas backed by a grid of terminal cells. Coordinates
// are virtual pixels; a cell covers CellW x CellH of them.
type Canvas struct {
	Cols, Rows   int
	CellW, CellH float64

	grid  [][]cell
	frame string
}

func NewCanvas(cols, rows int, cellW, cellH float64) *Canvas {
	c := &Canvas{CellW: cellW, CellH: cellH}
	c.Resize(cols, rows)
	return c
}

func (c *Canvas) Resize(cols, rows int) {
	c.Cols, c.Rows = cols, rows
	c.grid = make([][]cell, rows)
	for i := range c.grid {
		c.grid[i] = make([]cell, cols)
	}
}

// PixelSize is the virtual surface the grid covers.
func (c *Canvas) PixelSize() (float64, float64) {
	return float64(c.Cols) * c.CellW, float64(c.Rows) * c.CellH
}

func (c *Canvas) center(col, row int) sim.Point {
	return sim.Point{X: (float64(col) + 0.5) * c.CellW, Y: (float64(row) + 0.5) * c.CellH}
}

// span returns the cell range whose centers may fall in [lo, hi) along one axis.
func span(lo, hi, size float64, limit int) (int, int) {
	first := int(math.Max(0, math.Floor(lo/size)))
	last := int(math.Min(float64(limit-1), math.Ceil(hi/size)))
	return first, last
}

func (c *Canvas) fill(x0, y0, x1, y1 float64, inside func(sim.Point) bool, col sim.Color, alpha uint8) {
	c0, c1 := span(x0, x1, c.CellW, c.Cols)
	r0, r1 := span(y0, y1, c.CellH, c.Rows)
	for r := r0; r <= r1; r++ {
		for k := c0; k <= c1; k++ {
			if inside(c.center(k, r)) {
				cl := &c.grid[r][k]
				cl.bg = blend(col, cl.bg, alpha)
				cl.ch = ' '
			}
		}
	}
}

func (c *Canvas) Clear(col sim.Color) {
	for r := range c.grid {
		for k := range c.grid[r] {
			c.grid[r][k] = cell{bg: col, ch: ' '}
		}
	}
}

func (c *Canvas) Circle(cx, cy, radius float64, col sim.Color) {
	c.fill(cx-radius, cy-radius, cx+radius, cy+radius, func(p sim.Point) bool {
		dx, dy := p.X-cx, p.Y-cy
		return dx*dx+dy*dy <= radius*radius
	}, col, 255)
}

func (c *Canvas) Rect(x, y, w, h float64, col sim.Color, alpha uint8) {
	c.fill(x, y, x+w, y+h, func(p sim.Point) bool {
		return p.X >= x && p.X < x+w && p.Y >= y && p.Y < y+h
	}, col, alpha)
}

func (c *Canvas) Polygon(pts []sim.Point, col sim.Color) {
	if len(pts) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	c.fill(minX, minY, maxX, maxY, func(p sim.Point) bool {
		return sim.Contains(pts, p)
	}, col, 255)
}

// Text writes s one rune per cell starting at the cell containing (x, y).
// The font size is meaningless in a terminal.
func (c *Canvas) Text(s string, x, y float64, size int, col sim.Color) {
	row := int(y / c.CellH)
	if row < 0 || row >= c.Rows {
		return
	}
	k := int(x / c.CellW)
	for _, ch := range s {
		if k >= c.Cols {
			break
		}
		if k >= 0 {
			c.grid[row][k].ch = ch
			c.grid[row][k].fg = col
		}
		k++
	}
}

func (c *Canvas) MeasureText(s string, size int) (float64, float64) {
	return float64(len([]rune(s))) * c.CellW, c.CellH
}

// Present renders the grid into the frame returned by String.
func (c *Canvas) Present() {
	var b strings.Builder
	for r, row := range c.grid {
		if r > 0 {
			b.WriteByte('\n')
		}
		renderRow(&b, row)
	}
	c.frame = b.String()
}

func (c *Canvas) String() string { return c.frame }

// At returns the background color and rune of one cell.
func (c *Canvas) At(col, row int) (sim.Color, rune) {
	cl := c.grid[row][col]
	return cl.bg, cl.ch
}

// renderRow emits runs of identically styled cells as one styled string.
func renderRow(b *strings.Builder, row []cell) {
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && row[i].bg == row[start].bg && row[i].fg == row[start].fg {
			continue
		}
		run := make([]rune, 0, i-start)
		for _, cl := range row[start:i] {
			run = append(run, cl.ch)
		}
		style := lipgloss.NewStyle().
			Background(hex(row[start].bg)).
			Foreground(hex(row[start].fg))
		b.WriteString(style.Render(string(run)))
		start = i
	}
}

func hex(c sim.Color) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func blend(src, dst sim.Color, alpha uint8) sim.Color {
	if alpha == 255 {
		return src
	}
	a := float64(alpha) / 255
	mix := func(s, d uint8) uint8 {
		return uint8(math.Round(float64(s)*a + float64(d)*(1-a)))
	}
	return sim.Color{R: mix(src.R, dst.R), G: mix(src.G, dst.G), B: mix(src.B, dst.B)}
}
