package export

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/san-kum/pettoy/internal/loop"
	"github.com/san-kum/pettoy/internal/sim"
)

// SVG is a loop.Canvas that records one frame as an SVG document.
type SVG struct {
	Width, Height float64

	buf   bytes.Buffer
	doc   *svg.SVG
	frame string
}

func NewSVG(width, height float64) *SVG {
	return &SVG{Width: width, Height: height}
}

func px(v float64) int { return int(math.Round(v)) }

func fill(c sim.Color) string {
	return fmt.Sprintf("fill:#%02x%02x%02x", c.R, c.G, c.B)
}

func (s *SVG) Clear(c sim.Color) {
	s.buf.Reset()
	s.doc = svg.New(&s.buf)
	s.doc.Start(px(s.Width), px(s.Height))
	s.doc.Rect(0, 0, px(s.Width), px(s.Height), fill(c))
}

func (s *SVG) Circle(cx, cy, radius float64, c sim.Color) {
	s.doc.Circle(px(cx), px(cy), px(radius), fill(c))
}

func (s *SVG) Rect(x, y, w, h float64, c sim.Color, alpha uint8) {
	style := fill(c)
	if alpha < 255 {
		style += fmt.Sprintf(";fill-opacity:%.2f", float64(alpha)/255)
	}
	s.doc.Rect(px(x), px(y), px(w), px(h), style)
}

func (s *SVG) Polygon(pts []sim.Point, c sim.Color) {
	if len(pts) < 3 {
		return
	}
	xs, ys := make([]int, len(pts)), make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	s.doc.Polygon(xs, ys, fill(c))
}

func (s *SVG) Text(text string, x, y float64, size int, c sim.Color) {
	s.doc.Text(px(x), px(y), text,
		fmt.Sprintf("%s;font-family:monospace;font-size:%dpx;dominant-baseline:hanging", fill(c), size))
}

// MeasureText assumes a monospace face whose advance is 0.6 em.
func (s *SVG) MeasureText(text string, size int) (float64, float64) {
	return float64(len([]rune(text))) * float64(size) * 0.6, float64(size)
}

func (s *SVG) Present() {
	s.doc.End()
	s.frame = s.buf.String()
}

// String returns the last presented frame.
func (s *SVG) String() string { return s.frame }

var ErrNoFrame = errors.New("export: no frame presented")

// WriteFile writes the last presented frame to path.
func (s *SVG) WriteFile(path string) error {
	if s.frame == "" {
		return ErrNoFrame
	}
	return os.WriteFile(path, []byte(s.frame), 0644)
}

// Snapshot renders one frame of s.
func Snapshot(s *sim.Simulation) *SVG {
	canvas := NewSVG(s.Bounds())
	loop.Render(canvas, s)
	return canvas
}

// WriteSeries plots values with SeriesToSVG and writes the result to path.
func WriteSeries(path string, values []float64, width, height int, strokeColor string) error {
	doc := SeriesToSVG(values, width, height, strokeColor)
	if doc == "" {
		return fmt.Errorf("export: need at least 2 values to plot, got %d", len(values))
	}
	return os.WriteFile(path, []byte(doc), 0644)
}

// SeriesToSVG plots values against their index as a polyline.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = math.Min(minY, v)
		maxY = math.Max(maxY, v)
	}

	// 10% headroom above and below
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	xs, ys := make([]int, len(values)), make([]int, len(values))
	last := float64(len(values) - 1)
	for i, v := range values {
		xs[i] = px(float64(i) / last * float64(width))
		ys[i] = px(float64(height) - (v-minY)/rangeY*float64(height))
	}

	var buf bytes.Buffer
	doc := svg.New(&buf)
	doc.Start(width, height)
	doc.Rect(0, 0, width, height, "fill:#0a0a0a")
	doc.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", strokeColor))
	doc.End()
	return buf.String()
}
