package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/pettoy/internal/sim"
)

func color(c sim.Color, alpha uint8) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, alpha)
}

func vec(p sim.Point) rl.Vector2 {
	return rl.NewVector2(float32(p.X), float32(p.Y))
}

func (w *Window) Clear(c sim.Color) {
	rl.BeginDrawing()
	rl.ClearBackground(color(c, 255))
}

func (w *Window) Circle(cx, cy, radius float64, c sim.Color) {
	rl.DrawCircle(int32(cx), int32(cy), float32(radius), color(c, 255))
}

func (w *Window) Rect(x, y, width, height float64, c sim.Color, alpha uint8) {
	rl.DrawRectangleRec(rl.NewRectangle(float32(x), float32(y), float32(width), float32(height)), color(c, alpha))
}

// Polygon fills a star-shaped polygon as a fan of triangles around its
// centroid; raylib has no concave polygon fill.
func (w *Window) Polygon(pts []sim.Point, c sim.Color) {
	col := color(c, 255)
	for _, tri := range sim.Fan(pts) {
		rl.DrawTriangle(vec(tri[0]), vec(tri[1]), vec(tri[2]), col)
	}
}

func (w *Window) Text(s string, x, y float64, size int, c sim.Color) {
	rl.DrawText(s, int32(x), int32(y), int32(size), color(c, 255))
}

func (w *Window) MeasureText(s string, size int) (float64, float64) {
	return float64(rl.MeasureText(s, int32(size))), float64(size)
}

func (w *Window) Present() {
	rl.EndDrawing()
}
