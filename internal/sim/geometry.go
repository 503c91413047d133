package sim

// Centroid returns the vertex average of pts.
func Centroid(pts []Point) Point {
	var c Point
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(pts))
	return Point{X: c.X / n, Y: c.Y / n}
}

// Fan splits a polygon that is star-shaped around its centroid into
// triangles sharing the centroid. Every triangle is wound clockwise in
// y-up terms, which is counter-clockwise on a y-down screen.
func Fan(pts []Point) [][3]Point {
	if len(pts) < 3 {
		return nil
	}
	c := Centroid(pts)
	tris := make([][3]Point, 0, len(pts))
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		if cross(c, a, b) > 0 {
			a, b = b, a
		}
		tris = append(tris, [3]Point{c, a, b})
	}
	return tris
}

// Contains reports whether p lies inside the polygon using the even-odd rule.
func Contains(pts []Point, p Point) bool {
	inside := false
	for i, j := 0, len(pts)-1; i < len(pts); j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}
