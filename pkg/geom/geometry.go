// Package geom provides the plane geometry shared by layout, hit-testing
// and rendering: points, rectangles, rotated text boxes and padding.
package geom

import "math"

// Point represents a 2D coordinate in canvas pixels.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Axis returns the X coordinate when v is 'x' and the Y coordinate otherwise.
func (p Point) Axis(v byte) float64 {
	if v == 'x' {
		return p.X
	}
	return p.Y
}

// Size is a width and height pair.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{r.X, r.Y}
}

// Contains reports whether pt lies inside r, edges included.
func (r Rect) Contains(pt Point) bool {
	return pt.X >= r.X && pt.X <= r.X+r.W && pt.Y >= r.Y && pt.Y <= r.Y+r.H
}

// Boundary is a convex quadrilateral given by its corners in winding order.
type Boundary [4]Point

// Contains tests pt against the two triangles (0,1,2) and (2,3,0).
func (b Boundary) Contains(pt Point) bool {
	return PointInTriangle(pt, b[0], b[1], b[2]) || PointInTriangle(pt, b[2], b[3], b[0])
}

// Shift returns b translated by d.
func (b Boundary) Shift(d Point) Boundary {
	var out Boundary
	for i, p := range b {
		out[i] = p.Add(d)
	}
	return out
}

// Points returns the corners as a slice.
func (b Boundary) Points() []Point {
	return []Point{b[0], b[1], b[2], b[3]}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// RotatePoint rotates (x, y) by rad around the pivot (px, py).
func RotatePoint(x, y, rad, px, py float64) Point {
	cos, sin := math.Cos(rad), math.Sin(rad)
	dx, dy := x-px, y-py
	return Point{
		X: cos*dx - sin*dy + px,
		Y: sin*dx + cos*dy + py,
	}
}

// PointInTriangle reports whether p falls inside triangle (a, b, c) using
// barycentric coordinates. The far edge (u+v == 1) is excluded.
func PointInTriangle(p, a, b, c Point) bool {
	v0 := c.Sub(a)
	v1 := b.Sub(a)
	v2 := p.Sub(a)

	dot00 := v0.X*v0.X + v0.Y*v0.Y
	dot01 := v0.X*v1.X + v0.Y*v1.Y
	dot02 := v0.X*v2.X + v0.Y*v2.Y
	dot11 := v1.X*v1.X + v1.Y*v1.Y
	dot12 := v1.X*v2.X + v1.Y*v2.Y

	denom := dot00*dot11 - dot01*dot01
	if denom == 0 {
		return false
	}
	inv := 1 / denom
	u := (dot11*dot02 - dot01*dot12) * inv
	v := (dot00*dot12 - dot01*dot02) * inv

	return u >= 0 && v >= 0 && u+v < 1
}

// ShiftRect returns r translated by (dx, dy).
func ShiftRect(r Rect, dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// TextBoundary returns the padded box of a w×h text run anchored at (x, y).
// The box is offset by (offX, offY) and, when rad is non-zero, rotated by
// the negated normalized angle around the anchor.
func TextBoundary(x, y, w, h, rad, offX, offY, pad float64) Boundary {
	x0 := x + offX - pad
	y0 := y + offY - pad
	x1 := x + w + offX + pad
	y1 := y + h + offY + pad

	b := Boundary{
		{x0, y0},
		{x1, y0},
		{x1, y1},
		{x0, y1},
	}
	if rad == 0 {
		return b
	}

	r := -NormalizeRad(rad)
	for i, p := range b {
		b[i] = RotatePoint(p.X, p.Y, r, x, y)
	}
	return b
}

// NormalizeRad maps an angle into [0, 2π).
func NormalizeRad(rad float64) float64 {
	r := math.Mod(rad+2*math.Pi, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

// RoundPixel snaps v to the centre of its pixel so 1px lines render crisp.
func RoundPixel(v float64) float64 {
	return math.Floor(v) + 0.5
}
