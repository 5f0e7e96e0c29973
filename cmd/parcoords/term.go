package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/parcoords"
	"github.com/ha1tch/parcoords/pkg/style"
)

// termCanvas draws a chart onto terminal cells. Each cell stands for a
// cellW by cellH block of chart pixels.
type termCanvas struct {
	screen       tcell.Screen
	cellW, cellH float64
	rows         int
}

func (tc *termCanvas) cell(p geom.Point) (int, int) {
	return int(math.Floor(p.X / tc.cellW)), int(math.Floor(p.Y / tc.cellH))
}

// set writes a cell, leaving the rows below the chart for the status bar.
func (tc *termCanvas) set(x, y int, r rune, st tcell.Style) {
	if y < 0 || y >= tc.rows || x < 0 {
		return
	}
	tc.screen.SetContent(x, y, r, nil, st)
}

// termColor maps a chart colour onto the terminal. Black becomes the
// terminal foreground so dark themes stay readable; faint colours are
// greyed out.
func termColor(c style.Color) tcell.Color {
	switch {
	case !c.IsSet():
		return tcell.ColorDefault
	case c.A < 128:
		return tcell.ColorDimGray
	case c.R < 40 && c.G < 40 && c.B < 40:
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// lineRune picks a box drawing glyph for a segment direction in cells.
func lineRune(dx, dy float64) rune {
	switch {
	case dx == 0 && dy == 0:
		return '·'
	case math.Abs(dx) < math.Abs(dy)/3:
		return '│'
	case math.Abs(dy) < math.Abs(dx)/3:
		return '─'
	case (dx > 0) == (dy > 0):
		return '╲'
	}
	return '╱'
}

func (tc *termCanvas) Clear(geom.Size) {
	tc.screen.Clear()
}

func (tc *termCanvas) Line(p0, p1 geom.Point, s style.Line) {
	tc.stroke(p0, p1, tcell.StyleDefault.Foreground(termColor(s.Color)))
}

func (tc *termCanvas) stroke(p0, p1 geom.Point, st tcell.Style) {
	x0, y0 := tc.cell(p0)
	x1, y1 := tc.cell(p1)
	r := lineRune((p1.X-p0.X)/tc.cellW, (p1.Y-p0.Y)/tc.cellH)

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		tc.set(x0, y0, r, st)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (tc *termCanvas) Path(p parcoords.Path, s style.Line) {
	st := tcell.StyleDefault.Foreground(termColor(s.Color))
	pts := p.Flatten(8)
	for i := 1; i < len(pts); i++ {
		tc.stroke(pts[i-1], pts[i], st)
	}
}

func (tc *termCanvas) Rect(r geom.Rect, s style.Shape) {
	st := tcell.StyleDefault.Foreground(termColor(s.Fill))
	x0, y0 := tc.cell(r.Origin())
	x1, y1 := tc.cell(geom.Point{X: r.X + r.W, Y: r.Y + r.H})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			tc.set(x, y, '█', st)
		}
	}
}

func (tc *termCanvas) Circle(center geom.Point, _ float64, s style.Shape) {
	x, y := tc.cell(center)
	tc.set(x, y, '●', tcell.StyleDefault.Foreground(termColor(s.Fill)))
}

func (tc *termCanvas) Polygon(pts []geom.Point, s style.Shape) {
	st := tcell.StyleDefault.Foreground(termColor(s.Fill))
	for i := range pts {
		p0, p1 := pts[i], pts[(i+1)%len(pts)]
		x0, y0 := tc.cell(p0)
		x1, y1 := tc.cell(p1)
		tc.stroke(p0, p1, st)
		tc.set(x0, y0, '+', st)
		tc.set(x1, y1, '+', st)
	}
}

// Text writes horizontally, or top to bottom when turned by about a
// quarter turn. Baselines snap to the anchor row.
func (tc *termCanvas) Text(text string, at geom.Point, rotation float64, s style.Text) {
	st := tcell.StyleDefault.Foreground(termColor(s.Fill))
	runes := []rune(text)
	x, y := tc.cell(at)

	turn := math.Remainder(rotation, 2*math.Pi)
	if math.Abs(math.Abs(turn)-math.Pi/2) < math.Pi/8 {
		// Reading direction along y: up for a counter-clockwise turn.
		step := 1
		if turn < 0 {
			step = -1
		}
		start := y
		switch s.Align {
		case style.AlignCenter:
			start -= step * len(runes) / 2
		case style.AlignRight:
			start -= step * len(runes)
		}
		for i, r := range runes {
			tc.set(x, start+i*step, r, st)
		}
		return
	}

	switch s.Align {
	case style.AlignCenter:
		x -= len(runes) / 2
	case style.AlignRight:
		x -= len(runes)
	}
	for i, r := range runes {
		tc.set(x+i, y, r, st)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
