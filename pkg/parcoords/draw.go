package parcoords

import (
	"math"
	"strings"

	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/interact"
	"github.com/ha1tch/parcoords/pkg/layout"
	"github.com/ha1tch/parcoords/pkg/scale"
	"github.com/ha1tch/parcoords/pkg/style"
)

// Canvas is a drawing surface. Coordinates are canvas pixels with y
// pointing down.
type Canvas interface {
	Clear(size geom.Size)
	Line(p0, p1 geom.Point, s style.Line)
	Path(p Path, s style.Line)
	Rect(r geom.Rect, s style.Shape)
	Circle(center geom.Point, radius float64, s style.Shape)
	Polygon(pts []geom.Point, s style.Shape)
	// Text draws text anchored at the given point, rotated clockwise by
	// rotation radians around it. Align and Baseline are always set.
	Text(text string, at geom.Point, rotation float64, s style.Text)
}

// Segment continues a path to To, as a cubic bezier through C0 and C1
// when Curve is set, otherwise as a straight line.
type Segment struct {
	C0, C1, To geom.Point
	Curve      bool
}

// Path is an open polyline or spline.
type Path struct {
	Start    geom.Point
	Segments []Segment
}

// Flatten approximates the path with straight lines, using steps lines
// per curved segment.
func (p Path) Flatten(steps int) []geom.Point {
	if steps < 1 {
		steps = 1
	}
	pts := []geom.Point{p.Start}
	prev := p.Start
	for _, s := range p.Segments {
		if !s.Curve {
			pts = append(pts, s.To)
			prev = s.To
			continue
		}
		for i := 1; i <= steps; i++ {
			pts = append(pts, cubic(prev, s.C0, s.C1, s.To, float64(i)/float64(steps)))
		}
		prev = s.To
	}
	return pts
}

func cubic(p0, c0, c1, p1 geom.Point, t float64) geom.Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return geom.Point{
		X: a*p0.X + b*c0.X + c*c1.X + d*p1.X,
		Y: a*p0.Y + b*c0.Y + c*c1.Y + d*p1.Y,
	}
}

// dataPath joins the per-axis points of one record. Bezier control points
// sit a factor of the gap along the spacing direction from each end.
func dataPath(pts []geom.Point, horizontal bool, ps PathStyle) Path {
	p := Path{Start: pts[0]}
	factor := ps.BezierFactor
	if factor == 0 {
		factor = DefaultBezierFactor
	}
	for i := 1; i < len(pts); i++ {
		p0, p1 := pts[i-1], pts[i]
		seg := Segment{To: p1}
		if ps.Type == PathBezier {
			var d geom.Point
			if horizontal {
				d.X = (p1.X - p0.X) * factor
			} else {
				d.Y = (p1.Y - p0.Y) * factor
			}
			seg.Curve = true
			seg.C0 = p0.Add(d)
			seg.C1 = p1.Sub(d)
		}
		p.Segments = append(p.Segments, seg)
	}
	return p
}

// PlaceText resolves the rotation and alignment of text whose baseline runs
// at angle rad, counter-clockwise from the x axis. Text that would read
// upside down is flipped and right aligned so it still reads outward.
func PlaceText(rad float64, s style.Text) (float64, style.Text) {
	nr := geom.NormalizeRad(rad)
	inwards := nr > math.Pi/2 && nr <= 3*math.Pi/2
	if s.Align == style.AlignAuto {
		s.Align = style.AlignLeft
		if inwards {
			s.Align = style.AlignRight
		}
	}
	if s.Baseline == style.BaselineAuto {
		s.Baseline = style.BaselineMiddle
	}
	rotation := -rad
	if inwards {
		rotation -= math.Pi
	}
	return rotation, s
}

func drawText(cv Canvas, text string, at geom.Point, rad float64, s style.Text) {
	rotation, s := PlaceText(rad, s)
	cv.Text(text, at, rotation, s)
}

// Draw paints one frame: the record polylines, then dimension labels, then
// axes with their ticks and filters.
func (c *Chart) Draw(cv Canvas) {
	l := c.layout
	cv.Clear(c.size)
	if l == nil {
		return
	}
	styles := c.Styles()
	c.drawData(cv, l)
	c.drawLabels(cv, l, styles)
	c.drawAxes(cv, l, styles)
}

func (c *Chart) drawData(cv Canvas, l *layout.Layout) {
	if len(c.dims) < 2 {
		return
	}
	ds := c.opts.Style.Data
	horizontal := l.Horizontal()
	st := c.machine.State

	pts := make([]geom.Point, len(c.dims))
	for k := 0; k < c.records; k++ {
		line := ds.Default
		for i, d := range c.dims {
			dl := l.Dimensions[i]
			sc := c.scales[d.Key]
			v := c.data[d.Key][k]

			pt := st.DragBound(i, dl.Bound).Origin().Add(dl.AxisStart)
			pos := sc.ValueToPos(v)
			if math.IsNaN(pos) || math.IsInf(pos, 0) {
				pos = 0
			}
			if horizontal {
				pt.Y += pos
			} else {
				pt.X += pos
			}
			pts[i] = pt

			if cs := ds.ColorScale; cs != nil && cs.DimensionKey == d.Key {
				line.Color = cs.Colors.At(sc.ValueToPercent(v))
			}
		}
		if !c.passes(k) {
			line = ds.Filtered
		}
		cv.Path(dataPath(pts, horizontal, ds.Path), line)
	}
}

func (c *Chart) drawLabels(cv Canvas, l *layout.Layout, styles []FrameStyle) {
	ls := c.opts.Style.Dimension.Label
	adjust := ls.Angle == nil && l.Horizontal()
	st := c.machine.State

	for i, d := range c.dims {
		dl := l.Dimensions[i]
		at := st.DragBound(i, dl.Bound).Origin().Add(dl.LabelPoint)
		s := styles[i].Label
		if adjust {
			s.Align = style.AlignCenter
			s.Baseline = style.BaselineTop
			if ls.Placement == layout.Before {
				s.Baseline = style.BaselineBottom
			}
		}
		drawText(cv, d.Label, at, l.LabelRad, s)
	}
}

// edgeLabelsVisible reports whether the exact data bounds of dimension i
// should be labelled, which happens while the pointer is over its axis.
func (c *Chart) edgeLabelsVisible(i int) bool {
	f := c.machine.State.Focus
	if f == nil || f.DimIndex != i {
		return false
	}
	switch f.Type {
	case interact.FocusDimensionAxis, interact.FocusFilter, interact.FocusFilterResize:
		return true
	}
	return false
}

func (c *Chart) drawAxes(cv Canvas, l *layout.Layout, styles []FrameStyle) {
	as := c.opts.Style.Axes
	horizontal := l.Horizontal()
	before := as.Label.Placement == layout.Before
	adjust := as.Label.Angle == nil && horizontal
	factor := l.TickLabelFactor
	st := c.machine.State

	rad := 0.0
	switch {
	case as.Label.Angle != nil:
		rad = *as.Label.Angle
	case horizontal && before:
		rad = math.Pi
	}

	for i, d := range c.dims {
		dl := l.Dimensions[i]
		origin := st.DragBound(i, dl.Bound).Origin()
		start := origin.Add(dl.AxisStart)
		cv.Line(start, origin.Add(dl.AxisStop), styles[i].Axis)

		for j, label := range dl.TickLabels {
			if strings.HasPrefix(label, scale.EdgeMarker) {
				if !c.edgeLabelsVisible(i) {
					continue
				}
				label = strings.TrimPrefix(label, scale.EdgeMarker)
			}

			p0 := start
			var p1, at geom.Point
			if horizontal {
				p0.Y += dl.TickPos[j]
				p1 = geom.Point{X: p0.X + factor*as.Tick.Length, Y: p0.Y}
				at = geom.Point{X: p1.X + factor*as.Label.Offset, Y: p0.Y}
			} else {
				p0.X += dl.TickPos[j]
				p1 = geom.Point{X: p0.X, Y: p0.Y + factor*as.Tick.Length}
				at = geom.Point{X: p0.X, Y: p1.Y + factor*as.Label.Offset}
			}
			cv.Line(p0, p1, styles[i].Tick)

			s := styles[i].TickLabel
			if !adjust {
				s.Align = style.AlignCenter
				s.Baseline = style.BaselineTop
				if before {
					s.Baseline = style.BaselineBottom
				}
			}
			drawText(cv, label, at, rad, s)
		}

		for j, f := range c.filters[d.Key] {
			shape := styles[i].Filters[j]
			p0, p1 := f.P0*l.AxisLength, f.P1*l.AxisLength
			half := shape.Width / 2
			var r geom.Rect
			if horizontal {
				r = geom.Rect{X: start.X - half, Y: start.Y + p0, W: shape.Width, H: p1 - p0}
			} else {
				r = geom.Rect{X: start.X + p0, Y: start.Y - half, W: p1 - p0, H: shape.Width}
			}
			cv.Rect(canonicalRect(r), shape)
		}
	}
}

// canonicalRect flips a rect with negative extent so W and H are positive.
func canonicalRect(r geom.Rect) geom.Rect {
	if r.W < 0 {
		r.X, r.W = r.X+r.W, -r.W
	}
	if r.H < 0 {
		r.Y, r.H = r.Y+r.H, -r.H
	}
	return r
}

var (
	debugPadding       = style.Line{Color: style.MustParseColor("#dddddd"), Width: 1}
	debugSlot          = style.Shape{Stroke: style.MustParseColor("#999999"), StrokeWidth: 1}
	debugBound         = style.Shape{Stroke: style.MustParseColor("#dddddd"), StrokeWidth: 1}
	debugLabelPoint    = style.Shape{Fill: style.MustParseColor("#00ccff"), Stroke: style.MustParseColor("#0099cc"), StrokeWidth: 1}
	debugLabelBoundary = style.Shape{Fill: style.MustParseColor("#ffcc00")}
	debugAxisBoundary  = style.Shape{Fill: style.MustParseColor("#eeeeee")}
)

// DrawDebug outlines the layout: padding, each dimension's slot and bound,
// label anchors, and the label and axis hit areas.
func (c *Chart) DrawDebug(cv Canvas) {
	l := c.layout
	if l == nil {
		return
	}
	w, h := c.size.W, c.size.H
	p := l.Padding
	cv.Line(geom.Point{X: 0, Y: p[geom.Top]}, geom.Point{X: w, Y: p[geom.Top]}, debugPadding)
	cv.Line(geom.Point{X: 0, Y: h - p[geom.Bottom]}, geom.Point{X: w, Y: h - p[geom.Bottom]}, debugPadding)
	cv.Line(geom.Point{X: p[geom.Left], Y: 0}, geom.Point{X: p[geom.Left], Y: h}, debugPadding)
	cv.Line(geom.Point{X: w - p[geom.Right], Y: 0}, geom.Point{X: w - p[geom.Right], Y: h}, debugPadding)

	for i, dl := range l.Dimensions {
		b := dl.Bound
		slot := geom.Rect{X: b.X, Y: p[geom.Top] + float64(i)*l.Space, W: b.W, H: l.Space}
		if l.Horizontal() {
			slot = geom.Rect{X: p[geom.Left] + float64(i)*l.Space, Y: b.Y, W: l.Space, H: b.H}
		}
		cv.Rect(slot, debugSlot)
		cv.Rect(b, debugBound)
		cv.Circle(b.Origin().Add(dl.LabelPoint), 3, debugLabelPoint)
		cv.Polygon(dl.LabelBoundary.Points(), debugLabelBoundary)
		cv.Polygon(dl.AxisBoundary.Points(), debugAxisBoundary)
	}
}
