// Package layout computes where every dimension, axis and label of a
// parallel-coordinates chart goes for a given canvas size.
//
// Compute is a pure function of its Input apart from one side effect: each
// dimension's scale is told the resulting axis length so that its tick
// positions match the frame. The returned Layout is never mutated; a new
// one is computed whenever size, options, or dimension order change.
package layout

import (
	"math"
	"strings"

	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/scale"
)

// Dimension is one column of the chart as the layout sees it.
type Dimension struct {
	Key   string
	Label string
	Scale scale.Scale
}

// Input bundles everything Compute needs.
type Input struct {
	Size       geom.Size
	Dimensions []Dimension
	Options    Options
	Measurer   TextMeasurer
}

// LabelMetrics are the measured extents of a dimension label.
type LabelMetrics struct {
	W, H float64
	// LengthCos and LengthSin project the label onto the x and y axes when
	// it is angled. Unangled labels report their width and height.
	LengthCos, LengthSin float64
}

// DimensionLayout places one dimension. Points inside it are relative to
// Bound; boundaries are in canvas coordinates.
type DimensionLayout struct {
	Key           string
	Label         LabelMetrics
	TickLabels    []string
	TickPos       []float64
	TickMaxLength float64
	SpaceBefore   float64
	SpaceAfter    float64
	Bound         geom.Rect
	AxisStart     geom.Point
	AxisStop      geom.Point
	LabelPoint    geom.Point
	LabelBoundary geom.Boundary
	AxisBoundary  geom.Boundary
}

// AxisOrigin returns the canvas position of the axis start.
func (d DimensionLayout) AxisOrigin() geom.Point {
	return d.Bound.Origin().Add(d.AxisStart)
}

// Layout is the geometry of one frame.
type Layout struct {
	Size      geom.Size
	Padding   geom.Padding
	DrawRect  geom.Rect
	Direction Direction

	LabelAngled  bool
	LabelCos     float64
	LabelSin     float64
	LabelRad     float64
	MaxLengthCos float64
	MaxLengthSin float64

	AxisStart  float64
	AxisStop   float64
	AxisLength float64

	// TickLabelFactor is -1 when tick labels sit before the axis, else 1.
	TickLabelFactor float64

	Gap             float64
	Offset          float64
	Space           float64
	TotalBoundSpace float64

	Dimensions []DimensionLayout
}

// Horizontal reports whether axes are vertical lines spread left to right.
func (l *Layout) Horizontal() bool {
	return l.Direction != Vertical
}

// Compute lays out the chart.
func Compute(in Input) *Layout {
	opts := in.Options
	l := &Layout{
		Size:       in.Size,
		Padding:    opts.Padding,
		Direction:  opts.Direction,
		Dimensions: make([]DimensionLayout, len(in.Dimensions)),
	}
	if l.Direction == "" {
		l.Direction = Horizontal
	}

	p := l.Padding
	l.DrawRect = geom.Rect{
		X: p[geom.Left],
		Y: p[geom.Top],
		W: in.Size.W - p.Horizontal(),
		H: in.Size.H - p.Vertical(),
	}

	measureLabels(l, in)
	axisExtent(l, opts)
	sizeDimensions(l, in)
	distribute(l)
	placeDimensions(l, opts)
	return l
}

// measureLabels records label extents and the shared angle projections.
func measureLabels(l *Layout, in Input) {
	lo := in.Options.Label
	l.LabelAngled = lo.Angle != nil
	if l.LabelAngled {
		l.LabelCos = math.Cos(*lo.Angle)
		l.LabelSin = math.Sin(*lo.Angle)
	}

	switch {
	case lo.Angle != nil && *lo.Angle != 0:
		l.LabelRad = *lo.Angle
	case l.Horizontal():
		l.LabelRad = 0
	case lo.Placement != After:
		l.LabelRad = -math.Pi
	default:
		l.LabelRad = 0
	}

	for i, dim := range in.Dimensions {
		size := in.Measurer.MeasureText(dim.Label, lo.Font)
		m := LabelMetrics{W: size.W, H: size.H, LengthCos: size.W, LengthSin: size.H}
		if l.LabelAngled {
			m.LengthCos = size.W * l.LabelCos
			m.LengthSin = size.W * l.LabelSin
		}
		if math.Abs(m.LengthCos) > math.Abs(l.MaxLengthCos) {
			l.MaxLengthCos = m.LengthCos
		}
		if math.Abs(m.LengthSin) > math.Abs(l.MaxLengthSin) {
			l.MaxLengthSin = m.LengthSin
		}
		l.Dimensions[i].Key = dim.Key
		l.Dimensions[i].Label = m
	}
}

// axisExtent finds the pixel range shared by all axes once room for the
// dimension labels has been set aside.
func axisExtent(l *Layout, opts Options) {
	p := l.Padding
	before := opts.Label.Placement != After
	offset := opts.Label.Offset

	if l.Horizontal() {
		if before {
			l.AxisStart = p[geom.Top] + math.Max(0, l.MaxLengthSin) + offset
			l.AxisStop = l.Size.H - p[geom.Bottom]
		} else {
			room := l.MaxLengthSin
			if l.LabelAngled {
				room = math.Max(0, -l.MaxLengthSin)
			}
			l.AxisStart = p[geom.Top]
			l.AxisStop = l.Size.H - p[geom.Bottom] - room - offset
		}
	} else {
		if before {
			room := l.MaxLengthCos
			if l.LabelAngled {
				room = math.Max(0, -l.MaxLengthCos)
			}
			l.AxisStart = p[geom.Left] + room + offset
			l.AxisStop = l.Size.W - p[geom.Right]
		} else {
			l.AxisStart = p[geom.Left]
			l.AxisStop = l.Size.W - p[geom.Right] - math.Max(0, l.MaxLengthCos) - offset
		}
	}

	if l.AxisStop < l.AxisStart {
		l.AxisStop = l.AxisStart
	}
	l.AxisLength = l.AxisStop - l.AxisStart

	l.TickLabelFactor = 1
	if opts.TickLabel.Placement == Before {
		l.TickLabelFactor = -1
	}
}

// sizeDimensions updates every scale to the axis length and works out how
// much room each dimension needs on either side of its axis.
func sizeDimensions(l *Layout, in Input) {
	p := l.Padding
	ticksBefore := in.Options.TickLabel.Placement == Before

	for i, dim := range in.Dimensions {
		d := &l.Dimensions[i]

		if dim.Scale != nil {
			dim.Scale.SetAxisLength(l.AxisLength)
			d.TickLabels = append([]string(nil), dim.Scale.TickLabels()...)
			d.TickPos = append([]float64(nil), dim.Scale.TickPos()...)
			for _, label := range d.TickLabels {
				text := strings.TrimPrefix(label, scale.EdgeMarker)
				size := in.Measurer.MeasureText(text, in.Options.TickLabel.Font)
				d.TickMaxLength = math.Max(d.TickMaxLength, size.W)
			}
		}

		m := d.Label
		switch {
		case !l.LabelAngled && l.Horizontal():
			d.SpaceBefore = m.W / 2
			d.SpaceAfter = m.W / 2
		case !l.LabelAngled:
			d.SpaceBefore = m.H / 2
			d.SpaceAfter = m.H / 2
		case l.Horizontal():
			d.SpaceBefore = math.Max(0, -m.LengthCos)
			d.SpaceAfter = math.Max(0, m.LengthCos)
		default:
			d.SpaceBefore = math.Max(0, m.LengthSin)
			d.SpaceAfter = math.Max(0, -m.LengthSin)
		}

		if ticksBefore {
			d.SpaceBefore = math.Max(d.SpaceBefore, d.TickMaxLength)
		} else {
			d.SpaceAfter = math.Max(d.SpaceAfter, d.TickMaxLength)
		}

		if l.Horizontal() {
			d.Bound = geom.Rect{
				Y: p[geom.Top],
				W: d.SpaceBefore + d.SpaceAfter,
				H: l.Size.H - p.Vertical(),
			}
			l.TotalBoundSpace += d.Bound.W
		} else {
			d.Bound = geom.Rect{
				X: p[geom.Left],
				W: l.Size.W - p.Horizontal(),
				H: d.SpaceBefore + d.SpaceAfter,
			}
			l.TotalBoundSpace += d.Bound.H
		}
	}
}

// distribute derives the spacing shared by all dimensions.
func distribute(l *Layout) {
	n := len(l.Dimensions)
	extent := l.DrawRect.W
	l.Offset = l.Padding[geom.Left]
	if !l.Horizontal() {
		extent = l.DrawRect.H
		l.Offset = l.Padding[geom.Top]
	}

	if n > 1 {
		l.Gap = (extent - l.TotalBoundSpace) / float64(n-1)
	}
	if n > 0 {
		l.Space = extent / float64(n)
	}
}

// placeDimensions positions each bound along the spacing direction and
// derives the axis endpoints, label anchor and hit boundaries.
func placeDimensions(l *Layout, opts Options) {
	p := l.Padding
	horizontal := l.Horizontal()
	before := opts.Label.Placement != After
	offset := opts.Label.Offset

	traversed := l.Offset
	for i := range l.Dimensions {
		d := &l.Dimensions[i]

		size := d.Bound.W
		if !horizontal {
			size = d.Bound.H
		}

		var pos float64
		switch opts.Spacing {
		case Equidistant:
			pos = l.Offset + float64(i)*l.Space + (l.Space-size)/2
		case EvenlySpaced:
			pos = traversed
			traversed += l.Gap + size
		default:
			pos = l.Offset + float64(i)*l.Space + l.Space/2 - d.SpaceBefore
		}

		if horizontal {
			d.Bound.X = pos
			d.AxisStart = geom.Point{X: d.SpaceBefore, Y: l.AxisStart - p[geom.Top]}
			d.AxisStop = geom.Point{X: d.SpaceBefore, Y: l.AxisStop - p[geom.Top]}
			d.LabelPoint = geom.Point{X: d.SpaceBefore, Y: l.AxisStop + offset - p[geom.Top]}
			if before {
				d.LabelPoint.Y = l.AxisStart - offset - p[geom.Top]
			}
		} else {
			d.Bound.Y = pos
			d.AxisStart = geom.Point{X: l.AxisStart - p[geom.Left], Y: d.SpaceBefore}
			d.AxisStop = geom.Point{X: l.AxisStop - p[geom.Left], Y: d.SpaceBefore}
			d.LabelPoint = geom.Point{X: l.AxisStop + offset - p[geom.Left], Y: d.SpaceBefore}
			if before {
				d.LabelPoint.X = l.AxisStart - offset - p[geom.Left]
			}
		}

		d.LabelBoundary = labelBoundary(l, d, before, opts.Label.BoundaryPadding)
		d.AxisBoundary = axisBoundary(d, horizontal, opts.AxisBoundaryPadding)
	}
}

func labelBoundary(l *Layout, d *DimensionLayout, before bool, pad float64) geom.Boundary {
	w, h := d.Label.W, d.Label.H
	anchor := d.Bound.Origin().Add(d.LabelPoint)

	var offX, offY float64
	switch {
	case l.LabelAngled:
		offX, offY = 0, -h/2
	case l.Horizontal():
		offX = -w / 2
		if before {
			offY = -h
		}
	default:
		offX, offY = 0, -h/2
	}

	return geom.TextBoundary(anchor.X, anchor.Y, w, h, l.LabelRad, offX, offY, pad)
}

func axisBoundary(d *DimensionLayout, horizontal bool, pad float64) geom.Boundary {
	start := d.Bound.Origin().Add(d.AxisStart)
	stop := d.Bound.Origin().Add(d.AxisStop)

	across := geom.Point{X: pad}
	if !horizontal {
		across = geom.Point{Y: pad}
	}

	return geom.Boundary{
		start.Sub(across),
		start.Add(across),
		stop.Add(across),
		stop.Sub(across),
	}
}
