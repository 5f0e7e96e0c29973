package parcoords

import (
	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/layout"
	"github.com/ha1tch/parcoords/pkg/style"
)

// PathType selects how record polylines join consecutive axes.
type PathType string

const (
	PathStraight PathType = "straight"
	PathBezier   PathType = "bezier"
)

// DefaultBezierFactor is the control point distance, as a fraction of the
// gap between two axes, used when a bezier path leaves it unset.
const DefaultBezierFactor = 0.3

// Options configure a chart. DefaultOptions documents every default; a
// partial JSON document decoded over it keeps the defaults it omits.
type Options struct {
	Direction layout.Direction `json:"direction"`
	Style     StyleOptions     `json:"style"`
}

// StyleOptions is the style tree.
type StyleOptions struct {
	Axes      AxesStyle      `json:"axes"`
	Data      DataStyle      `json:"data"`
	Dimension DimensionStyle `json:"dimension"`
	Padding   geom.Padding   `json:"padding"`
}

// AxisLine styles the axis line. BoundaryPadding widens the pointer
// target on both sides of it.
type AxisLine struct {
	style.Line
	BoundaryPadding float64 `json:"boundaryPadding"`
}

// TickStyle styles the tick marks.
type TickStyle struct {
	style.Line
	Length float64 `json:"length"`
}

// AxisLabelStyle styles the tick labels.
type AxisLabelStyle struct {
	style.Text
	Angle     *float64         `json:"angle,omitempty"`
	Offset    float64          `json:"offset"`
	Placement layout.Placement `json:"placement"`
}

// AxesStyle styles axes, ticks, tick labels and filters. The Active and
// Hover variants override the base style field by field.
type AxesStyle struct {
	Axis         AxisLine       `json:"axis"`
	AxisActive   style.Line     `json:"axisActive"`
	AxisHover    style.Line     `json:"axisHover"`
	Filter       style.Shape    `json:"filter"`
	FilterActive style.Shape    `json:"filterActive"`
	FilterHover  style.Shape    `json:"filterHover"`
	Label        AxisLabelStyle `json:"label"`
	LabelActive  style.Text     `json:"labelActive"`
	LabelHover   style.Text     `json:"labelHover"`
	Tick         TickStyle      `json:"tick"`
	TickActive   style.Line     `json:"tickActive"`
	TickHover    style.Line     `json:"tickHover"`
}

// PathStyle shapes the record polylines.
type PathStyle struct {
	Type         PathType `json:"type"`
	BezierFactor float64  `json:"bezierFactor,omitempty"`
}

// ColorScale colours each record by its position on one dimension.
type ColorScale struct {
	DimensionKey string         `json:"dimensionKey"`
	Colors       style.Gradient `json:"colors"`
}

// DataStyle styles the record polylines.
type DataStyle struct {
	Default    style.Line  `json:"default"`
	Filtered   style.Line  `json:"filtered"`
	Path       PathStyle   `json:"path"`
	ColorScale *ColorScale `json:"colorScale,omitempty"`
}

// DimensionLabelStyle styles and positions the dimension names.
type DimensionLabelStyle struct {
	style.Text
	Angle           *float64         `json:"angle,omitempty"`
	BoundaryPadding float64          `json:"boundaryPadding"`
	Offset          float64          `json:"offset"`
	Placement       layout.Placement `json:"placement"`
}

// DimensionStyle styles dimension labels and picks the spacing mode.
type DimensionStyle struct {
	Label       DimensionLabelStyle `json:"label"`
	LabelActive style.Text          `json:"labelActive"`
	LabelHover  style.Text          `json:"labelHover"`
	Layout      layout.Spacing      `json:"layout"`
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	black := style.RGB(0, 0, 0)
	white := style.RGB(255, 255, 255)
	grey := style.RGB(147, 147, 147)
	orange := style.RGB(255, 100, 0)
	blue := style.RGB(82, 144, 244)
	font := style.Font{Size: 11, Family: "sans-serif", Weight: "normal"}

	return Options{
		Direction: layout.Horizontal,
		Style: StyleOptions{
			Axes: AxesStyle{
				Axis:         AxisLine{Line: style.Line{Color: grey, Width: 1}, BoundaryPadding: 15},
				AxisActive:   style.Line{Color: orange},
				AxisHover:    style.Line{Color: grey},
				Filter:       style.Shape{CornerRadius: 2, Fill: black, Stroke: white, Width: 4},
				FilterActive: style.Shape{CornerRadius: 3, Fill: orange, Width: 6},
				FilterHover:  style.Shape{CornerRadius: 2, Fill: style.RGB(200, 50, 0), Width: 4},
				Label: AxisLabelStyle{
					Text:      style.Text{Fill: black, Stroke: white, StrokeWidth: 3, Font: font},
					Offset:    4,
					Placement: layout.Before,
				},
				LabelActive: style.Text{Fill: black},
				LabelHover:  style.Text{Fill: black},
				Tick:        TickStyle{Line: style.Line{Color: grey, Width: 1}, Length: 4},
				TickActive:  style.Line{Color: orange},
				TickHover:   style.Line{Color: grey},
			},
			Data: DataStyle{
				Default:  style.Line{Color: blue, Width: 1},
				Filtered: style.Line{Color: style.RGBA(0, 0, 0, 0.05), Width: 1},
				Path:     PathStyle{Type: PathStraight},
			},
			Dimension: DimensionStyle{
				Label: DimensionLabelStyle{
					Text:            style.Text{Fill: black, Stroke: white, StrokeWidth: 3, Font: font},
					BoundaryPadding: 5,
					Offset:          16,
					Placement:       layout.Before,
				},
				LabelActive: style.Text{Fill: blue},
				LabelHover:  style.Text{Fill: blue},
				Layout:      layout.AxisEvenlySpaced,
			},
			Padding: geom.Padding{32, 16, 32, 16},
		},
	}
}

// Horizontal reports whether dimensions are spread left to right.
func (o Options) Horizontal() bool {
	return o.Direction != layout.Vertical
}

func (o Options) validate() error {
	switch o.Direction {
	case layout.Horizontal, layout.Vertical:
	default:
		return configError("unknown direction %q", o.Direction)
	}
	switch o.Style.Dimension.Layout {
	case layout.AxisEvenlySpaced, layout.Equidistant, layout.EvenlySpaced:
	default:
		return configError("unknown dimension layout %q", o.Style.Dimension.Layout)
	}
	for name, p := range map[string]layout.Placement{
		"dimension label": o.Style.Dimension.Label.Placement,
		"axis label":      o.Style.Axes.Label.Placement,
	} {
		if p != layout.Before && p != layout.After {
			return configError("unknown %s placement %q", name, p)
		}
	}
	switch o.Style.Data.Path.Type {
	case PathStraight, PathBezier:
	default:
		return configError("unknown path type %q", o.Style.Data.Path.Type)
	}
	return nil
}

// layoutOptions extracts what the layout engine needs.
func (o Options) layoutOptions() layout.Options {
	s := o.Style
	return layout.Options{
		Direction: o.Direction,
		Padding:   s.Padding,
		Spacing:   s.Dimension.Layout,
		Label: layout.LabelOptions{
			Font:            s.Dimension.Label.Font,
			Angle:           s.Dimension.Label.Angle,
			Offset:          s.Dimension.Label.Offset,
			Placement:       s.Dimension.Label.Placement,
			BoundaryPadding: s.Dimension.Label.BoundaryPadding,
		},
		TickLabel: layout.TickLabelOptions{
			Font:      s.Axes.Label.Font,
			Offset:    s.Axes.Label.Offset,
			Placement: s.Axes.Label.Placement,
		},
		AxisBoundaryPadding: s.Axes.Axis.BoundaryPadding,
	}
}
