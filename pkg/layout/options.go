package layout

import (
	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/style"
)

// Direction selects the axis orientation.
type Direction string

const (
	// Horizontal lays dimensions out left to right with vertical axes.
	Horizontal Direction = "horizontal"
	// Vertical stacks dimensions top to bottom with horizontal axes.
	Vertical Direction = "vertical"
)

// Placement puts a label before (above or left of) or after its anchor.
type Placement string

const (
	Before Placement = "before"
	After  Placement = "after"
)

// Spacing selects how dimension bounds are distributed.
type Spacing string

const (
	// AxisEvenlySpaced puts the axes at equal intervals.
	AxisEvenlySpaced Spacing = "axis-evenly-spaced"
	// Equidistant centres each bound within an equal slot.
	Equidistant Spacing = "equidistant"
	// EvenlySpaced leaves equal gaps between consecutive bounds.
	EvenlySpaced Spacing = "evenly-spaced"
)

// LabelOptions position the dimension name labels.
type LabelOptions struct {
	Font            style.Font
	Angle           *float64
	Offset          float64
	Placement       Placement
	BoundaryPadding float64
}

// TickLabelOptions position the tick labels along each axis.
type TickLabelOptions struct {
	Font      style.Font
	Offset    float64
	Placement Placement
}

// Options are the style values the layout depends on.
type Options struct {
	Direction           Direction
	Padding             geom.Padding
	Spacing             Spacing
	Label               LabelOptions
	TickLabel           TickLabelOptions
	AxisBoundaryPadding float64
}

// TextMeasurer returns the ink bounds of a text run.
type TextMeasurer interface {
	MeasureText(text string, font style.Font) geom.Size
}

// FixedMeasurer measures text as if every rune had the same advance.
type FixedMeasurer struct {
	Advance float64 // horizontal advance per rune, in pixels
	Height  float64 // line height, in pixels
}

func (m FixedMeasurer) MeasureText(text string, _ style.Font) geom.Size {
	n := 0
	for range text {
		n++
	}
	return geom.Size{W: float64(n) * m.Advance, H: m.Height}
}
