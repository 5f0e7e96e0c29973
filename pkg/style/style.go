package style

import "fmt"

// Align is the horizontal text alignment relative to the anchor point.
type Align string

const (
	AlignAuto   Align = ""
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Baseline is the vertical text alignment relative to the anchor point.
type Baseline string

const (
	BaselineAuto   Baseline = ""
	BaselineTop    Baseline = "top"
	BaselineMiddle Baseline = "middle"
	BaselineBottom Baseline = "bottom"
)

// Font selects a typeface size. Family and weight are advisory; renderers
// without them fall back to their default face.
type Font struct {
	Size   float64 `json:"size,omitempty"`
	Family string  `json:"family,omitempty"`
	Weight string  `json:"weight,omitempty"`
}

// DefaultFontSize is used when a font leaves the size unset.
const DefaultFontSize = 11

// PointSize returns the font size, defaulting to DefaultFontSize.
func (f Font) PointSize() float64 {
	if f.Size > 0 {
		return f.Size
	}
	return DefaultFontSize
}

func (f Font) String() string {
	family := f.Family
	if family == "" {
		family = "sans-serif"
	}
	weight := f.Weight
	if weight == "" {
		weight = "normal"
	}
	return fmt.Sprintf("%s %gpx %s", weight, f.PointSize(), family)
}

// Line strokes a path.
type Line struct {
	Color Color   `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// Text paints a string with an optional halo stroke behind the fill.
type Text struct {
	Fill        Color    `json:"fill,omitempty"`
	Stroke      Color    `json:"stroke,omitempty"`
	StrokeWidth float64  `json:"strokeWidth,omitempty"`
	Font        Font     `json:"font,omitempty"`
	Align       Align    `json:"align,omitempty"`
	Baseline    Baseline `json:"baseline,omitempty"`
}

// Shape fills and strokes a rectangle or polygon. Width is the thickness
// of bar shapes drawn across an axis.
type Shape struct {
	Fill         Color   `json:"fill,omitempty"`
	Stroke       Color   `json:"stroke,omitempty"`
	StrokeWidth  float64 `json:"strokeWidth,omitempty"`
	CornerRadius float64 `json:"cornerRadius,omitempty"`
	Width        float64 `json:"width,omitempty"`
}

// MergeLine returns base with every set field of over applied.
func MergeLine(base, over Line) Line {
	if over.Color.IsSet() {
		base.Color = over.Color
	}
	if over.Width != 0 {
		base.Width = over.Width
	}
	return base
}

// MergeText returns base with every set field of over applied.
func MergeText(base, over Text) Text {
	if over.Fill.IsSet() {
		base.Fill = over.Fill
	}
	if over.Stroke.IsSet() {
		base.Stroke = over.Stroke
	}
	if over.StrokeWidth != 0 {
		base.StrokeWidth = over.StrokeWidth
	}
	if over.Font.Size != 0 {
		base.Font.Size = over.Font.Size
	}
	if over.Font.Family != "" {
		base.Font.Family = over.Font.Family
	}
	if over.Font.Weight != "" {
		base.Font.Weight = over.Font.Weight
	}
	if over.Align != AlignAuto {
		base.Align = over.Align
	}
	if over.Baseline != BaselineAuto {
		base.Baseline = over.Baseline
	}
	return base
}

// MergeShape returns base with every set field of over applied.
func MergeShape(base, over Shape) Shape {
	if over.Fill.IsSet() {
		base.Fill = over.Fill
	}
	if over.Stroke.IsSet() {
		base.Stroke = over.Stroke
	}
	if over.StrokeWidth != 0 {
		base.StrokeWidth = over.StrokeWidth
	}
	if over.CornerRadius != 0 {
		base.CornerRadius = over.CornerRadius
	}
	if over.Width != 0 {
		base.Width = over.Width
	}
	return base
}
