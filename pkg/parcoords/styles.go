package parcoords

import (
	"github.com/ha1tch/parcoords/pkg/interact"
	"github.com/ha1tch/parcoords/pkg/style"
)

// FrameStyle is the resolved style of one dimension for the current frame.
type FrameStyle struct {
	Label     style.Text
	Axis      style.Line
	Tick      style.Line
	TickLabel style.Text
	Filters   []style.Shape
}

// Styles resolves, per dimension, the active, hover or base variant of every
// element. Active wins over hover, and hover only applies while no gesture
// is in progress.
func (c *Chart) Styles() []FrameStyle {
	s := c.opts.Style
	st := c.machine.State
	action, focus := st.Action, st.Focus
	busy := st.Active()

	focused := func(i int, types ...interact.FocusType) bool {
		if focus == nil || focus.DimIndex != i {
			return false
		}
		for _, t := range types {
			if focus.Type == t {
				return true
			}
		}
		return false
	}

	out := make([]FrameStyle, len(c.dims))
	for i, d := range c.dims {
		dimActive := action.Type == interact.ActionLabelMove && action.DimIndex == i
		dimHover := !busy && focused(i, interact.FocusDimensionLabel)
		axisActive := action.Type.IsFilter() && action.DimIndex == i
		axisHover := !busy && focused(i, interact.FocusDimensionAxis)

		fs := FrameStyle{
			Label:     s.Dimension.Label.Text,
			Axis:      s.Axes.Axis.Line,
			Tick:      s.Axes.Tick.Line,
			TickLabel: s.Axes.Label.Text,
		}
		switch {
		case dimActive:
			fs.Label = style.MergeText(fs.Label, s.Dimension.LabelActive)
		case dimHover:
			fs.Label = style.MergeText(fs.Label, s.Dimension.LabelHover)
		}
		switch {
		case axisActive:
			fs.Axis = style.MergeLine(fs.Axis, s.Axes.AxisActive)
			fs.Tick = style.MergeLine(fs.Tick, s.Axes.TickActive)
			fs.TickLabel = style.MergeText(fs.TickLabel, s.Axes.LabelActive)
		case axisHover:
			fs.Axis = style.MergeLine(fs.Axis, s.Axes.AxisHover)
			fs.Tick = style.MergeLine(fs.Tick, s.Axes.TickHover)
			fs.TickLabel = style.MergeText(fs.TickLabel, s.Axes.LabelHover)
		}

		filters := c.filters[d.Key]
		fs.Filters = make([]style.Shape, len(filters))
		for j := range filters {
			shape := s.Axes.Filter
			switch {
			case action.DimIndex == i && action.FilterIndex == j:
				shape = style.MergeShape(shape, s.Axes.FilterActive)
			case !busy && focused(i, interact.FocusFilter, interact.FocusFilterResize) && focus.FilterIndex == j:
				shape = style.MergeShape(shape, s.Axes.FilterHover)
			}
			fs.Filters[j] = shape
		}
		out[i] = fs
	}
	return out
}
