// Package interact turns pointer gestures into chart edits: dragging a
// dimension label reorders dimensions, and pressing on an axis creates,
// moves, resizes, or removes range filters.
package interact

import (
	"fmt"

	"github.com/ha1tch/parcoords/pkg/geom"
)

const (
	// DimensionSwapThreshold is how close (px) a dragged axis must come to
	// another axis before the two dimensions swap.
	DimensionSwapThreshold = 30
	// FilterRemoveThreshold is the pointer travel (px) below which a
	// press-release counts as a click that removes a filter.
	FilterRemoveThreshold = 1
	// FilterResizeThreshold is the distance (px) from a filter end that
	// grabs the end instead of the whole filter.
	FilterResizeThreshold = 3
)

// ActionType is the gesture in progress.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionLabelMove
	ActionFilterCreate
	ActionFilterMove
	ActionFilterResizeBefore
	ActionFilterResizeAfter
)

var actionNames = map[ActionType]string{
	ActionNone:               "none",
	ActionLabelMove:          "label-move",
	ActionFilterCreate:       "filter-create",
	ActionFilterMove:         "filter-move",
	ActionFilterResizeBefore: "filter-resize-before",
	ActionFilterResizeAfter:  "filter-resize-after",
}

func (a ActionType) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("ActionType(%d)", int(a))
}

// IsFilter reports whether the action edits a filter.
func (a ActionType) IsFilter() bool {
	switch a {
	case ActionFilterCreate, ActionFilterMove, ActionFilterResizeBefore, ActionFilterResizeAfter:
		return true
	}
	return false
}

// FocusType is the kind of element under the pointer.
type FocusType int

const (
	FocusNone FocusType = iota
	FocusDimensionLabel
	FocusDimensionAxis
	FocusFilter
	FocusFilterResize
)

func (f FocusType) String() string {
	switch f {
	case FocusNone:
		return "none"
	case FocusDimensionLabel:
		return "dimension-label"
	case FocusDimensionAxis:
		return "dimension-axis"
	case FocusFilter:
		return "filter"
	case FocusFilterResize:
		return "filter-resize"
	}
	return fmt.Sprintf("FocusType(%d)", int(f))
}

// Focus identifies the element under the pointer. FilterIndex is -1 unless
// Type is FocusFilter or FocusFilterResize.
type Focus struct {
	DimIndex    int
	FilterIndex int
	Type        FocusType
}

// Action is the gesture in progress. P0 is where it started and P1 is the
// latest pointer position.
type Action struct {
	Type        ActionType
	DimIndex    int
	FilterIndex int
	P0, P1      geom.Point
}

// DimensionDrag tracks a label drag.
type DimensionDrag struct {
	// Axis is the axis coordinate, along the spacing direction, at drag start.
	Axis float64
	// Bound is the dragged dimension's bound at drag start.
	Bound       geom.Rect
	BoundOffset geom.Point
}

// ActiveFilter refers to the filter being edited by dimension key and
// index, with its ends as they were when the gesture began.
type ActiveFilter struct {
	Key              string
	Index            int
	StartP0, StartP1 float64
}

// State is the complete interaction state of a chart.
type State struct {
	Action    Action
	Focus     *Focus
	Dimension DimensionDrag
	Filter    ActiveFilter
}

// New returns the idle state.
func New() State {
	return State{
		Action: Action{Type: ActionNone, DimIndex: -1, FilterIndex: -1},
		Filter: ActiveFilter{Index: -1},
	}
}

// Active reports whether a gesture is in progress.
func (s State) Active() bool {
	return s.Action.Type != ActionNone
}

// DragBound returns where dimension i should be drawn: its drag-start bound
// shifted by the pointer offset while its label is dragged, otherwise bound.
func (s State) DragBound(i int, bound geom.Rect) geom.Rect {
	if s.Action.Type == ActionLabelMove && s.Action.DimIndex == i {
		return geom.ShiftRect(s.Dimension.Bound, s.Dimension.BoundOffset.X, s.Dimension.BoundOffset.Y)
	}
	return bound
}

// Cursor is a pointer shape hint for the host surface.
type Cursor string

const (
	CursorDefault   Cursor = "default"
	CursorGrab      Cursor = "grab"
	CursorGrabbing  Cursor = "grabbing"
	CursorCrosshair Cursor = "crosshair"
	CursorResizeNS  Cursor = "ns-resize"
	CursorResizeEW  Cursor = "ew-resize"
)

// CursorFor derives the pointer shape from the action, or from the focus
// when no gesture is in progress.
func CursorFor(s State, horizontal bool) Cursor {
	resize := CursorResizeEW
	if horizontal {
		resize = CursorResizeNS
	}

	switch s.Action.Type {
	case ActionFilterMove, ActionLabelMove:
		return CursorGrabbing
	case ActionFilterResizeBefore, ActionFilterResizeAfter:
		return resize
	case ActionFilterCreate:
		return CursorCrosshair
	}

	if s.Focus == nil {
		return CursorDefault
	}
	switch s.Focus.Type {
	case FocusDimensionLabel, FocusFilter:
		return CursorGrab
	case FocusDimensionAxis:
		return CursorCrosshair
	case FocusFilterResize:
		return resize
	}
	return CursorDefault
}
