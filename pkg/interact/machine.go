package interact

import (
	"fmt"
	"math"

	"github.com/ha1tch/parcoords/pkg/filter"
	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/layout"
	"github.com/ha1tch/parcoords/pkg/scale"
)

// Target is the chart a Machine edits.
type Target interface {
	// Layout returns the current frame geometry.
	Layout() *layout.Layout
	// Filters returns the live filter set. The machine edits it in place.
	Filters() filter.Set
	// Scale returns the scale of the dimension at index i.
	Scale(i int) scale.Scale
	// SwapDimensions exchanges two dimensions and lays the chart out again.
	SwapDimensions(i, j int)
}

// EventKind names a change made by a gesture.
type EventKind int

const (
	EventDimensionMove EventKind = iota
	EventFilterCreate
	EventFilterMove
	EventFilterResize
	EventFilterRemove
	EventFilterChange
)

func (k EventKind) String() string {
	switch k {
	case EventDimensionMove:
		return "dimension-move"
	case EventFilterCreate:
		return "filter-create"
	case EventFilterMove:
		return "filter-move"
	case EventFilterResize:
		return "filter-resize"
	case EventFilterRemove:
		return "filter-remove"
	case EventFilterChange:
		return "filter-change"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event reports a change. From and To are dimension indices for
// EventDimensionMove; Filter is set for the single-filter kinds.
type Event struct {
	Kind     EventKind
	Key      string
	From, To int
	Filter   filter.Filter
}

// Machine applies pointer gestures to a Target.
type Machine struct {
	State  State
	target Target
}

// NewMachine returns an idle machine driving t.
func NewMachine(t Target) *Machine {
	return &Machine{State: New(), target: t}
}

// Reset drops any gesture in progress.
func (m *Machine) Reset() {
	m.State = New()
}

// Cursor returns the pointer shape for the current state.
func (m *Machine) Cursor() Cursor {
	l := m.target.Layout()
	return CursorFor(m.State, l == nil || l.Horizontal())
}

// PointerDown starts a gesture at pt. A gesture still in progress is
// finished at its last pointer position first, and its events returned.
func (m *Machine) PointerDown(pt geom.Point) []Event {
	var events []Event
	if m.State.Active() {
		events = m.PointerUp(m.State.Action.P1)
	}

	l := m.target.Layout()
	m.State = New()
	s := &m.State
	s.Action.P0 = pt
	s.Action.P1 = pt
	s.Focus = FocusAt(l, m.target.Filters(), pt)
	if s.Focus == nil {
		return events
	}

	i := s.Focus.DimIndex
	d := l.Dimensions[i]
	s.Action.DimIndex = i

	if s.Focus.Type == FocusDimensionLabel {
		h, _ := axisKeys(l)
		s.Action.Type = ActionLabelMove
		s.Dimension = DimensionDrag{Axis: d.AxisOrigin().Axis(h), Bound: d.Bound}
		return events
	}

	s.Filter.Key = d.Key
	p := PercentAt(l, d, pt)
	m.setActiveFilter(l, d.Key, p, m.target.Scale(i).PercentToValue(p))
	return events
}

// setActiveFilter grabs the filter of key containing pos, or creates a
// zero-width one there.
func (m *Machine) setActiveFilter(l *layout.Layout, key string, pos float64, value any) {
	s := &m.State
	filters := m.target.Filters()

	idx := filters.IndexAt(key, pos)
	if idx < 0 {
		s.Action.Type = ActionFilterCreate
		idx = filters.Add(key, filter.Filter{P0: pos, P1: pos, Value0: value, Value1: value})
		s.Filter.Index = idx
		s.Filter.StartP0, s.Filter.StartP1 = pos, pos
		s.Action.FilterIndex = idx
		return
	}

	f := filters[key][idx]
	thr := resizeThreshold(l)
	s.Filter.Index = idx
	s.Filter.StartP0, s.Filter.StartP1 = f.P0, f.P1
	s.Action.FilterIndex = idx

	switch {
	case pos <= f.P0+thr:
		s.Action.Type = ActionFilterResizeBefore
	case pos >= f.P1-thr:
		s.Action.Type = ActionFilterResizeAfter
	default:
		s.Action.Type = ActionFilterMove
	}
}

// PointerMove updates focus and advances the gesture in progress.
func (m *Machine) PointerMove(pt geom.Point) []Event {
	s := &m.State
	s.Action.P1 = pt
	s.Focus = FocusAt(m.target.Layout(), m.target.Filters(), pt)

	events := m.updateActiveLabel()
	m.updateActiveFilter()
	return events
}

// updateActiveLabel tracks the dragged label and swaps it with the first
// dimension whose axis it comes close to. At most one swap happens per move.
func (m *Machine) updateActiveLabel() []Event {
	s := &m.State
	if s.Action.Type != ActionLabelMove {
		return nil
	}

	l := m.target.Layout()
	h, _ := axisKeys(l)
	delta := s.Action.P1.Sub(s.Action.P0)
	if h == 'x' {
		s.Dimension.BoundOffset = geom.Point{X: delta.X}
	} else {
		s.Dimension.BoundOffset = geom.Point{Y: delta.Y}
	}
	axis := s.Dimension.Axis + s.Dimension.BoundOffset.Axis(h)

	for i, d := range l.Dimensions {
		if i == s.Action.DimIndex {
			continue
		}
		if math.Abs(axis-d.AxisOrigin().Axis(h)) >= DimensionSwapThreshold {
			continue
		}
		from := s.Action.DimIndex
		key := l.Dimensions[from].Key
		m.target.SwapDimensions(from, i)
		s.Action.DimIndex = i
		return []Event{{Kind: EventDimensionMove, Key: key, From: from, To: i}}
	}
	return nil
}

// updateActiveFilter moves the edited filter ends to follow the pointer.
func (m *Machine) updateActiveFilter() {
	s := &m.State
	if !s.Action.Type.IsFilter() || s.Filter.Key == "" {
		return
	}

	l := m.target.Layout()
	list := m.target.Filters()[s.Filter.Key]
	if s.Filter.Index < 0 || s.Filter.Index >= len(list) {
		return
	}
	if s.Action.DimIndex < 0 || s.Action.DimIndex >= len(l.Dimensions) {
		return
	}

	d := l.Dimensions[s.Action.DimIndex]
	sc := m.target.Scale(s.Action.DimIndex)
	f := &list[s.Filter.Index]

	switch s.Action.Type {
	case ActionFilterMove:
		length := s.Filter.StartP1 - s.Filter.StartP0
		shift := PercentAt(l, d, s.Action.P1) - PercentAt(l, d, s.Action.P0)
		f.P0 = s.Filter.StartP0 + shift
		f.P1 = s.Filter.StartP1 + shift
		if f.P0 < 0 {
			f.P0, f.P1 = 0, length
		} else if f.P1 > 1 {
			f.P0, f.P1 = 1-length, 1
		}
		f.Value0 = sc.PercentToValue(f.P0)
		f.Value1 = sc.PercentToValue(f.P1)
	case ActionFilterResizeBefore:
		f.P0 = clamp01(PercentAt(l, d, s.Action.P1))
		f.Value0 = sc.PercentToValue(f.P0)
	default:
		f.P1 = clamp01(PercentAt(l, d, s.Action.P1))
		f.Value1 = sc.PercentToValue(f.P1)
	}
}

// PointerUp finishes the gesture at pt. A filter gesture that barely moved
// removes the filter under it; anything else is committed. Filters of the
// edited dimension are then merged and the state returns to idle.
func (m *Machine) PointerUp(pt geom.Point) []Event {
	s := &m.State
	if !s.Active() {
		s.Focus = FocusAt(m.target.Layout(), m.target.Filters(), pt)
		return nil
	}

	s.Action.P1 = pt
	var events []Event
	if s.Action.Type.IsFilter() {
		m.updateActiveFilter()
		events = m.commitFilter()
	}

	m.State = New()
	m.State.Focus = FocusAt(m.target.Layout(), m.target.Filters(), pt)
	return events
}

func (m *Machine) commitFilter() []Event {
	s := &m.State
	key, idx := s.Filter.Key, s.Filter.Index
	filters := m.target.Filters()
	if key == "" || idx < 0 || idx >= len(filters[key]) {
		return nil
	}

	f := filters[key][idx].Normalize()
	filters[key][idx] = f

	// A filter made by this gesture was never reported, so dropping it
	// again is silent.
	created := s.Action.Type == ActionFilterCreate
	var events []Event
	switch {
	case geom.Distance(s.Action.P0, s.Action.P1) < FilterRemoveThreshold:
		mid := f.P0 + (f.P1-f.P0)/2
		if r := filters.IndexAt(key, mid); r >= 0 {
			removed := filters.Remove(key, r)
			if !created {
				events = append(events, Event{Kind: EventFilterRemove, Key: key, Filter: removed})
			}
		}
	case f.IsInvalid():
		// Zero width; cleanup drops it.
		if !created {
			events = append(events, Event{Kind: EventFilterRemove, Key: key, Filter: f})
		}
	default:
		kind := EventFilterResize
		switch s.Action.Type {
		case ActionFilterCreate:
			kind = EventFilterCreate
		case ActionFilterMove:
			kind = EventFilterMove
		}
		events = append(events, Event{Kind: kind, Key: key, Filter: f})
	}

	filters.Cleanup(key)
	if len(events) == 0 {
		return nil
	}
	return append(events, Event{Kind: EventFilterChange, Key: key})
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
