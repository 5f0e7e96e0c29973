// Package parcoords is an interactive parallel-coordinates chart.
//
// A Chart owns the dimensions, their data, the filters and the interaction
// state. Hosts feed it a size and pointer events and call Draw with a
// Canvas whenever they want a frame. Every call runs to completion before
// the next one; a Chart is not safe for concurrent use.
package parcoords

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ha1tch/parcoords/pkg/filter"
	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/interact"
	"github.com/ha1tch/parcoords/pkg/layout"
	"github.com/ha1tch/parcoords/pkg/scale"
)

// AxisType selects the scale of a dimension.
type AxisType string

const (
	AxisLinear      AxisType = "linear"
	AxisLogarithmic AxisType = "logarithmic"
	AxisCategorical AxisType = "categorical"
)

// Axis configures the scale of a dimension. DataOnEdge defaults to true.
// Categorical axes without Categories use the distinct data values in
// order of first appearance.
type Axis struct {
	Type       AxisType `json:"type,omitempty"`
	Categories []any    `json:"categories,omitempty"`
	LogBase    float64  `json:"logBase,omitempty"`
	DataOnEdge *bool    `json:"dataOnEdge,omitempty"`
}

func (a Axis) onEdge() bool {
	return a.DataOnEdge == nil || *a.DataOnEdge
}

// Dimension is one column of data. Key identifies it; Label is displayed.
type Dimension struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Axis  Axis   `json:"axis"`
}

// Data holds the values of each dimension by key. Every slice has one
// entry per record.
type Data map[string][]any

// Hooks are called synchronously when the chart changes. Any may be nil.
type Hooks struct {
	OnDimensionMove func(dim Dimension, to, from int)
	OnFilterCreate  func(key string, f filter.Filter)
	OnFilterMove    func(key string, f filter.Filter)
	OnFilterResize  func(key string, f filter.Filter)
	OnFilterRemove  func(key string, f filter.Filter)
	OnFilterChange  func(filters filter.Set)
	OnReset         func()
	OnResize        func(size geom.Size)
}

// Option customises a Chart.
type Option func(*Chart)

// WithLogger sets the logger used for gesture tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Chart) {
		if l != nil {
			c.log = l
		}
	}
}

// WithHooks installs change callbacks.
func WithHooks(h Hooks) Option {
	return func(c *Chart) { c.hooks = h }
}

// Chart is a parallel-coordinates chart.
type Chart struct {
	opts     Options
	hooks    Hooks
	log      *slog.Logger
	measurer layout.TextMeasurer

	dims     []Dimension
	original []Dimension
	data     Data
	records  int
	scales   map[string]scale.Scale

	size    geom.Size
	filters filter.Set
	layout  *layout.Layout
	machine *interact.Machine
}

// New validates the configuration and builds a chart. It returns an *Error
// wrapping one of the package sentinels when construction fails.
func New(dims []Dimension, data Data, opts Options, m layout.TextMeasurer, options ...Option) (*Chart, error) {
	if m == nil {
		return nil, &Error{Kind: KindEnvironment, Msg: "text measurement unavailable", Err: ErrNoMeasurer}
	}
	if len(dims) == 0 {
		return nil, &Error{Kind: KindConfig, Err: ErrNoDimensions}
	}
	if len(data) == 0 {
		return nil, &Error{Kind: KindConfig, Err: ErrNoData}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	records := -1
	seen := make(map[string]bool, len(dims))
	for _, d := range dims {
		if seen[d.Key] {
			return nil, &Error{Kind: KindConfig, Msg: fmt.Sprintf("key %q", d.Key), Err: ErrDuplicateKey}
		}
		seen[d.Key] = true

		values, ok := data[d.Key]
		if !ok {
			return nil, &Error{Kind: KindConfig, Msg: fmt.Sprintf("key %q", d.Key), Err: ErrMissingData}
		}
		switch {
		case records < 0:
			records = len(values)
		case records != len(values):
			return nil, &Error{
				Kind: KindConfig,
				Msg:  fmt.Sprintf("key %q has %d records, expected %d", d.Key, len(values), records),
				Err:  ErrUnequalData,
			}
		}
		switch d.Axis.Type {
		case "", AxisLinear, AxisLogarithmic, AxisCategorical:
		default:
			return nil, configError("dimension %q has unknown axis type %q", d.Key, d.Axis.Type)
		}
	}
	if records == 0 {
		return nil, &Error{Kind: KindConfig, Err: ErrNoRecords}
	}

	c := &Chart{
		opts:     opts,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		measurer: m,
		dims:     append([]Dimension(nil), dims...),
		original: append([]Dimension(nil), dims...),
		data:     data,
		records:  records,
		filters:  filter.Set{},
	}
	for _, o := range options {
		o(c)
	}
	c.machine = interact.NewMachine(target{c})
	c.Calculate()
	return c, nil
}

// SetSize resizes the chart. It does nothing when the size is unchanged.
func (c *Chart) SetSize(w, h float64) {
	size := geom.Size{W: w, H: h}
	if size == c.size {
		return
	}
	c.size = size
	c.calculateLayout()
	c.log.Debug("resized", "w", w, "h", h, "axisLength", c.layout.AxisLength)
	if c.hooks.OnResize != nil {
		c.hooks.OnResize(size)
	}
}

// Size returns the current canvas size.
func (c *Chart) Size() geom.Size { return c.size }

// Calculate rebuilds every scale from the data and lays the chart out again.
func (c *Chart) Calculate() {
	c.scales = make(map[string]scale.Scale, len(c.dims))
	for _, d := range c.dims {
		c.scales[d.Key] = newScale(d.Axis, c.data[d.Key])
	}
	c.calculateLayout()
}

func (c *Chart) calculateLayout() {
	dims := make([]layout.Dimension, len(c.dims))
	for i, d := range c.dims {
		dims[i] = layout.Dimension{Key: d.Key, Label: d.Label, Scale: c.scales[d.Key]}
	}
	c.layout = layout.Compute(layout.Input{
		Size:       c.size,
		Dimensions: dims,
		Options:    c.opts.layoutOptions(),
		Measurer:   c.measurer,
	})
}

func newScale(ax Axis, values []any) scale.Scale {
	switch ax.Type {
	case AxisCategorical:
		categories := ax.Categories
		if len(categories) == 0 {
			categories = distinct(values)
		}
		return scale.NewCategorical(categories, ax.onEdge())
	case AxisLogarithmic:
		lo, hi, ok := scale.Extent(values)
		if !ok {
			lo, hi = 1, 10
		}
		return scale.NewLog(lo, hi, ax.LogBase, ax.onEdge())
	}
	lo, hi, ok := scale.Extent(values)
	if !ok {
		lo, hi = 0, 1
	}
	return scale.NewLinear(lo, hi, ax.onEdge())
}

func distinct(values []any) []any {
	var out []any
	seen := map[string]bool{}
	for _, v := range values {
		s := scale.ValueString(v)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, v)
	}
	return out
}

// Options returns the chart configuration.
func (c *Chart) Options() Options { return c.opts }

// Layout returns the geometry of the current frame.
func (c *Chart) Layout() *layout.Layout { return c.layout }

// Dimensions returns the dimensions in display order.
func (c *Chart) Dimensions() []Dimension {
	return append([]Dimension(nil), c.dims...)
}

// DimensionKeys returns the dimension keys in display order.
func (c *Chart) DimensionKeys() []string {
	keys := make([]string, len(c.dims))
	for i, d := range c.dims {
		keys[i] = d.Key
	}
	return keys
}

// Scale returns the scale of the dimension with the given key, or nil.
func (c *Chart) Scale(key string) scale.Scale { return c.scales[key] }

// Records returns the number of data records.
func (c *Chart) Records() int { return c.records }

// Filters returns a copy of the current filters.
func (c *Chart) Filters() filter.Set { return c.filters.Clone() }

// SetFilters replaces the filters. Keys that name no dimension are
// dropped and each remaining list is cleaned up.
func (c *Chart) SetFilters(fs filter.Set) {
	c.filters = filter.Set{}
	for _, d := range c.dims {
		if list, ok := fs[d.Key]; ok {
			c.filters[d.Key] = append([]filter.Filter(nil), list...)
			c.filters.Cleanup(d.Key)
		}
	}
	c.machine.Reset()
	if c.hooks.OnFilterChange != nil {
		c.hooks.OnFilterChange(c.filters.Clone())
	}
}

// State returns the interaction state.
func (c *Chart) State() interact.State { return c.machine.State }

// Cursor returns the pointer shape the host should show.
func (c *Chart) Cursor() interact.Cursor { return c.machine.Cursor() }

// MouseDown starts a gesture at pt.
func (c *Chart) MouseDown(pt geom.Point) {
	c.dispatch(c.machine.PointerDown(pt))
	if a := c.machine.State.Action; a.Type != interact.ActionNone {
		c.log.Debug("action started", "action", a.Type, "dim", a.DimIndex, "filter", a.FilterIndex)
	}
}

// MouseMove updates focus and the gesture in progress.
func (c *Chart) MouseMove(pt geom.Point) {
	c.dispatch(c.machine.PointerMove(pt))
}

// MouseUp finishes the gesture in progress.
func (c *Chart) MouseUp(pt geom.Point) {
	action := c.machine.State.Action.Type
	c.dispatch(c.machine.PointerUp(pt))
	if action != interact.ActionNone {
		c.log.Debug("action finished", "action", action, "filters", c.filters.Count())
	}
}

// DoubleClick restores the original dimension order and clears every
// filter.
func (c *Chart) DoubleClick() {
	c.dims = append([]Dimension(nil), c.original...)
	c.filters = filter.Set{}
	c.machine.Reset()
	c.Calculate()
	c.log.Debug("reset")
	if c.hooks.OnReset != nil {
		c.hooks.OnReset()
	}
}

func (c *Chart) dispatch(events []interact.Event) {
	h := c.hooks
	for _, e := range events {
		switch e.Kind {
		case interact.EventDimensionMove:
			c.log.Debug("dimension moved", "key", e.Key, "from", e.From, "to", e.To)
			if h.OnDimensionMove != nil {
				h.OnDimensionMove(c.dims[e.To], e.To, e.From)
			}
		case interact.EventFilterCreate:
			c.log.Debug("filter created", "key", e.Key, "p0", e.Filter.P0, "p1", e.Filter.P1)
			if h.OnFilterCreate != nil {
				h.OnFilterCreate(e.Key, e.Filter)
			}
		case interact.EventFilterMove:
			c.log.Debug("filter moved", "key", e.Key, "p0", e.Filter.P0, "p1", e.Filter.P1)
			if h.OnFilterMove != nil {
				h.OnFilterMove(e.Key, e.Filter)
			}
		case interact.EventFilterResize:
			c.log.Debug("filter resized", "key", e.Key, "p0", e.Filter.P0, "p1", e.Filter.P1)
			if h.OnFilterResize != nil {
				h.OnFilterResize(e.Key, e.Filter)
			}
		case interact.EventFilterRemove:
			c.log.Debug("filter removed", "key", e.Key, "p0", e.Filter.P0, "p1", e.Filter.P1)
			if h.OnFilterRemove != nil {
				h.OnFilterRemove(e.Key, e.Filter)
			}
		case interact.EventFilterChange:
			if h.OnFilterChange != nil {
				h.OnFilterChange(c.filters.Clone())
			}
		}
	}
}

// percent returns where record k sits on the axis of key.
func (c *Chart) percent(key string, k int) float64 {
	return c.scales[key].ValueToPercent(c.data[key][k])
}

// passes reports whether record k survives every dimension's filters.
func (c *Chart) passes(k int) bool {
	for _, d := range c.dims {
		if len(c.filters[d.Key]) == 0 {
			continue
		}
		if !c.filters.Passes(d.Key, c.percent(d.Key, k)) {
			return false
		}
	}
	return true
}

// Selected reports, per record, whether it survives the filters. Filters
// on different dimensions combine with AND; filters on one dimension
// combine with OR.
func (c *Chart) Selected() []bool {
	out := make([]bool, c.records)
	for k := range out {
		out[k] = c.passes(k)
	}
	return out
}

// target exposes the chart to the state machine without widening the
// public API.
type target struct{ c *Chart }

func (t target) Layout() *layout.Layout { return t.c.layout }
func (t target) Filters() filter.Set { return t.c.filters }

func (t target) Scale(i int) scale.Scale {
	return t.c.scales[t.c.dims[i].Key]
}

func (t target) SwapDimensions(i, j int) {
	t.c.dims[i], t.c.dims[j] = t.c.dims[j], t.c.dims[i]
	t.c.calculateLayout()
}
