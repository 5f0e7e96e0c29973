package parcoords

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ha1tch/parcoords/pkg/filter"
	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/interact"
	"github.com/ha1tch/parcoords/pkg/layout"
	"github.com/ha1tch/parcoords/pkg/scale"
	"github.com/ha1tch/parcoords/pkg/style"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

var measurer = layout.FixedMeasurer{Advance: 6, Height: 10}

func testDimensions() []Dimension {
	return []Dimension{
		{Key: "a", Label: "alpha"},
		{Key: "b", Label: "beta", Axis: Axis{Type: AxisLinear}},
		{Key: "c", Label: "gamma"},
	}
}

func testData() Data {
	return Data{
		"a": {0.0, 100.0, 50.0, 20.0},
		"b": {100.0, 0.0, 50.0, 80.0},
		"c": {0.0, 100.0, 30.0, 60.0},
	}
}

// newTestChart returns a 600x400 chart whose axes run from y=58 to y=368
// at x≈110.67, 300 and 489.33.
func newTestChart(t *testing.T, options ...Option) *Chart {
	t.Helper()
	c, err := New(testDimensions(), testData(), DefaultOptions(), measurer, options...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.SetSize(600, 400)
	return c
}

// axisPoint returns the canvas point at percent p along the axis of
// dimension i.
func axisPoint(c *Chart, i int, p float64) geom.Point {
	l := c.Layout()
	o := l.Dimensions[i].AxisOrigin()
	return geom.Point{X: o.X, Y: o.Y + p*l.AxisLength}
}

func drag(c *Chart, from, to geom.Point) {
	c.MouseDown(from)
	c.MouseMove(to)
	c.MouseUp(to)
}

func TestNewErrors(t *testing.T) {
	badDirection := DefaultOptions()
	badDirection.Direction = "diagonal"

	tests := []struct {
		name     string
		dims     []Dimension
		data     Data
		opts     Options
		measurer layout.TextMeasurer
		kind     Kind
		want     error
	}{
		{"no measurer", testDimensions(), testData(), DefaultOptions(), nil, KindEnvironment, ErrNoMeasurer},
		{"no dimensions", nil, testData(), DefaultOptions(), measurer, KindConfig, ErrNoDimensions},
		{"no data", testDimensions(), nil, DefaultOptions(), measurer, KindConfig, ErrNoData},
		{"duplicate key", append(testDimensions(), Dimension{Key: "a"}), testData(), DefaultOptions(), measurer, KindConfig, ErrDuplicateKey},
		{"missing data", append(testDimensions(), Dimension{Key: "d"}), testData(), DefaultOptions(), measurer, KindConfig, ErrMissingData},
		{"unequal data", testDimensions(), Data{"a": {1.0}, "b": {1.0, 2.0}, "c": {1.0}}, DefaultOptions(), measurer, KindConfig, ErrUnequalData},
		{"no records", testDimensions(), Data{"a": {}, "b": {}, "c": {}}, DefaultOptions(), measurer, KindConfig, ErrNoRecords},
		{"bad direction", testDimensions(), testData(), badDirection, measurer, KindConfig, ErrInvalid},
		{"bad axis type", []Dimension{{Key: "a", Axis: Axis{Type: "polar"}}}, testData(), DefaultOptions(), measurer, KindConfig, ErrInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.dims, tc.data, tc.opts, tc.measurer)
			if c != nil || err == nil {
				t.Fatal("Expected construction to fail")
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
			var pe *Error
			if !errors.As(err, &pe) {
				t.Fatalf("Expected *Error, got %T", err)
			}
			if pe.Kind != tc.kind {
				t.Errorf("Expected %v error, got %v", tc.kind, pe.Kind)
			}
			if !strings.HasPrefix(err.Error(), "[parcoords] ") {
				t.Errorf("Expected prefixed message, got %q", err.Error())
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: KindConfig, Err: ErrNoDimensions}
	if err.Error() != "[parcoords] need at least one dimension" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	err = &Error{Kind: KindEnvironment, Msg: "text measurement unavailable", Err: ErrNoMeasurer}
	if err.Error() != "[parcoords] text measurement unavailable: no text measurer" {
		t.Errorf("Unexpected message %q", err.Error())
	}
	if KindEnvironment.String() != "environment" || KindConfig.String() != "config" {
		t.Error("Unexpected kind names")
	}
}

func TestScalesFromAxis(t *testing.T) {
	off := false
	dims := []Dimension{
		{Key: "lin", Label: "linear", Axis: Axis{DataOnEdge: &off}},
		{Key: "log", Label: "log", Axis: Axis{Type: AxisLogarithmic, LogBase: 2}},
		{Key: "cat", Label: "category", Axis: Axis{Type: AxisCategorical}},
	}
	data := Data{
		"lin": {3.0, 97.0},
		"log": {1.0, 64.0},
		"cat": {"x", "y"},
	}
	c, err := New(dims, data, DefaultOptions(), measurer)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.SetSize(600, 400)

	if k := c.Scale("lin").Kind(); k != scale.KindLinear {
		t.Errorf("Expected linear scale, got %v", k)
	}
	if c.Scale("lin").DataOnEdge() {
		t.Error("Expected data on edge to be off")
	}
	if k := c.Scale("log").Kind(); k != scale.KindLog {
		t.Errorf("Expected log scale, got %v", k)
	}
	cat := c.Scale("cat")
	if cat.Kind() != scale.KindCategorical {
		t.Fatalf("Expected categorical scale, got %v", cat.Kind())
	}
	if labels := cat.TickLabels(); len(labels) != 2 || labels[0] != "x" || labels[1] != "y" {
		t.Errorf("Expected categories from data, got %v", labels)
	}
	if c.Scale("missing") != nil {
		t.Error("Expected nil scale for unknown key")
	}
	if c.Records() != 2 {
		t.Errorf("Expected 2 records, got %d", c.Records())
	}
}

func TestSetSize(t *testing.T) {
	var sizes []geom.Size
	c, err := New(testDimensions(), testData(), DefaultOptions(), measurer,
		WithHooks(Hooks{OnResize: func(s geom.Size) { sizes = append(sizes, s) }}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	c.SetSize(600, 400)
	c.SetSize(600, 400)
	c.SetSize(800, 400)

	if len(sizes) != 2 {
		t.Fatalf("Expected 2 resize calls, got %d", len(sizes))
	}
	if sizes[0] != (geom.Size{W: 600, H: 400}) || sizes[1] != (geom.Size{W: 800, H: 400}) {
		t.Errorf("Unexpected sizes %v", sizes)
	}
	if c.Size() != (geom.Size{W: 800, H: 400}) {
		t.Errorf("Expected size 800x400, got %v", c.Size())
	}
	if c.Layout().AxisLength != 310 {
		t.Errorf("Expected axis length 310, got %v", c.Layout().AxisLength)
	}
}

func TestFilterGesture(t *testing.T) {
	var created []filter.Filter
	var changes []filter.Set
	c := newTestChart(t, WithHooks(Hooks{
		OnFilterCreate: func(key string, f filter.Filter) {
			if key != "b" {
				t.Errorf("Expected filter on b, got %s", key)
			}
			created = append(created, f)
		},
		OnFilterChange: func(fs filter.Set) { changes = append(changes, fs) },
	}))

	drag(c, axisPoint(c, 1, 0.4), axisPoint(c, 1, 0.9))

	if len(created) != 1 || !near(created[0].P0, 0.4) || !near(created[0].P1, 0.9) {
		t.Fatalf("Expected one filter [0.4, 0.9], got %v", created)
	}
	if len(changes) != 1 || len(changes[0]["b"]) != 1 {
		t.Errorf("Expected one change with one filter, got %v", changes)
	}

	want := []bool{false, false, true, true}
	got := c.Selected()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Record %d expected selected=%v, got %v", i, want[i], got[i])
		}
	}

	// The returned set is a copy.
	fs := c.Filters()
	fs["b"][0].P0 = 0
	if c.Filters()["b"][0].P0 == 0 {
		t.Error("Expected Filters to return a copy")
	}
}

func TestFilterAndAcrossDimensions(t *testing.T) {
	c := newTestChart(t)
	c.SetFilters(filter.Set{
		"a": {{P0: 0, P1: 0.6}},
		"b": {{P0: 0.4, P1: 1}},
	})

	// a: 0, 1, 0.5, 0.2 and b: 1, 0, 0.5, 0.8.
	want := []bool{true, false, true, true}
	got := c.Selected()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Record %d expected selected=%v, got %v", i, want[i], got[i])
		}
	}

	c.SetFilters(filter.Set{"b": {{P0: 0.9, P1: 1}, {P0: 0, P1: 0.1}}})
	want = []bool{true, true, false, false}
	got = c.Selected()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Record %d expected selected=%v with OR filters, got %v", i, want[i], got[i])
		}
	}

	c.SetFilters(filter.Set{"nope": {{P0: 0, P1: 1}}})
	if len(c.Filters()) != 0 {
		t.Errorf("Expected unknown keys dropped, got %v", c.Filters())
	}
}

func TestFilterClickRemoves(t *testing.T) {
	var removed []filter.Filter
	c := newTestChart(t, WithHooks(Hooks{
		OnFilterRemove: func(key string, f filter.Filter) { removed = append(removed, f) },
	}))
	c.SetFilters(filter.Set{"b": {{P0: 0.4, P1: 0.9}}})

	pt := axisPoint(c, 1, 0.6)
	c.MouseDown(pt)
	c.MouseUp(pt)

	if len(removed) != 1 {
		t.Fatalf("Expected one removal, got %d", len(removed))
	}
	if len(c.Filters()) != 0 {
		t.Errorf("Expected no filters, got %v", c.Filters())
	}
	for i, s := range c.Selected() {
		if !s {
			t.Errorf("Expected record %d selected without filters", i)
		}
	}
}

func TestZeroWidthGestures(t *testing.T) {
	tests := []struct {
		name    string
		initial filter.Set
		from    func(c *Chart) geom.Point
		to      func(c *Chart) geom.Point
		removed int
		changes int
	}{
		{
			name:    "sideways drag on empty axis",
			initial: nil,
			from:    func(c *Chart) geom.Point { return axisPoint(c, 1, 0.5) },
			to: func(c *Chart) geom.Point {
				p := axisPoint(c, 1, 0.5)
				return geom.Point{X: p.X + 5, Y: p.Y}
			},
		},
		{
			name:    "start resized onto end",
			initial: filter.Set{"b": {{P0: 0.4, P1: 1}}},
			from:    func(c *Chart) geom.Point { return axisPoint(c, 1, 0.4) },
			to:      func(c *Chart) geom.Point { return axisPoint(c, 1, 2) },
			removed: 1,
			changes: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var created, resized, removed, changes int
			c := newTestChart(t, WithHooks(Hooks{
				OnFilterCreate: func(string, filter.Filter) { created++ },
				OnFilterResize: func(string, filter.Filter) { resized++ },
				OnFilterRemove: func(string, filter.Filter) { removed++ },
			}))
			if tc.initial != nil {
				c.SetFilters(tc.initial)
			}
			c.hooks.OnFilterChange = func(filter.Set) { changes++ }

			drag(c, tc.from(c), tc.to(c))

			if created != 0 || resized != 0 {
				t.Errorf("Expected no create or resize, got %d and %d", created, resized)
			}
			if removed != tc.removed {
				t.Errorf("Expected %d removals, got %d", tc.removed, removed)
			}
			if changes != tc.changes {
				t.Errorf("Expected %d changes, got %d", tc.changes, changes)
			}
			if n := c.Filters().Count(); n != 0 {
				t.Errorf("Expected no filters left, got %v", c.Filters())
			}
		})
	}
}

func TestFilterMoveAndResizeHooks(t *testing.T) {
	var moved, resized int
	c := newTestChart(t, WithHooks(Hooks{
		OnFilterMove:   func(string, filter.Filter) { moved++ },
		OnFilterResize: func(string, filter.Filter) { resized++ },
	}))
	c.SetFilters(filter.Set{"b": {{P0: 0.2, P1: 0.6}}})

	drag(c, axisPoint(c, 1, 0.4), axisPoint(c, 1, 0.5))
	if moved != 1 {
		t.Errorf("Expected one move, got %d", moved)
	}
	f := c.Filters()["b"][0]
	if !near(f.P0, 0.3) || !near(f.P1, 0.7) {
		t.Errorf("Expected [0.3, 0.7], got [%v, %v]", f.P0, f.P1)
	}

	drag(c, axisPoint(c, 1, 0.695), axisPoint(c, 1, 0.8))
	if resized != 1 {
		t.Errorf("Expected one resize, got %d", resized)
	}
	if f := c.Filters()["b"][0]; !near(f.P1, 0.8) {
		t.Errorf("Expected end at 0.8, got %v", f.P1)
	}
}

func TestDimensionMoveKeepsFilters(t *testing.T) {
	type move struct {
		key      string
		to, from int
	}
	var moves []move
	c := newTestChart(t, WithHooks(Hooks{
		OnDimensionMove: func(d Dimension, to, from int) { moves = append(moves, move{d.Key, to, from}) },
	}))
	c.SetFilters(filter.Set{"a": {{P0: 0, P1: 0.6}}})
	before := c.Selected()

	x := c.Layout().Dimensions[0].AxisOrigin().X
	drag(c, geom.Point{X: x, Y: 40}, geom.Point{X: x + 180, Y: 40})

	if len(moves) != 1 || moves[0] != (move{"a", 1, 0}) {
		t.Fatalf("Expected a moved 0 -> 1, got %v", moves)
	}
	keys := c.DimensionKeys()
	if keys[0] != "b" || keys[1] != "a" || keys[2] != "c" {
		t.Errorf("Expected order b, a, c, got %v", keys)
	}
	if len(c.Filters()["a"]) != 1 {
		t.Errorf("Expected filter to stay on a, got %v", c.Filters())
	}
	after := c.Selected()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("Record %d selection changed after reorder", i)
		}
	}
	if c.Dimensions()[1].Label != "alpha" {
		t.Errorf("Expected alpha second, got %s", c.Dimensions()[1].Label)
	}
}

func TestDoubleClickResets(t *testing.T) {
	resets := 0
	c := newTestChart(t, WithHooks(Hooks{OnReset: func() { resets++ }}))

	x := c.Layout().Dimensions[0].AxisOrigin().X
	drag(c, geom.Point{X: x, Y: 40}, geom.Point{X: x + 180, Y: 40})
	drag(c, axisPoint(c, 2, 0.1), axisPoint(c, 2, 0.5))
	c.MouseDown(axisPoint(c, 2, 0.8))

	c.DoubleClick()

	if resets != 1 {
		t.Errorf("Expected one reset, got %d", resets)
	}
	keys := c.DimensionKeys()
	if keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("Expected original order, got %v", keys)
	}
	if len(c.Filters()) != 0 {
		t.Errorf("Expected no filters, got %v", c.Filters())
	}
	if s := c.State(); s.Active() || s.Focus != nil {
		t.Errorf("Expected idle state, got %v", s.Action.Type)
	}
}

func TestStyles(t *testing.T) {
	opts := DefaultOptions()
	blue := style.RGB(82, 144, 244)
	orange := style.RGB(255, 100, 0)

	t.Run("label hover", func(t *testing.T) {
		c := newTestChart(t)
		c.MouseMove(geom.Point{X: 300, Y: 40})
		s := c.Styles()
		if s[1].Label.Fill != blue {
			t.Errorf("Expected hovered label fill %v, got %v", blue, s[1].Label.Fill)
		}
		if s[0].Label.Fill != opts.Style.Dimension.Label.Fill {
			t.Errorf("Expected other labels unchanged, got %v", s[0].Label.Fill)
		}
		if c.Cursor() != interact.CursorGrab {
			t.Errorf("Expected grab cursor, got %v", c.Cursor())
		}
	})

	t.Run("axis active", func(t *testing.T) {
		c := newTestChart(t)
		c.MouseDown(axisPoint(c, 2, 0.5))
		s := c.Styles()
		if s[2].Axis.Color != orange || s[2].Tick.Color != orange {
			t.Errorf("Expected active axis and ticks, got %v and %v", s[2].Axis.Color, s[2].Tick.Color)
		}
		if s[2].Axis.Width != 1 {
			t.Errorf("Expected base width kept, got %v", s[2].Axis.Width)
		}
		if len(s[2].Filters) != 1 {
			t.Fatalf("Expected one filter style, got %d", len(s[2].Filters))
		}
		f := s[2].Filters[0]
		if f.Fill != orange || f.Width != 6 || f.CornerRadius != 3 || f.Stroke != style.RGB(255, 255, 255) {
			t.Errorf("Unexpected active filter style %+v", f)
		}
		if c.Cursor() != interact.CursorCrosshair {
			t.Errorf("Expected crosshair cursor, got %v", c.Cursor())
		}
	})

	t.Run("filter hover", func(t *testing.T) {
		c := newTestChart(t)
		c.SetFilters(filter.Set{"b": {{P0: 0.4, P1: 0.9}}})
		c.MouseMove(axisPoint(c, 1, 0.6))
		s := c.Styles()
		if s[1].Filters[0].Fill != style.RGB(200, 50, 0) {
			t.Errorf("Expected hovered filter fill, got %v", s[1].Filters[0].Fill)
		}
		if s[1].Axis.Color != opts.Style.Axes.Axis.Color {
			t.Errorf("Expected axis base colour under filter hover, got %v", s[1].Axis.Color)
		}
	})

	t.Run("no hover while dragging", func(t *testing.T) {
		c := newTestChart(t)
		c.MouseDown(axisPoint(c, 0, 0.2))
		c.MouseMove(geom.Point{X: 300, Y: 40})
		if s := c.Styles(); s[1].Label.Fill == blue {
			t.Error("Expected no label hover during a filter drag")
		}
	})
}
