package parcoords

import (
	"math"
	"testing"

	"github.com/ha1tch/parcoords/pkg/filter"
	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/layout"
	"github.com/ha1tch/parcoords/pkg/style"
)

type textCall struct {
	text     string
	at       geom.Point
	rotation float64
	style    style.Text
}

type pathCall struct {
	path Path
	line style.Line
}

type rectCall struct {
	rect  geom.Rect
	shape style.Shape
}

// recorder is a Canvas that remembers every call.
type recorder struct {
	clears   int
	lines    int
	circles  int
	polygons int
	paths    []pathCall
	rects    []rectCall
	texts    []textCall
}

func (r *recorder) Clear(geom.Size) { r.clears++ }
func (r *recorder) Line(_, _ geom.Point, _ style.Line) { r.lines++ }
func (r *recorder) Path(p Path, s style.Line) { r.paths = append(r.paths, pathCall{p, s}) }
func (r *recorder) Rect(rc geom.Rect, s style.Shape) { r.rects = append(r.rects, rectCall{rc, s}) }
func (r *recorder) Circle(geom.Point, float64, style.Shape) { r.circles++ }
func (r *recorder) Polygon(pts []geom.Point, _ style.Shape) { r.polygons++ }

func (r *recorder) Text(text string, at geom.Point, rotation float64, s style.Text) {
	r.texts = append(r.texts, textCall{text, at, rotation, s})
}

func (r *recorder) count(text string) int {
	n := 0
	for _, t := range r.texts {
		if t.text == text {
			n++
		}
	}
	return n
}

func (r *recorder) find(text string) (textCall, bool) {
	for _, t := range r.texts {
		if t.text == text {
			return t, true
		}
	}
	return textCall{}, false
}

func TestDraw(t *testing.T) {
	c := newTestChart(t)
	rec := &recorder{}
	c.Draw(rec)

	if rec.clears != 1 {
		t.Errorf("Expected one clear, got %d", rec.clears)
	}
	if len(rec.paths) != 4 {
		t.Errorf("Expected a path per record, got %d", len(rec.paths))
	}
	// Three dimension labels plus four inner tick labels on each axis.
	if len(rec.texts) != 15 {
		t.Errorf("Expected 15 texts, got %d", len(rec.texts))
	}
	if rec.count("100") != 0 {
		t.Error("Expected edge labels hidden without focus")
	}

	label, ok := rec.find("alpha")
	if !ok {
		t.Fatal("Expected the alpha label to be drawn")
	}
	x := c.Layout().Dimensions[0].AxisOrigin().X
	if !near(label.at.X, x) || label.at.Y != 42 {
		t.Errorf("Expected label at (%v, 42), got %v", x, label.at)
	}
	if label.style.Align != style.AlignCenter || label.style.Baseline != style.BaselineBottom {
		t.Errorf("Expected centred bottom label, got %s/%s", label.style.Align, label.style.Baseline)
	}

	tick, ok := rec.find("40")
	if !ok {
		t.Fatal("Expected a tick label 40")
	}
	if tick.style.Align != style.AlignRight || !near(math.Mod(tick.rotation, 2*math.Pi), 0) {
		t.Errorf("Expected unrotated right aligned tick label, got %s at %v", tick.style.Align, tick.rotation)
	}
	// Tick of length 4 plus offset 4 before the axis.
	if !near(tick.at.X, x-8) {
		t.Errorf("Expected tick label at x=%v, got %v", x-8, tick.at.X)
	}

	first := rec.paths[0].path
	if len(first.Segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(first.Segments))
	}
	// Record 0 is a=0, b=100, c=0.
	if !near(first.Start.Y, 58) || !near(first.Segments[0].To.Y, 368) || !near(first.Segments[1].To.Y, 58) {
		t.Errorf("Unexpected record path %+v", first)
	}
	if rec.paths[0].line != DefaultOptions().Style.Data.Default {
		t.Errorf("Expected default data style, got %+v", rec.paths[0].line)
	}
}

func TestDrawFilters(t *testing.T) {
	c := newTestChart(t)
	c.SetFilters(filter.Set{"b": {{P0: 0.4, P1: 0.9}}})
	rec := &recorder{}
	c.Draw(rec)

	filtered := 0
	for _, p := range rec.paths {
		if p.line == DefaultOptions().Style.Data.Filtered {
			filtered++
		}
	}
	if filtered != 2 {
		t.Errorf("Expected 2 filtered records, got %d", filtered)
	}

	if len(rec.rects) != 1 {
		t.Fatalf("Expected one filter rect, got %d", len(rec.rects))
	}
	r := rec.rects[0].rect
	if !near(r.X, 298) || !near(r.Y, 182) || !near(r.W, 4) || !near(r.H, 155) {
		t.Errorf("Unexpected filter rect %+v", r)
	}
}

func TestDrawReversedFilter(t *testing.T) {
	c := newTestChart(t)
	c.MouseDown(axisPoint(c, 1, 0.8))
	c.MouseMove(axisPoint(c, 1, 0.3))

	rec := &recorder{}
	c.Draw(rec)
	if len(rec.rects) != 1 {
		t.Fatalf("Expected one filter rect, got %d", len(rec.rects))
	}
	r := rec.rects[0].rect
	if r.H <= 0 || !near(r.Y, 58+0.3*310) || !near(r.H, 0.5*310) {
		t.Errorf("Expected canonical rect while dragging upwards, got %+v", r)
	}
	if rec.rects[0].shape.Width != 6 {
		t.Errorf("Expected active filter width 6, got %v", rec.rects[0].shape.Width)
	}
}

func TestDrawEdgeLabelsOnFocus(t *testing.T) {
	c := newTestChart(t)
	c.MouseMove(axisPoint(c, 0, 0.5))

	rec := &recorder{}
	c.Draw(rec)
	if rec.count("100") != 1 || rec.count("0") != 1 {
		t.Errorf("Expected edge labels on the focused axis only, got %d and %d", rec.count("100"), rec.count("0"))
	}
	if rec.count("*100") != 0 {
		t.Error("Expected the edge marker to be stripped")
	}
}

func TestDrawDraggedDimension(t *testing.T) {
	c := newTestChart(t)
	x := c.Layout().Dimensions[0].AxisOrigin().X
	c.MouseDown(geom.Point{X: x, Y: 40})
	c.MouseMove(geom.Point{X: x + 50, Y: 40})

	rec := &recorder{}
	c.Draw(rec)
	label, _ := rec.find("alpha")
	if !near(label.at.X, x+50) {
		t.Errorf("Expected dragged label at %v, got %v", x+50, label.at.X)
	}
	if !near(rec.paths[0].path.Start.X, x+50) {
		t.Errorf("Expected data to follow the dragged axis, got %v", rec.paths[0].path.Start.X)
	}
}

func TestDrawColorScale(t *testing.T) {
	opts := DefaultOptions()
	black, white := style.RGB(0, 0, 0), style.RGB(255, 255, 255)
	opts.Style.Data.ColorScale = &ColorScale{DimensionKey: "a", Colors: style.Gradient{black, white}}
	c, err := New(testDimensions(), testData(), opts, measurer)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.SetSize(600, 400)

	rec := &recorder{}
	c.Draw(rec)
	if got := rec.paths[0].line.Color; got != black {
		t.Errorf("Expected record at a=0 black, got %v", got)
	}
	if got := rec.paths[1].line.Color; got != white {
		t.Errorf("Expected record at a=100 white, got %v", got)
	}
	if opts.Style.Data.Default.Color != DefaultOptions().Style.Data.Default.Color {
		t.Error("Expected the default data style untouched")
	}
}

func TestDrawVertical(t *testing.T) {
	opts := DefaultOptions()
	opts.Direction = layout.Vertical
	c, err := New(testDimensions(), testData(), opts, measurer)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.SetSize(600, 400)

	rec := &recorder{}
	c.Draw(rec)
	for _, tc := range rec.texts {
		if math.IsNaN(tc.at.X) || math.IsNaN(tc.at.Y) {
			t.Fatalf("Text %q has NaN position", tc.text)
		}
	}
	label, _ := rec.find("alpha")
	if label.style.Align != style.AlignRight || !near(label.rotation, 0) {
		t.Errorf("Expected right aligned upright label, got %s at %v", label.style.Align, label.rotation)
	}
	tick, _ := rec.find("40")
	if tick.style.Align != style.AlignCenter || tick.style.Baseline != style.BaselineBottom {
		t.Errorf("Expected centred tick label above the axis, got %s/%s", tick.style.Align, tick.style.Baseline)
	}
}

func TestDrawDebug(t *testing.T) {
	c := newTestChart(t)
	rec := &recorder{}
	c.DrawDebug(rec)

	if rec.lines != 4 {
		t.Errorf("Expected 4 padding lines, got %d", rec.lines)
	}
	if len(rec.rects) != 6 || rec.circles != 3 || rec.polygons != 6 {
		t.Errorf("Expected 6 rects, 3 circles and 6 polygons, got %d, %d and %d", len(rec.rects), rec.circles, rec.polygons)
	}
	slot := rec.rects[0].rect
	if !near(slot.X, 16) || !near(slot.W, 568.0/3) {
		t.Errorf("Unexpected first slot %+v", slot)
	}
}

func TestPlaceText(t *testing.T) {
	tests := []struct {
		name     string
		rad      float64
		align    style.Align
		rotation float64
		want     style.Align
	}{
		{"flat", 0, "", 0, style.AlignLeft},
		{"quarter turn", math.Pi / 2, "", -math.Pi / 2, style.AlignLeft},
		{"half turn", math.Pi, "", -2 * math.Pi, style.AlignRight},
		{"negative half turn", -math.Pi, "", 0, style.AlignRight},
		{"explicit align", math.Pi, style.AlignCenter, -2 * math.Pi, style.AlignCenter},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rotation, s := PlaceText(tc.rad, style.Text{Align: tc.align})
			if !near(rotation, tc.rotation) {
				t.Errorf("Expected rotation %v, got %v", tc.rotation, rotation)
			}
			if s.Align != tc.want {
				t.Errorf("Expected align %s, got %s", tc.want, s.Align)
			}
			if s.Baseline != style.BaselineMiddle {
				t.Errorf("Expected middle baseline, got %s", s.Baseline)
			}
		})
	}
}

func TestDataPath(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 50}}

	straight := dataPath(pts, true, PathStyle{Type: PathStraight})
	if len(straight.Segments) != 1 || straight.Segments[0].Curve {
		t.Fatalf("Expected one straight segment, got %+v", straight.Segments)
	}

	curved := dataPath(pts, true, PathStyle{Type: PathBezier})
	seg := curved.Segments[0]
	if !seg.Curve || seg.C0 != (geom.Point{X: 30, Y: 0}) || seg.C1 != (geom.Point{X: 70, Y: 50}) {
		t.Errorf("Unexpected control points %+v", seg)
	}

	vertical := dataPath(pts, false, PathStyle{Type: PathBezier, BezierFactor: 0.5})
	seg = vertical.Segments[0]
	if seg.C0 != (geom.Point{X: 0, Y: 25}) || seg.C1 != (geom.Point{X: 100, Y: 25}) {
		t.Errorf("Unexpected vertical control points %+v", seg)
	}

	flat := curved.Flatten(4)
	if len(flat) != 5 {
		t.Fatalf("Expected 5 points, got %d", len(flat))
	}
	if flat[4] != pts[1] || flat[0] != pts[0] {
		t.Errorf("Expected flattened curve to keep its ends, got %v", flat)
	}
	if !near(flat[2].X, 50) || !near(flat[2].Y, 25) {
		t.Errorf("Expected symmetric midpoint (50, 25), got %v", flat[2])
	}
	if got := straight.Flatten(0); len(got) != 2 {
		t.Errorf("Expected straight path to flatten to its points, got %v", got)
	}
}
