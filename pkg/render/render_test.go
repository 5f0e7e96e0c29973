package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/ha1tch/parcoords/pkg/filter"
	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/parcoords"
	"github.com/ha1tch/parcoords/pkg/style"
)

func newFonts(t *testing.T) *Fonts {
	t.Helper()
	fonts, err := NewFonts()
	if err != nil {
		t.Fatalf("NewFonts failed: %v", err)
	}
	return fonts
}

func newChart(t *testing.T, fonts *Fonts) *parcoords.Chart {
	t.Helper()
	dims := []parcoords.Dimension{
		{Key: "a", Label: "alpha"},
		{Key: "b", Label: "<beta>"},
		{Key: "c", Label: "gamma", Axis: parcoords.Axis{Type: parcoords.AxisCategorical}},
	}
	data := parcoords.Data{
		"a": {0, 100, 50, 20},
		"b": {100, 0, 50, 80},
		"c": {"x", "y", "x", "z"},
	}
	c, err := parcoords.New(dims, data, parcoords.DefaultOptions(), fonts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.SetSize(300, 200)
	return c
}

func TestMeasureText(t *testing.T) {
	fonts := newFonts(t)
	f := style.Font{Size: 11}

	short := fonts.MeasureText("ab", f)
	long := fonts.MeasureText("abcdef", f)
	if short.W <= 0 || short.H <= 0 {
		t.Fatalf("Expected positive size, got %+v", short)
	}
	if long.W <= short.W {
		t.Errorf("Expected longer text to be wider, got %v and %v", long.W, short.W)
	}
	if long.H != short.H {
		t.Errorf("Expected equal heights, got %v and %v", long.H, short.H)
	}

	big := fonts.MeasureText("ab", style.Font{Size: 22})
	if big.W <= short.W*1.5 {
		t.Errorf("Expected width to grow with size, got %v and %v", big.W, short.W)
	}
	bold := fonts.MeasureText("abcdef", style.Font{Size: 11, Weight: "bold"})
	if bold.W <= long.W {
		t.Errorf("Expected bold text wider, got %v and %v", bold.W, long.W)
	}
}

func TestIsBold(t *testing.T) {
	tests := []struct {
		weight string
		want   bool
	}{
		{"", false},
		{"normal", false},
		{"bold", true},
		{"bolder", true},
		{"400", false},
		{"700", true},
	}
	for _, tc := range tests {
		if got := isBold(tc.weight); got != tc.want {
			t.Errorf("isBold(%q): expected %v, got %v", tc.weight, tc.want, got)
		}
	}
}

func TestTriangulate(t *testing.T) {
	square := []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	if got := len(triangulate(square)); got != 2 {
		t.Errorf("Expected 2 triangles, got %d", got)
	}
	if got := triangulate(square[:2]); got != nil {
		t.Errorf("Expected no triangles for a segment, got %v", got)
	}
}

func TestRoundedRect(t *testing.T) {
	rc := geom.Rect{X: 0, Y: 0, W: 10, H: 4}
	if got := len(roundedRect(rc, 0)); got != 4 {
		t.Errorf("Expected 4 corners, got %d", got)
	}
	pts := roundedRect(rc, 5)
	for _, p := range pts {
		if p.X < -1e-9 || p.X > 10+1e-9 || p.Y < -1e-9 || p.Y > 4+1e-9 {
			t.Fatalf("Point %v outside the rect", p)
		}
	}
}

func TestRasterShapes(t *testing.T) {
	r := NewRaster(newFonts(t), 1)
	r.Clear(geom.Size{W: 40, H: 40})

	red := style.RGB(255, 0, 0)
	r.Rect(geom.Rect{X: 5, Y: 5, W: 10, H: 10}, style.Shape{Fill: red})
	r.Polygon([]geom.Point{{X: 20, Y: 20}, {X: 38, Y: 20}, {X: 38, Y: 38}}, style.Shape{Fill: red})
	r.Line(geom.Point{X: 0, Y: 30}, geom.Point{X: 15, Y: 30}, style.Line{Color: red, Width: 2})

	img := r.Image()
	tests := []struct {
		name string
		x, y int
		red  bool
	}{
		{"rect", 10, 10, true},
		{"triangle", 35, 25, true},
		{"line", 7, 30, true},
		{"background", 2, 2, false},
		{"outside triangle", 22, 35, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := img.RGBAAt(tc.x, tc.y)
			isRed := c.R == 255 && c.G == 0 && c.B == 0
			if isRed != tc.red {
				t.Errorf("Expected red=%v at (%d,%d), got %v", tc.red, tc.x, tc.y, c)
			}
		})
	}
}

func TestRasterTranslucent(t *testing.T) {
	r := NewRaster(newFonts(t), 1)
	r.Clear(geom.Size{W: 20, H: 20})

	// Overlapping stroke passes must not stack the alpha.
	half := style.RGBA(0, 0, 0, 0.5)
	r.Line(geom.Point{X: 0, Y: 10}, geom.Point{X: 20, Y: 10}, style.Line{Color: half, Width: 4})
	c := r.Image().RGBAAt(10, 10)
	if c.R < 120 || c.R > 135 {
		t.Errorf("Expected a single half-transparent pass, got %v", c)
	}
}

func TestRasterText(t *testing.T) {
	r := NewRaster(newFonts(t), 2)
	r.Clear(geom.Size{W: 100, H: 100})

	s := style.Text{Fill: style.RGB(0, 0, 0), Font: style.Font{Size: 14}, Align: style.AlignLeft, Baseline: style.BaselineMiddle}
	r.Text("MMM", geom.Point{X: 10, Y: 20}, 0, s)
	r.Text("MMM", geom.Point{X: 50, Y: 40}, -1.5707963267948966, s)

	img := r.Image()
	dark := func(x0, y0, x1, y1 int) bool {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				if img.RGBAAt(x, y).R < 128 {
					return true
				}
			}
		}
		return false
	}
	if !dark(10, 14, 40, 26) {
		t.Error("Expected ink right of the upright anchor")
	}
	if dark(0, 0, 9, 100) {
		t.Error("Expected no ink left of the upright anchor")
	}
	// Turned a quarter counter-clockwise, the run reads upwards.
	if !dark(44, 12, 56, 39) {
		t.Error("Expected ink above the rotated anchor")
	}
	if dark(44, 45, 56, 100) {
		t.Error("Expected no ink below the rotated anchor")
	}
}

func TestWritePNG(t *testing.T) {
	fonts := newFonts(t)
	c := newChart(t, fonts)

	var buf bytes.Buffer
	if err := Write(&buf, c, fonts, Options{Format: FormatPNG, Supersample: 2}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 200 {
		t.Errorf("Expected 300x200, got %v", b)
	}
}

func TestWriteSVG(t *testing.T) {
	fonts := newFonts(t)
	c := newChart(t, fonts)
	c.SetFilters(filter.Set{"a": {{P0: 0, P1: 0.5}}})

	var buf bytes.Buffer
	if err := Write(&buf, c, fonts, Options{Format: FormatSVG}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>\n") {
		t.Error("Expected a complete SVG document")
	}
	if got := strings.Count(out, "<path "); got != 4 {
		t.Errorf("Expected 4 record paths, got %d", got)
	}
	if !strings.Contains(out, "&lt;beta&gt;") {
		t.Error("Expected escaped label text")
	}
	if !strings.Contains(out, `stroke-opacity="0.051"`) {
		t.Error("Expected translucent filtered records")
	}
	if got := strings.Count(out, `rx="2"`); got != 1 {
		t.Errorf("Expected one filter rect, got %d", got)
	}
}

func TestWriteDebug(t *testing.T) {
	fonts := newFonts(t)
	c := newChart(t, fonts)

	var buf bytes.Buffer
	if err := Write(&buf, c, fonts, Options{Format: FormatSVG, Debug: true}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	if got := strings.Count(out, "<?xml"); got != 1 {
		t.Errorf("Expected a single document header, got %d", got)
	}
	if got := strings.Count(out, "<polygon "); got != 6 {
		t.Errorf("Expected 6 boundary polygons, got %d", got)
	}
	if strings.Index(out, "<polygon ") > strings.Index(out, "<path ") {
		t.Error("Expected the outline beneath the data")
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	fonts := newFonts(t)
	c := newChart(t, fonts)
	if err := Write(&bytes.Buffer{}, c, fonts, Options{Format: "gif"}); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"out.svg": FormatSVG,
		"OUT.SVG": FormatSVG,
		"out.png": FormatPNG,
		"out":     FormatPNG,
	}
	for path, want := range tests {
		if got := FormatFor(path); got != want {
			t.Errorf("FormatFor(%q): expected %s, got %s", path, want, got)
		}
	}
}
