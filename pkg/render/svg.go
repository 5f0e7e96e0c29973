package render

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/parcoords"
	"github.com/ha1tch/parcoords/pkg/style"
)

// SVG is a canvas that writes SVG elements. Text keeps its font family and
// alignment so the viewer lays it out.
type SVG struct {
	sb   strings.Builder
	size geom.Size
}

// NewSVG returns an empty SVG canvas.
func NewSVG() *SVG { return &SVG{} }

// Clear starts a new document.
func (v *SVG) Clear(size geom.Size) {
	v.size = size
	v.sb.Reset()
	fmt.Fprintf(&v.sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">
<rect width="%g" height="%g" fill="white"/>
`, size.W, size.H, size.W, size.H, size.W, size.H)
}

// String returns the document so far, closed.
func (v *SVG) String() string {
	return v.sb.String() + "</svg>\n"
}

// WriteTo writes the closed document.
func (v *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, v.String())
	return int64(n), err
}

// paint renders a colour attribute with its opacity when translucent.
func paint(attr string, c style.Color) string {
	if !c.IsSet() {
		return fmt.Sprintf(` %s="none"`, attr)
	}
	opaque := c
	opaque.A = 255
	s := fmt.Sprintf(` %s="%s"`, attr, opaque.String())
	if c.A < 255 {
		s += fmt.Sprintf(` %s-opacity="%.3g"`, attr, c.Alpha())
	}
	return s
}

func stroke(c style.Color, width float64) string {
	if !c.IsSet() || width <= 0 {
		return ""
	}
	return paint("stroke", c) + fmt.Sprintf(` stroke-width="%g"`, width)
}

func lineWidth(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}

func (v *SVG) Line(p0, p1 geom.Point, s style.Line) {
	fmt.Fprintf(&v.sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"%s/>`+"\n",
		p0.X, p0.Y, p1.X, p1.Y, stroke(s.Color, lineWidth(s.Width)))
}

func (v *SVG) Path(p parcoords.Path, s style.Line) {
	var d strings.Builder
	fmt.Fprintf(&d, "M%.1f,%.1f", p.Start.X, p.Start.Y)
	for _, seg := range p.Segments {
		if seg.Curve {
			fmt.Fprintf(&d, " C%.1f,%.1f %.1f,%.1f %.1f,%.1f", seg.C0.X, seg.C0.Y, seg.C1.X, seg.C1.Y, seg.To.X, seg.To.Y)
		} else {
			fmt.Fprintf(&d, " L%.1f,%.1f", seg.To.X, seg.To.Y)
		}
	}
	fmt.Fprintf(&v.sb, `<path d="%s" fill="none"%s/>`+"\n", d.String(), stroke(s.Color, lineWidth(s.Width)))
}

func (v *SVG) Rect(r geom.Rect, s style.Shape) {
	fmt.Fprintf(&v.sb, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%g"%s%s/>`+"\n",
		r.X, r.Y, r.W, r.H, s.CornerRadius, paint("fill", s.Fill), stroke(s.Stroke, s.StrokeWidth))
}

func (v *SVG) Circle(c geom.Point, radius float64, s style.Shape) {
	fmt.Fprintf(&v.sb, `<circle cx="%.1f" cy="%.1f" r="%g"%s%s/>`+"\n",
		c.X, c.Y, radius, paint("fill", s.Fill), stroke(s.Stroke, s.StrokeWidth))
}

func (v *SVG) Polygon(pts []geom.Point, s style.Shape) {
	coords := make([]string, len(pts))
	for i, p := range pts {
		coords[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	fmt.Fprintf(&v.sb, `<polygon points="%s"%s%s/>`+"\n",
		strings.Join(coords, " "), paint("fill", s.Fill), stroke(s.Stroke, s.StrokeWidth))
}

var anchors = map[style.Align]string{
	style.AlignLeft:   "start",
	style.AlignCenter: "middle",
	style.AlignRight:  "end",
}

var baselines = map[style.Baseline]string{
	style.BaselineTop:    "text-before-edge",
	style.BaselineMiddle: "central",
	style.BaselineBottom: "text-after-edge",
}

func (v *SVG) Text(text string, at geom.Point, rotation float64, s style.Text) {
	var attrs strings.Builder
	if turn := math.Remainder(rotation, 2*math.Pi); math.Abs(turn) > 1e-9 {
		fmt.Fprintf(&attrs, ` transform="rotate(%.2f %.1f %.1f)"`, turn*180/math.Pi, at.X, at.Y)
	}
	if a, ok := anchors[s.Align]; ok {
		fmt.Fprintf(&attrs, ` text-anchor="%s"`, a)
	}
	if b, ok := baselines[s.Baseline]; ok {
		fmt.Fprintf(&attrs, ` dominant-baseline="%s"`, b)
	}
	family := s.Font.Family
	if family == "" {
		family = "sans-serif"
	}
	fmt.Fprintf(&attrs, ` font-size="%g" font-family="%s"`, s.Font.PointSize(), html.EscapeString(family))
	if s.Font.Weight != "" {
		fmt.Fprintf(&attrs, ` font-weight="%s"`, html.EscapeString(s.Font.Weight))
	}
	fill := s.Fill
	if !fill.IsSet() {
		fill = style.RGB(0, 0, 0)
	}
	attrs.WriteString(paint("fill", fill))
	if st := stroke(s.Stroke, s.StrokeWidth); st != "" {
		attrs.WriteString(st + ` paint-order="stroke"`)
	}
	fmt.Fprintf(&v.sb, `<text x="%.1f" y="%.1f"%s>%s</text>`+"\n", at.X, at.Y, attrs.String(), html.EscapeString(text))
}
