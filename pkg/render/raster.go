package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/rclancey/earcut"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"

	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/parcoords"
	"github.com/ha1tch/parcoords/pkg/style"
)

// Raster is a canvas that paints into an RGBA image. Everything is drawn
// at Supersample times the chart size and scaled down on output.
type Raster struct {
	fonts *Fonts
	scale float64
	size  geom.Size
	img   *image.RGBA
}

// NewRaster returns a raster canvas. Supersample values below 1 mean 1.
func NewRaster(fonts *Fonts, supersample int) *Raster {
	if supersample < 1 {
		supersample = 1
	}
	return &Raster{fonts: fonts, scale: float64(supersample)}
}

// Clear allocates a white image for the given chart size.
func (r *Raster) Clear(size geom.Size) {
	r.size = size
	w := int(math.Ceil(size.W * r.scale))
	h := int(math.Ceil(size.H * r.scale))
	r.img = image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(r.img, r.img.Bounds(), image.White, image.Point{}, draw.Src)
}

// Image returns the frame at chart size.
func (r *Raster) Image() *image.RGBA {
	if r.img == nil {
		r.Clear(r.size)
	}
	if r.scale == 1 {
		return r.img
	}
	w := int(math.Ceil(r.size.W))
	h := int(math.Ceil(r.size.H))
	out := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.CatmullRom.Scale(out, out.Bounds(), r.img, r.img.Bounds(), draw.Over, nil)
	return out
}

// Encode writes the frame as PNG.
func (r *Raster) Encode(w io.Writer) error {
	return png.Encode(w, r.Image())
}

func (r *Raster) pt(p geom.Point) geom.Point {
	return geom.Point{X: p.X * r.scale, Y: p.Y * r.scale}
}

func (r *Raster) pts(in []geom.Point) []geom.Point {
	out := make([]geom.Point, len(in))
	for i, p := range in {
		out[i] = r.pt(p)
	}
	return out
}

// width scales a stroke width, keeping hairlines at one device pixel.
func (r *Raster) width(w float64) float64 {
	if w <= 0 {
		w = 1
	}
	return math.Max(w*r.scale, 1)
}

// coverage collects the pixels of one primitive so overlapping stroke
// passes composite once.
type coverage struct {
	a *image.Alpha
}

func (r *Raster) coverage(pts []geom.Point, pad float64) *coverage {
	if r.img == nil || len(pts) == 0 {
		return nil
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	b := image.Rect(
		int(math.Floor(minX-pad))-1, int(math.Floor(minY-pad))-1,
		int(math.Ceil(maxX+pad))+1, int(math.Ceil(maxY+pad))+1,
	).Intersect(r.img.Bounds())
	if b.Empty() {
		return nil
	}
	return &coverage{a: image.NewAlpha(b)}
}

func (c *coverage) set(x, y int) {
	if (image.Point{X: x, Y: y}).In(c.a.Rect) {
		c.a.SetAlpha(x, y, color.Alpha{A: 255})
	}
}

func (r *Raster) paint(c *coverage, col style.Color) {
	if c == nil || !col.IsSet() || col.A == 0 {
		return
	}
	draw.DrawMask(r.img, c.a.Rect, image.NewUniform(col.NRGBA()), image.Point{}, c.a, c.a.Rect.Min, draw.Over)
}

// stroke walks the segment one device pixel at a time, marking pixels
// across its thickness.
func (c *coverage) stroke(p0, p1 geom.Point, thickness float64) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	half := thickness / 2

	dist := math.Hypot(dx, dy)
	if dist < 1 {
		for ty := -half; ty <= half; ty += 0.5 {
			for tx := -half; tx <= half; tx += 0.5 {
				c.set(int(p0.X+tx), int(p0.Y+ty))
			}
		}
		return
	}

	perpX := -dy / dist
	perpY := dx / dist
	steps := math.Max(math.Abs(dx), math.Abs(dy)) * 2
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx := p0.X + dx*t
		cy := p0.Y + dy*t
		for offset := -half; offset <= half; offset += 0.5 {
			c.set(int(cx+perpX*offset), int(cy+perpY*offset))
		}
	}
}

func (c *coverage) polyline(pts []geom.Point, thickness float64, closed bool) {
	for i := 1; i < len(pts); i++ {
		c.stroke(pts[i-1], pts[i], thickness)
	}
	if closed && len(pts) > 2 {
		c.stroke(pts[len(pts)-1], pts[0], thickness)
	}
}

// fill marks every pixel whose centre lies inside the polygon.
func (c *coverage) fill(pts []geom.Point) {
	for _, tri := range triangulate(pts) {
		b := image.Rect(
			int(math.Floor(math.Min(tri[0].X, math.Min(tri[1].X, tri[2].X)))),
			int(math.Floor(math.Min(tri[0].Y, math.Min(tri[1].Y, tri[2].Y)))),
			int(math.Ceil(math.Max(tri[0].X, math.Max(tri[1].X, tri[2].X))))+1,
			int(math.Ceil(math.Max(tri[0].Y, math.Max(tri[1].Y, tri[2].Y))))+1,
		).Intersect(c.a.Rect)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				p := geom.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
				if geom.PointInTriangle(p, tri[0], tri[1], tri[2]) {
					c.a.SetAlpha(x, y, color.Alpha{A: 255})
				}
			}
		}
	}
}

// triangulate splits a simple polygon into triangles. Degenerate input
// yields none.
func triangulate(pts []geom.Point) [][3]geom.Point {
	if len(pts) < 3 {
		return nil
	}
	coords := make([]float64, len(pts)*2)
	for i, p := range pts {
		coords[i*2] = p.X
		coords[i*2+1] = p.Y
	}
	indices, err := earcut.Earcut(coords, nil, 2)
	if err != nil || len(indices)%3 != 0 {
		return nil
	}
	tris := make([][3]geom.Point, len(indices)/3)
	for i := range tris {
		for k := 0; k < 3; k++ {
			v := indices[i*3+k]
			tris[i][k] = geom.Point{X: coords[v*2], Y: coords[v*2+1]}
		}
	}
	return tris
}

func (r *Raster) shape(pts []geom.Point, s style.Shape) {
	if s.Fill.IsSet() {
		c := r.coverage(pts, 0)
		if c != nil {
			c.fill(pts)
			r.paint(c, s.Fill)
		}
	}
	if s.Stroke.IsSet() && s.StrokeWidth > 0 {
		w := r.width(s.StrokeWidth)
		c := r.coverage(pts, w)
		if c != nil {
			c.polyline(pts, w, true)
			r.paint(c, s.Stroke)
		}
	}
}

func (r *Raster) Line(p0, p1 geom.Point, s style.Line) {
	pts := []geom.Point{r.pt(p0), r.pt(p1)}
	w := r.width(s.Width)
	if c := r.coverage(pts, w); c != nil {
		c.stroke(pts[0], pts[1], w)
		r.paint(c, s.Color)
	}
}

func (r *Raster) Path(p parcoords.Path, s style.Line) {
	pts := r.pts(p.Flatten(24))
	w := r.width(s.Width)
	if c := r.coverage(pts, w); c != nil {
		c.polyline(pts, w, false)
		r.paint(c, s.Color)
	}
}

func (r *Raster) Rect(rc geom.Rect, s style.Shape) {
	rc = geom.Rect{X: rc.X * r.scale, Y: rc.Y * r.scale, W: rc.W * r.scale, H: rc.H * r.scale}
	r.shape(roundedRect(rc, s.CornerRadius*r.scale), s)
}

func (r *Raster) Circle(center geom.Point, radius float64, s style.Shape) {
	r.shape(r.pts(circle(center, radius, 32)), s)
}

func (r *Raster) Polygon(pts []geom.Point, s style.Shape) {
	r.shape(r.pts(pts), s)
}

// Text renders into a tile first so a halo and rotation apply to the
// whole run.
func (r *Raster) Text(text string, at geom.Point, rotation float64, s style.Text) {
	if r.img == nil || text == "" {
		return
	}
	face, err := r.fonts.Face(s.Font, r.scale)
	if err != nil {
		return
	}
	m := face.Metrics()
	ascent := fixedToFloat(m.Ascent)
	height := ascent + fixedToFloat(m.Descent)
	width := fixedToFloat(font.MeasureString(face, text))

	halo := 0.0
	if s.Stroke.IsSet() {
		halo = s.StrokeWidth * r.scale / 2
	}
	pad := math.Ceil(halo) + 1
	tile := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(width+2*pad)), int(math.Ceil(height+2*pad))))

	if halo > 0 {
		for dy := -halo; dy <= halo; dy++ {
			for dx := -halo; dx <= halo; dx++ {
				if dx*dx+dy*dy > halo*halo {
					continue
				}
				drawString(tile, face, text, pad+dx, pad+ascent+dy, s.Stroke)
			}
		}
	}
	fill := s.Fill
	if !fill.IsSet() {
		fill = style.RGB(0, 0, 0)
	}
	drawString(tile, face, text, pad, pad+ascent, fill)

	anchor := geom.Point{X: pad, Y: pad + height/2}
	switch s.Align {
	case style.AlignCenter:
		anchor.X += width / 2
	case style.AlignRight:
		anchor.X += width
	}
	switch s.Baseline {
	case style.BaselineTop:
		anchor.Y = pad
	case style.BaselineBottom:
		anchor.Y = pad + height
	}

	dst := r.pt(at)
	turn := math.Remainder(rotation, 2*math.Pi)
	if math.Abs(turn) < 1e-9 {
		origin := image.Pt(int(math.Round(dst.X-anchor.X)), int(math.Round(dst.Y-anchor.Y)))
		draw.Draw(r.img, tile.Bounds().Add(origin), tile, image.Point{}, draw.Over)
		return
	}
	cos, sin := math.Cos(turn), math.Sin(turn)
	aff := f64.Aff3{
		cos, -sin, dst.X - (cos*anchor.X - sin*anchor.Y),
		sin, cos, dst.Y - (sin*anchor.X + cos*anchor.Y),
	}
	draw.BiLinear.Transform(r.img, aff, tile, tile.Bounds(), draw.Over, nil)
}

func drawString(dst draw.Image, face font.Face, text string, x, y float64, c style.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c.NRGBA()),
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y)},
	}
	d.DrawString(text)
}

// roundedRect outlines rc clockwise, approximating each corner arc with
// a few segments.
func roundedRect(rc geom.Rect, radius float64) []geom.Point {
	radius = math.Min(radius, math.Min(rc.W, rc.H)/2)
	if radius <= 0 {
		return []geom.Point{
			{X: rc.X, Y: rc.Y},
			{X: rc.X + rc.W, Y: rc.Y},
			{X: rc.X + rc.W, Y: rc.Y + rc.H},
			{X: rc.X, Y: rc.Y + rc.H},
		}
	}
	corners := []struct {
		c     geom.Point
		start float64
	}{
		{geom.Point{X: rc.X + radius, Y: rc.Y + radius}, math.Pi},
		{geom.Point{X: rc.X + rc.W - radius, Y: rc.Y + radius}, 1.5 * math.Pi},
		{geom.Point{X: rc.X + rc.W - radius, Y: rc.Y + rc.H - radius}, 0},
		{geom.Point{X: rc.X + radius, Y: rc.Y + rc.H - radius}, 0.5 * math.Pi},
	}
	const steps = 6
	pts := make([]geom.Point, 0, len(corners)*(steps+1))
	for _, k := range corners {
		for i := 0; i <= steps; i++ {
			a := k.start + float64(i)/steps*math.Pi/2
			pts = append(pts, geom.Point{X: k.c.X + radius*math.Cos(a), Y: k.c.Y + radius*math.Sin(a)})
		}
	}
	return pts
}

func circle(center geom.Point, radius float64, n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geom.Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	return pts
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }
