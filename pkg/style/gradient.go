package style

import (
	"math"
)

// Gradient is an ordered list of colour stops spread evenly over [0, 1].
type Gradient []Color

// At returns the colour at percent p, blending the two nearest stops in
// RGB space. Alpha is interpolated linearly. An empty gradient is black.
func (g Gradient) At(p float64) Color {
	switch len(g) {
	case 0:
		return RGB(0, 0, 0)
	case 1:
		return g[0]
	}
	if math.IsNaN(p) {
		p = 0
	}
	p = clamp01(p)

	idx := p * float64(len(g)-1)
	i0 := int(math.Floor(idx))
	i1 := int(math.Ceil(idx))
	t := idx - float64(i0)

	c0, c1 := g[i0], g[i1]
	r, gr, b := c0.Colorful().BlendRgb(c1.Colorful(), t).RGB255()
	a := float64(c0.A) + (float64(c1.A)-float64(c0.A))*t
	return Color{R: r, G: gr, B: b, A: uint8(math.Round(a))}
}
