// Package render implements chart canvases: a supersampled PNG raster and
// an SVG writer, plus text measurement from the embedded Go fonts.
package render

import (
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/style"
)

type faceKey struct {
	size float64
	bold bool
}

// Fonts caches font faces by size and weight. Family is ignored; every
// face is Go Regular or Go Bold. The cache is safe for concurrent use
// but the faces it returns are not.
type Fonts struct {
	mu      sync.Mutex
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

// NewFonts parses the embedded fonts.
func NewFonts() (*Fonts, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Fonts{regular: regular, bold: bold, faces: map[faceKey]font.Face{}}, nil
}

// isBold reads CSS weights: "bold", "bolder" and numeric weights of 600
// and above.
func isBold(weight string) bool {
	switch weight {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= 600
}

// Face returns the face for f scaled by scale.
func (fs *Fonts) Face(f style.Font, scale float64) (font.Face, error) {
	key := faceKey{size: f.PointSize() * scale, bold: isBold(f.Weight)}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if face, ok := fs.faces[key]; ok {
		return face, nil
	}
	src := fs.regular
	if key.bold {
		src = fs.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %.1fpx: %w", key.size, err)
	}
	fs.faces[key] = face
	return face, nil
}

// MeasureText returns the advance width and the ascent plus descent of
// text at unit scale.
func (fs *Fonts) MeasureText(text string, f style.Font) geom.Size {
	face, err := fs.Face(f, 1)
	if err != nil {
		// Approximate with the usual average advance of a sans face.
		size := f.PointSize()
		return geom.Size{W: float64(len([]rune(text))) * size * 0.6, H: size}
	}
	m := face.Metrics()
	return geom.Size{
		W: fixedToFloat(font.MeasureString(face, text)),
		H: fixedToFloat(m.Ascent + m.Descent),
	}
}
