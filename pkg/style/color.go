// Package style describes how chart elements are painted: colours, line
// and text styles, and the hover/active overrides layered over them.
package style

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a non-premultiplied RGBA colour. The zero value means "unset"
// and is skipped when styles are merged.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// RGBA returns a colour with alpha given in [0, 1].
func RGBA(r, g, b uint8, a float64) Color {
	return Color{r, g, b, uint8(math.Round(clamp01(a) * 255))}
}

var named = map[string]Color{
	"black":       RGB(0, 0, 0),
	"white":       RGB(255, 255, 255),
	"grey":        RGB(128, 128, 128),
	"gray":        RGB(128, 128, 128),
	"red":         RGB(255, 0, 0),
	"green":       RGB(0, 128, 0),
	"blue":        RGB(0, 0, 255),
	"orange":      RGB(255, 165, 0),
	"transparent": {},
}

// IsSet reports whether c carries a colour.
func (c Color) IsSet() bool {
	return c != Color{}
}

// Alpha returns the opacity in [0, 1].
func (c Color) Alpha() float64 {
	return float64(c.A) / 255
}

// NRGBA converts to the image/color representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Colorful converts the RGB channels for blending.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// String renders opaque colours as hex and translucent ones as rgba().
func (c Color) String() string {
	if c.A == 255 {
		return c.Colorful().Hex()
	}
	a := strconv.FormatFloat(math.Round(c.Alpha()*1000)/1000, 'f', -1, 64)
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, a)
}

// ParseColor accepts #rgb, #rrggbb, rgb(), rgba(), hsl() and a few names.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := named[s]; ok {
		return c, nil
	}

	if strings.HasPrefix(s, "#") {
		if len(s) != 4 && len(s) != 7 {
			return Color{}, fmt.Errorf("invalid hex colour %q", s)
		}
		cf, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
		}
		r, g, b := cf.RGB255()
		return RGB(r, g, b), nil
	}

	fn, args, ok := splitCall(s)
	if !ok {
		return Color{}, fmt.Errorf("unrecognized colour %q", s)
	}

	switch fn {
	case "rgb", "rgba":
		if len(args) != 3 && len(args) != 4 {
			return Color{}, fmt.Errorf("%s() takes 3 or 4 arguments, got %d", fn, len(args))
		}
		var ch [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				return Color{}, fmt.Errorf("invalid channel %q in %q", args[i], s)
			}
			ch[i] = uint8(math.Round(math.Max(0, math.Min(255, v))))
		}
		a := 1.0
		if len(args) == 4 {
			v, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return Color{}, fmt.Errorf("invalid alpha %q in %q", args[3], s)
			}
			a = v
		}
		return RGBA(ch[0], ch[1], ch[2], a), nil

	case "hsl":
		if len(args) != 3 {
			return Color{}, fmt.Errorf("hsl() takes 3 arguments, got %d", len(args))
		}
		h, err1 := strconv.ParseFloat(args[0], 64)
		sat, err2 := strconv.ParseFloat(strings.TrimSuffix(args[1], "%"), 64)
		l, err3 := strconv.ParseFloat(strings.TrimSuffix(args[2], "%"), 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return Color{}, fmt.Errorf("invalid hsl colour %q", s)
		}
		r, g, b := colorful.Hsl(h, clamp01(sat/100), clamp01(l/100)).Clamped().RGB255()
		return RGB(r, g, b), nil
	}

	return Color{}, fmt.Errorf("unrecognized colour function %q", fn)
}

// MustParseColor is ParseColor for constants known to be valid.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func splitCall(s string) (fn string, args []string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	fn = strings.TrimSpace(s[:open])
	for _, a := range strings.Split(s[open+1:len(s)-1], ",") {
		args = append(args, strings.TrimSpace(a))
	}
	return fn, args, true
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("colour must be a string: %w", err)
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
