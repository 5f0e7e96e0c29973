// Package scale maps data values to positions along an axis and picks
// human-friendly tick marks for it.
//
// Three kinds share one interface: Linear and Log for numeric domains and
// Categorical for discrete ones. Every scale keeps its ticks, tick labels
// and tick pixel positions in step with the axis length it was last given.
package scale

import (
	"fmt"
	"math"
)

// MinTickDistance is the minimum pixel spacing between ticks used to derive
// the maximum tick count from the axis length.
const MinTickDistance = 50

// EdgeMarker prefixes the label of a tick pinned to the exact data minimum
// or maximum. Renderers hide such labels unless the axis is focused.
const EdgeMarker = "*"

// Kind identifies the scale variant.
type Kind int

const (
	KindLinear Kind = iota
	KindLog
	KindCategorical
)

func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindLog:
		return "logarithmic"
	case KindCategorical:
		return "categorical"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Scale converts between data values, axis percentages in [0, 1] and pixel
// positions along an axis.
type Scale interface {
	Kind() Kind

	// SetAxisLength changes the pixel length of the axis and recomputes ticks.
	SetAxisLength(px float64)
	AxisLength() float64

	// SetMinMaxValues changes the numeric data domain and recomputes ticks.
	// Categorical scales take their domain from their categories instead.
	SetMinMaxValues(min, max float64)

	DataOnEdge() bool
	Min() float64
	Max() float64
	Range() float64
	TickSpacing() float64
	Ticks() []float64
	TickLabels() []string
	TickPos() []float64

	ValueToPercent(v any) float64
	ValueToPos(v any) float64
	PercentToValue(p float64) any
	PosToValue(pos float64) any
}

// base carries the state common to every kind.
type base struct {
	minValue, maxValue float64
	min, max, rng      float64
	dataOnEdge         bool
	axisLength         float64
	maxTicks           float64
	tickSpacing        float64
	ticks              []float64
	tickLabels         []string
	tickPos            []float64
}

func newBase(dataOnEdge bool) base {
	return base{dataOnEdge: dataOnEdge, axisLength: 1}
}

func (b *base) AxisLength() float64 { return b.axisLength }
func (b *base) DataOnEdge() bool { return b.dataOnEdge }
func (b *base) Min() float64 { return b.min }
func (b *base) Max() float64 { return b.max }
func (b *base) Range() float64 { return b.rng }
func (b *base) TickSpacing() float64 { return b.tickSpacing }
func (b *base) Ticks() []float64 { return b.ticks }
func (b *base) TickLabels() []string { return b.tickLabels }
func (b *base) TickPos() []float64 { return b.tickPos }

func (b *base) setAxisLength(px float64) {
	if math.IsNaN(px) || px < 0 {
		px = 0
	}
	b.axisLength = px
	b.maxTicks = math.Max(1, px/MinTickDistance)
}

func (b *base) resetTicks(n int) {
	b.ticks = make([]float64, 0, n)
	b.tickLabels = make([]string, 0, n)
	b.tickPos = make([]float64, 0, n)
}

// NiceNum returns a "nice" number approximately equal to r. When round is
// set the result is the closest of 1, 2, 5 or 10 times a power of ten,
// otherwise the smallest such number not below r. Non-positive and
// non-finite inputs yield 1.
func NiceNum(r float64, round bool) float64 {
	if !(r > 0) || math.IsInf(r, 0) {
		return 1
	}

	exponent := math.Floor(math.Log10(r))
	fraction := r / math.Pow(10, exponent)

	var nice float64
	if round {
		switch {
		case fraction < 1.5:
			nice = 1
		case fraction < 3:
			nice = 2
		case fraction < 7:
			nice = 5
		default:
			nice = 10
		}
	} else {
		switch {
		case fraction <= 1:
			nice = 1
		case fraction <= 2:
			nice = 2
		case fraction <= 5:
			nice = 5
		default:
			nice = 10
		}
	}

	return nice * math.Pow(10, exponent)
}

// Extent returns the smallest and largest numeric entries of values.
// ok is false when values holds no numbers.
func Extent(values []any) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		f, isNum := ToFloat(v)
		if !isNum || math.IsNaN(f) {
			continue
		}
		lo = math.Min(lo, f)
		hi = math.Max(hi, f)
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

// orderedDomain replaces non-finite bounds and returns lo <= hi.
func orderedDomain(lo, hi float64) (float64, float64) {
	finiteLo := !math.IsNaN(lo) && !math.IsInf(lo, 0)
	finiteHi := !math.IsNaN(hi) && !math.IsInf(hi, 0)
	switch {
	case !finiteLo && !finiteHi:
		return 0, 1
	case !finiteLo:
		lo = hi
	case !finiteHi:
		hi = lo
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo, hi
}

// maxLinearValue bounds the domain of linear scales.
const maxLinearValue = math.MaxFloat64 / 8

// linearDomain widens a degenerate or reversed numeric domain so that
// hi > lo always holds.
func linearDomain(lo, hi float64) (float64, float64) {
	lo, hi = orderedDomain(lo, hi)
	// Keep hi-lo and its rounded ticks finite.
	lo = math.Max(lo, -maxLinearValue)
	hi = math.Min(hi, maxLinearValue)
	if hi == lo {
		d := math.Abs(lo) * 0.1
		if d == 0 {
			d = 1
		}
		lo, hi = lo-d, hi+d
	}
	return lo, hi
}
