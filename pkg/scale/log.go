package scale

import "math"

// Log places one tick per integer power of its base.
type Log struct {
	base
	logBase                  float64
	minExp, maxExp           float64
	minExpExact, maxExpExact float64
}

// NewLog creates a logarithmic scale over [min, max]. A base that is not
// positive or equals one falls back to 10.
func NewLog(min, max, logBase float64, dataOnEdge bool) *Log {
	if !(logBase > 0) || logBase == 1 || math.IsInf(logBase, 0) {
		logBase = 10
	}
	s := &Log{base: newBase(dataOnEdge), logBase: logBase}
	s.setAxisLength(1)
	s.SetMinMaxValues(min, max)
	return s
}

func (s *Log) Kind() Kind { return KindLog }

// Base returns the logarithm base.
func (s *Log) Base() float64 { return s.logBase }

func (s *Log) SetAxisLength(px float64) {
	s.setAxisLength(px)
	s.calculate()
}

// SetMinMaxValues clamps the domain to positive numbers: a non-positive
// minimum becomes one base step below the maximum and an empty span is
// widened by one step on each side.
func (s *Log) SetMinMaxValues(min, max float64) {
	lo, hi := orderedDomain(min, max)
	switch {
	case !(hi > 0):
		lo, hi = 1, s.logBase
	case !(lo > 0):
		lo = hi / s.logBase
	}
	if lo == hi {
		lo, hi = lo/s.logBase, hi*s.logBase
	}
	s.minValue, s.maxValue = lo, hi
	s.calculate()
}

func (s *Log) log(v float64) float64 {
	switch s.logBase {
	case 10:
		return math.Log10(v)
	case 2:
		return math.Log2(v)
	case math.E:
		return math.Log(v)
	}
	return math.Log(v) / math.Log(s.logBase)
}

func (s *Log) calculate() {
	s.minExpExact = s.log(s.minValue)
	s.maxExpExact = s.log(s.maxValue)
	s.minExp = math.Floor(s.minExpExact)
	s.maxExp = math.Ceil(s.maxExpExact)
	if s.maxExp == s.minExp {
		s.maxExp++
	}

	s.min = math.Pow(s.logBase, s.minExp)
	s.max = math.Pow(s.logBase, s.maxExp)
	s.rng = s.max - s.min
	s.tickSpacing = 1

	count := int(s.maxExp - s.minExp)
	s.resetTicks(count + 1)
	for i := 0; i <= count; i++ {
		exp := s.minExp + float64(i)
		tick := math.Pow(s.logBase, exp)
		label := ReadableTick(tick)
		if s.dataOnEdge {
			switch i {
			case 0:
				tick = math.Pow(s.logBase, s.minExpExact)
				label = EdgeMarker + ReadableTick(tick)
			case count:
				tick = math.Pow(s.logBase, s.maxExpExact)
				label = EdgeMarker + ReadableTick(tick)
			}
		}
		s.ticks = append(s.ticks, tick)
		s.tickLabels = append(s.tickLabels, label)
		s.tickPos = append(s.tickPos, s.ValueToPos(tick))
	}
}

func (s *Log) expBounds() (float64, float64) {
	if s.dataOnEdge {
		return s.minExpExact, s.maxExpExact
	}
	return s.minExp, s.maxExp
}

// ValueToPercent returns 0 for non-numeric and non-positive values.
func (s *Log) ValueToPercent(v any) float64 {
	f, ok := ToFloat(v)
	if !ok || !(f > 0) {
		return 0
	}
	lo, hi := s.expBounds()
	return (s.log(f) - lo) / (hi - lo)
}

func (s *Log) ValueToPos(v any) float64 {
	return s.ValueToPercent(v) * s.axisLength
}

func (s *Log) PercentToValue(p float64) any {
	lo, hi := s.expBounds()
	return math.Pow(s.logBase, lo+p*(hi-lo))
}

func (s *Log) PosToValue(pos float64) any {
	if s.axisLength == 0 {
		return s.PercentToValue(0)
	}
	return s.PercentToValue(pos / s.axisLength)
}
