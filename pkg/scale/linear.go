package scale

import "math"

// Linear is an evenly divided numeric scale.
type Linear struct {
	base
}

// NewLinear creates a linear scale over [min, max]. With dataOnEdge the
// first and last ticks sit exactly on the data extremes.
func NewLinear(min, max float64, dataOnEdge bool) *Linear {
	s := &Linear{base: newBase(dataOnEdge)}
	s.setAxisLength(1)
	s.SetMinMaxValues(min, max)
	return s
}

func (s *Linear) Kind() Kind { return KindLinear }

func (s *Linear) SetAxisLength(px float64) {
	s.setAxisLength(px)
	s.calculate()
}

func (s *Linear) SetMinMaxValues(min, max float64) {
	s.minValue, s.maxValue = linearDomain(min, max)
	s.calculate()
}

func (s *Linear) calculate() {
	s.rng = NiceNum(s.maxValue-s.minValue, false)
	s.tickSpacing = NiceNum(s.rng/s.maxTicks, true)
	s.min = math.Floor(s.minValue/s.tickSpacing) * s.tickSpacing
	s.max = math.Ceil(s.maxValue/s.tickSpacing) * s.tickSpacing

	count := int(math.Round((s.max - s.min) / s.tickSpacing))
	s.resetTicks(count + 1)
	for i := 0; i <= count; i++ {
		tick := s.min + float64(i)*s.tickSpacing
		label := ReadableTick(tick)
		if s.dataOnEdge {
			switch i {
			case 0:
				tick = s.minValue
				label = EdgeMarker + ReadableTick(tick)
			case count:
				tick = s.maxValue
				label = EdgeMarker + ReadableTick(tick)
			}
		}
		s.ticks = append(s.ticks, tick)
		s.tickLabels = append(s.tickLabels, label)
		s.tickPos = append(s.tickPos, s.ValueToPos(tick))
	}
}

func (s *Linear) bounds() (float64, float64) {
	if s.dataOnEdge {
		return s.minValue, s.maxValue
	}
	return s.min, s.max
}

func (s *Linear) ValueToPercent(v any) float64 {
	f, ok := ToFloat(v)
	if !ok {
		return 0
	}
	lo, hi := s.bounds()
	return (f - lo) / (hi - lo)
}

func (s *Linear) ValueToPos(v any) float64 {
	return s.ValueToPercent(v) * s.axisLength
}

func (s *Linear) PercentToValue(p float64) any {
	lo, hi := s.bounds()
	return lo + p*(hi-lo)
}

func (s *Linear) PosToValue(pos float64) any {
	if s.axisLength == 0 {
		return s.PercentToValue(0)
	}
	return s.PercentToValue(pos / s.axisLength)
}
