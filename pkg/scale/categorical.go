package scale

import "math"

// Categorical spaces discrete categories evenly along the axis.
// Without dataOnEdge each category sits in the middle of its slot.
type Categorical struct {
	base
	categories []any
}

// NewCategorical creates a scale over the given categories, in order.
func NewCategorical(categories []any, dataOnEdge bool) *Categorical {
	s := &Categorical{base: newBase(dataOnEdge)}
	s.setAxisLength(1)
	s.SetCategories(categories)
	return s
}

func (s *Categorical) Kind() Kind { return KindCategorical }

// Categories returns the category values in axis order.
func (s *Categorical) Categories() []any { return s.categories }

// SetCategories replaces the categories and recomputes ticks.
func (s *Categorical) SetCategories(categories []any) {
	s.categories = append([]any(nil), categories...)
	s.calculate()
}

func (s *Categorical) SetAxisLength(px float64) {
	s.setAxisLength(px)
	s.calculate()
}

// SetMinMaxValues only triggers a recompute; the categories are the domain.
func (s *Categorical) SetMinMaxValues(min, max float64) {
	s.calculate()
}

func (s *Categorical) calculate() {
	n := len(s.categories)
	s.resetTicks(n)
	s.min, s.max, s.rng = 0, 0, 0
	s.tickSpacing = 0
	if n == 0 {
		return
	}

	slots := n
	if s.dataOnEdge {
		slots = n - 1
	}
	if slots < 1 {
		slots = 1
	}
	s.tickSpacing = s.axisLength / float64(slots)
	s.max = float64(n - 1)
	s.rng = s.max

	traversed := 0.0
	for i, c := range s.categories {
		if i == 0 {
			if !s.dataOnEdge {
				traversed = s.tickSpacing / 2
			}
		} else {
			traversed += s.tickSpacing
		}
		s.ticks = append(s.ticks, float64(i))
		s.tickLabels = append(s.tickLabels, ValueString(c))
		s.tickPos = append(s.tickPos, traversed)
	}
}

func (s *Categorical) indexOf(v any) int {
	label := ValueString(v)
	for i, l := range s.tickLabels {
		if l == label {
			return i
		}
	}
	return -1
}

// ValueToPercent returns 0 for values that match no category.
func (s *Categorical) ValueToPercent(v any) float64 {
	i := s.indexOf(v)
	if i < 0 || s.axisLength == 0 {
		return 0
	}
	return s.tickPos[i] / s.axisLength
}

func (s *Categorical) ValueToPos(v any) float64 {
	i := s.indexOf(v)
	if i < 0 {
		return 0
	}
	return s.tickPos[i]
}

func (s *Categorical) PercentToValue(p float64) any {
	return s.PosToValue(p * s.axisLength)
}

// PosToValue returns the category whose tick is nearest to pos, or nil
// when there are no categories.
func (s *Categorical) PosToValue(pos float64) any {
	best, bestDist := -1, math.Inf(1)
	for i, tp := range s.tickPos {
		if d := math.Abs(pos - tp); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return nil
	}
	return s.categories[best]
}
