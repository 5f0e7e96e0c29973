package geom

import (
	"encoding/json"
	"fmt"
)

// Padding holds insets in CSS order: top, right, bottom, left.
type Padding [4]float64

// Top, Right, Bottom and Left name the inset indices.
const (
	Top = iota
	Right
	Bottom
	Left
)

// NormalizePadding expands the shorthand forms to four insets.
// One value applies to all sides, two values are (vertical, horizontal).
// Any other count is read as top, right, bottom, left with missing
// entries set to zero.
func NormalizePadding(values ...float64) Padding {
	switch len(values) {
	case 0:
		return Padding{}
	case 1:
		v := values[0]
		return Padding{v, v, v, v}
	case 2:
		return Padding{values[0], values[1], values[0], values[1]}
	}
	var p Padding
	copy(p[:], values)
	return p
}

// Horizontal returns left + right.
func (p Padding) Horizontal() float64 { return p[Left] + p[Right] }

// Vertical returns top + bottom.
func (p Padding) Vertical() float64 { return p[Top] + p[Bottom] }

// UnmarshalJSON accepts a number or an array of two or four numbers.
func (p *Padding) UnmarshalJSON(data []byte) error {
	var single float64
	if err := json.Unmarshal(data, &single); err == nil {
		*p = NormalizePadding(single)
		return nil
	}

	var list []float64
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("padding must be a number or an array: %w", err)
	}
	if len(list) != 2 && len(list) != 4 {
		return fmt.Errorf("padding array must have 2 or 4 entries, got %d", len(list))
	}
	*p = NormalizePadding(list...)
	return nil
}

// MarshalJSON always writes the four-value form.
func (p Padding) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64(p))
}
