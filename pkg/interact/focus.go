package interact

import (
	"github.com/ha1tch/parcoords/pkg/filter"
	"github.com/ha1tch/parcoords/pkg/geom"
	"github.com/ha1tch/parcoords/pkg/layout"
)

// axisKeys returns the coordinate names along the spacing direction (h)
// and along the axes (v).
func axisKeys(l *layout.Layout) (h, v byte) {
	if l.Horizontal() {
		return 'x', 'y'
	}
	return 'y', 'x'
}

// PercentAt returns where pt falls along the axis of d, as a fraction of
// the axis length. It is 0 when the axis has collapsed.
func PercentAt(l *layout.Layout, d layout.DimensionLayout, pt geom.Point) float64 {
	if l.AxisLength <= 0 {
		return 0
	}
	_, v := axisKeys(l)
	return (pt.Axis(v) - d.AxisOrigin().Axis(v)) / l.AxisLength
}

// resizeThreshold converts FilterResizeThreshold to axis percent units.
func resizeThreshold(l *layout.Layout) float64 {
	if l.AxisLength <= 0 {
		return 0
	}
	return FilterResizeThreshold / l.AxisLength
}

// FocusAt hit-tests pt against the layout. Dimensions are tried in order
// and, within one, the label wins over the axis. It returns nil when pt
// misses everything.
func FocusAt(l *layout.Layout, filters filter.Set, pt geom.Point) *Focus {
	if l == nil {
		return nil
	}
	for i, d := range l.Dimensions {
		if d.LabelBoundary.Contains(pt) {
			return &Focus{DimIndex: i, FilterIndex: -1, Type: FocusDimensionLabel}
		}
		if !d.AxisBoundary.Contains(pt) {
			continue
		}

		p := PercentAt(l, d, pt)
		idx := filters.IndexAt(d.Key, p)
		if idx < 0 {
			return &Focus{DimIndex: i, FilterIndex: -1, Type: FocusDimensionAxis}
		}

		f := filters[d.Key][idx]
		thr := resizeThreshold(l)
		kind := FocusFilter
		if p <= f.P0+thr || p >= f.P1-thr {
			kind = FocusFilterResize
		}
		return &Focus{DimIndex: i, FilterIndex: idx, Type: kind}
	}
	return nil
}
