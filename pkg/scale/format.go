package scale

import (
	"math"
	"strconv"
	"strings"
)

// ReadableTick formats a tick value for display. Integers print as-is,
// other values keep at most six decimals, and magnitudes under 0.01 or over
// 999 switch to exponent form. Trailing zeros are trimmed in both forms.
func ReadableTick(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	if v == math.Trunc(v) && math.Abs(v) < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	abs := math.Abs(v)
	if abs < 0.01 || abs > 999 {
		s := strconv.FormatFloat(v, 'e', 6, 64)
		mant, exp, _ := strings.Cut(s, "e")
		n, _ := strconv.Atoi(exp)
		return trimZeros(mant) + "e" + strconv.Itoa(n)
	}

	return trimZeros(strconv.FormatFloat(v, 'f', 6, 64))
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// ValueString renders a data value the way categorical labels compare it.
func ValueString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	}
	return ""
}

// ToFloat extracts a number from a data value.
func ToFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case int32:
		return float64(x), true
	}
	return 0, false
}
