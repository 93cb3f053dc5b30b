package utils

import (
	"math"
	"strconv"
	"strings"
)

// AsNumber returns the numeric interpretation of a number or numeric string.
// Anything that does not coerce to a finite number yields 0, never NaN or an
// infinity, so aggregation sums cannot be poisoned by bad cells.
func AsNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return finiteOrZero(n)
	case float32:
		return finiteOrZero(float64(n))
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return finiteOrZero(f)
	default:
		return 0
	}
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
