package routegeo

import "math"

// isFiniteNumber accepts the numeric forms a decoded JSON payload can carry.
func isFiniteNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// isCoordPair reports whether v is a coordinate pair: an array of length >= 2
// whose first two components are finite numbers.
func isCoordPair(v any) bool {
	arr, ok := v.([]any)
	if !ok || len(arr) < 2 {
		return false
	}
	if _, ok := isFiniteNumber(arr[0]); !ok {
		return false
	}
	if _, ok := isFiniteNumber(arr[1]); !ok {
		return false
	}
	return true
}

// IsLineCoords reports whether v is an array of coordinate pairs long enough
// to form a polyline (a single point is not a drawable route).
func IsLineCoords(v any) bool {
	arr, ok := v.([]any)
	if !ok || len(arr) < 2 {
		return false
	}
	for _, el := range arr {
		if !isCoordPair(el) {
			return false
		}
	}
	return true
}

// IsMultiLineCoords reports whether v is a non-empty array whose every
// element is itself valid line coordinates.
func IsMultiLineCoords(v any) bool {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return false
	}
	for _, el := range arr {
		if !IsLineCoords(el) {
			return false
		}
	}
	return true
}

func toLine(v any) [][]float64 {
	arr := v.([]any)
	line := make([][]float64, 0, len(arr))
	for _, el := range arr {
		pair := el.([]any)
		lng, _ := isFiniteNumber(pair[0])
		lat, _ := isFiniteNumber(pair[1])
		line = append(line, []float64{lng, lat})
	}
	return line
}

func toMultiLine(v any) [][][]float64 {
	arr := v.([]any)
	multi := make([][][]float64, 0, len(arr))
	for _, el := range arr {
		multi = append(multi, toLine(el))
	}
	return multi
}
