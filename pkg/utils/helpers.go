package utils

import (
	"math"
	"strconv"
)

// ClampInt limits an integer between min and max
func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundHalfUp rounds to the nearest integer with ties going towards +Inf,
// so 2.5 -> 3 and -2.5 -> -2. NaN yields 0 and out of range values saturate.
func RoundHalfUp(value float64) int {
	if math.IsNaN(value) {
		return 0
	}

	r := math.Round(value)
	if value-r == 0.5 {
		r++
	}

	switch {
	case r >= float64(math.MaxInt):
		return math.MaxInt
	case r <= float64(math.MinInt):
		return math.MinInt
	}
	return int(r)
}

// FormatNumber prints a float with the shortest representation that
// round-trips: 12.3 -> "12.3", 5 -> "5".
func FormatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
