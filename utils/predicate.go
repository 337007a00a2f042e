package utils

import "math"

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// IsInOpenRange checks if a value is within [min, max).
func IsInOpenRange[T number](min T, value T, max T) bool {
	return min <= value && value < max
}

// IsWhole reports whether f is finite and has no fractional part.
func IsWhole(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}
