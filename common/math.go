package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Clamp limits v to the closed interval [lo, hi]. NaN clamps to lo.
//
// Parameters:
//   - v: the value to clamp
//   - lo, hi: inclusive bounds
//
// Returns:
//   - float64: the clamped value
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SafeAspect returns width / height, falling back to 1.0 when the result is zero or not finite.
//
// Parameters:
//   - width, height: viewport dimensions
//
// Returns:
//   - float64: a usable aspect ratio
func SafeAspect(width, height float64) float64 {
	aspect := width / height
	if !IsFinite(aspect) || aspect <= 0 {
		return 1.0
	}
	return aspect
}

// ValidQuat reports whether q has finite components and a non-zero length.
func ValidQuat(q mgl64.Quat) bool {
	if !IsFinite(q.W) || !IsFinite(q.V[0]) || !IsFinite(q.V[1]) || !IsFinite(q.V[2]) {
		return false
	}
	return q.Len() > 1e-12
}

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
