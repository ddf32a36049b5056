package camera

import (
	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/go-gl/mathgl/mgl64"
)

// VirtualEyeBuilderOption is a functional option for configuring a VirtualEye.
type VirtualEyeBuilderOption func(*virtualEye)

// WithFov sets the initial field of view in radians. It is clamped to the bounds after all options apply.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - VirtualEyeBuilderOption: functional option to set the field of view
func WithFov(fov float64) VirtualEyeBuilderOption {
	return func(e *virtualEye) {
		e.fov = fov
	}
}

// WithFovBounds sets the minimum and maximum field of view.
//
// Parameters:
//   - min: lower bound in radians
//   - max: upper bound in radians
//
// Returns:
//   - VirtualEyeBuilderOption: functional option to set the bounds
func WithFovBounds(min, max float64) VirtualEyeBuilderOption {
	return func(e *virtualEye) {
		e.minFov = min
		e.maxFov = max
	}
}

// WithOrientation sets the initial orientation. Malformed quaternions are ignored.
//
// Parameters:
//   - q: the orientation
//
// Returns:
//   - VirtualEyeBuilderOption: functional option to set the orientation
func WithOrientation(q mgl64.Quat) VirtualEyeBuilderOption {
	return func(e *virtualEye) {
		if common.ValidQuat(q) {
			e.orientation = q.Normalize()
		}
	}
}
