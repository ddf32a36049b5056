package camera

import (
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/go-gl/mathgl/mgl64"
)

// OrientationSource is the host's device user-orientation query.
type OrientationSource interface {
	// UserOrientation returns the device orientation at time t, expressed in the world frame.
	//
	// Parameters:
	//   - t: the frame time
	//
	// Returns:
	//   - mgl64.Quat: the device orientation
	//   - bool: false if no sensor reading is available
	UserOrientation(t time.Time) (mgl64.Quat, bool)
}

// OrientationSourceFunc adapts a function to the OrientationSource interface.
type OrientationSourceFunc func(t time.Time) (mgl64.Quat, bool)

// UserOrientation calls f(t).
func (f OrientationSourceFunc) UserOrientation(t time.Time) (mgl64.Quat, bool) {
	return f(t)
}

// FusionController combines device orientation and manual gestures into the virtual
// eye's orientation and field of view, once per tick.
type FusionController interface {
	// Eye returns the VirtualEye the controller drives.
	//
	// Returns:
	//   - VirtualEye: the driven eye
	Eye() VirtualEye

	// Update runs one fusion step:
	//  1. a well-formed device orientation replaces the eye orientation outright
	//  2. wheel and pinch deltas adjust the field of view, clamped to the eye's bounds
	//  3. without a device orientation, an active horizontal drag yaws the eye about the anchor's up axis
	//  4. the gesture source is reset
	//
	// Parameters:
	//   - t: the frame time, used to query the orientation source
	//   - viewport: the primary viewport, used to scale drag deltas
	Update(t time.Time, viewport common.Viewport)

	// ZoomScale returns the radians of field of view per wheel or pinch unit.
	//
	// Returns:
	//   - float64: the zoom scale
	ZoomScale() float64

	// PitchDragEnabled reports whether vertical drag pitches the eye.
	//
	// Returns:
	//   - bool: true if vertical drag is applied
	PitchDragEnabled() bool

	// SetOrientationSource replaces the device orientation source. Pass nil for manual-only control.
	//
	// Parameters:
	//   - src: the new source
	SetOrientationSource(src OrientationSource)
}
