package camera

// FusionControllerOption is a functional option for configuring a FusionController.
type FusionControllerOption func(*fusionController)

// WithOrientationSource sets the device orientation source. Without one, orientation is
// driven by drag gestures only.
//
// Parameters:
//   - src: the host orientation query
//
// Returns:
//   - FusionControllerOption: functional option to set the source
func WithOrientationSource(src OrientationSource) FusionControllerOption {
	return func(fc *fusionController) {
		fc.device = src
	}
}

// WithZoomScale sets the field-of-view change per wheel or pinch unit.
//
// Parameters:
//   - scale: radians per unit
//
// Returns:
//   - FusionControllerOption: functional option to set the zoom scale
func WithZoomScale(scale float64) FusionControllerOption {
	return func(fc *fusionController) {
		fc.zoomScale = scale
	}
}

// WithPitchDrag enables vertical drag pitching. Disabled by default: vertical motion is
// measured every tick but only applied when this is set.
//
// Parameters:
//   - enabled: true to apply vertical drag
//
// Returns:
//   - FusionControllerOption: functional option to toggle pitch drag
func WithPitchDrag(enabled bool) FusionControllerOption {
	return func(fc *fusionController) {
		fc.pitchDrag = enabled
	}
}
