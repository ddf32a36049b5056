package panorama

import (
	"time"

	"github.com/Carmen-Shannon/oxy-pano/engine/camera"
	"github.com/Carmen-Shannon/oxy-pano/engine/input"
	"github.com/Carmen-Shannon/oxy-pano/engine/loader"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pano/engine/texture"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
type ViewerBuilderOption func(*viewer)

// WithLoader sets the image loader used by the default scheduler.
//
// Parameters:
//   - l: the loader
//
// Returns:
//   - ViewerBuilderOption: functional option to set the loader
func WithLoader(l loader.Loader) ViewerBuilderOption {
	return func(v *viewer) {
		v.loader = l
	}
}

// WithScheduler replaces the texture scheduler. The caller is responsible for settling
// futures on the viewer loop, typically by passing the viewer itself as the Poster.
//
// Parameters:
//   - s: the scheduler
//
// Returns:
//   - ViewerBuilderOption: functional option to set the scheduler
func WithScheduler(s texture.Scheduler) ViewerBuilderOption {
	return func(v *viewer) {
		v.scheduler = s
	}
}

// WithLoaderWorkers bounds concurrent texture loads for the default scheduler.
func WithLoaderWorkers(n int) ViewerBuilderOption {
	return func(v *viewer) {
		v.loaderWorkers = n
	}
}

// WithGestureSource replaces the viewer's own gesture aggregator with a host source.
//
// Parameters:
//   - src: the gesture source
//
// Returns:
//   - ViewerBuilderOption: functional option to set the gesture source
func WithGestureSource(src input.GestureSource) ViewerBuilderOption {
	return func(v *viewer) {
		v.gestures = src
	}
}

// WithOrientationSource sets the device orientation sensor.
//
// Parameters:
//   - src: the orientation source
//
// Returns:
//   - ViewerBuilderOption: functional option to set the orientation source
func WithOrientationSource(src camera.OrientationSource) ViewerBuilderOption {
	return func(v *viewer) {
		v.controllerOptions = append(v.controllerOptions, camera.WithOrientationSource(src))
	}
}

// WithStateSubmitter sets the host entry point receiving the published view state.
//
// Parameters:
//   - s: the submitter
//
// Returns:
//   - ViewerBuilderOption: functional option to set the submitter
func WithStateSubmitter(s camera.StateSubmitter) ViewerBuilderOption {
	return func(v *viewer) {
		v.submitter = s
	}
}

// WithRenderer sets the renderer. The default is a log backend renderer.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - ViewerBuilderOption: functional option to set the renderer
func WithRenderer(r renderer.Renderer) ViewerBuilderOption {
	return func(v *viewer) {
		v.renderer = r
	}
}

// WithZoomScale sets the wheel and pinch zoom factor in radians per unit.
func WithZoomScale(scale float64) ViewerBuilderOption {
	return func(v *viewer) {
		v.controllerOptions = append(v.controllerOptions, camera.WithZoomScale(scale))
	}
}

// WithPitchDrag enables vertical drag.
func WithPitchDrag(enabled bool) ViewerBuilderOption {
	return func(v *viewer) {
		v.controllerOptions = append(v.controllerOptions, camera.WithPitchDrag(enabled))
	}
}

// WithFov sets the initial field of view in radians.
func WithFov(fov float64) ViewerBuilderOption {
	return func(v *viewer) {
		v.eyeOptions = append(v.eyeOptions, camera.WithFov(fov))
	}
}

// WithFovBounds sets the field-of-view clamp in radians.
//
// Parameters:
//   - min: the lower bound
//   - max: the upper bound
//
// Returns:
//   - ViewerBuilderOption: functional option to set the bounds
func WithFovBounds(min, max float64) ViewerBuilderOption {
	return func(v *viewer) {
		v.eyeOptions = append(v.eyeOptions, camera.WithFovBounds(min, max))
	}
}

// WithTransitionDefaults sets the fade duration and easing used when a show omits them.
//
// Parameters:
//   - duration: the default fade length
//   - easing: the default easing name
//
// Returns:
//   - ViewerBuilderOption: functional option to set the defaults
func WithTransitionDefaults(duration time.Duration, easing string) ViewerBuilderOption {
	return func(v *viewer) {
		v.transitionOptions = append(v.transitionOptions,
			WithDefaultDuration(duration), WithDefaultEasing(easing))
	}
}

// WithTransitionOptions appends raw transition options, such as WithSphereRadius.
func WithTransitionOptions(options ...TransitionBuilderOption) ViewerBuilderOption {
	return func(v *viewer) {
		v.transitionOptions = append(v.transitionOptions, options...)
	}
}
