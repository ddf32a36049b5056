package panorama

import "time"

type transitionConfig struct {
	radius float64
}

// TransitionBuilderOption is a functional option for configuring a Transition.
type TransitionBuilderOption func(*transition, *transitionConfig)

// WithDefaultDuration sets the fade length used when a show omits one. Negative values are ignored.
//
// Parameters:
//   - d: the default duration
//
// Returns:
//   - TransitionBuilderOption: functional option to set the default duration
func WithDefaultDuration(d time.Duration) TransitionBuilderOption {
	return func(t *transition, _ *transitionConfig) {
		if d >= 0 {
			t.defaultDuration = d
		}
	}
}

// WithDefaultEasing sets the easing used when a show omits one. The name is resolved at
// show time, so an unknown default fails every show that relies on it.
//
// Parameters:
//   - name: the easing name
//
// Returns:
//   - TransitionBuilderOption: functional option to set the default easing
func WithDefaultEasing(name string) TransitionBuilderOption {
	return func(t *transition, _ *transitionConfig) {
		if name != "" {
			t.defaultEasing = name
		}
	}
}

// WithSphereRadius sets the radius of both slot spheres.
func WithSphereRadius(radius float64) TransitionBuilderOption {
	return func(_ *transition, cfg *transitionConfig) {
		if radius > 0 {
			cfg.radius = radius
		}
	}
}
