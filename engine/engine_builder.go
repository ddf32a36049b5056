package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-pano/engine/panorama"
	"github.com/Carmen-Shannon/oxy-pano/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithViewer sets the viewer the engine drives.
//
// Parameters:
//   - v: the viewer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithViewer(v panorama.Viewer) EngineBuilderOption {
	return func(e *engine) {
		e.viewer = v
	}
}

// WithProfiling enables or disables loop statistics, reported every interval.
//
// Parameters:
//   - enabled: if true, enables profiling
//   - interval: the reporting interval (default one second if <= 0)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool, interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
		if interval > 0 {
			e.profileInterval = interval
		}
	}
}

// WithTickRate sets the loop rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Duration(float64(time.Second) / fps)
	}
}

// WithWindow attaches a window. Its pointer and wheel input feed the viewer's gesture
// aggregator and its framebuffer size becomes the viewport.
//
// Parameters:
//   - w: an opened Window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithViewport sets the headless output size.
func WithViewport(width, height int) EngineBuilderOption {
	return func(e *engine) {
		e.SetViewport(width, height)
	}
}

// WithClipPlanes sets the host projection's near and far planes. Invalid pairs are ignored.
//
// Parameters:
//   - near: the near plane distance
//   - far: the far plane distance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClipPlanes(near, far float64) EngineBuilderOption {
	return func(e *engine) {
		if near > 0 && far > near {
			e.near, e.far = near, far
		}
	}
}

// WithStrictProjection marks every frame strict, so the viewer keeps the host projection.
func WithStrictProjection(strict bool) EngineBuilderOption {
	return func(e *engine) {
		e.strict = strict
	}
}
