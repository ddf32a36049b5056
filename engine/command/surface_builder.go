package command

import "github.com/Carmen-Shannon/oxy-pano/engine/texture"

// SurfaceBuilderOption is a functional option for configuring a Surface.
type SurfaceBuilderOption func(*surface)

// WithPoster routes submitted requests through p instead of the viewer's own queue,
// e.g. an engine loop that owns the viewer.
//
// Parameters:
//   - p: the poster
//
// Returns:
//   - SurfaceBuilderOption: functional option to set the poster
func WithPoster(p texture.Poster) SurfaceBuilderOption {
	return func(s *surface) {
		if p != nil {
			s.poster = p
		}
	}
}
