package material

import (
	"github.com/Carmen-Shannon/oxy-pano/common"
)

// MaterialBuilderOption is a functional option for configuring a Material.
type MaterialBuilderOption func(*material)

// WithName sets the material identifier.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - MaterialBuilderOption: functional option to set the name
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithTexture binds an initial texture.
//
// Parameters:
//   - t: the texture
//
// Returns:
//   - MaterialBuilderOption: functional option to set the texture
func WithTexture(t *common.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.texture = t
	}
}

// WithOpacity sets the initial opacity, clamped to [0,1].
//
// Parameters:
//   - opacity: the initial opacity
//
// Returns:
//   - MaterialBuilderOption: functional option to set the opacity
func WithOpacity(opacity float64) MaterialBuilderOption {
	return func(m *material) {
		m.opacity = common.Clamp(opacity, 0, 1)
	}
}
