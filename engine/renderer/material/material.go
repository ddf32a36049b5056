package material

import (
	"github.com/Carmen-Shannon/oxy-pano/common"
)

// material is the implementation of the Material interface.
type material struct {
	name    string
	texture *common.Texture
	opacity float64
	dirty   bool
}

// Material defines the surface of a panorama sphere: an optional equirectangular texture
// and an opacity used for crossfading.
//
// Every mutation marks the material dirty so the renderer knows to re-upload its
// parameters; the renderer clears the flag after drawing.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Texture retrieves the bound texture, or nil while none is bound.
	//
	// Returns:
	//   - *common.Texture: the texture, or nil
	Texture() *common.Texture

	// SetTexture binds a texture. Pass nil to unbind.
	//
	// Parameters:
	//   - t: the texture to bind
	SetTexture(t *common.Texture)

	// Opacity retrieves the opacity in [0,1].
	//
	// Returns:
	//   - float64: the opacity
	Opacity() float64

	// SetOpacity sets the opacity, clamped to [0,1].
	//
	// Parameters:
	//   - opacity: the new opacity
	SetOpacity(opacity float64)

	// Reset unbinds the texture and restores full opacity.
	Reset()

	// Dirty reports whether the material changed since the last ClearDirty.
	//
	// Returns:
	//   - bool: true if the material needs re-upload
	Dirty() bool

	// MarkDirty flags the material for re-upload without changing it.
	MarkDirty()

	// ClearDirty resets the dirty flag.
	ClearDirty()

	// Params returns the GPU uniform block for the material.
	//
	// Returns:
	//   - GPUMaterialParams: the uniform block
	Params() GPUMaterialParams
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// New materials are fully opaque, untextured and dirty.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		opacity: 1.0,
		dirty:   true,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Texture() *common.Texture {
	return m.texture
}

func (m *material) SetTexture(t *common.Texture) {
	m.texture = t
	m.dirty = true
}

func (m *material) Opacity() float64 {
	return m.opacity
}

func (m *material) SetOpacity(opacity float64) {
	m.opacity = common.Clamp(opacity, 0, 1)
	m.dirty = true
}

func (m *material) Reset() {
	m.texture = nil
	m.opacity = 1.0
	m.dirty = true
}

func (m *material) Dirty() bool {
	return m.dirty
}

func (m *material) MarkDirty() {
	m.dirty = true
}

func (m *material) ClearDirty() {
	m.dirty = false
}

func (m *material) Params() GPUMaterialParams {
	p := GPUMaterialParams{Opacity: float32(m.opacity)}
	if m.texture != nil && !m.texture.Staging.Empty() {
		p.Textured = 1
	}
	return p
}
