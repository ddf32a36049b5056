package renderer

import (
	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/model"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl64"
)

// RendererBackendType identifies the rasterizer implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeCustom is any caller-supplied RendererBackend.
	BackendTypeCustom RendererBackendType = iota

	// BackendTypeLog records draw calls to the package logger instead of rasterizing.
	BackendTypeLog
)

// FrameView describes one sub-view pass handed to the backend.
type FrameView struct {
	// Index is the sub-view index within the frame.
	Index int
	// Viewport is the sub-view's rectangle on the output surface.
	Viewport common.Viewport
	// Projection is the sub-view projection matrix.
	Projection mgl64.Mat4
	// View is the world-to-eye matrix, expressed in the scene's reference frame.
	View mgl64.Mat4
}

// DrawCommand is a single draw of one object within a sub-view pass.
type DrawCommand struct {
	// ObjectID is the scene ID of the object being drawn.
	ObjectID uint64
	// Mesh is the object's geometry.
	Mesh model.Model
	// Material is the object's surface. Backends upload Params and the texture when Dirty is set.
	Material material.Material
	// Dirty mirrors Material.Dirty at the time the command was built.
	Dirty bool
	// Params is the material uniform block.
	Params material.GPUMaterialParams
	// Textured reports whether the material has a bound texture.
	Textured bool
	// Sampler is the bound texture's sampler configuration, zero when not Textured.
	Sampler common.SamplerStagingData
	// Model is the object-to-reference-frame matrix.
	Model mgl64.Mat4
	// MVP is Projection * View * Model.
	MVP mgl64.Mat4
}

// RendererBackend is the rasterizer boundary. The Renderer calls BeginFrame once per
// sub-view, DrawObject for each visible object in draw order, then EndFrame.
type RendererBackend interface {
	// BeginFrame starts a sub-view pass.
	//
	// Parameters:
	//   - view: the sub-view description
	//
	// Returns:
	//   - error: an error if the pass could not start
	BeginFrame(view FrameView) error

	// DrawObject encodes a single draw within the current pass.
	//
	// Parameters:
	//   - cmd: the draw description
	//
	// Returns:
	//   - error: an error if the draw failed
	DrawObject(cmd DrawCommand) error

	// EndFrame finishes the current pass.
	//
	// Returns:
	//   - error: an error if submission failed
	EndFrame() error
}
