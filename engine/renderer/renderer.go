package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/game_object"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-pano/engine/scene"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	frames uint64
}

// Renderer defines the interface for the render pass.
//
// For every host-provided view it computes a view matrix in the scene's reference frame,
// draws the scene's enabled objects in ascending render order through the backend, and
// once every view is drawn clears the material dirty flags. A backend error aborts the
// frame, leaving dirty flags set so the next frame re-uploads.
type Renderer interface {
	// Render draws s once per view.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - views: the host's per-sub-view camera descriptions
	//
	// Returns:
	//   - error: the first backend error, wrapped with the failing view index
	Render(s scene.Scene, views []common.RenderView) error

	// Backend returns the rasterizer the renderer draws through.
	//
	// Returns:
	//   - RendererBackend: the backend
	Backend() RendererBackend

	// BackendType returns the kind of backend in use.
	//
	// Returns:
	//   - RendererBackendType: the backend type
	BackendType() RendererBackendType

	// Frames returns the number of frames rendered successfully.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer of the given backend type. BackendTypeCustom requires
// WithBackend; NewRenderer panics if no backend is configured.
//
// Parameters:
//   - backendType: the rasterizer implementation to use
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
func NewRenderer(backendType RendererBackendType, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
	}
	for _, opt := range options {
		opt(r)
	}

	if r.backend == nil {
		switch backendType {
		case BackendTypeLog:
			r.backend = newLogRendererBackend()
		default:
			panic("renderer: NewRenderer requires WithBackend for a custom backend")
		}
	}
	return r
}

func (r *renderer) Backend() RendererBackend {
	return r.backend
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *renderer) Render(s scene.Scene, views []common.RenderView) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s == nil || !s.Active() {
		return nil
	}

	frame := s.FramePose()
	objects := s.DrawList()
	for i, v := range views {
		if err := r.renderView(i, v, frame, objects); err != nil {
			return fmt.Errorf("renderer: view %d: %w", i, err)
		}
	}

	// clear only after every view saw the dirty state
	for _, obj := range objects {
		if mat := obj.Material(); mat != nil {
			mat.ClearDirty()
		}
	}
	r.frames++
	return nil
}

// renderView draws objects for a single sub-view.
func (r *renderer) renderView(index int, v common.RenderView, frame common.Pose, objects []game_object.GameObject) error {
	eye := v.Pose.Relative(frame)
	view := eye.Inverse().Matrix()
	fv := FrameView{
		Index:      index,
		Viewport:   v.Viewport,
		Projection: v.Projection,
		View:       view,
	}
	if err := r.backend.BeginFrame(fv); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}

	viewProj := v.Projection.Mul4(view)
	for _, obj := range objects {
		mesh := obj.Model()
		if mesh == nil {
			continue
		}
		modelMatrix := obj.ModelMatrix()
		cmd := DrawCommand{
			ObjectID: obj.ID(),
			Mesh:     mesh,
			Model:    modelMatrix,
			MVP:      viewProj.Mul4(modelMatrix),
		}
		if mat := obj.Material(); mat != nil {
			cmd.Material = mat
			cmd.Dirty = mat.Dirty()
			cmd.Params = mat.Params()
			if tex := mat.Texture(); tex != nil {
				cmd.Sampler = tex.Sampler
				cmd.Textured = true
			}
		} else {
			cmd.Params = material.GPUMaterialParams{Opacity: 1}
		}
		if err := r.backend.DrawObject(cmd); err != nil {
			// the pass is abandoned; EndFrame still runs so the backend can release it
			_ = r.backend.EndFrame()
			return fmt.Errorf("draw object %d: %w", obj.ID(), err)
		}
	}

	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	return nil
}
