package camera

import (
	"github.com/Carmen-Shannon/oxy-pano/common"
)

// StateSubmitter is the host compositor's per-frame view-state sink.
type StateSubmitter interface {
	// SubmitFrameState hands the computed view state for one frame to the host.
	//
	// Parameters:
	//   - state: the view state for the frame
	SubmitFrameState(state common.ViewState)
}

// StateSubmitterFunc adapts a function to the StateSubmitter interface.
type StateSubmitterFunc func(state common.ViewState)

// SubmitFrameState calls f(state).
func (f StateSubmitterFunc) SubmitFrameState(state common.ViewState) {
	f(state)
}

// Publisher turns the fused eye state plus the host frame description into the view
// state submitted to the host, once per tick.
type Publisher interface {
	// Publish builds and submits the view state for frame. Unless the frame is strict,
	// each sub-view projection is rebuilt with the eye's field of view and an aspect
	// derived from its viewport; near, far and off-axis terms are preserved.
	//
	// Parameters:
	//   - frame: the host frame description
	//
	// Returns:
	//   - common.ViewState: the state that was submitted
	Publish(frame common.FrameState) common.ViewState
}

type publisher struct {
	eye       VirtualEye
	submitter StateSubmitter
}

var _ Publisher = &publisher{}

// NewPublisher creates a Publisher reading from eye and submitting to submitter.
// A nil submitter makes Publish compute the state without handing it anywhere.
//
// Parameters:
//   - eye: the fused virtual eye
//   - submitter: the host sink
//
// Returns:
//   - Publisher: the newly created publisher
func NewPublisher(eye VirtualEye, submitter StateSubmitter) Publisher {
	if eye == nil {
		panic("camera: NewPublisher requires a non-nil VirtualEye")
	}
	return &publisher{eye: eye, submitter: submitter}
}

func (p *publisher) Publish(frame common.FrameState) common.ViewState {
	state := common.ViewState{
		Time:     frame.Time,
		Pose:     p.eye.Pose(),
		SubViews: make([]common.SubView, len(frame.SubViews)),
	}
	for i, sv := range frame.SubViews {
		state.SubViews[i] = p.adjust(sv, frame.Strict)
	}
	if p.submitter != nil {
		p.submitter.SubmitFrameState(state)
	}
	return state
}

// adjust overrides the fov and aspect of a single sub-view projection.
func (p *publisher) adjust(sv common.SubView, strict bool) common.SubView {
	if strict {
		return sv
	}
	f, ok := common.DecomposePerspective(sv.Projection)
	if !ok {
		common.Logger().Debug("camera: passing through non-perspective projection")
		return sv
	}
	f.FovY = p.eye.Fov()
	f.Aspect = common.SafeAspect(sv.Viewport.Width, sv.Viewport.Height)
	sv.Projection = f.Matrix()
	return sv
}
