package camera

import (
	"time"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/entity"
	"github.com/Carmen-Shannon/oxy-pano/engine/input"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultZoomScale is the field-of-view change, in radians, per wheel or pinch unit.
const DefaultZoomScale = 0.02

var (
	// localUp is the up axis of an anchor's local (ENU) frame.
	localUp = mgl64.Vec3{0, 0, 1}
	// localRight is the eye's local right axis.
	localRight = mgl64.Vec3{1, 0, 0}
)

// fusionController is the single implementation of FusionController.
type fusionController struct {
	eye      VirtualEye
	gestures input.GestureSource
	device   OrientationSource

	zoomScale float64
	pitchDrag bool
}

var _ FusionController = &fusionController{}

// NewFusionController creates a controller driving eye from gestures and an optional
// device orientation source. Panics if eye or gestures is nil.
//
// Parameters:
//   - eye: the virtual eye to drive
//   - gestures: the host gesture aggregation query
//   - options: functional options to configure the controller
//
// Returns:
//   - FusionController: the newly created controller
func NewFusionController(eye VirtualEye, gestures input.GestureSource, options ...FusionControllerOption) FusionController {
	if eye == nil {
		panic("camera: NewFusionController requires a non-nil VirtualEye")
	}
	if gestures == nil {
		panic("camera: NewFusionController requires a non-nil GestureSource")
	}
	fc := &fusionController{
		eye:       eye,
		gestures:  gestures,
		zoomScale: DefaultZoomScale,
	}
	for _, option := range options {
		option(fc)
	}
	return fc
}

func (fc *fusionController) Eye() VirtualEye {
	return fc.eye
}

func (fc *fusionController) ZoomScale() float64 {
	return fc.zoomScale
}

func (fc *fusionController) PitchDragEnabled() bool {
	return fc.pitchDrag
}

func (fc *fusionController) SetOrientationSource(src OrientationSource) {
	fc.device = src
}

func (fc *fusionController) Update(t time.Time, viewport common.Viewport) {
	snap := input.TakeSnapshot(fc.gestures)

	sensed := fc.applyDeviceOrientation(t)
	fc.applyZoom(snap)
	if !sensed {
		fc.applyDrag(snap.Drag, viewport)
	}
}

// applyDeviceOrientation copies the sensor reading into the eye.
// Returns false when no usable reading exists.
func (fc *fusionController) applyDeviceOrientation(t time.Time) bool {
	if fc.device == nil {
		return false
	}
	q, ok := fc.device.UserOrientation(t)
	if !ok {
		return false
	}
	if !fc.eye.SetOrientation(q) {
		common.Logger().Debug("camera: ignoring malformed device orientation",
			"w", q.W, "x", q.V[0], "y", q.V[1], "z", q.V[2])
		return false
	}
	return true
}

// applyZoom folds wheel and pinch deltas into the field of view.
func (fc *fusionController) applyZoom(snap input.Snapshot) {
	wheel := snap.Wheel.Delta
	pinch := snap.Pinch.Delta
	if wheel == 0 && pinch == 0 {
		return
	}
	fov := fc.eye.Fov()
	if common.IsFinite(wheel) {
		fov -= wheel * fc.zoomScale
	}
	if common.IsFinite(pinch) {
		fov -= pinch * fc.zoomScale
	}
	fc.eye.SetFov(fov)
}

// applyDrag yaws the eye about the anchor's local up axis in proportion to the
// horizontal drag distance. The rotation is computed relative to the anchor frame so
// that dragging always turns around the panorama's own vertical.
// Both yaw and pitch scale by the eye's vertical field of view, so on a landscape
// viewport a full-width drag turns by fov rather than by the horizontal field of view.
func (fc *fusionController) applyDrag(drag input.Gesture, viewport common.Viewport) {
	if !drag.Active || viewport.Width <= 0 {
		return
	}
	if !common.IsFinite(drag.DeltaX) || !common.IsFinite(drag.DeltaY) {
		return
	}

	fov := fc.eye.Fov()
	yaw := fov * (drag.DeltaX / viewport.Width)
	pitch := 0.0
	if viewport.Height > 0 {
		pitch = fov * (drag.DeltaY / viewport.Height)
	}
	if yaw == 0 && (pitch == 0 || !fc.pitchDrag) {
		return
	}

	frame := entity.PoseOf(fc.eye.Anchor()).Orientation
	relative := frame.Inverse().Mul(fc.eye.Orientation())
	relative = mgl64.QuatRotate(yaw, localUp).Mul(relative)
	if fc.pitchDrag {
		relative = relative.Mul(mgl64.QuatRotate(pitch, localRight))
	}
	fc.eye.SetOrientation(frame.Mul(relative))
}

