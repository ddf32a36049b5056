package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/entity"
	"github.com/go-gl/mathgl/mgl64"
)

// Default field-of-view settings, in radians.
const (
	DefaultFov    = math.Pi / 3
	DefaultMinFov = math.Pi / 8
	DefaultMaxFov = math.Pi - math.Pi/8
)

type virtualEye struct {
	orientation mgl64.Quat
	anchor      entity.Entity

	fov    float64
	minFov float64
	maxFov float64
}

// VirtualEye defines the simulated viewer. It has a single orientation and no
// translational freedom: its position is always that of the anchor entity of the
// currently shown panorama, at zero offset.
//
// Not safe for concurrent use; the eye is owned by the viewer loop.
type VirtualEye interface {
	// Orientation returns the eye's world orientation.
	//
	// Returns:
	//   - mgl64.Quat: a unit quaternion
	Orientation() mgl64.Quat

	// SetOrientation replaces the eye's orientation. The quaternion is normalized.
	// Malformed quaternions (non-finite or zero length) are ignored.
	//
	// Parameters:
	//   - q: the new orientation
	//
	// Returns:
	//   - bool: true if the orientation was applied
	SetOrientation(q mgl64.Quat) bool

	// Anchor returns the entity the eye is anchored to, or nil.
	//
	// Returns:
	//   - entity.Entity: the anchor or nil
	Anchor() entity.Entity

	// SetAnchor re-anchors the eye to an entity at zero offset. Pass nil to anchor at the origin.
	//
	// Parameters:
	//   - e: the anchor entity
	SetAnchor(e entity.Entity)

	// Position returns the anchor's position, or the origin when unanchored.
	//
	// Returns:
	//   - mgl64.Vec3: the eye position
	Position() mgl64.Vec3

	// Pose returns the eye position and orientation.
	//
	// Returns:
	//   - common.Pose: the eye pose
	Pose() common.Pose

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float64: the field of view
	Fov() float64

	// SetFov sets the field of view, clamped to [MinFov, MaxFov].
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float64)

	// MinFov returns the lower field-of-view bound.
	MinFov() float64

	// MaxFov returns the upper field-of-view bound.
	MaxFov() float64
}

var _ VirtualEye = &virtualEye{}

// NewVirtualEye creates a VirtualEye with identity orientation and the default field of view.
//
// Parameters:
//   - options: functional options to configure the eye
//
// Returns:
//   - VirtualEye: the newly created eye
func NewVirtualEye(options ...VirtualEyeBuilderOption) VirtualEye {
	e := &virtualEye{
		orientation: mgl64.QuatIdent(),
		fov:         DefaultFov,
		minFov:      DefaultMinFov,
		maxFov:      DefaultMaxFov,
	}
	for _, option := range options {
		option(e)
	}
	if e.minFov > e.maxFov {
		e.minFov, e.maxFov = e.maxFov, e.minFov
	}
	e.fov = common.Clamp(e.fov, e.minFov, e.maxFov)
	return e
}

func (e *virtualEye) Orientation() mgl64.Quat {
	return e.orientation
}

func (e *virtualEye) SetOrientation(q mgl64.Quat) bool {
	if !common.ValidQuat(q) {
		return false
	}
	e.orientation = q.Normalize()
	return true
}

func (e *virtualEye) Anchor() entity.Entity {
	return e.anchor
}

func (e *virtualEye) SetAnchor(a entity.Entity) {
	e.anchor = a
}

func (e *virtualEye) Position() mgl64.Vec3 {
	if e.anchor == nil {
		return mgl64.Vec3{}
	}
	return e.anchor.Position()
}

func (e *virtualEye) Pose() common.Pose {
	return common.Pose{Position: e.Position(), Orientation: e.orientation}
}

func (e *virtualEye) Fov() float64 {
	return e.fov
}

func (e *virtualEye) SetFov(fov float64) {
	e.fov = common.Clamp(fov, e.minFov, e.maxFov)
}

func (e *virtualEye) MinFov() float64 {
	return e.minFov
}

func (e *virtualEye) MaxFov() float64 {
	return e.maxFov
}
