// package common contains plain structs and math helpers shared across the viewer. They are not interface-wrapped,
// they describe the data exchanged with the host runtime each frame.
package common

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Viewport is a sub-view rectangle in pixels.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// SubView is one per-eye rendering description supplied by the host: a monocular frame has
// one, a stereo frame has two.
type SubView struct {
	// Viewport is the sub-view's rectangle on the output surface.
	Viewport Viewport
	// Projection is the column-major projection matrix for the sub-view.
	Projection mgl64.Mat4
}

// FrameState is the per-tick description the host hands to the viewer.
type FrameState struct {
	// Time is the frame timestamp.
	Time time.Time
	// SubViews lists the sub-views for this frame.
	SubViews []SubView
	// Strict is set when the host requires its own projection to be used verbatim.
	Strict bool
}

// Pose is a position and orientation in a world reference frame.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// IdentityPose returns a pose at the origin with no rotation.
func IdentityPose() Pose {
	return Pose{Orientation: mgl64.QuatIdent()}
}

// ViewState is the per-tick state published to the host compositor.
type ViewState struct {
	// Time is the frame timestamp the state was computed for.
	Time time.Time
	// Pose is the fused virtual-eye pose used as the frame's user pose.
	Pose Pose
	// SubViews holds the (possibly adjusted) projection for each host sub-view.
	SubViews []SubView
}

// RenderView is the per-sub-view camera description the host supplies at render time.
type RenderView struct {
	Viewport   Viewport
	Projection mgl64.Mat4
	Pose       Pose
}

// Matrix returns the pose as a column-major rigid transform (translation * rotation).
func (p Pose) Matrix() mgl64.Mat4 {
	t := mgl64.Translate3D(p.Position[0], p.Position[1], p.Position[2])
	return t.Mul4(p.Orientation.Mat4())
}

// Inverse returns the pose that undoes p.
func (p Pose) Inverse() Pose {
	inv := p.Orientation.Inverse()
	return Pose{
		Position:    inv.Rotate(p.Position.Mul(-1)),
		Orientation: inv,
	}
}

// Relative expresses p in the local frame of parent: parent⁻¹ * p.
//
// Parameters:
//   - parent: the reference pose
//
// Returns:
//   - Pose: p relative to parent
func (p Pose) Relative(parent Pose) Pose {
	inv := parent.Inverse()
	return Pose{
		Position:    inv.Orientation.Rotate(p.Position).Add(inv.Position),
		Orientation: inv.Orientation.Mul(p.Orientation),
	}
}
