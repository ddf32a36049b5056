package entity

import (
	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/go-gl/mathgl/mgl64"
)

// EntityBuilderOption is a functional option for configuring an Entity.
type EntityBuilderOption func(*entity)

// WithName sets the entity's identifier.
//
// Parameters:
//   - name: the identifier
//
// Returns:
//   - EntityBuilderOption: functional option to set the name
func WithName(name string) EntityBuilderOption {
	return func(e *entity) {
		e.name = name
	}
}

// WithPosition sets the ECEF position directly.
//
// Parameters:
//   - p: the position in meters
//
// Returns:
//   - EntityBuilderOption: functional option to set the position
func WithPosition(p mgl64.Vec3) EntityBuilderOption {
	return func(e *entity) {
		e.position = p
	}
}

// WithOrientation sets the orientation directly. The quaternion is normalized; invalid
// quaternions are ignored.
//
// Parameters:
//   - q: the orientation
//
// Returns:
//   - EntityBuilderOption: functional option to set the orientation
func WithOrientation(q mgl64.Quat) EntityBuilderOption {
	return func(e *entity) {
		if common.ValidQuat(q) {
			e.orientation = q.Normalize()
		}
	}
}

// WithCartographic places the entity at a geodetic position and orients it with the local
// East-North-Up frame rotated by hpr.
//
// Parameters:
//   - c: the geodetic position
//   - hpr: rotation relative to the local ENU frame
//
// Returns:
//   - EntityBuilderOption: functional option to set position and orientation
func WithCartographic(c common.Cartographic, hpr common.HeadingPitchRoll) EntityBuilderOption {
	return func(e *entity) {
		e.cartographic = c
		e.hasCartographic = true
		e.position = c.ToECEF()
		e.orientation = c.Orientation(hpr)
	}
}
