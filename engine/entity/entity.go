package entity

import (
	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/go-gl/mathgl/mgl64"
)

type entity struct {
	name        string
	position    mgl64.Vec3
	orientation mgl64.Quat

	cartographic    common.Cartographic
	hasCartographic bool
}

// Entity defines a positioned and oriented reference point in the Earth-centered
// (ECEF) frame. Panorama anchors are entities; the virtual eye is re-anchored to one at
// zero offset whenever a panorama is shown. Entities are immutable once built.
type Entity interface {
	// Name returns the entity's identifier.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Position returns the ECEF position in meters.
	//
	// Returns:
	//   - mgl64.Vec3: the position
	Position() mgl64.Vec3

	// Orientation returns the rotation from the entity's local frame into ECEF.
	//
	// Returns:
	//   - mgl64.Quat: the unit orientation
	Orientation() mgl64.Quat

	// Pose returns position and orientation together.
	//
	// Returns:
	//   - common.Pose: the entity pose
	Pose() common.Pose

	// Cartographic returns the geodetic position the entity was built from, if any.
	//
	// Returns:
	//   - common.Cartographic: the geodetic position
	//   - bool: false if the entity was not built from a geodetic position
	Cartographic() (common.Cartographic, bool)
}

var _ Entity = &entity{}

// NewEntity creates an Entity at the origin with identity orientation, then applies options.
//
// Parameters:
//   - options: functional options to configure the entity
//
// Returns:
//   - Entity: the newly created entity
func NewEntity(options ...EntityBuilderOption) Entity {
	e := &entity{
		orientation: mgl64.QuatIdent(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *entity) Name() string {
	return e.name
}

func (e *entity) Position() mgl64.Vec3 {
	return e.position
}

func (e *entity) Orientation() mgl64.Quat {
	return e.orientation
}

func (e *entity) Pose() common.Pose {
	return common.Pose{Position: e.position, Orientation: e.orientation}
}

func (e *entity) Cartographic() (common.Cartographic, bool) {
	return e.cartographic, e.hasCartographic
}

// PoseOf returns the pose of e, or the identity pose when e is nil.
//
// Parameters:
//   - e: the entity, may be nil
//
// Returns:
//   - common.Pose: the entity's pose or the identity pose
func PoseOf(e Entity) common.Pose {
	if e == nil {
		return common.IdentityPose()
	}
	return e.Pose()
}
