package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"github.com/Carmen-Shannon/oxy-pano/engine/model"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl64"
)

type gameObject struct {
	id          uint64
	name        string
	enabled     atomic.Bool
	mdl         model.Model
	mat         material.Material
	renderOrder int

	position mgl64.Vec3
	rotation mgl64.Quat
	scale    mgl64.Vec3
}

// GameObject defines the interface for a drawable scene entity: a mesh, a material and a
// transform relative to the scene's reference frame.
//
// Transforms and materials are owned by the viewer loop; only the enabled flag is safe to
// toggle from other goroutines.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's debug name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the mesh associated with this object, or nil if not set.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Material returns the material associated with this object, or nil if not set.
	//
	// Returns:
	//   - material.Material: the associated material or nil
	Material() material.Material

	// RenderOrder returns the draw priority. Lower values draw first.
	//
	// Returns:
	//   - int: the render order
	RenderOrder() int

	// Position returns the object's translation in the scene reference frame.
	//
	// Returns:
	//   - mgl64.Vec3: the position
	Position() mgl64.Vec3

	// Rotation returns the object's rotation in the scene reference frame.
	//
	// Returns:
	//   - mgl64.Quat: a unit quaternion
	Rotation() mgl64.Quat

	// Scale returns the object's per-axis scale. A negative component mirrors the mesh.
	//
	// Returns:
	//   - mgl64.Vec3: the scale
	Scale() mgl64.Vec3

	// ModelMatrix composes translation, rotation and scale into a column-major matrix.
	//
	// Returns:
	//   - mgl64.Mat4: T * R * S
	ModelMatrix() mgl64.Mat4

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetModel assigns a mesh to this object.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// SetMaterial assigns a material to this object.
	//
	// Parameters:
	//   - m: the Material to associate
	SetMaterial(m material.Material)

	// SetRenderOrder sets the draw priority.
	//
	// Parameters:
	//   - order: the render order, lower draws first
	SetRenderOrder(order int)

	// SetPosition sets the translation.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p mgl64.Vec3)

	// SetRotation sets the rotation. Malformed quaternions are ignored.
	//
	// Parameters:
	//   - q: the new rotation
	SetRotation(q mgl64.Quat)

	// SetYaw replaces the rotation with a rotation of angle radians about the local Z axis.
	//
	// Parameters:
	//   - angle: the yaw in radians
	SetYaw(angle float64)

	// SetScale sets the per-axis scale.
	//
	// Parameters:
	//   - s: the new scale
	SetScale(s mgl64.Vec3)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Objects start enabled at the origin with unit scale.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		rotation: mgl64.QuatIdent(),
		scale:    mgl64.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Material() material.Material {
	return g.mat
}

func (g *gameObject) RenderOrder() int {
	return g.renderOrder
}

func (g *gameObject) Position() mgl64.Vec3 {
	return g.position
}

func (g *gameObject) Rotation() mgl64.Quat {
	return g.rotation
}

func (g *gameObject) Scale() mgl64.Vec3 {
	return g.scale
}

func (g *gameObject) ModelMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(g.position[0], g.position[1], g.position[2])
	s := mgl64.Scale3D(g.scale[0], g.scale[1], g.scale[2])
	return t.Mul4(g.rotation.Mat4()).Mul4(s)
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) {
	g.mdl = m
}

func (g *gameObject) SetMaterial(m material.Material) {
	g.mat = m
}

func (g *gameObject) SetRenderOrder(order int) {
	g.renderOrder = order
}

func (g *gameObject) SetPosition(p mgl64.Vec3) {
	g.position = p
}

func (g *gameObject) SetRotation(q mgl64.Quat) {
	if !common.ValidQuat(q) {
		return
	}
	g.rotation = q.Normalize()
}

func (g *gameObject) SetYaw(angle float64) {
	g.rotation = mgl64.QuatRotate(angle, mgl64.Vec3{0, 0, 1})
}

func (g *gameObject) SetScale(s mgl64.Vec3) {
	g.scale = s
}
