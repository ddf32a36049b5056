package game_object

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-pano/engine/model"
	"github.com/Carmen-Shannon/oxy-pano/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject()

	require.True(t, obj.Enabled())
	require.Equal(t, mgl64.QuatIdent(), obj.Rotation())
	require.Equal(t, mgl64.Vec3{1, 1, 1}, obj.Scale())
	require.Equal(t, mgl64.Ident4(), obj.ModelMatrix())
}

func TestBuilderOptions(t *testing.T) {
	mesh := model.NewSphere(model.WithSegments(4, 2))
	mat := material.NewMaterial()
	obj := NewGameObject(
		WithID(7),
		WithName("slot-1"),
		WithEnabled(false),
		WithModel(mesh),
		WithMaterial(mat),
		WithRenderOrder(1),
		WithPosition(mgl64.Vec3{1, 2, 3}),
		WithScale(mgl64.Vec3{-1, 1, 1}),
	)

	require.Equal(t, uint64(7), obj.ID())
	require.Equal(t, "slot-1", obj.Name())
	require.False(t, obj.Enabled())
	require.Same(t, mesh, obj.Model())
	require.Same(t, mat, obj.Material())
	require.Equal(t, 1, obj.RenderOrder())
}

func TestModelMatrixMirrorsAndYaws(t *testing.T) {
	obj := NewGameObject(WithScale(mgl64.Vec3{-1, 1, 1}))
	obj.SetYaw(math.Pi / 2)

	// x is mirrored first, then rotated a quarter turn about Z
	p := obj.ModelMatrix().Mul4x1(mgl64.Vec4{1, 0, 0, 1})
	require.InDelta(t, 0.0, p[0], 1e-12)
	require.InDelta(t, -1.0, p[1], 1e-12)
	require.InDelta(t, 0.0, p[2], 1e-12)
}

func TestModelMatrixTranslation(t *testing.T) {
	obj := NewGameObject(WithPosition(mgl64.Vec3{5, 0, 0}), WithScale(mgl64.Vec3{2, 2, 2}))

	p := obj.ModelMatrix().Mul4x1(mgl64.Vec4{1, 1, 1, 1})
	require.Equal(t, mgl64.Vec4{7, 2, 2, 1}, p)
}

func TestSetRotationIgnoresMalformed(t *testing.T) {
	obj := NewGameObject()
	obj.SetRotation(mgl64.Quat{W: math.Inf(1)})
	require.Equal(t, mgl64.QuatIdent(), obj.Rotation())

	obj.SetRotation(mgl64.Quat{W: 0, V: mgl64.Vec3{0, 0, 3}})
	require.InDelta(t, 1.0, obj.Rotation().V[2], 1e-12)
}
