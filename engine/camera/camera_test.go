package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-pano/engine/entity"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestNewVirtualEyeDefaults(t *testing.T) {
	e := NewVirtualEye()

	require.Equal(t, DefaultFov, e.Fov())
	require.Equal(t, DefaultMinFov, e.MinFov())
	require.Equal(t, DefaultMaxFov, e.MaxFov())
	require.Equal(t, mgl64.QuatIdent(), e.Orientation())
	require.Nil(t, e.Anchor())
	require.Equal(t, mgl64.Vec3{}, e.Position())
}

func TestVirtualEyeFovClamped(t *testing.T) {
	e := NewVirtualEye()

	e.SetFov(10)
	require.Equal(t, DefaultMaxFov, e.Fov())
	e.SetFov(-10)
	require.Equal(t, DefaultMinFov, e.Fov())
	e.SetFov(math.NaN())
	require.Equal(t, DefaultMinFov, e.Fov())
}

func TestVirtualEyeInvertedBounds(t *testing.T) {
	e := NewVirtualEye(WithFovBounds(2, 1), WithFov(3))

	require.Equal(t, 1.0, e.MinFov())
	require.Equal(t, 2.0, e.MaxFov())
	require.Equal(t, 2.0, e.Fov())
}

func TestVirtualEyeRejectsMalformedOrientation(t *testing.T) {
	e := NewVirtualEye()

	require.False(t, e.SetOrientation(mgl64.Quat{}))
	require.False(t, e.SetOrientation(mgl64.Quat{W: math.NaN()}))
	require.Equal(t, mgl64.QuatIdent(), e.Orientation())

	require.True(t, e.SetOrientation(mgl64.Quat{W: 2}))
	require.InDelta(t, 1.0, e.Orientation().Len(), 1e-12)
}

func TestVirtualEyeFollowsAnchor(t *testing.T) {
	e := NewVirtualEye()
	anchor := entity.NewEntity(entity.WithPosition(mgl64.Vec3{1, 2, 3}))

	e.SetAnchor(anchor)
	require.Equal(t, mgl64.Vec3{1, 2, 3}, e.Position())
	require.Equal(t, mgl64.Vec3{1, 2, 3}, e.Pose().Position)

	e.SetAnchor(nil)
	require.Equal(t, mgl64.Vec3{}, e.Position())
}
