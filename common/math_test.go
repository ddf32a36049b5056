package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func TestSafeAspect(t *testing.T) {
	require.Equal(t, 2.0, SafeAspect(200, 100))
	require.Equal(t, 1.0, SafeAspect(200, 0))
	require.Equal(t, 1.0, SafeAspect(0, 100))
	require.Equal(t, 1.0, SafeAspect(0, 0))
	require.Equal(t, 1.0, SafeAspect(-10, 100))
	require.Equal(t, 1.0, SafeAspect(math.Inf(1), 100))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 1.0, Clamp(0, 1, 2))
	require.Equal(t, 2.0, Clamp(5, 1, 2))
	require.Equal(t, 1.5, Clamp(1.5, 1, 2))
	require.Equal(t, 1.0, Clamp(math.NaN(), 1, 2))
	require.Equal(t, 2.0, Clamp(math.Inf(1), 1, 2))
}

func TestValidQuat(t *testing.T) {
	require.True(t, ValidQuat(mgl64.QuatIdent()))
	require.False(t, ValidQuat(mgl64.Quat{}))
	require.False(t, ValidQuat(mgl64.Quat{W: math.NaN()}))
	require.False(t, ValidQuat(mgl64.Quat{W: 1, V: mgl64.Vec3{math.Inf(-1), 0, 0}}))
}

func TestCoalesce(t *testing.T) {
	require.Equal(t, "b", Coalesce("", "b", "c"))
	require.Equal(t, 0, Coalesce(0, 0))
}
