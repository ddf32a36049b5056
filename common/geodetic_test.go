package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/require"
)

func requireVecNear(t *testing.T, want, got mgl64.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		require.InDelta(t, want[i], got[i], delta, "component %d: want %v got %v", i, want, got)
	}
}

func TestToECEFEquatorPrimeMeridian(t *testing.T) {
	p := Cartographic{}.ToECEF()
	requireVecNear(t, mgl64.Vec3{WGS84SemiMajorAxis, 0, 0}, p, 1e-6)
}

func TestToECEFNorthPole(t *testing.T) {
	p := Cartographic{Latitude: 90}.ToECEF()
	// semi-minor axis b = a(1 - f)
	b := WGS84SemiMajorAxis * (1 - WGS84Flattening)
	requireVecNear(t, mgl64.Vec3{0, 0, b}, p, 1e-6)
}

func TestToECEFHeight(t *testing.T) {
	base := Cartographic{Longitude: 10, Latitude: 20}.ToECEF()
	raised := Cartographic{Longitude: 10, Latitude: 20, Height: 100}.ToECEF()
	require.InDelta(t, 100, raised.Sub(base).Len(), 1e-6)
}

func TestEastNorthUpAxes(t *testing.T) {
	c := Cartographic{Longitude: 10, Latitude: 20}
	q := c.EastNorthUp()
	require.InDelta(t, 1.0, q.Len(), 1e-12)

	lon, lat := mgl64.DegToRad(10), mgl64.DegToRad(20)
	up := mgl64.Vec3{math.Cos(lat) * math.Cos(lon), math.Cos(lat) * math.Sin(lon), math.Sin(lat)}
	east := mgl64.Vec3{-math.Sin(lon), math.Cos(lon), 0}

	requireVecNear(t, up, q.Rotate(mgl64.Vec3{0, 0, 1}), 1e-9)
	requireVecNear(t, east, q.Rotate(mgl64.Vec3{1, 0, 0}), 1e-9)
}

func TestOrientationZeroHPRIsEastNorthUp(t *testing.T) {
	c := Cartographic{Longitude: 10, Latitude: 20}
	require.True(t, c.EastNorthUp().ApproxEqualThreshold(c.Orientation(HeadingPitchRoll{}), 1e-12))
}

func TestOrientationHeading(t *testing.T) {
	c := Cartographic{}
	// heading 90° turns the local x axis from east to south
	q := c.Orientation(HeadingPitchRoll{Heading: math.Pi / 2})
	south := c.EastNorthUp().Rotate(mgl64.Vec3{0, -1, 0})
	requireVecNear(t, south, q.Rotate(mgl64.Vec3{1, 0, 0}), 1e-9)
}
