package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WGS84 ellipsoid constants.
const (
	WGS84SemiMajorAxis = 6378137.0
	WGS84Flattening    = 1.0 / 298.257223563
)

// wgs84EccentricitySquared is e² = f(2 - f).
var wgs84EccentricitySquared = WGS84Flattening * (2 - WGS84Flattening)

// Cartographic is a geodetic position on the WGS84 ellipsoid.
type Cartographic struct {
	Longitude float64 // degrees, east positive
	Latitude  float64 // degrees, north positive
	Height    float64 // meters above the ellipsoid
}

// HeadingPitchRoll is a rotation expressed in a local East-North-Up frame, in radians.
// Heading rotates about the negative up axis, pitch about the negative north axis,
// roll about the east axis.
type HeadingPitchRoll struct {
	Heading float64
	Pitch   float64
	Roll    float64
}

// ToECEF converts the geodetic position to Earth-Centered Earth-Fixed coordinates in meters.
//
// Returns:
//   - mgl64.Vec3: the ECEF position
func (c Cartographic) ToECEF() mgl64.Vec3 {
	lon := mgl64.DegToRad(c.Longitude)
	lat := mgl64.DegToRad(c.Latitude)
	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	sinLon, cosLon := math.Sin(lon), math.Cos(lon)

	// prime vertical radius of curvature
	n := WGS84SemiMajorAxis / math.Sqrt(1-wgs84EccentricitySquared*sinLat*sinLat)

	return mgl64.Vec3{
		(n + c.Height) * cosLat * cosLon,
		(n + c.Height) * cosLat * sinLon,
		(n*(1-wgs84EccentricitySquared) + c.Height) * sinLat,
	}
}

// EastNorthUp returns the rotation taking local ENU axes (x east, y north, z up) into ECEF.
//
// Returns:
//   - mgl64.Quat: the unit ENU orientation quaternion
func (c Cartographic) EastNorthUp() mgl64.Quat {
	lon := mgl64.DegToRad(c.Longitude)
	lat := mgl64.DegToRad(c.Latitude)
	sinLat, cosLat := math.Sin(lat), math.Cos(lat)
	sinLon, cosLon := math.Sin(lon), math.Cos(lon)

	east := mgl64.Vec3{-sinLon, cosLon, 0}
	north := mgl64.Vec3{-sinLat * cosLon, -sinLat * sinLon, cosLat}
	up := mgl64.Vec3{cosLat * cosLon, cosLat * sinLon, sinLat}

	return mgl64.Mat4ToQuat(mgl64.Mat3FromCols(east, north, up).Mat4()).Normalize()
}

// Orientation returns the ECEF orientation of a local frame rotated by hpr relative to
// the ENU frame at c. A zero HeadingPitchRoll yields EastNorthUp.
//
// Parameters:
//   - hpr: the local rotation
//
// Returns:
//   - mgl64.Quat: the unit orientation quaternion
func (c Cartographic) Orientation(hpr HeadingPitchRoll) mgl64.Quat {
	heading := mgl64.QuatRotate(-hpr.Heading, mgl64.Vec3{0, 0, 1})
	pitch := mgl64.QuatRotate(-hpr.Pitch, mgl64.Vec3{0, 1, 0})
	roll := mgl64.QuatRotate(hpr.Roll, mgl64.Vec3{1, 0, 0})
	return c.EastNorthUp().Mul(heading.Mul(pitch).Mul(roll)).Normalize()
}
