package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PerspectiveFrustum describes the parameters recovered from an OpenGL-style perspective
// projection matrix. Off-axis terms are kept so that a rebuilt matrix matches the host's
// original frustum in everything except field of view and aspect ratio.
type PerspectiveFrustum struct {
	// FovY is the vertical field of view in radians.
	FovY float64
	// Aspect is the viewport aspect ratio (width / height).
	Aspect float64
	// Near is the near clipping plane distance.
	Near float64
	// Far is the far clipping plane distance, +Inf for an infinite projection.
	Far float64

	// offsetX and offsetY are the m[8] and m[9] skew terms of an off-axis frustum.
	offsetX float64
	offsetY float64
	// depthA and depthB are the m[10] and m[14] depth terms, copied through verbatim.
	depthA float64
	depthB float64
}

// DecomposePerspective recovers frustum parameters from a column-major perspective
// projection matrix. Matrices that are not perspective projections (orthographic,
// identity, degenerate focal terms) report ok == false and must be passed through untouched.
//
// Parameters:
//   - m: the projection matrix, column-major
//
// Returns:
//   - PerspectiveFrustum: the decomposed frustum
//   - bool: true if m is a usable perspective projection
func DecomposePerspective(m mgl64.Mat4) (PerspectiveFrustum, bool) {
	if m[11] != -1 || m[15] != 0 || m[0] == 0 || m[5] <= 0 {
		return PerspectiveFrustum{}, false
	}
	for _, v := range m {
		if !IsFinite(v) {
			return PerspectiveFrustum{}, false
		}
	}

	f := PerspectiveFrustum{
		FovY:    2 * math.Atan(1/m[5]),
		Aspect:  m[5] / m[0],
		offsetX: m[8],
		offsetY: m[9],
		depthA:  m[10],
		depthB:  m[14],
	}
	if d := m[10] - 1; d != 0 {
		f.Near = m[14] / d
	}
	if d := m[10] + 1; d != 0 {
		f.Far = m[14] / d
	} else {
		f.Far = math.Inf(1)
	}
	return f, true
}

// Matrix rebuilds the column-major projection matrix for the frustum. Only the focal terms
// (m[0], m[5]) are derived from FovY and Aspect; depth and off-axis terms are preserved.
//
// Returns:
//   - mgl64.Mat4: the projection matrix
func (f PerspectiveFrustum) Matrix() mgl64.Mat4 {
	focal := 1 / math.Tan(f.FovY/2)
	var m mgl64.Mat4
	m[0] = focal / f.Aspect
	m[5] = focal
	m[8] = f.offsetX
	m[9] = f.offsetY
	m[10] = f.depthA
	m[11] = -1
	m[14] = f.depthB
	return m
}
