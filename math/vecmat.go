// math/vecmat.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import gomath "math"

///////////////////////////////////////////////////////////////////////////
// point 3f

// Various useful functions for arithmetic with 3D points/vectors.
// Names are brief in order to avoid clutter when they're used.

// a+b
func Add3f(a [3]float32, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// a-b
func Sub3f(a [3]float32, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// a*s
func Scale3f(a [3]float32, s float32) [3]float32 {
	return [3]float32{s * a[0], s * a[1], s * a[2]}
}

func Dot3f(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func Cross3f(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0]}
}

// Linearly interpolate x of the way between a and b. x==0 corresponds to
// a, x==1 corresponds to b, etc.
func Lerp3f(x float32, a [3]float32, b [3]float32) [3]float32 {
	return [3]float32{(1-x)*a[0] + x*b[0], (1-x)*a[1] + x*b[1], (1-x)*a[2] + x*b[2]}
}

// Length of v
func Length3f(v [3]float32) float32 {
	return Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Distance between two points
func Distance3f(a [3]float32, b [3]float32) float32 {
	return Length3f(Sub3f(a, b))
}

// Normalizes the given vector. Returns the zero vector if the vector's
// length is zero; callers that care about the degenerate case should
// check the length themselves first.
func Normalize3f(a [3]float32) [3]float32 {
	l := Length3f(a)
	if l == 0 {
		return [3]float32{0, 0, 0}
	}
	return Scale3f(a, 1/l)
}

// Equivalent to acos(Dot(a, b)) for unit vectors, but more numerically
// stable. via http://www.plunk.org/~hatch/rightway.html
func AngleBetween3f(v1, v2 [3]float32) float32 {
	asin := func(a float32) float32 {
		return float32(gomath.Asin(float64(Clamp(a, -1, 1))))
	}

	if Dot3f(v1, v2) < 0 {
		return gomath.Pi - 2*asin(Length3f(Add3f(v1, v2))/2)
	} else {
		return 2 * asin(Length3f(Sub3f(v2, v1))/2)
	}
}

///////////////////////////////////////////////////////////////////////////
// 3x3 matrix

type Matrix3 [3][3]float32

func MakeMatrix3(m00, m01, m02, m10, m11, m12, m20, m21, m22 float32) Matrix3 {
	return [3][3]float32{
		[3]float32{m00, m01, m02},
		[3]float32{m10, m11, m12},
		[3]float32{m20, m21, m22}}
}

func Identity3x3() Matrix3 {
	var m Matrix3
	m[0][0] = 1
	m[1][1] = 1
	m[2][2] = 1
	return m
}

func (m Matrix3) PostMultiply(m2 Matrix3) Matrix3 {
	var result Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			result[i][j] = m[i][0]*m2[0][j] + m[i][1]*m2[1][j] + m[i][2]*m2[2][j]
		}
	}
	return result
}

func (m Matrix3) TransformVector(v [3]float32) [3]float32 {
	return [3]float32{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// RotationPRH returns the matrix that rotates aircraft-local coordinates
// (+x right, +y up, +z forward) into world coordinates, given pitch, roll,
// and heading in degrees. Heading 0 is +z, heading 90 is +x; positive
// pitch raises the nose; positive roll drops the right wing. The rotations
// compose heading-outermost: world = H * P * R * local.
func RotationPRH(pitch, roll, heading float32) Matrix3 {
	sp, cp := Sin(Radians(pitch)), Cos(Radians(pitch))
	sr, cr := Sin(Radians(roll)), Cos(Radians(roll))
	sh, ch := Sin(Radians(heading)), Cos(Radians(heading))

	rh := MakeMatrix3(
		ch, 0, sh,
		0, 1, 0,
		-sh, 0, ch)
	rp := MakeMatrix3(
		1, 0, 0,
		0, cp, sp,
		0, -sp, cp)
	rr := MakeMatrix3(
		cr, sr, 0,
		-sr, cr, 0,
		0, 0, 1)

	return rh.PostMultiply(rp).PostMultiply(rr)
}
