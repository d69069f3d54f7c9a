// math/math_test.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestNormalize3f(t *testing.T) {
	v := Normalize3f([3]float32{3, 0, 4})
	if Abs(Length3f(v)-1) > 1e-6 {
		t.Errorf("got length %v for normalized vector, expected 1", Length3f(v))
	}
	if Abs(v[0]-0.6) > 1e-6 || v[1] != 0 || Abs(v[2]-0.8) > 1e-6 {
		t.Errorf("got %v, expected (0.6, 0, 0.8)", v)
	}

	// Degenerate case: zero vector normalizes to the zero vector.
	z := Normalize3f([3]float32{0, 0, 0})
	if z != [3]float32{0, 0, 0} {
		t.Errorf("got %v normalizing zero vector, expected zero vector", z)
	}
}

func TestCross3f(t *testing.T) {
	x := [3]float32{1, 0, 0}
	y := [3]float32{0, 1, 0}
	z := Cross3f(x, y)
	if z != [3]float32{0, 0, 1} {
		t.Errorf("got %v for x cross y, expected (0, 0, 1)", z)
	}
	if d := Dot3f(z, x); d != 0 {
		t.Errorf("cross product not orthogonal: dot %v", d)
	}
}

func TestRotationPRH(t *testing.T) {
	forward := [3]float32{0, 0, 1}
	up := [3]float32{0, 1, 0}
	right := [3]float32{1, 0, 0}

	// Identity orientation leaves the local axes unchanged.
	m := RotationPRH(0, 0, 0)
	if f := m.TransformVector(forward); Distance3f(f, forward) > 1e-6 {
		t.Errorf("got %v for forward at identity, expected %v", f, forward)
	}

	// Heading 90 turns forward to +x.
	m = RotationPRH(0, 0, 90)
	if f := m.TransformVector(forward); Distance3f(f, right) > 1e-6 {
		t.Errorf("got %v for forward at heading 90, expected %v", f, right)
	}

	// Pitch 90 turns forward straight up.
	m = RotationPRH(90, 0, 0)
	if f := m.TransformVector(forward); Distance3f(f, up) > 1e-6 {
		t.Errorf("got %v for forward at pitch 90, expected %v", f, up)
	}

	// Positive roll drops the right wing.
	m = RotationPRH(0, 30, 0)
	if r := m.TransformVector(right); r[1] >= 0 {
		t.Errorf("got %v for right wing at roll 30, expected negative y", r)
	}

	// Rotation preserves length.
	m = RotationPRH(17, -42, 201)
	v := m.TransformVector([3]float32{1, 2, 3})
	if Abs(Length3f(v)-Length3f([3]float32{1, 2, 3})) > 1e-5 {
		t.Errorf("rotation changed vector length: got %v", Length3f(v))
	}
}

func TestNormalizeHeading(t *testing.T) {
	for _, c := range []struct{ h, want float32 }{
		{0, 0}, {360, 0}, {-90, 270}, {450, 90}, {725, 5},
	} {
		if got := NormalizeHeading(c.h); Abs(got-c.want) > 1e-6 {
			t.Errorf("NormalizeHeading(%v) = %v, expected %v", c.h, got, c.want)
		}
	}
}

func TestHeadingDifference(t *testing.T) {
	for _, c := range []struct{ a, b, want float32 }{
		{10, 350, 20}, {0, 180, 180}, {90, 90, 0}, {270, 90, 180},
	} {
		if got := HeadingDifference(c.a, c.b); Abs(got-c.want) > 1e-6 {
			t.Errorf("HeadingDifference(%v, %v) = %v, expected %v", c.a, c.b, got, c.want)
		}
	}
}
