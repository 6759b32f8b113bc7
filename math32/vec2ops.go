// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// This file adds value-semantics helpers for Vector2 on top of the
// existing pointer-receiver, in-place API. The physics packages pass
// Vector2 around by value almost everywhere (small, comparable struct)
// so plain free functions read better there than the fluent Set*-style
// methods above.

// AddVec2 returns a + b.
func AddVec2(a, b Vector2) Vector2 {
	return Vector2{a.X + b.X, a.Y + b.Y}
}

// SubVec2 returns a - b.
func SubVec2(a, b Vector2) Vector2 {
	return Vector2{a.X - b.X, a.Y - b.Y}
}

// NegVec2 returns -a.
func NegVec2(a Vector2) Vector2 {
	return Vector2{-a.X, -a.Y}
}

// ScaleVec2 returns a * s.
func ScaleVec2(a Vector2, s float32) Vector2 {
	return Vector2{a.X * s, a.Y * s}
}

// DotVec2 returns the dot product of a and b.
func DotVec2(a, b Vector2) float32 {
	return a.X*b.X + a.Y*b.Y
}

// CrossVec2 returns the 2D (scalar) cross product of a and b.
func CrossVec2(a, b Vector2) float32 {
	return a.X*b.Y - a.Y*b.X
}

// CrossVecScalar returns the cross product of vector a and scalar s,
// i.e. a rotation of a by -90 degrees scaled by s.
func CrossVecScalar(a Vector2, s float32) Vector2 {
	return Vector2{s * a.Y, -s * a.X}
}

// CrossScalarVec returns the cross product of scalar s and vector a.
func CrossScalarVec(s float32, a Vector2) Vector2 {
	return Vector2{-s * a.Y, s * a.X}
}

// LengthVec2 returns the length of a.
func LengthVec2(a Vector2) float32 {
	return Sqrt(a.X*a.X + a.Y*a.Y)
}

// LengthSqVec2 returns the squared length of a.
func LengthSqVec2(a Vector2) float32 {
	return a.X*a.X + a.Y*a.Y
}

// NormalizeVec2 returns a normalized, and its original length.
// The zero vector is returned unchanged with length 0.
func NormalizeVec2(a Vector2) (Vector2, float32) {
	length := LengthVec2(a)
	if length < 1.1920929e-7 {
		return Vector2{}, 0
	}
	inv := 1.0 / length
	return Vector2{a.X * inv, a.Y * inv}, length
}

// LerpVec2 returns the linear interpolation between a and b at t in [0,1].
func LerpVec2(a, b Vector2, t float32) Vector2 {
	return Vector2{a.X + t*(b.X-a.X), a.Y + t*(b.Y-a.Y)}
}

// MinVec2 returns the component-wise minimum of a and b.
func MinVec2(a, b Vector2) Vector2 {
	return Vector2{Min(a.X, b.X), Min(a.Y, b.Y)}
}

// MaxVec2 returns the component-wise maximum of a and b.
func MaxVec2(a, b Vector2) Vector2 {
	return Vector2{Max(a.X, b.X), Max(a.Y, b.Y)}
}
