// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Rotation represents a 2D rotation stored as its sine and cosine,
// avoiding repeated trigonometric calls during constraint solving.
type Rotation struct {
	Sin float32
	Cos float32
}

// NewRotation creates and returns a pointer to a new Rotation for the
// specified angle in radians.
func NewRotation(angle float32) *Rotation {

	r := new(Rotation)
	r.Set(angle)
	return r
}

// Set sets this rotation from an angle in radians.
// Returns the pointer to this updated rotation.
func (r *Rotation) Set(angle float32) *Rotation {

	r.Sin = Sin(angle)
	r.Cos = Cos(angle)
	return r
}

// Identity sets this rotation to the identity rotation.
// Returns the pointer to this updated rotation.
func (r *Rotation) Identity() *Rotation {

	r.Sin = 0
	r.Cos = 1
	return r
}

// Angle returns the angle in radians represented by this rotation.
func (r *Rotation) Angle() float32 {

	return Atan2(r.Sin, r.Cos)
}

// XAxis returns the rotated x-axis.
func (r *Rotation) XAxis() Vector2 {

	return Vector2{r.Cos, r.Sin}
}

// YAxis returns the rotated y-axis.
func (r *Rotation) YAxis() Vector2 {

	return Vector2{-r.Sin, r.Cos}
}

// Mul returns the rotation q * r (composing this rotation after r).
func (r *Rotation) Mul(q *Rotation) Rotation {

	return Rotation{
		Sin: r.Sin*q.Cos + r.Cos*q.Sin,
		Cos: r.Cos*q.Cos - r.Sin*q.Sin,
	}
}

// MulT returns the rotation rT * q (transpose of r composed with q), that
// is, the rotation by angle(q) - angle(r).
func (r *Rotation) MulT(q *Rotation) Rotation {

	return Rotation{
		Sin: r.Cos*q.Sin - r.Sin*q.Cos,
		Cos: r.Cos*q.Cos + r.Sin*q.Sin,
	}
}

// RotateVector rotates vector v by this rotation.
func (r *Rotation) RotateVector(v Vector2) Vector2 {

	return Vector2{r.Cos*v.X - r.Sin*v.Y, r.Sin*v.X + r.Cos*v.Y}
}

// InvRotateVector rotates vector v by the inverse of this rotation.
func (r *Rotation) InvRotateVector(v Vector2) Vector2 {

	return Vector2{r.Cos*v.X + r.Sin*v.Y, -r.Sin*v.X + r.Cos*v.Y}
}

// Transform represents a 2D rigid transform: a rotation followed by
// a translation.
type Transform struct {
	Position Vector2
	Rotation Rotation
}

// NewTransform creates and returns a pointer to a new identity Transform.
func NewTransform() *Transform {

	t := new(Transform)
	t.Identity()
	return t
}

// Identity sets this transform to the identity transform.
// Returns the pointer to this updated transform.
func (t *Transform) Identity() *Transform {

	t.Position.Set(0, 0)
	t.Rotation.Identity()
	return t
}

// TransformPoint applies this transform to a point.
func (t *Transform) TransformPoint(p Vector2) Vector2 {

	rotated := t.Rotation.RotateVector(p)
	return Vector2{rotated.X + t.Position.X, rotated.Y + t.Position.Y}
}

// InvTransformPoint applies the inverse of this transform to a point.
func (t *Transform) InvTransformPoint(p Vector2) Vector2 {

	local := Vector2{p.X - t.Position.X, p.Y - t.Position.Y}
	return t.Rotation.InvRotateVector(local)
}

// Mat22 is a 2x2 matrix, column major, used for polygon shapes and the
// contact solver's block Jacobian.
type Mat22 struct {
	Col1, Col2 Vector2
}

// NewMat22 creates and returns a pointer to a new identity Mat22.
func NewMat22() *Mat22 {

	m := new(Mat22)
	m.Identity()
	return m
}

// NewMat22Angle creates a rotation matrix for the given angle in radians.
func NewMat22Angle(angle float32) *Mat22 {

	c := Cos(angle)
	s := Sin(angle)
	return &Mat22{Vector2{c, s}, Vector2{-s, c}}
}

// Identity sets this matrix to the identity matrix.
// Returns the pointer to this updated matrix.
func (m *Mat22) Identity() *Mat22 {

	m.Col1.Set(1, 0)
	m.Col2.Set(0, 1)
	return m
}

// MulVec2 returns m * v.
func (m *Mat22) MulVec2(v Vector2) Vector2 {

	return Vector2{m.Col1.X*v.X + m.Col2.X*v.Y, m.Col1.Y*v.X + m.Col2.Y*v.Y}
}

// Transpose returns the transpose of this matrix.
func (m *Mat22) Transpose() Mat22 {

	return Mat22{Vector2{m.Col1.X, m.Col2.X}, Vector2{m.Col1.Y, m.Col2.Y}}
}

// Mul returns m * other.
func (m *Mat22) Mul(other *Mat22) Mat22 {

	return Mat22{m.MulVec2(other.Col1), m.MulVec2(other.Col2)}
}

// Add returns m + other.
func (m *Mat22) Add(other *Mat22) Mat22 {

	return Mat22{
		Vector2{m.Col1.X + other.Col1.X, m.Col1.Y + other.Col1.Y},
		Vector2{m.Col2.X + other.Col2.X, m.Col2.Y + other.Col2.Y},
	}
}

// Determinant returns the determinant of this matrix.
func (m *Mat22) Determinant() float32 {

	return m.Col1.X*m.Col2.Y - m.Col2.X*m.Col1.Y
}

// Inverse returns the inverse of this matrix. If the matrix is singular
// the zero matrix is returned.
func (m *Mat22) Inverse() Mat22 {

	a, b, c, d := m.Col1.X, m.Col2.X, m.Col1.Y, m.Col2.Y
	det := a*d - b*c
	if det != 0 {
		det = 1.0 / det
	}
	return Mat22{Vector2{det * d, -det * c}, Vector2{-det * b, det * a}}
}

// Solve solves m * x = b for x.
func (m *Mat22) Solve(b Vector2) Vector2 {

	a11, a12, a21, a22 := m.Col1.X, m.Col2.X, m.Col1.Y, m.Col2.Y
	det := a11*a22 - a12*a21
	if det != 0 {
		det = 1.0 / det
	}
	return Vector2{det * (a22*b.X - a12*b.Y), det * (a11*b.Y - a21*b.X)}
}

// Sweep describes the motion of a body/shape over a time step as an
// interpolation between a previous pose (c0, a0) and a current pose (c, a),
// both about the local center of mass. alpha0 is the fraction of the step
// already consumed, used by the TOI sweep driver.
type Sweep struct {
	LocalCenter Vector2 // local center of mass position
	C0, C       Vector2 // center world positions
	A0, A       float32 // world angles
	Alpha0      float32 // fraction of the time step already advanced
}

// GetTransform evaluates the sweep at normalized time beta in [0,1] and
// writes the resulting transform into xf.
func (s *Sweep) GetTransform(xf *Transform, beta float32) {

	xf.Position.X = (1.0-beta)*s.C0.X + beta*s.C.X
	xf.Position.Y = (1.0-beta)*s.C0.Y + beta*s.C.Y
	angle := (1.0-beta)*s.A0 + beta*s.A
	xf.Rotation.Set(angle)

	// Shift to origin; position above is for the center of mass.
	rotated := xf.Rotation.RotateVector(s.LocalCenter)
	xf.Position.X -= rotated.X
	xf.Position.Y -= rotated.Y
}

// Advance advances the sweep forward to normalized time alpha in [0,1],
// moving c0/a0 up to alpha while keeping c/a fixed at the end of the step.
func (s *Sweep) Advance(alpha float32) {

	if s.Alpha0 >= 1.0 {
		return
	}
	beta := (alpha - s.Alpha0) / (1.0 - s.Alpha0)
	s.C0.X += beta * (s.C.X - s.C0.X)
	s.C0.Y += beta * (s.C.Y - s.C0.Y)
	s.A0 += beta * (s.A - s.A0)
	s.Alpha0 = alpha
}

// Normalize normalizes the sweep angles so that A0 lies in [0, 2pi);
// A is shifted by the same amount.
func (s *Sweep) Normalize() {

	twoPi := float32(2.0 * Pi)
	d := twoPi * Floor(s.A0/twoPi)
	s.A0 -= d
	s.A -= d
}
