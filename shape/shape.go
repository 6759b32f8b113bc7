// Package shape implements the small set of convex 2D shapes a fixture can
// wrap: circles, edges, and convex polygons (including the axis-aligned box
// helper). Shapes are always expressed in the body's local space; combine
// with a math32.Transform to place them in world space.
package shape

import (
	"github.com/driftwood/phys2d/math32"
)

// Type enumerates the shapes handled by the collide package.
type Type int

const (
	Circle Type = iota
	Edge
	Polygon
	typeCount
)

// PolygonRadius is the small "skin" radius applied to polygon vertices,
// matching the common box2d convention of keeping shapes slightly rounded
// so the narrow phase never has to deal with an exactly-zero separation.
const PolygonRadius = 0.01

// MassData holds the mass, center of mass and rotational inertia about the
// shape's local origin, as computed by Shape.ComputeMass.
type MassData struct {
	Mass   float32
	Center math32.Vector2
	I      float32 // rotational inertia about the local origin
}

// Shape is implemented by every concrete shape (Circle, Edge, Polygon).
// Shapes do not know their position in the world; callers supply a
// math32.Transform to place them.
type Shape interface {
	GetType() Type
	GetRadius() float32

	// TestPoint returns whether the world point p lies inside the shape
	// placed at transform xf.
	TestPoint(xf math32.Transform, p math32.Vector2) bool

	// ComputeAABB computes the world-space AABB of the shape placed at xf.
	ComputeAABB(xf math32.Transform) math32.Box2

	// ComputeMass computes the mass data of the shape, assuming a uniform
	// density.
	ComputeMass(density float32) MassData
}
