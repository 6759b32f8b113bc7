package world

import (
	"github.com/driftwood/phys2d/collide"
	"github.com/driftwood/phys2d/math32"
)

// DestructionListener is notified before a joint or fixture is destroyed as
// a side effect of tearing down a body with World.DestroyBody.
type DestructionListener interface {
	SayGoodbyeJoint(j Joint)
	SayGoodbyeFixture(f *Fixture)
}

// ContactFilter decides whether two fixtures should ever generate a
// contact. The default policy (no filter installed) always collides.
type ContactFilter interface {
	ShouldCollide(a, b *Fixture) bool
}

// ContactListener is notified of contact lifecycle and manifold updates.
// All four methods run with the world Locked.
type ContactListener interface {
	BeginContact(c *Contact)
	EndContact(c *Contact)
	PreSolve(c *Contact, oldManifold collide.Manifold)
	PostSolve(c *Contact, impulse *ContactImpulse)
}

// ContactImpulse reports the normal/tangent impulses applied for each point
// of a resolved manifold, for PostSolve reporting (e.g. sound effects).
type ContactImpulse struct {
	NormalImpulses  [collide.MaxManifoldPoints]float32
	TangentImpulses [collide.MaxManifoldPoints]float32
}

// QueryCallback is invoked once per fixture whose AABB overlaps the query
// region; returning false stops the query early.
type QueryCallback func(f *Fixture) bool

// RayCastCallback is invoked once per fixture hit by a ray cast. The
// returned fraction clips the remaining ray: 0 stops the cast, 1 continues
// unclipped, any other value shortens it.
type RayCastCallback func(f *Fixture, point, normal math32.Vector2, fraction float32) float32

// DebugDraw is the interface a host application implements to visualize
// world state; drawing itself is outside this module's scope (see the
// debugdraw package for one concrete renderer).
type DebugDraw interface {
	DrawPolygon(vertices []math32.Vector2, color [4]float32)
	DrawSolidPolygon(vertices []math32.Vector2, color [4]float32)
	DrawCircle(center math32.Vector2, radius float32, color [4]float32)
	DrawSolidCircle(center math32.Vector2, radius float32, axis math32.Vector2, color [4]float32)
	DrawSegment(p1, p2 math32.Vector2, color [4]float32)
	DrawTransform(xf math32.Transform)
}
