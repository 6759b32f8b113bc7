package world

import (
	"github.com/google/uuid"

	"github.com/driftwood/phys2d/collide"
	"github.com/driftwood/phys2d/math32"
	"github.com/driftwood/phys2d/shape"
)

// Contact bit flags.
const (
	contactEnabled uint32 = 1 << iota
	contactTouching
	contactIsland
	contactBulletHit
	contactFilter
)

// Contact summarizes collision state between two fixtures whose broad-phase
// proxies overlap. Contacts are created and destroyed exclusively by the
// ContactManager as proxy overlap begins/ends.
type Contact struct {
	ID uuid.UUID

	FixtureA, FixtureB *Fixture
	childA, childB     int

	flags uint32

	manifold collide.Manifold

	toiCount int

	edgeA, edgeB ContactEdge

	prev, next *Contact
}

func newContact(fa, fb *Fixture) *Contact {

	c := &Contact{
		ID:       uuid.New(),
		FixtureA: fa,
		FixtureB: fb,
		flags:    contactEnabled,
	}
	if fa.IsSensor || fb.IsSensor {
		// Sensors still generate contacts (for Begin/EndContact) but never
		// touch the island builder or produce impulses.
	}
	return c
}

func (c *Contact) IsTouching() bool    { return c.flags&contactTouching != 0 }
func (c *Contact) IsEnabled() bool     { return c.flags&contactEnabled != 0 }
func (c *Contact) SetEnabled(v bool) {
	if v {
		c.flags |= contactEnabled
	} else {
		c.flags &^= contactEnabled
	}
}
func (c *Contact) IsSensor() bool { return c.FixtureA.IsSensor || c.FixtureB.IsSensor }

func (c *Contact) GetManifold() collide.Manifold { return c.manifold }

// other returns the body on the far side of this contact from `from`.
func (c *Contact) other(from *Body) *Body {
	if c.FixtureA.Body == from {
		return c.FixtureB.Body
	}
	return c.FixtureA.Body
}

// update regenerates the manifold for this contact and fires
// Begin/EndContact as the touching state transitions.
func (c *Contact) update(listener ContactListener) {

	oldManifold := c.manifold
	wasTouching := c.IsTouching()

	bodyA, bodyB := c.FixtureA.Body, c.FixtureB.Body
	var touching bool

	if c.FixtureA.IsSensor || c.FixtureB.IsSensor {
		proxyA := collide.MakeProxy(c.FixtureA.Shape, c.childA)
		proxyB := collide.MakeProxy(c.FixtureB.Shape, c.childB)
		d := collide.Distance(proxyA, bodyA.xf, proxyB, bodyB.xf)
		touching = d.Distance < 10*1.1920929e-7
		c.manifold = collide.Manifold{}
	} else {
		c.manifold = computeManifold(c.FixtureA.Shape, bodyA.xf, c.FixtureB.Shape, bodyB.xf)
		touching = len(c.manifold.Points) > 0
	}

	if touching {
		c.flags |= contactTouching
	} else {
		c.flags &^= contactTouching
	}

	if listener == nil {
		return
	}
	if touching && !wasTouching {
		listener.BeginContact(c)
	} else if !touching && wasTouching {
		listener.EndContact(c)
	} else if touching && wasTouching {
		listener.PreSolve(c, oldManifold)
	}
}

// computeManifold dispatches narrow-phase collision to the concrete
// collide package routine for the pair of shape types involved, swapping
// argument order (and the resulting manifold's Face type) for the pairs
// only implemented in one orientation.
func computeManifold(sa shape.Shape, xfA math32.Transform, sb shape.Shape, xfB math32.Transform) collide.Manifold {

	switch a := sa.(type) {
	case *shape.CircleShape:
		switch b := sb.(type) {
		case *shape.CircleShape:
			return collide.CollideCircles(a, xfA, b, xfB)
		case *shape.PolygonShape:
			return flipManifold(collide.CollidePolygonAndCircle(b, xfB, a, xfA))
		case *shape.EdgeShape:
			return flipManifold(collide.CollideEdgeAndCircle(b, xfB, a, xfA))
		}
	case *shape.PolygonShape:
		switch b := sb.(type) {
		case *shape.CircleShape:
			return collide.CollidePolygonAndCircle(a, xfA, b, xfB)
		case *shape.PolygonShape:
			return collide.CollidePolygons(a, xfA, b, xfB)
		case *shape.EdgeShape:
			return flipManifold(collide.CollideEdgeAndPolygon(b, xfB, a, xfA))
		}
	case *shape.EdgeShape:
		switch b := sb.(type) {
		case *shape.CircleShape:
			return collide.CollideEdgeAndCircle(a, xfA, b, xfB)
		case *shape.PolygonShape:
			return collide.CollideEdgeAndPolygon(a, xfA, b, xfB)
		}
	}
	return collide.Manifold{}
}

// flipManifold swaps a manifold's reference frame (FaceA<->FaceB) so it can
// be reused after swapping the fixture pair's argument order, matching the
// original A/B orientation the caller expects.
func flipManifold(m collide.Manifold) collide.Manifold {

	switch m.Type {
	case collide.ManifoldFaceA:
		m.Type = collide.ManifoldFaceB
	case collide.ManifoldFaceB:
		m.Type = collide.ManifoldFaceA
	}
	return m
}
