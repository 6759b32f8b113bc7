package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwood/phys2d/collide"
	"github.com/driftwood/phys2d/math32"
	"github.com/driftwood/phys2d/shape"
)

const testDt = 1.0 / 60.0

func stepN(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Step(testDt, 8, 3)
	}
}

// Scenario 1: an unattached dynamic body under gravity accelerates
// downward at g, with no ground to stop it.
func TestScenarioFreeFall(t *testing.T) {

	w := NewWorld(math32.Vector2{X: 0, Y: -10}, true)
	b := w.CreateBody(BodyDef{Type: DynamicBody, Position: math32.Vector2{X: 0, Y: 10}, Awake: true})
	b.CreateFixture(FixtureDef{Shape: shape.NewCircle(0.5), Density: 1})

	startY := b.Position().Y
	stepN(w, 30)

	assert.Less(t, b.Position().Y, startY, "body should have fallen")
	assert.Less(t, b.LinearVelocity().Y, float32(0), "falling body should have negative vertical velocity")
}

// Scenario 2: a box dropped onto static ground comes to rest on top of
// it and eventually falls asleep.
func TestScenarioBoxOnGround(t *testing.T) {

	w := NewWorld(math32.Vector2{X: 0, Y: -10}, true)

	ground := w.CreateBody(BodyDef{Type: StaticBody, Position: math32.Vector2{X: 0, Y: 0}})
	ground.CreateFixture(FixtureDef{Shape: shape.NewEdge(
		math32.Vector2{X: -20, Y: 0}, math32.Vector2{X: 20, Y: 0}), Friction: 0.6})

	box := w.CreateBody(BodyDef{Type: DynamicBody, Position: math32.Vector2{X: 0, Y: 2}, AllowSleep: true, Awake: true})
	box.CreateFixture(FixtureDef{Shape: shape.NewBox(0.5, 0.5), Density: 1, Friction: 0.3})

	stepN(w, 300)

	require.InDelta(t, 0.5, box.Position().Y, 0.05, "box should rest with its bottom face on the ground")
	assert.False(t, box.IsAwake(), "box should have fallen asleep at rest")
}

// Scenario 3: a small bullet body moving fast enough to cross a thin
// static wall in a single step must still be stopped by it when
// continuous physics is enabled.
func TestScenarioTunnelingPrevented(t *testing.T) {

	w := NewWorld(math32.Vector2{}, false)
	w.SetContinuousPhysics(true)

	wall := w.CreateBody(BodyDef{Type: StaticBody, Position: math32.Vector2{X: 0, Y: 0}})
	wall.CreateFixture(FixtureDef{Shape: shape.NewBox(0.05, 5)})

	bullet := w.CreateBody(BodyDef{
		Type: DynamicBody, Position: math32.Vector2{X: -5, Y: 0}, Bullet: true, Awake: true,
		LinearVelocity: math32.Vector2{X: 400, Y: 0},
	})
	bullet.CreateFixture(FixtureDef{Shape: shape.NewCircle(0.1), Density: 1})

	stepN(w, 3)

	assert.Less(t, bullet.Position().X, float32(0), "bullet should have been stopped at the wall, not pass through it")
}

// Scenario 4: a circle bob on a revolute joint anchored level with it, 3
// units to its left, swings like a pendulum, staying a fixed distance from
// the anchor.
func TestScenarioPendulum(t *testing.T) {

	w := NewWorld(math32.Vector2{X: 0, Y: -10}, false)

	anchor := w.CreateBody(BodyDef{Type: StaticBody, Position: math32.Vector2{X: 0, Y: 10}})
	anchor.CreateFixture(FixtureDef{Shape: shape.NewCircle(0.1)})

	bob := w.CreateBody(BodyDef{Type: DynamicBody, Position: math32.Vector2{X: 3, Y: 10}, Awake: true})
	bob.CreateFixture(FixtureDef{Shape: shape.NewCircle(0.4), Density: 1})

	w.CreateRevoluteJoint(RevoluteJointDef{
		JointDef:     JointDef{BodyA: anchor, BodyB: bob, CollideConnected: false},
		LocalAnchorA: math32.Vector2{X: 0, Y: 0},
		LocalAnchorB: math32.Vector2{X: -3, Y: 0},
	})

	for i := 0; i < 120; i++ {
		w.Step(testDt, 8, 3)
		d := math32.SubVec2(bob.Position(), anchor.Position())
		assert.InDelta(t, 3.0, math32.LengthVec2(d), 0.05, "bob should stay at its rod length from the anchor")
	}
}

// callbackDestroyer destroys a body from inside BeginContact, exercising
// the documented "destruction during a callback" path: Step must not
// panic or corrupt island/contact bookkeeping when this happens.
type callbackDestroyer struct {
	world         *World
	victim        *Body
	destroyedOnce bool
}

func (c *callbackDestroyer) BeginContact(ct *Contact) {
	if c.destroyedOnce {
		return
	}
	c.destroyedOnce = true
	c.world.DestroyBody(c.victim)
}
func (c *callbackDestroyer) EndContact(ct *Contact)                              {}
func (c *callbackDestroyer) PreSolve(ct *Contact, old collide.Manifold)          {}
func (c *callbackDestroyer) PostSolve(ct *Contact, imp *ContactImpulse)          {}

func TestScenarioDestructionDuringCallback(t *testing.T) {

	w := NewWorld(math32.Vector2{X: 0, Y: -10}, false)

	ground := w.CreateBody(BodyDef{Type: StaticBody})
	ground.CreateFixture(FixtureDef{Shape: shape.NewEdge(
		math32.Vector2{X: -20, Y: 0}, math32.Vector2{X: 20, Y: 0})})

	falling := w.CreateBody(BodyDef{Type: DynamicBody, Position: math32.Vector2{X: 0, Y: 1}, Awake: true})
	falling.CreateFixture(FixtureDef{Shape: shape.NewCircle(0.5), Density: 1})

	listener := &callbackDestroyer{world: w, victim: falling}
	w.SetContactListener(listener)

	require.NotPanics(t, func() {
		stepN(w, 60)
	})
	assert.True(t, listener.destroyedOnce, "listener should have destroyed the falling body on first contact")
}

// noopContactListener satisfies ContactListener, counting BeginContact
// calls; PreSolve/EndContact/PostSolve are no-ops.
type noopContactListener struct {
	beginCount int
}

func (n *noopContactListener) BeginContact(c *Contact)                   { n.beginCount++ }
func (n *noopContactListener) EndContact(c *Contact)                     {}
func (n *noopContactListener) PreSolve(c *Contact, old collide.Manifold) {}
func (n *noopContactListener) PostSolve(c *Contact, imp *ContactImpulse) {}

// Scenario 6: a sensor fixture reports overlap via Begin/EndContact but
// never generates a physical response (the falling body passes through
// it unobstructed).
func TestScenarioSensor(t *testing.T) {

	w := NewWorld(math32.Vector2{X: 0, Y: -10}, false)

	sensor := w.CreateBody(BodyDef{Type: StaticBody, Position: math32.Vector2{X: 0, Y: 3}})
	sensor.CreateFixture(FixtureDef{Shape: shape.NewBox(2, 0.2), IsSensor: true})

	tracker := &noopContactListener{}
	w.SetContactListener(tracker)

	body := w.CreateBody(BodyDef{Type: DynamicBody, Position: math32.Vector2{X: 0, Y: 10}, Awake: true})
	body.CreateFixture(FixtureDef{Shape: shape.NewCircle(0.3), Density: 1})

	stepN(w, 120)

	assert.Greater(t, tracker.beginCount, 0, "sensor overlap should have fired BeginContact")
	assert.Less(t, body.Position().Y, float32(0), "body should fall straight through the sensor, unobstructed")
}
