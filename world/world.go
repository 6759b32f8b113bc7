package world

import (
	"github.com/driftwood/phys2d/math32"
	"github.com/driftwood/phys2d/util/logger"
)

// world bit flags.
const (
	worldNewFixture uint32 = 1 << iota
	worldLocked
	worldClearForces
)

// World owns every body, joint, contact and fixture in a simulation and
// advances them one time step at a time via Step. All structural mutation
// (create/destroy) is rejected while a user callback is executing.
type World struct {
	gravity math32.Vector2

	allowSleep        bool
	warmStarting      bool
	continuousPhysics bool

	flags uint32

	bodies     *Body
	bodyCount  int
	joints     Joint
	jointCount int

	contactManager *contactManager

	island island
	invDt0 float32

	destructionListener DestructionListener
	debugDraw           DebugDraw

	log *logger.Logger
}

// NewWorld creates a World with the given gravity, warm starting and
// continuous physics enabled, and forces cleared automatically after every
// step, matching the teacher's constructor-sets-sane-defaults convention.
func NewWorld(gravity math32.Vector2, allowSleep bool) *World {

	w := &World{
		gravity:           gravity,
		allowSleep:        allowSleep,
		warmStarting:      true,
		continuousPhysics: true,
		flags:             worldClearForces,
	}
	w.contactManager = newContactManager(w)
	w.island = *newIsland()
	w.log = logger.New("world", logger.Default)
	return w
}

func (w *World) IsLocked() bool { return w.flags&worldLocked != 0 }

func (w *World) setLocked(v bool) {
	if v {
		w.flags |= worldLocked
	} else {
		w.flags &^= worldLocked
	}
}

func (w *World) SetDestructionListener(l DestructionListener) { w.destructionListener = l }
func (w *World) SetContactFilter(f ContactFilter)              { w.contactManager.filter = f }
func (w *World) SetContactListener(l ContactListener)           { w.contactManager.listener = l }
func (w *World) SetDebugDraw(d DebugDraw)                       { w.debugDraw = d }

func (w *World) Gravity() math32.Vector2     { return w.gravity }
func (w *World) SetGravity(g math32.Vector2) { w.gravity = g }

func (w *World) WarmStarting() bool        { return w.warmStarting }
func (w *World) SetWarmStarting(v bool)    { w.warmStarting = v }
func (w *World) ContinuousPhysics() bool   { return w.continuousPhysics }
func (w *World) SetContinuousPhysics(v bool) { w.continuousPhysics = v }

func (w *World) SetAutoClearForces(v bool) {
	if v {
		w.flags |= worldClearForces
	} else {
		w.flags &^= worldClearForces
	}
}
func (w *World) AutoClearForces() bool { return w.flags&worldClearForces != 0 }

func (w *World) BodyCount() int    { return w.bodyCount }
func (w *World) JointCount() int   { return w.jointCount }
func (w *World) ContactCount() int { return w.contactManager.count }
func (w *World) ProxyCount() int   { return len(w.contactManager.broadPhase.proxies) }

func (w *World) GetBodyList() *Body     { return w.bodies }
func (w *World) GetJointList() Joint    { return w.joints }
func (w *World) GetContactList() *Contact { return w.contactManager.contacts }

// CreateBody allocates a new Body and pushes it at the head of the world's
// body list. Returns nil while the world is locked (inside a callback).
func (w *World) CreateBody(def BodyDef) *Body {

	if w.IsLocked() {
		debugAssert(false, "CreateBody called while world is locked")
		return nil
	}
	b := newBody(w, def)
	b.next = w.bodies
	if w.bodies != nil {
		w.bodies.prev = b
	}
	w.bodies = b
	w.bodyCount++
	return b
}

// DestroyBody tears down every incident joint, then every incident contact,
// then every fixture (removing its broad-phase proxy), before unlinking
// the body from the world list. No-ops while locked.
func (w *World) DestroyBody(b *Body) {

	if w.IsLocked() {
		debugAssert(false, "DestroyBody called while world is locked")
		return
	}
	if b == nil {
		return
	}

	for je := b.jointList; je != nil; {
		next := je.Next
		if w.destructionListener != nil {
			w.destructionListener.SayGoodbyeJoint(je.Joint)
		}
		w.DestroyJoint(je.Joint)
		je = next
	}

	for ce := b.contactList; ce != nil; {
		next := ce.Next
		w.contactManager.destroy(ce.Contact)
		ce = next
	}

	for f := b.fixtures; f != nil; f = f.next {
		if w.destructionListener != nil {
			w.destructionListener.SayGoodbyeFixture(f)
		}
		if f.proxyID >= 0 {
			w.contactManager.broadPhase.destroyProxy(f.proxyID)
		}
	}

	if b.prev != nil {
		b.prev.next = b.next
	}
	if b.next != nil {
		b.next.prev = b.prev
	}
	if w.bodies == b {
		w.bodies = b.next
	}
	w.bodyCount--
}

func (w *World) registerFixture(f *Fixture) {

	xf := f.Body.xf
	aabb := f.Shape.ComputeAABB(xf)
	f.proxyID = w.contactManager.broadPhase.createProxy(aabb, f, 0)
	w.flags |= worldNewFixture
}

// CreateRevoluteJoint and CreateDistanceJoint create and link a joint,
// inserting it at the head of the world joint list and of each endpoint's
// joint-edge list. If collideConnected is false, existing contacts between
// the endpoints are flagged for re-filtering on the next Collide; that
// re-filtering consults only the installed ContactFilter, so the joint
// itself neither culls those contacts nor stops new ones between its
// bodies from being created. Both return nil (no-op) while locked. Go's lack of constructor overloading
// means joint creation is split by concrete definition type rather than a
// single CreateJoint(def) entry point.
func (w *World) CreateRevoluteJoint(def RevoluteJointDef) *RevoluteJoint {

	if w.IsLocked() {
		debugAssert(false, "CreateRevoluteJoint called while world is locked")
		return nil
	}
	j := newRevoluteJoint(def)
	w.linkJoint(j)
	return j
}

func (w *World) CreateDistanceJoint(def DistanceJointDef) *DistanceJoint {

	if w.IsLocked() {
		debugAssert(false, "CreateDistanceJoint called while world is locked")
		return nil
	}
	j := newDistanceJoint(def)
	w.linkJoint(j)
	return j
}

func (w *World) linkJoint(j Joint) {

	base := j.base()

	base.next = w.joints
	if w.joints != nil {
		w.joints.base().prev = j
	}
	w.joints = j
	w.jointCount++

	bodyA, bodyB := base.bodyA, base.bodyB

	base.edgeA.Other = bodyB
	base.edgeA.Joint = j
	base.edgeA.Next = bodyA.jointList
	if bodyA.jointList != nil {
		bodyA.jointList.Prev = &base.edgeA
	}
	bodyA.jointList = &base.edgeA

	base.edgeB.Other = bodyA
	base.edgeB.Joint = j
	base.edgeB.Next = bodyB.jointList
	if bodyB.jointList != nil {
		bodyB.jointList.Prev = &base.edgeB
	}
	bodyB.jointList = &base.edgeB

	if !base.collideConnected {
		for ce := bodyB.contactList; ce != nil; ce = ce.Next {
			if ce.Other == bodyA {
				ce.Contact.flags |= contactFilter
			}
		}
	}
}

// DestroyJoint unlinks j from the world and both endpoints' joint-edge
// lists, wakes both endpoints, and flags their contacts for re-filtering
// if the joint's CollideConnected was false. No-ops while locked.
func (w *World) DestroyJoint(j Joint) {

	if w.IsLocked() {
		debugAssert(false, "DestroyJoint called while world is locked")
		return
	}
	if j == nil {
		return
	}
	base := j.base()
	bodyA, bodyB := base.bodyA, base.bodyB

	collideConnected := base.collideConnected

	unlinkJointEdge(bodyA, &base.edgeA)
	unlinkJointEdge(bodyB, &base.edgeB)

	if base.prev != nil {
		base.prev.base().next = base.next
	}
	if base.next != nil {
		base.next.base().prev = base.prev
	}
	if w.joints == j {
		w.joints = base.next
	}
	w.jointCount--

	bodyA.SetAwake(true)
	bodyB.SetAwake(true)

	if !collideConnected {
		for ce := bodyB.contactList; ce != nil; ce = ce.Next {
			if ce.Other == bodyA {
				ce.Contact.flags |= contactFilter
			}
		}
	}
}

func unlinkJointEdge(b *Body, e *JointEdge) {

	if e.Prev != nil {
		e.Prev.Next = e.Next
	}
	if e.Next != nil {
		e.Next.Prev = e.Prev
	}
	if b.jointList == e {
		b.jointList = e.Next
	}
	e.Prev = nil
	e.Next = nil
}

// Step advances the simulation by dt seconds: discovers new contacts if
// fixtures were added since the previous step, updates manifolds, runs the
// discrete island solve, optionally the TOI sweep, and clears forces,
// exactly following the phase order in §4.1.
func (w *World) Step(dt float32, velocityIterations, positionIterations int) {

	if w.flags&worldNewFixture != 0 {
		w.contactManager.findNewContacts()
		w.flags &^= worldNewFixture
	}

	w.setLocked(true)

	step := TimeStep{
		Dt:                 dt,
		VelocityIterations: velocityIterations,
		PositionIterations: positionIterations,
		WarmStarting:       w.warmStarting,
	}
	if dt > 0 {
		step.InvDt = 1.0 / dt
	}
	step.DtRatio = w.invDt0 * dt

	w.contactManager.collide()

	if dt > 0 {
		w.solve(step)

		if w.continuousPhysics {
			w.log.Debug("running TOI sweep, dt=%f", dt)
			w.solveTOI()
		}

		w.invDt0 = step.InvDt
	}

	if w.flags&worldClearForces != 0 {
		for b := w.bodies; b != nil; b = b.next {
			b.force = math32.Vector2{}
			b.torque = 0
		}
	}

	// Cleared only on normal completion: if a user callback above panics,
	// Locked intentionally stays set on unwind (§7 — recovery is the
	// host's responsibility).
	w.setLocked(false)
}

// solve is the island builder (§4.2): a DFS over the body/contact/joint
// graph partitioning awake, active, non-static bodies into islands, each
// handed to island.solve, followed by fixture resynchronization and a
// FindNewContacts pass to pick up proxies moved during the solve.
func (w *World) solve(step TimeStep) {

	for b := w.bodies; b != nil; b = b.next {
		b.clearFlag(flagIsland)
	}
	for c := w.contactManager.contacts; c != nil; c = c.next {
		c.flags &^= contactIsland
	}
	for j := w.joints; j != nil; j = j.base().next {
		j.base().islandFlag = false
	}

	stack := make([]*Body, 0, w.bodyCount)

	for seed := w.bodies; seed != nil; seed = seed.next {
		if seed.hasFlag(flagIsland) || !seed.IsAwake() || !seed.IsActive() || seed.kind == StaticBody {
			continue
		}

		w.island.reset()
		w.island.listener = w.contactManager.listener
		stack = stack[:0]
		stack = append(stack, seed)
		seed.setFlag(flagIsland)

		for len(stack) > 0 {
			b := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			w.island.addBody(b)
			b.SetAwake(true)

			if b.kind == StaticBody {
				continue
			}

			for ce := b.contactList; ce != nil; ce = ce.Next {
				c := ce.Contact
				if c.flags&contactIsland != 0 || !c.IsEnabled() || !c.IsTouching() || c.IsSensor() {
					continue
				}
				w.island.addContact(c)
				c.flags |= contactIsland

				other := ce.Other
				if !other.hasFlag(flagIsland) {
					stack = append(stack, other)
					other.setFlag(flagIsland)
				}
			}

			for je := b.jointList; je != nil; je = je.Next {
				jb := je.Joint.base()
				if jb.islandFlag || !je.Other.IsActive() {
					continue
				}
				w.island.addJoint(je.Joint)
				jb.islandFlag = true

				other := je.Other
				if !other.hasFlag(flagIsland) {
					stack = append(stack, other)
					other.setFlag(flagIsland)
				}
			}
		}

		w.log.Debug("island: %d bodies, %d contacts, %d joints", len(w.island.bodies), len(w.island.contacts), len(w.island.joints))
		w.island.solve(step, w.gravity, w.allowSleep)

		for _, b := range w.island.bodies {
			if b.kind == StaticBody {
				b.clearFlag(flagIsland)
			}
		}
	}

	for b := w.bodies; b != nil; b = b.next {
		if !b.hasFlag(flagIsland) || b.kind == StaticBody {
			continue
		}
		b.SynchronizeFixtures()
	}

	w.contactManager.findNewContacts()
}

// QueryAABB invokes callback once for every fixture whose broad-phase
// proxy overlaps aabb; the callback returns false to stop early.
func (w *World) QueryAABB(callback QueryCallback, aabb math32.Box2) {

	for _, id := range w.contactManager.broadPhase.queryOverlaps(aabb) {
		p := &w.contactManager.broadPhase.proxies[id]
		if !p.active {
			continue
		}
		if !callback(p.fixture) {
			return
		}
	}
}

// RayCast casts a segment from p1 to p2 against every fixture whose AABB
// the segment's own bounding box overlaps, invoking callback for each true
// hit with the clip fraction; the callback's returned fraction shortens
// the remaining ray (0 stops, 1 continues unclipped).
func (w *World) RayCast(callback RayCastCallback, p1, p2 math32.Vector2) {

	min := math32.MinVec2(p1, p2)
	max := math32.MaxVec2(p1, p2)
	segmentAABB := *math32.NewBox2(&min, &max)

	maxFraction := float32(1.0)

	for _, id := range w.contactManager.broadPhase.queryOverlaps(segmentAABB) {
		p := &w.contactManager.broadPhase.proxies[id]
		if !p.active {
			continue
		}
		point, normal, fraction, hit := rayCastFixture(p.fixture, p1, p2, maxFraction)
		if !hit {
			continue
		}
		f := callback(p.fixture, point, normal, fraction)
		if f == 0 {
			return
		}
		if f < maxFraction {
			maxFraction = f
		}
	}
}
