package world

import (
	"github.com/google/uuid"

	"github.com/driftwood/phys2d/core"
	"github.com/driftwood/phys2d/math32"
	"github.com/driftwood/phys2d/shape"
)

// BodyType is the kind of a Body: Static bodies never move and have
// infinite mass; Kinematic bodies move under a prescribed velocity but are
// not affected by forces or collisions; Dynamic bodies are fully simulated.
type BodyType int

const (
	StaticBody BodyType = iota
	KinematicBody
	DynamicBody
)

// body bit flags, mirroring the teacher's preference for small flag sets
// over many bool fields.
const (
	flagIsland = 1 << iota
	flagAwake
	flagActive
	flagBullet
	flagToi
	flagAutoSleep
)

const (
	linearSleepTolerance  = 0.01
	angularSleepTolerance = 2.0 / 180.0 * math32.Pi
	timeToSleep           = 0.5
)

// BodyDef describes the initial state of a Body for World.CreateBody.
type BodyDef struct {
	Type                 BodyType
	Position             math32.Vector2
	Angle                float32
	LinearVelocity       math32.Vector2
	AngularVelocity      float32
	LinearDamping        float32
	AngularDamping       float32
	AllowSleep           bool
	Awake                bool
	FixedRotation        bool
	Bullet               bool
	GravityScale         float32
	UserData             interface{}
}

// FixtureDef describes a shape to attach to a body via Body.CreateFixture.
type FixtureDef struct {
	Shape       shape.Shape
	Density     float32
	Friction    float32
	Restitution float32
	IsSensor    bool
	UserData    interface{}
}

// Fixture binds a shape to a body with material properties.
type Fixture struct {
	ID       uuid.UUID
	Body     *Body
	Shape    shape.Shape
	Density  float32
	Friction float32
	Restitution float32
	IsSensor bool
	UserData interface{}

	proxyID int // index into the broad phase, -1 if not registered

	next *Fixture
}

// ContactEdge is an intrusive adjacency node in a body's contact list.
type ContactEdge struct {
	Other   *Body
	Contact *Contact
	Prev    *ContactEdge
	Next    *ContactEdge
}

// JointEdge is an intrusive adjacency node in a body's joint list.
type JointEdge struct {
	Other *Body
	Joint Joint
	Prev  *JointEdge
	Next  *JointEdge
}

// Body is a rigid entity with mass, pose, velocity and an attached fixture
// list. Bodies are heap-allocated and owned exclusively by the World that
// created them; destruction is explicit via World.DestroyBody.
type Body struct {
	core.Dispatcher

	ID uuid.UUID

	kind BodyType
	flags uint32

	xf    math32.Transform
	sweep math32.Sweep

	linearVelocity  math32.Vector2
	angularVelocity float32

	force  math32.Vector2
	torque float32

	linearDamping float32
	angularDamping float32
	gravityScale  float32

	mass, invMass float32
	i, invI       float32

	sleepTime float32

	fixtures *Fixture

	contactList *ContactEdge
	jointList   *JointEdge

	world *World
	prev, next *Body

	UserData interface{}
}

// EventAwake and EventSleep are dispatched through Body's embedded
// core.Dispatcher whenever the island solver changes a body's sleep state.
const (
	EventAwake = "body.awake"
	EventSleep = "body.sleep"
)

func newBody(w *World, def BodyDef) *Body {

	b := &Body{
		ID:              uuid.New(),
		kind:            def.Type,
		xf:              *math32.NewTransform(),
		linearVelocity:  def.LinearVelocity,
		angularVelocity: def.AngularVelocity,
		linearDamping:   def.LinearDamping,
		angularDamping:  def.AngularDamping,
		world:           w,
		UserData:        def.UserData,
	}
	b.xf.Position = def.Position
	b.xf.Rotation.Set(def.Angle)
	b.sweep.C0 = def.Position
	b.sweep.C = def.Position
	b.sweep.A0 = def.Angle
	b.sweep.A = def.Angle

	b.Dispatcher.Initialize()

	if def.GravityScale == 0 {
		b.gravityScale = 1
	} else {
		b.gravityScale = def.GravityScale
	}

	b.flags = flagActive
	if def.AllowSleep {
		b.flags |= flagAutoSleep
	}
	if def.Awake || def.Type != StaticBody {
		b.flags |= flagAwake
	}
	if def.Bullet {
		b.flags |= flagBullet
	}
	return b
}

// CreateFixture attaches shape s to the body with the given material
// properties, recomputes mass data, and flags the world so the broad phase
// picks up the new fixture on the next Step.
func (b *Body) CreateFixture(def FixtureDef) *Fixture {

	if b.world.IsLocked() {
		return nil
	}

	f := &Fixture{
		ID:          uuid.New(),
		Body:        b,
		Shape:       def.Shape,
		Density:     def.Density,
		Friction:    def.Friction,
		Restitution: def.Restitution,
		IsSensor:    def.IsSensor,
		UserData:    def.UserData,
		proxyID:     -1,
	}
	f.next = b.fixtures
	b.fixtures = f

	b.world.registerFixture(f)
	b.resetMassData()
	return f
}

// Fixtures returns the head of the body's fixture list.
func (b *Body) Fixtures() *Fixture { return b.fixtures }

// Next returns the next fixture in this fixture's body's list, or nil at
// the end, for walking the chain returned by Body.Fixtures.
func (f *Fixture) Next() *Fixture { return f.next }

// Next returns the next body in the world's body list, or nil at the end,
// for walking the chain returned by World.GetBodyList.
func (b *Body) Next() *Body { return b.next }

func (b *Body) resetMassData() {

	b.mass = 0
	b.invMass = 0
	b.i = 0
	b.invI = 0
	b.sweep.LocalCenter = math32.Vector2{}

	if b.kind != DynamicBody {
		b.sweep.C0 = b.xf.Position
		b.sweep.C = b.xf.Position
		return
	}

	var localCenter math32.Vector2
	for f := b.fixtures; f != nil; f = f.next {
		if f.Density == 0 {
			continue
		}
		md := f.Shape.ComputeMass(f.Density)
		b.mass += md.Mass
		localCenter = math32.AddVec2(localCenter, math32.ScaleVec2(md.Center, md.Mass))
		b.i += md.I
	}

	if b.mass > 0 {
		b.invMass = 1.0 / b.mass
		localCenter = math32.ScaleVec2(localCenter, b.invMass)
	} else {
		b.mass = 1
		b.invMass = 1
	}

	if b.i > 0 {
		b.i -= b.mass * math32.DotVec2(localCenter, localCenter)
		b.invI = 1.0 / b.i
	}

	b.sweep.LocalCenter = localCenter
	oldCenter := b.sweep.C
	b.sweep.C = b.xf.TransformPoint(localCenter)
	b.sweep.C0 = b.sweep.C

	b.linearVelocity = math32.AddVec2(b.linearVelocity,
		math32.CrossScalarVec(b.angularVelocity, math32.SubVec2(b.sweep.C, oldCenter)))
}

// SynchronizeFixtures pushes this body's fixtures' updated world AABBs into
// the broad phase, called by the island builder after moved bodies settle.
func (b *Body) SynchronizeFixtures() {

	xf1 := math32.Transform{Rotation: *math32.NewRotation(b.sweep.A0)}
	rotated := xf1.Rotation.RotateVector(b.sweep.LocalCenter)
	xf1.Position = math32.SubVec2(b.sweep.C0, rotated)

	for f := b.fixtures; f != nil; f = f.next {
		aabb1 := f.Shape.ComputeAABB(xf1)
		aabb2 := f.Shape.ComputeAABB(b.xf)
		displacement := math32.SubVec2(b.xf.Position, xf1.Position)
		b.world.contactManager.broadPhase.moveProxy(f.proxyID, unionAABB(aabb1, aabb2), displacement)
	}
}

func (b *Body) synchronizeTransform() {

	b.xf.Rotation.Set(b.sweep.A)
	rotated := b.xf.Rotation.RotateVector(b.sweep.LocalCenter)
	b.xf.Position = math32.SubVec2(b.sweep.C, rotated)
}

// advance moves the body back to the pose at normalized time alpha (the
// impact pose Sweep.Advance just computed into c0/a0) and resynchronizes
// the transform, used by the TOI sweep driver.
func (b *Body) advance(alpha float32) {

	b.sweep.Advance(alpha)
	b.sweep.C = b.sweep.C0
	b.sweep.A = b.sweep.A0
	b.synchronizeTransform()
}

func (b *Body) Transform() math32.Transform { return b.xf }
func (b *Body) Sweep() math32.Sweep         { return b.sweep }
func (b *Body) Type() BodyType              { return b.kind }

func (b *Body) Position() math32.Vector2 { return b.xf.Position }
func (b *Body) Angle() float32           { return b.xf.Rotation.Angle() }

func (b *Body) LinearVelocity() math32.Vector2 { return b.linearVelocity }
func (b *Body) AngularVelocity() float32       { return b.angularVelocity }

func (b *Body) SetLinearVelocity(v math32.Vector2) {
	if b.kind == StaticBody {
		return
	}
	if math32.DotVec2(v, v) > 0 {
		b.SetAwake(true)
	}
	b.linearVelocity = v
}

func (b *Body) SetAngularVelocity(w float32) {
	if b.kind == StaticBody {
		return
	}
	if w*w > 0 {
		b.SetAwake(true)
	}
	b.angularVelocity = w
}

func (b *Body) ApplyForceToCenter(force math32.Vector2, wake bool) {
	if b.kind != DynamicBody {
		return
	}
	if wake && b.flags&flagAwake == 0 {
		b.SetAwake(true)
	}
	if b.flags&flagAwake != 0 {
		b.force = math32.AddVec2(b.force, force)
	}
}

func (b *Body) IsBullet() bool { return b.flags&flagBullet != 0 }
func (b *Body) IsActive() bool { return b.flags&flagActive != 0 }
func (b *Body) IsAwake() bool  { return b.flags&flagAwake != 0 }
func (b *Body) IsAllowSleep() bool { return b.flags&flagAutoSleep != 0 }

// SetAwake wakes or forces the body asleep, zeroing velocities and resetting
// sleepTime when put to sleep, and dispatching the corresponding event.
func (b *Body) SetAwake(flag bool) {

	if flag {
		if b.flags&flagAwake == 0 {
			b.flags |= flagAwake
			b.sleepTime = 0
			b.Dispatch(EventAwake, b)
		}
	} else {
		b.flags &^= flagAwake
		b.sleepTime = 0
		b.linearVelocity = math32.Vector2{}
		b.angularVelocity = 0
		b.force = math32.Vector2{}
		b.torque = 0
		b.Dispatch(EventSleep, b)
	}
}

func (b *Body) hasFlag(f uint32) bool { return b.flags&f != 0 }
func (b *Body) setFlag(f uint32)      { b.flags |= f }
func (b *Body) clearFlag(f uint32)    { b.flags &^= f }
