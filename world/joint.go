package world

import (
	"github.com/google/uuid"

	"github.com/driftwood/phys2d/math32"
)

// JointType distinguishes the concrete joint implementations.
type JointType int

const (
	RevoluteJointType JointType = iota
	DistanceJointType
)

// Joint is a bilateral constraint linking two bodies. Concrete joints
// (RevoluteJoint, DistanceJoint) embed jointBase for the common linked-list
// and lifecycle bookkeeping the world and island builder need.
type Joint interface {
	GetType() JointType
	GetBodyA() *Body
	GetBodyB() *Body
	CollideConnected() bool
	UserData() interface{}

	base() *jointBase

	InitVelocityConstraints(step TimeStep)
	WarmStartJoint()
	SolveVelocityConstraints(step TimeStep)
	SolvePositionConstraints(step TimeStep) bool
}

// jointBase carries the fields every joint needs regardless of its
// constraint type: the two endpoint bodies, the mirrored adjacency edges
// inserted into each endpoint's joint list, and the doubly-linked-list
// pointers into the world's joint list.
type jointBase struct {
	ID uuid.UUID

	bodyA, bodyB     *Body
	edgeA, edgeB     JointEdge
	collideConnected bool
	islandFlag       bool
	userData         interface{}

	prev, next Joint
}

func (j *jointBase) GetBodyA() *Body           { return j.bodyA }
func (j *jointBase) GetBodyB() *Body           { return j.bodyB }
func (j *jointBase) CollideConnected() bool    { return j.collideConnected }
func (j *jointBase) UserData() interface{}     { return j.userData }
func (j *jointBase) base() *jointBase          { return j }

func newJointBase(bodyA, bodyB *Body, collideConnected bool, userData interface{}) jointBase {

	return jointBase{
		ID:               uuid.New(),
		bodyA:            bodyA,
		bodyB:            bodyB,
		collideConnected: collideConnected,
		userData:         userData,
	}
}

// JointDef is embedded by each concrete joint's definition type and carries
// the fields common to every joint.
type JointDef struct {
	BodyA, BodyB     *Body
	CollideConnected bool
	UserData         interface{}
}

func rotVec(r math32.Rotation, v math32.Vector2) math32.Vector2 { return r.RotateVector(v) }
