package world

import (
	"github.com/driftwood/phys2d/math32"
)

const positionSlop = 0.005

// RevoluteJointDef describes a point-to-point constraint pinning two bodies
// together at a shared anchor point, each expressed in the respective
// body's local frame.
type RevoluteJointDef struct {
	JointDef
	LocalAnchorA math32.Vector2
	LocalAnchorB math32.Vector2
}

// RevoluteJoint constrains bodyA and bodyB to share a common world point,
// leaving relative rotation free (no motor or limits — see DESIGN.md).
type RevoluteJoint struct {
	jointBase

	localAnchorA math32.Vector2
	localAnchorB math32.Vector2

	impulse math32.Vector2

	rA, rB math32.Vector2
	mass   math32.Mat22
}

func newRevoluteJoint(def RevoluteJointDef) *RevoluteJoint {

	return &RevoluteJoint{
		jointBase:    newJointBase(def.BodyA, def.BodyB, def.CollideConnected, def.UserData),
		localAnchorA: def.LocalAnchorA,
		localAnchorB: def.LocalAnchorB,
	}
}

func (j *RevoluteJoint) GetType() JointType { return RevoluteJointType }

func (j *RevoluteJoint) InitVelocityConstraints(step TimeStep) {

	a, b := j.bodyA, j.bodyB

	j.rA = rotVec(a.xf.Rotation, math32.SubVec2(j.localAnchorA, a.sweep.LocalCenter))
	j.rB = rotVec(b.xf.Rotation, math32.SubVec2(j.localAnchorB, b.sweep.LocalCenter))

	mA, mB := a.invMass, b.invMass
	iA, iB := a.invI, b.invI

	k11 := mA + mB + iA*j.rA.Y*j.rA.Y + iB*j.rB.Y*j.rB.Y
	k12 := -iA*j.rA.X*j.rA.Y - iB*j.rB.X*j.rB.Y
	k22 := mA + mB + iA*j.rA.X*j.rA.X + iB*j.rB.X*j.rB.X
	k := math32.Mat22{Col1: math32.Vector2{X: k11, Y: k12}, Col2: math32.Vector2{X: k12, Y: k22}}
	j.mass = k.Inverse()

	if !step.WarmStarting {
		j.impulse = math32.Vector2{}
	}
}

func (j *RevoluteJoint) WarmStartJoint() {

	a, b := j.bodyA, j.bodyB
	a.linearVelocity = math32.SubVec2(a.linearVelocity, math32.ScaleVec2(j.impulse, a.invMass))
	a.angularVelocity -= a.invI * math32.CrossVec2(j.rA, j.impulse)
	b.linearVelocity = math32.AddVec2(b.linearVelocity, math32.ScaleVec2(j.impulse, b.invMass))
	b.angularVelocity += b.invI * math32.CrossVec2(j.rB, j.impulse)
}

func (j *RevoluteJoint) SolveVelocityConstraints(step TimeStep) {

	a, b := j.bodyA, j.bodyB

	vA := a.linearVelocity
	wA := a.angularVelocity
	vB := b.linearVelocity
	wB := b.angularVelocity

	cdot := math32.SubVec2(
		math32.AddVec2(vB, math32.CrossScalarVec(wB, j.rB)),
		math32.AddVec2(vA, math32.CrossScalarVec(wA, j.rA)),
	)

	impulse := j.mass.MulVec2(math32.NegVec2(cdot))
	j.impulse = math32.AddVec2(j.impulse, impulse)

	a.linearVelocity = math32.SubVec2(a.linearVelocity, math32.ScaleVec2(impulse, a.invMass))
	a.angularVelocity -= a.invI * math32.CrossVec2(j.rA, impulse)
	b.linearVelocity = math32.AddVec2(b.linearVelocity, math32.ScaleVec2(impulse, b.invMass))
	b.angularVelocity += b.invI * math32.CrossVec2(j.rB, impulse)
}

func (j *RevoluteJoint) SolvePositionConstraints(step TimeStep) bool {

	a, b := j.bodyA, j.bodyB

	rA := rotVec(*math32.NewRotation(a.sweep.A), math32.SubVec2(j.localAnchorA, a.sweep.LocalCenter))
	rB := rotVec(*math32.NewRotation(b.sweep.A), math32.SubVec2(j.localAnchorB, b.sweep.LocalCenter))

	c := math32.SubVec2(math32.AddVec2(b.sweep.C, rB), math32.AddVec2(a.sweep.C, rA))
	positionError := math32.LengthVec2(c)

	mA, mB := a.invMass, b.invMass
	iA, iB := a.invI, b.invI

	k11 := mA + mB + iA*rA.Y*rA.Y + iB*rB.Y*rB.Y
	k12 := -iA*rA.X*rA.Y - iB*rB.X*rB.Y
	k22 := mA + mB + iA*rA.X*rA.X + iB*rB.X*rB.X
	k := math32.Mat22{Col1: math32.Vector2{X: k11, Y: k12}, Col2: math32.Vector2{X: k12, Y: k22}}
	impulse := k.Solve(math32.NegVec2(c))

	a.sweep.C = math32.SubVec2(a.sweep.C, math32.ScaleVec2(impulse, mA))
	a.sweep.A -= iA * math32.CrossVec2(rA, impulse)
	b.sweep.C = math32.AddVec2(b.sweep.C, math32.ScaleVec2(impulse, mB))
	b.sweep.A += iB * math32.CrossVec2(rB, impulse)

	a.synchronizeTransform()
	b.synchronizeTransform()

	return positionError <= positionSlop
}
