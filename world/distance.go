package world

import (
	"github.com/driftwood/phys2d/math32"
)

// DistanceJointDef describes a rigid-rod constraint holding the distance
// between two anchor points fixed at Length.
type DistanceJointDef struct {
	JointDef
	LocalAnchorA math32.Vector2
	LocalAnchorB math32.Vector2
	Length       float32
}

// DistanceJoint holds two anchor points at a fixed distance apart, solved
// as a rigid rod (no spring softness — see DESIGN.md).
type DistanceJoint struct {
	jointBase

	localAnchorA math32.Vector2
	localAnchorB math32.Vector2
	length       float32

	impulse float32

	u            math32.Vector2
	rA, rB       math32.Vector2
	invMassTotal float32
}

func newDistanceJoint(def DistanceJointDef) *DistanceJoint {

	return &DistanceJoint{
		jointBase:    newJointBase(def.BodyA, def.BodyB, def.CollideConnected, def.UserData),
		localAnchorA: def.LocalAnchorA,
		localAnchorB: def.LocalAnchorB,
		length:       def.Length,
	}
}

func (j *DistanceJoint) GetType() JointType { return DistanceJointType }

func (j *DistanceJoint) InitVelocityConstraints(step TimeStep) {

	a, b := j.bodyA, j.bodyB

	j.rA = rotVec(a.xf.Rotation, math32.SubVec2(j.localAnchorA, a.sweep.LocalCenter))
	j.rB = rotVec(b.xf.Rotation, math32.SubVec2(j.localAnchorB, b.sweep.LocalCenter))

	anchorA := math32.AddVec2(a.sweep.C, j.rA)
	anchorB := math32.AddVec2(b.sweep.C, j.rB)
	u, length := math32.NormalizeVec2(math32.SubVec2(anchorB, anchorA))
	if length < 1.1920929e-7 {
		u = math32.Vector2{X: 1, Y: 0}
	}
	j.u = u

	crA := math32.CrossVec2(j.rA, j.u)
	crB := math32.CrossVec2(j.rB, j.u)
	invMass := a.invMass + a.invI*crA*crA + b.invMass + b.invI*crB*crB
	if invMass == 0 {
		j.invMassTotal = 0
	} else {
		j.invMassTotal = 1.0 / invMass
	}

	if !step.WarmStarting {
		j.impulse = 0
	}
}

func (j *DistanceJoint) WarmStartJoint() {

	a, b := j.bodyA, j.bodyB
	p := math32.ScaleVec2(j.u, j.impulse)
	a.linearVelocity = math32.SubVec2(a.linearVelocity, math32.ScaleVec2(p, a.invMass))
	a.angularVelocity -= a.invI * math32.CrossVec2(j.rA, p)
	b.linearVelocity = math32.AddVec2(b.linearVelocity, math32.ScaleVec2(p, b.invMass))
	b.angularVelocity += b.invI * math32.CrossVec2(j.rB, p)
}

func (j *DistanceJoint) SolveVelocityConstraints(step TimeStep) {

	a, b := j.bodyA, j.bodyB

	vpA := math32.AddVec2(a.linearVelocity, math32.CrossScalarVec(a.angularVelocity, j.rA))
	vpB := math32.AddVec2(b.linearVelocity, math32.CrossScalarVec(b.angularVelocity, j.rB))
	cdot := math32.DotVec2(j.u, math32.SubVec2(vpB, vpA))

	impulse := -j.invMassTotal * cdot
	j.impulse += impulse

	p := math32.ScaleVec2(j.u, impulse)
	a.linearVelocity = math32.SubVec2(a.linearVelocity, math32.ScaleVec2(p, a.invMass))
	a.angularVelocity -= a.invI * math32.CrossVec2(j.rA, p)
	b.linearVelocity = math32.AddVec2(b.linearVelocity, math32.ScaleVec2(p, b.invMass))
	b.angularVelocity += b.invI * math32.CrossVec2(j.rB, p)
}

func (j *DistanceJoint) SolvePositionConstraints(step TimeStep) bool {

	a, b := j.bodyA, j.bodyB

	rA := rotVec(*math32.NewRotation(a.sweep.A), math32.SubVec2(j.localAnchorA, a.sweep.LocalCenter))
	rB := rotVec(*math32.NewRotation(b.sweep.A), math32.SubVec2(j.localAnchorB, b.sweep.LocalCenter))

	d := math32.SubVec2(math32.AddVec2(b.sweep.C, rB), math32.AddVec2(a.sweep.C, rA))
	u, length := math32.NormalizeVec2(d)
	if length < 1.1920929e-7 {
		u = math32.Vector2{X: 1, Y: 0}
		length = 0
	}
	c := length - j.length

	impulse := -j.invMassTotal * c
	p := math32.ScaleVec2(u, impulse)

	a.sweep.C = math32.SubVec2(a.sweep.C, math32.ScaleVec2(p, a.invMass))
	a.sweep.A -= a.invI * math32.CrossVec2(rA, p)
	b.sweep.C = math32.AddVec2(b.sweep.C, math32.ScaleVec2(p, b.invMass))
	b.sweep.A += b.invI * math32.CrossVec2(rB, p)

	a.synchronizeTransform()
	b.synchronizeTransform()

	return math32.Abs(c) <= positionSlop
}
