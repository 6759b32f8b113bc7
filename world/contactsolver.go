package world

import (
	"github.com/driftwood/phys2d/collide"
	"github.com/driftwood/phys2d/math32"
)

// velocityConstraintPoint mirrors one ManifoldPoint's solver state: its
// moment arms from each body's center, accumulated normal/tangent
// impulses, effective masses, and the target velocity bias from
// restitution.
type velocityConstraintPoint struct {
	rA, rB         math32.Vector2
	normalImpulse  float32
	tangentImpulse float32
	normalMass     float32
	tangentMass    float32
	velocityBias   float32
	separation     float32
}

// contactConstraint is the per-contact working set the solver iterates:
// cached body indices/masses, the shared normal, friction/restitution, and
// up to collide.MaxManifoldPoints velocityConstraintPoints.
type contactConstraint struct {
	contact *Contact

	bodyA, bodyB *Body

	normal math32.Vector2

	friction    float32
	restitution float32

	points []velocityConstraintPoint
}

type contactSolver struct {
	step        TimeStep
	constraints []*contactConstraint
}

func newContactSolver(step TimeStep, contacts []*Contact) *contactSolver {

	cs := &contactSolver{step: step}
	for _, c := range contacts {
		if !c.IsTouching() || c.IsSensor() {
			continue
		}
		cs.constraints = append(cs.constraints, &contactConstraint{
			contact:     c,
			bodyA:       c.FixtureA.Body,
			bodyB:       c.FixtureB.Body,
			friction:    math32.Sqrt(c.FixtureA.Friction * c.FixtureB.Friction),
			restitution: math32.Max(c.FixtureA.Restitution, c.FixtureB.Restitution),
		})
	}
	return cs
}

func (cs *contactSolver) initializeVelocityConstraints() {

	for _, vc := range cs.constraints {
		c := vc.contact
		a, b := vc.bodyA, vc.bodyB

		wm := collide.ComputeWorldManifold(&c.manifold, a.xf, c.FixtureA.Shape.GetRadius(), b.xf, c.FixtureB.Shape.GetRadius())
		vc.normal = wm.Normal

		vc.points = make([]velocityConstraintPoint, len(c.manifold.Points))
		for i, mp := range c.manifold.Points {
			vp := &vc.points[i]
			vp.rA = math32.SubVec2(wm.Points[i], a.sweep.C)
			vp.rB = math32.SubVec2(wm.Points[i], b.sweep.C)

			rnA := math32.CrossVec2(vp.rA, vc.normal)
			rnB := math32.CrossVec2(vp.rB, vc.normal)
			kNormal := a.invMass + b.invMass + a.invI*rnA*rnA + b.invI*rnB*rnB
			if kNormal > 0 {
				vp.normalMass = 1.0 / kNormal
			}

			tangent := math32.CrossVecScalar(vc.normal, 1)
			rtA := math32.CrossVec2(vp.rA, tangent)
			rtB := math32.CrossVec2(vp.rB, tangent)
			kTangent := a.invMass + b.invMass + a.invI*rtA*rtA + b.invI*rtB*rtB
			if kTangent > 0 {
				vp.tangentMass = 1.0 / kTangent
			}

			relVel := relativeVelocity(a, b, vp.rA, vp.rB)
			vn := math32.DotVec2(relVel, vc.normal)
			if vn < -1.0 {
				vp.velocityBias = -vc.restitution * vn
			}

			vp.normalImpulse = mp.NormalImpulse
			vp.tangentImpulse = mp.TangentImpulse
		}
	}
}

func (cs *contactSolver) warmStart() {

	for _, vc := range cs.constraints {
		a, b := vc.bodyA, vc.bodyB
		tangent := math32.CrossVecScalar(vc.normal, 1)

		for _, vp := range vc.points {
			p := math32.AddVec2(math32.ScaleVec2(vc.normal, vp.normalImpulse), math32.ScaleVec2(tangent, vp.tangentImpulse))
			a.linearVelocity = math32.SubVec2(a.linearVelocity, math32.ScaleVec2(p, a.invMass))
			a.angularVelocity -= a.invI * math32.CrossVec2(vp.rA, p)
			b.linearVelocity = math32.AddVec2(b.linearVelocity, math32.ScaleVec2(p, b.invMass))
			b.angularVelocity += b.invI * math32.CrossVec2(vp.rB, p)
		}
	}
}

func (cs *contactSolver) solveVelocityConstraints() {

	for _, vc := range cs.constraints {
		a, b := vc.bodyA, vc.bodyB
		tangent := math32.CrossVecScalar(vc.normal, 1)

		for i := range vc.points {
			vp := &vc.points[i]

			// Friction first (Coulomb, bounded by the current normal impulse).
			relVel := relativeVelocity(a, b, vp.rA, vp.rB)
			vt := math32.DotVec2(relVel, tangent)
			lambda := vp.tangentMass * -vt

			maxFriction := vc.friction * vp.normalImpulse
			newImpulse := math32.Clamp(vp.tangentImpulse+lambda, -maxFriction, maxFriction)
			lambda = newImpulse - vp.tangentImpulse
			vp.tangentImpulse = newImpulse

			p := math32.ScaleVec2(tangent, lambda)
			a.linearVelocity = math32.SubVec2(a.linearVelocity, math32.ScaleVec2(p, a.invMass))
			a.angularVelocity -= a.invI * math32.CrossVec2(vp.rA, p)
			b.linearVelocity = math32.AddVec2(b.linearVelocity, math32.ScaleVec2(p, b.invMass))
			b.angularVelocity += b.invI * math32.CrossVec2(vp.rB, p)
		}

		for i := range vc.points {
			vp := &vc.points[i]

			relVel := relativeVelocity(a, b, vp.rA, vp.rB)
			vn := math32.DotVec2(relVel, vc.normal)

			lambda := -vp.normalMass * (vn - vp.velocityBias)
			newImpulse := math32.Max(vp.normalImpulse+lambda, 0)
			lambda = newImpulse - vp.normalImpulse
			vp.normalImpulse = newImpulse

			p := math32.ScaleVec2(vc.normal, lambda)
			a.linearVelocity = math32.SubVec2(a.linearVelocity, math32.ScaleVec2(p, a.invMass))
			a.angularVelocity -= a.invI * math32.CrossVec2(vp.rA, p)
			b.linearVelocity = math32.AddVec2(b.linearVelocity, math32.ScaleVec2(p, b.invMass))
			b.angularVelocity += b.invI * math32.CrossVec2(vp.rB, p)
		}
	}
}

// storeImpulses writes the accumulated impulses back into each contact's
// manifold points and reports them to listener.PostSolve if set. The next
// Contact.update replaces the manifold with freshly generated points whose
// impulses are zero, so the stored values do not reach the next step's
// warm start.
func (cs *contactSolver) storeImpulses(listener ContactListener) {

	for _, vc := range cs.constraints {
		var report ContactImpulse
		for i := range vc.points {
			vc.contact.manifold.Points[i].NormalImpulse = vc.points[i].normalImpulse
			vc.contact.manifold.Points[i].TangentImpulse = vc.points[i].tangentImpulse
			report.NormalImpulses[i] = vc.points[i].normalImpulse
			report.TangentImpulses[i] = vc.points[i].tangentImpulse
		}
		if listener != nil {
			listener.PostSolve(vc.contact, &report)
		}
	}
}

// solvePositionConstraints runs one non-linear Gauss-Seidel position
// correction pass (NGS), directly pushing bodies apart along the contact
// normal by a fraction of the penetration depth. Returns whether every
// constraint's separation is above -3*positionSlop.
func (cs *contactSolver) solvePositionConstraints() bool {

	const (
		baumgarte    = 0.2
		maxCorrection = 0.2
	)

	minSeparation := float32(0)

	for _, vc := range cs.constraints {
		a, b := vc.bodyA, vc.bodyB

		wm := collide.ComputeWorldManifold(&vc.contact.manifold, a.xf, vc.contact.FixtureA.Shape.GetRadius(), b.xf, vc.contact.FixtureB.Shape.GetRadius())

		for i := range vc.contact.manifold.Points {
			rA := math32.SubVec2(wm.Points[i], a.sweep.C)
			rB := math32.SubVec2(wm.Points[i], b.sweep.C)

			separation := wm.Separations[i]
			if separation < minSeparation {
				minSeparation = separation
			}

			c := math32.Clamp(baumgarte*(separation+positionSlop), -maxCorrection, 0)
			rnA := math32.CrossVec2(rA, wm.Normal)
			rnB := math32.CrossVec2(rB, wm.Normal)
			k := a.invMass + b.invMass + a.invI*rnA*rnA + b.invI*rnB*rnB
			if k <= 0 {
				continue
			}
			impulse := -c / k

			p := math32.ScaleVec2(wm.Normal, impulse)
			a.sweep.C = math32.SubVec2(a.sweep.C, math32.ScaleVec2(p, a.invMass))
			a.sweep.A -= a.invI * math32.CrossVec2(rA, p)
			b.sweep.C = math32.AddVec2(b.sweep.C, math32.ScaleVec2(p, b.invMass))
			b.sweep.A += b.invI * math32.CrossVec2(rB, p)

			a.synchronizeTransform()
			b.synchronizeTransform()
		}
	}

	return minSeparation > -3*positionSlop
}

func relativeVelocity(a, b *Body, rA, rB math32.Vector2) math32.Vector2 {

	vA := math32.AddVec2(a.linearVelocity, math32.CrossScalarVec(a.angularVelocity, rA))
	vB := math32.AddVec2(b.linearVelocity, math32.CrossScalarVec(b.angularVelocity, rB))
	return math32.SubVec2(vB, vA)
}
