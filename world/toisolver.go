package world

import (
	"github.com/driftwood/phys2d/collide"
	"github.com/driftwood/phys2d/math32"
)

// toiSolver runs position-only correction (no velocity change) for the
// contact set gathered around a single TOI event, pushing the subject body
// apart from its partners with Baumgarte factor 0.75, per the TOI sweep
// driver's §4.3 step 6. The set holds only contacts whose partner is not
// dynamic; such partners have zero inverse mass, so only the subject moves.
type toiSolver struct {
	contacts []*Contact
	subject  *Body
}

func newTOISolver(contacts []*Contact, subject *Body) *toiSolver {
	return &toiSolver{contacts: contacts, subject: subject}
}

const toiBaumgarte = 0.75
const toiMaxLinearCorrection = 0.2

// solve runs one Gauss-Seidel position-correction sweep over the contact
// set and reports whether every contact's separation is within tolerance
// (the caller runs this in a loop up to 20 times).
func (s *toiSolver) solve() bool {

	minSeparation := float32(0)

	for _, c := range s.contacts {
		a, b := c.FixtureA.Body, c.FixtureB.Body

		wm := collide.ComputeWorldManifold(&c.manifold, a.xf, c.FixtureA.Shape.GetRadius(), b.xf, c.FixtureB.Shape.GetRadius())

		for i := range c.manifold.Points {
			rA := math32.SubVec2(wm.Points[i], a.sweep.C)
			rB := math32.SubVec2(wm.Points[i], b.sweep.C)

			separation := wm.Separations[i]
			if separation < minSeparation {
				minSeparation = separation
			}

			cCorr := math32.Clamp(toiBaumgarte*(separation+positionSlop), -toiMaxLinearCorrection, 0)

			rnA := math32.CrossVec2(rA, wm.Normal)
			rnB := math32.CrossVec2(rB, wm.Normal)
			k := a.invMass + b.invMass + a.invI*rnA*rnA + b.invI*rnB*rnB
			if k <= 0 {
				continue
			}
			impulse := -cCorr / k
			p := math32.ScaleVec2(wm.Normal, impulse)

			a.sweep.C = math32.SubVec2(a.sweep.C, math32.ScaleVec2(p, a.invMass))
			a.sweep.A -= a.invI * math32.CrossVec2(rA, p)
			b.sweep.C = math32.AddVec2(b.sweep.C, math32.ScaleVec2(p, b.invMass))
			b.sweep.A += b.invI * math32.CrossVec2(rB, p)

			a.synchronizeTransform()
			b.synchronizeTransform()
		}
	}

	return minSeparation > -1.5*positionSlop
}
