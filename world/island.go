package world

import (
	"github.com/driftwood/phys2d/math32"
)

// island is a reusable buffer of (bodies, contacts, joints) fed to the
// constraint solver once per connected component discovered by the DFS in
// World.solve. Its slices are reset (length zeroed) but not reallocated
// between islands, and grow monotonically across the world's lifetime.
type island struct {
	bodies   []*Body
	contacts []*Contact
	joints   []Joint

	listener ContactListener
}

func newIsland() *island {
	return &island{}
}

func (is *island) reset() {
	is.bodies = is.bodies[:0]
	is.contacts = is.contacts[:0]
	is.joints = is.joints[:0]
}

func (is *island) addBody(b *Body)       { is.bodies = append(is.bodies, b) }
func (is *island) addContact(c *Contact) { is.contacts = append(is.contacts, c) }
func (is *island) addJoint(j Joint)      { is.joints = append(is.joints, j) }

// solve runs the sequential-impulse velocity and position iterations for
// every body/contact/joint gathered into this island, integrates positions
// for the step, and decides whether the whole island can go to sleep.
func (is *island) solve(step TimeStep, gravity math32.Vector2, allowSleep bool) {

	h := step.Dt

	// Integrate velocities (gravity, damping) for every dynamic body.
	for _, b := range is.bodies {
		if b.kind != DynamicBody {
			continue
		}
		v := math32.AddVec2(b.linearVelocity, math32.ScaleVec2(
			math32.AddVec2(math32.ScaleVec2(gravity, b.gravityScale), math32.ScaleVec2(b.force, b.invMass)), h))
		w := b.angularVelocity + h*b.invI*b.torque

		v = math32.ScaleVec2(v, 1.0/(1.0+h*b.linearDamping))
		w *= 1.0 / (1.0 + h*b.angularDamping)

		b.linearVelocity = v
		b.angularVelocity = w
	}

	solver := newContactSolver(step, is.contacts)
	solver.initializeVelocityConstraints()

	for _, j := range is.joints {
		j.InitVelocityConstraints(step)
	}

	if step.WarmStarting {
		solver.warmStart()
		for _, j := range is.joints {
			j.WarmStartJoint()
		}
	}

	for i := 0; i < step.VelocityIterations; i++ {
		for _, j := range is.joints {
			j.SolveVelocityConstraints(step)
		}
		solver.solveVelocityConstraints()
	}

	solver.storeImpulses(is.listener)

	// Integrate positions.
	for _, b := range is.bodies {
		if b.kind == StaticBody {
			continue
		}
		translation := math32.ScaleVec2(b.linearVelocity, h)
		if math32.DotVec2(translation, translation) > maxTranslationSquared {
			ratio := maxTranslation / math32.LengthVec2(translation)
			b.linearVelocity = math32.ScaleVec2(b.linearVelocity, ratio)
		}
		rotation := h * b.angularVelocity
		if rotation*rotation > maxRotationSquared {
			ratio := maxRotation / math32.Abs(rotation)
			b.angularVelocity *= ratio
		}

		b.sweep.C0 = b.sweep.C
		b.sweep.A0 = b.sweep.A
		b.sweep.C = math32.AddVec2(b.sweep.C, math32.ScaleVec2(b.linearVelocity, h))
		b.sweep.A += h * b.angularVelocity
		b.synchronizeTransform()
	}

	for i := 0; i < step.PositionIterations; i++ {
		contactsOkay := solver.solvePositionConstraints()
		jointsOkay := true
		for _, j := range is.joints {
			if !j.SolvePositionConstraints(step) {
				jointsOkay = false
			}
		}
		if contactsOkay && jointsOkay {
			break
		}
	}

	if !allowSleep {
		return
	}

	minSleepTime := float32(1e9)
	for _, b := range is.bodies {
		if b.kind == StaticBody {
			continue
		}
		if !b.IsAllowSleep() ||
			math32.DotVec2(b.linearVelocity, b.linearVelocity) > linearSleepTolerance*linearSleepTolerance ||
			b.angularVelocity*b.angularVelocity > angularSleepTolerance*angularSleepTolerance {
			b.sleepTime = 0
			minSleepTime = 0
		} else {
			b.sleepTime += h
			if b.sleepTime < minSleepTime {
				minSleepTime = b.sleepTime
			}
		}
	}

	if minSleepTime >= timeToSleep {
		for _, b := range is.bodies {
			if b.kind != StaticBody {
				b.SetAwake(false)
			}
		}
	}
}

const (
	maxTranslation        = 2.0
	maxTranslationSquared = maxTranslation * maxTranslation
	maxRotation           = 0.5 * math32.Pi
	maxRotationSquared    = maxRotation * maxRotation
)
