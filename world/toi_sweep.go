package world

import (
	"github.com/driftwood/phys2d/collide"
)

const maxTOIContacts = 32

// solveTOI is the two-pass continuous-collision sweep: bodies not already
// resolved this step (Toi flag clear) are advanced to their earliest time
// of impact against neighbors and position-corrected, non-bullets first so
// bullets subsequently see a stable backdrop (§4.3).
func (w *World) solveTOI() {

	for c := w.contactManager.contacts; c != nil; c = c.next {
		c.flags |= contactEnabled
		c.toiCount = 0
	}

	for b := w.bodies; b != nil; b = b.next {
		b.sweep.Alpha0 = 0
		if b.flags&flagIsland == 0 || b.kind == KinematicBody || b.kind == StaticBody {
			b.flags |= flagToi
		} else {
			b.flags &^= flagToi
		}
	}

	// Pass 1: non-bullets.
	for b := w.bodies; b != nil; b = b.next {
		if b.flags&flagToi != 0 || b.IsBullet() {
			continue
		}
		w.solveTOIForBody(b)
		b.flags |= flagToi
	}

	// Pass 2: bullets, against the now-resolved backdrop (and each other,
	// culled via BulletHit).
	for b := w.bodies; b != nil; b = b.next {
		if b.flags&flagToi != 0 || !b.IsBullet() {
			continue
		}
		w.solveTOIForBody(b)
		b.flags |= flagToi
	}
}

// solveTOIForBody implements the per-body SolveTOI fixed-point search of
// §4.3: find the earliest-impacting neighbor, advance to it, regenerate
// its manifold, and position-correct against a small contact set around
// the impact. Recurses (bounded by toiCount<=10 and contact count) if the
// user's PreSolve disables the winning contact.
func (w *World) solveTOIForBody(body *Body) {

	var toiContact *Contact
	var toiOther *Body
	toi := float32(1.0)

	found := true
	count := 0
	for iter := 0; found && iter < 50; iter++ {
		found = false
		count = 0

		for ce := body.contactList; ce != nil; ce = ce.Next {
			c := ce.Contact
			if c == toiContact {
				continue
			}

			other := ce.Other
			otherIsDynamic := other.kind == DynamicBody

			if body.IsBullet() {
				if other.flags&flagToi == 0 {
					continue
				}
				if otherIsDynamic && c.flags&contactBulletHit != 0 {
					continue
				}
			} else if otherIsDynamic {
				continue
			}

			if !c.IsEnabled() || c.toiCount > 10 || c.IsSensor() {
				continue
			}

			count++

			proxyA := collide.MakeProxy(c.FixtureA.Shape, c.childA)
			proxyB := collide.MakeProxy(c.FixtureB.Shape, c.childB)
			input := collide.TOIInput{
				ProxyA: proxyA, ProxyB: proxyB,
				SweepA: c.FixtureA.Body.sweep, SweepB: c.FixtureB.Body.sweep,
				TMax: toi,
			}
			output := collide.CalculateTimeOfImpact(input)
			if output.State == collide.TOITouching && output.T < toi {
				toi = output.T
				toiContact = c
				toiOther = other
				found = true
			}
		}

		if count < 2 {
			break
		}
	}

	if toiContact == nil {
		body.advance(1.0)
		return
	}

	backup := body.sweep
	body.advance(toi)
	toiContact.update(w.contactManager.listener)

	if !toiContact.IsEnabled() {
		body.sweep = backup
		body.synchronizeTransform()
		w.solveTOIForBody(body)
		return
	}

	toiContact.toiCount++

	set := make([]*Contact, 0, maxTOIContacts)
	for ce := body.contactList; ce != nil; ce = ce.Next {
		if len(set) >= maxTOIContacts {
			break
		}
		c := ce.Contact
		other := ce.Other
		if other.kind == DynamicBody || !c.IsEnabled() || c.IsSensor() {
			continue
		}
		if c != toiContact {
			c.update(w.contactManager.listener)
			if !c.IsTouching() || !c.IsEnabled() {
				continue
			}
		}
		set = append(set, c)
	}

	solver := newTOISolver(set, body)
	for i := 0; i < 20; i++ {
		if solver.solve() {
			break
		}
	}

	if toiOther != nil && toiOther.kind != StaticBody {
		toiContact.flags |= contactBulletHit
	}
}
