package world

// contactManager owns the contact list and the broad phase, discovering
// new contacts from overlapping proxies and regenerating manifolds for the
// existing ones each step.
type contactManager struct {
	world      *World
	broadPhase *broadPhase
	contacts   *Contact
	count      int

	filter   ContactFilter
	listener ContactListener
}

func newContactManager(w *World) *contactManager {
	return &contactManager{world: w, broadPhase: newBroadPhase()}
}

// findNewContacts scans proxies moved since the last call and creates a
// Contact for any newly-overlapping fixture pair that doesn't already have
// one, isn't filtered out, and doesn't belong to the same body.
func (cm *contactManager) findNewContacts() {

	moved := cm.broadPhase.consumeMoves()
	for _, id := range moved {
		p := &cm.broadPhase.proxies[id]
		if !p.active {
			continue
		}
		fa := p.fixture
		for _, otherID := range cm.broadPhase.queryOverlaps(p.aabb) {
			if otherID == id {
				continue
			}
			op := &cm.broadPhase.proxies[otherID]
			if !op.active {
				continue
			}
			fb := op.fixture
			if fa.Body == fb.Body {
				continue
			}
			if cm.hasContact(fa, fb) {
				continue
			}
			if cm.filter != nil && !cm.filter.ShouldCollide(fa, fb) {
				continue
			}
			cm.addContact(fa, fb)
		}
	}
}

func (cm *contactManager) hasContact(fa, fb *Fixture) bool {
	for c := cm.contacts; c != nil; c = c.next {
		if (c.FixtureA == fa && c.FixtureB == fb) || (c.FixtureA == fb && c.FixtureB == fa) {
			return true
		}
	}
	return false
}

func (cm *contactManager) addContact(fa, fb *Fixture) {

	c := newContact(fa, fb)

	c.next = cm.contacts
	if cm.contacts != nil {
		cm.contacts.prev = c
	}
	cm.contacts = c
	cm.count++

	bodyA, bodyB := fa.Body, fb.Body

	c.edgeA.Other = bodyB
	c.edgeA.Contact = c
	c.edgeA.Next = bodyA.contactList
	if bodyA.contactList != nil {
		bodyA.contactList.Prev = &c.edgeA
	}
	bodyA.contactList = &c.edgeA

	c.edgeB.Other = bodyA
	c.edgeB.Contact = c
	c.edgeB.Next = bodyB.contactList
	if bodyB.contactList != nil {
		bodyB.contactList.Prev = &c.edgeB
	}
	bodyB.contactList = &c.edgeB

	bodyA.SetAwake(true)
	bodyB.SetAwake(true)
}

func (cm *contactManager) destroy(c *Contact) {

	if c.IsTouching() && cm.listener != nil {
		cm.listener.EndContact(c)
	}

	bodyA, bodyB := c.FixtureA.Body, c.FixtureB.Body
	unlinkContactEdge(bodyA, &c.edgeA)
	unlinkContactEdge(bodyB, &c.edgeB)

	if c.prev != nil {
		c.prev.next = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	}
	if cm.contacts == c {
		cm.contacts = c.next
	}
	cm.count--
}

func unlinkContactEdge(b *Body, e *ContactEdge) {

	if e.Prev != nil {
		e.Prev.Next = e.Next
	}
	if e.Next != nil {
		e.Next.Prev = e.Prev
	}
	if b.contactList == e {
		b.contactList = e.Next
	}
	e.Prev = nil
	e.Next = nil
}

// collide regenerates manifolds for all existing contacts, destroying any
// whose fixtures' fattened AABBs no longer overlap or that the ContactFilter
// rejects when the contact is flagged for re-filtering, firing
// BeginContact/EndContact/PreSolve as touching state changes.
func (cm *contactManager) collide() {

	c := cm.contacts
	for c != nil {
		next := c.next

		fa, fb := c.FixtureA, c.FixtureB

		if !fa.Body.IsActive() || !fb.Body.IsActive() {
			c = next
			continue
		}

		if c.flags&contactFilter != 0 {
			if cm.filter != nil && !cm.filter.ShouldCollide(fa, fb) {
				cm.destroy(c)
				c = next
				continue
			}
			c.flags &^= contactFilter
		}

		activeA := fa.Body.kind == DynamicBody
		activeB := fb.Body.kind == DynamicBody
		if !activeA && !activeB {
			c = next
			continue
		}

		overlap := cm.broadPhase.proxies[fa.proxyID].aabb.IsIntersectionBox(&cm.broadPhase.proxies[fb.proxyID].aabb)
		if !overlap {
			cm.destroy(c)
			c = next
			continue
		}

		c.update(cm.listener)
		c = next
	}
}
