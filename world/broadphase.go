package world

import (
	"github.com/driftwood/phys2d/math32"
)

// aabbExtension pads every proxy's stored AABB so that small motions don't
// require a broad-phase update on every step.
const aabbExtension = 0.1

// broadPhaseProxy is one entry in the broad phase: a fixture/child pair and
// its currently stored (fattened) AABB.
type broadPhaseProxy struct {
	aabb    math32.Box2
	fixture *Fixture
	child   int
	active  bool
}

// broadPhase is a minimal, from-scratch spatial index: a flat array of
// fattened AABBs queried with brute-force overlap tests. Adequate for the
// scale this module targets; a grid or dynamic tree could replace it
// without touching any other component, since everything here goes
// through CreateProxy/MoveProxy/DestroyProxy and the two query entry
// points.
type broadPhase struct {
	proxies []broadPhaseProxy
	free    []int

	moveBuffer []int // proxy ids whose AABB changed since the last FindNewContacts
}

func newBroadPhase() *broadPhase {
	return &broadPhase{}
}

func (bp *broadPhase) createProxy(aabb math32.Box2, f *Fixture, child int) int {

	fat := fatten(aabb)

	var id int
	if n := len(bp.free); n > 0 {
		id = bp.free[n-1]
		bp.free = bp.free[:n-1]
		bp.proxies[id] = broadPhaseProxy{aabb: fat, fixture: f, child: child, active: true}
	} else {
		id = len(bp.proxies)
		bp.proxies = append(bp.proxies, broadPhaseProxy{aabb: fat, fixture: f, child: child, active: true})
	}
	bp.moveBuffer = append(bp.moveBuffer, id)
	return id
}

func (bp *broadPhase) destroyProxy(id int) {

	bp.proxies[id].active = false
	bp.proxies[id].fixture = nil
	bp.free = append(bp.free, id)
}

func (bp *broadPhase) moveProxy(id int, aabb math32.Box2, displacement math32.Vector2) {

	if id < 0 {
		return
	}
	if bp.proxies[id].aabb.ContainsBox(&aabb) {
		return
	}
	bp.proxies[id].aabb = fatten(aabb)
	bp.moveBuffer = append(bp.moveBuffer, id)
}

func fatten(aabb math32.Box2) math32.Box2 {

	r := math32.Vector2{X: aabbExtension, Y: aabbExtension}
	min := math32.SubVec2(aabb.Min(), r)
	max := math32.AddVec2(aabb.Max(), r)
	return *math32.NewBox2(&min, &max)
}

func unionAABB(a, b math32.Box2) math32.Box2 {
	min := math32.MinVec2(a.Min(), b.Min())
	max := math32.MaxVec2(a.Max(), b.Max())
	return *math32.NewBox2(&min, &max)
}

// queryOverlaps returns the proxy ids whose (fattened) AABB overlaps aabb.
func (bp *broadPhase) queryOverlaps(aabb math32.Box2) []int {

	var out []int
	for id := range bp.proxies {
		p := &bp.proxies[id]
		if !p.active {
			continue
		}
		if p.aabb.IsIntersectionBox(&aabb) {
			out = append(out, id)
		}
	}
	return out
}

// consumeMoves drains and returns the set of proxies moved since the last
// call, used by FindNewContacts to limit pair testing to changed proxies.
func (bp *broadPhase) consumeMoves() []int {

	moves := bp.moveBuffer
	bp.moveBuffer = nil
	return moves
}
