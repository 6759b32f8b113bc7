package collide

import (
	"github.com/driftwood/phys2d/math32"
)

const epsSq = 1.1920929e-7 * 1.1920929e-7

// simplexVertex is one support point of the Minkowski difference, carrying
// both witness points so the final closest points can be recovered.
type simplexVertex struct {
	wA, wB math32.Vector2 // support point on each proxy, in world space
	w      math32.Vector2 // wA - wB
}

// DistanceOutput is the result of a closest-point query between two convex
// proxies placed at given transforms.
type DistanceOutput struct {
	PointA, PointB math32.Vector2 // closest points on each proxy
	Distance       float32
}

// Distance computes the distance between the surfaces of two convex proxies
// (each vertex hull grown by its Radius) at the given transforms using the
// GJK algorithm with a 2D simplex of up to three points. If the proxies
// overlap, Distance is 0 and PointA == PointB is an arbitrary point in the
// overlap region.
func Distance(proxyA DistanceProxy, xfA math32.Transform, proxyB DistanceProxy, xfB math32.Transform) DistanceOutput {

	var simplex [3]simplexVertex
	count := 1

	simplex[0] = makeVertex(proxyA, xfA, proxyB, xfB, 0, 0)

	const maxIterations = 20

	for iter := 0; iter < maxIterations; iter++ {
		count = reduceSimplex(simplex[:count])

		if count == 3 {
			// The origin is contained in the simplex triangle: touching/overlapping.
			break
		}

		d := searchDirection(simplex[:count])
		if math32.DotVec2(d, d) < epsSq {
			break
		}

		indexA := proxyA.Support(rotateInv(xfA, d))
		indexB := proxyB.Support(rotateInv(xfB, negOf(d)))

		newVertex := makeVertex(proxyA, xfA, proxyB, xfB, indexA, indexB)

		// Terminate if the new support point doesn't improve on the
		// existing simplex (no progress — already at the closest feature).
		duplicate := false
		for i := 0; i < count; i++ {
			if simplex[i].w.X == newVertex.w.X && simplex[i].w.Y == newVertex.w.Y {
				duplicate = true
				break
			}
		}
		if duplicate {
			break
		}

		simplex[count] = newVertex
		count++
	}

	pA, pB := closestPoints(simplex[:count])
	dist := math32.LengthVec2(math32.SubVec2(pA, pB))
	if count == 3 {
		dist = 0 // the origin is enclosed: the cores overlap
	}

	// Apply the radii: move each point out to its proxy's surface, or
	// collapse both to their midpoint when the surfaces overlap.
	rA, rB := proxyA.Radius, proxyB.Radius
	if dist > rA+rB && dist > 1.1920929e-7 {
		n := math32.ScaleVec2(math32.SubVec2(pB, pA), 1/dist)
		pA, pB = math32.AddVec2(pA, math32.ScaleVec2(n, rA)), math32.SubVec2(pB, math32.ScaleVec2(n, rB))
		return DistanceOutput{PointA: pA, PointB: pB, Distance: dist - rA - rB}
	}
	p := math32.LerpVec2(pA, pB, 0.5)
	return DistanceOutput{PointA: p, PointB: p, Distance: 0}
}

func makeVertex(proxyA DistanceProxy, xfA math32.Transform, proxyB DistanceProxy, xfB math32.Transform, ia, ib int) simplexVertex {

	wA := xfA.TransformPoint(proxyA.Vertices[ia])
	wB := xfB.TransformPoint(proxyB.Vertices[ib])
	return simplexVertex{wA: wA, wB: wB, w: math32.SubVec2(wA, wB)}
}

func negOf(v math32.Vector2) math32.Vector2 { return math32.NegVec2(v) }

func rotateInv(xf math32.Transform, v math32.Vector2) math32.Vector2 {
	return xf.Rotation.InvRotateVector(v)
}

// searchDirection returns the direction from the simplex's closest point
// on its convex hull toward the origin, used as the next support direction.
func searchDirection(s []simplexVertex) math32.Vector2 {

	switch len(s) {
	case 1:
		return math32.NegVec2(s[0].w)
	case 2:
		e := math32.SubVec2(s[1].w, s[0].w)
		sgn := math32.CrossVec2(e, math32.NegVec2(s[0].w))
		if sgn > 0 {
			return math32.CrossScalarVec(1, e)
		}
		return math32.CrossVecScalar(e, 1)
	default:
		return math32.Vector2{}
	}
}

// reduceSimplex keeps only the vertices that participate in the feature of
// the simplex closest to the origin (point, segment or, if the origin is
// enclosed, the full triangle).
func reduceSimplex(s []simplexVertex) int {

	switch len(s) {
	case 1:
		return 1
	case 2:
		return reduceSegment(s)
	case 3:
		return reduceTriangle(s)
	}
	return len(s)
}

func reduceSegment(s []simplexVertex) int {

	a, b := s[0].w, s[1].w
	ab := math32.SubVec2(b, a)
	t := -math32.DotVec2(a, ab)
	if t <= 0 {
		return 1
	}
	denom := math32.DotVec2(ab, ab)
	if denom == 0 || t >= denom {
		s[0] = s[1]
		return 1
	}
	return 2
}

func reduceTriangle(s []simplexVertex) int {

	// Check whether the origin lies inside the triangle formed by the three
	// Minkowski-difference points; if so the shapes overlap and we report
	// the full simplex (handled by the caller as "touching").
	a, b, c := s[0].w, s[1].w, s[2].w
	abc1 := math32.CrossVec2(math32.SubVec2(b, a), math32.SubVec2(c, a))
	s1 := math32.CrossVec2(math32.SubVec2(b, a), math32.NegVec2(a))
	s2 := math32.CrossVec2(math32.SubVec2(c, b), math32.NegVec2(b))
	s3 := math32.CrossVec2(math32.SubVec2(a, c), math32.NegVec2(c))
	if abc1 == 0 {
		return reduceSegment(s[:2])
	}
	inside := (s1 >= 0 && s2 >= 0 && s3 >= 0) || (s1 <= 0 && s2 <= 0 && s3 <= 0)
	if inside {
		return 3
	}

	// Otherwise collapse to whichever edge (or vertex) is closest.
	best := s[:2]
	bestLen := closestOnSegment(s[0].w, s[1].w)
	if d := closestOnSegment(s[1].w, s[2].w); d < bestLen {
		bestLen = d
		best = []simplexVertex{s[1], s[2]}
	}
	if d := closestOnSegment(s[2].w, s[0].w); d < bestLen {
		best = []simplexVertex{s[2], s[0]}
	}
	copy(s, best)
	return reduceSegment(s[:2])
}

func closestOnSegment(a, b math32.Vector2) float32 {

	ab := math32.SubVec2(b, a)
	denom := math32.DotVec2(ab, ab)
	t := float32(0)
	if denom > 0 {
		t = math32.Clamp(-math32.DotVec2(a, ab)/denom, 0, 1)
	}
	closest := math32.AddVec2(a, math32.ScaleVec2(ab, t))
	return math32.LengthVec2(closest)
}

func closestPoints(s []simplexVertex) (math32.Vector2, math32.Vector2) {

	switch len(s) {
	case 1:
		return s[0].wA, s[0].wB
	case 2:
		a, b := s[0], s[1]
		ab := math32.SubVec2(b.w, a.w)
		denom := math32.DotVec2(ab, ab)
		t := float32(0)
		if denom > 0 {
			t = math32.Clamp(-math32.DotVec2(a.w, ab)/denom, 0, 1)
		}
		pA := math32.LerpVec2(a.wA, b.wA, t)
		pB := math32.LerpVec2(a.wB, b.wB, t)
		return pA, pB
	default:
		// Triangle contains the origin: shapes overlap. Use the centroid
		// of the witness points as a representative (penetration) point.
		var pA, pB math32.Vector2
		for _, v := range s {
			pA = math32.AddVec2(pA, v.wA)
			pB = math32.AddVec2(pB, v.wB)
		}
		n := float32(len(s))
		return math32.ScaleVec2(pA, 1/n), math32.ScaleVec2(pB, 1/n)
	}
}
