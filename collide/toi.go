package collide

import (
	"github.com/driftwood/phys2d/math32"
)

// TOIState classifies the outcome of a CalculateTimeOfImpact query.
type TOIState int

const (
	TOIUnknown TOIState = iota
	TOIFailed
	TOIOverlapped
	TOITouching
	TOISeparated
)

// linearSlop is the collision tolerance used throughout the TOI driver,
// matching the slop used by the contact solver's position correction.
const linearSlop = 0.005

// TOIInput bundles the two proxies, their sweeps, and the upper bound TMax
// of the normalized time interval [0, TMax] searched by a TOI query.
type TOIInput struct {
	ProxyA, ProxyB DistanceProxy
	SweepA, SweepB math32.Sweep
	TMax           float32 // usually 1.0
}

// TOIOutput is the result of CalculateTimeOfImpact.
type TOIOutput struct {
	State TOIState
	T     float32
}

// CalculateTimeOfImpact computes the earliest time in [0, input.TMax] at
// which the two swept proxies come within target distance of each other.
// Each outer iteration measures the distance between the cores at time t1,
// fixes a separating axis and one witness vertex per proxy there, and
// bisects in [t1, t2] for the time at which the separation along that axis
// reaches the target; that time becomes the next t1.
func CalculateTimeOfImpact(input TOIInput) TOIOutput {

	sweepA := input.SweepA
	sweepB := input.SweepB
	sweepA.Normalize()
	sweepB.Normalize()

	tMax := input.TMax
	totalRadius := input.ProxyA.Radius + input.ProxyB.Radius
	target := math32.Max(linearSlop, totalRadius-3*linearSlop)
	tolerance := float32(0.25 * linearSlop)

	// Distances are measured between the cores (radius 0); the radii are
	// accounted for in target.
	coreA, coreB := input.ProxyA, input.ProxyB
	coreA.Radius, coreB.Radius = 0, 0

	t1 := float32(0)
	const maxIterations = 20
	iter := 0

	var xfA, xfB math32.Transform

	for {
		sweepA.GetTransform(&xfA, t1)
		sweepB.GetTransform(&xfB, t1)

		dist := Distance(coreA, xfA, coreB, xfB)

		if dist.Distance <= 0 {
			return TOIOutput{State: TOIOverlapped, T: 0}
		}
		if dist.Distance < target+tolerance {
			return TOIOutput{State: TOITouching, T: t1}
		}

		// Fix a separating axis and witness vertices at t1, then look for
		// the time in [t1, t2] at which the separation along that axis
		// reaches target.
		indexA, indexB, axis := separatingAxis(coreA, xfA, coreB, xfB)

		done := false
		t2 := tMax
		pushBackIter := 0
		for {
			s2 := evaluateSeparation(input.ProxyA, sweepA, indexA, input.ProxyB, sweepB, indexB, axis, t2)

			if s2 > target+tolerance {
				t1 = t2
				done = true
				break
			}
			if s2 > target-tolerance {
				t1 = t2
				break
			}

			// Bisect in [t1, t2] for the crossing point.
			a1, a2 := t1, t2
			for i := 0; i < 50; i++ {
				mid := 0.5 * (a1 + a2)
				sMid := evaluateSeparation(input.ProxyA, sweepA, indexA, input.ProxyB, sweepB, indexB, axis, mid)
				if math32.Abs(sMid-target) < tolerance {
					a2 = mid
					break
				}
				if sMid > target {
					a1 = mid
				} else {
					a2 = mid
				}
			}
			t2 = a2

			pushBackIter++
			if pushBackIter == 20 {
				break
			}
		}

		iter++
		if done || t1 >= tMax {
			break
		}
		if iter == maxIterations {
			return TOIOutput{State: TOIFailed, T: t1}
		}
	}

	if t1 >= tMax {
		return TOIOutput{State: TOISeparated, T: tMax}
	}
	return TOIOutput{State: TOITouching, T: t1}
}

// separatingAxis picks a witness axis and vertex indices at the current
// poses, used as a fixed direction while bisecting for the crossing time.
func separatingAxis(proxyA DistanceProxy, xfA math32.Transform, proxyB DistanceProxy, xfB math32.Transform) (int, int, math32.Vector2) {

	dist := Distance(proxyA, xfA, proxyB, xfB)
	axis, length := math32.NormalizeVec2(math32.SubVec2(dist.PointB, dist.PointA))
	if length < 1.1920929e-7 {
		axis = math32.Vector2{X: 1, Y: 0}
	}
	indexA := proxyA.Support(rotateInv(xfA, axis))
	indexB := proxyB.Support(rotateInv(xfB, math32.NegVec2(axis)))
	return indexA, indexB, axis
}

// evaluateSeparation returns the separation along axis (fixed in the frame
// established at t1) between the two proxies' chosen vertices, swept to
// normalized time t.
func evaluateSeparation(proxyA DistanceProxy, sweepA math32.Sweep, indexA int, proxyB DistanceProxy, sweepB math32.Sweep, indexB int, axis math32.Vector2, t float32) float32 {

	var xfA, xfB math32.Transform
	sweepA.GetTransform(&xfA, t)
	sweepB.GetTransform(&xfB, t)

	pA := xfA.TransformPoint(proxyA.Vertices[indexA])
	pB := xfB.TransformPoint(proxyB.Vertices[indexB])
	return math32.DotVec2(math32.SubVec2(pB, pA), axis)
}
