package collide

import (
	"github.com/driftwood/phys2d/math32"
)

// ManifoldType distinguishes how a Manifold's local point/normal should be
// interpreted when computing world points.
type ManifoldType int

const (
	ManifoldCircles ManifoldType = iota
	ManifoldFaceA
	ManifoldFaceB
)

// MaxManifoldPoints bounds the number of simultaneous contact points a
// single manifold can carry (two, for a face-on-face clip).
const MaxManifoldPoints = 2

// ManifoldPoint is one contact point, in the reference shape's local frame,
// plus the impulses the contact solver last applied at it. Manifold
// generation creates every point with zero impulses; nothing carries the
// impulses of a previous manifold over to a new one.
type ManifoldPoint struct {
	LocalPoint   math32.Vector2
	NormalImpulse  float32
	TangentImpulse float32
}

// Manifold is the output of narrow-phase collision between two fixtures.
type Manifold struct {
	Type        ManifoldType
	LocalNormal math32.Vector2 // usable for Face types
	LocalPoint  math32.Vector2 // usable for Face types, or circle center for Circles
	Points      []ManifoldPoint
}

// WorldManifold expands a Manifold (which is expressed in local coordinates
// for warm-start stability across small body motions) into world-space
// contact points and a shared normal, for consumption by the contact
// solver.
type WorldManifold struct {
	Normal      math32.Vector2
	Points      []math32.Vector2
	Separations []float32 // per-point penetration (negative) or gap (positive) along Normal
}

// ComputeWorldManifold expands manifold m, generated between shapes with
// radii radiusA/radiusB at transforms xfA/xfB, into world space. Separations
// is the real per-point distance along Normal between the two shapes'
// surfaces, computed before the contact points themselves are collapsed to
// the midpoint between those surfaces (which would otherwise discard it).
func ComputeWorldManifold(m *Manifold, xfA math32.Transform, radiusA float32, xfB math32.Transform, radiusB float32) WorldManifold {

	wm := WorldManifold{Points: make([]math32.Vector2, len(m.Points)), Separations: make([]float32, len(m.Points))}
	if len(m.Points) == 0 {
		return wm
	}

	switch m.Type {
	case ManifoldCircles:
		pointA := xfA.TransformPoint(m.LocalPoint)
		pointB := xfB.TransformPoint(m.Points[0].LocalPoint)
		normal, length := math32.NormalizeVec2(math32.SubVec2(pointB, pointA))
		if length < 1.1920929e-7 {
			normal = math32.Vector2{X: 1, Y: 0}
		}
		wm.Normal = normal
		cA := math32.AddVec2(pointA, math32.ScaleVec2(normal, radiusA))
		cB := math32.AddVec2(pointB, math32.ScaleVec2(normal, -radiusB))
		wm.Points[0] = math32.ScaleVec2(math32.AddVec2(cA, cB), 0.5)
		wm.Separations[0] = math32.DotVec2(math32.SubVec2(cB, cA), normal)

	case ManifoldFaceA:
		normal := xfA.Rotation.RotateVector(m.LocalNormal)
		wm.Normal = normal
		planePoint := xfA.TransformPoint(m.LocalPoint)
		for i, p := range m.Points {
			clipPoint := xfB.TransformPoint(p.LocalPoint)
			cA := math32.AddVec2(clipPoint, math32.ScaleVec2(normal, radiusA-math32.DotVec2(math32.SubVec2(clipPoint, planePoint), normal)))
			cB := math32.AddVec2(clipPoint, math32.ScaleVec2(normal, -radiusB))
			wm.Points[i] = math32.ScaleVec2(math32.AddVec2(cA, cB), 0.5)
			wm.Separations[i] = math32.DotVec2(math32.SubVec2(cB, cA), normal)
		}

	case ManifoldFaceB:
		normal := xfB.Rotation.RotateVector(m.LocalNormal)
		planePoint := xfB.TransformPoint(m.LocalPoint)
		for i, p := range m.Points {
			clipPoint := xfA.TransformPoint(p.LocalPoint)
			cB := math32.AddVec2(clipPoint, math32.ScaleVec2(normal, radiusB-math32.DotVec2(math32.SubVec2(clipPoint, planePoint), normal)))
			cA := math32.AddVec2(clipPoint, math32.ScaleVec2(normal, -radiusA))
			wm.Points[i] = math32.ScaleVec2(math32.AddVec2(cA, cB), 0.5)
			wm.Separations[i] = math32.DotVec2(math32.SubVec2(cA, cB), normal)
		}
		// Ensure the normal points from A to B, as in the other cases.
		wm.Normal = math32.NegVec2(normal)
	}

	return wm
}
