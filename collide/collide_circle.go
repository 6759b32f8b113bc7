package collide

import (
	"github.com/driftwood/phys2d/math32"
	"github.com/driftwood/phys2d/shape"
)

// CollideCircles generates a manifold for two overlapping circles.
func CollideCircles(a *shape.CircleShape, xfA math32.Transform, b *shape.CircleShape, xfB math32.Transform) Manifold {

	m := Manifold{Type: ManifoldCircles}

	pA := xfA.TransformPoint(a.Center)
	pB := xfB.TransformPoint(b.Center)
	d := math32.SubVec2(pB, pA)
	distSq := math32.DotVec2(d, d)
	radius := a.Radius + b.Radius
	if distSq > radius*radius {
		return m
	}

	m.LocalPoint = a.Center
	m.Points = []ManifoldPoint{{LocalPoint: b.Center}}
	return m
}
