// Package collide implements narrow-phase manifold generation (circle,
// edge and polygon fixtures) and the conservative-advancement time-of-impact
// routine the TOI sweep driver in package world relies on.
package collide

import (
	"github.com/driftwood/phys2d/math32"
	"github.com/driftwood/phys2d/shape"
)

// DistanceProxy is a small, dependency-free view of a shape's vertices plus
// skin radius, used by the GJK distance routine and by time of impact. Any
// Shape can be reduced to a proxy; a body's two swept poses and its
// fixtures' proxies are all TimeOfImpact needs.
type DistanceProxy struct {
	Vertices []math32.Vector2
	Radius   float32
}

// MakeProxy builds a DistanceProxy for the given shape. The childIndex
// parameter is accepted for interface symmetry with multi-child shapes
// (chains of edges); this module's shapes are all single-child.
func MakeProxy(s shape.Shape, childIndex int) DistanceProxy {

	switch sh := s.(type) {
	case *shape.CircleShape:
		return DistanceProxy{Vertices: []math32.Vector2{sh.Center}, Radius: sh.Radius}
	case *shape.EdgeShape:
		return DistanceProxy{Vertices: []math32.Vector2{sh.V1, sh.V2}, Radius: sh.GetRadius()}
	case *shape.PolygonShape:
		return DistanceProxy{Vertices: sh.Vertices, Radius: sh.Radius}
	default:
		panic("collide: unsupported shape in MakeProxy")
	}
}

// Support returns the index of the vertex furthest in direction d.
func (p *DistanceProxy) Support(d math32.Vector2) int {

	best := 0
	bestValue := math32.DotVec2(p.Vertices[0], d)
	for i := 1; i < len(p.Vertices); i++ {
		v := math32.DotVec2(p.Vertices[i], d)
		if v > bestValue {
			bestValue = v
			best = i
		}
	}
	return best
}
