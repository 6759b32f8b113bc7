package shape

import (
	"github.com/driftwood/phys2d/math32"
)

// EdgeShape is a single line segment between V1 and V2, used for static
// geometry such as the ground. Edges have zero mass (they cannot be
// attached to a dynamic body usefully, matching the teacher's static-only
// shapes). The collide routines take the edge as their first shape; the
// world's manifold dispatch flips the result when the edge is fixture B.
type EdgeShape struct {
	V1, V2 math32.Vector2
}

// NewEdge creates and returns a pointer to a new EdgeShape between a and b.
func NewEdge(a, b math32.Vector2) *EdgeShape {

	return &EdgeShape{V1: a, V2: b}
}

func (e *EdgeShape) GetType() Type {

	return Edge
}

func (e *EdgeShape) GetRadius() float32 {

	return PolygonRadius
}

func (e *EdgeShape) TestPoint(xf math32.Transform, p math32.Vector2) bool {

	// A segment has no interior; nothing is ever "inside" it.
	return false
}

func (e *EdgeShape) ComputeAABB(xf math32.Transform) math32.Box2 {

	v1 := xf.TransformPoint(e.V1)
	v2 := xf.TransformPoint(e.V2)
	min := math32.MinVec2(v1, v2)
	max := math32.MaxVec2(v1, v2)
	r := math32.Vector2{X: e.GetRadius(), Y: e.GetRadius()}
	min = math32.SubVec2(min, r)
	max = math32.AddVec2(max, r)
	return *math32.NewBox2(&min, &max)
}

func (e *EdgeShape) ComputeMass(density float32) MassData {

	mid := math32.LerpVec2(e.V1, e.V2, 0.5)
	return MassData{Mass: 0, Center: mid, I: 0}
}
