package collide

import (
	"github.com/driftwood/phys2d/math32"
	"github.com/driftwood/phys2d/shape"
)

// edgeAsPolygon views a segment as a degenerate two-vertex convex polygon
// (one normal per side) so CollidePolygons can be reused directly for
// edge-vs-polygon collision instead of duplicating the SAT/clip logic.
func edgeAsPolygon(e *shape.EdgeShape) *shape.PolygonShape {

	edge := math32.SubVec2(e.V2, e.V1)
	n, _ := math32.NormalizeVec2(math32.Vector2{X: edge.Y, Y: -edge.X})
	return &shape.PolygonShape{
		Vertices: []math32.Vector2{e.V1, e.V2},
		Normals:  []math32.Vector2{n, math32.NegVec2(n)},
		Radius:   e.GetRadius(),
		Centroid: math32.LerpVec2(e.V1, e.V2, 0.5),
	}
}

// CollideEdgeAndPolygon generates a manifold between a static edge and a
// convex polygon by treating the edge as a degenerate two-sided polygon.
func CollideEdgeAndPolygon(edge *shape.EdgeShape, xfEdge math32.Transform, poly *shape.PolygonShape, xfPoly math32.Transform) Manifold {

	return CollidePolygons(edgeAsPolygon(edge), xfEdge, poly, xfPoly)
}

// CollideEdgeAndCircle generates a manifold between a static edge and a
// circle, handling the two vertex (Voronoi) regions and the face region.
func CollideEdgeAndCircle(edge *shape.EdgeShape, xfEdge math32.Transform, circle *shape.CircleShape, xfCircle math32.Transform) Manifold {

	// Work in the edge's local frame.
	center := xfEdge.InvTransformPoint(xfCircle.TransformPoint(circle.Center))

	v1, v2 := edge.V1, edge.V2
	e := math32.SubVec2(v2, v1)

	u := math32.DotVec2(math32.SubVec2(v2, center), e)
	v := math32.DotVec2(math32.SubVec2(center, v1), e)

	totalRadius := edge.GetRadius() + circle.Radius

	var localNormal, localPoint math32.Vector2
	var localCircleLocal math32.Vector2 // vertex region closest point, for distance check

	switch {
	case v <= 0:
		localCircleLocal = v1
	case u <= 0:
		localCircleLocal = v2
	default:
		localCircleLocal = math32.Vector2{}
	}

	if v <= 0 || u <= 0 {
		d := math32.SubVec2(center, localCircleLocal)
		distSq := math32.DotVec2(d, d)
		if distSq > totalRadius*totalRadius {
			return Manifold{}
		}
		normal, length := math32.NormalizeVec2(d)
		if length < 1.1920929e-7 {
			edgeDir, _ := math32.NormalizeVec2(e)
			normal = math32.CrossVecScalar(edgeDir, 1)
		}
		localNormal = normal
		localPoint = localCircleLocal
	} else {
		edgeDir, _ := math32.NormalizeVec2(e)
		normal := math32.CrossVecScalar(edgeDir, 1)
		separation := math32.DotVec2(math32.SubVec2(center, v1), normal)
		if separation < 0 {
			normal = math32.NegVec2(normal)
			separation = -separation
		}
		if separation > totalRadius {
			return Manifold{}
		}
		localNormal = normal
		localPoint = v1
	}

	m := Manifold{
		Type:        ManifoldFaceA,
		LocalNormal: localNormal,
		LocalPoint:  localPoint,
		Points:      []ManifoldPoint{{LocalPoint: circle.Center}},
	}
	return m
}
