package collide

import (
	"github.com/driftwood/phys2d/math32"
	"github.com/driftwood/phys2d/shape"
)

// CollidePolygonAndCircle generates a manifold between a convex polygon and
// a circle by finding the polygon face closest to the circle's center, then
// resolving the face and the two adjacent vertex (Voronoi) regions.
func CollidePolygonAndCircle(poly *shape.PolygonShape, xfPoly math32.Transform, circle *shape.CircleShape, xfCircle math32.Transform) Manifold {

	center := xfPoly.InvTransformPoint(xfCircle.TransformPoint(circle.Center))

	totalRadius := poly.Radius + circle.Radius

	separation := float32(-1e9)
	normalIndex := 0
	for i, n := range poly.Normals {
		s := math32.DotVec2(n, math32.SubVec2(center, poly.Vertices[i]))
		if s > totalRadius {
			return Manifold{}
		}
		if s > separation {
			separation = s
			normalIndex = i
		}
	}

	n := len(poly.Vertices)
	v1 := poly.Vertices[normalIndex]
	v2 := poly.Vertices[(normalIndex+1)%n]

	var localNormal, localPoint math32.Vector2

	if separation < 1.1920929e-7 {
		localNormal = poly.Normals[normalIndex]
		localPoint = math32.ScaleVec2(math32.AddVec2(v1, v2), 0.5)
	} else {
		u1 := math32.DotVec2(math32.SubVec2(center, v1), math32.SubVec2(v2, v1))
		u2 := math32.DotVec2(math32.SubVec2(center, v2), math32.SubVec2(v1, v2))

		switch {
		case u1 <= 0:
			d := math32.SubVec2(center, v1)
			if math32.DotVec2(d, d) > totalRadius*totalRadius {
				return Manifold{}
			}
			localNormal, _ = math32.NormalizeVec2(d)
			localPoint = v1
		case u2 <= 0:
			d := math32.SubVec2(center, v2)
			if math32.DotVec2(d, d) > totalRadius*totalRadius {
				return Manifold{}
			}
			localNormal, _ = math32.NormalizeVec2(d)
			localPoint = v2
		default:
			localNormal = poly.Normals[normalIndex]
			localPoint = math32.ScaleVec2(math32.AddVec2(v1, v2), 0.5)
		}
	}

	return Manifold{
		Type:        ManifoldFaceA,
		LocalNormal: localNormal,
		LocalPoint:  localPoint,
		Points:      []ManifoldPoint{{LocalPoint: circle.Center}},
	}
}
