package collide

import (
	"github.com/driftwood/phys2d/math32"
	"github.com/driftwood/phys2d/shape"
)

// clipVertex is a vertex carried through clipSegmentToLine, tagged with the
// incident-edge vertex or reference-edge side plane that produced it. The
// tag is not copied into the resulting ManifoldPoints.
type clipVertex struct {
	v   math32.Vector2
	id  int
}

// CollidePolygons generates a manifold for two convex polygons using the
// separating axis test to find the reference face, then clips the incident
// face against the reference face's side planes.
func CollidePolygons(a *shape.PolygonShape, xfA math32.Transform, b *shape.PolygonShape, xfB math32.Transform) Manifold {

	totalRadius := a.Radius + b.Radius

	edgeA, sepA := findMaxSeparation(a, xfA, b, xfB)
	if sepA > totalRadius {
		return Manifold{}
	}

	edgeB, sepB := findMaxSeparation(b, xfB, a, xfA)
	if sepB > totalRadius {
		return Manifold{}
	}

	var poly1, poly2 *shape.PolygonShape
	var xf1, xf2 math32.Transform
	var edge1 int
	flip := false

	const tol = 0.1 * 0.005 // k_tol, favors A as reference face unless B's separation is clearly larger
	if sepB > sepA+tol {
		poly1, xf1, edge1 = b, xfB, edgeB
		poly2, xf2 = a, xfA
		flip = true
	} else {
		poly1, xf1, edge1 = a, xfA, edgeA
		poly2, xf2 = b, xfB
		flip = false
	}

	refNormal := poly1.Normals[edge1]

	// Find the incident edge on poly2: the one whose normal is most
	// anti-parallel to the reference normal.
	n2 := xf1.Rotation.RotateVector(refNormal)
	n2 = xf2.Rotation.InvRotateVector(n2)
	incident := 0
	minDot := float32(1e9)
	for i, n := range poly2.Normals {
		d := math32.DotVec2(n2, n)
		if d < minDot {
			minDot = d
			incident = i
		}
	}

	i11, i12 := edge1, (edge1+1)%len(poly1.Vertices)
	v11 := xf1.TransformPoint(poly1.Vertices[i11])
	v12 := xf1.TransformPoint(poly1.Vertices[i12])

	i21, i22 := incident, (incident+1)%len(poly2.Vertices)
	v21 := xf2.TransformPoint(poly2.Vertices[i21])
	v22 := xf2.TransformPoint(poly2.Vertices[i22])

	incidentEdge := [2]clipVertex{{v21, i21}, {v22, i22}}

	tangent, _ := math32.NormalizeVec2(math32.SubVec2(v12, v11))
	worldNormal := math32.CrossVecScalar(tangent, 1)

	// Clip to the side planes of the reference edge.
	sideOffset1 := -math32.DotVec2(tangent, v11)
	clip1, n1 := clipSegmentToLine(incidentEdge, math32.NegVec2(tangent), sideOffset1, i11)
	if n1 < 2 {
		return Manifold{}
	}

	sideOffset2 := math32.DotVec2(tangent, v12)
	clip2, n2c := clipSegmentToLine(clip1, tangent, sideOffset2, i12)
	if n2c < 2 {
		return Manifold{}
	}

	m := Manifold{}
	if flip {
		m.Type = ManifoldFaceB
	} else {
		m.Type = ManifoldFaceA
	}
	m.LocalNormal = refNormal
	m.LocalPoint = poly1.Vertices[i11]

	points := make([]ManifoldPoint, 0, 2)
	for _, cv := range clip2 {
		separation := math32.DotVec2(worldNormal, cv.v) - math32.DotVec2(worldNormal, v11)
		if separation <= totalRadius {
			local := xf2.InvTransformPoint(cv.v)
			points = append(points, ManifoldPoint{LocalPoint: local})
		}
	}
	m.Points = points
	return m
}

// findMaxSeparation returns the edge of poly1 with the largest separation
// from poly2 (the candidate separating axis), and that separation value.
func findMaxSeparation(poly1 *shape.PolygonShape, xf1 math32.Transform, poly2 *shape.PolygonShape, xf2 math32.Transform) (int, float32) {

	bestEdge := 0
	bestSeparation := float32(-1e9)

	for i, n1 := range poly1.Normals {
		worldNormal := xf1.Rotation.RotateVector(n1)
		localNormal := xf2.Rotation.InvRotateVector(worldNormal)

		support := poly2.Vertices[0]
		minDot := math32.DotVec2(localNormal, support)
		for _, v := range poly2.Vertices[1:] {
			d := math32.DotVec2(localNormal, v)
			if d < minDot {
				minDot = d
				support = v
			}
		}

		v1World := xf1.TransformPoint(poly1.Vertices[i])
		supportWorld := xf2.TransformPoint(support)
		separation := math32.DotVec2(worldNormal, math32.SubVec2(supportWorld, v1World))

		if separation > bestSeparation {
			bestSeparation = separation
			bestEdge = i
		}
	}
	return bestEdge, bestSeparation
}

// clipSegmentToLine clips the segment vIn against the half-plane
// {x : dot(normal, x) <= offset}. Points already inside keep their tags;
// a point created by the clip is tagged with vertexIndexA, the reference
// vertex whose side plane produced it.
func clipSegmentToLine(vIn [2]clipVertex, normal math32.Vector2, offset float32, vertexIndexA int) ([2]clipVertex, int) {

	var vOut [2]clipVertex
	count := 0

	dist0 := math32.DotVec2(normal, vIn[0].v) - offset
	dist1 := math32.DotVec2(normal, vIn[1].v) - offset

	if dist0 <= 0 {
		vOut[count] = vIn[0]
		count++
	}
	if dist1 <= 0 {
		vOut[count] = vIn[1]
		count++
	}

	if dist0*dist1 < 0 {
		t := dist0 / (dist0 - dist1)
		interp := math32.LerpVec2(vIn[0].v, vIn[1].v, t)
		vOut[count] = clipVertex{v: interp, id: vertexIndexA}
		count++
	}

	return vOut, count
}
