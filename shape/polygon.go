package shape

import (
	"github.com/driftwood/phys2d/math32"
)

// MaxPolygonVertices bounds the size of a PolygonShape, matching the usual
// fixed-size convention so the narrow phase can use arrays instead of heap
// allocation in the hot path.
const MaxPolygonVertices = 8

// PolygonShape is a solid convex polygon given by a counter-clockwise
// vertex loop and their outward edge normals, plus a small skin radius.
type PolygonShape struct {
	Centroid math32.Vector2
	Vertices []math32.Vector2
	Normals  []math32.Vector2
	Radius   float32
}

// NewPolygon creates and returns a pointer to a new PolygonShape from a
// counter-clockwise (or arbitrary order — it will be convex-hulled) set of
// points. Panics if fewer than 3 distinct points are given or the hull
// would exceed MaxPolygonVertices.
func NewPolygon(points []math32.Vector2) *PolygonShape {

	hull := computeHull(points)
	if len(hull) < 3 {
		panic("shape: polygon requires at least 3 non-collinear points")
	}
	if len(hull) > MaxPolygonVertices {
		panic("shape: polygon exceeds MaxPolygonVertices")
	}

	p := &PolygonShape{
		Vertices: hull,
		Normals:  make([]math32.Vector2, len(hull)),
		Radius:   PolygonRadius,
	}
	n := len(hull)
	for i := 0; i < n; i++ {
		edge := math32.SubVec2(hull[(i+1)%n], hull[i])
		normal, _ := math32.NormalizeVec2(math32.Vector2{X: edge.Y, Y: -edge.X})
		p.Normals[i] = normal
	}
	p.Centroid = polygonCentroid(hull)
	return p
}

// NewBox creates and returns a pointer to a new PolygonShape shaped as a box
// with the given half-widths, centered at the local origin.
func NewBox(hx, hy float32) *PolygonShape {

	return NewPolygon([]math32.Vector2{
		{X: -hx, Y: -hy},
		{X: hx, Y: -hy},
		{X: hx, Y: hy},
		{X: -hx, Y: hy},
	})
}

func (p *PolygonShape) GetType() Type {

	return Polygon
}

func (p *PolygonShape) GetRadius() float32 {

	return p.Radius
}

func (p *PolygonShape) TestPoint(xf math32.Transform, point math32.Vector2) bool {

	local := xf.InvTransformPoint(point)
	for i, n := range p.Normals {
		d := math32.DotVec2(n, math32.SubVec2(local, p.Vertices[i]))
		if d > 0 {
			return false
		}
	}
	return true
}

func (p *PolygonShape) ComputeAABB(xf math32.Transform) math32.Box2 {

	min := xf.TransformPoint(p.Vertices[0])
	max := min
	for i := 1; i < len(p.Vertices); i++ {
		v := xf.TransformPoint(p.Vertices[i])
		min = math32.MinVec2(min, v)
		max = math32.MaxVec2(max, v)
	}
	r := math32.Vector2{X: p.Radius, Y: p.Radius}
	min = math32.SubVec2(min, r)
	max = math32.AddVec2(max, r)
	return *math32.NewBox2(&min, &max)
}

// ComputeMass computes mass data by decomposing the polygon into triangles
// fanned from the first vertex (standard polygon mass formula).
func (p *PolygonShape) ComputeMass(density float32) MassData {

	var center math32.Vector2
	var area float32
	var i float32

	origin := p.Vertices[0]
	const inv3 = 1.0 / 3.0

	for i2 := 1; i2 < len(p.Vertices)-1; i2++ {
		e1 := math32.SubVec2(p.Vertices[i2], origin)
		e2 := math32.SubVec2(p.Vertices[i2+1], origin)
		d := math32.CrossVec2(e1, e2)

		triArea := 0.5 * d
		area += triArea

		center = math32.AddVec2(center, math32.ScaleVec2(math32.AddVec2(e1, e2), triArea*inv3))

		ex1, ey1 := e1.X, e1.Y
		ex2, ey2 := e2.X, e2.Y
		intx2 := ex1*ex1 + ex1*ex2 + ex2*ex2
		inty2 := ey1*ey1 + ey1*ey2 + ey2*ey2
		i += (0.25 * inv3 * d) * (intx2 + inty2)
	}

	mass := density * area
	if area > 1.1920929e-7 {
		center = math32.ScaleVec2(center, 1.0/area)
	}
	centroidWorld := math32.AddVec2(center, origin)

	momentI := density * i
	// Shift to be about the centroid, then to the local origin.
	momentI -= mass * math32.DotVec2(center, center)
	momentI += mass * math32.DotVec2(centroidWorld, centroidWorld)

	return MassData{Mass: mass, Center: centroidWorld, I: momentI}
}

func polygonCentroid(vs []math32.Vector2) math32.Vector2 {

	var center math32.Vector2
	var area float32
	origin := vs[0]
	for i := 1; i < len(vs)-1; i++ {
		e1 := math32.SubVec2(vs[i], origin)
		e2 := math32.SubVec2(vs[i+1], origin)
		d := math32.CrossVec2(e1, e2)
		triArea := 0.5 * d
		area += triArea
		center = math32.AddVec2(center, math32.ScaleVec2(math32.AddVec2(e1, e2), triArea/3))
	}
	if area > 1.1920929e-7 {
		center = math32.ScaleVec2(center, 1.0/area)
	}
	return math32.AddVec2(center, origin)
}

// computeHull computes the convex hull of points and returns it in
// counter-clockwise order. Uses a simple gift-wrapping pass since fixture
// polygons are small (<= MaxPolygonVertices).
func computeHull(points []math32.Vector2) []math32.Vector2 {

	// Remove duplicates within a small tolerance.
	unique := make([]math32.Vector2, 0, len(points))
	for _, p := range points {
		dup := false
		for _, u := range unique {
			if math32.LengthSqVec2(math32.SubVec2(p, u)) < 1e-8 {
				dup = true
				break
			}
		}
		if !dup {
			unique = append(unique, p)
		}
	}
	if len(unique) < 3 {
		return unique
	}

	// Find the leftmost point (lowest on ties) to start from.
	start := 0
	for i := 1; i < len(unique); i++ {
		if unique[i].X < unique[start].X ||
			(unique[i].X == unique[start].X && unique[i].Y < unique[start].Y) {
			start = i
		}
	}

	hull := make([]math32.Vector2, 0, len(unique))
	current := start
	for {
		hull = append(hull, unique[current])
		next := (current + 1) % len(unique)
		for i := range unique {
			if i == current {
				continue
			}
			cross := math32.CrossVec2(math32.SubVec2(unique[next], unique[current]), math32.SubVec2(unique[i], unique[current]))
			if cross < 0 {
				next = i
			}
		}
		current = next
		if current == start {
			break
		}
		if len(hull) > len(unique) {
			break // degenerate input guard
		}
	}
	return hull
}
