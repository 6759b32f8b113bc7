package world

import (
	"github.com/driftwood/phys2d/math32"
	"github.com/driftwood/phys2d/shape"
)

// rayCastFixture tests segment p1->p2 (fraction in [0, maxFraction]) against
// a single fixture's shape, dispatching by concrete shape type.
func rayCastFixture(f *Fixture, p1, p2 math32.Vector2, maxFraction float32) (point, normal math32.Vector2, fraction float32, hit bool) {

	xf := f.Body.Transform()

	switch s := f.Shape.(type) {
	case *shape.CircleShape:
		return rayCastCircle(s, xf, p1, p2, maxFraction)
	case *shape.PolygonShape:
		return rayCastPolygon(s, xf, p1, p2, maxFraction)
	case *shape.EdgeShape:
		return rayCastSegment(s.V1, s.V2, xf, p1, p2, maxFraction)
	}
	return math32.Vector2{}, math32.Vector2{}, 0, false
}

func rayCastCircle(c *shape.CircleShape, xf math32.Transform, p1, p2 math32.Vector2, maxFraction float32) (math32.Vector2, math32.Vector2, float32, bool) {

	position := xf.TransformPoint(c.Center)
	s := math32.SubVec2(p1, position)
	b := math32.DotVec2(s, s) - c.Radius*c.Radius

	d := math32.SubVec2(p2, p1)
	rr := math32.DotVec2(d, d)
	if rr == 0 {
		return math32.Vector2{}, math32.Vector2{}, 0, false
	}

	cc := math32.DotVec2(s, d)
	sigma := cc*cc - rr*b
	if sigma < 0 || rr == 0 {
		return math32.Vector2{}, math32.Vector2{}, 0, false
	}

	t := -(cc + math32.Sqrt(sigma))
	if t >= 0 && t <= maxFraction*rr {
		t /= rr
		point := math32.AddVec2(p1, math32.ScaleVec2(d, t))
		normal, _ := math32.NormalizeVec2(math32.SubVec2(point, position))
		return point, normal, t, true
	}
	return math32.Vector2{}, math32.Vector2{}, 0, false
}

func rayCastPolygon(p *shape.PolygonShape, xf math32.Transform, p1, p2 math32.Vector2, maxFraction float32) (math32.Vector2, math32.Vector2, float32, bool) {

	d1 := xf.InvTransformPoint(p1)
	d2 := xf.InvTransformPoint(p2)
	d := math32.SubVec2(d2, d1)

	lower, upper := float32(0), maxFraction
	index := -1

	for i, n := range p.Normals {
		numerator := math32.DotVec2(n, math32.SubVec2(p.Vertices[i], d1))
		denominator := math32.DotVec2(n, d)

		if denominator == 0 {
			if numerator < 0 {
				return math32.Vector2{}, math32.Vector2{}, 0, false
			}
			continue
		}

		t := numerator / denominator
		if denominator < 0 && t > lower {
			lower = t
			index = i
		} else if denominator > 0 && t < upper {
			upper = t
		}
		if upper < lower {
			return math32.Vector2{}, math32.Vector2{}, 0, false
		}
	}

	if index < 0 {
		return math32.Vector2{}, math32.Vector2{}, 0, false
	}

	point := math32.AddVec2(d1, math32.ScaleVec2(d, lower))
	worldPoint := xf.TransformPoint(point)
	worldNormal := xf.Rotation.RotateVector(p.Normals[index])
	return worldPoint, worldNormal, lower, true
}

// rayCastSegment tests a ray against a static two-point segment (an
// EdgeShape), treated as infinitely thin.
func rayCastSegment(v1, v2 math32.Vector2, xf math32.Transform, p1, p2 math32.Vector2, maxFraction float32) (math32.Vector2, math32.Vector2, float32, bool) {

	a := xf.TransformPoint(v1)
	b := xf.TransformPoint(v2)

	e := math32.SubVec2(b, a)
	normal, _ := math32.NormalizeVec2(math32.Vector2{X: e.Y, Y: -e.X})

	d := math32.SubVec2(p2, p1)
	denom := math32.DotVec2(normal, d)
	if denom == 0 {
		return math32.Vector2{}, math32.Vector2{}, 0, false
	}

	t := math32.DotVec2(normal, math32.SubVec2(a, p1)) / denom
	if t < 0 || t > maxFraction {
		return math32.Vector2{}, math32.Vector2{}, 0, false
	}

	point := math32.AddVec2(p1, math32.ScaleVec2(d, t))

	s := math32.DotVec2(math32.SubVec2(point, a), e) / math32.DotVec2(e, e)
	if s < 0 || s > 1 {
		return math32.Vector2{}, math32.Vector2{}, 0, false
	}

	if denom > 0 {
		normal = math32.NegVec2(normal)
	}
	return point, normal, t, true
}
