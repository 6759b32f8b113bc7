package collide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwood/phys2d/math32"
	"github.com/driftwood/phys2d/shape"
)

func identity() math32.Transform {
	return *math32.NewTransform()
}

func at(x, y float32) math32.Transform {
	xf := *math32.NewTransform()
	xf.Position = math32.Vector2{X: x, Y: y}
	return xf
}

func TestCollideCirclesOverlapping(t *testing.T) {

	a := shape.NewCircle(1)
	b := shape.NewCircle(1)

	m := CollideCircles(a, at(0, 0), b, at(1.5, 0))
	require.Len(t, m.Points, 1)
	assert.Equal(t, ManifoldCircles, m.Type)
}

func TestCollideCirclesSeparated(t *testing.T) {

	a := shape.NewCircle(1)
	b := shape.NewCircle(1)

	m := CollideCircles(a, at(0, 0), b, at(5, 0))
	assert.Empty(t, m.Points)
}

func TestDistanceBetweenSeparatedCircles(t *testing.T) {

	proxyA := MakeProxy(shape.NewCircle(1), 0)
	proxyB := MakeProxy(shape.NewCircle(1), 0)

	out := Distance(proxyA, at(0, 0), proxyB, at(5, 0))
	assert.InDelta(t, 3.0, out.Distance, 1e-3)
}

func TestDistanceZeroWhenOverlapping(t *testing.T) {

	proxyA := MakeProxy(shape.NewCircle(1), 0)
	proxyB := MakeProxy(shape.NewCircle(1), 0)

	out := Distance(proxyA, at(0, 0), proxyB, at(0.5, 0))
	assert.Equal(t, float32(0), out.Distance)
}

func TestCalculateTimeOfImpactHeadOnApproach(t *testing.T) {

	proxyA := MakeProxy(shape.NewCircle(0.5), 0)
	proxyB := MakeProxy(shape.NewCircle(0.5), 0)

	sweepA := math32.Sweep{C0: math32.Vector2{X: -5, Y: 0}, C: math32.Vector2{X: 5, Y: 0}}
	sweepB := math32.Sweep{C0: math32.Vector2{X: 0, Y: 0}, C: math32.Vector2{X: 0, Y: 0}}

	out := CalculateTimeOfImpact(TOIInput{ProxyA: proxyA, ProxyB: proxyB, SweepA: sweepA, SweepB: sweepB, TMax: 1})
	require.Equal(t, TOITouching, out.State)
	assert.Greater(t, out.T, float32(0))
	assert.Less(t, out.T, float32(1))
}

func TestCollidePolygonsBoxesStacked(t *testing.T) {

	ground := shape.NewBox(5, 0.5)
	box := shape.NewBox(0.5, 0.5)

	m := CollidePolygons(ground, at(0, 0), box, at(0, 0.9))
	require.NotEmpty(t, m.Points, "slightly overlapping boxes should produce a manifold")
}
