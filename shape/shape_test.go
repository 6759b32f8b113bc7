package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftwood/phys2d/math32"
)

func TestNewBoxIsAxisAlignedAndCentered(t *testing.T) {

	b := NewBox(2, 1)
	require.Len(t, b.Vertices, 4)
	assert.Equal(t, math32.Vector2{}, b.Centroid)
}

func TestPolygonComputeMassMatchesRectangleFormula(t *testing.T) {

	const hx, hy, density = 2.0, 1.0, 3.0
	b := NewBox(hx, hy)

	md := b.ComputeMass(density)

	wantMass := float32(4 * hx * hy * density)
	assert.InDelta(t, wantMass, md.Mass, 1e-3)
	assert.InDelta(t, 0, md.Center.X, 1e-3)
	assert.InDelta(t, 0, md.Center.Y, 1e-3)
}

func TestCircleComputeMass(t *testing.T) {

	c := NewCircle(2)
	md := c.ComputeMass(1)

	wantMass := math32.Pi * 2 * 2
	assert.InDelta(t, wantMass, md.Mass, 1e-3)
}

func TestNewPolygonPanicsOnDegenerateInput(t *testing.T) {

	assert.Panics(t, func() {
		NewPolygon([]math32.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}})
	})
}

func TestEdgeTestPointIsAlwaysFalse(t *testing.T) {

	e := NewEdge(math32.Vector2{X: -1, Y: 0}, math32.Vector2{X: 1, Y: 0})
	xf := *math32.NewTransform()
	assert.False(t, e.TestPoint(xf, math32.Vector2{X: 0, Y: 0}), "a zero-thickness edge contains no points")
}
