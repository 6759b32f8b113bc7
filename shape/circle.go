package shape

import (
	"github.com/driftwood/phys2d/math32"
)

// CircleShape is a solid disc of a given radius centered at Center in the
// body's local space.
type CircleShape struct {
	Center math32.Vector2
	Radius float32
}

// NewCircle creates and returns a pointer to a new CircleShape at the local
// origin with the given radius.
func NewCircle(radius float32) *CircleShape {

	return &CircleShape{Radius: radius}
}

func (c *CircleShape) GetType() Type {

	return Circle
}

func (c *CircleShape) GetRadius() float32 {

	return c.Radius
}

func (c *CircleShape) TestPoint(xf math32.Transform, p math32.Vector2) bool {

	center := math32.AddVec2(xf.Position, xf.Rotation.RotateVector(c.Center))
	d := math32.SubVec2(p, center)
	return math32.DotVec2(d, d) <= c.Radius*c.Radius
}

func (c *CircleShape) ComputeAABB(xf math32.Transform) math32.Box2 {

	center := math32.AddVec2(xf.Position, xf.Rotation.RotateVector(c.Center))
	min := math32.Vector2{X: center.X - c.Radius, Y: center.Y - c.Radius}
	max := math32.Vector2{X: center.X + c.Radius, Y: center.Y + c.Radius}
	return *math32.NewBox2(&min, &max)
}

func (c *CircleShape) ComputeMass(density float32) MassData {

	mass := density * math32.Pi * c.Radius * c.Radius
	// Inertia about the local origin: I = 0.5*m*r^2 + m*d^2 (parallel axis).
	i := mass * (0.5*c.Radius*c.Radius + math32.DotVec2(c.Center, c.Center))
	return MassData{Mass: mass, Center: c.Center, I: i}
}
