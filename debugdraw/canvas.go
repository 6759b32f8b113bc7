// Package debugdraw renders a world.World's bodies to an in-memory image,
// the concrete implementation of world.DebugDraw used by the demo command.
// Rendering itself is intentionally decoupled from the simulation core: a
// host can swap this out for an OpenGL or terminal renderer without
// touching the world package.
package debugdraw

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/driftwood/phys2d/math32"
)

// Canvas rasterizes DebugDraw calls onto a fixed-size image.RGBA, mapping
// world coordinates to pixels through a uniform scale and a screen-space
// origin (world.Vector2{0,0} lands at Origin, with Y flipped since image
// rows grow downward).
type Canvas struct {
	RGBA   *image.RGBA
	Scale  float32
	Origin image.Point

	bg *image.Uniform
}

// NewCanvas creates a canvas of the given pixel size. scale converts world
// units to pixels; origin is where world (0,0) is placed on screen.
func NewCanvas(width, height int, scale float32, origin image.Point, bg color.Color) *Canvas {

	c := &Canvas{
		RGBA:   image.NewRGBA(image.Rect(0, 0, width, height)),
		Scale:  scale,
		Origin: origin,
		bg:     image.NewUniform(bg),
	}
	draw.Draw(c.RGBA, c.RGBA.Bounds(), c.bg, image.Point{}, draw.Src)
	return c
}

// Clear repaints the whole canvas with the background color.
func (c *Canvas) Clear() {
	draw.Draw(c.RGBA, c.RGBA.Bounds(), c.bg, image.Point{}, draw.Src)
}

func (c *Canvas) project(v math32.Vector2) (float32, float32) {
	x := float32(c.Origin.X) + v.X*c.Scale
	y := float32(c.Origin.Y) - v.Y*c.Scale
	return x, y
}

func toNRGBA(col [4]float32) color.NRGBA {
	return color.NRGBA{
		R: uint8(math32.Clamp(col[0], 0, 1) * 0xFF),
		G: uint8(math32.Clamp(col[1], 0, 1) * 0xFF),
		B: uint8(math32.Clamp(col[2], 0, 1) * 0xFF),
		A: uint8(math32.Clamp(col[3], 0, 1) * 0xFF),
	}
}

// DrawPolygon draws an outline through the given world-space vertices.
func (c *Canvas) DrawPolygon(vertices []math32.Vector2, col [4]float32) {
	n := len(vertices)
	for i := 0; i < n; i++ {
		c.DrawSegment(vertices[i], vertices[(i+1)%n], col)
	}
}

// DrawSolidPolygon rasterizes a filled, antialiased polygon using
// x/image/vector, then strokes its outline on top.
func (c *Canvas) DrawSolidPolygon(vertices []math32.Vector2, col [4]float32) {
	b := c.RGBA.Bounds()
	rast := vector.NewRasterizer(b.Dx(), b.Dy())

	x0, y0 := c.project(vertices[0])
	rast.MoveTo(x0, y0)
	for _, v := range vertices[1:] {
		x, y := c.project(v)
		rast.LineTo(x, y)
	}
	rast.ClosePath()

	mask := image.NewAlpha(b)
	rast.Draw(mask, mask.Bounds(), image.NewUniform(color.Opaque), image.Point{})

	fill := image.NewUniform(toNRGBA(col))
	draw.DrawMask(c.RGBA, b, fill, image.Point{}, mask, image.Point{}, draw.Over)

	c.DrawPolygon(vertices, col)
}

// DrawCircle draws a circle outline approximated by a fan of segments.
func (c *Canvas) DrawCircle(center math32.Vector2, radius float32, col [4]float32) {
	const segments = 32
	prev := math32.Vector2{X: center.X + radius, Y: center.Y}
	for i := 1; i <= segments; i++ {
		theta := 2 * math32.Pi * float32(i) / segments
		cur := math32.Vector2{
			X: center.X + radius*float32(math.Cos(float64(theta))),
			Y: center.Y + radius*float32(math.Sin(float64(theta))),
		}
		c.DrawSegment(prev, cur, col)
		prev = cur
	}
}

// DrawSolidCircle draws a filled circle plus a radius line along axis,
// marking the body's current orientation.
func (c *Canvas) DrawSolidCircle(center math32.Vector2, radius float32, axis math32.Vector2, col [4]float32) {
	const segments = 32
	verts := make([]math32.Vector2, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math32.Pi * float32(i) / segments
		verts[i] = math32.Vector2{
			X: center.X + radius*float32(math.Cos(float64(theta))),
			Y: center.Y + radius*float32(math.Sin(float64(theta))),
		}
	}
	c.DrawSolidPolygon(verts, col)
	c.DrawSegment(center, math32.AddVec2(center, math32.ScaleVec2(axis, radius)), col)
}

// DrawSegment draws a single straight line between two world points.
func (c *Canvas) DrawSegment(p1, p2 math32.Vector2, col [4]float32) {
	x1, y1 := c.project(p1)
	x2, y2 := c.project(p2)
	drawLine(c.RGBA, x1, y1, x2, y2, toNRGBA(col))
}

// DrawTransform draws a body's local axes at its current world transform:
// red for the local X axis, green for local Y.
func (c *Canvas) DrawTransform(xf math32.Transform) {
	const axisLength = 0.4
	xAxis := xf.Rotation.RotateVector(math32.Vector2{X: axisLength, Y: 0})
	yAxis := xf.Rotation.RotateVector(math32.Vector2{X: 0, Y: axisLength})
	c.DrawSegment(xf.Position, math32.AddVec2(xf.Position, xAxis), [4]float32{1, 0, 0, 1})
	c.DrawSegment(xf.Position, math32.AddVec2(xf.Position, yAxis), [4]float32{0, 1, 0, 1})
}

// Label draws a line of text at the given pixel coordinates using a fixed
// bitmap face, for frame counters and step diagnostics in the demo.
func (c *Canvas) Label(x, y int, text string, col [4]float32) {
	d := &font.Drawer{
		Dst:  c.RGBA,
		Src:  image.NewUniform(toNRGBA(col)),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// drawLine is a Bresenham rasterizer; good enough for debug overlays where
// antialiasing doesn't matter.
func drawLine(img *image.RGBA, x0, y0, x1, y1 float32, col color.NRGBA) {
	dx := math32.Abs(x1 - x0)
	dy := -math32.Abs(y1 - y0)
	sx := float32(1)
	if x0 >= x1 {
		sx = -1
	}
	sy := float32(1)
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		img.Set(int(x), int(y), col)
		if int(x) == int(x1) && int(y) == int(y1) {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}
