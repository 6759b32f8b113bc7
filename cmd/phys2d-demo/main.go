// Command phys2d-demo loads a YAML scene, steps it headlessly, and writes
// a PNG snapshot of the final frame plus a short progress log. It exists
// to exercise the full stack end to end: sceneio, world and debugdraw.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/driftwood/phys2d/debugdraw"
	"github.com/driftwood/phys2d/math32"
	"github.com/driftwood/phys2d/sceneio"
	"github.com/driftwood/phys2d/shape"
	"github.com/driftwood/phys2d/util"
	"github.com/driftwood/phys2d/util/logger"
	"github.com/driftwood/phys2d/world"
)

var log = logger.New("demo", logger.Default)

func main() {

	scenePath := flag.String("scene", "", "path to a YAML scene file")
	steps := flag.Int("steps", 120, "number of simulation steps to run")
	fps := flag.Uint("fps", 60, "simulation steps per second")
	out := flag.String("out", "out.png", "path to write the final frame PNG")
	flag.Parse()
	log.SetLevel(logger.INFO)

	if *scenePath == "" {
		log.Fatal("missing -scene")
		os.Exit(2)
	}

	data, err := os.ReadFile(*scenePath)
	if err != nil {
		log.Fatal("reading scene: %v", err)
		os.Exit(1)
	}

	w, err := sceneio.Load(data)
	if err != nil {
		log.Fatal("loading scene: %v", err)
		os.Exit(1)
	}

	dt := 1.0 / float32(*fps)
	rater := util.NewFrameRater(*fps)

	for i := 0; i < *steps; i++ {
		rater.Start()
		w.Step(dt, 8, 3)
		rater.Wait()
	}

	log.Info("ran %d steps of %d bodies, %d contacts", *steps, w.BodyCount(), w.ContactCount())

	canvas := debugdraw.NewCanvas(640, 480, 20, image.Point{X: 320, Y: 400}, color.White)
	w.SetDebugDraw(canvas)
	drawWorld(w, canvas)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal("creating %s: %v", *out, err)
		os.Exit(1)
	}
	defer f.Close()

	if err := png.Encode(f, canvas.RGBA); err != nil {
		log.Fatal("encoding png: %v", err)
		os.Exit(1)
	}
	log.Info("wrote %s", *out)
}

// drawWorld walks every body and fixture, calling the appropriate
// DebugDraw method per shape kind.
func drawWorld(w *world.World, canvas *debugdraw.Canvas) {

	for b := w.GetBodyList(); b != nil; b = b.Next() {
		col := bodyColor(b)
		xf := b.Transform()
		for f := b.Fixtures(); f != nil; f = f.Next() {
			drawShape(xf, f.Shape, canvas, col)
		}
		canvas.DrawTransform(xf)
	}
}

func bodyColor(b *world.Body) [4]float32 {
	switch b.Type() {
	case world.StaticBody:
		return [4]float32{0.2, 0.2, 0.2, 1}
	case world.KinematicBody:
		return [4]float32{0.2, 0.2, 0.8, 1}
	default:
		return [4]float32{0.8, 0.2, 0.2, 1}
	}
}

func drawShape(xf math32.Transform, s shape.Shape, canvas *debugdraw.Canvas, col [4]float32) {

	switch sh := s.(type) {
	case *shape.CircleShape:
		center := xf.TransformPoint(sh.Center)
		axis := xf.Rotation.RotateVector(math32.Vector2{X: 1, Y: 0})
		canvas.DrawSolidCircle(center, sh.Radius, axis, col)
	case *shape.PolygonShape:
		verts := make([]math32.Vector2, len(sh.Vertices))
		for i, v := range sh.Vertices {
			verts[i] = xf.TransformPoint(v)
		}
		canvas.DrawSolidPolygon(verts, col)
	case *shape.EdgeShape:
		canvas.DrawSegment(xf.TransformPoint(sh.V1), xf.TransformPoint(sh.V2), col)
	}
}
