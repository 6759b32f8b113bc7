// Package sceneio loads a *world.World from a YAML scene description,
// giving demos and tests a repeatable, file-based way to stand up bodies,
// fixtures and joints instead of hand-building them in Go.
package sceneio

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/driftwood/phys2d/math32"
	"github.com/driftwood/phys2d/shape"
	"github.com/driftwood/phys2d/world"
)

// vec2 is the YAML-friendly mirror of math32.Vector2.
type vec2 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

func (v vec2) toVector2() math32.Vector2 { return math32.Vector2{X: v.X, Y: v.Y} }

// fixtureDoc describes one fixture attached to a body in the scene file.
type fixtureDoc struct {
	Shape       string  `yaml:"shape"`
	Radius      float32 `yaml:"radius,omitempty"`
	HalfWidth   float32 `yaml:"halfWidth,omitempty"`
	HalfHeight  float32 `yaml:"halfHeight,omitempty"`
	Vertices    []vec2  `yaml:"vertices,omitempty"`
	V1          vec2    `yaml:"v1,omitempty"`
	V2          vec2    `yaml:"v2,omitempty"`
	Center      vec2    `yaml:"center,omitempty"`
	Density     float32 `yaml:"density"`
	Friction    float32 `yaml:"friction"`
	Restitution float32 `yaml:"restitution"`
	Sensor      bool    `yaml:"sensor"`
}

// bodyDoc describes one body in the scene file. Name is optional and only
// needed so joints can reference their endpoint bodies by name.
type bodyDoc struct {
	Name            string       `yaml:"name,omitempty"`
	Type            string       `yaml:"type"`
	Position        vec2         `yaml:"position"`
	Angle           float32      `yaml:"angle"`
	LinearVelocity  vec2         `yaml:"linearVelocity"`
	AngularVelocity float32      `yaml:"angularVelocity"`
	Bullet          bool         `yaml:"bullet"`
	AllowSleep      bool         `yaml:"allowSleep"`
	Fixtures        []fixtureDoc `yaml:"fixtures"`
}

// jointDoc describes one joint connecting two named bodies.
type jointDoc struct {
	Type             string  `yaml:"type"`
	BodyA            string  `yaml:"bodyA"`
	BodyB            string  `yaml:"bodyB"`
	LocalAnchorA     vec2    `yaml:"localAnchorA"`
	LocalAnchorB     vec2    `yaml:"localAnchorB"`
	Length           float32 `yaml:"length,omitempty"`
	CollideConnected bool    `yaml:"collideConnected"`
}

// sceneDoc is the top-level YAML document shape.
type sceneDoc struct {
	Gravity    vec2       `yaml:"gravity"`
	AllowSleep bool       `yaml:"allowSleep"`
	Bodies     []bodyDoc  `yaml:"bodies"`
	Joints     []jointDoc `yaml:"joints"`
}

// Load parses a YAML scene description and builds a fully populated
// *world.World: every body and its fixtures, then every joint, resolved
// against the bodies by name.
func Load(data []byte) (*world.World, error) {

	var doc sceneDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("sceneio: parsing scene: %w", err)
	}

	w := world.NewWorld(doc.Gravity.toVector2(), doc.AllowSleep)

	named := make(map[string]*world.Body, len(doc.Bodies))

	for _, bd := range doc.Bodies {
		bodyType, err := parseBodyType(bd.Type)
		if err != nil {
			return nil, err
		}

		b := w.CreateBody(world.BodyDef{
			Type:            bodyType,
			Position:        bd.Position.toVector2(),
			Angle:           bd.Angle,
			LinearVelocity:  bd.LinearVelocity.toVector2(),
			AngularVelocity: bd.AngularVelocity,
			Bullet:          bd.Bullet,
			AllowSleep:      bd.AllowSleep,
			Awake:           true,
		})

		for _, fd := range bd.Fixtures {
			s, err := parseShape(fd)
			if err != nil {
				return nil, err
			}
			b.CreateFixture(world.FixtureDef{
				Shape:       s,
				Density:     fd.Density,
				Friction:    fd.Friction,
				Restitution: fd.Restitution,
				IsSensor:    fd.Sensor,
			})
		}

		if bd.Name != "" {
			named[bd.Name] = b
		}
	}

	for _, jd := range doc.Joints {
		bodyA, ok := named[jd.BodyA]
		if !ok {
			return nil, fmt.Errorf("sceneio: joint references unknown body %q", jd.BodyA)
		}
		bodyB, ok := named[jd.BodyB]
		if !ok {
			return nil, fmt.Errorf("sceneio: joint references unknown body %q", jd.BodyB)
		}

		base := world.JointDef{BodyA: bodyA, BodyB: bodyB, CollideConnected: jd.CollideConnected}

		switch jd.Type {
		case "revolute":
			w.CreateRevoluteJoint(world.RevoluteJointDef{
				JointDef:     base,
				LocalAnchorA: jd.LocalAnchorA.toVector2(),
				LocalAnchorB: jd.LocalAnchorB.toVector2(),
			})
		case "distance":
			w.CreateDistanceJoint(world.DistanceJointDef{
				JointDef:     base,
				LocalAnchorA: jd.LocalAnchorA.toVector2(),
				LocalAnchorB: jd.LocalAnchorB.toVector2(),
				Length:       jd.Length,
			})
		default:
			return nil, fmt.Errorf("sceneio: unknown joint type %q", jd.Type)
		}
	}

	return w, nil
}

func parseBodyType(t string) (world.BodyType, error) {
	switch t {
	case "static", "":
		return world.StaticBody, nil
	case "kinematic":
		return world.KinematicBody, nil
	case "dynamic":
		return world.DynamicBody, nil
	default:
		return 0, fmt.Errorf("sceneio: unknown body type %q", t)
	}
}

func parseShape(fd fixtureDoc) (shape.Shape, error) {
	switch fd.Shape {
	case "circle":
		c := shape.NewCircle(fd.Radius)
		c.Center = fd.Center.toVector2()
		return c, nil
	case "box":
		return shape.NewBox(fd.HalfWidth, fd.HalfHeight), nil
	case "polygon":
		verts := make([]math32.Vector2, len(fd.Vertices))
		for i, v := range fd.Vertices {
			verts[i] = v.toVector2()
		}
		return shape.NewPolygon(verts), nil
	case "edge":
		return shape.NewEdge(fd.V1.toVector2(), fd.V2.toVector2()), nil
	default:
		return nil, fmt.Errorf("sceneio: unknown shape type %q", fd.Shape)
	}
}
