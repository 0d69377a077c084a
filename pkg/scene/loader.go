package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidScene is wrapped by every scene description error
var ErrInvalidScene = errors.New("invalid scene description")

type triple [3]float64

func (t triple) point() core.Point { return core.NewPoint(t[0], t[1], t[2]) }

func (t triple) color() core.Color { return core.NewColor(t[0], t[1], t[2]) }

func (t triple) double3() core.Double3 { return core.NewDouble3(t[0], t[1], t[2]) }

func (t triple) vector() (core.Vector, error) {
	return core.NewVector(t[0], t[1], t[2])
}

// coefficient is an attenuation triple written either as a single number
// or as a three element array
type coefficient core.Double3

func (c *coefficient) UnmarshalJSON(data []byte) error {
	var k float64
	if err := json.Unmarshal(data, &k); err == nil {
		*c = coefficient(core.Uniform(k))
		return nil
	}
	var t triple
	if err := json.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("coefficient must be a number or [r,g,b]: %w", err)
	}
	*c = coefficient(t.double3())
	return nil
}

// sceneFile is the on-disk JSON scene description
type sceneFile struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Group       string         `json:"group,omitempty"`
	Background  *triple        `json:"background,omitempty"`
	Ambient     *ambientSpec   `json:"ambient,omitempty"`
	Camera      cameraSpec     `json:"camera"`
	Render      *renderSpec    `json:"render,omitempty"`
	Geometries  []geometrySpec `json:"geometries"`
	Lights      []lightSpec    `json:"lights,omitempty"`
}

type ambientSpec struct {
	Color triple       `json:"color"`
	K     *coefficient `json:"k,omitempty"` // defaults to 1
}

type cameraSpec struct {
	Position triple  `json:"position"`
	To       *triple `json:"to,omitempty"`
	Up       *triple `json:"up,omitempty"`
	LookAt   *triple `json:"lookAt,omitempty"` // alternative to "to"; "up" then only needs to be roughly up
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Distance float64 `json:"distance"`
}

type renderSpec struct {
	Width    int   `json:"width,omitempty"`
	Height   int   `json:"height,omitempty"`
	Samples  int   `json:"samples,omitempty"`
	Adaptive bool  `json:"adaptive,omitempty"`
	Seed     int64 `json:"seed,omitempty"`
}

type materialSpec struct {
	KD        coefficient `json:"kd,omitempty"`
	KS        coefficient `json:"ks,omitempty"`
	Shininess int         `json:"shininess,omitempty"`
	KT        coefficient `json:"kt,omitempty"`
	KR        coefficient `json:"kr,omitempty"`
}

type raySpec struct {
	Origin    triple `json:"origin"`
	Direction triple `json:"direction"`
}

type geometrySpec struct {
	Type     string        `json:"type"`
	Emission *triple       `json:"emission,omitempty"`
	Material *materialSpec `json:"material,omitempty"`

	Center   *triple        `json:"center,omitempty"`   // sphere
	Radius   float64        `json:"radius,omitempty"`   // sphere, tube, cylinder
	Point    *triple        `json:"point,omitempty"`    // plane
	Normal   *triple        `json:"normal,omitempty"`   // plane
	Vertices []triple       `json:"vertices,omitempty"` // plane (3 points), triangle, polygon
	Axis     *raySpec       `json:"axis,omitempty"`     // tube, cylinder
	Height   float64        `json:"height,omitempty"`   // cylinder
	Capped   bool           `json:"capped,omitempty"`   // cylinder
	Children []geometrySpec `json:"children,omitempty"` // group
}

type lightSpec struct {
	Type       string   `json:"type"`
	Color      triple   `json:"color"`
	Position   *triple  `json:"position,omitempty"`
	Direction  *triple  `json:"direction,omitempty"`
	Kc         *coefficient `json:"kc,omitempty"` // defaults to 1
	Kl         coefficient  `json:"kl,omitempty"`
	Kq         coefficient  `json:"kq,omitempty"`
	NarrowBeam int          `json:"narrowBeam,omitempty"`
}

// LoadFile reads a JSON scene description from disk
func LoadFile(path string) (*Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer f.Close()
	return LoadJSON(f)
}

// LoadJSON decodes a JSON scene description into a preset
func LoadJSON(r io.Reader) (*Preset, error) {
	var sf sceneFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	return sf.preset()
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidScene, fmt.Sprintf(format, args...))
}

func (sf *sceneFile) preset() (*Preset, error) {
	b := NewBuilder(sf.Name)

	if sf.Background != nil {
		b.SetBackground(sf.Background.color())
	}
	if sf.Ambient != nil {
		k := core.One3
		if sf.Ambient.K != nil {
			k = core.Double3(*sf.Ambient.K)
		}
		b.SetAmbientLight(lights.NewAmbientLight(sf.Ambient.Color.color(), k))
	}

	for i, gs := range sf.Geometries {
		g, err := gs.build()
		if err != nil {
			return nil, fmt.Errorf("geometries[%d]: %w", i, err)
		}
		b.AddGeometry(g)
	}

	for i, ls := range sf.Lights {
		l, err := ls.build()
		if err != nil {
			return nil, fmt.Errorf("lights[%d]: %w", i, err)
		}
		b.AddLight(l)
	}

	camera, err := sf.Camera.build()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	render := core.DefaultRenderConfig()
	if rs := sf.Render; rs != nil {
		if rs.Width > 0 {
			render.Width = rs.Width
		}
		if rs.Height > 0 {
			render.Height = rs.Height
		}
		if rs.Samples > 0 {
			render.RaysPerPixel = rs.Samples
		}
		if rs.Seed != 0 {
			render.Seed = rs.Seed
		}
		render.AdaptiveSample = rs.Adaptive
	}

	return &Preset{Scene: b.Build(), Camera: camera, Render: render}, nil
}

func (cs cameraSpec) build() (core.CameraConfig, error) {
	up := core.MustVector(0, 1, 0)
	if cs.Up != nil {
		v, err := cs.Up.vector()
		if err != nil {
			return core.CameraConfig{}, invalid("up: %v", err)
		}
		up = v
	}

	if cs.LookAt != nil {
		cfg, err := core.LookAtConfig(cs.Position.point(), cs.LookAt.point(), up, cs.Width, cs.Height, cs.Distance)
		if err != nil {
			return core.CameraConfig{}, invalid("lookAt: %v", err)
		}
		return cfg, nil
	}

	if cs.To == nil {
		return core.CameraConfig{}, invalid("either \"to\" or \"lookAt\" is required")
	}
	to, err := cs.To.vector()
	if err != nil {
		return core.CameraConfig{}, invalid("to: %v", err)
	}
	return core.CameraConfig{
		Position:          cs.Position.point(),
		To:                to,
		Up:                up,
		ViewPlaneWidth:    cs.Width,
		ViewPlaneHeight:   cs.Height,
		ViewPlaneDistance: cs.Distance,
	}, nil
}

func (ms *materialSpec) build() material.Material {
	if ms == nil {
		return material.Material{}
	}
	return material.Material{
		KD:        core.Double3(ms.KD),
		KS:        core.Double3(ms.KS),
		Shininess: ms.Shininess,
		KT:        core.Double3(ms.KT),
		KR:        core.Double3(ms.KR),
	}
}

func (gs geometrySpec) build() (geometry.Intersectable, error) {
	var emission core.Color
	if gs.Emission != nil {
		emission = gs.Emission.color()
	}
	surf := geometry.NewSurface(emission, gs.Material.build())

	switch gs.Type {
	case "sphere":
		if gs.Center == nil {
			return nil, invalid("sphere needs a center")
		}
		return geometry.NewSphere(gs.Center.point(), gs.Radius, surf)

	case "plane":
		if len(gs.Vertices) == 3 {
			return geometry.NewPlaneFromPoints(gs.Vertices[0].point(), gs.Vertices[1].point(), gs.Vertices[2].point(), surf)
		}
		if gs.Point == nil || gs.Normal == nil {
			return nil, invalid("plane needs a point and a normal, or three vertices")
		}
		n, err := gs.Normal.vector()
		if err != nil {
			return nil, invalid("plane normal: %v", err)
		}
		return geometry.NewPlane(gs.Point.point(), n, surf), nil

	case "triangle":
		if len(gs.Vertices) != 3 {
			return nil, invalid("triangle needs exactly 3 vertices, got %d", len(gs.Vertices))
		}
		return geometry.NewTriangle(gs.Vertices[0].point(), gs.Vertices[1].point(), gs.Vertices[2].point(), surf)

	case "polygon":
		points := make([]core.Point, len(gs.Vertices))
		for i, v := range gs.Vertices {
			points[i] = v.point()
		}
		return geometry.NewPolygon(surf, points...)

	case "tube", "cylinder":
		if gs.Axis == nil {
			return nil, invalid("%s needs an axis", gs.Type)
		}
		dir, err := gs.Axis.Direction.vector()
		if err != nil {
			return nil, invalid("%s axis: %v", gs.Type, err)
		}
		axis := core.NewRay(gs.Axis.Origin.point(), dir)
		if gs.Type == "tube" {
			return geometry.NewTube(axis, gs.Radius, surf)
		}
		return geometry.NewCylinder(axis, gs.Radius, gs.Height, gs.Capped, surf)

	case "group":
		group := geometry.NewGeometries()
		for i, child := range gs.Children {
			g, err := child.build()
			if err != nil {
				return nil, fmt.Errorf("children[%d]: %w", i, err)
			}
			group.Add(g)
		}
		return group, nil

	default:
		return nil, invalid("unknown geometry type %q", gs.Type)
	}
}

func (ls lightSpec) attenuation() (lights.Attenuation, error) {
	a := lights.Attenuation{
		Kc: core.One3,
		Kl: core.Double3(ls.Kl),
		Kq: core.Double3(ls.Kq),
	}
	if ls.Kc != nil {
		a.Kc = core.Double3(*ls.Kc)
	}
	if err := a.Validate(); err != nil {
		return a, invalid("%s light: %v", ls.Type, err)
	}
	return a, nil
}

func (ls lightSpec) build() (lights.Light, error) {
	switch ls.Type {
	case "point", "spot":
		if ls.Position == nil {
			return nil, invalid("%s light needs a position", ls.Type)
		}
		att, err := ls.attenuation()
		if err != nil {
			return nil, err
		}
		if ls.Type == "point" {
			return lights.NewPointLight(ls.Color.color(), ls.Position.point()).WithAttenuationTriples(att), nil
		}
		if ls.Direction == nil {
			return nil, invalid("spot light needs a direction")
		}
		dir, err := ls.Direction.vector()
		if err != nil {
			return nil, invalid("spot light direction: %v", err)
		}
		spot := lights.NewSpotLight(ls.Color.color(), ls.Position.point(), dir).WithAttenuationTriples(att)
		if ls.NarrowBeam > 0 {
			spot.WithNarrowBeam(ls.NarrowBeam)
		}
		return spot, nil

	case "directional":
		if ls.Direction == nil {
			return nil, invalid("directional light needs a direction")
		}
		dir, err := ls.Direction.vector()
		if err != nil {
			return nil, invalid("directional light direction: %v", err)
		}
		return lights.NewDirectionalLight(ls.Color.color(), dir), nil

	default:
		return nil, invalid("unknown light type %q", ls.Type)
	}
}
