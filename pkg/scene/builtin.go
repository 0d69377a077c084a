package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var (
	// ErrUnknownScene is returned by Create for names that are neither built in nor a scene file
	ErrUnknownScene = errors.New("unknown scene")
	// ErrInvalidSceneName is returned for json: IDs that name a path
	ErrInvalidSceneName = errors.New("invalid scene name")
)

var (
	white = core.NewColor(255, 255, 255)
	red   = core.NewColor(255, 0, 0)
	green = core.NewColor(0, 255, 0)
	blue  = core.NewColor(0, 0, 255)
)

type builtin struct {
	info  SceneInfo
	build func() *Preset
}

var builtins = map[string]builtin{
	"ambient-sphere": {
		info:  builtinInfo("ambient-sphere", "Ambient Sphere", "Single sphere lit only by ambient light"),
		build: NewAmbientSphereScene,
	},
	"concentric-spheres": {
		info:  builtinInfo("concentric-spheres", "Concentric Spheres", "Transparent blue sphere around a red one under a spot light"),
		build: NewConcentricSpheresScene,
	},
	"basic-render": {
		info:  builtinInfo("basic-render", "Basic Render", "Sphere and three emissive triangles with ambient light"),
		build: NewBasicRenderScene,
	},
	"shadows": {
		info:  builtinInfo("shadows", "Shadows", "Sphere casting a shadow on a triangle"),
		build: NewShadowScene,
	},
	"reflections": {
		info:  builtinInfo("reflections", "Reflections", "Nested spheres in front of two mirror triangles"),
		build: NewReflectionScene,
	},
	"shapes": {
		info:  builtinInfo("shapes", "Shapes", "Every primitive shape under point and directional lights"),
		build: NewShapesScene,
	},
}

func builtinInfo(id, name, description string) SceneInfo {
	return SceneInfo{
		ID:          id,
		Name:        name,
		DisplayName: name,
		Description: description,
		Group:       builtinGroup,
		Type:        "builtin",
	}
}

// BuiltinNames returns the built-in scene names in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create returns a fresh preset for a built-in scene name, a "json:" scene
// ID as listed by ListAllScenes, or a path to a .json scene file
func Create(name string) (*Preset, error) {
	if strings.HasSuffix(name, ".json") && !strings.HasPrefix(name, jsonScenePrefix) {
		return LoadFile(name)
	}
	return CreateNamed(name)
}

// CreateNamed is Create restricted to built-in names and "json:" IDs of
// files in the scenes directory. File paths are not accepted.
func CreateNamed(name string) (*Preset, error) {
	if b, ok := builtins[name]; ok {
		return b.build(), nil
	}
	path, ok, err := jsonScenePath(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	preset, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return preset, err
}

// must unwraps constructor results for literal scene data
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func surface(emission core.Color, mat material.Material) geometry.Surface {
	return geometry.NewSurface(emission, mat)
}

// NewAmbientSphereScene creates a sphere seen only through ambient light
func NewAmbientSphereScene() *Preset {
	s := NewBuilder("ambient-sphere").
		SetAmbientLight(lights.NewAmbientLight(core.NewColor(255, 191, 191), core.One3)).
		SetBackground(core.NewColor(75, 127, 90)).
		AddGeometry(must(geometry.NewSphere(core.NewPoint(0, 0, -50), 50, geometry.Surface{}))).
		Build()

	return &Preset{
		Scene:  s,
		Camera: frontCamera(150, 1000),
		Render: core.DefaultRenderConfig(),
	}
}

// NewConcentricSpheresScene creates a transparent blue sphere with a red
// sphere inside it, lit by a spot light
func NewConcentricSpheresScene() *Preset {
	outer := surface(blue, material.NewMaterial(0.4, 0.3, 100).WithTransparency(0.3))
	inner := surface(red, material.NewMaterial(0.5, 0.5, 100))

	s := NewBuilder("concentric-spheres").
		AddGeometry(
			must(geometry.NewSphere(core.NewPoint(0, 0, -50), 50, outer)),
			must(geometry.NewSphere(core.NewPoint(0, 0, -50), 25, inner)),
		).
		AddLight(lights.NewSpotLight(core.NewColor(1000, 600, 0), core.NewPoint(-100, -100, 500), core.MustVector(-1, -1, -2)).
			WithAttenuation(1, 0.0004, 0.0000006)).
		Build()

	return &Preset{
		Scene:  s,
		Camera: frontCamera(150, 1000),
		Render: core.DefaultRenderConfig(),
	}
}

// NewBasicRenderScene creates a sphere surrounded by three colored triangles
func NewBasicRenderScene() *Preset {
	s := NewBuilder("basic-render").
		SetAmbientLight(lights.NewAmbientLight(white, core.Uniform(0.2))).
		SetBackground(core.NewColor(75, 127, 90)).
		AddGeometry(
			must(geometry.NewSphere(core.NewPoint(0, 0, -100), 50, geometry.Surface{})),
			// up left
			must(geometry.NewTriangle(core.NewPoint(-100, 0, -100), core.NewPoint(0, 100, -100), core.NewPoint(-100, 100, -100),
				surface(green, material.Material{}))),
			// down left
			must(geometry.NewTriangle(core.NewPoint(-100, 0, -100), core.NewPoint(0, -100, -100), core.NewPoint(-100, -100, -100),
				surface(red, material.Material{}))),
			// down right
			must(geometry.NewTriangle(core.NewPoint(100, 0, -100), core.NewPoint(0, -100, -100), core.NewPoint(100, -100, -100),
				surface(blue, material.Material{}))),
		).
		Build()

	render := core.DefaultRenderConfig()
	render.Width = 1000
	render.Height = 1000

	return &Preset{
		Scene: s,
		Camera: core.CameraConfig{
			Position:          core.Origin,
			To:                core.MustVector(0, 0, -1),
			Up:                core.MustVector(0, 1, 0),
			ViewPlaneWidth:    500,
			ViewPlaneHeight:   500,
			ViewPlaneDistance: 100,
		},
		Render: render,
	}
}

// NewShadowScene creates a sphere above a triangle under a spot light
func NewShadowScene() *Preset {
	mat := material.NewMaterial(0.5, 0.5, 30)

	s := NewBuilder("shadows").
		SetAmbientLight(lights.NewAmbientLight(white, core.Uniform(0.15))).
		AddGeometry(
			must(geometry.NewSphere(core.NewPoint(0, 0, -200), 60, surface(blue, mat))),
			must(geometry.NewTriangle(core.NewPoint(-70, -40, 0), core.NewPoint(-40, -70, 0), core.NewPoint(-68, -68, -4),
				surface(blue, mat))),
		).
		AddLight(lights.NewSpotLight(core.NewColor(400, 240, 0), core.NewPoint(-100, -100, 200), core.MustVector(1, 1, -3)).
			WithAttenuation(1, 1e-5, 1.5e-7)).
		Build()

	return &Preset{
		Scene:  s,
		Camera: frontCamera(200, 1000),
		Render: core.DefaultRenderConfig(),
	}
}

// NewReflectionScene creates nested spheres reflected by two mirror triangles
func NewReflectionScene() *Preset {
	sphereMat := material.NewMaterial(0.25, 0.25, 20)
	mirror := core.NewColor(20, 20, 20)

	s := NewBuilder("reflections").
		SetAmbientLight(lights.NewAmbientLight(white, core.Uniform(0.1))).
		AddGeometry(
			must(geometry.NewSphere(core.NewPoint(-950, -900, -1000), 400,
				surface(core.NewColor(0, 50, 100), sphereMat.WithTransparency(0.5)))),
			must(geometry.NewSphere(core.NewPoint(-950, -900, -1000), 200,
				surface(core.NewColor(100, 50, 20), sphereMat))),
			must(geometry.NewTriangle(core.NewPoint(1500, -1500, -1500), core.NewPoint(-1500, 1500, -1500), core.NewPoint(670, 670, 3000),
				surface(mirror, material.Material{}.WithReflection(1)))),
			must(geometry.NewTriangle(core.NewPoint(1500, -1500, -1500), core.NewPoint(-1500, 1500, -1500), core.NewPoint(-1500, -1500, -2000),
				surface(mirror, material.Material{}.WithReflection(0.5)))),
		).
		AddLight(lights.NewSpotLight(core.NewColor(1020, 400, 400), core.NewPoint(-750, -750, -150), core.MustVector(-1, -1, -4)).
			WithAttenuation(1, 0.00001, 0.000005)).
		Build()

	return &Preset{
		Scene:  s,
		Camera: frontCamera(2500, 10000),
		Render: core.DefaultRenderConfig(),
	}
}

// NewShapesScene creates a ground plane with a capped cylinder, a tube, a
// polygon and a glass sphere
func NewShapesScene() *Preset {
	ground := surface(core.NewColor(10, 110, 20), material.NewMaterial(0.1, 0.2, 1).WithReflection(0.2))

	s := NewBuilder("shapes").
		SetAmbientLight(lights.NewAmbientLight(white, core.Uniform(0.1))).
		SetBackground(core.NewColor(20, 20, 40)).
		AddGeometry(
			geometry.NewPlane(core.NewPoint(0, 0, -50), core.MustVector(0, 0, 1), ground),
			must(geometry.NewCylinder(core.NewRay(core.NewPoint(-60, 0, -50), core.MustVector(0, 0, 1)), 20, 60, true,
				surface(core.NewColor(150, 75, 0), material.NewMaterial(0.5, 0.3, 30)))),
			must(geometry.NewTube(core.NewRay(core.NewPoint(100, 150, 0), core.MustVector(0, 0, 1)), 5,
				surface(core.NewColor(40, 40, 40), material.NewMaterial(0, 0.4, 10).WithReflection(0.5)))),
			must(geometry.NewPolygon(surface(core.NewColor(0, 0, 120), material.NewMaterial(0.5, 0.5, 20)),
				core.NewPoint(20, 0, -50), core.NewPoint(60, 0, -50), core.NewPoint(60, 0, 0), core.NewPoint(20, 0, 0))),
			must(geometry.NewSphere(core.NewPoint(0, -100, -20), 30,
				surface(core.NewColor(20, 20, 20), material.NewMaterial(0.2, 0.5, 50).WithTransparency(0.6)))),
		).
		AddLight(
			lights.NewDirectionalLight(core.NewColor(150, 150, 150), core.MustVector(1, 1, -1)),
			lights.NewPointLight(core.NewColor(500, 300, 0), core.NewPoint(-100, -300, 200)).WithAttenuation(1, 0.0005, 0.00005),
		).
		Build()

	camera := must(core.LookAtConfig(core.NewPoint(0, -700, 200), core.NewPoint(0, 0, -20), core.MustVector(0, 0, 1), 200, 200, 800))

	render := core.DefaultRenderConfig()
	render.RaysPerPixel = 16
	render.AdaptiveSample = true

	return &Preset{
		Scene:  s,
		Camera: camera,
		Render: render,
	}
}

// frontCamera looks down -Z from (0,0,distance) with a square view plane
func frontCamera(size, distance float64) core.CameraConfig {
	return core.CameraConfig{
		Position:          core.NewPoint(0, 0, distance),
		To:                core.MustVector(0, 0, -1),
		Up:                core.MustVector(0, 1, 0),
		ViewPlaneWidth:    size,
		ViewPlaneHeight:   size,
		ViewPlaneDistance: distance,
	}
}
