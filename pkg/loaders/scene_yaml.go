package loaders

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
	"github.com/dfaivre/go-hybrid-tracer/pkg/geometry"
	"github.com/dfaivre/go-hybrid-tracer/pkg/lights"
	"github.com/dfaivre/go-hybrid-tracer/pkg/material"
	"github.com/dfaivre/go-hybrid-tracer/pkg/scene"
)

// SceneConfig is the YAML document describing a scene. Vectors are written as
// three-element sequences; object and light variants are selected by a type
// field.
type SceneConfig struct {
	Camera    CameraCfg     `yaml:"camera"`
	Settings  SettingsCfg   `yaml:"settings"`
	Textures  []string      `yaml:"textures,omitempty"`
	Materials []MaterialCfg `yaml:"materials"`
	Objects   []ObjectCfg   `yaml:"objects"`
	Lights    []LightCfg    `yaml:"lights,omitempty"`
}

type CameraCfg struct {
	Position  [3]float64 `yaml:"position"`
	Direction [3]float64 `yaml:"direction"`
}

type SettingsCfg struct {
	AmbientColor  [3]float64 `yaml:"ambientColor"`
	MaxRayBounces int        `yaml:"maxRayBounces,omitempty"`
	MaxFrames     int        `yaml:"maxFrames,omitempty"`
	Diffuse       bool       `yaml:"diffuse,omitempty"`
	ShadowCasting bool       `yaml:"shadowCasting,omitempty"`
	RayMarching   bool       `yaml:"rayMarching,omitempty"`
	Accumulation  bool       `yaml:"accumulation,omitempty"`
	SDFObjects    []int      `yaml:"sdfObjects,omitempty"`
}

type MaterialCfg struct {
	Type            string     `yaml:"type"` // reflective | refractive
	Ambience        float64    `yaml:"ambience"`
	Diffuse         float64    `yaml:"diffuse"`
	Specular        float64    `yaml:"specular"`
	Shininess       float64    `yaml:"shininess"`
	Albedo          [3]float64 `yaml:"albedo"`
	Texture         *int       `yaml:"texture,omitempty"`
	EmissionPower   float64    `yaml:"emissionPower,omitempty"`
	Roughness       float64    `yaml:"roughness,omitempty"`
	Transparency    float64    `yaml:"transparency,omitempty"`
	RefractionIndex float64    `yaml:"refractionIndex,omitempty"`
	Reflectivity    float64    `yaml:"reflectivity,omitempty"`
}

type ObjectCfg struct {
	Type     string      `yaml:"type"` // sphere | plane | triangle | cuboid | cylinder | cone | union | subtraction
	Material int         `yaml:"material,omitempty"`
	Position [3]float64  `yaml:"position,omitempty"`
	Rotation [3]float64  `yaml:"rotation,omitempty"` // degrees
	Radius   float64     `yaml:"radius,omitempty"`
	Height   float64     `yaml:"height,omitempty"`
	Size     [3]float64  `yaml:"size,omitempty"`
	Normal   [3]float64  `yaml:"normal,omitempty"`
	MaxDist  *[2]float64 `yaml:"maxDist,omitempty"`
	V1       [3]float64  `yaml:"v1,omitempty"`
	V2       [3]float64  `yaml:"v2,omitempty"`
	V3       [3]float64  `yaml:"v3,omitempty"`
	First    int         `yaml:"first,omitempty"`
	Second   int         `yaml:"second,omitempty"`
}

type LightCfg struct {
	Type      string     `yaml:"type"` // directional | positional | spherical
	Color     [3]float64 `yaml:"color"`
	Position  [3]float64 `yaml:"position,omitempty"`
	Direction [3]float64 `yaml:"direction,omitempty"`
	Power     float64    `yaml:"power"`
	Radius    float64    `yaml:"radius,omitempty"`
}

// LoadScene reads a YAML scene file, resolves its texture paths and returns a
// validated scene.
func LoadScene(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	var cfg SceneConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}

	return BuildScene(&cfg, LoadTexture)
}

// BuildScene maps a parsed config onto a scene. The texture loader may be nil
// to skip texture resolution.
func BuildScene(cfg *SceneConfig, load scene.TextureLoader) (*scene.Scene, error) {
	materials := make([]material.Material, len(cfg.Materials))
	for i, mc := range cfg.Materials {
		m, err := buildMaterial(mc)
		if err != nil {
			return nil, fmt.Errorf("material %d: %w", i, err)
		}
		materials[i] = m
	}

	objects := make([]geometry.Object, len(cfg.Objects))
	for i, oc := range cfg.Objects {
		obj, err := buildObject(oc)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		objects[i] = obj
	}

	s := scene.New(objects, materials)
	s.AmbientColor = vec3(cfg.Settings.AmbientColor)
	if cfg.Settings.MaxRayBounces > 0 {
		s.MaxRayBounces = cfg.Settings.MaxRayBounces
	}
	if cfg.Settings.MaxFrames > 0 {
		s.MaxFrames = cfg.Settings.MaxFrames
	}
	s.Diffuse = cfg.Settings.Diffuse
	s.ShadowCasting = cfg.Settings.ShadowCasting
	s.RayMarching = cfg.Settings.RayMarching
	s.EnableAccumulation = cfg.Settings.Accumulation
	s.SDFObjects = cfg.Settings.SDFObjects

	if dir := vec3(cfg.Camera.Direction); dir.Length() > 0 {
		s.CameraPosition = vec3(cfg.Camera.Position)
		s.CameraDirection = dir.Normalize()
	}

	if load != nil {
		for _, path := range cfg.Textures {
			t, err := load(path)
			if err != nil {
				return nil, err
			}
			s.AddTexture(t)
		}
	}

	for i, lc := range cfg.Lights {
		l, err := buildLight(lc)
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(l)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func buildMaterial(mc MaterialCfg) (material.Material, error) {
	m := material.Default()
	m.Ambience = mc.Ambience
	m.Diffuse = mc.Diffuse
	m.Specular = mc.Specular
	m.Shininess = mc.Shininess
	m.Albedo = vec3(mc.Albedo)
	m.EmissionPower = mc.EmissionPower
	if mc.Texture != nil {
		m.Texture = *mc.Texture
	}

	switch mc.Type {
	case "reflective", "":
		m.Kind = material.Reflective{Roughness: mc.Roughness}
	case "refractive":
		m.Kind = material.Refractive{
			Transparency:    mc.Transparency,
			RefractionIndex: mc.RefractionIndex,
			Reflectivity:    mc.Reflectivity,
		}
	default:
		return material.Material{}, fmt.Errorf("unknown material type %q", mc.Type)
	}
	return m, nil
}

func buildObject(oc ObjectCfg) (geometry.Object, error) {
	switch oc.Type {
	case "sphere":
		return geometry.NewRotatedSphere(vec3(oc.Position), vec3(oc.Rotation), oc.Radius, oc.Material), nil
	case "plane":
		var maxDist *core.Vec2
		if oc.MaxDist != nil {
			d := core.NewVec2(oc.MaxDist[0], oc.MaxDist[1])
			maxDist = &d
		}
		return geometry.NewPlane(vec3(oc.Normal).Normalize(), vec3(oc.Position), maxDist, oc.Material), nil
	case "triangle":
		return geometry.NewTriangle(vec3(oc.V1), vec3(oc.V2), vec3(oc.V3), oc.Material), nil
	case "cuboid":
		return geometry.NewRotatedCuboid(vec3(oc.Position), vec3(oc.Rotation), vec3(oc.Size), oc.Material), nil
	case "cylinder":
		return geometry.NewRotatedCylinder(vec3(oc.Position), vec3(oc.Rotation), oc.Radius, oc.Height, oc.Material), nil
	case "cone":
		return geometry.NewRotatedCone(vec3(oc.Position), vec3(oc.Rotation), oc.Radius, oc.Height, oc.Material), nil
	case "union":
		return geometry.NewUnion(oc.First, oc.Second), nil
	case "subtraction":
		return geometry.NewSubtraction(oc.First, oc.Second), nil
	default:
		return nil, fmt.Errorf("unknown object type %q", oc.Type)
	}
}

func buildLight(lc LightCfg) (lights.Light, error) {
	switch lc.Type {
	case "directional":
		return lights.Directional{
			Color:     vec3(lc.Color),
			Direction: vec3(lc.Direction).Normalize(),
			Power:     lc.Power,
		}, nil
	case "positional":
		return lights.Positional{
			Color:    vec3(lc.Color),
			Position: vec3(lc.Position),
			Power:    lc.Power,
		}, nil
	case "spherical":
		return lights.SphericalPositional{
			Color:    vec3(lc.Color),
			Position: vec3(lc.Position),
			Radius:   lc.Radius,
			Power:    lc.Power,
		}, nil
	default:
		return nil, fmt.Errorf("unknown light type %q", lc.Type)
	}
}

func vec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
