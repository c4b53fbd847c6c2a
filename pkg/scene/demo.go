package scene

import (
	"fmt"
	"math"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
	"github.com/dfaivre/go-hybrid-tracer/pkg/geometry"
	"github.com/dfaivre/go-hybrid-tracer/pkg/lights"
	"github.com/dfaivre/go-hybrid-tracer/pkg/material"
)

// TextureLoader resolves a texture path to pixel data. A nil loader builds the
// scene without textures; materials keep their texture indices and the
// samplers fall back to plain albedo.
type TextureLoader func(path string) (material.Texture, error)

var demoTextures = []string{
	"resources/chess.png",
	"resources/wood.png",
	"resources/stone.png",
	"resources/earth_clouds.png",
}

// Names lists the built-in scenes in CLI order.
func Names() []string {
	return []string{"primitives", "emissive", "spherical-light", "csg"}
}

// ByName resolves a built-in scene constructor.
func ByName(name string, load TextureLoader) (*Scene, error) {
	switch name {
	case "primitives":
		return NewPrimitivesScene(load)
	case "emissive":
		return NewEmissiveScene(), nil
	case "spherical-light":
		return NewSphericalLightScene(load)
	case "csg":
		return NewCSGScene(load)
	default:
		return nil, fmt.Errorf("unknown scene %q (have %v)", name, Names())
	}
}

func loadAll(s *Scene, load TextureLoader) error {
	if load == nil {
		return nil
	}
	for _, path := range demoTextures {
		t, err := load(path)
		if err != nil {
			return err
		}
		s.AddTexture(t)
	}
	return nil
}

// NewPrimitivesScene shows every analytic primitive at once: textured and
// refractive spheres, a spinning cuboid, a cone, a cylinder and a triangle on
// a bounded checker floor.
func NewPrimitivesScene(load TextureLoader) (*Scene, error) {
	floorBounds := core.NewVec2(5, 5)

	objects := []geometry.Object{
		geometry.NewSphere(core.NewVec3(1.2, 0, 2.5), 0.5, 0),
		geometry.NewPlane(core.NewVec3(0, 1, 0), core.NewVec3(0, -0.5, 0), &floorBounds, 1),
		geometry.NewRotatedSphere(core.NewVec3(3.0, 0.5, 0.8), core.NewVec3(-90, 0, 0), 0.7, 2),
		geometry.NewRotatedCuboid(core.NewVec3(-1.0, 1.3, 2), core.Zero, core.NewVec3(0.6, 1, 0.2), 3),
		geometry.NewSphere(core.NewVec3(1.5, 0, 0), 0.5, 4),
		geometry.NewRotatedCone(core.NewVec3(2.3, 0.7, 2), core.NewVec3(120, 0, 0), 0.5, 1, 5),
		geometry.NewRotatedCylinder(core.NewVec3(2.3, 0, 3.0), core.NewVec3(90, 0, 0), 0.4, 1, 6),
		geometry.NewTriangle(
			core.NewVec3(1.5, 1, 0),
			core.NewVec3(1.5, 0, 0),
			core.NewVec3(2.5, 1, 0),
			1,
		),
	}

	materials := []material.Material{
		withCoefficients(0.4, 0.3, 3, 12, core.NewVec3(1, 1, 1), -1,
			material.Refractive{Transparency: 1, RefractionIndex: 1.08, Reflectivity: 0.1}),
		withCoefficients(0.4, 0.1, 0.8, 15, core.NewVec3(0.4, 0.4, 0.4), 0,
			material.Reflective{Roughness: 0.8}),
		withCoefficients(0.2, 0.8, 1.2, 200, core.NewVec3(0.0, 0.2, 0.9), 3,
			material.Reflective{Roughness: 0.6}),
		withCoefficients(0.4, 0.8, 1.1, 70, core.NewVec3(0.5, 0.5, 0.5), 1,
			material.Reflective{Roughness: 0.8}),
		withCoefficients(0.4, 0.8, 0.4, 80, core.NewVec3(0.8, 0.6, 0.1), -1,
			material.Reflective{Roughness: 0.4}),
		withCoefficients(0.5, 0.1, 0.1, 80, core.NewVec3(0.3, 0.7, 0.5), 0,
			material.Reflective{Roughness: 0.4}),
		withCoefficients(0.6, 0.3, 0.8, 40, core.NewVec3(0.1, 0.5, 0.9), -1,
			material.Reflective{Roughness: 0.4}),
	}

	s := New(objects, materials)
	if err := loadAll(s, load); err != nil {
		return nil, err
	}

	s.AddLight(lights.Positional{Color: core.One, Position: core.NewVec3(2, 2, 2), Power: 6}).
		AddLight(lights.Positional{Color: core.One, Position: core.NewVec3(3, 2, -2), Power: 6})

	s.CameraPosition = core.NewVec3(3.8536084, 0.75215954, 4.388293)
	s.CameraDirection = core.NewVec3(-0.76750606, -0.05052291, -0.6390541)
	s.Update = spinCuboid
	return s, nil
}

// spinCuboid tumbles the first cuboid in the scene a little each tick.
func spinCuboid(s *Scene, ts float64) bool {
	const speed = 0.2
	for _, obj := range s.Objects {
		if c, ok := obj.(*geometry.Cuboid); ok {
			c.Rotation.X += 2 * speed
			c.Rotation.Y += 2 * speed
			c.Rotation.Z += 4 * speed
			c.Update()
			return true
		}
	}
	return false
}

// NewEmissiveScene is the Monte-Carlo setup: no analytic lights at all, a huge
// emissive sphere acting as a sun, diffuse bounces and frame accumulation.
func NewEmissiveScene() *Scene {
	objects := []geometry.Object{
		geometry.NewSphere(core.NewVec3(0, -100.5, 0), 100, 0),
		geometry.NewSphere(core.NewVec3(10, 15, -34), 20, 1),
		geometry.NewSphere(core.NewVec3(0, 0.5, -0.5), 1, 2),
	}

	ground := material.Default()
	ground.Albedo = core.NewVec3(0.9, 0.9, 0.2)

	sun := material.Default()
	sun.Albedo = core.NewVec3(0.9, 0.5, 0.2)
	sun.EmissionPower = 8

	ball := material.Default()
	ball.Albedo = core.NewVec3(0.9, 0.9, 0.2)

	s := New(objects, []material.Material{ground, sun, ball})
	s.Diffuse = true
	s.EnableAccumulation = true
	s.CameraPosition = core.NewVec3(3.8536084, 0.75215954, 4.388293)
	s.CameraDirection = core.NewVec3(-0.76750606, -0.05052291, -0.6390541)
	return s
}

// NewSphericalLightScene is a single sphere on a bounded floor lit by a tinted
// spherical area light, with shadow casting enabled.
func NewSphericalLightScene(load TextureLoader) (*Scene, error) {
	floorBounds := core.NewVec2(5, 5)

	objects := []geometry.Object{
		geometry.NewPlane(core.NewVec3(0, 1, 0), core.Zero, &floorBounds, 0),
		geometry.NewSphere(core.NewVec3(0, 0.5, 0), 0.5, 1),
	}

	materials := []material.Material{
		withCoefficients(1.6, 0.2, 0.8, 5, core.NewVec3(0.4, 0.4, 0.4), -1,
			material.Reflective{Roughness: 1}),
		withCoefficients(0.4, 0.7, 0.5, 60, core.NewVec3(0.1, 0.5, 0.9), -1,
			material.Reflective{Roughness: 0.4}),
	}

	s := New(objects, materials)
	if err := loadAll(s, load); err != nil {
		return nil, err
	}

	s.AddLight(lights.SphericalPositional{
		Color:    core.NewVec3(1, 0.5, 1),
		Position: core.NewVec3(1, 3, 2),
		Radius:   1,
		Power:    8,
	})
	s.ShadowCasting = true
	s.CameraPosition = core.NewVec3(0, 2, 5)
	s.CameraDirection = core.NewVec3(0, 0, -5).Normalize()
	return s, nil
}

// NewCSGScene marches a smooth union of floor and a sunken sphere next to a
// cylinder with a spinning cuboid carved out of it.
func NewCSGScene(load TextureLoader) (*Scene, error) {
	floorBounds := core.NewVec2(5, 5)

	objects := []geometry.Object{
		geometry.NewUnion(1, 2),
		geometry.NewPlane(core.NewVec3(0, 1, 0), core.Zero, &floorBounds, 0),
		geometry.NewSphere(core.NewVec3(0, -1, -2), 1, 1),
		geometry.NewRotatedCylinder(core.NewVec3(-1, 1.2, 0.2), core.NewVec3(0, 0, 45), 1.5, 0.5, 2),
		geometry.NewRotatedCuboid(core.NewVec3(-1, 1.5, 0.2), core.NewVec3(0, 20, 0), core.NewVec3(0.5, 1, 0.5), 1),
		geometry.NewSubtraction(3, 4),
	}

	materials := []material.Material{
		withCoefficients(0.5, 0.2, 0.8, 5, core.NewVec3(0.4, 0.4, 0.4), 0,
			material.Reflective{Roughness: 1}),
		withCoefficients(0.3, 0.4, 0.5, 64, core.NewVec3(0.4, 0.4, 0.4), -1,
			material.Reflective{Roughness: 1}),
		withCoefficients(0.4, 0.4, 0.5, 64, core.NewVec3(0.0, 0.4, 1), -1,
			material.Reflective{Roughness: 1}),
	}

	s := New(objects, materials)
	if err := loadAll(s, load); err != nil {
		return nil, err
	}

	s.AddLight(lights.Directional{
		Color:     core.One,
		Direction: core.NewVec3(-1, -1, -2).Normalize(),
		Power:     2,
	})
	s.RayMarching = true
	s.ShadowCasting = true
	s.SDFObjects = []int{0, 5}
	s.CameraPosition = core.NewVec3(0, 2, 4)
	s.CameraDirection = core.NewVec3(0, 0, -1)
	s.Update = animateCSG
	return s, nil
}

// animateCSG bobs the unioned sphere and spins the carved cylinder.
func animateCSG(s *Scene, ts float64) bool {
	const speed = 1.0
	changed := false
	if sp, ok := s.Objects[2].(*geometry.Sphere); ok {
		sp.Position.Y = math.Sin(ts)*speed + 0.8
		sp.Update()
		changed = true
	}
	if cy, ok := s.Objects[3].(*geometry.Cylinder); ok {
		cy.Rotation.Y += 2 * speed
		cy.Update()
		changed = true
	}
	return changed
}

func withCoefficients(ambience, diffuse, specular, shininess float64, albedo core.Vec3, texture int, kind material.Kind) material.Material {
	m := material.Default()
	m.Ambience = ambience
	m.Diffuse = diffuse
	m.Specular = specular
	m.Shininess = shininess
	m.Albedo = albedo
	m.Texture = texture
	m.Kind = kind
	return m
}
