package scene

import (
	"fmt"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
	"github.com/dfaivre/go-hybrid-tracer/pkg/geometry"
	"github.com/dfaivre/go-hybrid-tracer/pkg/lights"
	"github.com/dfaivre/go-hybrid-tracer/pkg/material"
)

// UpdateFunc advances scene animation by one logic tick. ts is the elapsed
// time in seconds since the scene started; the return value reports whether
// anything changed so the renderer can restart accumulation. Runs on the
// logic thread only, never concurrently with rendering.
type UpdateFunc func(s *Scene, ts float64) bool

// Scene is the complete description of a renderable world: object list,
// index-addressed materials and textures, lights and render toggles.
type Scene struct {
	Objects   []geometry.Object
	Materials []material.Material
	Textures  []material.Texture
	Lights    []lights.Light

	AmbientColor  core.Vec3
	MaxRayBounces int
	MaxFrames     int

	// Diffuse switches reflective bounces to hemisphere scatter for the
	// Monte-Carlo scenes; EnableAccumulation keeps averaging frames.
	Diffuse            bool
	ShadowCasting      bool
	RayMarching        bool
	EnableAccumulation bool

	// SDFObjects lists the object indices the marcher evaluates. Anything
	// not listed here is invisible in ray-marching mode.
	SDFObjects []int

	// Suggested starting pose for the camera.
	CameraPosition  core.Vec3
	CameraDirection core.Vec3

	Update UpdateFunc
}

// New creates a scene with the defaults the demo scenes share.
func New(objects []geometry.Object, materials []material.Material) *Scene {
	return &Scene{
		Objects:         objects,
		Materials:       materials,
		AmbientColor:    core.Zero,
		MaxRayBounces:   5,
		MaxFrames:       10000,
		CameraPosition:  core.NewVec3(0, 0, 5),
		CameraDirection: core.NewVec3(0, 0, -1),
	}
}

// AddTexture appends a texture to the lookup table and returns the scene for
// chaining.
func (s *Scene) AddTexture(t material.Texture) *Scene {
	s.Textures = append(s.Textures, t)
	return s
}

// AddLight appends a light source and returns the scene for chaining.
func (s *Scene) AddLight(l lights.Light) *Scene {
	s.Lights = append(s.Lights, l)
	return s
}

// MaterialAt resolves the material of the object at idx, following CSG nodes
// to their first child.
func (s *Scene) MaterialAt(idx int) material.Material {
	return s.Materials[geometry.MaterialIndexOf(s.Objects, idx)]
}

// TextureFor returns the texture referenced by a material, or nil when the
// material is untextured or the index is out of range.
func (s *Scene) TextureFor(m material.Material) *material.Texture {
	if m.Texture < 0 || m.Texture >= len(s.Textures) {
		return nil
	}
	return &s.Textures[m.Texture]
}

// Field builds the distance-field evaluator over this scene's objects.
func (s *Scene) Field() *geometry.DistanceField {
	return &geometry.DistanceField{
		Objects: s.Objects,
		AlbedoOf: func(materialIndex int) core.Vec3 {
			return s.Materials[materialIndex].Albedo
		},
	}
}

// Step runs the animation hook once. Returns true when the scene changed.
func (s *Scene) Step(ts float64) bool {
	if s.Update == nil {
		return false
	}
	return s.Update(s, ts)
}

// Validate checks every cross-index in the scene: object materials, texture
// references, CSG children and the marched-object list.
func (s *Scene) Validate() error {
	// Child indices and acyclicity come first: the material resolution and
	// distance-field walks below assume a well-formed CSG graph.
	for i, obj := range s.Objects {
		switch o := obj.(type) {
		case *geometry.Union:
			if err := s.validateChild(i, o.First); err != nil {
				return err
			}
			if err := s.validateChild(i, o.Second); err != nil {
				return err
			}
		case *geometry.Subtraction:
			if err := s.validateChild(i, o.First); err != nil {
				return err
			}
			if err := s.validateChild(i, o.Second); err != nil {
				return err
			}
		}
	}
	if err := s.validateAcyclic(); err != nil {
		return err
	}

	for i := range s.Objects {
		m := geometry.MaterialIndexOf(s.Objects, i)
		if m < 0 || m >= len(s.Materials) {
			return fmt.Errorf("object %d: material index %d out of range (%d materials)", i, m, len(s.Materials))
		}
	}

	for i, m := range s.Materials {
		if m.Kind == nil {
			return fmt.Errorf("material %d: missing kind", i)
		}
		if r, ok := m.Kind.(material.Refractive); ok && r.RefractionIndex <= 0 {
			return fmt.Errorf("material %d: refraction index must be positive", i)
		}
	}

	for _, idx := range s.SDFObjects {
		if idx < 0 || idx >= len(s.Objects) {
			return fmt.Errorf("sdf object index %d out of range (%d objects)", idx, len(s.Objects))
		}
	}
	return nil
}

func (s *Scene) validateChild(parent, child int) error {
	if child < 0 || child >= len(s.Objects) {
		return fmt.Errorf("csg node %d: child index %d out of range (%d objects)", parent, child, len(s.Objects))
	}
	if child == parent {
		return fmt.Errorf("csg node %d references itself", parent)
	}
	return nil
}

// validateAcyclic rejects CSG graphs where a node can reach itself through
// its children, which would otherwise recurse without bound during material
// resolution and field evaluation.
func (s *Scene) validateAcyclic() error {
	const (
		inStack = 1
		done    = 2
	)
	state := make([]byte, len(s.Objects))

	var walk func(i int) error
	walk = func(i int) error {
		switch state[i] {
		case inStack:
			return fmt.Errorf("csg node %d is part of a reference cycle", i)
		case done:
			return nil
		}
		state[i] = inStack

		var first, second int
		switch o := s.Objects[i].(type) {
		case *geometry.Union:
			first, second = o.First, o.Second
		case *geometry.Subtraction:
			first, second = o.First, o.Second
		default:
			state[i] = done
			return nil
		}
		if err := walk(first); err != nil {
			return err
		}
		if err := walk(second); err != nil {
			return err
		}

		state[i] = done
		return nil
	}

	for i := range s.Objects {
		if err := walk(i); err != nil {
			return err
		}
	}
	return nil
}
