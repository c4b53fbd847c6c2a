package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/dfaivre/go-hybrid-tracer/pkg/geometry"
	"github.com/dfaivre/go-hybrid-tracer/pkg/lights"
	"github.com/dfaivre/go-hybrid-tracer/pkg/material"
)

const sampleScene = `
camera:
  position: [0, 2, 5]
  direction: [0, 0, -1]
settings:
  ambientColor: [0.1, 0.1, 0.1]
  maxRayBounces: 3
  shadowCasting: true
  rayMarching: true
  sdfObjects: [2]
materials:
  - type: reflective
    ambience: 0.4
    diffuse: 0.7
    specular: 0.5
    shininess: 60
    albedo: [0.1, 0.5, 0.9]
    roughness: 0.4
  - type: refractive
    ambience: 0.4
    diffuse: 0.3
    specular: 3
    shininess: 12
    albedo: [1, 1, 1]
    transparency: 1
    refractionIndex: 1.08
    reflectivity: 0.1
objects:
  - type: plane
    normal: [0, 1, 0]
    position: [0, -0.5, 0]
    maxDist: [5, 5]
    material: 0
  - type: sphere
    position: [0, 0.5, 0]
    radius: 0.5
    material: 1
  - type: union
    first: 0
    second: 1
lights:
  - type: positional
    color: [1, 1, 1]
    position: [2, 2, 2]
    power: 6
  - type: directional
    color: [1, 1, 1]
    direction: [-1, -1, -2]
    power: 2
`

func TestBuildSceneFromYAML(t *testing.T) {
	var cfg SceneConfig
	if err := yaml.Unmarshal([]byte(sampleScene), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	s, err := BuildScene(&cfg, nil)
	if err != nil {
		t.Fatalf("BuildScene() error: %v", err)
	}

	if len(s.Objects) != 3 {
		t.Errorf("objects = %d, want 3", len(s.Objects))
	}
	if _, ok := s.Objects[0].(*geometry.Plane); !ok {
		t.Errorf("object 0 = %T, want *geometry.Plane", s.Objects[0])
	}
	if _, ok := s.Objects[2].(*geometry.Union); !ok {
		t.Errorf("object 2 = %T, want *geometry.Union", s.Objects[2])
	}

	if _, ok := s.Materials[1].Kind.(material.Refractive); !ok {
		t.Errorf("material 1 kind = %T, want Refractive", s.Materials[1].Kind)
	}

	if len(s.Lights) != 2 {
		t.Fatalf("lights = %d, want 2", len(s.Lights))
	}
	if _, ok := s.Lights[1].(lights.Directional); !ok {
		t.Errorf("light 1 = %T, want Directional", s.Lights[1])
	}

	if s.MaxRayBounces != 3 {
		t.Errorf("maxRayBounces = %d, want 3", s.MaxRayBounces)
	}
	if !s.RayMarching || !s.ShadowCasting {
		t.Error("toggles from settings were not applied")
	}
	if len(s.SDFObjects) != 1 || s.SDFObjects[0] != 2 {
		t.Errorf("sdfObjects = %v, want [2]", s.SDFObjects)
	}
	if s.CameraPosition.Y != 2 {
		t.Errorf("camera position = %v, want y=2", s.CameraPosition)
	}
}

func TestLoadSceneRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown object type",
			doc: `
materials:
  - {type: reflective, albedo: [1, 1, 1], roughness: 1}
objects:
  - {type: torus, material: 0}
`,
		},
		{
			name: "union child out of range",
			doc: `
materials:
  - {type: reflective, albedo: [1, 1, 1], roughness: 1}
objects:
  - {type: sphere, position: [0, 0, 0], radius: 1, material: 0}
  - {type: union, first: 0, second: 9}
`,
		},
		{
			name: "mutually referencing csg nodes",
			doc: `
materials:
  - {type: reflective, albedo: [1, 1, 1], roughness: 1}
objects:
  - {type: union, first: 1, second: 1}
  - {type: union, first: 0, second: 0}
`,
		},
		{
			name: "unknown light type",
			doc: `
materials:
  - {type: reflective, albedo: [1, 1, 1], roughness: 1}
objects:
  - {type: sphere, position: [0, 0, 0], radius: 1, material: 0}
lights:
  - {type: laser, color: [1, 0, 0], power: 1}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scene.yaml")
			if err := os.WriteFile(path, []byte(tt.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadScene(path); err == nil {
				t.Error("LoadScene() succeeded, want error")
			}
		})
	}
}

func TestLoadSceneMissingFile(t *testing.T) {
	if _, err := LoadScene(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadScene() succeeded on missing file")
	}
}
