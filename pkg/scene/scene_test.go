package scene

import (
	"testing"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
	"github.com/dfaivre/go-hybrid-tracer/pkg/geometry"
	"github.com/dfaivre/go-hybrid-tracer/pkg/material"
)

func TestValidateCatchesBadIndices(t *testing.T) {
	tests := []struct {
		name    string
		scene   *Scene
		wantErr bool
	}{
		{
			name: "valid minimal scene",
			scene: New(
				[]geometry.Object{geometry.NewSphere(core.Zero, 1, 0)},
				[]material.Material{material.Default()},
			),
		},
		{
			name: "material index out of range",
			scene: New(
				[]geometry.Object{geometry.NewSphere(core.Zero, 1, 3)},
				[]material.Material{material.Default()},
			),
			wantErr: true,
		},
		{
			name: "csg child out of range",
			scene: New(
				[]geometry.Object{
					geometry.NewSphere(core.Zero, 1, 0),
					geometry.NewUnion(0, 7),
				},
				[]material.Material{material.Default()},
			),
			wantErr: true,
		},
		{
			name: "sdf index out of range",
			scene: func() *Scene {
				s := New(
					[]geometry.Object{geometry.NewSphere(core.Zero, 1, 0)},
					[]material.Material{material.Default()},
				)
				s.SDFObjects = []int{4}
				return s
			}(),
			wantErr: true,
		},
		{
			name: "csg node references itself",
			scene: New(
				[]geometry.Object{
					geometry.NewSphere(core.Zero, 1, 0),
					geometry.NewSubtraction(1, 0),
				},
				[]material.Material{material.Default()},
			),
			wantErr: true,
		},
		{
			name: "mutually referencing csg nodes",
			scene: New(
				[]geometry.Object{
					geometry.NewUnion(1, 1),
					geometry.NewUnion(0, 0),
				},
				[]material.Material{material.Default()},
			),
			wantErr: true,
		},
		{
			name: "csg cycle through a longer chain",
			scene: New(
				[]geometry.Object{
					geometry.NewSphere(core.Zero, 1, 0),
					geometry.NewUnion(2, 0),
					geometry.NewSubtraction(3, 0),
					geometry.NewUnion(1, 0),
				},
				[]material.Material{material.Default()},
			),
			wantErr: true,
		},
		{
			name: "diamond csg sharing is not a cycle",
			scene: New(
				[]geometry.Object{
					geometry.NewSphere(core.Zero, 1, 0),
					geometry.NewSphere(core.NewVec3(1, 0, 0), 1, 0),
					geometry.NewUnion(0, 1),
					geometry.NewSubtraction(2, 2),
				},
				[]material.Material{material.Default()},
			),
		},
		{
			name: "refractive index must be positive",
			scene: func() *Scene {
				m := material.Default()
				m.Kind = material.Refractive{Transparency: 1, RefractionIndex: 0}
				return New(
					[]geometry.Object{geometry.NewSphere(core.Zero, 1, 0)},
					[]material.Material{m},
				)
			}(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.scene.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBuiltinScenesValidate(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := ByName(name, nil)
			if err != nil {
				t.Fatalf("ByName(%q) error: %v", name, err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
			if s.CameraDirection.Length() == 0 {
				t.Error("scene has no camera direction")
			}
		})
	}
}

func TestStepReportsChanges(t *testing.T) {
	s, err := NewPrimitivesScene(nil)
	if err != nil {
		t.Fatal(err)
	}

	cuboid := s.Objects[3].(*geometry.Cuboid)
	before := cuboid.Rotation

	if !s.Step(0.1) {
		t.Fatal("Step() = false, want true for animated scene")
	}
	if cuboid.Rotation == before {
		t.Error("cuboid rotation did not advance")
	}

	static := NewEmissiveScene()
	if static.Step(0.1) {
		t.Error("Step() = true for scene without update hook")
	}
}

func TestTextureForGuardsRange(t *testing.T) {
	s := New(nil, nil)

	m := material.Default() // untextured, index -1
	if s.TextureFor(m) != nil {
		t.Error("expected nil texture for untextured material")
	}

	m.Texture = 2 // authored index with no textures loaded
	if s.TextureFor(m) != nil {
		t.Error("expected nil texture when table is empty")
	}

	s.AddTexture(material.Texture{Width: 1, Height: 1, Bytes: []byte{255, 0, 0}})
	m.Texture = 0
	if s.TextureFor(m) == nil {
		t.Error("expected texture at valid index")
	}
}
