package geometry

import (
	"math"
	"testing"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
)

func testField(objects []Object, albedos []core.Vec3) *DistanceField {
	return &DistanceField{
		Objects: objects,
		AlbedoOf: func(materialIndex int) core.Vec3 {
			return albedos[materialIndex]
		},
	}
}

func TestUnionNeverExceedsSharpMinimum(t *testing.T) {
	objects := []Object{
		NewSphere(core.NewVec3(-0.4, 0, -5), 1.0, 0),
		NewSphere(core.NewVec3(0.4, 0, -5), 1.0, 1),
		NewUnion(0, 1),
	}
	field := testField(objects, []core.Vec3{core.One, core.One})

	ray := core.Ray{Origin: core.NewVec3(0, 0, 0), Direction: core.NewVec3(0, 0, -1)}
	for _, dist := range []float64{0, 1, 2.5, 3.5, 5} {
		h, ok := field.Evaluate(2, ray, dist)
		if !ok {
			t.Fatalf("Evaluate(union) at t=%v reported no field", dist)
		}

		h1, _ := field.Evaluate(0, ray, dist)
		h2, _ := field.Evaluate(1, ray, dist)
		sharp := math.Min(h1.Distance, h2.Distance)
		if h.Distance > sharp+1e-6 {
			t.Errorf("at t=%v union distance %v exceeds sharp min %v", dist, h.Distance, sharp)
		}
	}
}

func TestUnionBlendsAlbedoTowardNearerChild(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	blue := core.NewVec3(0, 0, 1)
	objects := []Object{
		NewSphere(core.NewVec3(-3, 0, -5), 1.0, 0),
		NewSphere(core.NewVec3(3, 0, -5), 1.0, 1),
		NewUnion(0, 1),
	}
	field := testField(objects, []core.Vec3{red, blue})

	// A probe right next to the first sphere reads an almost pure first color.
	ray := core.Ray{Origin: core.NewVec3(-3, 0, 0), Direction: core.NewVec3(0, 0, -1)}
	h, ok := field.Evaluate(2, ray, 3.8)
	if !ok {
		t.Fatal("Evaluate(union) reported no field")
	}
	if h.Albedo.X < 0.9 || h.Albedo.Z > 0.1 {
		t.Errorf("albedo near first child = %v, want near %v", h.Albedo, red)
	}
}

func TestSubtractionCarvesSecondFromFirst(t *testing.T) {
	objects := []Object{
		NewSphere(core.NewVec3(0, 0, -5), 1.0, 0),
		NewSphere(core.NewVec3(0, 0, -4.5), 0.5, 1),
		NewSubtraction(0, 1),
	}
	field := testField(objects, []core.Vec3{core.One, core.One})

	ray := core.Ray{Origin: core.NewVec3(0, 0, 0), Direction: core.NewVec3(0, 0, -1)}

	// Inside the carved-out region the field reads positive (outside).
	h, ok := field.Evaluate(2, ray, 4.5)
	if !ok {
		t.Fatal("Evaluate(subtraction) reported no field")
	}
	if h.Distance <= 0 {
		t.Errorf("distance inside carved region = %v, want positive", h.Distance)
	}

	// Deep inside the first sphere but outside the second, still solid.
	h, _ = field.Evaluate(2, ray, 5.5)
	if h.Distance >= 0 {
		t.Errorf("distance in solid region = %v, want negative", h.Distance)
	}
}

func TestMaterialIndexOfDelegatesThroughCSG(t *testing.T) {
	objects := []Object{
		NewSphere(core.NewVec3(0, 0, -5), 1.0, 3),
		NewSphere(core.NewVec3(2, 0, -5), 1.0, 7),
		NewUnion(0, 1),
		NewSubtraction(2, 1),
	}

	if got := MaterialIndexOf(objects, 2); got != 3 {
		t.Errorf("MaterialIndexOf(union) = %d, want 3", got)
	}
	if got := MaterialIndexOf(objects, 3); got != 3 {
		t.Errorf("MaterialIndexOf(nested subtraction) = %d, want 3", got)
	}
}

func TestConeHasNoDistanceField(t *testing.T) {
	objects := []Object{NewCone(core.NewVec3(0, 0, -5), 1, 2, 0)}
	field := testField(objects, []core.Vec3{core.One})

	ray := core.Ray{Origin: core.NewVec3(0, 0, 0), Direction: core.NewVec3(0, 0, -1)}
	if _, ok := field.Evaluate(0, ray, 1); ok {
		t.Error("cones must be excluded from the marcher")
	}
}

func TestCyclicCSGWalksTerminate(t *testing.T) {
	// Mutually referencing nodes are rejected by scene validation, but the
	// walks themselves must stay bounded for callers that skip it.
	objects := []Object{
		NewUnion(1, 1),
		NewUnion(0, 0),
	}

	if got := MaterialIndexOf(objects, 0); got != 0 {
		t.Errorf("MaterialIndexOf(cyclic union) = %d, want fallback 0", got)
	}

	field := testField(objects, []core.Vec3{core.One})
	ray := core.Ray{Origin: core.NewVec3(0, 0, 5), Direction: core.NewVec3(0, 0, -1)}
	if _, ok := field.Evaluate(0, ray, 1); ok {
		t.Error("cyclic field evaluation must report no sample")
	}
}
