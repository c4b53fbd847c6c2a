package geometry

import (
	"math"
	"testing"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
)

func TestSphereIntersect(t *testing.T) {
	tests := []struct {
		name         string
		center       core.Vec3
		radius       float64
		rayOrigin    core.Vec3
		rayDirection core.Vec3
		wantHit      bool
		wantDistance float64
	}{
		{
			name:         "head-on hit from front",
			center:       core.NewVec3(0, 0, -5),
			radius:       1.0,
			rayOrigin:    core.NewVec3(0, 0, 0),
			rayDirection: core.NewVec3(0, 0, -1),
			wantHit:      true,
			wantDistance: 4.0,
		},
		{
			name:         "offset hit still inside radius",
			center:       core.NewVec3(0, 0, -5),
			radius:       1.0,
			rayOrigin:    core.NewVec3(0.5, 0, 0),
			rayDirection: core.NewVec3(0, 0, -1),
			wantHit:      true,
		},
		{
			name:         "clean miss",
			center:       core.NewVec3(0, 0, -5),
			radius:       1.0,
			rayOrigin:    core.NewVec3(3, 0, 0),
			rayDirection: core.NewVec3(0, 0, -1),
			wantHit:      false,
		},
		{
			name:         "scaled sphere hit",
			center:       core.NewVec3(0, 0, -10),
			radius:       2.5,
			rayOrigin:    core.NewVec3(0, 0, 0),
			rayDirection: core.NewVec3(0, 0, -1),
			wantHit:      true,
			wantDistance: 7.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSphere(tt.center, tt.radius, 0)
			ray := core.Ray{Origin: tt.rayOrigin, Direction: tt.rayDirection}

			hit, ok := s.Intersect(ray)
			if ok != tt.wantHit {
				t.Fatalf("Intersect() hit = %v, want %v", ok, tt.wantHit)
			}
			if !tt.wantHit {
				return
			}
			if tt.wantDistance != 0 && math.Abs(hit.Distance-tt.wantDistance) > 1e-6 {
				t.Errorf("Intersect() distance = %v, want %v", hit.Distance, tt.wantDistance)
			}
		})
	}
}

func TestSphereNormalPointsBack(t *testing.T) {
	center := core.NewVec3(1, 2, 3)
	radius := 0.5
	s := NewSphere(center, radius, 0)

	// Approach along an arbitrary direction from twice the radius out.
	dir := core.NewVec3(-1, 0.3, -0.2).Normalize()
	origin := center.Subtract(dir.Multiply(2 * radius))
	ray := core.Ray{Origin: origin, Direction: dir}

	hit, ok := s.Intersect(ray)
	if !ok {
		t.Fatal("expected hit on sphere from outside")
	}
	if math.Abs(hit.Distance-radius) > 1e-6 {
		t.Errorf("hit distance = %v, want %v", hit.Distance, radius)
	}

	// Surface normal at the entry point faces the ray origin.
	wantNormal := dir.Negate()
	if hit.Normal.Subtract(wantNormal).Length() > 1e-6 {
		t.Errorf("hit normal = %v, want %v", hit.Normal, wantNormal)
	}
}

func TestSphereSignedDistance(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, -5), 2.0, 0)
	ray := core.Ray{Origin: core.NewVec3(0, 0, 0), Direction: core.NewVec3(0, 0, -1)}

	// At the origin the field reads center distance minus radius.
	d, _ := s.SignedDistance(ray, 0)
	if math.Abs(d-3.0) > 1e-6 {
		t.Errorf("distance at origin = %v, want 3", d)
	}

	// On the surface the field is zero.
	d, _ = s.SignedDistance(ray, 3.0)
	if math.Abs(d) > 1e-6 {
		t.Errorf("distance on surface = %v, want 0", d)
	}

	// Inside the field goes negative.
	d, _ = s.SignedDistance(ray, 5.0)
	if d >= 0 {
		t.Errorf("distance at center = %v, want negative", d)
	}
}

func TestSphereUpdateRecomputesTransform(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, -5), 1.0, 0)
	ray := core.Ray{Origin: core.NewVec3(0, 0, 0), Direction: core.NewVec3(0, 0, -1)}

	if _, ok := s.Intersect(ray); !ok {
		t.Fatal("expected initial hit")
	}

	s.Position = core.NewVec3(10, 0, -5)
	s.Update()

	if _, ok := s.Intersect(ray); ok {
		t.Error("expected miss after moving the sphere aside")
	}
}
