package integrator

import (
	"math"
	"testing"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
	"github.com/dfaivre/go-hybrid-tracer/pkg/geometry"
	"github.com/dfaivre/go-hybrid-tracer/pkg/lights"
	"github.com/dfaivre/go-hybrid-tracer/pkg/material"
	"github.com/dfaivre/go-hybrid-tracer/pkg/scene"
)

func marchedSphereScene() *scene.Scene {
	m := material.Default()
	m.Albedo = core.NewVec3(0.2, 0.6, 0.9)

	s := scene.New(
		[]geometry.Object{geometry.NewSphere(core.NewVec3(0, 0, -5), 1, 0)},
		[]material.Material{m},
	)
	s.RayMarching = true
	s.SDFObjects = []int{0}
	s.AddLight(lights.Directional{Color: core.One, Direction: core.NewVec3(0, -1, -1).Normalize(), Power: 2})
	return s
}

func TestMarchConvergesOnSphere(t *testing.T) {
	rm := NewRayMarcher(marchedSphereScene())

	ray := core.Ray{Origin: core.Zero, Direction: core.NewVec3(0, 0, -1)}
	hit, dist, objIdx, _ := rm.March(ray)
	if !hit {
		t.Fatal("expected march hit on sphere")
	}
	if math.Abs(dist-4.0) > 0.01 {
		t.Errorf("march distance = %v, want ~4", dist)
	}
	if objIdx != 0 {
		t.Errorf("march object = %d, want 0", objIdx)
	}
}

func TestMarchMissStopsAtMaxDistance(t *testing.T) {
	rm := NewRayMarcher(marchedSphereScene())

	ray := core.Ray{Origin: core.Zero, Direction: core.NewVec3(0, 1, 0)}
	hit, dist, _, _ := rm.March(ray)
	if hit {
		t.Fatal("expected miss straight up")
	}
	if dist <= maxDistance {
		t.Errorf("march stopped at %v, want past %v", dist, maxDistance)
	}

	if got := rm.Albedo(ray, nil); got != rm.Scene.AmbientColor {
		t.Errorf("miss color = %v, want ambient %v", got, rm.Scene.AmbientColor)
	}
}

func TestMarcherNormalMatchesAnalytic(t *testing.T) {
	rm := NewRayMarcher(marchedSphereScene())

	// On the front pole of the sphere the gradient points back at the camera.
	p := core.NewVec3(0, 0, -4)
	n := rm.normal(p)
	want := core.NewVec3(0, 0, 1)
	if n.Subtract(want).Length() > 1e-3 {
		t.Errorf("normal = %v, want %v", n, want)
	}
}

func TestOcclusionDarkensCrevice(t *testing.T) {
	// Two overlapping spheres form a crease; a probe in the crease must be
	// more occluded than one on open surface.
	m := material.Default()
	s := scene.New(
		[]geometry.Object{
			geometry.NewSphere(core.NewVec3(-0.8, 0, -5), 1, 0),
			geometry.NewSphere(core.NewVec3(0.8, 0, -5), 1, 0),
		},
		[]material.Material{m},
	)
	s.RayMarching = true
	s.SDFObjects = []int{0, 1}
	rm := NewRayMarcher(s)

	creviceOcc := rm.occlusion(core.NewVec3(0, 0.6, -5), core.NewVec3(0, 1, 0))
	openOcc := rm.occlusion(core.NewVec3(-0.8, 1, -5), core.NewVec3(0, 1, 0))

	if creviceOcc >= openOcc {
		t.Errorf("crevice occlusion %v not darker than open surface %v", creviceOcc, openOcc)
	}
}

func TestMarchedUnionShadesBlendedColor(t *testing.T) {
	red := material.Default()
	red.Albedo = core.NewVec3(1, 0, 0)
	blue := material.Default()
	blue.Albedo = core.NewVec3(0, 0, 1)

	s := scene.New(
		[]geometry.Object{
			geometry.NewUnion(1, 2),
			geometry.NewSphere(core.NewVec3(-0.4, 0, -5), 1, 0),
			geometry.NewSphere(core.NewVec3(0.4, 0, -5), 1, 1),
		},
		[]material.Material{red, blue},
	)
	s.RayMarching = true
	s.SDFObjects = []int{0}
	s.AddLight(lights.Directional{Color: core.One, Direction: core.NewVec3(0, 0, -1), Power: 4})
	rm := NewRayMarcher(s)

	// Aim between the two spheres: the blend weight mixes both albedos.
	ray := core.Ray{Origin: core.Zero, Direction: core.NewVec3(0, 0, -1)}
	hit, _, _, sample := rm.March(ray)
	if !hit {
		t.Fatal("expected hit on union")
	}
	if sample.Albedo.X <= 0 || sample.Albedo.Z <= 0 {
		t.Errorf("union albedo = %v, want both red and blue contributions", sample.Albedo)
	}
}

func TestMarcherFadesWithDistance(t *testing.T) {
	near := marchedSphereScene()
	rmNear := NewRayMarcher(near)

	far := marchedSphereScene()
	if sp, ok := far.Objects[0].(*geometry.Sphere); ok {
		sp.Position = core.NewVec3(0, 0, -25)
		sp.Update()
	}
	rmFar := NewRayMarcher(far)

	ray := core.Ray{Origin: core.Zero, Direction: core.NewVec3(0, 0, -1)}
	nearColor := rmNear.Albedo(ray, nil)
	farColor := rmFar.Albedo(ray, nil)

	if farColor.Luminance() >= nearColor.Luminance() {
		t.Errorf("far hit %v not dimmer than near hit %v", farColor, nearColor)
	}
}
