package integrator

import (
	"math"
	"math/rand"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
	"github.com/dfaivre/go-hybrid-tracer/pkg/geometry"
	"github.com/dfaivre/go-hybrid-tracer/pkg/material"
	"github.com/dfaivre/go-hybrid-tracer/pkg/scene"
)

const (
	maxSteps     = 255
	maxDistance  = 40.0
	hitPrecision = 0.001

	// Tetrahedron sampling offset for the normal estimate.
	normalStep = 0.5773 * 0.0005

	marcherGamma = 0.4545
	fogDensity   = 0.05
	fadeNear     = 5.0
	fadeFar      = 30.0

	triPlanarBlending = 8.0
	triPlanarScale    = 0.5
)

// RayMarcher renders the scene's distance-field objects by sphere tracing.
type RayMarcher struct {
	Scene *scene.Scene
	field *geometry.DistanceField
}

// NewRayMarcher creates a marcher over the given scene.
func NewRayMarcher(s *scene.Scene) *RayMarcher {
	return &RayMarcher{Scene: s, field: s.Field()}
}

// fieldAt evaluates every marched object at parameter t along ray and keeps
// the closest field.
func (rm *RayMarcher) fieldAt(ray core.Ray, t float64) (float64, int, geometry.SDFSample) {
	minDist := math.MaxFloat64
	objIdx := 0
	var nearest geometry.SDFSample

	for _, idx := range rm.Scene.SDFObjects {
		h, ok := rm.field.Evaluate(idx, ray, t)
		if !ok {
			continue
		}
		if h.Distance < minDist {
			minDist = h.Distance
			objIdx = idx
			nearest = h
		}
	}

	return minDist, objIdx, nearest
}

// distanceAt probes the combined field at a world point.
func (rm *RayMarcher) distanceAt(p core.Vec3) float64 {
	d, _, _ := rm.fieldAt(core.Ray{Origin: p}, 0)
	return d
}

// normal estimates the field gradient by tetrahedron sampling.
func (rm *RayMarcher) normal(p core.Vec3) core.Vec3 {
	xyy := core.NewVec3(1, -1, -1)
	yyx := core.NewVec3(-1, -1, 1)
	yxy := core.NewVec3(-1, 1, -1)
	xxx := core.NewVec3(1, 1, 1)

	n := xyy.Multiply(rm.distanceAt(p.Add(xyy.Multiply(normalStep)))).
		Add(yyx.Multiply(rm.distanceAt(p.Add(yyx.Multiply(normalStep))))).
		Add(yxy.Multiply(rm.distanceAt(p.Add(yxy.Multiply(normalStep))))).
		Add(xxx.Multiply(rm.distanceAt(p.Add(xxx.Multiply(normalStep)))))
	return n.Normalize()
}

// occlusion probes the field a few steps along the normal; solid geometry
// close above the surface darkens it.
func (rm *RayMarcher) occlusion(pos, nor core.Vec3) float64 {
	occ := 0.0
	sca := 1.0
	for i := 0; i < 4; i++ {
		hr := 0.02 + 0.025*float64(i*i)
		probe := pos.Add(nor.Multiply(hr))
		occ += -(rm.distanceAt(probe) - hr) * sca
		sca *= 0.85
	}
	return 1.0 - core.Clamp(occ, 0, 1)
}

// lightAt shades a marched hit with the shared Blinn-Phong model under the
// marcher's gamma.
func (rm *RayMarcher) lightAt(ray core.Ray, hit core.RayHit, albedo core.Vec3) core.Vec3 {
	if hit.MaterialIndex < 0 || hit.MaterialIndex >= len(rm.Scene.Materials) {
		return core.Zero
	}
	m := rm.Scene.Materials[hit.MaterialIndex]

	acc := core.Zero
	for _, l := range rm.Scene.Lights {
		k := BlinnPhong(ray, hit, l, albedo, m)
		dist := l.DistanceAt(hit.Point)
		acc = acc.Add(k.Multiply(1 / (dist * dist)).MultiplyVec(l.Albedo()).Multiply(l.Intensity()))
	}
	return acc.Pow(marcherGamma)
}

// March sphere-traces the ray. The step size is the field distance itself, so
// t overshoots by at most the final sub-precision step.
func (rm *RayMarcher) March(ray core.Ray) (bool, float64, int, geometry.SDFSample) {
	t := 0.0
	for i := 0; i < maxSteps; i++ {
		if t > maxDistance {
			break
		}

		h, objIdx, sample := rm.fieldAt(ray, t)
		t += h
		if h < hitPrecision {
			return true, t, objIdx, sample
		}
	}
	return false, t, 0, geometry.SDFSample{}
}

// Albedo computes the color seen along a primary ray. The random source is
// unused but kept so both integrators share a signature.
func (rm *RayMarcher) Albedo(ray core.Ray, _ *rand.Rand) core.Vec3 {
	hit, t, objIdx, sample := rm.March(ray)
	if !hit {
		return rm.Scene.AmbientColor
	}

	point := ray.At(t)
	n := rm.normal(point)
	matIdx := geometry.MaterialIndexOf(rm.Scene.Objects, objIdx)

	rayHit := core.RayHit{
		Distance:      t,
		Point:         point,
		Normal:        n,
		MaterialIndex: matIdx,
	}

	albedo := sample.Albedo
	if matIdx >= 0 && matIdx < len(rm.Scene.Materials) {
		m := rm.Scene.Materials[matIdx]
		if tex := rm.Scene.TextureFor(m); tex != nil {
			albedo = material.TriPlanar(tex, sample.LocalRay.At(t), n, triPlanarBlending, triPlanarScale)
		}
	}

	color := rm.lightAt(ray, rayHit, albedo)
	color = color.Multiply(rm.occlusion(point, n))
	color = color.Multiply(math.Exp(-fogDensity * t))
	color = color.Multiply(1.0 - core.SmoothStep(fadeNear, fadeFar, t))
	return color
}
