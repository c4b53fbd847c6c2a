package integrator

import (
	"math"
	"math/rand"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
	"github.com/dfaivre/go-hybrid-tracer/pkg/geometry"
	"github.com/dfaivre/go-hybrid-tracer/pkg/lights"
	"github.com/dfaivre/go-hybrid-tracer/pkg/material"
	"github.com/dfaivre/go-hybrid-tracer/pkg/scene"
)

// tracerGamma is the exponent applied to accumulated direct light.
const tracerGamma = 0.4166

// Integrator turns a camera ray into a color. Both the analytic tracer and
// the sphere-tracing marcher satisfy it.
type Integrator interface {
	Albedo(ray core.Ray, random *rand.Rand) core.Vec3
}

// RayTracer is the recursive analytic integrator.
type RayTracer struct {
	Scene *scene.Scene
}

// NewRayTracer creates a tracer over the given scene.
func NewRayTracer(s *scene.Scene) *RayTracer {
	return &RayTracer{Scene: s}
}

// Albedo computes the color seen along a primary ray.
func (rt *RayTracer) Albedo(ray core.Ray, random *rand.Rand) core.Vec3 {
	if rt.Scene.Diffuse {
		return rt.colorDiffuse(ray, random, 0, core.Zero, core.One)
	}
	return rt.color(ray, random, 0, core.Zero, core.One)
}

// traceRay scans every object for the nearest hit in front of the origin.
func (rt *RayTracer) traceRay(ray core.Ray) (core.RayHit, int, bool) {
	closest := math.MaxFloat64
	var closestHit core.RayHit
	closestIdx := -1

	for idx, obj := range rt.Scene.Objects {
		hit, ok := geometry.Intersect(obj, ray)
		if !ok {
			continue
		}
		if hit.Distance > 0 && hit.Distance < closest {
			closest = hit.Distance
			closestHit = hit
			closestIdx = idx
		}
	}

	return closestHit, closestIdx, closestIdx >= 0
}

// lightAt accumulates direct light at a hit: Blinn-Phong per light with
// inverse-square falloff, halved per occluded light when shadow casting is
// on, then gamma corrected.
func (rt *RayTracer) lightAt(ray core.Ray, hit core.RayHit, albedo core.Vec3, m material.Material, objIndex int) core.Vec3 {
	acc := core.Zero
	for _, l := range rt.Scene.Lights {
		k := BlinnPhong(ray, hit, l, albedo, m)
		dist := l.DistanceAt(hit.Point)
		acc = acc.Add(k.Multiply(1 / (dist * dist)).MultiplyVec(l.Albedo()).Multiply(l.Intensity()))
	}

	if rt.Scene.ShadowCasting {
		for _, l := range rt.Scene.Lights {
			shadowRay := core.Ray{
				Origin:    hit.Point.Add(hit.Normal.Multiply(core.Epsilon)),
				Direction: l.DirectionAt(hit.Point).Negate(),
			}
			// Only occluders between the hit and the light count;
			// directional lights sit at infinity.
			maxDist := l.DistanceAt(hit.Point)
			if _, ok := l.(lights.Directional); ok {
				maxDist = math.Inf(1)
			}
			if sh, idx, ok := rt.traceRay(shadowRay); ok && idx != objIndex && sh.Distance < maxDist {
				acc = acc.Multiply(0.5)
			}
		}
	}

	return acc.Pow(tracerGamma)
}

// resolveAlbedo picks the texture color when the material has one.
func (rt *RayTracer) resolveAlbedo(hit core.RayHit, m material.Material) core.Vec3 {
	if tex := rt.Scene.TextureFor(m); tex != nil {
		return tex.Sample(hit.U, hit.V)
	}
	return m.Albedo
}

// color is the direct-lighting recursion used when the scene is not in
// diffuse mode.
func (rt *RayTracer) color(ray core.Ray, random *rand.Rand, depth int, lightColor, contribution core.Vec3) core.Vec3 {
	if depth >= rt.Scene.MaxRayBounces {
		return lightColor
	}

	hit, objIndex, ok := rt.traceRay(ray)
	if !ok {
		return lightColor.Add(rt.Scene.AmbientColor.MultiplyVec(contribution))
	}

	m := rt.Scene.Materials[hit.MaterialIndex]

	switch kind := m.Kind.(type) {
	case material.Reflective:
		albedo := rt.resolveAlbedo(hit, m)
		pLight := rt.lightAt(ray, hit, albedo, m, objIndex)

		r := ray.ReflectionRay(hit, kind.Roughness, random, rt.Scene.Diffuse, rt.Scene.EnableAccumulation)
		reflected := rt.color(r, random, depth+1, pLight, contribution.MultiplyVec(albedo))

		// Roughness blends plain direct light against the reflected image.
		return pLight.Multiply(kind.Roughness).
			Add(pLight.MultiplyVec(reflected).Multiply(1 - kind.Roughness))

	case material.Refractive:
		albedo := m.Albedo
		kr := material.Fresnel(ray.Direction, hit.Normal, kind.RefractionIndex, kind.Reflectivity)

		refractionColor := core.Zero
		if refractionRay, ok := material.Refract(ray, hit, kind.RefractionIndex); ok {
			refractionColor = rt.color(refractionRay, random, depth+1, lightColor, contribution.MultiplyVec(albedo))
		}

		reflectionRay := core.Ray{
			Origin:    hit.Point.Add(hit.Normal.Multiply(core.Epsilon)),
			Direction: ray.Direction.Reflect(hit.Normal),
		}
		pLight := rt.lightAt(ray, hit, albedo, m, objIndex)
		reflectionColor := rt.color(reflectionRay, random, depth+1, pLight, contribution.MultiplyVec(albedo))

		color := reflectionColor.Multiply(kr).
			Add(refractionColor.Multiply((1 - kr) * kind.Transparency))
		return color.MultiplyVec(albedo)

	default:
		return lightColor
	}
}

// colorDiffuse is the Monte-Carlo recursion: no direct light sampling, light
// comes from emissive surfaces accumulated along the path.
func (rt *RayTracer) colorDiffuse(ray core.Ray, random *rand.Rand, depth int, lightColor, contribution core.Vec3) core.Vec3 {
	if depth >= rt.Scene.MaxRayBounces {
		return lightColor
	}

	hit, _, ok := rt.traceRay(ray)
	if !ok {
		return lightColor.Add(rt.Scene.AmbientColor.MultiplyVec(contribution))
	}

	m := rt.Scene.Materials[hit.MaterialIndex]

	switch kind := m.Kind.(type) {
	case material.Reflective:
		albedo := rt.resolveAlbedo(hit, m)
		pLight := lightColor.Add(albedo.Multiply(m.EmissionPower))

		r := ray.ReflectionRay(hit, kind.Roughness, random, rt.Scene.Diffuse, rt.Scene.EnableAccumulation)
		return rt.colorDiffuse(r, random, depth+1, pLight, contribution.MultiplyVec(albedo))

	case material.Refractive:
		albedo := m.Albedo
		kr := material.Fresnel(ray.Direction, hit.Normal, kind.RefractionIndex, kind.Reflectivity)

		refractionColor := core.Zero
		if refractionRay, ok := material.Refract(ray, hit, kind.RefractionIndex); ok {
			refractionColor = rt.color(refractionRay, random, depth+1, lightColor, contribution.MultiplyVec(albedo))
		}

		reflectionRay := core.Ray{
			Origin:    hit.Point.Add(hit.Normal.Multiply(core.Epsilon)),
			Direction: ray.Direction.Reflect(hit.Normal),
		}
		pLight := lightColor.Add(albedo.Multiply(m.EmissionPower))
		reflectionColor := rt.colorDiffuse(reflectionRay, random, depth+1, pLight, contribution.MultiplyVec(albedo))

		return reflectionColor.Multiply(kr).
			Add(refractionColor.Multiply((1 - kr) * kind.Transparency))

	default:
		return lightColor
	}
}
