package material

import (
	"math"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
)

// Kind is the closed set of material behaviors. Consumers type-switch on it;
// there is no scatter interface on the per-pixel path.
type Kind interface {
	isKind()
}

// Reflective bounces rays about the surface normal, optionally fuzzed by
// Roughness in [0,1] (0 = perfect mirror).
type Reflective struct {
	Roughness float64
}

// Refractive transmits rays through the surface. Reflectivity lets scene
// authors bias the fresnel term toward full mirror behavior.
type Refractive struct {
	Transparency    float64
	RefractionIndex float64 // must be > 0
	Reflectivity    float64
}

func (Reflective) isKind() {}
func (Refractive) isKind() {}

// Material holds Blinn-Phong coefficients plus the bounce behavior variant.
type Material struct {
	Ambience      float64
	Diffuse       float64
	Specular      float64
	Shininess     float64
	Albedo        core.Vec3
	Texture       int // index into the scene texture table, -1 when untextured
	Kind          Kind
	EmissionPower float64
}

// Default returns the material defaults shared by the demo scenes.
func Default() Material {
	return Material{
		Ambience:  0.2,
		Diffuse:   0.7,
		Specular:  0.5,
		Shininess: 5,
		Albedo:    core.Zero,
		Texture:   -1,
		Kind:      Reflective{Roughness: 1.0},
	}
}

// Fresnel computes the reflected fraction at a dielectric boundary using
// Schlick's approximation. Total internal reflection saturates to 1. The
// result is blended toward reflectivity so materials can boost or dampen
// their mirror component.
func Fresnel(incident, normal core.Vec3, refractionIndex, reflectivity float64) float64 {
	n1 := 1.0
	n2 := refractionIndex

	r0 := (n1 - n2) / (n1 + n2)
	r0 *= r0
	cosX := -normal.Dot(incident)
	if n1 > n2 {
		n := n1 / n2
		sinT2 := n * n * (1.0 - cosX*cosX)
		if sinT2 > 1.0 {
			return 1.0
		}
		cosX = math.Sqrt(1.0 - sinT2)
	}
	x := 1.0 - cosX
	ret := r0 + (1.0-r0)*x*x*x*x*x

	return reflectivity + (1.0-reflectivity)*ret
}

// Refract returns the transmission ray through the hit surface, flipping the
// normal and swapping the index ratio when the ray exits the medium. Returns
// false on total internal reflection; callers fall back to the reflection
// branch alone.
func Refract(ray core.Ray, hit core.RayHit, refractionIndex float64) (core.Ray, bool) {
	normal := hit.Normal
	etaT := refractionIndex
	etaI := 1.0
	c1 := ray.Direction.Dot(hit.Normal)

	if c1 < 0 {
		c1 = -c1
	} else {
		normal = normal.Negate()
		etaI = etaT
		etaT = 1.0
	}
	eta := etaI / etaT

	k := 1.0 - eta*eta*(1.0-c1*c1)
	if k < 0 {
		return core.Ray{}, false
	}

	c2 := math.Sqrt(k)
	direction := ray.Direction.Multiply(eta).Add(normal.Multiply(eta*c1 - c2))

	return core.Ray{
		Origin:    hit.Point.Subtract(normal.Multiply(core.Epsilon)),
		Direction: direction,
	}, true
}
