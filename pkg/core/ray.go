package core

import "math/rand"

// Epsilon is the bias applied to secondary ray origins to avoid
// self-intersection at the surface they spawn from.
const Epsilon = 1e-4

// Ray represents a ray with an origin and direction.
// Direction is not required to be normalized by intersection code.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// RayHit contains information about a ray-object intersection
type RayHit struct {
	Distance      float64 // Parameter t along the ray
	Point         Vec3    // World-space intersection point
	Normal        Vec3    // Unit world-space surface normal
	MaterialIndex int     // Index into the scene material table
	U, V          float64 // Surface parameterization for texture lookup
}

// ReflectionRay spawns the bounce ray for a reflective hit. With accumulation
// enabled the reflection normal is jittered by roughness-scaled uniform noise
// in [-0.5,0.5]^3; in diffuse mode the direction is a uniform perturbation of
// the normal instead (Monte-Carlo style hemisphere sample).
func (r Ray) ReflectionRay(hit RayHit, roughness float64, random *rand.Rand, diffuse, accumulate bool) Ray {
	var dir Vec3
	if !diffuse {
		factor := Zero
		if accumulate {
			factor = RandomRangeVec3(random, -0.5, 0.5).Multiply(roughness)
		}
		dir = r.Direction.Reflect(hit.Normal.Add(factor)).Normalize()
	} else {
		dir = hit.Normal.Add(RandomRangeVec3(random, -1, 1)).Normalize()
	}
	return Ray{
		Origin:    hit.Point.Add(hit.Normal.Multiply(Epsilon)),
		Direction: dir,
	}
}

// RandomRangeVec3 returns a vector with each component uniform in [min, max)
func RandomRangeVec3(random *rand.Rand, min, max float64) Vec3 {
	span := max - min
	return Vec3{
		X: min + span*random.Float64(),
		Y: min + span*random.Float64(),
		Z: min + span*random.Float64(),
	}
}
