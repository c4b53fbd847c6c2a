package core

import "math"

// Degrees converts degrees to radians when multiplied
const Degrees = math.Pi / 180.0

// Clamp limits x to the range [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Mix linearly interpolates between x and y by a
func Mix(x, y, a float64) float64 {
	return x*(1-a) + y*a
}

// MixVec3 linearly interpolates between two vectors by a
func MixVec3(x, y Vec3, a float64) Vec3 {
	return x.Multiply(1 - a).Add(y.Multiply(a))
}

// Step returns 0 per component where b < a and 1 otherwise (GLSL step)
func Step(a, b Vec3) Vec3 {
	step := func(edge, x float64) float64 {
		if x < edge {
			return 0
		}
		return 1
	}
	return Vec3{step(a.X, b.X), step(a.Y, b.Y), step(a.Z, b.Z)}
}

// SmoothStep performs Hermite interpolation between edge0 and edge1
func SmoothStep(edge0, edge1, x float64) float64 {
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// Interpolation returns the smooth-union blend weight for distances d1, d2
// with blend radius k. Shared between distance and albedo blending so a CSG
// union colors its surface with the same weight it shapes it.
func Interpolation(d1, d2, k float64) float64 {
	return Clamp(0.5+0.5*(d2-d1)/k, 0, 1)
}

// SmoothUnion combines two signed distances with a polynomial smooth minimum
func SmoothUnion(d1, d2, k float64) float64 {
	h := Interpolation(d1, d2, k)
	return Mix(d2, d1, h) - k*h*(1-h)
}
