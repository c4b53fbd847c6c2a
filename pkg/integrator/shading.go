package integrator

import (
	"math"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
	"github.com/dfaivre/go-hybrid-tracer/pkg/lights"
	"github.com/dfaivre/go-hybrid-tracer/pkg/material"
)

// BlinnPhong shades a hit against one light using the half-angle specular
// model. color is the resolved surface albedo; the material supplies the
// ambience/diffuse/specular coefficients and shininess exponent.
func BlinnPhong(ray core.Ray, hit core.RayHit, l lights.Light, color core.Vec3, m material.Material) core.Vec3 {
	lightDir := l.DirectionAt(hit.Point)

	coeff := hit.Normal.Dot(lightDir.Negate())
	ambience := color.Multiply(m.Ambience)
	diffuse := color.Multiply(m.Diffuse * math.Max(coeff, 0))

	halfAngle := ray.Direction.Negate().Subtract(lightDir).Normalize()
	shininess := math.Pow(math.Max(hit.Normal.Dot(halfAngle), 0), m.Shininess)
	specular := color.Multiply(m.Specular * shininess)

	return ambience.Add(diffuse).Add(specular)
}

// Phong is the classic mirror-direction specular variant, kept for scenes
// that prefer its tighter highlights.
func Phong(ray core.Ray, hit core.RayHit, l lights.Light, color core.Vec3, m material.Material) core.Vec3 {
	lightDir := l.DirectionAt(hit.Point)

	coeff := hit.Normal.Dot(lightDir.Negate())
	ambience := color.Multiply(m.Ambience)
	diffuse := color.Multiply(m.Diffuse * math.Max(coeff, 0))

	reflected := lightDir.Negate().Reflect(hit.Normal)
	shininess := math.Pow(math.Max(ray.Direction.Dot(reflected), 0), m.Shininess)
	specular := color.Multiply(m.Specular * shininess)

	return ambience.Add(diffuse).Add(specular)
}
