package geometry

import (
	"math"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
)

// Sphere is a transformed unit sphere: radius and rotation are baked into the
// cached forward/inverse matrices, intersection happens in unit-sphere space.
type Sphere struct {
	Position core.Vec3
	Rotation core.Vec3 // degrees per axis
	Radius   float64
	Material int

	Transform    core.Mat4
	InvTransform core.Mat4
}

// NewSphere creates a sphere with its transform pair precomputed.
func NewSphere(position core.Vec3, radius float64, materialIndex int) *Sphere {
	s := &Sphere{Position: position, Radius: radius, Material: materialIndex}
	s.Update()
	return s
}

// NewRotatedSphere creates a sphere with an initial rotation, which matters
// for textured spheres where the rotation turns the UV mapping.
func NewRotatedSphere(position, rotation core.Vec3, radius float64, materialIndex int) *Sphere {
	s := &Sphere{Position: position, Rotation: rotation, Radius: radius, Material: materialIndex}
	s.Update()
	return s
}

// Update rebuilds the cached transform pair. Must be called after mutating
// Position, Rotation or Radius; rays never recompute matrices.
func (s *Sphere) Update() {
	s.Transform = core.ComposeTransform(s.Position, s.Rotation, core.Splat(s.Radius))
	s.InvTransform = s.Transform.Inverse()
}

// Intersect solves the unit-sphere quadratic in object space and reports the
// nearer root.
func (s *Sphere) Intersect(ray core.Ray) (core.RayHit, bool) {
	local := s.InvTransform.TransformRay(ray)

	a := local.Direction.Dot(local.Direction)
	b := 2 * local.Origin.Dot(local.Direction)
	c := local.Origin.Dot(local.Origin) - 1

	disc := b*b - 4*a*c
	if disc < 0 {
		return core.RayHit{}, false
	}

	t1 := (-b - math.Sqrt(disc)) / (2 * a)

	l := local.At(t1)
	normal := s.Transform.TransformDirection(l).Normalize()

	// Spherical-angle parameterization; Atan2 keeps axis-aligned hits finite.
	u := math.Atan2(l.X*l.X+l.Y*l.Y, l.Z)
	v := math.Atan2(l.Y, l.X)

	return core.RayHit{
		Distance:      t1,
		Point:         ray.At(t1),
		Normal:        normal,
		MaterialIndex: s.Material,
		U:             v / math.Pi,
		V:             u / math.Pi,
	}, true
}

// SignedDistance evaluates the sphere distance field at parameter t. The
// distance is measured in world space; the object-space ray is returned for
// texture mapping only.
func (s *Sphere) SignedDistance(ray core.Ray, t float64) (float64, core.Ray) {
	d := ray.At(t).Subtract(s.Position).Length() - s.Radius
	return d, s.InvTransform.TransformRay(ray)
}
