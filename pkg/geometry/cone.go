package geometry

import (
	"math"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
)

// Cone is a capped cone with its apex at the local origin, opening along +Z
// toward a base cap at z=1. Radius and height are baked into the transform so
// the local test runs against the unit cone.
type Cone struct {
	Position core.Vec3
	Rotation core.Vec3 // degrees
	Radius   float64
	Height   float64
	Material int

	Transform    core.Mat4
	InvTransform core.Mat4
}

// NewCone creates a cone with cached transforms.
func NewCone(position core.Vec3, radius, height float64, materialIndex int) *Cone {
	c := &Cone{Position: position, Radius: radius, Height: height, Material: materialIndex}
	c.Update()
	return c
}

// NewRotatedCone creates a cone rotated by the given Euler angles in degrees.
func NewRotatedCone(position, rotation core.Vec3, radius, height float64, materialIndex int) *Cone {
	c := &Cone{Position: position, Rotation: rotation, Radius: radius, Height: height, Material: materialIndex}
	c.Update()
	return c
}

// Update rebuilds the cached transform pair.
func (c *Cone) Update() {
	c.Transform = core.ComposeTransform(c.Position, c.Rotation, core.NewVec3(c.Radius, c.Radius, c.Height))
	c.InvTransform = c.Transform.Inverse()
}

// Intersect solves the unit-cone quadratic for the side surface, then tests
// the base cap and keeps whichever hit is nearer.
func (c *Cone) Intersect(ray core.Ray) (core.RayHit, bool) {
	local := c.InvTransform.TransformRay(ray)
	ro := local.Origin
	rd := local.Direction

	var side *core.RayHit

	a := rd.X*rd.X + rd.Y*rd.Y - rd.Z*rd.Z
	b := 2 * (ro.X*rd.X + ro.Y*rd.Y - ro.Z*rd.Z)
	k := ro.X*ro.X + ro.Y*ro.Y - ro.Z*ro.Z

	disc := b*b - 4*a*k
	if disc > 0 && math.Abs(a) > 1e-12 {
		t1 := (-b - math.Sqrt(disc)) / (2 * a)
		h := local.At(t1)
		if h.Z > 0 && h.Z < 1 {
			n := core.NewVec3(h.X, h.Y, -math.Sqrt(h.X*h.X+h.Y*h.Y))
			side = &core.RayHit{
				Distance:      t1,
				Point:         ray.At(t1),
				Normal:        c.Transform.TransformDirection(n).Normalize(),
				MaterialIndex: c.Material,
				U:             math.Atan2(h.Y, h.X),
				V:             h.Z*2 + 1,
			}
		}
	}

	// Base cap at z=1.
	if math.Abs(rd.Z) > 1e-12 {
		t := (ro.Z - 1) / -rd.Z
		h := local.At(t)
		if h.X*h.X+h.Y*h.Y < 1 {
			if side != nil && side.Distance < t {
				return *side, true
			}
			return core.RayHit{
				Distance:      t,
				Point:         ray.At(t),
				Normal:        c.Transform.TransformDirection(core.NewVec3(0, 0, 1)).Normalize(),
				MaterialIndex: c.Material,
				U:             h.X,
				V:             h.Y,
			}, true
		}
	}

	if side != nil {
		return *side, true
	}
	return core.RayHit{}, false
}
