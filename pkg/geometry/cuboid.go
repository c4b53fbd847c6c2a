package geometry

import (
	"math"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
)

// cuboidCornerRadius rounds the edges of the cuboid distance field.
const cuboidCornerRadius = 0.1

// Cuboid is an axis-aligned box of the given Size in its local frame,
// positioned and rotated in world space.
type Cuboid struct {
	Position core.Vec3
	Rotation core.Vec3 // degrees
	Size     core.Vec3
	Material int

	Transform    core.Mat4
	InvTransform core.Mat4
}

// NewCuboid creates a cuboid with cached transforms.
func NewCuboid(position, size core.Vec3, materialIndex int) *Cuboid {
	c := &Cuboid{Position: position, Size: size, Material: materialIndex}
	c.Update()
	return c
}

// NewRotatedCuboid creates a cuboid rotated by the given Euler angles in degrees.
func NewRotatedCuboid(position, rotation, size core.Vec3, materialIndex int) *Cuboid {
	c := &Cuboid{Position: position, Rotation: rotation, Size: size, Material: materialIndex}
	c.Update()
	return c
}

// Update rebuilds the cached transforms after Position or Rotation changed.
func (c *Cuboid) Update() {
	c.Transform = core.ComposeTransform(c.Position, c.Rotation, core.One)
	c.InvTransform = c.Transform.Inverse()
}

// Intersect runs a slab test against the box in its local frame. The face
// normal is derived from which slab bounds the entry distance.
func (c *Cuboid) Intersect(ray core.Ray) (core.RayHit, bool) {
	local := c.InvTransform.TransformRay(ray)
	half := c.Size.Multiply(0.5)

	tNear := math.Inf(-1)
	tFar := math.Inf(1)
	ro := [3]float64{local.Origin.X, local.Origin.Y, local.Origin.Z}
	rd := [3]float64{local.Direction.X, local.Direction.Y, local.Direction.Z}
	he := [3]float64{half.X, half.Y, half.Z}
	axis := 0

	for i := 0; i < 3; i++ {
		if math.Abs(rd[i]) < 1e-12 {
			if math.Abs(ro[i]) > he[i] {
				return core.RayHit{}, false
			}
			continue
		}
		t1 := (-he[i] - ro[i]) / rd[i]
		t2 := (he[i] - ro[i]) / rd[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tNear {
			tNear = t1
			axis = i
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return core.RayHit{}, false
		}
	}
	if tFar < 0 || tNear < 0 {
		return core.RayHit{}, false
	}

	var localNormal core.Vec3
	sign := -math.Copysign(1, rd[axis])
	switch axis {
	case 0:
		localNormal = core.Vec3{X: sign}
	case 1:
		localNormal = core.Vec3{Y: sign}
	default:
		localNormal = core.Vec3{Z: sign}
	}

	localPoint := local.At(tNear)
	u, v := c.faceUV(localPoint, half, axis)

	return core.RayHit{
		Distance:      tNear,
		Point:         ray.At(tNear),
		Normal:        c.Transform.TransformDirection(localNormal).Normalize(),
		MaterialIndex: c.Material,
		U:             u,
		V:             v,
	}, true
}

// faceUV projects the hit point onto the struck face, mapped to [0,1].
func (c *Cuboid) faceUV(p, half core.Vec3, axis int) (float64, float64) {
	switch axis {
	case 0:
		return p.Y/c.Size.Y + 0.5, p.Z/c.Size.Z + 0.5
	case 1:
		return p.X/c.Size.X + 0.5, p.Z/c.Size.Z + 0.5
	default:
		return p.X/c.Size.X + 0.5, p.Y/c.Size.Y + 0.5
	}
}

// SignedDistance evaluates a rounded-box field around the cuboid.
func (c *Cuboid) SignedDistance(ray core.Ray, t float64) (float64, core.Ray) {
	local := c.InvTransform.TransformRay(ray)
	p := local.At(t)

	q := p.Abs().Subtract(c.Size.Multiply(0.5)).Add(core.Splat(cuboidCornerRadius))
	outside := q.Max(core.Zero).Length()
	inside := math.Min(q.MaxComponent(), 0)
	return outside + inside - cuboidCornerRadius, local
}
