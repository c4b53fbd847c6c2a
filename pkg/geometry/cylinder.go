package geometry

import (
	"math"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
)

// cylinderEdgeRadius rounds the rim of the cylinder distance field.
const cylinderEdgeRadius = 0.1

// Cylinder is a capped cylinder of the given Radius and Height, aligned with
// the local Z axis and centered on its position.
type Cylinder struct {
	Position core.Vec3
	Rotation core.Vec3 // degrees
	Radius   float64
	Height   float64
	Material int

	Transform    core.Mat4
	InvTransform core.Mat4
}

// NewCylinder creates a cylinder with cached transforms.
func NewCylinder(position core.Vec3, radius, height float64, materialIndex int) *Cylinder {
	c := &Cylinder{Position: position, Radius: radius, Height: height, Material: materialIndex}
	c.Update()
	return c
}

// NewRotatedCylinder creates a cylinder rotated by the given Euler angles in
// degrees.
func NewRotatedCylinder(position, rotation core.Vec3, radius, height float64, materialIndex int) *Cylinder {
	c := &Cylinder{Position: position, Rotation: rotation, Radius: radius, Height: height, Material: materialIndex}
	c.Update()
	return c
}

// Update rebuilds the cached transforms. Radius and height stay explicit in
// the local-space tests so the distance field keeps a true metric.
func (c *Cylinder) Update() {
	c.Transform = core.ComposeTransform(c.Position, c.Rotation, core.One)
	c.InvTransform = c.Transform.Inverse()
}

// Intersect tests the infinite side surface and both caps in local space and
// reports the nearest positive hit.
func (c *Cylinder) Intersect(ray core.Ray) (core.RayHit, bool) {
	local := c.InvTransform.TransformRay(ray)
	halfH := c.Height * 0.5

	best := math.Inf(1)
	var normal core.Vec3
	var u, v float64
	found := false

	// Side surface: quadratic in the local XY plane.
	a := local.Direction.X*local.Direction.X + local.Direction.Y*local.Direction.Y
	if a > 1e-12 {
		b := 2 * (local.Origin.X*local.Direction.X + local.Origin.Y*local.Direction.Y)
		k := local.Origin.X*local.Origin.X + local.Origin.Y*local.Origin.Y - c.Radius*c.Radius
		disc := b*b - 4*a*k
		if disc >= 0 {
			sq := math.Sqrt(disc)
			for _, t := range [2]float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
				if t < core.Epsilon || t >= best {
					continue
				}
				p := local.At(t)
				if math.Abs(p.Z) > halfH {
					continue
				}
				best = t
				normal = core.Vec3{X: p.X / c.Radius, Y: p.Y / c.Radius}
				u = math.Atan2(p.Y, p.X) / math.Pi
				v = p.Z/c.Height + 0.5
				found = true
				break
			}
		}
	}

	// Caps.
	if math.Abs(local.Direction.Z) > 1e-12 {
		for _, capZ := range [2]float64{-halfH, halfH} {
			t := (capZ - local.Origin.Z) / local.Direction.Z
			if t < core.Epsilon || t >= best {
				continue
			}
			p := local.At(t)
			if p.X*p.X+p.Y*p.Y > c.Radius*c.Radius {
				continue
			}
			best = t
			normal = core.Vec3{Z: math.Copysign(1, capZ)}
			u = p.X/(2*c.Radius) + 0.5
			v = p.Y/(2*c.Radius) + 0.5
			found = true
		}
	}

	if !found {
		return core.RayHit{}, false
	}

	worldNormal := c.Transform.TransformDirection(normal).Normalize()
	if worldNormal.Dot(ray.Direction) > 0 {
		worldNormal = worldNormal.Negate()
	}

	return core.RayHit{
		Distance:      best,
		Point:         ray.At(best),
		Normal:        worldNormal,
		MaterialIndex: c.Material,
		U:             u,
		V:             v,
	}, true
}

// SignedDistance evaluates a rounded capped-cylinder field in local space.
func (c *Cylinder) SignedDistance(ray core.Ray, t float64) (float64, core.Ray) {
	local := c.InvTransform.TransformRay(ray)
	p := local.At(t)

	dx := math.Hypot(p.X, p.Y) - c.Radius + cylinderEdgeRadius
	dz := math.Abs(p.Z) - c.Height*0.5 + cylinderEdgeRadius

	inside := math.Min(math.Max(dx, dz), 0)
	outside := core.NewVec2(math.Max(dx, 0), math.Max(dz, 0)).Length()
	return inside + outside - cylinderEdgeRadius, local
}
