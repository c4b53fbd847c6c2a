package geometry

import (
	"math"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
)

// planeUVScale maps world-space position onto a tiling texture coordinate.
const planeUVScale = 0.1

// Plane is an infinite plane through Point with the given Normal, optionally
// clipped to a finite rectangle by MaxDist (half-extents along local X/Z).
type Plane struct {
	Normal   core.Vec3
	Point    core.Vec3
	MaxDist  *core.Vec2
	Material int
}

// NewPlane creates a plane; maxDist may be nil for an unbounded plane.
func NewPlane(normal, point core.Vec3, maxDist *core.Vec2, materialIndex int) *Plane {
	return &Plane{Normal: normal, Point: point, MaxDist: maxDist, Material: materialIndex}
}

// Intersect solves the ray-plane equation, rejecting near-parallel rays and
// hits behind the origin. The reported normal faces the incoming ray so both
// sides shade correctly.
func (p *Plane) Intersect(ray core.Ray) (core.RayHit, bool) {
	denom := ray.Direction.Dot(p.Normal)
	if math.Abs(denom) < 1e-6 {
		return core.RayHit{}, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denom
	if t < 0 {
		return core.RayHit{}, false
	}

	hitPoint := ray.At(t)
	if p.MaxDist != nil {
		if math.Abs(hitPoint.X) > p.MaxDist.X || math.Abs(hitPoint.Z) > p.MaxDist.Y {
			return core.RayHit{}, false
		}
	}

	normal := p.Normal
	if denom > 0 {
		normal = normal.Negate()
	}

	return core.RayHit{
		Distance:      t,
		Point:         hitPoint,
		Normal:        normal,
		MaterialIndex: p.Material,
		U:             hitPoint.X * planeUVScale,
		V:             hitPoint.Z * planeUVScale,
	}, true
}

// SignedDistance is the half-space distance to the plane.
func (p *Plane) SignedDistance(ray core.Ray, t float64) (float64, core.Ray) {
	return ray.At(t).Subtract(p.Point).Dot(p.Normal), ray
}
