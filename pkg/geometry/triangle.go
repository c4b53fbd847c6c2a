package geometry

import (
	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
)

// Triangle is a single-sided face defined by three vertices in counter-clockwise
// winding, shaded from either side.
type Triangle struct {
	A, B, C  core.Vec3
	Material int
}

// NewTriangle creates a triangle from its three vertices.
func NewTriangle(a, b, c core.Vec3, materialIndex int) *Triangle {
	return &Triangle{A: a, B: b, C: c, Material: materialIndex}
}

// Intersect runs the Moller-Trumbore test. Barycentric coordinates double as
// the texture coordinates, and the geometric normal is flipped to face the ray.
func (tr *Triangle) Intersect(ray core.Ray) (core.RayHit, bool) {
	edge1 := tr.B.Subtract(tr.A)
	edge2 := tr.C.Subtract(tr.A)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -core.Epsilon && a < core.Epsilon {
		return core.RayHit{}, false // ray parallel to the triangle plane
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(tr.A)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return core.RayHit{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return core.RayHit{}, false
	}

	t := f * edge2.Dot(q)
	if t < core.Epsilon {
		return core.RayHit{}, false
	}

	normal := edge1.Cross(edge2).Normalize()
	if normal.Dot(ray.Direction) > 0 {
		normal = normal.Negate()
	}

	return core.RayHit{
		Distance:      t,
		Point:         ray.At(t),
		Normal:        normal,
		MaterialIndex: tr.Material,
		U:             u,
		V:             v,
	}, true
}
