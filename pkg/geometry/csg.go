package geometry

import (
	"math"

	"github.com/dfaivre/go-hybrid-tracer/pkg/core"
)

// smoothUnionK controls the blend radius of smooth CSG unions.
const smoothUnionK = 0.7

// Union blends the distance fields of two scene objects, referenced by index.
// CSG nodes only exist for the marcher; they never intersect analytically.
type Union struct {
	First  int
	Second int
}

// NewUnion creates a smooth union of the objects at the given scene indices.
func NewUnion(first, second int) *Union {
	return &Union{First: first, Second: second}
}

// Subtraction carves the second object's field out of the first.
type Subtraction struct {
	First  int
	Second int
}

// NewSubtraction creates a subtraction of the objects at the given indices.
func NewSubtraction(first, second int) *Subtraction {
	return &Subtraction{First: first, Second: second}
}

// SDFSample is one distance-field evaluation: the signed distance, the
// surface albedo at that point and the object-space ray used for texturing.
type SDFSample struct {
	Distance float64
	Albedo   core.Vec3
	LocalRay core.Ray
}

// DistanceField evaluates signed distances over a scene's object list.
// AlbedoOf resolves a material index to its base color so the field can blend
// colors without depending on the material package.
type DistanceField struct {
	Objects  []Object
	AlbedoOf func(materialIndex int) core.Vec3
}

// Evaluate samples the field of the object at idx along ray at parameter t.
// Objects without a distance field (triangles, cones) report false and are
// skipped by the marcher.
func (f *DistanceField) Evaluate(idx int, ray core.Ray, t float64) (SDFSample, bool) {
	return f.evaluate(idx, ray, t, 0)
}

// evaluate bounds the CSG descent by the object count; a cyclic child graph
// yields an empty sample instead of unbounded recursion.
func (f *DistanceField) evaluate(idx int, ray core.Ray, t float64, depth int) (SDFSample, bool) {
	if depth > len(f.Objects) {
		return SDFSample{}, false
	}
	switch o := f.Objects[idx].(type) {
	case *Sphere:
		d, local := o.SignedDistance(ray, t)
		return SDFSample{Distance: d, Albedo: f.AlbedoOf(o.Material), LocalRay: local}, true
	case *Plane:
		d, local := o.SignedDistance(ray, t)
		return SDFSample{Distance: d, Albedo: f.AlbedoOf(o.Material), LocalRay: local}, true
	case *Cuboid:
		d, local := o.SignedDistance(ray, t)
		return SDFSample{Distance: d, Albedo: f.AlbedoOf(o.Material), LocalRay: local}, true
	case *Cylinder:
		d, local := o.SignedDistance(ray, t)
		return SDFSample{Distance: d, Albedo: f.AlbedoOf(o.Material), LocalRay: local}, true
	case *Union:
		h1, ok1 := f.evaluate(o.First, ray, t, depth+1)
		h2, ok2 := f.evaluate(o.Second, ray, t, depth+1)
		if !ok1 || !ok2 {
			return SDFSample{}, false
		}

		i := core.Interpolation(h1.Distance, h2.Distance, smoothUnionK)
		blended := core.MixVec3(h1.Albedo, h2.Albedo, 1-i)

		local := h1.LocalRay
		if h2.Distance < h1.Distance {
			local = h2.LocalRay
		}
		return SDFSample{
			Distance: core.SmoothUnion(h1.Distance, h2.Distance, smoothUnionK),
			Albedo:   blended,
			LocalRay: local,
		}, true
	case *Subtraction:
		h1, ok1 := f.evaluate(o.First, ray, t, depth+1)
		h2, ok2 := f.evaluate(o.Second, ray, t, depth+1)
		if !ok1 || !ok2 {
			return SDFSample{}, false
		}
		return SDFSample{
			Distance: math.Max(h1.Distance, -h2.Distance),
			Albedo:   f.AlbedoOf(MaterialIndexOf(f.Objects, o.First)),
			LocalRay: h2.LocalRay,
		}, true
	default:
		return SDFSample{}, false
	}
}
