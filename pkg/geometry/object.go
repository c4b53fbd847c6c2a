package geometry

import "github.com/dfaivre/go-hybrid-tracer/pkg/core"

// Object is the closed set of scene primitives. Integrators type-switch on
// the concrete shapes at each consumption site instead of calling through an
// interface method on the per-pixel path.
type Object interface {
	isObject()
}

func (*Sphere) isObject()      {}
func (*Plane) isObject()       {}
func (*Triangle) isObject()    {}
func (*Cuboid) isObject()      {}
func (*Cylinder) isObject()    {}
func (*Cone) isObject()        {}
func (*Union) isObject()       {}
func (*Subtraction) isObject() {}

// Intersect runs the analytic ray-hit test for a primitive. CSG nodes are
// distance-field only and never intersect analytically.
func Intersect(obj Object, ray core.Ray) (core.RayHit, bool) {
	switch o := obj.(type) {
	case *Sphere:
		return o.Intersect(ray)
	case *Plane:
		return o.Intersect(ray)
	case *Triangle:
		return o.Intersect(ray)
	case *Cuboid:
		return o.Intersect(ray)
	case *Cylinder:
		return o.Intersect(ray)
	case *Cone:
		return o.Intersect(ray)
	default:
		return core.RayHit{}, false
	}
}

// MaterialIndexOf resolves the material of the object at idx. CSG nodes
// delegate to their first child. The walk is bounded by the object count so
// a cyclic child graph terminates instead of recursing forever.
func MaterialIndexOf(objects []Object, idx int) int {
	for steps := 0; steps <= len(objects); steps++ {
		switch o := objects[idx].(type) {
		case *Sphere:
			return o.Material
		case *Plane:
			return o.Material
		case *Triangle:
			return o.Material
		case *Cuboid:
			return o.Material
		case *Cylinder:
			return o.Material
		case *Cone:
			return o.Material
		case *Union:
			idx = o.First
		case *Subtraction:
			idx = o.First
		default:
			return 0
		}
	}
	return 0
}
