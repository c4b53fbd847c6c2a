package lights

import "github.com/dfaivre/go-hybrid-tracer/pkg/core"

// Light is the closed set of light sources the integrators shade with. All
// variants expose the direction and distance from the light to a surface
// point plus a color and scalar intensity.
type Light interface {
	DirectionAt(point core.Vec3) core.Vec3
	DistanceAt(point core.Vec3) float64
	Intensity() float64
	Albedo() core.Vec3
}

// Directional models a light infinitely far away: constant direction, unit
// distance so inverse-square attenuation becomes a no-op.
type Directional struct {
	Color     core.Vec3
	Direction core.Vec3
	Power     float64
}

func (l Directional) DirectionAt(core.Vec3) core.Vec3 { return l.Direction }
func (l Directional) DistanceAt(core.Vec3) float64    { return 1 }
func (l Directional) Intensity() float64              { return l.Power }
func (l Directional) Albedo() core.Vec3               { return l.Color }

// Positional is a point light.
type Positional struct {
	Color    core.Vec3
	Position core.Vec3
	Power    float64
}

func (l Positional) DirectionAt(point core.Vec3) core.Vec3 {
	return point.Subtract(l.Position).Normalize()
}

func (l Positional) DistanceAt(point core.Vec3) float64 {
	return point.Subtract(l.Position).Length()
}

func (l Positional) Intensity() float64 { return l.Power }
func (l Positional) Albedo() core.Vec3  { return l.Color }

// SphericalPositional is a spherical area light. Direction and distance are
// measured from its center; the radius is kept for scene authoring and soft
// shadow experiments.
type SphericalPositional struct {
	Color    core.Vec3
	Position core.Vec3
	Radius   float64
	Power    float64
}

func (l SphericalPositional) DirectionAt(point core.Vec3) core.Vec3 {
	return point.Subtract(l.Position).Normalize()
}

func (l SphericalPositional) DistanceAt(point core.Vec3) float64 {
	return point.Subtract(l.Position).Length()
}

func (l SphericalPositional) Intensity() float64 { return l.Power }
func (l SphericalPositional) Albedo() core.Vec3  { return l.Color }
