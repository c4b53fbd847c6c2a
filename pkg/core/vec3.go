package core

import "math"

// Vec3 represents a 3D vector, also used for RGB colors
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Zero, One are the common color/vector constants
var (
	Zero = Vec3{}
	One  = Vec3{X: 1, Y: 1, Z: 1}
)

// Splat returns a vector with all components set to s
func Splat(s float64) Vec3 {
	return Vec3{X: s, Y: s, Z: s}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// MultiplyVec returns component-wise multiplication of two vectors
func (v Vec3) MultiplyVec(other Vec3) Vec3 {
	return Vec3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Normalize returns a unit vector in the same direction
func (v Vec3) Normalize() Vec3 {
	length := v.Length()
	if length == 0 {
		return Vec3{}
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return Vec3{X: -v.X, Y: -v.Y, Z: -v.Z}
}

// Abs returns component-wise absolute values
func (v Vec3) Abs() Vec3 {
	return Vec3{math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)}
}

// Sign returns the component-wise sign of the vector
func (v Vec3) Sign() Vec3 {
	sign := func(f float64) float64 {
		if f < 0 {
			return -1
		}
		return 1
	}
	return Vec3{sign(v.X), sign(v.Y), sign(v.Z)}
}

// Min returns the component-wise minimum of two vectors
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{math.Min(v.X, other.X), math.Min(v.Y, other.Y), math.Min(v.Z, other.Z)}
}

// Max returns the component-wise maximum of two vectors
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{math.Max(v.X, other.X), math.Max(v.Y, other.Y), math.Max(v.Z, other.Z)}
}

// MaxComponent returns the largest component
func (v Vec3) MaxComponent() float64 {
	return math.Max(v.X, math.Max(v.Y, v.Z))
}

// Clamp returns a vector with components clamped to [min, max]
func (v Vec3) Clamp(minVal, maxVal float64) Vec3 {
	return Vec3{
		X: math.Max(minVal, math.Min(maxVal, v.X)),
		Y: math.Max(minVal, math.Min(maxVal, v.Y)),
		Z: math.Max(minVal, math.Min(maxVal, v.Z)),
	}
}

// Pow raises each component to the given exponent
func (v Vec3) Pow(exp float64) Vec3 {
	return Vec3{math.Pow(v.X, exp), math.Pow(v.Y, exp), math.Pow(v.Z, exp)}
}

// Reflect mirrors the vector about the given normal: v - 2*(v·n)*n
func (v Vec3) Reflect(normal Vec3) Vec3 {
	return v.Subtract(normal.Multiply(2 * v.Dot(normal)))
}

// Luminance returns the perceptual luminance of an RGB color
func (v Vec3) Luminance() float64 {
	return 0.299*v.X + 0.587*v.Y + 0.114*v.Z
}

// Vec2 represents a 2D vector (texture coordinates, screen deltas)
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Subtract returns the difference of two vectors
func (v Vec2) Subtract(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Multiply returns the vector scaled by a scalar
func (v Vec2) Multiply(scalar float64) Vec2 {
	return Vec2{v.X * scalar, v.Y * scalar}
}

// Dot returns the dot product of two vectors
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Length returns the magnitude of the vector
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Max returns the component-wise maximum of two vectors
func (v Vec2) Max(other Vec2) Vec2 {
	return Vec2{math.Max(v.X, other.X), math.Max(v.Y, other.Y)}
}
