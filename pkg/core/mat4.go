package core

import "math"

// Mat4 is a row-major 4x4 affine transform matrix. Shapes cache a forward
// matrix and its inverse at construction time; per-ray code only multiplies.
type Mat4 struct {
	M [4][4]float64
}

// Identity returns the identity matrix
func Identity() Mat4 {
	return Mat4{M: [4][4]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}}
}

// Translation returns a translation matrix
func Translation(v Vec3) Mat4 {
	m := Identity()
	m.M[0][3] = v.X
	m.M[1][3] = v.Y
	m.M[2][3] = v.Z
	return m
}

// Scale returns a scaling matrix
func Scale(v Vec3) Mat4 {
	m := Identity()
	m.M[0][0] = v.X
	m.M[1][1] = v.Y
	m.M[2][2] = v.Z
	return m
}

// RotationX returns a rotation matrix about the X axis (radians)
func RotationX(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m.M[1][1], m.M[1][2] = c, -s
	m.M[2][1], m.M[2][2] = s, c
	return m
}

// RotationY returns a rotation matrix about the Y axis (radians)
func RotationY(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m.M[0][0], m.M[0][2] = c, s
	m.M[2][0], m.M[2][2] = -s, c
	return m
}

// RotationZ returns a rotation matrix about the Z axis (radians)
func RotationZ(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m.M[0][0], m.M[0][1] = c, -s
	m.M[1][0], m.M[1][1] = s, c
	return m
}

// Multiply returns m * other
func (m Mat4) Multiply(other Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m.M[i][k] * other.M[k][j]
			}
			out.M[i][j] = sum
		}
	}
	return out
}

// TransformPoint applies the matrix to a point (w = 1)
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*p.X + m.M[0][1]*p.Y + m.M[0][2]*p.Z + m.M[0][3],
		Y: m.M[1][0]*p.X + m.M[1][1]*p.Y + m.M[1][2]*p.Z + m.M[1][3],
		Z: m.M[2][0]*p.X + m.M[2][1]*p.Y + m.M[2][2]*p.Z + m.M[2][3],
	}
}

// TransformDirection applies the matrix to a direction (w = 0)
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		X: m.M[0][0]*d.X + m.M[0][1]*d.Y + m.M[0][2]*d.Z,
		Y: m.M[1][0]*d.X + m.M[1][1]*d.Y + m.M[1][2]*d.Z,
		Z: m.M[2][0]*d.X + m.M[2][1]*d.Y + m.M[2][2]*d.Z,
	}
}

// TransformRay moves a world-space ray into this matrix's space
func (m Mat4) TransformRay(r Ray) Ray {
	return Ray{
		Origin:    m.TransformPoint(r.Origin),
		Direction: m.TransformDirection(r.Direction),
	}
}

// Inverse inverts an affine transform (bottom row 0 0 0 1). The upper-left
// 3x3 is inverted by adjugate; translation follows as -inv(A)*t.
func (m Mat4) Inverse() Mat4 {
	a := m.M
	// Cofactors of the 3x3 linear part
	c00 := a[1][1]*a[2][2] - a[1][2]*a[2][1]
	c01 := a[1][2]*a[2][0] - a[1][0]*a[2][2]
	c02 := a[1][0]*a[2][1] - a[1][1]*a[2][0]
	det := a[0][0]*c00 + a[0][1]*c01 + a[0][2]*c02
	if det == 0 {
		return Identity()
	}
	inv := 1.0 / det

	var out Mat4
	out.M[0][0] = c00 * inv
	out.M[1][0] = c01 * inv
	out.M[2][0] = c02 * inv
	out.M[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) * inv
	out.M[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) * inv
	out.M[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) * inv
	out.M[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) * inv
	out.M[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) * inv
	out.M[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) * inv

	// translation: -inv(A) * t
	tx, ty, tz := a[0][3], a[1][3], a[2][3]
	out.M[0][3] = -(out.M[0][0]*tx + out.M[0][1]*ty + out.M[0][2]*tz)
	out.M[1][3] = -(out.M[1][0]*tx + out.M[1][1]*ty + out.M[1][2]*tz)
	out.M[2][3] = -(out.M[2][0]*tx + out.M[2][1]*ty + out.M[2][2]*tz)
	out.M[3][3] = 1
	return out
}

// ComposeTransform builds the forward matrix for a shape from its position,
// rotation (degrees, applied X then Y then Z) and scale.
func ComposeTransform(position, rotation, scale Vec3) Mat4 {
	return Translation(position).
		Multiply(RotationX(rotation.X * Degrees)).
		Multiply(RotationY(rotation.Y * Degrees)).
		Multiply(RotationZ(rotation.Z * Degrees)).
		Multiply(Scale(scale))
}
