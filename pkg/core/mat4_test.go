package core

import (
	"math"
	"testing"
)

func vecApproxEqual(a, b Vec3, tol float64) bool {
	return a.Subtract(b).Length() <= tol
}

func TestMat4_TranslationAndDirection(t *testing.T) {
	m := Translation(NewVec3(1, 2, 3))

	if got := m.TransformPoint(NewVec3(0, 0, 0)); got != (Vec3{1, 2, 3}) {
		t.Errorf("TransformPoint: got %v", got)
	}
	// Directions ignore translation
	if got := m.TransformDirection(NewVec3(0, 0, -1)); got != (Vec3{0, 0, -1}) {
		t.Errorf("TransformDirection: got %v", got)
	}
}

func TestMat4_RotationY(t *testing.T) {
	m := RotationY(90 * Degrees)
	got := m.TransformPoint(NewVec3(1, 0, 0))
	if !vecApproxEqual(got, NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("RotationY(90): got %v", got)
	}
}

func TestMat4_InverseRoundTrip(t *testing.T) {
	tests := []struct {
		name                      string
		position, rotation, scale Vec3
	}{
		{"translation only", NewVec3(2, -1, 4), Zero, One},
		{"rotation only", Zero, NewVec3(30, 45, 60), One},
		{"uniform scale", Zero, Zero, Splat(0.5)},
		{"full transform", NewVec3(1.5, 0.2, -3), NewVec3(-90, 12, 33), NewVec3(0.6, 1, 0.2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComposeTransform(tt.position, tt.rotation, tt.scale)
			inv := m.Inverse()

			p := NewVec3(0.3, -0.7, 1.9)
			back := inv.TransformPoint(m.TransformPoint(p))
			if !vecApproxEqual(back, p, 1e-9) {
				t.Errorf("inverse round trip: got %v, want %v", back, p)
			}

			d := NewVec3(0.1, 0.9, -0.4)
			backDir := inv.TransformDirection(m.TransformDirection(d))
			if !vecApproxEqual(backDir, d, 1e-9) {
				t.Errorf("direction round trip: got %v, want %v", backDir, d)
			}
		})
	}
}

func TestMat4_TransformRay(t *testing.T) {
	m := ComposeTransform(NewVec3(0, 0, 2), Zero, One).Inverse()
	r := m.TransformRay(NewRay(NewVec3(0, 0, 3), NewVec3(0, 0, -1)))

	if !vecApproxEqual(r.Origin, NewVec3(0, 0, 1), 1e-12) {
		t.Errorf("ray origin: got %v", r.Origin)
	}
	if !vecApproxEqual(r.Direction, NewVec3(0, 0, -1), 1e-12) {
		t.Errorf("ray direction: got %v", r.Direction)
	}
}

func TestMat4_ScaleInverse(t *testing.T) {
	m := Scale(NewVec3(2, 2, 2))
	inv := m.Inverse()
	got := inv.TransformPoint(NewVec3(2, 4, 6))
	if !vecApproxEqual(got, NewVec3(1, 2, 3), 1e-12) {
		t.Errorf("scale inverse: got %v", got)
	}
	if math.Abs(inv.M[3][3]-1) > 1e-12 {
		t.Errorf("expected affine bottom-right 1, got %f", inv.M[3][3])
	}
}
