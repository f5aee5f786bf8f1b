package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name   string
		vector Vec3
	}{
		{"unit x", NewVec3(1, 0, 0)},
		{"long diagonal", NewVec3(3, -4, 12)},
		{"tiny", NewVec3(1e-7, 2e-7, -3e-7)},
		{"huge", NewVec3(1e5, 1e5, -1e5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.vector.Normalize()
			if math.Abs(n.Length()-1.0) > 1e-12 {
				t.Errorf("Expected unit length, got %f", n.Length())
			}
			// Same direction: parallel and pointing the same way
			if n.Dot(tt.vector) <= 0 || n.Cross(tt.vector).Length() > 1e-9*tt.vector.Length() {
				t.Errorf("Normalized vector %v does not point along %v", n, tt.vector)
			}
		})
	}
}

func TestVec3_Cross_RightHanded(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)
	z := NewVec3(0, 0, 1)

	if got := x.Cross(y); got != z {
		t.Errorf("x × y: expected %v, got %v", z, got)
	}
	if got := y.Cross(z); got != x {
		t.Errorf("y × z: expected %v, got %v", x, got)
	}
	if got := y.Cross(x); got != z.Negate() {
		t.Errorf("y × x: expected %v, got %v", z.Negate(), got)
	}

	a := NewVec3(2, -1, 3)
	b := NewVec3(0.5, 4, -2)
	c := a.Cross(b)
	if math.Abs(c.Dot(a)) > 1e-12 || math.Abs(c.Dot(b)) > 1e-12 {
		t.Errorf("Cross product %v should be perpendicular to both inputs", c)
	}
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	if got := a.Add(b); got != NewVec3(5, 7, 9) {
		t.Errorf("Add: got %v", got)
	}
	if got := b.Subtract(a); got != NewVec3(3, 3, 3) {
		t.Errorf("Subtract: got %v", got)
	}
	if got := a.Multiply(2); got != NewVec3(2, 4, 6) {
		t.Errorf("Multiply: got %v", got)
	}
	if got := a.MultiplyVec(b); got != NewVec3(4, 10, 18) {
		t.Errorf("MultiplyVec: got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot: got %f", got)
	}
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.25, 7)
	if got := v.Clamp(0, 1); got != NewVec3(0, 0.25, 1) {
		t.Errorf("Expected (0, 0.25, 1), got %v", got)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, -1))
	if got := ray.At(2.5); got != NewVec3(1, 1, -1.5) {
		t.Errorf("Expected (1, 1, -1.5), got %v", got)
	}
}

func TestQuantizeChannel(t *testing.T) {
	tests := []struct {
		input    float64
		expected int
	}{
		{-1, 0},
		{0, 0},
		{1, 255},
		{7, 255},
		{0.5, 186}, // 0.5^(1/2.2)·255 = 186.08
		{0.01, 31}, // 0.01^(1/2.2)·255 = 31.44
	}

	for _, tt := range tests {
		if got := QuantizeChannel(tt.input, 2.2); got != tt.expected {
			t.Errorf("QuantizeChannel(%v): expected %d, got %d", tt.input, tt.expected, got)
		}
	}
}
