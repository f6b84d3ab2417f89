package core

import (
	"math"
	"testing"
)

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewBox(V(0, 0), 2, 2),
			b:        NewBox(V(1, 1), 2, 2),
			expected: true,
		},
		{
			name:     "apart horizontally",
			a:        NewBox(V(0, 0), 2, 2),
			b:        NewBox(V(3, 0), 2, 2),
			expected: false,
		},
		{
			name:     "apart vertically",
			a:        NewBox(V(0, 0), 2, 2),
			b:        NewBox(V(0, -3), 2, 2),
			expected: false,
		},
		{
			name:     "touching edges",
			a:        NewBox(V(0, 0), 2, 2),
			b:        NewBox(V(0, 2), 2, 2),
			expected: false,
		},
		{
			name:     "contained",
			a:        NewBox(V(0, 0), 4, 4),
			b:        NewBox(V(0.5, 0.5), 1, 1),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := NewBox(V(1, 2), 4, 2)

	if b.Left() != -1 || b.Right() != 3 {
		t.Errorf("horizontal edges = (%v, %v), expected (-1, 3)", b.Left(), b.Right())
	}
	if b.Bottom() != 1 || b.Top() != 3 {
		t.Errorf("vertical edges = (%v, %v), expected (1, 3)", b.Bottom(), b.Top())
	}
	if b.Min() != V(-1, 1) {
		t.Errorf("Min() = %v, expected (-1, 1)", b.Min())
	}

	moved := b.Moved(V(1, -1))
	if moved.Center != V(2, 1) {
		t.Errorf("Moved() center = %v, expected (2, 1)", moved.Center)
	}

	grown := b.Expand(1)
	if grown.Width() != 6 || grown.Height() != 4 {
		t.Errorf("Expand() size = %vx%v, expected 6x4", grown.Width(), grown.Height())
	}
}

func TestVec2(t *testing.T) {
	v := V(3, 4)
	if v.Len() != 5 {
		t.Errorf("Len() = %v, expected 5", v.Len())
	}
	if v.Neg() != V(-3, -4) {
		t.Errorf("Neg() = %v", v.Neg())
	}
	if d := V(0, 0).Dist(v); d != 5 {
		t.Errorf("Dist() = %v, expected 5", d)
	}
	if s := v.Scale(2).Sub(V(1, 1)); s != V(5, 7) {
		t.Errorf("Scale/Sub = %v, expected (5, 7)", s)
	}
}

func TestLerpAndClamp(t *testing.T) {
	tests := []struct {
		a, b, t, expected float64
	}{
		{0, 10, 0, 0},
		{0, 10, 1, 10},
		{0.05, 0.25, 0.5, 0.15},
	}

	for _, tc := range tests {
		if got := Lerp(tc.a, tc.b, tc.t); math.Abs(got-tc.expected) > 1e-12 {
			t.Errorf("Lerp(%v, %v, %v) = %v, expected %v", tc.a, tc.b, tc.t, got, tc.expected)
		}
	}

	if ClampF(-1, 0, 1) != 0 || ClampF(2, 0, 1) != 1 || ClampF(0.5, 0, 1) != 0.5 {
		t.Error("ClampF did not clamp to range")
	}
	if Sign(-2) != -1 || Sign(0) != 0 || Sign(3) != 1 {
		t.Error("Sign returned wrong values")
	}
}
