// pkg/physics/vector_test.go
package physics

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestVector3_Add_ReturnsComponentwiseSum(t *testing.T) {
	v := Vector3{X: 1, Y: 2, Z: 3}.Add(Vector3{X: -4, Y: 5, Z: 0.5})

	want := Vector3{X: -3, Y: 7, Z: 3.5}
	if v != want {
		t.Errorf("Add() = %v, want %v", v, want)
	}
}

func TestVector3_Length_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		v    Vector3
		want float64
	}{
		{"zero vector", Vector3{}, 0},
		{"unit x", Vector3{X: 1}, 1},
		{"pythagorean", Vector3{X: 3, Y: 4, Z: 0}, 5},
		{"all components", Vector3{X: 2, Y: 3, Z: 6}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Length(); !almostEqual(got, tt.want) {
				t.Errorf("Length() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVector3_Normalize_ZeroVector_ReturnsZero(t *testing.T) {
	if got := (Vector3{}).Normalize(); !got.IsZero() {
		t.Errorf("Normalize() of zero vector = %v, want zero", got)
	}
}

func TestVector3_Normalize_ReturnsUnitLength(t *testing.T) {
	got := Vector3{X: 3, Y: -4, Z: 12}.Normalize()
	if !almostEqual(got.Length(), 1) {
		t.Errorf("Normalize() length = %v, want 1", got.Length())
	}
}

func TestVector3_Cross_RightHanded(t *testing.T) {
	got := Vector3{X: 1}.Cross(Vector3{Y: 1})
	want := Vector3{Z: 1}
	if got.Distance(want) > epsilon {
		t.Errorf("X cross Y = %v, want %v", got, want)
	}
}

func TestVector3_Horizontal_DropsVerticalComponent(t *testing.T) {
	v := Vector3{X: 2, Y: 9, Z: -1}

	if got := v.Horizontal(); got.Y != 0 || got.X != 2 || got.Z != -1 {
		t.Errorf("Horizontal() = %v, want {2 0 -1}", got)
	}
	if got := v.HorizontalLength(); !almostEqual(got, math.Sqrt(5)) {
		t.Errorf("HorizontalLength() = %v, want sqrt(5)", got)
	}
}

func TestVector3_Lerp_Endpoints_And_Midpoint(t *testing.T) {
	a := Vector3{X: 0, Y: 0, Z: 0}
	b := Vector3{X: 10, Y: -2, Z: 4}

	if got := a.Lerp(b, 0); got.Distance(a) > epsilon {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got.Distance(b) > epsilon {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	mid := Vector3{X: 5, Y: -1, Z: 2}
	if got := a.Lerp(b, 0.5); got.Distance(mid) > epsilon {
		t.Errorf("Lerp(0.5) = %v, want %v", got, mid)
	}
}

func TestVector3_HorizontalDistance_IgnoresHeight(t *testing.T) {
	a := Vector3{X: 0, Y: 100, Z: 0}
	b := Vector3{X: 3, Y: -50, Z: 4}

	if got := a.HorizontalDistance(b); !almostEqual(got, 5) {
		t.Errorf("HorizontalDistance() = %v, want 5", got)
	}
}
