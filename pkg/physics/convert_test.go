// pkg/physics/convert_test.go
package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestToRenderVec_RoundTrip_PreservesComponents(t *testing.T) {
	v := Vector3{X: 1.5, Y: -2.25, Z: 0.125}

	got := FromRenderVec(ToRenderVec(v))
	if got.Distance(v) > 1e-6 {
		t.Errorf("round trip = %v, want %v", got, v)
	}
}

func TestFromRenderQuat_Identity_ReturnsZeroAngle(t *testing.T) {
	axis, angle := FromRenderQuat(mgl32.QuatIdent())

	if angle != 0 {
		t.Errorf("angle = %v, want 0", angle)
	}
	if axis != (Vector3{Y: 1}) {
		t.Errorf("axis = %v, want Y-up fallback", axis)
	}
}

func TestToRenderQuat_QuarterTurn_RoundTripsAxisAngle(t *testing.T) {
	q := ToRenderQuat(Vector3{Y: 1}, math.Pi/2)

	axis, angle := FromRenderQuat(q)
	if math.Abs(angle-math.Pi/2) > 1e-4 {
		t.Errorf("angle = %v, want pi/2", angle)
	}
	if axis.Distance(Vector3{Y: 1}) > 1e-4 {
		t.Errorf("axis = %v, want Y", axis)
	}
}

func TestIsAtRest_ThresholdBoundary(t *testing.T) {
	tests := []struct {
		name      string
		velocity  Vector3
		threshold float64
		want      bool
	}{
		{"zero velocity", Vector3{}, 0.1, true},
		{"below threshold", Vector3{X: 0.05}, 0.1, true},
		{"at threshold", Vector3{X: 0.1}, 0.1, true},
		{"above threshold", Vector3{X: 0.2}, 0.1, false},
		{"vertical motion counts", Vector3{Y: 1}, 0.1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAtRest(tt.velocity, tt.threshold); got != tt.want {
				t.Errorf("IsAtRest(%v, %v) = %v, want %v", tt.velocity, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestImpactAngle_ZeroVelocity_Returns180(t *testing.T) {
	angle := ImpactAngle(Vector3{X: 0.1}, Vector3{}, Vector3{})

	if angle != 180 {
		t.Errorf("ImpactAngle() = %v, want 180 for zero velocity", angle)
	}
}

func TestImpactAngle_BallAtHoleCenter_Returns180(t *testing.T) {
	center := Vector3{X: 3, Y: 0, Z: -2}
	angle := ImpactAngle(center, Vector3{X: 5, Z: 1}, center)

	if angle != 180 {
		t.Errorf("ImpactAngle() = %v, want 180 for zero separation", angle)
	}
}

func TestImpactAngle_VerticalDrop_Returns180(t *testing.T) {
	// Only horizontal components participate: a pure vertical velocity is a
	// direct drop.
	angle := ImpactAngle(Vector3{X: 0.2}, Vector3{Y: -4}, Vector3{})

	if angle != 180 {
		t.Errorf("ImpactAngle() = %v, want 180 for vertical drop", angle)
	}
}

func TestImpactAngle_DirectApproach_Returns180(t *testing.T) {
	// Ball at x=1 moving straight at the hole at the origin.
	angle := ImpactAngle(Vector3{X: 1}, Vector3{X: -2}, Vector3{})

	if math.Abs(angle-180) > 1e-6 {
		t.Errorf("ImpactAngle() = %v, want 180 for direct approach", angle)
	}
}

func TestImpactAngle_TangentialApproach_Returns90(t *testing.T) {
	angle := ImpactAngle(Vector3{X: 1}, Vector3{Z: 3}, Vector3{})

	if math.Abs(angle-90) > 1e-6 {
		t.Errorf("ImpactAngle() = %v, want 90 for tangential motion", angle)
	}
}

func TestImpactAngle_MovingAway_Returns0(t *testing.T) {
	angle := ImpactAngle(Vector3{X: 1}, Vector3{X: 2}, Vector3{})

	if math.Abs(angle) > 1e-6 {
		t.Errorf("ImpactAngle() = %v, want 0 when moving directly away", angle)
	}
}

func TestImpactAngle_UsesHorizontalComponentsOnly(t *testing.T) {
	// A large vertical component must not change the horizontal angle.
	flat := ImpactAngle(Vector3{X: 1}, Vector3{X: -2}, Vector3{})
	steep := ImpactAngle(Vector3{X: 1}, Vector3{X: -2, Y: -50}, Vector3{})

	if math.Abs(flat-steep) > 1e-9 {
		t.Errorf("vertical component changed angle: %v vs %v", flat, steep)
	}
}

func TestSpeed_UsesFull3DMagnitude(t *testing.T) {
	if got := Speed(Vector3{X: 3, Y: 4}); !almostEqual(got, 5) {
		t.Errorf("Speed() = %v, want 5", got)
	}
}
