// pkg/engine/hole_entry_test.go
package engine

import (
	"math"
	"testing"

	"github.com/dock108/mini-golf-break-sub004/pkg/physics"
)

// approachVel builds a velocity with the given approach angle for a ball
// sitting on the +X side of a cup at the origin. 180 degrees points straight
// at the cup, 90 is tangential, 0 straight away.
func approachVel(angleDeg, speed float64) physics.Vector3 {
	rad := angleDeg * math.Pi / 180
	return physics.Vector3{
		X: speed * math.Cos(rad),
		Z: speed * math.Sin(rad),
	}
}

func TestEvaluateHoleEntry_Scenarios(t *testing.T) {
	hole := physics.Vector3{}
	const radius = 0.35
	th := DefaultEntryThresholds()
	inside := physics.Vector3{X: 0.2}

	tests := []struct {
		name     string
		ballPos  physics.Vector3
		velocity physics.Vector3
		want     EntryOutcome
	}{
		{
			name:     "outside radius is ignored",
			ballPos:  physics.Vector3{X: 1},
			velocity: approachVel(180, 2),
			want:     EntryNone,
		},
		{
			name:     "resting ball at cup center sinks",
			ballPos:  hole,
			velocity: physics.Vector3{},
			want:     EntrySunk,
		},
		{
			name:     "slow direct approach sinks",
			ballPos:  inside,
			velocity: approachVel(170, 2.5),
			want:     EntrySunk,
		},
		{
			name:     "slow glancing approach still sinks",
			ballPos:  inside,
			velocity: approachVel(95, 2.9),
			want:     EntrySunk,
		},
		{
			name:     "fast tangential approach lips out",
			ballPos:  inside,
			velocity: approachVel(90, 6),
			want:     EntryLipOut,
		},
		{
			name:     "fast direct approach sinks",
			ballPos:  inside,
			velocity: approachVel(170, 6),
			want:     EntrySunk,
		},
		{
			name:     "medium speed glancing lips out",
			ballPos:  inside,
			velocity: approachVel(100, 4),
			want:     EntryLipOut,
		},
		{
			name:     "max safe speed sinks regardless of angle",
			ballPos:  inside,
			velocity: approachVel(60, 3.0),
			want:     EntrySunk,
		},
		{
			name:     "just past the angle threshold sinks",
			ballPos:  inside,
			velocity: approachVel(121, 6),
			want:     EntrySunk,
		},
		{
			name:     "vertical drop into the cup sinks",
			ballPos:  inside,
			velocity: physics.Vector3{Y: -8},
			want:     EntrySunk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateHoleEntry(tt.ballPos, tt.velocity, hole, radius, th)
			if got != tt.want {
				t.Errorf("EvaluateHoleEntry() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckHoleEntry_MatchesSunkOutcome(t *testing.T) {
	hole := physics.Vector3{}
	th := DefaultEntryThresholds()

	if !CheckHoleEntry(physics.Vector3{X: 0.1}, approachVel(180, 1), hole, 0.35, th) {
		t.Error("CheckHoleEntry() = false for a tap-in")
	}
	if CheckHoleEntry(physics.Vector3{X: 0.1}, approachVel(90, 9), hole, 0.35, th) {
		t.Error("CheckHoleEntry() = true for a fast tangential pass")
	}
}
