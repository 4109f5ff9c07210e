// pkg/engine/hole_entry.go
package engine

import (
	"github.com/dock108/mini-golf-break-sub004/pkg/physics"
)

// EntryThresholds tune when a ball over the cup drops in versus lips out.
// Angles are in degrees; 180 is a dead-center approach, 90 tangential.
type EntryThresholds struct {
	// MaxSafeSpeed always sinks: at or below it the ball cannot escape the
	// cup regardless of approach angle.
	MaxSafeSpeed float64
	// LipOutSpeedThreshold is the speed above which a shallow approach
	// rides the rim out instead of dropping.
	LipOutSpeedThreshold float64
	// LipOutAngleThreshold is the approach angle at or above which the
	// ball sinks even when moving fast.
	LipOutAngleThreshold float64
}

// DefaultEntryThresholds returns the standard cup behavior.
func DefaultEntryThresholds() EntryThresholds {
	return EntryThresholds{
		MaxSafeSpeed:         3.0,
		LipOutSpeedThreshold: 5.0,
		LipOutAngleThreshold: 120,
	}
}

// EntryOutcome is the result of evaluating the ball against the cup.
type EntryOutcome int

const (
	// EntryNone: the ball is not over the cup.
	EntryNone EntryOutcome = iota
	// EntryLipOut: over the cup but too fast and too glancing to drop.
	EntryLipOut
	// EntrySunk: the ball drops in.
	EntrySunk
)

func (o EntryOutcome) String() string {
	switch o {
	case EntryLipOut:
		return "lip_out"
	case EntrySunk:
		return "sunk"
	default:
		return "none"
	}
}

// EvaluateHoleEntry decides what happens to a ball whose horizontal position
// is tested against the cup. Slow balls always drop; fast balls drop only on
// a steep enough approach, otherwise they lip out.
func EvaluateHoleEntry(ballPos, velocity, holeCenter physics.Vector3, holeRadius float64, th EntryThresholds) EntryOutcome {
	if ballPos.HorizontalDistance(holeCenter) > holeRadius {
		return EntryNone
	}

	speed := physics.Speed(velocity)
	angle := physics.ImpactAngle(ballPos, velocity, holeCenter)

	if speed > th.LipOutSpeedThreshold && angle < th.LipOutAngleThreshold {
		return EntryLipOut
	}
	if speed <= th.MaxSafeSpeed || angle >= th.LipOutAngleThreshold {
		return EntrySunk
	}
	// Between the two speed thresholds on a glancing line: still too much
	// lateral energy to drop.
	return EntryLipOut
}

// CheckHoleEntry reports whether the ball sinks. Convenience wrapper over
// EvaluateHoleEntry for callers that only care about the sunk case.
func CheckHoleEntry(ballPos, velocity, holeCenter physics.Vector3, holeRadius float64, th EntryThresholds) bool {
	return EvaluateHoleEntry(ballPos, velocity, holeCenter, holeRadius, th) == EntrySunk
}
