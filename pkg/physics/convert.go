// pkg/physics/convert.go
//
// Conversion between the render-engine vector/quaternion representation
// (mgl32, float32, what the browser scene works in) and the simulation's
// float64 vectors, plus the velocity-derived quantities the gameplay rules
// are built on: speed, rest detection and impact angle.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ToRenderVec converts a simulation vector to the render representation.
func ToRenderVec(v Vector3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// FromRenderVec converts a render vector to the simulation representation.
func FromRenderVec(v mgl32.Vec3) Vector3 {
	return Vector3{X: float64(v.X()), Y: float64(v.Y()), Z: float64(v.Z())}
}

// ToRenderQuat builds a render quaternion from a rotation of angle radians
// around the given simulation-space axis.
func ToRenderQuat(axis Vector3, angle float64) mgl32.Quat {
	return mgl32.QuatRotate(float32(angle), ToRenderVec(axis).Normalize())
}

// FromRenderQuat extracts the rotation axis and angle from a render
// quaternion. A near-identity rotation yields the Y axis and zero angle.
func FromRenderQuat(q mgl32.Quat) (Vector3, float64) {
	q = q.Normalize()
	angle := 2 * math.Acos(clamp(float64(q.W), -1, 1))
	s := math.Sqrt(1 - float64(q.W)*float64(q.W))
	if s < 1e-6 {
		return Vector3{Y: 1}, 0
	}
	axis := Vector3{
		X: float64(q.X()) / s,
		Y: float64(q.Y()) / s,
		Z: float64(q.Z()) / s,
	}
	return axis, angle
}

// Speed returns the full 3D magnitude of a velocity vector.
func Speed(velocity Vector3) float64 {
	return velocity.Length()
}

// IsAtRest reports whether a velocity is below the rest threshold. Angular
// motion is deliberately ignored: a ball spinning in place counts as resting.
func IsAtRest(velocity Vector3, threshold float64) bool {
	return velocity.LengthSquared() <= threshold*threshold
}

// ImpactAngle computes the angle in degrees characterising how directly a
// ball approaches the hole. Only the horizontal components of the velocity
// participate; the vertical component is excluded.
//
// 180 degrees is the most direct approach. A zero-magnitude horizontal
// velocity is a straight vertical drop and yields 180, as does a ball whose
// position coincides with the hole center (zero separation vector).
func ImpactAngle(ballPos, velocity, holeCenter Vector3) float64 {
	horizontalVel := velocity.Horizontal()
	fromHole := ballPos.Sub(holeCenter).Horizontal()

	if horizontalVel.LengthSquared() == 0 || fromHole.LengthSquared() == 0 {
		return 180
	}

	cos := horizontalVel.Normalize().Dot(fromHole.Normalize())
	return math.Acos(clamp(cos, -1, 1)) * 180 / math.Pi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
