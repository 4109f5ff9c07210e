// pkg/obstacle/rotatingbarrier.go
package obstacle

import (
	"math"

	"github.com/dock108/mini-golf-break-sub004/pkg/physics"
)

// RotatingBarrier is a kinematic arm sweeping around a vertical axis. A ball
// inside the sweep volume is knocked tangentially, in the direction the arm
// is moving at the ball's position, plus a small upward pop so the hit reads
// clearly on screen.
type RotatingBarrier struct {
	baseObstacle

	rotationSpeed float64 // radians per second, sign sets direction
	armLength     float64
	bounceForce   float64

	angle float64
}

// NewRotatingBarrier builds a barrier from config. Arm length defaults to
// 1.5, bounce force to 2.
func NewRotatingBarrier(cfg Config) *RotatingBarrier {
	armLength := cfg.Config.ArmLength
	if armLength == 0 {
		armLength = 1.5
	}
	bounceForce := cfg.Config.BounceForce
	if bounceForce == 0 {
		bounceForce = 2
	}
	return &RotatingBarrier{
		baseObstacle:  newBase(TypeRotatingBarrier, cfg),
		rotationSpeed: cfg.Config.RotationSpeed,
		armLength:     armLength,
		bounceForce:   bounceForce,
	}
}

func (r *RotatingBarrier) Init(ctx *Context) error {
	body := &physics.Body{
		Shape:           physics.NewCylinder(r.armLength, 0.5),
		Position:        r.position,
		Kinematic:       true,
		Trigger:         true,
		AngularVelocity: physics.Vector3{Y: r.rotationSpeed},
	}
	r.attach(ctx, body, r)
	return nil
}

func (r *RotatingBarrier) Update(dt float64) {
	if !r.Active() {
		return
	}
	r.angle += r.rotationSpeed * dt
	if r.angle > 2*math.Pi {
		r.angle -= 2 * math.Pi
	} else if r.angle < -2*math.Pi {
		r.angle += 2 * math.Pi
	}
}

// Angle returns the arm's current rotation in radians.
func (r *RotatingBarrier) Angle() float64 {
	return r.angle
}

func (r *RotatingBarrier) OnBallContact(ball *physics.Body) {
	if !isBall(ball) || !r.Active() {
		return
	}

	radial := ball.Position.Sub(r.position).Horizontal()
	dist := radial.Length()
	if dist < 1e-9 {
		radial = physics.Vector3{X: 1}
		dist = 1
	}
	radial = radial.Scale(1 / dist)

	// Tangential direction of the sweep at the ball, right-hand rule around Y.
	tangent := physics.Vector3{X: -radial.Z, Z: radial.X}
	if r.rotationSpeed < 0 {
		tangent = tangent.Scale(-1)
	}

	hitSpeed := math.Abs(r.rotationSpeed) * dist
	ball.Velocity = tangent.Scale(hitSpeed).Add(physics.Vector3{Y: r.bounceForce})

	r.publishActivation(ball, map[string]interface{}{
		"effect":    "knocked",
		"hit_speed": hitSpeed,
	})
}

func (r *RotatingBarrier) OnBallContactEnd(*physics.Body) {}
