// pkg/obstacle/speedboost.go
package obstacle

import (
	"context"

	"github.com/dock108/mini-golf-break-sub004/pkg/physics"
)

// SpeedBoostStrip accelerates the ball once per crossing. In additive mode
// the boost impulse is added to the current velocity; in override mode the
// horizontal velocity is replaced outright, which gives course designers a
// predictable exit speed regardless of how the ball entered.
type SpeedBoostStrip struct {
	baseObstacle

	direction physics.Vector3
	magnitude float64
	override  bool
	size      physics.Vector3
}

// NewSpeedBoostStrip builds a boost strip from config. The strip defaults to
// a 1x0.2x2 pad.
func NewSpeedBoostStrip(cfg Config) *SpeedBoostStrip {
	size := physics.Vector3{X: 1, Y: 0.2, Z: 2}
	if cfg.Config.Size != nil {
		size = cfg.Config.Size.Vector3()
	}
	return &SpeedBoostStrip{
		baseObstacle: newBase(TypeSpeedBoost, cfg),
		direction:    cfg.Config.BoostDirection.Vector3().Normalize(),
		magnitude:    cfg.Config.BoostMagnitude,
		override:     cfg.Config.OverrideSpeed,
		size:         size,
	}
}

func (s *SpeedBoostStrip) Init(ctx *Context) error {
	body := &physics.Body{
		Shape:    physics.NewBox(s.size.X/2, s.size.Y/2, s.size.Z/2),
		Position: s.position,
		Trigger:  true,
	}
	s.attach(ctx, body, s)
	return nil
}

func (s *SpeedBoostStrip) Update(float64) {}

func (s *SpeedBoostStrip) OnBallContact(ball *physics.Body) {
	if !isBall(ball) || !s.Active() {
		return
	}

	before := physics.Speed(ball.Velocity)
	boost := s.direction.Scale(s.magnitude)
	if s.override {
		// Keep whatever upward motion is larger so the override never slams
		// an airborne ball into the ground.
		if ball.Velocity.Y > boost.Y {
			boost.Y = ball.Velocity.Y
		}
		ball.Velocity = boost
	} else {
		// Additive boosts act in the plane; vertical velocity is untouched.
		boost.Y = 0
		ball.Velocity = ball.Velocity.Add(boost)
	}

	s.logger().Debug(context.Background(), "speed boost applied",
		"obstacle_id", s.id,
		"speed_before", before,
		"speed_after", physics.Speed(ball.Velocity),
	)
	s.publishActivation(ball, map[string]interface{}{
		"effect":       "boost",
		"speed_before": before,
		"speed_after":  physics.Speed(ball.Velocity),
		"override":     s.override,
	})
}

func (s *SpeedBoostStrip) OnBallContactEnd(*physics.Body) {}
