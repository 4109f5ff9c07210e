// pkg/engine/ball.go
package engine

import (
	ctxpkg "context"

	"github.com/dock108/mini-golf-break-sub004/pkg/event"
	"github.com/dock108/mini-golf-break-sub004/pkg/logging"
	"github.com/dock108/mini-golf-break-sub004/pkg/physics"
)

// Ball tuning.
const (
	DefaultBallRadius    = 0.2
	DefaultBallMass      = 1.0
	DefaultRestThreshold = 0.1
	MaxHitPower          = 10.0
)

// BallManager owns the single player ball: its body, spawn/reset handling
// and the hit operation. Hits are only accepted while the ball is at rest.
type BallManager struct {
	logger  *logging.Logger
	events  *event.Bus
	physics *physics.Manager

	body          *physics.Body
	restThreshold float64
}

// NewBallManager creates a ball manager. The ball body is not created until
// Spawn.
func NewBallManager(logger *logging.Logger, events *event.Bus, phys *physics.Manager) *BallManager {
	return &BallManager{
		logger:        logging.OrDefault(logger),
		events:        events,
		physics:       phys,
		restThreshold: DefaultRestThreshold,
	}
}

// Spawn creates the ball body at a position and adds it to the world.
// Spawning again just resets the existing ball.
func (bm *BallManager) Spawn(pos physics.Vector3) {
	if bm.body != nil {
		bm.ResetBall(pos)
		return
	}
	bm.body = &physics.Body{
		Shape:    physics.NewSphere(DefaultBallRadius),
		Position: pos,
		Mass:     DefaultBallMass,
		Material: physics.MaterialBall,
		UserData: physics.UserData{Type: "ball"},
	}
	bm.physics.AddBody(bm.body)
}

// ResetBall stops the ball and places it at the given position. Implements
// course.BallResetter.
func (bm *BallManager) ResetBall(pos physics.Vector3) {
	if bm.body == nil {
		bm.Spawn(pos)
		return
	}
	bm.body.Stop()
	bm.body.Position = pos
	if bm.events != nil {
		bm.events.Publish(event.NewBallResetEvent(bm, [3]float64{pos.X, pos.Y, pos.Z}))
	}
}

// Hit strikes the ball along the horizontal component of direction with the
// given power. Rejected while the ball is still moving or before spawn.
// Power is clamped to MaxHitPower.
func (bm *BallManager) Hit(direction physics.Vector3, power float64, holeIndex int) bool {
	if bm.body == nil {
		return false
	}
	if !bm.IsAtRest() {
		bm.logger.Debug(ctxpkg.Background(), "hit rejected: ball still moving",
			"speed", physics.Speed(bm.body.Velocity),
		)
		return false
	}

	dir := direction.Horizontal().Normalize()
	if dir.IsZero() {
		return false
	}
	if power < 0 {
		power = 0
	}
	if power > MaxHitPower {
		power = MaxHitPower
	}

	bm.body.ApplyImpulse(dir.Scale(power))
	if bm.events != nil {
		bm.events.Publish(event.NewBallHitEvent(bm, holeIndex, power))
	}
	return true
}

// IsAtRest reports whether the ball has effectively stopped.
func (bm *BallManager) IsAtRest() bool {
	if bm.body == nil {
		return true
	}
	return physics.IsAtRest(bm.body.Velocity, bm.restThreshold)
}

// Stop halts the ball immediately.
func (bm *BallManager) Stop() {
	if bm.body != nil {
		bm.body.Stop()
	}
}

// Body returns the ball's physics body, nil before Spawn.
func (bm *BallManager) Body() *physics.Body {
	return bm.body
}

// Position returns the ball's position, zero before Spawn.
func (bm *BallManager) Position() physics.Vector3 {
	if bm.body == nil {
		return physics.Vector3{}
	}
	return bm.body.Position
}
