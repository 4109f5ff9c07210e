// pkg/obstacle/teleporter.go
package obstacle

import (
	"context"
	"time"

	"github.com/dock108/mini-golf-break-sub004/pkg/physics"
)

// DefaultTeleporterCooldown keeps a ball dropped onto the exit pad of a
// paired teleporter from bouncing back and forth forever.
const DefaultTeleporterCooldown = 1 * time.Second

// exitLift is how far above the exit position the ball materializes, so it
// settles onto the pad instead of spawning intersected with it.
const exitLift = 0.5

// TeleporterPad relocates the ball to its exit position on contact. The
// ball's velocity is zeroed before the move; a teleport is a clean restart,
// not a momentum-preserving portal.
type TeleporterPad struct {
	baseObstacle

	exit     physics.Vector3
	cooldown time.Duration

	// Optional hooks for departure/arrival effects, invoked around the
	// actual move. Either may be nil.
	BeforeTeleport func(from physics.Vector3)
	AfterTeleport  func(to physics.Vector3)

	lastActivation time.Time
}

// NewTeleporterPad builds a teleporter from config. Cooldown defaults to one
// second.
func NewTeleporterPad(cfg Config) *TeleporterPad {
	cooldown := DefaultTeleporterCooldown
	if cfg.Config.Cooldown > 0 {
		cooldown = time.Duration(cfg.Config.Cooldown * float64(time.Second))
	}
	return &TeleporterPad{
		baseObstacle: newBase(TypeTeleporter, cfg),
		exit:         cfg.Config.ExitPosition.Vector3(),
		cooldown:     cooldown,
	}
}

func (t *TeleporterPad) Init(ctx *Context) error {
	body := &physics.Body{
		Shape:    physics.NewCylinder(0.6, 0.15),
		Position: t.position,
		Trigger:  true,
	}
	t.attach(ctx, body, t)
	return nil
}

func (t *TeleporterPad) Update(float64) {}

func (t *TeleporterPad) OnBallContact(ball *physics.Body) {
	if !isBall(ball) || !t.Active() {
		return
	}

	now := t.now()
	if !t.lastActivation.IsZero() && now.Sub(t.lastActivation) < t.cooldown {
		t.logger().Debug(context.Background(), "teleporter on cooldown",
			"obstacle_id", t.id,
			"remaining", t.cooldown-now.Sub(t.lastActivation),
		)
		return
	}
	t.lastActivation = now

	entry := ball.Position
	if t.BeforeTeleport != nil {
		t.BeforeTeleport(entry)
	}
	ball.Stop()
	ball.Position = t.exit.Add(physics.Vector3{Y: exitLift})
	if t.AfterTeleport != nil {
		t.AfterTeleport(ball.Position)
	}

	t.publishActivation(ball, map[string]interface{}{
		"effect": "teleported",
		"entry":  [3]float64{entry.X, entry.Y, entry.Z},
		"exit":   [3]float64{t.exit.X, t.exit.Y, t.exit.Z},
	})
}

func (t *TeleporterPad) OnBallContactEnd(*physics.Body) {}
