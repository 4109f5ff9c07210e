// pkg/obstacle/gravitywell.go
package obstacle

import (
	"context"
	"math"

	"github.com/dock108/mini-golf-break-sub004/pkg/physics"
)

// Falloff curves for the gravity well's pull over distance.
const (
	FalloffLinear      = "linear"
	FalloffQuadratic   = "quadratic"
	FalloffExponential = "exponential"
)

// minWellDistance floors the center distance so a ball parked on the well's
// center still feels the full pull instead of a degenerate zero direction.
const minWellDistance = 1e-6

// GravityWell pulls (or pushes, when Repel is set) the ball toward its center
// with a force that fades toward the influence radius. The well's body is a
// trigger sphere covering the radius; the actual force is applied by scanning
// balls every frame, so a ball is affected continuously, not only on the
// contact edge.
type GravityWell struct {
	baseObstacle

	force   float64
	radius  float64
	falloff string
	repel   bool

	contained map[uint64]*physics.Body
}

// NewGravityWell builds a gravity well from config. Falloff defaults to
// linear.
func NewGravityWell(cfg Config) *GravityWell {
	falloff := cfg.Config.Falloff
	if falloff == "" {
		falloff = FalloffLinear
	}
	return &GravityWell{
		baseObstacle: newBase(TypeGravityWell, cfg),
		force:        cfg.Config.Force,
		radius:       cfg.Config.Radius,
		falloff:      falloff,
		repel:        cfg.Config.Repel,
		contained:    make(map[uint64]*physics.Body),
	}
}

func (g *GravityWell) Init(ctx *Context) error {
	body := &physics.Body{
		Shape:    physics.NewSphere(g.radius),
		Position: g.position,
		Trigger:  true,
	}
	g.attach(ctx, body, g)
	return nil
}

func (g *GravityWell) Update(dt float64) {
	if !g.Active() || g.ctx == nil || g.ctx.World == nil {
		return
	}

	seen := make(map[uint64]bool)
	for _, ball := range g.ctx.World.BodiesByTag("ball") {
		delta := g.position.Sub(ball.Position)
		dist := delta.Length()
		if dist >= g.radius {
			continue
		}
		seen[ball.ID] = true

		if g.contained[ball.ID] == nil {
			g.contained[ball.ID] = ball
			g.publishActivation(ball, map[string]interface{}{
				"effect": "captured",
				"repel":  g.repel,
			})
		}

		if dist < minWellDistance {
			dist = minWellDistance
			// No meaningful radial direction at the center; pull straight
			// down into the well (or straight up when repelling).
			delta = physics.Vector3{Y: -dist}
		}

		magnitude := g.force * g.falloffScale(dist/g.radius)
		if magnitude > g.force {
			magnitude = g.force
		}

		dir := delta.Normalize()
		if g.repel {
			dir = dir.Scale(-1)
		}
		ball.ApplyForce(dir.Scale(magnitude))
	}

	for id, ball := range g.contained {
		if !seen[id] {
			delete(g.contained, id)
			g.publishActivation(ball, map[string]interface{}{
				"effect": "escaped",
				"repel":  g.repel,
			})
			g.logger().Debug(context.Background(), "ball escaped gravity well",
				"obstacle_id", g.id,
				"ball_id", id,
			)
		}
	}
}

// falloffScale maps the normalized distance (0 at center, 1 at the radius)
// to a force multiplier in [0, 1].
func (g *GravityWell) falloffScale(norm float64) float64 {
	switch g.falloff {
	case FalloffQuadratic:
		return (1 - norm) * (1 - norm)
	case FalloffExponential:
		return math.Exp(-4 * norm)
	default:
		return 1 - norm
	}
}

// Contact edges are covered by the per-frame scan.
func (g *GravityWell) OnBallContact(*physics.Body)    {}
func (g *GravityWell) OnBallContactEnd(*physics.Body) {}
