// pkg/obstacle/movingplatform.go
package obstacle

import (
	"github.com/dock108/mini-golf-break-sub004/pkg/physics"
)

// Easing modes for platform travel between waypoints.
const (
	EasingLinear = "linear"
	EasingSmooth = "smooth"
)

// MovingPlatform is a solid kinematic slab that ping-pongs along its
// waypoints. Balls resting on the platform are carried: each frame's
// displacement is applied to every rider, so the ball does not slide off a
// platform that moves out from under it.
type MovingPlatform struct {
	baseObstacle

	waypoints []physics.Vector3
	speed     float64
	pauseTime float64
	easing    string
	size      physics.Vector3

	from      int
	to        int
	progress  float64 // 0..1 along the current segment
	pauseLeft float64
	forward   bool

	riders map[uint64]*physics.Body
}

// NewMovingPlatform builds a platform from config. Speed defaults to 1 unit
// per second, size to a 2x0.3x2 slab, easing to linear.
func NewMovingPlatform(cfg Config) *MovingPlatform {
	waypoints := make([]physics.Vector3, len(cfg.Config.Waypoints))
	for i, wp := range cfg.Config.Waypoints {
		waypoints[i] = wp.Vector3()
	}
	speed := cfg.Config.Speed
	if speed == 0 {
		speed = 1
	}
	easing := cfg.Config.Easing
	if easing == "" {
		easing = EasingLinear
	}
	size := physics.Vector3{X: 2, Y: 0.3, Z: 2}
	if cfg.Config.Size != nil {
		size = cfg.Config.Size.Vector3()
	}
	return &MovingPlatform{
		baseObstacle: newBase(TypeMovingPlatform, cfg),
		waypoints:    waypoints,
		speed:        speed,
		pauseTime:    cfg.Config.PauseTime,
		easing:       easing,
		size:         size,
		from:         0,
		to:           1,
		forward:      true,
		riders:       make(map[uint64]*physics.Body),
	}
}

func (p *MovingPlatform) Init(ctx *Context) error {
	body := &physics.Body{
		Shape:     physics.NewBox(p.size.X/2, p.size.Y/2, p.size.Z/2),
		Position:  p.waypoints[0],
		Kinematic: true,
	}
	p.attach(ctx, body, p)
	return nil
}

func (p *MovingPlatform) Update(dt float64) {
	// dt guards the displacement/dt velocity below.
	if dt <= 0 || !p.Active() || p.body == nil {
		return
	}

	if p.pauseLeft > 0 {
		p.pauseLeft -= dt
		return
	}

	segment := p.waypoints[p.to].Sub(p.waypoints[p.from])
	length := segment.Length()
	if length < 1e-9 {
		p.advanceWaypoint()
		return
	}

	p.progress += p.speed * dt / length
	if p.progress >= 1 {
		p.progress = 1
	}

	newPos := p.waypoints[p.from].Lerp(p.waypoints[p.to], p.eased(p.progress))
	displacement := newPos.Sub(p.body.Position)
	p.body.Position = newPos
	p.body.Velocity = displacement.Scale(1 / dt)

	for _, ball := range p.riders {
		ball.Position = ball.Position.Add(displacement)
	}

	if p.progress >= 1 {
		p.advanceWaypoint()
	}
}

// advanceWaypoint moves to the next segment, reversing direction at either
// end of the path, and starts the configured dwell.
func (p *MovingPlatform) advanceWaypoint() {
	p.progress = 0
	p.pauseLeft = p.pauseTime

	p.from = p.to
	if p.forward {
		if p.to == len(p.waypoints)-1 {
			p.forward = false
			p.to--
		} else {
			p.to++
		}
	} else {
		if p.to == 0 {
			p.forward = true
			p.to++
		} else {
			p.to--
		}
	}
}

// eased maps linear segment progress to positional progress.
func (p *MovingPlatform) eased(t float64) float64 {
	if p.easing != EasingSmooth {
		return t
	}
	// Cubic ease-in-out.
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 1 + u*u*u/2
}

func (p *MovingPlatform) OnBallContact(ball *physics.Body) {
	if !isBall(ball) {
		return
	}
	p.riders[ball.ID] = ball
}

func (p *MovingPlatform) OnBallContactEnd(ball *physics.Body) {
	if ball == nil {
		return
	}
	delete(p.riders, ball.ID)
}
