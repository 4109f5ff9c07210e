// pkg/engine/game.go
package engine

import (
	ctxpkg "context"

	"github.com/dock108/mini-golf-break-sub004/pkg/course"
	"github.com/dock108/mini-golf-break-sub004/pkg/event"
	"github.com/dock108/mini-golf-break-sub004/pkg/logging"
	"github.com/dock108/mini-golf-break-sub004/pkg/obstacle"
	"github.com/dock108/mini-golf-break-sub004/pkg/physics"
	"github.com/dock108/mini-golf-break-sub004/pkg/render"
	"github.com/dock108/mini-golf-break-sub004/pkg/score"
)

// MaxFrameDelta caps a single frame's simulated time. A stalled process
// catches up by dropping time, not by exploding the physics.
const MaxFrameDelta = 0.1

// Extra linear damping applied to the ball while it is in a sand hazard.
const sandDamping = 4.0

// Game wires the gameplay core together: one physics world, one course, one
// ball, one score sheet, all communicating over a shared event bus. Update
// is single-threaded; external input arrives through HitBall between frames.
type Game struct {
	logger     *logging.Logger
	events     *event.Bus
	physics    *physics.Manager
	course     *course.Controller
	score      *score.Manager
	ball       *BallManager
	scene      *render.Node
	thresholds EntryThresholds

	tick    uint64
	started bool
	ended   bool

	inSand      bool
	prevDamping float64
}

// NewGame assembles a game for the given course. Nothing is simulated until
// Start.
func NewGame(logger *logging.Logger, holes []course.HoleConfig, thresholds EntryThresholds) *Game {
	logger = logging.OrDefault(logger)
	bus := event.NewEventBus()
	phys := physics.NewManager(logger).Init()
	scene := render.NewNode("course")
	ball := NewBallManager(logger, bus, phys)
	ctrl := course.NewController(logger, bus, phys, scene, nil, holes, ball)

	scores := score.NewManager(logger, bus)
	pars := make([]int, len(holes))
	for i, h := range holes {
		pars[i] = h.Par
	}
	scores.Reset(pars)

	g := &Game{
		logger:     logger,
		events:     bus,
		physics:    phys,
		course:     ctrl,
		score:      scores,
		ball:       ball,
		scene:      scene,
		thresholds: thresholds,
	}
	phys.SetContactHandlers(g.handleContactBegin, g.handleContactEnd)
	bus.Subscribe(event.CourseCompleted, func(event.Event) {
		g.ended = true
		bus.Publish(&event.BaseEvent{EventType: event.GameEnded, Source: g})
	})
	return g
}

// Start builds the first hole and spawns the ball on its tee.
func (g *Game) Start() bool {
	if g.started {
		return true
	}
	if !g.course.InitializeHole(0) {
		return false
	}
	g.ball.Spawn(g.course.StartPosition())
	g.started = true
	g.events.Publish(&event.BaseEvent{EventType: event.GameStarted, Source: g})
	g.logger.Info(ctxpkg.Background(), "game started",
		"holes", g.course.HoleCount(),
	)
	return true
}

// Update advances the game by dt seconds: course transitions and obstacle
// motion first, then physics, then cup entry. dt is clamped to MaxFrameDelta.
func (g *Game) Update(dt float64) {
	if !g.started {
		return
	}
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	if dt <= 0 {
		return
	}

	g.course.Update(dt)
	g.physics.Update(dt)
	g.checkHoleEntry()
	g.tick++
}

// HitBall strikes the ball for the player. Rejected while transitioning
// between holes or after the course is finished.
func (g *Game) HitBall(direction [3]float64, power float64) bool {
	if !g.started || g.ended || g.course.IsTransitioning() || g.course.IsHoleComplete() {
		return false
	}
	dir := physics.Vector3{X: direction[0], Y: direction[1], Z: direction[2]}
	return g.ball.Hit(dir, power, g.course.CurrentHoleIndex())
}

// checkHoleEntry tests the ball against the active cup and applies the
// outcome: a sink stops the ball and notifies the course, a lip-out deflects
// the ball back off the rim.
func (g *Game) checkHoleEntry() {
	if g.ended || g.course.IsTransitioning() || g.course.IsHoleComplete() {
		return
	}
	cfg, ok := g.course.CurrentHole()
	if !ok || g.ball.Body() == nil {
		return
	}
	body := g.ball.Body()

	switch EvaluateHoleEntry(body.Position, body.Velocity, cfg.Hole(), cfg.Radius(), g.thresholds) {
	case EntrySunk:
		g.ball.Stop()
		body.Position = cfg.Hole()
		index := g.course.CurrentHoleIndex()
		g.logger.Info(ctxpkg.Background(), "ball sunk", "hole_index", index)
		g.events.Publish(event.NewBallInHoleEvent(g, index))
		g.course.OnBallInHole(index)

	case EntryLipOut:
		g.applyLipOut(body, cfg.Hole())
	}
}

// applyLipOut kicks the ball back out of the cup: the horizontal velocity is
// redirected away from the center with reduced speed plus a small hop.
func (g *Game) applyLipOut(body *physics.Body, holeCenter physics.Vector3) {
	away := body.Position.Sub(holeCenter).Horizontal().Normalize()
	if away.IsZero() {
		away = physics.Vector3{X: 1}
	}
	speed := physics.Speed(body.Velocity)
	body.Velocity = away.Scale(speed * 0.6).Add(physics.Vector3{Y: speed * 0.2})

	g.logger.Debug(ctxpkg.Background(), "lip out",
		"hole_index", g.course.CurrentHoleIndex(),
		"speed", speed,
	)
}

// handleContactBegin routes a new contact to the obstacle or hazard it
// belongs to. The world reports the dynamic body first.
func (g *Game) handleContactBegin(a, b *physics.Body) {
	ball, other := orientContact(a, b)
	if ball == nil {
		return
	}

	if ob, okOb := other.UserData.Obstacle.(obstacle.Obstacle); okOb {
		ob.OnBallContact(ball)
		return
	}

	switch other.UserData.Type {
	case course.HazardWater:
		index := g.course.CurrentHoleIndex()
		g.logger.Info(ctxpkg.Background(), "ball in water", "hole_index", index)
		g.events.Publish(event.NewHazardPenaltyEvent(g, index, course.HazardWater))
		g.ball.ResetBall(g.course.StartPosition())

	case course.HazardSand:
		if !g.inSand {
			g.inSand = true
			g.prevDamping = ball.LinearDamping
			ball.LinearDamping = sandDamping
		}
	}
}

// handleContactEnd undoes contact-scoped effects.
func (g *Game) handleContactEnd(a, b *physics.Body) {
	ball, other := orientContact(a, b)
	if ball == nil {
		return
	}

	if ob, okOb := other.UserData.Obstacle.(obstacle.Obstacle); okOb {
		ob.OnBallContactEnd(ball)
		return
	}

	if other.UserData.Type == course.HazardSand && g.inSand {
		g.inSand = false
		ball.LinearDamping = g.prevDamping
	}
}

// orientContact returns (ball, other), or (nil, nil) when neither body is
// the ball.
func orientContact(a, b *physics.Body) (*physics.Body, *physics.Body) {
	if a != nil && a.UserData.Type == "ball" {
		return a, b
	}
	if b != nil && b.UserData.Type == "ball" {
		return b, a
	}
	return nil, nil
}

// GameState is the per-frame snapshot streamed to clients.
type GameState struct {
	Tick          uint64                  `json:"tick"`
	HoleIndex     int                     `json:"holeIndex"`
	BallPosition  [3]float64              `json:"ballPosition"`
	BallVelocity  [3]float64              `json:"ballVelocity"`
	AtRest        bool                    `json:"atRest"`
	Transitioning bool                    `json:"transitioning"`
	Ended         bool                    `json:"ended"`
	Scores        map[int]score.HoleState `json:"scores"`
}

// GetGameState captures the current snapshot.
func (g *Game) GetGameState() GameState {
	pos := g.ball.Position()
	var vel physics.Vector3
	if body := g.ball.Body(); body != nil {
		vel = body.Velocity
	}
	return GameState{
		Tick:          g.tick,
		HoleIndex:     g.course.CurrentHoleIndex(),
		BallPosition:  [3]float64{pos.X, pos.Y, pos.Z},
		BallVelocity:  [3]float64{vel.X, vel.Y, vel.Z},
		AtRest:        g.ball.IsAtRest(),
		Transitioning: g.course.IsTransitioning(),
		Ended:         g.ended,
		Scores:        g.score.Snapshot(),
	}
}

// Events exposes the game's bus for external subscribers.
func (g *Game) Events() *event.Bus { return g.events }

// Physics exposes the physics manager, mainly for readiness probes.
func (g *Game) Physics() *physics.Manager { return g.physics }

// Course exposes the course controller.
func (g *Game) Course() *course.Controller { return g.course }

// Scores exposes the score manager.
func (g *Game) Scores() *score.Manager { return g.score }

// Ball exposes the ball manager.
func (g *Game) Ball() *BallManager { return g.ball }

// Scene exposes the scene graph root.
func (g *Game) Scene() *render.Node { return g.scene }

// Ended reports whether the course has been completed.
func (g *Game) Ended() bool { return g.ended }

// Tick returns the number of completed updates.
func (g *Game) Tick() uint64 { return g.tick }
