// pkg/course/controller.go
package course

import (
	ctxpkg "context"
	"fmt"
	"time"

	"github.com/dock108/mini-golf-break-sub004/pkg/event"
	"github.com/dock108/mini-golf-break-sub004/pkg/logging"
	"github.com/dock108/mini-golf-break-sub004/pkg/obstacle"
	"github.com/dock108/mini-golf-break-sub004/pkg/physics"
	"github.com/dock108/mini-golf-break-sub004/pkg/render"
)

// BallResetter places the ball at a position with zeroed velocity.
type BallResetter interface {
	ResetBall(pos physics.Vector3)
}

// Controller owns hole lifecycle: building the active hole, reacting to the
// ball being sunk and running the transition to the next hole.
//
// All methods run on the frame loop. Transitions never happen inside the
// frame that completed a hole: completion only schedules work, and the
// scheduled transition runs at the top of a later Update. Re-entrancy is
// guarded by plain booleans because there is exactly one mutating goroutine.
type Controller struct {
	logger   *logging.Logger
	events   *event.Bus
	physics  *physics.Manager
	scene    *render.Node
	registry *obstacle.Registry
	resetter BallResetter
	now      func() time.Time

	holes      []HoleConfig
	containers map[int]*render.Node

	current    int
	activeHole *Hole

	isTransitioning   bool
	isHoleComplete    bool
	pendingTransition bool
	deferred          func()

	startPosition physics.Vector3
}

// NewController creates a controller for the given hole list. No hole is
// built until InitializeHole is called.
func NewController(logger *logging.Logger, events *event.Bus, phys *physics.Manager, scene *render.Node, registry *obstacle.Registry, holes []HoleConfig, resetter BallResetter) *Controller {
	if registry == nil {
		registry = obstacle.NewDefaultRegistry()
	}
	return &Controller{
		logger:     logging.OrDefault(logger),
		events:     events,
		physics:    phys,
		scene:      scene,
		registry:   registry,
		resetter:   resetter,
		now:        time.Now,
		holes:      holes,
		containers: make(map[int]*render.Node),
		current:    -1,
	}
}

// CurrentHoleIndex returns the active hole index, -1 before the first hole.
func (c *Controller) CurrentHoleIndex() int { return c.current }

// HoleCount returns the number of holes on the course.
func (c *Controller) HoleCount() int { return len(c.holes) }

// IsTransitioning reports whether a hole transition is in progress.
func (c *Controller) IsTransitioning() bool { return c.isTransitioning }

// IsHoleComplete reports whether the active hole has been sunk and is
// waiting for its transition.
func (c *Controller) IsHoleComplete() bool { return c.isHoleComplete }

// StartPosition returns the active hole's tee position.
func (c *Controller) StartPosition() physics.Vector3 { return c.startPosition }

// CurrentHole returns the active hole's config, or false before the first
// hole is built.
func (c *Controller) CurrentHole() (HoleConfig, bool) {
	if c.current < 0 || c.current >= len(c.holes) {
		return HoleConfig{}, false
	}
	return c.holes[c.current], true
}

// InitializeHole builds the hole at index and makes it the only visible one.
// Initializing the already-active index just re-shows its container. Returns
// false on an out-of-range index or a build failure; the previous hole stays
// torn down in the failure case, never half-mixed with the new one.
func (c *Controller) InitializeHole(index int) bool {
	if index < 0 || index >= len(c.holes) {
		c.logger.Warn(ctxpkg.Background(), "hole index out of range",
			"index", index,
			"hole_count", len(c.holes),
		)
		return false
	}

	if index == c.current && c.activeHole != nil {
		c.container(index).SetVisible(true)
		return true
	}

	if c.activeHole != nil {
		c.ClearCurrentHole()
	}
	for _, node := range c.containers {
		node.SetVisible(false)
	}

	cfg := c.holes[index]
	container := c.container(index)
	container.SetVisible(true)

	hole, err := buildHole(cfg, container, c.registry, &obstacle.Context{
		World:  c.physics.World(),
		Events: c.events,
		Logger: c.logger,
		Scene:  container,
		Now:    c.now,
	})
	if err != nil {
		c.logger.Error(ctxpkg.Background(), "hole build failed",
			fmt.Errorf("hole %d: %w", index, err),
		)
		container.SetVisible(false)
		return false
	}

	c.activeHole = hole
	c.current = index
	c.startPosition = cfg.Start()
	c.isHoleComplete = false

	c.logger.Info(ctxpkg.Background(), "hole initialized",
		"hole_index", index,
		"par", cfg.Par,
		"obstacles", len(hole.obstacles),
	)
	if c.events != nil {
		c.events.Publish(event.NewHoleEvent(event.HoleStarted, c, index))
	}
	return true
}

// OnBallInHole records that the ball was sunk on the given hole. Stale
// notifications (wrong index, mid-transition, already latched) are dropped.
// The transition itself is deferred to a later frame.
func (c *Controller) OnBallInHole(index int) {
	if c.isTransitioning {
		c.logger.Warn(ctxpkg.Background(), "ball-in-hole ignored during transition",
			"hole_index", index,
		)
		return
	}
	if index != c.current {
		c.logger.Warn(ctxpkg.Background(), "ball-in-hole for inactive hole",
			"got_index", index,
			"active_index", c.current,
		)
		return
	}
	if c.isHoleComplete {
		return
	}

	c.isHoleComplete = true
	c.logger.Info(ctxpkg.Background(), "hole completed", "hole_index", index)
	if c.events != nil {
		c.events.Publish(event.NewHoleEvent(event.HoleCompleted, c, index))
	}
}

// Update runs deferred work scheduled in earlier frames, schedules the
// pending transition when a hole has been completed, then advances the
// active hole's obstacles.
func (c *Controller) Update(dt float64) {
	if d := c.deferred; d != nil {
		c.deferred = nil
		d()
	}

	if c.isHoleComplete && !c.pendingTransition && !c.isTransitioning {
		c.pendingTransition = true
		c.deferred = func() {
			defer func() { c.pendingTransition = false }()
			c.LoadNextHole()
		}
	}

	if c.activeHole != nil && !c.isTransitioning {
		c.activeHole.Update(dt)
	}
}

// LoadNextHole tears down the current hole and builds the next one, then
// moves the ball to the new tee. On the last hole it publishes course
// completion and leaves the index unchanged. Returns false when there is no
// next hole or the build failed.
func (c *Controller) LoadNextHole() bool {
	if c.isTransitioning {
		c.logger.Warn(ctxpkg.Background(), "hole transition already in progress")
		return false
	}
	c.isTransitioning = true
	defer func() {
		c.isTransitioning = false
		c.isHoleComplete = false
	}()

	next := c.current + 1
	if next >= len(c.holes) {
		c.logger.Info(ctxpkg.Background(), "course completed",
			"holes_played", len(c.holes),
		)
		if c.events != nil {
			c.events.Publish(event.NewHoleEvent(event.CourseCompleted, c, c.current))
		}
		return false
	}

	c.ClearCurrentHole()
	if !c.InitializeHole(next) {
		return false
	}
	if c.resetter != nil {
		c.resetter.ResetBall(c.startPosition)
	}
	return true
}

// ClearCurrentHole disposes the active hole's obstacles and bodies and hides
// its container. The container node itself is kept for reuse.
func (c *Controller) ClearCurrentHole() {
	if c.activeHole == nil {
		return
	}
	c.activeHole.teardown(c.physics.World())
	c.container(c.current).SetVisible(false)
	c.activeHole = nil
}

// container returns (creating on first use) the scene node for a hole index.
func (c *Controller) container(index int) *render.Node {
	if node, ok := c.containers[index]; ok {
		return node
	}
	node := render.NewNode(fmt.Sprintf("hole-%d", index))
	c.containers[index] = node
	if c.scene != nil {
		c.scene.Add(node)
	}
	return node
}
