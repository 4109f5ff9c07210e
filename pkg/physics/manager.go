// pkg/physics/manager.go
package physics

import (
	"context"
	"fmt"

	"github.com/dock108/mini-golf-break-sub004/pkg/logging"
)

// Defaults for the fixed-timestep loop. The delta clamp keeps a long frame
// gap from spiralling into an unbounded number of catch-up substeps.
const (
	DefaultFixedTimeStep = 1.0 / 60.0
	DefaultMaxSubSteps   = 3
	DefaultMaxDelta      = 0.1
)

// DefaultGravity is the world gravity in m/s^2.
var DefaultGravity = Vector3{Y: -9.81}

// Manager owns the single physics world, advances it at a fixed timestep and
// mediates all body add/remove and collision wiring.
//
// State machine: uninitialized -> Init() -> ready -> ResetWorld() ->
// resetting -> ready. Update only steps the world while ready.
type Manager struct {
	logger *logging.Logger

	world         *World
	fixedTimeStep float64
	maxSubSteps   int
	maxDelta      float64

	beginContact ContactHandler
	endContact   ContactHandler

	isResetting bool
}

// NewManager creates an uninitialized manager. Call Init before Update.
func NewManager(logger *logging.Logger) *Manager {
	return &Manager{
		logger:        logging.OrDefault(logger),
		fixedTimeStep: DefaultFixedTimeStep,
		maxSubSteps:   DefaultMaxSubSteps,
		maxDelta:      DefaultMaxDelta,
	}
}

// Init constructs the world with fixed gravity, solver settings and the
// named material set. Calling Init on an initialized manager rebuilds the
// world from scratch.
func (m *Manager) Init() *Manager {
	m.world = NewWorld(DefaultGravity)
	m.wireContacts()
	return m
}

// Ready reports whether the manager can step.
func (m *Manager) Ready() bool {
	return m.world != nil && !m.isResetting
}

// World exposes the owned world for body construction. Nil until Init.
func (m *Manager) World() *World {
	return m.world
}

// IsResetting reports whether a world reset is in progress.
func (m *Manager) IsResetting() bool {
	return m.isResetting
}

// SetContactHandlers wires the collision-start and collision-end entry
// points. Handlers survive ResetWorld. A nil handler is tolerated: contacts
// are then logged at debug level instead of dispatched.
func (m *Manager) SetContactHandlers(begin, end ContactHandler) {
	m.beginContact = begin
	m.endContact = end
	if m.world != nil {
		m.wireContacts()
	}
}

// wireContacts forwards world contact callbacks to the registered handlers,
// logging instead of panicking when no handler exists.
func (m *Manager) wireContacts() {
	m.world.BeginContact = func(a, b *Body) {
		if m.beginContact == nil {
			m.logger.Debug(context.Background(), "contact begin with no handler wired",
				"body_a", a.UserData.Type,
				"body_b", b.UserData.Type,
			)
			return
		}
		m.beginContact(a, b)
	}
	m.world.EndContact = func(a, b *Body) {
		if m.endContact == nil {
			return
		}
		m.endContact(a, b)
	}
}

// Update advances the world by the wall-clock delta, clamped and split into
// fixed substeps. It is a warned no-op before Init and a silent no-op while
// a reset is in progress. A panic during stepping is caught and logged;
// physics errors never propagate into the frame loop.
func (m *Manager) Update(deltaTime float64) *Manager {
	if m.world == nil {
		m.logger.Warn(context.Background(), "physics update skipped: world not initialized")
		return m
	}
	if m.isResetting {
		return m
	}

	if deltaTime > m.maxDelta {
		deltaTime = m.maxDelta
	}
	if deltaTime <= 0 {
		return m
	}

	defer func() {
		if r := recover(); r != nil {
			m.logger.Error(context.Background(), "physics step failed",
				fmt.Errorf("panic during step: %v", r),
			)
		}
	}()

	steps := int(deltaTime/m.fixedTimeStep) + 1
	if steps > m.maxSubSteps {
		steps = m.maxSubSteps
	}
	stepDt := deltaTime / float64(steps)
	for i := 0; i < steps; i++ {
		m.world.Step(stepDt)
	}

	return m
}

// ResetWorld tears down and recreates the world and all materials. The
// isResetting guard makes concurrent Update calls skip instead of stepping a
// half-built world. A reset requested during a reset is rejected.
func (m *Manager) ResetWorld() *Manager {
	if m.isResetting {
		m.logger.Warn(context.Background(), "world reset already in progress")
		return m
	}

	m.isResetting = true
	defer func() { m.isResetting = false }()

	m.world = NewWorld(DefaultGravity)
	m.wireContacts()
	m.logger.Info(context.Background(), "physics world reset")
	return m
}

// RemoveBody removes a body from the world. Safe no-op if the world is not
// initialized.
func (m *Manager) RemoveBody(b *Body) {
	if m.world == nil {
		return
	}
	m.world.RemoveBody(b)
}

// AddBody inserts a body into the world. Safe no-op if the world is not
// initialized; the skip is logged because losing a body silently is a
// construction-order bug worth seeing.
func (m *Manager) AddBody(b *Body) {
	if m.world == nil {
		m.logger.Warn(context.Background(), "body add skipped: world not initialized",
			"body_type", b.UserData.Type,
		)
		return
	}
	m.world.AddBody(b)
}
