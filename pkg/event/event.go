// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Event types published and consumed by the gameplay core.
const (
	BallHit           Type = "ball_hit"
	BallReset         Type = "ball_reset"
	BallInHole        Type = "ball_in_hole"
	ObstacleActivated Type = "obstacle_activated"
	HazardPenalty     Type = "hazard_penalty"
	HoleStarted       Type = "hole_started"
	HoleCompleted     Type = "hole_completed"
	HoleStateUpdated  Type = "hole_state_updated"
	CourseCompleted   Type = "course_completed"
	GameStarted       Type = "game_started"
	GameEnded         Type = "game_ended"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is the disposer handle returned by Subscribe. Cancel removes
// exactly the handler it was created for; cancelling twice is a no-op.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Dispatch is synchronous:
// Publish returns only after every subscribed handler has run.
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type and returns a
// Subscription whose Cancel removes the handler again.
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

// unsubscribe removes the registration with the given id.
func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs, ok := b.handlers[eventType]
	if !ok {
		return
	}

	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i], regs[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs, ok := b.handlers[event.GetType()]
	handlers := make([]Handler, 0, len(regs))
	for _, r := range regs {
		handlers = append(handlers, r.handler)
	}
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// BallHitEvent is published when the player strikes the ball.
type BallHitEvent struct {
	BaseEvent
	HoleIndex int
	Power     float64
}

// NewBallHitEvent creates a new ball hit event.
func NewBallHitEvent(source interface{}, holeIndex int, power float64) *BallHitEvent {
	return &BallHitEvent{
		BaseEvent: BaseEvent{EventType: BallHit, Source: source},
		HoleIndex: holeIndex,
		Power:     power,
	}
}

// BallInHoleEvent is published once per hole when the ball is sunk.
type BallInHoleEvent struct {
	BaseEvent
	HoleIndex int
}

// NewBallInHoleEvent creates a new ball-in-hole event.
func NewBallInHoleEvent(source interface{}, holeIndex int) *BallInHoleEvent {
	return &BallInHoleEvent{
		BaseEvent: BaseEvent{EventType: BallInHole, Source: source},
		HoleIndex: holeIndex,
	}
}

// BallResetEvent requests the ball be returned to a start position.
type BallResetEvent struct {
	BaseEvent
	Position [3]float64
}

// NewBallResetEvent creates a new ball reset event.
func NewBallResetEvent(source interface{}, position [3]float64) *BallResetEvent {
	return &BallResetEvent{
		BaseEvent: BaseEvent{EventType: BallReset, Source: source},
		Position:  position,
	}
}

// ObstacleActivatedEvent is published when an obstacle applies its effect to
// a ball. Effect carries the effect-specific payload fields.
type ObstacleActivatedEvent struct {
	BaseEvent
	ObstacleID   string
	ObstacleType string
	Ball         interface{}
	Effect       map[string]interface{}
}

// NewObstacleActivatedEvent creates a new obstacle activation event.
func NewObstacleActivatedEvent(source interface{}, obstacleID, obstacleType string, ball interface{}, effect map[string]interface{}) *ObstacleActivatedEvent {
	return &ObstacleActivatedEvent{
		BaseEvent:    BaseEvent{EventType: ObstacleActivated, Source: source},
		ObstacleID:   obstacleID,
		ObstacleType: obstacleType,
		Ball:         ball,
		Effect:       effect,
	}
}

// HazardPenaltyEvent is published when the ball contacts a penalty hazard.
type HazardPenaltyEvent struct {
	BaseEvent
	HoleIndex int
	Kind      string
}

// NewHazardPenaltyEvent creates a new hazard penalty event.
func NewHazardPenaltyEvent(source interface{}, holeIndex int, kind string) *HazardPenaltyEvent {
	return &HazardPenaltyEvent{
		BaseEvent: BaseEvent{EventType: HazardPenalty, Source: source},
		HoleIndex: holeIndex,
		Kind:      kind,
	}
}

// HoleEvent carries hole lifecycle notifications (started / completed).
type HoleEvent struct {
	BaseEvent
	HoleIndex int
}

// NewHoleEvent creates a new hole lifecycle event.
func NewHoleEvent(eventType Type, source interface{}, holeIndex int) *HoleEvent {
	return &HoleEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		HoleIndex: holeIndex,
	}
}

// HoleStateUpdatedEvent is published after every score-state mutation.
// State is the post-update snapshot for the hole.
type HoleStateUpdatedEvent struct {
	BaseEvent
	HoleIndex int
	State     interface{}
}

// NewHoleStateUpdatedEvent creates a new hole-state-updated event.
func NewHoleStateUpdatedEvent(source interface{}, holeIndex int, state interface{}) *HoleStateUpdatedEvent {
	return &HoleStateUpdatedEvent{
		BaseEvent: BaseEvent{EventType: HoleStateUpdated, Source: source},
		HoleIndex: holeIndex,
		State:     state,
	}
}
