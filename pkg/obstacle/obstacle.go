// pkg/obstacle/obstacle.go
package obstacle

import (
	"time"

	"github.com/dock108/mini-golf-break-sub004/pkg/event"
	"github.com/dock108/mini-golf-break-sub004/pkg/logging"
	"github.com/dock108/mini-golf-break-sub004/pkg/physics"
	"github.com/dock108/mini-golf-break-sub004/pkg/render"
)

// Obstacle type identifiers as they appear in hole configuration.
const (
	TypeTeleporter      = "teleporter"
	TypeSpeedBoost      = "speedboost"
	TypeMovingPlatform  = "movingplatform"
	TypeRotatingBarrier = "rotatingbarrier"
	TypeGravityWell     = "gravitywell"
	TypeForceField      = "forcefield"
)

// Vec3 is the JSON form of a 3D position in hole configuration.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vector3 converts to the simulation vector type.
func (v Vec3) Vector3() physics.Vector3 {
	return physics.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

// Params is the union of every obstacle type's configuration fields. Each
// type reads only its own fields; Validate checks the ones it requires.
type Params struct {
	// Teleporter
	ExitPosition *Vec3   `json:"exitPosition,omitempty"`
	Cooldown     float64 `json:"cooldown,omitempty"`

	// Speed boost
	BoostDirection *Vec3   `json:"boostDirection,omitempty"`
	BoostMagnitude float64 `json:"boostMagnitude,omitempty"`
	OverrideSpeed  bool    `json:"overrideSpeed,omitempty"`

	// Moving platform
	Waypoints []Vec3  `json:"waypoints,omitempty"`
	Speed     float64 `json:"speed,omitempty"`
	PauseTime float64 `json:"pauseTime,omitempty"`
	Easing    string  `json:"easing,omitempty"`
	Size      *Vec3   `json:"size,omitempty"`

	// Rotating barrier
	RotationSpeed float64 `json:"rotationSpeed,omitempty"`
	ArmLength     float64 `json:"armLength,omitempty"`
	BounceForce   float64 `json:"bounceForce,omitempty"`

	// Gravity well
	Force   float64 `json:"force,omitempty"`
	Radius  float64 `json:"radius,omitempty"`
	Falloff string  `json:"falloff,omitempty"`
	Repel   bool    `json:"repel,omitempty"`

	// Force field
	ForceDirection *Vec3   `json:"forceDirection,omitempty"`
	ForceMagnitude float64 `json:"forceMagnitude,omitempty"`
	Pattern        string  `json:"pattern,omitempty"`
	Frequency      float64 `json:"frequency,omitempty"`
}

// Config is one obstacle entry in a hole's configuration.
type Config struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Position Vec3   `json:"position"`
	Config   Params `json:"config"`
}

// Context carries the shared systems an obstacle needs. Now is injectable so
// cooldown behavior is testable without sleeping.
type Context struct {
	World  *physics.World
	Events *event.Bus
	Logger *logging.Logger
	Scene  *render.Node
	Now    func() time.Time
}

// Obstacle is the lifecycle contract every obstacle variant implements. All
// methods are called from the frame loop only.
type Obstacle interface {
	ID() string
	Type() string

	// Init attaches the obstacle to the world and scene. An obstacle is
	// inert until initialized.
	Init(ctx *Context) error

	// Update advances per-frame behavior (motion, field effects).
	Update(dt float64)

	// OnBallContact fires once when a ball starts touching the obstacle's
	// body; OnBallContactEnd once when it stops.
	OnBallContact(ball *physics.Body)
	OnBallContactEnd(ball *physics.Body)

	// Dispose releases the body and subscriptions. Idempotent.
	Dispose()

	Active() bool
	SetActive(active bool)
	Body() *physics.Body
}

// baseObstacle holds the state shared by every variant.
type baseObstacle struct {
	id       string
	typ      string
	position physics.Vector3

	ctx      *Context
	body     *physics.Body
	active   bool
	disposed bool
	subs     []*event.Subscription
}

func newBase(typ string, cfg Config) baseObstacle {
	return baseObstacle{
		id:       cfg.ID,
		typ:      typ,
		position: cfg.Position.Vector3(),
		active:   true,
	}
}

func (o *baseObstacle) ID() string            { return o.id }
func (o *baseObstacle) Type() string          { return o.typ }
func (o *baseObstacle) Active() bool          { return o.active && !o.disposed }
func (o *baseObstacle) SetActive(active bool) { o.active = active }
func (o *baseObstacle) Body() *physics.Body   { return o.body }

// attach records the context and inserts the body into the world and scene.
func (o *baseObstacle) attach(ctx *Context, body *physics.Body, self Obstacle) {
	o.ctx = ctx
	o.body = body
	if body != nil {
		body.UserData = physics.UserData{Type: "obstacle", Obstacle: self}
		if ctx != nil && ctx.World != nil {
			ctx.World.AddBody(body)
		}
	}
	if ctx != nil && ctx.Scene != nil {
		ctx.Scene.Add(render.NewNode(o.id))
	}
}

// Dispose cancels subscriptions and removes the body. Safe to call more than
// once and safe on an obstacle that was never initialized.
func (o *baseObstacle) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	o.active = false

	for _, sub := range o.subs {
		sub.Cancel()
	}
	o.subs = nil

	if o.ctx != nil {
		if o.ctx.World != nil && o.body != nil {
			o.ctx.World.RemoveBody(o.body)
		}
		if o.ctx.Scene != nil {
			if node := o.ctx.Scene.Child(o.id); node != nil {
				o.ctx.Scene.Remove(node)
			}
		}
	}
}

func (o *baseObstacle) logger() *logging.Logger {
	if o.ctx != nil {
		return logging.OrDefault(o.ctx.Logger)
	}
	return logging.OrDefault(nil)
}

func (o *baseObstacle) now() time.Time {
	if o.ctx != nil && o.ctx.Now != nil {
		return o.ctx.Now()
	}
	return time.Now()
}

// publishActivation emits the activation event carrying the effect payload.
func (o *baseObstacle) publishActivation(ball *physics.Body, effect map[string]interface{}) {
	if o.ctx == nil || o.ctx.Events == nil {
		return
	}
	o.ctx.Events.Publish(event.NewObstacleActivatedEvent(o, o.id, o.typ, ball, effect))
}

// isBall reports whether a contacting body is the player ball.
func isBall(b *physics.Body) bool {
	return b != nil && b.UserData.Type == "ball"
}
