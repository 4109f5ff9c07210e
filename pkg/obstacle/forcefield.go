// pkg/obstacle/forcefield.go
package obstacle

import (
	"math"

	"github.com/dock108/mini-golf-break-sub004/pkg/physics"
)

// Force field output patterns.
const (
	PatternConstant = "constant"
	PatternPulsing  = "pulsing"
	PatternWave     = "wave"
)

// ForceField shoves a ball entering its volume along a fixed direction, once
// per crossing. The full magnitude lands on contact; fields do not keep
// pushing while the ball is inside. The pulsing pattern oscillates field
// strength over time; the wave pattern additionally phases the strength
// across the field's horizontal extent.
type ForceField struct {
	baseObstacle

	direction physics.Vector3
	magnitude float64
	pattern   string
	frequency float64
	size      physics.Vector3

	elapsed float64
}

// NewForceField builds a force field from config. Pattern defaults to
// constant, frequency to 1 Hz, size to a 2x1x2 volume.
func NewForceField(cfg Config) *ForceField {
	pattern := cfg.Config.Pattern
	if pattern == "" {
		pattern = PatternConstant
	}
	frequency := cfg.Config.Frequency
	if frequency <= 0 {
		frequency = 1
	}
	size := physics.Vector3{X: 2, Y: 1, Z: 2}
	if cfg.Config.Size != nil {
		size = cfg.Config.Size.Vector3()
	}
	return &ForceField{
		baseObstacle: newBase(TypeForceField, cfg),
		direction:    cfg.Config.ForceDirection.Vector3().Normalize(),
		magnitude:    cfg.Config.ForceMagnitude,
		pattern:      pattern,
		frequency:    frequency,
		size:         size,
	}
}

func (f *ForceField) Init(ctx *Context) error {
	body := &physics.Body{
		Shape:    physics.NewBox(f.size.X/2, f.size.Y/2, f.size.Z/2),
		Position: f.position,
		Trigger:  true,
	}
	f.attach(ctx, body, f)
	return nil
}

// Update only advances the pattern clock; the push itself happens on
// contact.
func (f *ForceField) Update(dt float64) {
	f.elapsed += dt
}

// patternScale returns the instantaneous strength multiplier at a position.
func (f *ForceField) patternScale(at physics.Vector3) float64 {
	switch f.pattern {
	case PatternPulsing:
		return 0.5 * (1 + math.Sin(2*math.Pi*f.frequency*f.elapsed))
	case PatternWave:
		phase := 2 * (at.X + at.Z)
		s := math.Sin(2*math.Pi*f.frequency*f.elapsed + phase)
		return 0.5 * (1 + s)
	default:
		return 1
	}
}

func (f *ForceField) OnBallContact(ball *physics.Body) {
	if !isBall(ball) || !f.Active() {
		return
	}
	strength := f.magnitude * f.patternScale(ball.Position)
	ball.Velocity = ball.Velocity.Add(f.direction.Scale(strength))
	f.publishActivation(ball, map[string]interface{}{
		"effect":   "field_push",
		"pattern":  f.pattern,
		"strength": strength,
	})
}

func (f *ForceField) OnBallContactEnd(*physics.Body) {}
