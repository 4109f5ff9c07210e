// pkg/obstacle/registry.go
package obstacle

import "fmt"

// Constructor builds an uninitialized obstacle from its validated config.
type Constructor func(cfg Config) Obstacle

// Registry maps obstacle type names to constructors. Registering a type that
// already exists replaces it; the last registration wins, which lets callers
// override a built-in variant.
type Registry struct {
	ctors map[string]Constructor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// NewDefaultRegistry creates a registry with all built-in obstacle types.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TypeTeleporter, func(cfg Config) Obstacle { return NewTeleporterPad(cfg) })
	r.Register(TypeSpeedBoost, func(cfg Config) Obstacle { return NewSpeedBoostStrip(cfg) })
	r.Register(TypeMovingPlatform, func(cfg Config) Obstacle { return NewMovingPlatform(cfg) })
	r.Register(TypeRotatingBarrier, func(cfg Config) Obstacle { return NewRotatingBarrier(cfg) })
	r.Register(TypeGravityWell, func(cfg Config) Obstacle { return NewGravityWell(cfg) })
	r.Register(TypeForceField, func(cfg Config) Obstacle { return NewForceField(cfg) })
	return r
}

// Register adds or replaces the constructor for a type name.
func (r *Registry) Register(typ string, ctor Constructor) {
	r.ctors[typ] = ctor
}

// Known reports whether a type name has a registered constructor.
func (r *Registry) Known(typ string) bool {
	_, ok := r.ctors[typ]
	return ok
}

// Create validates the config and constructs the obstacle. The obstacle is
// not attached to any world until Init is called on it.
func (r *Registry) Create(cfg Config) (Obstacle, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	ctor, ok := r.ctors[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("unknown obstacle type %q", cfg.Type)
	}
	return ctor(cfg), nil
}

// ValidateConfig checks the per-type required fields. Defaults are filled in
// by the constructors; validation only rejects configs no constructor could
// make sense of.
func ValidateConfig(cfg Config) error {
	if cfg.ID == "" {
		return fmt.Errorf("obstacle config missing id")
	}

	switch cfg.Type {
	case TypeTeleporter:
		if cfg.Config.ExitPosition == nil {
			return fmt.Errorf("teleporter %q: exitPosition is required", cfg.ID)
		}
		if cfg.Config.Cooldown < 0 {
			return fmt.Errorf("teleporter %q: cooldown must not be negative", cfg.ID)
		}

	case TypeSpeedBoost:
		if cfg.Config.BoostDirection == nil {
			return fmt.Errorf("speed boost %q: boostDirection is required", cfg.ID)
		}
		if cfg.Config.BoostDirection.Vector3().IsZero() {
			return fmt.Errorf("speed boost %q: boostDirection must not be zero", cfg.ID)
		}
		if cfg.Config.BoostMagnitude <= 0 {
			return fmt.Errorf("speed boost %q: boostMagnitude must be positive", cfg.ID)
		}

	case TypeMovingPlatform:
		if len(cfg.Config.Waypoints) < 2 {
			return fmt.Errorf("moving platform %q: at least 2 waypoints required, got %d",
				cfg.ID, len(cfg.Config.Waypoints))
		}
		if cfg.Config.Speed < 0 {
			return fmt.Errorf("moving platform %q: speed must not be negative", cfg.ID)
		}

	case TypeRotatingBarrier:
		if cfg.Config.RotationSpeed == 0 {
			return fmt.Errorf("rotating barrier %q: rotationSpeed is required", cfg.ID)
		}
		if cfg.Config.ArmLength < 0 {
			return fmt.Errorf("rotating barrier %q: armLength must not be negative", cfg.ID)
		}

	case TypeGravityWell:
		if cfg.Config.Force <= 0 {
			return fmt.Errorf("gravity well %q: force must be positive", cfg.ID)
		}
		if cfg.Config.Radius <= 0 {
			return fmt.Errorf("gravity well %q: radius must be positive", cfg.ID)
		}
		switch cfg.Config.Falloff {
		case "", FalloffLinear, FalloffQuadratic, FalloffExponential:
		default:
			return fmt.Errorf("gravity well %q: unknown falloff %q", cfg.ID, cfg.Config.Falloff)
		}

	case TypeForceField:
		if cfg.Config.ForceDirection == nil {
			return fmt.Errorf("force field %q: forceDirection is required", cfg.ID)
		}
		if cfg.Config.ForceDirection.Vector3().IsZero() {
			return fmt.Errorf("force field %q: forceDirection must not be zero", cfg.ID)
		}
		if cfg.Config.ForceMagnitude <= 0 {
			return fmt.Errorf("force field %q: forceMagnitude must be positive", cfg.ID)
		}
		switch cfg.Config.Pattern {
		case "", PatternConstant, PatternPulsing, PatternWave:
		default:
			return fmt.Errorf("force field %q: unknown pattern %q", cfg.ID, cfg.Config.Pattern)
		}

	default:
		return fmt.Errorf("obstacle %q: unknown type %q", cfg.ID, cfg.Type)
	}

	return nil
}
