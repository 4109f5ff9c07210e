// pkg/course/config.go
package course

import (
	"fmt"

	"github.com/dock108/mini-golf-break-sub004/pkg/obstacle"
	"github.com/dock108/mini-golf-break-sub004/pkg/physics"
)

// Hazard kinds. Water costs a penalty stroke and resets the ball; sand only
// slows it down.
const (
	HazardSand  = "sand"
	HazardWater = "water"
)

// HazardConfig places one hazard volume on a hole.
type HazardConfig struct {
	Kind     string        `json:"kind"`
	Position obstacle.Vec3 `json:"position"`
	Size     obstacle.Vec3 `json:"size"`
}

// BumperConfig places one solid bumper wall on a hole.
type BumperConfig struct {
	Position obstacle.Vec3 `json:"position"`
	Size     obstacle.Vec3 `json:"size"`
}

// HoleConfig is the full description of one hole: geometry, par, hazards and
// obstacles. Holes are indexed from 0 in course order.
type HoleConfig struct {
	Index         int               `json:"index"`
	Par           int               `json:"par"`
	StartPosition obstacle.Vec3     `json:"startPosition"`
	HolePosition  obstacle.Vec3     `json:"holePosition"`
	HoleRadius    float64           `json:"holeRadius,omitempty"`
	CourseWidth   float64           `json:"courseWidth"`
	CourseLength  float64           `json:"courseLength"`
	Hazards       []HazardConfig    `json:"hazards,omitempty"`
	Bumpers       []BumperConfig    `json:"bumpers,omitempty"`
	Obstacles     []obstacle.Config `json:"obstacles,omitempty"`
}

// DefaultHoleRadius is the cup radius used when a hole does not override it.
const DefaultHoleRadius = 0.35

// Start returns the tee position as a simulation vector.
func (c HoleConfig) Start() physics.Vector3 {
	return c.StartPosition.Vector3()
}

// Hole returns the cup center as a simulation vector.
func (c HoleConfig) Hole() physics.Vector3 {
	return c.HolePosition.Vector3()
}

// Radius returns the cup radius, falling back to the default.
func (c HoleConfig) Radius() float64 {
	if c.HoleRadius > 0 {
		return c.HoleRadius
	}
	return DefaultHoleRadius
}

// Validate checks the hole's own fields and every obstacle config on it.
func (c HoleConfig) Validate() error {
	if c.Par < 1 {
		return fmt.Errorf("hole %d: par must be at least 1, got %d", c.Index, c.Par)
	}
	if c.CourseWidth <= 0 || c.CourseLength <= 0 {
		return fmt.Errorf("hole %d: course dimensions must be positive, got %gx%g",
			c.Index, c.CourseWidth, c.CourseLength)
	}
	if c.HoleRadius < 0 {
		return fmt.Errorf("hole %d: holeRadius must not be negative", c.Index)
	}
	for _, h := range c.Hazards {
		if h.Kind != HazardSand && h.Kind != HazardWater {
			return fmt.Errorf("hole %d: unknown hazard kind %q", c.Index, h.Kind)
		}
	}
	for _, ob := range c.Obstacles {
		if err := obstacle.ValidateConfig(ob); err != nil {
			return fmt.Errorf("hole %d: %w", c.Index, err)
		}
	}
	return nil
}
