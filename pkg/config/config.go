// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/dock108/mini-golf-break-sub004/pkg/course"
	"github.com/dock108/mini-golf-break-sub004/pkg/obstacle"
)

// EntryConfig tunes cup entry behavior. Zero values fall back to defaults
// when the game is assembled.
type EntryConfig struct {
	MaxSafeSpeed         float64 `json:"maxSafeSpeed"`
	LipOutSpeedThreshold float64 `json:"lipOutSpeedThreshold"`
	LipOutAngleThreshold float64 `json:"lipOutAngleThreshold"`
}

// NetworkConfig configures the state streaming server.
type NetworkConfig struct {
	ServerPort int `json:"serverPort"`
	UpdateRate int `json:"updateRate"` // state broadcasts per second
}

// GameConfig is the full game configuration: the course plus tuning.
type GameConfig struct {
	CourseName string              `json:"courseName"`
	Holes      []course.HoleConfig `json:"holes"`
	Entry      EntryConfig         `json:"entry"`
	Network    NetworkConfig       `json:"network"`
}

// LoadConfig reads and validates a configuration file.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveConfig writes the configuration as indented JSON.
func SaveConfig(cfg *GameConfig, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks structural invariants: at least one hole, hole indices
// contiguous from zero, and every hole internally valid.
func (c *GameConfig) Validate() error {
	if len(c.Holes) == 0 {
		return fmt.Errorf("course has no holes")
	}
	for i, hole := range c.Holes {
		if hole.Index != i {
			return fmt.Errorf("hole at position %d has index %d; indices must be contiguous from 0", i, hole.Index)
		}
		if err := hole.Validate(); err != nil {
			return err
		}
	}

	if c.Network.ServerPort < 0 || c.Network.ServerPort > 65535 {
		return fmt.Errorf("invalid server port %d", c.Network.ServerPort)
	}
	if c.Network.UpdateRate < 0 || c.Network.UpdateRate > 240 {
		return fmt.Errorf("invalid update rate %d, must be 0-240", c.Network.UpdateRate)
	}

	if c.Entry.MaxSafeSpeed < 0 || c.Entry.LipOutSpeedThreshold < 0 {
		return fmt.Errorf("entry speed thresholds must not be negative")
	}
	if c.Entry.LipOutAngleThreshold < 0 || c.Entry.LipOutAngleThreshold > 180 {
		return fmt.Errorf("lip-out angle threshold %g out of range 0-180", c.Entry.LipOutAngleThreshold)
	}
	return nil
}

// ApplyEnvironmentOverrides lets deployment override network settings
// without editing the course file.
func (c *GameConfig) ApplyEnvironmentOverrides() error {
	if v := os.Getenv("MINIGOLF_SERVER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing MINIGOLF_SERVER_PORT: %w", err)
		}
		c.Network.ServerPort = port
	}
	if v := os.Getenv("MINIGOLF_UPDATE_RATE"); v != "" {
		rate, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing MINIGOLF_UPDATE_RATE: %w", err)
		}
		c.Network.UpdateRate = rate
	}
	return c.Validate()
}

// DefaultConfig returns a playable three-hole course that exercises every
// obstacle type.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		CourseName: "Backyard Classic",
		Entry: EntryConfig{
			MaxSafeSpeed:         3.0,
			LipOutSpeedThreshold: 5.0,
			LipOutAngleThreshold: 120,
		},
		Network: NetworkConfig{
			ServerPort: 8080,
			UpdateRate: 20,
		},
		Holes: []course.HoleConfig{
			{
				Index: 0, Par: 2,
				StartPosition: obstacle.Vec3{Y: 0.2, Z: 5},
				HolePosition:  obstacle.Vec3{Z: -5},
				CourseWidth:   4, CourseLength: 12,
				Bumpers: []course.BumperConfig{
					{Position: obstacle.Vec3{X: 2.2, Y: 0.3}, Size: obstacle.Vec3{X: 0.4, Y: 0.6, Z: 12}},
					{Position: obstacle.Vec3{X: -2.2, Y: 0.3}, Size: obstacle.Vec3{X: 0.4, Y: 0.6, Z: 12}},
				},
				Obstacles: []obstacle.Config{
					{
						Type: obstacle.TypeSpeedBoost, ID: "boost-0",
						Position: obstacle.Vec3{Y: 0.1, Z: 2},
						Config: obstacle.Params{
							BoostDirection: &obstacle.Vec3{Z: -1},
							BoostMagnitude: 4,
						},
					},
					{
						Type: obstacle.TypeRotatingBarrier, ID: "barrier-0",
						Position: obstacle.Vec3{Y: 0.3, Z: -1},
						Config:   obstacle.Params{RotationSpeed: 1.5, ArmLength: 1.2},
					},
				},
			},
			{
				Index: 1, Par: 3,
				StartPosition: obstacle.Vec3{Y: 0.2, Z: 6},
				HolePosition:  obstacle.Vec3{X: 1, Z: -6},
				CourseWidth:   6, CourseLength: 14,
				Hazards: []course.HazardConfig{
					{
						Kind:     course.HazardSand,
						Position: obstacle.Vec3{X: -1, Z: 0},
						Size:     obstacle.Vec3{X: 2, Y: 0.4, Z: 2},
					},
					{
						Kind:     course.HazardWater,
						Position: obstacle.Vec3{X: 2, Z: -3},
						Size:     obstacle.Vec3{X: 2, Y: 0.4, Z: 2},
					},
				},
				Obstacles: []obstacle.Config{
					{
						Type: obstacle.TypeGravityWell, ID: "well-1",
						Position: obstacle.Vec3{Z: 2},
						Config: obstacle.Params{
							Force: 6, Radius: 2.5,
							Falloff: obstacle.FalloffQuadratic,
						},
					},
					{
						Type: obstacle.TypeForceField, ID: "field-1",
						Position: obstacle.Vec3{X: -1, Z: -4},
						Config: obstacle.Params{
							ForceDirection: &obstacle.Vec3{X: 1},
							ForceMagnitude: 3,
							Pattern:        obstacle.PatternPulsing,
							Frequency:      0.5,
						},
					},
				},
			},
			{
				Index: 2, Par: 4,
				StartPosition: obstacle.Vec3{Y: 0.2, Z: 7},
				HolePosition:  obstacle.Vec3{Z: -7},
				CourseWidth:   5, CourseLength: 16,
				Obstacles: []obstacle.Config{
					{
						Type: obstacle.TypeMovingPlatform, ID: "platform-2",
						Position: obstacle.Vec3{Z: 0},
						Config: obstacle.Params{
							Waypoints: []obstacle.Vec3{
								{X: -1.5, Y: 0.15, Z: 0},
								{X: 1.5, Y: 0.15, Z: 0},
							},
							Speed:     1.5,
							PauseTime: 0.5,
							Easing:    obstacle.EasingSmooth,
						},
					},
					{
						Type: obstacle.TypeTeleporter, ID: "teleport-2",
						Position: obstacle.Vec3{X: 1, Z: 3},
						Config: obstacle.Params{
							ExitPosition: &obstacle.Vec3{X: -1, Z: -4},
							Cooldown:     1.5,
						},
					},
				},
			},
		},
	}
}
