// pkg/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dock108/mini-golf-break-sub004/pkg/course"
	"github.com/dock108/mini-golf-break-sub004/pkg/obstacle"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.json")
	if err := SaveConfig(DefaultConfig(), path); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CourseName != "Backyard Classic" {
		t.Errorf("CourseName = %q", cfg.CourseName)
	}
	if len(cfg.Holes) != 3 {
		t.Errorf("holes = %d, want 3", len(cfg.Holes))
	}
	if cfg.Holes[2].Obstacles[1].Config.ExitPosition == nil {
		t.Error("teleporter exit position lost in round trip")
	}
}

func TestLoadConfig_MissingFile_Error(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("LoadConfig() accepted a missing file")
	}
}

func TestLoadConfig_MalformedJSON_Error(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() accepted malformed JSON")
	}
}

func TestValidate_RejectsBadConfigs(t *testing.T) {
	base := func() *GameConfig { return DefaultConfig() }

	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"no holes", func(c *GameConfig) { c.Holes = nil }},
		{"gap in indices", func(c *GameConfig) { c.Holes[1].Index = 5 }},
		{"zero par", func(c *GameConfig) { c.Holes[0].Par = 0 }},
		{"negative width", func(c *GameConfig) { c.Holes[0].CourseWidth = -1 }},
		{"bad hazard kind", func(c *GameConfig) {
			c.Holes[0].Hazards = []course.HazardConfig{{Kind: "lava"}}
		}},
		{"bad obstacle", func(c *GameConfig) {
			c.Holes[0].Obstacles = append(c.Holes[0].Obstacles, obstacle.Config{
				Type: obstacle.TypeGravityWell, ID: "broken",
			})
		}},
		{"port out of range", func(c *GameConfig) { c.Network.ServerPort = 99999 }},
		{"update rate out of range", func(c *GameConfig) { c.Network.UpdateRate = 500 }},
		{"angle out of range", func(c *GameConfig) { c.Entry.LipOutAngleThreshold = 200 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() accepted an invalid config")
			}
		})
	}
}

func TestApplyEnvironmentOverrides(t *testing.T) {
	t.Setenv("MINIGOLF_SERVER_PORT", "9090")
	t.Setenv("MINIGOLF_UPDATE_RATE", "30")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnvironmentOverrides(); err != nil {
		t.Fatalf("ApplyEnvironmentOverrides() error = %v", err)
	}

	if cfg.Network.ServerPort != 9090 {
		t.Errorf("ServerPort = %d, want 9090", cfg.Network.ServerPort)
	}
	if cfg.Network.UpdateRate != 30 {
		t.Errorf("UpdateRate = %d, want 30", cfg.Network.UpdateRate)
	}
}

func TestApplyEnvironmentOverrides_BadValue_Error(t *testing.T) {
	t.Setenv("MINIGOLF_SERVER_PORT", "not-a-port")

	if err := DefaultConfig().ApplyEnvironmentOverrides(); err == nil {
		t.Error("ApplyEnvironmentOverrides() accepted a non-numeric port")
	}
}
