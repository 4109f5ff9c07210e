// pkg/health/health.go
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/dock108/mini-golf-break-sub004/pkg/logging"
)

// Check is one named readiness probe.
type Check interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckFunc adapts a function to the Check interface.
type CheckFunc struct {
	CheckName string
	Fn        func(ctx context.Context) error
}

func (c CheckFunc) Name() string                    { return c.CheckName }
func (c CheckFunc) Check(ctx context.Context) error { return c.Fn(ctx) }

// Checker aggregates readiness checks and serves the standard probe
// endpoints.
type Checker struct {
	logger *logging.Logger

	mu     sync.RWMutex
	checks []Check
}

// NewChecker creates an empty checker.
func NewChecker(logger *logging.Logger) *Checker {
	return &Checker{logger: logging.OrDefault(logger)}
}

// Register adds a readiness check.
func (c *Checker) Register(check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks = append(c.checks, check)
}

// LivenessHandler reports process liveness. It succeeds as long as the
// process can serve HTTP at all.
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
	}
}

// ReadinessHandler runs every registered check and reports 503 with the
// failing check names when any fails.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.mu.RLock()
		checks := make([]Check, len(c.checks))
		copy(checks, c.checks)
		c.mu.RUnlock()

		failures := map[string]string{}
		for _, check := range checks {
			if err := check.Check(r.Context()); err != nil {
				failures[check.Name()] = err.Error()
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if len(failures) > 0 {
			c.logger.Warn(r.Context(), "readiness check failed",
				"failing_checks", len(failures),
			)
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":   "not_ready",
				"failures": failures,
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	}
}

// NewPhysicsReadyCheck fails until the physics world has been initialized.
func NewPhysicsReadyCheck(ready func() bool) Check {
	return CheckFunc{
		CheckName: "physics",
		Fn: func(context.Context) error {
			if !ready() {
				return fmt.Errorf("physics world not initialized")
			}
			return nil
		},
	}
}

// NewGameLoopCheck fails when the game loop has not ticked within maxAge.
// A wedged loop keeps serving HTTP but stops advancing the simulation; this
// is the probe that catches it.
func NewGameLoopCheck(lastTick func() time.Time, maxAge time.Duration) Check {
	return CheckFunc{
		CheckName: "game_loop",
		Fn: func(context.Context) error {
			last := lastTick()
			if last.IsZero() {
				return fmt.Errorf("game loop has not started")
			}
			if age := time.Since(last); age > maxAge {
				return fmt.Errorf("game loop stalled for %s", age)
			}
			return nil
		},
	}
}
