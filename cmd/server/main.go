// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/dock108/mini-golf-break-sub004/pkg/config"
	"github.com/dock108/mini-golf-break-sub004/pkg/engine"
	"github.com/dock108/mini-golf-break-sub004/pkg/health"
	"github.com/dock108/mini-golf-break-sub004/pkg/logging"
	"github.com/dock108/mini-golf-break-sub004/pkg/network"
)

const frameRate = 60

func main() {
	configPath := flag.String("config", "", "path to course configuration file (empty: built-in course)")
	writeDefault := flag.String("write-default-config", "", "write the default configuration to this path and exit")
	flag.Parse()

	logger := logging.NewLogger()
	ctx := context.Background()

	if *writeDefault != "" {
		if err := config.SaveConfig(config.DefaultConfig(), *writeDefault); err != nil {
			logger.Error(ctx, "failed to write default config", err)
			os.Exit(1)
		}
		logger.Info(ctx, "default config written", "path", *writeDefault)
		return
	}

	cfg := config.DefaultConfig()
	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "failed to load config", err, "path", *configPath)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnvironmentOverrides(); err != nil {
		logger.Error(ctx, "invalid environment override", err)
		os.Exit(1)
	}

	game := engine.NewGame(logger, cfg.Holes, entryThresholds(cfg))
	if !game.Start() {
		logger.Error(ctx, "failed to start game", fmt.Errorf("first hole did not initialize"))
		os.Exit(1)
	}

	server := network.NewGameServer(logger)

	var lastTickNanos atomic.Int64
	checker := health.NewChecker(logger)
	checker.Register(health.NewPhysicsReadyCheck(game.Physics().Ready))
	checker.Register(health.NewGameLoopCheck(func() time.Time {
		n := lastTickNanos.Load()
		if n == 0 {
			return time.Time{}
		}
		return time.Unix(0, n)
	}, 2*time.Second))

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", server.HandleWS)
	mux.HandleFunc("/healthz", checker.LivenessHandler())
	mux.HandleFunc("/readyz", checker.ReadinessHandler())

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Network.ServerPort),
		Handler: mux,
	}
	go func() {
		logger.Info(ctx, "listening",
			"addr", httpServer.Addr,
			"course", cfg.CourseName,
			"holes", len(cfg.Holes),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "http server failed", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	updateRate := cfg.Network.UpdateRate
	if updateRate <= 0 {
		updateRate = 20
	}
	frames := time.NewTicker(time.Second / frameRate)
	defer frames.Stop()
	broadcasts := time.NewTicker(time.Second / time.Duration(updateRate))
	defer broadcasts.Stop()

	last := time.Now()
	for {
		select {
		case <-stop:
			logger.Info(ctx, "shutting down")
			server.CloseAll()
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn(ctx, "http shutdown incomplete", "error", err.Error())
			}
			return

		case now := <-frames.C:
			for _, cmd := range server.DrainCommands() {
				if cmd.Type == network.CommandHit {
					game.HitBall(cmd.Direction, cmd.Power)
				}
			}
			game.Update(now.Sub(last).Seconds())
			last = now
			lastTickNanos.Store(now.UnixNano())

		case <-broadcasts.C:
			server.Broadcast(game.GetGameState())
		}
	}
}

// entryThresholds maps config values onto the engine defaults, keeping the
// defaults for any field left at zero.
func entryThresholds(cfg *config.GameConfig) engine.EntryThresholds {
	th := engine.DefaultEntryThresholds()
	if cfg.Entry.MaxSafeSpeed > 0 {
		th.MaxSafeSpeed = cfg.Entry.MaxSafeSpeed
	}
	if cfg.Entry.LipOutSpeedThreshold > 0 {
		th.LipOutSpeedThreshold = cfg.Entry.LipOutSpeedThreshold
	}
	if cfg.Entry.LipOutAngleThreshold > 0 {
		th.LipOutAngleThreshold = cfg.Entry.LipOutAngleThreshold
	}
	return th
}
