package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benchwise/teamforge/internal/adapters/http/api"
	app "github.com/benchwise/teamforge/internal/app"
	"github.com/benchwise/teamforge/internal/auth"
	"github.com/benchwise/teamforge/internal/config"
	"github.com/benchwise/teamforge/internal/domain/model"
	"github.com/benchwise/teamforge/internal/fixture"
	"github.com/benchwise/teamforge/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithTopSuggestions(cfg.TopSuggestions),
		app.WithSlotMinScore(cfg.SlotMinScore),
		app.WithSlotEffortDays(cfg.SlotEffortDays),
		app.WithBuildLatencyRange(
			time.Duration(cfg.BuildLatencyMinMS)*time.Millisecond,
			time.Duration(cfg.BuildLatencyMaxMS)*time.Millisecond,
		),
		app.WithConfidenceThresholds(cfg.ConfidenceHigh, cfg.ConfidenceMedium),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// The demo dataset gives every environment the same pool, opportunity
	// book and starter proposal.
	gen := fixture.NewGenerator(fixture.WithSeed(cfg.Seed), fixture.WithPoolSize(cfg.PoolSize))
	seed := []model.Proposal{gen.StarterProposal()}
	if err := svc.Seed(ctx, gen.Resources(), gen.Opportunities(), seed); err != nil {
		log.Error(ctx, "failed to seed demo data", logger.Error(err))
		return
	}

	go startServiceMetricsUpdater(ctx, svc)

	authService := auth.NewService(cfg.AuthSecret,
		auth.WithSessionTTL(time.Duration(cfg.SessionTTLMinutes)*time.Minute),
	)
	apiServer := api.NewServer(svc, authService)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           apiServer.Handler(),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startServiceMetricsUpdater refreshes gauge metrics from service stats on
// an interval. GetStats itself pushes the gauges.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats(ctx)
		}
	}
}
