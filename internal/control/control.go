// Package control wires the application together and manages its lifecycle.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jacolabs/eventflow/internal/assess"
	"github.com/jacolabs/eventflow/internal/core/config"
	"github.com/jacolabs/eventflow/internal/core/domain"
	"github.com/jacolabs/eventflow/internal/core/worker"
	"github.com/jacolabs/eventflow/internal/health"
	"github.com/jacolabs/eventflow/internal/infra/cache"
	"github.com/jacolabs/eventflow/internal/infra/connectivity"
	"github.com/jacolabs/eventflow/internal/infra/parser"
	redisclient "github.com/jacolabs/eventflow/internal/infra/redis"
	"github.com/jacolabs/eventflow/internal/launch"
	"github.com/jacolabs/eventflow/internal/recovery"
	"github.com/jacolabs/eventflow/internal/synthesize"
)

// App is the assembled service: orchestrator, dispatcher, replay worker, and
// health surface.
type App struct {
	cfg          *config.AppConfig
	orchestrator *recovery.Orchestrator
	dispatcher   *launch.Dispatcher
	replayWorker *worker.ReplayWorker
	healthServer *health.Server
	redisClient  *redisclient.Client
	cancelBg     context.CancelFunc
	log          *slog.Logger
}

// NewApp creates an App with all dependencies initialized. The request cache
// is in-memory unless a Redis URL is configured.
func NewApp(cfg *config.AppConfig) (*App, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	probe := connectivity.NewDialProbe(cfg.Parser.URL, 3*time.Second)
	maxAge := time.Duration(cfg.Recovery.CacheExpirationHours) * time.Hour

	var requestCache cache.RequestCache
	var redisClient *redisclient.Client
	if cfg.Redis.URL != "" {
		var err error
		redisClient, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("Failed to connect to Redis, using in-memory queue", "error", err)
		} else {
			requestCache = cache.NewRedisCache(redisClient, cfg.Recovery.MaxCachedRequests, maxAge)
			slog.Info("Using Redis-backed request cache")
		}
	}
	if requestCache == nil {
		requestCache = cache.NewMemoryCache(cfg.Recovery.MaxCachedRequests, maxAge)
		slog.Info("Using in-memory request cache")
	}

	parserClient := parser.NewClient(
		cfg.Parser.URL,
		cfg.Parser.Timezone,
		cfg.Parser.Locale,
		time.Duration(cfg.Parser.TimeoutMs)*time.Millisecond,
	)

	synth := synthesize.New(cfg.Parser.Timezone)
	assessor := assess.New()

	orchestrator := recovery.NewOrchestrator(
		parserClient,
		requestCache,
		synth,
		assessor,
		probe,
		cfg.Recovery,
		cfg.Parser.Timezone,
		cfg.Parser.Locale,
	)

	dispatcher := launch.NewDefaultDispatcher(cfg.Launch)

	replayWorker := worker.NewReplayWorker(
		requestCache,
		orchestrator,
		probe,
		time.Duration(cfg.Recovery.ReplayIntervalSec)*time.Second,
	)

	monitor := health.NewMonitor(orchestrator.Stats(), requestCache, probe)
	healthServer := health.NewServer(monitor, cfg.Server.Port)

	return &App{
		cfg:          cfg,
		orchestrator: orchestrator,
		dispatcher:   dispatcher,
		replayWorker: replayWorker,
		healthServer: healthServer,
		redisClient:  redisClient,
		log:          slog.Default(),
	}, nil
}

// Orchestrator exposes the request path for callers (CLI, tests).
func (a *App) Orchestrator() *recovery.Orchestrator {
	return a.orchestrator
}

// Dispatcher exposes the launch path for callers.
func (a *App) Dispatcher() *launch.Dispatcher {
	return a.dispatcher
}

// Process runs the full flow for one text: parse with recovery, then, when
// the result is trusted, launch the calendar.
func (a *App) Process(ctx context.Context, text string) (*domain.Outcome, *domain.LaunchResult) {
	outcome := a.orchestrator.Process(ctx, text)
	if !outcome.Success || outcome.Result == nil {
		return outcome, nil
	}

	launchResult := a.dispatcher.Launch(ctx, outcome.Result)
	if !launchResult.Success {
		recovered := a.orchestrator.RecoverLaunchFailure(outcome.Result, launchResult.ErrorMessage)
		return recovered, &launchResult
	}
	return outcome, &launchResult
}

// Start launches the background replay worker and the health server.
func (a *App) Start(ctx context.Context) error {
	bgCtx, cancel := context.WithCancel(ctx)
	a.cancelBg = cancel

	go func() {
		if err := a.healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Health server failed", "error", err)
		}
	}()

	go a.replayWorker.Start(bgCtx)

	a.log.Info("eventflow started", "port", a.cfg.Server.Port, "parser", a.cfg.Parser.URL)
	return nil
}

// Stop shuts the app down. Queued requests stay in the cache for the next
// run.
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("Stopping eventflow...")

	if a.cancelBg != nil {
		a.cancelBg()
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Warn("Failed to close Redis", "error", err)
		}
	}

	if err := a.healthServer.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop health server: %w", err)
	}
	return nil
}
