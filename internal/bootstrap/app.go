package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	infragin "github.com/jonesrussell/north-cloud/social-planner/infrastructure/gin"
	infralogger "github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/monitoring"
	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/profiling"
	"github.com/jonesrussell/north-cloud/social-planner/internal/api"
	"github.com/jonesrussell/north-cloud/social-planner/internal/config"
	"github.com/jonesrussell/north-cloud/social-planner/internal/database"
	"github.com/jonesrussell/north-cloud/social-planner/internal/jobs"
	"github.com/jonesrussell/north-cloud/social-planner/internal/service"
	"github.com/jonesrussell/north-cloud/social-planner/internal/telemetry"
)

const (
	jobsStopTimeout = 30 * time.Second
	// memoryGrowthThreshold flags heap or goroutine growth beyond 3x the
	// post-startup baseline.
	memoryGrowthThreshold = 3.0
)

// App is a fully wired service.
type App struct {
	Config    *config.Config
	Log       infralogger.Logger
	DB        *sqlx.DB
	Redis     *goredis.Client
	Planner   *service.Planner
	Jobs      *jobs.Scheduler
	Telemetry *telemetry.Provider
	Memory    *monitoring.MemoryMonitor
	profiler  *profiling.Profiler
}

// NewApp connects every dependency. Close releases them.
func NewApp(ctx context.Context, cfg *config.Config, log infralogger.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log, Telemetry: telemetry.NewProvider()}

	profiler, err := profiling.Start(cfg.Profiling, cfg.Service.Name, cfg.Service.Version, log)
	if err != nil {
		log.Warn("Continuous profiling disabled", infralogger.Error(err))
	}
	app.profiler = profiler

	if app.DB, err = SetupDatabase(ctx, cfg, log); err != nil {
		app.Close()
		return nil, err
	}
	store := database.NewStore(app.DB)
	app.Redis = SetupRedis(ctx, cfg, log)
	newsService := NewNewsService(cfg, app.Redis, log, app.Telemetry)

	app.Planner, err = NewPlanner(cfg, Components{
		Store:     store,
		News:      newsService,
		Archive:   SetupArchive(ctx, cfg, log),
		Telemetry: app.Telemetry,
	}, log)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Jobs = jobs.New(jobs.Config{
		CleanupSchedule: cfg.Retention.CleanupSchedule,
		RetentionDays:   cfg.Retention.Days,
		NewsSchedule:    cfg.News.RefreshSchedule,
	}, app.Planner, newsService, log)

	app.Memory = monitoring.NewMemoryMonitor(memoryGrowthThreshold)
	app.Memory.EstablishBaseline()

	return app, nil
}

// Server builds the HTTP server with database, Redis and memory health checks.
func (a *App) Server() *infragin.Server {
	checks := map[string]infragin.HealthChecker{
		"database": infragin.PingChecker(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), database.DefaultPingTimeout)
			defer cancel()
			return a.DB.PingContext(ctx)
		}),
	}
	if a.Memory != nil {
		checks["memory"] = a.Memory.Checker()
	}
	if a.Redis != nil {
		checks["redis"] = infragin.PingChecker(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), database.DefaultPingTimeout)
			defer cancel()
			return a.Redis.Ping(ctx).Err()
		})
	}

	handler := api.NewHandler(a.Planner, a.Log)
	return api.NewServer(handler, a.Config, api.ServerOptions{Telemetry: a.Telemetry, Checks: checks}, a.Log)
}

// Serve runs the jobs and the HTTP server until ctx is cancelled or a
// shutdown signal arrives.
func (a *App) Serve(ctx context.Context) error {
	if err := a.Jobs.Start(ctx); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), jobsStopTimeout)
		defer cancel()
		if err := a.Jobs.Stop(stopCtx); err != nil {
			a.Log.Warn("Jobs did not stop cleanly", infralogger.Error(err))
		}
	}()

	if err := a.Server().RunWithGracefulShutdown(ctx); err != nil {
		a.Log.Error("Server error", infralogger.Error(err))
		return err
	}
	a.Log.Info("Server exited")
	return nil
}

// Close releases connections and stops profiling.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Log.Warn("Failed to close redis", infralogger.Error(err))
		}
	}
	if err := database.Close(a.DB); err != nil {
		a.Log.Error("Failed to close database", infralogger.Error(err))
	}
	if err := a.profiler.Stop(); err != nil {
		a.Log.Warn("Failed to stop profiler", infralogger.Error(err))
	}
}
