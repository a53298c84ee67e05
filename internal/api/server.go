package api

import (
	"github.com/gin-gonic/gin"

	infragin "github.com/jonesrussell/north-cloud/social-planner/infrastructure/gin"
	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/config"
	"github.com/jonesrussell/north-cloud/social-planner/internal/telemetry"
)

const defaultIdleTimeout = infragin.DefaultIdleTimeout

// ServerOptions carries the optional collaborators of NewServer.
type ServerOptions struct {
	Telemetry *telemetry.Provider
	// Checks are reported by GET /health.
	Checks map[string]infragin.HealthChecker
}

// NewServer builds the HTTP server from cfg.
func NewServer(handler *Handler, cfg *config.Config, opts ServerOptions, log logger.Logger) *infragin.Server {
	routeOpts := RouteOptions{JWTSecret: cfg.Auth.JWTSecret}
	if cfg.RateLimit.Enabled {
		routeOpts.RateLimiter = NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Per)
	}

	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithTimeouts(cfg.Service.ReadTimeout, cfg.Service.WriteTimeout, defaultIdleTimeout).
		WithCORSOrigins(cfg.CORS.Origins)

	if opts.Telemetry != nil {
		routeOpts.Metrics = opts.Telemetry.Handler()
		if m := opts.Telemetry.MetricsOrNil(); m != nil && m.HTTP != nil {
			builder = builder.WithMiddleware(m.HTTP.Middleware())
		}
	}
	for name, check := range opts.Checks {
		builder = builder.WithHealthCheck(name, check)
	}

	return builder.
		WithRoutes(func(router *gin.Engine) {
			SetupRoutes(router, handler, routeOpts)
		}).
		Build()
}
