package bootstrap

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	infrahttp "github.com/jonesrussell/north-cloud/social-planner/infrastructure/http"
	infralogger "github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/internal/analyzer"
	"github.com/jonesrussell/north-cloud/social-planner/internal/archive"
	"github.com/jonesrussell/north-cloud/social-planner/internal/classifier"
	"github.com/jonesrussell/north-cloud/social-planner/internal/config"
	"github.com/jonesrussell/north-cloud/social-planner/internal/database"
	"github.com/jonesrussell/north-cloud/social-planner/internal/facebook"
	"github.com/jonesrussell/north-cloud/social-planner/internal/generator"
	"github.com/jonesrussell/north-cloud/social-planner/internal/news"
	"github.com/jonesrussell/north-cloud/social-planner/internal/service"
	"github.com/jonesrussell/north-cloud/social-planner/internal/telemetry"
)

// NewAnalyzer builds the website analyzer.
func NewAnalyzer(cfg *config.Config, log infralogger.Logger, tp *telemetry.Provider) *analyzer.Analyzer {
	return analyzer.New(analyzer.NewCollyFetcher(cfg.Analyzer), classifier.New(log), log, tp)
}

// NewNewsService builds the news service; redis may be nil.
func NewNewsService(cfg *config.Config, redis *goredis.Client, log infralogger.Logger, tp *telemetry.Provider) *news.Service {
	client := infrahttp.NewClient(infrahttp.ClientConfig{
		Timeout:   cfg.News.Timeout,
		UserAgent: cfg.Analyzer.UserAgent,
	})
	var cache news.Cache
	if redis != nil {
		cache = news.NewRedisCache(redis)
	}
	return news.NewService(cfg.News, news.NewHTTPFetcher(client), cache, log, tp.MetricsOrNil())
}

// Components are the collaborators of the planner.
type Components struct {
	Store     *database.Store
	News      *news.Service
	Archive   archive.Archive
	Facebook  facebook.Client
	Telemetry *telemetry.Provider
}

// NewPlanner assembles the planner service.
func NewPlanner(cfg *config.Config, c Components, log infralogger.Logger) (*service.Planner, error) {
	if c.Facebook == nil {
		fb, err := facebook.New(cfg.Facebook, log)
		if err != nil {
			return nil, fmt.Errorf("facebook client: %w", err)
		}
		c.Facebook = fb
	}
	log.Info("Facebook client ready", infralogger.String("mode", c.Facebook.Mode()))

	return service.New(service.Deps{
		Profiles:    c.Store.Profiles,
		Posts:       c.Store.Posts,
		Schedules:   c.Store.Schedules,
		Connections: c.Store.Connections,
		Stats:       c.Store.Analytics,
		Cleaner:     c.Store,
		Analyzer:    NewAnalyzer(cfg, log, c.Telemetry),
		News:        c.News,
		Generator:   generator.New(nil, log, c.Telemetry),
		Facebook:    c.Facebook,
		Archive:     c.Archive,
		Content:     cfg.Content,
		Log:         log,
		Telemetry:   c.Telemetry,
	}), nil
}
