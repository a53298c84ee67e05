package bootstrap

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	infraes "github.com/jonesrussell/north-cloud/social-planner/infrastructure/elasticsearch"
	infralogger "github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	infraredis "github.com/jonesrussell/north-cloud/social-planner/infrastructure/redis"
	"github.com/jonesrussell/north-cloud/social-planner/internal/archive"
	"github.com/jonesrussell/north-cloud/social-planner/internal/config"
	"github.com/jonesrussell/north-cloud/social-planner/internal/database"
)

// SetupDatabase connects and applies pending migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, log infralogger.Logger) (*sqlx.DB, error) {
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}
	if err = database.MigrateUp(db, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info("Database ready", infralogger.String("driver", cfg.Database.Driver))
	return db, nil
}

// SetupRedis returns nil when Redis is not configured or unreachable; the
// news service then runs uncached.
func SetupRedis(ctx context.Context, cfg *config.Config, log infralogger.Logger) *goredis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}
	client, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn("Redis not available, news cache disabled", infralogger.Error(err))
		return nil
	}
	log.Info("News cache enabled", infralogger.String("redis_address", cfg.Redis.Address))
	return client
}

// SetupArchive returns a NopArchive when Elasticsearch is not configured or
// unreachable.
func SetupArchive(ctx context.Context, cfg *config.Config, log infralogger.Logger) archive.Archive {
	if cfg.Elasticsearch.URL == "" {
		return archive.NopArchive{}
	}
	client, err := infraes.NewClient(ctx, cfg.Elasticsearch, log)
	if err != nil {
		log.Warn("Elasticsearch not available, archive disabled", infralogger.Error(err))
		return archive.NopArchive{}
	}

	esArchive := archive.NewESArchive(client, cfg.Elasticsearch.Index, log)
	if err = esArchive.EnsureIndex(ctx); err != nil {
		log.Warn("Archive index check failed", infralogger.Error(err))
	}
	return esArchive
}
