// Package config holds the social-planner service configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	infraconfig "github.com/jonesrussell/north-cloud/social-planner/infrastructure/config"
	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/elasticsearch"
	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/profiling"
	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/redis"
)

const (
	defaultServiceName     = "social-planner"
	defaultServerPort      = 8095
	defaultServerTimeout   = 30 * time.Second
	defaultDatabasePort    = 5432
	defaultSQLitePath      = "data/social-planner.db"
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultRateRequests    = 100
	defaultRatePer         = time.Hour
	defaultFrequency       = 3
	defaultMaxFrequency    = 7
	defaultAnalyzerTimeout = 10 * time.Second
	defaultMaxBodyBytes    = 5 << 20
	defaultUserAgent       = "Mozilla/5.0 (compatible; SocialPlanner/1.0; +https://northcloud.one)"
	defaultNewsCacheTTL    = 6 * time.Hour
	defaultMaxNewsItems    = 10
	defaultGoogleNewsURL   = "https://news.google.com/rss/search"
	defaultNewsRefresh     = "@every 6h"
	defaultFacebookVersion = "v18.0"
	defaultGraphURL        = "https://graph.facebook.com"
	defaultRetentionDays   = 30
	defaultCleanupSchedule = "@daily"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Facebook client modes.
const (
	FacebookModeMock = "mock"
	FacebookModeLive = "live"
)

// Config is the complete service configuration.
type Config struct {
	Service       ServiceConfig        `yaml:"service"`
	Database      DatabaseConfig       `yaml:"database"`
	Redis         redis.Config         `yaml:"redis"`
	Elasticsearch elasticsearch.Config `yaml:"elasticsearch"`
	Logging       logger.Config        `yaml:"logging"`
	Auth          AuthConfig           `yaml:"auth"`
	CORS          CORSConfig           `yaml:"cors"`
	RateLimit     RateLimitConfig      `yaml:"rate_limit"`
	Content       ContentConfig        `yaml:"content"`
	Analyzer      AnalyzerConfig       `yaml:"analyzer"`
	News          NewsConfig           `yaml:"news"`
	Facebook      FacebookConfig       `yaml:"facebook"`
	Retention     RetentionConfig      `yaml:"retention"`
	Profiling     profiling.Config     `yaml:"profiling"`
}

type ServiceConfig struct {
	Name         string        `yaml:"name"`
	Version      string        `env:"SERVICE_VERSION" yaml:"version"`
	Port         int           `env:"SERVER_PORT"     yaml:"port"`
	Debug        bool          `env:"APP_DEBUG"       yaml:"debug"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type DatabaseConfig struct {
	Driver          string        `env:"DB_DRIVER"   yaml:"driver"`
	Host            string        `env:"DB_HOST"     yaml:"host"`
	Port            int           `env:"DB_PORT"     yaml:"port"`
	User            string        `env:"DB_USER"     yaml:"user"`
	Password        string        `env:"DB_PASSWORD" yaml:"password"`
	DBName          string        `env:"DB_NAME"     yaml:"dbname"`
	SSLMode         string        `env:"DB_SSLMODE"  yaml:"sslmode"`
	Path            string        `env:"DB_PATH"     yaml:"path"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// AuthConfig protects /api/v1 when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string `env:"AUTH_JWT_SECRET" yaml:"jwt_secret"`
}

type CORSConfig struct {
	Origins []string `env:"CORS_ORIGINS" yaml:"origins"`
}

// RateLimitConfig allows Requests per Per window for each client IP.
type RateLimitConfig struct {
	Enabled  bool          `env:"RATELIMIT_ENABLED" yaml:"enabled"`
	Requests int           `yaml:"requests"`
	Per      time.Duration `yaml:"per"`
}

type ContentConfig struct {
	DefaultFrequency int `env:"DEFAULT_POST_FREQUENCY" yaml:"default_frequency"`
	MaxFrequency     int `env:"MAX_POST_FREQUENCY"     yaml:"max_frequency"`
}

type AnalyzerConfig struct {
	Timeout      time.Duration `env:"WEBSITE_TIMEOUT"  yaml:"timeout"`
	MaxBodyBytes int           `env:"MAX_WEBSITE_SIZE" yaml:"max_body_bytes"`
	UserAgent    string        `yaml:"user_agent"`
}

// NewsConfig controls industry news retrieval. Feeds overrides the built-in
// RSS feeds per industry.
type NewsConfig struct {
	CacheTTL        time.Duration       `env:"NEWS_CACHE_TTL" yaml:"cache_ttl"`
	MaxItems        int                 `env:"MAX_NEWS_ITEMS" yaml:"max_items"`
	Feeds           map[string][]string `yaml:"feeds"`
	GoogleNewsURL   string              `yaml:"google_news_url"`
	RefreshSchedule string              `yaml:"refresh_schedule"`
	Timeout         time.Duration       `yaml:"timeout"`
}

// FacebookConfig selects the publishing client. Mode is fixed at startup.
type FacebookConfig struct {
	Mode       string        `env:"FACEBOOK_MODE"        yaml:"mode"`
	APIVersion string        `env:"FACEBOOK_API_VERSION" yaml:"api_version"`
	GraphURL   string        `yaml:"graph_url"`
	AppID      string        `env:"FACEBOOK_APP_ID"      yaml:"app_id"`
	AppSecret  string        `env:"FACEBOOK_APP_SECRET"  yaml:"app_secret"`
	Timeout    time.Duration `yaml:"timeout"`
}

type RetentionConfig struct {
	Days            int    `env:"DATA_RETENTION_DAYS" yaml:"days"`
	CleanupSchedule string `yaml:"cleanup_schedule"`
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	var errs []error
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		errs = append(errs, err)
	}
	if err := infraconfig.ValidateOneOf("database.driver", c.Database.Driver, DriverPostgres, DriverSQLite); err != nil {
		errs = append(errs, err)
	}
	if c.Database.Driver == DriverPostgres {
		if c.Database.Host == "" {
			errs = append(errs, &infraconfig.ValidationError{Field: "database.host", Message: "is required for postgres"})
		}
		if c.Database.DBName == "" {
			errs = append(errs, &infraconfig.ValidationError{Field: "database.dbname", Message: "is required for postgres"})
		}
	}
	if err := infraconfig.ValidateLogLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if err := infraconfig.ValidateOneOf("facebook.mode", c.Facebook.Mode, FacebookModeMock, FacebookModeLive); err != nil {
		errs = append(errs, err)
	}
	if c.Content.DefaultFrequency < 1 || c.Content.DefaultFrequency > c.Content.MaxFrequency {
		errs = append(errs, &infraconfig.ValidationError{
			Field:   "content.default_frequency",
			Message: fmt.Sprintf("must be between 1 and max_frequency (%d)", c.Content.MaxFrequency),
		})
	}
	if c.Content.MaxFrequency > defaultMaxFrequency {
		errs = append(errs, &infraconfig.ValidationError{
			Field:   "content.max_frequency",
			Message: fmt.Sprintf("must be at most %d", defaultMaxFrequency),
		})
	}
	if c.Retention.Days < 1 {
		errs = append(errs, &infraconfig.ValidationError{Field: "retention.days", Message: "must be positive"})
	}
	return errors.Join(errs...)
}

// Load reads path, applies defaults and validates.
func Load(path string) (*Config, error) {
	cfg, err := infraconfig.LoadWithDefaults(path, SetDefaults)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SetDefaults fills every unset value.
func SetDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	cfg.Elasticsearch.SetDefaults()
	cfg.Logging.SetDefaults()

	if len(cfg.CORS.Origins) == 0 {
		cfg.CORS.Origins = []string{"*"}
	}
	if cfg.RateLimit.Requests == 0 {
		cfg.RateLimit.Requests = defaultRateRequests
	}
	if cfg.RateLimit.Per == 0 {
		cfg.RateLimit.Per = defaultRatePer
	}
	if cfg.Content.DefaultFrequency == 0 {
		cfg.Content.DefaultFrequency = defaultFrequency
	}
	if cfg.Content.MaxFrequency == 0 {
		cfg.Content.MaxFrequency = defaultMaxFrequency
	}

	if cfg.Analyzer.Timeout == 0 {
		cfg.Analyzer.Timeout = defaultAnalyzerTimeout
	}
	if cfg.Analyzer.MaxBodyBytes == 0 {
		cfg.Analyzer.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.Analyzer.UserAgent == "" {
		cfg.Analyzer.UserAgent = defaultUserAgent
	}

	setNewsDefaults(&cfg.News)
	setFacebookDefaults(&cfg.Facebook)

	if cfg.Retention.Days == 0 {
		cfg.Retention.Days = defaultRetentionDays
	}
	if cfg.Retention.CleanupSchedule == "" {
		cfg.Retention.CleanupSchedule = defaultCleanupSchedule
	}
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = "dev"
	}
	if s.Port == 0 {
		s.Port = defaultServerPort
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = defaultServerTimeout
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = defaultServerTimeout
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Driver == "" {
		d.Driver = DriverSQLite
	}
	if d.Port == 0 {
		d.Port = defaultDatabasePort
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.Path == "" {
		d.Path = defaultSQLitePath
	}
	if d.MaxOpenConns == 0 {
		d.MaxOpenConns = defaultMaxOpenConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = defaultConnMaxLifetime
	}
}

func setNewsDefaults(n *NewsConfig) {
	if n.CacheTTL == 0 {
		n.CacheTTL = defaultNewsCacheTTL
	}
	if n.MaxItems == 0 {
		n.MaxItems = defaultMaxNewsItems
	}
	if n.GoogleNewsURL == "" {
		n.GoogleNewsURL = defaultGoogleNewsURL
	}
	if n.RefreshSchedule == "" {
		n.RefreshSchedule = defaultNewsRefresh
	}
	if n.Timeout == 0 {
		n.Timeout = defaultAnalyzerTimeout
	}
}

func setFacebookDefaults(f *FacebookConfig) {
	if f.Mode == "" {
		f.Mode = FacebookModeMock
	}
	if f.APIVersion == "" {
		f.APIVersion = defaultFacebookVersion
	}
	if f.GraphURL == "" {
		f.GraphURL = defaultGraphURL
	}
	if f.Timeout == 0 {
		f.Timeout = defaultServerTimeout
	}
}
