package elasticsearch

import (
	"time"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/retry"
)

// Config holds Elasticsearch client settings. An empty URL disables the archive.
type Config struct {
	URL         string        `env:"ELASTICSEARCH_URL"      yaml:"url"`
	Username    string        `env:"ELASTICSEARCH_USERNAME" yaml:"username"`
	Password    string        `env:"ELASTICSEARCH_PASSWORD" yaml:"password"`
	APIKey      string        `env:"ELASTICSEARCH_API_KEY"  yaml:"api_key"`
	Index       string        `env:"ELASTICSEARCH_INDEX"    yaml:"index"`
	MaxRetries  int           `yaml:"max_retries"`
	PingTimeout time.Duration `yaml:"ping_timeout"`
	// Retry governs the startup connection check.
	Retry retry.Config `yaml:"-"`
}

// SetDefaults applies default values.
func (c *Config) SetDefaults() {
	if c.Index == "" {
		c.Index = "social_posts"
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.PingTimeout == 0 {
		c.PingTimeout = 5 * time.Second
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry = retry.Config{
			MaxAttempts:  5,
			InitialDelay: 2 * time.Second,
			MaxDelay:     10 * time.Second,
			Multiplier:   2,
			IsRetryable:  func(error) bool { return true },
		}
	}
}
