package logger

// Config represents the logger configuration.
type Config struct {
	// Level is the minimum logging level (debug, info, warn, error, fatal).
	Level       string     `env:"LOG_LEVEL"       yaml:"level"`
	Development bool       `env:"LOG_DEVELOPMENT" yaml:"development"`
	OutputPaths []string   `yaml:"output_paths"`
	File        FileConfig `yaml:"file"`
}

// FileConfig enables a rotated log file next to the regular outputs.
type FileConfig struct {
	Path       string `env:"LOG_FILE" yaml:"path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default configuration values.
const (
	DefaultLevel      = "info"
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 10
)

// DefaultOutputPaths is the default list of paths to write log output to.
var DefaultOutputPaths = []string{"stdout"}

// SetDefaults applies default values to the config if not set.
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if len(c.OutputPaths) == 0 {
		c.OutputPaths = DefaultOutputPaths
	}
	if c.File.MaxSizeMB == 0 {
		c.File.MaxSizeMB = DefaultMaxSizeMB
	}
	if c.File.MaxBackups == 0 {
		c.File.MaxBackups = DefaultMaxBackups
	}
}
