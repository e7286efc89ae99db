package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/tagrec/internal/domain/strategy"
)

// Config holds the tagrec service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Model    ModelConfig    `yaml:"model"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
	MaxCandidates   int `yaml:"max_candidates"`
}

// Database drivers.
const (
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, sqlite (default: redis)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	SQLitePath       string   `yaml:"sqlite_path"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// ModelConfig holds model build and profile settings.
type ModelConfig struct {
	ProfileStrategy string  `yaml:"profile_strategy"` // threshold, weighted (default: threshold)
	RatingThreshold float64 `yaml:"rating_threshold"`
	BuildWorkers    int     `yaml:"build_workers"` // 0 = NumCPU
	RebuildCron     string  `yaml:"rebuild_cron"`  // empty = disabled
	RebuildTimeout  int     `yaml:"rebuild_timeout_sec"`
	Snapshot        *bool   `yaml:"snapshot"` // default: true
}

// SnapshotEnabled reports whether built models are persisted.
func (m ModelConfig) SnapshotEnabled() bool {
	return m.Snapshot == nil || *m.Snapshot
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxCandidates <= 0 {
		c.HTTP.MaxCandidates = 10000
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverRedis
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "tagrec.db"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Model.ProfileStrategy == "" {
		c.Model.ProfileStrategy = "threshold"
	}
	if c.Model.RatingThreshold == 0 {
		c.Model.RatingThreshold = 3.5
	}
	if c.Model.RebuildTimeout <= 0 {
		c.Model.RebuildTimeout = 1800
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "tagrec:"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case DriverRedis:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver %q", DriverRedis)
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be \"redis\" or \"sqlite\", got %q", c.Database.Driver)
	}
	if _, err := strategy.Parse(c.Model.ProfileStrategy); err != nil {
		return fmt.Errorf("model.profile_strategy: %w", err)
	}
	if c.Model.RatingThreshold < 0 || math.IsNaN(c.Model.RatingThreshold) || math.IsInf(c.Model.RatingThreshold, 0) {
		return fmt.Errorf("model.rating_threshold must be a positive number, got %v", c.Model.RatingThreshold)
	}
	if c.Model.BuildWorkers < 0 {
		return fmt.Errorf("model.build_workers must not be negative, got %d", c.Model.BuildWorkers)
	}
	if c.Model.RebuildCron != "" {
		if _, err := cron.ParseStandard(c.Model.RebuildCron); err != nil {
			return fmt.Errorf("model.rebuild_cron %q: %w", c.Model.RebuildCron, err)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
