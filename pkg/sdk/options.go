package tagrec

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/tagrec/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver     string // "redis" or "sqlite"
	addrs      []string
	password   string
	sqlitePath string
	keyPrefix  string

	strategy     string
	threshold    float64
	buildWorkers int
	noSnapshots  bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithRedis configures the client to connect to a Redis or Valkey instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = config.DriverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithSQLite stores ratings, tags and the model in a local SQLite file.
// Use ":memory:" for a throwaway database.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = config.DriverSQLite
		c.sqlitePath = path
	})
}

// WithKeyPrefix sets the Redis key prefix. Default: "tagrec:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithProfileStrategy selects how user profiles are built:
// "threshold" (default) or "weighted".
func WithProfileStrategy(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.strategy = name
	})
}

// WithThreshold sets the minimum rating counted by the threshold strategy.
// Default: 3.5.
func WithThreshold(v float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.threshold = v
	})
}

// WithBuildWorkers sets the model build parallelism. Default: number of CPUs.
func WithBuildWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.buildWorkers = n
	})
}

// WithoutSnapshots keeps built models in memory only.
func WithoutSnapshots() Option {
	return optionFunc(func(c *clientConfig) {
		c.noSnapshots = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
