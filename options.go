package redisearch

import (
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/redisearch/internal/index"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	indexPrefix      string
	env              string
	readinessTimeout time.Duration

	logger   *zap.Logger
	metrics  bool
	registry *index.Registry
}

func newClientConfig(opts []Option) *clientConfig {
	cfg := &clientConfig{
		readinessTimeout: defaultReadinessTimeout,
		logger:           zap.NewNop(),
		registry:         index.Default,
	}
	for _, o := range opts {
		o.apply(cfg)
	}
	return cfg
}

// WithRedis sets the Redis addresses and password.
func WithRedis(addrs []string, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = addrs
		c.password = password
	})
}

// WithUsername sets the ACL username.
func WithUsername(username string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
	})
}

// WithDB selects the logical database.
func WithDB(db int) Option {
	return optionFunc(func(c *clientConfig) {
		c.db = db
	})
}

// WithIndexPrefix sets the prefix component of derived index names.
func WithIndexPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexPrefix = prefix
	})
}

// WithEnv sets the environment suffix of derived index names ("widgets_test").
func WithEnv(env string) Option {
	return optionFunc(func(c *clientConfig) {
		c.env = env
	})
}

// WithReadinessTimeout bounds how long New waits for the engine. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		if d > 0 {
			c.readinessTimeout = d
		}
	})
}

// WithLogger enables structured logging of index lifecycle events.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		if l != nil {
			c.logger = l
		}
	})
}

// WithMetrics records command and reindex metrics on the default Prometheus registerer.
func WithMetrics() Option {
	return optionFunc(func(c *clientConfig) {
		c.metrics = true
	})
}

// WithRegistry isolates the client's models from the process-wide registry.
func WithRegistry(r *Registry) Option {
	return optionFunc(func(c *clientConfig) {
		if r != nil {
			c.registry = r
		}
	})
}
