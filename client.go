package redisearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/redisearch/internal/db"
	"github.com/kailas-cloud/redisearch/internal/db/instrumented"
	dbRedis "github.com/kailas-cloud/redisearch/internal/db/redis"
	"github.com/kailas-cloud/redisearch/internal/index"
	"github.com/kailas-cloud/redisearch/internal/metrics"
	"github.com/kailas-cloud/redisearch/internal/schema"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the SDK entry point. It owns the engine connection and the
// naming rules shared by every Model.
type Client struct {
	store    db.Store
	registry *index.Registry
	prefix   string
	env      string
	logger   *zap.Logger
	recorder index.Recorder
	kv       db.KVStore // nil when the store has no plain key space
	metrics  bool
}

// New connects to Redis and waits until it answers.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig(opts)
	if len(cfg.addrs) == 0 {
		return nil, errors.New("redisearch: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("redisearch: create store: %w", err)
	}

	c := wireClient(store, cfg)
	if err := c.store.WaitForReady(context.Background(), cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("redisearch: database not ready: %w", err)
	}
	return c, nil
}

// NewClientWithStore builds a Client over an existing store, for tests and
// custom transports. It does not wait for readiness.
func NewClientWithStore(store Store, opts ...Option) *Client {
	return wireClient(store, newClientConfig(opts))
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	c := &Client{
		store:    store,
		registry: cfg.registry,
		prefix:   cfg.indexPrefix,
		env:      cfg.env,
		logger:   cfg.logger,
		metrics:  cfg.metrics,
	}
	if kv, ok := store.(db.KVStore); ok {
		c.kv = kv
	}
	if cfg.metrics {
		metrics.RegisterEngineMetrics()
		metrics.RegisterEmbeddingMetrics()
		c.store = instrumented.New(store, cfg.logger)
		c.recorder = metrics.ReindexRecorder{}
	}
	return c
}

// Close releases the connection.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks engine connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// IndexName derives the index name for a type name with the client's
// prefix and environment.
func (c *Client) IndexName(typeName string) string {
	return schema.IndexName(c.prefix, typeName, c.env)
}

// NewIndex registers an untyped index for typeName. A second call for the
// same type returns the first index and ignores fields. It fails with
// ErrRegistryConflict when the registered index was derived by a client
// with another prefix, environment or store.
func (c *Client) NewIndex(typeName string, fields ...Field) (*Index, error) {
	if typeName == "" {
		return nil, errors.New("redisearch: type name is required")
	}
	name := c.IndexName(typeName)
	ix, err := c.registry.Register(typeName, func() (*index.Index, error) {
		sch, err := schema.New(name, fields...)
		if err != nil {
			return nil, err //nolint:wrapcheck // Register adds the type name
		}
		return index.New(sch, c.store, index.WithLogger(c.logger), index.WithRecorder(c.recorder))
	})
	if err != nil {
		return nil, err //nolint:wrapcheck // Register adds the type name
	}
	if ix.Name() != name || !ix.BoundTo(c.store) {
		return nil, fmt.Errorf("redisearch: %s is registered as %s, want %s on this client (use WithRegistry): %w",
			typeName, ix.Name(), name, ErrRegistryConflict)
	}
	return ix, nil
}

// Lookup returns the index registered for typeName.
func (c *Client) Lookup(typeName string) (*Index, bool) {
	return c.registry.Lookup(typeName)
}

// Indexes returns every index in the client's registry ordered by name.
func (c *Client) Indexes() []*Index {
	return c.registry.All()
}
