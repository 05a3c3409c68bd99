package redisearch

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/kailas-cloud/redisearch/internal/document"
	"github.com/kailas-cloud/redisearch/internal/embcache"
	"github.com/kailas-cloud/redisearch/internal/index"
	"github.com/kailas-cloud/redisearch/internal/metrics"
)

// Model binds the struct type T to one index. T is read through its
// `redisearch` struct tags unless a serializer is configured.
type Model[T any] struct {
	typeName   string
	index      *index.Index
	serializer document.Serializer
}

// ModelOption configures Register.
type ModelOption func(*modelConfig)

type modelConfig struct {
	typeName   string
	serializer Serializer
	embed      *embedSpec
}

type embedSpec struct {
	source   string
	target   string
	embedder Embedder
	cache    bool
	cacheTTL time.Duration
}

// WithSerializer replaces struct-tag extraction with s.
func WithSerializer(s Serializer) ModelOption {
	return func(c *modelConfig) { c.serializer = s }
}

// WithTypeName overrides the type name used for the index name and registry key.
func WithTypeName(name string) ModelOption {
	return func(c *modelConfig) { c.typeName = name }
}

// WithEmbedding fills the vector attribute target by embedding the text
// attribute source on every save.
func WithEmbedding(source, target string, e Embedder) ModelOption {
	return func(c *modelConfig) {
		c.embed = &embedSpec{source: source, target: target, embedder: e}
	}
}

// WithEmbeddingCache caches the vectors of WithEmbedding in the engine's key
// space for ttl (zero keeps them forever). It must follow WithEmbedding and
// needs a client whose store exposes plain keys.
func WithEmbeddingCache(ttl time.Duration) ModelOption {
	return func(c *modelConfig) {
		if c.embed != nil {
			c.embed.cache = true
			c.embed.cacheTTL = ttl
		}
	}
}

// Register binds T to the index named after T. Registering T twice returns
// a Model over the same index.
func Register[T any](c *Client, fields []Field, opts ...ModelOption) (*Model[T], error) {
	cfg := &modelConfig{typeName: typeNameOf[T]()}
	for _, o := range opts {
		o(cfg)
	}
	if cfg.typeName == "" {
		return nil, errors.New("redisearch: cannot derive a type name (use WithTypeName)")
	}

	ix, err := c.NewIndex(cfg.typeName, fields...)
	if err != nil {
		return nil, fmt.Errorf("redisearch: %w", err)
	}

	ser := cfg.serializer
	if cfg.embed != nil {
		if cfg.embed.embedder == nil {
			return nil, errors.New("redisearch: WithEmbedding requires an embedder")
		}
		e, err := c.cachedEmbedder(cfg.embed)
		if err != nil {
			return nil, err
		}
		ser = NewEmbeddingSerializer(ix.Schema(), ser, cfg.embed.source, cfg.embed.target, e)
	}
	return &Model[T]{typeName: cfg.typeName, index: ix, serializer: ser}, nil
}

func (c *Client) cachedEmbedder(spec *embedSpec) (Embedder, error) {
	if !spec.cache {
		return spec.embedder, nil
	}
	if c.kv == nil {
		return nil, errors.New("redisearch: WithEmbeddingCache needs a store with plain key access")
	}
	cfg := embcache.Config{TTL: spec.cacheTTL, Logger: c.logger}
	if m, ok := spec.embedder.(interface{ Model() string }); ok {
		cfg.Model = m.Model()
	}
	if c.metrics {
		cfg.CacheTotal = metrics.EmbeddingCacheTotal
	}
	return embcache.New(spec.embedder, c.kv, cfg), nil
}

func typeNameOf[T any]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// Name returns the engine-side index name.
func (m *Model[T]) Name() string { return m.index.Name() }

// TypeName returns the registry key.
func (m *Model[T]) TypeName() string { return m.typeName }

// Index returns the underlying index.
func (m *Model[T]) Index() *Index { return m.index }

// Create issues FT.CREATE.
func (m *Model[T]) Create(ctx context.Context) error { return m.index.Create(ctx) }

// Exists reports whether the index exists.
func (m *Model[T]) Exists(ctx context.Context) (bool, error) { return m.index.Exists(ctx) }

// Drop drops the index and keeps document hashes.
func (m *Model[T]) Drop(ctx context.Context) error { return m.index.Drop(ctx) }

// DropWithDocuments drops the index together with its document hashes.
func (m *Model[T]) DropWithDocuments(ctx context.Context) error {
	return m.index.DropWithDocuments(ctx)
}

// Document maps item onto its index document.
func (m *Model[T]) Document(item *T) (*Document, error) {
	return m.index.Document(item, m.serializer)
}

// Hooks returns the save/destroy observer for a persistence layer.
func (m *Model[T]) Hooks() *Hooks { return index.NewHooks(m.index, m.serializer) }

// Save replaces item's document. A missing index makes it a no-op.
func (m *Model[T]) Save(ctx context.Context, item *T) error {
	return m.Hooks().OnAfterCreateOrUpdate(ctx, item)
}

// Destroy deletes item's document and hash. A missing index makes it a no-op.
func (m *Model[T]) Destroy(ctx context.Context, item *T) error {
	return m.Hooks().OnAfterDestroy(ctx, item)
}

// Get loads the stored hash for id into a new T.
func (m *Model[T]) Get(ctx context.Context, id string) (*T, error) {
	fields, err := m.index.Get(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck // index adds the key
	}
	out := new(T)
	if err := document.Populate(m.index.Schema(), id, fields, out); err != nil {
		return nil, fmt.Errorf("get %s: %w", id, err)
	}
	return out, nil
}

// Search runs a raw query. A nil term matches every document.
func (m *Model[T]) Search(ctx context.Context, term *string, q Query) (*SearchResult, error) {
	return m.index.Search(ctx, term, q)
}

// Count returns the number of documents matching term and q's filters.
func (m *Model[T]) Count(ctx context.Context, term *string, q Query) (int, error) {
	return m.index.Count(ctx, term, q)
}

// Spellcheck suggests corrections for term, in engine order.
func (m *Model[T]) Spellcheck(ctx context.Context, term string, distance int) ([]Suggestion, error) {
	return m.index.Spellcheck(ctx, term, distance)
}

// Reindex replaces the documents of items. It returns the number of
// documents submitted and the aggregated per-document errors; an item that
// cannot be mapped is one of those errors and does not stop the rest.
func (m *Model[T]) Reindex(ctx context.Context, items []*T, opts ...ReindexOption) (int, error) {
	objs := make([]any, len(items))
	for i, item := range items {
		objs[i] = item
	}
	return m.index.ReindexObjects(ctx, objs, m.serializer, opts...)
}
