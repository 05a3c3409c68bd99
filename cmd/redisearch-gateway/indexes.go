package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/redisearch"
	"github.com/kailas-cloud/redisearch/internal/config"
	"github.com/kailas-cloud/redisearch/internal/db"
	"github.com/kailas-cloud/redisearch/internal/document"
	"github.com/kailas-cloud/redisearch/internal/embcache"
	"github.com/kailas-cloud/redisearch/internal/index"
	"github.com/kailas-cloud/redisearch/internal/metrics"
	openaiEmb "github.com/kailas-cloud/redisearch/internal/transport/openai"
)

// declareIndexes registers every configured index in index.Default, creating
// missing ones when search.create_missing is set. It returns the serializers
// of indexes that embed a text field on write.
func declareIndexes(
	ctx context.Context,
	cfg config.Config,
	store index.Store,
	kv db.KVStore,
	recorder index.Recorder,
	logger *zap.Logger,
) (map[string]document.Serializer, error) {
	var embedder redisearch.Embedder
	if cfg.Embedding.Enabled() {
		metrics.RegisterEmbeddingMetrics()
		embedder = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Logger:     logger,
		})
		if cfg.Embedding.Cache && kv != nil {
			embedder = embcache.New(embedder, kv, embcache.Config{
				Model:      cfg.Embedding.Model,
				TTL:        time.Duration(cfg.Embedding.CacheTTL) * time.Second,
				CacheTotal: metrics.EmbeddingCacheTotal,
				Logger:     logger,
			})
		}
		logger.Info("Embedder created",
			zap.String("model", cfg.Embedding.Model),
			zap.Int("dimensions", cfg.Embedding.Dimensions),
			zap.Bool("cache", cfg.Embedding.Cache && kv != nil),
		)
	}

	opts := []index.Option{index.WithLogger(logger)}
	if recorder != nil {
		opts = append(opts, index.WithRecorder(recorder))
	}

	serializers := make(map[string]document.Serializer)
	for _, ic := range cfg.Indexes {
		ix, err := index.Default.Register(ic.Type, func() (*index.Index, error) {
			sch, err := cfg.Search.Schema(ic)
			if err != nil {
				return nil, err
			}
			return index.New(sch, store, opts...)
		})
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", ic.Type, err)
		}

		if ic.Embed != nil {
			if embedder == nil {
				logger.Warn("Embedding not configured, vectors must be sent by clients",
					zap.String("index", ix.Name()))
			} else {
				serializers[ic.Type] = redisearch.NewEmbeddingSerializer(
					ix.Schema(), nil, ic.Embed.Source, ic.Embed.Target, embedder)
			}
		}

		if cfg.Search.CreateMissing {
			if err := createIfMissing(ctx, ix); err != nil {
				return nil, err
			}
		}
	}
	return serializers, nil
}

func createIfMissing(ctx context.Context, ix *index.Index) error {
	ok, err := ix.Exists(ctx)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if err := ix.Create(ctx); err != nil && !errors.Is(err, index.ErrIndexAlreadyExists) {
		return err
	}
	return nil
}
