package index

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/redisearch/internal/document"
	"github.com/kailas-cloud/redisearch/internal/query"
)

// ItemStatus is the outcome of one reindexed document.
type ItemStatus string

// Reindex item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// ItemResult is the outcome of reindexing one document.
type ItemResult struct {
	key    string
	status ItemStatus
	err    error
}

func newOK(key string) ItemResult { return ItemResult{key: key, status: StatusOK} }

func newError(key string, err error) ItemResult {
	return ItemResult{key: key, status: StatusError, err: err}
}

// Key returns the document key.
func (r ItemResult) Key() string { return r.key }

// Status returns the outcome.
func (r ItemResult) Status() ItemStatus { return r.status }

// Err returns the failure, if any.
func (r ItemResult) Err() error { return r.err }

type reindexConfig struct {
	recreate    bool
	concurrency int
	report      *[]ItemResult
}

// ReindexOption configures Reindex.
type ReindexOption func(*reindexConfig)

// WithRecreate drops the index (when present) and creates it before loading.
func WithRecreate() ReindexOption {
	return func(c *reindexConfig) { c.recreate = true }
}

// WithConcurrency runs up to n adds at once. Documents are then submitted
// in no particular order.
func WithConcurrency(n int) ReindexOption {
	return func(c *reindexConfig) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithReport stores one ItemResult per input document, in input order.
func WithReport(dst *[]ItemResult) ReindexOption {
	return func(c *reindexConfig) { c.report = dst }
}

// Reindex adds every document with Replace set. A failing document does
// not stop the others; all failures are returned together. The count is
// the number of documents submitted to Add.
func (ix *Index) Reindex(ctx context.Context, docs []*document.Document, opts ...ReindexOption) (int, error) {
	return ix.reindex(ctx, len(docs), source{
		key: func(i int) string {
			if docs[i] == nil {
				return ""
			}
			return docs[i].Key()
		},
		load: func(_ context.Context, i int) (*document.Document, error) {
			if docs[i] == nil {
				return nil, fmt.Errorf("nil document: %w", document.ErrInvalidDocument)
			}
			return docs[i], nil
		},
	}, opts)
}

// ReindexObjects maps every object through serializer and reindexes the
// results like Reindex. An object that cannot be mapped is reported as a
// failed document and the remaining objects are still added.
func (ix *Index) ReindexObjects(ctx context.Context, objs []any, serializer document.Serializer, opts ...ReindexOption) (int, error) {
	return ix.reindex(ctx, len(objs), source{
		key: func(i int) string {
			doc, err := ix.DocumentFor(objs[i])
			if err != nil {
				return ""
			}
			return doc.Key()
		},
		load: func(ctx context.Context, i int) (*document.Document, error) {
			return ix.DocumentContext(ctx, objs[i], serializer)
		},
	}, opts)
}

// source yields the i-th document of a reindex run. key must not fail; it
// returns "" when the item has no usable identity.
type source struct {
	key  func(i int) string
	load func(ctx context.Context, i int) (*document.Document, error)
}

func (ix *Index) reindex(ctx context.Context, n int, src source, opts []ReindexOption) (int, error) {
	cfg := reindexConfig{concurrency: 1}
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.recreate {
		if err := ix.recreate(ctx); err != nil {
			return 0, err
		}
	}

	results := make([]ItemResult, n)
	var submitted atomic.Int64

	var g errgroup.Group
	g.SetLimit(cfg.concurrency)
	for i := range n {
		g.Go(func() error {
			results[i] = ix.reindexOne(ctx, i, src, &submitted)
			return nil
		})
	}
	_ = g.Wait() // workers never fail; outcomes are in results

	var merr *multierror.Error
	failed := 0
	for _, r := range results {
		if ix.recorder != nil {
			ix.recorder.ReindexDocument(ix.name, r.status == StatusOK)
		}
		if r.err != nil {
			failed++
			merr = multierror.Append(merr, fmt.Errorf("document %q: %w", r.key, r.err))
		}
	}
	if cfg.report != nil {
		*cfg.report = results
	}

	count := int(submitted.Load())
	ix.logger.Info("Reindex finished",
		zap.Int("documents", n),
		zap.Int("submitted", count),
		zap.Int("failed", failed),
		zap.Bool("recreate", cfg.recreate),
	)
	return count, merr.ErrorOrNil()
}

func (ix *Index) reindexOne(ctx context.Context, i int, src source, submitted *atomic.Int64) ItemResult {
	key := src.key(i)
	if err := ctx.Err(); err != nil {
		return newError(key, err)
	}
	doc, err := src.load(ctx, i)
	if err != nil {
		return newError(key, err)
	}
	submitted.Add(1)
	if err := ix.Add(ctx, doc, query.AddOptions{Replace: true}); err != nil {
		return newError(key, err)
	}
	return newOK(key)
}

func (ix *Index) recreate(ctx context.Context) error {
	exists, err := ix.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		if err := ix.Drop(ctx); err != nil && !errors.Is(err, ErrIndexNotFound) {
			return err
		}
	}
	return ix.Create(ctx)
}
