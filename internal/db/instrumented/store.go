// Package instrumented decorates a db.Store with Prometheus metrics and debug logs.
package instrumented

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/redisearch/internal/db"
	"github.com/kailas-cloud/redisearch/internal/metrics"
	"github.com/kailas-cloud/redisearch/internal/query"
)

var _ db.Store = (*Store)(nil)

// Store wraps a db.Store and records every command.
type Store struct {
	inner  db.Store
	logger *zap.Logger
}

// New wraps inner. A nil logger disables logging.
func New(inner db.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{inner: inner, logger: logger}
}

// observe records the outcome of one command and passes err through.
func (s *Store) observe(command string, start time.Time, err error) error {
	elapsed := time.Since(start)
	status := Status(err)
	metrics.CommandsTotal.WithLabelValues(command, status).Inc()
	metrics.CommandDuration.WithLabelValues(command).Observe(elapsed.Seconds())

	fields := []zap.Field{
		zap.String("command", command),
		zap.String("status", status),
		zap.Duration("duration", elapsed),
	}
	switch status {
	case metrics.StatusOK:
		s.logger.Debug("Command completed", fields...)
	case metrics.StatusConnectivity:
		s.logger.Warn("Command failed", append(fields, zap.Error(err))...)
	default:
		s.logger.Debug("Command rejected", append(fields, zap.Error(err))...)
	}
	return err
}

// Status maps a command error to its metric label.
func Status(err error) string {
	switch {
	case err == nil:
		return metrics.StatusOK
	case errors.Is(err, db.ErrConnectivity):
		return metrics.StatusConnectivity
	case errors.Is(err, query.ErrInvalidQuery):
		return metrics.StatusInvalid
	default:
		return metrics.StatusEngineError
	}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	start := time.Now()
	return s.observe(db.OpPing, start, s.inner.Ping(ctx))
}

// Close closes the wrapped store.
func (s *Store) Close() { s.inner.Close() }

// WaitForReady delegates without recording; its pings are internal.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return s.inner.WaitForReady(ctx, timeout) //nolint:wrapcheck // decorator
}

// CreateIndex records FT.CREATE.
func (s *Store) CreateIndex(ctx context.Context, args []string) error {
	start := time.Now()
	return s.observe(db.OpCreate, start, s.inner.CreateIndex(ctx, args))
}

// DropIndex records FT.DROPINDEX.
func (s *Store) DropIndex(ctx context.Context, name string, deleteDocuments bool) error {
	start := time.Now()
	return s.observe(db.OpDropIndex, start, s.inner.DropIndex(ctx, name, deleteDocuments))
}

// IndexExists records FT.INFO.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	start := time.Now()
	ok, err := s.inner.IndexExists(ctx, name)
	return ok, s.observe(db.OpInfo, start, err)
}

// AddDocument records FT.ADD.
func (s *Store) AddDocument(ctx context.Context, req *db.AddRequest) error {
	start := time.Now()
	return s.observe(db.OpAdd, start, s.inner.AddDocument(ctx, req))
}

// DeleteDocument records FT.DEL.
func (s *Store) DeleteDocument(ctx context.Context, index, key string, deleteDocument bool) error {
	start := time.Now()
	return s.observe(db.OpDel, start, s.inner.DeleteDocument(ctx, index, key, deleteDocument))
}

// GetDocument records HGETALL.
func (s *Store) GetDocument(ctx context.Context, key string) (map[string]string, error) {
	start := time.Now()
	m, err := s.inner.GetDocument(ctx, key)
	return m, s.observe(db.OpGet, start, err)
}

// Search records FT.SEARCH.
func (s *Store) Search(ctx context.Context, index string, term *string, q *query.Search) (*db.SearchResult, error) {
	start := time.Now()
	res, err := s.inner.Search(ctx, index, term, q)
	return res, s.observe(db.OpSearch, start, err)
}

// Count records FT.SEARCH issued for a count.
func (s *Store) Count(ctx context.Context, index string, term *string, q *query.Search) (int, error) {
	start := time.Now()
	n, err := s.inner.Count(ctx, index, term, q)
	return n, s.observe(db.OpSearch, start, err)
}

// Spellcheck records FT.SPELLCHECK.
func (s *Store) Spellcheck(ctx context.Context, index, term string, distance int) ([]db.Suggestion, error) {
	start := time.Now()
	sugs, err := s.inner.Spellcheck(ctx, index, term, distance)
	return sugs, s.observe(db.OpSpellcheck, start, err)
}
