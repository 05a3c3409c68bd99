package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/redisearch/internal/db"
)

// CreateIndex issues FT.CREATE with the compiled schema arguments.
// Engine rejections other than a name clash surface as db.ErrMalformedSchema
// carrying the engine message verbatim.
func (s *Store) CreateIndex(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "" {
		return errors.New("index name is required")
	}

	if err := s.do(ctx, s.ft(db.OpCreate, args)).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return db.ErrIndexExists
		}
		if _, ok := rueidis.IsRedisErr(err); ok {
			return &db.Error{Op: db.OpCreate, Err: fmt.Errorf("%w: %s", db.ErrMalformedSchema, err.Error())}
		}
		return classify(db.OpCreate, err)
	}
	return nil
}

// DropIndex removes an FT index by name, with its documents when deleteDocuments is set.
func (s *Store) DropIndex(ctx context.Context, name string, deleteDocuments bool) error {
	args := []string{name}
	if deleteDocuments {
		args = append(args, "DD")
	}

	if err := s.do(ctx, s.ft(db.OpDropIndex, args)).Error(); err != nil {
		if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
			return db.ErrIndexNotFound
		}
		return classify(db.OpDropIndex, err)
	}
	return nil
}

// IndexExists probes index existence via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	if err := s.do(ctx, s.ft(db.OpInfo, []string{name})).Error(); err != nil {
		if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
			return false, nil
		}
		return false, classify(db.OpInfo, err)
	}
	return true, nil
}
